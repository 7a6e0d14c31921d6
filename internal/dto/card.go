package dto

import (
	"fmt"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/apperrors"
	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	"github.com/SscSPs/card_inventory_app/internal/utils/normalize"
	"github.com/shopspring/decimal"
)

// CreateCardRequest defines the data needed to add a card to the inventory.
type CreateCardRequest struct {
	PlayerName       string `json:"playerName" binding:"required"`
	SetName          string `json:"setName"`
	NumberedParallel string `json:"numberedParallel"` // Optional, stored as "None" when empty
	Auto             bool   `json:"auto"`
	Patch            bool   `json:"patch"`
	Graded           bool   `json:"graded"`
	Listed           bool   `json:"listed"`
	Year             int    `json:"year" binding:"required,gte=1950"`
	BoughtFrom       string `json:"boughtFrom"`
	SellerName       string `json:"sellerName"`
	PurchasePrice    any    `json:"purchasePrice" swaggertype:"string" example:"$12.50"`  // Number or currency text; unreadable values count as zero
	PurchaseDate     string `json:"purchaseDate" binding:"omitempty,datetime=2006-01-02"` // Optional, defaults to today
	LotNumber        *int   `json:"lotNumber" binding:"omitempty,gte=0"`                  // Optional, defaults to the next lot number
}

// ToCardInput converts the request into ledger input. nextLot fills in an
// omitted lot number.
func (r CreateCardRequest) ToCardInput(nextLot int) (domain.CardInput, error) {
	in := domain.CardInput{
		PlayerName:       r.PlayerName,
		SetName:          r.SetName,
		NumberedParallel: r.NumberedParallel,
		Auto:             r.Auto,
		Patch:            r.Patch,
		Graded:           r.Graded,
		Listed:           r.Listed,
		Year:             r.Year,
		BoughtFrom:       r.BoughtFrom,
		SellerName:       r.SellerName,
		PurchasePrice:    normalize.Currency(r.PurchasePrice),
		LotNumber:        nextLot,
	}
	if r.LotNumber != nil {
		in.LotNumber = *r.LotNumber
	}
	if r.PurchaseDate != "" {
		d, err := time.Parse(domain.DateLayout, r.PurchaseDate)
		if err != nil {
			return domain.CardInput{}, fmt.Errorf("%w: purchaseDate: %w", apperrors.ErrValidation, err)
		}
		in.PurchaseDate = d
	}
	return in, nil
}

// UpdateCardRequest carries a partial field-name keyed update, e.g.
// {"fields": {"Listed": "Yes"}}. Names must match the store header exactly.
type UpdateCardRequest struct {
	Fields map[string]any `json:"fields" binding:"required,min=1"`
}

// RecordSaleRequest defines the disposition of a sold card.
type RecordSaleRequest struct {
	SoldDate  string `json:"soldDate" binding:"required,datetime=2006-01-02"`
	SoldPrice any    `json:"soldPrice" swaggertype:"string" example:"$80.00"`
	Takeaway  any    `json:"takeaway" swaggertype:"string" example:"$75.00"`
}

// ToSaleInput converts the request into ledger input.
func (r RecordSaleRequest) ToSaleInput() (domain.SaleInput, error) {
	d, err := time.Parse(domain.DateLayout, r.SoldDate)
	if err != nil {
		return domain.SaleInput{}, fmt.Errorf("%w: soldDate: %w", apperrors.ErrValidation, err)
	}
	return domain.SaleInput{
		SoldDate:  d,
		SoldPrice: normalize.Currency(r.SoldPrice),
		Takeaway:  normalize.Currency(r.Takeaway),
	}, nil
}

// CardResponse defines the data returned for a card.
type CardResponse struct {
	Position         int              `json:"position"`
	Label            string           `json:"label"`
	PlayerName       string           `json:"playerName"`
	SetName          string           `json:"setName"`
	NumberedParallel string           `json:"numberedParallel"`
	Auto             bool             `json:"auto"`
	Patch            bool             `json:"patch"`
	Graded           bool             `json:"graded"`
	Listed           bool             `json:"listed"`
	Year             int              `json:"year,omitempty"`
	BoughtFrom       string           `json:"boughtFrom"`
	SellerName       string           `json:"sellerName"`
	PurchasePrice    decimal.Decimal  `json:"purchasePrice"`
	PurchaseDate     *string          `json:"purchaseDate"`
	LotNumber        string           `json:"lotNumber"`
	SoldDate         *string          `json:"soldDate"`
	SoldPrice        *decimal.Decimal `json:"soldPrice"`
	Takeaway         *decimal.Decimal `json:"takeaway"`
	Sold             bool             `json:"sold"`
	Profit           decimal.Decimal  `json:"profit"`
}

// ToCardResponse converts a domain.CardRecord and its display label to a CardResponse DTO
func ToCardResponse(rec domain.CardRecord, label string) CardResponse {
	return CardResponse{
		Position:         int(rec.Position),
		Label:            label,
		PlayerName:       rec.PlayerName,
		SetName:          rec.SetName,
		NumberedParallel: rec.NumberedParallel,
		Auto:             rec.Auto.Bool(),
		Patch:            rec.Patch.Bool(),
		Graded:           rec.Graded.Bool(),
		Listed:           rec.Listed.Bool(),
		Year:             rec.Year,
		BoughtFrom:       rec.BoughtFrom,
		SellerName:       rec.SellerName,
		PurchasePrice:    rec.PurchasePrice,
		PurchaseDate:     formatDate(rec.PurchaseDate),
		LotNumber:        rec.LotNumber,
		SoldDate:         formatDate(rec.SoldDate),
		SoldPrice:        rec.SoldPrice,
		Takeaway:         rec.Takeaway,
		Sold:             rec.IsSold(),
		Profit:           rec.Profit(),
	}
}

func formatDate(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(domain.DateLayout)
	return &s
}

// ListCardsResponse is the full inventory view: every card, the selection
// list and the lot number a new card would get.
type ListCardsResponse struct {
	Cards         []CardResponse     `json:"cards"`
	Selections    []domain.Selection `json:"selections"`
	NextLotNumber int                `json:"nextLotNumber"`
	LoadedAt      time.Time          `json:"loadedAt"`
}

// NextLotResponse carries the next free lot number.
type NextLotResponse struct {
	NextLotNumber int `json:"nextLotNumber"`
}

// CreateCardResponse identifies the row a new card was written to.
type CreateCardResponse struct {
	Position  int `json:"position"`
	LotNumber int `json:"lotNumber"`
}
