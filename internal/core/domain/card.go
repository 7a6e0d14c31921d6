package domain

import (
	"fmt"
	"maps"
	"slices"
	"time"

	"github.com/shopspring/decimal"
)

// Field names as they appear in the header row of the backing store.
const (
	FieldPlayerName       = "Player Name"
	FieldSetName          = "Set Name"
	FieldNumberedParallel = "Numbered/Parallel"
	FieldAuto             = "Auto"
	FieldPatch            = "Patch"
	FieldYear             = "Year"
	FieldGraded           = "Graded"
	FieldBoughtFrom       = "Bought From"
	FieldSellerName       = "Seller Name"
	FieldPurchasePrice    = "Purchase Price"
	FieldDatePurchased    = "Date Purchased"
	FieldListed           = "Listed"
	FieldLotNumber        = "Lot Number"
	FieldSoldDate         = "Sold Date"
	FieldSoldPrice        = "Sold Price"
	FieldTakeaway         = "Takeaway"
)

// EntryFields are the columns written when a new card is added.
var EntryFields = []string{
	FieldPlayerName,
	FieldSetName,
	FieldNumberedParallel,
	FieldAuto,
	FieldPatch,
	FieldYear,
	FieldGraded,
	FieldBoughtFrom,
	FieldSellerName,
	FieldPurchasePrice,
	FieldDatePurchased,
	FieldListed,
	FieldLotNumber,
}

// SaleFields are the disposition columns, empty until a sale is recorded.
var SaleFields = []string{FieldSoldDate, FieldSoldPrice, FieldTakeaway}

// DefaultHeader is the header written when a new store is bootstrapped.
var DefaultHeader = append(slices.Clone(EntryFields), SaleFields...)

// DefaultNumberedParallel is stored when no numbered/parallel designation is given.
const DefaultNumberedParallel = "None"

// DateLayout is the ISO-8601 calendar date layout used for date cells.
const DateLayout = "2006-01-02"

// YesNo is the two-valued flag enumeration stored in flag columns.
type YesNo string

const (
	Yes YesNo = "Yes"
	No  YesNo = "No"
)

// YesNoFrom converts a bool into its stored form.
func YesNoFrom(b bool) YesNo {
	if b {
		return Yes
	}
	return No
}

// Bool reports whether the flag is set.
func (y YesNo) Bool() bool { return y == Yes }

// PositionToken is an opaque handle on a record's current row in the backing
// store. For spreadsheet backends it is the 1-based sheet row number, so the
// first record after the header is at FirstPosition.
//
// A token is only meaningful for the snapshot it was read from: rows inserted
// or reordered by another actor between a load and an update shift it.
type PositionToken int

// FirstPosition is the token of the first record following the header row.
const FirstPosition PositionToken = 2

// Valid reports whether the token can address a record row.
func (p PositionToken) Valid() bool { return p >= FirstPosition }

func (p PositionToken) String() string { return fmt.Sprintf("Row %d", int(p)) }

// CardRecord is one inventory item decoded from a store row.
type CardRecord struct {
	Position PositionToken

	PlayerName       string
	SetName          string
	NumberedParallel string
	Auto             YesNo
	Patch            YesNo
	Graded           YesNo
	Listed           YesNo

	Year          int
	PurchasePrice decimal.Decimal
	PurchaseDate  *time.Time
	BoughtFrom    string
	SellerName    string
	LotNumber     string

	// Disposition, absent until a sale occurs.
	SoldDate  *time.Time
	SoldPrice *decimal.Decimal
	Takeaway  *decimal.Decimal

	// Cells holds the raw cell text keyed by header field name.
	Cells map[string]string
}

// IsSold reports whether the record carries a sold date.
func (r CardRecord) IsSold() bool { return r.SoldDate != nil }

// SoldPriceOrZero returns the sold price, treating an absent value as zero.
func (r CardRecord) SoldPriceOrZero() decimal.Decimal {
	if r.SoldPrice == nil {
		return decimal.Zero
	}
	return *r.SoldPrice
}

// TakeawayOrZero returns the takeaway, treating an absent value as zero.
func (r CardRecord) TakeawayOrZero() decimal.Decimal {
	if r.Takeaway == nil {
		return decimal.Zero
	}
	return *r.Takeaway
}

// Profit is takeaway minus purchase price for a sold record and zero otherwise.
func (r CardRecord) Profit() decimal.Decimal {
	if !r.IsSold() {
		return decimal.Zero
	}
	return r.TakeawayOrZero().Sub(r.PurchasePrice)
}

// Clone returns a copy sharing no pointers or maps with r.
func (r CardRecord) Clone() CardRecord {
	r.PurchaseDate = clonePtr(r.PurchaseDate)
	r.SoldDate = clonePtr(r.SoldDate)
	r.SoldPrice = clonePtr(r.SoldPrice)
	r.Takeaway = clonePtr(r.Takeaway)
	r.Cells = maps.Clone(r.Cells)
	return r
}

func clonePtr[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func cloneRecords(records []CardRecord) []CardRecord {
	if records == nil {
		return nil
	}
	out := make([]CardRecord, len(records))
	for i, r := range records {
		out[i] = r.Clone()
	}
	return out
}

// StoreSnapshot is one immutable read of the full record set.
type StoreSnapshot struct {
	records  []CardRecord
	header   []string
	loadedAt time.Time
}

// NewStoreSnapshot builds a snapshot from deep copies of records and header.
func NewStoreSnapshot(records []CardRecord, header []string, loadedAt time.Time) StoreSnapshot {
	return StoreSnapshot{
		records:  cloneRecords(records),
		header:   slices.Clone(header),
		loadedAt: loadedAt,
	}
}

// Records returns copies of the records in store order.
func (s StoreSnapshot) Records() []CardRecord { return cloneRecords(s.records) }

// Header returns the field names of the header row in column order.
func (s StoreSnapshot) Header() []string { return slices.Clone(s.header) }

// Len returns the number of records.
func (s StoreSnapshot) Len() int { return len(s.records) }

// LoadedAt returns when the snapshot was read.
func (s StoreSnapshot) LoadedAt() time.Time { return s.loadedAt }

// Record returns the record at the given position.
func (s StoreSnapshot) Record(pos PositionToken) (CardRecord, bool) {
	for _, r := range s.records {
		if r.Position == pos {
			return r.Clone(), true
		}
	}
	return CardRecord{}, false
}

// CardInput carries the form fields for a new inventory item.
type CardInput struct {
	PlayerName       string `validate:"required"`
	SetName          string
	NumberedParallel string
	Auto             bool
	Patch            bool
	Graded           bool
	Listed           bool
	Year             int `validate:"required,gte=1950"`
	BoughtFrom       string
	SellerName       string
	PurchasePrice    decimal.Decimal
	// PurchaseDate defaults to today when zero.
	PurchaseDate time.Time
	LotNumber    int `validate:"gte=0"`
}

// SaleInput carries the disposition of a sold item.
type SaleInput struct {
	SoldDate  time.Time `validate:"required"`
	SoldPrice decimal.Decimal
	Takeaway  decimal.Decimal
}

// Selection pairs a display label with the position it addresses.
type Selection struct {
	Label    string        `json:"label"`
	Position PositionToken `json:"position"`
}
