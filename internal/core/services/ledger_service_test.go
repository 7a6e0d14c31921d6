package services_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/adapters/store/memstore"
	"github.com/SscSPs/card_inventory_app/internal/apperrors"
	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	portssvc "github.com/SscSPs/card_inventory_app/internal/core/ports/services"
	"github.com/SscSPs/card_inventory_app/internal/core/services"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Test Suite Setup ---

type LedgerServiceTestSuite struct {
	suite.Suite
	ctx     context.Context
	store   *memstore.Store
	service portssvc.LedgerSvcFacade
}

func (suite *LedgerServiceTestSuite) SetupTest() {
	suite.ctx = context.Background()
	suite.store = memstore.New(nil)
	suite.service = services.NewLedgerService(suite.store, services.WithClock(clock))
}

func (suite *LedgerServiceTestSuite) withRows(rows ...[]string) {
	suite.store = memstore.New(nil, rows...)
	suite.service = services.NewLedgerService(suite.store, services.WithClock(clock))
}

func (suite *LedgerServiceTestSuite) load() domain.StoreSnapshot {
	snapshot, err := suite.service.Load(suite.ctx)
	suite.Require().NoError(err)
	return snapshot
}

func validInput() domain.CardInput {
	return domain.CardInput{
		PlayerName:    "Ann Example",
		SetName:       "Topps Chrome",
		Year:          2021,
		Auto:          true,
		BoughtFrom:    "eBay",
		SellerName:    "cardshop",
		PurchasePrice: decimal.RequireFromString("12.5"),
		LotNumber:     4,
	}
}

// --- Load ---

func (suite *LedgerServiceTestSuite) TestLoad_DecodesRowsAndKeepsPositions() {
	suite.withRows(
		cardRow(map[string]string{domain.FieldPlayerName: "Ann", domain.FieldYear: "2021", domain.FieldPurchasePrice: "$1,234.50", domain.FieldDatePurchased: "2024-11-05"}),
		cardRow(nil),
		cardRow(map[string]string{domain.FieldPlayerName: "Bob", domain.FieldPurchasePrice: "twelve", domain.FieldSoldDate: "2025-01-10", domain.FieldTakeaway: "$75"}),
	)

	snapshot := suite.load()

	suite.Equal(2, snapshot.Len())
	suite.Equal(domain.DefaultHeader, snapshot.Header())
	suite.Equal(fixedNow, snapshot.LoadedAt())

	records := snapshot.Records()
	suite.Equal(domain.PositionToken(2), records[0].Position)
	suite.Equal("Ann", records[0].PlayerName)
	suite.Equal("1234.5", records[0].PurchasePrice.String())
	suite.Equal(2021, records[0].Year)

	// The blank row still occupies row 3.
	suite.Equal(domain.PositionToken(4), records[1].Position)
	suite.True(records[1].PurchasePrice.IsZero())
	suite.True(records[1].IsSold())
	suite.Equal("75", records[1].TakeawayOrZero().String())
}

func (suite *LedgerServiceTestSuite) TestLoad_EmptyStore() {
	snapshot := suite.load()
	suite.Equal(0, snapshot.Len())
}

func (suite *LedgerServiceTestSuite) TestLoad_StoreUnavailable() {
	mockStore := new(MockRecordStore)
	svc := services.NewLedgerService(mockStore)
	mockStore.On("ReadAll", suite.ctx).Return(nil, nil, fmt.Errorf("%w: no such file", apperrors.ErrStoreUnavailable)).Once()

	_, err := svc.Load(suite.ctx)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrStoreUnavailable)
	mockStore.AssertExpectations(suite.T())
}

// --- NextLotNumber ---

func (suite *LedgerServiceTestSuite) TestNextLotNumber() {
	suite.withRows(
		cardRow(map[string]string{domain.FieldPlayerName: "A", domain.FieldLotNumber: "3"}),
		cardRow(map[string]string{domain.FieldPlayerName: "B", domain.FieldLotNumber: "1"}),
		cardRow(map[string]string{domain.FieldPlayerName: "C", domain.FieldLotNumber: "7"}),
		cardRow(map[string]string{domain.FieldPlayerName: "D", domain.FieldLotNumber: "bad"}),
		cardRow(map[string]string{domain.FieldPlayerName: "E"}),
	)

	suite.Equal(8, suite.service.NextLotNumber(suite.load()))
}

func (suite *LedgerServiceTestSuite) TestNextLotNumber_NoParseableLots() {
	suite.Equal(1, suite.service.NextLotNumber(suite.load()))

	suite.withRows(cardRow(map[string]string{domain.FieldPlayerName: "A", domain.FieldLotNumber: "n/a"}))
	suite.Equal(1, suite.service.NextLotNumber(suite.load()))
}

// --- Labels and selections ---

func (suite *LedgerServiceTestSuite) TestBuildDisplayLabel() {
	rec := domain.CardRecord{
		PlayerName:       "Ann",
		Year:             2021,
		SetName:          "Topps",
		NumberedParallel: "/99",
		Auto:             domain.Yes,
		Patch:            domain.No,
		Graded:           domain.Yes,
		LotNumber:        "7",
	}
	suite.Equal("Ann - 2021 - Topps - (/99) - (Auto) - (Graded) - [Lot: 7] (Row 5)", suite.service.BuildDisplayLabel(rec, 5))

	rec = domain.CardRecord{PlayerName: "Bob", SetName: "Prizm", NumberedParallel: domain.DefaultNumberedParallel}
	suite.Equal("Bob - Prizm (Row 3)", suite.service.BuildDisplayLabel(rec, 3))

	suite.Equal("(Row 2)", suite.service.BuildDisplayLabel(domain.CardRecord{}, 2))
}

func (suite *LedgerServiceTestSuite) TestBuildDisplayLabel_DistinctPositionsNeverCollide() {
	same := map[string]string{domain.FieldPlayerName: "Ann", domain.FieldYear: "2021", domain.FieldLotNumber: "1"}
	suite.withRows(cardRow(same), cardRow(same), cardRow(same))

	selections := suite.service.Selections(suite.load())

	suite.Len(selections, 3)
	seen := make(map[string]bool)
	for _, sel := range selections {
		suite.False(seen[sel.Label], "duplicate label %q", sel.Label)
		seen[sel.Label] = true
	}
}

func (suite *LedgerServiceTestSuite) TestResolveSelection() {
	suite.withRows(
		cardRow(map[string]string{domain.FieldPlayerName: "Ann"}),
		cardRow(map[string]string{domain.FieldPlayerName: "Bob"}),
	)
	snapshot := suite.load()
	selections := suite.service.Selections(snapshot)

	pos, err := suite.service.ResolveSelection(snapshot, selections[1].Label)
	suite.Require().NoError(err)
	suite.Equal(domain.PositionToken(3), pos)

	_, err = suite.service.ResolveSelection(snapshot, "Nobody (Row 9)")
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func (suite *LedgerServiceTestSuite) TestRecordAt() {
	suite.withRows(cardRow(map[string]string{domain.FieldPlayerName: "Ann"}))
	snapshot := suite.load()

	rec, err := suite.service.RecordAt(snapshot, 2)
	suite.Require().NoError(err)
	suite.Equal("Ann", rec.PlayerName)

	_, err = suite.service.RecordAt(snapshot, 3)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

// --- AddRecord ---

func (suite *LedgerServiceTestSuite) TestAddRecord_WritesInHeaderOrder() {
	header := append([]string{"Notes"}, domain.DefaultHeader...)
	suite.store = memstore.New(header)
	suite.service = services.NewLedgerService(suite.store, services.WithClock(clock))

	pos, err := suite.service.AddRecord(suite.ctx, validInput())

	suite.Require().NoError(err)
	suite.Equal(domain.FirstPosition, pos)

	rows, _, err := suite.store.ReadAll(suite.ctx)
	suite.Require().NoError(err)
	suite.Require().Len(rows, 1)
	row := rows[0]
	suite.Equal("", row[0])
	suite.Equal("Ann Example", row[1])
	suite.Equal("Topps Chrome", row[2])
	suite.Equal(domain.DefaultNumberedParallel, row[3])
	suite.Equal("Yes", row[4])
	suite.Equal("No", row[5])
	suite.Equal("2021", row[6])
	suite.Equal("$12.50", row[10])
	suite.Equal("2025-03-01", row[11], "purchase date defaults to today")
	suite.Equal("4", row[13])
	suite.Equal("", row[14], "sold date starts empty")

	snapshot := suite.load()
	rec, err := suite.service.RecordAt(snapshot, pos)
	suite.Require().NoError(err)
	suite.Equal("12.5", rec.PurchasePrice.String())
	suite.False(rec.IsSold())
}

func (suite *LedgerServiceTestSuite) TestAddRecord_IsNotIdempotent() {
	first, err := suite.service.AddRecord(suite.ctx, validInput())
	suite.Require().NoError(err)
	second, err := suite.service.AddRecord(suite.ctx, validInput())
	suite.Require().NoError(err)

	suite.NotEqual(first, second)
	suite.Equal(2, suite.store.Len())
}

func (suite *LedgerServiceTestSuite) TestAddRecord_ValidationErrors() {
	cases := map[string]func(in *domain.CardInput){
		"missing player": func(in *domain.CardInput) { in.PlayerName = "" },
		"blank player":   func(in *domain.CardInput) { in.PlayerName = "   " },
		"missing year":   func(in *domain.CardInput) { in.Year = 0 },
		"year too early": func(in *domain.CardInput) { in.Year = 1949 },
		"year in future": func(in *domain.CardInput) { in.Year = fixedNow.Year() + 1 },
		"negative price": func(in *domain.CardInput) { in.PurchasePrice = decimal.NewFromInt(-1) },
		"negative lot":   func(in *domain.CardInput) { in.LotNumber = -2 },
	}

	for name, mutate := range cases {
		suite.Run(name, func() {
			in := validInput()
			mutate(&in)

			_, err := suite.service.AddRecord(suite.ctx, in)

			suite.ErrorIs(err, apperrors.ErrValidation)
			suite.Equal(0, suite.store.Len())
		})
	}
}

func (suite *LedgerServiceTestSuite) TestAddRecord_HeaderMissingField() {
	header := []string{domain.FieldPlayerName, domain.FieldYear}
	suite.store = memstore.New(header)
	suite.service = services.NewLedgerService(suite.store, services.WithClock(clock))

	_, err := suite.service.AddRecord(suite.ctx, validInput())

	suite.ErrorIs(err, apperrors.ErrSchema)
	suite.Equal(0, suite.store.Len())
}

func (suite *LedgerServiceTestSuite) TestAddRecord_WriteErrorIsNotRetried() {
	mockStore := new(MockRecordStore)
	svc := services.NewLedgerService(mockStore, services.WithClock(clock))
	mockStore.On("Header", suite.ctx).Return(domain.DefaultHeader, nil).Once()
	mockStore.On("Append", suite.ctx, mock.Anything).Return(domain.PositionToken(0), fmt.Errorf("%w: quota", apperrors.ErrStoreWrite)).Once()

	_, err := svc.AddRecord(suite.ctx, validInput())

	suite.ErrorIs(err, apperrors.ErrStoreWrite)
	mockStore.AssertNumberOfCalls(suite.T(), "Append", 1)
	mockStore.AssertExpectations(suite.T())
}

// --- UpdateRecord / RecordSale ---

func (suite *LedgerServiceTestSuite) TestUpdateRecord_IsIdempotent() {
	pos, err := suite.service.AddRecord(suite.ctx, validInput())
	suite.Require().NoError(err)
	updates := map[string]any{domain.FieldListed: "Yes", domain.FieldSellerName: "pc-seller"}

	suite.Require().NoError(suite.service.UpdateRecord(suite.ctx, pos, updates))
	once, _, err := suite.store.ReadAll(suite.ctx)
	suite.Require().NoError(err)

	suite.Require().NoError(suite.service.UpdateRecord(suite.ctx, pos, updates))
	twice, _, err := suite.store.ReadAll(suite.ctx)
	suite.Require().NoError(err)

	suite.Equal(once, twice)
	rec, err := suite.service.RecordAt(suite.load(), pos)
	suite.Require().NoError(err)
	suite.Equal(domain.Yes, rec.Listed)
	suite.Equal("pc-seller", rec.SellerName)
}

func (suite *LedgerServiceTestSuite) TestUpdateRecord_CanonicalizesMoneyAndDates() {
	pos, err := suite.service.AddRecord(suite.ctx, validInput())
	suite.Require().NoError(err)

	err = suite.service.UpdateRecord(suite.ctx, pos, map[string]any{
		domain.FieldSoldDate:  "2025-01-10T00:00:00",
		domain.FieldSoldPrice: 80.0,
		domain.FieldTakeaway:  "trade",
	})
	suite.Require().NoError(err)

	rec, err := suite.service.RecordAt(suite.load(), pos)
	suite.Require().NoError(err)
	suite.Equal("2025-01-10", rec.Cells[domain.FieldSoldDate])
	suite.Equal("$80.00", rec.Cells[domain.FieldSoldPrice])
	suite.Equal("trade", rec.Cells[domain.FieldTakeaway], "unreadable amounts are written as given")
}

func (suite *LedgerServiceTestSuite) TestUpdateRecord_UnknownFieldWritesNothing() {
	pos, err := suite.service.AddRecord(suite.ctx, validInput())
	suite.Require().NoError(err)

	err = suite.service.UpdateRecord(suite.ctx, pos, map[string]any{domain.FieldListed: "Yes", "Grade": "PSA 10"})

	suite.ErrorIs(err, apperrors.ErrSchema)
	suite.Contains(err.Error(), "Grade")
	rec, err := suite.service.RecordAt(suite.load(), pos)
	suite.Require().NoError(err)
	suite.Equal(domain.No, rec.Listed)
}

func (suite *LedgerServiceTestSuite) TestUpdateRecord_RejectsBadArguments() {
	err := suite.service.UpdateRecord(suite.ctx, 1, map[string]any{domain.FieldListed: "Yes"})
	suite.ErrorIs(err, apperrors.ErrValidation)

	err = suite.service.UpdateRecord(suite.ctx, 2, map[string]any{})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *LedgerServiceTestSuite) TestUpdateRecord_WriteErrorPropagates() {
	mockStore := new(MockRecordStore)
	svc := services.NewLedgerService(mockStore)
	mockStore.On("Header", suite.ctx).Return(domain.DefaultHeader, nil).Once()
	mockStore.On("UpdateCells", suite.ctx, domain.PositionToken(3), mock.Anything).Return(apperrors.ErrStoreLocked).Once()

	err := svc.UpdateRecord(suite.ctx, 3, map[string]any{domain.FieldListed: "Yes"})

	suite.ErrorIs(err, apperrors.ErrStoreLocked)
	suite.ErrorIs(err, apperrors.ErrStoreWrite)
	mockStore.AssertExpectations(suite.T())
}

func (suite *LedgerServiceTestSuite) TestRecordSale() {
	pos, err := suite.service.AddRecord(suite.ctx, validInput())
	suite.Require().NoError(err)

	err = suite.service.RecordSale(suite.ctx, pos, domain.SaleInput{
		SoldDate:  time.Date(2025, time.January, 10, 0, 0, 0, 0, time.UTC),
		SoldPrice: decimal.NewFromInt(80),
		Takeaway:  decimal.NewFromInt(75),
	})
	suite.Require().NoError(err)

	rec, err := suite.service.RecordAt(suite.load(), pos)
	suite.Require().NoError(err)
	suite.True(rec.IsSold())
	suite.Equal("2025-01-10", rec.SoldDate.Format(domain.DateLayout))
	suite.Equal("80", rec.SoldPriceOrZero().String())
	suite.Equal("62.5", rec.Profit().String())
}

func (suite *LedgerServiceTestSuite) TestRecordSale_Validation() {
	err := suite.service.RecordSale(suite.ctx, 2, domain.SaleInput{SoldPrice: decimal.NewFromInt(1)})
	suite.ErrorIs(err, apperrors.ErrValidation)

	err = suite.service.RecordSale(suite.ctx, 2, domain.SaleInput{SoldDate: fixedNow, Takeaway: decimal.NewFromInt(-1)})
	suite.ErrorIs(err, apperrors.ErrValidation)
}

// --- Run Test Suite ---

func TestLedgerServiceTestSuite(t *testing.T) {
	suite.Run(t, new(LedgerServiceTestSuite))
}

func TestNewLedgerService_CurrencyCode(t *testing.T) {
	store := memstore.New(nil)
	svc := services.NewLedgerService(store, services.WithCurrencyCode("EUR"), services.WithClock(clock))

	_, err := svc.AddRecord(context.Background(), validInput())
	assert.NoError(t, err)

	rows, _, err := store.ReadAll(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, "€12.50", rows[0][9])
}
