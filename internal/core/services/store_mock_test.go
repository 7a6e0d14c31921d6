package services_test

import (
	"context"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/card_inventory_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/mock"
)

// MockRecordStore is a mock type for the RecordStore interface
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Name() string { return "mock" }

func (m *MockRecordStore) ReadAll(ctx context.Context) ([][]string, []string, error) {
	args := m.Called(ctx)
	var rows [][]string
	if r := args.Get(0); r != nil {
		rows = r.([][]string)
	}
	var header []string
	if h := args.Get(1); h != nil {
		header = h.([]string)
	}
	return rows, header, args.Error(2)
}

func (m *MockRecordStore) Header(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockRecordStore) Append(ctx context.Context, row []any) (domain.PositionToken, error) {
	args := m.Called(ctx, row)
	return args.Get(0).(domain.PositionToken), args.Error(1)
}

func (m *MockRecordStore) UpdateCells(ctx context.Context, pos domain.PositionToken, updates []portsrepo.CellUpdate) error {
	args := m.Called(ctx, pos, updates)
	return args.Error(0)
}

var _ portsrepo.RecordStore = (*MockRecordStore)(nil)

// fixedNow is the clock used by service tests.
var fixedNow = time.Date(2025, time.March, 1, 15, 4, 5, 0, time.UTC)

func clock() time.Time { return fixedNow }

// cardRow lays out cells by field name in domain.DefaultHeader order.
func cardRow(cells map[string]string) []string {
	row := make([]string, len(domain.DefaultHeader))
	for i, field := range domain.DefaultHeader {
		row[i] = cells[field]
	}
	return row
}
