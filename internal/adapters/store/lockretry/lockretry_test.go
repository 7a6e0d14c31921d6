package lockretry_test

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/SscSPs/card_inventory_app/internal/adapters/store/lockretry"
	"github.com/SscSPs/card_inventory_app/internal/apperrors"
	"github.com/SscSPs/card_inventory_app/internal/core/domain"
	portsrepo "github.com/SscSPs/card_inventory_app/internal/core/ports/repositories"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockRecordStore is a mock type for the RecordStore interface
type MockRecordStore struct {
	mock.Mock
}

func (m *MockRecordStore) Name() string { return "workbook" }

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

var locked = fmt.Errorf("%w: cards.xlsx is open in another application", apperrors.ErrStoreLocked)

func newStore(retries int) (*lockretry.Store, *MockRecordStore) {
	inner := &MockRecordStore{}
	return lockretry.New(inner, retries, time.Millisecond, nil), inner
}

func TestAppend_RetriesSameStoreUntilUnlocked(t *testing.T) {
	s, inner := newStore(3)
	row := []any{"Ann"}

	inner.On("Append", mock.Anything, row).Return(domain.PositionToken(0), locked).Twice()
	inner.On("Append", mock.Anything, row).Return(domain.PositionToken(2), nil).Once()

	pos, err := s.Append(context.Background(), row)
	require.NoError(t, err)
	assert.Equal(t, domain.PositionToken(2), pos)
	inner.AssertNumberOfCalls(t, "Append", 3)
}

func TestAppend_LockOutlastsRetries(t *testing.T) {
	s, inner := newStore(2)
	row := []any{"Ann"}

	inner.On("Append", mock.Anything, row).Return(domain.PositionToken(0), locked)

	_, err := s.Append(context.Background(), row)
	assert.ErrorIs(t, err, apperrors.ErrStoreLocked)
	assert.ErrorIs(t, err, apperrors.ErrStoreWrite)
	inner.AssertNumberOfCalls(t, "Append", 3)
}

func TestAppend_OtherErrorsAreNotRetried(t *testing.T) {
	s, inner := newStore(3)
	row := []any{"Ann"}
	failed := fmt.Errorf("%w: disk full", apperrors.ErrStoreWrite)

	inner.On("Append", mock.Anything, row).Return(domain.PositionToken(0), failed).Once()

	_, err := s.Append(context.Background(), row)
	assert.ErrorIs(t, err, apperrors.ErrStoreWrite)
	assert.NotErrorIs(t, err, apperrors.ErrStoreLocked)
	inner.AssertNumberOfCalls(t, "Append", 1)
}

func TestUpdateCells_RetriesSamePosition(t *testing.T) {
	s, inner := newStore(1)
	updates := []portsrepo.CellUpdate{{Column: 13, Value: "2025-01-10"}}

	inner.On("UpdateCells", mock.Anything, domain.PositionToken(4), updates).Return(locked).Once()
	inner.On("UpdateCells", mock.Anything, domain.PositionToken(4), updates).Return(nil).Once()

	require.NoError(t, s.UpdateCells(context.Background(), 4, updates))
	inner.AssertExpectations(t)
}

func TestWrites_StopWhenContextCancelled(t *testing.T) {
	inner := &MockRecordStore{}
	s := lockretry.New(inner, 5, time.Hour, nil)
	updates := []portsrepo.CellUpdate{{Column: 0, Value: "x"}}
	ctx, cancel := context.WithCancel(context.Background())

	inner.On("UpdateCells", mock.Anything, domain.PositionToken(2), updates).
		Run(func(mock.Arguments) { cancel() }).
		Return(locked).Once()

	err := s.UpdateCells(ctx, 2, updates)
	assert.ErrorIs(t, err, context.Canceled)
	inner.AssertNumberOfCalls(t, "UpdateCells", 1)
}

func TestReads_PassThrough(t *testing.T) {
	s, inner := newStore(3)
	inner.On("ReadAll", mock.Anything).Return([][]string{{"Ann"}}, []string{"Player Name"}, nil).Once()
	inner.On("Header", mock.Anything).Return([]string{"Player Name"}, nil).Once()

	rows, header, err := s.ReadAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, [][]string{{"Ann"}}, rows)
	assert.Equal(t, []string{"Player Name"}, header)

	header, err = s.Header(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"Player Name"}, header)
	assert.Equal(t, "workbook", s.Name())
}
