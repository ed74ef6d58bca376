package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestRowOrder_FreezesWhileEditing(t *testing.T) {
	now := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)
	saver := &SaverMock{}
	saver.On("SaveWeeklyAllocation", mock.Anything, resourceID, mock.Anything).Return(nil)

	s := New(resourceID, saver, snapshot(40), WithRowLockDebounce(2*time.Second))
	s.now = func() time.Time { return now }

	assert.Equal(t, []string{"b", "a"}, s.RowOrder([]string{"b", "a"}))
	assert.False(t, s.RowsLocked())

	_, err := s.AddPendingChange(change("a", "2025-W10", 30))
	require.NoError(t, err)

	assert.Equal(t, []string{"a", "b"}, s.RowOrder([]string{"a", "b"}))
	assert.True(t, s.RowsLocked())

	assert.Equal(t, []string{"a", "b"}, s.RowOrder([]string{"b", "a"}), "order stays frozen")
	assert.Equal(t, []string{"a", "c"}, s.RowOrder([]string{"c", "a"}), "removed rows drop, new rows append")

	s.SaveAll(context.Background())

	now = now.Add(time.Second)
	assert.Equal(t, []string{"a", "b"}, s.RowOrder([]string{"b", "a"}), "debounce still running")

	now = now.Add(time.Second)
	assert.Equal(t, []string{"b", "a"}, s.RowOrder([]string{"b", "a"}))
	assert.False(t, s.RowsLocked())
}

func TestRowOrder_NewEditCancelsRelease(t *testing.T) {
	now := time.Date(2025, time.March, 3, 9, 0, 0, 0, time.UTC)

	s := New(resourceID, &SaverMock{}, snapshot(40))
	s.now = func() time.Time { return now }

	_, err := s.AddPendingChange(change("a", "2025-W10", 4))
	require.NoError(t, err)
	s.RowOrder([]string{"a", "b"})

	s.Discard()
	_, err = s.AddPendingChange(change("b", "2025-W10", 4))
	require.NoError(t, err)

	now = now.Add(time.Minute)
	assert.Equal(t, []string{"a", "b"}, s.RowOrder([]string{"b", "a"}))
}

func TestBeginEnd(t *testing.T) {
	s := New(resourceID, &SaverMock{}, snapshot(40))

	s.Begin([]string{"x", "y"})
	assert.Equal(t, []string{"x", "y"}, s.RowOrder([]string{"y", "x"}))

	s.End()
	assert.Equal(t, []string{"y", "x"}, s.RowOrder([]string{"y", "x"}))
}
