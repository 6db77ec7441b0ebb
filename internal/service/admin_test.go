package service

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"littletreat/internal/model"
)

func testBoard(t *testing.T, records ...model.OrderRecord) (*AdminBoard, *fakeLog, *syncQueue) {
	t.Helper()
	log := &fakeLog{records: records}
	q := &syncQueue{}
	b := NewAdminBoard(log, q, time.UTC)
	b.now = func() time.Time { return time.Date(2026, 10, 16, 15, 0, 0, 0, time.UTC) }
	return b, log, q
}

func boardRecords() []model.OrderRecord {
	return []model.OrderRecord{
		{OrderID: "#LT1", Status: model.StatusPending, Total: "₹60", Timestamp: "2026-10-16T10:00:00.000Z"},
		{OrderID: "#LT2", Status: model.StatusDispatched, Total: "₹50", Timestamp: "2026-10-15T10:00:00.000Z"},
		{OrderID: "#LT3", Status: "Cancelled", Total: "₹20", Timestamp: "2026-10-16T11:00:00.000Z"},
	}
}

func TestBoardRefresh(t *testing.T) {
	b, _, _ := testBoard(t, boardRecords()...)
	assert.False(t, b.Loaded())

	n, err := b.Refresh(t.Context())
	require.NoError(t, err)
	assert.Equal(t, 3, n)
	assert.True(t, b.Loaded())

	v := b.View(Query{Status: model.StatusAll})
	assert.Len(t, v.Orders, 3)
	assert.Equal(t, 3, v.Summary.TotalOrders)
	assert.Equal(t, 2, v.Summary.TodayOrders)
	assert.Equal(t, "80", v.Summary.TodayRevenue.String())
	assert.Equal(t, b.now(), v.LoadedAt)
}

func TestBoardRefreshFailureKeepsSnapshot(t *testing.T) {
	b, log, _ := testBoard(t, boardRecords()...)
	_, err := b.Refresh(t.Context())
	require.NoError(t, err)

	log.fetchErr = errors.New("sheet unavailable")
	_, err = b.Refresh(t.Context())
	require.Error(t, err)

	assert.Len(t, b.View(Query{Status: model.StatusAll}).Orders, 3)
}

func TestBoardCycle(t *testing.T) {
	b, log, q := testBoard(t, boardRecords()...)
	_, err := b.Refresh(t.Context())
	require.NoError(t, err)

	next, err := b.Cycle("#LT1")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDispatched, next)

	next, err = b.Cycle("#LT2")
	require.NoError(t, err)
	assert.Equal(t, model.StatusDelivered, next)

	next, err = b.Cycle("#LT3")
	require.NoError(t, err)
	assert.Equal(t, model.StatusPending, next)

	assert.Equal(t, map[string]model.Status{
		"#LT1": model.StatusDispatched,
		"#LT2": model.StatusDelivered,
		"#LT3": model.StatusPending,
	}, log.updates)
	assert.Equal(t, []string{"update status #LT1", "update status #LT2", "update status #LT3"}, q.names)

	delivered := b.View(Query{Status: string(model.StatusDelivered)})
	require.Len(t, delivered.Orders, 1)
	assert.Equal(t, "#LT2", delivered.Orders[0].OrderID)

	_, err = b.Cycle("#LT404")
	assert.ErrorIs(t, err, ErrOrderNotFound)
}

func TestBoardUpdateFailureKeepsLocalStatus(t *testing.T) {
	b, log, q := testBoard(t, boardRecords()...)
	_, err := b.Refresh(t.Context())
	require.NoError(t, err)

	log.updateErr = ErrReadOnly
	require.NoError(t, b.SetStatus("#LT1", model.StatusDelivered))

	require.Len(t, q.errors, 1)
	assert.ErrorIs(t, q.errors[0], ErrReadOnly)
	got := b.View(Query{Status: string(model.StatusDelivered)})
	require.Len(t, got.Orders, 1)
	assert.Equal(t, "#LT1", got.Orders[0].OrderID)
}

func TestBoardSetStatus(t *testing.T) {
	b, log, _ := testBoard(t, boardRecords()...)
	_, err := b.Refresh(t.Context())
	require.NoError(t, err)

	assert.ErrorIs(t, b.SetStatus("#LT1", "Lost"), ErrUnknownStatus)
	assert.ErrorIs(t, b.SetStatus("#LT404", model.StatusDelivered), ErrOrderNotFound)
	assert.Empty(t, log.updates)

	require.NoError(t, b.SetStatus("#LT2", model.StatusPending))
	assert.Equal(t, model.StatusPending, log.updates["#LT2"])
}
