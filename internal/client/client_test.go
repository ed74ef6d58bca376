package client

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/YusovID/capacity-planner-service/internal/apperrors"
	"github.com/YusovID/capacity-planner-service/internal/cache"
	"github.com/YusovID/capacity-planner-service/internal/domain"
	"github.com/YusovID/capacity-planner-service/internal/service"
	"github.com/YusovID/capacity-planner-service/internal/session"
	"github.com/YusovID/capacity-planner-service/pkg/api"
	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// fakeAPI is a minimal stand-in for the planner API.
type fakeAPI struct {
	mu          sync.Mutex
	saved       []api.WeeklyAllocationRequest
	failWeek    string
	allocHits   atomic.Int32
	lastQuery   string
	allocations []domain.ResourceAllocation
}

func (f *fakeAPI) handler() http.Handler {
	mux := http.NewServeMux()

	mux.HandleFunc("/resources/r1/allocations", func(w http.ResponseWriter, r *http.Request) {
		f.allocHits.Add(1)
		writeJSON(w, http.StatusOK, map[string]any{"allocations": f.allocations})
	})

	mux.HandleFunc("/resources/r1/capacity", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, service.ResourceCapacity{ResourceID: "r1", EffectiveCapacity: 32})
	})

	mux.HandleFunc("/resources/r1/weekly-allocations", func(w http.ResponseWriter, r *http.Request) {
		var body api.WeeklyAllocationRequest
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			writeJSON(w, http.StatusBadRequest, map[string]any{"error": map[string]string{"code": "INVALID_REQUEST"}})
			return
		}

		if body.ProjectId == "p-inactive" {
			writeJSON(w, http.StatusConflict, map[string]any{"error": map[string]string{
				"code": "ALLOCATION_NOT_ACTIVE", "message": "no active allocation for resource and project",
			}})
			return
		}

		f.mu.Lock()
		failing := body.WeekKey == f.failWeek
		f.mu.Unlock()

		if failing {
			http.Error(w, "pq: deadlock detected", http.StatusInternalServerError)
			return
		}

		f.mu.Lock()
		f.saved = append(f.saved, body)
		f.mu.Unlock()

		writeJSON(w, http.StatusOK, map[string]any{"weekKey": body.WeekKey, "hours": body.Hours})
	})

	mux.HandleFunc("/alerts", func(w http.ResponseWriter, r *http.Request) {
		f.mu.Lock()
		f.lastQuery = r.URL.RawQuery
		f.mu.Unlock()

		writeJSON(w, http.StatusOK, service.AlertReport{Period: r.URL.Query().Get("label"), Weeks: 4})
	})

	mux.HandleFunc("/resources/ghost/allocations", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, map[string]any{"error": map[string]string{"code": "NOT_FOUND", "message": "resource not found"}})
	})

	return mux
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func newTestClient(t *testing.T, fake *fakeAPI) *Client {
	t.Helper()

	srv := httptest.NewServer(fake.handler())
	t.Cleanup(srv.Close)

	c, err := New(srv.URL, WithHTTPClient(srv.Client()), WithLogger(discardLogger()))
	require.NoError(t, err)

	return c
}

func TestNew_InvalidBaseURL(t *testing.T) {
	for _, raw := range []string{"", "localhost:8080", "://nope"} {
		_, err := New(raw)
		assert.Error(t, err, raw)
	}
}

func TestClient_SaveWeeklyAllocation(t *testing.T) {
	ctx := context.Background()
	fake := &fakeAPI{}
	c := newTestClient(t, fake)

	testCases := []struct {
		name        string
		change      domain.PendingChange
		expectedErr error
	}{
		{
			name:   "Success",
			change: domain.PendingChange{ProjectID: "p1", WeekKey: "2025-W10", Hours: 35},
		},
		{
			name:        "Failure: allocation not active",
			change:      domain.PendingChange{ProjectID: "p-inactive", WeekKey: "2025-W10", Hours: 4},
			expectedErr: apperrors.ErrAllocationNotActive,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := c.SaveWeeklyAllocation(ctx, "r1", tc.change)

			if tc.expectedErr != nil {
				assert.ErrorIs(t, err, tc.expectedErr)
				return
			}

			require.NoError(t, err)
		})
	}

	fake.mu.Lock()
	defer fake.mu.Unlock()

	require.Len(t, fake.saved, 1)
	require.NotNil(t, fake.saved[0].Hours)
	assert.Equal(t, "p1", fake.saved[0].ProjectId)
	assert.Equal(t, "2025-W10", fake.saved[0].WeekKey)
	assert.Equal(t, 35.0, *fake.saved[0].Hours)
}

func TestClient_AllocationsNotFound(t *testing.T) {
	c := newTestClient(t, &fakeAPI{})

	_, err := c.Allocations(context.Background(), "ghost")

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "NOT_FOUND", apiErr.Code)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestClient_Alerts_EncodesPeriod(t *testing.T) {
	fake := &fakeAPI{}
	c := newTestClient(t, fake)

	report, err := c.Alerts(context.Background(), service.Period{
		Start:  time.Date(2025, time.March, 3, 0, 0, 0, 0, time.UTC),
		End:    time.Date(2025, time.March, 30, 0, 0, 0, 0, time.UTC),
		Label:  "March",
		Filter: "month",
	})
	require.NoError(t, err)

	assert.Equal(t, "March", report.Period)

	fake.mu.Lock()
	defer fake.mu.Unlock()
	assert.Equal(t, "end=2025-03-30&label=March&period=month&start=2025-03-03", fake.lastQuery)
}

func TestCachedReader_ReadThroughAndInvalidate(t *testing.T) {
	ctx := context.Background()
	fake := &fakeAPI{allocations: []domain.ResourceAllocation{
		{ID: "a1", ResourceID: "r1", ProjectID: "p1", Status: domain.AllocationStatusActive,
			WeeklyAllocations: domain.WeeklyHours{"2025-W10": 30}},
	}}
	c := newTestClient(t, fake)
	reader := NewCachedReader(c, cache.NewMemory(0), discardLogger())

	first, err := reader.Allocations(ctx, "r1")
	require.NoError(t, err)
	require.Len(t, first, 1)
	assert.Equal(t, 30.0, first[0].WeeklyAllocations.Get("2025-W10"))

	_, err = reader.Allocations(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, int32(1), fake.allocHits.Load())

	require.NoError(t, reader.Invalidate(ctx, cache.AllocationsKey("r1")))

	_, err = reader.Allocations(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, int32(2), fake.allocHits.Load())
}

func TestSessionThroughClient_PartialFailure(t *testing.T) {
	ctx := context.Background()
	fake := &fakeAPI{
		failWeek: "2025-W11",
		allocations: []domain.ResourceAllocation{
			{ID: "a1", ResourceID: "r1", ProjectID: "p1", Status: domain.AllocationStatusActive,
				WeeklyAllocations: domain.WeeklyHours{"2025-W10": 30}},
		},
	}
	c := newTestClient(t, fake)
	reader := NewCachedReader(c, cache.NewMemory(0), discardLogger())

	snap, err := reader.Snapshot(ctx, "r1", 2025)
	require.NoError(t, err)
	assert.Equal(t, 32.0, snap.EffectiveCapacity)

	_, err = reader.Allocations(ctx, "r1")
	require.NoError(t, err)

	_, err = reader.Allocations(ctx, "r1")
	require.NoError(t, err)
	require.Equal(t, int32(2), fake.allocHits.Load())

	var refetched atomic.Int32

	s := session.New("r1", c, snap,
		session.WithInvalidator(reader),
		session.WithLogger(discardLogger()),
		session.WithOnAllSaved(func() { refetched.Add(1) }),
	)

	_, err = s.AddPendingChange(domain.PendingChange{ProjectID: "p1", WeekKey: "2025-W10", Hours: 20})
	require.NoError(t, err)
	_, err = s.AddPendingChange(domain.PendingChange{ProjectID: "p1", WeekKey: "2025-W11", Hours: 8})
	require.NoError(t, err)

	res := s.SaveAll(ctx)

	require.ErrorIs(t, res.Err, apperrors.ErrSaveFailed)
	assert.NotContains(t, res.Err.Error(), "deadlock")
	assert.Len(t, res.Saved, 1)
	assert.Len(t, res.Failed, 1)
	assert.True(t, s.HasUnsavedChanges())
	assert.Zero(t, refetched.Load())

	fake.mu.Lock()
	fake.failWeek = ""
	fake.mu.Unlock()

	res = s.RetryFailed(ctx)
	require.NoError(t, res.Err)
	assert.False(t, s.HasUnsavedChanges())
	assert.Equal(t, int32(1), refetched.Load())

	hitsBefore := fake.allocHits.Load()
	_, err = reader.Allocations(ctx, "r1")
	require.NoError(t, err)
	assert.Equal(t, hitsBefore+1, fake.allocHits.Load(), "snapshot cache is dropped after the last save")
}
