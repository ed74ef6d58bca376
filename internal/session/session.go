// Package session implements the explicit-save editing session: unsaved cell
// edits are kept in memory on top of a server snapshot and only persisted,
// cell by cell, when SaveAll or RetryFailed is called.
package session

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/YusovID/capacity-planner-service/internal/apperrors"
	"github.com/YusovID/capacity-planner-service/internal/cache"
	"github.com/YusovID/capacity-planner-service/internal/capacity"
	"github.com/YusovID/capacity-planner-service/internal/domain"
	"github.com/YusovID/capacity-planner-service/pkg/logger/sl"
)

// DefaultRowLockDebounce is how long the row order stays frozen after the last
// unsaved change is gone.
const DefaultRowLockDebounce = 2 * time.Second

// Saver persists one cell. Implementations talk to the allocation endpoint.
type Saver interface {
	SaveWeeklyAllocation(ctx context.Context, resourceID string, change domain.PendingChange) error
}

// Snapshot is the server truth the session edits on top of. It is never
// mutated by the session.
type Snapshot struct {
	Allocations       []domain.ResourceAllocation
	EffectiveCapacity float64
}

// SaveResult reports one SaveAll or RetryFailed batch.
type SaveResult struct {
	Saved  []CellKey
	Failed []CellKey
	// Stale counts completions dropped because the cell was edited or the
	// session discarded while the request was in flight.
	Stale int
	// Err is non-nil when at least one cell failed. It always wraps
	// apperrors.ErrSaveFailed and never carries backend error text.
	Err error
}

type cell struct {
	state  CellState
	change *domain.PendingChange
	rev    uint64
	queued bool
}

type Option func(*Session)

func WithInvalidator(inv cache.Invalidator) Option {
	return func(s *Session) { s.invalidator = inv }
}

// WithOnAllSaved registers the callback run once a save batch leaves no
// unsaved change behind, typically a refetch of server state.
func WithOnAllSaved(fn func()) Option {
	return func(s *Session) { s.onAllSaved = fn }
}

func WithLogger(log *slog.Logger) Option {
	return func(s *Session) { s.log = log }
}

func WithThresholds(th capacity.Thresholds) Option {
	return func(s *Session) { s.thresholds = th.Normalize() }
}

func WithRowLockDebounce(d time.Duration) Option {
	return func(s *Session) { s.debounce = d }
}

// Session is safe for concurrent use.
type Session struct {
	mu sync.Mutex

	resourceID  string
	saver       Saver
	invalidator cache.Invalidator
	onAllSaved  func()
	log         *slog.Logger
	thresholds  capacity.Thresholds
	debounce    time.Duration
	now         func() time.Time

	snapshot   Snapshot
	cells      map[CellKey]*cell
	generation uint64
	rev        uint64
	rows       rowLock

	// inFlight holds, per cell, the done channel of its latest request. It
	// survives Discard so a new edit never races an abandoned write.
	inFlight       map[CellKey]chan struct{}
	outstanding    int
	savedSinceFire bool
}

func New(resourceID string, saver Saver, snapshot Snapshot, opts ...Option) *Session {
	s := &Session{
		resourceID: resourceID,
		saver:      saver,
		log:        slog.New(slog.NewTextHandler(io.Discard, nil)),
		thresholds: capacity.DefaultThresholds(),
		debounce:   DefaultRowLockDebounce,
		now:        time.Now,
		snapshot:   snapshot,
		cells:      make(map[CellKey]*cell),
		inFlight:   make(map[CellKey]chan struct{}),
	}

	for _, opt := range opts {
		opt(s)
	}

	s.log = s.log.With(slog.String("resource_id", resourceID))

	return s
}

func (s *Session) ResourceID() string {
	return s.resourceID
}

// AddPendingChange records an edit without any network call. Hours are
// clamped to [0, capacity.MaxCellHours] and OldValue is taken from the snapshot. The
// returned warning is advisory: the edit is always kept.
func (s *Session) AddPendingChange(change domain.PendingChange) (*Warning, error) {
	if change.ProjectID == "" {
		return nil, fmt.Errorf("%w: project id is required", apperrors.ErrValidation)
	}

	if _, _, err := capacity.ParseWeekKey(change.WeekKey); err != nil {
		return nil, err
	}

	key := CellKey{ProjectID: change.ProjectID, WeekKey: change.WeekKey}
	change.Hours = capacity.ClampCellHours(change.Hours)

	s.mu.Lock()
	defer s.mu.Unlock()

	change.OldValue = capacity.CellValue(s.snapshot.Allocations, change.ProjectID, change.WeekKey)

	s.rev++

	c, ok := s.cells[key]
	if !ok {
		c = &cell{}
		s.cells[key] = c
	}

	c.state = StatePending
	c.change = &change
	c.rev = s.rev
	c.queued = false

	s.rows.touch()

	return s.overallocationLocked(change.WeekKey), nil
}

// SaveAll persists every unsaved cell that is not already being saved. It
// returns once every request of the batch resolved. onAllSaved runs only when
// no request of any batch is outstanding and nothing is left unsaved.
func (s *Session) SaveAll(ctx context.Context) SaveResult {
	return s.save(ctx, "internal.session.SaveAll", func(c *cell) bool {
		return c.change != nil && c.state != StateSaving
	})
}

// RetryFailed persists only the cells whose last save failed.
func (s *Session) RetryFailed(ctx context.Context) SaveResult {
	return s.save(ctx, "internal.session.RetryFailed", func(c *cell) bool {
		return c.state == StateFailed
	})
}

type saveJob struct {
	key    CellKey
	change domain.PendingChange
	rev    uint64
	// after is closed once the previous request for the same cell resolved.
	after chan struct{}
	done  chan struct{}
}

func (s *Session) save(ctx context.Context, op string, pick func(*cell) bool) SaveResult {
	log := s.log.With(slog.String("op", op))

	s.mu.Lock()
	gen := s.generation

	var jobs []*saveJob

	for key, c := range s.cells {
		if c.queued || !pick(c) {
			continue
		}

		job := &saveJob{
			key:    key,
			change: *c.change,
			rev:    c.rev,
			after:  s.inFlight[key],
			done:   make(chan struct{}),
		}

		s.inFlight[key] = job.done
		s.outstanding++

		// A cell with a request still in flight stays pending until that
		// request resolves, so two writes of one cell never overlap.
		if job.after != nil {
			c.queued = true
		} else {
			c.state = StateSaving
		}

		jobs = append(jobs, job)
	}
	s.mu.Unlock()

	var res SaveResult

	if len(jobs) == 0 {
		return res
	}

	sort.Slice(jobs, func(i, j int) bool { return jobs[i].key.Less(jobs[j].key) })

	log.Info("saving cells", slog.Int("count", len(jobs)))

	var wg sync.WaitGroup
	for _, job := range jobs {
		wg.Add(1)

		go func(job *saveJob) {
			defer wg.Done()
			s.run(ctx, log, gen, job, &res)
		}(job)
	}
	wg.Wait()

	s.mu.Lock()

	sortKeys(res.Saved)
	sortKeys(res.Failed)

	current := gen == s.generation
	unsaved := s.hasUnsavedLocked()

	if current && !unsaved {
		s.rows.settle(s.now().Add(s.debounce))
	}

	fire := current && !unsaved && s.outstanding == 0 && s.savedSinceFire
	if fire {
		s.savedSinceFire = false
	}

	s.mu.Unlock()

	if len(res.Failed) > 0 {
		res.Err = fmt.Errorf("%d of %d cells: %w", len(res.Failed), len(jobs), apperrors.ErrSaveFailed)
	}

	log.Info("save batch finished",
		slog.Int("saved", len(res.Saved)),
		slog.Int("failed", len(res.Failed)),
		slog.Int("stale", res.Stale),
	)

	if fire {
		s.allSaved(ctx)
	}

	return res
}

// run sends one job once the previous request of its cell resolved and
// records the outcome. Jobs superseded while waiting are never sent.
func (s *Session) run(ctx context.Context, log *slog.Logger, gen uint64, job *saveJob, res *SaveResult) {
	defer close(job.done)

	if job.after != nil {
		<-job.after
	}

	s.mu.Lock()
	c := s.currentLocked(gen, job)
	if c != nil {
		c.queued = false
		c.state = StateSaving
	}
	s.mu.Unlock()

	sent := c != nil

	var err error
	if sent {
		if err = ctx.Err(); err == nil {
			err = s.saver.SaveWeeklyAllocation(ctx, s.resourceID, job.change)
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.outstanding--
	if s.inFlight[job.key] == job.done {
		delete(s.inFlight, job.key)
	}

	c = s.currentLocked(gen, job)

	switch {
	case !sent || c == nil:
		res.Stale++
	case err != nil:
		c.state = StateFailed
		res.Failed = append(res.Failed, job.key)

		log.Error("failed to save cell", slog.String("cell", job.key.String()), sl.Err(err))
	default:
		c.state = StateSaved
		c.change = nil
		s.savedSinceFire = true
		res.Saved = append(res.Saved, job.key)
	}
}

// currentLocked returns the cell job was taken from, or nil when the cell was
// edited again or the session discarded since.
func (s *Session) currentLocked(gen uint64, job *saveJob) *cell {
	if gen != s.generation {
		return nil
	}

	c, ok := s.cells[job.key]
	if !ok || c.rev != job.rev {
		return nil
	}

	return c
}

func (s *Session) allSaved(ctx context.Context) {
	if s.invalidator != nil {
		if err := s.invalidator.Invalidate(ctx, cache.AllocationsKey(s.resourceID)); err != nil {
			s.log.Warn("failed to invalidate allocations cache", sl.Err(err))
		}
	}

	if s.onAllSaved != nil {
		s.onAllSaved()
	}
}

// Discard drops every pending, failed and saved cell without a network call.
// Saves still in flight complete into the void, but later saves of the same
// cell still wait for them.
func (s *Session) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.generation++
	s.cells = make(map[CellKey]*cell)
	s.rows.settle(s.now().Add(s.debounce))
}

// Refresh swaps in a freshly fetched snapshot and turns saved cells back to
// clean. Unsaved cells are kept.
func (s *Session) Refresh(snapshot Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.snapshot = snapshot

	for key, c := range s.cells {
		if c.state == StateSaved {
			delete(s.cells, key)
			continue
		}

		if c.change != nil {
			c.change.OldValue = capacity.CellValue(snapshot.Allocations, key.ProjectID, key.WeekKey)
		}
	}
}

// ClearSaved turns saved cells back to clean.
func (s *Session) ClearSaved() {
	s.mu.Lock()
	defer s.mu.Unlock()

	for key, c := range s.cells {
		if c.state == StateSaved {
			delete(s.cells, key)
		}
	}
}

func (s *Session) HasUnsavedChanges() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.hasUnsavedLocked()
}

func (s *Session) PendingCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()

	n := 0
	for _, c := range s.cells {
		if c.change != nil {
			n++
		}
	}

	return n
}

// PendingChanges lists the unsaved edits, failed ones included, ordered by cell.
func (s *Session) PendingChanges() []domain.PendingChange {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.pendingLocked()
}

func (s *Session) State(key CellKey) CellState {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, ok := s.cells[key]; ok {
		return c.state
	}

	return StateClean
}

func (s *Session) SavingCells() []CellKey { return s.cellsIn(StateSaving) }
func (s *Session) SavedCells() []CellKey  { return s.cellsIn(StateSaved) }
func (s *Session) FailedCells() []CellKey { return s.cellsIn(StateFailed) }

// WeeklyTotals aggregates the snapshot with the unsaved edits laid over it.
func (s *Session) WeeklyTotals(weeks []capacity.WeekColumn) capacity.WeeklyTotals {
	s.mu.Lock()
	defer s.mu.Unlock()

	return capacity.AggregateRealtime(s.snapshot.Allocations, weeks, s.pendingLocked())
}

// WeeklyStatus is the live heatmap for weeks, unsaved edits included.
func (s *Session) WeeklyStatus(weeks []capacity.WeekColumn) []capacity.WeekCapacity {
	s.mu.Lock()
	defer s.mu.Unlock()

	totals := capacity.AggregateRealtime(s.snapshot.Allocations, weeks, s.pendingLocked())

	return capacity.WeeklyStatus(weeks, totals, s.snapshot.EffectiveCapacity)
}

func (s *Session) cellsIn(state CellState) []CellKey {
	s.mu.Lock()
	defer s.mu.Unlock()

	out := make([]CellKey, 0)
	for key, c := range s.cells {
		if c.state == state {
			out = append(out, key)
		}
	}

	sortKeys(out)

	return out
}

func (s *Session) hasUnsavedLocked() bool {
	for _, c := range s.cells {
		if c.change != nil {
			return true
		}
	}

	return false
}

func (s *Session) pendingLocked() []domain.PendingChange {
	keys := make([]CellKey, 0, len(s.cells))
	for key, c := range s.cells {
		if c.change != nil {
			keys = append(keys, key)
		}
	}

	sortKeys(keys)

	out := make([]domain.PendingChange, 0, len(keys))
	for _, key := range keys {
		out = append(out, *s.cells[key].change)
	}

	return out
}
