package session

import "time"

// rowLock freezes the display order of grid rows while the user edits, so a
// row does not jump away from under the cursor when its totals change.
type rowLock struct {
	locked    bool
	order     []string
	releaseAt time.Time
}

func (r *rowLock) lock(order []string) {
	r.locked = true
	r.order = append([]string(nil), order...)
	r.releaseAt = time.Time{}
}

func (r *rowLock) reset() {
	*r = rowLock{}
}

// touch cancels a scheduled release.
func (r *rowLock) touch() {
	r.releaseAt = time.Time{}
}

func (r *rowLock) settle(at time.Time) {
	if r.locked {
		r.releaseAt = at
	}
}

// merge keeps frozen rows in place, drops rows that disappeared and appends
// new ones in their current order.
func (r *rowLock) merge(current []string) []string {
	present := make(map[string]struct{}, len(current))
	for _, id := range current {
		present[id] = struct{}{}
	}

	out := make([]string, 0, len(current))
	seen := make(map[string]struct{}, len(r.order))

	for _, id := range r.order {
		if _, ok := present[id]; ok {
			out = append(out, id)
			seen[id] = struct{}{}
		}
	}

	for _, id := range current {
		if _, ok := seen[id]; !ok {
			out = append(out, id)
		}
	}

	return out
}

// Begin freezes the row order explicitly, e.g. when an edit dialog opens.
func (s *Session) Begin(order []string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows.lock(order)
}

// End releases the row order immediately.
func (s *Session) End() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.rows.reset()
}

// RowOrder returns the order rows should be displayed in. While unsaved
// changes exist the first observed order is frozen; it is released once the
// session has stayed clean for the debounce interval.
func (s *Session) RowOrder(current []string) []string {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.rows.locked {
		release := !s.hasUnsavedLocked() &&
			!s.rows.releaseAt.IsZero() &&
			!s.now().Before(s.rows.releaseAt)

		if !release {
			return s.rows.merge(current)
		}

		s.rows.reset()
	} else if s.hasUnsavedLocked() {
		s.rows.lock(current)
	}

	return append([]string(nil), current...)
}

func (s *Session) RowsLocked() bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.rows.locked
}
