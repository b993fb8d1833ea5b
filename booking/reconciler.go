package booking

// SeatState is the classification of one seat after reconciling the layout
// with the server's availability list.
type SeatState int

const (
	SeatTaken SeatState = iota
	SeatFree
)

// Reconciler merges the generated seat set with the server's available list
// and tracks the single current selection. One instance belongs to one
// booking screen; every availability fetch rebuilds the classification from
// scratch via Classify.
type Reconciler struct {
	order    []string
	states   map[string]SeatState
	selected string
	ignored  []string
}

// NewReconciler creates a reconciler over the full seat set. All seats
// start taken until Classify runs.
func NewReconciler(fullSeats []string) *Reconciler {
	r := &Reconciler{
		order:  append([]string(nil), fullSeats...),
		states: make(map[string]SeatState, len(fullSeats)),
	}
	for _, id := range fullSeats {
		r.states[id] = SeatTaken
	}
	return r
}

// Classify marks exactly the seats in available as free and everything else
// as taken. Ids the layout does not know are skipped and recorded — servers
// can report stale ids during a migration window — rather than failing.
// Any previous selection is dropped: classification starts a fresh pass.
func (r *Reconciler) Classify(available []string) {
	for id := range r.states {
		r.states[id] = SeatTaken
	}
	r.ignored = r.ignored[:0]
	for _, id := range available {
		if _, ok := r.states[id]; !ok {
			r.ignored = append(r.ignored, id)
			continue
		}
		r.states[id] = SeatFree
	}
	r.selected = ""
}

// Select marks a free seat as the sole selection, silently replacing any
// previous one. Taken or unknown seats fail with InvalidSelectionError and
// leave the selection unchanged.
func (r *Reconciler) Select(seatID string) error {
	state, ok := r.states[seatID]
	if !ok {
		return &InvalidSelectionError{Seat: seatID, Reason: "not part of this hall"}
	}
	if state != SeatFree {
		return &InvalidSelectionError{Seat: seatID, Reason: "already taken"}
	}
	r.selected = seatID
	return nil
}

// Selection returns the currently selected seat, if any.
func (r *Reconciler) Selection() (string, bool) {
	return r.selected, r.selected != ""
}

// ClearSelection drops the current selection.
func (r *Reconciler) ClearSelection() {
	r.selected = ""
}

// State returns the classification of one seat.
func (r *Reconciler) State(seatID string) (SeatState, bool) {
	state, ok := r.states[seatID]
	return state, ok
}

// FreeCount returns how many seats are currently free.
func (r *Reconciler) FreeCount() int {
	n := 0
	for _, state := range r.states {
		if state == SeatFree {
			n++
		}
	}
	return n
}

// Size returns the number of seats under reconciliation.
func (r *Reconciler) Size() int {
	return len(r.states)
}

// Ignored returns the stale availability ids skipped by the last Classify,
// for diagnostics.
func (r *Reconciler) Ignored() []string {
	return append([]string(nil), r.ignored...)
}
