// Package liststate is the client-side filter/sort/pagination state machine
// for the task list. It is a pure reducer: events go in, a new state comes
// out, and the state is the sole input to the list query. Nothing here
// performs I/O; the caller watches the state (Load == LoadPending) to know
// when to issue a fetch and feeds the result back as an ApplyPage event.
package liststate

import (
	"github.com/taskboard/taskboard-api/internal/models"
)

// LoadStatus distinguishes "has more", "loading" and "exhausted" for the
// currently loaded window.
type LoadStatus string

const (
	LoadIdle      LoadStatus = "idle"
	LoadPending   LoadStatus = "loading"
	LoadExhausted LoadStatus = "exhausted"
)

// State is the complete client list state. Treat values as immutable:
// Reduce never mutates its input, it returns a fresh copy.
type State struct {
	Statuses map[models.TaskStatus]bool
	Owners   map[models.OwnerCategory]bool
	SortKey  models.SortKey
	Desc     bool

	// Selected is the display number of the task open in the detail view,
	// nil when the list view is plain.
	Selected *uint64

	// Loaded window and continuation. Generation increments on every
	// filter/sort change; a page fetched under an older generation is
	// stale and must be discarded, not merged.
	Loaded     []uint64
	Cursor     string
	Load       LoadStatus
	Generation uint64
}

// Event is a user interaction or fetch completion consumed by Reduce.
type Event interface {
	isEvent()
}

// ToggleStatus flips one status in the selected-status set.
type ToggleStatus struct {
	Status models.TaskStatus
}

// ToggleOwner flips one owner category in the selected-owner set.
type ToggleOwner struct {
	Owner models.OwnerCategory
}

// ClickColumn is a sort-header click: the active column reverses direction,
// any other column becomes the key and resets to ascending.
type ClickColumn struct {
	Key models.SortKey
}

// ScrollProximity signals the viewport nearing the end of the loaded window.
type ScrollProximity struct{}

// ApplyPage delivers a fetched page. Generation must match the state's
// current generation or the page is dropped.
type ApplyPage struct {
	Generation uint64
	Numbers    []uint64
	Cursor     string
	Done       bool
}

// SelectTask opens a task in the detail view; Number nil closes it.
type SelectTask struct {
	Number *uint64
}

func (ToggleStatus) isEvent()    {}
func (ToggleOwner) isEvent()     {}
func (ClickColumn) isEvent()     {}
func (ScrollProximity) isEvent() {}
func (ApplyPage) isEvent()       {}
func (SelectTask) isEvent()      {}

// NewState returns the initial state: every status and owner category
// selected, sorted by task number ascending, first page pending.
func NewState() State {
	return State{
		Statuses: map[models.TaskStatus]bool{
			models.TaskStatusNew:        true,
			models.TaskStatusInProgress: true,
			models.TaskStatusDone:       true,
		},
		Owners: map[models.OwnerCategory]bool{
			models.OwnerMine:    true,
			models.OwnerOthers:  true,
			models.OwnerUnowned: true,
		},
		SortKey: models.SortByNumber,
		Load:    LoadPending,
	}
}

// Reduce computes the next state for one event.
func Reduce(s State, e Event) State {
	next := clone(s)

	switch ev := e.(type) {
	case ToggleStatus:
		next.Statuses[ev.Status] = !next.Statuses[ev.Status]
		resetWindow(&next)

	case ToggleOwner:
		next.Owners[ev.Owner] = !next.Owners[ev.Owner]
		resetWindow(&next)

	case ClickColumn:
		if ev.Key == next.SortKey {
			next.Desc = !next.Desc
		} else {
			next.SortKey = ev.Key
			next.Desc = false
		}
		resetWindow(&next)

	case ScrollProximity:
		if next.Load == LoadIdle {
			next.Load = LoadPending
		}

	case ApplyPage:
		if ev.Generation != next.Generation {
			// Stale fetch from a superseded filter/sort spec.
			return next
		}
		next.Loaded = append(next.Loaded, ev.Numbers...)
		next.Cursor = ev.Cursor
		if ev.Done {
			next.Load = LoadExhausted
		} else {
			next.Load = LoadIdle
		}

	case SelectTask:
		if ev.Number == nil {
			next.Selected = nil
		} else {
			n := *ev.Number
			next.Selected = &n
		}
	}

	return next
}

// SelectedStatuses returns the active status filter in stable order.
func (s State) SelectedStatuses() []models.TaskStatus {
	all := []models.TaskStatus{
		models.TaskStatusNew,
		models.TaskStatusInProgress,
		models.TaskStatusDone,
	}
	out := make([]models.TaskStatus, 0, len(all))
	for _, st := range all {
		if s.Statuses[st] {
			out = append(out, st)
		}
	}
	return out
}

// SelectedOwners returns the active owner filter in stable order.
func (s State) SelectedOwners() []models.OwnerCategory {
	all := []models.OwnerCategory{
		models.OwnerMine,
		models.OwnerOthers,
		models.OwnerUnowned,
	}
	out := make([]models.OwnerCategory, 0, len(all))
	for _, oc := range all {
		if s.Owners[oc] {
			out = append(out, oc)
		}
	}
	return out
}

// resetWindow discards the loaded window after a spec change and supersedes
// any in-flight fetch by bumping the generation.
func resetWindow(s *State) {
	s.Loaded = nil
	s.Cursor = ""
	s.Load = LoadPending
	s.Generation++
}

func clone(s State) State {
	next := s

	next.Statuses = make(map[models.TaskStatus]bool, len(s.Statuses))
	for k, v := range s.Statuses {
		next.Statuses[k] = v
	}

	next.Owners = make(map[models.OwnerCategory]bool, len(s.Owners))
	for k, v := range s.Owners {
		next.Owners[k] = v
	}

	if s.Loaded != nil {
		next.Loaded = append([]uint64(nil), s.Loaded...)
	}
	if s.Selected != nil {
		n := *s.Selected
		next.Selected = &n
	}

	return next
}
