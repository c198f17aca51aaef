// Package wizard drives the four-step showtime selection flow:
// theater, language, format, then time.  Steps can be changed in any order;
// changing any of the first three invalidates the chosen time because the
// showtime list depends on all three.
package wizard

import (
	"errors"
	"fmt"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/model"
)

var (
	// ErrInvalidSelection rejects a value that is not offered for the
	// current combination.  The prior value is kept.
	ErrInvalidSelection = errors.New("invalid selection")
	// ErrIncompleteSelection blocks Confirm until a time is chosen.
	ErrIncompleteSelection = errors.New("incomplete selection")
	// ErrClosed is returned by any command after Confirm or Cancel.
	ErrClosed = errors.New("wizard closed")
	// ErrNoTheaters is returned by Open for an empty catalog.
	ErrNoTheaters = errors.New("no theaters available")
)

// State is the composite step state.  Time is empty while unset.
type State struct {
	TheaterIndex int            `json:"theaterIndex"`
	Language     model.Language `json:"language"`
	Format       model.Format   `json:"format"`
	Time         string         `json:"time,omitempty"`
}

// DefaultState is the state every wizard opens with.
func DefaultState() State {
	return State{TheaterIndex: 0, Language: model.Hindi, Format: model.Format2D}
}

// Selection is the finalised tuple handed to the seat selection flow.
type Selection struct {
	TheaterID   int64          `json:"theaterId"`
	TheaterName string         `json:"theaterName"`
	Language    model.Language `json:"language"`
	Format      model.Format   `json:"format"`
	Time        string         `json:"time"`
}

// Wizard holds one run of the flow over a fixed list of theaters.  It is
// owned by a single booking session and is not safe for concurrent use.
type Wizard struct {
	theaters []model.Theater
	state    State
	closed   bool
}

// Open starts a fresh wizard with default steps over theaters.
func Open(theaters []model.Theater) (*Wizard, error) {
	if len(theaters) == 0 {
		return nil, ErrNoTheaters
	}
	return &Wizard{theaters: theaters, state: DefaultState()}, nil
}

// State returns the current step values.
func (w *Wizard) State() State { return w.state }

// Theaters returns the theaters the wizard was opened with.
func (w *Wizard) Theaters() []model.Theater { return w.theaters }

// Closed reports whether the wizard was confirmed or cancelled.
func (w *Wizard) Closed() bool { return w.closed }

// Theater returns the currently selected theater.
func (w *Wizard) Theater() model.Theater { return w.theaters[w.state.TheaterIndex] }

// Showtimes lists the times offered for the current theater, language and
// format.
func (w *Wizard) Showtimes() []string {
	return w.Theater().Times(w.state.Language, w.state.Format)
}

// CanConfirm reports whether every step is satisfied.  Theater, language
// and format always hold a value, so only the time matters.
func (w *Wizard) CanConfirm() bool {
	return !w.closed && w.state.Time != ""
}

// SelectTheater sets step one.
func (w *Wizard) SelectTheater(index int) error { return w.Apply(SelectTheater{Index: index}) }

// SelectLanguage sets step two.
func (w *Wizard) SelectLanguage(lang model.Language) error {
	return w.Apply(SelectLanguage{Language: lang})
}

// SelectFormat sets step three.
func (w *Wizard) SelectFormat(format model.Format) error {
	return w.Apply(SelectFormat{Format: format})
}

// SelectTime sets step four.
func (w *Wizard) SelectTime(t string) error { return w.Apply(SelectTime{Time: t}) }

// Confirm finalises the flow and closes the wizard.
func (w *Wizard) Confirm() (Selection, error) {
	if w.closed {
		return Selection{}, ErrClosed
	}
	if !w.CanConfirm() {
		return Selection{}, ErrIncompleteSelection
	}
	th := w.Theater()
	sel := Selection{
		TheaterID:   th.ID,
		TheaterName: th.Name,
		Language:    w.state.Language,
		Format:      w.state.Format,
		Time:        w.state.Time,
	}
	w.closed = true
	return sel, nil
}

// Cancel closes the wizard without producing a selection.
func (w *Wizard) Cancel() {
	w.closed = true
}

// Snapshot is the serialisable form of an open wizard.
type Snapshot struct {
	Theaters []model.Theater `json:"theaters"`
	State    State           `json:"state"`
}

// Snapshot captures the wizard.  Closed wizards are not meant to be stored.
func (w *Wizard) Snapshot() Snapshot {
	return Snapshot{Theaters: w.theaters, State: w.state}
}

// FromSnapshot reopens a wizard at a stored state, validating every step
// against the stored theaters.
func FromSnapshot(s Snapshot) (*Wizard, error) {
	w, err := Open(s.Theaters)
	if err != nil {
		return nil, err
	}
	st := s.State
	if st.TheaterIndex < 0 || st.TheaterIndex >= len(w.theaters) || !st.Language.Valid() || !st.Format.Valid() {
		return nil, fmt.Errorf("restore wizard: %w", ErrInvalidSelection)
	}
	w.state = State{TheaterIndex: st.TheaterIndex, Language: st.Language, Format: st.Format}
	if st.Time != "" {
		if err := w.SelectTime(st.Time); err != nil {
			return nil, fmt.Errorf("restore wizard: %w", err)
		}
	}
	return w, nil
}
