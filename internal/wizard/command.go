package wizard

import (
	"fmt"
	"slices"

	"github.com/iliyamo/cinema-ticket-dashboard/internal/model"
)

// Command is a named step change.  A failing command leaves the wizard as
// it was.
type Command interface {
	Name() string
	apply(w *Wizard) error
}

// Apply runs cmd against the wizard.
func (w *Wizard) Apply(cmd Command) error {
	if w.closed {
		return ErrClosed
	}
	return cmd.apply(w)
}

// SelectTheater picks the theater by its index in the catalog.
type SelectTheater struct {
	Index int
}

// Name implements Command.
func (SelectTheater) Name() string { return "theater" }

func (c SelectTheater) apply(w *Wizard) error {
	if c.Index < 0 || c.Index >= len(w.theaters) {
		return fmt.Errorf("%w: theater index %d", ErrInvalidSelection, c.Index)
	}
	if c.Index != w.state.TheaterIndex {
		w.state.TheaterIndex = c.Index
		w.state.Time = ""
	}
	return nil
}

// SelectLanguage picks the audio language.
type SelectLanguage struct {
	Language model.Language
}

// Name implements Command.
func (SelectLanguage) Name() string { return "language" }

func (c SelectLanguage) apply(w *Wizard) error {
	if !c.Language.Valid() {
		return fmt.Errorf("%w: language %q", ErrInvalidSelection, c.Language)
	}
	if c.Language != w.state.Language {
		w.state.Language = c.Language
		w.state.Time = ""
	}
	return nil
}

// SelectFormat picks the projection format.
type SelectFormat struct {
	Format model.Format
}

// Name implements Command.
func (SelectFormat) Name() string { return "format" }

func (c SelectFormat) apply(w *Wizard) error {
	if !c.Format.Valid() {
		return fmt.Errorf("%w: format %q", ErrInvalidSelection, c.Format)
	}
	if c.Format != w.state.Format {
		w.state.Format = c.Format
		w.state.Time = ""
	}
	return nil
}

// SelectTime picks one of the showtimes of the current combination.
type SelectTime struct {
	Time string
}

// Name implements Command.
func (SelectTime) Name() string { return "time" }

func (c SelectTime) apply(w *Wizard) error {
	if !slices.Contains(w.Showtimes(), c.Time) {
		return fmt.Errorf("%w: time %q not offered", ErrInvalidSelection, c.Time)
	}
	w.state.Time = c.Time
	return nil
}
