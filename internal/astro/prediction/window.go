package prediction

import (
	"fmt"
	"time"

	"github.com/astrosetu/astrosetu-backend/internal/platform/errs"
)

// Kind is a prediction horizon.
type Kind string

const (
	Daily   Kind = "daily"
	Weekly  Kind = "weekly"
	Monthly Kind = "monthly"
	Yearly  Kind = "yearly"
)

// Window is a half-open guidance interval [Start, End).
type Window struct {
	Kind  Kind      `json:"kind"`
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// NewWindow anchors a window of the given kind on the calendar day of start.
func NewWindow(kind Kind, start time.Time) (Window, error) {
	day := time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, time.UTC)
	w := Window{Kind: kind, Start: day}
	switch kind {
	case Daily:
		w.End = day.AddDate(0, 0, 1)
	case Weekly:
		w.End = day.AddDate(0, 0, 7)
	case Monthly:
		w.End = day.AddDate(0, 1, 0)
	case Yearly:
		w.End = day.AddDate(1, 0, 0)
	default:
		return Window{}, fmt.Errorf("%w: unknown window kind %q", errs.ErrInvalidInput, kind)
	}
	return w, nil
}

// Samples returns the transit sample moments for the window, capped at one
// per calendar day: daily 1, weekly 1 per day, monthly 1 per week, yearly
// 1 per month. Sampling at noon keeps daily charts stable across timezones.
func (w Window) Samples() []time.Time {
	var step func(t time.Time) time.Time
	switch w.Kind {
	case Daily:
		return []time.Time{w.Start.Add(12 * time.Hour)}
	case Weekly:
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 1) }
	case Monthly:
		step = func(t time.Time) time.Time { return t.AddDate(0, 0, 7) }
	case Yearly:
		step = func(t time.Time) time.Time { return t.AddDate(0, 1, 0) }
	default:
		return nil
	}
	var out []time.Time
	for t := w.Start; t.Before(w.End); t = step(t) {
		out = append(out, t.Add(12*time.Hour))
	}
	return out
}
