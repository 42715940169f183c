package planner

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrSplitCount        = errors.New("split requires at least two parts")
	ErrDateAfterOriginal = errors.New("split date falls after the original installment date")
	ErrEntryNotFound     = errors.New("installment not found in schedule")
)

// Split replaces the entry with the given id by n parts of equal
// amount, inserted at the same position. Every part date must be on or
// before the original date; when fewer than n dates are supplied the
// missing ones default to the original date. The first part keeps the
// original id so paid-status matching survives the edit; the rest get
// fresh ids. The returned schedule is normalized.
func Split(entries []Entry, id string, n int, dates []time.Time) ([]Entry, error) {
	if n < 2 {
		return nil, ErrSplitCount
	}

	idx := -1
	for i, e := range entries {
		if e.ID == id {
			idx = i
			break
		}
	}
	if idx < 0 {
		return nil, ErrEntryNotFound
	}
	orig := entries[idx]

	concept := strings.TrimSpace(orig.Concept)
	if concept == "" {
		concept = "Cuota"
	}

	per := Round2(orig.Amount / float64(n))
	parts := make([]Entry, n)
	for i := 0; i < n; i++ {
		date := orig.Date
		if i < len(dates) && !dates[i].IsZero() {
			date = dates[i]
		}
		if startOfDay(date).After(startOfDay(orig.Date)) {
			return nil, ErrDateAfterOriginal
		}
		partID := orig.ID
		if i > 0 {
			partID = uuid.NewString()
		}
		parts[i] = Entry{
			ID:      partID,
			Date:    date,
			Amount:  per,
			Type:    orig.Type,
			Concept: fmt.Sprintf("%s (Parte %d/%d)", concept, i+1, n),
		}
	}

	out := make([]Entry, 0, len(entries)+n-1)
	out = append(out, entries[:idx]...)
	out = append(out, parts...)
	out = append(out, entries[idx+1:]...)
	return Normalize(out), nil
}
