package suggest

import (
	"context"
	"errors"
)

// Speller returns a corrected spelling for a word.
type Speller interface {
	Suggest(ctx context.Context, word string) (string, error)
}

// Chain asks each speller in turn and returns the first non-empty
// suggestion. It fails only when every speller fails.
type Chain []Speller

// Suggest implements Speller.
func (c Chain) Suggest(ctx context.Context, word string) (string, error) {
	if len(c) == 0 {
		return "", errors.New("suggest: no spellers configured")
	}
	var errs []error
	answered := false
	for _, s := range c {
		if s == nil {
			continue
		}
		fix, err := s.Suggest(ctx, word)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		answered = true
		if fix != "" {
			return fix, nil
		}
	}
	if answered {
		return "", nil
	}
	return "", errors.Join(errs...)
}
