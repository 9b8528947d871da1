package filter

import (
	"errors"

	"github.com/s0up4200/otdb/opentdb"
)

// Select returns the questions in items that match f, in order
func Select(f Filter, items []opentdb.Trivia) ([]opentdb.Trivia, error) {
	matches := make([]opentdb.Trivia, 0, len(items))
	for i, t := range items {
		ok, err := f.Match(t)
		if err != nil {
			var evalErr *EvaluationError
			if errors.As(err, &evalErr) {
				evalErr.Index = i
			}
			return nil, err
		}
		if ok {
			matches = append(matches, t)
		}
	}
	return matches, nil
}

type allFilter []Filter

// All combines filters so that a question must match every one of them.
// An empty combination matches everything.
func All(filters ...Filter) Filter {
	return allFilter(filters)
}

func (a allFilter) Match(t opentdb.Trivia) (bool, error) {
	for _, f := range a {
		ok, err := f.Match(t)
		if err != nil || !ok {
			return false, err
		}
	}
	return true, nil
}
