package filter

import (
	"errors"
	"fmt"

	"github.com/s0up4200/otdb/opentdb"
)

// ErrEmptyExpression is wrapped by the CompilationError for blank input
var ErrEmptyExpression = errors.New("empty expression")

// CompilationError indicates a filter expression could not be compiled,
// either because of a syntax error or because it does not type check
// against the trivia variables.
type CompilationError struct {
	Expression string
	Err        error
}

func (e *CompilationError) Error() string {
	return fmt.Sprintf("filter %q does not compile: %v", e.Expression, e.Err)
}

func (e *CompilationError) Unwrap() error {
	return e.Err
}

// EvaluationError indicates a compiled filter failed on a question, for
// example by indexing past the incorrect answers. Index is the position of
// the question in the batch passed to Select, or -1 for a single Match.
type EvaluationError struct {
	Expression string
	Index      int
	Category   opentdb.Category
	Question   string
	Err        error
}

func (e *EvaluationError) Error() string {
	if e.Index >= 0 {
		return fmt.Sprintf("filter %q failed on question %d (%s) %q: %v", e.Expression, e.Index+1, e.Category, e.Question, e.Err)
	}
	return fmt.Sprintf("filter %q failed on question (%s) %q: %v", e.Expression, e.Category, e.Question, e.Err)
}

func (e *EvaluationError) Unwrap() error {
	return e.Err
}
