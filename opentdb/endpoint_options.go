package opentdb

import (
	"net/url"
	"strconv"
)

// MaxQuestionCount is the largest amount the trivia endpoint accepts
const MaxQuestionCount = 50

// EndpointOptions holds the optional query parameters of one request.
// Applying them consumes them, so a rebuilt request never carries a
// parameter twice.
type EndpointOptions struct {
	amount      int
	category    Category
	difficulty  Difficulty
	kind        Kind
	hasAmount   bool
	hasCategory bool
	hasDiff     bool
	hasKind     bool
}

// SetQuestionCount sets the amount parameter. Values above MaxQuestionCount
// are rejected rather than clamped.
func (o *EndpointOptions) SetQuestionCount(n int) error {
	if n < 0 || n > MaxQuestionCount {
		return invalidOption("question count %d must be between 0 and %d", n, MaxQuestionCount)
	}
	o.amount = n
	o.hasAmount = true
	return nil
}

// SetCategory sets the category parameter
func (o *EndpointOptions) SetCategory(c Category) {
	o.category = c
	o.hasCategory = true
}

// SetDifficulty sets the difficulty parameter
func (o *EndpointOptions) SetDifficulty(d Difficulty) {
	o.difficulty = d
	o.hasDiff = true
}

// SetKind sets the type parameter
func (o *EndpointOptions) SetKind(k Kind) {
	o.kind = k
	o.hasKind = true
}

// QuestionCount returns the pending amount, if any
func (o *EndpointOptions) QuestionCount() (int, bool) {
	return o.amount, o.hasAmount
}

// Category returns the pending category, if any
func (o *EndpointOptions) Category() (Category, bool) {
	return o.category, o.hasCategory
}

// Difficulty returns the pending difficulty, if any
func (o *EndpointOptions) Difficulty() (Difficulty, bool) {
	return o.difficulty, o.hasDiff
}

// Kind returns the pending question type, if any
func (o *EndpointOptions) Kind() (Kind, bool) {
	return o.kind, o.hasKind
}

// Empty reports whether no option is waiting to be applied
func (o *EndpointOptions) Empty() bool {
	return !o.hasAmount && !o.hasCategory && !o.hasDiff && !o.hasKind
}

// Apply appends every set option to the query of u and clears it
func (o *EndpointOptions) Apply(u *url.URL) {
	if o.hasAmount {
		appendQuery(u, "amount", strconv.Itoa(o.amount))
		o.hasAmount = false
	}
	if o.hasCategory {
		if v, ok := o.category.queryValue(); ok {
			appendQuery(u, "category", v)
		}
		o.hasCategory = false
	}
	if o.hasDiff {
		if v, ok := o.difficulty.queryValue(); ok {
			appendQuery(u, "difficulty", v)
		}
		o.hasDiff = false
	}
	if o.hasKind {
		if v, ok := o.kind.queryValue(); ok {
			appendQuery(u, "type", v)
		}
		o.hasKind = false
	}
}

// appendQuery adds key=value after any existing parameters, keeping order
func appendQuery(u *url.URL, key, value string) {
	pair := url.QueryEscape(key) + "=" + url.QueryEscape(value)
	if u.RawQuery == "" {
		u.RawQuery = pair
		return
	}
	u.RawQuery += "&" + pair
}
