package opentdb

import (
	"encoding/json"
	"fmt"
)

// BaseResponse is the envelope wrapping list results
type BaseResponse[T any] struct {
	ResponseCode ResponseCode `json:"response_code"`
	Results      T            `json:"results"`
}

// UnmarshalJSON requires both response_code and results
func (r *BaseResponse[T]) UnmarshalJSON(data []byte) error {
	var wire struct {
		ResponseCode *ResponseCode `json:"response_code"`
		Results      *T            `json:"results"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.ResponseCode == nil {
		return missingField("response_code")
	}
	if wire.Results == nil {
		return missingField("results")
	}

	*r = BaseResponse[T]{
		ResponseCode: *wire.ResponseCode,
		Results:      *wire.Results,
	}
	return nil
}

// TriviaResponse is the payload of the trivia endpoint
type TriviaResponse = BaseResponse[[]Trivia]

// Trivia represents a single question. Text fields arrive base64 encoded
// and are decoded during unmarshaling.
type Trivia struct {
	Category         Category
	Kind             Kind
	Difficulty       Difficulty
	Question         string
	CorrectAnswer    string
	IncorrectAnswers []string
}

// triviaWire uses pointers so absent fields can be told apart from empty ones
type triviaWire struct {
	Category         *base64String   `json:"category"`
	Kind             *base64String   `json:"type"`
	Difficulty       *base64String   `json:"difficulty"`
	Question         *base64String   `json:"question"`
	CorrectAnswer    *base64String   `json:"correct_answer"`
	IncorrectAnswers *[]base64String `json:"incorrect_answers"`
}

func (w *triviaWire) validate() error {
	switch {
	case w.Category == nil:
		return missingField("category")
	case w.Kind == nil:
		return missingField("type")
	case w.Difficulty == nil:
		return missingField("difficulty")
	case w.Question == nil:
		return missingField("question")
	case w.CorrectAnswer == nil:
		return missingField("correct_answer")
	case w.IncorrectAnswers == nil:
		return missingField("incorrect_answers")
	}
	return nil
}

// UnmarshalJSON decodes the base64 wire representation. Every field is
// required.
func (t *Trivia) UnmarshalJSON(data []byte) error {
	var w triviaWire
	if err := json.Unmarshal(data, &w); err != nil {
		return err
	}
	if err := w.validate(); err != nil {
		return err
	}

	kind, err := ParseKind(string(*w.Kind))
	if err != nil {
		return err
	}
	difficulty, err := ParseDifficulty(string(*w.Difficulty))
	if err != nil {
		return err
	}

	incorrect := make([]string, len(*w.IncorrectAnswers))
	for i, a := range *w.IncorrectAnswers {
		incorrect[i] = string(a)
	}

	*t = Trivia{
		Category:         ParseCategory(string(*w.Category)),
		Kind:             kind,
		Difficulty:       difficulty,
		Question:         string(*w.Question),
		CorrectAnswer:    string(*w.CorrectAnswer),
		IncorrectAnswers: incorrect,
	}
	return nil
}

// Answers returns the correct answer followed by the incorrect ones
func (t *Trivia) Answers() []string {
	answers := make([]string, 0, len(t.IncorrectAnswers)+1)
	answers = append(answers, t.CorrectAnswer)
	return append(answers, t.IncorrectAnswers...)
}

// IsCorrect checks an answer against the correct one
func (t *Trivia) IsCorrect(answer string) bool {
	return answer == t.CorrectAnswer
}

// TokenResponse is returned by the token endpoints
type TokenResponse struct {
	ResponseCode    ResponseCode `json:"response_code"`
	ResponseMessage string       `json:"response_message,omitempty"`
	Token           string       `json:"token"`
}

// UnmarshalJSON requires response_code. An absent token decodes as empty
// and is rejected by the token methods, which can report the response code.
func (r *TokenResponse) UnmarshalJSON(data []byte) error {
	var wire struct {
		ResponseCode    *ResponseCode `json:"response_code"`
		ResponseMessage string        `json:"response_message"`
		Token           string        `json:"token"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	if wire.ResponseCode == nil {
		return missingField("response_code")
	}

	*r = TokenResponse{
		ResponseCode:    *wire.ResponseCode,
		ResponseMessage: wire.ResponseMessage,
		Token:           wire.Token,
	}
	return nil
}

// QuestionCount is the per difficulty breakdown of a category
type QuestionCount struct {
	Total  int `json:"total_question_count"`
	Easy   int `json:"total_easy_question_count"`
	Medium int `json:"total_medium_question_count"`
	Hard   int `json:"total_hard_question_count"`
}

// CategoryDetails is the payload of the category count endpoint
type CategoryDetails struct {
	CategoryID    Category      `json:"category_id"`
	QuestionCount QuestionCount `json:"category_question_count"`
}

// GlobalStats holds question totals by review state
type GlobalStats struct {
	Total    int `json:"total_num_of_questions"`
	Pending  int `json:"total_num_of_pending_questions"`
	Verified int `json:"total_num_of_verified_questions"`
	Rejected int `json:"total_num_of_rejected_questions"`
}

// GlobalDetails is the payload of the global count endpoint
type GlobalDetails struct {
	Overall    GlobalStats
	Categories map[Category]GlobalStats
}

// UnmarshalJSON decodes the id keyed categories object in two passes so that
// unknown ids are reported instead of being reinterpreted.
func (g *GlobalDetails) UnmarshalJSON(data []byte) error {
	var wire struct {
		Overall    GlobalStats            `json:"overall"`
		Categories map[string]GlobalStats `json:"categories"`
	}
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}

	categories, err := categoryMap(wire.Categories)
	if err != nil {
		return fmt.Errorf("global details: %w", err)
	}

	*g = GlobalDetails{
		Overall:    wire.Overall,
		Categories: categories,
	}
	return nil
}
