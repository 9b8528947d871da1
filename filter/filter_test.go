package filter

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/otdb/opentdb"
)

func testTrivia() []opentdb.Trivia {
	return []opentdb.Trivia{
		{
			Category:         opentdb.CategoryVideoGames,
			Kind:             opentdb.KindMultipleChoice,
			Difficulty:       opentdb.DifficultyHard,
			Question:         "Which company developed Half-Life?",
			CorrectAnswer:    "Valve",
			IncorrectAnswers: []string{"id Software", "Epic Games", "Blizzard"},
		},
		{
			Category:         opentdb.CategoryAnimals,
			Kind:             opentdb.KindTrueOrFalse,
			Difficulty:       opentdb.DifficultyEasy,
			Question:         "Dogs are mammals.",
			CorrectAnswer:    "True",
			IncorrectAnswers: []string{"False"},
		},
		{
			Category:         opentdb.CategoryScienceAndNature,
			Kind:             opentdb.KindMultipleChoice,
			Difficulty:       opentdb.DifficultyMedium,
			Question:         "What is the chemical symbol for gold?",
			CorrectAnswer:    "Au",
			IncorrectAnswers: []string{"Ag", "Gd", "Go"},
		},
	}
}

func TestCompileFilter(t *testing.T) {
	tests := []struct {
		name        string
		expression  string
		wantErr     bool
		errContains string
	}{
		{
			name:       "valid expression",
			expression: `difficulty == "hard"`,
		},
		{
			name:        "empty expression",
			expression:  "   ",
			wantErr:     true,
			errContains: "empty expression",
		},
		{
			name:       "invalid syntax",
			expression: `contains(question, "unclosed`,
			wantErr:    true,
		},
		{
			name:       "unknown variable",
			expression: `rating > 3`,
			wantErr:    true,
		},
		{
			name:       "non boolean result",
			expression: `category_id + 1`,
			wantErr:    true,
		},
		{
			name:       "complex expression",
			expression: `type == "multiple" and category_id in [15, 17] and len(incorrect_answers) == 3 and words(question) > 3`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := CompileFilter(tt.expression)

			if tt.wantErr {
				require.Error(t, err)
				var compErr *CompilationError
				assert.ErrorAs(t, err, &compErr)
				if tt.errContains != "" {
					assert.Contains(t, err.Error(), tt.errContains)
				}
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tt.expression, filter.Expression())
		})
	}
}

func TestFilterMatch(t *testing.T) {
	items := testTrivia()

	tests := []struct {
		name       string
		expression string
		want       []string
	}{
		{
			name:       "difficulty",
			expression: `difficulty == "easy"`,
			want:       []string{"True"},
		},
		{
			name:       "type",
			expression: `type == "multiple"`,
			want:       []string{"Valve", "Au"},
		},
		{
			name:       "category name",
			expression: `startsWith(category, "entertainment:")`,
			want:       []string{"Valve"},
		},
		{
			name:       "category id",
			expression: `category_id == 27`,
			want:       []string{"True"},
		},
		{
			name:       "contains ignores case",
			expression: `contains(question, "GOLD")`,
			want:       []string{"Au"},
		},
		{
			name:       "incorrect answers",
			expression: `"Ag" in incorrect_answers`,
			want:       []string{"Au"},
		},
		{
			name:       "upper and lower",
			expression: `upper(correct_answer) == "VALVE" or lower(correct_answer) == "true"`,
			want:       []string{"Valve", "True"},
		},
		{
			name:       "ends with",
			expression: `endsWith(question, "?")`,
			want:       []string{"Valve", "Au"},
		},
		{
			name:       "no match",
			expression: `words(question) > 50`,
			want:       []string{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			filter, err := CompileFilter(tt.expression)
			require.NoError(t, err)

			matches, err := Select(filter, items)
			require.NoError(t, err)

			answers := make([]string, 0, len(matches))
			for _, m := range matches {
				answers = append(answers, m.CorrectAnswer)
			}
			assert.Equal(t, tt.want, answers)
		})
	}
}

func TestEvaluationError(t *testing.T) {
	filter, err := CompileFilter(`incorrect_answers[5] == "x"`)
	require.NoError(t, err)

	items := testTrivia()

	_, err = filter.Match(items[1])
	require.Error(t, err)
	var single *EvaluationError
	require.ErrorAs(t, err, &single)
	assert.Equal(t, -1, single.Index)
	assert.Equal(t, opentdb.CategoryAnimals, single.Category)

	_, err = Select(filter, items)
	require.Error(t, err)

	var evalErr *EvaluationError
	require.ErrorAs(t, err, &evalErr)
	assert.Equal(t, 0, evalErr.Index)
	assert.Equal(t, opentdb.CategoryVideoGames, evalErr.Category)
	assert.Equal(t, "Which company developed Half-Life?", evalErr.Question)
	assert.Contains(t, err.Error(), "question 1 (Entertainment: Video Games)")
	assert.NotNil(t, errors.Unwrap(err))
}

func TestEmptyExpression(t *testing.T) {
	_, err := CompileFilter("")
	assert.ErrorIs(t, err, ErrEmptyExpression)
}

func TestCompilerCache(t *testing.T) {
	compiler := NewExprCompiler(WithCache(2))

	first, err := compiler.Compile(`difficulty == "easy"`)
	require.NoError(t, err)
	again, err := compiler.Compile(`  difficulty == "easy"  `)
	require.NoError(t, err)
	assert.Same(t, first, again)
	assert.Equal(t, 1, compiler.Size())

	_, err = compiler.Compile(`difficulty == "medium"`)
	require.NoError(t, err)
	_, err = compiler.Compile(`difficulty == "hard"`)
	require.NoError(t, err)
	assert.Equal(t, 2, compiler.Size())

	compiler.Clear()
	assert.Zero(t, compiler.Size())

	uncached := NewExprCompiler()
	_, err = uncached.Compile(`true`)
	require.NoError(t, err)
	assert.Zero(t, uncached.Size())
}

func TestLRUEviction(t *testing.T) {
	cache := newLRUCache[int](2)
	cache.Put("a", 1)
	cache.Put("b", 2)

	_, ok := cache.Get("a")
	require.True(t, ok)

	cache.Put("c", 3)

	_, ok = cache.Get("b")
	assert.False(t, ok, "least recently used entry should be evicted")
	v, ok := cache.Get("a")
	assert.True(t, ok)
	assert.Equal(t, 1, v)

	cache.Put("a", 10)
	v, _ = cache.Get("a")
	assert.Equal(t, 10, v)
	assert.Equal(t, 2, cache.Size())
}

func TestCustomFunctions(t *testing.T) {
	compiler := NewExprCompiler(WithCustomFunctions(map[string]any{
		"isBoolean": func(kind string) bool { return kind == "boolean" },
	}))

	filter, err := compiler.Compile(`isBoolean(type)`)
	require.NoError(t, err)

	matches, err := Select(filter, testTrivia())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Dogs are mammals.", matches[0].Question)
}

func TestManager(t *testing.T) {
	m := NewManager()

	require.NoError(t, m.RegisterFilters(map[string]string{
		"hard":     `difficulty == "hard"`,
		"multiple": `type == "multiple"`,
	}))
	err := m.RegisterFilter("broken", `difficulty ==`)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "broken")

	assert.Equal(t, []string{"hard", "multiple"}, m.ListFilters())

	matches, err := m.SelectFiltered([]string{"multiple", "hard"}, testTrivia())
	require.NoError(t, err)
	require.Len(t, matches, 1)
	assert.Equal(t, "Valve", matches[0].CorrectAnswer)

	_, err = m.SelectFiltered([]string{"missing"}, testTrivia())
	assert.Error(t, err)

	m.UnregisterFilter("hard")
	_, ok := m.GetFilter("hard")
	assert.False(t, ok)

	err = m.RegisterFilters(map[string]string{"ok": `true`, "bad": `nope(`})
	require.Error(t, err)
	_, ok = m.GetFilter("ok")
	assert.False(t, ok, "no filter is registered when one fails")
}

func TestAllEmptyMatchesEverything(t *testing.T) {
	matches, err := Select(All(), testTrivia())
	require.NoError(t, err)
	assert.Len(t, matches, 3)
}
