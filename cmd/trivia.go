package cmd

import (
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/otdb/config"
	"github.com/s0up4200/otdb/filter"
	"github.com/s0up4200/otdb/opentdb"
	"github.com/s0up4200/otdb/opentdb/blocking"
)

var (
	amount      int
	category    string
	difficulty  string
	kind        string
	filterExpr  string
	presets     []string
	newToken    bool
	showAnswers bool
)

// triviaCmd represents the trivia command
var triviaCmd = &cobra.Command{
	Use:   "trivia",
	Short: "Fetch trivia questions",
	Long: `Fetch questions from OpenTDB. Defaults come from the trivia section of
the config file; flags override them.

Filters are expr expressions evaluated against each question, for example:
  otdb trivia --amount 20 --filter 'contains(question, "planet") and difficulty != "easy"'`,
	RunE: runTrivia,
}

func init() {
	rootCmd.AddCommand(triviaCmd)

	triviaCmd.Flags().IntVarP(&amount, "amount", "n", 0, "number of questions (1-50)")
	triviaCmd.Flags().StringVarP(&category, "category", "c", "", "category id or name")
	triviaCmd.Flags().StringVarP(&difficulty, "difficulty", "d", "", "easy, medium or hard")
	triviaCmd.Flags().StringVarP(&kind, "type", "t", "", "boolean or multiple")
	triviaCmd.Flags().StringVarP(&filterExpr, "filter", "f", "", "filter expression")
	triviaCmd.Flags().StringSliceVarP(&presets, "preset", "p", nil, "use preset filters from config")
	triviaCmd.Flags().BoolVar(&newToken, "new-token", false, "request a fresh session token first")
	triviaCmd.Flags().BoolVarP(&showAnswers, "answers", "a", false, "mark the correct answer")
}

func runTrivia(cmd *cobra.Command, args []string) error {
	query := cfg.Trivia
	if cmd.Flags().Changed("amount") {
		query.Amount = amount
	}
	if cmd.Flags().Changed("category") {
		query.Category = category
	}
	if cmd.Flags().Changed("difficulty") {
		query.Difficulty = difficulty
	}
	if cmd.Flags().Changed("type") {
		query.Type = kind
	}

	req, err := buildTriviaRequest(query)
	if err != nil {
		return err
	}

	selectFn, err := buildSelector(filterExpr, presets)
	if err != nil {
		return err
	}

	if newToken {
		t, err := client.GenerateToken()
		if err != nil {
			return err
		}
		client.SetToken(t)
		logger.Info().Msg("Using a new session token")
	}

	if preview, err := req.URL(); err == nil {
		logger.Debug().Str("url", preview).Msg("Fetching trivia")
	}

	resp, err := req.Send()
	if err != nil {
		return fmt.Errorf("failed to fetch trivia: %w", err)
	}

	if resp.ResponseCode != opentdb.ResponseSuccess {
		warnResponseCode(resp.ResponseCode)
		if len(resp.Results) == 0 {
			return nil
		}
	}

	questions, err := selectFn(resp.Results)
	if err != nil {
		return err
	}

	logger.Info().
		Int("fetched", len(resp.Results)).
		Int("shown", len(questions)).
		Msg("Trivia fetched")

	printTrivia(cmd.OutOrStdout(), questions, showAnswers)
	return nil
}

// buildTriviaRequest maps the query onto a request, validating every field
func buildTriviaRequest(query config.TriviaConfig) (*blocking.Request[opentdb.TriviaResponse], error) {
	req := client.Trivia()

	if query.Amount != 0 {
		if err := req.SetQuestionCount(query.Amount); err != nil {
			return nil, err
		}
	}

	c, err := config.ResolveCategory(query.Category)
	if err != nil {
		return nil, err
	}
	req.SetCategory(c)

	d, err := config.ResolveDifficulty(query.Difficulty)
	if err != nil {
		return nil, err
	}
	req.SetDifficulty(d)

	k, err := config.ResolveKind(query.Type)
	if err != nil {
		return nil, err
	}
	req.SetKind(k)

	return req, nil
}

// buildSelector combines an ad hoc expression with named presets
func buildSelector(expression string, names []string) (func([]opentdb.Trivia) ([]opentdb.Trivia, error), error) {
	manager := filter.NewManager()
	if err := manager.RegisterFilters(cfg.Filter); err != nil {
		return nil, err
	}

	selected := append([]string(nil), names...)
	if expression != "" {
		if err := manager.RegisterFilter("--filter", expression); err != nil {
			return nil, fmt.Errorf("invalid filter expression: %w", err)
		}
		selected = append(selected, "--filter")
	}

	for _, name := range names {
		if _, ok := manager.GetFilter(name); !ok {
			return nil, fmt.Errorf("preset '%s' not found in config (available: %s)", name, strings.Join(manager.ListFilters(), ", "))
		}
	}

	return func(items []opentdb.Trivia) ([]opentdb.Trivia, error) {
		return manager.SelectFiltered(selected, items)
	}, nil
}

func warnResponseCode(code opentdb.ResponseCode) {
	event := logger.Warn().Str("response_code", code.String())
	switch {
	case code == opentdb.ResponseNoResults:
		event.Msg("Not enough questions for this query, try a smaller amount")
	case code == opentdb.ResponseTokenEmpty:
		event.Msg("Session token has returned every question for this query, run 'otdb token reset'")
	case code.IsTokenError():
		event.Msg("Session token not found, run 'otdb token generate'")
	default:
		event.Msg("OpenTDB rejected the query")
	}
}

func printTrivia(w io.Writer, questions []opentdb.Trivia, answers bool) {
	if len(questions) == 0 {
		fmt.Fprintln(w, "No questions matched.")
		return
	}

	for i, q := range questions {
		fmt.Fprintf(w, "%d. [%s | %s] %s\n", i+1, q.Category, q.Difficulty, q.Question)
		choices := q.Answers()
		if q.Kind == opentdb.KindMultipleChoice {
			// the correct answer is always first otherwise
			slices.Sort(choices)
		}
		for _, a := range choices {
			marker := "-"
			if answers && q.IsCorrect(a) {
				marker = "*"
			}
			fmt.Fprintf(w, "   %s %s\n", marker, a)
		}
	}
}
