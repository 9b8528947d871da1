package cmd

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/otdb/config"
	"github.com/s0up4200/otdb/opentdb"
	"github.com/s0up4200/otdb/opentdb/blocking"
)

var (
	cfgFile  string
	token    string
	logLevel string
	cfg      *config.Config
	logger   zerolog.Logger
	client   *blocking.Client

	version   = "dev"
	buildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "otdb",
	Short: "Fetch questions and statistics from the Open Trivia Database",
	Long: `otdb is a command line client for the Open Trivia Database (opentdb.com).

It fetches questions filtered by category, difficulty and type, manages
session tokens so questions are not repeated, and reports question counts.`,
	SilenceUsage:       true,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: shutdownApp,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// SetVersion records build information shown by the version command
func SetVersion(v, built string) {
	version = v
	buildTime = built
	rootCmd.Version = v
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./otdb.yaml or ~/.config/otdb/otdb.yaml)")
	rootCmd.PersistentFlags().StringVar(&token, "token", "", "session token (overrides api.token)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: trace, debug, info, warn, error")

	rootCmd.AddCommand(versionCmd)
}

// initializeApp loads the configuration and creates the client
func initializeApp(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	if cmd.Flags().Changed("token") {
		cfg.API.Token = token
	}
	if cmd.Flags().Changed("log-level") {
		cfg.Logging.Level = logLevel
	}

	logger = setupLogger(cfg.Logging)

	client = blocking.NewClient(
		opentdb.WithBaseURL(cfg.API.BaseURL),
		opentdb.WithTimeout(cfg.API.Timeout),
		opentdb.WithUserAgent(cfg.API.UserAgent),
		opentdb.WithToken(cfg.API.Token),
		opentdb.WithLogger(logger),
	)

	logger.Debug().
		Str("base_url", cfg.API.BaseURL).
		Bool("token", cfg.API.Token != "").
		Msg("OpenTDB client initialized")

	return nil
}

func shutdownApp(cmd *cobra.Command, args []string) error {
	if client != nil {
		return client.Close()
	}
	return nil
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig) zerolog.Logger {
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "trace":
		level = zerolog.TraceLevel
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	if cfg.Format == "json" {
		return zerolog.New(os.Stderr).Level(level).With().Timestamp().Logger()
	}

	output := zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isatty.IsTerminal(os.Stderr.Fd()),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	// No config or client needed
	PersistentPreRunE:  func(*cobra.Command, []string) error { return nil },
	PersistentPostRunE: func(*cobra.Command, []string) error { return nil },
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "otdb %s (built %s)\n", version, buildTime)
	},
}
