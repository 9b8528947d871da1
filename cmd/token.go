package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

// tokenCmd groups the session token commands
var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Manage OpenTDB session tokens",
	Long: `Session tokens make OpenTDB avoid returning a question twice. Pass the
token with --token, OTDB_API_TOKEN or api.token in the config file.`,
}

var tokenGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Request a new session token",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		t, err := client.GenerateToken()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), t)
		return nil
	},
}

var tokenResetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Reset the configured session token",
	Long: `Reset the question history of the configured session token. Without a
configured token a new one is generated.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if _, ok := client.Token(); !ok {
			logger.Info().Msg("No session token configured, generating one")
		}

		t, err := client.ResetToken()
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), t)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(tokenCmd)
	tokenCmd.AddCommand(tokenGenerateCmd)
	tokenCmd.AddCommand(tokenResetCmd)
}
