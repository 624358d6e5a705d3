package cmd

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/beholder20/gmail-analysis/internal/config"
	"github.com/beholder20/gmail-analysis/internal/google"
)

func newAuthCmd() *cobra.Command {
	var (
		cfgFile string
		account string
	)

	cmd := &cobra.Command{
		Use:   "auth",
		Short: "Authorize Gmail and Sheets access for an account",
		Long: `Run the Google OAuth flow and cache a token for the given account.
Open the printed URL in a browser, approve access, then paste the
authorization code back here.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = godotenv.Load()

			cfg, err := config.Load(cfgFile)
			if err != nil {
				return err
			}
			google.SetCredentials(cfg.Google.ClientID, cfg.Google.ClientSecret)

			url, err := google.GetAuthURL()
			if err != nil {
				return err
			}
			fmt.Printf("Open the following URL in your browser:\n\n  %s\n\nAuthorization code: ", url)

			reader := bufio.NewReader(os.Stdin)
			code, err := reader.ReadString('\n')
			if err != nil {
				return fmt.Errorf("failed to read authorization code: %w", err)
			}
			code = strings.TrimSpace(code)
			if code == "" {
				return fmt.Errorf("empty authorization code")
			}

			if err := google.SaveToken(context.Background(), account, code); err != nil {
				return err
			}
			fmt.Printf("Token saved for account %q.\n", account)
			return nil
		},
	}

	cmd.Flags().StringVar(&cfgFile, "config", "", "Path to the config file")
	cmd.Flags().StringVar(&account, "account", "default", "Google account name to authorize")
	return cmd
}
