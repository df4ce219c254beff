package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/majorcontext/credchain"
	"github.com/majorcontext/credchain/internal/config"
	"github.com/majorcontext/credchain/internal/log"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Walk the chain and print the first credentials found",
	Long: `Walk the configured chain of credential sources and print the first
credentials found as credential_process JSON, suitable for use from an
AWS config file:

  [profile dev]
  credential_process = credchain resolve

See: https://docs.aws.amazon.com/cli/latest/userguide/cli-configure-sourcing-external.html`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}

func runResolve(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	cfg.Apply()

	chain := credchain.New(credchain.WithLogger(log.Logger()))
	for _, name := range cfg.Providers {
		p, err := credchain.NewSource(name)
		if err != nil {
			return err
		}
		if err := chain.Add(p); err != nil {
			return err
		}
	}

	creds, err := chain.Resolve(cmd.Context())
	if err != nil {
		return err
	}

	return writeCredentials(os.Stdout, creds)
}

// writeCredentials prints creds in AWS credential_process format. Token
// credentials without a key pair are printed as a bare token document.
func writeCredentials(w io.Writer, creds credchain.Credentials) error {
	var resp map[string]any
	if creds.HasKeys() {
		resp = map[string]any{
			"Version":         1,
			"AccessKeyId":     creds.AccessKeyID,
			"SecretAccessKey": creds.SecretAccessKey,
		}
		if creds.SessionToken != "" {
			resp["SessionToken"] = creds.SessionToken
		}
		if !creds.Expires.IsZero() {
			resp["Expiration"] = creds.Expires.Format(time.RFC3339)
		}
	} else {
		resp = map[string]any{
			"Version": 1,
			"Token":   creds.Token,
		}
		if !creds.Expires.IsZero() {
			resp["Expiration"] = creds.Expires.Format(time.RFC3339)
		}
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(resp)
}
