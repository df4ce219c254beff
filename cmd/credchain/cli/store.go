package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/majorcontext/credchain"
	keyringsrc "github.com/majorcontext/credchain/source/keyring"
)

var (
	storeAccessKeyID     string
	storeSecretAccessKey string
	storeSessionToken    string
	storeToken           string
)

var storeCmd = &cobra.Command{
	Use:   "store",
	Short: "Store credentials in the OS keyring",
	Long: `Store credentials in the OS keyring for the selected profile, where
the "keyring" chain source can find them.`,
	Args: cobra.NoArgs,
	RunE: runStore,
}

var eraseCmd = &cobra.Command{
	Use:   "erase",
	Short: "Remove stored credentials from the OS keyring",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := keyringsrc.Erase(profile); err != nil {
			return err
		}
		fmt.Println("Credentials removed.")
		return nil
	},
}

func init() {
	storeCmd.Flags().StringVar(&storeAccessKeyID, "access-key-id", "", "access key id")
	storeCmd.Flags().StringVar(&storeSecretAccessKey, "secret-access-key", "", "secret access key")
	storeCmd.Flags().StringVar(&storeSessionToken, "session-token", "", "session token (optional)")
	storeCmd.Flags().StringVar(&storeToken, "token", "", "bearer token (instead of a key pair)")
	rootCmd.AddCommand(storeCmd)
	rootCmd.AddCommand(eraseCmd)
}

func runStore(cmd *cobra.Command, args []string) error {
	creds := credchain.Credentials{
		AccessKeyID:     storeAccessKeyID,
		SecretAccessKey: storeSecretAccessKey,
		SessionToken:    storeSessionToken,
		Token:           storeToken,
	}
	if !creds.HasKeys() && creds.Token == "" {
		return fmt.Errorf("provide --access-key-id and --secret-access-key, or --token")
	}
	if creds.AccessKeyID != "" && creds.SecretAccessKey == "" {
		return fmt.Errorf("--access-key-id requires --secret-access-key")
	}

	if err := keyringsrc.Store(profile, creds); err != nil {
		return err
	}
	fmt.Println("Credentials stored.")
	return nil
}
