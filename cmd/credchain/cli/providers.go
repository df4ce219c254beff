package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/majorcontext/credchain"
)

var providersCmd = &cobra.Command{
	Use:   "providers",
	Short: "List available credential sources",
	Long: `List the credential sources that can appear in the chain, with the
default try order marked.`,
	Args: cobra.NoArgs,
	RunE: runProviders,
}

var providersJSON bool

func init() {
	providersCmd.Flags().BoolVar(&providersJSON, "json", false, "output as JSON")
	rootCmd.AddCommand(providersCmd)
}

// sourceDescriptions describes the built-in sources.
var sourceDescriptions = map[string]string{
	"instance-profile":   "EC2 instance role credentials via IMDS",
	"environment":        "application settings file (~/.credchain/credentials.yaml)",
	"system-environment": "AWS_ACCESS_KEY_ID / AWS_SECRET_ACCESS_KEY environment variables",
	"assume-role":        "STS AssumeRole (CREDCHAIN_ROLE_ARN)",
	"secrets-manager":    "AWS Secrets Manager secret (CREDCHAIN_SECRET_ID)",
	"keyring":            "OS keyring entry written by 'credchain store'",
}

type sourceInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default"`
}

func runProviders(cmd *cobra.Command, args []string) error {
	inDefault := make(map[string]bool)
	for _, name := range credchain.DefaultProviders() {
		inDefault[name] = true
	}

	var infos []sourceInfo
	for _, name := range credchain.Sources() {
		infos = append(infos, sourceInfo{
			Name:        name,
			Description: sourceDescriptions[name],
			Default:     inDefault[name],
		})
	}

	if providersJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(infos)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tDEFAULT\tDESCRIPTION")
	for _, info := range infos {
		def := ""
		if info.Default {
			def = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\n", info.Name, def, info.Description)
	}
	return w.Flush()
}
