package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

const asciiLogo = `       _       _           _                 _
   ___| | __ _(_)_ __ ___ | | ___   __ _  __| |
  / __| |/ _` + "`" + ` | | '_ ` + "`" + ` _ \| |/ _ \ / _` + "`" + ` |/ _` + "`" + ` |
 | (__| | (_| | | | | | | | | (_) | (_| | (_| |
  \___|_|\__,_|_|_| |_| |_|_|\___/ \__,_|\__,_|`

var rootCmd = &cobra.Command{
	Use:   "claimload",
	Short: "Blob-to-warehouse claims loader",
	Long: asciiLogo + `

claimload moves healthcare claim feeds from blob storage into the warehouse:
it stages the landing CSVs, runs the idempotent upsert procedures, and records
every run in the ETL_Run ledger. Re-running a load with the same inputs never
duplicates data.

Exit Codes:
  0  - Success
  1  - General error
  2  - CLI usage error (invalid arguments or flags)
  3  - Panic or unexpected system error
  10 - Invalid configuration or parameters
  11 - Warehouse or storage connection failed
  12 - Source object missing, unparseable, or wrong schema
  13 - A staging load would insert zero rows
  14 - A merge procedure failed server-side`,
	SilenceUsage: true,
}

// Execute runs the root command
func Execute() error {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		printVersionInfo()
		return nil
	}
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().Bool("help", false, "Help for claimload")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Enable verbose output for all commands")
}

// getVerboseFlag safely retrieves the verbose flag value
func getVerboseFlag(cmd *cobra.Command) bool {
	verbose, err := cmd.Flags().GetBool("verbose")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: Failed to get verbose flag: %v\n", err)
		return false
	}
	return verbose
}
