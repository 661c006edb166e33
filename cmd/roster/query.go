package main

import (
	"fmt"
	"os"

	"github.com/matsen/roster/internal/record"
	"github.com/matsen/roster/internal/storage"
	"github.com/spf13/cobra"
)

var queryDBPath string

func init() {
	queryCmd.Flags().StringVar(&queryDBPath, "db", "", "SQLite index path (default from config)")
	rootCmd.AddCommand(queryCmd)
}

var queryCmd = &cobra.Command{
	Use:   "query <word>",
	Short: "Find records in the SQLite index",
	Long: `Print every indexed record with a field exactly equal to word, like %F.
Matching is case-sensitive and never partial.

Run 'roster index <file>' first to build the index.

Example:
  roster query Tokyo --human`,
	Args: cobra.ExactArgs(1),
	RunE: runQuery,
}

func runQuery(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()

	dbPath := queryDBPath
	if dbPath == "" {
		dbPath = cfg.IndexDB
	}
	if _, err := os.Stat(dbPath); err != nil {
		exitWithError(ExitConfigError, "index %s not found\n\nRun 'roster index <file>' to create it.", dbPath)
	}

	recs, err := queryIndex(dbPath, args[0])
	if err != nil {
		exitWithError(ExitError, "querying index: %v", err)
	}

	if humanOutput {
		for _, r := range recs {
			fmt.Print(r.Display())
		}
		return nil
	}
	return outputJSON(toRecordResponses(recs))
}

// queryIndex returns the records in the index at dbPath that match word.
func queryIndex(dbPath, word string) ([]record.Record, error) {
	db, err := storage.OpenDB(dbPath)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	return db.Find(word)
}
