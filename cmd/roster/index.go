package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/dustin/go-humanize"
	"github.com/matsen/roster/internal/session"
	"github.com/matsen/roster/internal/storage"
	"github.com/spf13/cobra"
)

var indexDBPath string

func init() {
	indexCmd.Flags().StringVar(&indexDBPath, "db", "", "SQLite index path (default from config)")
	rootCmd.AddCommand(indexCmd)
}

var indexCmd = &cobra.Command{
	Use:   "index <file>",
	Short: "Build the SQLite query index from a record file",
	Long: `Read a record file the same way %R does (directive lines are executed,
output is discarded) and replace the SQLite index with the resulting records.

Example:
  roster index people.csv --db people.db`,
	Args: cobra.ExactArgs(1),
	RunE: runIndex,
}

func runIndex(cmd *cobra.Command, args []string) error {
	cfg := mustLoadConfig()
	logger := mustNewLogger(cfg)

	dbPath := indexDBPath
	if dbPath == "" {
		dbPath = cfg.IndexDB
	}

	n, err := buildIndex(args[0], dbPath, logger)
	if err != nil {
		if session.Kind(err) != session.KindOther {
			exitWithError(ExitDataError, "indexing %s: %v", args[0], err)
		}
		exitWithError(ExitError, "indexing %s: %v", args[0], err)
	}

	var size int64
	if info, err := os.Stat(dbPath); err == nil {
		size = info.Size()
	}

	if humanOutput {
		fmt.Printf("Indexed %d records into %s (%s)\n", n, dbPath, humanize.Bytes(uint64(size)))
		return nil
	}
	return outputJSON(IndexResponse{Status: "indexed", Path: dbPath, Records: n, Bytes: size})
}

// buildIndex loads path through a silent session and rebuilds the index at dbPath.
// A %Q inside the file ends loading early without failing.
func buildIndex(path, dbPath string, logger *slog.Logger) (int, error) {
	s := session.New(io.Discard, session.WithLogger(logger))
	if err := s.Load(path); err != nil && !errors.Is(err, session.ErrQuit) {
		return 0, err
	}

	db, err := storage.OpenDB(dbPath)
	if err != nil {
		return 0, err
	}
	defer db.Close()

	if _, err := db.Rebuild(s.Collection().Records()); err != nil {
		return 0, err
	}
	return db.Count()
}
