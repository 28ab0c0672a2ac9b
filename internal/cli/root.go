// Package cli implements the speakcheck CLI commands.
package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/mlazarev/speakcheck/internal/config"
	"github.com/mlazarev/speakcheck/internal/deck"
)

var (
	dbPath string
	cfg    *config.Config
)

// RootCmd is the top-level command.
var RootCmd = &cobra.Command{
	Use:   "speakcheck",
	Short: "Spoken-answer matching for language lessons",
	Long:  "Decides whether an ASR transcript acceptably matches an expected answer, and keeps a local review deck of previously seen exercise tasks. SQLite-backed, single binary.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		c, err := config.Load()
		if err != nil {
			exitErr("load config", err)
		}
		cfg = c
		if level, err := logrus.ParseLevel(c.Log.Level); err == nil {
			logrus.SetLevel(level)
		}
	},
}

func init() {
	RootCmd.PersistentFlags().StringVarP(&dbPath, "db", "d", "", "Database path (default: SPEAKCHECK_DB_PATH or ~/.speakcheck/decks.db)")
}

func getDBPath() string {
	if dbPath != "" {
		return dbPath
	}
	if cfg != nil && cfg.DB.Path != "" {
		return cfg.DB.Path
	}
	home, _ := os.UserHomeDir()
	return filepath.Join(home, ".speakcheck", "decks.db")
}

func openStore() (*deck.SQLiteStore, error) {
	return deck.NewSQLiteStore(getDBPath())
}

func newManager(store deck.Store) *deck.Manager {
	opts := []deck.Option{}
	if cfg != nil {
		opts = append(opts,
			deck.WithPerLessonLimit(cfg.Deck.PerLessonLimit),
			deck.WithMaxDeckSize(cfg.Deck.MaxDeckSize),
		)
	}
	return deck.NewManager(store, opts...)
}

func exitErr(msg string, err error) {
	fmt.Fprintf(os.Stderr, "error: %s: %v\n", msg, err)
	os.Exit(1)
}
