// Command enclog converts ESO encounter logs into the analytics line format
// and follows live logs for fight summaries.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
)

var verbose bool

var rootCmd = &cobra.Command{
	Use:   "enclog",
	Short: "Parse and re-encode ESO encounter logs",
	Long: `enclog parses the game's Encounter.log combat log format, builds an
in-memory model of units, abilities, and fights, and re-encodes it into the
densely indexed line format consumed by the analytics website.

Use "enclog convert" for recorded files and "enclog tail" to follow a live
log while playing.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false,
		"Log diagnostics (unknown tags, skipped lines) to stderr")
}

// buildLogger returns the diagnostics logger, nil when not verbose.
func buildLogger() *slog.Logger {
	if !verbose {
		return nil
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
