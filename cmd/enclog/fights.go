package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/esolog/enclog-go/pkg/enclog"
)

var fightsFormat string

var fightsCmd = &cobra.Command{
	Use:   "fights <encounter-log>",
	Short: "List the fights recorded in an encounter log",
	Long: `Parse a recorded encounter log and list its fights without producing
the encoded report.

Examples:
  enclog fights Encounter.log
  enclog fights --format pretty Encounter.log`,
	Args: cobra.ExactArgs(1),
	RunE: runFights,
}

func init() {
	fightsCmd.Flags().StringVarP(&fightsFormat, "format", "f", "pretty",
		"Output format: jsonl, pretty")
	rootCmd.AddCommand(fightsCmd)
}

func runFights(cmd *cobra.Command, args []string) error {
	if !ValidFormats[fightsFormat] {
		return fmt.Errorf("unknown format: %s", fightsFormat)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	sess, err := enclog.ProcessFile(ctx, args[0],
		enclog.WithLogger(buildLogger()))
	if err != nil {
		return err
	}

	for _, s := range sess.Summaries() {
		if err := OutputSummary(fightsFormat, s, os.Stdout); err != nil {
			return err
		}
	}
	return nil
}
