package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/esolog/enclog-go/internal/livefeed"
	"github.com/esolog/enclog-go/internal/logfinder"
	"github.com/esolog/enclog-go/pkg/enclog"
)

var (
	tailLogDir string
	tailFormat string
	tailServe  string
	tailOut    string
)

var tailCmd = &cobra.Command{
	Use:   "tail",
	Short: "Follow a live encounter log and print fight summaries",
	Long: `Follow the game's Encounter.log while it is being written and print a
summary every time a fight ends.

Summaries are output as JSON Lines by default (one JSON object per line),
which makes it easy to process with tools like jq.

Examples:
  # Follow with auto-detected log directory
  enclog tail

  # Specify the log directory
  enclog tail --log-dir "~/Documents/Elder Scrolls Online/live/Logs"

  # Human-readable output
  enclog tail --format pretty

  # Also broadcast summaries to websocket subscribers on ws://:8299/ws
  enclog tail --serve :8299

  # Write the encoded report when the tail stops
  enclog tail -o report.txt

  # Pipe to jq
  enclog tail | jq 'select(.duration_ms > 60000)'`,
	RunE: runTail,
}

func init() {
	tailCmd.Flags().StringVarP(&tailLogDir, "log-dir", "d", "",
		"Encounter log directory (auto-detected if not specified)")
	tailCmd.Flags().StringVarP(&tailFormat, "format", "f", "jsonl",
		"Output format: jsonl, pretty")
	tailCmd.Flags().StringVar(&tailServe, "serve", "",
		"Also serve summaries over websocket at this address (e.g. :8299)")
	tailCmd.Flags().StringVarP(&tailOut, "output", "o", "",
		"Write the encoded report to this file when the tail stops")
	rootCmd.AddCommand(tailCmd)
}

func runTail(cmd *cobra.Command, args []string) error {
	if !ValidFormats[tailFormat] {
		return fmt.Errorf("unknown format: %s", tailFormat)
	}

	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	path, err := logfinder.FindLogFile(tailLogDir)
	if err != nil {
		return err
	}

	logger := buildLogger()
	sess, summaries, errs, err := enclog.Watch(ctx, path,
		enclog.WithLogger(logger))
	if err != nil {
		return err
	}

	var hub *livefeed.Hub
	if tailServe != "" {
		hub = livefeed.NewHub(logger)
		go func() {
			if err := livefeed.Serve(ctx, tailServe, hub); err != nil {
				fmt.Fprintln(os.Stderr, "livefeed:", err)
			}
		}()
	}

	for summaries != nil || errs != nil {
		select {
		case s, ok := <-summaries:
			if !ok {
				summaries = nil
				continue
			}
			if err := OutputSummary(tailFormat, s, os.Stdout); err != nil {
				return err
			}
			if hub != nil {
				hub.Broadcast(s)
			}
		case e, ok := <-errs:
			if !ok {
				errs = nil
				continue
			}
			fmt.Fprintln(os.Stderr, "warning:", e)
		}
	}

	if tailOut != "" {
		f, err := os.Create(tailOut)
		if err != nil {
			return err
		}
		defer f.Close()
		if err := sess.WriteEncoded(f); err != nil {
			return err
		}
	}
	return nil
}
