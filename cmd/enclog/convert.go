package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/esolog/enclog-go/pkg/enclog"
	"github.com/esolog/enclog-go/pkg/enclog/refdata"
)

var (
	convertOut     string
	convertStrict  bool
	convertRefdata string
	convertQuiet   bool
)

var convertCmd = &cobra.Command{
	Use:   "convert <encounter-log>",
	Short: "Convert a recorded encounter log to the analytics line format",
	Long: `Convert a recorded Encounter.log file into the pipe-delimited line
format consumed by the analytics website.

The whole file is streamed line by line; malformed lines are skipped with a
diagnostic and never abort the conversion.

Examples:
  # Convert to stdout
  enclog convert Encounter.log

  # Convert to a file, with progress on stderr
  enclog convert Encounter.log -o report.txt

  # Refuse files recorded under an unsupported log format version
  enclog convert --strict-version Encounter.log

  # Layer custom ability/zone names over the bundled tables
  enclog convert --refdata names.yaml Encounter.log`,
	Args: cobra.ExactArgs(1),
	RunE: runConvert,
}

func init() {
	convertCmd.Flags().StringVarP(&convertOut, "output", "o", "",
		"Output file (default stdout)")
	convertCmd.Flags().BoolVar(&convertStrict, "strict-version", false,
		"Abort on encounter log version mismatch instead of warning")
	convertCmd.Flags().StringVar(&convertRefdata, "refdata", "",
		"YAML file with ability/zone/set name overrides")
	convertCmd.Flags().BoolVarP(&convertQuiet, "quiet", "q", false,
		"Suppress the progress and summary output on stderr")
	rootCmd.AddCommand(convertCmd)
}

func runConvert(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(),
		syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	opts := []enclog.Option{
		enclog.WithLogger(buildLogger()),
		enclog.WithStrictVersion(convertStrict),
	}
	if convertRefdata != "" {
		table, err := refdata.Load(convertRefdata)
		if err != nil {
			return err
		}
		opts = append(opts, enclog.WithRefData(table))
	}
	if !convertQuiet {
		opts = append(opts, enclog.WithProgress(100000, func(lines int) {
			fmt.Fprintf(os.Stderr, "\r%d lines...", lines)
		}))
	}

	sess, err := enclog.ProcessFile(ctx, args[0], opts...)
	if err != nil && sess == nil {
		return err
	}
	// A cancelled run still flushes the valid prefix.
	interrupted := err != nil

	out := os.Stdout
	if convertOut != "" {
		f, createErr := os.Create(convertOut)
		if createErr != nil {
			return createErr
		}
		defer f.Close()
		out = f
	}
	if err := sess.WriteEncoded(out); err != nil {
		return err
	}

	if !convertQuiet {
		st := sess.Stats()
		fmt.Fprintf(os.Stderr, "\r%d lines (%d records, %d skipped), %d fights\n",
			st.Lines, st.Records, st.Malformed, len(sess.Fights()))
	}
	if interrupted {
		return err
	}
	return nil
}
