package enclog

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/nxadm/tail"

	"github.com/esolog/enclog-go/pkg/enclog/record"
)

// watchErrBuffer is the error channel buffer. A small buffer prevents error
// loss while the consumer is busy with a summary.
const watchErrBuffer = 16

// Watch follows a live encounter log and emits a summary every time a fight
// closes. The game appends to Encounter.log while recording is enabled, so
// this is a tail -f over the same parsing pipeline ProcessFile uses.
//
// Both channels close when ctx is cancelled or the tail ends. The returned
// session keeps accumulating the full model; flush it with WriteEncoded once
// watching stops.
func Watch(ctx context.Context, path string, opts ...Option) (*Session, <-chan FightSummary, <-chan error, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil, nil, fmt.Errorf("%w: %s", ErrNoLogFile, path)
		}
		return nil, nil, nil, err
	}

	t, err := tail.TailFile(path, tail.Config{
		Follow:    true,
		ReOpen:    true,
		MustExist: true,
		Logger:    tail.DiscardingLogger,
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("tail encounter log: %w", err)
	}

	sess := NewSession(opts...)
	summaries := make(chan FightSummary)
	errs := make(chan error, watchErrBuffer)

	go func() {
		defer close(summaries)
		defer close(errs)
		defer t.Cleanup()
		defer t.Stop() //nolint:errcheck

		lineNo := 0
		for {
			select {
			case <-ctx.Done():
				return
			case line, ok := <-t.Lines:
				if !ok {
					return
				}
				if line.Err != nil {
					select {
					case errs <- line.Err:
					default:
					}
					continue
				}
				lineNo++
				rec, err := sess.ParseLine(lineNo, line.Text)
				if err != nil {
					select {
					case errs <- err:
					default:
					}
					continue
				}
				if _, closed := rec.(record.EndCombat); closed {
					if all := sess.Summaries(); len(all) > 0 {
						select {
						case summaries <- all[len(all)-1]:
						case <-ctx.Done():
							return
						}
					}
				}
			}
		}
	}()

	return sess, summaries, errs, nil
}
