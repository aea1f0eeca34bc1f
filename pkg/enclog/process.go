package enclog

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/esolog/enclog-go/internal/safefile"
)

// maxLineBytes bounds a single log line. Encounter logs carry PLAYER_INFO
// lines with full gear arrays; 1MB leaves generous headroom.
const maxLineBytes = 1024 * 1024

var errLineTooLong = errors.New("line exceeds size cap")

// ProcessFile streams one encounter log file through a new Session.
//
// Malformed lines are skipped with a diagnostic and never abort the run;
// whatever resolved before a cancellation or trailing corruption remains
// valid and can still be flushed with WriteEncoded.
func ProcessFile(ctx context.Context, path string, opts ...Option) (*Session, error) {
	f, _, err := safefile.OpenRegular(path)
	if err != nil {
		return nil, fmt.Errorf("open encounter log: %w", err)
	}
	defer f.Close()
	return ProcessReader(ctx, f, opts...)
}

// ProcessReader streams log lines from r through a new Session.
//
// Cancellation is checked between lines, never mid-line, so the resolver
// state is always a valid prefix of the full run. The session processed so
// far is returned alongside ctx.Err() in that case.
func ProcessReader(ctx context.Context, r io.Reader, opts ...Option) (*Session, error) {
	sess := NewSession(opts...)

	br := bufio.NewReaderSize(r, 64*1024)
	lineNo := 0
	for {
		if err := ctx.Err(); err != nil {
			return sess, err
		}
		line, err := readLine(br)
		if err != nil {
			if errors.Is(err, errLineTooLong) {
				// An oversized line is malformed like any other: skip it
				// and keep streaming.
				lineNo++
				sess.stats.Lines++
				sess.stats.Malformed++
				sess.log.Warn("skipping oversized line",
					"line", lineNo, "cap_bytes", maxLineBytes)
				continue
			}
			if err != io.EOF {
				// A corrupt or truncated tail never discards prior valid
				// output.
				sess.log.Warn("stopped reading input", "line", lineNo, "error", err)
			}
			return sess, nil
		}
		lineNo++
		if _, err := sess.ParseLine(lineNo, line); err != nil {
			if errors.Is(err, ErrVersionMismatch) {
				return sess, err
			}
			// Parse diagnostics were already logged; keep streaming.
		}
		if sess.cfg.progressFn != nil && lineNo%sess.cfg.progressEvery == 0 {
			sess.cfg.progressFn(lineNo)
		}
	}
}

// readLine returns the next line without its terminator. A line over
// maxLineBytes is consumed to its end and reported as errLineTooLong so the
// caller can skip it without losing the rest of the stream.
func readLine(br *bufio.Reader) (string, error) {
	var buf []byte
	for {
		chunk, err := br.ReadSlice('\n')
		buf = append(buf, chunk...)
		switch {
		case err == bufio.ErrBufferFull:
			if len(buf) > maxLineBytes {
				return "", drainLine(br)
			}
		case err == nil:
			return strings.TrimSuffix(string(buf[:len(buf)-1]), "\r"), nil
		case err == io.EOF && len(buf) > 0:
			return strings.TrimSuffix(string(buf), "\r"), nil
		default:
			return "", err
		}
	}
}

// drainLine discards input up to and including the next newline.
func drainLine(br *bufio.Reader) error {
	for {
		_, err := br.ReadSlice('\n')
		switch err {
		case bufio.ErrBufferFull:
			continue
		case nil, io.EOF:
			return errLineTooLong
		default:
			return err
		}
	}
}
