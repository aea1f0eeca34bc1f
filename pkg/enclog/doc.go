// Package enclog parses ESO encounter log files into an in-memory combat
// model and re-encodes it into the pipe-delimited line format consumed by
// the analytics website.
//
// This package allows you to:
//   - Stream a recorded Encounter.log file line by line into a Session
//   - Resolve transient session unit ids to stable, deduplicated indices
//   - Group combat records into fights and derive their display names
//   - Flush the accumulated model as densely encoded output lines
//
// # Basic Usage
//
// To convert a recorded log file:
//
//	sess, err := enclog.ProcessFile(ctx, "Encounter.log")
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	out, _ := os.Create("report.txt")
//	defer out.Close()
//	if err := sess.WriteEncoded(out); err != nil {
//	    log.Fatal(err)
//	}
//
// To feed lines yourself:
//
//	sess := enclog.NewSession()
//	for i, line := range lines {
//	    if _, err := sess.ParseLine(i+1, line); err != nil {
//	        log.Printf("skipping: %v", err) // malformed lines never abort
//	    }
//	}
//
// A Session owns all identity tables for exactly one input file and is not
// safe for concurrent use. Process whole files per Session; never shard one
// file across sessions, since index assignment depends on arrival order.
package enclog
