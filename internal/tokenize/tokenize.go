// Package tokenize splits encounter log lines into positional fields.
//
// The grammar is an ad-hoc CSV variant: commas separate fields at bracket
// depth zero, square brackets nest array-valued fields, and double-quoted
// fields use "" as an escaped literal quote. The tokenizer never fails;
// malformed input yields whatever fields were accumulated.
package tokenize

import "strings"

// Fields splits one raw log line into its ordered field strings.
// An empty line yields zero fields.
func Fields(line string) []string {
	return split(line)
}

// Array splits the content of a bracket-array field into its elements.
// The surrounding brackets have already been stripped by Fields, so a
// nested element like "[HEAD,12345,T,...]" arrives here with one level of
// brackets intact and is returned as one element per pair. An empty bracket
// pair yields an empty string element rather than being omitted.
func Array(field string) []string {
	if field == "" {
		return nil
	}
	return split(field)
}

func split(s string) []string {
	var fields []string
	var cur strings.Builder
	depth := 0
	inQuote := false
	justClosed := false // a quoted field or bracket group just ended

	for i := 0; i < len(s); i++ {
		c := s[i]

		if inQuote {
			if c != '"' {
				cur.WriteByte(c)
				continue
			}
			if i+1 < len(s) && s[i+1] == '"' {
				cur.WriteByte('"')
				i++
				continue
			}
			// Closing quote: the field is complete now. The separator that
			// follows (if any) is consumed without emitting an extra field.
			inQuote = false
			justClosed = true
			fields = append(fields, cur.String())
			cur.Reset()
			continue
		}

		if justClosed {
			justClosed = false
			if c == ',' && depth == 0 {
				continue
			}
		}

		switch c {
		case '"':
			if depth == 0 {
				inQuote = true
			} else {
				cur.WriteByte(c)
			}
		case '[':
			if depth > 0 {
				cur.WriteByte(c)
			}
			depth++
		case ']':
			if depth > 0 {
				depth--
			}
			if depth > 0 {
				cur.WriteByte(c)
			} else {
				// An empty pair like [] must still produce a field; remember
				// that a group closed in case the line ends here.
				justClosed = cur.Len() == 0
				if justClosed {
					fields = append(fields, "")
					cur.Reset()
				}
			}
		case ',':
			if depth > 0 {
				cur.WriteByte(c)
			} else {
				fields = append(fields, cur.String())
				cur.Reset()
			}
		default:
			cur.WriteByte(c)
		}
	}

	// Unterminated quote: keep what was accumulated.
	if cur.Len() > 0 || inQuote {
		fields = append(fields, cur.String())
	}
	return fields
}
