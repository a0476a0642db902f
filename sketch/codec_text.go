// SPDX-License-Identifier: MIT

package sketch

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/katalvlaran/pdsketch/pd"
)

// Text format, one record per line:
//
//	line   := point "; " parent "; " plan "\n"
//	point  := real WS real
//	parent := integer | "None"
//	plan   := "{" entry (", " entry)* "}"
//	entry  := real WS real ": " integer
//
// The reader is whitespace-tolerant around the separators and also accepts
// plans wrapped as "defaultdict(<class 'int'>, {...})", as written by the
// legacy tool.
const (
	fieldSep   = "; "
	noneParent = "None"

	legacyPlanPrefix = "defaultdict(<class 'int'>, "
	legacyPlanSuffix = ")"

	maxLineBytes = 64 << 20
)

func encodeText(w io.Writer, records []Record) error {
	for i, r := range records {
		if _, err := io.WriteString(w, r.Point.String()+fieldSep+formatParent(r.Parent)+fieldSep+r.Delta.String()+"\n"); err != nil {
			return fmt.Errorf("sketch: write record %d: %w", i, err)
		}
	}

	return nil
}

func formatParent(parent int) string {
	if parent == NoParent {
		return noneParent
	}

	return strconv.Itoa(parent)
}

func decodeText(r io.Reader) ([]Record, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64<<10), maxLineBytes)

	var records []Record
	for ln := 1; sc.Scan(); ln++ {
		rec, err := parseLine(sc.Text())
		if err != nil {
			return nil, fmt.Errorf("sketch: line %d: %w: %w", ln, ErrFormat, err)
		}
		records = append(records, rec)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("sketch: read: %w", err)
	}

	return records, nil
}

func parseLine(line string) (Record, error) {
	fields, err := splitFields(strings.TrimRight(line, "\r\n"))
	if err != nil {
		return Record{}, err
	}

	point, err := pd.ParsePoint(fields[0])
	if err != nil {
		return Record{}, err
	}
	parent, err := parseParent(fields[1])
	if err != nil {
		return Record{}, err
	}
	plan, err := pd.ParsePlan(unwrapLegacyPlan(fields[2]))
	if err != nil {
		return Record{}, err
	}

	return Record{Point: point, Parent: parent, Delta: plan}, nil
}

// splitFields cuts line at every ';' outside braces into exactly three
// trimmed fields.
func splitFields(line string) ([]string, error) {
	fields := make([]string, 0, 3)
	depth, start := 0, 0
	for i, r := range line {
		switch r {
		case '{':
			depth++
		case '}':
			depth--
			if depth < 0 {
				return nil, fmt.Errorf("unbalanced '}' at %d", i)
			}
		case ';':
			if depth == 0 {
				fields = append(fields, strings.TrimSpace(line[start:i]))
				start = i + 1
			}
		}
	}
	if depth != 0 {
		return nil, fmt.Errorf("unclosed '{'")
	}
	fields = append(fields, strings.TrimSpace(line[start:]))
	if len(fields) != 3 {
		return nil, fmt.Errorf("want 3 fields, got %d", len(fields))
	}

	return fields, nil
}

func parseParent(s string) (int, error) {
	if s == noneParent {
		return NoParent, nil
	}
	v, err := pd.ParseInteger(s)
	if err != nil {
		return 0, fmt.Errorf("parent: %w", err)
	}
	if v < 0 {
		return 0, fmt.Errorf("parent %d is negative", v)
	}

	return v, nil
}

func unwrapLegacyPlan(s string) string {
	if strings.HasPrefix(s, legacyPlanPrefix) && strings.HasSuffix(s, legacyPlanSuffix) {
		return s[len(legacyPlanPrefix) : len(s)-len(legacyPlanSuffix)]
	}

	return s
}
