package csvfile

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
)

// InvalidPolicy selects what the writer does with rejected rows.
type InvalidPolicy string

const (
	// PolicySkip drops rejected rows from the output file.
	PolicySkip InvalidPolicy = "skip"
	// PolicyMark keeps rejected rows, with an empty ET0 column and the
	// rejection reason in an extra error column.
	PolicyMark InvalidPolicy = "mark"
)

// ParsePolicy converts a CLI flag value into an InvalidPolicy.
func ParsePolicy(s string) (InvalidPolicy, error) {
	switch InvalidPolicy(s) {
	case PolicySkip, PolicyMark:
		return InvalidPolicy(s), nil
	default:
		return "", fmt.Errorf("invalid on-invalid policy %q (want skip or mark)", s)
	}
}

// ResultRow pairs an input row with its computation outcome. Err is non-nil
// when the row was rejected by parsing, validation, or computation.
type ResultRow struct {
	Row Row
	ET0 float64
	Err error
}

// WriteResults writes the result CSV: the input columns passed through, an
// ET0 column, and under PolicyMark an error column.
func WriteResults(path string, header []string, rows []ResultRow, policy InvalidPolicy) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)

	outHeader := append(append([]string{}, header...), "ET0")
	if policy == PolicyMark {
		outHeader = append(outHeader, "error")
	}
	if err := w.Write(outHeader); err != nil {
		return err
	}

	for _, r := range rows {
		if r.Err != nil && policy == PolicySkip {
			continue
		}
		out := padFields(r.Row.Fields, len(header))
		if r.Err != nil {
			out = append(out, "")
			out = append(out, r.Err.Error())
		} else {
			out = append(out, strconv.FormatFloat(r.ET0, 'f', 4, 64))
			if policy == PolicyMark {
				out = append(out, "")
			}
		}
		if err := w.Write(out); err != nil {
			return err
		}
	}

	w.Flush()
	return w.Error()
}

// padFields copies fields and extends short rows so every output row has the
// same column count as the header.
func padFields(fields []string, n int) []string {
	out := make([]string, n)
	copy(out, fields)
	return out
}
