// Package report renders the result file downstream analysis scripts parse.
// The format is fixed; change it only together with those scripts.
package report

import (
	"bufio"
	"fmt"
	"io"
	"strings"
	"time"

	"svw.info/pairing/internal/domain"
)

// TimeLayout is the timestamp embedded in result file names.
const TimeLayout = "2006-01-02_15-04-05"

// Ext is the result file extension.
const Ext = ".txt"

// Render writes both phases in logical order, phase 0 first, whatever order
// the participant saw them in. Empty slots render as None.
func Render(w io.Writer, results [domain.PhaseCount]domain.PhaseResult) error {
	bw := bufio.NewWriter(w)
	for i, res := range results {
		if i > 0 {
			bw.WriteString("\n")
		}
		fmt.Fprintf(bw, "Phase %d Results:\n", i+1)
		for _, e := range res.Entries {
			item := string(e.Item)
			if e.Item == domain.None {
				item = "None"
			}
			fmt.Fprintf(bw, "%s -> %s\n", e.Target, item)
		}
	}
	return bw.Flush()
}

// String is Render into a string.
func String(results [domain.PhaseCount]domain.PhaseResult) string {
	var sb strings.Builder
	_ = Render(&sb, results)
	return sb.String()
}

var unsafeChars = strings.NewReplacer("/", "_", `\`, "_", "\x00", "_")

// FileName returns <code>_<YYYY-MM-DD_HH-MM-SS>.txt. Path separators in the
// code are replaced so the file always lands in the results directory.
func FileName(code string, t time.Time) string {
	code = unsafeChars.Replace(strings.TrimSpace(code))
	if code == "." || code == ".." {
		code = strings.Repeat("_", len(code))
	}
	return code + "_" + t.Format(TimeLayout) + Ext
}

// ParseFileName splits a result file name back into session code and time.
func ParseFileName(name string) (string, time.Time, bool) {
	base, ok := strings.CutSuffix(name, Ext)
	if !ok || len(base) < len(TimeLayout)+2 {
		return "", time.Time{}, false
	}
	cut := len(base) - len(TimeLayout)
	if base[cut-1] != '_' {
		return "", time.Time{}, false
	}
	t, err := time.ParseInLocation(TimeLayout, base[cut:], time.Local)
	if err != nil {
		return "", time.Time{}, false
	}
	return base[:cut-1], t, true
}
