package bench

import (
	"fmt"
	"io"
	"strings"

	"github.com/dustin/go-humanize"
	gojson "github.com/goccy/go-json"
)

// WriteText prints the comparison in a human readable table.
func (r *Report) WriteText(w io.Writer) error {
	speedup := " (no speedup detected)"
	if r.Speedup > 0 {
		speedup = fmt.Sprintf(" (speedup x%.2f)", r.Speedup)
	}

	var b strings.Builder
	rule := strings.Repeat("=", 40)
	fmt.Fprintf(&b, "\n%s\n PERFORMANCE COMPARISON (%s)\n%s\n", rule, r.Profile, rule)
	fmt.Fprintf(&b, "No cache  : %8.2f s\n", r.Uncached.Elapsed.Seconds())
	fmt.Fprintf(&b, "LRU cache : %8.2f s%s\n", r.Cached.Elapsed.Seconds(), speedup)
	b.WriteString("\n--- Details ---\n")
	fmt.Fprintf(&b, "Array size       : %s\n", humanize.Comma(int64(r.Size)))
	fmt.Fprintf(&b, "Range queries    : %s\n", humanize.Comma(int64(r.RangeQueries)))
	fmt.Fprintf(&b, "Update queries   : %s\n", humanize.Comma(int64(r.Updates)))
	fmt.Fprintf(&b, "Cache capacity   : %s\n", humanize.Comma(int64(r.Capacity)))
	fmt.Fprintf(&b, "Cache hit rate   : %.1f%%\n", r.HitRate()*100)
	fmt.Fprintf(&b, "Evictions        : %s\n", humanize.Comma(int64(r.Stats.Evictions)))
	fmt.Fprintf(&b, "Invalidated      : %s\n", humanize.Comma(int64(r.Stats.Invalidated)))
	fmt.Fprintf(&b, "Checksums match  : %t\n", r.Consistent)

	_, err := io.WriteString(w, b.String())
	return err
}

// WriteJSON writes the report as a single JSON object.
func (r *Report) WriteJSON(w io.Writer) error {
	data, err := gojson.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	_, err = w.Write(append(data, '\n'))
	return err
}
