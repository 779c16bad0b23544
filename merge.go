package taxfolio

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"
)

// MergeHistories merges all raw export files "<platform>_history_raw*.csv"
// found under dir into the platform's single history file. Rows identical in
// every field are kept once (the brokerage paginated exports overlap at the
// window edges), and the result is stable-sorted by execution time. It
// returns the number of merged trades.
func MergeHistories(dir, platform string) (int, error) {
	pattern := filepath.Join(dir, platform+"_history_raw*.csv")
	files, err := filepath.Glob(pattern)
	if err != nil {
		return 0, err
	}
	if len(files) == 0 {
		return 0, fmt.Errorf("no raw history files match %q", pattern)
	}
	slices.Sort(files)

	var all []Trade
	for _, file := range files {
		f, err := os.Open(file)
		if err != nil {
			return 0, err
		}
		trades, err := DecodeHistory(f)
		f.Close()
		if err != nil {
			return 0, fmt.Errorf("cannot decode %q: %w", file, err)
		}
		all = append(all, trades...)
	}

	SortTrades(all)

	seen := make(map[string]bool)
	merged := all[:0]
	for _, t := range all {
		key := strings.Join([]string{
			t.Symbol, t.Quantity.String(), t.Price.Plain(), t.Side.Tag(),
			t.Currency, t.Fee.Plain(), t.Time.Format(timeFormat),
		}, ",")
		if seen[key] {
			continue
		}
		seen[key] = true
		merged = append(merged, t)
	}

	out, err := os.Create(filepath.Join(dir, HistoryFileName(platform)))
	if err != nil {
		return 0, err
	}
	defer out.Close()
	if err := EncodeHistory(out, merged); err != nil {
		return 0, err
	}
	return len(merged), nil
}
