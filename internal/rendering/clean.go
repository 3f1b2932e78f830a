package rendering

import (
	"strconv"
	"strings"
)

// CleanList drops items that carry no renderable content: empty strings,
// the literal "none" (case-insensitive, a null placeholder some backends
// emit), and purely numeric items (stray scores or counts that leak into
// skill lists). Relative order of surviving items is preserved.
func CleanList(items []string) []string {
	cleaned := make([]string, 0, len(items))
	for _, item := range items {
		s := strings.TrimSpace(item)
		if s == "" || strings.EqualFold(s, "none") {
			continue
		}
		if _, err := strconv.ParseFloat(s, 64); err == nil {
			continue
		}
		cleaned = append(cleaned, s)
	}
	return cleaned
}

// SplitColumns balances items across two columns: the first column gets
// ceil(N/2) items, the second the rest. Concatenating left then right
// reproduces the input order.
func SplitColumns(items []string) (left, right []string) {
	split := (len(items) + 1) / 2
	return items[:split], items[split:]
}

// SplitSummary breaks a long work summary into sentence-like bullet
// fragments on period boundaries, capped at maxBullets. Summaries of
// threshold characters or fewer return nil: they render as a single
// paragraph instead.
func SplitSummary(summary string, threshold, maxBullets int) []string {
	summary = strings.TrimSpace(summary)
	if len(summary) <= threshold {
		return nil
	}

	parts := strings.Split(summary, ".")
	bullets := make([]string, 0, maxBullets)
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		bullets = append(bullets, p+".")
		if len(bullets) == maxBullets {
			break
		}
	}
	if len(bullets) < 2 {
		// one long unbroken sentence gains nothing from bulleting
		return nil
	}
	return bullets
}
