// Package matching implements the bank-reconciliation matching passes over
// in-memory statement rows and ledger lines. It is pure: persistence of the
// outcome belongs to the calling service.
package matching

import (
	"sort"
	"time"

	"github.com/halverson/farmbooks/internal/core/domain"
)

// Config bounds the matcher. The combinatorial many-to-one search is capped
// in both subset size and candidate-pool size so it terminates in bounded
// time regardless of statement size.
type Config struct {
	DayWindow     int // Maximum days between bank date and ledger date
	MaxCombine    int // Maximum ledger lines combinable into one bank amount
	MaxCandidates int // Maximum pool considered for the subset search
}

// DefaultConfig mirrors the documented defaults: 5-day window, up to 8
// combinable items.
func DefaultConfig() Config {
	return Config{DayWindow: 5, MaxCombine: 8, MaxCandidates: 24}
}

// BankItem is one imported statement row to match.
type BankItem struct {
	ID          string
	Date        time.Time
	AmountCents int64 // Signed: deposits positive, withdrawals negative
}

// LedgerItem is one posted cash-account line, signed the same way.
type LedgerItem struct {
	ID          string
	Date        time.Time
	AmountCents int64
}

// Match is the outcome for one bank item.
type Match struct {
	BankID  string
	Status  domain.MatchStatus
	LineIDs []string // Ledger lines cleared by this bank item
}

// Run executes the matching passes in order:
//  1. exact amount with the nearest date inside the window
//  2. bounded subset-sum of unmatched ledger lines (many-to-one, e.g. one
//     deposit covering several checks)
//  3. anything left is FLAGGED when multiple equally good candidates exist,
//     else UNMATCHED.
//
// A ledger line clears at most once across the whole run.
func Run(banks []BankItem, lines []LedgerItem, cfg Config) []Match {
	if cfg.MaxCombine <= 0 || cfg.MaxCandidates <= 0 {
		cfg = DefaultConfig()
	}

	// Deterministic processing order.
	banks = append([]BankItem(nil), banks...)
	sort.Slice(banks, func(i, j int) bool {
		if !banks[i].Date.Equal(banks[j].Date) {
			return banks[i].Date.Before(banks[j].Date)
		}
		return banks[i].ID < banks[j].ID
	})
	lines = append([]LedgerItem(nil), lines...)
	sort.Slice(lines, func(i, j int) bool {
		if !lines[i].Date.Equal(lines[j].Date) {
			return lines[i].Date.Before(lines[j].Date)
		}
		return lines[i].ID < lines[j].ID
	})

	used := make(map[string]bool, len(lines))
	results := make(map[string]Match, len(banks))

	// Pass 1: exact amount + date within the window.
	for _, b := range banks {
		var best []LedgerItem
		bestDist := cfg.DayWindow + 1
		for _, l := range lines {
			if used[l.ID] || l.AmountCents != b.AmountCents {
				continue
			}
			d := dayDistance(b.Date, l.Date)
			if d > cfg.DayWindow {
				continue
			}
			switch {
			case d < bestDist:
				bestDist = d
				best = []LedgerItem{l}
			case d == bestDist:
				best = append(best, l)
			}
		}
		switch len(best) {
		case 0:
			// Left for the subset pass.
		case 1:
			used[best[0].ID] = true
			results[b.ID] = Match{BankID: b.ID, Status: domain.MatchMatched, LineIDs: []string{best[0].ID}}
		default:
			// Multiple equally good candidates: needs review, consumes nothing.
			results[b.ID] = Match{BankID: b.ID, Status: domain.MatchFlagged}
		}
	}

	// Pass 2: many-to-one subset search over the remaining lines.
	for _, b := range banks {
		if _, done := results[b.ID]; done {
			continue
		}
		pool := candidatePool(b, lines, used, cfg)
		solutions := subsetSums(pool, b.AmountCents, cfg.MaxCombine, 2)
		switch len(solutions) {
		case 0:
			results[b.ID] = Match{BankID: b.ID, Status: domain.MatchUnmatched}
		case 1:
			ids := make([]string, len(solutions[0]))
			for i, l := range solutions[0] {
				ids[i] = l.ID
				used[l.ID] = true
			}
			results[b.ID] = Match{BankID: b.ID, Status: domain.MatchMatched, LineIDs: ids}
		default:
			results[b.ID] = Match{BankID: b.ID, Status: domain.MatchFlagged}
		}
	}

	out := make([]Match, len(banks))
	for i, b := range banks {
		out[i] = results[b.ID]
	}
	return out
}

// candidatePool gathers unused lines inside the window, nearest dates first,
// capped at MaxCandidates.
func candidatePool(b BankItem, lines []LedgerItem, used map[string]bool, cfg Config) []LedgerItem {
	var pool []LedgerItem
	for _, l := range lines {
		if used[l.ID] {
			continue
		}
		if dayDistance(b.Date, l.Date) <= cfg.DayWindow {
			pool = append(pool, l)
		}
	}
	sort.SliceStable(pool, func(i, j int) bool {
		return dayDistance(b.Date, pool[i].Date) < dayDistance(b.Date, pool[j].Date)
	})
	if len(pool) > cfg.MaxCandidates {
		pool = pool[:cfg.MaxCandidates]
	}
	return pool
}

// subsetSums enumerates subsets of 2..maxSize items summing exactly to
// target, stopping once limit solutions are found.
func subsetSums(pool []LedgerItem, target int64, maxSize, limit int) [][]LedgerItem {
	var solutions [][]LedgerItem
	var current []LedgerItem

	var walk func(start int, sum int64)
	walk = func(start int, sum int64) {
		if len(solutions) >= limit {
			return
		}
		if len(current) >= 2 && sum == target {
			solutions = append(solutions, append([]LedgerItem(nil), current...))
			return
		}
		if len(current) == maxSize {
			return
		}
		for i := start; i < len(pool); i++ {
			current = append(current, pool[i])
			walk(i+1, sum+pool[i].AmountCents)
			current = current[:len(current)-1]
			if len(solutions) >= limit {
				return
			}
		}
	}
	walk(0, 0)
	return solutions
}

func dayDistance(a, b time.Time) int {
	d := a.Truncate(24 * time.Hour).Sub(b.Truncate(24 * time.Hour))
	if d < 0 {
		d = -d
	}
	return int(d / (24 * time.Hour))
}
