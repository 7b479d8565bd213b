// Package allowance maps reputation scores to authorized credit amounts via a
// descending threshold table.
package allowance

import (
	"fmt"
	"os"
	"sort"

	"gopkg.in/yaml.v3"
)

// Tier grants Amount to any score at or above Threshold.
type Tier struct {
	Threshold int   `yaml:"threshold"`
	Amount    int64 `yaml:"amount"`
}

// Table is an ordered set of tiers. Construct via NewTable or LoadTable so the
// ordering and monotonicity invariants hold.
type Table struct {
	tiers []Tier
}

// DefaultTable returns the built-in tier table used when no file is configured.
func DefaultTable() *Table {
	t, _ := NewTable([]Tier{
		{Threshold: 0, Amount: 0},
		{Threshold: 1000, Amount: 1500},
		{Threshold: 1500, Amount: 3000},
	})
	return t
}

// NewTable validates and orders tiers by ascending threshold. Amounts must be
// non-decreasing with threshold so that a higher score never yields a smaller
// allowance.
func NewTable(tiers []Tier) (*Table, error) {
	if len(tiers) == 0 {
		return nil, fmt.Errorf("allowance table is empty")
	}

	sorted := make([]Tier, len(tiers))
	copy(sorted, tiers)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Threshold < sorted[j].Threshold })

	for i := 1; i < len(sorted); i++ {
		if sorted[i].Threshold == sorted[i-1].Threshold {
			return nil, fmt.Errorf("duplicate threshold %d", sorted[i].Threshold)
		}
		if sorted[i].Amount < sorted[i-1].Amount {
			return nil, fmt.Errorf("amount %d at threshold %d is below amount %d at threshold %d",
				sorted[i].Amount, sorted[i].Threshold, sorted[i-1].Amount, sorted[i-1].Threshold)
		}
	}

	return &Table{tiers: sorted}, nil
}

// LoadTable reads a tier table from a YAML file.
func LoadTable(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read allowance table: %w", err)
	}

	var doc struct {
		Tiers []Tier `yaml:"tiers"`
	}
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("parse allowance table: %w", err)
	}

	return NewTable(doc.Tiers)
}

// Allowance returns the amount of the highest tier whose threshold score meets
// or exceeds, or 0 when the score is below every threshold.
func (t *Table) Allowance(score int) int64 {
	var amount int64
	for _, tier := range t.tiers {
		if score < tier.Threshold {
			break
		}
		amount = tier.Amount
	}
	return amount
}

// Tiers returns a copy of the ordered tier set.
func (t *Table) Tiers() []Tier {
	out := make([]Tier, len(t.tiers))
	copy(out, t.tiers)
	return out
}
