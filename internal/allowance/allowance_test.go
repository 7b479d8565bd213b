package allowance

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAllowance_SpecExamples(t *testing.T) {
	table, err := NewTable([]Tier{
		{Threshold: 0, Amount: 0},
		{Threshold: 1000, Amount: 1500},
		{Threshold: 1500, Amount: 3000},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(3000), table.Allowance(1600))
	assert.Equal(t, int64(0), table.Allowance(500))
	assert.Equal(t, int64(1500), table.Allowance(1000))
	assert.Equal(t, int64(1500), table.Allowance(1499))
	assert.Equal(t, int64(3000), table.Allowance(1500))
}

func TestAllowance_BelowLowestThreshold(t *testing.T) {
	table, err := NewTable([]Tier{
		{Threshold: 100, Amount: 500},
		{Threshold: 200, Amount: 1000},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(0), table.Allowance(0))
	assert.Equal(t, int64(0), table.Allowance(99))
	assert.Equal(t, int64(500), table.Allowance(100))
}

func TestAllowance_MonotoneNonDecreasing(t *testing.T) {
	table := DefaultTable()

	prev := table.Allowance(0)
	for score := 1; score <= 2000; score++ {
		cur := table.Allowance(score)
		require.GreaterOrEqual(t, cur, prev, "score %d", score)
		prev = cur
	}
}

func TestNewTable_RejectsEmpty(t *testing.T) {
	_, err := NewTable(nil)
	require.Error(t, err)
}

func TestNewTable_RejectsDecreasingAmounts(t *testing.T) {
	_, err := NewTable([]Tier{
		{Threshold: 0, Amount: 1000},
		{Threshold: 500, Amount: 100},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "below amount")
}

func TestNewTable_RejectsDuplicateThresholds(t *testing.T) {
	_, err := NewTable([]Tier{
		{Threshold: 100, Amount: 100},
		{Threshold: 100, Amount: 200},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate threshold")
}

func TestNewTable_OrdersUnsortedInput(t *testing.T) {
	table, err := NewTable([]Tier{
		{Threshold: 1500, Amount: 3000},
		{Threshold: 0, Amount: 0},
		{Threshold: 1000, Amount: 1500},
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1500), table.Allowance(1200))
}

func TestLoadTable(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiers.yaml")
	content := `tiers:
  - threshold: 0
    amount: 0
  - threshold: 1000
    amount: 1500
  - threshold: 1500
    amount: 3000
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	table, err := LoadTable(path)
	require.NoError(t, err)
	assert.Equal(t, int64(3000), table.Allowance(1600))
	assert.Len(t, table.Tiers(), 3)
}

func TestLoadTable_MissingFile(t *testing.T) {
	_, err := LoadTable(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}

func TestLoadTable_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "tiers.yaml")
	require.NoError(t, os.WriteFile(path, []byte("tiers: {not a list"), 0o600))

	_, err := LoadTable(path)
	require.Error(t, err)
}
