package slots

import (
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/osse101/SpinHall_Go/internal/domain"
)

// naiveLongestRun checks every window, O(n^2)
func naiveLongestRun(ids []string) (int, string) {
	best, bestID := 0, ""
	for i := range ids {
		for j := i; j < len(ids); j++ {
			same := true
			for k := i; k <= j; k++ {
				if ids[k] != ids[i] {
					same = false
					break
				}
			}
			if same && j-i+1 > best {
				best, bestID = j-i+1, ids[i]
			}
		}
	}
	return best, bestID
}

func TestLongestRun_ExhaustiveSmallAlphabet(t *testing.T) {
	alphabet := []string{"a", "b", "c"}
	row := make([]string, domain.ReelCount)

	var walk func(pos int)
	walk = func(pos int) {
		if pos == len(row) {
			wantRun, wantID := naiveLongestRun(row)
			gotRun, gotID := LongestRun(row)
			assert.Equal(t, wantRun, gotRun, "row %v", row)
			assert.Equal(t, wantID, gotID, "row %v", row)
			return
		}
		for _, s := range alphabet {
			row[pos] = s
			walk(pos + 1)
		}
	}
	walk(0)
}

func TestLongestRun_RandomCatalogRows(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	row := make([]string, domain.ReelCount)
	for n := 0; n < 5000; n++ {
		for i := range row {
			row[i] = Catalog[r.Intn(len(Catalog))].ID
		}
		wantRun, _ := naiveLongestRun(row)
		gotRun, _ := LongestRun(row)
		assert.Equal(t, wantRun, gotRun, "row %v", row)
	}
}

func TestLongestRun_Empty(t *testing.T) {
	run, id := LongestRun(nil)
	assert.Equal(t, 0, run)
	assert.Empty(t, id)
}

func TestLinePayout(t *testing.T) {
	cherry, _ := SymbolByID(domain.SymbolCherry)
	diamond, _ := SymbolByID(domain.SymbolDiamond)
	bell, _ := SymbolByID(domain.SymbolBell)

	tests := []struct {
		name   string
		bet    string
		symbol domain.Symbol
		run    int
		want   string
	}{
		{"three cherries at 2", "2", cherry, 3, "4"},
		{"five diamonds at 0.5", "0.5", diamond, 5, "30"},
		{"four bells at 1.5", "1.5", bell, 4, "24"},
		{"pair pays nothing", "100", diamond, 2, "0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := LinePayout(decimal.RequireFromString(tt.bet), tt.symbol, tt.run)
			assert.True(t, got.Equal(decimal.RequireFromString(tt.want)), "got %s", got)
		})
	}
}

func TestLinePayout_NoDriftOverBetRange(t *testing.T) {
	seven, _ := SymbolByID(domain.SymbolSeven)
	for b := domain.MinBet; b.LessThanOrEqual(domain.MaxBet); b = b.Add(domain.BetStep) {
		got := LinePayout(b, seven, 4)
		// 0.5 steps times integer factors stay within one decimal place
		assert.True(t, got.Equal(got.Round(1)), "bet %s payout %s", b, got)
		assert.True(t, got.Equal(b.Mul(decimal.NewFromInt(30))))
	}
}

func TestCatalog(t *testing.T) {
	assert.Len(t, Catalog, 8)
	seen := map[string]bool{}
	for _, s := range Catalog {
		assert.False(t, seen[s.ID], "duplicate symbol %s", s.ID)
		seen[s.ID] = true
		assert.GreaterOrEqual(t, s.Value, 2)
		assert.LessOrEqual(t, s.Value, 20)
	}
}

func BenchmarkLongestRun(b *testing.B) {
	row := []string{"cherry", "cherry", "lemon", "lemon", "lemon"}
	b.ReportAllocs()
	for i := 0; i < b.N; i++ {
		LongestRun(row)
	}
}
