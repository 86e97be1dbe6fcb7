package slots

import (
	"github.com/shopspring/decimal"

	"github.com/osse101/SpinHall_Go/internal/domain"
)

// LongestRun scans left to right and returns the length of the longest run
// of identical adjacent ids and the id that forms it. The first run wins ties.
func LongestRun(ids []string) (int, string) {
	if len(ids) == 0 {
		return 0, ""
	}

	maxRun, maxID := 1, ids[0]
	current := 1
	for i := 1; i < len(ids); i++ {
		if ids[i] == ids[i-1] {
			current++
		} else {
			current = 1
		}
		if current > maxRun {
			maxRun = current
			maxID = ids[i]
		}
	}
	return maxRun, maxID
}

// LinePayout returns bet * value * (run - 2) for runs of at least three,
// zero otherwise
func LinePayout(bet decimal.Decimal, symbol domain.Symbol, run int) decimal.Decimal {
	if run < MinPayingRun {
		return decimal.Zero
	}
	return bet.Mul(decimal.NewFromInt(int64(symbol.Value))).Mul(decimal.NewFromInt(int64(run - 2)))
}

// evaluate computes the payout for a landed board. The consolation roll is
// independent of the visible symbols.
func evaluate(reels [domain.ReelCount]domain.Reel, bet decimal.Decimal, rng Random) domain.SpinOutcome {
	outcome := domain.SpinOutcome{Reels: reels, Bet: bet, Payout: decimal.Zero}

	run, id := LongestRun(outcome.MiddleRowIDs())
	outcome.Run = run
	if run >= MinPayingRun {
		symbol, _ := SymbolByID(id)
		outcome.RunSymbol = id
		outcome.Payout = LinePayout(bet, symbol, run)
		return outcome
	}

	if rng.Float64() < ConsolationChance {
		mult := ConsolationMinMult + rng.Intn(ConsolationMaxMult-ConsolationMinMult+1)
		outcome.Payout = bet.Mul(decimal.NewFromInt(int64(mult)))
		outcome.Bonus = true
	}
	return outcome
}
