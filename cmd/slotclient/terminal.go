package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/shopspring/decimal"

	"github.com/osse101/SpinHall_Go/internal/apiclient"
	"github.com/osse101/SpinHall_Go/internal/balance"
	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/realtime"
)

const helpText = `Commands:
  <enter>, spin      spin the reels
  +, -               raise or lower the bet one step
  bet <amount>       set the bet
  balance            refresh the balance
  withdraw <amount>  withdraw funds
  promos             list promotions
  logout             end the session and forget the token
  quit               leave
`

// terminal renders the game as plain text. Writes are serialized because
// notices and pushes arrive on other goroutines.
type terminal struct {
	mu  sync.Mutex
	out io.Writer
}

var _ balance.Notifier = (*terminal)(nil)

func (t *terminal) printf(format string, args ...any) {
	t.mu.Lock()
	defer t.mu.Unlock()
	fmt.Fprintf(t.out, format, args...)
}

func (t *terminal) errorf(format string, args ...any) {
	t.printf("! "+format+"\n", args...)
}

// Notify implements balance.Notifier
func (t *terminal) Notify(level balance.NoticeLevel, text string) {
	t.printf("[%s] %s\n", strings.ToUpper(string(level)), text)
}

func (t *terminal) banner(username string, bal, bet decimal.Decimal) {
	t.printf("Welcome %s. Balance %s, bet %s. Type help for commands.\n",
		username, balance.FormatMoney(bal), balance.FormatMoney(bet))
}

func (t *terminal) help() {
	t.printf("%s", helpText)
}

func (t *terminal) prompt(bal, bet decimal.Decimal) {
	t.printf("[%s | bet %s] > ", balance.FormatMoney(bal), balance.FormatMoney(bet))
}

func (t *terminal) reelLanded(index int, reel domain.Reel) {
	names := make([]string, len(reel))
	for i, sym := range reel {
		names[i] = sym.Name
	}
	t.printf("  reel %d: %s\n", index+1, strings.Join(names, " / "))
}

func (t *terminal) outcome(o *domain.SpinOutcome) {
	if !o.IsWin() {
		t.printf("  %s\n  no win\n", strings.Join(o.MiddleRowIDs(), " "))
		return
	}
	kind := "line"
	if o.Bonus {
		kind = "bonus"
	}
	t.printf("  %s\n  WIN %s (%s, run of %d)\n",
		strings.Join(o.MiddleRowIDs(), " "), balance.FormatMoney(o.Payout), kind, o.Run)
}

func (t *terminal) promotion(p domain.Promotion, a *apiclient.AvailabilityResponse) {
	status := "not today"
	switch {
	case a.Available && a.CanUse:
		status = "available"
	case a.Available:
		status = "today, limit reached"
	}
	t.printf("  %-20s %s\n", p.Name, status)
}

// announce prints public win pushes from other players
func (t *terminal) announce(label string) realtime.Listener {
	return func(data json.RawMessage) {
		var msg domain.PublicWinMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			return
		}
		t.printf("\n*** %s: %s won %s on %s ***\n",
			label, msg.Username, balance.FormatMoney(decimal.NewFromFloat(msg.Amount)), msg.Game)
	}
}
