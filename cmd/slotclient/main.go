// Command slotclient is a terminal slot machine that plays against a
// SpinHall server. Balance changes go through the server API and wins are
// announced over the real-time socket.
package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/shopspring/decimal"

	"github.com/osse101/SpinHall_Go/internal/apiclient"
	"github.com/osse101/SpinHall_Go/internal/balance"
	"github.com/osse101/SpinHall_Go/internal/domain"
	"github.com/osse101/SpinHall_Go/internal/logger"
	"github.com/osse101/SpinHall_Go/internal/realtime"
	"github.com/osse101/SpinHall_Go/internal/slots"
	"github.com/osse101/SpinHall_Go/internal/utils"
)

type options struct {
	server    string
	username  string
	password  string
	tokenFile string
	game      string
	logLevel  string
}

func parseFlags() options {
	var o options
	flag.StringVar(&o.server, "server", envOr("SPINHALL_URL", "http://localhost:8080"), "server base URL")
	flag.StringVar(&o.username, "user", os.Getenv("SPINHALL_USER"), "username to log in with")
	flag.StringVar(&o.password, "password", os.Getenv("SPINHALL_PASSWORD"), "password (or $SPINHALL_PASSWORD)")
	flag.StringVar(&o.tokenFile, "token-file", defaultTokenFile(), "where the session token is kept")
	flag.StringVar(&o.game, "game", envOr("GAME_NAME", "Lucky Reels"), "game name shown in win broadcasts")
	flag.StringVar(&o.logLevel, "log-level", envOr("LOG_LEVEL", "warn"), "log level")
	flag.Parse()
	return o
}

func main() {
	opts := parseFlags()
	logger.InitLoggerWithWriter(logger.NewConfig(opts.logLevel, "text", "slotclient", "dev", "client", false), os.Stderr)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, opts, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintf(os.Stderr, "slotclient: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context, opts options, in io.Reader, out io.Writer) error {
	api, err := apiclient.New(apiclient.Config{BaseURL: opts.server})
	if err != nil {
		return err
	}

	creds, err := authenticate(ctx, api, opts)
	if err != nil {
		return err
	}

	wsURL, err := socketURL(opts.server)
	if err != nil {
		return err
	}
	transport := realtime.NewClient(realtime.ClientConfig{
		URL:   wsURL,
		Token: api.Token,
	})
	if err := transport.Connect(ctx); err != nil {
		// Play still works without pushes; broadcasts are just dropped
		slog.Warn("Real-time connection unavailable", "error", err)
	}
	defer transport.Disconnect()

	ui := &terminal{out: out}
	wallet := balance.NewService(api, transport, ui, balance.Identity{
		UserID:   creds.UserID,
		Username: creds.Username,
		Game:     opts.game,
	})
	wallet.Start(ctx)
	defer wallet.Stop()

	machine := slots.NewMachine(wallet, wallet, transport, slots.OnReelLanded(ui.reelLanded))

	watchPublicWins(transport, ui)

	ui.banner(creds.Username, wallet.Balance(), machine.Bet())
	return repl(ctx, in, ui, &session{
		api:     api,
		wallet:  wallet,
		machine: machine,
		opts:    opts,
	})
}

// watchPublicWins shows the win ticker the hub fans out to every player
func watchPublicWins(transport realtime.Transport, ui *terminal) {
	transport.On(domain.MessageWinNotification, ui.announce("Big win"))
	transport.On(domain.MessageJackpotNotification, ui.announce("JACKPOT"))
}

// session bundles what the command loop acts on
type session struct {
	api     *apiclient.Client
	wallet  *balance.Service
	machine *slots.Machine
	opts    options
}

func repl(ctx context.Context, in io.Reader, ui *terminal, s *session) error {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()

	for {
		ui.prompt(s.wallet.Balance(), s.machine.Bet())
		var line string
		select {
		case <-ctx.Done():
			return ctx.Err()
		case l, ok := <-lines:
			if !ok {
				return nil
			}
			line = l
		}

		cmd, err := parseCommand(line)
		if err != nil {
			ui.errorf("%v", err)
			continue
		}
		if cmd.kind == cmdQuit {
			return nil
		}
		if err := s.execute(ctx, ui, cmd); err != nil {
			ui.errorf("%v", err)
		}
	}
}

func (s *session) execute(ctx context.Context, ui *terminal, cmd command) error {
	switch cmd.kind {
	case cmdSpin:
		outcome, err := s.machine.Spin(ctx)
		if errors.Is(err, domain.ErrBetDeclined) {
			return nil // the wallet already told the player why
		}
		if err != nil {
			return err
		}
		ui.outcome(outcome)
	case cmdBetUp:
		_, err := s.machine.IncreaseBet()
		return err
	case cmdBetDown:
		_, err := s.machine.DecreaseBet()
		return err
	case cmdSetBet:
		_, err := s.machine.SetBet(cmd.amount)
		return err
	case cmdBalance:
		s.api.InvalidateBalance()
		return s.wallet.Load(ctx)
	case cmdWithdraw:
		resp, err := s.api.Withdraw(ctx, cmd.amount)
		if err != nil {
			return err
		}
		s.api.InvalidateBalance()
		if err := s.wallet.Load(ctx); err != nil {
			return err
		}
		ui.printf("Withdrew %s, balance %s\n", balance.FormatMoney(cmd.amount), balance.FormatMoney(resp.Balance))
	case cmdPromotions:
		return s.listPromotions(ctx, ui)
	case cmdLogout:
		if err := s.api.Logout(ctx); err != nil {
			return err
		}
		return clearToken(s.opts.tokenFile)
	case cmdHelp:
		ui.help()
	}
	return nil
}

func (s *session) listPromotions(ctx context.Context, ui *terminal) error {
	promos, err := s.api.Promotions(ctx)
	if err != nil {
		return err
	}
	if len(promos) == 0 {
		ui.printf("No promotions running.\n")
		return nil
	}
	for _, p := range promos {
		avail, err := s.api.PromotionAvailability(ctx, p.ID)
		if err != nil {
			return err
		}
		ui.promotion(p, avail)
	}
	return nil
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func defaultTokenFile() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ".spinhall_token.json"
	}
	return filepath.Join(dir, "spinhall", "token.json")
}

// socketURL maps http(s)://host/... to ws(s)://host/ws
func socketURL(base string) (string, error) {
	base = strings.TrimRight(base, "/")
	switch {
	case strings.HasPrefix(base, "https://"):
		return "wss://" + strings.TrimPrefix(base, "https://") + "/ws", nil
	case strings.HasPrefix(base, "http://"):
		return "ws://" + strings.TrimPrefix(base, "http://") + "/ws", nil
	default:
		return "", fmt.Errorf("server URL must start with http:// or https://: %q", base)
	}
}

// parseAmount accepts a decimal with at most two places
func parseAmount(s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(strings.TrimPrefix(strings.TrimSpace(s), "$"))
	if err != nil {
		return decimal.Zero, fmt.Errorf("not an amount: %q", s)
	}
	if !utils.ValidMoneyAmount(d) {
		return decimal.Zero, fmt.Errorf("amount must be positive with at most two decimals: %q", s)
	}
	return d, nil
}
