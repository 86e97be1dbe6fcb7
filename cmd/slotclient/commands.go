package main

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

type commandKind int

const (
	cmdSpin commandKind = iota
	cmdBetUp
	cmdBetDown
	cmdSetBet
	cmdBalance
	cmdWithdraw
	cmdPromotions
	cmdLogout
	cmdHelp
	cmdQuit
)

type command struct {
	kind   commandKind
	amount decimal.Decimal
}

// parseCommand reads one input line. An empty line spins.
func parseCommand(line string) (command, error) {
	fields := strings.Fields(strings.ToLower(line))
	if len(fields) == 0 {
		return command{kind: cmdSpin}, nil
	}

	name, args := fields[0], fields[1:]
	switch name {
	case "s", "spin":
		return command{kind: cmdSpin}, nil
	case "+", "up":
		return command{kind: cmdBetUp}, nil
	case "-", "down":
		return command{kind: cmdBetDown}, nil
	case "b", "balance":
		return command{kind: cmdBalance}, nil
	case "p", "promos", "promotions":
		return command{kind: cmdPromotions}, nil
	case "logout":
		return command{kind: cmdLogout}, nil
	case "h", "help", "?":
		return command{kind: cmdHelp}, nil
	case "q", "quit", "exit":
		return command{kind: cmdQuit}, nil
	case "bet", "withdraw":
		if len(args) != 1 {
			return command{}, fmt.Errorf("usage: %s <amount>", name)
		}
		amount, err := parseAmount(args[0])
		if err != nil {
			return command{}, err
		}
		kind := cmdSetBet
		if name == "withdraw" {
			kind = cmdWithdraw
		}
		return command{kind: kind, amount: amount}, nil
	default:
		return command{}, fmt.Errorf("unknown command %q, type help", name)
	}
}
