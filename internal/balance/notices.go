package balance

import (
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/osse101/SpinHall_Go/internal/apiclient"
)

// NoticeLevel is the severity of a user-visible notice
type NoticeLevel string

const (
	NoticeInfo    NoticeLevel = "info"
	NoticeWarning NoticeLevel = "warning"
	NoticeError   NoticeLevel = "error"
)

// Notifier surfaces messages to the player
type Notifier interface {
	Notify(level NoticeLevel, text string)
}

// LogNotifier writes notices to the default logger
type LogNotifier struct{}

// Notify implements Notifier
func (LogNotifier) Notify(level NoticeLevel, text string) {
	slog.Info(LogMsgNotice, "level", string(level), "text", text)
}

var printer = message.NewPrinter(language.AmericanEnglish)

// FormatMoney renders an amount like $1,234.50
func FormatMoney(d decimal.Decimal) string {
	return printer.Sprintf("$%.2f", d.InexactFloat64())
}

func insufficientBalanceNotice(balance, bet decimal.Decimal) string {
	return printer.Sprintf(NoticeInsufficientBalanceFmt, FormatMoney(balance), FormatMoney(bet))
}

func transactionFailedNotice(err error) string {
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return printer.Sprintf(NoticeTransactionFailedFmt, apiErr.Message)
	}
	return NoticeTransactionFailed
}
