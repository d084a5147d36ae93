// Package telegram pushes new emergency reports to a responders' Telegram
// chat.
package telegram

import (
	"fmt"
	"log/slog"
	"strings"

	"emergencyrelay/backend/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// Sender is the part of *tgbotapi.BotAPI the notifier needs.
type Sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier posts a short summary of every new report to one chat.
type Notifier struct {
	Bot    Sender
	ChatID int64
	log    *slog.Logger
}

// NewNotifier authorizes the bot token against the Telegram API.
func NewNotifier(token string, chatID int64, log *slog.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, fmt.Errorf("telegram authorize: %w", err)
	}
	bot.Debug = false
	log.Info("Telegram bot authorized", "account", bot.Self.UserName, "chat", chatID)
	return NewNotifierWithSender(bot, chatID, log), nil
}

func NewNotifierWithSender(bot Sender, chatID int64, log *slog.Logger) *Notifier {
	return &Notifier{Bot: bot, ChatID: chatID, log: log}
}

// NotifyNewReport sends the report summary. Failures are logged only.
func (n *Notifier) NotifyNewReport(report models.Report) {
	msg := tgbotapi.NewMessage(n.ChatID, FormatReport(report))
	if _, err := n.Bot.Send(msg); err != nil {
		n.log.Warn("Telegram notification failed", "report", report.ID, "error", err)
		return
	}
	n.log.Debug("Telegram notification sent", "report", report.ID)
}

// FormatReport renders a report as plain text for responders.
func FormatReport(r models.Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🚨 New %s report\n", orDash(r.Field("type")))
	if severity := r.Field("severity"); severity != "" {
		fmt.Fprintf(&b, "Severity: %s\n", severity)
	}
	if description := r.Field("description"); description != "" {
		fmt.Fprintf(&b, "%s\n", description)
	}
	if address := r.Field("address"); address != "" {
		fmt.Fprintf(&b, "Address: %s\n", address)
	}
	if loc := r.Location(); loc != nil {
		fmt.Fprintf(&b, "Map: https://maps.google.com/?q=%.6f,%.6f\n", loc.Lat, loc.Lng)
	}
	if name := r.Field("userName"); name != "" {
		fmt.Fprintf(&b, "Reported by: %s\n", name)
	}
	fmt.Fprintf(&b, "ID: %s", r.ID)
	return b.String()
}

func orDash(s string) string {
	if s == "" {
		return "-"
	}
	return s
}
