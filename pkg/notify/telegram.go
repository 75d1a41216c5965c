package notify

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// OrderInfo carries the fields rendered into notification text.
type OrderInfo struct {
	OrderID       int64
	Status        string
	Total         float64
	CustomerName  string
	CustomerPhone string
}

// TelegramNotifier sends order events through the Telegram Bot API. With an
// empty bot token every call is a no-op, so callers never need to guard.
type TelegramNotifier struct {
	botToken    string
	adminChatID string
	client      *http.Client
	logger      zerolog.Logger
}

func NewTelegramNotifier(botToken, adminChatID string, logger zerolog.Logger) *TelegramNotifier {
	return &TelegramNotifier{
		botToken:    botToken,
		adminChatID: adminChatID,
		client:      &http.Client{Timeout: 10 * time.Second},
		logger:      logger,
	}
}

// NotifyOrderCreated tells the operator chat and the customer about a new order.
func (n *TelegramNotifier) NotifyOrderCreated(ctx context.Context, info OrderInfo, userChatID int64) {
	if n.botToken == "" {
		return
	}
	if n.adminChatID != "" {
		n.sendMessage(ctx, n.adminChatID,
			fmt.Sprintf("New order #%d from %s (%s), total %.2f", info.OrderID, info.CustomerName, info.CustomerPhone, info.Total))
	}
	if userChatID != 0 {
		n.sendMessage(ctx, strconv.FormatInt(userChatID, 10),
			fmt.Sprintf("Your order #%d has been received. Status: %s", info.OrderID, info.Status))
	}
}

// NotifyStatusChanged tells the customer and the operator chat about a status move.
func (n *TelegramNotifier) NotifyStatusChanged(ctx context.Context, info OrderInfo, userChatID int64) {
	if n.botToken == "" {
		return
	}
	msg := fmt.Sprintf("Order #%d status changed to %s", info.OrderID, info.Status)
	if userChatID != 0 {
		n.sendMessage(ctx, strconv.FormatInt(userChatID, 10), msg)
	}
	if n.adminChatID != "" {
		n.sendMessage(ctx, n.adminChatID, msg)
	}
}

func (n *TelegramNotifier) sendMessage(ctx context.Context, chatID, text string) {
	endpoint := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", n.botToken)
	form := url.Values{}
	form.Set("chat_id", chatID)
	form.Set("text", text)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, strings.NewReader(form.Encode()))
	if err != nil {
		return
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := n.client.Do(req)
	if err != nil {
		n.logger.Warn().Err(err).Str("chat_id", chatID).Msg("telegram notification failed")
		return
	}
	resp.Body.Close()
	if resp.StatusCode >= 300 {
		n.logger.Warn().Int("status", resp.StatusCode).Str("chat_id", chatID).Msg("telegram notification rejected")
	}
}
