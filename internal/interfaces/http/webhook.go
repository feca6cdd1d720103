package http

import (
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"strings"

	"kopilka/internal/infrastructure/telegram"
)

type WebhookHandler struct {
	bot       telegram.ClientInterface
	webAppURL string
	secret    string
}

func NewWebhookHandler(bot telegram.ClientInterface, webAppURL, secret string) *WebhookHandler {
	return &WebhookHandler{bot: bot, webAppURL: webAppURL, secret: secret}
}

// HandleWebhook receives Bot API updates. /start gets a greeting with
// the Mini App link; everything else is acknowledged and dropped.
// Telegram retries on non-200, so parse failures still return OK.
func (h *WebhookHandler) HandleWebhook(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		writeError(w, http.StatusMethodNotAllowed, kindValidation, "method not allowed")
		return
	}

	if h.secret != "" && r.Header.Get("X-Telegram-Bot-Api-Secret-Token") != h.secret {
		writeError(w, http.StatusUnauthorized, kindAuthorization, "invalid webhook secret")
		return
	}

	var update telegram.Update
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Printf("Error decoding webhook update: %v", err)
		w.WriteHeader(http.StatusOK)
		return
	}

	if update.Message != nil && strings.HasPrefix(update.Message.Text, "/start") {
		text := fmt.Sprintf("Привет! Открой копилку: %s", h.webAppURL)
		if err := h.bot.SendMessage(r.Context(), update.Message.Chat.ID, text); err != nil {
			log.Printf("Error sending start reply to chat %d: %v", update.Message.Chat.ID, err)
		}
	}

	w.WriteHeader(http.StatusOK)
}
