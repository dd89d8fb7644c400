package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Archi82123/friend-daily-bot/internal/domain"
)

// Sender adapts the bot API to the scheduler's delivery contract.
type Sender struct {
	bot *tgbotapi.BotAPI
}

func NewSender(bot *tgbotapi.BotAPI) *Sender {
	return &Sender{bot: bot}
}

// Send delivers one reminder text to the subscriber's chat.
func (s *Sender) Send(id domain.SubscriberID, text string) error {
	_, err := s.bot.Send(tgbotapi.NewMessage(int64(id), text))
	return err
}
