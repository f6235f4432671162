package tg

import (
	"context"
	"errors"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"
)

// Считаем системными: 5xx, 429, timeout. 400-ки и типичные телеграм-валидации в Sentry не шлём.
func isSystemErr(err error) bool {
	if err == nil {
		return false
	}
	s := err.Error()
	if strings.Contains(s, "Bad Request") ||
		strings.Contains(s, "chat not found") ||
		strings.Contains(s, "can't parse entities") {
		return false
	}
	return strings.Contains(s, "429") || strings.Contains(s, "502") ||
		strings.Contains(s, "503") || strings.Contains(s, "timeout")
}

// sender — то, что нужно от tgbotapi.BotAPI; в тестах подменяется.
type sender interface {
	Send(c tgbotapi.Chattable) (tgbotapi.Message, error)
}

// Notifier рассылает текстовые сводки в заданные чаты.
type Notifier struct {
	bot   sender
	chats []int64
	log   *zap.Logger
}

func NewNotifier(token string, chats []int64, log *zap.Logger) (*Notifier, error) {
	bot, err := tgbotapi.NewBotAPI(token)
	if err != nil {
		return nil, err
	}
	return &Notifier{bot: bot, chats: chats, log: log}, nil
}

// Notify отправляет сообщение во все чаты. Возвращаются только системные ошибки,
// отказы Telegram по конкретному чату пишутся в лог.
func (n *Notifier) Notify(ctx context.Context, text string) error {
	var errs []error
	for _, chat := range n.chats {
		if err := ctx.Err(); err != nil {
			return err
		}
		msg := tgbotapi.NewMessage(chat, text)
		msg.ParseMode = tgbotapi.ModeHTML
		msg.DisableWebPagePreview = true
		if _, err := n.bot.Send(msg); err != nil {
			if isSystemErr(err) {
				errs = append(errs, err)
				continue
			}
			n.logger().Warn("telegram send rejected", zap.Int64("chat_id", chat), zap.Error(err))
		}
	}
	return errors.Join(errs...)
}

func (n *Notifier) logger() *zap.Logger {
	if n.log == nil {
		return zap.NewNop()
	}
	return n.log
}
