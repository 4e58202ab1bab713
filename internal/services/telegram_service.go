package services

import (
	"fmt"
	"log"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// TelegramService шлёт уведомления в общий канал тенанта. Без токена —
// тихий no-op, чтобы локальная разработка не требовала бота.
type TelegramService struct {
	bot    *tgbotapi.BotAPI
	chatID int64
}

func NewTelegramService(botToken string, chatID int64) *TelegramService {
	if botToken == "" || chatID == 0 {
		log.Printf("[tg] token or chat_id empty, notifications disabled")
		return &TelegramService{}
	}
	bot, err := tgbotapi.NewBotAPI(botToken)
	if err != nil {
		log.Printf("[tg] init failed, notifications disabled: %v", err)
		return &TelegramService{}
	}
	return &TelegramService{bot: bot, chatID: chatID}
}

func (t *TelegramService) NotifyLeadCaptured(leadTitle, contactName string, exhibitionID *int64) error {
	if t == nil || t.bot == nil {
		return nil
	}
	text := fmt.Sprintf("🔔 New FairEx lead: %s", leadTitle)
	if contactName != "" {
		text += fmt.Sprintf("\nContact: %s", contactName)
	}
	if exhibitionID != nil {
		text += fmt.Sprintf("\nExhibition: %d", *exhibitionID)
	}
	msg := tgbotapi.NewMessage(t.chatID, text)
	if _, err := t.bot.Send(msg); err != nil {
		return fmt.Errorf("telegram send: %w", err)
	}
	return nil
}
