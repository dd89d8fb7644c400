package telegram

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"

	"github.com/Archi82123/friend-daily-bot/internal/domain"
)

// UI texts in English
const (
	greetingText = "👋 Hi! Once a day I'll send you a little message at a time you choose.\n\n" +
		"First, pick your timezone:"
	chooseTimezoneText  = "🌍 Choose your timezone:"
	timePromptText      = "🕒 Now send me the time for your daily message, in HH:MM (24-hour), e.g. 09:00."
	invalidTimezoneText = "❌ I don't know that timezone. Please pick one from the list."
	invalidTimeText     = "❌ That doesn't look like HH:MM. Try something like 09:00 or 21:30."
	noTimezoneText      = "😵 I lost your timezone somewhere. Please send /start and we'll begin again."
	scheduleErrorText   = "⚠️ I couldn't set that up. Please send /start and try again."
	stoppedText         = "👋 Daily messages are off. Send /start whenever you want them back."
	confirmationFmt     = "✅ Done! I'll write to you every day at %s (%s).\n\nYou can change this below any time."

	buttonChangeTime     = "🕒 Change delivery time"
	buttonChangeTimezone = "🌍 Change timezone"
)

// timezonePromptKeyboard offers the fixed default plus an escape hatch to
// the full catalogue.
func timezonePromptKeyboard(defaultTZ string) tgbotapi.InlineKeyboardMarkup {
	return tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(domain.TimezoneLabel(defaultTZ), defaultTZ),
		),
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("🗺 Show all timezones", browseAllData),
		),
	)
}

// catalogueKeyboard lists the whole fixed timezone catalogue, one option
// per row like the compact mobile layout expects.
func catalogueKeyboard() tgbotapi.InlineKeyboardMarkup {
	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(domain.TimezoneCatalogue))
	for _, opt := range domain.TimezoneCatalogue {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(opt.Label, opt.ID),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...)
}

// mainMenuKeyboard is shown after a confirmed preference.
func mainMenuKeyboard() tgbotapi.ReplyKeyboardMarkup {
	kb := tgbotapi.NewReplyKeyboard(
		tgbotapi.NewKeyboardButtonRow(
			tgbotapi.NewKeyboardButton(buttonChangeTime),
			tgbotapi.NewKeyboardButton(buttonChangeTimezone),
		),
	)
	kb.ResizeKeyboard = true
	return kb
}
