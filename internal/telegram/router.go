package telegram

import (
	"context"
	"fmt"
	"strings"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Archi82123/friend-daily-bot/internal/dialog"
	"github.com/Archi82123/friend-daily-bot/internal/domain"
	"github.com/Archi82123/friend-daily-bot/internal/scheduler"
	"github.com/Archi82123/friend-daily-bot/internal/store"
)

// browseAllData is the callback payload behind the "show all" button.
const browseAllData = "SHOW_ALL"

// Router translates Telegram updates into dialog events and renders the
// resulting effects back to the chat. Scheduling happens in exactly one
// place: the Completed effect handler.
type Router struct {
	bot       *tgbotapi.BotAPI
	log       *zap.Logger
	dialogs   *dialog.Manager
	sched     *scheduler.Scheduler
	subs      *store.Subscriptions
	repo      store.Repo
	defaultTZ string
}

func NewRouter(bot *tgbotapi.BotAPI, log *zap.Logger, dialogs *dialog.Manager,
	sched *scheduler.Scheduler, subs *store.Subscriptions, repo store.Repo, defaultTZ string) *Router {
	return &Router{
		bot:       bot,
		log:       log,
		dialogs:   dialogs,
		sched:     sched,
		subs:      subs,
		repo:      repo,
		defaultTZ: defaultTZ,
	}
}

// HandleUpdate routes a single update.
func (r *Router) HandleUpdate(ctx context.Context, upd tgbotapi.Update) {
	switch {
	case upd.Message != nil:
		msg := upd.Message
		id := domain.SubscriberID(msg.Chat.ID)
		text := strings.TrimSpace(msg.Text)

		switch {
		case strings.HasPrefix(text, "/start"):
			r.apply(ctx, id, dialog.Start{})
		case strings.HasPrefix(text, "/stop"):
			r.handleStop(ctx, id)
		case text == buttonChangeTimezone:
			r.apply(ctx, id, dialog.Start{})
		case text == buttonChangeTime:
			r.handleChangeTime(ctx, id)
		default:
			// Free text is only meaningful as a time literal; the dialog
			// ignores it when no session is waiting for one.
			r.apply(ctx, id, dialog.TimeText{Raw: text})
		}

	case upd.CallbackQuery != nil:
		cb := upd.CallbackQuery
		if cb.Message == nil {
			return
		}
		id := domain.SubscriberID(cb.Message.Chat.ID)
		if _, err := r.bot.Request(tgbotapi.NewCallback(cb.ID, "")); err != nil {
			r.log.Warn("answer callback failed", zap.Error(err))
		}
		if cb.Data == browseAllData {
			r.apply(ctx, id, dialog.BrowseAll{})
			return
		}
		r.apply(ctx, id, dialog.TimezoneChosen{ID: cb.Data})
	}
}

// handleChangeTime re-enters the time step with the confirmed timezone;
// a subscriber without one goes through full onboarding instead.
func (r *Router) handleChangeTime(ctx context.Context, id domain.SubscriberID) {
	pref, ok := r.subs.Get(id)
	if !ok {
		r.apply(ctx, id, dialog.Start{})
		return
	}
	r.apply(ctx, id, dialog.ChangeTime{Timezone: pref.Timezone})
}

func (r *Router) handleStop(ctx context.Context, id domain.SubscriberID) {
	r.sched.Cancel(id)
	r.subs.Remove(id)
	if err := r.repo.DeletePreference(ctx, id); err != nil {
		r.log.Error("delete preference failed", zap.Error(err), zap.Int64("chatID", int64(id)))
	}
	r.sendText(id, stoppedText)
}

func (r *Router) apply(ctx context.Context, id domain.SubscriberID, ev dialog.Event) {
	for _, eff := range r.dialogs.Apply(id, ev) {
		r.render(ctx, id, eff)
	}
}

func (r *Router) render(ctx context.Context, id domain.SubscriberID, eff dialog.Effect) {
	switch e := eff.(type) {
	case dialog.PromptTimezone:
		msg := tgbotapi.NewMessage(int64(id), greetingText)
		msg.ReplyMarkup = timezonePromptKeyboard(r.defaultTZ)
		r.send(msg)
	case dialog.ShowCatalogue:
		msg := tgbotapi.NewMessage(int64(id), chooseTimezoneText)
		msg.ReplyMarkup = catalogueKeyboard()
		r.send(msg)
	case dialog.PromptTime:
		r.sendText(id, timePromptText)
	case dialog.RejectTimezone:
		r.log.Debug("timezone rejected", zap.Int64("chatID", int64(id)), zap.String("tz", e.ID))
		r.sendText(id, invalidTimezoneText)
	case dialog.RejectTime:
		r.sendText(id, invalidTimeText)
	case dialog.AbortNoTimezone:
		// Should be unreachable under correct transitions.
		r.log.Error("time step reached without a timezone",
			zap.Error(domain.ErrMissingPreference), zap.Int64("chatID", int64(id)))
		r.sendText(id, noTimezoneText)
	case dialog.Completed:
		r.complete(ctx, id, e.Pref)
	}
}

// complete arms the daily job for a fully validated preference, persists
// the snapshot, and confirms to the subscriber.
func (r *Router) complete(ctx context.Context, id domain.SubscriberID, pref domain.Preference) {
	if err := r.sched.Schedule(id, pref); err != nil {
		r.log.Error("schedule failed", zap.Error(err), zap.Int64("chatID", int64(id)))
		r.sendText(id, scheduleErrorText)
		return
	}
	if err := r.repo.SavePreference(ctx, id, pref); err != nil {
		// The job is live; the snapshot catches up on the next change.
		r.log.Error("save preference failed", zap.Error(err), zap.Int64("chatID", int64(id)))
	}

	body := fmt.Sprintf(confirmationFmt, pref.At, domain.TimezoneLabel(pref.Timezone))
	msg := tgbotapi.NewMessage(int64(id), body)
	msg.ReplyMarkup = mainMenuKeyboard()
	r.send(msg)
}

func (r *Router) send(msg tgbotapi.MessageConfig) {
	if _, err := r.bot.Send(msg); err != nil {
		r.log.Error("send failed", zap.Error(err), zap.Int64("chatID", msg.ChatID))
	}
}

func (r *Router) sendText(id domain.SubscriberID, text string) {
	r.send(tgbotapi.NewMessage(int64(id), text))
}
