package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"go.uber.org/zap"

	"github.com/Archi82123/friend-daily-bot/assets"
	"github.com/Archi82123/friend-daily-bot/internal/config"
	"github.com/Archi82123/friend-daily-bot/internal/dialog"
	"github.com/Archi82123/friend-daily-bot/internal/domain"
	"github.com/Archi82123/friend-daily-bot/internal/messages"
	"github.com/Archi82123/friend-daily-bot/internal/scheduler"
	"github.com/Archi82123/friend-daily-bot/internal/store"
	"github.com/Archi82123/friend-daily-bot/internal/telegram"
)

type App struct {
	cfg     config.Config
	log     *zap.Logger
	bot     *tgbotapi.BotAPI
	httpSrv *http.Server
	repo    store.Repo
	router  *telegram.Router
}

func New(cfg config.Config, log *zap.Logger) (*App, error) {
	if _, err := domain.ValidateTimezone(cfg.DefaultTZ); err != nil {
		return nil, err
	}

	bot, err := tgbotapi.NewBotAPI(cfg.BotToken)
	if err != nil {
		return nil, err
	}
	bot.Debug = false

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })
	srv := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      mux,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	}

	return &App{cfg: cfg, log: log, bot: bot, httpSrv: srv}, nil
}

func (a *App) Run(ctx context.Context) error {
	a.log.Info("starting friend-daily-bot",
		zap.String("http", a.cfg.HTTPAddr),
		zap.String("defaultTZ", a.cfg.DefaultTZ),
	)

	repo, err := store.OpenSQLite(ctx, a.cfg.DBPath)
	if err != nil {
		a.log.Error("open sqlite failed", zap.Error(err))
		return err
	}
	a.repo = repo
	a.log.Info("sqlite ready")

	pool, err := messages.NewPool(assets.Messages())
	if err != nil {
		return err
	}

	subs := store.NewSubscriptions()
	sched := scheduler.New(subs, telegram.NewSender(a.bot), pool, a.log)
	a.router = telegram.NewRouter(a.bot, a.log, dialog.NewManager(), sched, subs, repo, a.cfg.DefaultTZ)

	// Replay persisted subscriptions so daily jobs survive restarts.
	prefs, err := repo.AllPreferences(ctx)
	if err != nil {
		a.log.Error("load subscriptions failed", zap.Error(err))
		return err
	}
	for id, pref := range prefs {
		if err := sched.Schedule(id, pref); err != nil {
			// One broken row must not block the rest of the replay.
			a.log.Error("replay failed", zap.Error(err), zap.Int64("chatID", int64(id)))
		}
	}
	a.log.Info("subscriptions restored", zap.Int("count", len(prefs)))

	go func() {
		if err := a.httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.log.Error("http server error", zap.Error(err))
		}
	}()

	u := tgbotapi.NewUpdate(0)
	u.Timeout = 30
	updCh := a.bot.GetUpdatesChan(u)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	for {
		select {
		case <-ctx.Done():
			a.log.Info("shutdown signal received")

			shCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			err := a.httpSrv.Shutdown(shCtx)
			cancel()
			if err != nil {
				a.log.Warn("http server shutdown error", zap.Error(err))
			}
			if a.repo != nil {
				_ = a.repo.Close()
			}
			return nil

		case upd := <-updCh:
			a.router.HandleUpdate(ctx, upd)
		}
	}
}
