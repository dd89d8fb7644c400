package store

import (
	"context"

	"github.com/Archi82123/friend-daily-bot/internal/domain"
)

// Repo persists confirmed preferences so subscriptions survive restarts.
// The scheduler never reads it; the app replays AllPreferences through
// Schedule at startup.
type Repo interface {
	SavePreference(ctx context.Context, id domain.SubscriberID, p domain.Preference) error
	DeletePreference(ctx context.Context, id domain.SubscriberID) error
	AllPreferences(ctx context.Context) (map[domain.SubscriberID]domain.Preference, error)
	Close() error
}
