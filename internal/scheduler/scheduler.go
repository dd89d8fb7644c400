package scheduler

import (
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/Archi82123/friend-daily-bot/internal/domain"
	"github.com/Archi82123/friend-daily-bot/internal/store"
)

// Sender delivers one text message to a subscriber. telegram.Sender
// implements it.
type Sender interface {
	Send(id domain.SubscriberID, text string) error
}

// MessagePool supplies the reminder text for each delivery.
type MessagePool interface {
	PickOne() string
}

// Scheduler owns at most one self-renewing timer per subscriber. A daily
// job is a one-shot timer that, on fire, delivers and re-arms for the
// next occurrence, re-resolving the local wall clock against the timezone
// database each time instead of adding a fixed 24h.
type Scheduler struct {
	subs   *store.Subscriptions
	sender Sender
	pool   MessagePool
	log    *zap.Logger

	mu      sync.Mutex
	entries map[domain.SubscriberID]*entry

	// Overridable in tests.
	now     func() time.Time
	resolve func(tz string, tod domain.TimeOfDay, after time.Time) (time.Time, error)
}

// entry serializes all job transitions for one subscriber, so reschedules
// for different subscribers proceed in parallel. gen invalidates a
// pending fire once the job it belongs to has been replaced or cancelled.
type entry struct {
	mu    sync.Mutex
	gen   uint64
	timer *time.Timer
	pref  domain.Preference
	live  bool
}

func New(subs *store.Subscriptions, sender Sender, pool MessagePool, log *zap.Logger) *Scheduler {
	return &Scheduler{
		subs:    subs,
		sender:  sender,
		pool:    pool,
		log:     log,
		entries: make(map[domain.SubscriberID]*entry),
		now:     time.Now,
		resolve: domain.NextFireInstant,
	}
}

// entryFor returns the per-subscriber entry, creating it on first use.
// Entries persist after Cancel; a dead entry is a few words and keeps the
// generation counter monotonic for its subscriber.
func (s *Scheduler) entryFor(id domain.SubscriberID) *entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[id]
	if !ok {
		e = &entry{}
		s.entries[id] = e
	}
	return e
}

// Schedule arms the daily job for id under pref, replacing any existing
// job. First-time scheduling and rescheduling are the same operation:
// whatever was armed before is stopped inside the same per-subscriber
// critical section that arms the new timer.
func (s *Scheduler) Schedule(id domain.SubscriberID, pref domain.Preference) error {
	next, err := s.resolve(pref.Timezone, pref.At, s.now())
	if err != nil {
		return err
	}

	e := s.entryFor(id)
	e.mu.Lock()
	defer e.mu.Unlock()

	e.gen++
	if e.timer != nil {
		e.timer.Stop()
	}
	s.subs.Upsert(id, pref)
	e.pref = pref
	e.live = true
	gen := e.gen
	e.timer = time.AfterFunc(next.Sub(s.now()), func() { s.fire(id, gen) })

	s.log.Info("job scheduled",
		zap.Int64("chatID", int64(id)),
		zap.String("tz", pref.Timezone),
		zap.String("at", pref.At.String()),
		zap.Time("next", next),
	)
	return nil
}

// Cancel stops and removes the job for id. Safe to call when none exists
// and safe to call twice. The stored preference is not touched.
func (s *Scheduler) Cancel(id domain.SubscriberID) {
	e := s.entryFor(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	e.gen++
	if e.timer != nil {
		e.timer.Stop()
		e.timer = nil
	}
	e.live = false
}

// Active reports whether id currently has an armed job.
func (s *Scheduler) Active(id domain.SubscriberID) bool {
	e := s.entryFor(id)
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.live
}

// fire delivers one reminder and re-arms for the next day. A stale gen
// means the job was cancelled or replaced after this fire was queued; the
// fire then does nothing, so one transition can never produce both an old
// and a new message.
func (s *Scheduler) fire(id domain.SubscriberID, gen uint64) {
	e := s.entryFor(id)

	e.mu.Lock()
	if !e.live || e.gen != gen {
		e.mu.Unlock()
		return
	}
	pref := e.pref
	e.mu.Unlock()

	// Deliver outside the entry lock; a slow transport must not block
	// reschedules for this subscriber.
	if err := s.sender.Send(id, s.pool.PickOne()); err != nil {
		// A failed send never terminates the recurrence.
		s.log.Error("delivery failed", zap.Error(err), zap.Int64("chatID", int64(id)))
	}

	next, err := s.resolve(pref.Timezone, pref.At, s.now())
	if err != nil {
		// The preference was validated before it was scheduled; losing
		// the zone now means the timezone database changed underneath us.
		s.log.Error("re-arm failed", zap.Error(err),
			zap.Int64("chatID", int64(id)), zap.String("tz", pref.Timezone))
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if !e.live || e.gen != gen {
		// Replaced or cancelled while we were delivering.
		return
	}
	e.timer = time.AfterFunc(next.Sub(s.now()), func() { s.fire(id, gen) })
	s.log.Debug("job re-armed", zap.Int64("chatID", int64(id)), zap.Time("next", next))
}
