package scheduler

import (
	"errors"
	"sync"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/Archi82123/friend-daily-bot/internal/domain"
	"github.com/Archi82123/friend-daily-bot/internal/store"
)

type recordingSender struct {
	mu    sync.Mutex
	calls []domain.SubscriberID
	err   error
	fired chan struct{}
}

func newRecordingSender() *recordingSender {
	return &recordingSender{fired: make(chan struct{}, 64)}
}

func (r *recordingSender) Send(id domain.SubscriberID, _ string) error {
	r.mu.Lock()
	r.calls = append(r.calls, id)
	err := r.err
	r.mu.Unlock()
	r.fired <- struct{}{}
	return err
}

func (r *recordingSender) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.calls)
}

type fixedPool struct{}

func (fixedPool) PickOne() string { return "ping" }

// newTestScheduler wires a scheduler whose resolver fires after the delay
// mapped to the preference's timezone, so tests control when each job is
// due without waiting a day.
func newTestScheduler(sender Sender, delays map[string]time.Duration) (*Scheduler, *store.Subscriptions) {
	subs := store.NewSubscriptions()
	s := New(subs, sender, fixedPool{}, zap.NewNop())
	s.resolve = func(tz string, _ domain.TimeOfDay, after time.Time) (time.Time, error) {
		d, ok := delays[tz]
		if !ok {
			return time.Time{}, errors.New("unexpected tz " + tz)
		}
		return after.Add(d), nil
	}
	return s, subs
}

func waitFires(t *testing.T, sender *recordingSender, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		select {
		case <-sender.fired:
		case <-time.After(2 * time.Second):
			t.Fatalf("timed out waiting for fire %d of %d", i+1, n)
		}
	}
}

func TestScheduleReplacesExistingJob(t *testing.T) {
	sender := newRecordingSender()
	s, subs := newTestScheduler(sender, map[string]time.Duration{
		"Etc/GMT-1": 40 * time.Millisecond,
		"Etc/GMT-2": 300 * time.Millisecond,
	})
	id := domain.SubscriberID(1)
	p1 := domain.Preference{Timezone: "Etc/GMT-1", At: domain.TimeOfDay{Hour: 9}}
	p2 := domain.Preference{Timezone: "Etc/GMT-2", At: domain.TimeOfDay{Hour: 10}}

	if err := s.Schedule(id, p1); err != nil {
		t.Fatalf("schedule p1: %v", err)
	}
	if err := s.Schedule(id, p2); err != nil {
		t.Fatalf("schedule p2: %v", err)
	}

	if got, _ := subs.Get(id); got != p2 {
		t.Fatalf("stored preference %+v, want %+v", got, p2)
	}
	if !s.Active(id) {
		t.Fatal("no active job after reschedule")
	}

	// p1 would have fired at 40ms; only p2's 300ms timer may exist.
	time.Sleep(150 * time.Millisecond)
	if n := sender.count(); n != 0 {
		t.Fatalf("replaced job fired %d times", n)
	}
	waitFires(t, sender, 1) // p2 does fire
	s.Cancel(id)
}

func TestCancelStopsPendingFire(t *testing.T) {
	sender := newRecordingSender()
	s, _ := newTestScheduler(sender, map[string]time.Duration{
		"Etc/GMT-3": 50 * time.Millisecond,
	})
	id := domain.SubscriberID(2)
	pref := domain.Preference{Timezone: "Etc/GMT-3", At: domain.TimeOfDay{Hour: 9}}

	if err := s.Schedule(id, pref); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	s.Cancel(id)
	s.Cancel(id) // idempotent

	if s.Active(id) {
		t.Fatal("job still active after cancel")
	}
	time.Sleep(200 * time.Millisecond)
	if n := sender.count(); n != 0 {
		t.Fatalf("cancelled job fired %d times", n)
	}
}

func TestFireDeliversAndRearms(t *testing.T) {
	sender := newRecordingSender()
	s, _ := newTestScheduler(sender, map[string]time.Duration{
		"Etc/GMT-3": 30 * time.Millisecond,
	})
	id := domain.SubscriberID(3)
	pref := domain.Preference{Timezone: "Etc/GMT-3", At: domain.TimeOfDay{Hour: 9}}

	if err := s.Schedule(id, pref); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	// Two fires prove the job re-armed itself after the first delivery.
	waitFires(t, sender, 2)
	if !s.Active(id) {
		t.Fatal("job not active after fires")
	}
	s.Cancel(id)
}

func TestDeliveryErrorDoesNotKillRecurrence(t *testing.T) {
	sender := newRecordingSender()
	sender.err = errors.New("transport down")
	s, _ := newTestScheduler(sender, map[string]time.Duration{
		"Etc/GMT-3": 30 * time.Millisecond,
	})
	id := domain.SubscriberID(4)
	pref := domain.Preference{Timezone: "Etc/GMT-3", At: domain.TimeOfDay{Hour: 9}}

	if err := s.Schedule(id, pref); err != nil {
		t.Fatalf("schedule: %v", err)
	}
	waitFires(t, sender, 2)
	if !s.Active(id) {
		t.Fatal("failed delivery cancelled the job")
	}
	s.Cancel(id)
}

func TestScheduleRejectsInvalidTimezone(t *testing.T) {
	subs := store.NewSubscriptions()
	s := New(subs, newRecordingSender(), fixedPool{}, zap.NewNop())

	id := domain.SubscriberID(5)
	err := s.Schedule(id, domain.Preference{Timezone: "bogus", At: domain.TimeOfDay{Hour: 9}})
	if !errors.Is(err, domain.ErrInvalidTimezone) {
		t.Fatalf("want ErrInvalidTimezone, got %v", err)
	}
	if s.Active(id) {
		t.Fatal("job armed despite resolve failure")
	}
	if subs.Len() != 0 {
		t.Fatal("preference stored despite resolve failure")
	}
}

func TestSubscribersAreIndependent(t *testing.T) {
	sender := newRecordingSender()
	delays := map[string]time.Duration{"Etc/GMT-3": time.Hour}
	s, subs := newTestScheduler(sender, delays)
	pref := domain.Preference{Timezone: "Etc/GMT-3", At: domain.TimeOfDay{Hour: 9}}

	var wg sync.WaitGroup
	for i := 1; i <= 20; i++ {
		id := domain.SubscriberID(i)
		wg.Add(1)
		go func() {
			defer wg.Done()
			// Rapid double schedule must still end with exactly one job.
			_ = s.Schedule(id, pref)
			_ = s.Schedule(id, pref)
		}()
	}
	wg.Wait()

	if subs.Len() != 20 {
		t.Fatalf("stored %d preferences, want 20", subs.Len())
	}
	for i := 1; i <= 20; i++ {
		if !s.Active(domain.SubscriberID(i)) {
			t.Fatalf("subscriber %d lost its job", i)
		}
	}
}
