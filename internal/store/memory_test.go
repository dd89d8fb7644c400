package store

import (
	"testing"

	"github.com/Archi82123/friend-daily-bot/internal/domain"
)

func TestSubscriptionsUpsertReplacesWholesale(t *testing.T) {
	s := NewSubscriptions()
	id := domain.SubscriberID(7)
	p1 := domain.Preference{Timezone: "Europe/Moscow", At: domain.TimeOfDay{Hour: 9}}
	p2 := domain.Preference{Timezone: "Etc/GMT-3", At: domain.TimeOfDay{Hour: 18, Minute: 30}}

	if _, ok := s.Upsert(id, p1); ok {
		t.Fatal("first upsert reported a previous preference")
	}
	old, ok := s.Upsert(id, p2)
	if !ok || old != p1 {
		t.Fatalf("second upsert returned (%+v, %v), want (%+v, true)", old, ok, p1)
	}
	got, ok := s.Get(id)
	if !ok || got != p2 {
		t.Fatalf("get returned (%+v, %v), want (%+v, true)", got, ok, p2)
	}
}

func TestSubscriptionsRemove(t *testing.T) {
	s := NewSubscriptions()
	id := domain.SubscriberID(8)
	s.Upsert(id, domain.Preference{Timezone: "UTC", At: domain.TimeOfDay{Hour: 8}})

	s.Remove(id)
	if _, ok := s.Get(id); ok {
		t.Fatal("preference survived remove")
	}
	s.Remove(id) // removing a missing id is a no-op
	if s.Len() != 0 {
		t.Fatalf("len %d after removes", s.Len())
	}
}
