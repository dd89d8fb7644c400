// Package dialog implements the onboarding conversation as a pure state
// machine: a tagged step enum, event and effect types, and a transition
// function with no transport or timer dependencies.
package dialog

import "github.com/Archi82123/friend-daily-bot/internal/domain"

// Step is the onboarding position for one subscriber.
type Step int

const (
	StepAwaitTimezone Step = iota + 1
	StepAwaitTime
	StepDone
)

// Session is the transient per-subscriber onboarding state. It lives in
// process memory only and is discarded when the dialog completes or
// restarts.
type Session struct {
	Step     Step
	Timezone string // candidate, empty until a timezone is accepted
}

// Event is one inbound subscriber interaction.
type Event interface{ isEvent() }

// Start begins (or restarts) onboarding from the timezone prompt. Valid
// from every step: a fresh start always discards the current session.
type Start struct{}

// TimezoneChosen carries the identifier behind a tapped timezone button.
type TimezoneChosen struct{ ID string }

// BrowseAll asks for the full timezone catalogue.
type BrowseAll struct{}

// TimeText carries free text expected to be a strict HH:MM literal.
type TimeText struct{ Raw string }

// ChangeTime re-enters the time step keeping a previously confirmed
// timezone.
type ChangeTime struct{ Timezone string }

func (Start) isEvent()          {}
func (TimezoneChosen) isEvent() {}
func (BrowseAll) isEvent()      {}
func (TimeText) isEvent()       {}
func (ChangeTime) isEvent()     {}

// Effect is an instruction to the transport layer. Completed is the only
// effect that may arm a job, and Next emits it solely on the validated
// transition out of StepAwaitTime.
type Effect interface{ isEffect() }

type PromptTimezone struct{}
type ShowCatalogue struct{}
type PromptTime struct{}
type RejectTimezone struct{ ID string }
type RejectTime struct{ Raw string }

// AbortNoTimezone reports a session that reached the time step without a
// stored timezone. Unreachable under correct transitions; the session is
// terminated without scheduling.
type AbortNoTimezone struct{}

type Completed struct{ Pref domain.Preference }

func (PromptTimezone) isEffect()  {}
func (ShowCatalogue) isEffect()   {}
func (PromptTime) isEffect()      {}
func (RejectTimezone) isEffect()  {}
func (RejectTime) isEffect()      {}
func (AbortNoTimezone) isEffect() {}
func (Completed) isEffect()       {}

// Next is the pure transition function. Invalid input never advances the
// step; it yields a reject effect and leaves the session unchanged.
func Next(s Session, ev Event) (Session, []Effect) {
	// Restart triggers win regardless of the current step.
	switch e := ev.(type) {
	case Start:
		return Session{Step: StepAwaitTimezone}, []Effect{PromptTimezone{}}
	case ChangeTime:
		return Session{Step: StepAwaitTime, Timezone: e.Timezone}, []Effect{PromptTime{}}
	}

	switch s.Step {
	case StepAwaitTimezone:
		switch e := ev.(type) {
		case BrowseAll:
			// Browsing is a view, not a step: self-loop.
			return s, []Effect{ShowCatalogue{}}
		case TimezoneChosen:
			id, err := domain.ValidateTimezone(e.ID)
			if err != nil {
				return s, []Effect{RejectTimezone{ID: e.ID}}
			}
			return Session{Step: StepAwaitTime, Timezone: id}, []Effect{PromptTime{}}
		}
	case StepAwaitTime:
		if e, ok := ev.(TimeText); ok {
			tod, err := domain.ParseTimeOfDay(e.Raw)
			if err != nil {
				return s, []Effect{RejectTime{Raw: e.Raw}}
			}
			if s.Timezone == "" {
				// Never schedule with an absent timezone.
				return Session{Step: StepDone}, []Effect{AbortNoTimezone{}}
			}
			pref := domain.Preference{Timezone: s.Timezone, At: tod}
			return Session{Step: StepDone}, []Effect{Completed{Pref: pref}}
		}
	}
	// Anything else is noise for the current step.
	return s, nil
}
