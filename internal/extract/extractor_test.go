package extract

import (
	"testing"

	"github.com/Mitesh6440/MeetMind/internal/rules"
	"github.com/Mitesh6440/MeetMind/internal/transcript"
)

func sentences(texts ...string) []transcript.Sentence {
	out := make([]transcript.Sentence, len(texts))
	for i, text := range texts {
		out[i] = transcript.Sentence{Index: i + 1, Text: text}
	}
	return out
}

func TestExtractDetectsObligationAndImperative(t *testing.T) {
	e := New(rules.Default())
	got := e.Extract(sentences(
		"John needs to fix the login bug by tomorrow",
		"Update the deployment docs before Friday",
	))
	if len(got) != 2 {
		t.Fatalf("len(tasks) = %d, want 2: %+v", len(got), got)
	}
	if got[0].ID != 1 || got[1].ID != 2 {
		t.Fatalf("ids = %d, %d, want 1, 2", got[0].ID, got[1].ID)
	}
	if got[0].OriginSentence != 1 || got[1].OriginSentence != 2 {
		t.Fatalf("origins = %d, %d", got[0].OriginSentence, got[1].OriginSentence)
	}
	if got[0].Description != "John needs to fix the login bug by tomorrow" {
		t.Fatalf("description = %q", got[0].Description)
	}
}

func TestExtractSkipsNonTaskSentences(t *testing.T) {
	e := New(rules.Default())
	got := e.Extract(sentences(
		"We discussed the login bug yesterday",
		"The weather was nice during standup",
		"This is critical",
	))
	if len(got) != 0 {
		t.Fatalf("len(tasks) = %d, want 0: %+v", len(got), got)
	}
}

func TestExtractRejectsShortFragments(t *testing.T) {
	e := New(rules.Default())
	if got := e.Extract(sentences("Fix it")); len(got) != 0 {
		t.Fatalf("two-word fragment produced a task: %+v", got)
	}
}

func TestExtractStripsConversationalPrefixes(t *testing.T) {
	e := New(rules.Default())
	got := e.Extract(sentences("So I think we should update the onboarding docs"))
	if len(got) != 1 {
		t.Fatalf("len(tasks) = %d, want 1", len(got))
	}
	if got[0].Description != "we should update the onboarding docs" {
		t.Fatalf("description = %q, want prefix stripped", got[0].Description)
	}
}

func TestExtractResolvesPronounFromPriorTask(t *testing.T) {
	e := New(rules.Default())
	got := e.Extract(sentences(
		"Fix the login bug by Friday",
		"Sarah should test it tomorrow",
	))
	if len(got) != 2 {
		t.Fatalf("len(tasks) = %d, want 2", len(got))
	}
	if got[1].Description != "Sarah should test the login bug tomorrow" {
		t.Fatalf("description = %q, want pronoun resolved", got[1].Description)
	}
}

func TestExtractResolvesPronounFromTechnicalPhrase(t *testing.T) {
	e := New(rules.Default())
	got := e.Extract(sentences(
		"The login bug keeps coming back",
		"We should fix it today",
	))
	if len(got) != 1 {
		t.Fatalf("len(tasks) = %d, want 1: %+v", len(got), got)
	}
	if got[0].Description != "We should fix the login bug today" {
		t.Fatalf("description = %q, want pronoun resolved", got[0].Description)
	}
}

func TestExtractLeavesUnresolvablePronoun(t *testing.T) {
	e := New(rules.Default())
	got := e.Extract(sentences("We should fix it today"))
	if len(got) != 1 {
		t.Fatalf("len(tasks) = %d, want 1", len(got))
	}
	if got[0].Description != "We should fix it today" {
		t.Fatalf("description = %q, want pronoun kept when no referent exists", got[0].Description)
	}
}

func TestExtractPronounLookbackIsBounded(t *testing.T) {
	e := New(rules.Default())
	got := e.Extract(sentences(
		"The login bug keeps coming back",
		"One filler sentence with nothing actionable",
		"Another filler sentence goes here",
		"Yet another filler sentence goes here",
		"We should fix it today",
	))
	if len(got) != 1 {
		t.Fatalf("len(tasks) = %d, want 1: %+v", len(got), got)
	}
	if got[0].Description != "We should fix it today" {
		t.Fatalf("description = %q, referent outside the lookback window must not resolve", got[0].Description)
	}
}
