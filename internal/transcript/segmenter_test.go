package transcript

import (
	"testing"
)

func newTestSegmenter() *Segmenter {
	return NewSegmenter(
		[]string{"um", "uh"},
		[]string{"okay", "sounds good"},
	)
}

func TestSegmentSplitsSentencesAndKeepsSpeaker(t *testing.T) {
	s := newTestSegmenter()
	got := s.Segment("John: We need to fix the login bug. It crashes on submit.")
	if len(got) != 2 {
		t.Fatalf("len(sentences) = %d, want 2", len(got))
	}
	if got[0].Index != 1 || got[1].Index != 2 {
		t.Fatalf("indices = %d, %d, want 1, 2", got[0].Index, got[1].Index)
	}
	if got[0].Speaker != "John" || got[1].Speaker != "John" {
		t.Fatalf("speakers = %q, %q, want John for both", got[0].Speaker, got[1].Speaker)
	}
	if got[0].Text != "We need to fix the login bug" {
		t.Fatalf("first sentence = %q", got[0].Text)
	}
	if got[1].Text != "It crashes on submit" {
		t.Fatalf("second sentence = %q", got[1].Text)
	}
}

func TestSegmentDropsFillerTokens(t *testing.T) {
	s := newTestSegmenter()
	got := s.Segment("Um, we should update the docs.")
	if len(got) != 1 {
		t.Fatalf("len(sentences) = %d, want 1", len(got))
	}
	if got[0].Text != "we should update the docs" {
		t.Fatalf("sentence = %q, want filler removed", got[0].Text)
	}
}

func TestSegmentDiscardsDisposableUtterances(t *testing.T) {
	s := newTestSegmenter()
	got := s.Segment("Okay. Sounds good. Deploy the new build today.")
	if len(got) != 1 {
		t.Fatalf("len(sentences) = %d, want 1: %+v", len(got), got)
	}
	if got[0].Index != 1 {
		t.Fatalf("surviving sentence index = %d, want 1", got[0].Index)
	}
	if got[0].Text != "Deploy the new build today" {
		t.Fatalf("sentence = %q", got[0].Text)
	}
}

func TestSegmentNormalizesQuotesAndWhitespace(t *testing.T) {
	s := newTestSegmenter()
	got := s.Segment("Update  the\t“welcome”   page.")
	if len(got) != 1 {
		t.Fatalf("len(sentences) = %d, want 1", len(got))
	}
	if got[0].Text != `Update the "welcome" page` {
		t.Fatalf("sentence = %q", got[0].Text)
	}
}

func TestSegmentEmptyTranscript(t *testing.T) {
	s := newTestSegmenter()
	if got := s.Segment(""); len(got) != 0 {
		t.Fatalf("empty transcript produced %d sentences", len(got))
	}
	if got := s.Segment("\n\n   \n"); len(got) != 0 {
		t.Fatalf("blank transcript produced %d sentences", len(got))
	}
}

func TestSegmentIndexesContinueAcrossLines(t *testing.T) {
	s := newTestSegmenter()
	got := s.Segment("Alice: Review the migration plan.\nBob: Ship it after the review. Then update the changelog.")
	if len(got) != 3 {
		t.Fatalf("len(sentences) = %d, want 3", len(got))
	}
	for i, sent := range got {
		if sent.Index != i+1 {
			t.Fatalf("sentence %d has index %d", i, sent.Index)
		}
	}
	if got[0].Speaker != "Alice" || got[2].Speaker != "Bob" {
		t.Fatalf("speakers = %q, %q", got[0].Speaker, got[2].Speaker)
	}
	if got[0].Text != "Review the migration plan" {
		t.Fatalf("first sentence = %q", got[0].Text)
	}
}

func TestSegmentHandlesMissingBoundarySpace(t *testing.T) {
	s := newTestSegmenter()
	got := s.Segment("Fix the login bug.Then deploy the fix")
	if len(got) != 2 {
		t.Fatalf("len(sentences) = %d, want 2: %+v", len(got), got)
	}
	if got[1].Text != "Then deploy the fix" {
		t.Fatalf("second sentence = %q", got[1].Text)
	}
}
