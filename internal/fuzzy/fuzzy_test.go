package fuzzy

import (
	"context"
	"testing"

	"github.com/metsehaf/fidel/internal/models"
)

func testVerses() []models.VerseRecord {
	return []models.VerseRecord{
		{Ref: "1:1", English: "The words of the blessing of Enoch"},
		{Ref: "1:2", English: "And he took up his parable and said"},
		{Ref: "2:1", English: "Observe ye everything that takes place in the heaven"},
	}
}

func TestVerseIndex_FuzzyMatchesTypo(t *testing.T) {
	vi, err := NewVerseIndex(testVerses())
	if err != nil {
		t.Fatal(err)
	}
	defer vi.Close()

	// "blesing" is one edit away from "blessing".
	got, err := vi.Search(context.Background(), "blesing", 10, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) == 0 {
		t.Fatal("expected a fuzzy hit for a one-edit typo")
	}
	if got[0].Ref != "1:1" {
		t.Errorf("top hit = %s, want 1:1", got[0].Ref)
	}
}

func TestVerseIndex_LimitAndEmptyQuery(t *testing.T) {
	vi, err := NewVerseIndex(testVerses())
	if err != nil {
		t.Fatal(err)
	}
	defer vi.Close()

	got, err := vi.Search(context.Background(), "and", 1, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) > 1 {
		t.Errorf("limit not honored: %d hits", len(got))
	}

	got, err = vi.Search(context.Background(), "   ", 10, 2)
	if err != nil || got != nil {
		t.Errorf("blank query: got %v, %v; want nil, nil", got, err)
	}
}

func TestVerseIndex_NoMatchForDistantTerm(t *testing.T) {
	vi, err := NewVerseIndex(testVerses())
	if err != nil {
		t.Fatal(err)
	}
	defer vi.Close()

	got, err := vi.Search(context.Background(), "zzzzzzzz", 10, 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("expected no hits, got %d", len(got))
	}
}
