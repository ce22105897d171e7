package cli

import (
	"bytes"
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/baobab-edu/peerreview-cli/core/review"
)

func TestPrintQuestionsToMarkTruncatesOnRuneBoundary(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewTableHelper(out, review.DefaultAssignOptions(), NewLocalization("en"), nil)

	long := strings.Repeat("è", 60)
	h.PrintQuestionsToMark([]review.QuestionToMark{
		{AnswerID: 1, QuestionText: "q", AnswerText: long},
	})

	got := out.String()
	if !utf8.ValidString(got) {
		t.Fatal("output is not valid UTF-8")
	}
	if strings.ContainsRune(got, utf8.RuneError) {
		t.Fatal("output contains a replacement character")
	}
	if !strings.Contains(got, strings.Repeat("è", 49)+" ...") {
		t.Fatalf("expected a 49-rune truncation, got:\n%s", got)
	}
	if strings.Contains(got, strings.Repeat("è", 50)) {
		t.Fatal("answer longer than the truncation limit")
	}
}

func TestPrintQuestionsToMarkKeepsShortAnswers(t *testing.T) {
	out := &bytes.Buffer{}
	h := NewTableHelper(out, review.DefaultAssignOptions(), NewLocalization("en"), nil)

	h.PrintQuestionsToMark([]review.QuestionToMark{
		{AnswerID: 1, QuestionText: "q", AnswerText: "breve"},
	})

	if !strings.Contains(out.String(), "breve") {
		t.Fatalf("short answer missing, got:\n%s", out.String())
	}
	if strings.Contains(out.String(), "...") {
		t.Fatal("short answer was truncated")
	}
}
