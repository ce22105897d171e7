package cli

import (
	"context"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/baobab-edu/peerreview-cli/core"
	"github.com/baobab-edu/peerreview-cli/core/review"
)

// stubGateway serves canned bodies per path substring and records
// traffic.
type stubGateway struct {
	bodies  map[string]string
	fetches []string
	posts   []string
}

func (g *stubGateway) Fetch(_ context.Context, path string) ([]byte, bool) {
	g.fetches = append(g.fetches, path)
	for key, body := range g.bodies {
		if strings.Contains(path, key) {
			return []byte(body), true
		}
	}
	return nil, false
}

func (g *stubGateway) Post(_ context.Context, path string, _ interface{}) bool {
	g.posts = append(g.posts, path)
	return true
}

func summaryJSON(lessonID int, first, second time.Time) string {
	const layout = "2006-01-02T15:04:05"
	return fmt.Sprintf(`[{"id":%d,"title":"Reti","created_at":"2024-01-01T00:00:00",
		"first_deadline":"%s","second_deadline":"%s",
		"count_questions_made":2,"count_feedback_made":0}]`,
		lessonID, first.Format(layout), second.Format(layout))
}

func TestGiveFeedbackBlockedBeforeFirstDeadline(t *testing.T) {
	now := time.Now()
	gw := &stubGateway{bodies: map[string]string{
		"Summary": summaryJSON(7, now.Add(time.Hour), now.Add(48*time.Hour)),
	}}
	base, out := testMenuBase(&scriptedPrompter{replies: []core.Result[string]{ok("7")}})
	menu := NewStudentMenu(base, review.NewStudentCache(base.session, gw), nil)

	menu.giveFeedback(context.Background())

	if len(gw.posts) != 0 {
		t.Fatalf("posts = %d, want 0", len(gw.posts))
	}
	for _, path := range gw.fetches {
		if strings.Contains(path, "Feedback") {
			t.Fatalf("feedback fetched before first deadline: %s", path)
		}
	}
	if !strings.Contains(out.String(), "Feedback is not open yet") {
		t.Fatalf("missing not-open message, got:\n%s", out.String())
	}
}

func TestGiveFeedbackBlockedWhenDeadlineMissing(t *testing.T) {
	gw := &stubGateway{bodies: map[string]string{
		"Summary": `[{"id":7,"title":"Reti","created_at":"2024-01-01T00:00:00",
			"first_deadline":null,"second_deadline":null,
			"count_questions_made":0,"count_feedback_made":0}]`,
	}}
	base, out := testMenuBase(&scriptedPrompter{replies: []core.Result[string]{ok("7")}})
	menu := NewStudentMenu(base, review.NewStudentCache(base.session, gw), nil)

	menu.giveFeedback(context.Background())

	if len(gw.posts) != 0 {
		t.Fatalf("posts = %d, want 0", len(gw.posts))
	}
	if !strings.Contains(out.String(), "Feedback is not open yet") {
		t.Fatalf("missing not-open message, got:\n%s", out.String())
	}
}

func TestGiveFeedbackRejectsUnknownLesson(t *testing.T) {
	now := time.Now()
	gw := &stubGateway{bodies: map[string]string{
		"Summary": summaryJSON(7, now.Add(-2*time.Hour), now.Add(48*time.Hour)),
	}}
	// An unknown id keeps prompting; the exhausted prompter cancels.
	base, out := testMenuBase(&scriptedPrompter{replies: []core.Result[string]{ok("99")}})
	menu := NewStudentMenu(base, review.NewStudentCache(base.session, gw), nil)

	menu.giveFeedback(context.Background())

	for _, path := range gw.fetches {
		if strings.Contains(path, "Feedback") {
			t.Fatalf("feedback fetched for unknown lesson: %s", path)
		}
	}
	if !strings.Contains(out.String(), "Lesson not found") {
		t.Fatalf("missing lesson-not-found message, got:\n%s", out.String())
	}
}

func TestGiveFeedbackAfterFirstDeadlinePosts(t *testing.T) {
	now := time.Now()
	gw := &stubGateway{bodies: map[string]string{
		"Summary":  summaryJSON(7, now.Add(-2*time.Hour), now.Add(48*time.Hour)),
		"Feedback": `{"id":55,"question":"Cos'e' il TCP?","answer_text":"Un protocollo."}`,
	}}
	base, _ := testMenuBase(&scriptedPrompter{replies: []core.Result[string]{
		ok("7"),    // lesson id
		ok("good"), // feedback text
		ok("6"),    // grade
		ok("none"), // missing elements
		ok("n"),    // GPT
		ok("y"),    // confirm
	}})
	menu := NewStudentMenu(base, review.NewStudentCache(base.session, gw), nil)

	menu.giveFeedback(context.Background())

	if len(gw.posts) != 1 {
		t.Fatalf("posts = %d, want 1", len(gw.posts))
	}
	if gw.posts[0] != review.FeedbackPostURL {
		t.Fatalf("posted to %s, want %s", gw.posts[0], review.FeedbackPostURL)
	}
}

func TestSelectQuestionReturnsEnclosingLesson(t *testing.T) {
	lessons := []review.Lesson{
		{ID: 3, LessonQuestions: []review.Question{{ID: 31, QuestionText: "a"}}},
		{ID: 4, LessonQuestions: []review.Question{{ID: 41, QuestionText: "b"}}},
	}
	base, _ := testMenuBase(&scriptedPrompter{replies: []core.Result[string]{ok("41")}})
	menu := &StudentMenu{menuBase: base}

	question, lessonID, picked := menu.selectQuestion(lessons)
	if !picked {
		t.Fatal("expected a selection")
	}
	if question.ID != 41 {
		t.Fatalf("question.ID = %d, want 41", question.ID)
	}
	if lessonID != 4 {
		t.Fatalf("lessonID = %d, want 4", lessonID)
	}
}
