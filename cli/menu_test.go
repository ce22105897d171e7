package cli

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/baobab-edu/peerreview-cli/core"
	"github.com/baobab-edu/peerreview-cli/core/review"
)

// scriptedPrompter replays a fixed sequence of replies.
type scriptedPrompter struct {
	replies []core.Result[string]
	i       int
}

func (p *scriptedPrompter) next() core.Result[string] {
	if p.i >= len(p.replies) {
		return core.Cancel[string]()
	}
	r := p.replies[p.i]
	p.i++
	return r
}

func (p *scriptedPrompter) Line(string) core.Result[string]   { return p.next() }
func (p *scriptedPrompter) Inline(string) core.Result[string] { return p.next() }
func (p *scriptedPrompter) Password(string) (string, error)   { return "pwd", nil }

// countingPoster records Post calls and always succeeds.
type countingPoster struct {
	calls int
}

func (c *countingPoster) Post(context.Context, interface{}, string) bool {
	c.calls++
	return true
}

func testMenuBase(prompt Prompter) (menuBase, *bytes.Buffer) {
	out := &bytes.Buffer{}
	loc := NewLocalization("en")
	con := &console{out: out, prompt: prompt, loc: loc, titles: newTitleGate(nil)}
	return menuBase{
		con: con,
		session: review.Session{
			CourseID: 42,
			Token:    uuid.MustParse("123e4567-e89b-12d3-a456-426614174000"),
			Role:     review.RoleStudent,
			Website:  8,
		},
		opts:   review.DefaultAssignOptions(),
		tables: NewTableHelper(out, review.DefaultAssignOptions(), loc, nil),
	}, out
}

func ok(s string) core.Result[string] { return core.Ok(s) }

func TestFeedbackWizardCancelMidwayPostsNothing(t *testing.T) {
	// cancel at the second step (the grade)
	prompt := &scriptedPrompter{replies: []core.Result[string]{
		ok("nice answer"),
		core.Cancel[string](),
	}}
	base, _ := testMenuBase(prompt)
	ps := &countingPoster{}

	if sent := base.feedbackWizard(context.Background(), ps, 1, 9); sent {
		t.Fatal("feedbackWizard() = true after cancel")
	}
	if ps.calls != 0 {
		t.Fatalf("Post called %d times, want 0", ps.calls)
	}
}

func TestFeedbackWizardDeclinedConfirmationPostsNothing(t *testing.T) {
	prompt := &scriptedPrompter{replies: []core.Result[string]{
		ok("nice answer"), // feedback text
		ok("6"),           // grade
		ok("sources"),     // missing elements
		ok("n"),           // GPT
		ok("n"),           // confirm: no
	}}
	base, _ := testMenuBase(prompt)
	ps := &countingPoster{}

	if sent := base.feedbackWizard(context.Background(), ps, 1, 9); sent {
		t.Fatal("feedbackWizard() = true after declined confirmation")
	}
	if ps.calls != 0 {
		t.Fatalf("Post called %d times, want 0", ps.calls)
	}
}

func TestFeedbackWizardHappyPathPostsOnce(t *testing.T) {
	prompt := &scriptedPrompter{replies: []core.Result[string]{
		ok("nice answer"),
		ok("7"),
		ok(""),
		ok("y"),
		ok("y"),
	}}
	base, _ := testMenuBase(prompt)
	ps := &countingPoster{}

	if sent := base.feedbackWizard(context.Background(), ps, 1, 9); !sent {
		t.Fatal("feedbackWizard() = false on happy path")
	}
	if ps.calls != 1 {
		t.Fatalf("Post called %d times, want 1", ps.calls)
	}
}

func TestPromptGradeRange(t *testing.T) {
	prompt := &scriptedPrompter{replies: []core.Result[string]{
		ok("3"),   // below range
		ok("9"),   // above range
		ok("abc"), // not a number
		ok("5.5"), // accepted
	}}
	base, _ := testMenuBase(prompt)

	grade := base.promptGrade()
	if !grade.IsDone() || grade.Value != 5.5 {
		t.Fatalf("promptGrade() = %+v", grade)
	}
}

func TestReadSelectionRetriesUntilValid(t *testing.T) {
	prompt := &scriptedPrompter{replies: []core.Result[string]{
		ok("99"), // unknown option
		ok("x"),  // not a number
		ok("2"),
	}}
	base, _ := testMenuBase(prompt)

	options := []MenuOption{
		{Description: "one", ID: 1},
		{Description: "two", ID: 2},
		{Description: "exit", ID: 0},
	}
	selected, chosen := readSelection(base.con, options)
	if !chosen || selected.ID != 2 {
		t.Fatalf("readSelection() = %+v, %v", selected, chosen)
	}
}

func TestTitleGateThrottles(t *testing.T) {
	now := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	gate := newTitleGate(func() time.Time { return now })

	gate.Arm()
	if gate.Ready() {
		t.Fatal("Ready() right after Arm()")
	}
	now = now.Add(100 * time.Millisecond)
	if gate.Ready() {
		t.Fatal("Ready() at 100ms")
	}
	now = now.Add(100 * time.Millisecond)
	if !gate.Ready() {
		t.Fatal("not Ready() at 200ms")
	}
}
