package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/baobab-edu/peerreview-cli/core"
	"github.com/baobab-edu/peerreview-cli/core/review"
)

// MenuOption binds a display string to a numbered action. ID 0 is
// reserved for exit and carries no action.
type MenuOption struct {
	Description string
	ID          int
	Action      func(ctx context.Context)
}

// Menu is one role's action set.
type Menu interface {
	// Init draws the landing view shown right after login.
	Init(ctx context.Context)
	Options() []MenuOption
}

// RunMenu loops: draw options, read a selection, dispatch. Returns when
// the user picks 0.
func RunMenu(ctx context.Context, menu Menu, con *console) {
	menu.Init(ctx)
	for {
		options := menu.Options()
		displayOptions(con, options)

		selected, ok := readSelection(con, options)
		if !ok {
			continue
		}
		if selected.ID == 0 {
			return
		}
		selected.Action(ctx)
	}
}

func displayOptions(con *console, options []MenuOption) {
	con.Blank()
	con.Message(con.loc.Text(SelectOption))
	for _, option := range options {
		con.Message(fmt.Sprintf(" %d. %s", option.ID, option.Description))
	}
}

func readSelection(con *console, options []MenuOption) (MenuOption, bool) {
	for {
		r := con.prompt.Inline("> ")
		if r.IsCancelled() {
			// Esc at the top level just redraws the menu.
			return MenuOption{}, false
		}
		n, err := strconv.Atoi(strings.TrimSpace(r.Value))
		if err == nil {
			for _, option := range options {
				if option.ID == n {
					return option, true
				}
			}
		}
		con.Error(con.loc.Text(InvalidInput))
	}
}

// poster is the write half of a session cache.
type poster interface {
	Post(ctx context.Context, item interface{}, relativePath string) bool
}

// menuBase carries what both role menus share: console, session, table
// rendering and credential management.
type menuBase struct {
	con              *console
	session          review.Session
	opts             review.AssignOptions
	tables           *TableHelper
	store            *CredentialsManager
	credentialsSaved bool
}

// confirm asks a y/n question until it gets one of the localized
// answers; Esc cancels.
func (m *menuBase) confirm(label string) core.Result[bool] {
	loc := m.con.loc
	for {
		r := m.con.prompt.Inline(label)
		if r.IsCancelled() {
			return core.Cancel[bool]()
		}
		switch strings.ToLower(strings.TrimSpace(r.Value)) {
		case loc.Text(ConfirmationYes):
			return core.Ok(true)
		case loc.Text(ConfirmationNo):
			return core.Ok(false)
		}
		m.con.Error(loc.Text(InvalidInput))
	}
}

func (m *menuBase) promptInt(label string) core.Result[int] {
	for {
		r := m.con.prompt.Inline(label)
		if r.IsCancelled() {
			return core.Cancel[int]()
		}
		n, err := strconv.Atoi(strings.TrimSpace(r.Value))
		if err == nil {
			return core.Ok(n)
		}
		m.con.Error(m.con.loc.Text(InvalidInput))
	}
}

func (m *menuBase) promptGrade() core.Result[float64] {
	for {
		r := m.con.prompt.Inline(m.con.loc.Text(GradePrompt))
		if r.IsCancelled() {
			return core.Cancel[float64]()
		}
		grade, err := strconv.ParseFloat(strings.TrimSpace(r.Value), 64)
		if err == nil && grade >= 4 && grade <= 8 {
			return core.Ok(grade)
		}
		m.con.Error(m.con.loc.Text(InvalidInput))
	}
}

func (m *menuBase) promptChatGPT() core.Result[int] {
	used := m.confirm(m.con.loc.Text(GPTQuestion))
	if !used.IsDone() {
		return core.Cancel[int]()
	}
	if used.Value {
		return core.Ok(1)
	}
	return core.Ok(0)
}

// feedbackWizard walks the whole feedback composition. Nothing is
// posted until the final confirmation, so a cancel anywhere leaves no
// partial state behind.
func (m *menuBase) feedbackWizard(ctx context.Context, ps poster, lessonID, answerID int) bool {
	loc := m.con.loc

	text := m.con.prompt.Line(loc.Text(FeedbackTextPrompt))
	if text.IsCancelled() {
		m.con.Message(loc.Text(OperationCancelled))
		return false
	}

	grade := m.promptGrade()
	if !grade.IsDone() {
		m.con.Message(loc.Text(OperationCancelled))
		return false
	}

	missing := m.con.prompt.Line(loc.Text(MissingElementsPrompt))
	if missing.IsCancelled() {
		m.con.Message(loc.Text(OperationCancelled))
		return false
	}

	chatGPT := m.promptChatGPT()
	if !chatGPT.IsDone() {
		m.con.Message(loc.Text(OperationCancelled))
		return false
	}

	confirmed := m.confirm(loc.Text(ConfirmSend))
	if !confirmed.IsDone() || !confirmed.Value {
		m.con.Message(loc.Text(OperationCancelled))
		return false
	}

	feedback := review.NewFeedback{
		LessonID:        lessonID,
		ID:              answerID,
		FeedbackText:    text.Value,
		Grade:           grade.Value,
		MissingElements: missing.Value,
		Role:            m.session.Role,
		Website:         m.session.Website,
		Token:           m.session.Token,
		IsChatGPT:       chatGPT.Value,
	}
	if !ps.Post(ctx, feedback, review.FeedbackPostURL) {
		m.con.Error("Error submitting feedback.")
		return false
	}
	m.con.Success(loc.Text(Sent))
	return true
}

func (m *menuBase) deleteCredentials(context.Context) {
	loc := m.con.loc
	confirmed := m.confirm(loc.Text(DeleteCredentialsConfirmation))
	if !confirmed.IsDone() || !confirmed.Value {
		return
	}
	if err := m.store.Delete(); err != nil {
		m.con.Error(err.Error())
		return
	}
	m.credentialsSaved = false
	m.con.Message(loc.Text(DeleteCredentialsDone))
}
