package cli

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/baobab-edu/peerreview-cli/core"
	"github.com/baobab-edu/peerreview-cli/core/review"
	"github.com/baobab-edu/peerreview-cli/services/peerapi"
)

// StudentMenu is the student's action set over a student session cache.
type StudentMenu struct {
	menuBase
	cache *review.StudentCache
	api   *peerapi.Client
}

func NewStudentMenu(base menuBase, cache *review.StudentCache, api *peerapi.Client) *StudentMenu {
	cache.Trace = base.con.CacheTrace
	return &StudentMenu{menuBase: base, cache: cache, api: api}
}

func (m *StudentMenu) Options() []MenuOption {
	loc := m.con.loc
	options := []MenuOption{
		{loc.Text(ShowLessons), 1, m.showLessons},
		{loc.Text(SubmitAssignment), 2, m.submitAssignment},
		{loc.Text(GiveFeedback), 3, m.giveFeedback},
		{loc.Text(ViewGrades), 4, m.viewGrades},
		{loc.Text(Dashboard), 5, m.viewDashboard},
		{loc.Text(HowToGrade), 10, m.howToGrade},
	}
	if m.credentialsSaved {
		options = append(options, MenuOption{loc.Text(DeleteCredentials), 11, m.deleteCredentials})
	}
	return append(options, MenuOption{loc.Text(Exit), 0, nil})
}

func (m *StudentMenu) Init(ctx context.Context) {
	m.con.titles.Arm()
	m.showLessons(ctx)
	m.printTodoList(ctx)
}

func (m *StudentMenu) showLessons(ctx context.Context) {
	m.con.Title(m.con.loc.Text(ShowLessons))

	res := m.cache.LessonSummary(ctx)
	if !res.IsDone() {
		m.con.Error(res.Message())
		return
	}
	m.con.Blank()
	m.tables.PrintStudentLessons(res.Value)
}

// printTodoList lists what is still owed per lesson: answers before the
// first deadline, feedbacks between deadlines.
func (m *StudentMenu) printTodoList(ctx context.Context) {
	loc := m.con.loc

	res := m.cache.LessonSummary(ctx)
	if !res.IsDone() {
		m.con.Error(res.Message())
		return
	}

	m.con.Blank()
	hintColor.Fprintf(m.con.out, " --------%s--------\n", loc.Text(TodoList))
	todo := false
	for _, lesson := range res.Value {
		switch review.DeadlineInterval(time.Now(), lesson.FirstDeadline, lesson.SecondDeadline) {
		case review.BeforeFirstDeadline:
			if lesson.CountQuestionsMade < m.opts.QuestionsToAnswer {
				m.con.Message(fmt.Sprintf(" - %s %d - %d/%d", loc.Text(SubmitAssignment), lesson.ID,
					lesson.CountQuestionsMade, m.opts.QuestionsToAnswer))
				todo = true
			}
		case review.BetweenDeadlines:
			if lesson.CountFeedbackMade < m.opts.FeedbacksToGive {
				m.con.Message(fmt.Sprintf(" - %s %d - %d/%d", loc.Text(GiveFeedback), lesson.ID,
					lesson.CountFeedbackMade, m.opts.FeedbacksToGive))
				todo = true
			}
		}
	}
	if !todo {
		m.con.Message(" " + loc.Text(NothingTodo))
	}
	hintColor.Fprintln(m.con.out, " ------------------------")
	m.con.Blank()
}

func (m *StudentMenu) submitAssignment(ctx context.Context) {
	loc := m.con.loc
	m.con.Title(loc.Text(SubmitAssignment))

	res := m.cache.ToDoQuestions(ctx)
	if !res.IsDone() {
		m.con.Error(res.Message())
		return
	}
	if len(res.Value) == 0 {
		m.con.Message(loc.Text(NothingTodo))
		return
	}

	m.con.Blank()
	m.tables.PrintQuestions(res.Value)

	question, lessonID, ok := m.selectQuestion(res.Value)
	if !ok {
		return
	}
	m.con.Blank()
	m.con.Message(question.QuestionText)

	answer := m.promptAnswer()
	if !answer.IsDone() {
		m.con.Message(loc.Text(OperationCancelled))
		return
	}

	isPDF := strings.HasSuffix(strings.ToLower(strings.TrimSpace(answer.Value)), ".pdf")
	if isPDF {
		if _, err := os.Stat(answer.Value); err != nil {
			m.con.Error("File not found: " + answer.Value)
			return
		}
	}

	chatGPT := m.promptChatGPT()
	if !chatGPT.IsDone() {
		m.con.Message(loc.Text(OperationCancelled))
		return
	}
	confirmed := m.confirm(loc.Text(ConfirmSend))
	if !confirmed.IsDone() || !confirmed.Value {
		m.con.Message(loc.Text(OperationCancelled))
		return
	}

	var sent bool
	if isPDF {
		sent = m.api.UploadPDF(ctx, review.UploadPDFURL, review.PDFUpload{
			Website:      m.session.Website,
			LessonID:     lessonID,
			QuestionID:   question.ID,
			QuestionText: answer.Value,
			IsChatGPT:    chatGPT.Value,
			Token:        m.session.Token,
			Role:         m.session.Role,
			FilePath:     answer.Value,
		}, answer.Value)
	} else {
		sent = m.cache.Post(ctx, review.NewAnswer{
			QuestionID:    question.ID,
			QuestionText:  answer.Value,
			Role:          m.session.Role,
			CourseClassID: m.session.CourseID,
			Website:       m.session.Website,
			Token:         m.session.Token,
			IsChatGPT:     chatGPT.Value,
		}, review.AnswerURL)
	}
	if !sent {
		m.con.Error("Error submitting answer.")
		return
	}
	m.con.Success(loc.Text(Sent))
	m.cache.ResetCache()
}

// selectQuestion reads a question id until it names one of the pending
// questions, returning it with its enclosing lesson's id. An empty
// line or Esc backs out.
func (m *StudentMenu) selectQuestion(lessons []review.Lesson) (review.Question, int, bool) {
	for {
		r := m.con.prompt.Inline("Question id: ")
		if r.IsCancelled() || strings.TrimSpace(r.Value) == "" {
			return review.Question{}, 0, false
		}
		id, err := strconv.Atoi(strings.TrimSpace(r.Value))
		if err != nil {
			m.con.Error(m.con.loc.Text(InvalidInput))
			continue
		}
		for _, lesson := range lessons {
			for _, question := range lesson.LessonQuestions {
				if question.ID == id {
					return question, lesson.ID, true
				}
			}
		}
		m.con.Error(m.con.loc.Text(InvalidInput))
	}
}

// promptAnswer insists on a non-empty reply; a path ending in .pdf is
// taken as a file answer.
func (m *StudentMenu) promptAnswer() core.Result[string] {
	for {
		r := m.con.prompt.Line("Answer: ")
		if r.IsCancelled() {
			return r
		}
		if strings.TrimSpace(r.Value) != "" {
			return r
		}
		m.con.Error(m.con.loc.Text(InvalidInput))
	}
}

func (m *StudentMenu) giveFeedback(ctx context.Context) {
	loc := m.con.loc
	m.con.Title(loc.Text(GiveFeedback))

	summary := m.cache.LessonSummary(ctx)
	if !summary.IsDone() {
		m.con.Error(summary.Message())
		return
	}

	lesson, ok := m.selectLesson(summary.Value)
	if !ok {
		m.con.Message(loc.Text(OperationCancelled))
		return
	}
	// Feedback opens once the first deadline has passed.
	if lesson.FirstDeadline == nil || time.Now().Before(lesson.FirstDeadline.Time) {
		m.con.Blank()
		m.con.Error(fmt.Sprintf(loc.Text(FeedbackNotOpen), formatDate(lesson.FirstDeadline)))
		m.con.Blank()
		return
	}

	res := m.cache.FeedbackToGive(ctx, lesson.ID)
	if !res.IsDone() {
		m.con.Error(res.Message())
		return
	}
	assigned := res.Value
	m.con.Blank()
	m.con.Message("Question: " + assigned.Question)
	m.con.Message("Answer: " + assigned.AnswerText)
	m.con.Blank()

	if m.feedbackWizard(ctx, m.cache, lesson.ID, assigned.ID) {
		m.cache.ResetCache()
	}
}

// selectLesson reads a lesson id until it names one of the cached
// lessons. Esc backs out.
func (m *StudentMenu) selectLesson(lessons []review.LessonSummary) (review.LessonSummary, bool) {
	for {
		r := m.con.prompt.Inline("Lesson id: ")
		if r.IsCancelled() {
			return review.LessonSummary{}, false
		}
		id, err := strconv.Atoi(strings.TrimSpace(r.Value))
		if err != nil {
			m.con.Error(m.con.loc.Text(InvalidInput))
			continue
		}
		for _, lesson := range lessons {
			if lesson.ID == id {
				return lesson, true
			}
		}
		m.con.Error(m.con.loc.Text(LessonNotFound))
	}
}

func (m *StudentMenu) viewGrades(ctx context.Context) {
	loc := m.con.loc
	m.con.Title(loc.Text(ViewGrades))

	lessonID := m.promptInt("Lesson id: ")
	if !lessonID.IsDone() {
		m.con.Message(loc.Text(OperationCancelled))
		return
	}

	res := m.cache.LessonGrades(ctx, lessonID.Value)
	if !res.IsDone() {
		m.con.Error(res.Message())
		return
	}
	if len(res.Value) == 0 {
		m.con.Message("No grades found.")
		return
	}
	m.tables.PrintGrades(res.Value)
}

func (m *StudentMenu) viewDashboard(ctx context.Context) {
	loc := m.con.loc
	m.con.Title(loc.Text(Dashboard))
	m.con.Blank()

	roles, ok := m.selectRolesToShow()
	if !ok {
		m.con.Message(loc.Text(OperationCancelled))
		return
	}

	res := m.cache.Dashboard(ctx)
	if !res.IsDone() {
		m.con.Error(res.Message())
		return
	}
	m.tables.PrintDashboard(res.Value, roles)
}

// selectRolesToShow asks which graders' feedback to include. Empty
// input means all of them.
func (m *StudentMenu) selectRolesToShow() ([]review.Role, bool) {
	all := []review.Role{review.RoleStudent, review.RoleTeacher, review.RoleAdmin}
	for {
		r := m.con.prompt.Inline("Roles (1 student, 2 teacher, 3 GPT; comma separated, empty for all): ")
		if r.IsCancelled() {
			return nil, false
		}
		trimmed := strings.TrimSpace(r.Value)
		if trimmed == "" {
			return all, true
		}
		var roles []review.Role
		valid := true
		for _, part := range strings.Split(trimmed, ",") {
			n, err := strconv.Atoi(strings.TrimSpace(part))
			if err != nil || !review.Role(n).Valid() {
				valid = false
				break
			}
			roles = append(roles, review.Role(n))
		}
		if valid && len(roles) > 0 {
			return roles, true
		}
		m.con.Error(m.con.loc.Text(InvalidInput))
	}
}

// howToGrade prints the grading rubric shown to reviewers.
func (m *StudentMenu) howToGrade(context.Context) {
	m.con.Title(m.con.loc.Text(HowToGrade))

	criteria := [][2]string{
		{"Chiarezza della Risposta", "La risposta e' chiara, comprensibile e ben strutturata?"},
		{"Completezza della Risposta", "La risposta affronta completamente tutte le parti della domanda?"},
		{"Correttezza", "La risposta e' corretta dal punto di vista concettuale e contenutistico?"},
		{"Originalita'", "La risposta dimostra pensiero critico o offre soluzioni creative?"},
		{"Uso del Linguaggio", "La grammatica e il vocabolario utilizzati sono appropriati e corretti?"},
		{"Rispettare le Linee Guida", "La risposta segue le istruzioni e i requisiti indicati dal compito?"},
	}
	table := m.tables.newTable("Criterio", "Descrizione", "Punteggio")
	for _, c := range criteria {
		table.Append([]string{c[0], c[1], "4-8"})
	}
	table.Render()

	m.con.Blank()
	scale := []string{
		"4: Non soddisfa affatto i requisiti.",
		"5: Soddisfa parzialmente i requisiti, ma sono presenti errori significativi.",
		"6: Soddisfa i requisiti in maniera sufficiente, con alcune aree di miglioramento.",
		"7: Soddisfa bene i requisiti, con pochi errori o aree di miglioramento.",
		"8: Eccelle in tutti gli aspetti, senza errori significativi.",
	}
	for _, line := range scale {
		m.con.Message(line)
	}
	m.con.Blank()
}
