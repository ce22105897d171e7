package cli

import (
	"context"
	"strconv"
	"strings"
	"time"

	"github.com/baobab-edu/peerreview-cli/core"
	"github.com/baobab-edu/peerreview-cli/core/review"
)

// TeacherMenu is the teacher's action set over a teacher session cache.
type TeacherMenu struct {
	menuBase
	cache *review.TeacherCache
}

func NewTeacherMenu(base menuBase, cache *review.TeacherCache) *TeacherMenu {
	cache.Trace = base.con.CacheTrace
	return &TeacherMenu{menuBase: base, cache: cache}
}

func (m *TeacherMenu) Options() []MenuOption {
	loc := m.con.loc
	options := []MenuOption{
		{loc.Text(ShowLessons), 1, m.showLessons},
		{loc.Text(AddLesson), 2, m.addLesson},
		{loc.Text(AddQuestionsToLesson), 3, m.addQuestions},
		{loc.Text(MarkQuestion), 4, m.markQuestion},
		{loc.Text(QuestionsToReview), 5, m.questionsToReview},
	}
	if m.credentialsSaved {
		options = append(options, MenuOption{loc.Text(DeleteCredentials), 11, m.deleteCredentials})
	}
	return append(options, MenuOption{loc.Text(Exit), 0, nil})
}

func (m *TeacherMenu) Init(ctx context.Context) {
	m.con.titles.Arm()
	m.showLessons(ctx)
}

func (m *TeacherMenu) showLessons(ctx context.Context) {
	m.con.Title(m.con.loc.Text(ShowLessons))

	res := m.cache.LessonSummary(ctx)
	if !res.IsDone() {
		m.con.Error(res.Message())
		return
	}
	m.con.Blank()
	m.tables.PrintTeacherLessons(res.Value)
}

func (m *TeacherMenu) addLesson(ctx context.Context) {
	loc := m.con.loc
	m.con.Title(loc.Text(AddLesson))

	title := m.con.prompt.Line("Title: ")
	if title.IsCancelled() {
		m.con.Message(loc.Text(OperationCancelled))
		return
	}

	firstHours := m.promptHours("First deadline in h (48 default): ", 48)
	if !firstHours.IsDone() {
		m.con.Message(loc.Text(OperationCancelled))
		return
	}
	secondHours := m.promptHours("Second deadline in h (120 default): ", 120)
	if !secondHours.IsDone() {
		m.con.Message(loc.Text(OperationCancelled))
		return
	}

	now := time.Now()
	lesson := review.NewLesson{
		Title:          title.Value,
		CreatedAt:      now,
		FirstDeadline:  now.Add(time.Duration(firstHours.Value * float64(time.Hour))),
		SecondDeadline: now.Add(time.Duration(secondHours.Value * float64(time.Hour))),
		ContentHTML:    "",
		CourseClassID:  m.session.CourseID,
		Website:        m.session.Website,
		Token:          m.session.Token,
		Role:           review.RoleTeacher,
	}
	if !m.cache.Post(ctx, lesson, review.LessonsURL) {
		m.con.Error("Error adding lesson.")
		return
	}
	m.con.Success(loc.Text(Sent))
	m.cache.ResetCache()
}

func (m *TeacherMenu) promptHours(label string, fallback float64) core.Result[float64] {
	for {
		r := m.con.prompt.Inline(label)
		if r.IsCancelled() {
			return core.Cancel[float64]()
		}
		trimmed := strings.TrimSpace(r.Value)
		if trimmed == "" {
			return core.Ok(fallback)
		}
		hours, err := strconv.ParseFloat(trimmed, 64)
		if err == nil && hours > 0 {
			return core.Ok(hours)
		}
		m.con.Error(m.con.loc.Text(InvalidInput))
	}
}

// selectLesson reads a lesson id and checks it against the course's
// lesson list.
func (m *TeacherMenu) selectLesson(ctx context.Context) core.Result[int] {
	for {
		lessonID := m.promptInt("Lesson id: ")
		if !lessonID.IsDone() {
			return lessonID
		}
		class := m.cache.ClassData(ctx)
		if !class.IsDone() {
			m.con.Error(class.Message())
			return core.Cancel[int]()
		}
		for _, lesson := range class.Value.Lessons {
			if lesson.ID == lessonID.Value {
				return lessonID
			}
		}
		m.con.Error("Lesson not found. Please try again.")
	}
}

func (m *TeacherMenu) addQuestions(ctx context.Context) {
	loc := m.con.loc
	m.con.Title(loc.Text(AddQuestionsToLesson))

	lessonID := m.selectLesson(ctx)
	if !lessonID.IsDone() {
		m.con.Message(loc.Text(OperationCancelled))
		return
	}

	students := m.cache.Students(ctx)
	if !students.IsDone() {
		m.con.Error(students.Message())
		return
	}
	present, ok := m.markAbsences(students.Value)
	if !ok {
		m.con.Message(loc.Text(OperationCancelled))
		return
	}

	m.con.Message("Add the questions. Empty line to stop.")
	var questions []review.NewQuestion
	for {
		r := m.con.prompt.Inline("Question " + strconv.Itoa(len(questions)+1) + ": ")
		if r.IsCancelled() {
			m.con.Message(loc.Text(OperationCancelled))
			return
		}
		text := strings.TrimSpace(r.Value)
		if text == "" {
			if len(questions) > 0 {
				break
			}
			m.con.Error(loc.Text(InvalidInput))
			continue
		}
		questions = append(questions, review.NewQuestion{QuestionText: text})
	}

	payload := review.NewQuestions{
		Questions:     questions,
		CreatedAt:     time.Now(),
		CourseClassID: m.session.CourseID,
		LessonID:      lessonID.Value,
		Role:          review.RoleTeacher,
		Website:       m.session.Website,
		Token:         m.session.Token,
		Students:      present,
	}
	if !m.cache.Post(ctx, payload, review.QuestionURL) {
		m.con.Error("Error adding questions.")
		return
	}
	m.con.Success(loc.Text(Sent))
	m.cache.ResetCache()
}

// markAbsences shows the roster and toggles students absent by register
// number until an empty line. Returns the ids of those still present.
func (m *TeacherMenu) markAbsences(students []review.User) ([]int, bool) {
	loc := m.con.loc

	roster := make([]RosterEntry, len(students))
	for i, s := range students {
		roster[i] = RosterEntry{
			ID:             s.ID,
			Name:           s.SchoolName,
			RegisterNumber: i + 1,
			IsPresent:      true,
		}
	}

	m.con.Message(loc.Text(InsertStudentAbsence))
	m.tables.PrintRegister(roster)

	for {
		r := m.con.prompt.Inline("Student ID: ")
		if r.IsCancelled() {
			return nil, false
		}
		trimmed := strings.TrimSpace(r.Value)
		if trimmed == "" {
			break
		}
		valid := true
		for _, part := range strings.Fields(trimmed) {
			n, err := strconv.Atoi(part)
			if err != nil || n < 1 || n > len(roster) {
				valid = false
				break
			}
			roster[n-1].IsPresent = !roster[n-1].IsPresent
		}
		if !valid {
			m.con.Error(loc.Text(InvalidInput))
			continue
		}
		m.tables.PrintRegister(roster)
	}

	var present []int
	for _, entry := range roster {
		if entry.IsPresent {
			present = append(present, entry.ID)
		}
	}
	return present, true
}

func (m *TeacherMenu) markQuestion(ctx context.Context) {
	loc := m.con.loc
	m.con.Title(loc.Text(MarkQuestion))

	lessonID := m.selectLesson(ctx)
	if !lessonID.IsDone() {
		m.con.Message(loc.Text(OperationCancelled))
		return
	}

	res := m.cache.QuestionsToMark(ctx, lessonID.Value)
	if !res.IsDone() {
		m.con.Error(res.Message())
		return
	}
	if len(res.Value) == 0 {
		m.con.Message(loc.Text(NothingTodo))
		return
	}
	m.tables.PrintQuestionsToMark(res.Value)

	var selected *review.QuestionToMark
	for selected == nil {
		answerID := m.promptInt("Answer id: ")
		if !answerID.IsDone() {
			m.con.Message(loc.Text(OperationCancelled))
			return
		}
		for i := range res.Value {
			if res.Value[i].AnswerID == answerID.Value {
				selected = &res.Value[i]
				break
			}
		}
		if selected == nil {
			m.con.Error("Answer not found. Please try again.")
		}
	}

	m.con.Blank()
	m.con.Message("Question: " + selected.QuestionText)
	m.con.Message("Answer: " + selected.AnswerText)
	m.con.Blank()

	if m.feedbackWizard(ctx, m.cache, lessonID.Value, selected.AnswerID) {
		m.cache.ResetCache()
	}
}

func (m *TeacherMenu) questionsToReview(ctx context.Context) {
	loc := m.con.loc
	m.con.Title(loc.Text(QuestionsToReview))

	res := m.cache.CorrectAnswersToReview(ctx)
	if !res.IsDone() {
		m.con.Error(res.Message())
		return
	}
	if len(res.Value) == 0 {
		m.con.Message(loc.Text(NothingTodo))
		return
	}
	m.con.Blank()
	m.tables.PrintQuestionsToReview(res.Value)

	var selected *review.Question
	for selected == nil {
		questionID := m.promptInt("Question id: ")
		if !questionID.IsDone() {
			m.con.Message(loc.Text(OperationCancelled))
			return
		}
		for i := range res.Value {
			if res.Value[i].ID == questionID.Value {
				selected = &res.Value[i]
				break
			}
		}
		if selected == nil {
			m.con.Error("Question not found. Please try again.")
		}
	}

	m.con.Blank()
	m.con.Message(selected.Answer)
	m.con.Blank()

	keep := m.confirm("Mark as correct? (y/n): ")
	if !keep.IsDone() {
		m.con.Message(loc.Text(OperationCancelled))
		return
	}

	item := review.CorrectAnswerReview{
		Token:         m.session.Token,
		Answer:        "",
		CourseClassID: m.session.CourseID,
		LessonID:      selected.ID,
		Role:          review.RoleTeacher,
		Website:       m.session.Website,
		IsAnswerEdit:  true,
	}
	if !keep.Value {
		replacement := m.con.prompt.Line("New answer: ")
		if replacement.IsCancelled() {
			m.con.Message(loc.Text(OperationCancelled))
			return
		}
		item.Answer = replacement.Value
	}

	if !m.cache.Post(ctx, item, review.CorrectAnswerReviewURL) {
		m.con.Error("Error marking answer.")
		return
	}
	m.con.Success(loc.Text(Sent))
	m.cache.RemoveCorrectAnswer(selected.ID)
}
