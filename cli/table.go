package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/baobab-edu/peerreview-cli/core"
	"github.com/baobab-edu/peerreview-cli/core/review"
)

const dateFormat = "02/01/2006 15:04"

// TableHelper renders the client's tabular views.
type TableHelper struct {
	out  io.Writer
	opts review.AssignOptions
	loc  *Localization
	now  func() time.Time
}

func NewTableHelper(out io.Writer, opts review.AssignOptions, loc *Localization, now func() time.Time) *TableHelper {
	if now == nil {
		now = time.Now
	}
	return &TableHelper{out: out, opts: opts, loc: loc, now: now}
}

func (h *TableHelper) newTable(headers ...string) *tablewriter.Table {
	table := tablewriter.NewWriter(h.out)
	table.SetHeader(headers)
	table.SetBorder(false)
	table.SetAutoWrapText(false)
	return table
}

func formatDate(t *review.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(dateFormat)
}

// progressCell colors "count/max" by the state of its time window:
// gray before it opens, yellow/green while open, red/green once shut.
func progressCell(now time.Time, start, end *review.Time, count, max int) string {
	cell := fmt.Sprintf("%d/%d", count, max)
	switch {
	case start != nil && start.After(now):
		return color.HiBlackString(cell)
	case end != nil && end.Before(now):
		if count >= max {
			return color.HiGreenString(cell)
		}
		return color.RedString(cell)
	case start != nil && !start.After(now):
		if count >= max {
			return color.GreenString(cell)
		}
		return color.YellowString(cell)
	}
	return cell
}

func (h *TableHelper) activeLabels(first, second *review.Time) (string, string) {
	switch review.DeadlineInterval(h.now(), first, second) {
	case review.BeforeFirstDeadline:
		return h.loc.Text(ActiveLessonLabel), ""
	case review.BetweenDeadlines:
		return "", h.loc.Text(ActiveFeedbackLabel)
	}
	return "", ""
}

func (h *TableHelper) PrintStudentLessons(lessons []review.LessonSummary) {
	table := h.newTable("ID", "Title", "Created At", "First Deadline", "Questions made", "Second Deadline", "Feedback made")
	now := h.now()
	for _, lesson := range lessons {
		firstLabel, secondLabel := h.activeLabels(lesson.FirstDeadline, lesson.SecondDeadline)
		created := lesson.CreatedAt
		table.Append([]string{
			strconv.Itoa(lesson.ID),
			lesson.Title,
			created.Format(dateFormat),
			formatDate(lesson.FirstDeadline) + firstLabel,
			progressCell(now, &created, lesson.FirstDeadline, lesson.CountQuestionsMade, h.opts.QuestionsToAnswer),
			formatDate(lesson.SecondDeadline) + secondLabel,
			progressCell(now, lesson.FirstDeadline, lesson.SecondDeadline, lesson.CountFeedbackMade, h.opts.FeedbacksToGive),
		})
	}
	table.Render()
}

func (h *TableHelper) PrintTeacherLessons(lessons []review.TeacherLessonSummary) {
	table := h.newTable("ID", "Title", "N questions", "Date", "First Deadline", "Second Deadline", "Questions", "Feedback")
	for _, lesson := range lessons {
		firstLabel, secondLabel := h.activeLabels(lesson.FirstDeadline, lesson.SecondDeadline)
		nStudents := 0
		if h.opts.QuestionsToAnswer > 0 {
			nStudents = lesson.CountQuestionsMade / h.opts.QuestionsToAnswer
		}
		nFeedbacks := nStudents * h.opts.FeedbacksToGive
		table.Append([]string{
			strconv.Itoa(lesson.ID),
			lesson.Title,
			strconv.Itoa(lesson.CountQuestions),
			formatDate(lesson.CreatedAt),
			formatDate(lesson.FirstDeadline) + firstLabel,
			formatDate(lesson.SecondDeadline) + secondLabel,
			fmt.Sprintf("%d/%d", lesson.TotalAnsweredQuestions, lesson.CountQuestionsMade),
			fmt.Sprintf("%d/%d", lesson.CountFeedbackMade, nFeedbacks),
		})
	}
	table.Render()
}

func (h *TableHelper) PrintQuestions(lessons []review.Lesson) {
	table := h.newTable("ID", "Question", "Title", "Created At", "Deadline")
	for _, lesson := range lessons {
		for _, question := range lesson.LessonQuestions {
			table.Append([]string{
				strconv.Itoa(question.ID),
				question.QuestionText,
				core.RemoveDiacritics(lesson.Title),
				lesson.CreatedAt.Format(dateFormat),
				formatDate(lesson.FirstDeadline),
			})
		}
	}
	table.Render()
	fmt.Fprintln(h.out)
}

func (h *TableHelper) PrintGrades(answers []review.Answer) {
	for _, answer := range answers {
		fmt.Fprintf(h.out, "%d) %s\n", answer.ID, answer.QuestionText)
		fmt.Fprintln(h.out, answer.AnswerText)

		table := h.newTable("#", "Feedback", "Missing elements", "Grade", "Role")
		var sum float64
		for i, fb := range answer.Feedbacks {
			table.Append([]string{
				strconv.Itoa(i),
				strings.ReplaceAll(fb.FeedbackText, "\n", " "),
				strings.ReplaceAll(fb.MissingElements, "\n", " "),
				strconv.FormatFloat(fb.Grade, 'f', -1, 64),
				roleCell(fb.FeedbackRole),
			})
			sum += fb.Grade
		}
		if n := len(answer.Feedbacks); n > 0 {
			avg := sum / float64(n)
			table.Append([]string{"AVG", "-", "-", strconv.FormatFloat(avg, 'f', 2, 64), "-"})
		}
		table.Render()
		fmt.Fprintln(h.out)
	}
}

func roleCell(role review.Role) string {
	switch role {
	case review.RoleStudent:
		return color.WhiteString("student")
	case review.RoleTeacher:
		return color.GreenString("teacher")
	case review.RoleAdmin:
		return color.YellowString("GPT")
	}
	return color.RedString("unknown")
}

// RosterEntry is one row of the attendance register.
type RosterEntry struct {
	ID             int
	Name           string
	RegisterNumber int
	IsPresent      bool
}

func (h *TableHelper) PrintRegister(students []RosterEntry) {
	table := h.newTable("ID", h.loc.Text(Name), h.loc.Text(IsPresent))
	present := color.GreenString(h.loc.Text(Present))
	absent := color.RedString(h.loc.Text(Absent))
	for _, s := range students {
		cell := present
		if !s.IsPresent {
			cell = absent
		}
		table.Append([]string{strconv.Itoa(s.RegisterNumber), s.Name, cell})
	}
	table.Render()
}

func (h *TableHelper) PrintQuestionsToMark(questions []review.QuestionToMark) {
	table := h.newTable("ID", "Answer", "Average grade", "Total grades", "Feedback GPT")
	for _, q := range questions {
		answer := "-"
		if q.AnswerText != "" {
			answer = q.AnswerText
			if runes := []rune(answer); len(runes) > 50 {
				answer = string(runes[:49]) + " ..."
			}
		}
		avg, total, gpt := "-", "-", "-"
		if q.AverageGrade != nil {
			avg = strconv.FormatFloat(*q.AverageGrade, 'f', 2, 64)
		}
		if q.TotalGrades != nil {
			total = strconv.Itoa(*q.TotalGrades)
		}
		if q.FeedbackGPT != nil {
			gpt = *q.FeedbackGPT
		}
		table.Append([]string{strconv.Itoa(q.AnswerID), answer, avg, total, gpt})
	}
	table.Render()
	fmt.Fprintln(h.out)
}

func (h *TableHelper) PrintQuestionsToReview(questions []review.Question) {
	table := h.newTable("ID", "Question", "Answer")
	for _, q := range questions {
		table.Append([]string{strconv.Itoa(q.ID), q.QuestionText, q.Answer})
	}
	table.Render()
	fmt.Fprintln(h.out)
}

// PrintDashboard draws one bar per lesson with the average grade (on a
// 0-100 scale) from the selected feedback roles.
func (h *TableHelper) PrintDashboard(lessons []review.Lesson, roles []review.Role) {
	type row struct {
		title string
		avg   int
	}
	var rows []row
	for _, lesson := range lessons {
		var sum, n int
		for _, question := range lesson.LessonQuestions {
			for _, answer := range question.Answers {
				for _, fb := range answer.Feedbacks {
					if !roleSelected(roles, fb.FeedbackRole) {
						continue
					}
					sum += int(fb.Grade) * 10
					n++
				}
			}
		}
		if n > 0 {
			rows = append(rows, row{title: lesson.Title, avg: sum / n})
		}
	}

	if len(rows) == 0 {
		fmt.Fprintln(h.out, "Nessun voto presente")
		return
	}

	width := 0
	for _, r := range rows {
		if len(r.title) > width {
			width = len(r.title)
		}
	}
	for _, r := range rows {
		bar := strings.Repeat("█", r.avg/2)
		paint := color.RedString
		switch {
		case r.avg >= 60:
			paint = color.GreenString
		case r.avg >= 50:
			paint = color.YellowString
		}
		fmt.Fprintf(h.out, "%-*s  %s %d\n", width, r.title, paint(bar), r.avg)
	}
}

func roleSelected(roles []review.Role, role review.Role) bool {
	for _, r := range roles {
		if r == role {
			return true
		}
	}
	return false
}
