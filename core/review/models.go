package review

import (
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
)

// Wire models. Field names are the API's JSON contract (snake_case);
// do not rename without a server-side change.

// Time is a timestamp as the API writes it: RFC 3339 or the bare
// "2006-01-02T15:04:05" form with no offset.
type Time struct {
	time.Time
}

var timeLayouts = []string{time.RFC3339, "2006-01-02T15:04:05"}

func (t *Time) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		return nil
	}
	var err error
	for _, layout := range timeLayouts {
		var parsed time.Time
		if parsed, err = time.Parse(layout, s); err == nil {
			t.Time = parsed
			return nil
		}
	}
	return errors.Wrapf(err, "review: parse time %q", s)
}

// LessonSummary is one row of the student "my lessons" view.
type LessonSummary struct {
	ID                 int    `json:"id"`
	Title              string `json:"title"`
	CreatedAt          Time   `json:"created_at"`
	FirstDeadline      *Time  `json:"first_deadline"`
	SecondDeadline     *Time  `json:"second_deadline"`
	CountQuestionsMade int    `json:"count_questions_made"`
	CountFeedbackMade  int    `json:"count_feedback_made"`
}

// TeacherLessonSummary is one row of the teacher "my lessons" view.
type TeacherLessonSummary struct {
	ID                     int    `json:"id"`
	Title                  string `json:"title"`
	CreatedAt              *Time  `json:"created_at"`
	FirstDeadline          *Time  `json:"first_deadline"`
	SecondDeadline         *Time  `json:"second_deadline"`
	CountQuestions         int    `json:"count_questions"`
	CountQuestionsMade     int    `json:"count_questions_made"`
	TotalAnsweredQuestions int    `json:"total_answered_questions"`
	CountFeedbackMade      int    `json:"count_feedback_made"`
}

// Lesson carries a lesson with its questions; the to-do list and the
// dashboard both come back as lists of these.
type Lesson struct {
	ID              int        `json:"id"`
	Title           string     `json:"title"`
	CreatedAt       Time       `json:"created_at"`
	FirstDeadline   *Time      `json:"first_deadline"`
	SecondDeadline  *Time      `json:"second_deadline"`
	ContentHTML     string     `json:"content_html"`
	ClassID         int        `json:"class_id"`
	LessonQuestions []Question `json:"lesson_questions"`
}

type Question struct {
	ID           int      `json:"id"`
	QuestionText string   `json:"question_text"`
	CreatedAt    *Time    `json:"created_at"`
	Answers      []Answer `json:"answers"`
	ClassID      int      `json:"class_id"`
	// filled only on the correct-answers-to-review query
	Answer string `json:"answer"`
}

type Answer struct {
	ID           int        `json:"id"`
	QuestionID   int        `json:"question_id"`
	UserID       int        `json:"user_id"`
	AnswerText   string     `json:"answer_text"`
	CreatedAt    *Time      `json:"created_at"`
	Feedbacks    []Feedback `json:"feedbacks"`
	QuestionText string     `json:"question_text"`
}

type Feedback struct {
	ID              int     `json:"id"`
	UserID          int     `json:"user_id"`
	FeedbackText    string  `json:"feedback_text"`
	Grade           float64 `json:"grade"`
	MissingElements string  `json:"missing_elements"`
	AnswerID        int     `json:"answer_id"`
	CreatedAt       *Time   `json:"created_at"`
	FeedbackRole    Role    `json:"feedback_role"`
}

// ClassData is the teacher's course snapshot: roster plus lessons.
type ClassData struct {
	ID         int      `json:"id"`
	Name       string   `json:"name"`
	Code       string   `json:"code"`
	SchoolCode string   `json:"school_code"`
	AdminID    int      `json:"admin_id"`
	ClassUsers []User   `json:"class_users"`
	Lessons    []Lesson `json:"lessons"`
}

type User struct {
	ID         int        `json:"id"`
	Nickname   string     `json:"nickname"`
	SchoolName string     `json:"school_name"`
	Order      int        `json:"order"`
	Answers    []Answer   `json:"answers"`
	Feedbacks  []Feedback `json:"feedbacks"`
}

// AnswerForFeedback is the answer assigned to the student for review.
type AnswerForFeedback struct {
	ID         int    `json:"id"`
	Question   string `json:"question"`
	AnswerText string `json:"answer_text"`
}

// QuestionToMark is one answered question pending the teacher's mark.
type QuestionToMark struct {
	AnswerID     int      `json:"answer_id"`
	QuestionText string   `json:"question_text"`
	AnswerText   string   `json:"answer_text"`
	AverageGrade *float64 `json:"average_grade"`
	TotalGrades  *int     `json:"total_grades"`
	FeedbackGPT  *string  `json:"feedback_gpt"`
}

// Write payloads.

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Website  int    `json:"website"`
}

type LoginResponse struct {
	Token string `json:"token"`
}

type RoleRequest struct {
	Role          Role `json:"role"`
	CourseClassID int  `json:"course_class_id"`
	Website       int  `json:"website"`
}

type RoleResponse struct {
	Message         string `json:"message"`
	APIVersion      string `json:"api_version"`
	SoftwareVersion string `json:"software_version"`
	ClassName       string `json:"class_name"`
	Role            string `json:"role"`
}

type EnrollRequest struct {
	CourseKey      string `json:"course_key"`
	FullName       string `json:"full_name"`
	RegisterNumber int    `json:"register_number"`
	Website        int    `json:"website"`
}

type NewLesson struct {
	Title          string    `json:"title"`
	CreatedAt      time.Time `json:"created_at"`
	FirstDeadline  time.Time `json:"first_deadline"`
	SecondDeadline time.Time `json:"second_deadline"`
	ContentHTML    string    `json:"content_html"`
	CourseClassID  int       `json:"course_class_id"`
	Website        int       `json:"website"`
	Token          uuid.UUID `json:"token"`
	Role           Role      `json:"role"`
}

type NewQuestion struct {
	ID           int       `json:"id"`
	QuestionText string    `json:"question_text"`
	CreatedAt    time.Time `json:"created_at"`
}

type NewQuestions struct {
	Questions     []NewQuestion `json:"questions"`
	CreatedAt     time.Time     `json:"created_at"`
	CourseClassID int           `json:"course_class_id"`
	LessonID      int           `json:"lesson_id"`
	Role          Role          `json:"role"`
	Website       int           `json:"website"`
	Token         uuid.UUID     `json:"token"`
	Students      []int         `json:"students"`
}

type NewAnswer struct {
	QuestionID    int       `json:"question_id"`
	QuestionText  string    `json:"question_text"`
	Role          Role      `json:"role"`
	CourseClassID int       `json:"course_class_id"`
	Website       int       `json:"website"`
	Token         uuid.UUID `json:"token"`
	IsChatGPT     int       `json:"is_chat_gpt"`
}

type NewFeedback struct {
	LessonID        int       `json:"lesson_id"`
	ID              int       `json:"id"`
	FeedbackText    string    `json:"feedback_text"`
	Grade           float64   `json:"grade"`
	MissingElements string    `json:"missing_elements"`
	Role            Role      `json:"role"`
	Website         int       `json:"website"`
	Token           uuid.UUID `json:"token"`
	IsChatGPT       int       `json:"is_chat_gpt"`
}

type CorrectAnswerReview struct {
	Token         uuid.UUID `json:"token"`
	Answer        string    `json:"answer"`
	CourseClassID int       `json:"course_class_id"`
	LessonID      int       `json:"lesson_id"`
	Role          Role      `json:"role"`
	Website       int       `json:"website"`
	IsAnswerEdit  bool      `json:"is_answer_edit"`
}

// PDFUpload is the multipart metadata sent along a PDF answer.
type PDFUpload struct {
	Website      int       `json:"website"`
	LessonID     int       `json:"lesson_id"`
	QuestionID   int       `json:"question_id"`
	QuestionText string    `json:"question_text"`
	IsChatGPT    int       `json:"is_chat_gpt"`
	Token        uuid.UUID `json:"token"`
	Role         Role      `json:"role"`
	FilePath     string    `json:"file_path"`
}

// Enrollment defaults until the API starts reporting them per course.
type AssignOptions struct {
	QuestionsToAnswer int
	FeedbacksToGive   int
}

func DefaultAssignOptions() AssignOptions {
	return AssignOptions{QuestionsToAnswer: 2, FeedbacksToGive: 5}
}
