package review

import "fmt"

// Relative API paths. All GET paths are fixed templates parameterized
// by website id, role, a scope id (course or lesson) and the session
// token, in that order.

func scopedPath(prefix string, s Session, scopeID int) string {
	return fmt.Sprintf("%s/%d/%d/%d/%s", prefix, s.Website, int(s.Role), scopeID, s.Token)
}

func ClassURL(s Session) string {
	return scopedPath("PeerReview/Class", s, s.CourseID)
}

func StudentsURL(s Session) string {
	return scopedPath("PeerReview/Students", s, s.CourseID)
}

func StudentLessonsSummaryURL(s Session) string {
	return scopedPath("PeerReview/Lessons/Summary/Student", s, s.CourseID)
}

func TeacherLessonsSummaryURL(s Session) string {
	return scopedPath("PeerReview/Lessons/Summary/Teacher", s, s.CourseID)
}

func ToDoQuestionsURL(s Session) string {
	return scopedPath("PeerReview/Question/Students/ToDoQuestions", s, s.CourseID)
}

func QuestionsToMarkURL(s Session, lessonID int) string {
	return scopedPath("PeerReview/Question/Teacher/QuestionsToMark", s, lessonID)
}

func FeedbackURL(s Session, lessonID int) string {
	return scopedPath("PeerReview/Feedback", s, lessonID)
}

func LessonGradesURL(s Session, lessonID int) string {
	return scopedPath("PeerReview/Answer/Lesson", s, lessonID)
}

func AllGradesURL(s Session) string {
	return fmt.Sprintf("PeerReview/Answer/AllGrade/%d/%d/%s", s.Website, int(s.Role), s.Token)
}

// allAnswers=-1 asks only for the pending ones.
func CorrectAnswersToReviewURL(s Session, allAnswers int) string {
	return scopedPath("PeerReview/Question/Teacher/CorrectAnswerToReview", s, s.CourseID) + fmt.Sprintf("/%d", allAnswers)
}

const (
	LoginURL               = "Login"
	RoleURL                = "PeerReview/Role"
	EnrollURL              = "PeerReview/Enroll"
	LessonsURL             = "PeerReview/Lessons"
	QuestionURL            = "PeerReview/Question"
	AnswerURL              = "PeerReview/Answer"
	FeedbackPostURL        = "PeerReview/Feedback"
	CorrectAnswerReviewURL = "PeerReview/Question/Teacher/CorrectAnswerToReview/"
	UploadPDFURL           = "PeerReview/Upload/Pdf"
)
