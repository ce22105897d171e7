package review

import (
	"bytes"
	"context"
	"encoding/json"

	"github.com/baobab-edu/peerreview-cli/core"
)

type (
	// Gateway is the transport the caches talk through. Implementations
	// must not fail for ordinary HTTP error statuses: those come back
	// as ok=false with no body.
	Gateway interface {
		// Fetch GETs a relative path and returns the raw body.
		Fetch(ctx context.Context, relativePath string) (body []byte, ok bool)
		// Post sends payload as JSON and reports whether the remote
		// call succeeded.
		Post(ctx context.Context, relativePath string, payload interface{}) bool
	}

	// TraceFunc observes cache hits and misses (display only).
	TraceFunc func(hit bool)
)

// slot is one named cached value. It is valid iff it holds a value;
// there is no TTL and no generation counter.
type slot[T any] struct {
	value T
	valid bool
}

func (s *slot[T]) set(v T) {
	s.value = v
	s.valid = true
}

func (s *slot[T]) clear() {
	var zero T
	s.value = zero
	s.valid = false
}

// cache holds what both role caches share. One cache instance belongs
// to exactly one menu session and is never shared across goroutines.
type cache struct {
	session Session
	gw      Gateway

	// Trace, when set, is called with true on a hit and false on a
	// miss before the slot is consulted or the network touched.
	Trace TraceFunc
}

func (c *cache) trace(hit bool) {
	if c.Trace != nil {
		c.Trace(hit)
	}
}

// Post serializes item to the relative path and reports success. It
// never touches any slot: invalidation after a successful write is the
// caller's responsibility.
func (c *cache) Post(ctx context.Context, item interface{}, relativePath string) bool {
	return c.gw.Post(ctx, relativePath, item)
}

func (c *cache) Session() Session { return c.session }

// getOrFetch returns the slot's value, populating it from the gateway
// on the first call. Transport failures and undecodable bodies both
// collapse to Fail and leave the slot empty, so the next call retries.
func getOrFetch[T any](ctx context.Context, c *cache, s *slot[T], path, what string) core.Result[T] {
	if s.valid {
		c.trace(true)
		return core.Ok(s.value)
	}
	c.trace(false)
	res := fetch[T](ctx, c, path, what)
	if res.IsDone() {
		s.set(res.Value)
	}
	return res
}

// fetch is the uncached path, used directly for queries whose
// parameter space is unbounded.
func fetch[T any](ctx context.Context, c *cache, path, what string) core.Result[T] {
	body, ok := c.gw.Fetch(ctx, path)
	if !ok {
		return core.Fail[T]("Error getting " + what + ".")
	}
	body = bytes.TrimSpace(body)
	if len(body) == 0 || bytes.Equal(body, []byte("null")) {
		return core.Fail[T]("Error getting " + what + ".")
	}
	var v T
	if err := json.Unmarshal(body, &v); err != nil {
		return core.Fail[T]("Error getting " + what + ".")
	}
	return core.Ok(v)
}

// StudentCache memoizes the student's whole-collection queries for the
// duration of a menu session.
type StudentCache struct {
	cache

	summary   slot[[]LessonSummary]
	todo      slot[[]Lesson]
	dashboard slot[[]Lesson]
}

func NewStudentCache(session Session, gw Gateway) *StudentCache {
	return &StudentCache{cache: cache{session: session, gw: gw}}
}

func (c *StudentCache) LessonSummary(ctx context.Context) core.Result[[]LessonSummary] {
	return getOrFetch(ctx, &c.cache, &c.summary, StudentLessonsSummaryURL(c.session), "lessons summary")
}

func (c *StudentCache) ToDoQuestions(ctx context.Context) core.Result[[]Lesson] {
	return getOrFetch(ctx, &c.cache, &c.todo, ToDoQuestionsURL(c.session), "todo questions")
}

func (c *StudentCache) Dashboard(ctx context.Context) core.Result[[]Lesson] {
	return getOrFetch(ctx, &c.cache, &c.dashboard, AllGradesURL(c.session), "dashboard")
}

// FeedbackToGive returns the answer assigned to the student for the
// given lesson. Parameterized by lesson, so never cached.
func (c *StudentCache) FeedbackToGive(ctx context.Context, lessonID int) core.Result[AnswerForFeedback] {
	return fetch[AnswerForFeedback](ctx, &c.cache, FeedbackURL(c.session, lessonID), "feedback")
}

// LessonGrades returns the student's answers with received feedback
// for the given lesson. Never cached.
func (c *StudentCache) LessonGrades(ctx context.Context, lessonID int) core.Result[[]Answer] {
	return fetch[[]Answer](ctx, &c.cache, LessonGradesURL(c.session, lessonID), "grades")
}

// ResetCache clears every cached slot. Called after any successful
// write that could make cached reads stale.
func (c *StudentCache) ResetCache() {
	c.summary.clear()
	c.todo.clear()
	c.dashboard.clear()
}

// TeacherCache memoizes the teacher's whole-collection queries for the
// duration of a menu session.
type TeacherCache struct {
	cache

	summary        slot[[]TeacherLessonSummary]
	classData      slot[ClassData]
	toMark         slot[[]QuestionToMark]
	toMarkLessonID int
	correctAnswers slot[[]Question]
}

func NewTeacherCache(session Session, gw Gateway) *TeacherCache {
	return &TeacherCache{cache: cache{session: session, gw: gw}}
}

func (c *TeacherCache) LessonSummary(ctx context.Context) core.Result[[]TeacherLessonSummary] {
	return getOrFetch(ctx, &c.cache, &c.summary, TeacherLessonsSummaryURL(c.session), "lessons summary")
}

func (c *TeacherCache) ClassData(ctx context.Context) core.Result[ClassData] {
	return getOrFetch(ctx, &c.cache, &c.classData, ClassURL(c.session), "class data")
}

// QuestionsToMark is cached for the most recently requested lesson
// only; asking for another lesson overwrites the slot.
func (c *TeacherCache) QuestionsToMark(ctx context.Context, lessonID int) core.Result[[]QuestionToMark] {
	if c.toMark.valid && c.toMarkLessonID != lessonID {
		c.toMark.clear()
	}
	res := getOrFetch(ctx, &c.cache, &c.toMark, QuestionsToMarkURL(c.session, lessonID), "questions to mark")
	if res.IsDone() {
		c.toMarkLessonID = lessonID
	}
	return res
}

func (c *TeacherCache) CorrectAnswersToReview(ctx context.Context) core.Result[[]Question] {
	return getOrFetch(ctx, &c.cache, &c.correctAnswers, CorrectAnswersToReviewURL(c.session, -1), "answers to review")
}

// Students returns the course roster. Never cached: absences are taken
// live right before assigning questions.
func (c *TeacherCache) Students(ctx context.Context) core.Result[[]User] {
	return fetch[[]User](ctx, &c.cache, StudentsURL(c.session), "students")
}

// RemoveCorrectAnswer drops one reviewed item from the cached
// correct-answers slot without refetching the rest. No-op when the
// slot is empty.
func (c *TeacherCache) RemoveCorrectAnswer(id int) {
	if !c.correctAnswers.valid {
		return
	}
	kept := c.correctAnswers.value[:0]
	for _, q := range c.correctAnswers.value {
		if q.ID != id {
			kept = append(kept, q)
		}
	}
	c.correctAnswers.set(kept)
}

// ResetCache clears every cached slot. Called after any successful
// write that could make cached reads stale.
func (c *TeacherCache) ResetCache() {
	c.summary.clear()
	c.classData.clear()
	c.toMark.clear()
	c.toMarkLessonID = 0
	c.correctAnswers.clear()
}
