package services

import (
	types "github.com/yungbote/lessonquiz-backend/internal/domain"
)

type UserResponse struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Email    *string `json:"email"`
	Disabled bool    `json:"disabled"`
}

type CourseResponse struct {
	ID          uint   `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Lessons     []uint `json:"lessons"`
}

type LessonResponse struct {
	ID       uint   `json:"id"`
	CourseID uint   `json:"course_id"`
	Title    string `json:"title"`
	Content  string `json:"content"`
	QuizID   *uint  `json:"quiz_id"`
}

type QuizResponse struct {
	ID        uint             `json:"id"`
	LessonID  uint             `json:"lesson_id"`
	Questions []types.Question `json:"questions"`
}

type LessonWithQuizResponse struct {
	Lesson LessonResponse `json:"lesson"`
	Quiz   QuizResponse   `json:"quiz"`
}

func NewUserResponse(u *types.User) UserResponse {
	return UserResponse{
		ID:       u.ID,
		Username: u.Username,
		Email:    u.Email,
		Disabled: u.Disabled,
	}
}

func NewCourseResponse(c *types.Course) CourseResponse {
	return CourseResponse{
		ID:          c.ID,
		Title:       c.Title,
		Description: c.Description,
		Lessons:     c.LessonIDs(),
	}
}

func NewCourseResponses(courses []*types.Course) []CourseResponse {
	out := make([]CourseResponse, 0, len(courses))
	for _, c := range courses {
		out = append(out, NewCourseResponse(c))
	}
	return out
}

func NewLessonResponse(l *types.Lesson) LessonResponse {
	resp := LessonResponse{
		ID:       l.ID,
		CourseID: l.CourseID,
		Title:    l.Title,
		Content:  l.Content,
	}
	if q := l.ActiveQuiz(); q != nil {
		id := q.ID
		resp.QuizID = &id
	}
	return resp
}

func NewLessonResponses(lessons []*types.Lesson) []LessonResponse {
	out := make([]LessonResponse, 0, len(lessons))
	for _, l := range lessons {
		out = append(out, NewLessonResponse(l))
	}
	return out
}

// NewQuizResponse decodes the stored questions; a row that no longer decodes is
// reported as an error rather than served raw.
func NewQuizResponse(q *types.Quiz) (QuizResponse, error) {
	questions, err := q.DecodeQuestions()
	if err != nil {
		return QuizResponse{}, err
	}
	return QuizResponse{ID: q.ID, LessonID: q.LessonID, Questions: questions}, nil
}
