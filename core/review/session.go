package review

import "github.com/google/uuid"

// Role is the wire value identifying what the logged-in user may do.
type Role int

const (
	RoleStudent Role = 1
	RoleTeacher Role = 2
	RoleAdmin   Role = 3 // the API reports GPT-generated feedback under admin
)

func (r Role) String() string {
	switch r {
	case RoleStudent:
		return "student"
	case RoleTeacher:
		return "teacher"
	case RoleAdmin:
		return "admin"
	}
	return "unknown"
}

func (r Role) Valid() bool {
	return r == RoleStudent || r == RoleTeacher || r == RoleAdmin
}

// Session identifies the scope of one logged-in menu instance. It is
// immutable for the menu's lifetime.
type Session struct {
	CourseID int
	Token    uuid.UUID
	Role     Role
	Website  int
}
