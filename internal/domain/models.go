package domain

import "time"

// Question type tags as the remote API stores them.
const (
	QuestionTypeChoice    = "alternativa"
	QuestionTypeTrueFalse = "verdadero_falso"
)

// Synthetic option texts for true/false questions. The authoring flow always
// creates exactly these two, with mutually exclusive correctness.
const (
	OptionTextTrue  = "Verdadero"
	OptionTextFalse = "Falso"
)

// User is the profile record returned by the auth endpoints.
type User struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Credentials bundles the opaque auth token with the profile it belongs to.
type Credentials struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// Course groups sections; visibility and end date are managed by moderators.
type Course struct {
	ID          int       `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	IsPublic    bool      `json:"isPublic"`
	EndDate     time.Time `json:"endDate"`
}

// Section is a timed or untimed group of questions inside a course.
// TotalTime is in minutes; zero means the section has no time limit.
type Section struct {
	ID          int    `json:"id"`
	CourseID    int    `json:"courseId"`
	Name        string `json:"name"`
	Description string `json:"description"`
	VideoLink   string `json:"videoLink"`
	TotalTime   int    `json:"totalTime"`
}

// Option is one selectable choice for a question.
type Option struct {
	ID         int    `json:"id"`
	QuestionID int    `json:"questionId"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"isCorrect"`
}

// Question carries its ordered options nested, as served by the API.
type Question struct {
	ID        int      `json:"id"`
	SectionID int      `json:"sectionId"`
	Type      string   `json:"type"`
	Statement string   `json:"statement"`
	Score     int      `json:"score"`
	ImageURL  string   `json:"imageUrl"`
	Options   []Option `json:"options"`
}

// Answer is one (question, option) pair sent at submission time.
type Answer struct {
	UserID     int `json:"userId"`
	QuestionID int `json:"questionId"`
	OptionID   int `json:"optionId"`
}

// UserAnswer is a submitted answer read back for the results dashboard.
// The server nests the question (for its score) and the chosen option
// (for its correctness flag); the client never mutates these rows.
type UserAnswer struct {
	UserID     int      `json:"userId"`
	QuestionID int      `json:"questionId"`
	OptionID   int      `json:"optionId"`
	Question   Question `json:"question"`
	Option     Option   `json:"option"`
}
