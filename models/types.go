package models

import (
	"strconv"
	"time"
)

// QuestionType is the closed set of question kinds
type QuestionType int

const (
	QuestionText           QuestionType = 1
	QuestionOneOption      QuestionType = 2
	QuestionSeveralOptions QuestionType = 3
)

func (t QuestionType) Valid() bool {
	switch t {
	case QuestionText, QuestionOneOption, QuestionSeveralOptions:
		return true
	}
	return false
}

// IsChoice reports whether answers are picked from a list of options
func (t QuestionType) IsChoice() bool {
	return t == QuestionOneOption || t == QuestionSeveralOptions
}

func (t QuestionType) String() string {
	switch t {
	case QuestionText:
		return "text"
	case QuestionOneOption:
		return "one option"
	case QuestionSeveralOptions:
		return "several options"
	}
	return "QuestionType(" + strconv.Itoa(int(t)) + ")"
}

// Account roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)

// Request types

// Timestamp returns t the way it is stored: in UTC with microsecond
// precision. Windows must be compared on these values.
func Timestamp(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}

type CreatePollRequest struct {
	Title       string    `json:"title" validate:"required,max=255"`
	StartDate   time.Time `json:"start_date" validate:"required"`
	FinishDate  time.Time `json:"finish_date" validate:"required,gtfield=StartDate"`
	Description string    `json:"description"`
}

func (r *CreatePollRequest) Normalize() {
	r.StartDate = Timestamp(r.StartDate)
	r.FinishDate = Timestamp(r.FinishDate)
}

// UpdatePollRequest is the full update view of a poll. start_date is
// deliberately absent: it cannot change after creation.
type UpdatePollRequest struct {
	Title       string    `json:"title" validate:"required,max=255"`
	FinishDate  time.Time `json:"finish_date" validate:"required"`
	Description string    `json:"description"`
}

func (r *UpdatePollRequest) Normalize() {
	r.FinishDate = Timestamp(r.FinishDate)
}

type PatchPollRequest struct {
	Title       *string    `json:"title" validate:"omitempty,min=1,max=255"`
	FinishDate  *time.Time `json:"finish_date"`
	Description *string    `json:"description"`
}

func (r *PatchPollRequest) Normalize() {
	if r.FinishDate != nil {
		finish := Timestamp(*r.FinishDate)
		r.FinishDate = &finish
	}
}

type CreateQuestionRequest struct {
	Poll  string       `json:"poll" validate:"required"`
	Text  string       `json:"text" validate:"required,max=255"`
	QType QuestionType `json:"qtype" validate:"required,oneof=1 2 3"`
}

type UpdateQuestionRequest struct {
	Text  string       `json:"text" validate:"required,max=255"`
	QType QuestionType `json:"qtype" validate:"required,oneof=1 2 3"`
}

type PatchQuestionRequest struct {
	Text  *string       `json:"text" validate:"omitempty,min=1,max=255"`
	QType *QuestionType `json:"qtype" validate:"omitempty,oneof=1 2 3"`
}

type CreateAnswerRequest struct {
	Question string `json:"question" validate:"required"`
	Text     string `json:"text" validate:"required,max=255"`
}

// SubmitAnswerRequest carries either typed_answer or selected_answers,
// never both. The submitter is taken from the authenticated request.
type SubmitAnswerRequest struct {
	Question        string   `json:"question" validate:"required"`
	TypedAnswer     *string  `json:"typed_answer" validate:"omitempty,max=255"`
	SelectedAnswers []string `json:"selected_answers"`
}

type LoginRequest struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ChangePasswordRequest struct {
	OldPassword string `json:"old_password" validate:"required"`
	NewPassword string `json:"new_password" validate:"required,min=8,max=72"`
}

type CreateAccountRequest struct {
	Username string `json:"username" validate:"required,min=2,max=50"`
	Password string `json:"password" validate:"required,min=8,max=72"`
	Role     string `json:"role" validate:"omitempty,oneof=admin user"`
}

// Response types

type LoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

// Domain types

type Poll struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	StartDate   time.Time `json:"start_date"`
	FinishDate  time.Time `json:"finish_date"`
	Description string    `json:"description"`
}

// IsActive reports whether now falls in [StartDate, FinishDate)
func (p Poll) IsActive(now time.Time) bool {
	return !now.Before(p.StartDate) && now.Before(p.FinishDate)
}

type Question struct {
	ID    string       `json:"id"`
	Poll  string       `json:"poll"`
	Text  string       `json:"text"`
	QType QuestionType `json:"qtype"`
}

type QuestionDetail struct {
	Question
	Answers []Answer `json:"answers"`
}

type Answer struct {
	ID       string `json:"id"`
	Question string `json:"question"`
	Text     string `json:"text"`
}

type UserAnswer struct {
	ID              string    `json:"id"`
	AccountID       string    `json:"-"`
	Question        string    `json:"question"`
	SelectedAnswers []string  `json:"selected_answers"`
	TypedAnswer     *string   `json:"typed_answer"`
	CreatedAt       time.Time `json:"created_at"`
}

type PassedQuestion struct {
	Question
	Answers      []Answer     `json:"answers"`
	UsersAnswers []UserAnswer `json:"users_answers"`
}

type PassedPoll struct {
	Poll
	Questions []PassedQuestion `json:"questions"`
}

type Account struct {
	ID           string    `json:"id"`
	Username     string    `json:"username"`
	Role         string    `json:"role"`
	PasswordHash string    `json:"-"` // Never expose in JSON
	CreatedAt    time.Time `json:"created_at"`
}

// Error response

type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message,omitempty"`
	Fields  map[string]string `json:"fields,omitempty"`
}
