package models

import "time"

type Offer struct {
	ID             string
	Title          string
	Description    string
	Price          float64
	DurationHours int
	CreatedAt      time.Time
}

// UserOffer is a purchase of an Offer; Status is one of the api.Status* values.
// ExpiresAt is fixed at purchase time as CreatedAt plus the offer duration.
type UserOffer struct {
	ID        string
	UserID    string
	OfferID   string
	Status    string
	ExpiresAt time.Time
	CreatedAt time.Time
	UpdatedAt time.Time
}

type Lesson struct {
	ID          string
	Title       string
	Description string
	VideoURL    string
	OrderIndex  int
	CreatedAt   time.Time
}

type Question struct {
	ID       string
	LessonID string
	Text     string
	Points   int
	Answers  []Answer
}

type Answer struct {
	ID         string
	QuestionID string
	Text       string
	Correct    bool
}
