package api

import "time"

type Offer struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Price          float64   `json:"price"`
	DurationHours int       `json:"durationHours"`
	CreatedAt      time.Time `json:"createdAt"`
}

type CreateOfferRequest struct {
	Title          string  `json:"title"`
	Description    string  `json:"description"`
	Price          float64 `json:"price"`
	DurationHours int     `json:"durationHours"`
}

// Purchase statuses of a UserOffer.
const (
	StatusPending  = "PENDING"
	StatusApproved = "APPROVED"
	StatusRejected = "REJECTED"
)

type UserOffer struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	OfferID   string    `json:"offerId"`
	Status    string    `json:"status"`
	ExpiresAt time.Time `json:"expirationDate"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type AccessResponse struct {
	UserID    string `json:"userId"`
	HasAccess bool   `json:"hasAccess"`
}

type CourseLesson struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
	OrderIndex  int    `json:"orderIndex"`
}

type CreateLessonRequest struct {
	Title       string `json:"title"`
	Description string `json:"description"`
	VideoURL    string `json:"videoUrl"`
	OrderIndex  int    `json:"orderIndex"`
}

type TestAnswer struct {
	ID         string `json:"id"`
	QuestionID string `json:"questionId"`
	Text       string `json:"text"`
	Correct    bool   `json:"correct"`
}

type TestQuestion struct {
	ID       string       `json:"id"`
	LessonID string       `json:"lessonId"`
	Text     string       `json:"text"`
	Points   int          `json:"points"`
	Answers  []TestAnswer `json:"answers"`
}

type CreateQuestionRequest struct {
	LessonID string `json:"lessonId"`
	Text     string `json:"text"`
	Points   int    `json:"points"`
}

type CreateAnswerRequest struct {
	Text    string `json:"text"`
	Correct bool   `json:"correct"`
}

type UploadResponse struct {
	Key         string `json:"key"`
	Size        int64  `json:"size"`
	ContentType string `json:"contentType"`
}
