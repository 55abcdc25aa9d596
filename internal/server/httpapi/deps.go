package httpapi

import (
	"context"
	"io"

	"github.com/dmitrijs2005/schoolauth/internal/server/auth"
	"github.com/dmitrijs2005/schoolauth/internal/server/models"
	"github.com/dmitrijs2005/schoolauth/internal/server/services"
)

type UserService interface {
	Register(ctx context.Context, r services.Registration) (*services.TokenPair, error)
	Login(ctx context.Context, email, password string) (*services.TokenPair, error)
	RefreshToken(ctx context.Context, refreshToken string) (*services.TokenPair, error)
	Logout(ctx context.Context, claims *auth.Claims, refreshToken string) error
	Authenticate(ctx context.Context, token string) (*auth.Claims, error)
	Profile(ctx context.Context, userID string) (*models.User, error)
}

type OfferService interface {
	List(ctx context.Context) ([]models.Offer, error)
	Create(ctx context.Context, o models.Offer) (*models.Offer, error)
	Purchase(ctx context.Context, userID, offerID string) (*models.UserOffer, error)
	Approve(ctx context.Context, userOfferID string) (*models.UserOffer, error)
	Reject(ctx context.Context, userOfferID string) (*models.UserOffer, error)
	Pending(ctx context.Context, userID string) ([]models.UserOffer, error)
	Approved(ctx context.Context, userID string) ([]models.UserOffer, error)
	Rejected(ctx context.Context, userID string) ([]models.UserOffer, error)
	Purchases(ctx context.Context, userID string) ([]models.UserOffer, error)
	HasAccess(ctx context.Context, userID string) (bool, error)
}

type CourseService interface {
	Lessons(ctx context.Context) ([]models.Lesson, error)
	CreateLesson(ctx context.Context, l models.Lesson) (*models.Lesson, error)
	Questions(ctx context.Context, lessonID string) ([]models.Question, error)
	CreateQuestion(ctx context.Context, q models.Question) (*models.Question, error)
	AddAnswer(ctx context.Context, a models.Answer) (*models.Answer, error)
}

type UploadService interface {
	Upload(ctx context.Context, userID, filename string, body io.ReadSeeker, size int64) (*services.Upload, error)
}
