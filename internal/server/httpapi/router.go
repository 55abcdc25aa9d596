package httpapi

import (
	"net/http"

	"github.com/dmitrijs2005/schoolauth/internal/api"
	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/dmitrijs2005/schoolauth/internal/logging"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

type Handler struct {
	users   UserService
	offers  OfferService
	courses CourseService
	uploads UploadService
	logger  logging.Logger
}

func NewHandler(us UserService, ofs OfferService, cs CourseService, up UploadService, l logging.Logger) *Handler {
	return &Handler{
		users:   us,
		offers:  ofs,
		courses: cs,
		uploads: up,
		logger:  l.With("module", "http_api"),
	}
}

// Router wires every endpoint. Reads need any valid token; writes on the
// catalogue need ADMIN, test writes need USER or ADMIN.
func (h *Handler) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, "no such endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, "method not allowed")
	})

	r.Get(api.PathHealth, h.health)
	r.Post(api.PathRegister, h.register)
	r.Post(api.PathLogin, h.login)
	r.Post(api.PathRefreshToken, h.refreshToken)

	r.Group(func(r chi.Router) {
		r.Use(h.bearer)

		r.Post(api.PathLogout, h.logout)
		r.Get(api.PathProfile, h.profile)

		r.Route(api.PathOffers, func(r chi.Router) {
			r.Get("/", h.listOffers)
			r.With(requireRole(common.RoleAdmin)).Post("/", h.createOffer)
			r.With(requireRole(common.RoleUser, common.RoleAdmin)).Post("/{id}/purchase", h.purchaseOffer)
			r.With(requireRole(common.RoleAdmin)).Put("/{id}/approve", h.approveOffer)
			r.With(requireRole(common.RoleAdmin)).Put("/{id}/reject", h.rejectOffer)
			r.Get("/user/{userId}/pending", h.userOffers(h.offers.Pending))
			r.Get("/user/{userId}/approved", h.userOffers(h.offers.Approved))
			r.Get("/user/{userId}/rejected", h.userOffers(h.offers.Rejected))
			r.Get("/user/{userId}/purchases", h.userOffers(h.offers.Purchases))
			r.Get("/user/{userId}/access", h.offerAccess)
		})

		r.Get(api.PathCourseLessons, h.listLessons)
		r.With(requireRole(common.RoleAdmin)).Post(api.PathCourseLessons, h.createLesson)

		r.Get(api.PathTestQuestions, h.listQuestions)
		r.With(requireRole(common.RoleUser, common.RoleAdmin)).Post(api.PathTestQuestions, h.createQuestion)
		r.With(requireRole(common.RoleUser, common.RoleAdmin)).Post(api.PathTestQuestions+"/{id}/answers", h.addAnswer)

		r.Post(api.PathBodyUpload, h.upload)
	})

	return r
}

// fail writes err as the error envelope. 5xx details stay in the log.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeError(w, status, "internal error")
		return
	}
	writeError(w, status, err.Error())
}
