package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/dmitrijs2005/schoolauth/internal/api"
	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/dmitrijs2005/schoolauth/internal/server/models"
	"github.com/dmitrijs2005/schoolauth/internal/server/services"
	"github.com/go-chi/chi/v5"
)

func toOffer(o models.Offer) api.Offer {
	return api.Offer{
		ID:             o.ID,
		Title:          o.Title,
		Description:    o.Description,
		Price:          o.Price,
		DurationHours: o.DurationHours,
		CreatedAt:      o.CreatedAt,
	}
}

func toUserOffer(uo models.UserOffer) api.UserOffer {
	return api.UserOffer{
		ID:        uo.ID,
		UserID:    uo.UserID,
		OfferID:   uo.OfferID,
		Status:    uo.Status,
		ExpiresAt: uo.ExpiresAt,
		CreatedAt: uo.CreatedAt,
		UpdatedAt: uo.UpdatedAt,
	}
}

func toLesson(l models.Lesson) api.CourseLesson {
	return api.CourseLesson{
		ID:          l.ID,
		Title:       l.Title,
		Description: l.Description,
		VideoURL:    l.VideoURL,
		OrderIndex:  l.OrderIndex,
	}
}

func toAnswer(a models.Answer) api.TestAnswer {
	return api.TestAnswer{ID: a.ID, QuestionID: a.QuestionID, Text: a.Text, Correct: a.Correct}
}

func toQuestion(q models.Question) api.TestQuestion {
	out := api.TestQuestion{
		ID:       q.ID,
		LessonID: q.LessonID,
		Text:     q.Text,
		Points:   q.Points,
		Answers:  make([]api.TestAnswer, 0, len(q.Answers)),
	}
	for _, a := range q.Answers {
		out.Answers = append(out.Answers, toAnswer(a))
	}
	return out
}

func (h *Handler) listOffers(w http.ResponseWriter, r *http.Request) {
	list, err := h.offers.List(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]api.Offer, 0, len(list))
	for _, o := range list {
		out = append(out, toOffer(o))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createOffer(w http.ResponseWriter, r *http.Request) {
	var req api.CreateOfferRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	o, err := h.offers.Create(r.Context(), models.Offer{
		Title:          req.Title,
		Description:    req.Description,
		Price:          req.Price,
		DurationHours: req.DurationHours,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOffer(*o))
}

func (h *Handler) purchaseOffer(w http.ResponseWriter, r *http.Request) {
	uo, err := h.offers.Purchase(r.Context(), claimsFrom(r.Context()).UserID, chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toUserOffer(*uo))
}

func (h *Handler) approveOffer(w http.ResponseWriter, r *http.Request) {
	uo, err := h.offers.Approve(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserOffer(*uo))
}

func (h *Handler) rejectOffer(w http.ResponseWriter, r *http.Request) {
	uo, err := h.offers.Reject(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toUserOffer(*uo))
}

// ownUserParam returns the {userId} path value if the caller may read it:
// users see only themselves, admins see everyone.
func ownUserParam(r *http.Request) (string, error) {
	userID := chi.URLParam(r, "userId")
	c := claimsFrom(r.Context())
	if c.Role != common.RoleAdmin && c.UserID != userID {
		return "", common.ErrorForbidden
	}
	return userID, nil
}

// userOffers serves one of the per-user purchase listings.
func (h *Handler) userOffers(list func(ctx context.Context, userID string) ([]models.UserOffer, error)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := ownUserParam(r)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		found, err := list(r.Context(), userID)
		if err != nil {
			h.fail(w, r, err)
			return
		}
		out := make([]api.UserOffer, 0, len(found))
		for _, uo := range found {
			out = append(out, toUserOffer(uo))
		}
		writeJSON(w, http.StatusOK, out)
	}
}

func (h *Handler) offerAccess(w http.ResponseWriter, r *http.Request) {
	userID, err := ownUserParam(r)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	ok, err := h.offers.HasAccess(r.Context(), userID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.AccessResponse{UserID: userID, HasAccess: ok})
}

func (h *Handler) listLessons(w http.ResponseWriter, r *http.Request) {
	list, err := h.courses.Lessons(r.Context())
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]api.CourseLesson, 0, len(list))
	for _, l := range list {
		out = append(out, toLesson(l))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createLesson(w http.ResponseWriter, r *http.Request) {
	var req api.CreateLessonRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	l, err := h.courses.CreateLesson(r.Context(), models.Lesson{
		Title:       req.Title,
		Description: req.Description,
		VideoURL:    req.VideoURL,
		OrderIndex:  req.OrderIndex,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toLesson(*l))
}

func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	list, err := h.courses.Questions(r.Context(), r.URL.Query().Get("lessonId"))
	if err != nil {
		h.fail(w, r, err)
		return
	}
	out := make([]api.TestQuestion, 0, len(list))
	for _, q := range list {
		out = append(out, toQuestion(q))
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *Handler) createQuestion(w http.ResponseWriter, r *http.Request) {
	var req api.CreateQuestionRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	q, err := h.courses.CreateQuestion(r.Context(), models.Question{
		LessonID: req.LessonID,
		Text:     req.Text,
		Points:   req.Points,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toQuestion(*q))
}

func (h *Handler) addAnswer(w http.ResponseWriter, r *http.Request) {
	var req api.CreateAnswerRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}
	a, err := h.courses.AddAnswer(r.Context(), models.Answer{
		QuestionID: chi.URLParam(r, "id"),
		Text:       req.Text,
		Correct:    req.Correct,
	})
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toAnswer(*a))
}

func (h *Handler) upload(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, services.MaxUploadSize+1<<20)

	file, header, err := r.FormFile(api.UploadFormField)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, "file is too large")
			return
		}
		writeError(w, http.StatusBadRequest, "multipart field \""+api.UploadFormField+"\" is required")
		return
	}
	defer file.Close()

	up, err := h.uploads.Upload(r.Context(), claimsFrom(r.Context()).UserID, header.Filename, file, header.Size)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	h.logger.Info(r.Context(), "body analysis uploaded", "key", up.Key, "size", up.Size)
	writeJSON(w, http.StatusCreated, api.UploadResponse{Key: up.Key, Size: up.Size, ContentType: up.ContentType})
}
