package httpapi

import (
	"errors"
	"net/http"

	"github.com/dmitrijs2005/schoolauth/internal/api"
	"github.com/dmitrijs2005/schoolauth/internal/common"
	"github.com/dmitrijs2005/schoolauth/internal/server/services"
)

func tokenResponse(p *services.TokenPair, message string) api.TokenResponse {
	return api.TokenResponse{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    common.BearerScheme,
		ExpiresIn:    p.ExpiresIn.Milliseconds(),
		Message:      message,
	}
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "ok", Success: true})
}

func (h *Handler) register(w http.ResponseWriter, r *http.Request) {
	var req api.RegisterRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	pair, err := h.users.Register(r.Context(), services.Registration{
		Firstname:            req.Firstname,
		Lastname:             req.Lastname,
		Email:                req.Email,
		Password:             req.Password,
		ConfirmPassword:      req.ConfirmPassword,
		RGPDAccepted:         req.RGPDAccepted,
		CommercialUseConsent: req.CommercialUseConsent,
	})
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			writeError(w, http.StatusBadRequest, "email is already in use")
			return
		}
		h.fail(w, r, err)
		return
	}

	h.logger.Info(r.Context(), "user registered")
	writeJSON(w, http.StatusCreated, tokenResponse(pair, "User registered successfully"))
}

func (h *Handler) login(w http.ResponseWriter, r *http.Request) {
	var req api.LoginRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	pair, err := h.users.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			writeError(w, http.StatusUnauthorized, "invalid email or password")
			return
		}
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse(pair, "Login successful"))
}

func (h *Handler) refreshToken(w http.ResponseWriter, r *http.Request) {
	var req api.RefreshTokenRequest
	if err := decodeJSON(r, &req); err != nil {
		h.fail(w, r, err)
		return
	}

	pair, err := h.users.RefreshToken(r.Context(), req.RefreshToken)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, tokenResponse(pair, "Token refreshed"))
}

func (h *Handler) logout(w http.ResponseWriter, r *http.Request) {
	var req api.LogoutRequest
	if r.ContentLength != 0 {
		if err := decodeJSON(r, &req); err != nil {
			h.fail(w, r, err)
			return
		}
	}

	if err := h.users.Logout(r.Context(), claimsFrom(r.Context()), req.RefreshToken); err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.MessageResponse{Message: "Logout successful", Success: true})
}

func (h *Handler) profile(w http.ResponseWriter, r *http.Request) {
	u, err := h.users.Profile(r.Context(), claimsFrom(r.Context()).UserID)
	if err != nil {
		h.fail(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, api.Profile{
		ID:        u.ID,
		Email:     u.Email,
		Firstname: u.Firstname,
		Lastname:  u.Lastname,
		Role:      u.Role,
	})
}
