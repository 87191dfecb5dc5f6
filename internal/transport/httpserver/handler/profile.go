package handler

import (
	"errors"
	"net/http"

	profiledomain "bokumono-go/internal/domain/profile"
	"bokumono-go/internal/transport/httpserver/middleware"
)

type saveProfileRequest struct {
	Name      string `json:"name"`
	Bio       string `json:"bio"`
	AvatarURL string `json:"avatar_url"`
	Birthdate string `json:"birthdate"`
}

type profileResponse struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Email     *string `json:"email"`
	Bio       *string `json:"bio"`
	AvatarURL *string `json:"avatar_url"`
	Birthdate *string `json:"birthdate"`
}

func (h *Handlers) GetProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	p, err := h.Profile.Get(r.Context(), user.ID)
	if err != nil {
		if errors.Is(err, profiledomain.ErrProfileNotFound) {
			writeError(w, http.StatusNotFound, "profile_not_found", "profile not found")
			return
		}
		h.log.InternalError("profile.get: get failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

func (h *Handlers) SaveProfile(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req saveProfileRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	p, err := h.Profile.Save(r.Context(), profiledomain.SaveInput{
		UserID:    user.ID,
		Name:      req.Name,
		Bio:       req.Bio,
		AvatarURL: req.AvatarURL,
		Birthdate: req.Birthdate,
	})
	if err != nil {
		if errors.Is(err, profiledomain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.log.InternalError("profile.save: save failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toProfileResponse(p))
}

func toProfileResponse(p *profiledomain.MasterProfile) profileResponse {
	return profileResponse{
		ID:        p.UserID,
		Name:      p.Name,
		Email:     p.Email,
		Bio:       p.Bio,
		AvatarURL: p.AvatarURL,
		Birthdate: p.Birthdate,
	}
}
