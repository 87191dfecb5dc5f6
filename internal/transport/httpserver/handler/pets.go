package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	petsdomain "bokumono-go/internal/domain/pets"
	"bokumono-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createPetRequest struct {
	Name               string  `json:"name"`
	Birthdate          *string `json:"birthdate"`
	Memo               string  `json:"memo"`
	PhotoURL           string  `json:"photo_url"`
	PerceivedMasterAge int     `json:"perceived_master_age"`
}

type updatePetRequest struct {
	Name               *string `json:"name"`
	Birthdate          *string `json:"birthdate"`
	Status             *string `json:"status"`
	Memo               *string `json:"memo"`
	PhotoURL           *string `json:"photo_url"`
	PerceivedMasterAge *int    `json:"perceived_master_age"`
}

type petResponse struct {
	ID                 string    `json:"id"`
	Name               string    `json:"name"`
	Birthdate          *string   `json:"birthdate"`
	Age                *int      `json:"age"`
	Status             string    `json:"status"`
	Memo               string    `json:"memo"`
	PhotoURL           string    `json:"photo_url"`
	PerceivedMasterAge int       `json:"perceived_master_age"`
	CreatedAt          time.Time `json:"created_at"`
	UpdatedAt          time.Time `json:"updated_at"`
}

type petListResponse struct {
	Items []petResponse `json:"items"`
}

func (h *Handlers) ListPets(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var filter petsdomain.ListFilter
	switch status := strings.TrimSpace(r.URL.Query().Get("status")); status {
	case "", "all":
	case string(petsdomain.StatusActive), string(petsdomain.StatusArchived):
		filter.Status = petsdomain.Status(status)
	default:
		writeError(w, http.StatusBadRequest, "invalid_request", "status must be active, archived or all")
		return
	}

	items, err := h.Pets.List(r.Context(), user.ID, filter)
	if err != nil {
		h.log.InternalError("pets.list: list failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	response := make([]petResponse, 0, len(items))
	for i := range items {
		response = append(response, h.toPetResponse(&items[i]))
	}

	writeJSON(w, http.StatusOK, petListResponse{Items: response})
}

func (h *Handlers) GetPet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	petID := chi.URLParam(r, "pet_id")
	pet, err := h.Pets.GetByID(r.Context(), user.ID, petID)
	if err != nil {
		if errors.Is(err, petsdomain.ErrPetNotFound) {
			writeError(w, http.StatusNotFound, "pet_not_found", "pet not found")
			return
		}
		h.log.InternalError("pets.get: get failed", err, "user_id", user.ID, "pet_id", petID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, h.toPetResponse(pet))
}

func (h *Handlers) CreatePet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createPetRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "name is required")
		return
	}
	if req.PerceivedMasterAge < 1 {
		writeError(w, http.StatusBadRequest, "invalid_request", "perceived_master_age must be at least 1")
		return
	}

	pet, err := h.Pets.Create(r.Context(), petsdomain.CreateInput{
		UserID:             user.ID,
		Name:               req.Name,
		Birthdate:          req.Birthdate,
		Memo:               req.Memo,
		PhotoURL:           req.PhotoURL,
		PerceivedMasterAge: req.PerceivedMasterAge,
	})
	if err != nil {
		if errors.Is(err, petsdomain.ErrInvalidInput) {
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
			return
		}
		h.log.InternalError("pets.create: create failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusCreated, h.toPetResponse(pet))
}

func (h *Handlers) UpdatePet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	petID := chi.URLParam(r, "pet_id")

	// Decode to a raw map first so "birthdate": null (clear) can be told
	// apart from the field not being sent at all.
	var raw map[string]json.RawMessage
	if err := json.NewDecoder(r.Body).Decode(&raw); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	var req updatePetRequest
	{
		encoded, _ := json.Marshal(raw)
		if err := json.Unmarshal(encoded, &req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
			return
		}
	}

	input := petsdomain.UpdateInput{
		ID:                 petID,
		UserID:             user.ID,
		Name:               req.Name,
		Memo:               req.Memo,
		PhotoURL:           req.PhotoURL,
		PerceivedMasterAge: req.PerceivedMasterAge,
	}
	if req.Status != nil {
		status := petsdomain.Status(*req.Status)
		input.Status = &status
	}
	if _, sent := raw["birthdate"]; sent {
		input.Birthdate = &petsdomain.BirthdatePatch{Value: req.Birthdate}
	}

	pet, err := h.Pets.Update(r.Context(), input)
	if err != nil {
		switch {
		case errors.Is(err, petsdomain.ErrInvalidInput):
			writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
		case errors.Is(err, petsdomain.ErrPetNotFound):
			h.log.BusinessError("pets.update: pet not found", err, "user_id", user.ID, "pet_id", petID)
			writeError(w, http.StatusNotFound, "pet_not_found", "pet not found")
		default:
			h.log.InternalError("pets.update: update failed", err, "user_id", user.ID, "pet_id", petID)
			writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		}
		return
	}

	writeJSON(w, http.StatusOK, h.toPetResponse(pet))
}

func (h *Handlers) DeletePet(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	petID := chi.URLParam(r, "pet_id")
	if err := h.Pets.Delete(r.Context(), user.ID, petID); err != nil {
		if errors.Is(err, petsdomain.ErrPetNotFound) {
			h.log.BusinessError("pets.delete: pet not found", err, "user_id", user.ID, "pet_id", petID)
			writeError(w, http.StatusNotFound, "pet_not_found", "pet not found")
			return
		}
		h.log.InternalError("pets.delete: delete failed", err, "user_id", user.ID, "pet_id", petID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) toPetResponse(pet *petsdomain.Pet) petResponse {
	return petResponse{
		ID:                 pet.ID,
		Name:               pet.Name,
		Birthdate:          pet.Birthdate,
		Age:                h.Pets.Age(pet),
		Status:             string(pet.Status),
		Memo:               pet.Memo,
		PhotoURL:           pet.PhotoURL,
		PerceivedMasterAge: pet.PerceivedMasterAge,
		CreatedAt:          pet.CreatedAt,
		UpdatedAt:          pet.UpdatedAt,
	}
}
