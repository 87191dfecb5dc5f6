package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	schedulesdomain "bokumono-go/internal/domain/schedules"
	"bokumono-go/internal/transport/httpserver/middleware"
	"github.com/go-chi/chi/v5"
)

type createScheduleRequest struct {
	PetID    string `json:"pet_id"`
	Title    string `json:"title"`
	Details  string `json:"details"`
	StartsAt string `json:"starts_at"`
	EndsAt   string `json:"ends_at"`
}

type updateScheduleRequest struct {
	PetID    *string `json:"pet_id"`
	Title    *string `json:"title"`
	Details  *string `json:"details"`
	StartsAt *string `json:"starts_at"`
	EndsAt   *string `json:"ends_at"`
}

type scheduleResponse struct {
	ID        string    `json:"id"`
	PetID     string    `json:"pet_id"`
	Title     string    `json:"title"`
	Details   string    `json:"details"`
	StartsAt  time.Time `json:"starts_at"`
	EndsAt    time.Time `json:"ends_at"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type scheduleListResponse struct {
	Items []scheduleResponse `json:"items"`
}

type scheduleDefaultsResponse struct {
	PetID         string    `json:"pet_id,omitempty"`
	StartsAt      time.Time `json:"starts_at"`
	DurationHours int       `json:"duration_hours"`
}

func (h *Handlers) ListSchedules(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	query := r.URL.Query()
	from, err := parseTimeParam(query.Get("from"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid from time")
		return
	}
	to, err := parseTimeParam(query.Get("to"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "invalid to time")
		return
	}

	filter := schedulesdomain.ListFilter{
		PetID: strings.TrimSpace(query.Get("pet_id")),
		From:  from,
		To:    to,
	}

	items, err := h.Schedules.List(r.Context(), user.ID, filter)
	if err != nil {
		h.log.InternalError("schedules.list: list failed", err, "user_id", user.ID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toScheduleListResponse(items))
}

func (h *Handlers) ListPetSchedules(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	petID := chi.URLParam(r, "pet_id")
	items, err := h.Schedules.ListByPet(r.Context(), user.ID, petID)
	if err != nil {
		h.log.InternalError("schedules.list_pet: list failed", err, "user_id", user.ID, "pet_id", petID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toScheduleListResponse(items))
}

func (h *Handlers) GetSchedule(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	scheduleID := chi.URLParam(r, "schedule_id")
	schedule, err := h.Schedules.GetByID(r.Context(), user.ID, scheduleID)
	if err != nil {
		if errors.Is(err, schedulesdomain.ErrScheduleNotFound) {
			writeError(w, http.StatusNotFound, "schedule_not_found", "schedule not found")
			return
		}
		h.log.InternalError("schedules.get: get failed", err, "user_id", user.ID, "schedule_id", scheduleID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, toScheduleResponse(*schedule))
}

// ScheduleDefaults serves the form prefill: next quarter-hour slot with a 1h
// duration for a new schedule, the stored values when schedule_id is given.
func (h *Handlers) ScheduleDefaults(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	scheduleID := strings.TrimSpace(r.URL.Query().Get("schedule_id"))
	defaults, err := h.Schedules.FormDefaults(r.Context(), user.ID, scheduleID)
	if err != nil {
		if errors.Is(err, schedulesdomain.ErrScheduleNotFound) {
			writeError(w, http.StatusNotFound, "schedule_not_found", "schedule not found")
			return
		}
		h.log.InternalError("schedules.defaults: lookup failed", err, "user_id", user.ID, "schedule_id", scheduleID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
		return
	}

	writeJSON(w, http.StatusOK, scheduleDefaultsResponse{
		PetID:         defaults.PetID,
		StartsAt:      defaults.StartsAt,
		DurationHours: defaults.DurationHours,
	})
}

func (h *Handlers) CreateSchedule(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	var req createScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}
	if strings.TrimSpace(req.PetID) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "pet_id is required")
		return
	}
	if strings.TrimSpace(req.Title) == "" {
		writeError(w, http.StatusBadRequest, "invalid_request", "title is required")
		return
	}
	startsAt, err := parseTimeRequired(req.StartsAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "starts_at must be RFC3339")
		return
	}
	endsAt, err := parseTimeRequired(req.EndsAt)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid_request", "ends_at must be RFC3339")
		return
	}

	schedule, err := h.Schedules.Create(r.Context(), schedulesdomain.CreateInput{
		UserID:   user.ID,
		PetID:    req.PetID,
		Title:    req.Title,
		Details:  req.Details,
		StartsAt: startsAt,
		EndsAt:   endsAt,
	})
	if err != nil {
		h.writeScheduleError(w, err, "schedules.create", user.ID, "")
		return
	}

	writeJSON(w, http.StatusCreated, toScheduleResponse(*schedule))
}

func (h *Handlers) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	scheduleID := chi.URLParam(r, "schedule_id")

	var req updateScheduleRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid_json", "invalid json body")
		return
	}

	input := schedulesdomain.UpdateInput{
		ID:      scheduleID,
		UserID:  user.ID,
		PetID:   req.PetID,
		Title:   req.Title,
		Details: req.Details,
	}
	if req.StartsAt != nil {
		startsAt, err := parseTimeRequired(*req.StartsAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "starts_at must be RFC3339")
			return
		}
		input.StartsAt = &startsAt
	}
	if req.EndsAt != nil {
		endsAt, err := parseTimeRequired(*req.EndsAt)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid_request", "ends_at must be RFC3339")
			return
		}
		input.EndsAt = &endsAt
	}

	schedule, err := h.Schedules.Update(r.Context(), input)
	if err != nil {
		h.writeScheduleError(w, err, "schedules.update", user.ID, scheduleID)
		return
	}

	writeJSON(w, http.StatusOK, toScheduleResponse(*schedule))
}

func (h *Handlers) DeleteSchedule(w http.ResponseWriter, r *http.Request) {
	user, ok := middleware.UserFromContext(r.Context())
	if !ok {
		writeError(w, http.StatusUnauthorized, "invalid_token", "invalid token")
		return
	}

	scheduleID := chi.URLParam(r, "schedule_id")
	if err := h.Schedules.Delete(r.Context(), user.ID, scheduleID); err != nil {
		h.writeScheduleError(w, err, "schedules.delete", user.ID, scheduleID)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

func (h *Handlers) writeScheduleError(w http.ResponseWriter, err error, op, userID, scheduleID string) {
	switch {
	case errors.Is(err, schedulesdomain.ErrInvalidInput), errors.Is(err, schedulesdomain.ErrInvalidInterval):
		writeError(w, http.StatusBadRequest, "invalid_request", err.Error())
	case errors.Is(err, schedulesdomain.ErrScheduleConflict):
		h.log.BusinessError(op+": schedule conflict", err, "user_id", userID, "schedule_id", scheduleID)
		writeError(w, http.StatusConflict, "schedule_conflict", "the pet already has a schedule in that time slot")
	case errors.Is(err, schedulesdomain.ErrScheduleNotFound):
		h.log.BusinessError(op+": schedule not found", err, "user_id", userID, "schedule_id", scheduleID)
		writeError(w, http.StatusNotFound, "schedule_not_found", "schedule not found")
	default:
		h.log.InternalError(op+": failed", err, "user_id", userID, "schedule_id", scheduleID)
		writeError(w, http.StatusInternalServerError, "internal_error", "internal error")
	}
}

func toScheduleResponse(s schedulesdomain.Schedule) scheduleResponse {
	return scheduleResponse{
		ID:        s.ID,
		PetID:     s.PetID,
		Title:     s.Title,
		Details:   s.Details,
		StartsAt:  s.StartsAt,
		EndsAt:    s.EndsAt,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func toScheduleListResponse(items []schedulesdomain.Schedule) scheduleListResponse {
	response := make([]scheduleResponse, 0, len(items))
	for _, item := range items {
		response = append(response, toScheduleResponse(item))
	}
	return scheduleListResponse{Items: response}
}
