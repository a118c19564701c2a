package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"culturalevents/internal/delivery/http/helpers"
	"culturalevents/internal/domain"
)

// AddParticipationRequest is the request body for POST /events/{eventID}/participations.
type AddParticipationRequest struct {
	PersonID string `json:"person_id"`
	Role     string `json:"role"`
}

// Validate implements Validator.
func (a AddParticipationRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(a.PersonID) == "" {
		errs = append(errs, "person_id is required")
	}
	if strings.TrimSpace(a.Role) == "" {
		errs = append(errs, "role is required")
	}
	return errs
}

// ParticipationSuccessResponse is the success response envelope for POST /events/{eventID}/participations (201).
type ParticipationSuccessResponse struct {
	Data  *domain.Participation `json:"data"`
	Error *helpers.APIError     `json:"error"`
}

// ParticipantsResponse is the data payload for GET /events/{eventID}/participations.
type ParticipantsResponse struct {
	Participants []*domain.Participant `json:"participants"`
	Roles        domain.RoleCounts     `json:"roles"`
}

// ParticipantsSuccessResponse is the success response envelope for GET /events/{eventID}/participations (200).
type ParticipantsSuccessResponse struct {
	Data  ParticipantsResponse `json:"data"`
	Error *helpers.APIError    `json:"error"`
}

type ParticipationController struct {
	Logger  *slog.Logger
	Service domain.ParticipationService
}

func NewParticipationController(logger *slog.Logger, svc domain.ParticipationService) *ParticipationController {
	return &ParticipationController{
		Logger:  logger,
		Service: svc,
	}
}

// AddParticipation godoc
// @Summary Link a person to an event with a role
// @Description PARTICIPANT requires open registration. Role limits of the event type apply. Finished or cancelled events are closed.
// @Tags participations
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param body body AddParticipationRequest true "Person and role"
// @Success 201 {object} controllers.ParticipationSuccessResponse "data contains the new participation"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (duplicate or registration closed)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participations [post]
func (c *ParticipationController) AddParticipation(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req AddParticipationRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	role := domain.Role(strings.ToUpper(strings.TrimSpace(req.Role)))
	p, err := c.Service.AddParticipation(r.Context(), eventID, strings.TrimSpace(req.PersonID), role)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, p)
}

// RemoveParticipation godoc
// @Summary Unlink a person from an event
// @Description Removes one role, or every role of the person when role is omitted. The last holder of a required role cannot leave a CONFIRMED or RUNNING event.
// @Tags participations
// @Param eventID path string true "Event ID (UUID)"
// @Param personID path string true "Person ID (UUID)"
// @Param role query string false "Role to remove"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participations/{personID} [delete]
func (c *ParticipationController) RemoveParticipation(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	personID := r.PathValue("personID")
	if eventID == "" || personID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID or personID")
		return
	}
	var role *domain.Role
	if s := strings.TrimSpace(r.URL.Query().Get("role")); s != "" {
		parsed, err := domain.ParseRole(strings.ToUpper(s))
		if err != nil {
			helpers.WriteServiceError(w, r, c.Logger, err)
			return
		}
		role = &parsed
	}
	if err := c.Service.RemoveParticipation(r.Context(), eventID, personID, role); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListParticipants godoc
// @Summary List an event's participants
// @Description Returns every participation with its person, plus the role counts.
// @Tags participations
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ParticipantsSuccessResponse "data contains participants and roles"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/participations [get]
func (c *ParticipationController) ListParticipants(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	participants, err := c.Service.ParticipantsOf(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	roles := make(domain.RoleCounts)
	for _, p := range participants {
		roles[p.Role]++
	}
	if participants == nil {
		participants = []*domain.Participant{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ParticipantsResponse{Participants: participants, Roles: roles})
}
