package controllers

import (
	"log/slog"
	"net/http"
	"strings"

	"culturalevents/internal/delivery/http/helpers"
	"culturalevents/internal/domain"
)

// ChangeStatusRequest is the request body for POST /events/{eventID}/status.
type ChangeStatusRequest struct {
	Status string `json:"status"`
}

// Validate implements Validator.
func (c ChangeStatusRequest) Validate() []string {
	if strings.TrimSpace(c.Status) == "" {
		return []string{"status is required"}
	}
	return nil
}

// ConfirmationReport is the data payload for GET /events/{eventID}/validation.
type ConfirmationReport struct {
	CanConfirm bool                      `json:"can_confirm"`
	Issues     []*domain.ValidationError `json:"issues"`
}

// ConfirmationReportSuccessResponse is the success response envelope for GET /events/{eventID}/validation (200).
type ConfirmationReportSuccessResponse struct {
	Data  ConfirmationReport `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

type LifecycleController struct {
	Logger  *slog.Logger
	Service domain.LifecycleService
}

func NewLifecycleController(logger *slog.Logger, svc domain.LifecycleService) *LifecycleController {
	return &LifecycleController{
		Logger:  logger,
		Service: svc,
	}
}

// ChangeStatus godoc
// @Summary Change an event's status
// @Description Operators may confirm or cancel a PLANNING event and cancel a CONFIRMED or RUNNING one. Confirmation requires the roles of the event type. RUNNING and FINISHED are set by the scheduler.
// @Tags lifecycle
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param body body ChangeStatusRequest true "Target status"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed (missing roles)"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 409 {object} helpers.APIResponse "error.code: conflict (transition not allowed or concurrent change)"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/status [post]
func (c *LifecycleController) ChangeStatus(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req ChangeStatusRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	target, err := domain.ParseEventStatus(strings.ToUpper(strings.TrimSpace(req.Status)))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	event, err := c.Service.ChangeStatus(r.Context(), eventID, target)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// ConfirmationIssues godoc
// @Summary Check whether an event can be confirmed
// @Description Lists every rule that currently blocks confirmation: missing or excess roles and invalid details.
// @Tags lifecycle
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.ConfirmationReportSuccessResponse "data contains can_confirm and issues"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID}/validation [get]
func (c *LifecycleController) ConfirmationIssues(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	issues, err := c.Service.ConfirmationIssues(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if issues == nil {
		issues = []*domain.ValidationError{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, ConfirmationReport{CanConfirm: len(issues) == 0, Issues: issues})
}
