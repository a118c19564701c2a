package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"culturalevents/internal/delivery/http/helpers"
	"culturalevents/internal/domain"
)

// CreateEventRequest is the request body for POST /events. Only the details object matching kind may be set.
type CreateEventRequest struct {
	Kind         string                    `json:"kind"`
	Name         string                    `json:"name"`
	StartDate    domain.Date               `json:"start_date"`
	DurationDays int                       `json:"duration_days"`
	Screening    *domain.ScreeningDetails  `json:"screening,omitempty"`
	Workshop     *domain.WorkshopDetails   `json:"workshop,omitempty"`
	Concert      *domain.ConcertDetails    `json:"concert,omitempty"`
	Exhibition   *domain.ExhibitionDetails `json:"exhibition,omitempty"`
	Fair         *domain.FairDetails       `json:"fair,omitempty"`
}

// Validate implements Validator. Returns error messages for required fields.
func (c CreateEventRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(c.Kind) == "" {
		errs = append(errs, "kind is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		errs = append(errs, "name is required")
	}
	if c.StartDate.IsZero() {
		errs = append(errs, "start_date is required")
	}
	return errs
}

// EventSuccessResponse is the success response envelope for endpoints returning one event.
type EventSuccessResponse struct {
	Data  *domain.Event     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type EventController struct {
	Logger  *slog.Logger
	Service domain.EventService
}

func NewEventController(logger *slog.Logger, svc domain.EventService) *EventController {
	return &EventController{
		Logger:  logger,
		Service: svc,
	}
}

// CreateEvent godoc
// @Summary Create a new event
// @Description Creates an event in PLANNING status with registration closed. The details object must match the kind.
// @Tags events
// @Accept json
// @Produce json
// @Param event body CreateEventRequest true "Event data"
// @Success 201 {object} controllers.EventSuccessResponse "data contains the created event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [post]
func (c *EventController) CreateEvent(w http.ResponseWriter, r *http.Request) {
	var req CreateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	kind, err := domain.ParseEventKind(strings.ToUpper(strings.TrimSpace(req.Kind)))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	now := time.Now()
	event := domain.NewEvent(kind, req.Name, req.StartDate, req.DurationDays, now, now)
	event.Screening = req.Screening
	event.Workshop = req.Workshop
	event.Concert = req.Concert
	event.Exhibition = req.Exhibition
	event.Fair = req.Fair
	if err := c.Service.CreateEvent(r.Context(), event); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, event)
}

// GetEventResponse is the response body for GET /events/{eventID}.
type GetEventResponse struct {
	Event        *domain.Event         `json:"event"`
	Description  string                `json:"description"`
	Participants []*domain.Participant `json:"participants"`
}

// GetEventSuccessResponse is the success response envelope for GET /events/{eventID} (200).
type GetEventSuccessResponse struct {
	Data  GetEventResponse  `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// GetEvent godoc
// @Summary Get an event by ID
// @Description Returns the event, its one-line description, and every participation with the person it refers to.
// @Tags events
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Success 200 {object} controllers.GetEventSuccessResponse "data contains event, description and participants"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [get]
func (c *EventController) GetEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	event, participants, err := c.Service.GetEvent(r.Context(), eventID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if participants == nil {
		participants = []*domain.Participant{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, GetEventResponse{
		Event:        event,
		Description:  event.Describe(),
		Participants: participants,
	})
}

// UpdateEventRequest is the request body for PUT /events/{eventID}. All fields optional; omitted fields are unchanged.
// Kind and status cannot be changed here.
type UpdateEventRequest struct {
	Name         *string                   `json:"name"`
	StartDate    *domain.Date              `json:"start_date"`
	DurationDays *int                      `json:"duration_days"`
	Screening    *domain.ScreeningDetails  `json:"screening,omitempty"`
	Workshop     *domain.WorkshopDetails   `json:"workshop,omitempty"`
	Concert      *domain.ConcertDetails    `json:"concert,omitempty"`
	Exhibition   *domain.ExhibitionDetails `json:"exhibition,omitempty"`
	Fair         *domain.FairDetails       `json:"fair,omitempty"`
}

// Validate implements Validator.
func (u UpdateEventRequest) Validate() []string {
	if u.StartDate != nil && u.StartDate.IsZero() {
		return []string{"start_date must not be null"}
	}
	return nil
}

func (u UpdateEventRequest) toDomain() domain.EventUpdate {
	return domain.EventUpdate{
		Name:         u.Name,
		StartDate:    u.StartDate,
		DurationDays: u.DurationDays,
		Screening:    u.Screening,
		Workshop:     u.Workshop,
		Concert:      u.Concert,
		Exhibition:   u.Exhibition,
		Fair:         u.Fair,
	}
}

// UpdateEvent godoc
// @Summary Update event details
// @Description Updates name, dates and details while the event is PLANNING or CONFIRMED. A changed start date may not be in the past.
// @Tags events
// @Accept json
// @Produce json
// @Param eventID path string true "Event ID (UUID)"
// @Param body body UpdateEventRequest true "Fields to update (all optional)"
// @Success 200 {object} controllers.EventSuccessResponse "data contains the updated event"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [put]
func (c *EventController) UpdateEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	var req UpdateEventRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	event, err := c.Service.UpdateEvent(r.Context(), eventID, req.toDomain())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, event)
}

// DeleteEvent godoc
// @Summary Delete an event
// @Description Deletes an event and every participation on it. Persons are kept.
// @Tags events
// @Param eventID path string true "Event ID (UUID)"
// @Success 204 "No Content"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events/{eventID} [delete]
func (c *EventController) DeleteEvent(w http.ResponseWriter, r *http.Request) {
	eventID := r.PathValue("eventID")
	if eventID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing eventID")
		return
	}
	if err := c.Service.DeleteEvent(r.Context(), eventID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// ListEventsResponse is the data payload for GET /events.
type ListEventsResponse struct {
	Items      []*domain.Event        `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListEventsSuccessResponse is the success response envelope for GET /events (200).
type ListEventsSuccessResponse struct {
	Data  ListEventsResponse `json:"data"`
	Error *helpers.APIError  `json:"error"`
}

// ListEvents godoc
// @Summary List events
// @Description Lists events ordered by start date then name. Filters combine with AND; from/to select events overlapping the range.
// @Tags events
// @Produce json
// @Param name query string false "Case-insensitive substring of the event name"
// @Param status query string false "PLANNING, CONFIRMED, RUNNING, FINISHED or CANCELLED"
// @Param from query string false "Range start (YYYY-MM-DD)"
// @Param to query string false "Range end (YYYY-MM-DD)"
// @Param participant_id query string false "Only events this person takes part in"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 50, max 200)"
// @Success 200 {object} controllers.ListEventsSuccessResponse "data contains items and pagination"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /events [get]
func (c *EventController) ListEvents(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := domain.EventFilter{
		Name:          q.Get("name"),
		Status:        domain.EventStatus(strings.ToUpper(strings.TrimSpace(q.Get("status")))),
		ParticipantID: strings.TrimSpace(q.Get("participant_id")),
	}
	var err error
	if filter.From, err = helpers.QueryDate(r, "from"); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if filter.To, err = helpers.QueryDate(r, "to"); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	events, err := c.Service.ListEvents(r.Context(), filter)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	items, meta := helpers.PageOf(events, helpers.ParsePagination(r))
	helpers.WriteJSONSuccess(w, http.StatusOK, ListEventsResponse{Items: items, Pagination: meta})
}
