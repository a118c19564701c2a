package controllers

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"culturalevents/internal/delivery/http/helpers"
	"culturalevents/internal/domain"
)

// SweepResponse is the data payload for POST /scheduler/sweep.
type SweepResponse struct {
	Changed []*domain.Event `json:"changed"`
}

// SweepSuccessResponse is the success response envelope for POST /scheduler/sweep (200).
type SweepSuccessResponse struct {
	Data  SweepResponse     `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// CalendarController serves the day and month views. Both bring statuses up to date first.
type CalendarController struct {
	Logger    *slog.Logger
	Events    domain.EventService
	Scheduler domain.SchedulerService
}

func NewCalendarController(logger *slog.Logger, events domain.EventService, scheduler domain.SchedulerService) *CalendarController {
	return &CalendarController{
		Logger:    logger,
		Events:    events,
		Scheduler: scheduler,
	}
}

// refresh runs the sweep. A failed sweep still lets the calendar render.
func (c *CalendarController) refresh(ctx context.Context) {
	if _, err := c.Scheduler.RunAutoTransitionSweep(ctx); err != nil {
		c.Logger.WarnContext(ctx, "calendar sweep failed", "err", err)
	}
}

// Day godoc
// @Summary Events on a day
// @Description Events whose window contains the date, after running the status sweep.
// @Tags calendar
// @Produce json
// @Param date query string true "Day (YYYY-MM-DD)"
// @Success 200 {object} controllers.EventListSuccessResponse "data contains the events"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /calendar/day [get]
func (c *CalendarController) Day(w http.ResponseWriter, r *http.Request) {
	day, err := helpers.QueryDate(r, "date")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if day.IsZero() {
		helpers.WriteFieldError(w, http.StatusBadRequest, helpers.ErrCodeValidationFailed, "date", "date is required")
		return
	}
	c.refresh(r.Context())
	events, err := c.Events.EventsOnDay(r.Context(), day)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Month godoc
// @Summary Events in a month
// @Description Events overlapping any day of the month, after running the status sweep.
// @Tags calendar
// @Produce json
// @Param year query int true "Year"
// @Param month query int true "Month (1-12)"
// @Success 200 {object} controllers.EventListSuccessResponse "data contains the events"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /calendar/month [get]
func (c *CalendarController) Month(w http.ResponseWriter, r *http.Request) {
	year, ok, err := helpers.QueryInt(r, "year")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if !ok {
		helpers.WriteFieldError(w, http.StatusBadRequest, helpers.ErrCodeValidationFailed, "year", "year is required")
		return
	}
	month, ok, err := helpers.QueryInt(r, "month")
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if !ok {
		helpers.WriteFieldError(w, http.StatusBadRequest, helpers.ErrCodeValidationFailed, "month", "month is required")
		return
	}
	c.refresh(r.Context())
	events, err := c.Events.EventsInMonth(r.Context(), year, time.Month(month))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}

// Sweep godoc
// @Summary Run the status sweep
// @Description Moves confirmed events in progress to RUNNING and past events to FINISHED. Returns the events that changed.
// @Tags scheduler
// @Produce json
// @Success 200 {object} controllers.SweepSuccessResponse "data contains the changed events"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /scheduler/sweep [post]
func (c *CalendarController) Sweep(w http.ResponseWriter, r *http.Request) {
	changed, err := c.Scheduler.RunAutoTransitionSweep(r.Context())
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if changed == nil {
		changed = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, SweepResponse{Changed: changed})
}
