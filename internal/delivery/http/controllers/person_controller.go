package controllers

import (
	"log/slog"
	"net/http"
	"strings"
	"time"

	"culturalevents/internal/delivery/http/helpers"
	"culturalevents/internal/domain"
)

// PersonRequest is the request body for POST /persons and PUT /persons/{personID}.
type PersonRequest struct {
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	NationalID string `json:"national_id"`
	Phone      string `json:"phone"`
	Email      string `json:"email"`
}

// Validate implements Validator. Field format rules are checked by the domain.
func (p PersonRequest) Validate() []string {
	var errs []string
	if strings.TrimSpace(p.FirstName) == "" {
		errs = append(errs, "first_name is required")
	}
	if strings.TrimSpace(p.LastName) == "" {
		errs = append(errs, "last_name is required")
	}
	if strings.TrimSpace(p.NationalID) == "" {
		errs = append(errs, "national_id is required")
	}
	if strings.TrimSpace(p.Email) == "" {
		errs = append(errs, "email is required")
	}
	return errs
}

func (p PersonRequest) toDomain(now time.Time) *domain.Person {
	return &domain.Person{
		FirstName:  strings.TrimSpace(p.FirstName),
		LastName:   strings.TrimSpace(p.LastName),
		NationalID: strings.TrimSpace(p.NationalID),
		Phone:      strings.TrimSpace(p.Phone),
		Email:      strings.TrimSpace(p.Email),
		CreatedAt:  now,
		UpdatedAt:  now,
	}
}

// PersonSuccessResponse is the success response envelope for endpoints returning one person.
type PersonSuccessResponse struct {
	Data  *domain.Person    `json:"data"`
	Error *helpers.APIError `json:"error"`
}

// ListPersonsResponse is the data payload for GET /persons.
type ListPersonsResponse struct {
	Items      []*domain.Person       `json:"items"`
	Pagination helpers.PaginationMeta `json:"pagination"`
}

// ListPersonsSuccessResponse is the success response envelope for GET /persons (200).
type ListPersonsSuccessResponse struct {
	Data  ListPersonsResponse `json:"data"`
	Error *helpers.APIError   `json:"error"`
}

// EventListSuccessResponse is the success response envelope for endpoints returning a plain event list.
type EventListSuccessResponse struct {
	Data  []*domain.Event   `json:"data"`
	Error *helpers.APIError `json:"error"`
}

type PersonController struct {
	Logger  *slog.Logger
	Service domain.PersonService
}

func NewPersonController(logger *slog.Logger, svc domain.PersonService) *PersonController {
	return &PersonController{
		Logger:  logger,
		Service: svc,
	}
}

// CreatePerson godoc
// @Summary Register a person
// @Description Names are letters only, the national ID 7 or 8 digits and unique.
// @Tags persons
// @Accept json
// @Produce json
// @Param person body PersonRequest true "Person data"
// @Success 201 {object} controllers.PersonSuccessResponse "data contains the created person"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /persons [post]
func (c *PersonController) CreatePerson(w http.ResponseWriter, r *http.Request) {
	var req PersonRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	person := req.toDomain(time.Now())
	if err := c.Service.CreatePerson(r.Context(), person); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusCreated, person)
}

// GetPerson godoc
// @Summary Get a person by ID
// @Tags persons
// @Produce json
// @Param personID path string true "Person ID (UUID)"
// @Success 200 {object} controllers.PersonSuccessResponse "data contains the person"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /persons/{personID} [get]
func (c *PersonController) GetPerson(w http.ResponseWriter, r *http.Request) {
	personID := r.PathValue("personID")
	if personID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing personID")
		return
	}
	person, err := c.Service.GetPerson(r.Context(), personID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, person)
}

// UpdatePerson godoc
// @Summary Replace a person's data
// @Description Keeping one's own national ID is allowed; taking another person's is not.
// @Tags persons
// @Accept json
// @Produce json
// @Param personID path string true "Person ID (UUID)"
// @Param person body PersonRequest true "Person data"
// @Success 200 {object} controllers.PersonSuccessResponse "data contains the updated person"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request or validation_failed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /persons/{personID} [put]
func (c *PersonController) UpdatePerson(w http.ResponseWriter, r *http.Request) {
	personID := r.PathValue("personID")
	if personID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing personID")
		return
	}
	var req PersonRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	person := req.toDomain(time.Now())
	person.ID = personID
	if err := c.Service.UpdatePerson(r.Context(), person); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, person)
}

// DeletePerson godoc
// @Summary Delete a person
// @Description Deletes the person and every participation they hold. Fails while they are the last holder of a required role in a CONFIRMED or RUNNING event.
// @Tags persons
// @Param personID path string true "Person ID (UUID)"
// @Success 204 "No Content"
// @Failure 400 {object} helpers.APIResponse "error.code: validation_failed"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /persons/{personID} [delete]
func (c *PersonController) DeletePerson(w http.ResponseWriter, r *http.Request) {
	personID := r.PathValue("personID")
	if personID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing personID")
		return
	}
	if err := c.Service.DeletePerson(r.Context(), personID); err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// SearchPersons godoc
// @Summary Search persons
// @Description Case-insensitive match on first or last name. Without q every person is listed.
// @Tags persons
// @Produce json
// @Param q query string false "Text to search for"
// @Param page query int false "Page number (default 1)"
// @Param page_size query int false "Page size (default 50, max 200)"
// @Success 200 {object} controllers.ListPersonsSuccessResponse "data contains items and pagination"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /persons [get]
func (c *PersonController) SearchPersons(w http.ResponseWriter, r *http.Request) {
	persons, err := c.Service.SearchPersons(r.Context(), r.URL.Query().Get("q"))
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	items, meta := helpers.PageOf(persons, helpers.ParsePagination(r))
	helpers.WriteJSONSuccess(w, http.StatusOK, ListPersonsResponse{Items: items, Pagination: meta})
}

// EventsOf godoc
// @Summary List a person's events
// @Description Events the person takes part in, in any role.
// @Tags persons
// @Produce json
// @Param personID path string true "Person ID (UUID)"
// @Success 200 {object} controllers.EventListSuccessResponse "data contains the events"
// @Failure 404 {object} helpers.APIResponse "error.code: not_found"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /persons/{personID}/events [get]
func (c *PersonController) EventsOf(w http.ResponseWriter, r *http.Request) {
	personID := r.PathValue("personID")
	if personID == "" {
		helpers.WriteJSONError(w, http.StatusBadRequest, helpers.ErrCodeBadRequest, "missing personID")
		return
	}
	events, err := c.Service.EventsOf(r.Context(), personID)
	if err != nil {
		helpers.WriteServiceError(w, r, c.Logger, err)
		return
	}
	if events == nil {
		events = []*domain.Event{}
	}
	helpers.WriteJSONSuccess(w, http.StatusOK, events)
}
