package http

import (
	"log/slog"
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"culturalevents/internal/delivery/http/controllers"
	"culturalevents/internal/delivery/http/helpers"
	"culturalevents/internal/delivery/http/middleware"
)

// Controllers groups every controller the router dispatches to.
type Controllers struct {
	Events         *controllers.EventController
	Lifecycle      *controllers.LifecycleController
	Participations *controllers.ParticipationController
	Persons        *controllers.PersonController
	Calendar       *controllers.CalendarController
}

// NewRouter initializes the HTTP router with all application routes
func NewRouter(c Controllers) *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		helpers.WriteJSONSuccess(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Events
	mux.HandleFunc("POST /events", c.Events.CreateEvent)
	mux.HandleFunc("GET /events", c.Events.ListEvents)
	mux.HandleFunc("GET /events/{eventID}", c.Events.GetEvent)
	mux.HandleFunc("PUT /events/{eventID}", c.Events.UpdateEvent)
	mux.HandleFunc("DELETE /events/{eventID}", c.Events.DeleteEvent)

	// Lifecycle
	mux.HandleFunc("POST /events/{eventID}/status", c.Lifecycle.ChangeStatus)
	mux.HandleFunc("GET /events/{eventID}/validation", c.Lifecycle.ConfirmationIssues)

	// Participations
	mux.HandleFunc("GET /events/{eventID}/participations", c.Participations.ListParticipants)
	mux.HandleFunc("POST /events/{eventID}/participations", c.Participations.AddParticipation)
	mux.HandleFunc("DELETE /events/{eventID}/participations/{personID}", c.Participations.RemoveParticipation)

	// Persons
	mux.HandleFunc("POST /persons", c.Persons.CreatePerson)
	mux.HandleFunc("GET /persons", c.Persons.SearchPersons)
	mux.HandleFunc("GET /persons/{personID}", c.Persons.GetPerson)
	mux.HandleFunc("PUT /persons/{personID}", c.Persons.UpdatePerson)
	mux.HandleFunc("DELETE /persons/{personID}", c.Persons.DeletePerson)
	mux.HandleFunc("GET /persons/{personID}/events", c.Persons.EventsOf)

	// Calendar and scheduler
	mux.HandleFunc("GET /calendar/day", c.Calendar.Day)
	mux.HandleFunc("GET /calendar/month", c.Calendar.Month)
	mux.HandleFunc("POST /scheduler/sweep", c.Calendar.Sweep)

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}

// NewHandler wraps the router with request logging and CORS.
func NewHandler(logger *slog.Logger, allowedOrigins []string, c Controllers) http.Handler {
	return middleware.LoggingMiddleware(logger, middleware.CORS(allowedOrigins, NewRouter(c)))
}
