package httpserver

import (
	"net/http"
	"time"

	"bokumono-go/internal/config"
	"bokumono-go/internal/transport/httpserver/handler"
	authmw "bokumono-go/internal/transport/httpserver/middleware"
	"bokumono-go/pkg/logger"
	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
)

func NewRouter(cfg config.Config, handlers *handler.Handlers, profiles authmw.ProfileSaver, log logger.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Logger)
	r.Use(chimw.Recoverer)
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(authmw.NewCORS(cfg.AllowedOrigins))

	r.Route("/api", func(r chi.Router) {
		r.Get("/health", handlers.Health)

		auth := authmw.NewSupabaseAuth(cfg.Supabase, profiles, log)
		r.Group(func(r chi.Router) {
			r.Use(auth.Middleware)

			r.Get("/auth/me", handlers.AuthMe)

			r.Get("/pets", handlers.ListPets)
			r.Post("/pets", handlers.CreatePet)
			r.Get("/pets/{pet_id}", handlers.GetPet)
			r.Patch("/pets/{pet_id}", handlers.UpdatePet)
			r.Delete("/pets/{pet_id}", handlers.DeletePet)
			r.Get("/pets/{pet_id}/schedules", handlers.ListPetSchedules)

			r.Get("/schedules", handlers.ListSchedules)
			r.Post("/schedules", handlers.CreateSchedule)
			r.Get("/schedules/defaults", handlers.ScheduleDefaults)
			r.Get("/schedules/{schedule_id}", handlers.GetSchedule)
			r.Patch("/schedules/{schedule_id}", handlers.UpdateSchedule)
			r.Delete("/schedules/{schedule_id}", handlers.DeleteSchedule)

			r.Get("/profile", handlers.GetProfile)
			r.Put("/profile", handlers.SaveProfile)
		})
	})

	return r
}
