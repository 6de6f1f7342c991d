package routes

import (
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger"

	"github.com/r-campos/wildbrowl/handlers"
	"github.com/r-campos/wildbrowl/middleware"
)

func SetupRoutes(
	router *chi.Mux,
	auth *middleware.AdminAuth,
	participantHandler *handlers.ParticipantHandler,
	bracketHandler *handlers.BracketHandler,
	matchHandler *handlers.MatchHandler,
	statsHandler *handlers.StatsHandler,
	webSocketHandler *handlers.WebSocketHandler,
) {
	router.Use(chiMiddleware.RequestID)
	router.Use(chiMiddleware.RealIP)
	router.Use(chiMiddleware.Logger)
	router.Use(chiMiddleware.Recoverer)
	router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-Api-Key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	router.Route("/participants", func(r chi.Router) {
		r.Get("/", participantHandler.List)
		r.Get("/{id}", participantHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Post("/", participantHandler.Register)
			r.Patch("/{id}", participantHandler.Update)
			r.Post("/{id}/payment", participantHandler.ConfirmPayment)
			r.Post("/{id}/eliminate", participantHandler.Eliminate)
			r.Post("/{id}/photo", participantHandler.UploadPhoto)
			r.Delete("/{id}", participantHandler.Delete)
		})
	})

	router.Route("/brackets", func(r chi.Router) {
		r.Get("/", bracketHandler.GetBracket)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Post("/generate", bracketHandler.Generate)
		})
	})

	router.Route("/matches", func(r chi.Router) {
		r.Get("/", matchHandler.List)
		r.Get("/{id}", matchHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Put("/{id}/result", matchHandler.UpdateResult)
		})
	})

	router.Route("/stats", func(r chi.Router) {
		r.Get("/", statsHandler.Get)

		r.Group(func(r chi.Router) {
			r.Use(auth.RequireAdmin)
			r.Post("/", statsHandler.Write)
		})
	})

	router.Get("/ws/brackets", webSocketHandler.ServeWs)

	router.Get("/swagger/*", httpSwagger.WrapHandler)
}
