package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/cors"
	"go.uber.org/zap"
)

// requestLogger emits one structured log line per request.
func requestLogger(log *zap.SugaredLogger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			next.ServeHTTP(ww, r)
			log.Infow("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration_ms", time.Since(start).Milliseconds(),
			)
		})
	}
}

func NewRouter(apiHandler *APIHandler, allowedOrigins []string) http.Handler {
	r := chi.NewRouter()

	r.Use(requestLogger(apiHandler.log))
	r.Use(middleware.Recoverer)    // Recover from panics
	r.Use(middleware.StripSlashes) // Ensure consistent path handling

	r.Route("/api", func(r chi.Router) {
		// Public routes
		r.Post("/auth/signup", apiHandler.SignupHandler)
		r.Post("/auth/login", apiHandler.LoginHandler)
		r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(`{"status":"ok"}`))
		})

		// User-authenticated routes
		r.Group(func(r chi.Router) {
			r.Use(apiHandler.JWTAuthMiddleware)

			// Generation
			r.Post("/generations", apiHandler.GenerateHandler)

			// Proposal review session
			r.Get("/reviews", apiHandler.GetReviewHandler)
			r.Delete("/reviews", apiHandler.ResetReviewHandler)
			r.Put("/reviews/proposals/{proposalID}", apiHandler.UpdateProposalHandler)
			r.Post("/reviews/proposals/{proposalID}/accept", apiHandler.AcceptProposalHandler)
			r.Delete("/reviews/proposals/{proposalID}", apiHandler.RejectProposalHandler)

			// Flashcards
			r.Post("/flashcards", apiHandler.CreateFlashcardHandler)
			r.Get("/flashcards", apiHandler.ListFlashcardsHandler)
			r.Get("/flashcards/{flashcardID}", apiHandler.GetFlashcardHandler)
			r.Put("/flashcards/{flashcardID}", apiHandler.UpdateFlashcardHandler)
			r.Delete("/flashcards/{flashcardID}", apiHandler.DeleteFlashcardHandler)

			// Stats
			r.Get("/stats", apiHandler.StatsHandler)
		})
	})

	return cors.New(cors.Options{
		AllowedOrigins:   allowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type", "Authorization", "X-Requested-With", "Accept", "Origin"},
		AllowCredentials: true,
		MaxAge:           86400,
	}).Handler(r)
}
