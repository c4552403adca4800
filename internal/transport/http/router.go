package http

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/sirupsen/logrus"
	"playstyle-quiz-service/internal/config"
)

// NewRouter mounts the REST API and the dashboard websocket.
func NewRouter(api *API, ws *WSHandler) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", api.Health)
	r.Get("/ws/dashboard", ws.ServeWS)

	r.Route("/api", func(r chi.Router) {
		r.Get("/questions", api.Questions)
		r.Get("/profiles/{type}", api.Profile)
		r.Get("/compatibility", api.Compatibility)
		r.Post("/score", api.Score)

		r.Route("/stats", func(r chi.Router) {
			r.Get("/", api.Stats)
			r.Post("/submit", api.Submit)
			r.Get("/types/{type}", api.TypeStats)
			r.Get("/recent", api.RecentResults)
		})
		r.Get("/dashboard", api.Dashboard)

		r.Route("/sessions", func(r chi.Router) {
			r.Post("/", api.StartSession)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", api.GetSession)
				r.Put("/answers", api.AnswerSession)
				r.Post("/navigate", api.NavigateSession)
				r.Post("/complete", api.CompleteSession)
				r.Post("/reset", api.ResetSession)
				r.Post("/start", api.RestartSession)
			})
		})
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		config.WithContext(r.Context()).WithFields(logrus.Fields{
			"method":   r.Method,
			"path":     r.URL.Path,
			"status":   ww.Status(),
			"duration": time.Since(start).String(),
		}).Debug("request served")
	})
}
