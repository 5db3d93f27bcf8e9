package main

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/phrazzld/tasklog-api/internal/api"
	apiMiddleware "github.com/phrazzld/tasklog-api/internal/api/middleware"
)

// taskIDPattern restricts {id} to digits; any other path segment is a 404.
const taskIDPattern = "/{" + api.TaskIDParam + ":[0-9]+}"

// setupRouter creates and configures the application router with all routes and middleware.
func (app *application) setupRouter() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(apiMiddleware.TraceMiddleware(app.logger))
	if app.httpMetrics != nil {
		r.Use(app.httpMetrics.Middleware)
	}

	authHandler := api.NewAuthHandler(app.tokenIssuer)
	authMiddleware := apiMiddleware.NewAuthMiddleware(app.jwtService)
	taskHandler := api.NewTaskHandler(app.taskService, app.logger)

	r.Post("/token/", authHandler.Token)

	r.Route("/tasks", func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)

		r.Get("/", taskHandler.ListTasks)
		r.Post("/create/", taskHandler.CreateTask)
		r.Get(taskIDPattern+"/", taskHandler.GetTask)
		r.Patch(taskIDPattern+"/update/", taskHandler.UpdateTask)
		r.Delete(taskIDPattern+"/delete/", taskHandler.DeleteTask)
	})

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		if _, err := w.Write([]byte("OK")); err != nil {
			app.logger.Error("Failed to write health check response", "error", err)
		}
	})

	if app.registry != nil {
		r.Handle("/metrics", promhttp.HandlerFor(app.registry, promhttp.HandlerOpts{}))
	}

	return r
}
