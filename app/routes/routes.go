package routes

import (
	"log/slog"
	"net/http"

	"postsapi/app/controllers"
	"postsapi/app/middleware"
	"postsapi/app/repositories"
	"postsapi/app/services"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Options tunes the HTTP surface.
type Options struct {
	// MaxBodyBytes caps request bodies on the API routes.
	MaxBodyBytes int64
}

// NewRouter defines the application's routes over store.
//
// The API routes are registered on the root router with their full paths.
// mux only reports a method mismatch through the router that owns the
// route, so a subrouter would turn every 405 into a 404.
func NewRouter(store *repositories.Store, logger *slog.Logger, opts Options) *mux.Router {
	router := mux.NewRouter()
	// Use middleware only runs on matched routes, so the fallbacks are
	// instrumented directly.
	router.NotFoundHandler = middleware.Metrics(http.HandlerFunc(controllers.NotFound))
	router.MethodNotAllowedHandler = middleware.Metrics(http.HandlerFunc(controllers.MethodNotAllowed))

	// Apply global middleware
	router.Use(middleware.Metrics)

	postService := services.NewPostService(store.Posts)
	commentService := services.NewCommentService(store.Comments, store.Posts)
	postController := controllers.NewPostController(postService, logger)
	commentController := controllers.NewCommentController(commentService, logger)

	router.HandleFunc("/", controllers.Home).Methods("GET")
	router.Handle("/metrics", promhttp.Handler()).Methods("GET")

	jsonBody := middleware.JSONBody(opts.MaxBodyBytes)
	api := func(h http.HandlerFunc) http.Handler {
		return middleware.ContentTypeJSON(jsonBody(h))
	}

	// Posts API endpoints
	router.Handle("/api/posts", api(postController.Index)).Methods("GET")
	router.Handle("/api/posts", api(postController.Create)).Methods("POST")
	router.Handle("/api/posts/{id}", api(postController.Show)).Methods("GET")
	router.Handle("/api/posts/{id}", api(postController.Update)).Methods("PUT")
	router.Handle("/api/posts/{id}", api(postController.Delete)).Methods("DELETE")

	// Comments API endpoints
	router.Handle("/api/posts/{id}/comments", api(commentController.Index)).Methods("GET")
	router.Handle("/api/posts/{id}/comments", api(commentController.Create)).Methods("POST")

	return router
}

// SetupRoutes returns the complete HTTP handler: the router wrapped in the
// request id, request logging, panic recovery and trailing slash middleware.
func SetupRoutes(store *repositories.Store, logger *slog.Logger, opts Options) http.Handler {
	router := NewRouter(store, logger, opts)

	var handler http.Handler = router
	handler = middleware.TrimSlash(handler)
	handler = middleware.Recoverer(logger)(handler)
	handler = middleware.Logger(logger)(handler)
	handler = middleware.RequestID(handler)
	return handler
}
