package handler

import (
	"net/http"

	"pdf-field-editor/internal/domain"

	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// NewRouter creates a new HTTP router with all routes configured
func NewRouter(
	sessionHandler *SessionHandler,
	fieldHandler *FieldHandler,
	saveHandler *SaveHandler,
	allowedOrigins []string,
	logger domain.Logger,
) http.Handler {
	router := mux.NewRouter()
	router.Use(Recoverer(logger), RequestLogger(logger))

	// Health check endpoint
	router.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok", "service": "pdf-field-editor"})
	}).Methods("GET")

	// API prefix
	api := router.PathPrefix("/api/v1").Subrouter()

	// Session routes
	api.HandleFunc("/sessions", sessionHandler.CreateSession).Methods("POST")
	api.HandleFunc("/sessions/{id}", sessionHandler.GetSession).Methods("GET")
	api.HandleFunc("/sessions/{id}", sessionHandler.DeleteSession).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/document", sessionHandler.LoadDocument).Methods("PUT")
	api.HandleFunc("/sessions/{id}/document", sessionHandler.GetDocument).Methods("GET")

	// Field routes
	api.HandleFunc("/sessions/{id}/fields", fieldHandler.AddField).Methods("POST")
	api.HandleFunc("/sessions/{id}/fields/{fieldId}/position", fieldHandler.MoveField).Methods("PATCH")
	api.HandleFunc("/sessions/{id}/fields/{fieldId}/content", fieldHandler.UpdateContent).Methods("PUT")
	api.HandleFunc("/sessions/{id}/fields/{fieldId}/sign", fieldHandler.SignField).Methods("POST")
	api.HandleFunc("/sessions/{id}/fields/{fieldId}", fieldHandler.DeleteField).Methods("DELETE")
	api.HandleFunc("/sessions/{id}/drag", fieldHandler.Drag).Methods("POST")

	// Save
	api.HandleFunc("/sessions/{id}/save", saveHandler.Save).Methods("POST")

	// Configure CORS
	c := cors.New(cors.Options{
		AllowedOrigins: allowedOrigins,
		AllowedMethods: []string{
			http.MethodGet,
			http.MethodPost,
			http.MethodPut,
			http.MethodPatch,
			http.MethodDelete,
			http.MethodOptions,
		},
		AllowedHeaders: []string{
			"Accept",
			"Content-Type",
			"X-CSRF-Token",
		},
		ExposedHeaders: []string{
			"Content-Disposition",
			"X-Fields-Drawn",
		},
		AllowCredentials: true,
		MaxAge:           300, // Maximum value not ignored by any of major browsers
	})

	return c.Handler(router)
}
