// Package httpapi exposes the sync controller as a JSON HTTP API.
package httpapi

import (
	"net/http"

	"github.com/gorilla/mux"
)

// RegisterRoutes sets up all routes for the API.
func RegisterRoutes(router *mux.Router, h *Handler) {
	router.HandleFunc("/tasks", h.ListTasks).Methods(http.MethodGet)
	router.HandleFunc("/tasks", h.CreateTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{index}/complete", h.CompleteTask).Methods(http.MethodPost)
	router.HandleFunc("/tasks/{index}", h.DeleteTask).Methods(http.MethodDelete)
	router.HandleFunc("/session", h.Session).Methods(http.MethodGet)
	router.HandleFunc("/session", h.Connect).Methods(http.MethodPost)
	router.HandleFunc("/error", h.DismissError).Methods(http.MethodDelete)
}

// NewRouter returns a router with every API route registered
func NewRouter(h *Handler) *mux.Router {
	router := mux.NewRouter()
	RegisterRoutes(router, h)
	return router
}
