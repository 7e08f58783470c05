package http

import (
	"net/http"

	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"crm-backend/internal/handlers"
	"crm-backend/internal/middleware"
)

func NewRouter(
	authHandler *handlers.AuthHandler,
	userHandler *handlers.UserHandler,
	leadHandler *handlers.LeadHandler,
	targetHandler *handlers.TargetHandler,
	eventHandler *handlers.EventHandler,
	taskHandler *handlers.TaskHandler,
	managementHandler *handlers.ManagementHandler,
	healthHandler *handlers.HealthHandler,
	authMiddleware *middleware.AuthMiddleware,
) *mux.Router {
	r := mux.NewRouter()

	// Public API routes - Authentication
	r.HandleFunc("/auth/login", authHandler.Login).Methods("POST")

	// Protected API routes - Session
	authAPI := r.PathPrefix("/auth").Subrouter()
	authAPI.Use(authMiddleware.Authenticate)
	authAPI.HandleFunc("/me", authHandler.Me).Methods("GET")
	authAPI.HandleFunc("/logout", authHandler.Logout).Methods("POST")

	// Protected API routes - Users (mutations are admin only)
	usersAPI := r.PathPrefix("/users").Subrouter()
	usersAPI.Use(authMiddleware.Authenticate)
	usersAPI.HandleFunc("", userHandler.ListUsers).Methods("GET")
	usersAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.CreateUser)).ServeHTTP).Methods("POST")
	usersAPI.HandleFunc("/{id}", userHandler.GetUser).Methods("GET")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.UpdateUser)).ServeHTTP).Methods("PUT")
	usersAPI.HandleFunc("/{id}", authMiddleware.RequireAdmin(http.HandlerFunc(userHandler.DeleteUser)).ServeHTTP).Methods("DELETE")

	// Protected API routes - Salespeople (assignment dropdowns)
	salespeopleAPI := r.PathPrefix("/salespeople").Subrouter()
	salespeopleAPI.Use(authMiddleware.Authenticate)
	salespeopleAPI.HandleFunc("", userHandler.ListSalespeople).Methods("GET")

	// Protected API routes - Leads
	leadsAPI := r.PathPrefix("/leads").Subrouter()
	leadsAPI.Use(authMiddleware.Authenticate)
	leadsAPI.HandleFunc("", leadHandler.ListLeads).Methods("GET")
	leadsAPI.HandleFunc("", leadHandler.CreateLead).Methods("POST")
	leadsAPI.HandleFunc("/bulk-delete", leadHandler.BulkDelete).Methods("POST")
	leadsAPI.HandleFunc("/bulk-assign", authMiddleware.RequireAdmin(http.HandlerFunc(leadHandler.BulkAssign)).ServeHTTP).Methods("POST")
	leadsAPI.HandleFunc("/{id}", leadHandler.GetLead).Methods("GET")
	leadsAPI.HandleFunc("/{id}", leadHandler.UpdateLead).Methods("PUT")
	leadsAPI.HandleFunc("/{id}", leadHandler.DeleteLead).Methods("DELETE")

	// Protected API routes - Targets (upsert is admin only)
	targetsAPI := r.PathPrefix("/targets").Subrouter()
	targetsAPI.Use(authMiddleware.Authenticate)
	targetsAPI.HandleFunc("", targetHandler.ListTargets).Methods("GET")
	targetsAPI.HandleFunc("", authMiddleware.RequireAdmin(http.HandlerFunc(targetHandler.UpsertTarget)).ServeHTTP).Methods("POST")
	targetsAPI.HandleFunc("/{user_id}", targetHandler.GetTarget).Methods("GET")

	// Protected API routes - Calendar Events
	eventsAPI := r.PathPrefix("/events").Subrouter()
	eventsAPI.Use(authMiddleware.Authenticate)
	eventsAPI.HandleFunc("", eventHandler.ListEvents).Methods("GET")
	eventsAPI.HandleFunc("", eventHandler.CreateEvent).Methods("POST")
	eventsAPI.HandleFunc("/{id}", eventHandler.UpdateEvent).Methods("PUT")
	eventsAPI.HandleFunc("/{id}", eventHandler.DeleteEvent).Methods("DELETE")

	// Protected API routes - Tasks
	tasksAPI := r.PathPrefix("/tasks").Subrouter()
	tasksAPI.Use(authMiddleware.Authenticate)
	tasksAPI.HandleFunc("", taskHandler.ListTasks).Methods("GET")
	tasksAPI.HandleFunc("", taskHandler.CreateTask).Methods("POST")
	tasksAPI.HandleFunc("/{id}", taskHandler.UpdateTask).Methods("PUT")
	tasksAPI.HandleFunc("/{id}", taskHandler.DeleteTask).Methods("DELETE")

	// Protected API routes - Management reference lists (mutations are admin only)
	managementAPI := r.PathPrefix("/management").Subrouter()
	managementAPI.Use(authMiddleware.Authenticate)
	managementAPI.HandleFunc("/{item_type}", managementHandler.ListItems).Methods("GET")
	managementAPI.HandleFunc("/{item_type}", authMiddleware.RequireAdmin(http.HandlerFunc(managementHandler.CreateItem)).ServeHTTP).Methods("POST")
	managementAPI.HandleFunc("/{item_type}/{item_id}", authMiddleware.RequireAdmin(http.HandlerFunc(managementHandler.UpdateItem)).ServeHTTP).Methods("PUT")
	managementAPI.HandleFunc("/{item_type}/{item_id}", authMiddleware.RequireAdmin(http.HandlerFunc(managementHandler.DeleteItem)).ServeHTTP).Methods("DELETE")

	// Health endpoints (no auth required - for Kubernetes probes)
	r.HandleFunc("/health", healthHandler.BasicHealth).Methods("GET")
	r.HandleFunc("/health/ready", healthHandler.ReadinessHealth).Methods("GET")

	// Metrics endpoint (Prometheus format)
	r.Handle("/metrics", promhttp.Handler())

	return r
}
