package http

import (
	"net/http"

	"clinical-office-api/internal/delivery/http/handler"
	"clinical-office-api/internal/delivery/http/middleware"

	"github.com/gorilla/mux"
)

type Router struct {
	router              *mux.Router
	authHandler         *handler.AuthHandler
	patientHandler      *handler.PatientHandler
	doctorHandler       *handler.DoctorHandler
	appointmentHandler  *handler.AppointmentHandler
	medicalOrderHandler *handler.MedicalOrderHandler
	medicationHandler   *handler.MedicationHandler
	authMiddleware      *middleware.AuthMiddleware
}

func NewRouter(
	authHandler *handler.AuthHandler,
	patientHandler *handler.PatientHandler,
	doctorHandler *handler.DoctorHandler,
	appointmentHandler *handler.AppointmentHandler,
	medicalOrderHandler *handler.MedicalOrderHandler,
	medicationHandler *handler.MedicationHandler,
	authMiddleware *middleware.AuthMiddleware,
) *Router {
	return &Router{
		router:              mux.NewRouter(),
		authHandler:         authHandler,
		patientHandler:      patientHandler,
		doctorHandler:       doctorHandler,
		appointmentHandler:  appointmentHandler,
		medicalOrderHandler: medicalOrderHandler,
		medicationHandler:   medicationHandler,
		authMiddleware:      authMiddleware,
	}
}

func (r *Router) Setup() *mux.Router {
	// API versioning
	api := r.router.PathPrefix("/api/v1").Subrouter()

	// Health check
	api.HandleFunc("/health", r.healthCheck).Methods(http.MethodGet)

	// Auth routes (public)
	auth := api.PathPrefix("/auth").Subrouter()
	auth.HandleFunc("/login", r.authHandler.Login).Methods(http.MethodPost)
	auth.HandleFunc("/refresh", r.authHandler.RefreshToken).Methods(http.MethodPost)

	// Auth routes (protected)
	authProtected := api.PathPrefix("/auth").Subrouter()
	authProtected.Use(r.authMiddleware.Authenticate)
	authProtected.HandleFunc("/logout", r.authHandler.Logout).Methods(http.MethodPost)
	authProtected.HandleFunc("/me", r.authHandler.Me).Methods(http.MethodGet)

	// Everything below requires a valid session; per-route authorization
	// comes from the policy table.
	protected := api.NewRoute().Subrouter()
	protected.Use(r.authMiddleware.Authenticate)

	// Patients
	r.handle(protected, http.MethodPost, "/patients", "patients", "create", r.patientHandler.Create)
	r.handle(protected, http.MethodGet, "/patients", "patients", "read", r.patientHandler.GetAll)
	r.handle(protected, http.MethodGet, "/patients/identification/{identification}", "patients", "read", r.patientHandler.GetByIdentification)
	r.handle(protected, http.MethodGet, "/patients/{id}", "patients", "read", r.patientHandler.GetByID)
	r.handle(protected, http.MethodPut, "/patients/{id}", "patients", "update", r.patientHandler.Update)
	r.handle(protected, http.MethodDelete, "/patients/{id}", "patients", "delete", r.patientHandler.Delete)

	// Doctors
	r.handle(protected, http.MethodPost, "/doctors", "doctors", "create", r.doctorHandler.Create)
	r.handle(protected, http.MethodGet, "/doctors", "doctors", "read", r.doctorHandler.GetAll)
	r.handle(protected, http.MethodGet, "/doctors/identification/{identification}", "doctors", "read", r.doctorHandler.GetByIdentification)
	r.handle(protected, http.MethodGet, "/doctors/{id}", "doctors", "read", r.doctorHandler.GetByID)
	r.handle(protected, http.MethodPut, "/doctors/{id}", "doctors", "update", r.doctorHandler.Update)
	r.handle(protected, http.MethodDelete, "/doctors/{id}", "doctors", "delete", r.doctorHandler.Delete)

	// Appointments. Literal segments register before the {id} wildcard.
	r.handle(protected, http.MethodPost, "/appointments", "appointments", "create", r.appointmentHandler.Create)
	r.handle(protected, http.MethodGet, "/appointments", "appointments", "read", r.appointmentHandler.GetAll)
	r.handle(protected, http.MethodGet, "/appointments/available-doctors", "appointments", "read", r.appointmentHandler.GetAvailableDoctors)
	r.handle(protected, http.MethodGet, "/appointments/identification/{identification}", "appointments", "read", r.appointmentHandler.GetByIdentification)
	r.handle(protected, http.MethodGet, "/appointments/{id}", "appointments", "read", r.appointmentHandler.GetByID)
	r.handle(protected, http.MethodPatch, "/appointments/{id}", "appointments", "update", r.appointmentHandler.Update)
	r.handle(protected, http.MethodPatch, "/appointments/{id}/status", "appointments", "update_status", r.appointmentHandler.UpdateStatus)
	r.handle(protected, http.MethodDelete, "/appointments/{id}", "appointments", "delete", r.appointmentHandler.Delete)

	// Medical orders
	r.handle(protected, http.MethodPost, "/appointments/{appointmentId}/medical-orders", "medical_orders", "create", r.medicalOrderHandler.Create)
	r.handle(protected, http.MethodGet, "/appointments/{appointmentId}/medical-orders", "medical_orders", "read", r.medicalOrderHandler.GetByAppointment)
	r.handle(protected, http.MethodGet, "/medical-orders/{orderId}", "medical_orders", "read", r.medicalOrderHandler.GetByID)
	r.handle(protected, http.MethodGet, "/medical-orders/{orderId}/medications", "medical_orders", "read", r.medicalOrderHandler.GetMedications)
	r.handle(protected, http.MethodPost, "/medical-orders/{orderId}/medications/{medicationId}", "medical_orders", "attach", r.medicalOrderHandler.AttachMedication)
	r.handle(protected, http.MethodDelete, "/medical-orders/{orderId}/medications/{medicationId}", "medical_orders", "detach", r.medicalOrderHandler.DetachMedication)

	// Medications
	r.handle(protected, http.MethodPost, "/medications", "medications", "create", r.medicationHandler.Create)
	r.handle(protected, http.MethodGet, "/medications", "medications", "read", r.medicationHandler.GetAll)
	r.handle(protected, http.MethodGet, "/medications/{id}", "medications", "read", r.medicationHandler.GetByID)
	r.handle(protected, http.MethodPut, "/medications/{id}", "medications", "update", r.medicationHandler.Update)
	r.handle(protected, http.MethodDelete, "/medications/{id}", "medications", "delete", r.medicationHandler.Delete)

	// Add CORS middleware
	r.router.Use(middleware.CORS)

	return r.router
}

// handle registers a route guarded by the policy entry for (resource, action).
func (r *Router) handle(sr *mux.Router, method, path, resource, action string, fn http.HandlerFunc) {
	sr.Handle(path, middleware.Authorize(resource, action)(fn)).Methods(method)
}

func (r *Router) healthCheck(w http.ResponseWriter, req *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	w.Write([]byte(`{"status": "ok"}`))
}
