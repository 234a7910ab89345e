package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"clinical-office-api/internal/delivery/dto"
	"clinical-office-api/internal/usecase"
	"clinical-office-api/pkg/response"
	"clinical-office-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Create handles POST /appointments
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, r, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, r, "Patient not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, r, "Doctor not found")
		case usecase.ErrDoctorBusy:
			response.Conflict(w, r, "Doctor already has an appointment at this time")
		case usecase.ErrDuplicateAppointment:
			response.Conflict(w, r, "An identical appointment already exists")
		case usecase.ErrInvalidDate:
			response.BadRequest(w, r, "Invalid date format, use RFC 3339")
		default:
			response.InternalServerError(w, r, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", appointment)
}

// GetAll handles GET /appointments with an optional ?date=YYYY-MM-DD filter.
func (h *AppointmentHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	var date *time.Time
	if raw := r.URL.Query().Get("date"); raw != "" {
		parsed, err := time.Parse("2006-01-02", raw)
		if err != nil {
			response.BadRequest(w, r, "Invalid date filter, use YYYY-MM-DD")
			return
		}
		date = &parsed
	}

	appointments, err := h.appointmentUsecase.GetAll(r.Context(), date)
	if err != nil {
		response.InternalServerError(w, r, "Failed to list appointments")
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// GetAvailableDoctors handles GET /appointments/available-doctors?date=YYYY-MM-DD
func (h *AppointmentHandler) GetAvailableDoctors(w http.ResponseWriter, r *http.Request) {
	raw := r.URL.Query().Get("date")
	if raw == "" {
		response.BadRequest(w, r, "Date query parameter is required")
		return
	}

	date, err := time.Parse("2006-01-02", raw)
	if err != nil {
		date, err = time.Parse(time.RFC3339, raw)
		if err != nil {
			response.BadRequest(w, r, "Invalid date, use YYYY-MM-DD or RFC 3339")
			return
		}
	}

	doctors, err := h.appointmentUsecase.GetAvailableDoctors(r.Context(), date)
	if err != nil {
		response.InternalServerError(w, r, "Failed to find available doctors")
		return
	}

	response.Success(w, http.StatusOK, "Available doctors retrieved successfully", doctors)
}

// GetByID handles GET /appointments/{id}
func (h *AppointmentHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, r, "Invalid appointment ID")
		return
	}

	appointment, err := h.appointmentUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, r, "Appointment not found")
		default:
			response.InternalServerError(w, r, "Failed to get appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", appointment)
}

// GetByIdentification handles GET /appointments/identification/{identification},
// matching either the patient's or the doctor's identification.
func (h *AppointmentHandler) GetByIdentification(w http.ResponseWriter, r *http.Request) {
	identification := mux.Vars(r)["identification"]

	appointments, err := h.appointmentUsecase.GetByPersonIdentification(r.Context(), identification)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, r, "No appointments found for this identification")
		default:
			response.InternalServerError(w, r, "Failed to get appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// Update handles PUT /appointments/{id}
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, r, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, r, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, r, "Appointment not found")
		case usecase.ErrPatientNotFound:
			response.NotFound(w, r, "Patient not found")
		case usecase.ErrDoctorNotFound:
			response.NotFound(w, r, "Doctor not found")
		case usecase.ErrDoctorBusy:
			response.Conflict(w, r, "Doctor already has an appointment at this time")
		case usecase.ErrDuplicateAppointment:
			response.Conflict(w, r, "An identical appointment already exists")
		case usecase.ErrInvalidDate:
			response.BadRequest(w, r, "Invalid date format, use RFC 3339")
		default:
			response.InternalServerError(w, r, "Failed to update appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", appointment)
}

// UpdateStatus handles PATCH /appointments/{id}/status
func (h *AppointmentHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, r, "Invalid appointment ID")
		return
	}

	var req dto.UpdateAppointmentStatusRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, r, h.validator.FormatValidationErrors(err))
		return
	}

	appointment, err := h.appointmentUsecase.UpdateStatus(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, r, "Appointment not found")
		default:
			response.InternalServerError(w, r, "Failed to update appointment status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment status updated successfully", appointment)
}

// Delete handles DELETE /appointments/{id}
func (h *AppointmentHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, r, "Invalid appointment ID")
		return
	}

	if err := h.appointmentUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, r, "Appointment not found")
		default:
			response.InternalServerError(w, r, "Failed to delete appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment deleted successfully", nil)
}
