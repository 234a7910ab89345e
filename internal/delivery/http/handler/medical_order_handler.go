package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"clinical-office-api/internal/delivery/dto"
	"clinical-office-api/internal/usecase"
	"clinical-office-api/pkg/response"
	"clinical-office-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type MedicalOrderHandler struct {
	orderUsecase usecase.MedicalOrderUsecase
	validator    *validator.CustomValidator
}

func NewMedicalOrderHandler(orderUsecase usecase.MedicalOrderUsecase, validator *validator.CustomValidator) *MedicalOrderHandler {
	return &MedicalOrderHandler{
		orderUsecase: orderUsecase,
		validator:    validator,
	}
}

// Create handles POST /appointments/{appointmentId}/medical-orders
func (h *MedicalOrderHandler) Create(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["appointmentId"])
	if err != nil {
		response.BadRequest(w, r, "Invalid appointment ID")
		return
	}

	var req dto.CreateMedicalOrderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, r, h.validator.FormatValidationErrors(err))
		return
	}

	order, err := h.orderUsecase.Create(r.Context(), appointmentID, &req)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, r, "Appointment not found")
		case usecase.ErrInvalidDate:
			response.BadRequest(w, r, "Invalid expiration date, use YYYY-MM-DD")
		default:
			response.InternalServerError(w, r, "Failed to create medical order")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Medical order created successfully", order)
}

// GetByAppointment handles GET /appointments/{appointmentId}/medical-orders
func (h *MedicalOrderHandler) GetByAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := uuid.Parse(mux.Vars(r)["appointmentId"])
	if err != nil {
		response.BadRequest(w, r, "Invalid appointment ID")
		return
	}

	orders, err := h.orderUsecase.GetByAppointment(r.Context(), appointmentID)
	if err != nil {
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, r, "Appointment not found")
		default:
			response.InternalServerError(w, r, "Failed to list medical orders")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medical orders retrieved successfully", orders)
}

// GetByID handles GET /medical-orders/{orderId}
func (h *MedicalOrderHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		response.BadRequest(w, r, "Invalid medical order ID")
		return
	}

	order, err := h.orderUsecase.GetByID(r.Context(), orderID)
	if err != nil {
		switch err {
		case usecase.ErrMedicalOrderNotFound:
			response.NotFound(w, r, "Medical order not found")
		default:
			response.InternalServerError(w, r, "Failed to get medical order")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medical order retrieved successfully", order)
}

// AttachMedication handles POST /medical-orders/{orderId}/medications/{medicationId}
func (h *MedicalOrderHandler) AttachMedication(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID, err := uuid.Parse(vars["orderId"])
	if err != nil {
		response.BadRequest(w, r, "Invalid medical order ID")
		return
	}
	medicationID, err := uuid.Parse(vars["medicationId"])
	if err != nil {
		response.BadRequest(w, r, "Invalid medication ID")
		return
	}

	// The prescription detail body is optional.
	var req dto.AttachMedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
		response.BadRequest(w, r, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, r, h.validator.FormatValidationErrors(err))
		return
	}

	attachment, err := h.orderUsecase.AttachMedication(r.Context(), orderID, medicationID, &req)
	if err != nil {
		var attached *usecase.MedicationAttachedError
		switch {
		case errors.As(err, &attached):
			response.Conflict(w, r, fmt.Sprintf("Medication %q is already attached to this order", attached.Name))
		case errors.Is(err, usecase.ErrMedicalOrderNotFound):
			response.NotFound(w, r, "Medical order not found")
		case errors.Is(err, usecase.ErrMedicationNotFound):
			response.NotFound(w, r, "Medication not found")
		default:
			response.InternalServerError(w, r, "Failed to attach medication")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Medication attached successfully", attachment)
}

// DetachMedication handles DELETE /medical-orders/{orderId}/medications/{medicationId}
func (h *MedicalOrderHandler) DetachMedication(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	orderID, err := uuid.Parse(vars["orderId"])
	if err != nil {
		response.BadRequest(w, r, "Invalid medical order ID")
		return
	}
	medicationID, err := uuid.Parse(vars["medicationId"])
	if err != nil {
		response.BadRequest(w, r, "Invalid medication ID")
		return
	}

	detached, err := h.orderUsecase.DetachMedication(r.Context(), orderID, medicationID)
	if err != nil {
		switch err {
		case usecase.ErrMedicalOrderNotFound:
			response.NotFound(w, r, "Medical order not found")
		case usecase.ErrAttachmentNotFound:
			response.NotFound(w, r, "Medication is not attached to this order")
		default:
			response.InternalServerError(w, r, "Failed to detach medication")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medication detached successfully", detached)
}

// GetMedications handles GET /medical-orders/{orderId}/medications
func (h *MedicalOrderHandler) GetMedications(w http.ResponseWriter, r *http.Request) {
	orderID, err := uuid.Parse(mux.Vars(r)["orderId"])
	if err != nil {
		response.BadRequest(w, r, "Invalid medical order ID")
		return
	}

	medications, err := h.orderUsecase.GetMedications(r.Context(), orderID)
	if err != nil {
		switch err {
		case usecase.ErrMedicalOrderNotFound:
			response.NotFound(w, r, "Medical order not found")
		default:
			response.InternalServerError(w, r, "Failed to list order medications")
		}
		return
	}

	response.Success(w, http.StatusOK, "Order medications retrieved successfully", medications)
}
