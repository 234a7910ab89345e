package handler

import (
	"encoding/json"
	"net/http"

	"clinical-office-api/internal/delivery/dto"
	"clinical-office-api/internal/usecase"
	"clinical-office-api/pkg/response"
	"clinical-office-api/pkg/validator"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type MedicationHandler struct {
	medicationUsecase usecase.MedicationUsecase
	validator         *validator.CustomValidator
}

func NewMedicationHandler(medicationUsecase usecase.MedicationUsecase, validator *validator.CustomValidator) *MedicationHandler {
	return &MedicationHandler{
		medicationUsecase: medicationUsecase,
		validator:         validator,
	}
}

// Create handles POST /medications
func (h *MedicationHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateMedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, r, h.validator.FormatValidationErrors(err))
		return
	}

	medication, err := h.medicationUsecase.Create(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrMedicationExists:
			response.Conflict(w, r, "A medication with this name already exists")
		default:
			response.InternalServerError(w, r, "Failed to create medication")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Medication created successfully", medication)
}

// GetAll handles GET /medications with an optional ?disease= filter.
func (h *MedicationHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	if disease := r.URL.Query().Get("disease"); disease != "" {
		h.getByDisease(w, r, disease)
		return
	}

	medications, err := h.medicationUsecase.GetAll(r.Context())
	if err != nil {
		response.InternalServerError(w, r, "Failed to list medications")
		return
	}

	response.Success(w, http.StatusOK, "Medications retrieved successfully", medications)
}

func (h *MedicationHandler) getByDisease(w http.ResponseWriter, r *http.Request, disease string) {
	medications, err := h.medicationUsecase.GetByDisease(r.Context(), disease)
	if err != nil {
		switch err {
		case usecase.ErrBlankDiseaseFilter:
			response.BadRequest(w, r, "Disease filter must not be blank")
		default:
			response.InternalServerError(w, r, "Failed to filter medications")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medications retrieved successfully", medications)
}

// GetByID handles GET /medications/{id}
func (h *MedicationHandler) GetByID(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, r, "Invalid medication ID")
		return
	}

	medication, err := h.medicationUsecase.GetByID(r.Context(), id)
	if err != nil {
		switch err {
		case usecase.ErrMedicationNotFound:
			response.NotFound(w, r, "Medication not found")
		default:
			response.InternalServerError(w, r, "Failed to get medication")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medication retrieved successfully", medication)
}

// Update handles PUT /medications/{id}
func (h *MedicationHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, r, "Invalid medication ID")
		return
	}

	var req dto.UpdateMedicationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, r, "Invalid request body")
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, r, h.validator.FormatValidationErrors(err))
		return
	}

	medication, err := h.medicationUsecase.Update(r.Context(), id, &req)
	if err != nil {
		switch err {
		case usecase.ErrMedicationNotFound:
			response.NotFound(w, r, "Medication not found")
		case usecase.ErrMedicationExists:
			response.Conflict(w, r, "A medication with this name already exists")
		default:
			response.InternalServerError(w, r, "Failed to update medication")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medication updated successfully", medication)
}

// Delete handles DELETE /medications/{id}
func (h *MedicationHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(mux.Vars(r)["id"])
	if err != nil {
		response.BadRequest(w, r, "Invalid medication ID")
		return
	}

	if err := h.medicationUsecase.Delete(r.Context(), id); err != nil {
		switch err {
		case usecase.ErrMedicationNotFound:
			response.NotFound(w, r, "Medication not found")
		case usecase.ErrMedicationInUse:
			response.Conflict(w, r, "Medication is referenced by medical orders and cannot be deleted")
		default:
			response.InternalServerError(w, r, "Failed to delete medication")
		}
		return
	}

	response.Success(w, http.StatusOK, "Medication deleted successfully", nil)
}
