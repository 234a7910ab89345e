package converter

import (
	"clinical-office-api/internal/delivery/dto"
	"clinical-office-api/internal/domain/entity"

	"github.com/google/uuid"
)

// MedicationToResponse converts a Medication entity to its response DTO
func MedicationToResponse(medication *entity.Medication) *dto.MedicationResponse {
	if medication == nil {
		return nil
	}

	return &dto.MedicationResponse{
		ID:          medication.ID,
		Name:        medication.Name,
		Description: medication.Description,
		Diseases:    medication.Diseases,
		CreatedAt:   medication.CreatedAt,
		UpdatedAt:   medication.UpdatedAt,
	}
}

// MedicationsToResponses converts a slice of Medication entities to DTOs
func MedicationsToResponses(medications []entity.Medication) []dto.MedicationResponse {
	responses := make([]dto.MedicationResponse, len(medications))
	for i := range medications {
		responses[i] = *MedicationToResponse(&medications[i])
	}
	return responses
}

// AttachmentToResponse converts a MedicalOrderMedication entity to its
// response DTO, including the medication when eagerly loaded.
func AttachmentToResponse(attachment *entity.MedicalOrderMedication) *dto.AttachmentResponse {
	if attachment == nil {
		return nil
	}

	response := &dto.AttachmentResponse{
		ID:             attachment.ID,
		MedicalOrderID: attachment.MedicalOrderID,
		MedicationID:   attachment.MedicationID,
		Dosage:         attachment.Dosage,
		Frequency:      attachment.Frequency,
		Duration:       attachment.Duration,
		Instructions:   attachment.Instructions,
		CreatedAt:      attachment.CreatedAt,
		UpdatedAt:      attachment.UpdatedAt,
	}

	if attachment.Medication.ID != uuid.Nil {
		response.Medication = MedicationToResponse(&attachment.Medication)
	}

	return response
}

// AttachmentsToResponses converts a slice of attachments to DTOs
func AttachmentsToResponses(attachments []entity.MedicalOrderMedication) []dto.AttachmentResponse {
	responses := make([]dto.AttachmentResponse, len(attachments))
	for i := range attachments {
		responses[i] = *AttachmentToResponse(&attachments[i])
	}
	return responses
}
