package converter

import (
	"clinical-office-api/internal/delivery/dto"
	"clinical-office-api/internal/domain/entity"

	"github.com/google/uuid"
)

// MedicalOrderToResponse converts a MedicalOrder entity to its response DTO,
// including the appointment and attachments when eagerly loaded.
func MedicalOrderToResponse(order *entity.MedicalOrder) *dto.MedicalOrderResponse {
	if order == nil {
		return nil
	}

	response := &dto.MedicalOrderResponse{
		ID:            order.ID,
		AppointmentID: order.AppointmentID,
		Description:   order.Description,
		Specialty:     order.Specialty,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}

	if order.ExpirationDate != nil {
		formatted := order.ExpirationDate.Format("2006-01-02")
		response.ExpirationDate = &formatted
	}
	if order.Appointment.ID != uuid.Nil {
		response.Appointment = AppointmentToResponse(&order.Appointment)
	}
	if len(order.Medications) > 0 {
		response.Medications = AttachmentsToResponses(order.Medications)
	}

	return response
}

// MedicalOrdersToResponses converts a slice of MedicalOrder entities to DTOs
func MedicalOrdersToResponses(orders []entity.MedicalOrder) []dto.MedicalOrderResponse {
	responses := make([]dto.MedicalOrderResponse, len(orders))
	for i := range orders {
		responses[i] = *MedicalOrderToResponse(&orders[i])
	}
	return responses
}
