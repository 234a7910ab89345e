package converter

import (
	"clinical-office-api/internal/delivery/dto"
	"clinical-office-api/internal/domain/entity"
)

// DoctorToResponse converts a Doctor entity to DoctorResponse DTO
func DoctorToResponse(doctor *entity.Doctor) *dto.DoctorResponse {
	if doctor == nil {
		return nil
	}

	return &dto.DoctorResponse{
		ID:               doctor.ID,
		Identification:   doctor.Identification,
		FirstName:        doctor.FirstName,
		LastName:         doctor.LastName,
		Email:            doctor.Email,
		Phone:            doctor.Phone,
		Address:          doctor.Address,
		City:             doctor.City,
		ProfessionalCard: doctor.ProfessionalCard,
		AdmissionDate:    doctor.AdmissionDate.Format("2006-01-02"),
		CreatedAt:        doctor.CreatedAt,
		UpdatedAt:        doctor.UpdatedAt,
	}
}

// DoctorsToResponses converts a slice of Doctor entities to response DTOs
func DoctorsToResponses(doctors []entity.Doctor) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(doctors))
	for i := range doctors {
		responses[i] = *DoctorToResponse(&doctors[i])
	}
	return responses
}
