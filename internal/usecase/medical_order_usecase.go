package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"clinical-office-api/internal/converter"
	"clinical-office-api/internal/delivery/dto"
	"clinical-office-api/internal/domain/entity"
	"clinical-office-api/internal/domain/repository"
	"clinical-office-api/internal/service"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrMedicalOrderNotFound = errors.New("medical order not found")
	ErrAttachmentNotFound   = errors.New("medication is not attached to this order")
)

// MedicationAttachedError reports an attach conflict carrying the medication
// name, so the caller can say which one was already attached.
type MedicationAttachedError struct {
	Name string
}

func (e *MedicationAttachedError) Error() string {
	return fmt.Sprintf("medication %q is already attached to this order", e.Name)
}

type MedicalOrderUsecase interface {
	Create(ctx context.Context, appointmentID uuid.UUID, req *dto.CreateMedicalOrderRequest) (*dto.MedicalOrderResponse, error)
	GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicalOrderResponse, error)
	GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.MedicalOrderListResponse, error)
	AttachMedication(ctx context.Context, orderID, medicationID uuid.UUID, req *dto.AttachMedicationRequest) (*dto.AttachmentResponse, error)
	DetachMedication(ctx context.Context, orderID, medicationID uuid.UUID) (*dto.AttachmentResponse, error)
	GetMedications(ctx context.Context, orderID uuid.UUID) (*dto.AttachmentListResponse, error)
}

type medicalOrderUsecase struct {
	db              *gorm.DB
	log             *logrus.Logger
	orderRepo       repository.MedicalOrderRepository
	appointmentRepo repository.AppointmentRepository
	medicationRepo  repository.MedicationRepository
	auditService    service.AuditService
}

func NewMedicalOrderUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	orderRepo repository.MedicalOrderRepository,
	appointmentRepo repository.AppointmentRepository,
	medicationRepo repository.MedicationRepository,
	auditService service.AuditService,
) MedicalOrderUsecase {
	return &medicalOrderUsecase{
		db:              db,
		log:             log,
		orderRepo:       orderRepo,
		appointmentRepo: appointmentRepo,
		medicationRepo:  medicationRepo,
		auditService:    auditService,
	}
}

// Create issues a medical order against an existing appointment.
func (u *medicalOrderUsecase) Create(ctx context.Context, appointmentID uuid.UUID, req *dto.CreateMedicalOrderRequest) (*dto.MedicalOrderResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to find appointment %s: %+v", appointmentID, err)
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	order := &entity.MedicalOrder{
		AppointmentID: appointmentID,
		Description:   req.Description,
		Specialty:     req.Specialty,
	}

	if req.ExpirationDate != "" {
		expiration, err := time.Parse("2006-01-02", req.ExpirationDate)
		if err != nil {
			return nil, ErrInvalidDate
		}
		order.ExpirationDate = &expiration
	}

	userID := currentUserID(ctx)
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.orderRepo.Create(tx, order); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, userID, entity.AuditActionMedicalOrderCreate,
			"medical_order", order.ID.String(), order)
	})
	if err != nil {
		// The appointment can disappear between the check and the insert.
		if isForeignKeyError(err, "medical_orders_appointment_id") {
			return nil, ErrAppointmentNotFound
		}
		u.log.Errorf("Failed to create medical order: %+v", err)
		return nil, err
	}

	full, err := u.orderRepo.FindByID(u.db.WithContext(ctx), order.ID)
	if err != nil || full == nil {
		u.log.Warnf("Failed to reload medical order %s: %+v", order.ID, err)
		return converter.MedicalOrderToResponse(order), nil
	}

	u.log.Infof("Medical order created: id=%s, appointment=%s", order.ID, appointmentID)
	return converter.MedicalOrderToResponse(full), nil
}

func (u *medicalOrderUsecase) GetByID(ctx context.Context, id uuid.UUID) (*dto.MedicalOrderResponse, error) {
	order, err := u.orderRepo.FindByID(u.db.WithContext(ctx), id)
	if err != nil {
		u.log.Warnf("Failed to find medical order %s: %+v", id, err)
		return nil, err
	}
	if order == nil {
		return nil, ErrMedicalOrderNotFound
	}

	return converter.MedicalOrderToResponse(order), nil
}

// GetByAppointment lists the orders of one appointment. The appointment must
// exist; an existing appointment with no orders yields an empty list.
func (u *medicalOrderUsecase) GetByAppointment(ctx context.Context, appointmentID uuid.UUID) (*dto.MedicalOrderListResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	orders, err := u.orderRepo.FindByAppointmentID(u.db.WithContext(ctx), appointmentID)
	if err != nil {
		u.log.Warnf("Failed to list orders for appointment %s: %+v", appointmentID, err)
		return nil, err
	}

	return &dto.MedicalOrderListResponse{
		MedicalOrders: converter.MedicalOrdersToResponses(orders),
		Total:         len(orders),
	}, nil
}

// AttachMedication links a medication to an order with optional prescription
// detail. Attaching the same medication twice is a conflict that names the
// medication; the unique index on (medical_order_id, medication_id) closes
// the race against concurrent attaches.
func (u *medicalOrderUsecase) AttachMedication(ctx context.Context, orderID, medicationID uuid.UUID, req *dto.AttachMedicationRequest) (*dto.AttachmentResponse, error) {
	order, err := u.orderRepo.FindByID(u.db.WithContext(ctx), orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrMedicalOrderNotFound
	}

	medication, err := u.medicationRepo.FindByID(u.db.WithContext(ctx), medicationID)
	if err != nil {
		return nil, err
	}
	if medication == nil {
		return nil, ErrMedicationNotFound
	}

	existing, err := u.orderRepo.FindAttachment(u.db.WithContext(ctx), orderID, medicationID)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, &MedicationAttachedError{Name: medication.Name}
	}

	attachment := &entity.MedicalOrderMedication{
		MedicalOrderID: orderID,
		MedicationID:   medicationID,
		Dosage:         optionalString(req.Dosage),
		Frequency:      optionalString(req.Frequency),
		Duration:       optionalString(req.Duration),
		Instructions:   optionalString(req.Instructions),
	}

	userID := currentUserID(ctx)
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := u.orderRepo.AttachMedication(tx, attachment); err != nil {
			return err
		}
		return u.auditService.LogCreate(ctx, tx, userID, entity.AuditActionMedicationAttach,
			"medical_order_medication", attachment.ID.String(), attachment)
	})
	if err != nil {
		if isDuplicateKeyError(err, "idx_order_medication") {
			return nil, &MedicationAttachedError{Name: medication.Name}
		}
		u.log.Errorf("Failed to attach medication %s to order %s: %+v", medicationID, orderID, err)
		return nil, err
	}

	attachment.Medication = *medication
	u.log.Infof("Medication attached: order=%s, medication=%s", orderID, medication.Name)
	return converter.AttachmentToResponse(attachment), nil
}

// DetachMedication removes an attachment and returns the removed row.
// Detaching a medication that was never attached is a not-found, not a no-op.
func (u *medicalOrderUsecase) DetachMedication(ctx context.Context, orderID, medicationID uuid.UUID) (*dto.AttachmentResponse, error) {
	order, err := u.orderRepo.FindByID(u.db.WithContext(ctx), orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrMedicalOrderNotFound
	}

	userID := currentUserID(ctx)
	var deleted *entity.MedicalOrderMedication
	err = u.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		deleted, err = u.orderRepo.DetachMedication(tx, orderID, medicationID)
		if err != nil {
			return err
		}
		if deleted == nil {
			return ErrAttachmentNotFound
		}
		return u.auditService.LogDelete(ctx, tx, userID, entity.AuditActionMedicationDetach,
			"medical_order_medication", deleted.ID.String(), deleted)
	})
	if err != nil {
		if errors.Is(err, ErrAttachmentNotFound) {
			return nil, err
		}
		u.log.Errorf("Failed to detach medication %s from order %s: %+v", medicationID, orderID, err)
		return nil, err
	}

	u.log.Infof("Medication detached: order=%s, medication=%s", orderID, medicationID)
	return converter.AttachmentToResponse(deleted), nil
}

// GetMedications lists an order's attachments ordered by medication name.
func (u *medicalOrderUsecase) GetMedications(ctx context.Context, orderID uuid.UUID) (*dto.AttachmentListResponse, error) {
	order, err := u.orderRepo.FindByID(u.db.WithContext(ctx), orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, ErrMedicalOrderNotFound
	}

	attachments, err := u.orderRepo.FindMedications(u.db.WithContext(ctx), orderID)
	if err != nil {
		u.log.Warnf("Failed to list medications for order %s: %+v", orderID, err)
		return nil, err
	}

	return &dto.AttachmentListResponse{
		Medications: converter.AttachmentsToResponses(attachments),
		Total:       len(attachments),
	}, nil
}

func optionalString(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
