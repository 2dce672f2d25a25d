package dto

import (
	"time"

	"github.com/academia-crecer/academia-api/internal/models"
)

// RegistrationRequest is the submission payload for both the public landing
// form and the admin enrolment screen. AmountPaid is only honoured for admin
// submissions; public visitors always pay the fixed reservation deposit.
type RegistrationRequest struct {
	FirstName   string `json:"first_name" validate:"required,min=2,max=128"`
	LastName    string `json:"last_name" validate:"required,min=2,max=128"`
	BirthDate   string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	ParentName  string `json:"parent_name" validate:"omitempty,max=128"`
	ParentPhone string `json:"parent_phone" validate:"omitempty,max=32"`
	ParentEmail string `json:"parent_email" validate:"omitempty,email,max=160"`
	Address     string `json:"address" validate:"omitempty,max=255"`
	ScheduleID  string `json:"schedule_id" validate:"required,max=64"`
	AmountPaid  *int   `json:"amount_paid" validate:"omitempty,gte=0"`
}

// PaymentRecordResponse is one payment history entry.
type PaymentRecordResponse struct {
	Amount int       `json:"amount"`
	Method string    `json:"method"`
	PaidAt time.Time `json:"paid_at"`
}

// StudentResponse is the student record as exposed to the admin panel and
// returned after registration.
type StudentResponse struct {
	ID            string                  `json:"id"`
	Code          string                  `json:"code"`
	FirstName     string                  `json:"first_name"`
	LastName      string                  `json:"last_name"`
	BirthDate     *time.Time              `json:"birth_date,omitempty"`
	Category      string                  `json:"category"`
	ParentName    string                  `json:"parent_name,omitempty"`
	ParentPhone   string                  `json:"parent_phone,omitempty"`
	ParentEmail   string                  `json:"parent_email,omitempty"`
	Address       string                  `json:"address,omitempty"`
	ScheduleID    string                  `json:"schedule_id"`
	PaymentStatus string                  `json:"payment_status"`
	NextDueDate   time.Time               `json:"next_due_date"`
	AmountPaid    int                     `json:"amount_paid"`
	Balance       int                     `json:"balance"`
	RegisteredAt  time.Time               `json:"registered_at"`
	Payments      []PaymentRecordResponse `json:"payments,omitempty"`
}

// NewStudentResponse maps a student model to its API representation, using
// the reference time to surface overdue status without mutating storage.
func NewStudentResponse(student models.Student, reference time.Time) StudentResponse {
	response := StudentResponse{
		ID:            student.ID,
		Code:          student.Code,
		FirstName:     student.FirstName,
		LastName:      student.LastName,
		Category:      student.Category,
		ParentName:    student.ParentName,
		ParentPhone:   student.ParentPhone,
		ParentEmail:   student.ParentEmail,
		Address:       student.Address,
		ScheduleID:    student.ScheduleID,
		PaymentStatus: student.EffectiveStatus(reference),
		NextDueDate:   student.NextDueDate,
		AmountPaid:    student.AmountPaid,
		Balance:       student.Balance,
		RegisteredAt:  student.CreatedAt,
	}

	if !student.BirthDate.IsZero() {
		birthDate := student.BirthDate
		response.BirthDate = &birthDate
	}

	for _, payment := range student.Payments {
		response.Payments = append(response.Payments, PaymentRecordResponse{
			Amount: payment.Amount,
			Method: payment.Method,
			PaidAt: payment.PaidAt,
		})
	}

	return response
}

// RegistrationResponse is returned after a successful registration. The
// WhatsApp link is only present for public submissions; the frontend opens
// it, the backend never does.
type RegistrationResponse struct {
	Student      StudentResponse `json:"student"`
	WhatsAppLink string          `json:"whatsapp_link,omitempty"`
}
