package models

import "time"

// PaymentStatus values stored on a student record.
const (
	PaymentStatusPaid    = "paid"
	PaymentStatusPending = "pending"
	PaymentStatusOverdue = "overdue"
)

// Student represents an enrolled academy member managed through the back office.
type Student struct {
	ID            string    `gorm:"size:36;primaryKey" json:"id"`
	Code          string    `gorm:"size:16;uniqueIndex;not null" json:"code"`
	FirstName     string    `gorm:"size:128;not null" json:"first_name"`
	LastName      string    `gorm:"size:128;not null" json:"last_name"`
	BirthDate     time.Time `json:"birth_date"`
	Category      string    `gorm:"size:64;not null" json:"category"`
	ParentName    string    `gorm:"size:128" json:"parent_name"`
	ParentPhone   string    `gorm:"size:32" json:"parent_phone"`
	ParentEmail   string    `gorm:"size:160" json:"parent_email"`
	Address       string    `gorm:"size:255" json:"address"`
	ScheduleID    string    `gorm:"size:64;index;not null" json:"schedule_id"`
	PaymentStatus string    `gorm:"size:16;index;not null" json:"payment_status"`
	NextDueDate   time.Time `json:"next_due_date"`
	AmountPaid    int       `gorm:"not null;default:0" json:"amount_paid"`
	Balance       int       `gorm:"not null;default:0" json:"balance"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`

	Payments   []PaymentRecord    `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"payments,omitempty"`
	Attendance []AttendanceRecord `gorm:"constraint:OnUpdate:CASCADE,OnDelete:CASCADE" json:"attendance,omitempty"`
}

// FullName returns the display name used in notifications and exports.
func (s Student) FullName() string {
	return s.FirstName + " " + s.LastName
}

// IsSettled reports whether the student owes nothing for the current cycle.
func (s Student) IsSettled() bool {
	return s.Balance <= 0
}

// IsOverdue reports whether the next due date has passed with money outstanding.
func (s Student) IsOverdue(reference time.Time) bool {
	return s.Balance > 0 && reference.After(s.NextDueDate)
}

// EffectiveStatus resolves the payment status shown to operators, marking
// past-due pending students as overdue without mutating the stored value.
func (s Student) EffectiveStatus(reference time.Time) string {
	if s.PaymentStatus == PaymentStatusPending && s.IsOverdue(reference) {
		return PaymentStatusOverdue
	}
	return s.PaymentStatus
}

// PaymentRecord is a single entry in a student's payment history.
type PaymentRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID string    `gorm:"size:36;index;not null" json:"student_id"`
	Amount    int       `gorm:"not null" json:"amount"`
	Method    string    `gorm:"size:32;not null" json:"method"`
	PaidAt    time.Time `gorm:"not null" json:"paid_at"`
	CreatedAt time.Time `json:"created_at"`
}

// AttendanceRecord marks presence or absence for a training date.
type AttendanceRecord struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	StudentID string    `gorm:"size:36;index;not null" json:"student_id"`
	Date      time.Time `gorm:"not null" json:"date"`
	Present   bool      `gorm:"not null" json:"present"`
	CreatedAt time.Time `json:"created_at"`
}
