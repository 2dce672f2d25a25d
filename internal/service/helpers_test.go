package service

import (
	"context"
	"io"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/academia-crecer/academia-api/internal/models"
	"github.com/academia-crecer/academia-api/internal/repository"
)

func testLogger() zerolog.Logger {
	return zerolog.New(io.Discard)
}

func testValidator() *validator.Validate {
	return validator.New()
}

// studentRepoStub is an in-memory roster used across the service tests.
type studentRepoStub struct {
	students         map[string]*models.Student
	createErr        error
	recordPaymentErr error
}

func newStudentRepoStub() *studentRepoStub {
	return &studentRepoStub{students: make(map[string]*models.Student)}
}

func (s *studentRepoStub) Create(ctx context.Context, student *models.Student) error {
	if s.createErr != nil {
		return s.createErr
	}
	clone := *student
	s.students[student.ID] = &clone
	return nil
}

func (s *studentRepoStub) GetByID(ctx context.Context, id string) (models.Student, error) {
	student, ok := s.students[id]
	if !ok {
		return models.Student{}, gorm.ErrRecordNotFound
	}
	return *student, nil
}

func (s *studentRepoStub) List(ctx context.Context, filter repository.StudentFilter) ([]models.Student, int64, error) {
	out := make([]models.Student, 0, len(s.students))
	for _, student := range s.students {
		out = append(out, *student)
	}
	return out, int64(len(out)), nil
}

func (s *studentRepoStub) Update(ctx context.Context, id string, updates map[string]interface{}) error {
	student, ok := s.students[id]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	if v, ok := updates["first_name"]; ok {
		student.FirstName = v.(string)
	}
	if v, ok := updates["last_name"]; ok {
		student.LastName = v.(string)
	}
	if v, ok := updates["parent_phone"]; ok {
		student.ParentPhone = v.(string)
	}
	if v, ok := updates["schedule_id"]; ok {
		student.ScheduleID = v.(string)
	}
	if v, ok := updates["category"]; ok {
		student.Category = v.(string)
	}
	return nil
}

func (s *studentRepoStub) Delete(ctx context.Context, id string) error {
	if _, ok := s.students[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(s.students, id)
	return nil
}

func (s *studentRepoStub) RecordPayment(ctx context.Context, payment *models.PaymentRecord, amountPaid, balance int, status string, nextDue time.Time) error {
	if s.recordPaymentErr != nil {
		return s.recordPaymentErr
	}
	student, ok := s.students[payment.StudentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	student.Payments = append(student.Payments, *payment)
	student.AmountPaid = amountPaid
	student.Balance = balance
	student.PaymentStatus = status
	student.NextDueDate = nextDue
	return nil
}

func (s *studentRepoStub) AddAttendance(ctx context.Context, record *models.AttendanceRecord) error {
	student, ok := s.students[record.StudentID]
	if !ok {
		return gorm.ErrRecordNotFound
	}
	student.Attendance = append(student.Attendance, *record)
	return nil
}

// activityRecorderStub captures audit entries for assertions.
type activityRecorderStub struct {
	entries []ActivityEntry
}

func (a *activityRecorderStub) Record(ctx context.Context, entry ActivityEntry) {
	a.entries = append(a.entries, entry)
}
