package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/academia-crecer/academia-api/internal/catalog"
	"github.com/academia-crecer/academia-api/internal/dto"
	"github.com/academia-crecer/academia-api/internal/models"
	"github.com/academia-crecer/academia-api/internal/repository"
)

// ErrStudentNotFound indicates the referenced student is not on the roster.
var ErrStudentNotFound = errors.New("student not found")

// RosterService manages the registered student collection from the back office.
type RosterService interface {
	List(ctx context.Context, req dto.RosterListRequest) (dto.RosterListResponse, error)
	Get(ctx context.Context, id string) (dto.StudentResponse, error)
	Update(ctx context.Context, id string, payload dto.StudentUpdateRequest) (dto.StudentResponse, error)
	Delete(ctx context.Context, id string) error
	RecordPayment(ctx context.Context, id string, payload dto.PaymentCreateRequest) (dto.StudentResponse, error)
	RecordAttendance(ctx context.Context, id string, payload dto.AttendanceCreateRequest) error
}

type rosterService struct {
	students  repository.StudentRepository
	validator *validator.Validate
	activity  ActivityRecorder
	logger    zerolog.Logger
}

// NewRosterService constructs the roster management service.
func NewRosterService(students repository.StudentRepository, validate *validator.Validate, activity ActivityRecorder, logger zerolog.Logger) RosterService {
	return &rosterService{
		students:  students,
		validator: validate,
		activity:  activity,
		logger:    logger.With().Str("component", "roster_service").Logger(),
	}
}

func (s *rosterService) List(ctx context.Context, req dto.RosterListRequest) (dto.RosterListResponse, error) {
	students, total, err := s.students.List(ctx, repository.StudentFilter{
		Search:   strings.TrimSpace(req.Search),
		Category: strings.TrimSpace(req.Category),
		Status:   strings.TrimSpace(req.Status),
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		return dto.RosterListResponse{}, fmt.Errorf("list roster: %w", err)
	}

	now := time.Now().UTC()
	items := make([]dto.StudentResponse, 0, len(students))
	for _, student := range students {
		items = append(items, dto.NewStudentResponse(student, now))
	}

	return dto.RosterListResponse{
		Items:      items,
		Pagination: paginationMeta(req.Page, req.PageSize, total),
	}, nil
}

func (s *rosterService) Get(ctx context.Context, id string) (dto.StudentResponse, error) {
	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, fmt.Errorf("load student: %w", err)
	}

	return dto.NewStudentResponse(student, time.Now().UTC()), nil
}

// Update applies a partial edit. The write either commits as a whole or the
// caller gets the error: there is no optimistic local state to roll back.
func (s *rosterService) Update(ctx context.Context, id string, payload dto.StudentUpdateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	updates := make(map[string]interface{})
	changed := make([]string, 0)

	if payload.FirstName != nil {
		updates["first_name"] = strings.TrimSpace(*payload.FirstName)
		changed = append(changed, "first_name")
	}
	if payload.LastName != nil {
		updates["last_name"] = strings.TrimSpace(*payload.LastName)
		changed = append(changed, "last_name")
	}
	if payload.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *payload.BirthDate)
		if err != nil {
			return dto.StudentResponse{}, fmt.Errorf("parse birth date: %w", err)
		}
		updates["birth_date"] = birthDate
		changed = append(changed, "birth_date")
	}
	if payload.ParentName != nil {
		updates["parent_name"] = strings.TrimSpace(*payload.ParentName)
		changed = append(changed, "parent_name")
	}
	if payload.ParentPhone != nil {
		updates["parent_phone"] = strings.TrimSpace(*payload.ParentPhone)
		changed = append(changed, "parent_phone")
	}
	if payload.ParentEmail != nil {
		updates["parent_email"] = strings.ToLower(strings.TrimSpace(*payload.ParentEmail))
		changed = append(changed, "parent_email")
	}
	if payload.Address != nil {
		updates["address"] = strings.TrimSpace(*payload.Address)
		changed = append(changed, "address")
	}
	if payload.ScheduleID != nil {
		schedule, err := catalog.Lookup(strings.TrimSpace(*payload.ScheduleID))
		if err != nil {
			return dto.StudentResponse{}, err
		}
		updates["schedule_id"] = schedule.ID
		updates["category"] = schedule.Category
		changed = append(changed, "schedule_id")
	}

	if len(updates) == 0 {
		return s.Get(ctx, id)
	}

	if err := s.students.Update(ctx, id, updates); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, fmt.Errorf("update student: %w", err)
	}

	if s.activity != nil {
		studentID := id
		s.activity.Record(ctx, ActivityEntry{
			Actor:      "admin",
			Action:     "student.updated",
			EntityType: "student",
			EntityID:   &studentID,
			Metadata:   map[string]interface{}{"fields": changed},
		})
	}

	return s.Get(ctx, id)
}

func (s *rosterService) Delete(ctx context.Context, id string) error {
	if err := s.students.Delete(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("delete student: %w", err)
	}

	if s.activity != nil {
		studentID := id
		s.activity.Record(ctx, ActivityEntry{
			Actor:      "admin",
			Action:     "student.deleted",
			EntityType: "student",
			EntityID:   &studentID,
		})
	}

	return nil
}

// RecordPayment recomputes amount paid, outstanding balance and status from
// the whole history plus the schedule price, then persists the new entry and
// the reconciled totals in a single write.
func (s *rosterService) RecordPayment(ctx context.Context, id string, payload dto.PaymentCreateRequest) (dto.StudentResponse, error) {
	if err := s.validator.Struct(payload); err != nil {
		return dto.StudentResponse{}, err
	}

	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return dto.StudentResponse{}, ErrStudentNotFound
		}
		return dto.StudentResponse{}, fmt.Errorf("load student: %w", err)
	}

	paidAt := time.Now().UTC()
	if payload.PaidAt != "" {
		if parsed, parseErr := time.Parse("2006-01-02", payload.PaidAt); parseErr == nil {
			paidAt = parsed
		}
	}

	schedule, err := catalog.Lookup(student.ScheduleID)
	if err != nil {
		return dto.StudentResponse{}, err
	}

	totalPaid := payload.Amount
	for _, entry := range student.Payments {
		totalPaid += entry.Amount
	}

	balance := schedule.MonthlyPrice - totalPaid
	status := models.PaymentStatusPending
	nextDue := student.NextDueDate
	if balance <= 0 {
		balance = 0
		status = models.PaymentStatusPaid
		nextDue = paidAt.Add(paymentCycle)
	}

	payment := models.PaymentRecord{
		StudentID: student.ID,
		Amount:    payload.Amount,
		Method:    payload.Method,
		PaidAt:    paidAt,
	}
	if err := s.students.RecordPayment(ctx, &payment, totalPaid, balance, status, nextDue); err != nil {
		return dto.StudentResponse{}, fmt.Errorf("record payment: %w", err)
	}

	if s.activity != nil {
		studentID := student.ID
		s.activity.Record(ctx, ActivityEntry{
			Actor:      "admin",
			Action:     "payment.recorded",
			EntityType: "student",
			EntityID:   &studentID,
			Metadata: map[string]interface{}{
				"amount": payload.Amount,
				"method": payload.Method,
				"status": status,
			},
		})
	}

	s.logger.Info().
		Str("student_code", student.Code).
		Int("amount", payload.Amount).
		Str("status", status).
		Msg("payment recorded")

	return s.Get(ctx, id)
}

func (s *rosterService) RecordAttendance(ctx context.Context, id string, payload dto.AttendanceCreateRequest) error {
	if err := s.validator.Struct(payload); err != nil {
		return err
	}

	student, err := s.students.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrStudentNotFound
		}
		return fmt.Errorf("load student: %w", err)
	}

	date, err := time.Parse("2006-01-02", payload.Date)
	if err != nil {
		return fmt.Errorf("parse attendance date: %w", err)
	}

	record := models.AttendanceRecord{
		StudentID: student.ID,
		Date:      date,
		Present:   payload.Present,
	}
	if err := s.students.AddAttendance(ctx, &record); err != nil {
		return fmt.Errorf("append attendance: %w", err)
	}

	return nil
}
