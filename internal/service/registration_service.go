package service

import (
	"context"
	"crypto/rand"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/academia-crecer/academia-api/internal/catalog"
	"github.com/academia-crecer/academia-api/internal/dto"
	"github.com/academia-crecer/academia-api/internal/models"
	"github.com/academia-crecer/academia-api/internal/notify"
	"github.com/academia-crecer/academia-api/internal/observability"
	"github.com/academia-crecer/academia-api/internal/repository"
)

// ReservationDeposit is the fixed partial payment accepted from public
// self-registration, in currency units.
const ReservationDeposit = 50

// paymentCycle is the span between a registration or settled cycle and the
// next payment due date.
const paymentCycle = 30 * 24 * time.Hour

const (
	codePrefix  = "ACD-"
	codeLength  = 5
	codeCharset = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
)

// Origin identifies who is submitting a registration.
type Origin string

const (
	// OriginPublic is a visitor self-registering through the landing form.
	OriginPublic Origin = "public"
	// OriginAdmin is an operator enrolling a student from the back office.
	OriginAdmin Origin = "admin"
)

// RegistrationService computes and persists new student enrolments.
type RegistrationService interface {
	Register(ctx context.Context, req dto.RegistrationRequest, origin Origin) (dto.RegistrationResponse, error)
}

type registrationService struct {
	students  repository.StudentRepository
	validator *validator.Validate
	notifier  notify.Notifier
	activity  ActivityRecorder
	logger    zerolog.Logger
	tracer    trace.Tracer
}

// NewRegistrationService constructs the registration engine.
func NewRegistrationService(students repository.StudentRepository, validate *validator.Validate, notifier notify.Notifier, activity ActivityRecorder, logger zerolog.Logger) RegistrationService {
	return &registrationService{
		students:  students,
		validator: validate,
		notifier:  notifier,
		activity:  activity,
		logger:    logger.With().Str("component", "registration_service").Logger(),
		tracer:    otel.Tracer("github.com/academia-crecer/academia-api/internal/service/registration"),
	}
}

func (s *registrationService) Register(ctx context.Context, req dto.RegistrationRequest, origin Origin) (dto.RegistrationResponse, error) {
	ctx, span := s.tracer.Start(ctx, "registration.register")
	defer span.End()

	span.SetAttributes(
		attribute.String("registration.origin", string(origin)),
		attribute.String("registration.schedule_id", req.ScheduleID),
	)

	if err := s.validator.Struct(req); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "validation failed")
		observability.Registrations().WithLabelValues(string(origin), "invalid").Inc()
		return dto.RegistrationResponse{}, err
	}

	schedule, err := catalog.Lookup(strings.TrimSpace(req.ScheduleID))
	if err != nil {
		span.SetStatus(codes.Error, "schedule not found")
		observability.Registrations().WithLabelValues(string(origin), "unknown_schedule").Inc()
		return dto.RegistrationResponse{}, err
	}

	paid, balance, status := reconcileAmounts(schedule.MonthlyPrice, req.AmountPaid, origin)

	now := time.Now().UTC()
	student := models.Student{
		ID:            uuid.NewString(),
		Code:          generateCode(),
		FirstName:     strings.TrimSpace(req.FirstName),
		LastName:      strings.TrimSpace(req.LastName),
		Category:      schedule.Category,
		ParentName:    strings.TrimSpace(req.ParentName),
		ParentPhone:   strings.TrimSpace(req.ParentPhone),
		ParentEmail:   strings.ToLower(strings.TrimSpace(req.ParentEmail)),
		Address:       strings.TrimSpace(req.Address),
		ScheduleID:    schedule.ID,
		PaymentStatus: status,
		NextDueDate:   now.Add(paymentCycle),
		AmountPaid:    paid,
		Balance:       balance,
	}

	if req.BirthDate != "" {
		if birthDate, parseErr := time.Parse("2006-01-02", req.BirthDate); parseErr == nil {
			student.BirthDate = birthDate
		}
	}

	if paid > 0 {
		student.Payments = []models.PaymentRecord{{
			Amount: paid,
			Method: "registration",
			PaidAt: now,
		}}
	}

	if err := s.students.Create(ctx, &student); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "persistence failed")
		observability.Registrations().WithLabelValues(string(origin), "error").Inc()
		return dto.RegistrationResponse{}, fmt.Errorf("persist student: %w", err)
	}

	response := dto.RegistrationResponse{Student: dto.NewStudentResponse(student, now)}

	if origin == OriginPublic && s.notifier != nil {
		response.WhatsAppLink = s.notifier.RegistrationLink(student, schedule)
	}

	if origin == OriginAdmin && s.activity != nil {
		studentID := student.ID
		s.activity.Record(ctx, ActivityEntry{
			Actor:      "admin",
			Action:     "student.registered",
			EntityType: "student",
			EntityID:   &studentID,
			Metadata: map[string]interface{}{
				"schedule_id": schedule.ID,
				"amount_paid": paid,
				"status":      status,
			},
		})
	}

	observability.Registrations().WithLabelValues(string(origin), "created").Inc()
	span.SetStatus(codes.Ok, "registered")

	s.logger.Info().
		Str("student_code", student.Code).
		Str("origin", string(origin)).
		Str("schedule_id", schedule.ID).
		Str("status", status).
		Msg("student registered")

	return response, nil
}

// reconcileAmounts applies the payment policy at creation time. Public
// self-registration records the fixed deposit and is never marked paid;
// admin enrolment honours the operator-supplied amount, with the balance
// floored at zero on overpayment.
func reconcileAmounts(price int, requested *int, origin Origin) (paid, balance int, status string) {
	if origin == OriginPublic {
		return ReservationDeposit, price - ReservationDeposit, models.PaymentStatusPending
	}

	if requested != nil {
		paid = *requested
	}

	if paid >= price {
		return paid, 0, models.PaymentStatusPaid
	}
	return paid, price - paid, models.PaymentStatusPending
}

func generateCode() string {
	buf := make([]byte, codeLength)
	if _, err := rand.Read(buf); err != nil {
		// crypto/rand only fails when the platform entropy source is broken;
		// fall back to a uuid-derived suffix rather than panic.
		return codePrefix + strings.ToUpper(uuid.NewString()[:codeLength])
	}
	for i, b := range buf {
		buf[i] = codeCharset[int(b)%len(codeCharset)]
	}
	return codePrefix + string(buf)
}
