package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/academia-crecer/academia-api/internal/catalog"
	"github.com/academia-crecer/academia-api/internal/dto"
	"github.com/academia-crecer/academia-api/internal/models"
	"github.com/academia-crecer/academia-api/internal/notify"
)

func registrationRequest() dto.RegistrationRequest {
	return dto.RegistrationRequest{
		FirstName:   "Ana",
		LastName:    "Ruiz",
		BirthDate:   "2019-03-14",
		ParentName:  "Carla Ruiz",
		ParentPhone: "+51 987 654 321",
		ParentEmail: "carla@example.com",
		ScheduleID:  "baby-futbol",
	}
}

func TestRegisterPublicAppliesReservationDeposit(t *testing.T) {
	repo := newStudentRepoStub()
	svc := NewRegistrationService(repo, testValidator(), notify.NewWhatsAppNotifier("+51911222333", testLogger()), nil, testLogger())

	resp, err := svc.Register(context.Background(), registrationRequest(), OriginPublic)
	require.NoError(t, err)

	require.Equal(t, ReservationDeposit, resp.Student.AmountPaid)
	require.Equal(t, 130, resp.Student.Balance)
	require.Equal(t, models.PaymentStatusPending, resp.Student.PaymentStatus)
	require.True(t, strings.HasPrefix(resp.Student.Code, "ACD-"))
	require.Len(t, resp.Student.Code, len("ACD-")+5)
	require.NotEmpty(t, resp.WhatsAppLink)
	require.Contains(t, resp.WhatsAppLink, "wa.me/51911222333")

	stored, err := repo.GetByID(context.Background(), resp.Student.ID)
	require.NoError(t, err)
	require.Len(t, stored.Payments, 1)
	require.Equal(t, ReservationDeposit, stored.Payments[0].Amount)
}

func TestRegisterPublicIgnoresRequestedAmount(t *testing.T) {
	repo := newStudentRepoStub()
	svc := NewRegistrationService(repo, testValidator(), nil, nil, testLogger())

	amount := 500
	req := registrationRequest()
	req.AmountPaid = &amount

	resp, err := svc.Register(context.Background(), req, OriginPublic)
	require.NoError(t, err)
	require.Equal(t, ReservationDeposit, resp.Student.AmountPaid)
	require.Equal(t, 130, resp.Student.Balance)
}

func TestRegisterAdminFullPaymentMarksPaid(t *testing.T) {
	repo := newStudentRepoStub()
	activity := &activityRecorderStub{}
	svc := NewRegistrationService(repo, testValidator(), nil, activity, testLogger())

	amount := 180
	req := registrationRequest()
	req.AmountPaid = &amount

	resp, err := svc.Register(context.Background(), req, OriginAdmin)
	require.NoError(t, err)
	require.Equal(t, 180, resp.Student.AmountPaid)
	require.Equal(t, 0, resp.Student.Balance)
	require.Equal(t, models.PaymentStatusPaid, resp.Student.PaymentStatus)
	require.Empty(t, resp.WhatsAppLink)

	require.Len(t, activity.entries, 1)
	require.Equal(t, "student.registered", activity.entries[0].Action)
}

func TestRegisterAdminPartialPaymentStaysPending(t *testing.T) {
	repo := newStudentRepoStub()
	svc := NewRegistrationService(repo, testValidator(), nil, nil, testLogger())

	amount := 100
	req := registrationRequest()
	req.AmountPaid = &amount

	resp, err := svc.Register(context.Background(), req, OriginAdmin)
	require.NoError(t, err)
	require.Equal(t, 100, resp.Student.AmountPaid)
	require.Equal(t, 80, resp.Student.Balance)
	require.Equal(t, models.PaymentStatusPending, resp.Student.PaymentStatus)
}

func TestRegisterUnknownScheduleFails(t *testing.T) {
	repo := newStudentRepoStub()
	svc := NewRegistrationService(repo, testValidator(), nil, nil, testLogger())

	req := registrationRequest()
	req.ScheduleID = "natacion"

	_, err := svc.Register(context.Background(), req, OriginPublic)
	require.ErrorIs(t, err, catalog.ErrScheduleNotFound)
	require.Empty(t, repo.students)
}

func TestRegisterValidationFailure(t *testing.T) {
	repo := newStudentRepoStub()
	svc := NewRegistrationService(repo, testValidator(), nil, nil, testLogger())

	req := registrationRequest()
	req.FirstName = ""

	_, err := svc.Register(context.Background(), req, OriginPublic)
	require.Error(t, err)
	require.Empty(t, repo.students)
}

func TestRegisterPersistenceFailureSurfaces(t *testing.T) {
	repo := newStudentRepoStub()
	repo.createErr = errors.New("connection refused")
	svc := NewRegistrationService(repo, testValidator(), nil, nil, testLogger())

	_, err := svc.Register(context.Background(), registrationRequest(), OriginPublic)
	require.Error(t, err)
	require.Contains(t, err.Error(), "persist student")
}
