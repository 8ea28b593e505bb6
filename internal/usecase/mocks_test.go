package usecase

import (
	"context"

	"travel-crm/internal/data/entity"
	"travel-crm/internal/data/repository"
	"travel-crm/internal/gateway"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

// stubTransactor runs the unit of work directly against the supplied
// mock-backed repository, no real transaction involved.
type stubTransactor struct {
	repo *repository.Repository
}

func (t *stubTransactor) WithinTx(ctx context.Context, fn func(r *repository.Repository) error) error {
	return fn(t.repo)
}

type mockBookingRepo struct {
	mock.Mock
}

func (m *mockBookingRepo) Create(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockBookingRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Booking, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindByBookingCode(ctx context.Context, code string) (*entity.Booking, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Booking, error) {
	args := m.Called(ctx, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Booking), args.Error(1)
}

func (m *mockBookingRepo) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockBookingRepo) Update(ctx context.Context, booking *entity.Booking) error {
	args := m.Called(ctx, booking)
	return args.Error(0)
}

func (m *mockBookingRepo) UpdateStatus(ctx context.Context, bookingID uuid.UUID, status entity.BookingStatus) error {
	args := m.Called(ctx, bookingID, status)
	return args.Error(0)
}

func (m *mockBookingRepo) SumActiveParticipants(ctx context.Context, packageID, exclude uuid.UUID) (int, error) {
	args := m.Called(ctx, packageID, exclude)
	return args.Int(0), args.Error(1)
}

func (m *mockBookingRepo) CountPaidByCustomer(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

type mockPackageRepo struct {
	mock.Mock
}

func (m *mockPackageRepo) Create(ctx context.Context, pkg *entity.TravelPackage) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *mockPackageRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.TravelPackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TravelPackage), args.Error(1)
}

func (m *mockPackageRepo) FindByIDForUpdate(ctx context.Context, id uuid.UUID) (*entity.TravelPackage, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.TravelPackage), args.Error(1)
}

func (m *mockPackageRepo) FindAll(ctx context.Context, activeOnly bool, limit, offset int) ([]*entity.TravelPackage, error) {
	args := m.Called(ctx, activeOnly, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.TravelPackage), args.Error(1)
}

func (m *mockPackageRepo) CountAll(ctx context.Context, activeOnly bool) (int64, error) {
	args := m.Called(ctx, activeOnly)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockPackageRepo) Update(ctx context.Context, pkg *entity.TravelPackage) error {
	args := m.Called(ctx, pkg)
	return args.Error(0)
}

func (m *mockPackageRepo) SetActive(ctx context.Context, id uuid.UUID, active bool) error {
	args := m.Called(ctx, id, active)
	return args.Error(0)
}

type mockCustomerRepo struct {
	mock.Mock
}

func (m *mockCustomerRepo) Create(ctx context.Context, customer *entity.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *mockCustomerRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Customer, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Customer), args.Error(1)
}

func (m *mockCustomerRepo) FindByEmail(ctx context.Context, email string) (*entity.Customer, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Customer), args.Error(1)
}

func (m *mockCustomerRepo) FindAll(ctx context.Context, limit, offset int) ([]*entity.Customer, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Customer), args.Error(1)
}

func (m *mockCustomerRepo) CountAll(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockCustomerRepo) Update(ctx context.Context, customer *entity.Customer) error {
	args := m.Called(ctx, customer)
	return args.Error(0)
}

func (m *mockCustomerRepo) UpdateStatus(ctx context.Context, customerID uuid.UUID, status entity.CustomerStatus) error {
	args := m.Called(ctx, customerID, status)
	return args.Error(0)
}

type mockPaymentRepo struct {
	mock.Mock
}

func (m *mockPaymentRepo) Create(ctx context.Context, payment *entity.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

func (m *mockPaymentRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *mockPaymentRepo) FindByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *mockPaymentRepo) FindPendingByBookingID(ctx context.Context, bookingID uuid.UUID) (*entity.Payment, error) {
	args := m.Called(ctx, bookingID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *mockPaymentRepo) FindByOrderID(ctx context.Context, orderID string) (*entity.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *mockPaymentRepo) FindByOrderIDForUpdate(ctx context.Context, orderID string) (*entity.Payment, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Payment), args.Error(1)
}

func (m *mockPaymentRepo) Update(ctx context.Context, payment *entity.Payment) error {
	args := m.Called(ctx, payment)
	return args.Error(0)
}

type mockSessionRepo struct {
	mock.Mock
}

func (m *mockSessionRepo) Create(ctx context.Context, session *entity.Session) error {
	args := m.Called(ctx, session)
	return args.Error(0)
}

func (m *mockSessionRepo) FindValidSession(ctx context.Context, token string) (*entity.Session, error) {
	args := m.Called(ctx, token)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.Session), args.Error(1)
}

func (m *mockSessionRepo) Revoke(ctx context.Context, token string) error {
	args := m.Called(ctx, token)
	return args.Error(0)
}

func (m *mockSessionRepo) RevokeAllForActor(ctx context.Context, actorID uuid.UUID, actorType string) error {
	args := m.Called(ctx, actorID, actorType)
	return args.Error(0)
}

func (m *mockSessionRepo) CleanExpiredSessions(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

type mockUserRepo struct {
	mock.Mock
}

func (m *mockUserRepo) Create(ctx context.Context, user *entity.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *mockUserRepo) FindByID(ctx context.Context, id uuid.UUID) (*entity.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

func (m *mockUserRepo) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entity.User), args.Error(1)
}

type mockInteractionRepo struct {
	mock.Mock
}

func (m *mockInteractionRepo) Create(ctx context.Context, interaction *entity.Interaction) error {
	args := m.Called(ctx, interaction)
	return args.Error(0)
}

func (m *mockInteractionRepo) FindByCustomerID(ctx context.Context, customerID uuid.UUID, limit, offset int) ([]*entity.Interaction, error) {
	args := m.Called(ctx, customerID, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entity.Interaction), args.Error(1)
}

func (m *mockInteractionRepo) CountByCustomerID(ctx context.Context, customerID uuid.UUID) (int64, error) {
	args := m.Called(ctx, customerID)
	return args.Get(0).(int64), args.Error(1)
}

type mockGateway struct {
	mock.Mock
}

func (m *mockGateway) CreateTransaction(ctx context.Context, req *gateway.TransactionRequest) (*gateway.TransactionResponse, error) {
	args := m.Called(ctx, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.TransactionResponse), args.Error(1)
}

func (m *mockGateway) TransactionStatus(ctx context.Context, orderID string) (*gateway.TransactionStatusResponse, error) {
	args := m.Called(ctx, orderID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*gateway.TransactionStatusResponse), args.Error(1)
}
