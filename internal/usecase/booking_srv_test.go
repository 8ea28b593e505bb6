package usecase

import (
	"context"
	"testing"
	"time"

	"travel-crm/internal/data/entity"
	"travel-crm/internal/data/repository"
	"travel-crm/internal/dto/request"
	"travel-crm/pkg/apperrors"
	"travel-crm/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type bookingFixture struct {
	bookings  *mockBookingRepo
	packages  *mockPackageRepo
	customers *mockCustomerRepo
	payments  *mockPaymentRepo
	service   BookingService
}

func newBookingFixture() *bookingFixture {
	f := &bookingFixture{
		bookings:  new(mockBookingRepo),
		packages:  new(mockPackageRepo),
		customers: new(mockCustomerRepo),
		payments:  new(mockPaymentRepo),
	}

	repo := &repository.Repository{
		Booking:  f.bookings,
		Package:  f.packages,
		Customer: f.customers,
		Payment:  f.payments,
	}
	config := &utils.Config{
		Booking: utils.BookingConfig{CodePrefix: "TRV"},
	}

	f.service = NewBookingService(repo, &stubTransactor{repo: repo}, config, zap.NewNop())
	return f
}

func testPackage(quota int, price float64) *entity.TravelPackage {
	return &entity.TravelPackage{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		Name:        "Bromo Sunrise",
		Destination: "Bromo",
		Price:       price,
		Quota:       quota,
		StartDate:   time.Now().AddDate(0, 1, 0),
		EndDate:     time.Now().AddDate(0, 1, 3),
		IsActive:    true,
	}
}

func testCustomer() *entity.Customer {
	return &entity.Customer{
		Base:     entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		FullName: "Siti Rahma",
		Email:    "siti@example.com",
		Status:   entity.CustomerStatusProspect,
	}
}

func TestCreateBooking_Success(t *testing.T) {
	f := newBookingFixture()
	customer := testCustomer()
	pkg := testPackage(10, 1_500_000)

	f.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.packages.On("FindByIDForUpdate", mock.Anything, pkg.ID).Return(pkg, nil)
	f.bookings.On("SumActiveParticipants", mock.Anything, pkg.ID, uuid.Nil).Return(4, nil)
	f.bookings.On("Create", mock.Anything, mock.AnythingOfType("*entity.Booking")).Return(nil)

	resp, err := f.service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerID:    customer.ID.String(),
		PackageID:     pkg.ID.String(),
		Participants:  3,
		DepartureDate: "2026-10-01",
	})

	assert.NoError(t, err)
	assert.NotNil(t, resp)
	assert.Equal(t, entity.BookingStatusPending, resp.Status)
	assert.Equal(t, 4_500_000.0, resp.TotalAmount)
	assert.Contains(t, resp.BookingCode, "TRV-")
	f.bookings.AssertExpectations(t)
}

func TestCreateBooking_NotEnoughSlots(t *testing.T) {
	f := newBookingFixture()
	customer := testCustomer()
	pkg := testPackage(10, 1_000_000)

	f.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.packages.On("FindByIDForUpdate", mock.Anything, pkg.ID).Return(pkg, nil)
	// 8 of 10 seats already held; asking for 3 must fail.
	f.bookings.On("SumActiveParticipants", mock.Anything, pkg.ID, uuid.Nil).Return(8, nil)

	resp, err := f.service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerID:    customer.ID.String(),
		PackageID:     pkg.ID.String(),
		Participants:  3,
		DepartureDate: "2026-10-01",
	})

	assert.Nil(t, resp)
	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))
	assert.Contains(t, err.Error(), "not enough slots")
	f.bookings.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateBooking_InactivePackage(t *testing.T) {
	f := newBookingFixture()
	customer := testCustomer()
	pkg := testPackage(10, 1_000_000)
	pkg.IsActive = false

	f.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.packages.On("FindByIDForUpdate", mock.Anything, pkg.ID).Return(pkg, nil)

	_, err := f.service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerID:    customer.ID.String(),
		PackageID:     pkg.ID.String(),
		Participants:  1,
		DepartureDate: "2026-10-01",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))
}

func TestCreateBooking_CustomerNotFound(t *testing.T) {
	f := newBookingFixture()
	customerID := uuid.New()

	f.customers.On("FindByID", mock.Anything, customerID).Return(nil, nil)

	_, err := f.service.CreateBooking(context.Background(), &request.CreateBookingRequest{
		CustomerID:    customerID.String(),
		PackageID:     uuid.New().String(),
		Participants:  1,
		DepartureDate: "2026-10-01",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestUpdateBooking_RecalculatesTotalAmount(t *testing.T) {
	f := newBookingFixture()
	pkg := testPackage(10, 2_000_000)
	booking := &entity.Booking{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		BookingCode:   "TRV-20260901-ABCDEF",
		CustomerID:    uuid.New(),
		PackageID:     pkg.ID,
		Participants:  2,
		TotalAmount:   4_000_000,
		DepartureDate: time.Now().AddDate(0, 1, 0),
		Status:        entity.BookingStatusPending,
	}

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	f.packages.On("FindByIDForUpdate", mock.Anything, pkg.ID).Return(pkg, nil)
	f.bookings.On("SumActiveParticipants", mock.Anything, pkg.ID, booking.ID).Return(3, nil)
	f.bookings.On("Update", mock.Anything, mock.AnythingOfType("*entity.Booking")).Return(nil)
	f.packages.On("FindByID", mock.Anything, pkg.ID).Return(pkg, nil)
	f.payments.On("FindByBookingID", mock.Anything, booking.ID).Return(nil, nil)

	participants := 4
	resp, err := f.service.UpdateBooking(context.Background(), booking.ID.String(), &request.UpdateBookingRequest{
		Participants: &participants,
	})

	assert.NoError(t, err)
	assert.Equal(t, 4, resp.Participants)
	assert.Equal(t, 8_000_000.0, resp.TotalAmount)
}

func TestUpdateBooking_FrozenAfterPayment(t *testing.T) {
	f := newBookingFixture()
	booking := &entity.Booking{
		Base:        entity.Base{ID: uuid.New()},
		Status:      entity.BookingStatusPaid,
		TotalAmount: 3_000_000,
	}

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

	participants := 5
	_, err := f.service.UpdateBooking(context.Background(), booking.ID.String(), &request.UpdateBookingRequest{
		Participants: &participants,
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))
	assert.Contains(t, err.Error(), "cannot modify")
	f.bookings.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestCancelBooking_PendingSucceeds(t *testing.T) {
	f := newBookingFixture()
	booking := &entity.Booking{
		Base:   entity.Base{ID: uuid.New()},
		Status: entity.BookingStatusPending,
	}

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookings.On("UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusCancelled).Return(nil)

	err := f.service.CancelBooking(context.Background(), booking.ID.String())

	assert.NoError(t, err)
	f.bookings.AssertExpectations(t)
}

func TestCancelBooking_PaidIsBlocked(t *testing.T) {
	f := newBookingFixture()
	booking := &entity.Booking{
		Base:   entity.Base{ID: uuid.New()},
		Status: entity.BookingStatusPaid,
	}

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

	err := f.service.CancelBooking(context.Background(), booking.ID.String())

	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))
	f.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestCancelBooking_AlreadyCancelledIsNoOp(t *testing.T) {
	f := newBookingFixture()
	booking := &entity.Booking{
		Base:   entity.Base{ID: uuid.New()},
		Status: entity.BookingStatusCancelled,
	}

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

	err := f.service.CancelBooking(context.Background(), booking.ID.String())

	assert.NoError(t, err)
	f.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateBookingStatus_PaidTriggersTierRecalc(t *testing.T) {
	f := newBookingFixture()
	customer := testCustomer()
	booking := &entity.Booking{
		Base:       entity.Base{ID: uuid.New()},
		CustomerID: customer.ID,
		Status:     entity.BookingStatusPaid,
	}

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookings.On("UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusConfirmed).Return(nil)
	f.bookings.On("CountPaidByCustomer", mock.Anything, customer.ID).Return(int64(1), nil)
	f.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.customers.On("UpdateStatus", mock.Anything, customer.ID, entity.CustomerStatusActive).Return(nil)

	err := f.service.UpdateBookingStatus(context.Background(), booking.ID, entity.BookingStatusConfirmed)

	assert.NoError(t, err)
	f.customers.AssertExpectations(t)
}

func TestUpdateBookingStatus_SameStatusIsNoOp(t *testing.T) {
	f := newBookingFixture()
	booking := &entity.Booking{
		Base:   entity.Base{ID: uuid.New()},
		Status: entity.BookingStatusConfirmed,
	}

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

	err := f.service.UpdateBookingStatus(context.Background(), booking.ID, entity.BookingStatusConfirmed)

	assert.NoError(t, err)
	f.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}
