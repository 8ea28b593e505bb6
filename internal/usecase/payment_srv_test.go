package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"travel-crm/internal/data/entity"
	"travel-crm/internal/data/repository"
	"travel-crm/internal/dto/request"
	"travel-crm/internal/gateway"
	"travel-crm/pkg/apperrors"
	"travel-crm/pkg/utils"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

const testServerKey = "SB-Mid-server-testkey"

type paymentFixture struct {
	bookings  *mockBookingRepo
	packages  *mockPackageRepo
	customers *mockCustomerRepo
	payments  *mockPaymentRepo
	gw        *mockGateway
	service   PaymentService
}

func newPaymentFixture() *paymentFixture {
	f := &paymentFixture{
		bookings:  new(mockBookingRepo),
		packages:  new(mockPackageRepo),
		customers: new(mockCustomerRepo),
		payments:  new(mockPaymentRepo),
		gw:        new(mockGateway),
	}

	repo := &repository.Repository{
		Booking:  f.bookings,
		Package:  f.packages,
		Customer: f.customers,
		Payment:  f.payments,
	}
	config := &utils.Config{
		Gateway: utils.GatewayConfig{
			ServerKey:   testServerKey,
			ExpiryHours: 24,
		},
	}

	f.service = NewPaymentService(repo, &stubTransactor{repo: repo}, f.gw, config, zap.NewNop())
	return f
}

func pendingBooking() *entity.Booking {
	return &entity.Booking{
		Base:          entity.Base{ID: uuid.New(), CreatedAt: time.Now(), UpdatedAt: time.Now()},
		BookingCode:   "TRV-20260901-QWERTY",
		CustomerID:    uuid.New(),
		PackageID:     uuid.New(),
		Participants:  2,
		TotalAmount:   3_000_000,
		DepartureDate: time.Now().AddDate(0, 1, 0),
		Status:        entity.BookingStatusPending,
	}
}

func signedNotification(orderID, transactionStatus, grossAmount string) *request.PaymentNotificationRequest {
	return &request.PaymentNotificationRequest{
		OrderID:           orderID,
		TransactionStatus: transactionStatus,
		GrossAmount:       grossAmount,
		StatusCode:        "200",
		SignatureKey:      gateway.Signature(orderID, "200", grossAmount, testServerKey),
	}
}

func TestInitiatePayment_Success(t *testing.T) {
	f := newPaymentFixture()
	booking := pendingBooking()
	customer := testCustomer()
	customer.Base.ID = booking.CustomerID
	pkg := testPackage(10, 1_500_000)
	pkg.Base.ID = booking.PackageID

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	f.payments.On("FindPendingByBookingID", mock.Anything, booking.ID).Return(nil, nil)
	f.customers.On("FindByID", mock.Anything, booking.CustomerID).Return(customer, nil)
	f.packages.On("FindByID", mock.Anything, booking.PackageID).Return(pkg, nil)
	f.gw.On("CreateTransaction", mock.Anything, mock.AnythingOfType("*gateway.TransactionRequest")).
		Return(&gateway.TransactionResponse{Token: "snap-token", RedirectURL: "https://pay.example/abc"}, nil)
	f.payments.On("Create", mock.Anything, mock.AnythingOfType("*entity.Payment")).Return(nil)

	resp, err := f.service.InitiatePayment(context.Background(), booking.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, "snap-token", resp.Token)
	assert.Equal(t, entity.PaymentStatusPending, resp.Status)
	assert.Equal(t, booking.TotalAmount, resp.Amount)
	assert.Contains(t, resp.OrderID, booking.BookingCode)
	f.payments.AssertExpectations(t)
}

func TestInitiatePayment_ReturnsExistingPendingPayment(t *testing.T) {
	f := newPaymentFixture()
	booking := pendingBooking()
	existing := &entity.Payment{
		Base:        entity.Base{ID: uuid.New(), CreatedAt: time.Now()},
		BookingID:   booking.ID,
		OrderID:     booking.BookingCode + "-1756000000-AB12",
		Token:       "previous-token",
		RedirectURL: "https://pay.example/prev",
		Amount:      booking.TotalAmount,
		Status:      entity.PaymentStatusPending,
		ExpiredAt:   time.Now().Add(12 * time.Hour),
	}

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	f.payments.On("FindPendingByBookingID", mock.Anything, booking.ID).Return(existing, nil)

	resp, err := f.service.InitiatePayment(context.Background(), booking.ID.String())

	assert.NoError(t, err)
	assert.Equal(t, "previous-token", resp.Token)
	assert.Equal(t, existing.OrderID, resp.OrderID)
	f.gw.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
	f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestInitiatePayment_RejectsNonPendingBooking(t *testing.T) {
	f := newPaymentFixture()
	booking := pendingBooking()
	booking.Status = entity.BookingStatusPaid

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

	_, err := f.service.InitiatePayment(context.Background(), booking.ID.String())

	assert.True(t, apperrors.IsKind(err, apperrors.KindInvalidState))
	f.gw.AssertNotCalled(t, "CreateTransaction", mock.Anything, mock.Anything)
}

func TestInitiatePayment_GatewayFailureLeavesNoRow(t *testing.T) {
	f := newPaymentFixture()
	booking := pendingBooking()
	customer := testCustomer()
	customer.Base.ID = booking.CustomerID
	pkg := testPackage(10, 1_500_000)
	pkg.Base.ID = booking.PackageID

	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	f.payments.On("FindPendingByBookingID", mock.Anything, booking.ID).Return(nil, nil)
	f.customers.On("FindByID", mock.Anything, booking.CustomerID).Return(customer, nil)
	f.packages.On("FindByID", mock.Anything, booking.PackageID).Return(pkg, nil)
	f.gw.On("CreateTransaction", mock.Anything, mock.Anything).
		Return(nil, errors.New("provider unreachable"))

	_, err := f.service.InitiatePayment(context.Background(), booking.ID.String())

	assert.True(t, apperrors.IsKind(err, apperrors.KindInternal))
	f.payments.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestProcessNotification_InvalidSignature(t *testing.T) {
	f := newPaymentFixture()

	req := signedNotification("TRV-20260901-QWERTY-1756000000-AB12", "settlement", "3000000.00")
	req.SignatureKey = "forged"

	_, err := f.service.ProcessNotification(context.Background(), req)

	assert.True(t, apperrors.IsKind(err, apperrors.KindForbidden))
	f.payments.AssertNotCalled(t, "FindByOrderIDForUpdate", mock.Anything, mock.Anything)
}

func TestProcessNotification_SettlementMarksPaid(t *testing.T) {
	f := newPaymentFixture()
	booking := pendingBooking()
	customer := testCustomer()
	customer.Base.ID = booking.CustomerID
	payment := &entity.Payment{
		Base:      entity.Base{ID: uuid.New()},
		BookingID: booking.ID,
		OrderID:   booking.BookingCode + "-1756000000-AB12",
		Amount:    booking.TotalAmount,
		Status:    entity.PaymentStatusPending,
	}

	f.payments.On("FindByOrderIDForUpdate", mock.Anything, payment.OrderID).Return(payment, nil)
	f.payments.On("Update", mock.Anything, payment).Return(nil)
	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookings.On("UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusPaid).Return(nil)
	f.bookings.On("CountPaidByCustomer", mock.Anything, booking.CustomerID).Return(int64(1), nil)
	f.customers.On("FindByID", mock.Anything, booking.CustomerID).Return(customer, nil)
	f.customers.On("UpdateStatus", mock.Anything, booking.CustomerID, entity.CustomerStatusActive).Return(nil)

	resp, err := f.service.ProcessNotification(context.Background(),
		signedNotification(payment.OrderID, "settlement", "3000000.00"))

	assert.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSuccess, resp.Status)
	assert.NotNil(t, payment.PaidAt)
	f.bookings.AssertExpectations(t)
	f.customers.AssertExpectations(t)
}

func TestProcessNotification_RedeliveryIsNoOp(t *testing.T) {
	f := newPaymentFixture()
	booking := pendingBooking()
	booking.Status = entity.BookingStatusPaid
	paidAt := time.Now().Add(-time.Hour)
	payment := &entity.Payment{
		Base:      entity.Base{ID: uuid.New()},
		BookingID: booking.ID,
		OrderID:   booking.BookingCode + "-1756000000-AB12",
		Status:    entity.PaymentStatusSuccess,
		PaidAt:    &paidAt,
	}

	f.payments.On("FindByOrderIDForUpdate", mock.Anything, payment.OrderID).Return(payment, nil)
	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)

	resp, err := f.service.ProcessNotification(context.Background(),
		signedNotification(payment.OrderID, "settlement", "3000000.00"))

	assert.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSuccess, resp.Status)
	assert.Equal(t, paidAt, *payment.PaidAt)
	f.payments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	f.bookings.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestProcessNotification_TerminalNeverRegressesToPending(t *testing.T) {
	f := newPaymentFixture()
	paidAt := time.Now()
	payment := &entity.Payment{
		Base:      entity.Base{ID: uuid.New()},
		BookingID: uuid.New(),
		OrderID:   "TRV-20260901-QWERTY-1756000000-AB12",
		Status:    entity.PaymentStatusSuccess,
		PaidAt:    &paidAt,
	}

	f.payments.On("FindByOrderIDForUpdate", mock.Anything, payment.OrderID).Return(payment, nil)

	resp, err := f.service.ProcessNotification(context.Background(),
		signedNotification(payment.OrderID, "pending", "3000000.00"))

	assert.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusSuccess, resp.Status)
	f.payments.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
}

func TestProcessNotification_ExpireCancelsBooking(t *testing.T) {
	f := newPaymentFixture()
	booking := pendingBooking()
	payment := &entity.Payment{
		Base:      entity.Base{ID: uuid.New()},
		BookingID: booking.ID,
		OrderID:   booking.BookingCode + "-1756000000-AB12",
		Status:    entity.PaymentStatusPending,
	}

	f.payments.On("FindByOrderIDForUpdate", mock.Anything, payment.OrderID).Return(payment, nil)
	f.payments.On("Update", mock.Anything, payment).Return(nil)
	f.bookings.On("FindByID", mock.Anything, booking.ID).Return(booking, nil)
	f.bookings.On("UpdateStatus", mock.Anything, booking.ID, entity.BookingStatusCancelled).Return(nil)

	resp, err := f.service.ProcessNotification(context.Background(),
		signedNotification(payment.OrderID, "expire", "3000000.00"))

	assert.NoError(t, err)
	assert.Equal(t, entity.PaymentStatusExpired, resp.Status)
	assert.Nil(t, payment.PaidAt)
	f.bookings.AssertExpectations(t)
	// Expiry is not a paid state, so no tier recalc.
	f.bookings.AssertNotCalled(t, "CountPaidByCustomer", mock.Anything, mock.Anything)
}

func TestProcessNotification_UnknownOrder(t *testing.T) {
	f := newPaymentFixture()
	orderID := "TRV-20260901-NOSUCH-1756000000-AB12"

	f.payments.On("FindByOrderIDForUpdate", mock.Anything, orderID).Return(nil, nil)

	_, err := f.service.ProcessNotification(context.Background(),
		signedNotification(orderID, "settlement", "3000000.00"))

	assert.True(t, apperrors.IsKind(err, apperrors.KindNotFound))
}

func TestMapProviderStatus(t *testing.T) {
	tests := []struct {
		name              string
		transactionStatus string
		fraudStatus       string
		wantPayment       entity.PaymentStatus
		wantBooking       entity.BookingStatus
		wantErr           bool
	}{
		{"capture accepted", "capture", "accept", entity.PaymentStatusSuccess, entity.BookingStatusPaid, false},
		{"capture without fraud status", "capture", "", entity.PaymentStatusSuccess, entity.BookingStatusPaid, false},
		{"capture challenged", "capture", "challenge", entity.PaymentStatusPending, "", false},
		{"capture denied fraud", "capture", "deny", "", "", true},
		{"settlement", "settlement", "", entity.PaymentStatusSuccess, entity.BookingStatusPaid, false},
		{"pending", "pending", "", entity.PaymentStatusPending, "", false},
		{"deny", "deny", "", entity.PaymentStatusFailed, entity.BookingStatusCancelled, false},
		{"cancel", "cancel", "", entity.PaymentStatusFailed, entity.BookingStatusCancelled, false},
		{"expire", "expire", "", entity.PaymentStatusExpired, entity.BookingStatusCancelled, false},
		{"refund keeps booking", "refund", "", entity.PaymentStatusRefund, "", false},
		{"unknown status", "chargeback", "", "", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			paymentStatus, bookingStatus, err := mapProviderStatus(tt.transactionStatus, tt.fraudStatus)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.wantPayment, paymentStatus)
			assert.Equal(t, tt.wantBooking, bookingStatus)
		})
	}
}
