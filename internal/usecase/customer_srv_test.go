package usecase

import (
	"context"
	"testing"

	"travel-crm/internal/data/entity"
	"travel-crm/internal/data/repository"
	"travel-crm/internal/dto/request"
	"travel-crm/pkg/apperrors"
	"travel-crm/pkg/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"
)

type customerFixture struct {
	customers *mockCustomerRepo
	bookings  *mockBookingRepo
	service   CustomerService
}

func newCustomerFixture() *customerFixture {
	f := &customerFixture{
		customers: new(mockCustomerRepo),
		bookings:  new(mockBookingRepo),
	}

	repo := &repository.Repository{
		Customer: f.customers,
		Booking:  f.bookings,
	}

	f.service = NewCustomerService(repo, zap.NewNop())
	return f
}

func TestCreateCustomer_Success(t *testing.T) {
	f := newCustomerFixture()

	f.customers.On("FindByEmail", mock.Anything, "budi@example.com").Return(nil, nil)
	f.customers.On("Create", mock.Anything, mock.MatchedBy(func(c *entity.Customer) bool {
		// Password must be stored hashed, never verbatim.
		return c.Status == entity.CustomerStatusProspect &&
			c.PasswordHash != "" &&
			c.PasswordHash != "rahasia-banget" &&
			utils.CheckPassword(c.PasswordHash, "rahasia-banget")
	})).Return(nil)

	resp, err := f.service.CreateCustomer(context.Background(), &request.CreateCustomerRequest{
		FullName: "Budi Santoso",
		Email:    "budi@example.com",
		Password: "rahasia-banget",
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.CustomerStatusProspect, resp.Status)
	f.customers.AssertExpectations(t)
}

func TestCreateCustomer_DuplicateEmail(t *testing.T) {
	f := newCustomerFixture()
	existing := testCustomer()

	f.customers.On("FindByEmail", mock.Anything, existing.Email).Return(existing, nil)

	_, err := f.service.CreateCustomer(context.Background(), &request.CreateCustomerRequest{
		FullName: "Siti Rahma",
		Email:    existing.Email,
		Password: "rahasia-banget",
	})

	assert.True(t, apperrors.IsKind(err, apperrors.KindConflict))
	f.customers.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestRecalculateStatus_Thresholds(t *testing.T) {
	tests := []struct {
		name         string
		paidBookings int64
		current      entity.CustomerStatus
		want         entity.CustomerStatus
		wantUpdate   bool
	}{
		{"no paid bookings stays prospect", 0, entity.CustomerStatusProspect, entity.CustomerStatusProspect, false},
		{"first paid booking promotes to active", 1, entity.CustomerStatusProspect, entity.CustomerStatusActive, true},
		{"two paid bookings stays active", 2, entity.CustomerStatusActive, entity.CustomerStatusActive, false},
		{"third paid booking promotes to loyal", 3, entity.CustomerStatusActive, entity.CustomerStatusLoyal, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newCustomerFixture()
			customer := testCustomer()
			customer.Status = tt.current

			f.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
			f.bookings.On("CountPaidByCustomer", mock.Anything, customer.ID).Return(tt.paidBookings, nil)
			if tt.wantUpdate {
				f.customers.On("UpdateStatus", mock.Anything, customer.ID, tt.want).Return(nil)
			}

			resp, err := f.service.RecalculateStatus(context.Background(), customer.ID.String())

			assert.NoError(t, err)
			assert.Equal(t, tt.want, resp.Status)
			if !tt.wantUpdate {
				f.customers.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
			}
			f.customers.AssertExpectations(t)
		})
	}
}

func TestUpdateCustomer_NeverTouchesStatus(t *testing.T) {
	f := newCustomerFixture()
	customer := testCustomer()
	customer.Status = entity.CustomerStatusLoyal

	f.customers.On("FindByID", mock.Anything, customer.ID).Return(customer, nil)
	f.customers.On("Update", mock.Anything, mock.MatchedBy(func(c *entity.Customer) bool {
		return c.Status == entity.CustomerStatusLoyal && c.FullName == "Siti R. Dewi"
	})).Return(nil)

	name := "Siti R. Dewi"
	resp, err := f.service.UpdateCustomer(context.Background(), customer.ID.String(), &request.UpdateCustomerRequest{
		FullName: &name,
	})

	assert.NoError(t, err)
	assert.Equal(t, entity.CustomerStatusLoyal, resp.Status)
	f.customers.AssertNotCalled(t, "UpdateStatus", mock.Anything, mock.Anything, mock.Anything)
}

func TestDeriveCustomerStatus(t *testing.T) {
	assert.Equal(t, entity.CustomerStatusProspect, entity.DeriveCustomerStatus(0))
	assert.Equal(t, entity.CustomerStatusActive, entity.DeriveCustomerStatus(1))
	assert.Equal(t, entity.CustomerStatusActive, entity.DeriveCustomerStatus(2))
	assert.Equal(t, entity.CustomerStatusLoyal, entity.DeriveCustomerStatus(3))
	assert.Equal(t, entity.CustomerStatusLoyal, entity.DeriveCustomerStatus(7))
}
