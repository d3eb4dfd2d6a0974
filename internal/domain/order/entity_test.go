//go:build unit

package order_test

import (
	"testing"

	"ticketbooth/internal/domain/order"
	"ticketbooth/tests/common/builder"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testCase struct {
	name   string
	mutate func(*builder.CheckoutBuilder)
	errIs  error
}

func TestOrder(t *testing.T) {
	t.Run("basic success case", func(t *testing.T) {
		actual, err := builder.NewCheckoutBuilder().BuildDomain()
		require.NoError(t, err)
		require.NotNil(t, actual)

		assert.NotEqual(t, uuid.Nil, actual.ID())
		assert.Equal(t, order.StatusCompleted, actual.Status())
		assert.Len(t, actual.Items(), 1)
		assert.Equal(t, int64(10000), actual.TotalAmount().Cents())
		assert.Equal(t, "4242", actual.Payment().LastFour)
	})

	t.Run("line item validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "zero quantity",
				mutate: func(b *builder.CheckoutBuilder) { b.WithQuantity(0) },
				errIs:  order.ErrInvalidQuantity,
			},
			{
				name:   "negative quantity",
				mutate: func(b *builder.CheckoutBuilder) { b.WithQuantity(-1) },
				errIs:  order.ErrInvalidQuantity,
			},
			{
				name:   "minimum valid quantity",
				mutate: func(b *builder.CheckoutBuilder) { b.WithQuantity(1) },
			},
			{
				name:   "empty item name",
				mutate: func(b *builder.CheckoutBuilder) { b.WithCategoryName("") },
				errIs:  order.ErrEmptyItemName,
			},
			{
				name:   "negative price",
				mutate: func(b *builder.CheckoutBuilder) { b.WithPriceCents(-1) },
				errIs:  order.ErrNegativeAmount,
			},
			{
				name:   "zero price is allowed",
				mutate: func(b *builder.CheckoutBuilder) { b.WithPriceCents(0) },
			},
		})
	})

	t.Run("customer info validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "missing first name",
				mutate: func(b *builder.CheckoutBuilder) { b.WithFirstName("") },
				errIs:  order.ErrMissingContactInfo,
			},
			{
				name:   "whitespace only last name",
				mutate: func(b *builder.CheckoutBuilder) { b.WithLastName("   ") },
				errIs:  order.ErrMissingContactInfo,
			},
			{
				name:   "missing email",
				mutate: func(b *builder.CheckoutBuilder) { b.WithEmail("") },
				errIs:  order.ErrMissingContactInfo,
			},
			{
				name:   "phone is optional",
				mutate: func(b *builder.CheckoutBuilder) { b.Phone = "" },
			},
		})
	})

	t.Run("billing address validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "missing street address",
				mutate: func(b *builder.CheckoutBuilder) { b.WithAddress("") },
				errIs:  order.ErrMissingAddress,
			},
			{
				name:   "missing zip code",
				mutate: func(b *builder.CheckoutBuilder) { b.WithZipCode("") },
				errIs:  order.ErrMissingAddress,
			},
			{
				name:   "state is optional",
				mutate: func(b *builder.CheckoutBuilder) { b.State = "" },
			},
		})
	})

	t.Run("payment info validation", func(t *testing.T) {
		runCases(t, []testCase{
			{
				name:   "non-numeric last four",
				mutate: func(b *builder.CheckoutBuilder) { b.WithCardNumber("abcd") },
				errIs:  order.ErrInvalidCardInfo,
			},
			{
				name:   "missing cardholder name",
				mutate: func(b *builder.CheckoutBuilder) { b.WithCardholderName("") },
				errIs:  order.ErrInvalidCardInfo,
			},
		})
	})

	t.Run("total is derived from line items", func(t *testing.T) {
		price, err := order.NewMoney(2500)
		require.NoError(t, err)

		first, err := order.NewLineItem(uuid.New(), "VIP", price, 2)
		require.NoError(t, err)
		second, err := order.NewLineItem(uuid.New(), "General", price, 3)
		require.NoError(t, err)

		b := builder.NewCheckoutBuilder()
		customer, err := order.NewCustomerInfo(b.FirstName, b.LastName, b.Email, b.Phone)
		require.NoError(t, err)
		billing, err := order.NewBillingAddress(b.Address, b.City, b.State, b.ZipCode)
		require.NoError(t, err)
		payment, err := order.NewPaymentInfo("4242", b.CardholderName)
		require.NoError(t, err)

		o, err := order.NewOrder(uuid.New(), []order.LineItem{first, second}, customer, billing, payment)
		require.NoError(t, err)

		assert.Equal(t, int64(12500), o.TotalAmount().Cents())
		assert.NoError(t, o.VerifyTotal())
	})

	t.Run("order requires at least one line item", func(t *testing.T) {
		b := builder.NewCheckoutBuilder()
		customer, err := order.NewCustomerInfo(b.FirstName, b.LastName, b.Email, b.Phone)
		require.NoError(t, err)
		billing, err := order.NewBillingAddress(b.Address, b.City, b.State, b.ZipCode)
		require.NoError(t, err)
		payment, err := order.NewPaymentInfo("4242", b.CardholderName)
		require.NoError(t, err)

		o, err := order.NewOrder(uuid.New(), nil, customer, billing, payment)
		require.Nil(t, o)
		require.ErrorIs(t, err, order.ErrNoLineItems)
	})

	t.Run("reconstructed order detects tampered total", func(t *testing.T) {
		valid, err := builder.NewCheckoutBuilder().BuildDomain()
		require.NoError(t, err)

		tampered, err := order.NewMoney(valid.TotalAmount().Cents() + 1)
		require.NoError(t, err)

		o := order.ReconstructOrder(
			valid.ID(), valid.UserID(), valid.Items(),
			valid.Customer(), valid.Billing(), valid.Payment(),
			tampered, valid.Status(), valid.CreatedAt(), valid.UpdatedAt(),
		)
		require.ErrorIs(t, o.VerifyTotal(), order.ErrTotalMismatch)
	})

	t.Run("UUID uniqueness", func(t *testing.T) {
		first, err1 := builder.NewCheckoutBuilder().BuildDomain()
		second, err2 := builder.NewCheckoutBuilder().BuildDomain()

		require.NoError(t, err1)
		require.NoError(t, err2)
		assert.NotEqual(t, first.ID(), second.ID())
	})
}

func runCases(t *testing.T, cases []testCase) {
	t.Helper()
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			actual, err := builder.NewCheckoutBuilder().With(c.mutate).BuildDomain()

			if c.errIs == nil {
				require.NotNil(t, actual)
				require.NoError(t, err)
			} else {
				require.Nil(t, actual)
				require.Error(t, err)
				require.ErrorIs(t, err, c.errIs)
			}
		})
	}
}
