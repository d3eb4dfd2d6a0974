//go:build unit

package response_test

import (
	"testing"
	"time"

	resdto "ticketbooth/internal/handler/dto/response"
	"ticketbooth/internal/usecase/queries"

	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
)

type ResponseConverterTestSuite struct {
	suite.Suite
}

func TestResponseConverterSuite(t *testing.T) {
	suite.Run(t, new(ResponseConverterTestSuite))
}

func (s *ResponseConverterTestSuite) TestFromOrderView() {
	s.Run("copies every field of the view", func() {
		now := time.Now().UTC()
		view := &queries.OrderView{
			ID:     uuid.New(),
			UserID: uuid.New(),
			Items: []queries.OrderLineItemView{
				{TicketCategoryID: uuid.New(), Name: "VIP", UnitPriceCents: 15000, Quantity: 2},
			},
			Customer:         queries.CustomerInfoView{FirstName: "Jane", LastName: "Doe", Email: "jane@example.com"},
			Billing:          queries.BillingAddressView{Address: "1 Main St", City: "Springfield", ZipCode: "12345"},
			Payment:          queries.PaymentInfoView{LastFour: "4242", CardholderName: "Jane Doe"},
			TotalAmountCents: 30000,
			Status:           "completed",
			CreatedAt:        now,
			UpdatedAt:        now,
		}

		resp, err := resdto.FromOrderView(view)

		s.Require().NoError(err)
		s.Equal(view.ID, resp.ID)
		s.Equal(view.UserID, resp.UserID)
		s.Require().Len(resp.Items, 1)
		s.Equal("VIP", resp.Items[0].Name)
		s.Equal("Jane", resp.Customer.FirstName)
		s.Equal("12345", resp.Billing.ZipCode)
		s.Equal("4242", resp.Payment.LastFour)
		s.Equal(int64(30000), resp.TotalAmountCents)
	})

	s.Run("nil view surfaces the conversion error", func() {
		resp, err := resdto.FromOrderView(nil)

		s.Require().Error(err)
		s.Nil(resp)
	})
}

func (s *ResponseConverterTestSuite) TestFromOrderPage() {
	page := &queries.OrderPage{
		Total:  3,
		Limit:  2,
		Offset: 0,
		Orders: []queries.OrderListItem{
			{ID: uuid.New(), TotalAmountCents: 5000, Status: "completed", ItemCount: 1},
			{ID: uuid.New(), TotalAmountCents: 7500, Status: "completed", ItemCount: 2},
		},
	}

	resp, err := resdto.FromOrderPage(page)

	s.Require().NoError(err)
	s.Equal(int64(3), resp.Total)
	s.Equal(int32(2), resp.Limit)
	s.Require().Len(resp.Orders, 2)
	s.Equal(page.Orders[1].ID, resp.Orders[1].ID)
}

func (s *ResponseConverterTestSuite) TestFromCartView() {
	resp, err := resdto.FromCartView(&queries.CartView{})

	s.Require().NoError(err)
	s.NotNil(resp.Lines)
	s.Empty(resp.Lines)
}
