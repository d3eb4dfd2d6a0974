//go:build unit

package api_test

import (
	"errors"
	"net/http"
	"testing"

	"ticketbooth/internal/domain/user"
	"ticketbooth/internal/handler/api"
	resdto "ticketbooth/internal/handler/dto/response"
	"ticketbooth/internal/usecase/commands"
	"ticketbooth/internal/usecase/queries"
	"ticketbooth/tests/common/builder"
	"ticketbooth/tests/common/httptest"
	"ticketbooth/tests/common/testutil"
	commandsmock "ticketbooth/tests/mock/commands"
	queriesmock "ticketbooth/tests/mock/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type OrderHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCheckoutCommands
	mockQueries  *queriesmock.MockOrderQueries
	handler      *api.OrderHandler
	userID       uuid.UUID
}

func (s *OrderHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCheckoutCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockOrderQueries(s.mockCtrl)
	s.handler = api.NewOrderHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	// Mock authentication middleware for testing
	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleCustomer)
		c.Next()
	}

	s.router.POST("/orders/checkout", authMiddleware, s.handler.Checkout)
	s.router.GET("/orders/:id", authMiddleware, s.handler.GetOrder)
	s.router.GET("/orders", authMiddleware, s.handler.ListOrders)
}

func (s *OrderHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestOrderHandlerSuite(t *testing.T) {
	suite.Run(t, new(OrderHandlerTestSuite))
}

type testCaseOrder struct {
	name       string
	mutate     func(m map[string]any)
	expectCode int
}

// ================================================================================
// TestCheckout
// ================================================================================

func (s *OrderHandlerTestSuite) TestCheckout() {
	url := "/orders/checkout"

	reqBody := builder.NewCheckoutBuilder().BuildCheckoutRequestDTO()
	returnView := builder.NewCheckoutBuilder().BuildOrderView()

	s.Run("success: returns 201 Created with the completed order", func() {
		s.mockCommands.EXPECT().Checkout(gomock.Any(), gomock.Any(), s.userID).
			Return(&commands.CheckoutResult{Order: returnView}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusCreated, &body)
		s.Equal(returnView.ID, body.ID)
		s.Equal(returnView.TotalAmountCents, body.TotalAmountCents)
		s.Len(body.Items, 1)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		validationCases := []testCaseOrder{
			{name: "missing field: customer_info", mutate: testutil.Field("customer_info", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: billing_address", mutate: testutil.Field("billing_address", nil), expectCode: http.StatusBadRequest},
			{name: "missing field: payment_info", mutate: testutil.Field("payment_info", nil), expectCode: http.StatusBadRequest},
			{name: "invalid customer email", mutate: testutil.NestedField("customer_info", "email", "not-an-email"), expectCode: http.StatusBadRequest},
			{name: "missing first name", mutate: testutil.NestedField("customer_info", "first_name", nil), expectCode: http.StatusBadRequest},
			{name: "missing billing zip code", mutate: testutil.NestedField("billing_address", "zip_code", nil), expectCode: http.StatusBadRequest},
			{name: "card month above 12", mutate: testutil.NestedField("payment_info", "exp_month", 13), expectCode: http.StatusBadRequest},
			{name: "card month below 1", mutate: testutil.NestedField("payment_info", "exp_month", 0), expectCode: http.StatusBadRequest},
			{name: "missing cvc", mutate: testutil.NestedField("payment_info", "cvc", nil), expectCode: http.StatusBadRequest},
		}

		for _, tc := range validationCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "empty cart", commandsError: commands.ErrEmptyCart, expectedStatus: http.StatusBadRequest},
			{name: "domain validation failure", commandsError: commands.ErrDomainValidation, expectedStatus: http.StatusBadRequest},
			{name: "vanished ticket category", commandsError: commands.ErrTicketCategoryNotFound, expectedStatus: http.StatusNotFound},
			{name: "insufficient stock", commandsError: commands.ErrInsufficientStock, expectedStatus: http.StatusConflict},
			{name: "payment declined", commandsError: commands.ErrPaymentDeclined, expectedStatus: http.StatusPaymentRequired},
			{name: "payment gateway failure", commandsError: commands.ErrPaymentFailed, expectedStatus: http.StatusPaymentRequired},
			{name: "unexpected failure", commandsError: errors.New("database down"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().Checkout(gomock.Any(), gomock.Any(), s.userID).
					Return(nil, tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})
}

// ================================================================================
// TestGetOrder
// ================================================================================

func (s *OrderHandlerTestSuite) TestGetOrder() {
	returnView := builder.NewCheckoutBuilder().BuildOrderView()

	s.Run("success: returns 200 OK with the order", func() {
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), returnView.ID, s.userID, user.RoleCustomer.String()).
			Return(returnView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+returnView.ID.String(), nil, "bearer-token")

		var body resdto.OrderResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(returnView.ID, body.ID)
	})

	s.Run("error: 400 Bad Request for malformed id", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/not-a-uuid", nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusBadRequest, "Invalid order ID")
	})

	s.Run("error: 404 Not Found for missing or foreign order", func() {
		id := uuid.New()
		s.mockQueries.EXPECT().
			GetByID(gomock.Any(), id, s.userID, user.RoleCustomer.String()).
			Return(nil, queries.ErrOrderNotFound).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+id.String(), nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusNotFound, "Order not found")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, "/orders/"+returnView.ID.String(), nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestListOrders
// ================================================================================

func (s *OrderHandlerTestSuite) TestListOrders() {
	url := "/orders"

	s.Run("success: returns the user's order page", func() {
		bld := builder.NewCheckoutBuilder()
		page := &queries.OrderPage{
			Total:  2,
			Limit:  20,
			Offset: 0,
			Orders: []queries.OrderListItem{bld.BuildListItem(), bld.BuildListItem()},
		}
		s.mockQueries.EXPECT().ListForUser(gomock.Any(), s.userID, 20, 0).
			Return(page, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.OrderPageResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(int64(2), body.Total)
		s.Len(body.Orders, 2)
	})

	s.Run("success: passes limit and offset through", func() {
		s.mockQueries.EXPECT().ListForUser(gomock.Any(), s.userID, 5, 10).
			Return(&queries.OrderPage{Limit: 5, Offset: 10, Orders: []queries.OrderListItem{}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=5&offset=10", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: omitted limit defaults to twenty", func() {
		s.mockQueries.EXPECT().ListForUser(gomock.Any(), s.userID, 20, 5).
			Return(&queries.OrderPage{Limit: 20, Offset: 5, Orders: []queries.OrderListItem{}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?offset=5", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("success: non-numeric paging is handed to the query as zero", func() {
		s.mockQueries.EXPECT().ListForUser(gomock.Any(), s.userID, 0, 0).
			Return(&queries.OrderPage{Limit: 1, Orders: []queries.OrderListItem{}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url+"?limit=abc&offset=xyz", nil, "bearer-token")
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, nil)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}
