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

type CartHandlerTestSuite struct {
	suite.Suite
	router       *gin.Engine
	mockCtrl     *gomock.Controller
	mockCommands *commandsmock.MockCartCommands
	mockQueries  *queriesmock.MockCartQueries
	handler      *api.CartHandler
	userID       uuid.UUID
}

func (s *CartHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	s.router = gin.New()

	s.mockCtrl = gomock.NewController(s.T())
	s.mockCommands = commandsmock.NewMockCartCommands(s.mockCtrl)
	s.mockQueries = queriesmock.NewMockCartQueries(s.mockCtrl)
	s.handler = api.NewCartHandler(s.mockCommands, s.mockQueries)
	s.userID = uuid.New()

	authMiddleware := func(c *gin.Context) {
		if c.GetHeader("Authorization") == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": gin.H{"message": "Unauthorized"}})
			return
		}
		c.Set("user_id", s.userID)
		c.Set("user_role", user.RoleCustomer)
		c.Next()
	}

	s.router.POST("/cart/items", authMiddleware, s.handler.AddItem)
	s.router.GET("/cart", authMiddleware, s.handler.GetCart)
	s.router.DELETE("/cart", authMiddleware, s.handler.ClearCart)
}

func (s *CartHandlerTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestCartHandlerSuite(t *testing.T) {
	suite.Run(t, new(CartHandlerTestSuite))
}

// ================================================================================
// TestAddItem
// ================================================================================

func (s *CartHandlerTestSuite) TestAddItem() {
	url := "/cart/items"

	bld := builder.NewCheckoutBuilder()
	reqBody := bld.BuildAddItemRequestDTO()
	cartView := bld.BuildCartView()

	s.Run("success: returns 200 OK with the updated cart", func() {
		s.mockCommands.EXPECT().AddItem(gomock.Any(), gomock.Any(), s.userID).
			Return(nil).Times(1)
		s.mockQueries.EXPECT().GetContents(gomock.Any(), s.userID).
			Return(cartView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")

		var body resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Equal(cartView.TotalItems, body.TotalItems)
		s.Equal(cartView.SubtotalCents, body.SubtotalCents)
		s.Len(body.Lines, 1)
	})

	s.Run("error: 400 Bad Request on validation errors", func() {
		validationCases := []testCaseOrder{
			{name: "missing ticket_category_id", mutate: testutil.Field("ticket_category_id", nil), expectCode: http.StatusBadRequest},
			{name: "missing quantity", mutate: testutil.Field("quantity", nil), expectCode: http.StatusBadRequest},
			{name: "zero quantity", mutate: testutil.Field("quantity", 0), expectCode: http.StatusBadRequest},
			{name: "negative quantity", mutate: testutil.Field("quantity", -1), expectCode: http.StatusBadRequest},
		}

		for _, tc := range validationCases {
			s.Run(tc.name, func() {
				requestMap := testutil.DtoMap(s.T(), reqBody, tc.mutate)
				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, requestMap, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectCode, "")
			})
		}
	})

	s.Run("error: maps usecase errors to proper statuses", func() {
		testCases := []struct {
			name           string
			commandsError  error
			expectedStatus int
		}{
			{name: "unknown ticket category", commandsError: commands.ErrTicketCategoryNotFound, expectedStatus: http.StatusNotFound},
			{name: "insufficient stock", commandsError: commands.ErrInsufficientStock, expectedStatus: http.StatusConflict},
			{name: "invalid quantity", commandsError: commands.ErrInvalidCartQuantity, expectedStatus: http.StatusBadRequest},
			{name: "unexpected failure", commandsError: errors.New("store down"), expectedStatus: http.StatusInternalServerError},
		}

		for _, tc := range testCases {
			s.Run(tc.name, func() {
				s.mockCommands.EXPECT().AddItem(gomock.Any(), gomock.Any(), s.userID).
					Return(tc.commandsError).Times(1)

				rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "bearer-token")
				httptest.AssertErrorResponse(s.T(), rec, tc.expectedStatus, "")
			})
		}
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodPost, url, reqBody, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestGetCart
// ================================================================================

func (s *CartHandlerTestSuite) TestGetCart() {
	url := "/cart"

	s.Run("success: returns the cart contents", func() {
		cartView := builder.NewCheckoutBuilder().BuildCartView()
		s.mockQueries.EXPECT().GetContents(gomock.Any(), s.userID).
			Return(cartView, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.Len(body.Lines, 1)
	})

	s.Run("success: empty cart serializes with an empty lines array", func() {
		s.mockQueries.EXPECT().GetContents(gomock.Any(), s.userID).
			Return(&queries.CartView{Lines: []queries.CartLineView{}}, nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "bearer-token")

		var body resdto.CartResponse
		httptest.AssertSuccessResponse(s.T(), rec, http.StatusOK, &body)
		s.NotNil(body.Lines)
		s.Empty(body.Lines)
		s.Equal(int32(0), body.TotalItems)
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodGet, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}

// ================================================================================
// TestClearCart
// ================================================================================

func (s *CartHandlerTestSuite) TestClearCart() {
	url := "/cart"

	s.Run("success: returns 204 No Content", func() {
		s.mockCommands.EXPECT().Clear(gomock.Any(), s.userID).Return(nil).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		s.Equal(http.StatusNoContent, rec.Code)
		s.Empty(rec.Body.String())
	})

	s.Run("error: 500 when the store fails", func() {
		s.mockCommands.EXPECT().Clear(gomock.Any(), s.userID).
			Return(errors.New("store down")).Times(1)

		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "bearer-token")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusInternalServerError, "")
	})

	s.Run("error: 401 Unauthorized when unauthenticated", func() {
		rec := httptest.PerformRequest(s.T(), s.router, http.MethodDelete, url, nil, "")
		httptest.AssertErrorResponse(s.T(), rec, http.StatusUnauthorized, "Unauthorized")
	})
}
