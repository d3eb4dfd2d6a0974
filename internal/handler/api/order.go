package api

import (
	"errors"
	"net/http"
	"strconv"

	reqdto "ticketbooth/internal/handler/dto/request"
	resdto "ticketbooth/internal/handler/dto/response"
	"ticketbooth/internal/handler/httperr"
	"ticketbooth/internal/handler/middleware"
	"ticketbooth/internal/pkg/errs"
	"ticketbooth/internal/usecase/commands"
	"ticketbooth/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// raised when a handler behind RequireAuth finds no user in the context
var errMissingAuthContext = errs.New("authenticated user missing from context")

type OrderHandler struct {
	checkoutCommands commands.CheckoutCommands
	orderQueries     queries.OrderQueries
}

func NewOrderHandler(checkoutCommands commands.CheckoutCommands, orderQueries queries.OrderQueries) *OrderHandler {
	return &OrderHandler{
		checkoutCommands: checkoutCommands,
		orderQueries:     orderQueries,
	}
}

// @Summary Checkout
// @Description Purchase tickets from the staged cart, or from an explicit ticket list in the request body
// @Tags orders
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CheckoutRequest true "Checkout request"
// @Success 201 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 402 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /orders/checkout [post]
func (h *OrderHandler) Checkout(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", nil)
		return
	}

	var req reqdto.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	result, err := h.checkoutCommands.Checkout(c.Request.Context(), req, userID)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEmptyCart):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Cart is empty", nil)
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid checkout details", nil)
		case errors.Is(err, commands.ErrTicketCategoryNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Ticket category not found", nil)
		case errors.Is(err, commands.ErrInsufficientStock):
			httperr.AbortWithError(c, http.StatusConflict, err, "Not enough tickets available", nil)
		case errors.Is(err, commands.ErrPaymentDeclined), errors.Is(err, commands.ErrPaymentFailed):
			httperr.AbortWithError(c, http.StatusPaymentRequired, err, "Payment was not accepted", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Checkout failed", nil)
		}
		return
	}

	resp, err := resdto.FromOrderView(result.Order)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}

	c.JSON(http.StatusCreated, resp)
}

// @Summary Get order
// @Description Get one order; only the owner or an admin may see it
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param id path string true "Order ID"
// @Success 200 {object} resdto.OrderResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /orders/{id} [get]
func (h *OrderHandler) GetOrder(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", nil)
		return
	}
	role, _ := middleware.GetUserRole(c)

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid order ID", nil)
		return
	}

	view, err := h.orderQueries.GetByID(c.Request.Context(), id, userID, role.String())
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrOrderNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Order not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load order", nil)
		}
		return
	}

	resp, err := resdto.FromOrderView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List orders
// @Description List the current user's orders, newest first
// @Tags orders
// @Produce json
// @Security BearerAuth
// @Param limit query int false "Page size (1-100, default 20)"
// @Param offset query int false "Rows to skip"
// @Success 200 {object} resdto.OrderPageResponse
// @Failure 401 {object} httperr.Response
// @Router /orders [get]
func (h *OrderHandler) ListOrders(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", nil)
		return
	}

	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "20"))
	offset, _ := strconv.Atoi(c.DefaultQuery("offset", "0"))

	page, err := h.orderQueries.ListForUser(c.Request.Context(), userID, limit, offset)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load orders", nil)
		return
	}

	resp, err := resdto.FromOrderPage(page)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}

	c.JSON(http.StatusOK, resp)
}
