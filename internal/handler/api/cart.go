package api

import (
	"errors"
	"net/http"

	reqdto "ticketbooth/internal/handler/dto/request"
	resdto "ticketbooth/internal/handler/dto/response"
	"ticketbooth/internal/handler/httperr"
	"ticketbooth/internal/handler/middleware"
	"ticketbooth/internal/usecase/commands"
	"ticketbooth/internal/usecase/queries"

	"github.com/gin-gonic/gin"
)

type CartHandler struct {
	cartCommands commands.CartCommands
	cartQueries  queries.CartQueries
}

func NewCartHandler(cartCommands commands.CartCommands, cartQueries queries.CartQueries) *CartHandler {
	return &CartHandler{
		cartCommands: cartCommands,
		cartQueries:  cartQueries,
	}
}

// @Summary Add cart item
// @Description Stage a ticket category in the current user's cart
// @Tags cart
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.AddCartItemRequest true "Cart item"
// @Success 200 {object} resdto.CartResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Failure 409 {object} httperr.Response
// @Router /cart/items [post]
func (h *CartHandler) AddItem(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", nil)
		return
	}

	var req reqdto.AddCartItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	if err := h.cartCommands.AddItem(c.Request.Context(), req, userID); err != nil {
		switch {
		case errors.Is(err, commands.ErrTicketCategoryNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Ticket category not found", nil)
		case errors.Is(err, commands.ErrInsufficientStock):
			httperr.AbortWithError(c, http.StatusConflict, err, "Not enough tickets available", nil)
		case errors.Is(err, commands.ErrInvalidCartQuantity):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Quantity must be a positive integer", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to add cart item", nil)
		}
		return
	}

	h.respondWithCart(c, http.StatusOK)
}

// @Summary Get cart
// @Description Get the current user's cart contents
// @Tags cart
// @Produce json
// @Security BearerAuth
// @Success 200 {object} resdto.CartResponse
// @Failure 401 {object} httperr.Response
// @Router /cart [get]
func (h *CartHandler) GetCart(c *gin.Context) {
	if _, ok := middleware.GetUserID(c); !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", nil)
		return
	}

	h.respondWithCart(c, http.StatusOK)
}

// @Summary Clear cart
// @Description Remove everything from the current user's cart
// @Tags cart
// @Security BearerAuth
// @Success 204 "No Content"
// @Failure 401 {object} httperr.Response
// @Router /cart [delete]
func (h *CartHandler) ClearCart(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		httperr.AbortWithError(c, http.StatusInternalServerError, errMissingAuthContext, "Internal server error", nil)
		return
	}

	if err := h.cartCommands.Clear(c.Request.Context(), userID); err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to clear cart", nil)
		return
	}

	c.Status(http.StatusNoContent)
}

func (h *CartHandler) respondWithCart(c *gin.Context, status int) {
	userID, _ := middleware.GetUserID(c)

	view, err := h.cartQueries.GetContents(c.Request.Context(), userID)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load cart", nil)
		return
	}

	resp, err := resdto.FromCartView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}

	c.JSON(status, resp)
}
