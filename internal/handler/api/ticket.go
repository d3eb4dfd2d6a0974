package api

import (
	"errors"
	"net/http"

	reqdto "ticketbooth/internal/handler/dto/request"
	resdto "ticketbooth/internal/handler/dto/response"
	"ticketbooth/internal/handler/httperr"
	"ticketbooth/internal/usecase/commands"
	"ticketbooth/internal/usecase/queries"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type TicketHandler struct {
	ticketCommands commands.TicketCommands
	ticketQueries  queries.TicketQueries
	eventQueries   queries.EventQueries
}

func NewTicketHandler(
	ticketCommands commands.TicketCommands,
	ticketQueries queries.TicketQueries,
	eventQueries queries.EventQueries,
) *TicketHandler {
	return &TicketHandler{
		ticketCommands: ticketCommands,
		ticketQueries:  ticketQueries,
		eventQueries:   eventQueries,
	}
}

// @Summary List events
// @Description List published events
// @Tags events
// @Produce json
// @Success 200 {array} resdto.EventResponse
// @Router /events [get]
func (h *TicketHandler) ListEvents(c *gin.Context) {
	views, err := h.eventQueries.List(c.Request.Context())
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load events", nil)
		return
	}

	resp, err := resdto.FromEventViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get event
// @Description Get one event by ID
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {object} resdto.EventResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /events/{id} [get]
func (h *TicketHandler) GetEvent(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid event ID", nil)
		return
	}

	view, err := h.eventQueries.GetByID(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrEventNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Event not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load event", nil)
		}
		return
	}

	resp, err := resdto.FromEventView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary List event ticket categories
// @Description List the ticket categories on sale for an event
// @Tags events
// @Produce json
// @Param id path string true "Event ID"
// @Success 200 {array} resdto.TicketCategoryResponse
// @Failure 400 {object} httperr.Response
// @Router /events/{id}/ticket-categories [get]
func (h *TicketHandler) ListEventCategories(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid event ID", nil)
		return
	}

	views, err := h.ticketQueries.ListByEvent(c.Request.Context(), id)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load ticket categories", nil)
		return
	}

	resp, err := resdto.FromTicketCategoryViews(views)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Get ticket category
// @Description Get one ticket category by ID
// @Tags tickets
// @Produce json
// @Param id path string true "Ticket category ID"
// @Success 200 {object} resdto.TicketCategoryResponse
// @Failure 400 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /ticket-categories/{id} [get]
func (h *TicketHandler) GetCategory(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid ticket category ID", nil)
		return
	}

	view, err := h.ticketQueries.GetCategory(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, queries.ErrTicketCategoryNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Ticket category not found", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to load ticket category", nil)
		}
		return
	}

	resp, err := resdto.FromTicketCategoryView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}

	c.JSON(http.StatusOK, resp)
}

// @Summary Create ticket category
// @Description Create a ticket category for an event (admin only)
// @Tags tickets
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body reqdto.CreateTicketCategoryRequest true "Ticket category"
// @Success 201 {object} resdto.TicketCategoryResponse
// @Failure 400 {object} httperr.Response
// @Failure 403 {object} httperr.Response
// @Failure 404 {object} httperr.Response
// @Router /ticket-categories [post]
func (h *TicketHandler) CreateCategory(c *gin.Context) {
	var req reqdto.CreateTicketCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid request", nil)
		return
	}

	view, err := h.ticketCommands.CreateCategory(c.Request.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, commands.ErrEventNotFound):
			httperr.AbortWithError(c, http.StatusNotFound, err, "Event not found", nil)
		case errors.Is(err, commands.ErrDomainValidation):
			httperr.AbortWithError(c, http.StatusBadRequest, err, "Invalid ticket category data", nil)
		default:
			httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to create ticket category", nil)
		}
		return
	}

	resp, err := resdto.FromTicketCategoryView(view)
	if err != nil {
		httperr.AbortWithError(c, http.StatusInternalServerError, err, "Failed to build response", nil)
		return
	}

	c.JSON(http.StatusCreated, resp)
}
