package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/hakimfr/reservia/internal/helpers"
	"github.com/hakimfr/reservia/internal/middleware"
	"github.com/hakimfr/reservia/internal/models"
	"github.com/hakimfr/reservia/internal/services"
)

// ReservationHandler exposes the reservation lifecycle engine over HTTP.
// It only parses input and maps errors; every rule lives in the service.
type ReservationHandler struct {
	service *services.ReservationService
}

func NewReservationHandler(service *services.ReservationService) *ReservationHandler {
	return &ReservationHandler{service: service}
}

type CreateReservationRequest struct {
	EventID uuid.UUID `json:"event_id" binding:"required"`
}

type ReservationStatusRequest struct {
	Status models.ReservationStatus `json:"status" binding:"required,oneof=CONFIRMED CANCELED REFUSED"`
}

func (h *ReservationHandler) Create(c *gin.Context) {
	caller, exists := middleware.CurrentUser(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	var req CreateReservationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid input. Please check your fields.")
		return
	}

	reservation, err := h.service.Create(c.Request.Context(), req.EventID, caller)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, reservation)
}

func (h *ReservationHandler) ListAll(c *gin.Context) {
	caller, exists := middleware.CurrentUser(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	reservations, err := h.service.ListAll(c.Request.Context(), caller)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

func (h *ReservationHandler) ListMine(c *gin.Context) {
	caller, exists := middleware.CurrentUser(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	reservations, err := h.service.ListMine(c.Request.Context(), caller.ID)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservations)
}

func (h *ReservationHandler) GetOne(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID.")
		return
	}

	reservation, err := h.service.GetOne(c.Request.Context(), id)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

func (h *ReservationHandler) UpdateStatus(c *gin.Context) {
	caller, exists := middleware.CurrentUser(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID.")
		return
	}

	var req ReservationStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid status. Must be CONFIRMED, CANCELED or REFUSED.")
		return
	}

	reservation, err := h.service.UpdateStatus(c.Request.Context(), id, req.Status, caller)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}

func (h *ReservationHandler) Cancel(c *gin.Context) {
	caller, exists := middleware.CurrentUser(c)
	if !exists {
		helpers.RespondWithError(c, http.StatusUnauthorized, "User not authenticated.")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		helpers.RespondWithError(c, http.StatusBadRequest, "Invalid reservation ID.")
		return
	}

	reservation, err := h.service.CancelOwn(c.Request.Context(), id, caller)
	if err != nil {
		helpers.RespondWithServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, reservation)
}
