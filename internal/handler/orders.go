package handler

import (
	"net/http"

	"github.com/Shunea/be-easyreserv-sub000/internal/apierror"
	"github.com/Shunea/be-easyreserv-sub000/internal/dto"
	"github.com/Shunea/be-easyreserv-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type OrdersHandler struct{ svc service.OrderService }

func NewOrdersHandler(svc service.OrderService) *OrdersHandler { return &OrdersHandler{svc: svc} }

// Create godoc
// @Summary      Place orders on a reservation
// @Description  Persists the order lines, deducts ingredient stock when the plan allows it, and pushes a fresh board snapshot.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                  true "Reservation UUID"
// @Param        body body dto.CreateOrdersRequest true "Order lines"
// @Success      201  {object} dto.OrdersResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/reservations/{id}/orders [post]
func (h *OrdersHandler) Create(c *gin.Context) {
	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid reservation ID"))
		return
	}
	var req dto.CreateOrdersRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Create(c.Request.Context(), actorFromClaims(c), reservationID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusCreated, resp)
}

// List godoc
// @Summary      List a reservation's orders
// @Description  Returns the reservation's live orders, oldest first.
// @Tags         orders
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Reservation UUID"
// @Success      200 {object} dto.OrdersResponse
// @Failure      400 {object} apierror.APIError
// @Failure      404 {object} apierror.APIError
// @Router       /v1/reservations/{id}/orders [get]
func (h *OrdersHandler) List(c *gin.Context) {
	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid reservation ID"))
		return
	}

	resp, err := h.svc.ListByReservation(c.Request.Context(), reservationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Update godoc
// @Summary      Edit an order line
// @Description  Partial edit: quantity changes adjust stock by the difference, notice-only edits never touch stock.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                 true "Order UUID"
// @Param        body body dto.UpdateOrderRequest true "Fields to change"
// @Success      200  {object} dto.OrderResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/orders/{id} [patch]
func (h *OrdersHandler) Update(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid order ID"))
		return
	}
	var req dto.UpdateOrderRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.Update(c.Request.Context(), actorFromClaims(c), orderID, req)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// UpdateStatus godoc
// @Summary      Advance an order through its lifecycle
// @Description  PENDING → PREPARING → READY → COMPLETED; CANCELLED from any active state. READY notifies the waiter.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id   path string                       true "Order UUID"
// @Param        body body dto.UpdateOrderStatusRequest true "Target status"
// @Success      200  {object} dto.OrderResponse
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/orders/{id}/status [patch]
func (h *OrdersHandler) UpdateStatus(c *gin.Context) {
	orderID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid order ID"))
		return
	}
	var req dto.UpdateOrderStatusRequest
	if !bindAndValidate(c, &req) {
		return
	}

	resp, err := h.svc.UpdateStatus(c.Request.Context(), actorFromClaims(c), orderID, req.Status)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, resp)
}

// Delete godoc
// @Summary      Cancel orders
// @Description  Soft-deletes the orders and restores their ingredients best-effort. The delete succeeds even when restock partially fails.
// @Tags         orders
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body body dto.DeleteOrdersRequest true "Orders to cancel"
// @Success      204
// @Failure      400  {object} apierror.APIError
// @Failure      404  {object} apierror.APIError
// @Router       /v1/orders [delete]
func (h *OrdersHandler) Delete(c *gin.Context) {
	var req dto.DeleteOrdersRequest
	if !bindAndValidate(c, &req) {
		return
	}

	if err := h.svc.Delete(c.Request.Context(), actorFromClaims(c), req); err != nil {
		respondServiceError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
