package handler

import (
	"net/http"

	"github.com/Shunea/be-easyreserv-sub000/internal/apierror"
	"github.com/Shunea/be-easyreserv-sub000/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type BoardHandler struct{ publisher *service.BoardPublisher }

func NewBoardHandler(publisher *service.BoardPublisher) *BoardHandler {
	return &BoardHandler{publisher: publisher}
}

// Get godoc
// @Summary      Reservation board snapshot
// @Description  Returns the current full-state board for one reservation. Displays call this once on connect, then rely on WebSocket pushes.
// @Tags         board
// @Produce      json
// @Security     BearerAuth
// @Param        id path string true "Reservation UUID"
// @Success      200 {object} dto.ReservationBoard
// @Failure      404 {object} apierror.APIError
// @Router       /v1/reservations/{id}/board [get]
func (h *BoardHandler) Get(c *gin.Context) {
	reservationID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, apierror.New("Invalid reservation ID"))
		return
	}

	board, err := h.publisher.Board(c.Request.Context(), reservationID)
	if err != nil {
		respondServiceError(c, err)
		return
	}
	c.JSON(http.StatusOK, board)
}
