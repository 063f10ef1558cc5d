package handler

import (
	"net/http"

	"github.com/Shunea/be-easyreserv-sub000/internal/apierror"
	"github.com/Shunea/be-easyreserv-sub000/internal/middleware"
	"github.com/Shunea/be-easyreserv-sub000/internal/realtime"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The API serves first-party displays across ports; auth happens via
	// the token below, not the Origin header.
	CheckOrigin: func(*http.Request) bool { return true },
}

type RealtimeHandler struct {
	hub       *realtime.Hub
	jwtSecret string
}

func NewRealtimeHandler(hub *realtime.Hub, jwtSecret string) *RealtimeHandler {
	return &RealtimeHandler{hub: hub, jwtSecret: jwtSecret}
}

// Board godoc
// @Summary      Subscribe to board updates
// @Description  Upgrades to WebSocket and streams full-state reservation board snapshots for the caller's restaurant. The JWT travels in the token query parameter because browsers cannot set headers on ws dials.
// @Tags         board
// @Param        token query string true "Access token"
// @Success      101
// @Failure      401 {object} apierror.APIError
// @Router       /v1/ws/board [get]
func (h *RealtimeHandler) Board(c *gin.Context) {
	claims, err := middleware.ParseToken(h.jwtSecret, c.Query("token"))
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Invalid or expired token"))
		return
	}
	restaurantID, err := uuid.Parse(claims.RestaurantID)
	if err != nil {
		c.JSON(http.StatusUnauthorized, apierror.New("Token carries no restaurant"))
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Warn().Err(err).Msg("realtime: websocket upgrade failed")
		return
	}
	realtime.NewClient(h.hub, conn, restaurantID)
}
