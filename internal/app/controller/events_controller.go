package controller

import (
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
	"github.com/ikkim/permit-backend/internal/middleware"
	ws "github.com/ikkim/permit-backend/internal/websocket"
)

type EventsController struct {
	hub      *ws.Hub
	upgrader *websocket.Upgrader
}

func NewEventsController(hub *ws.Hub, allowedOrigins []string) *EventsController {
	return &EventsController{
		hub:      hub,
		upgrader: ws.NewUpgrader(allowedOrigins),
	}
}

// Stream upgrades to a websocket carrying application events
// GET /api/v1/admin/events?token=
func (ctrl *EventsController) Stream(c *gin.Context) {
	log := middleware.GetLoggerFromContext(c)

	conn, err := ctrl.upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		log.Error("Failed to upgrade connection", err, nil)
		return
	}

	sessionID, _ := middleware.GetTokenID(c)
	client := ws.NewClient(ctrl.hub, &ws.Conn{Conn: conn}, sessionID)
	ctrl.hub.Register(client)

	log.Info("Admin event stream opened", map[string]interface{}{
		"session_id": client.SessionID,
	})

	go client.WritePump()
	go client.ReadPump()
}
