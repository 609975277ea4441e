package controller

import (
	"marknote-be/internal/pkg/serverutils"
	internalWS "marknote-be/internal/websocket"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"
	"github.com/google/uuid"
)

type IEventController interface {
	RegisterRoutes(r fiber.Router)
	Stream(ctx *fiber.Ctx) error
}

type eventController struct {
	hub  *internalWS.Hub
	auth fiber.Handler
}

// NewEventController serves the live resource feed. auth must accept the
// token as a query parameter for browser clients.
func NewEventController(hub *internalWS.Hub, auth fiber.Handler) IEventController {
	return &eventController{hub: hub, auth: auth}
}

func (c *eventController) RegisterRoutes(r fiber.Router) {
	h := r.Group("/events", c.auth)
	h.Get("/ws", c.Stream)
}

func (c *eventController) Stream(ctx *fiber.Ctx) error {
	userId, err := serverutils.UserID(ctx)
	if err != nil {
		return err
	}
	if !websocket.IsWebSocketUpgrade(ctx) {
		return fiber.ErrUpgradeRequired
	}
	return websocket.New(func(conn *websocket.Conn) {
		c.serve(conn, userId)
	})(ctx)
}

func (c *eventController) serve(conn *websocket.Conn, userId uuid.UUID) {
	internalWS.ServeWs(c.hub, conn, userId)
}
