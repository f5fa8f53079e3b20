package realtime

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/awave-app/backend/internal/token"
)

// Handler upgrades authenticated HTTP requests to realtime channel
// connections. The token is verified before the upgrade; a bad token never
// reaches the registry.
type Handler struct {
	registry *Registry
	tokens   *token.Service
	upgrader websocket.Upgrader
	hints    ReconnectHints
	log      zerolog.Logger
}

// NewHandler creates a realtime channel Handler. corsOrigin restricts the
// handshake Origin header; "*" allows any.
func NewHandler(registry *Registry, tokens *token.Service, corsOrigin string, hints ReconnectHints, log zerolog.Logger) *Handler {
	return &Handler{
		registry: registry,
		tokens:   tokens,
		upgrader: websocket.Upgrader{
			CheckOrigin: func(r *http.Request) bool {
				if corsOrigin == "*" {
					return true
				}
				return r.Header.Get("Origin") == corsOrigin
			},
		},
		hints: hints,
		log:   log,
	}
}

// Serve authenticates the handshake, upgrades the connection and registers it
// under the token's user id until it closes.
func (h *Handler) Serve(c echo.Context) error {
	tokenString := c.QueryParam("token")
	if tokenString == "" {
		authHeader := c.Request().Header.Get("Authorization")
		parts := strings.Split(authHeader, " ")
		if len(parts) == 2 && strings.ToLower(parts[0]) == "bearer" {
			tokenString = parts[1]
		}
	}

	claims, err := h.tokens.Verify(tokenString)
	if err != nil {
		return echo.NewHTTPError(http.StatusUnauthorized, "Invalid token")
	}

	conn, err := h.upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		h.log.Warn().Err(err).Msg("websocket upgrade failed")
		return nil
	}

	client := &Client{
		userID:   claims.UserID,
		registry: h.registry,
		conn:     conn,
		send:     make(chan []byte, 256),
	}
	h.registry.add(claims.UserID, client)

	if ready, err := json.Marshal(Event{Type: EventChannelReady, Data: h.hints}); err == nil {
		client.send <- ready
	}

	h.log.Debug().Uint("user_id", claims.UserID).Msg("realtime connection open")

	go client.writePump()
	client.readPump()
	return nil
}
