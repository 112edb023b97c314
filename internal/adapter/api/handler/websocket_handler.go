package handler

import (
	"encoding/json"
	"net/http"

	gorillaws "github.com/gorilla/websocket"
	"github.com/labstack/echo/v4"

	ws "undulcito/internal/infrastructure/websocket"
	"undulcito/internal/usecase"
	"undulcito/pkg/errors"
	"undulcito/pkg/logger"
)

var upgrader = gorillaws.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

type catalogEvent struct {
	Type string `json:"type"`
	usecase.CatalogSnapshot
}

// EncodeCatalogEvent is the frame pushed to stream clients on every change.
func EncodeCatalogEvent(snapshot usecase.CatalogSnapshot) ([]byte, error) {
	return json.Marshal(catalogEvent{Type: "catalog", CatalogSnapshot: snapshot})
}

type WebSocketHandler struct {
	wsManager      *ws.Manager
	catalogUseCase *usecase.CatalogUseCase
}

func NewWebSocketHandler(wsManager *ws.Manager, catalogUseCase *usecase.CatalogUseCase) *WebSocketHandler {
	return &WebSocketHandler{
		wsManager:      wsManager,
		catalogUseCase: catalogUseCase,
	}
}

// HandleCatalogStream upgrades the request, registers the client and then
// sends it the current catalog. A broadcast racing the registration may
// arrive twice, never not at all.
func (h *WebSocketHandler) HandleCatalogStream(c echo.Context) error {
	conn, err := upgrader.Upgrade(c.Response(), c.Request(), nil)
	if err != nil {
		return errors.Internal("Failed to upgrade connection", err)
	}

	client := ws.NewClient(conn)
	h.wsManager.Register(client)
	h.sendSnapshot(client)

	go client.ReadPump(h.wsManager)
	go client.WritePump()

	return nil
}

func (h *WebSocketHandler) sendSnapshot(client *ws.Client) {
	if !h.catalogUseCase.Ready() {
		return
	}
	frame, err := EncodeCatalogEvent(h.catalogUseCase.Snapshot())
	if err != nil {
		logger.Error("Failed to encode catalog snapshot: %v", err)
		return
	}
	if !h.wsManager.SendTo(client, frame) {
		logger.Debug("Catalog stream client %s gone before the first snapshot", client.ID)
	}
}

// BroadcastCatalog adapts the catalog listener to the stream manager.
func BroadcastCatalog(manager *ws.Manager) usecase.CatalogListener {
	return func(snapshot usecase.CatalogSnapshot) {
		frame, err := EncodeCatalogEvent(snapshot)
		if err != nil {
			logger.Error("Failed to encode catalog snapshot: %v", err)
			return
		}
		manager.Broadcast(frame)
	}
}
