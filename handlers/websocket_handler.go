package handlers

import (
	"log/slog"
	"net/http"

	"github.com/r-campos/wildbrowl/brackets"
	"github.com/r-campos/wildbrowl/models"

	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// TODO restrict to the frontend origin once it is fixed.
		return true
	},
}

type WebSocketHandler struct {
	hub *brackets.Hub
}

func NewWebSocketHandler(hub *brackets.Hub) *WebSocketHandler {
	return &WebSocketHandler{hub: hub}
}

// ServeWs subscribes the caller to live bracket events for one
// category; clients connect to /ws/brackets?category=varonil.
func (h *WebSocketHandler) ServeWs(w http.ResponseWriter, r *http.Request) {
	category := models.Category(r.URL.Query().Get("category"))
	if !category.Valid() {
		http.Error(w, "invalid or missing category", http.StatusBadRequest)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		slog.Error("failed to upgrade websocket connection", slog.Any("error", err))
		return
	}

	client := &brackets.Client{
		Hub:  h.hub,
		Conn: conn,
		Send: make(chan []byte, 256),
		Room: string(category),
	}
	client.Hub.Register <- client

	go client.WritePump()
	go client.ReadPump()
}
