package server

import (
	"log/slog"
	"net/http"

	"github.com/gorilla/websocket"

	"secrethitler/internal/config"
	"secrethitler/internal/qrcode"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// Handlers holds HTTP handler dependencies.
type Handlers struct {
	Hub    *Hub
	Config config.Config
	logger *slog.Logger
}

func NewHandlers(hub *Hub, cfg config.Config, logger *slog.Logger) *Handlers {
	return &Handlers{Hub: hub, Config: cfg, logger: logger}
}

// HandleQR generates a QR code PNG carrying a fresh join link.
func (h *Handlers) HandleQR(w http.ResponseWriter, r *http.Request) {
	host := h.Config.PublicHost
	if host == "" {
		host = r.Host
	}
	png, err := qrcode.Generate(qrcode.JoinURL(host, NewSessionID()), h.Config.QRSize)
	if err != nil {
		h.logger.Error("qr generation failed", "error", err)
		http.Error(w, "QR generation failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Write(png)
}

// HandleWS upgrades to a WebSocket. The player query parameter carries the
// session ID so a client can reconnect to its seat.
func (h *Handlers) HandleWS(w http.ResponseWriter, r *http.Request) {
	sessionID := r.URL.Query().Get("player")
	if sessionID == "" {
		sessionID = NewSessionID()
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn("ws upgrade error", "error", err)
		return
	}

	client := NewClient(h.Hub, conn, sessionID)
	if !h.Hub.Register(client) {
		conn.Close()
		return
	}

	go client.WritePump()
	go client.ReadPump()
}

// HandlePlayerID returns a new session ID.
func (h *Handlers) HandlePlayerID(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain")
	w.Write([]byte(NewSessionID()))
}

// HandleHealth reports liveness.
func (h *Handlers) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	w.Write([]byte("ok"))
}
