package handlers

import (
	"encoding/json"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"

	"cribbage-show/internal/game/common"
	"cribbage-show/internal/game/cribbage"
	ws "cribbage-show/pkg/websocket"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		origin := strings.TrimSpace(r.Header.Get("Origin"))
		if origin == "" {
			// Non-browser clients (no Origin) are allowed.
			return true
		}
		return originAllowed(origin)
	},
}

// set by config at startup
var originMu sync.RWMutex
var allowedOrigins = map[string]bool{}
var devMode = false
var devAllowAll = false

func SetWebSocketOriginPolicy(isDev bool, allowAllDev bool, origins []string) {
	originMu.Lock()
	defer originMu.Unlock()
	devMode = isDev
	devAllowAll = allowAllDev
	allowedOrigins = map[string]bool{}
	for _, o := range origins {
		o = strings.TrimSpace(o)
		if o != "" {
			allowedOrigins[o] = true
		}
	}
}

func originAllowed(origin string) bool {
	originMu.RLock()
	defer originMu.RUnlock()
	if allowedOrigins[origin] {
		return true
	}
	if !devMode {
		return false
	}
	return devAllowAll || isLocalhostOrigin(origin)
}

func isLocalhostOrigin(origin string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	host := u.Hostname()
	return host == "localhost" || host == "127.0.0.1" || host == "::1"
}

// WebSocketHandler upgrades the connection and subscribes it to the show feed.
// Clients may also send {"type":"score","payload":{"cards":[...]}} to score a
// hand without storing it.
func WebSocketHandler(hubProvider func() (*ws.Hub, bool)) gin.HandlerFunc {
	return func(c *gin.Context) {
		hub, ok := hubProvider()
		if !ok || hub == nil {
			log.Printf("WebSocketHandler hubProvider returned nil: remote=%s", c.ClientIP())
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "feed unavailable"})
			return
		}

		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			log.Printf("WebSocketHandler upgrade failed: method=%s path=%s remote=%s origin=%q err=%v",
				c.Request.Method, c.Request.URL.Path, c.ClientIP(), c.Request.Header.Get("Origin"), err,
			)
			return
		}

		client := ws.NewClient(conn, hub, ws.FeedRoom)
		hub.Register(client)

		go client.WritePump()
		go client.ReadPump(func(msg []byte) {
			handleWSMessage(client, msg)
		})

		sendDirect(client, "connected", map[string]any{"room": ws.FeedRoom})
	}
}

type inboundMessage struct {
	Type    string          `json:"type"`
	Payload json.RawMessage `json:"payload"`
}

func handleWSMessage(client *ws.Client, msg []byte) {
	var in inboundMessage
	if err := json.Unmarshal(msg, &in); err != nil {
		sendDirect(client, "error", map[string]any{"error": "invalid json"})
		return
	}

	switch in.Type {
	case "ping":
		sendDirect(client, "pong", nil)
	case "score":
		var p struct {
			Cards []string `json:"cards"`
		}
		if err := json.Unmarshal(in.Payload, &p); err != nil {
			sendDirect(client, "error", map[string]any{"error": "invalid score payload"})
			return
		}
		hand, err := common.ParseHand(p.Cards)
		if err != nil {
			sendDirect(client, "error", map[string]any{"error": err.Error()})
			return
		}
		sb, err := cribbage.ScoreShow(hand)
		if err != nil {
			sendDirect(client, "error", map[string]any{"error": err.Error()})
			return
		}
		sendDirect(client, "score_result", sb)
	default:
		sendDirect(client, "error", map[string]any{"error": "unknown message type"})
	}
}

func sendDirect(c *ws.Client, typ string, payload any) {
	b, err := json.Marshal(ws.NewEnvelope(typ, payload))
	if err != nil {
		log.Printf("ws marshal error: type=%s err=%v", typ, err)
		return
	}
	defer func() {
		// Send may already be closed by the hub after unregister.
		_ = recover()
	}()
	select {
	case c.Send <- b:
	default:
		log.Printf("ws send drop: room=%s type=%s", c.Room, typ)
	}
}
