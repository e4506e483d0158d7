package web

import (
	"encoding/json"
	"net/http"
	"strconv"
	"sync"
	"time"

	"partybets/domain/events"

	"github.com/gorilla/websocket"
	log "github.com/sirupsen/logrus"
)

const (
	writeWait      = 10 * time.Second
	pongWait       = 60 * time.Second
	pingPeriod     = (pongWait * 9) / 10
	maxMessageSize = 512
	sendBufferSize = 64
)

// LiveMessage is what websocket clients receive for each committed event
type LiveMessage struct {
	Type    events.EventType `json:"type"`
	PartyID int64            `json:"partyId"`
	Data    events.Event     `json:"data"`
}

type clientMessage struct {
	Type string `json:"type"`
}

// wsClient is one websocket connection watching one party
type wsClient struct {
	hub       *Hub
	conn      *websocket.Conn
	partyID   int64
	send      chan []byte
	closeOnce sync.Once
}

// Hub fans committed events out to websocket clients, keyed by party
type Hub struct {
	upgrader websocket.Upgrader
	mu       sync.RWMutex
	// partyID -> set of clients
	subs map[int64]map[*wsClient]struct{}
}

// NewHub creates a hub using allowOrigin as the upgrade origin check
func NewHub(allowOrigin func(r *http.Request) bool) *Hub {
	return &Hub{
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			CheckOrigin:     allowOrigin,
		},
		subs: make(map[int64]map[*wsClient]struct{}),
	}
}

// HandleWS upgrades the request and streams events of the party named by ?party=
func (h *Hub) HandleWS(w http.ResponseWriter, r *http.Request) {
	partyID, err := strconv.ParseInt(r.URL.Query().Get("party"), 10, 64)
	if err != nil || partyID <= 0 {
		http.Error(w, "party query parameter required", http.StatusBadRequest)
		return
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.WithError(err).Warn("WebSocket upgrade failed")
		return
	}

	client := &wsClient{
		hub:     h,
		conn:    conn,
		partyID: partyID,
		send:    make(chan []byte, sendBufferSize),
	}
	h.register(client)

	log.WithFields(log.Fields{
		"partyID":    partyID,
		"remoteAddr": r.RemoteAddr,
	}).Debug("WebSocket client connected")

	go client.writePump()
	client.readPump()
}

// Broadcast sends an event to every client watching partyID
func (h *Hub) Broadcast(partyID int64, event events.Event) {
	data, err := json.Marshal(LiveMessage{
		Type:    event.Type(),
		PartyID: partyID,
		Data:    event,
	})
	if err != nil {
		log.WithError(err).Error("Failed to marshal live message")
		return
	}

	var slow []*wsClient
	h.mu.RLock()
	for c := range h.subs[partyID] {
		select {
		case c.send <- data:
		default:
			slow = append(slow, c)
		}
	}
	h.mu.RUnlock()

	for _, c := range slow {
		log.WithField("partyID", partyID).Warn("Dropping slow WebSocket client")
		h.unregister(c)
	}
}

// ClientCount returns the number of clients watching partyID
func (h *Hub) ClientCount(partyID int64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.subs[partyID])
}

// Close disconnects every client
func (h *Hub) Close() {
	h.mu.Lock()
	var all []*wsClient
	for _, set := range h.subs {
		for c := range set {
			all = append(all, c)
		}
	}
	h.subs = make(map[int64]map[*wsClient]struct{})
	h.mu.Unlock()

	for _, c := range all {
		c.close()
	}
}

func (h *Hub) register(c *wsClient) {
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, ok := h.subs[c.partyID]; !ok {
		h.subs[c.partyID] = make(map[*wsClient]struct{})
	}
	h.subs[c.partyID][c] = struct{}{}
}

func (h *Hub) unregister(c *wsClient) {
	h.mu.Lock()
	if set, ok := h.subs[c.partyID]; ok {
		delete(set, c)
		if len(set) == 0 {
			delete(h.subs, c.partyID)
		}
	}
	h.mu.Unlock()
	c.close()
}

// close stops the write pump, which then closes the connection
func (c *wsClient) close() {
	c.closeOnce.Do(func() {
		close(c.send)
	})
}

func (c *wsClient) readPump() {
	defer c.hub.unregister(c)

	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		var msg clientMessage
		if err := c.conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				log.WithError(err).Debug("WebSocket read error")
			}
			return
		}
		if msg.Type == "ping" {
			pong, _ := json.Marshal(clientMessage{Type: "pong"})
			c.trySend(pong)
		}
	}
}

// trySend queues data unless the client is already closed or backed up
func (c *wsClient) trySend(data []byte) {
	c.hub.mu.RLock()
	defer c.hub.mu.RUnlock()
	if _, ok := c.hub.subs[c.partyID][c]; !ok {
		return
	}
	select {
	case c.send <- data:
	default:
	}
}

func (c *wsClient) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
