package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"

	"go.ngs.io/ephem-api/internal/metrics"
)

const (
	minStreamInterval = 10 * time.Millisecond
	writeWait         = 10 * time.Second
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// StreamPositions handles GET /v1/stream. After the websocket upgrade it
// sends one positions frame immediately and then one per interval until
// the client goes away.
func (h *Handler) StreamPositions(c *gin.Context) {
	req, err := positionsRequest(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("invalid request: %v", err)})
		return
	}

	interval := h.streamInterval
	if s := c.Query("interval"); s != "" {
		d, err := time.ParseDuration(s)
		if err != nil || d < minStreamInterval {
			c.JSON(http.StatusBadRequest, gin.H{"error": fmt.Sprintf("interval must be a duration of at least %v", minStreamInterval)})
			return
		}
		interval = d
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// The upgrader has already replied.
		return
	}
	defer func() { _ = conn.Close() }()

	metrics.StreamConnected()
	defer metrics.StreamDisconnected()

	// Drain client frames; a read error means the peer is gone.
	done := make(chan struct{})
	go func() {
		defer close(done)
		for {
			if _, _, err := conn.ReadMessage(); err != nil {
				return
			}
		}
	}()

	fixed := c.Query("time") != ""
	send := func() error {
		if !fixed {
			req.Time = time.Now().UTC()
		}
		resp, err := h.uc.Positions(req)
		if err != nil {
			return err
		}
		if err := conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
			return err
		}
		return conn.WriteJSON(resp)
	}

	if err := send(); err != nil {
		return
	}

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-done:
			return
		case <-ticker.C:
			if err := send(); err != nil {
				return
			}
		}
	}
}
