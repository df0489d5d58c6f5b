package handlers

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"lab_dashboard/internal/poller"
	"lab_dashboard/internal/route"
	"lab_dashboard/internal/view"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

// Send/receive timing configuration and message size limits.
const (
	writeWait        = 10 * time.Second
	pongWait         = 60 * time.Second
	pingPeriod       = (pongWait * 9) / 10
	maxMsgSize       = 1 << 12 // 4 KB
	minInterval      = 100 * time.Millisecond
	maxInterval      = 5 * time.Minute
	maxIntervalMilli = 300_000
	outboxSize       = 8
)

// Envelope used for WebSocket messages.
type wsEnvelope struct {
	Type  string      `json:"type"` // redirect | labs | view | error
	Data  interface{} `json:"data,omitempty"`
	Error string      `json:"error,omitempty"`
}

// Upgrader for HTTP -> WebSocket. Consider tightening CheckOrigin in production.
var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true }, // TODO: restrict origins for production
}

// @Summary      Stream a dashboard view
// @Description  Upgrades to a WebSocket and streams the view for ?path= on a fixed cadence. A lab path emits "view" snapshots (loading first, then ready/not_found/failed); "/" emits "labs". Non-canonical paths emit one "redirect" and continue on the target. The token may be passed as ?token=.
// @Tags         view
// @Param        path         query  string  false  "Dashboard path"  example(/lab/lab-a/working)
// @Param        interval     query  string  false  "Refresh interval, e.g. 30s"
// @Param        interval_ms  query  int     false  "Refresh interval in milliseconds"
// @Param        token        query  string  false  "Bearer token"
// @Success      101
// @Failure      401  {object}  map[string]string
// @Router       /ws [get]
func (h *Handler) wsConnect(c *gin.Context) {
	interval := h.parseInterval(c)
	path := c.DefaultQuery("path", route.HomePath)

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		if h.log != nil {
			h.log.Errorw("ws_upgrade_failed", "err", err)
		}
		return
	}
	defer func() { _ = conn.Close() }()

	if h.log != nil {
		sess, _ := sessionFrom(c)
		h.log.Infow("ws_connected", "user_id", sess.UserID, "path", path, "interval", interval)
	}

	// Configure read limits and pong handler to extend read deadline.
	conn.SetReadLimit(maxMsgSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	// Reader goroutine to handle control frames and detect disconnects.
	done := make(chan struct{})
	go h.startReader(conn, done)

	ctx, cancel := context.WithCancel(c.Request.Context())

	rt := route.Resolve(path)
	if rt.Kind == route.KindRedirect {
		if err := writeEnvelope(conn, wsEnvelope{Type: "redirect", Data: rt}); err != nil {
			cancel()
			return
		}
		rt = route.Resolve(rt.Location)
	}

	// The poller produces messages; this goroutine is the only writer.
	outbox := make(chan wsEnvelope, outboxSize)
	stop := make(chan struct{})
	push := func(env wsEnvelope) {
		select {
		case outbox <- env:
		case <-stop:
		}
	}

	var tick func(time.Time)
	if rt.Kind == route.KindLab {
		nav := view.NewNavigator(h.services.Monitoring, func(s view.Snapshot) {
			push(wsEnvelope{Type: "view", Data: s})
		})
		first := true
		tick = func(time.Time) {
			if first {
				first = false
				nav.Navigate(ctx, rt.LabID, rt.Bucket)
				return
			}
			nav.Refresh(ctx)
		}
	} else {
		tick = func(time.Time) {
			labs, err := h.services.Monitoring.ListLabs(ctx, "")
			if err != nil {
				push(wsEnvelope{Type: "error", Error: errListLabs})
				return
			}
			push(wsEnvelope{Type: "labs", Data: labs})
		}
	}

	// Unwinds in reverse: abort in-flight fetches, release a blocked push,
	// then wait for the poller to stop.
	handle := poller.Start(interval, tick)
	defer handle.Cancel()
	defer close(stop)
	defer cancel()

	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()

	// Writer/select loop.
	for {
		select {
		case <-done:
			return
		case <-ctx.Done():
			return
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				if h.log != nil {
					h.log.Infow("ws_ping_failed", "err", err)
				}
				return
			}
		case env := <-outbox:
			if err := writeEnvelope(conn, env); err != nil {
				if h.log != nil {
					h.log.Infow("ws_write_failed", "err", err)
				}
				return
			}
		}
	}
}

// Helper: parseInterval reads ?interval=30s or ?interval_ms=30000 with bounds.
func (h *Handler) parseInterval(c *gin.Context) time.Duration {
	if s := c.Query("interval"); s != "" {
		if d, err := time.ParseDuration(s); err == nil && d >= minInterval && d <= maxInterval {
			return d
		}
	}

	if ms := c.Query("interval_ms"); ms != "" {
		if v, err := strconv.Atoi(ms); err == nil && v > 0 && v <= maxIntervalMilli {
			if d := time.Duration(v) * time.Millisecond; d >= minInterval {
				return d
			}
		}
	}

	return h.cfg.ViewRefresh
}

// Helper: startReader drains incoming messages to handle control frames and detect closure.
func (h *Handler) startReader(conn *websocket.Conn, done chan<- struct{}) {
	defer close(done)
	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			if h.log != nil {
				h.log.Infow("ws_read_closed", "err", err)
			}
			return
		}
	}
}

func writeEnvelope(conn *websocket.Conn, env wsEnvelope) error {
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	return conn.WriteJSON(env)
}
