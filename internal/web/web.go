// Package web links touch frontend to the kiosk: views go out over websocket, actions come back.
package web

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/duernstein/selfcheckout/hardware/input"
	"github.com/duernstein/selfcheckout/helpers"
	"github.com/duernstein/selfcheckout/internal/types"
	"github.com/duernstein/selfcheckout/internal/ui"
	"github.com/duernstein/selfcheckout/log2"
	"github.com/gorilla/websocket"
	"github.com/juju/errors"
	"github.com/skip2/go-qrcode"
	"github.com/temoto/alive/v2"
)

const (
	// Time allowed to write a message to the peer
	writeWait = 10 * time.Second
	// Time allowed to read the next pong message from the peer
	pongWait = 60 * time.Second
	// Send pings to peer with this period, must be less than pongWait
	pingPeriod = (pongWait * 9) / 10
	// Maximum message size allowed from peer
	maxMessageSize = 4096

	DefaultQRSize = 256
	maxQRSize     = 1024
)

type Viewer interface {
	View() ui.View
	SubscribeView(name string, ch chan ui.View)
	UnsubscribeView(name string)
	IdleTime() time.Duration
}

type Emitter interface {
	Emit(types.InputEvent)
}

// ClientMessage is frontend action, e.g. {"action":"door","arg":"2"}.
type ClientMessage struct {
	Action string `json:"action"`
	Arg    string `json:"arg,omitempty"`
}

type Health struct {
	Screen  string `json:"screen"`
	IdleSec int64  `json:"idle_sec"`
	Clients int32  `json:"clients"`
}

type Server struct {
	log      *log2.Log
	input    Emitter
	viewer   Viewer
	url      string
	upgrader websocket.Upgrader
	alive    *alive.Alive // set by Run, connections stop with it
	connSeq  uint32
	clients  int32
}

func NewServer(log *log2.Log, in Emitter, viewer Viewer, kioskURL string) *Server {
	return &Server{
		log:    log,
		input:  in,
		viewer: viewer,
		url:    kioskURL,
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 4096,
			// frontend is served from kiosk itself or local dev server
			CheckOrigin: func(r *http.Request) bool { return true },
		},
	}
}

func (self *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", self.handleWebsocket)
	mux.HandleFunc("/qr.png", self.handleQR)
	mux.HandleFunc("/healthz", self.handleHealth)
	return mux
}

// Run serves HTTP until a stops.
func (self *Server) Run(listen string, a *alive.Alive) error {
	if !a.Add(1) {
		return nil
	}
	defer a.Done()
	self.alive = a
	srv := &http.Server{Addr: listen, Handler: self.Handler()}
	go func() {
		<-a.StopChan()
		ctx, cancel := context.WithTimeout(context.Background(), writeWait)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			self.log.Errorf("web shutdown err=%v", err)
		}
	}()
	self.log.Infof("web listen=%s", listen)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return errors.Annotatef(err, "web listen=%s", listen)
	}
	return nil
}

func (self *Server) handleWebsocket(w http.ResponseWriter, r *http.Request) {
	conn, err := self.upgrader.Upgrade(w, r, nil)
	if err != nil {
		// upgrader already replied with error
		self.log.Debugf("web upgrade remote=%s err=%v", r.RemoteAddr, err)
		return
	}
	name := fmt.Sprintf("web-%d", atomic.AddUint32(&self.connSeq, 1))
	self.log.Debugf("web client connected name=%s remote=%s", name, r.RemoteAddr)
	atomic.AddInt32(&self.clients, 1)
	defer atomic.AddInt32(&self.clients, -1)

	views := make(chan ui.View, 1)
	self.viewer.SubscribeView(name, views)
	defer self.viewer.UnsubscribeView(name)

	// hijacked connections are not closed by http.Server.Shutdown
	connAlive := alive.NewAlive()
	if self.alive != nil {
		go helpers.AliveSub(self.alive, connAlive)
	}
	go func() {
		<-connAlive.StopChan()
		conn.Close()
	}()

	go self.writeLoop(conn, name, self.viewer.View(), views, connAlive.StopChan())
	self.readLoop(conn, name)
	connAlive.Stop()
	self.log.Debugf("web client gone name=%s", name)
}

func (self *Server) readLoop(conn *websocket.Conn, name string) {
	defer conn.Close()
	conn.SetReadLimit(maxMessageSize)
	_ = conn.SetReadDeadline(time.Now().Add(pongWait))
	conn.SetPongHandler(func(string) error {
		return conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		var msg ClientMessage
		if err := conn.ReadJSON(&msg); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				self.log.Errorf("web read name=%s err=%v", name, err)
			}
			return
		}
		key, ok := types.ParseInputKey(msg.Action)
		if !ok {
			self.log.Debugf("web name=%s unknown action=%q", name, msg.Action)
			continue
		}
		self.input.Emit(types.InputEvent{Source: input.SourceWeb, Key: key, Arg: msg.Arg})
	}
}

func (self *Server) writeLoop(conn *websocket.Conn, name string, initial ui.View, views <-chan ui.View, done <-chan struct{}) {
	ping := time.NewTicker(pingPeriod)
	defer ping.Stop()
	write := func(v ui.View) bool {
		_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
		if err := conn.WriteJSON(v); err != nil {
			self.log.Debugf("web write name=%s err=%v", name, err)
			conn.Close()
			return false
		}
		return true
	}
	if !write(initial) {
		return
	}
	for {
		select {
		case v := <-views:
			if !write(v) {
				return
			}
		case <-ping.C:
			_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				conn.Close()
				return
			}
		case <-done:
			return
		}
	}
}

func (self *Server) handleQR(w http.ResponseWriter, r *http.Request) {
	if self.url == "" {
		http.Error(w, "kiosk.url is not configured", http.StatusNotFound)
		return
	}
	size := DefaultQRSize
	if s := r.URL.Query().Get("size"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n <= 0 || n > maxQRSize {
			http.Error(w, "invalid size", http.StatusBadRequest)
			return
		}
		size = n
	}
	png, err := qrcode.Encode(self.url, qrcode.Medium, size)
	if err != nil {
		self.log.Error(errors.Annotate(err, "web qr"))
		http.Error(w, "qr encode failed", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "max-age=3600")
	_, _ = w.Write(png)
}

func (self *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	h := Health{
		Screen:  self.viewer.View().Screen,
		IdleSec: int64(self.viewer.IdleTime() / time.Second),
		Clients: atomic.LoadInt32(&self.clients),
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(h); err != nil {
		self.log.Debugf("web healthz err=%v", err)
	}
}
