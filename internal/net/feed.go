package net

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/websocket"

	"github.com/ItsNotACoffee/HoloPlayground/internal/paint"
)

// FeedPath is the websocket endpoint accepting pointer frames.
const FeedPath = "/pointer"

// Frame is one pointer event on the wire:
//
//	{"kind":"drag","pointer":1,"world":[0.1,1.2,0.5],"local":[0.3,0.2,0]}
type Frame struct {
	Kind    string      `json:"kind"`
	Pointer uint16      `json:"pointer,omitempty"`
	World   paint.Point `json:"world"`
	Local   paint.Point `json:"local"`
}

// Sink receives decoded events.
type Sink interface {
	Push(events ...paint.Event)
}

// FeedServer accepts websocket connections from XR devices and forwards
// their pointer events to a Sink. Each connection gets its own pointer
// namespace; pointers still pressed when a connection drops are released.
type FeedServer struct {
	sink     Sink
	peers    *PeerManager
	upgrader websocket.Upgrader
}

func NewFeedServer(sink Sink) *FeedServer {
	return &FeedServer{
		sink:  sink,
		peers: NewPeerManager(),
		upgrader: websocket.Upgrader{
			ReadBufferSize:  1024,
			WriteBufferSize: 1024,
			// Devices connect from the local network, not from browsers.
			CheckOrigin: func(*http.Request) bool { return true },
		},
	}
}

// Peers returns the number of connected feeds.
func (s *FeedServer) Peers() int { return s.peers.Len() }

func (s *FeedServer) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	conn, err := s.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Printf("Feed upgrade from %s failed: %v", r.RemoteAddr, err)
		return
	}
	s.serve(conn)
}

func (s *FeedServer) serve(conn *websocket.Conn) {
	defer conn.Close()
	peer := s.peers.Add(conn)
	defer s.peers.Remove(peer)
	defer s.release(peer)

	for {
		_, data, err := conn.ReadMessage()
		if err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("Feed %d disconnected: %v", peer.Index, err)
			}
			return
		}
		// A bad frame is skipped; only the connection failing ends the feed.
		var f Frame
		if err := json.Unmarshal(data, &f); err != nil {
			log.Printf("Feed %d: bad frame: %v", peer.Index, err)
			continue
		}
		e, err := peer.decode(f)
		if err != nil {
			log.Printf("Feed %d: %v", peer.Index, err)
			continue
		}
		s.sink.Push(e)
	}
}

// release lifts every pointer the peer left pressed.
func (s *FeedServer) release(peer *Peer) {
	for id := range peer.live {
		s.sink.Push(paint.Event{Kind: paint.Up, PointerID: id})
	}
	clear(peer.live)
}

func (p *Peer) decode(f Frame) (paint.Event, error) {
	kind, ok := paint.ParseKind(f.Kind)
	if !ok {
		return paint.Event{}, fmt.Errorf("unknown frame kind %q", f.Kind)
	}
	e := paint.Event{Kind: kind, World: f.World, Local: f.Local}
	if kind == paint.FocusExit {
		return e, nil
	}
	e.PointerID = p.PointerID(f.Pointer)
	switch kind {
	case paint.Down:
		p.live[e.PointerID] = true
	case paint.Up:
		delete(p.live, e.PointerID)
	}
	return e, nil
}

// ListenAndServe serves the feed on addr until ctx is done.
func (s *FeedServer) ListenAndServe(ctx context.Context, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(FeedPath, s)
	srv := &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()
	log.Printf("Pointer feed listening on %s%s", addr, FeedPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("pointer feed: %w", err)
	}
	return nil
}
