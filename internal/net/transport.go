package net

import (
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"github.com/ItsNotACoffee/HoloPlayground/internal/paint"
)

// pointerBits is the width of a device-local pointer id inside the
// tracker-wide PointerID.
const pointerBits = 16

// Peer is a connected pointer feed.
type Peer struct {
	Conn  *websocket.Conn
	Index int64
	// live holds the pointers this feed pressed and has not released.
	live map[paint.PointerID]bool
}

// PointerID maps a device-local pointer id into the tracker-wide space so
// that two feeds using the same ids never share a stroke.
func (p *Peer) PointerID(local uint16) paint.PointerID {
	return paint.PointerID(p.Index<<pointerBits | int64(local))
}

// PeerManager keeps track of connected feeds.
type PeerManager struct {
	peers map[string]*Peer
	next  int64
	mu    sync.RWMutex
}

func NewPeerManager() *PeerManager {
	return &PeerManager{
		peers: make(map[string]*Peer),
	}
}

// Add registers a new feed and assigns its pointer namespace.
func (pm *PeerManager) Add(conn *websocket.Conn) *Peer {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	pm.next++
	peer := &Peer{Conn: conn, Index: pm.next, live: make(map[paint.PointerID]bool)}
	addr := conn.RemoteAddr().String()
	pm.peers[addr] = peer
	log.Printf("Added feed %d from %s", peer.Index, addr)
	return peer
}

// Remove forgets a feed.
func (pm *PeerManager) Remove(peer *Peer) {
	pm.mu.Lock()
	defer pm.mu.Unlock()
	addr := peer.Conn.RemoteAddr().String()
	delete(pm.peers, addr)
	log.Printf("Removed feed %d from %s", peer.Index, addr)
}

// Len returns the number of connected feeds.
func (pm *PeerManager) Len() int {
	pm.mu.RLock()
	defer pm.mu.RUnlock()
	return len(pm.peers)
}
