package game

import (
	"sync"
	"time"

	"go.uber.org/zap"
)

// writeWait bounds a single write so a stalled watcher cannot hold up moves.
const writeWait = 5 * time.Second

// watcher is the part of a websocket connection the hub writes to.
type watcher interface {
	SetWriteDeadline(t time.Time) error
	WriteJSON(v interface{}) error
	Close() error
}

// hub fans game updates out to every websocket watching that game.
type hub struct {
	log       *zap.SugaredLogger
	writeWait time.Duration
	mu        sync.RWMutex
	conns     map[string]map[watcher]*sync.Mutex
}

func newHub(log *zap.SugaredLogger) *hub {
	return &hub{log: log, writeWait: writeWait, conns: make(map[string]map[watcher]*sync.Mutex)}
}

func (h *hub) join(gameID string, conn watcher) *sync.Mutex {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.conns[gameID] == nil {
		h.conns[gameID] = make(map[watcher]*sync.Mutex)
	}
	// gorilla connections allow only one concurrent writer
	writeMu := &sync.Mutex{}
	h.conns[gameID][conn] = writeMu
	return writeMu
}

func (h *hub) leave(gameID string, conn watcher) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.conns[gameID], conn)
	if len(h.conns[gameID]) == 0 {
		delete(h.conns, gameID)
	}
}

func (h *hub) watchers(gameID string) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.conns[gameID])
}

func (h *hub) send(conn watcher, writeMu *sync.Mutex, msg any) error {
	writeMu.Lock()
	defer writeMu.Unlock()
	if err := conn.SetWriteDeadline(time.Now().Add(h.writeWait)); err != nil {
		return err
	}
	return conn.WriteJSON(msg)
}

func (h *hub) broadcast(gameID string, msg any) {
	h.mu.RLock()
	targets := make(map[watcher]*sync.Mutex, len(h.conns[gameID]))
	for conn, writeMu := range h.conns[gameID] {
		targets[conn] = writeMu
	}
	h.mu.RUnlock()

	for conn, writeMu := range targets {
		if err := h.send(conn, writeMu, msg); err != nil {
			h.log.Errorf("write to watcher of %s failed: %v", gameID, err)
			h.leave(gameID, conn)
			_ = conn.Close()
		}
	}
}
