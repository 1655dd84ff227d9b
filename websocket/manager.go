package websocket

import (
	"context"
	"errors"
	"sync"
)

// Manager maintains the set of live clients.
type Manager struct {
	mu      sync.RWMutex
	clients map[Client]context.CancelFunc
}

func NewManager() *Manager {
	return &Manager{
		clients: make(map[Client]context.CancelFunc),
	}
}

func (m *Manager) Clients() []Client {
	m.mu.RLock()
	defer m.mu.RUnlock()

	res := make([]Client, 0, len(m.clients))
	for c := range m.clients {
		res = append(res, c)
	}
	return res
}

func (m *Manager) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.clients)
}

func (m *Manager) RegisterClient(_ context.Context, cancel context.CancelFunc, c Client) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.clients[c] = cancel
}

// UnregisterClient cancels and closes c if it is registered.
func (m *Manager) UnregisterClient(c Client) {
	m.mu.Lock()
	cancel, ok := m.clients[c]
	delete(m.clients, c)
	m.mu.Unlock()

	if ok {
		cancel()
		_ = c.Close()
	}
}

// Broadcast queues b on every client and joins the write errors.
func (m *Manager) Broadcast(b []byte) error {
	var errs []error
	for _, c := range m.Clients() {
		if _, err := c.Write(b); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// Shutdown closes every client.
func (m *Manager) Shutdown() {
	for _, c := range m.Clients() {
		m.UnregisterClient(c)
	}
}
