package ws

import (
	"context"
	"log"
	"sync"
)

type envelope struct {
	accountIDs []string
	message    []byte
}

// membership is a join or leave. Both go through one channel so a client's
// leave is never handled before its join.
type membership struct {
	client *Client
	join   bool
}

// Hub tracks live connections per account and fans out targeted messages.
type Hub struct {
	clients    map[string]map[*Client]bool
	outbound   chan envelope
	membership chan membership
	done       chan struct{}
	mutex      sync.RWMutex
	logger     *log.Logger
}

func NewHub(logger *log.Logger) *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]bool),
		outbound:   make(chan envelope, 1024),
		membership: make(chan membership, 256),
		done:       make(chan struct{}),
		logger:     logger,
	}
}

func (h *Hub) Run(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			h.closeAll()
			close(h.done)
			return

		case op := <-h.membership:
			if op.client == nil {
				continue
			}
			if op.join {
				h.add(op.client)
			} else {
				h.drop(op.client)
			}

		case env := <-h.outbound:
			h.mutex.RLock()
			targets := make([]*Client, 0, 2)
			for _, id := range env.accountIDs {
				for c := range h.clients[id] {
					targets = append(targets, c)
				}
			}
			h.mutex.RUnlock()

			for _, client := range targets {
				select {
				case client.send <- env.message:
				default:
					h.drop(client)
				}
			}
		}
	}
}

func (h *Hub) add(client *Client) {
	h.mutex.Lock()
	set, ok := h.clients[client.accountID]
	if !ok {
		set = make(map[*Client]bool)
		h.clients[client.accountID] = set
	}
	set[client] = true
	total := h.countLocked()
	h.mutex.Unlock()
	if h.logger != nil {
		h.logger.Printf("WS connected | account=%s total_clients=%d", client.accountID, total)
	}
}

func (h *Hub) drop(client *Client) {
	h.mutex.Lock()
	set, ok := h.clients[client.accountID]
	if !ok || !set[client] {
		h.mutex.Unlock()
		return
	}
	delete(set, client)
	if len(set) == 0 {
		delete(h.clients, client.accountID)
	}
	close(client.send)
	total := h.countLocked()
	h.mutex.Unlock()
	if h.logger != nil {
		h.logger.Printf("WS disconnected | account=%s total_clients=%d", client.accountID, total)
	}
}

func (h *Hub) closeAll() {
	h.mutex.Lock()
	defer h.mutex.Unlock()
	for id, set := range h.clients {
		for c := range set {
			close(c.send)
		}
		delete(h.clients, id)
	}
}

func (h *Hub) countLocked() int {
	n := 0
	for _, set := range h.clients {
		n += len(set)
	}
	return n
}

func (h *Hub) Register(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.membership <- membership{client: client, join: true}:
	case <-h.done:
	}
}

func (h *Hub) Unregister(client *Client) {
	if h == nil {
		return
	}
	select {
	case h.membership <- membership{client: client}:
	case <-h.done:
	}
}

// SendTo queues message for every connection of the given accounts. It never
// blocks; a full queue drops the message.
func (h *Hub) SendTo(message []byte, accountIDs ...string) {
	if h == nil || len(accountIDs) == 0 {
		return
	}
	select {
	case h.outbound <- envelope{accountIDs: accountIDs, message: message}:
	default:
		if h.logger != nil {
			h.logger.Printf("WS send dropped | reason=buffer_full")
		}
	}
}

func (h *Hub) ClientCount() int {
	if h == nil {
		return 0
	}
	h.mutex.RLock()
	defer h.mutex.RUnlock()
	return h.countLocked()
}
