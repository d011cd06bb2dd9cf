package panel

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sync"
)

// broker fans events out to connected SSE clients. Slow clients whose
// buffer fills are dropped.
type broker struct {
	mu      sync.Mutex
	clients map[chan []byte]struct{}
}

func newBroker() *broker {
	return &broker{clients: make(map[chan []byte]struct{})}
}

func (b *broker) subscribe() chan []byte {
	ch := make(chan []byte, 100)
	b.mu.Lock()
	b.clients[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *broker) unsubscribe(ch chan []byte) {
	b.mu.Lock()
	if _, ok := b.clients[ch]; ok {
		delete(b.clients, ch)
		close(ch)
	}
	b.mu.Unlock()
}

func (b *broker) broadcast(event string, data any) {
	// Plain encoding, no HTML escaping: event payloads carry literal
	// placeholder tags like <IMAGE_ON_CANVAS> and the browser consumes
	// them through JSON.parse, never as markup.
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(data); err != nil {
		return
	}
	payload := bytes.TrimRight(buf.Bytes(), "\n")
	msg := []byte(fmt.Sprintf("event: %s\ndata: %s\n\n", event, payload))

	b.mu.Lock()
	defer b.mu.Unlock()
	for ch := range b.clients {
		select {
		case ch <- msg:
		default:
			delete(b.clients, ch)
			close(ch)
		}
	}
}
