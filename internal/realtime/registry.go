package realtime

import (
	"encoding/json"
	"sync"

	"github.com/rs/zerolog"

	"github.com/awave-app/backend/internal/models"
)

// Event types pushed over the channel
const (
	EventChannelReady    = "channel_ready"
	EventNewNotification = "new_notification"
)

// Event is the wire envelope for channel pushes.
type Event struct {
	Type string      `json:"type"`
	Data interface{} `json:"data,omitempty"`
}

// ReconnectHints are sent at channel-ready time; reconnection itself is a
// client responsibility.
type ReconnectHints struct {
	Attempts int `json:"attempts"`
	DelayMS  int `json:"delay_ms"`
}

// Registry maps a user id to the set of currently open connections for that
// user. It is process-local and rebuilt from nothing on restart; it is a
// live-presence index, not a durable record. Mutations are guarded by the
// mutex so connect/disconnect never interleave partial updates.
type Registry struct {
	mu    sync.RWMutex
	conns map[uint]map[*Client]bool
	log   zerolog.Logger
}

// NewRegistry creates an empty connection registry
func NewRegistry(log zerolog.Logger) *Registry {
	return &Registry{
		conns: make(map[uint]map[*Client]bool),
		log:   log,
	}
}

func (r *Registry) add(userID uint, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := r.conns[userID]
	if set == nil {
		set = make(map[*Client]bool)
		r.conns[userID] = set
	}
	set[c] = true
}

// remove deregisters a connection; the user's entry disappears entirely with
// its last connection.
func (r *Registry) remove(userID uint, c *Client) {
	r.mu.Lock()
	defer r.mu.Unlock()
	set := r.conns[userID]
	if set == nil {
		return
	}
	if set[c] {
		delete(set, c)
		close(c.send)
	}
	if len(set) == 0 {
		delete(r.conns, userID)
	}
}

// Connections returns the number of open connections for a user
func (r *Registry) Connections(userID uint) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.conns[userID])
}

// Broadcast fans the notification out to every open connection registered for
// the user. A user with no open connections is a silent no-op; the durable
// row remains queryable, which is the offline-delivery path.
func (r *Registry) Broadcast(userID uint, notification *models.Notification) {
	msg, err := json.Marshal(Event{Type: EventNewNotification, Data: notification})
	if err != nil {
		r.log.Error().Err(err).Msg("marshal notification event")
		return
	}

	r.mu.RLock()
	defer r.mu.RUnlock()
	for c := range r.conns[userID] {
		select {
		case c.send <- msg:
		default:
			// slow client; drop
		}
	}
}
