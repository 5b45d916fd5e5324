package ws

import (
	"encoding/json"
	"time"

	"fate-inyeon/internal/domain/match"
)

const (
	EventMatchCreated = "match_created"
	EventMatchRemoved = "match_removed"
)

type MatchEvent struct {
	Type      string    `json:"type"`
	MatchID   string    `json:"match_id"`
	Profiles  [2]string `json:"profiles"`
	Timestamp string    `json:"timestamp"`
}

// Notifier pushes match lifecycle events to both participants.
type Notifier struct {
	hub *Hub
	now func() time.Time
}

func NewNotifier(hub *Hub) *Notifier {
	return &Notifier{hub: hub, now: time.Now}
}

func (n *Notifier) MatchCreated(m match.Match) {
	n.publish(EventMatchCreated, m)
}

func (n *Notifier) MatchRemoved(m match.Match) {
	n.publish(EventMatchRemoved, m)
}

func (n *Notifier) publish(eventType string, m match.Match) {
	if n == nil || n.hub == nil {
		return
	}
	b, err := json.Marshal(MatchEvent{
		Type:      eventType,
		MatchID:   m.ID,
		Profiles:  m.Profiles,
		Timestamp: n.now().UTC().Format(time.RFC3339),
	})
	if err != nil {
		return
	}
	n.hub.SendTo(b, m.Profiles[0], m.Profiles[1])
}
