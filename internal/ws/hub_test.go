package ws

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"fate-inyeon/internal/domain/match"
)

func startHub(t *testing.T) *Hub {
	t.Helper()
	h := NewHub(nil)
	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)
	return h
}

func fakeClient(h *Hub, accountID string) *Client {
	return &Client{hub: h, send: make(chan []byte, 4), accountID: accountID}
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatalf("condition not met in time")
		}
		time.Sleep(5 * time.Millisecond)
	}
}

func TestNotifier_TargetsParticipantsOnly(t *testing.T) {
	h := startHub(t)
	a, b, c := fakeClient(h, "a"), fakeClient(h, "b"), fakeClient(h, "c")
	for _, cl := range []*Client{a, b, c} {
		h.Register(cl)
	}
	waitFor(t, func() bool { return h.ClientCount() == 3 })

	NewNotifier(h).MatchCreated(match.Match{ID: "m1", Profiles: [2]string{"a", "b"}})

	for _, cl := range []*Client{a, b} {
		select {
		case raw := <-cl.send:
			var evt MatchEvent
			if err := json.Unmarshal(raw, &evt); err != nil {
				t.Fatalf("unexpected err: %v", err)
			}
			if evt.Type != EventMatchCreated || evt.MatchID != "m1" {
				t.Fatalf("unexpected event %+v", evt)
			}
		case <-time.After(time.Second):
			t.Fatalf("participant %s got no event", cl.accountID)
		}
	}

	select {
	case raw := <-c.send:
		t.Fatalf("outsider received %s", raw)
	case <-time.After(50 * time.Millisecond):
	}
}

func TestHub_UnregisterClosesSend(t *testing.T) {
	h := startHub(t)
	a := fakeClient(h, "a")
	h.Register(a)
	waitFor(t, func() bool { return h.ClientCount() == 1 })

	h.Unregister(a)
	waitFor(t, func() bool { return h.ClientCount() == 0 })
	if _, ok := <-a.send; ok {
		t.Fatalf("send channel must be closed")
	}
}

func TestNotifier_NilHubIsNoop(t *testing.T) {
	var n *Notifier
	n.MatchRemoved(match.Match{ID: "m"})
	NewNotifier(nil).MatchCreated(match.Match{ID: "m"})
}

func TestHub_LeaveQueuedBehindJoin(t *testing.T) {
	h := NewHub(nil)
	gone := make([]*Client, 100)
	for i := range gone {
		gone[i] = fakeClient(h, "gone")
		h.Register(gone[i])
		h.Unregister(gone[i])
	}
	live := fakeClient(h, "live")
	h.Register(live)

	ctx, cancel := context.WithCancel(context.Background())
	t.Cleanup(cancel)
	go h.Run(ctx)

	waitFor(t, func() bool {
		h.mutex.RLock()
		defer h.mutex.RUnlock()
		return h.clients["live"][live]
	})
	if got := h.ClientCount(); got != 1 {
		t.Fatalf("expected only the live client, got %d", got)
	}
	for _, c := range gone {
		if _, ok := <-c.send; ok {
			t.Fatalf("send channel of a departed client must be closed")
		}
	}
}
