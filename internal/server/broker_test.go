package server

import (
	"encoding/json"
	"testing"
	"time"
)

func TestBrokerPublishSubscribe(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("tok-1")
	defer b.Unsubscribe("tok-1", ch)

	b.Publish("tok-1", SSEEvent{Type: "hint_issued", HintIndex: 4, Score: 60})
	b.Publish("tok-other", SSEEvent{Type: "round_over"})

	select {
	case data := <-ch:
		var ev SSEEvent
		if err := json.Unmarshal(data, &ev); err != nil {
			t.Fatalf("unmarshal: %v", err)
		}
		if ev.Type != "hint_issued" || ev.HintIndex != 4 || ev.Score != 60 {
			t.Errorf("event = %+v", ev)
		}
	case <-time.After(time.Second):
		t.Fatal("no event received")
	}

	// The other session's event must not leak into this stream.
	select {
	case data := <-ch:
		t.Fatalf("unexpected event: %s", data)
	default:
	}
}

func TestBrokerUnsubscribe(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("tok-1")
	b.Unsubscribe("tok-1", ch)

	b.Publish("tok-1", SSEEvent{Type: "round_started"})

	select {
	case data := <-ch:
		t.Fatalf("event after unsubscribe: %s", data)
	default:
	}
}

func TestBrokerDropsWhenSubscriberIsSlow(t *testing.T) {
	b := NewBroker()
	ch := b.Subscribe("tok-1")
	defer b.Unsubscribe("tok-1", ch)

	// Overflow the buffer; Publish must not block.
	done := make(chan struct{})
	go func() {
		for i := 0; i < 64; i++ {
			b.Publish("tok-1", SSEEvent{Type: "hint_issued", HintIndex: i})
		}
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("publish blocked on a slow subscriber")
	}
}
