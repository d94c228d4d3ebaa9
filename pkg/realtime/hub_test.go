package realtime

import "testing"

func TestNewHub(t *testing.T) {
	h := NewHub()
	if h == nil {
		t.Fatal("NewHub returned nil")
	}
}

func TestHub_PublishDeliversToSubscriber(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe()
	defer h.Unsubscribe(sub)

	h.Publish("frame")
	got := <-sub
	if got != Event("frame") {
		t.Errorf("got %q, want frame", got)
	}
}

func TestHub_PublishDeliversToMultipleSubscribers(t *testing.T) {
	h := NewHub()
	sub1 := h.Subscribe()
	sub2 := h.Subscribe()
	defer h.Unsubscribe(sub1)
	defer h.Unsubscribe(sub2)

	h.Publish("arena")
	if got := <-sub1; got != Event("arena") {
		t.Errorf("sub1 got %q, want arena", got)
	}
	if got := <-sub2; got != Event("arena") {
		t.Errorf("sub2 got %q, want arena", got)
	}
}

func TestHub_UnsubscribeClosesChannel(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe()
	h.Unsubscribe(sub)
	if _, ok := <-sub; ok {
		t.Error("channel should be closed after Unsubscribe")
	}
	// Double unsubscribe must not panic.
	h.Unsubscribe(sub)
}

func TestHub_LaggingSubscriberDropsEvents(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe()
	defer h.Unsubscribe(sub)

	for i := 0; i < 100; i++ {
		h.Publish("frame")
	}
	// No deadlock and at least the buffered events arrive.
	got := <-sub
	if got != Event("frame") {
		t.Errorf("got %q, want frame", got)
	}
}

func TestHub_Close(t *testing.T) {
	h := NewHub()
	sub := h.Subscribe()
	h.Close()
	if _, ok := <-sub; ok {
		t.Error("channel should be closed after hub Close")
	}
	h.Publish("frame") // no-op, no panic

	late := h.Subscribe()
	if _, ok := <-late; ok {
		t.Error("Subscribe on a closed hub should return a closed channel")
	}
}
