package events

import "sync"

// Recorded is one captured publish call.
type Recorded struct {
	Topic   string
	Key     string
	Payload any
}

// Recorder keeps published events in memory. Test double for Publisher.
type Recorder struct {
	mu     sync.Mutex
	events []Recorded
}

func NewRecorder() *Recorder { return &Recorder{} }

func (r *Recorder) Publish(topic, key string, payload any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, Recorded{Topic: topic, Key: key, Payload: payload})
}

func (r *Recorder) Events() []Recorded {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Recorded, len(r.events))
	copy(out, r.events)
	return out
}
