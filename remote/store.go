package remote

import (
	"maps"
	"sync"
)

// Store is the shared-document transport contract. Implementations deliver
// a full document snapshot on every change, including the echo of this
// station's own pushes, and must not block the caller's goroutine in Push.
type Store interface {
	// Subscribe registers a snapshot callback for the given station
	// document and returns a cancel function.
	Subscribe(stationID string, onSnapshot func(Document)) (cancel func(), err error)
	// Push writes fields to the station document. With merge set, absent
	// fields keep their previous values.
	Push(stationID string, fields Document, merge bool) error
}

type subscription struct {
	station    string
	onSnapshot func(Document)
}

// Memory is an in-process Store. It backs tests and kiosks running without
// a configured fleet transport.
type Memory struct {
	mu     sync.Mutex
	docs   map[string]Document
	subs   map[int]subscription
	nextID int
}

// NewMemory returns an empty in-process store.
func NewMemory() *Memory {
	return &Memory{
		docs: make(map[string]Document),
		subs: make(map[int]subscription),
	}
}

// Subscribe registers a snapshot callback. If the document already exists,
// the callback fires immediately with its current contents.
func (m *Memory) Subscribe(stationID string, onSnapshot func(Document)) (func(), error) {
	m.mu.Lock()
	id := m.nextID
	m.nextID++
	m.subs[id] = subscription{station: stationID, onSnapshot: onSnapshot}
	doc, ok := m.docs[stationID]
	m.mu.Unlock()

	if ok {
		onSnapshot(maps.Clone(doc))
	}

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()

		delete(m.subs, id)
	}, nil
}

// Push writes fields to the station document and notifies every subscriber,
// including the pusher itself.
func (m *Memory) Push(stationID string, fields Document, merge bool) error {
	m.mu.Lock()

	doc := m.docs[stationID]
	if doc == nil || !merge {
		doc = make(Document, len(fields))
	}

	maps.Copy(doc, fields)
	m.docs[stationID] = doc

	var subs []func(Document)

	for _, s := range m.subs {
		if s.station == stationID {
			subs = append(subs, s.onSnapshot)
		}
	}

	snapshot := maps.Clone(doc)

	m.mu.Unlock()

	for _, onSnapshot := range subs {
		onSnapshot(maps.Clone(snapshot))
	}

	return nil
}

// Document returns a copy of the current document for a station.
func (m *Memory) Document(stationID string) Document {
	m.mu.Lock()
	defer m.mu.Unlock()

	return maps.Clone(m.docs[stationID])
}
