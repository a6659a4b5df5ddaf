package runtime

import (
	"sync"

	"plainchat/contract"
)

type Set map[string]struct{}

// Registry maps open conversations to the viewers watching them.
type Registry struct {
	mu            sync.RWMutex
	sessions      map[string]contract.EventSink // viewer -> sink
	conversations map[string]Set                // conversation -> viewers
}

func NewRegistry() *Registry {
	return &Registry{
		sessions:      make(map[string]contract.EventSink),
		conversations: make(map[string]Set),
	}
}

// GetSinksForConversation resolves the viewers of a conversation into their sinks.
// Returns nil when nobody watches it.
func (r *Registry) GetSinksForConversation(conversationID string) []contract.EventSink {
	r.mu.RLock()
	defer r.mu.RUnlock()

	viewers, ok := r.conversations[conversationID]
	if !ok {
		return nil
	}
	var sinks []contract.EventSink
	for viewerID := range viewers {
		if sink, exists := r.sessions[viewerID]; exists {
			sinks = append(sinks, sink)
		}
	}
	return sinks
}

// Subscribe registers the viewer's sink and attaches it to conversationID.
// A viewer keeps a single sink across all the conversations it watches.
func (r *Registry) Subscribe(viewerID, conversationID string, sink contract.EventSink) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.sessions[viewerID] = sink
	if _, ok := r.conversations[conversationID]; !ok {
		r.conversations[conversationID] = make(Set)
	}
	r.conversations[conversationID][viewerID] = struct{}{}
}

// Unsubscribe detaches the viewer from conversationID. The session goes away
// with its last conversation, and so do empty conversations.
func (r *Registry) Unsubscribe(viewerID, conversationID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if viewers, ok := r.conversations[conversationID]; ok {
		delete(viewers, viewerID)
		if len(viewers) == 0 {
			delete(r.conversations, conversationID)
		}
	}
	for _, viewers := range r.conversations {
		if _, still := viewers[viewerID]; still {
			return
		}
	}
	delete(r.sessions, viewerID)
}
