package channel

import (
	"slices"
	"sync"

	"sitehub/internal/domain/notification"
	"sitehub/internal/usecase/commands"
)

// Registry maps channel kinds to configured senders. A kind without a sender
// is reported as unsupported by the dispatcher.
type Registry struct {
	mu      sync.RWMutex
	senders map[notification.ChannelKind]commands.ChannelSender
}

func NewRegistry() *Registry {
	return &Registry{senders: make(map[notification.ChannelKind]commands.ChannelSender)}
}

func (r *Registry) Register(kind notification.ChannelKind, sender commands.ChannelSender) *Registry {
	r.mu.Lock()
	defer r.mu.Unlock()
	if sender == nil {
		delete(r.senders, kind)
		return r
	}
	r.senders[kind] = sender
	return r
}

func (r *Registry) Lookup(kind notification.ChannelKind) (commands.ChannelSender, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.senders[kind]
	return s, ok
}

// Kinds lists the configured kinds in a stable order.
func (r *Registry) Kinds() []notification.ChannelKind {
	r.mu.RLock()
	defer r.mu.RUnlock()
	kinds := make([]notification.ChannelKind, 0, len(r.senders))
	for k := range r.senders {
		kinds = append(kinds, k)
	}
	slices.Sort(kinds)
	return kinds
}
