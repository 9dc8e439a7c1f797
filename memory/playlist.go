package memory

import "sync"

// Playlist is the round-robin list of memories the lighthouse flashes.
type Playlist struct {
	mu      sync.Mutex
	items   []Memory
	current int
}

// NewPlaylist returns a playlist positioned on the first item. An empty
// playlist plays Welcome.
func NewPlaylist(items ...Memory) *Playlist {
	if len(items) == 0 {
		items = []Memory{Welcome}
	}
	return &Playlist{items: append([]Memory(nil), items...)}
}

// Current returns the memory on air.
func (p *Playlist) Current() Memory {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.items[p.current]
}

// Next advances to the following memory, wrapping at the end, and returns
// it.
func (p *Playlist) Next() Memory {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.current = (p.current + 1) % len(p.items)
	return p.items[p.current]
}

// Push appends m and puts it on air. A playlist that only held Welcome
// drops it.
func (p *Playlist) Push(m Memory) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.items) == 1 && p.items[0].ID == Welcome.ID {
		p.items[0] = m
		p.current = 0
		return
	}
	p.items = append(p.items, m)
	p.current = len(p.items) - 1
}

// Remove drops the memory with the given ID, keeping the current position
// on the same memory where possible. The last item is never removed.
func (p *Playlist) Remove(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.items) == 1 {
		return false
	}
	for i, m := range p.items {
		if m.ID != id {
			continue
		}
		p.items = append(p.items[:i], p.items[i+1:]...)
		if i < p.current {
			p.current--
		} else if p.current >= len(p.items) {
			p.current = 0
		}
		return true
	}
	return false
}

// Len returns the number of memories in rotation.
func (p *Playlist) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.items)
}
