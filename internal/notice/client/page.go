// Package client models the admin page script that dismisses notices: it
// binds a click handler to every recognised notice, removes the notice when
// its dismiss control is clicked and reports the dismissal in the background.
package client

import (
	"slices"
	"sync"

	"bkap/internal/notice/models"
)

// Notice is one notice element currently rendered on the page.
type Notice struct {
	ID                string
	Classes           []string
	HasDismissControl bool
}

// Marker returns the first recognised marker among the notice's classes.
func (n Notice) Marker() (models.Marker, bool) {
	for _, m := range models.Markers() {
		if slices.Contains(n.Classes, m.Class()) {
			return m, true
		}
	}
	return "", false
}

// ClickHandler runs when a notice's dismiss control is clicked.
type ClickHandler func(p *Page, n Notice)

// Page is the set of rendered notices and the click handlers bound to them.
type Page struct {
	mu       sync.Mutex
	notices  []Notice
	handlers map[string][]ClickHandler
}

// NewPage creates a page showing notices in order.
func NewPage(notices ...Notice) *Page {
	return &Page{
		notices:  slices.Clone(notices),
		handlers: make(map[string][]ClickHandler),
	}
}

// Notices returns the notices still on the page.
func (p *Page) Notices() []Notice {
	p.mu.Lock()
	defer p.mu.Unlock()
	return slices.Clone(p.notices)
}

// Has reports whether the notice is still on the page.
func (p *Page) Has(id string) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.indexLocked(id) >= 0
}

// On binds fn to the notice's dismiss control. Handlers accumulate until Off.
func (p *Page) On(id string, fn ClickHandler) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.handlers[id] = append(p.handlers[id], fn)
}

// Off unbinds every handler of the notice's dismiss control.
func (p *Page) Off(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	delete(p.handlers, id)
}

// Bound returns the number of handlers bound to the notice.
func (p *Page) Bound(id string) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.handlers[id])
}

// Remove takes the notice and its handlers off the page.
func (p *Page) Remove(id string) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if i := p.indexLocked(id); i >= 0 {
		p.notices = slices.Delete(p.notices, i, i+1)
	}
	delete(p.handlers, id)
}

// Click clicks the notice's dismiss control. It reports whether any handler
// ran, in which case default navigation is prevented.
func (p *Page) Click(id string) bool {
	p.mu.Lock()
	i := p.indexLocked(id)
	if i < 0 || !p.notices[i].HasDismissControl {
		p.mu.Unlock()
		return false
	}
	n := p.notices[i]
	handlers := slices.Clone(p.handlers[id])
	p.mu.Unlock()

	for _, fn := range handlers {
		fn(p, n)
	}
	return len(handlers) > 0
}

func (p *Page) indexLocked(id string) int {
	return slices.IndexFunc(p.notices, func(n Notice) bool { return n.ID == id })
}
