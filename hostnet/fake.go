package hostnet

import (
	"fmt"
	"net/netip"
	"sync"
)

// FakeLinks is an in-memory LinkManager.
type FakeLinks struct {
	m     sync.Mutex
	links map[string]*FakeLink
}

// FakeLink is the state of a link held by FakeLinks.
type FakeLink struct {
	Addrs []netip.Prefix
	Up    bool
}

// NewFakeLinks returns a FakeLinks with the named links present.
func NewFakeLinks(names ...string) *FakeLinks {
	f := &FakeLinks{links: map[string]*FakeLink{}}
	for _, n := range names {
		f.links[n] = &FakeLink{}
	}
	return f
}

// Add makes a link present.
func (f *FakeLinks) Add(name string) {
	f.m.Lock()
	defer f.m.Unlock()
	if _, ok := f.links[name]; !ok {
		f.links[name] = &FakeLink{}
	}
}

// Get returns the state of a link or nil.
func (f *FakeLinks) Get(name string) *FakeLink {
	f.m.Lock()
	defer f.m.Unlock()
	return f.links[name]
}

func (f *FakeLinks) LinkExists(name string) bool {
	return f.Get(name) != nil
}

func (f *FakeLinks) AssignAddress(name string, addr netip.Prefix) error {
	f.m.Lock()
	defer f.m.Unlock()

	l, ok := f.links[name]
	if !ok {
		return fmt.Errorf("failed to lookup link %q: link not found", name)
	}
	for _, a := range l.Addrs {
		if a == addr {
			return nil
		}
	}
	l.Addrs = append(l.Addrs, addr)
	return nil
}

func (f *FakeLinks) SetUp(name string) error {
	f.m.Lock()
	defer f.m.Unlock()

	l, ok := f.links[name]
	if !ok {
		return fmt.Errorf("failed to lookup link %q: link not found", name)
	}
	l.Up = true
	return nil
}
