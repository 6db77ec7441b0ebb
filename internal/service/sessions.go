package service

import (
	"sync"
	"time"

	"littletreat/internal/model"
)

type cartSession struct {
	cart     *Cart
	lastSeen time.Time
}

// CartSessions maps session ids to carts built from a shared catalog.
type CartSessions struct {
	mu      sync.Mutex
	catalog []model.MenuItem
	carts   map[string]*cartSession
	now     func() time.Time
}

func NewCartSessions(catalog []model.MenuItem) *CartSessions {
	return &CartSessions{
		catalog: catalog,
		carts:   make(map[string]*cartSession),
		now:     time.Now,
	}
}

// Do runs fn against the session's cart, creating the cart on first use.
// fn must not retain the cart after returning.
func (s *CartSessions) Do(sessionID string, fn func(*Cart) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.carts[sessionID]
	if !ok {
		sess = &cartSession{cart: NewCart(s.catalog)}
		s.carts[sessionID] = sess
	}
	sess.lastSeen = s.now()
	return fn(sess.cart)
}

// Sweep drops carts not touched within idle and returns how many were removed.
func (s *CartSessions) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	removed := 0
	for id, sess := range s.carts {
		if sess.lastSeen.Before(cutoff) {
			delete(s.carts, id)
			removed++
		}
	}
	return removed
}

func (s *CartSessions) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.carts)
}
