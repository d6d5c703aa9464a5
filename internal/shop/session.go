package shop

import (
	"time"

	"github.com/noah-isme/toko-sim/internal/cart"
	"github.com/noah-isme/toko-sim/internal/pricing"
)

// Session is one customer's visit: a shopping list plus the total carried
// into its invoices.
type Session struct {
	ID           string
	OpeningTotal pricing.Money
	OpenedAt     time.Time

	list *cart.ShoppingList
}

// SessionView is a snapshot of a session safe to hand out of the service lock.
type SessionView struct {
	ID           string        `json:"id"`
	OpeningTotal pricing.Money `json:"openingTotal"`
	OpenedAt     time.Time     `json:"openedAt"`
	Items        []cart.Entry  `json:"items"`
	Units        int           `json:"units"`
}

func (s *Session) view() SessionView {
	items := s.list.Entries()
	units := 0
	for _, item := range items {
		units += item.Quantity
	}
	return SessionView{
		ID:           s.ID,
		OpeningTotal: s.OpeningTotal,
		OpenedAt:     s.OpenedAt,
		Items:        items,
		Units:        units,
	}
}
