package shop

import (
	"context"
	"fmt"
	"strings"

	"go.opentelemetry.io/otel/attribute"

	"github.com/noah-isme/toko-sim/internal/cart"
	"github.com/noah-isme/toko-sim/internal/catalog"
	"github.com/noah-isme/toko-sim/internal/events"
	"github.com/noah-isme/toko-sim/internal/obs"
	"github.com/noah-isme/toko-sim/internal/pricing"
	"github.com/noah-isme/toko-sim/internal/search"
)

// ReserveInput selects a product and a quantity as operator text. Group may be
// empty when Product is a name; the owning group is then looked up.
type ReserveInput struct {
	Group    string
	Product  string
	Quantity string
}

// ReleaseInput selects a shopping list entry by position or name.
type ReleaseInput struct {
	Product  string
	Quantity string
}

type stockMovement struct {
	Group    string `json:"group,omitempty"`
	Product  string `json:"product"`
	Quantity int    `json:"quantity"`
	Stock    int    `json:"stock"`
	Reserved int    `json:"reserved"`
}

// OpenSession starts a session with an empty shopping list. openingTotal is
// added to every invoice total of the session.
func (s *Service) OpenSession(ctx context.Context, openingTotal pricing.Money) (view SessionView, err error) {
	ctx, done := s.begin(ctx, "open_session")
	defer func() { done(err) }()
	if openingTotal < 0 {
		return SessionView{}, fmt.Errorf("%w: opening total must not be negative", catalog.ErrNotANumber)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess := &Session{
		ID:           newSessionID(),
		OpeningTotal: openingTotal,
		OpenedAt:     s.now(),
		list:         cart.NewShoppingList(),
	}
	s.sessions[sess.ID] = sess
	s.syncGauges()
	s.emit(ctx, events.TopicSessionOpened, sess.ID, map[string]any{"openingTotal": openingTotal})
	return sess.view(), nil
}

// CloseSession returns every reserved unit to stock and forgets the session.
// The returned view lists what was released.
func (s *Service) CloseSession(ctx context.Context, id string) (view SessionView, err error) {
	ctx, done := s.begin(obs.WithSessionID(ctx, id), "close_session")
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id)
	if err != nil {
		return SessionView{}, err
	}
	view = sess.view()
	releaseErr := cart.ReleaseAll(s.catalog, sess.list)
	delete(s.sessions, id)
	s.syncGauges()
	s.emit(ctx, events.TopicSessionClosed, id, map[string]any{"released": view.Items})
	if releaseErr != nil {
		s.logger.Warn().Err(releaseErr).Str("session_id", id).Msg("close session dropped entries missing from catalog")
	}
	return view, nil
}

// Session returns a snapshot of an open session.
func (s *Service) Session(ctx context.Context, id string) (view SessionView, err error) {
	_, done := s.begin(obs.WithSessionID(ctx, id), "session_view")
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id)
	if err != nil {
		return SessionView{}, err
	}
	return sess.view(), nil
}

// ShoppingListText renders the session's shopping list as numbered lines.
func (s *Service) ShoppingListText(ctx context.Context, id string) (text string, err error) {
	_, done := s.begin(obs.WithSessionID(ctx, id), "session_view")
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id)
	if err != nil {
		return "", err
	}
	return cart.Render(sess.list), nil
}

// Reserve moves stock into the session's shopping list.
func (s *Service) Reserve(ctx context.Context, id string, in ReserveInput) (view SessionView, err error) {
	ctx, done := s.begin(obs.WithSessionID(ctx, id), "reserve",
		attribute.String("shop.session", id),
		attribute.String("shop.group", in.Group),
		attribute.String("shop.product", in.Product),
	)
	defer func() { done(err) }()

	qty, err := catalog.ParseQuantity(strings.TrimSpace(in.Quantity))
	if err != nil {
		return SessionView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id)
	if err != nil {
		return SessionView{}, err
	}
	group, product, err := s.resolveReservation(in)
	if err != nil {
		return SessionView{}, err
	}
	if err := cart.Reserve(s.catalog, sess.list, group, product, qty); err != nil {
		return SessionView{}, err
	}
	rec, err := s.catalog.Record(group, product)
	if err != nil {
		return SessionView{}, err
	}
	s.syncGauges()
	s.emit(ctx, events.TopicStockReserved, id, stockMovement{
		Group: group, Product: product, Quantity: qty, Stock: rec.Quantity, Reserved: sess.list.Quantity(product),
	})
	return sess.view(), nil
}

// Release returns reserved units of a shopping list entry to stock.
func (s *Service) Release(ctx context.Context, id string, in ReleaseInput) (view SessionView, err error) {
	ctx, done := s.begin(obs.WithSessionID(ctx, id), "release",
		attribute.String("shop.session", id),
		attribute.String("shop.product", in.Product),
	)
	defer func() { done(err) }()

	qty, err := catalog.ParseQuantity(strings.TrimSpace(in.Quantity))
	if err != nil {
		return SessionView{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id)
	if err != nil {
		return SessionView{}, err
	}
	product, err := sess.list.Resolve(strings.TrimSpace(in.Product))
	if err != nil {
		return SessionView{}, err
	}
	if err := cart.Release(s.catalog, sess.list, product, qty); err != nil {
		return SessionView{}, err
	}
	movement := stockMovement{Product: product, Quantity: qty, Reserved: sess.list.Quantity(product)}
	if group, err := s.catalog.GroupOf(product); err == nil {
		movement.Group = group
		if rec, err := s.catalog.Record(group, product); err == nil {
			movement.Stock = rec.Quantity
		}
	}
	s.syncGauges()
	s.emit(ctx, events.TopicStockReleased, id, movement)
	return sess.view(), nil
}

// Invoice prices the session's shopping list against current catalog prices
// and discounts. Viewing an invoice never changes state.
func (s *Service) Invoice(ctx context.Context, id string) (summary pricing.Summary, err error) {
	ctx, done := s.begin(obs.WithSessionID(ctx, id), "invoice", attribute.String("shop.session", id))
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id)
	if err != nil {
		return pricing.Summary{}, err
	}
	inv, err := pricing.BuildInvoice(sess.list, s.catalog)
	if err != nil {
		return pricing.Summary{}, err
	}
	summary, err = pricing.Summarize(inv, sess.OpeningTotal)
	if err != nil {
		return pricing.Summary{}, err
	}
	if s.metrics != nil {
		s.metrics.InvoiceAmount.Observe(float64(summary.Total))
	}
	s.emit(ctx, events.TopicInvoiceBuilt, id, map[string]any{"lines": len(summary.Lines), "units": summary.Units, "total": summary.Total})
	return summary, nil
}

// InvoiceText renders the session invoice with the configured currency suffix.
func (s *Service) InvoiceText(ctx context.Context, id string) (string, error) {
	summary, err := s.Invoice(ctx, id)
	if err != nil {
		return "", err
	}
	return summary.Format(s.suffix), nil
}

// Search looks up term in the session's shopping list.
func (s *Service) Search(ctx context.Context, id, term string) (results []search.Result, err error) {
	_, done := s.begin(obs.WithSessionID(ctx, id), "search", attribute.String("shop.session", id))
	defer func() { done(err) }()

	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.session(id)
	if err != nil {
		return nil, err
	}
	return search.Search(sess.list, term), nil
}

// resolveReservation resolves the group and product named by in. Callers hold s.mu.
func (s *Service) resolveReservation(in ReserveInput) (string, string, error) {
	groupSel := strings.TrimSpace(in.Group)
	productSel := strings.TrimSpace(in.Product)
	if groupSel == "" {
		if catalog.IsNumeric(productSel) {
			return "", "", fmt.Errorf("%w: a group is required to select product %s by position", catalog.ErrGroupNotFound, productSel)
		}
		product := catalog.Normalize(productSel)
		group, err := s.catalog.GroupOf(product)
		if err != nil {
			return "", "", err
		}
		return group, product, nil
	}
	group, err := s.catalog.ResolveGroup(groupSel)
	if err != nil {
		return "", "", err
	}
	product, err := s.catalog.ResolveProduct(group, productSel)
	if err != nil {
		return "", "", err
	}
	return group, product, nil
}
