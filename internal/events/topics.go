package events

// Topic constants for domain events emitted by the shop.
const (
	TopicSessionOpened  = "session.opened"
	TopicSessionClosed  = "session.closed"
	TopicStockReserved  = "stock.reserved"
	TopicStockReleased  = "stock.released"
	TopicCatalogChanged = "catalog.changed"
	TopicInvoiceBuilt   = "invoice.built"
)

// DefaultTopics returns the canonical list of topics.
func DefaultTopics() []string {
	return []string{
		TopicSessionOpened,
		TopicSessionClosed,
		TopicStockReserved,
		TopicStockReleased,
		TopicCatalogChanged,
		TopicInvoiceBuilt,
	}
}
