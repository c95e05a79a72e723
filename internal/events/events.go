package events

// Shop event types recorded through the outbox.
const (
	EventInvoiceCreated = "invoice.created"
	EventPaymentApplied = "payment.applied"
	EventStockToggled   = "stock.toggled"
	EventExpenseAdded   = "expense.added"
)
