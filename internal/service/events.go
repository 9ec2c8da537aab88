package service

// Dashboard events published after a mutation commits.
const (
	EventReceiptsImported  = "receipts.imported"
	EventReceiptCreated    = "receipts.created"
	EventReceiptUpdated    = "receipts.updated"
	EventReceiptAnnulled   = "receipts.annulled"
	EventAnnulmentReversed = "receipts.reversed"
)

// EventPublisher pushes events to live dashboards. The websocket hub implements it.
type EventPublisher interface {
	Publish(eventType string, data any)
}

func publish(events EventPublisher, eventType string, data any) {
	if events != nil {
		events.Publish(eventType, data)
	}
}
