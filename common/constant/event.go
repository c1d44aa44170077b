package constant

const (
	QueueStreamName = "vending_machine_queue_stream"
)

const (
	AllWildcard      = "events.>"
	PurchaseWildcard = "events.purchase.>"
	EmailWildcard    = "events.email.>"

	SubjectPurchaseCompleted = "events.purchase.completed"
	SubjectSendEmail         = "events.email.send"
)
