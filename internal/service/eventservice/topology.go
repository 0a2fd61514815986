package eventservice

const (
	ExchangeKindTopic = "topic"
	ExchangeName      = "events.topic"
)

const (
	SalesImportedTopic        = "sales.imported"
	SalesImportRequestedTopic = "sales.import.requested"
)
