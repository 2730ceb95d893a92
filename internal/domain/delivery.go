package domain

type DeliveryStatus string

const (
	DeliverySuccess DeliveryStatus = "success"
	DeliveryFailure DeliveryStatus = "failure"
)

// DeliveryRecord is one append-only ledger row per fulfillment attempt.
type DeliveryRecord struct {
	MessageID string         `json:"messageId" dynamodbav:"messageId"`
	Recipient string         `json:"recipient" dynamodbav:"recipient"`
	SentAt    string         `json:"sentAt" dynamodbav:"sentAt"`
	Status    DeliveryStatus `json:"status" dynamodbav:"status"`
}
