package events

import "time"

const CustomerRegisteredTopic = "crm.customer.lifecycle.v1"

type CustomerRegisteredEvent struct {
	EventType    string    `json:"event_type"`
	RequestID    string    `json:"request_id,omitempty"`
	CustomerID   string    `json:"customer_id"`
	Email        string    `json:"email"`
	EmploymentID string    `json:"employment_id,omitempty"`
	OccurredAt   time.Time `json:"occurred_at"`
}
