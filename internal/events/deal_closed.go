package events

import (
	"time"

	"github.com/google/uuid"
)

const (
	DealClosedTopic = "sales.deal.closed.v1"
	DealClosedType  = "sales.deal.closed"
)

// DealClosedEvent announces a DEAL funnel log after the commission batch for
// it has been committed. Consumers key on SaleLogID for idempotency.
type DealClosedEvent struct {
	EventType       string    `json:"eventType"`
	RequestID       string    `json:"requestId,omitempty"`
	SaleLogID       uuid.UUID `json:"saleLogId"`
	CustomerID      uuid.UUID `json:"customerId"`
	CustomerName    string    `json:"customerName"`
	CourseName      string    `json:"courseName,omitempty"`
	ActorID         uuid.UUID `json:"actorId"`
	DealAmount      float64   `json:"dealAmount"`
	ContractNo      string    `json:"contractNo"`
	CommissionCount int       `json:"commissionCount"`
	OccurredAt      time.Time `json:"occurredAt"`
}
