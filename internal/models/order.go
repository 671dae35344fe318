package models

import (
	"fmt"
	"math"
	"strings"
	"time"
)

type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPreparing OrderStatus = "preparing"
	OrderReady     OrderStatus = "ready"
	OrderDelivered OrderStatus = "delivered"
	OrderCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderPending, OrderPreparing, OrderReady, OrderDelivered, OrderCancelled:
		return true
	}
	return false
}

// Next returns the single kitchen step after s: pending -> preparing -> ready.
func (s OrderStatus) Next() (OrderStatus, bool) {
	switch s {
	case OrderPending:
		return OrderPreparing, true
	case OrderPreparing:
		return OrderReady, true
	}
	return s, false
}

// InProgress reports whether the kitchen still has work on the order.
func (s OrderStatus) InProgress() bool {
	return s == OrderPending || s == OrderPreparing
}

func (s OrderStatus) IsTerminal() bool {
	return s == OrderDelivered || s == OrderCancelled
}

type PaymentMethod string

const (
	PaymentCash     PaymentMethod = "cash"
	PaymentCard     PaymentMethod = "card"
	PaymentTransfer PaymentMethod = "transfer"
)

func (m PaymentMethod) Valid() bool {
	switch m {
	case PaymentCash, PaymentCard, PaymentTransfer:
		return true
	}
	return false
}

type Order struct {
	ID            string        `json:"id"`
	Number        int           `json:"number"`
	Lines         []OrderLine   `json:"lines"`
	Customer      string        `json:"customer"`
	Note          string        `json:"note,omitempty"`
	CreatedAt     time.Time     `json:"created_at"`
	PaymentMethod PaymentMethod `json:"payment_method"`
	Total         int64         `json:"total"`
	Status        OrderStatus   `json:"status"`
}

// ItemSummary renders the lines as "2x Name, 1x Name".
func (o Order) ItemSummary() string {
	parts := make([]string, 0, len(o.Lines))
	for _, l := range o.Lines {
		parts = append(parts, fmt.Sprintf("%dx %s", l.Quantity, l.Product.Name))
	}
	return strings.Join(parts, ", ")
}

// ElapsedMinutes is the whole number of minutes between createdAt and now,
// floored. It is derived on every read and never stored.
func ElapsedMinutes(createdAt, now time.Time) int {
	return int(math.Floor(now.Sub(createdAt).Minutes()))
}

// IsOverdue reports whether more than thresholdMinutes have elapsed.
func IsOverdue(createdAt, now time.Time, thresholdMinutes int) bool {
	return ElapsedMinutes(createdAt, now) > thresholdMinutes
}
