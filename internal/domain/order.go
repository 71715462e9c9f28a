package domain

import (
	"time"

	"github.com/google/uuid"
)

type OrderStatus string

// Stored values keep the labels the mobile clients already write.
const (
	OrderProcessing OrderStatus = "Procesando"
	OrderShipped    OrderStatus = "En reparto"
	OrderDelivered  OrderStatus = "Entregado"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderProcessing, OrderShipped, OrderDelivered:
		return true
	}
	return false
}

type Order struct {
	ID        uuid.UUID   `json:"id"`
	ProductID string      `json:"productID"`
	Brand     string      `json:"brand"`
	Title     string      `json:"title"`
	Size      string      `json:"size"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}
