package models

import "time"

// Section is the product category of an order line.
type Section string

const (
	SectionPrints   Section = "prints"
	SectionUpcycles Section = "upcycles"
)

// OrderStatus tracks an order from checkout to delivery. Only admins change it.
type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusPaid      OrderStatus = "paid"
	OrderStatusShipped   OrderStatus = "shipped"
	OrderStatusDelivered OrderStatus = "delivered"
	OrderStatusCancelled OrderStatus = "cancelled"
)

// Valid reports whether s is one of the known statuses.
func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusPaid, OrderStatusShipped, OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}

// Order is a single-item checkout. Prices are stored as "£NN" strings.
type Order struct {
	ID       uint   `json:"id" gorm:"primaryKey"`
	OrderRef string `json:"orderRef" gorm:"uniqueIndex;size:16;not null"`

	BuyerName  string  `json:"buyerName" gorm:"size:255;not null"`
	BuyerEmail string  `json:"buyerEmail" gorm:"size:320;not null"`
	BuyerPhone *string `json:"buyerPhone" gorm:"size:50"`

	AddressLine1 string  `json:"addressLine1" gorm:"size:255;not null"`
	AddressLine2 *string `json:"addressLine2" gorm:"size:255"`
	City         string  `json:"city" gorm:"size:255;not null"`
	County       *string `json:"county" gorm:"size:255"`
	Postcode     string  `json:"postcode" gorm:"size:32;not null"`
	Country      string  `json:"country" gorm:"size:128;not null"`

	Section     Section `json:"section" gorm:"size:16;not null"`
	ItemTitle   string  `json:"itemTitle" gorm:"size:255;not null"`
	ItemDetails *string `json:"itemDetails" gorm:"type:text"`
	ItemPrice   string  `json:"itemPrice" gorm:"size:50;not null"`

	ShippingZone string      `json:"shippingZone" gorm:"size:16;not null"`
	ShippingCost string      `json:"shippingCost" gorm:"size:50;not null"`
	Price        string      `json:"price" gorm:"size:50;not null"`
	Status       OrderStatus `json:"status" gorm:"size:16;not null;default:pending;index"`

	CreatedAt time.Time `json:"createdAt" gorm:"index"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// ShippingAddress joins the non-empty address parts in display order.
func (o *Order) ShippingAddress() []string {
	parts := []string{o.AddressLine1}
	if o.AddressLine2 != nil && *o.AddressLine2 != "" {
		parts = append(parts, *o.AddressLine2)
	}
	parts = append(parts, o.City)
	if o.County != nil && *o.County != "" {
		parts = append(parts, *o.County)
	}
	return append(parts, o.Postcode, o.Country)
}
