package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strings"

	"artshop/internal/background"
	"artshop/internal/models"
	"artshop/internal/notify"
	"artshop/internal/repositories"
	"artshop/internal/shipping"
	"artshop/pkg/rabbitmq"
)

const (
	// maxOrderRefAttempts bounds regeneration when a reference is already taken.
	maxOrderRefAttempts = 5
	// DefaultOrderRefPrefix is used when OrderDeps.RefPrefix is empty.
	DefaultOrderRefPrefix = "BT"
)

// EventPublisher is satisfied by *rabbitmq.Client.
type EventPublisher interface {
	Publish(exchange, routingKey string, body []byte) error
}

// OrderDeps are the collaborators of OrderService. Notifier, Mailer and
// Events may be nil; the matching side effect is then skipped.
type OrderDeps struct {
	Orders     repositories.OrderRepository
	Calculator *shipping.Calculator
	Notifier   notify.OwnerNotifier
	Mailer     notify.Mailer
	Tasks      *background.Group
	Events     EventPublisher
	RefPrefix  string
}

// OrderService handles business logic related to orders.
type OrderService struct {
	orders    repositories.OrderRepository
	calc      *shipping.Calculator
	notifier  notify.OwnerNotifier
	mailer    notify.Mailer
	tasks     *background.Group
	events    EventPublisher
	refPrefix string
	newRef    func(prefix string) (string, error)
}

// NewOrderService creates a new OrderService.
func NewOrderService(deps OrderDeps) *OrderService {
	if deps.Calculator == nil {
		deps.Calculator = shipping.DefaultCalculator()
	}
	if deps.Tasks == nil {
		deps.Tasks = background.NewGroup(0)
	}
	if deps.RefPrefix == "" {
		deps.RefPrefix = DefaultOrderRefPrefix
	}
	return &OrderService{
		orders:    deps.Orders,
		calc:      deps.Calculator,
		notifier:  deps.Notifier,
		mailer:    deps.Mailer,
		tasks:     deps.Tasks,
		events:    deps.Events,
		refPrefix: deps.RefPrefix,
		newRef:    GenerateOrderRef,
	}
}

// CreateOrderInput is a checkout submission. ShippingZone, ShippingCost and
// Price are the figures the buyer was shown; the stored order always carries
// the server's own quote.
type CreateOrderInput struct {
	DeliveryDetails
	Section     models.Section
	ItemTitle   string
	ItemDetails string
	Size        string
	ItemPrice   string

	ShippingZone string
	ShippingCost string
	Price        string
}

// Quote prices an order line without creating anything.
func (s *OrderService) Quote(section models.Section, country, size, itemPrice string) shipping.Quote {
	return s.calc.Quote(shipping.QuoteRequest{
		Section:   section,
		Country:   country,
		Size:      size,
		ItemPrice: itemPrice,
	})
}

// CreateOrder validates the checkout, persists the order under a fresh
// reference and fans out notifications. Only validation and persistence
// failures are returned; notification failures are logged.
func (s *OrderService) CreateOrder(ctx context.Context, in CreateOrderInput) (*models.Order, error) {
	if err := validateCreateOrder(in); err != nil {
		return nil, err
	}

	size := in.Size
	if size == "" {
		size = shipping.SizeFromDetails(in.ItemDetails)
	}
	quote := s.Quote(in.Section, in.Country, size, in.ItemPrice)
	s.logQuoteMismatch(in, quote)

	order := &models.Order{
		BuyerName:    strings.TrimSpace(in.BuyerName),
		BuyerEmail:   strings.TrimSpace(in.BuyerEmail),
		BuyerPhone:   optional(in.BuyerPhone),
		AddressLine1: strings.TrimSpace(in.AddressLine1),
		AddressLine2: optional(in.AddressLine2),
		City:         strings.TrimSpace(in.City),
		County:       optional(in.County),
		Postcode:     strings.TrimSpace(in.Postcode),
		Country:      strings.TrimSpace(in.Country),
		Section:      in.Section,
		ItemTitle:    in.ItemTitle,
		ItemDetails:  optional(in.ItemDetails),
		ItemPrice:    quote.ItemPrice,
		ShippingZone: string(quote.Zone),
		ShippingCost: quote.ShippingCost,
		Price:        quote.Total,
		Status:       models.OrderStatusPending,
	}
	if err := s.insertWithFreshRef(ctx, order); err != nil {
		return nil, err
	}
	log.Printf("[Orders] Created order %s (%s, %s)", order.OrderRef, order.ItemTitle, order.Price)

	s.notifyOwner(ctx, newOrderAlert(order))
	s.sendConfirmation(ctx, order)
	s.publish(rabbitmq.RoutingOrderCreated, order)

	return order, nil
}

func validateCreateOrder(in CreateOrderInput) error {
	err := ValidateDelivery(in.DeliveryDetails)
	verr, _ := err.(*ValidationError)
	if verr == nil {
		verr = &ValidationError{}
	}
	if in.Section != models.SectionPrints && in.Section != models.SectionUpcycles {
		verr.add("section", "Section must be prints or upcycles")
	}
	if in.ShippingZone != "" && !shipping.Zone(in.ShippingZone).Valid() {
		verr.add("shippingZone", "Shipping zone must be uk, europe or row")
	}
	return verr.orNil()
}

func (s *OrderService) logQuoteMismatch(in CreateOrderInput, q shipping.Quote) {
	if (in.ShippingZone != "" && in.ShippingZone != string(q.Zone)) ||
		(in.ShippingCost != "" && in.ShippingCost != q.ShippingCost) ||
		(in.Price != "" && in.Price != q.Total) {
		log.Printf("[Orders] Client quote %s/%s/%s differs from server quote %s/%s/%s for %q; using server figures",
			in.ShippingZone, in.ShippingCost, in.Price, q.Zone, q.ShippingCost, q.Total, in.ItemTitle)
	}
}

// insertWithFreshRef writes the order in a single insert, drawing a new
// reference whenever the previous one collides.
func (s *OrderService) insertWithFreshRef(ctx context.Context, order *models.Order) error {
	for attempt := 1; attempt <= maxOrderRefAttempts; attempt++ {
		ref, err := s.newRef(s.refPrefix)
		if err != nil {
			return err
		}
		order.ID = 0
		order.OrderRef = ref

		err = s.orders.Create(ctx, order)
		if err == nil {
			return nil
		}
		if !errors.Is(err, repositories.ErrDuplicateOrderRef) {
			return fmt.Errorf("failed to create order in repository: %w", err)
		}
		log.Printf("[Orders] Order reference %s already taken (attempt %d)", ref, attempt)
	}
	return fmt.Errorf("failed to create order: no free reference after %d attempts", maxOrderRefAttempts)
}

func newOrderAlert(o *models.Order) notify.Notification {
	details := "N/A"
	if o.ItemDetails != nil {
		details = *o.ItemDetails
	}
	lines := []string{
		"Order ref: " + o.OrderRef,
		"Item: '" + o.ItemTitle + "'",
		"Details: " + details,
		"Item price: " + o.ItemPrice,
		fmt.Sprintf("Delivery (%s): %s", strings.ToUpper(o.ShippingZone), o.ShippingCost),
		"Total: " + o.Price,
		"",
		"Buyer: " + o.BuyerName,
		"Email: " + o.BuyerEmail,
	}
	if o.BuyerPhone != nil {
		lines = append(lines, "Phone: "+*o.BuyerPhone)
	}
	lines = append(lines,
		"",
		"Ship to:",
		strings.Join(o.ShippingAddress(), ", "),
		"",
		"Check your PayPal for the incoming payment.",
	)
	return notify.Notification{
		Title:   fmt.Sprintf("💰 New order %s: '%s'", o.OrderRef, o.ItemTitle),
		Content: strings.Join(lines, "\n"),
	}
}

// notifyOwner blocks until the alert is delivered or has failed.
func (s *OrderService) notifyOwner(ctx context.Context, n notify.Notification) {
	if s.notifier == nil {
		log.Printf("[Orders] Owner notifier not configured, skipping %q", n.Title)
		return
	}
	delivered, err := s.notifier.NotifyOwner(ctx, n)
	switch {
	case err != nil:
		log.Printf("[Orders] Owner notification failed: %v", err)
	case !delivered:
		log.Printf("[Orders] Owner notification was not delivered: %q", n.Title)
	}
}

// sendConfirmation starts the buyer email without waiting for it.
func (s *OrderService) sendConfirmation(ctx context.Context, o *models.Order) *background.Future {
	if s.mailer == nil {
		log.Printf("[Orders] Mailer not configured, no confirmation for %s", o.OrderRef)
		return nil
	}
	c := notify.OrderConfirmation{
		OrderRef:     o.OrderRef,
		BuyerName:    o.BuyerName,
		BuyerEmail:   o.BuyerEmail,
		ItemTitle:    o.ItemTitle,
		ItemPrice:    o.ItemPrice,
		ZoneLabel:    shipping.Zone(o.ShippingZone).Label(),
		ShippingCost: o.ShippingCost,
		Total:        o.Price,
		Address:      o.ShippingAddress(),
	}
	if o.ItemDetails != nil {
		c.ItemDetails = *o.ItemDetails
	}
	ref := o.OrderRef
	return s.tasks.Go(ctx, "order-confirmation "+ref, func(ctx context.Context) error {
		return s.mailer.SendOrderConfirmation(ctx, c)
	}, func(err error) {
		log.Printf("[Orders] Failed to send confirmation email for %s: %v", ref, err)
	})
}

func (s *OrderService) publish(routingKey string, o *models.Order) {
	if s.events == nil {
		return
	}
	ev := rabbitmq.NewOrderEvent(routingKey, o.ID, o.OrderRef, string(o.Status))
	ev.Section = string(o.Section)
	ev.Total = o.Price
	body, err := json.Marshal(ev)
	if err != nil {
		log.Printf("[Orders] Failed to marshal %s event: %v", routingKey, err)
		return
	}
	if err := s.events.Publish(rabbitmq.ExchangeOrders, routingKey, body); err != nil {
		log.Printf("[Orders] Warning: failed to publish %s for %s: %v", routingKey, o.OrderRef, err)
	}
}

// GetAll returns every order, newest first. A datastore failure yields an
// empty list.
func (s *OrderService) GetAll(ctx context.Context) []models.Order {
	orders, err := s.orders.GetAll(ctx)
	if err != nil {
		log.Printf("[Orders] Failed to list orders: %v", err)
		return []models.Order{}
	}
	return orders
}

// UpdateStatus sets any status on any order. Repeating the current status
// succeeds.
func (s *OrderService) UpdateStatus(ctx context.Context, id uint, status models.OrderStatus) error {
	if !status.Valid() {
		return &ValidationError{Fields: map[string]string{"status": "Unknown order status"}}
	}
	if err := s.orders.UpdateStatus(ctx, id, status); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return fmt.Errorf("order %d: %w", id, ErrNotFound)
		}
		return fmt.Errorf("failed to update order status: %w", err)
	}

	if order, err := s.orders.GetByID(ctx, id); err == nil {
		s.publish(rabbitmq.RoutingOrderStatusUpdated, order)
	}
	return nil
}

// PayPalClickInput describes a click on a PayPal button for a listed item.
type PayPalClickInput struct {
	Title    string
	Price    string
	Material string
	Size     string
	Section  models.Section
}

// NotifyPayPalClick alerts the owner that a buyer went to PayPal. Delivery
// problems are logged only.
func (s *OrderService) NotifyPayPalClick(ctx context.Context, in PayPalClickInput) error {
	if in.Section != models.SectionPrints && in.Section != models.SectionUpcycles {
		return &ValidationError{Fields: map[string]string{"section": "Section must be prints or upcycles"}}
	}
	details := "Upcycled vinyl"
	if in.Section == models.SectionPrints {
		details = in.Material + " · " + in.Size
	}
	s.notifyOwner(ctx, notify.Notification{
		Title: fmt.Sprintf("💰 PayPal order: '%s'", in.Title),
		Content: fmt.Sprintf("Someone clicked Pay with PayPal for '%s'.\nDetails: %s\nPrice: %s\n\nCheck your PayPal for the incoming payment.",
			in.Title, details, in.Price),
	})
	return nil
}
