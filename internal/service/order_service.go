package service

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/wellfood-service/internal/auth"
	"github.com/spec-kit/wellfood-service/internal/domain"
	"github.com/spec-kit/wellfood-service/internal/events"
	"github.com/spec-kit/wellfood-service/internal/repository"
	apperrors "github.com/spec-kit/wellfood-service/pkg/util"
)

// OrderSummary aggregates the admin dashboard numbers.
type OrderSummary struct {
	TotalOrders     int64          `json:"totalOrders"`
	PendingOrders   int64          `json:"pendingOrders"`
	ShippedOrders   int64          `json:"shippedOrders"`
	DeliveredOrders int64          `json:"deliveredOrders"`
	UsersCount      int64          `json:"usersCount"`
	Revenue         float64        `json:"revenue"`
	RecentOrders    []domain.Order `json:"recentOrders"`
}

// OrderService handles checkout and the admin order console.
type OrderService struct {
	orders     repository.OrderRepository
	carts      repository.CartRepository
	users      repository.UserRepository
	dispatcher events.Dispatcher
}

// OrderDependencies encapsulates repo requirements for order service.
type OrderDependencies struct {
	OrderRepo  repository.OrderRepository
	CartRepo   repository.CartRepository
	UserRepo   repository.UserRepository
	Dispatcher events.Dispatcher
}

// NewOrderService builds the service.
func NewOrderService(deps OrderDependencies) *OrderService {
	return &OrderService{
		orders:     deps.OrderRepo,
		carts:      deps.CartRepo,
		users:      deps.UserRepo,
		dispatcher: deps.Dispatcher,
	}
}

// Checkout snapshots the user's cart into a pending order and clears the
// cart. An empty or absent cart cannot be checked out.
func (s *OrderService) Checkout(ctx context.Context, principal *auth.Principal, shippingAddress string) (*domain.Order, error) {
	if shippingAddress == "" {
		return nil, apperrors.NewValidationError("shipping address required", nil)
	}

	cart, err := s.carts.GetByUserID(ctx, principal.ID)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewValidationError("cart is empty", nil)
		}
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, apperrors.NewValidationError("cart is empty", nil)
	}

	cart.Recalculate()
	totalItems := cart.TotalItems

	items := make([]domain.OrderItem, 0, len(cart.Items))
	for _, line := range cart.Items {
		items = append(items, domain.OrderItem{
			ProductID: line.ProductID,
			Name:      line.Name,
			Price:     line.Price,
			Quantity:  line.Quantity,
			Image:     line.Image,
		})
	}

	order := &domain.Order{
		UserID:          principal.ID,
		UserEmail:       principal.Email,
		UserName:        principal.Name,
		ShippingAddress: shippingAddress,
		Items:           items,
		TotalAmount:     cart.TotalAmount,
		Status:          domain.OrderStatusPending,
	}
	if err := s.orders.Create(ctx, order); err != nil {
		return nil, err
	}

	cart.Items = []domain.CartItem{}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}

	s.publish(ctx, events.EventOrderPlaced,
		events.Actor{Role: principal.Role, SubjectID: principal.ID, Email: principal.Email},
		events.OrderPlacedPayload{OrderID: order.ID, TotalItems: totalItems, TotalAmount: order.TotalAmount})

	return order, nil
}

// ListForUser returns the user's own orders, newest first.
func (s *OrderService) ListForUser(ctx context.Context, userID string) ([]domain.Order, error) {
	return s.orders.ListByUser(ctx, userID)
}

// List returns a filtered order page for the admin console.
func (s *OrderService) List(ctx context.Context, filter repository.OrderFilter) ([]domain.Order, int64, error) {
	if filter.Status != nil && !filter.Status.Valid() {
		return nil, 0, apperrors.NewValidationError("invalid status", nil)
	}
	return s.orders.ListWithFilter(ctx, filter)
}

// Get fetches a single order.
func (s *OrderService) Get(ctx context.Context, id string) (*domain.Order, error) {
	order, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("order")
		}
		return nil, err
	}
	return order, nil
}

// UpdateStatus moves an order to a new fulfillment state.
func (s *OrderService) UpdateStatus(ctx context.Context, actor *auth.Principal, id string, status domain.OrderStatus) (*domain.Order, error) {
	if !status.Valid() {
		return nil, apperrors.NewValidationError("invalid status", nil)
	}

	current, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	order, err := s.orders.UpdateStatus(ctx, id, status)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, apperrors.NewNotFound("order")
		}
		return nil, err
	}

	s.publish(ctx, events.EventOrderStatusChanged,
		events.Actor{Role: actor.Role, SubjectID: actor.ID, Email: actor.Email},
		events.OrderStatusChangedPayload{OrderID: order.ID, OldStatus: current.Status, NewStatus: order.Status})

	return order, nil
}

// Summary computes the admin dashboard aggregates.
func (s *OrderService) Summary(ctx context.Context) (*OrderSummary, error) {
	summary := &OrderSummary{}

	var err error
	if summary.TotalOrders, err = s.orders.Count(ctx); err != nil {
		return nil, err
	}
	if summary.PendingOrders, err = s.orders.CountByStatus(ctx, domain.OrderStatusPending); err != nil {
		return nil, err
	}
	if summary.ShippedOrders, err = s.orders.CountByStatus(ctx, domain.OrderStatusShipped); err != nil {
		return nil, err
	}
	if summary.DeliveredOrders, err = s.orders.CountByStatus(ctx, domain.OrderStatusDelivered); err != nil {
		return nil, err
	}
	if summary.UsersCount, err = s.users.Count(ctx); err != nil {
		return nil, err
	}
	if summary.Revenue, err = s.orders.TotalRevenue(ctx); err != nil {
		return nil, err
	}

	since := time.Now().AddDate(0, 0, -7)
	if summary.RecentOrders, err = s.orders.ListRecent(ctx, since, 10); err != nil {
		return nil, err
	}
	return summary, nil
}

// ListUsers returns customer accounts for the admin console. Password
// hashes never serialize (see the domain model's bson/json tags).
func (s *OrderService) ListUsers(ctx context.Context, limit int64) ([]domain.User, error) {
	if limit <= 0 {
		limit = 200
	}
	return s.users.List(ctx, limit)
}

func (s *OrderService) publish(ctx context.Context, eventType events.EventType, actor events.Actor, payload interface{}) {
	if s.dispatcher == nil {
		return
	}
	_ = s.dispatcher.Publish(ctx, events.Event{
		Type:    eventType,
		Actor:   actor,
		Payload: payload,
	})
}
