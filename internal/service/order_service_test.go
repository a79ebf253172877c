package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/wellfood-service/internal/auth"
	"github.com/spec-kit/wellfood-service/internal/domain"
	"github.com/spec-kit/wellfood-service/internal/events"
	"github.com/spec-kit/wellfood-service/internal/repository"
)

type orderFixture struct {
	service    *OrderService
	carts      *CartService
	orders     *memOrderRepo
	cartRepo   *memCartRepo
	users      *memUserRepo
	dispatcher *recordingDispatcher
}

func newOrderFixture(t *testing.T) *orderFixture {
	t.Helper()

	fixture := &orderFixture{
		orders:     newMemOrderRepo(),
		cartRepo:   newMemCartRepo(),
		users:      newMemUserRepo(),
		dispatcher: &recordingDispatcher{},
	}
	fixture.carts = NewCartService(fixture.cartRepo)
	fixture.service = NewOrderService(OrderDependencies{
		OrderRepo:  fixture.orders,
		CartRepo:   fixture.cartRepo,
		UserRepo:   fixture.users,
		Dispatcher: fixture.dispatcher,
	})
	return fixture
}

func adminPrincipal() *auth.Principal {
	return &auth.Principal{ID: "admin-1", Email: "admin@wellfood.com", Name: "Root", Role: domain.RoleAdmin}
}

func fillCart(t *testing.T, fx *orderFixture, principal *auth.Principal) {
	t.Helper()
	_, err := fx.carts.AddItem(context.Background(), principal, domain.CartItem{
		ProductID: "p1", Name: "Margherita", Price: 9.5, Quantity: 2,
	})
	require.NoError(t, err)
	_, err = fx.carts.AddItem(context.Background(), principal, domain.CartItem{
		ProductID: "p2", Name: "Cola", Price: 2, Quantity: 1,
	})
	require.NoError(t, err)
}

func TestCheckout(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()
	principal := testPrincipal()
	fillCart(t, fx, principal)

	order, err := fx.service.Checkout(ctx, principal, "1 Main St")
	require.NoError(t, err)
	require.NotNil(t, order)
	assert.Equal(t, domain.OrderStatusPending, order.Status)
	assert.Equal(t, principal.ID, order.UserID)
	assert.Equal(t, principal.Email, order.UserEmail)
	assert.Equal(t, "1 Main St", order.ShippingAddress)
	require.Len(t, order.Items, 2)
	assert.InDelta(t, 21.0, order.TotalAmount, 0.001)
	assert.False(t, order.PlacedAt.IsZero())

	// the cart is cleared by a successful checkout
	cart, err := fx.carts.Get(ctx, principal.ID)
	require.NoError(t, err)
	assert.Empty(t, cart.Items)

	placed := fx.dispatcher.eventsOfType(events.EventOrderPlaced)
	require.Len(t, placed, 1)
	payload, ok := placed[0].Payload.(events.OrderPlacedPayload)
	require.True(t, ok)
	assert.Equal(t, order.ID, payload.OrderID)
	assert.Equal(t, 3, payload.TotalItems)
	assert.InDelta(t, 21.0, payload.TotalAmount, 0.001)
}

func TestCheckoutEmptyCart(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()
	principal := testPrincipal()

	// absent cart
	_, err := fx.service.Checkout(ctx, principal, "1 Main St")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainErrCode(t, err))

	// present but emptied cart
	fillCart(t, fx, principal)
	_, err = fx.carts.Clear(ctx, principal.ID)
	require.NoError(t, err)

	_, err = fx.service.Checkout(ctx, principal, "1 Main St")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainErrCode(t, err))
}

func TestCheckoutRequiresAddress(t *testing.T) {
	fx := newOrderFixture(t)
	principal := testPrincipal()
	fillCart(t, fx, principal)

	_, err := fx.service.Checkout(context.Background(), principal, "")
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainErrCode(t, err))
}

func TestListForUser(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()
	principal := testPrincipal()

	fillCart(t, fx, principal)
	_, err := fx.service.Checkout(ctx, principal, "1 Main St")
	require.NoError(t, err)
	fillCart(t, fx, principal)
	_, err = fx.service.Checkout(ctx, principal, "1 Main St")
	require.NoError(t, err)

	orders, err := fx.service.ListForUser(ctx, principal.ID)
	require.NoError(t, err)
	assert.Len(t, orders, 2)

	others, err := fx.service.ListForUser(ctx, "someone-else")
	require.NoError(t, err)
	assert.Empty(t, others)
}

func TestUpdateStatus(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()
	principal := testPrincipal()
	fillCart(t, fx, principal)

	order, err := fx.service.Checkout(ctx, principal, "1 Main St")
	require.NoError(t, err)

	updated, err := fx.service.UpdateStatus(ctx, adminPrincipal(), order.ID, domain.OrderStatusShipped)
	require.NoError(t, err)
	assert.Equal(t, domain.OrderStatusShipped, updated.Status)

	changed := fx.dispatcher.eventsOfType(events.EventOrderStatusChanged)
	require.Len(t, changed, 1)
	payload, ok := changed[0].Payload.(events.OrderStatusChangedPayload)
	require.True(t, ok)
	assert.Equal(t, domain.OrderStatusPending, payload.OldStatus)
	assert.Equal(t, domain.OrderStatusShipped, payload.NewStatus)
}

func TestUpdateStatusInvalid(t *testing.T) {
	fx := newOrderFixture(t)

	_, err := fx.service.UpdateStatus(context.Background(), adminPrincipal(), "order-1", domain.OrderStatus("teleported"))
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainErrCode(t, err))
}

func TestUpdateStatusMissingOrder(t *testing.T) {
	fx := newOrderFixture(t)

	_, err := fx.service.UpdateStatus(context.Background(), adminPrincipal(), "missing", domain.OrderStatusShipped)
	require.Error(t, err)
	assert.Equal(t, "NOT_FOUND", domainErrCode(t, err))
}

func TestListWithStatusFilter(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()
	principal := testPrincipal()

	fillCart(t, fx, principal)
	first, err := fx.service.Checkout(ctx, principal, "1 Main St")
	require.NoError(t, err)
	fillCart(t, fx, principal)
	_, err = fx.service.Checkout(ctx, principal, "1 Main St")
	require.NoError(t, err)

	_, err = fx.service.UpdateStatus(ctx, adminPrincipal(), first.ID, domain.OrderStatusDelivered)
	require.NoError(t, err)

	delivered := domain.OrderStatusDelivered
	orders, total, err := fx.service.List(ctx, repository.OrderFilter{Status: &delivered})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, orders, 1)
	assert.Equal(t, first.ID, orders[0].ID)

	bogus := domain.OrderStatus("bogus")
	_, _, err = fx.service.List(ctx, repository.OrderFilter{Status: &bogus})
	require.Error(t, err)
	assert.Equal(t, "VALIDATION_FAILED", domainErrCode(t, err))
}

func TestSummary(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()
	principal := testPrincipal()

	require.NoError(t, fx.users.Create(ctx, &domain.User{Name: "Ada", Email: "ada@example.com", Role: domain.RoleUser}))

	fillCart(t, fx, principal)
	first, err := fx.service.Checkout(ctx, principal, "1 Main St")
	require.NoError(t, err)
	fillCart(t, fx, principal)
	_, err = fx.service.Checkout(ctx, principal, "1 Main St")
	require.NoError(t, err)

	_, err = fx.service.UpdateStatus(ctx, adminPrincipal(), first.ID, domain.OrderStatusShipped)
	require.NoError(t, err)

	summary, err := fx.service.Summary(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, summary.TotalOrders)
	assert.EqualValues(t, 1, summary.PendingOrders)
	assert.EqualValues(t, 1, summary.ShippedOrders)
	assert.EqualValues(t, 0, summary.DeliveredOrders)
	assert.EqualValues(t, 1, summary.UsersCount)
	assert.InDelta(t, 42.0, summary.Revenue, 0.001)
	assert.Len(t, summary.RecentOrders, 2)
}

func TestListUsers(t *testing.T) {
	fx := newOrderFixture(t)
	ctx := context.Background()

	require.NoError(t, fx.users.Create(ctx, &domain.User{Name: "Ada", Email: "ada@example.com", Role: domain.RoleUser}))
	require.NoError(t, fx.users.Create(ctx, &domain.User{Name: "Bob", Email: "bob@example.com", Role: domain.RoleUser}))

	users, err := fx.service.ListUsers(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	users, err = fx.service.ListUsers(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, users, 1)
}
