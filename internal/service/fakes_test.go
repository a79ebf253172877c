package service

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/mongo"

	"github.com/spec-kit/wellfood-service/internal/domain"
	"github.com/spec-kit/wellfood-service/internal/events"
	"github.com/spec-kit/wellfood-service/internal/repository"
)

// In-memory repository fakes backing the service tests. They mirror the
// Mongo implementations' contracts, including mongo.ErrNoDocuments on
// missing documents and Recalculate-on-save for carts.

type memUserRepo struct {
	mu    sync.Mutex
	seq   int
	users map[string]*domain.User
}

func newMemUserRepo() *memUserRepo {
	return &memUserRepo{users: make(map[string]*domain.User)}
}

func (r *memUserRepo) Create(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if user.ID == "" {
		r.seq++
		user.ID = fmt.Sprintf("user-%d", r.seq)
	}
	user.CreatedAt = time.Now()
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) Update(_ context.Context, user *domain.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return mongo.ErrNoDocuments
	}
	copied := *user
	r.users[user.ID] = &copied
	return nil
}

func (r *memUserRepo) GetByID(_ context.Context, id string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *user
	return &copied, nil
}

func (r *memUserRepo) GetByEmail(_ context.Context, email string) (*domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			copied := *user
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memUserRepo) ExistsByEmailOrPhone(_ context.Context, email, phone string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, user := range r.users {
		if user.Email == email {
			return true, nil
		}
		if phone != "" && user.PhoneNumber == phone {
			return true, nil
		}
	}
	return false, nil
}

func (r *memUserRepo) List(_ context.Context, limit int64) ([]domain.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.User, 0, len(r.users))
	for _, user := range r.users {
		if int64(len(out)) >= limit {
			break
		}
		out = append(out, *user)
	}
	return out, nil
}

func (r *memUserRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.users)), nil
}

type memAdminRepo struct {
	mu     sync.Mutex
	seq    int
	admins map[string]*domain.Admin
}

func newMemAdminRepo() *memAdminRepo {
	return &memAdminRepo{admins: make(map[string]*domain.Admin)}
}

func (r *memAdminRepo) Create(_ context.Context, admin *domain.Admin) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if admin.ID == "" {
		r.seq++
		admin.ID = fmt.Sprintf("admin-%d", r.seq)
	}
	copied := *admin
	r.admins[admin.ID] = &copied
	return nil
}

func (r *memAdminRepo) GetByID(_ context.Context, id string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	admin, ok := r.admins[id]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *admin
	return &copied, nil
}

func (r *memAdminRepo) GetByEmail(_ context.Context, email string) (*domain.Admin, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, admin := range r.admins {
		if admin.Email == email {
			copied := *admin
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

type memCartRepo struct {
	mu    sync.Mutex
	carts map[string]*domain.Cart
}

func newMemCartRepo() *memCartRepo {
	return &memCartRepo{carts: make(map[string]*domain.Cart)}
}

func (r *memCartRepo) GetByUserID(_ context.Context, userID string) (*domain.Cart, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	cart, ok := r.carts[userID]
	if !ok {
		return nil, mongo.ErrNoDocuments
	}
	copied := *cart
	copied.Items = append([]domain.CartItem{}, cart.Items...)
	return &copied, nil
}

func (r *memCartRepo) Save(_ context.Context, cart *domain.Cart) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if cart.ID == "" {
		cart.ID = "cart-" + cart.UserID
	}
	cart.Recalculate()
	cart.UpdatedAt = time.Now()
	copied := *cart
	copied.Items = append([]domain.CartItem{}, cart.Items...)
	r.carts[cart.UserID] = &copied
	return nil
}

func (r *memCartRepo) DeleteByUserID(_ context.Context, userID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}

type memOrderRepo struct {
	mu     sync.Mutex
	seq    int
	orders []domain.Order
}

func newMemOrderRepo() *memOrderRepo {
	return &memOrderRepo{}
}

func (r *memOrderRepo) Create(_ context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if order.ID == "" {
		r.seq++
		order.ID = fmt.Sprintf("order-%d", r.seq)
	}
	now := time.Now()
	if order.PlacedAt.IsZero() {
		order.PlacedAt = now
	}
	order.UpdatedAt = now
	r.orders = append(r.orders, *order)
	return nil
}

func (r *memOrderRepo) GetByID(_ context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			copied := r.orders[i]
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memOrderRepo) ListByUser(_ context.Context, userID string) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Order, 0)
	for i := len(r.orders) - 1; i >= 0; i-- {
		if r.orders[i].UserID == userID {
			out = append(out, r.orders[i])
		}
	}
	return out, nil
}

func (r *memOrderRepo) ListWithFilter(_ context.Context, filter repository.OrderFilter) ([]domain.Order, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	matched := make([]domain.Order, 0)
	for _, order := range r.orders {
		if filter.Status != nil && order.Status != *filter.Status {
			continue
		}
		if filter.SearchTerm != "" {
			term := strings.ToLower(filter.SearchTerm)
			if !strings.Contains(strings.ToLower(order.UserEmail), term) &&
				!strings.Contains(strings.ToLower(order.UserName), term) {
				continue
			}
		}
		if filter.PlacedFrom != nil && order.PlacedAt.Before(*filter.PlacedFrom) {
			continue
		}
		if filter.PlacedTo != nil && order.PlacedAt.After(*filter.PlacedTo) {
			continue
		}
		matched = append(matched, order)
	}
	return matched, int64(len(matched)), nil
}

func (r *memOrderRepo) ListRecent(_ context.Context, since time.Time, limit int64) ([]domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.Order, 0)
	for i := len(r.orders) - 1; i >= 0 && int64(len(out)) < limit; i-- {
		if r.orders[i].PlacedAt.After(since) {
			out = append(out, r.orders[i])
		}
	}
	return out, nil
}

func (r *memOrderRepo) UpdateStatus(_ context.Context, id string, status domain.OrderStatus) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for i := range r.orders {
		if r.orders[i].ID == id {
			r.orders[i].Status = status
			r.orders[i].UpdatedAt = time.Now()
			copied := r.orders[i]
			return &copied, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *memOrderRepo) CountByStatus(_ context.Context, status domain.OrderStatus) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var n int64
	for _, order := range r.orders {
		if order.Status == status {
			n++
		}
	}
	return n, nil
}

func (r *memOrderRepo) Count(_ context.Context) (int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return int64(len(r.orders)), nil
}

func (r *memOrderRepo) TotalRevenue(_ context.Context) (float64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var total float64
	for _, order := range r.orders {
		total += order.TotalAmount
	}
	return total, nil
}

type memOTPRepo struct {
	mu    sync.Mutex
	codes map[string]string
}

func newMemOTPRepo() *memOTPRepo {
	return &memOTPRepo{codes: make(map[string]string)}
}

func (r *memOTPRepo) Store(_ context.Context, phone, code string, _ time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.codes[phone] = code
	return nil
}

func (r *memOTPRepo) Verify(_ context.Context, phone, code string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	stored, ok := r.codes[phone]
	if !ok || stored != code {
		return false, nil
	}
	delete(r.codes, phone)
	return true, nil
}

// recordingDispatcher captures published events for assertions.
type recordingDispatcher struct {
	mu        sync.Mutex
	published []events.Event
}

func (d *recordingDispatcher) Publish(_ context.Context, event events.Event) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.published = append(d.published, event)
	return nil
}

func (d *recordingDispatcher) Subscribe(events.EventType, events.EventHandler) {}

func (d *recordingDispatcher) eventsOfType(eventType events.EventType) []events.Event {
	d.mu.Lock()
	defer d.mu.Unlock()
	out := make([]events.Event, 0)
	for _, event := range d.published {
		if event.Type == eventType {
			out = append(out, event)
		}
	}
	return out
}
