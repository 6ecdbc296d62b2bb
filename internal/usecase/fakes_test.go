package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/darkbluein/locale-store-service/internal/domain"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/logger"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/metrics"
)

// prometheus collectors register globally, one instance per test binary
var testMetrics = metrics.NewStoreMetrics()

type fakeStoreRepo struct {
	mu     sync.Mutex
	stores map[string]*domain.StoreProfile
}

func newFakeStoreRepo() *fakeStoreRepo {
	return &fakeStoreRepo{stores: make(map[string]*domain.StoreProfile)}
}

func (r *fakeStoreRepo) Create(ctx context.Context, store *domain.StoreProfile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.stores {
		if existing.Contact.Number == store.Contact.Number {
			return domain.ErrContactTaken
		}
	}
	copied := *store
	r.stores[store.ID] = &copied
	return nil
}

func (r *fakeStoreRepo) GetByID(ctx context.Context, id string) (*domain.StoreProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.stores[id]
	if !ok {
		return nil, nil
	}
	copied := *store
	return &copied, nil
}

func (r *fakeStoreRepo) GetByContactNumber(ctx context.Context, number string) (*domain.StoreProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, store := range r.stores {
		if store.Contact.Number == number {
			copied := *store
			return &copied, nil
		}
	}
	return nil, nil
}

func (r *fakeStoreRepo) UpdateFields(ctx context.Context, id string, set domain.StoreFieldSet) (*domain.StoreProfile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.stores[id]
	if !ok {
		return nil, nil
	}
	store.Name = set.Name
	store.Contact = set.Contact
	store.UPI = set.UPI
	store.Address = set.Address
	store.Meta.LicenseHash = set.LicenseHash
	store.Meta.LastUpdated = set.LastUpdated
	copied := *store
	return &copied, nil
}

func (r *fakeStoreRepo) SetVerified(ctx context.Context, id string, verified bool, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.stores[id]
	if !ok {
		return false, nil
	}
	store.Meta.Verified = verified
	store.Meta.LastUpdated = at
	return true, nil
}

func (r *fakeStoreRepo) SaveAccounts(ctx context.Context, id string, accounts []domain.StoreAccount, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	store, ok := r.stores[id]
	if !ok {
		return false, nil
	}
	store.Accounts = accounts
	store.Meta.LastUpdated = at
	return true, nil
}

func (r *fakeStoreRepo) TouchLastUpdated(ctx context.Context, id string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if store, ok := r.stores[id]; ok {
		store.Meta.LastUpdated = at
	}
	return nil
}

type fakeInventoryRepo struct {
	mu      sync.Mutex
	records map[string]*domain.InventoryRecord
}

func newFakeInventoryRepo() *fakeInventoryRepo {
	return &fakeInventoryRepo{records: make(map[string]*domain.InventoryRecord)}
}

func (r *fakeInventoryRepo) Create(ctx context.Context, record *domain.InventoryRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *record
	copied.Entries = append([]domain.InventoryEntry(nil), record.Entries...)
	r.records[record.Meta.StoreID] = &copied
	return nil
}

func (r *fakeInventoryRepo) GetByStoreID(ctx context.Context, storeID string) (*domain.InventoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[storeID]
	if !ok {
		return nil, nil
	}
	copied := *record
	copied.Entries = append([]domain.InventoryEntry(nil), record.Entries...)
	return &copied, nil
}

func (r *fakeInventoryRepo) ReplaceEntries(ctx context.Context, storeID string, revision int64, entries []domain.InventoryEntry, at time.Time) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	record, ok := r.records[storeID]
	if !ok || record.Revision != revision {
		return false, nil
	}
	record.Entries = append([]domain.InventoryEntry(nil), entries...)
	record.Revision = revision + 1
	record.Meta.LastUpdated = at
	return true, nil
}

type fakeCatalog struct {
	mu       sync.Mutex
	products map[string]*domain.ProductRecord
}

func newFakeCatalog(products ...*domain.ProductRecord) *fakeCatalog {
	c := &fakeCatalog{products: make(map[string]*domain.ProductRecord)}
	for _, product := range products {
		copied := *product
		c.products[product.ID] = &copied
	}
	return c
}

func (c *fakeCatalog) GetByID(ctx context.Context, id string) (*domain.ProductRecord, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	product, ok := c.products[id]
	if !ok {
		return nil, nil
	}
	copied := *product
	return &copied, nil
}

func (c *fakeCatalog) SetBarcode(ctx context.Context, id, barcode string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if product, ok := c.products[id]; ok {
		product.Barcode = barcode
	}
	return nil
}

type fakeOrderRepo struct {
	mu     sync.Mutex
	orders map[string]*domain.Order
}

func newFakeOrderRepo() *fakeOrderRepo {
	return &fakeOrderRepo{orders: make(map[string]*domain.Order)}
}

func (r *fakeOrderRepo) Create(ctx context.Context, order *domain.Order) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *order
	r.orders[order.ID] = &copied
	return nil
}

func (r *fakeOrderRepo) GetByID(ctx context.Context, id string) (*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	order, ok := r.orders[id]
	if !ok {
		return nil, nil
	}
	copied := *order
	return &copied, nil
}

func (r *fakeOrderRepo) ListByStoreCreatedSince(ctx context.Context, storeID string, since time.Time) ([]*domain.Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var result []*domain.Order
	for _, order := range r.orders {
		if order.Meta.StoreID == storeID && !order.State.CreatedAt.Before(since) {
			copied := *order
			result = append(result, &copied)
		}
	}
	return result, nil
}

// fakeResolver maps raw tokens to principals directly.
type fakeResolver struct {
	principals map[string]domain.Principal
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{principals: make(map[string]domain.Principal)}
}

func (r *fakeResolver) grant(token, id, origin string) {
	r.principals[token] = domain.Principal{ID: id, Origin: origin}
}

func (r *fakeResolver) Resolve(token string, requireStoreOrigin bool) (*domain.Principal, error) {
	principal, ok := r.principals[token]
	if !ok {
		return nil, domain.ErrUnauthenticated
	}
	if requireStoreOrigin && !strings.HasPrefix(principal.Origin, domain.OriginStore) {
		return nil, domain.ErrForbidden
	}
	return &principal, nil
}

type fakeIssuer struct{}

func (fakeIssuer) Issue(store *domain.StoreProfile) (string, string, error) {
	return "token-" + store.ID, "refresh-" + store.ID, nil
}

type fakeHasher struct{}

func (fakeHasher) Hash(plaintext string) (string, error) {
	return "hashed:" + plaintext, nil
}

type fakeEventLog struct {
	mu     sync.Mutex
	events []logger.OperationFailedEvent
}

func (l *fakeEventLog) LogOperationFailed(ctx context.Context, event logger.OperationFailedEvent) error {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.events = append(l.events, event)
	return nil
}

type fakePointEncoder struct{}

func (fakePointEncoder) Encode(coordinates [2]string) (domain.Point, error) {
	if coordinates[0] == "" || coordinates[1] == "" {
		return domain.Point{}, fmt.Errorf("bad coordinates")
	}
	return domain.Point{
		Hash:        "hash:" + coordinates[0] + "," + coordinates[1],
		Coordinates: coordinates,
	}, nil
}

type fakeHandleEncoder struct{}

func (fakeHandleEncoder) Encode(raw string) domain.UPI {
	return domain.UPI{Value: raw, Display: raw, LastUpdated: time.Now()}
}

func (fakeHandleEncoder) Unavailable() domain.UPI {
	return domain.UPI{Value: "", Display: "unavailable", LastUpdated: time.Now()}
}
