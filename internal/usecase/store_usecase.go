package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jaevor/go-nanoid"

	"github.com/darkbluein/locale-store-service/internal/domain"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/logger"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/metrics"
	storedto "github.com/darkbluein/locale-store-service/internal/usecase/dto/store"
)

type StoreUsecase interface {
	EditStore(ctx context.Context, input *storedto.EditStoreInput) (*storedto.EditStoreResult, error)
	VerifyStore(ctx context.Context, input *storedto.VerifyStoreInput) (bool, error)
	GetStore(ctx context.Context, token string) (*storedto.StoreOutput, error)
	GetConfirmation(ctx context.Context, token, storeID string) (*storedto.ConfirmOutput, error)
	AddAccount(ctx context.Context, input *storedto.AddAccountInput) (*domain.StoreAccount, error)
}

type DefaultStoreUsecase struct {
	StoreRepo     domain.StoreRepository
	InventoryRepo domain.InventoryRepository
	OrderRepo     domain.OrderRepository
	Resolver      domain.IdentityResolver
	Issuer        domain.TokenIssuer
	Hasher        domain.LicenseHasher
	Points        domain.PointEncoder
	Handles       domain.HandleEncoder
	Bus           domain.UpdateBusPort
	Metrics       *metrics.StoreMetrics
	EventLog      logger.OperationEventLogger
	Locks         *StoreLocks
}

func NewDefaultStoreUsecase(
	storeRepo domain.StoreRepository,
	inventoryRepo domain.InventoryRepository,
	orderRepo domain.OrderRepository,
	resolver domain.IdentityResolver,
	issuer domain.TokenIssuer,
	hasher domain.LicenseHasher,
	points domain.PointEncoder,
	handles domain.HandleEncoder,
	bus domain.UpdateBusPort,
	storeMetrics *metrics.StoreMetrics,
	eventLog logger.OperationEventLogger,
	locks *StoreLocks) *DefaultStoreUsecase {

	return &DefaultStoreUsecase{
		StoreRepo:     storeRepo,
		InventoryRepo: inventoryRepo,
		OrderRepo:     orderRepo,
		Resolver:      resolver,
		Issuer:        issuer,
		Hasher:        hasher,
		Points:        points,
		Handles:       handles,
		Bus:           bus,
		Metrics:       storeMetrics,
		EventLog:      eventLog,
		Locks:         locks,
	}
}

// EditStore is the single entry point of the mutation core: Edit=false
// registers a new store, Edit=true applies a field-level update to the
// caller's own store.
func (uc *DefaultStoreUsecase) EditStore(ctx context.Context, input *storedto.EditStoreInput) (*storedto.EditStoreResult, error) {
	if input.Edit {
		return uc.editStore(ctx, input)
	}
	return uc.registerStore(ctx, input)
}

func (uc *DefaultStoreUsecase) registerStore(ctx context.Context, input *storedto.EditStoreInput) (*storedto.EditStoreResult, error) {
	if _, err := uc.Resolver.Resolve(input.Token, true); err != nil {
		return nil, err
	}

	point, err := uc.Points.Encode(input.StoreInfo.Address.Location.Coordinates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// The plaintext license number stops here: only the digest is ever
	// persisted or returned.
	licenseHash, err := uc.Hasher.Hash(input.StoreInfo.LicenseNumber)
	if err != nil {
		return nil, uc.failOperation(ctx, "register", "", err)
	}

	existing, err := uc.StoreRepo.GetByContactNumber(ctx, input.StoreInfo.Contact.Number)
	if err != nil {
		return nil, uc.failOperation(ctx, "register", "", err)
	}
	if existing != nil {
		return nil, domain.ErrContactTaken
	}

	now := time.Now()
	store := &domain.StoreProfile{
		ID:   uuid.New().String(),
		Name: input.StoreInfo.Name,
		Contact: domain.Contact{
			ISD:    input.StoreInfo.Contact.ISD,
			Number: input.StoreInfo.Contact.Number,
		},
		UPI: uc.encodeHandle(input.StoreInfo.UPI),
		Address: domain.Address{
			Line:     input.StoreInfo.Address.Line1,
			Location: point,
		},
		Meta: domain.StoreMeta{
			LicenseHash: licenseHash,
			LastUpdated: now,
		},
		Accounts: []domain.StoreAccount{},
	}

	if err := uc.StoreRepo.Create(ctx, store); err != nil {
		// the unique index on contact number closes the check-then-insert race
		if err == domain.ErrContactTaken {
			return nil, err
		}
		return nil, uc.failOperation(ctx, "register", store.ID, err)
	}

	inventoryID, err := newRecordID()
	if err != nil {
		return nil, uc.failOperation(ctx, "register", store.ID, err)
	}
	inventory := &domain.InventoryRecord{
		ID: inventoryID,
		Meta: domain.InventoryMeta{
			StoreID:     store.ID,
			LastUpdated: now,
		},
		Entries: []domain.InventoryEntry{},
	}
	if err := uc.InventoryRepo.Create(ctx, inventory); err != nil {
		// store created, inventory missing: orphaned profile, keep the cause
		return nil, uc.failOperation(ctx, "register", store.ID, err)
	}

	token, refreshToken, err := uc.Issuer.Issue(store)
	if err != nil {
		return nil, uc.failOperation(ctx, "register", store.ID, err)
	}

	slog.Info("store registered", "store_id", store.ID, "inventory_id", inventory.ID)
	uc.Metrics.StoresRegisteredTotal.Inc()

	return &storedto.EditStoreResult{
		Store:        store,
		Token:        token,
		RefreshToken: refreshToken,
		Updated:      true,
	}, nil
}

func (uc *DefaultStoreUsecase) editStore(ctx context.Context, input *storedto.EditStoreInput) (*storedto.EditStoreResult, error) {
	principal, err := uc.Resolver.Resolve(input.Token, false)
	if err != nil {
		return nil, err
	}

	point, err := uc.Points.Encode(input.StoreInfo.Address.Location.Coordinates)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrValidation, err)
	}

	// the caller's own identity is the update key: a store can only edit itself
	unlock := uc.Locks.Lock(principal.ID)
	defer unlock()

	current, err := uc.StoreRepo.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, uc.failOperation(ctx, "edit", principal.ID, err)
	}
	if current == nil {
		// caller resolves to no store: no-op, nothing published
		uc.Metrics.StoreEditsTotal.WithLabelValues("noop").Inc()
		return &storedto.EditStoreResult{Updated: false}, nil
	}

	licenseHash := current.Meta.LicenseHash
	if input.StoreInfo.LicenseNumber != "" {
		licenseHash, err = uc.Hasher.Hash(input.StoreInfo.LicenseNumber)
		if err != nil {
			return nil, uc.failOperation(ctx, "edit", principal.ID, err)
		}
	}

	set := domain.StoreFieldSet{
		Name: input.StoreInfo.Name,
		Contact: domain.Contact{
			ISD:    input.StoreInfo.Contact.ISD,
			Number: input.StoreInfo.Contact.Number,
		},
		UPI: uc.encodeHandle(input.StoreInfo.UPI),
		Address: domain.Address{
			Line:     input.StoreInfo.Address.Line1,
			Location: point,
		},
		LicenseHash: licenseHash,
		LastUpdated: time.Now(),
	}

	updated, err := uc.StoreRepo.UpdateFields(ctx, principal.ID, set)
	if err != nil {
		if err == domain.ErrContactTaken {
			return nil, err
		}
		return nil, uc.failOperation(ctx, "edit", principal.ID, err)
	}
	if updated == nil {
		// record vanished between load and update: no-op, nothing published
		uc.Metrics.StoreEditsTotal.WithLabelValues("noop").Inc()
		return &storedto.EditStoreResult{Updated: false}, nil
	}

	uc.publish(domain.TopicStoreUpdate, updated.ID, updated)
	uc.Metrics.StoreEditsTotal.WithLabelValues("updated").Inc()
	slog.Info("store updated", "store_id", updated.ID)

	return &storedto.EditStoreResult{
		Store:   updated,
		Updated: true,
	}, nil
}

// VerifyStore flips the verified flag. Restricted to superuser credentials.
func (uc *DefaultStoreUsecase) VerifyStore(ctx context.Context, input *storedto.VerifyStoreInput) (bool, error) {
	principal, err := uc.Resolver.Resolve(input.Token, false)
	if err != nil {
		return false, err
	}
	if !strings.HasPrefix(principal.Origin, domain.OriginAdmin) {
		return false, domain.ErrForbidden
	}

	modified, err := uc.StoreRepo.SetVerified(ctx, input.StoreID, input.Verified, time.Now())
	if err != nil {
		return false, uc.failOperation(ctx, "verify", input.StoreID, err)
	}
	if !modified {
		return false, nil
	}

	store, err := uc.StoreRepo.GetByID(ctx, input.StoreID)
	if err != nil {
		return false, uc.failOperation(ctx, "verify", input.StoreID, err)
	}
	if store != nil {
		uc.publish(domain.TopicStoreUpdate, store.ID, store)
	}
	uc.Metrics.StoreVerifiedTotal.Inc()

	return true, nil
}

func (uc *DefaultStoreUsecase) GetStore(ctx context.Context, token string) (*storedto.StoreOutput, error) {
	principal, err := uc.Resolver.Resolve(token, false)
	if err != nil {
		return nil, err
	}

	store, err := uc.StoreRepo.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, uc.failOperation(ctx, "get_store", principal.ID, err)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: store %s", domain.ErrNotFound, principal.ID)
	}

	return &storedto.StoreOutput{
		Store: store,
		Stat:  uc.todayStat(ctx, store.ID),
	}, nil
}

// todayStat sums today's accepted orders. A stats failure degrades the
// response, it does not fail the query.
func (uc *DefaultStoreUsecase) todayStat(ctx context.Context, storeID string) storedto.StoreStat {
	now := time.Now()
	startOfDay := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())

	orders, err := uc.OrderRepo.ListByStoreCreatedSince(ctx, storeID, startOfDay)
	if err != nil {
		slog.Error("failed to load today's orders", "store_id", storeID, "error", err.Error())
		return storedto.StoreStat{Amount: "0.00", Error: true, ErrorMessage: "failed to load order statistics"}
	}

	var total float64
	var count int
	for _, order := range orders {
		if !order.State.Accepted {
			continue
		}
		amount, err := strconv.ParseFloat(order.State.Payment.GrandAmount, 64)
		if err != nil {
			continue
		}
		count++
		total += amount
	}

	return storedto.StoreStat{
		Amount: strconv.FormatFloat(total, 'f', 2, 64),
		Count:  count,
	}
}

func (uc *DefaultStoreUsecase) GetConfirmation(ctx context.Context, token, storeID string) (*storedto.ConfirmOutput, error) {
	principal, err := uc.Resolver.Resolve(token, false)
	if err != nil {
		return nil, err
	}

	store, err := uc.StoreRepo.GetByID(ctx, storeID)
	if err != nil {
		return nil, uc.failOperation(ctx, "confirmation", storeID, err)
	}
	if store == nil {
		return nil, fmt.Errorf("%w: store %s", domain.ErrNotFound, storeID)
	}

	data := &storedto.ConfirmOutput{
		Name:   store.Name,
		Status: storedto.ConfirmStatus{Closed: store.Meta.Closed},
		Account: storedto.ConfirmAccount{
			Amount: "0.00",
			Date:   time.Now(),
		},
	}

	for _, account := range store.Accounts {
		if account.ID == principal.ID {
			data.Account.Exists = true
			data.Account.Amount = account.Pending.Amount
			data.Account.Closed = account.Closed
			data.Account.Date = account.LastUpdated
			break
		}
	}

	return data, nil
}

// AddAccount ensures a linked account for the contact exists on the
// caller's store, seeding its pending balance from the referenced order.
func (uc *DefaultStoreUsecase) AddAccount(ctx context.Context, input *storedto.AddAccountInput) (*domain.StoreAccount, error) {
	principal, err := uc.Resolver.Resolve(input.Token, true)
	if err != nil {
		return nil, err
	}

	unlock := uc.Locks.Lock(principal.ID)
	defer unlock()

	store, err := uc.StoreRepo.GetByID(ctx, principal.ID)
	if err != nil {
		return nil, uc.failOperation(ctx, "add_account", principal.ID, err)
	}
	if store == nil {
		return nil, domain.ErrUnauthenticated
	}

	order, err := uc.OrderRepo.GetByID(ctx, input.OrderID)
	if err != nil {
		return nil, uc.failOperation(ctx, "add_account", principal.ID, err)
	}
	if order == nil {
		return nil, fmt.Errorf("%w: order %s", domain.ErrNotFound, input.OrderID)
	}

	now := time.Now()
	ref := domain.AccountOrderRef{
		OrderID: order.ID,
		Paid:    order.State.Payment.Paid,
		Date:    order.State.CreatedAt.Format(time.RFC3339),
		Amount:  order.State.Payment.GrandAmount,
	}

	accounts := store.Accounts
	var account *domain.StoreAccount
	for i := range accounts {
		if accounts[i].Contact.Number == input.Contact.Number {
			account = &accounts[i]
			break
		}
	}

	if account == nil {
		// the account is keyed by the consumer identity on the order, so
		// confirmation lookups by that caller resolve to it
		accounts = append(accounts, domain.StoreAccount{
			ID: order.Meta.UserID,
			Contact: domain.Contact{
				ISD:    input.Contact.ISD,
				Number: input.Contact.Number,
			},
			LastUpdated: now,
			Orders:      []domain.AccountOrderRef{ref},
			Pending: domain.AccountPending{
				Status: true,
				Amount: order.State.Payment.GrandAmount,
			},
		})
		account = &accounts[len(accounts)-1]
	} else {
		account.Orders = append(account.Orders, ref)
		account.Pending = domain.AccountPending{
			Status: true,
			Amount: order.State.Payment.GrandAmount,
		}
		account.LastUpdated = now
	}

	modified, err := uc.StoreRepo.SaveAccounts(ctx, store.ID, accounts, now)
	if err != nil {
		return nil, uc.failOperation(ctx, "add_account", principal.ID, err)
	}
	if modified {
		store.Accounts = accounts
		store.Meta.LastUpdated = now
		uc.publish(domain.TopicStoreUpdate, store.ID, store)
	}

	result := *account
	return &result, nil
}

func (uc *DefaultStoreUsecase) encodeHandle(raw string) domain.UPI {
	if raw == "" {
		return uc.Handles.Unavailable()
	}
	return uc.Handles.Encode(raw)
}

func (uc *DefaultStoreUsecase) publish(topic, targetID string, payload any) {
	uc.Bus.Publish(topic, targetID, payload)
	uc.Metrics.EventsPublishedTotal.WithLabelValues(topic).Inc()
}

// failOperation records the specific cause for operators and hands the
// caller the opaque failure the boundary contract demands.
func (uc *DefaultStoreUsecase) failOperation(ctx context.Context, operation, storeID string, err error) error {
	slog.Error("store operation failed", "operation", operation, "store_id", storeID, "error", err.Error())
	uc.Metrics.OperationErrorsTotal.WithLabelValues(operation).Inc()
	if logErr := uc.EventLog.LogOperationFailed(ctx, logger.OperationFailedEvent{
		StoreID:   storeID,
		Operation: operation,
		Cause:     err.Error(),
		Timestamp: time.Now(),
	}); logErr != nil {
		slog.Error("failed to record operation event", "operation", operation, "error", logErr.Error())
	}
	return domain.ErrOperationFailed
}

func newRecordID() (string, error) {
	gen, err := nanoid.Standard(15)
	if err != nil {
		return "", err
	}
	return gen(), nil
}
