package usecase

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkbluein/locale-store-service/internal/domain"
	"github.com/darkbluein/locale-store-service/internal/infrastructure/bus"
	storedto "github.com/darkbluein/locale-store-service/internal/usecase/dto/store"
)

type storeEnv struct {
	uc        *DefaultStoreUsecase
	stores    *fakeStoreRepo
	inventory *fakeInventoryRepo
	orders    *fakeOrderRepo
	resolver  *fakeResolver
	bus       *bus.UpdateBus
	eventLog  *fakeEventLog
}

func newStoreEnv() *storeEnv {
	env := &storeEnv{
		stores:    newFakeStoreRepo(),
		inventory: newFakeInventoryRepo(),
		orders:    newFakeOrderRepo(),
		resolver:  newFakeResolver(),
		bus:       bus.NewUpdateBus(),
		eventLog:  &fakeEventLog{},
	}
	env.uc = NewDefaultStoreUsecase(
		env.stores,
		env.inventory,
		env.orders,
		env.resolver,
		fakeIssuer{},
		fakeHasher{},
		fakePointEncoder{},
		fakeHandleEncoder{},
		env.bus,
		testMetrics,
		env.eventLog,
		NewStoreLocks(),
	)
	return env
}

func registrationInput(token, number string) *storedto.EditStoreInput {
	return &storedto.EditStoreInput{
		Token: token,
		Edit:  false,
		StoreInfo: storedto.StoreInfoInput{
			Name:          "Corner Kirana",
			UPI:           "corner@upi",
			LicenseNumber: "LIC-1234",
			Contact:       storedto.ContactInput{ISD: "91", Number: number},
			Address: storedto.AddressInput{
				Line1:    "14 Market Road",
				Location: storedto.LocationInput{Coordinates: [2]string{"28.6139", "77.2090"}},
			},
		},
	}
}

func TestRegisterStoreCreatesPairedInventory(t *testing.T) {
	env := newStoreEnv()
	env.resolver.grant("reg-token", "onboarding", domain.OriginStore)

	result, err := env.uc.EditStore(context.Background(), registrationInput("reg-token", "9876543210"))
	require.NoError(t, err)
	require.NotNil(t, result.Store)

	assert.True(t, result.Updated)
	assert.NotEmpty(t, result.Store.ID)
	assert.Equal(t, "token-"+result.Store.ID, result.Token)
	assert.Equal(t, "refresh-"+result.Store.ID, result.RefreshToken)

	record, err := env.inventory.GetByStoreID(context.Background(), result.Store.ID)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, result.Store.ID, record.Meta.StoreID)
	assert.Empty(t, record.Entries)
	assert.NotEqual(t, result.Store.ID, record.ID)
}

func TestRegisterStoreNeverPersistsPlaintextLicense(t *testing.T) {
	env := newStoreEnv()
	env.resolver.grant("reg-token", "onboarding", domain.OriginStore)

	result, err := env.uc.EditStore(context.Background(), registrationInput("reg-token", "9876543210"))
	require.NoError(t, err)

	stored, err := env.stores.GetByID(context.Background(), result.Store.ID)
	require.NoError(t, err)
	assert.Equal(t, "hashed:LIC-1234", stored.Meta.LicenseHash)
	assert.NotEqual(t, "LIC-1234", stored.Meta.LicenseHash)
	assert.False(t, strings.Contains(stored.Name, "LIC-1234"))
	assert.Equal(t, "hashed:LIC-1234", result.Store.Meta.LicenseHash)
}

func TestRegisterStoreRejectsTakenContact(t *testing.T) {
	env := newStoreEnv()
	env.resolver.grant("reg-token", "onboarding", domain.OriginStore)

	_, err := env.uc.EditStore(context.Background(), registrationInput("reg-token", "9999999999"))
	require.NoError(t, err)

	_, err = env.uc.EditStore(context.Background(), registrationInput("reg-token", "9999999999"))
	assert.ErrorIs(t, err, domain.ErrContactTaken)
}

func TestRegisterStoreRequiresStoreOrigin(t *testing.T) {
	env := newStoreEnv()
	env.resolver.grant("user-token", "user-1", domain.OriginUser)

	_, err := env.uc.EditStore(context.Background(), registrationInput("user-token", "9876543210"))
	assert.ErrorIs(t, err, domain.ErrForbidden)

	_, err = env.uc.EditStore(context.Background(), registrationInput("", "9876543210"))
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestRegisterStoreRejectsBadCoordinates(t *testing.T) {
	env := newStoreEnv()
	env.resolver.grant("reg-token", "onboarding", domain.OriginStore)

	input := registrationInput("reg-token", "9876543210")
	input.StoreInfo.Address.Location.Coordinates = [2]string{"", ""}

	_, err := env.uc.EditStore(context.Background(), input)
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func registerStore(t *testing.T, env *storeEnv, number string) *domain.StoreProfile {
	t.Helper()
	env.resolver.grant("reg-token", "onboarding", domain.OriginStore)
	result, err := env.uc.EditStore(context.Background(), registrationInput("reg-token", number))
	require.NoError(t, err)
	return result.Store
}

func TestEditStoreUpdatesAndPublishesOnce(t *testing.T) {
	env := newStoreEnv()
	store := registerStore(t, env, "9876543210")
	env.resolver.grant("store-token", store.ID, domain.OriginStore)

	matching, cancelMatching := env.bus.Subscribe(domain.TopicStoreUpdate, store.ID)
	defer cancelMatching()
	other, cancelOther := env.bus.Subscribe(domain.TopicStoreUpdate, "someone-else")
	defer cancelOther()

	input := registrationInput("store-token", "9876543210")
	input.Edit = true
	input.StoreInfo.Name = "Corner Kirana & Sons"

	result, err := env.uc.EditStore(context.Background(), input)
	require.NoError(t, err)
	require.True(t, result.Updated)
	assert.Equal(t, "Corner Kirana & Sons", result.Store.Name)
	assert.Empty(t, result.Token)

	select {
	case event := <-matching:
		assert.Equal(t, domain.TopicStoreUpdate, event.Topic)
		assert.Equal(t, store.ID, event.TargetID)
		payload, ok := event.Payload.(*domain.StoreProfile)
		require.True(t, ok)
		assert.Equal(t, "Corner Kirana & Sons", payload.Name)
	case <-time.After(time.Second):
		t.Fatal("expected a store update event")
	}

	select {
	case event := <-matching:
		t.Fatalf("expected exactly one event, got another: %+v", event)
	default:
	}
	select {
	case event := <-other:
		t.Fatalf("subscriber on another id received event: %+v", event)
	default:
	}
}

func TestEditStoreUnknownCallerIsNoOp(t *testing.T) {
	env := newStoreEnv()
	env.resolver.grant("ghost-token", "no-such-store", domain.OriginStore)

	events, cancel := env.bus.Subscribe(domain.TopicStoreUpdate, "no-such-store")
	defer cancel()

	input := registrationInput("ghost-token", "9876543210")
	input.Edit = true

	result, err := env.uc.EditStore(context.Background(), input)
	require.NoError(t, err)
	assert.False(t, result.Updated)
	assert.Nil(t, result.Store)

	select {
	case event := <-events:
		t.Fatalf("no-op edit must not publish, got %+v", event)
	default:
	}
}

func TestEditStoreClearsUPIWhenAbsent(t *testing.T) {
	env := newStoreEnv()
	store := registerStore(t, env, "9876543210")
	env.resolver.grant("store-token", store.ID, domain.OriginStore)

	input := registrationInput("store-token", "9876543210")
	input.Edit = true
	input.StoreInfo.UPI = ""

	result, err := env.uc.EditStore(context.Background(), input)
	require.NoError(t, err)
	require.True(t, result.Updated)
	assert.Equal(t, "", result.Store.UPI.Value)
	assert.Equal(t, "unavailable", result.Store.UPI.Display)
}

func TestEditStorePreservesLicenseHashWhenAbsent(t *testing.T) {
	env := newStoreEnv()
	store := registerStore(t, env, "9876543210")
	env.resolver.grant("store-token", store.ID, domain.OriginStore)

	input := registrationInput("store-token", "9876543210")
	input.Edit = true
	input.StoreInfo.LicenseNumber = ""

	result, err := env.uc.EditStore(context.Background(), input)
	require.NoError(t, err)
	assert.Equal(t, "hashed:LIC-1234", result.Store.Meta.LicenseHash)
}

func TestVerifyStoreRequiresAdmin(t *testing.T) {
	env := newStoreEnv()
	store := registerStore(t, env, "9876543210")
	env.resolver.grant("store-token", store.ID, domain.OriginStore)
	env.resolver.grant("admin-token", "admin-1", domain.OriginAdmin)

	_, err := env.uc.VerifyStore(context.Background(), &storedto.VerifyStoreInput{
		Token:    "store-token",
		StoreID:  store.ID,
		Verified: true,
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	events, cancel := env.bus.Subscribe(domain.TopicStoreUpdate, store.ID)
	defer cancel()

	verified, err := env.uc.VerifyStore(context.Background(), &storedto.VerifyStoreInput{
		Token:    "admin-token",
		StoreID:  store.ID,
		Verified: true,
	})
	require.NoError(t, err)
	assert.True(t, verified)

	stored, err := env.stores.GetByID(context.Background(), store.ID)
	require.NoError(t, err)
	assert.True(t, stored.Meta.Verified)

	select {
	case event := <-events:
		assert.Equal(t, store.ID, event.TargetID)
	case <-time.After(time.Second):
		t.Fatal("expected a store update event after verification")
	}
}

func TestGetStoreComputesTodayStat(t *testing.T) {
	env := newStoreEnv()
	store := registerStore(t, env, "9876543210")
	env.resolver.grant("store-token", store.ID, domain.OriginStore)

	now := time.Now()
	env.orders.Create(context.Background(), &domain.Order{
		ID:   "order-1",
		Meta: domain.OrderMeta{UserID: "user-1", StoreID: store.ID},
		State: domain.OrderState{
			CreatedAt: now,
			Accepted:  true,
			Payment:   domain.OrderPayment{GrandAmount: "120.50"},
		},
	})
	env.orders.Create(context.Background(), &domain.Order{
		ID:   "order-2",
		Meta: domain.OrderMeta{UserID: "user-2", StoreID: store.ID},
		State: domain.OrderState{
			CreatedAt: now,
			Accepted:  false,
			Payment:   domain.OrderPayment{GrandAmount: "999.00"},
		},
	})
	env.orders.Create(context.Background(), &domain.Order{
		ID:   "order-3",
		Meta: domain.OrderMeta{UserID: "user-3", StoreID: store.ID},
		State: domain.OrderState{
			CreatedAt: now,
			Accepted:  true,
			Payment:   domain.OrderPayment{GrandAmount: "29.50"},
		},
	})

	output, err := env.uc.GetStore(context.Background(), "store-token")
	require.NoError(t, err)
	assert.Equal(t, store.ID, output.Store.ID)
	assert.Equal(t, 2, output.Stat.Count)
	assert.Equal(t, "150.00", output.Stat.Amount)
	assert.False(t, output.Stat.Error)
}

func TestAddAccountSeedsPendingFromOrder(t *testing.T) {
	env := newStoreEnv()
	store := registerStore(t, env, "9876543210")
	env.resolver.grant("store-token", store.ID, domain.OriginStore)

	env.orders.Create(context.Background(), &domain.Order{
		ID:   "order-1",
		Meta: domain.OrderMeta{UserID: "user-1", StoreID: store.ID},
		State: domain.OrderState{
			CreatedAt: time.Now(),
			Accepted:  true,
			Payment:   domain.OrderPayment{GrandAmount: "75.00"},
		},
	})

	account, err := env.uc.AddAccount(context.Background(), &storedto.AddAccountInput{
		Token:   "store-token",
		Contact: storedto.ContactInput{ISD: "91", Number: "8888888888"},
		OrderID: "order-1",
	})
	require.NoError(t, err)
	assert.Equal(t, "user-1", account.ID)
	assert.Equal(t, "75.00", account.Pending.Amount)
	assert.True(t, account.Pending.Status)
	require.Len(t, account.Orders, 1)
	assert.Equal(t, "order-1", account.Orders[0].OrderID)

	stored, err := env.stores.GetByID(context.Background(), store.ID)
	require.NoError(t, err)
	require.Len(t, stored.Accounts, 1)
	assert.Equal(t, "8888888888", stored.Accounts[0].Contact.Number)
}

func TestAddAccountIsVisibleInConfirmation(t *testing.T) {
	env := newStoreEnv()
	store := registerStore(t, env, "9876543210")
	env.resolver.grant("store-token", store.ID, domain.OriginStore)
	env.resolver.grant("user-token", "user-1", domain.OriginUser)

	env.orders.Create(context.Background(), &domain.Order{
		ID:   "order-1",
		Meta: domain.OrderMeta{UserID: "user-1", StoreID: store.ID},
		State: domain.OrderState{
			CreatedAt: time.Now(),
			Accepted:  true,
			Payment:   domain.OrderPayment{GrandAmount: "75.00"},
		},
	})

	_, err := env.uc.AddAccount(context.Background(), &storedto.AddAccountInput{
		Token:   "store-token",
		Contact: storedto.ContactInput{ISD: "91", Number: "8888888888"},
		OrderID: "order-1",
	})
	require.NoError(t, err)

	// the consumer named on the order sees their linked account
	output, err := env.uc.GetConfirmation(context.Background(), "user-token", store.ID)
	require.NoError(t, err)
	assert.True(t, output.Account.Exists)
	assert.Equal(t, "75.00", output.Account.Amount)
}

func TestAddAccountRequiresStoreOrigin(t *testing.T) {
	env := newStoreEnv()
	env.resolver.grant("user-token", "user-1", domain.OriginUser)

	_, err := env.uc.AddAccount(context.Background(), &storedto.AddAccountInput{
		Token:   "user-token",
		Contact: storedto.ContactInput{Number: "8888888888"},
		OrderID: "order-1",
	})
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestGetConfirmationReportsLinkedAccount(t *testing.T) {
	env := newStoreEnv()
	store := registerStore(t, env, "9876543210")
	env.resolver.grant("user-token", "user-1", domain.OriginUser)

	lastUpdated := time.Now().Add(-time.Hour)
	_, err := env.stores.SaveAccounts(context.Background(), store.ID, []domain.StoreAccount{
		{
			ID:          "user-1",
			Contact:     domain.Contact{Number: "8888888888"},
			LastUpdated: lastUpdated,
			Pending:     domain.AccountPending{Status: true, Amount: "42.00"},
		},
	}, time.Now())
	require.NoError(t, err)

	output, err := env.uc.GetConfirmation(context.Background(), "user-token", store.ID)
	require.NoError(t, err)
	assert.Equal(t, store.Name, output.Name)
	assert.True(t, output.Account.Exists)
	assert.Equal(t, "42.00", output.Account.Amount)
	assert.Equal(t, lastUpdated.Unix(), output.Account.Date.Unix())

	env.resolver.grant("other-token", "user-2", domain.OriginUser)
	output, err = env.uc.GetConfirmation(context.Background(), "other-token", store.ID)
	require.NoError(t, err)
	assert.False(t, output.Account.Exists)
	assert.Equal(t, "0.00", output.Account.Amount)
}
