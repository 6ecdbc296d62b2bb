package usecase

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/darkbluein/locale-store-service/internal/domain"
	orderdto "github.com/darkbluein/locale-store-service/internal/usecase/dto/order"
)

type orderEnv struct {
	uc       *DefaultOrderUsecase
	orders   *fakeOrderRepo
	resolver *fakeResolver
}

func newOrderEnv(products ...*domain.ProductRecord) *orderEnv {
	env := &orderEnv{
		orders:   newFakeOrderRepo(),
		resolver: newFakeResolver(),
	}
	env.resolver.grant("user-token", "user-1", domain.OriginUser)
	env.uc = NewDefaultOrderUsecase(env.orders, newFakeCatalog(products...), env.resolver)
	return env
}

func TestCreateOrderComputesAmounts(t *testing.T) {
	env := newOrderEnv(
		product("P1", "Rice 1kg", "80.00"),
		product("P2", "Wheat Flour", "55.50"),
	)

	order, err := env.uc.CreateOrder(context.Background(), &orderdto.CreateOrderInput{
		Token:   "user-token",
		StoreID: "store-1",
		Items: []orderdto.OrderItemInput{
			{ID: "P1", Quantity: 2},
			{ID: "P2", Quantity: 3},
		},
		Method:    "upi",
		Delivery:  true,
		DeliverBy: 2 * time.Hour,
	})
	require.NoError(t, err)
	require.Len(t, order.Products, 2)

	assert.Equal(t, "160.00", order.Products[0].TotalAmount)
	assert.Equal(t, "166.50", order.Products[1].TotalAmount)
	assert.Equal(t, "326.50", order.State.Payment.GrandAmount)
	assert.False(t, order.State.Payment.Paid)
	assert.True(t, order.State.Delivery.ToDeliver)
	require.NotNil(t, order.State.Delivery.DeliverBy)
	assert.Equal(t, "user-1", order.Meta.UserID)
	assert.Equal(t, "store-1", order.Meta.StoreID)
	assert.NotEmpty(t, order.ID)

	saved, err := env.orders.GetByID(context.Background(), order.ID)
	require.NoError(t, err)
	require.NotNil(t, saved)
}

func TestCreateOrderInStoreSkipsPricing(t *testing.T) {
	env := newOrderEnv(product("P1", "Rice 1kg", "80.00"))

	order, err := env.uc.CreateOrder(context.Background(), &orderdto.CreateOrderInput{
		Token:   "user-token",
		StoreID: "store-1",
		Items: []orderdto.OrderItemInput{
			{ID: "P1", Quantity: 2, InStore: true},
		},
		InStore: true,
	})
	require.NoError(t, err)

	// in-store picks are priced at the counter, not here
	assert.Empty(t, order.Products)
	assert.Empty(t, order.State.Payment.GrandAmount)
	assert.False(t, order.State.Delivery.ToDeliver)
	assert.Nil(t, order.State.Delivery.DeliverBy)
}

func TestCreateOrderSkipsUnknownProducts(t *testing.T) {
	env := newOrderEnv(product("P1", "Rice 1kg", "80.00"))

	order, err := env.uc.CreateOrder(context.Background(), &orderdto.CreateOrderInput{
		Token:   "user-token",
		StoreID: "store-1",
		Items: []orderdto.OrderItemInput{
			{ID: "P1", Quantity: 1},
			{ID: "P-missing", Quantity: 4},
		},
	})
	require.NoError(t, err)
	require.Len(t, order.Products, 1)
	assert.Equal(t, "P1", order.Products[0].ID)
	assert.Equal(t, "80.00", order.State.Payment.GrandAmount)
}

func TestCreateOrderRejectsBadPrice(t *testing.T) {
	env := newOrderEnv(product("P1", "Rice 1kg", "not-a-price"))

	_, err := env.uc.CreateOrder(context.Background(), &orderdto.CreateOrderInput{
		Token:   "user-token",
		StoreID: "store-1",
		Items:   []orderdto.OrderItemInput{{ID: "P1", Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestCreateOrderRequiresAuthentication(t *testing.T) {
	env := newOrderEnv()

	_, err := env.uc.CreateOrder(context.Background(), &orderdto.CreateOrderInput{
		Token:   "unknown-token",
		StoreID: "store-1",
	})
	assert.ErrorIs(t, err, domain.ErrUnauthenticated)
}

func TestGetOrderByIDMissing(t *testing.T) {
	env := newOrderEnv()

	_, err := env.uc.GetOrderByID(context.Background(), "nope")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
