package repository

import (
	"context"
	"testing"

	"vibegadget/orders-service/internal/app/orders/entity"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// CartRepositoryTestSuite тестовый suite для Redis repository корзины
type CartRepositoryTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	repo      CartRepository
}

func TestCartRepositorySuite(t *testing.T) {
	suite.Run(t, new(CartRepositoryTestSuite))
}

func (s *CartRepositoryTestSuite) SetupSuite() {
	var err error
	s.miniRedis, err = miniredis.Run()
	require.NoError(s.T(), err)

	s.client = redis.NewClient(&redis.Options{
		Addr: s.miniRedis.Addr(),
	})

	s.repo = NewCartRepository(s.client)
}

func (s *CartRepositoryTestSuite) SetupTest() {
	s.miniRedis.FlushAll()
}

func (s *CartRepositoryTestSuite) TearDownSuite() {
	s.client.Close()
	s.miniRedis.Close()
}

// ===================== SetItem / GetItem Tests =====================

func (s *CartRepositoryTestSuite) TestSetAndGetItem() {
	ctx := context.Background()
	owner := uuid.New().String()

	item := &entity.CartItem{
		ProductID: uuid.New(),
		Name:      "Vibe Phone X",
		Image:     "https://cdn.example.com/phone.png",
		UnitPrice: 1000,
		Quantity:  2,
	}

	// Act
	err := s.repo.SetItem(ctx, owner, item)

	// Assert
	s.NoError(err)

	result, err := s.repo.GetItem(ctx, owner, item.ProductID)
	s.NoError(err)
	s.Equal(item.Name, result.Name)
	s.Equal(item.UnitPrice, result.UnitPrice)
	s.Equal(2, result.Quantity)
}

func (s *CartRepositoryTestSuite) TestGetItem_NotFound() {
	ctx := context.Background()

	// Act
	result, err := s.repo.GetItem(ctx, uuid.New().String(), uuid.New())

	// Assert
	s.ErrorIs(err, ErrCartItemNotFound)
	s.Nil(result)
}

func (s *CartRepositoryTestSuite) TestSetItem_Overwrite() {
	ctx := context.Background()
	owner := uuid.New().String()
	productID := uuid.New()

	item := &entity.CartItem{ProductID: productID, Name: "Vibe Buds", UnitPrice: 200, Quantity: 1}
	s.NoError(s.repo.SetItem(ctx, owner, item))

	// Act - перезаписываем с новым количеством
	item.Quantity = 4
	s.NoError(s.repo.SetItem(ctx, owner, item))

	// Assert
	result, err := s.repo.GetItem(ctx, owner, productID)
	s.NoError(err)
	s.Equal(4, result.Quantity)
}

// ===================== GetItems Tests =====================

func (s *CartRepositoryTestSuite) TestGetItems_MultipleProducts() {
	ctx := context.Background()
	owner := uuid.New().String()

	s.NoError(s.repo.SetItem(ctx, owner, &entity.CartItem{ProductID: uuid.New(), Name: "A", UnitPrice: 100, Quantity: 1}))
	s.NoError(s.repo.SetItem(ctx, owner, &entity.CartItem{ProductID: uuid.New(), Name: "B", UnitPrice: 200, Quantity: 2}))

	// Act
	items, err := s.repo.GetItems(ctx, owner)

	// Assert
	s.NoError(err)
	s.Len(items, 2)
}

func (s *CartRepositoryTestSuite) TestGetItems_EmptyCart() {
	ctx := context.Background()

	// Act
	items, err := s.repo.GetItems(ctx, uuid.New().String())

	// Assert
	s.NoError(err)
	s.Empty(items)
}

func (s *CartRepositoryTestSuite) TestGetItems_OwnersIsolated() {
	// Корзины разных владельцев не пересекаются
	ctx := context.Background()
	userOwner := uuid.New().String()
	deviceOwner := "device:abc-123"

	s.NoError(s.repo.SetItem(ctx, userOwner, &entity.CartItem{ProductID: uuid.New(), Name: "User item", UnitPrice: 100, Quantity: 1}))
	s.NoError(s.repo.SetItem(ctx, deviceOwner, &entity.CartItem{ProductID: uuid.New(), Name: "Guest item", UnitPrice: 200, Quantity: 1}))

	userItems, err := s.repo.GetItems(ctx, userOwner)
	s.NoError(err)
	s.Len(userItems, 1)
	s.Equal("User item", userItems[0].Name)

	deviceItems, err := s.repo.GetItems(ctx, deviceOwner)
	s.NoError(err)
	s.Len(deviceItems, 1)
	s.Equal("Guest item", deviceItems[0].Name)
}

// ===================== RemoveItem Tests =====================

func (s *CartRepositoryTestSuite) TestRemoveItem_Success() {
	ctx := context.Background()
	owner := uuid.New().String()
	productID := uuid.New()

	s.NoError(s.repo.SetItem(ctx, owner, &entity.CartItem{ProductID: productID, Name: "A", UnitPrice: 100, Quantity: 1}))

	// Act
	err := s.repo.RemoveItem(ctx, owner, productID)

	// Assert
	s.NoError(err)
	_, err = s.repo.GetItem(ctx, owner, productID)
	s.ErrorIs(err, ErrCartItemNotFound)
}

func (s *CartRepositoryTestSuite) TestRemoveItem_NotFound() {
	ctx := context.Background()

	// Act
	err := s.repo.RemoveItem(ctx, uuid.New().String(), uuid.New())

	// Assert
	s.ErrorIs(err, ErrCartItemNotFound)
}

// ===================== Clear Tests =====================

func (s *CartRepositoryTestSuite) TestClear() {
	ctx := context.Background()
	owner := uuid.New().String()

	s.NoError(s.repo.SetItem(ctx, owner, &entity.CartItem{ProductID: uuid.New(), Name: "A", UnitPrice: 100, Quantity: 1}))
	s.NoError(s.repo.SetItem(ctx, owner, &entity.CartItem{ProductID: uuid.New(), Name: "B", UnitPrice: 200, Quantity: 1}))

	// Act
	err := s.repo.Clear(ctx, owner)

	// Assert
	s.NoError(err)
	items, err := s.repo.GetItems(ctx, owner)
	s.NoError(err)
	s.Empty(items)
}

func (s *CartRepositoryTestSuite) TestClear_EmptyCartNoError() {
	ctx := context.Background()

	// Act
	err := s.repo.Clear(ctx, uuid.New().String())

	// Assert
	s.NoError(err)
}

// ===================== TTL Tests =====================

func (s *CartRepositoryTestSuite) TestCartKeyHasTTL() {
	ctx := context.Background()
	owner := uuid.New().String()

	s.NoError(s.repo.SetItem(ctx, owner, &entity.CartItem{ProductID: uuid.New(), Name: "A", UnitPrice: 100, Quantity: 1}))

	// Брошенная корзина должна истечь, ключ без TTL жил бы вечно
	ttl := s.miniRedis.TTL("cart:" + owner)
	s.Greater(ttl.Seconds(), 0.0)
}
