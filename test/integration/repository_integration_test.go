package integration

import (
	"context"
	"testing"
	"time"

	"farm-market/internal/model"
	"farm-market/internal/repository"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func seedFarmer(t *testing.T, repo repository.FarmerRepository, email string) *model.Farmer {
	t.Helper()

	farmer := &model.Farmer{
		ID:           uuid.New(),
		Name:         "Wanjiku Farms",
		Email:        email,
		Phone:        "+254700000001",
		Location:     "Nakuru",
		PasswordHash: "$2a$10$notarealhashbutlongenoughtostore00000000000000000000",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), farmer))
	return farmer
}

func seedBuyer(t *testing.T, repo repository.BuyerRepository, email string) *model.Buyer {
	t.Helper()

	buyer := &model.Buyer{
		ID:           uuid.New(),
		Name:         "Otieno",
		Email:        email,
		Phone:        "+254700000002",
		PasswordHash: "$2a$10$notarealhashbutlongenoughtostore00000000000000000000",
		CreatedAt:    time.Now(),
	}
	require.NoError(t, repo.Create(context.Background(), buyer))
	return buyer
}

func seedProduct(t *testing.T, repo repository.ProductRepository, farmerID uuid.UUID, price float64, quantity int) *model.Product {
	t.Helper()

	now := time.Now()
	product := &model.Product{
		ID:        uuid.New(),
		Name:      "Maize",
		Price:     price,
		Category:  "Grains",
		Quantity:  quantity,
		FarmerID:  farmerID,
		CreatedAt: now,
		UpdatedAt: now,
	}
	require.NoError(t, repo.Create(context.Background(), product))
	return product
}

func TestFarmerRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	repo := repository.NewFarmerRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("Create and GetByEmail", func(t *testing.T) {
		testDB.TruncateTables(t)
		farmer := seedFarmer(t, repo, "wanjiku@example.com")

		found, err := repo.GetByEmail(ctx, "wanjiku@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, farmer.ID, found.ID)
		assert.Equal(t, "Nakuru", found.Location)
	})

	t.Run("Duplicate email is rejected", func(t *testing.T) {
		testDB.TruncateTables(t)
		seedFarmer(t, repo, "wanjiku@example.com")

		dup := &model.Farmer{
			ID:           uuid.New(),
			Name:         "Other",
			Email:        "wanjiku@example.com",
			Phone:        "+254700000009",
			Location:     "Eldoret",
			PasswordHash: "hash",
			CreatedAt:    time.Now(),
		}
		err := repo.Create(ctx, dup)
		require.ErrorIs(t, err, model.ErrDuplicateEmail)
	})

	t.Run("GetByID returns nil when absent", func(t *testing.T) {
		testDB.TruncateTables(t)

		found, err := repo.GetByID(ctx, uuid.New())
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("Update and Delete", func(t *testing.T) {
		testDB.TruncateTables(t)
		farmer := seedFarmer(t, repo, "wanjiku@example.com")

		farmer.Location = "Eldoret"
		require.NoError(t, repo.Update(ctx, farmer))

		found, err := repo.GetByID(ctx, farmer.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Eldoret", found.Location)

		require.NoError(t, repo.Delete(ctx, farmer.ID))
		found, err = repo.GetByID(ctx, farmer.ID)
		require.NoError(t, err)
		assert.Nil(t, found)
	})
}

func TestProductRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	farmerRepo := repository.NewFarmerRepository(testDB.Pool, logger)
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	t.Run("GetAll joins farmer details", func(t *testing.T) {
		testDB.TruncateTables(t)
		farmer := seedFarmer(t, farmerRepo, "wanjiku@example.com")
		seedProduct(t, productRepo, farmer.ID, 50, 10)

		products, err := productRepo.GetAll(ctx)
		require.NoError(t, err)
		require.Len(t, products, 1)
		assert.Equal(t, "Maize", products[0].Name)
		assert.Equal(t, "Wanjiku Farms", products[0].FarmerName)
		assert.Equal(t, "Nakuru", products[0].FarmerLocation)
	})

	t.Run("ReserveStock decrements atomically", func(t *testing.T) {
		testDB.TruncateTables(t)
		farmer := seedFarmer(t, farmerRepo, "wanjiku@example.com")
		product := seedProduct(t, productRepo, farmer.ID, 50, 10)

		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, productRepo.ReserveStock(ctx, tx, product.ID, 3))
		require.NoError(t, tx.Commit(ctx))

		found, err := productRepo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, 7, found.Quantity)
	})

	t.Run("ReserveStock refuses to oversell", func(t *testing.T) {
		testDB.TruncateTables(t)
		farmer := seedFarmer(t, farmerRepo, "wanjiku@example.com")
		product := seedProduct(t, productRepo, farmer.ID, 50, 10)

		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)
		err = productRepo.ReserveStock(ctx, tx, product.ID, 12)
		require.ErrorIs(t, err, model.ErrInsufficientStock)
		require.NoError(t, tx.Rollback(ctx))

		// Quantity is untouched after the failed reservation.
		found, err := productRepo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, 10, found.Quantity)
	})

	t.Run("RestoreStock adds the quantity back", func(t *testing.T) {
		testDB.TruncateTables(t)
		farmer := seedFarmer(t, farmerRepo, "wanjiku@example.com")
		product := seedProduct(t, productRepo, farmer.ID, 50, 7)

		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, productRepo.RestoreStock(ctx, tx, product.ID, 3))
		require.NoError(t, tx.Commit(ctx))

		found, err := productRepo.GetByID(ctx, product.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, 10, found.Quantity)
	})

	t.Run("RestoreStock tolerates a deleted product", func(t *testing.T) {
		testDB.TruncateTables(t)

		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, productRepo.RestoreStock(ctx, tx, uuid.New(), 3))
		require.NoError(t, tx.Rollback(ctx))
	})
}

func TestOrderRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	testDB := SetupTestDB(t)
	logger := zerolog.Nop()
	farmerRepo := repository.NewFarmerRepository(testDB.Pool, logger)
	buyerRepo := repository.NewBuyerRepository(testDB.Pool, logger)
	productRepo := repository.NewProductRepository(testDB.Pool, logger)
	orderRepo := repository.NewOrderRepository(testDB.Pool, logger)

	ctx := context.Background()

	placeOrder := func(t *testing.T, buyerID, productID uuid.UUID, quantity int, total float64) *model.Order {
		t.Helper()

		now := time.Now()
		order := &model.Order{
			ID:         uuid.New(),
			BuyerID:    buyerID,
			ProductID:  productID,
			Quantity:   quantity,
			TotalPrice: total,
			Status:     model.StatusPending,
			CreatedAt:  now,
			UpdatedAt:  now,
		}

		tx, err := orderRepo.BeginTx(ctx)
		require.NoError(t, err)
		require.NoError(t, orderRepo.Create(ctx, tx, order))
		require.NoError(t, tx.Commit(ctx))
		return order
	}

	t.Run("Create and GetByID", func(t *testing.T) {
		testDB.TruncateTables(t)
		farmer := seedFarmer(t, farmerRepo, "wanjiku@example.com")
		buyer := seedBuyer(t, buyerRepo, "otieno@example.com")
		product := seedProduct(t, productRepo, farmer.ID, 50, 10)

		order := placeOrder(t, buyer.ID, product.ID, 3, 150)

		found, err := orderRepo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, model.StatusPending, found.Status)
		assert.Equal(t, 150.0, found.TotalPrice)
	})

	t.Run("ListByBuyer carries product details", func(t *testing.T) {
		testDB.TruncateTables(t)
		farmer := seedFarmer(t, farmerRepo, "wanjiku@example.com")
		buyer := seedBuyer(t, buyerRepo, "otieno@example.com")
		product := seedProduct(t, productRepo, farmer.ID, 50, 10)

		placeOrder(t, buyer.ID, product.ID, 3, 150)

		orders, err := orderRepo.ListByBuyer(ctx, buyer.ID)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, "Maize", orders[0].ProductName)
		assert.Equal(t, 50.0, orders[0].ProductPrice)
	})

	t.Run("ListByBuyer survives a deleted product", func(t *testing.T) {
		testDB.TruncateTables(t)
		farmer := seedFarmer(t, farmerRepo, "wanjiku@example.com")
		buyer := seedBuyer(t, buyerRepo, "otieno@example.com")
		product := seedProduct(t, productRepo, farmer.ID, 50, 10)

		placeOrder(t, buyer.ID, product.ID, 3, 150)
		require.NoError(t, productRepo.Delete(ctx, product.ID))

		orders, err := orderRepo.ListByBuyer(ctx, buyer.ID)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Empty(t, orders[0].ProductName)
	})

	t.Run("ListByFarmer scopes to the farmer's products", func(t *testing.T) {
		testDB.TruncateTables(t)
		farmer := seedFarmer(t, farmerRepo, "wanjiku@example.com")
		other := seedFarmer(t, farmerRepo, "kamau@example.com")
		buyer := seedBuyer(t, buyerRepo, "otieno@example.com")
		mine := seedProduct(t, productRepo, farmer.ID, 50, 10)
		theirs := seedProduct(t, productRepo, other.ID, 80, 5)

		placeOrder(t, buyer.ID, mine.ID, 2, 100)
		placeOrder(t, buyer.ID, theirs.ID, 1, 80)

		orders, err := orderRepo.ListByFarmer(ctx, farmer.ID)
		require.NoError(t, err)
		require.Len(t, orders, 1)
		assert.Equal(t, mine.ID, orders[0].ProductID)
		assert.Equal(t, "Otieno", orders[0].BuyerName)
	})

	t.Run("UpdateStatus persists the transition", func(t *testing.T) {
		testDB.TruncateTables(t)
		farmer := seedFarmer(t, farmerRepo, "wanjiku@example.com")
		buyer := seedBuyer(t, buyerRepo, "otieno@example.com")
		product := seedProduct(t, productRepo, farmer.ID, 50, 10)

		order := placeOrder(t, buyer.ID, product.ID, 3, 150)

		require.NoError(t, orderRepo.UpdateStatus(ctx, order.ID, model.StatusConfirmed))

		found, err := orderRepo.GetByID(ctx, order.ID)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, model.StatusConfirmed, found.Status)
	})
}
