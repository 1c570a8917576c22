package product

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"

	"homesteadhub/internal/db"
	"homesteadhub/internal/domain"
	"homesteadhub/internal/migrate"
	userrepo "homesteadhub/internal/repository/user"
)

func TestProductRepoUpsertOwnership_Integration(t *testing.T) {
	ctx := context.Background()
	pool := integrationPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	users := userrepo.NewPostgres(pool, nil)
	owner := saveFarmer(ctx, t, users, "sunnyhill")
	intruder := saveFarmer(ctx, t, users, "greenacres")

	repo := NewPostgres(pool, nil)
	stored, err := repo.Upsert(ctx, domain.Product{
		SKU:            "APPLE1",
		Title:          "Apples",
		Stock:          100,
		UnitPrice:      decimal.RequireFromString("9.99"),
		FarmerID:       owner.ID,
		FarmerUsername: owner.Username,
	})
	if err != nil {
		t.Fatalf("upsert: %v", err)
	}
	if stored.FarmerID != owner.ID || stored.CreatedAt.IsZero() {
		t.Fatalf("stored row not returned: %+v", stored)
	}
	if !stored.UnitPrice.Equal(decimal.RequireFromString("9.99")) {
		t.Fatalf("expected unit price 9.99, got %s", stored.UnitPrice)
	}

	// A different farmer reusing the SKU must be rejected, leaving the row as
	// the owner wrote it.
	_, err = repo.Upsert(ctx, domain.Product{
		SKU:            "APPLE1",
		Title:          "Apples But Mine",
		Stock:          5,
		UnitPrice:      decimal.RequireFromString("1.00"),
		FarmerID:       intruder.ID,
		FarmerUsername: intruder.Username,
	})
	if !errors.Is(err, domain.ErrAlreadyExists) {
		t.Fatalf("expected already exists, got %v", err)
	}
	got, err := repo.GetBySKU(ctx, "APPLE1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.FarmerID != owner.ID || got.FarmerUsername != owner.Username {
		t.Fatalf("ownership changed: %+v", got)
	}
	if got.Title != "Apples" || got.Stock != 100 {
		t.Fatalf("row changed despite rejected upsert: %+v", got)
	}

	// The owner can update the listing.
	updated, err := repo.Upsert(ctx, domain.Product{
		SKU:            "APPLE1",
		Title:          "Fresh Apples",
		Stock:          80,
		UnitPrice:      decimal.RequireFromString("10.25"),
		FarmerID:       owner.ID,
		FarmerUsername: owner.Username,
	})
	if err != nil {
		t.Fatalf("owner re-upsert: %v", err)
	}
	if updated.Title != "Fresh Apples" || updated.Stock != 80 || !updated.UnitPrice.Equal(decimal.RequireFromString("10.25")) {
		t.Fatalf("updated row not returned: %+v", updated)
	}
}

func TestProductRepoUpdateStock_Integration(t *testing.T) {
	ctx := context.Background()
	pool := integrationPool(ctx, t)
	defer pool.Close()

	if err := migrate.Apply(ctx, pool); err != nil {
		t.Fatalf("apply migrations: %v", err)
	}
	resetTables(ctx, t, pool)

	users := userrepo.NewPostgres(pool, nil)
	owner := saveFarmer(ctx, t, users, "sunnyhill")

	repo := NewPostgres(pool, nil)
	if _, err := repo.Upsert(ctx, domain.Product{
		SKU:       "APPLE1",
		Title:     "Apples",
		Stock:     100,
		UnitPrice: decimal.RequireFromString("9.99"),
		FarmerID:  owner.ID,
	}); err != nil {
		t.Fatalf("upsert: %v", err)
	}

	if err := repo.UpdateStock(ctx, "APPLE1", 42); err != nil {
		t.Fatalf("update stock: %v", err)
	}
	got, err := repo.GetBySKU(ctx, "APPLE1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Stock != 42 {
		t.Fatalf("expected stock 42, got %d", got.Stock)
	}

	if err := repo.UpdateStock(ctx, "NOPE", 1); !errors.Is(err, domain.ErrUnknownProduct) {
		t.Fatalf("expected unknown product, got %v", err)
	}
}

func saveFarmer(ctx context.Context, t *testing.T, users userrepo.Repository, username string) *domain.User {
	t.Helper()
	u, err := users.Save(ctx, domain.User{
		Username:     username,
		PasswordHash: "not-a-real-hash",
		Email:        username + "@example.com",
		Role:         domain.RoleFarmer,
		FarmName:     username + " farm",
	})
	if err != nil {
		t.Fatalf("save farmer %s: %v", username, err)
	}
	return u
}

func integrationPool(ctx context.Context, t *testing.T) *pgxpool.Pool {
	t.Helper()
	dsn := os.Getenv("TEST_DB_DSN")
	if dsn == "" {
		t.Skip("TEST_DB_DSN not set")
	}
	pool, err := db.Connect(ctx, dsn)
	if err != nil {
		t.Fatalf("connect db: %v", err)
	}
	return pool
}

func resetTables(ctx context.Context, t *testing.T, pool *pgxpool.Pool) {
	t.Helper()
	if _, err := pool.Exec(ctx, `TRUNCATE tokens, order_lines, orders, products, users RESTART IDENTITY CASCADE`); err != nil {
		t.Fatalf("truncate tables: %v", err)
	}
}
