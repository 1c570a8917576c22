package seed

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/crypto/bcrypt"
)

type userSeed struct {
	Username        string
	Password        string
	Email           string
	Role            string
	ShippingAddress string
	FarmName        string
	Location        string
}

type productSeed struct {
	SKU         string
	Title       string
	Description string
	Stock       int
	UnitPrice   string
	Farmer      string
}

// Apply inserts demo users and products for manual testing. It is idempotent via ON CONFLICT.
func Apply(ctx context.Context, pool *pgxpool.Pool) error {
	users := []userSeed{
		{
			Username: "greenacres",
			Password: "Harvest1!",
			Email:    "hello@greenacres.example",
			Role:     "farmer",
			FarmName: "Green Acres",
			Location: "Valley Center",
		},
		{
			Username: "sunnyhill",
			Password: "Harvest1!",
			Email:    "orders@sunnyhill.example",
			Role:     "farmer",
			FarmName: "Sunny Hill Orchard",
			Location: "Ramona",
		},
		{
			Username:        "alice",
			Password:        "Secret12",
			Email:           "alice@example.com",
			Role:            "customer",
			ShippingAddress: "12 Orchard Ln, San Diego",
		},
	}

	farmerIDs := make(map[string]string)
	for _, u := range users {
		id, err := upsertUser(ctx, pool, u)
		if err != nil {
			return fmt.Errorf("upsert user %s: %w", u.Username, err)
		}
		if u.Role == "farmer" {
			farmerIDs[u.Username] = id
		}
	}

	products := []productSeed{
		{SKU: "APPLE1", Title: "Honeycrisp Apples (3 lb)", Description: "Crisp and sweet, picked this week", Stock: 100, UnitPrice: "9.99", Farmer: "sunnyhill"},
		{SKU: "CARROT2", Title: "Rainbow Carrots (bunch)", Description: "Mixed heirloom varieties", Stock: 50, UnitPrice: "2.49", Farmer: "greenacres"},
		{SKU: "EGGS12", Title: "Pasture Eggs (dozen)", Stock: 30, UnitPrice: "6.50", Farmer: "greenacres"},
		{SKU: "HONEY8", Title: "Wildflower Honey (8 oz)", Description: "Raw and unfiltered", Stock: 4, UnitPrice: "11.00", Farmer: "sunnyhill"},
	}

	for _, p := range products {
		if err := upsertProduct(ctx, pool, farmerIDs[p.Farmer], p); err != nil {
			return fmt.Errorf("upsert product %s: %w", p.SKU, err)
		}
	}

	return nil
}

func upsertUser(ctx context.Context, pool *pgxpool.Pool, u userSeed) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(u.Password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	const q = `
INSERT INTO users (username, password_hash, email, role, shipping_address, farm_name, location)
VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), NULLIF($7, ''))
ON CONFLICT (username) DO UPDATE SET
    email = EXCLUDED.email,
    shipping_address = EXCLUDED.shipping_address,
    farm_name = EXCLUDED.farm_name,
    location = EXCLUDED.location
RETURNING id::text
`
	var id string
	if err := pool.QueryRow(ctx, q, u.Username, string(hash), u.Email, u.Role, u.ShippingAddress, u.FarmName, u.Location).Scan(&id); err != nil {
		return "", err
	}
	return id, nil
}

func upsertProduct(ctx context.Context, pool *pgxpool.Pool, farmerID string, p productSeed) error {
	const q = `
INSERT INTO products (sku, title, description, stock, unit_price, farmer_id)
VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)
ON CONFLICT (sku) DO UPDATE SET
    title = EXCLUDED.title,
    description = EXCLUDED.description,
    unit_price = EXCLUDED.unit_price
`
	_, err := pool.Exec(ctx, q, p.SKU, p.Title, p.Description, p.Stock, p.UnitPrice, farmerID)
	return err
}
