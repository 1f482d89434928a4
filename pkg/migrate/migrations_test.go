package migrate_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func readMigration(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(filepath.Join("migrations", pattern))
	if err != nil {
		t.Fatalf("glob migrations: %v", err)
	}
	if len(matches) == 0 {
		t.Fatalf("no migration matching %q found", pattern)
	}
	data, err := os.ReadFile(matches[0])
	if err != nil {
		t.Fatalf("read migration file: %v", err)
	}
	return string(data)
}

func TestProductsMigrationContainsSchemas(t *testing.T) {
	content := readMigration(t, "*_create_products_table.sql")

	checks := []string{
		"CREATE TABLE IF NOT EXISTS products",
		"price numeric(10,2) NOT NULL",
		"show_home boolean NOT NULL DEFAULT false",
		"CREATE INDEX IF NOT EXISTS products_category_idx",
		"CREATE INDEX IF NOT EXISTS products_created_at_id_idx",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestWishlistMigrationEnforcesUniqueness(t *testing.T) {
	content := readMigration(t, "*_create_wishlist_items_table.sql")
	if !strings.Contains(content, "CREATE UNIQUE INDEX IF NOT EXISTS wishlist_items_user_product_key") {
		t.Error("wishlist migration must declare the user/product unique index")
	}
}

func TestSavedItemsMigrationEnforcesUniqueness(t *testing.T) {
	content := readMigration(t, "*_create_saved_items_table.sql")
	if !strings.Contains(content, "CREATE UNIQUE INDEX IF NOT EXISTS saved_items_user_product_key") {
		t.Error("saved items migration must declare the user/product unique index")
	}
}

func TestOrdersMigrationStoresItemsAsJSONB(t *testing.T) {
	content := readMigration(t, "*_create_orders_table.sql")
	if !strings.Contains(content, "items jsonb NOT NULL") {
		t.Error("orders migration must store line items as jsonb")
	}
}
