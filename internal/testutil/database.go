package testutil

import (
	"database/sql"
	"fmt"
	"testing"

	_ "github.com/go-sql-driver/mysql"
)

// SetupTestDB opens the integration-test database. Tests are skipped when a
// MySQL instance named 'warung_test' is not reachable on localhost:3306.
func SetupTestDB(t *testing.T) *sql.DB {
	// clientFoundRows matches the production connection so rows-affected
	// checks behave identically under test.
	dsn := "root:@tcp(localhost:3306)/warung_test?parseTime=true&clientFoundRows=true"
	db, err := sql.Open("mysql", dsn)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	err = db.Ping()
	if err != nil {
		t.Skipf("test database not available: %v", err)
	}

	return db
}

// CleanupTestDB empties the test tables and closes the connection.
func CleanupTestDB(t *testing.T, db *sql.DB) {
	if db == nil {
		return
	}

	tables := []string{"payments", "order_items", "stock_histories", "orders", "products", "customers"}
	for _, table := range tables {
		_, err := db.Exec(fmt.Sprintf("DELETE FROM %s", table))
		if err != nil {
			t.Logf("failed to clean table %s: %v", table, err)
		}
	}

	db.Close()
}

// SetupTestTables creates the schema the repositories expect.
func SetupTestTables(t *testing.T, db *sql.DB) {
	createCustomersTable := `
	CREATE TABLE IF NOT EXISTS customers (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		merchant_id INT NOT NULL,
		code VARCHAR(30) NOT NULL,
		name VARCHAR(150) NOT NULL,
		email VARCHAR(150),
		phone VARCHAR(30),
		address VARCHAR(255),
		total_orders INT NOT NULL DEFAULT 0,
		total_spent DOUBLE NOT NULL DEFAULT 0,
		last_order_at DATETIME,
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_customer_code (merchant_id, code),
		INDEX idx_merchant (merchant_id)
	)`

	createProductsTable := `
	CREATE TABLE IF NOT EXISTS products (
		id INT NOT NULL AUTO_INCREMENT PRIMARY KEY,
		merchant_id INT NOT NULL,
		category_id INT,
		sku VARCHAR(30) NOT NULL,
		name VARCHAR(150) NOT NULL,
		description TEXT,
		price DOUBLE NOT NULL DEFAULT 0,
		cost_price DOUBLE,
		stock INT NOT NULL DEFAULT 0,
		min_stock INT NOT NULL DEFAULT 5,
		unit VARCHAR(20) NOT NULL DEFAULT 'pcs',
		is_active TINYINT(1) NOT NULL DEFAULT 1,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_product_sku (merchant_id, sku),
		INDEX idx_merchant (merchant_id)
	)`

	createOrdersTable := `
	CREATE TABLE IF NOT EXISTS orders (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		merchant_id INT NOT NULL,
		customer_id INT,
		order_code VARCHAR(30) NOT NULL,
		status VARCHAR(20) NOT NULL DEFAULT 'pending',
		payment_status VARCHAR(20) NOT NULL DEFAULT 'pending',
		subtotal DOUBLE NOT NULL DEFAULT 0,
		tax DOUBLE NOT NULL DEFAULT 0,
		discount DOUBLE NOT NULL DEFAULT 0,
		shipping_cost DOUBLE NOT NULL DEFAULT 0,
		total_price DOUBLE NOT NULL DEFAULT 0,
		paid_amount DOUBLE NOT NULL DEFAULT 0,
		change_amount DOUBLE NOT NULL DEFAULT 0,
		notes TEXT,
		ordered_at DATETIME NOT NULL,
		completed_at DATETIME,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		updated_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP ON UPDATE CURRENT_TIMESTAMP,
		UNIQUE KEY uq_order_code (merchant_id, order_code),
		INDEX idx_merchant (merchant_id),
		INDEX idx_customer (customer_id)
	)`

	createOrderItemsTable := `
	CREATE TABLE IF NOT EXISTS order_items (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_id INT UNSIGNED NOT NULL,
		product_id INT NOT NULL,
		product_name VARCHAR(150) NOT NULL,
		product_sku VARCHAR(30) NOT NULL,
		quantity INT NOT NULL,
		price DOUBLE NOT NULL,
		cost_price DOUBLE,
		subtotal DOUBLE NOT NULL,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		INDEX idx_order (order_id),
		INDEX idx_product (product_id)
	)`

	createStockHistoriesTable := `
	CREATE TABLE IF NOT EXISTS stock_histories (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		product_id INT NOT NULL,
		actor_id INT NOT NULL,
		order_id INT UNSIGNED,
		type VARCHAR(20) NOT NULL,
		quantity INT NOT NULL,
		old_stock INT NOT NULL,
		new_stock INT NOT NULL,
		reason VARCHAR(50) NOT NULL,
		notes TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		INDEX idx_product (product_id),
		INDEX idx_order (order_id)
	)`

	createPaymentsTable := `
	CREATE TABLE IF NOT EXISTS payments (
		id INT UNSIGNED NOT NULL AUTO_INCREMENT PRIMARY KEY,
		order_id INT UNSIGNED NOT NULL,
		actor_id INT NOT NULL,
		amount DOUBLE NOT NULL,
		method VARCHAR(20) NOT NULL DEFAULT 'cash',
		reference VARCHAR(100),
		notes TEXT,
		created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP,
		FOREIGN KEY (order_id) REFERENCES orders(id) ON DELETE CASCADE,
		INDEX idx_order (order_id)
	)`

	tables := []struct {
		name  string
		query string
	}{
		{"customers", createCustomersTable},
		{"products", createProductsTable},
		{"orders", createOrdersTable},
		{"order_items", createOrderItemsTable},
		{"stock_histories", createStockHistoriesTable},
		{"payments", createPaymentsTable},
	}

	for _, tbl := range tables {
		_, err := db.Exec(tbl.query)
		if err != nil {
			t.Logf("failed to create table %s: %v", tbl.name, err)
		}
	}
}
