//go:build integration

package integration

import (
	"fmt"
	"log"
	"os"
	"testing"

	"github.com/entryx/ticketing/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var testDB *gorm.DB

func TestMain(m *testing.M) {
	dsn := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnv("TEST_DB_HOST", "localhost"),
		getEnv("TEST_DB_PORT", "5434"),
		getEnv("TEST_DB_USER", "postgres"),
		getEnv("TEST_DB_PASSWORD", "postgres"),
		getEnv("TEST_DB_NAME", "ticketing_test_db"),
	)

	var err error
	testDB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{
		Logger:         logger.Default.LogMode(logger.Warn),
		TranslateError: true,
	})
	if err != nil {
		log.Fatalf("failed to connect to test database: %v", err)
	}

	dropTables()
	if err := testDB.AutoMigrate(
		&models.Event{},
		&models.Asset{},
		&models.AssetAuction{},
		&models.Bid{},
	); err != nil {
		log.Fatalf("failed to auto-migrate test database: %v", err)
	}

	code := m.Run()

	dropTables()
	os.Exit(code)
}

func dropTables() {
	testDB.Exec("DROP TABLE IF EXISTS bids")
	testDB.Exec("DROP TABLE IF EXISTS asset_auctions")
	testDB.Exec("DROP TABLE IF EXISTS assets")
	testDB.Exec("DROP TABLE IF EXISTS events")
}

func cleanTables() {
	testDB.Exec("DELETE FROM bids")
	testDB.Exec("DELETE FROM asset_auctions")
	testDB.Exec("DELETE FROM assets")
	testDB.Exec("DELETE FROM events")
	testDB.Exec("ALTER SEQUENCE IF EXISTS events_id_seq RESTART WITH 1")
	testDB.Exec("ALTER SEQUENCE IF EXISTS assets_id_seq RESTART WITH 1")
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
