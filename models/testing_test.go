package models

import (
	"testing"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to access sql.DB: %v", err)
	}
	// one connection so the in-memory database is shared
	sqlDB.SetMaxOpenConns(1)

	err = db.AutoMigrate(
		&User{}, &Dish{}, &Order{}, &OrderItem{},
		&Payment{}, &Caisse{}, &Expense{},
		&RestaurantTable{}, &TableSession{},
	)
	if err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return db
}

func createTestTable(t *testing.T, db *gorm.DB, login string) User {
	t.Helper()
	user := User{Login: login, Password: "x", Role: RoleTable, Active: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create table user: %v", err)
	}
	return user
}

func createTestServer(t *testing.T, db *gorm.DB, login string) User {
	t.Helper()
	user := User{Login: login, Password: "x", Role: RoleServer, Active: true}
	if err := db.Create(&user).Error; err != nil {
		t.Fatalf("failed to create server user: %v", err)
	}
	return user
}
