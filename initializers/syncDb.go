package initializers

import (
	"log"

	"github.com/Grey-kingreys/restaurant/models"
)

func SyncDatabase() {
	DB.AutoMigrate(
		&models.User{},
		&models.Dish{},
		&models.Order{},
		&models.OrderItem{},
		&models.Payment{},
		&models.Caisse{},
		&models.Expense{},
		&models.RestaurantTable{},
		&models.TableSession{},
	)
	log.Println("Database synced successfully.")
}
