package models

import (
	"log"

	"bitbucket.org/mmdatafocus/stockroom_backend/config"
)

func MigrateTable() {
	db := config.GetDB()

	err := db.AutoMigrate(
		&Item{},
		&Purchase{}, &PurchaseLine{},
		&DayEndReport{}, &DayEndLine{},
		&StockAdjustment{},
		&User{},
	)
	if err != nil {
		log.Fatal(err)
	}
}
