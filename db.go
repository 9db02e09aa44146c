package main

import (
	"log"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"finanzas/models"
	"finanzas/pkg/ledger"
)

func openDB(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// autoMigrate migrates models individually so a failure on one doesn't block
// the others; permission errors are logged and ignored.
func autoMigrate(db *gorm.DB) {
	if err := db.AutoMigrate(&models.User{}); err != nil {
		log.Printf("migration warning (users): %v", err)
	}
	if err := db.AutoMigrate(&models.Account{}); err != nil {
		log.Printf("migration warning (accounts): %v", err)
	}
	if err := db.AutoMigrate(&models.Category{}); err != nil {
		log.Printf("migration warning (categories): %v", err)
	}
	if err := db.AutoMigrate(&models.TransactionType{}); err != nil {
		log.Printf("migration warning (transaction_types): %v", err)
	}
	if err := db.AutoMigrate(&models.Transaction{}); err != nil {
		log.Printf("migration warning (transactions): %v", err)
	}
}

// seedDB ensures the two base transaction types exist. They are reference
// data: seeded once, never edited through the API.
func seedDB(db *gorm.DB) {
	for _, description := range []string{ledger.DescriptionIncome, ledger.DescriptionExpense} {
		var cnt int64
		db.Model(&models.TransactionType{}).Where("description = ?", description).Count(&cnt)
		if cnt == 0 {
			if err := db.Create(&models.TransactionType{Description: description}).Error; err != nil {
				log.Printf("failed to seed transaction type %s: %v", description, err)
			}
		}
	}
}
