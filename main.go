package main

import (
	"fmt"
	"log"
	"os"
)

func main() {
	cfg, err := loadConfig()
	if err != nil {
		log.Fatal("invalid configuration:", err)
	}
	if cfg.DSN == "" {
		log.Fatal("DB_DSN is not set. This project requires a Postgres DSN in DB_DSN.")
	}

	db, err := openDB(cfg.DSN)
	if err != nil {
		log.Fatal("failed to connect postgres database:", err)
	}
	if cfg.AutoMigrate {
		autoMigrate(db)
	}
	seedDB(db)

	// Lightweight migrate command: `./finanzas migrate` runs AutoMigrate and
	// seeding then exits. Useful for CI or manual DB setup.
	if len(os.Args) > 1 && os.Args[1] == "migrate" {
		fmt.Println("migration and seeding completed")
		return
	}

	srv := NewServer(db, []byte(cfg.JWTSecret))
	if err := srv.Routes().Run(cfg.ListenAddr); err != nil {
		log.Fatal(err)
	}
}
