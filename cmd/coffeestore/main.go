package main

import (
	"log"
	"os"

	"github.com/joho/godotenv"
	"github.com/melodybeans/coffeestore/db"
	"github.com/melodybeans/coffeestore/internal/auth"
	"github.com/melodybeans/coffeestore/internal/router"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, reading configuration from the environment")
	}

	// A missing signing secret is a configuration error, not something to
	// limp along without.
	if err := auth.InitJWTSecret(); err != nil {
		log.Fatalf("Failed to initialize token signing: %v", err)
	}

	dsn := os.Getenv("DATABASE_URL")

	if dsn == "" {
		log.Fatal("DATABASE_URL is not set")
	}

	if err := db.ConnectDatabase(dsn); err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err := db.MigrateDatabase(); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	r := router.NewRouter()

	port := os.Getenv("PORT")

	if port == "" {
		port = "8000"
		log.Println("PORT not set, defaulting to 8000")
	}

	if err := r.Run(":" + port); err != nil {
		log.Fatalf("Failed to start server: %v", err)
	}
}
