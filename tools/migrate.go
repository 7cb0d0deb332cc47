package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"parcel-delivery/config"
	"parcel-delivery/database"
)

func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage:")
		fmt.Println("  go run tools/migrate.go migrate           - Create or update local tables and indexes")
		fmt.Println("  go run tools/migrate.go status            - Show which local tables exist")
		fmt.Println("  go run tools/migrate.go prune-logs <days> - Delete request logs older than <days>")
		return
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Println("⚠️ .env not loaded, using process environment:", err)
	}

	db, err := database.Open(cfg.Database)
	if err != nil {
		fmt.Printf("❌ Could not connect: %v\n", err)
		os.Exit(1)
	}

	switch command := os.Args[1]; command {
	case "migrate":
		fmt.Println("🚀 Running database migrations...")
		if err := database.Migrate(db); err != nil {
			fmt.Printf("❌ Migration failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("✅ Migration completed successfully!")

	case "status":
		for _, model := range database.Models() {
			mark := "❌"
			if db.Migrator().HasTable(model) {
				mark = "✅"
			}
			fmt.Printf("%s %T\n", mark, model)
		}

	case "prune-logs":
		if len(os.Args) < 3 {
			fmt.Println("Please provide the retention in days")
			fmt.Println("Example: go run tools/migrate.go prune-logs 30")
			return
		}
		days, err := strconv.Atoi(os.Args[2])
		if err != nil || days <= 0 {
			fmt.Printf("❌ Invalid number of days: %s\n", os.Args[2])
			os.Exit(1)
		}

		n, err := database.PruneLogs(db, time.Now().AddDate(0, 0, -days))
		if err != nil {
			fmt.Printf("❌ Prune failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("🧹 Deleted %d log rows\n", n)

	default:
		fmt.Printf("Unknown command: %s\n", command)
		fmt.Println("Available commands: migrate, status, prune-logs")
	}
}
