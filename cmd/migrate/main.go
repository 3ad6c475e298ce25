package main

import (
	"context"
	"database/sql"
	"flag"
	"fmt"
	"log"
	"os"

	"chatboard/config"
	"chatboard/migrations"
	"chatboard/pkg/database"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"
)

const usage = `
Chatboard - Database CLI Tool

Usage:
  migrate [command] [flags]

Commands:
  up          Apply all pending migrations
  down        Roll back the most recent migration
  status      Show database connection and migration status
  seed-dev    Seed with development/test data
  reset       Roll back every migration (DANGEROUS)

Flags:
  -seed-users int      Number of demo users for seed-dev (default 3)
  -seed-pass string    Password shared by demo users (default "Test@123!")

Examples:
  go run ./cmd/migrate up
  go run ./cmd/migrate status
  go run ./cmd/migrate seed-dev
`

func main() {
	seedUsers := flag.Int("seed-users", 3, "Number of demo users for seed-dev")
	seedPass := flag.String("seed-pass", "Test@123!", "Password shared by demo users")

	flag.Usage = func() {
		fmt.Print(usage)
	}
	flag.Parse()

	if flag.NArg() < 1 {
		flag.Usage()
		os.Exit(1)
	}

	command := flag.Arg(0)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Invalid configuration: %v", err)
	}

	ctx := context.Background()
	db, err := database.Connect(ctx, cfg)
	if err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	defer database.Close(db)

	goose.SetBaseFS(migrations.Migrations)
	if err := goose.SetDialect("postgres"); err != nil {
		log.Fatalf("❌ %v", err)
	}

	switch command {
	case "up":
		runMigrationsUp(ctx, db)
	case "down":
		runMigrationsDown(ctx, db)
	case "status":
		showStatus(ctx, db)
	case "seed-dev":
		seedCfg := database.DefaultSeedConfig()
		seedCfg.UserCount = *seedUsers
		seedCfg.Password = *seedPass
		seedCfg.BcryptCost = cfg.BcryptCost
		runSeedDevelopment(ctx, db, seedCfg)
	case "reset":
		runReset(ctx, db)
	default:
		fmt.Printf("Unknown command: %s\n", command)
		flag.Usage()
		os.Exit(1)
	}
}

func runMigrationsUp(ctx context.Context, db *gorm.DB) {
	log.Println("🚀 Running migrations UP...")

	sqlDB := mustSQL(db)
	if err := goose.UpContext(ctx, sqlDB, "."); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}

	log.Println("✅ Migrations completed successfully!")
}

func runMigrationsDown(ctx context.Context, db *gorm.DB) {
	log.Println("⬇️  Rolling back last migration...")

	if err := goose.DownContext(ctx, mustSQL(db), "."); err != nil {
		log.Fatalf("❌ Rollback failed: %v", err)
	}

	log.Println("✅ Rollback completed successfully!")
}

func showStatus(ctx context.Context, db *gorm.DB) {
	log.Println("🔍 Checking database status...")

	if err := database.HealthCheck(ctx, db); err != nil {
		log.Fatalf("❌ Database connection failed: %v", err)
	}
	log.Println("✅ Database connection: OK")

	for _, table := range []string{"users", "messages"} {
		if !db.Migrator().HasTable(table) {
			log.Printf("❌ Table %-10s does not exist", table)
			continue
		}
		var count int64
		if err := db.WithContext(ctx).Table(table).Count(&count).Error; err != nil {
			log.Printf("⚠️  Error counting table %s: %v", table, err)
			continue
		}
		log.Printf("✅ Table %-10s exists (%d rows)", table, count)
	}

	if err := goose.StatusContext(ctx, mustSQL(db), "."); err != nil {
		log.Printf("⚠️  Migration status unavailable: %v", err)
	}
}

func runSeedDevelopment(ctx context.Context, db *gorm.DB, cfg *database.SeedConfig) {
	log.Println("🌱 Seeding database (development mode)...")

	result, err := database.SeedDevelopment(ctx, db, cfg)
	if err != nil {
		log.Fatalf("❌ Seeding failed: %v", err)
	}

	log.Println("📊 Seed Summary:")
	log.Printf("   - Users: %d", len(result.Users))
	log.Printf("   - Messages: %d", len(result.Messages))
	log.Println("✅ Development seeding completed!")
}

func runReset(ctx context.Context, db *gorm.DB) {
	log.Println("⚠️  WARNING: This will roll back every migration and drop all data!")

	if err := goose.ResetContext(ctx, mustSQL(db), "."); err != nil {
		log.Fatalf("❌ Reset failed: %v", err)
	}

	log.Println("✅ Database reset completed!")
}

func mustSQL(db *gorm.DB) *sql.DB {
	sqlDB, err := db.DB()
	if err != nil {
		log.Fatalf("❌ Failed to get database handle: %v", err)
	}
	return sqlDB
}
