// Command sync runs one full Clover sync from the terminal and prints the
// report, for cron jobs and operator use.
package main

import (
	"context"
	"log"
	"time"

	"go-resell-sync/internal/clover"
	"go-resell-sync/internal/model"
	"go-resell-sync/internal/repository"
	"go-resell-sync/internal/service"
	"go-resell-sync/pkg/database"

	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Env
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found, relying on system env")
	}

	// 2. Setup Database
	db := database.ConnectDB()
	db.AutoMigrate(&model.Product{}, &model.Adjustment{}, &model.SyncSettings{})

	rdb := database.ConnectRedis()

	pos := clover.NewClientFromEnv()
	if !pos.Connected() {
		log.Fatal("❌ Clover credentials not set (CLOVER_MERCHANT_ID / CLOVER_API_TOKEN)")
	}

	// 3. Wire the sync service (no websocket hub, no hook metrics needed here)
	productRepo := repository.NewProductRepo(db)
	adjustmentRepo := repository.NewAdjustmentRepo(db)
	settingsRepo := repository.NewSyncSettingsRepo(db)
	syncLock := repository.NewSyncLock(rdb)

	syncService := service.NewSyncService(productRepo, adjustmentRepo, settingsRepo, pos, syncLock, nil, service.NewSyncMetrics())

	// 4. Run
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	start := time.Now()
	report, err := syncService.FullSync(ctx)
	if err != nil {
		log.Fatalf("❌ Full sync failed: %v", err)
	}

	log.Printf("✅ Full sync finished in %s", time.Since(start).Round(time.Millisecond))
	log.Printf("   total=%d matched=%d created=%d updated=%d skipped=%d errors=%d",
		report.Total, report.Matched, report.Created, report.Updated, report.Skipped, len(report.Errors))
	for _, e := range report.Errors {
		log.Printf("   ⚠ %s", e)
	}
}
