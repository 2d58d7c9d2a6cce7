package cmd

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"

	"inventory-vault/core/archive"
	"inventory-vault/core/collection"
	"inventory-vault/core/config"
	"inventory-vault/core/database"
	"inventory-vault/core/loader"
	"inventory-vault/core/logger"
	"inventory-vault/core/middleware/auth"
	"inventory-vault/core/middleware/rayid"
	"inventory-vault/core/storage"

	"inventory-vault/feature/backup"
	"inventory-vault/feature/restore"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/swagger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"

	_ "inventory-vault/docs/swagger"
)

// @title Inventory Vault API
// @version 1.0
// @description API for snapshotting and restoring inventory collections.
// @host localhost:8080
// @BasePath /

// startCmd represents the start command
var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Start the inventory vault server",
	Long:  `Starts the HTTP server, initializes all enabled features and runs the backup scheduler.`,
	Run: func(cmd *cobra.Command, args []string) {
		// 1. Load Configuration
		cfg, err := config.LoadConfig(".")
		if err != nil {
			log.Fatalf("Failed to load configuration: %v", err)
		}

		// 2. Initialize Logger
		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()
		zap.ReplaceGlobals(logg)

		// 3. Connect to Database (Optional)
		// Listing, previews and verification still work without it; creating
		// snapshots and restoring do not.
		var db *gorm.DB
		if conn, err := database.Connect(cfg.Database); err != nil {
			logg.Warn("Optional database connection failed", zap.Error(err))
		} else {
			db = conn
			logg.Info("Connected to inventory database", zap.String("database", cfg.Database.Name))
		}

		// 4. Initialize Archive Store
		if !cfg.Archive.IsValidBackend() {
			logg.Fatal("Invalid archive backend", zap.String("backend", cfg.Archive.Backend))
		}
		var client storage.Client
		if cfg.Archive.Backend == archive.BackendS3 {
			if client, err = storage.NewClient(cfg.Storage); err != nil {
				logg.Fatal("Failed to create storage client", zap.Error(err))
			}
		}
		store, err := archive.NewStore(cfg.Archive, client, cfg.Storage.Bucket)
		if err != nil {
			logg.Fatal("Failed to create archive store", zap.Error(err))
		}

		collections, err := collection.ParseList(cfg.Archive.Collections)
		if err != nil {
			logg.Fatal("Invalid collections config", zap.Error(err))
		}

		// 5. Initialize Fiber App
		app := fiber.New(fiber.Config{
			DisableStartupMessage: true, // We will log our own startup message
		})

		// 6. Initialize Feature Loader
		mgr := loader.NewManager()

		backupFeature := backup.NewFeature(cfg.Archive, store, db, collections, logg)
		mgr.Register(backupFeature)
		mgr.Register(restore.NewFeature(cfg.Archive, store, db, collections, logg))

		// Middleware Registration
		// 1. RayID (Must be first to trace everything)
		app.Use(rayid.New())

		// 2. Logging Middleware (Custom to use Zap + RayID)
		app.Use(func(c *fiber.Ctx) error {
			l := logger.WithRayID(logg, c)
			l.Info("Request started",
				zap.String("method", c.Method()),
				zap.String("path", c.Path()),
				zap.String("ip", c.IP()),
			)
			err := c.Next()
			if err != nil {
				l.Error("Request error", zap.Error(err))
			}
			return err
		})

		// 2.5 Swagger Documentation (Public)
		app.Get("/swagger/*", swagger.HandlerDefault)

		// 3. Auth (Protect API)
		app.Use(auth.New(auth.Config{ApiKey: cfg.Server.ApiKey}))

		// 7. Load Features
		if err := mgr.LoadAll(app); err != nil {
			logg.Fatal("Failed to load features", zap.Error(err))
		}

		// 8. Backup Scheduler
		schedCtx, stopScheduler := context.WithCancel(context.Background())
		defer stopScheduler()
		if cfg.Archive.SchedulerEnabled && db != nil {
			go backup.NewScheduler(backupFeature.Service(), logg).Run(schedCtx)
		} else {
			logg.Info("Backup scheduler disabled")
		}

		// 9. Start Server
		go func() {
			logg.Info("Starting server", zap.String("port", cfg.Server.Port))
			if err := app.Listen(":" + cfg.Server.Port); err != nil {
				logg.Fatal("Server failed to start", zap.Error(err))
			}
		}()

		// 10. Graceful Shutdown
		c := make(chan os.Signal, 1)
		signal.Notify(c, os.Interrupt, syscall.SIGTERM)
		<-c
		logg.Info("Shutting down server...")
		stopScheduler()
		_ = app.Shutdown()
	},
}

func init() {
	RootCmd.AddCommand(startCmd)
}
