package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/redis/go-redis/v9"

	"github.com/Anhamd/fitbazzar/internal/config"
	"github.com/Anhamd/fitbazzar/internal/database"
	"github.com/Anhamd/fitbazzar/internal/health"
	"github.com/Anhamd/fitbazzar/internal/logger"
	"github.com/Anhamd/fitbazzar/internal/middleware"
	"github.com/Anhamd/fitbazzar/internal/order"
	"github.com/Anhamd/fitbazzar/internal/product"
	"github.com/Anhamd/fitbazzar/internal/seller"
	"github.com/Anhamd/fitbazzar/internal/user"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.ValidateServer(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid server configuration: %v\n", err)
		os.Exit(1)
	}

	log := logger.New(cfg.LogLevel)
	slog.SetDefault(log)

	ctx := context.Background()
	db := mustOpenDB(ctx, cfg.Database, log)
	defer db.Close()

	if cfg.Database.AutoMigrate {
		if err := database.Migrate(db); err != nil {
			log.Error("failed to run migrations", "error", err)
			os.Exit(1)
		}
		log.Info("database schema up to date", "dialect", db.Dialect.String())
	}

	var catalogCache product.Cache
	if rdb := openRedis(ctx, cfg.Cache.RedisAddr, log); rdb != nil {
		defer rdb.Close()
		catalogCache = product.NewRedisCache(rdb, cfg.Cache.CatalogTTL)
	}

	productService := product.NewService(product.NewSQLRepository(db), catalogCache, log)
	if _, err := productService.Seed(ctx, cfg.SeedFile); err != nil {
		log.Error("error seeding products", "error", err)
	}

	userService := user.NewService(user.NewSQLRepository(db))
	tokens := user.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	orderService := order.NewService(order.NewSQLRepository(db), productService)
	sellerService := seller.NewService(seller.NewSQLRepository(db))

	app := fiber.New(fiber.Config{
		AppName:               "Fit Bazaar",
		ReadTimeout:           cfg.Server.ReadTimeout,
		WriteTimeout:          cfg.Server.WriteTimeout,
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(middleware.Logger(log))
	setupCORS(app, cfg.Server.CORSOrigins)

	health.NewHandler(db, log).RegisterPublicRoutes(app)
	product.NewHandler(productService, log).RegisterPublicRoutes(app)
	userHandler := user.NewHandler(userService, tokens, log)
	userHandler.RegisterPublicRoutes(app)
	userHandler.RegisterProtectedRoutes(app)
	order.NewHandler(orderService, log).RegisterPublicRoutes(app)
	seller.NewHandler(sellerService, log).RegisterPublicRoutes(app)

	if cfg.Server.StaticDir != "" {
		app.Static("/", cfg.Server.StaticDir)
	}

	go func() {
		printBanner(cfg.Server.Port)
		if err := app.Listen(cfg.Server.Addr()); err != nil {
			log.Error("server failed to start", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down server...")
	if err := app.ShutdownWithTimeout(cfg.Server.ShutdownTimeout); err != nil {
		log.Error("server forced to shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped gracefully")
}

func setupCORS(app *fiber.App, origins string) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowMethods: strings.Join([]string{
			fiber.MethodGet,
			fiber.MethodPost,
			fiber.MethodOptions,
		}, ","),
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
}

func mustOpenDB(ctx context.Context, cfg config.DatabaseConfig, log *slog.Logger) *database.DB {
	db, err := database.Open(ctx, cfg)
	if err != nil {
		log.Error("error connecting to the database", "driver", cfg.Driver, "error", err)
		os.Exit(1)
	}
	log.Info("connected to the database", "driver", cfg.Driver)
	return db
}

// openRedis returns nil when no address is configured or the server does not
// answer; the catalog is then read straight from the database.
func openRedis(ctx context.Context, addr string, log *slog.Logger) *redis.Client {
	if addr == "" {
		return nil
	}
	rdb := redis.NewClient(&redis.Options{Addr: addr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("redis unavailable, catalog cache disabled", "addr", addr, "error", err)
		rdb.Close()
		return nil
	}
	log.Info("catalog cache enabled", "addr", addr)
	return rdb
}

func printBanner(port string) {
	line := strings.Repeat("=", 50)
	fmt.Println("\n" + line)
	fmt.Printf("Backend Server: http://localhost:%s\n", port)
	fmt.Printf("Network (LAN): http://<Your-IP-Address>:%s\n", port)
	fmt.Printf("Frontend: http://localhost:%s\n", port)
	fmt.Println(line + "\n")
}
