package main

import (
	"database/sql"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"
	"github.com/joho/godotenv"
	"go.uber.org/zap"

	"github.com/noamani/perfume-shop-backend/internal/address"
	"github.com/noamani/perfume-shop-backend/internal/authgate"
	"github.com/noamani/perfume-shop-backend/internal/cart"
	"github.com/noamani/perfume-shop-backend/internal/category"
	"github.com/noamani/perfume-shop-backend/internal/favorite"
	"github.com/noamani/perfume-shop-backend/internal/config"
	"github.com/noamani/perfume-shop-backend/internal/driver"
	"github.com/noamani/perfume-shop-backend/internal/logger"
	"github.com/noamani/perfume-shop-backend/internal/order"
	"github.com/noamani/perfume-shop-backend/internal/product"
	"github.com/noamani/perfume-shop-backend/internal/session"
	"github.com/noamani/perfume-shop-backend/internal/user"
)

func main() {
	_ = godotenv.Load()

	log, err := logger.New()
	if err != nil {
		panic(err)
	}
	defer log.Sync()

	cfg := config.Load()

	db, err := driver.ConnectSQL(cfg.DatabaseURL)
	if err != nil {
		log.Fatal("postgres connection failed", zap.Error(err))
	}
	defer db.Close()

	redisClient, err := driver.ConnectRedis(cfg.RedisAddr, cfg.RedisPass, cfg.RedisDB)
	if err != nil {
		log.Fatal("redis connection failed", zap.Error(err))
	}
	defer redisClient.Close()

	bootstrapSchema(db, log)

	app := fiber.New()
	setupCORS(app)
	app.Use(logger.RequestLogger(log))
	app.Use(session.Middleware())

	// repositories and services
	sessionStore := session.NewRedisStore(redisClient)

	userRepo := user.NewPostgresRepository(db)
	userService := user.NewService(userRepo)

	productRepo := product.NewPostgresRepository(db)
	productService := product.NewService(productRepo)
	productHandler := product.NewHandler(productService)
	categoryHandler := category.NewHandler(category.NewService(productService))
	seedCatalog(productService, log)
	seedAdmin(userService, log)

	cartRepo := cart.NewPostgresRepository(db)
	cartService := cart.NewService(cartRepo)

	// the gate replays a deferred add after login; the user handler invokes
	// it through the login hook
	gateService := authgate.NewService(sessionStore, cartService, log)
	userHandler := user.NewHandler(userService, gateService)

	addressService := address.NewService(address.NewPostgresRepository(db))
	addressHandler := address.NewHandler(addressService)

	favoriteService := favorite.NewService(favorite.NewPostgresRepository(db), productService)
	favoriteHandler := favorite.NewHandler(favoriteService)

	orderRepo := order.NewPostgresRepository(db)
	orderService := order.NewService(orderRepo, cartService, cfg.ShippingFlatRate, cfg.FreeShippingThreshold)
	orderHandler := order.NewHandler(orderService, addressService)

	cartHandler := cart.NewHandler(cartService, gateService, session.NewCountryResolver(sessionStore))
	sessionHandler := session.NewHandler(sessionStore)

	// public routes sit in front of the JWT middleware
	userHandler.RegisterPublicRoutes(app)
	productHandler.RegisterPublicRoutes(app)
	categoryHandler.RegisterPublicRoutes(app)
	sessionHandler.RegisterPublicRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte(cfg.JWTSecret),
		// an anonymous add-to-cart must reach the handler so the auth gate
		// can park the item; every other protected route requires a token
		Filter: func(c *fiber.Ctx) bool {
			return c.Method() == fiber.MethodPost &&
				strings.HasPrefix(c.Path(), "/api/v1/cart/items") &&
				c.Get(fiber.HeaderAuthorization) == ""
		},
	}))

	userHandler.RegisterProtectedRoutes(app)
	cartHandler.RegisterProtectedRoutes(app)
	orderHandler.RegisterProtectedRoutes(app)
	addressHandler.RegisterProtectedRoutes(app)
	favoriteHandler.RegisterProtectedRoutes(app)
	productHandler.RegisterAdminRoutes(app)

	log.Info("server listening", zap.String("addr", cfg.Addr))
	if err := app.Listen(cfg.Addr); err != nil {
		log.Fatal("server stopped", zap.Error(err))
	}
}

func setupCORS(app *fiber.App) {
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowMethods: "GET,POST,HEAD,PUT,DELETE,PATCH",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Session-ID",
	}))
}

func bootstrapSchema(db *sql.DB, log *zap.Logger) {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS users (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			email TEXT NOT NULL UNIQUE,
			password TEXT,
			auth_provider TEXT NOT NULL DEFAULT 'local',
			google_uid TEXT,
			role TEXT NOT NULL DEFAULT 'user',
			profile_image TEXT,
			cart JSONB NOT NULL DEFAULT '[]',
			wishlist INTEGER[] NOT NULL DEFAULT '{}',
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS products (
			id SERIAL PRIMARY KEY,
			name TEXT NOT NULL,
			description TEXT NOT NULL,
			price NUMERIC NOT NULL DEFAULT 0,
			image TEXT NOT NULL,
			image_hover TEXT,
			category TEXT,
			stock INT NOT NULL DEFAULT 0,
			reviews INT NOT NULL DEFAULT 0,
			assigned_pages TEXT[] NOT NULL DEFAULT '{}',
			created_at TEXT,
			updated_at TEXT
		)`,
		`CREATE TABLE IF NOT EXISTS orders (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			items JSONB NOT NULL DEFAULT '[]',
			quantity INT NOT NULL DEFAULT 0,
			subtotal NUMERIC NOT NULL DEFAULT 0,
			shipping NUMERIC NOT NULL DEFAULT 0,
			total NUMERIC NOT NULL DEFAULT 0,
			shipping_address TEXT,
			status TEXT NOT NULL DEFAULT '',
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS addresses (
			id SERIAL PRIMARY KEY,
			user_id INT NOT NULL,
			label TEXT,
			recipient TEXT NOT NULL,
			line1 TEXT NOT NULL,
			line2 TEXT,
			city TEXT NOT NULL,
			postal_code TEXT NOT NULL,
			phone TEXT,
			created_at TEXT NOT NULL DEFAULT '',
			updated_at TEXT NOT NULL DEFAULT ''
		)`,
		// ensure per-user columns exist in case the users table pre-dated them
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS cart JSONB NOT NULL DEFAULT '[]'`,
		`ALTER TABLE users ADD COLUMN IF NOT EXISTS wishlist INTEGER[] NOT NULL DEFAULT '{}'`,
		`ALTER TABLE orders ADD COLUMN IF NOT EXISTS shipping_address TEXT`,
	}
	for _, stmt := range stmts {
		if _, err := db.Exec(stmt); err != nil {
			log.Fatal("schema bootstrap failed", zap.Error(err))
		}
	}
}

// seedCatalog inserts the sample perfumes when the catalog is empty.
func seedCatalog(service *product.Service, log *zap.Logger) {
	if len(service.List()) > 0 {
		return
	}
	for _, p := range product.SampleCatalog() {
		if _, err := service.Create(p); err != nil {
			log.Warn("could not seed product", zap.String("name", p.Name), zap.Error(err))
		}
	}
	log.Info("seeded sample catalog")
}

// seedAdmin provisions the admin console account from ADMIN_EMAIL and
// ADMIN_PASSWORD when both are set and the account does not exist yet.
func seedAdmin(service *user.Service, log *zap.Logger) {
	email := os.Getenv("ADMIN_EMAIL")
	password := os.Getenv("ADMIN_PASSWORD")
	if email == "" || password == "" {
		return
	}

	if _, err := service.Register(user.User{
		Name:     "Administrator",
		Email:    email,
		Password: password,
		Role:     user.RoleAdmin,
	}); err != nil {
		if err != user.ErrEmailExists {
			log.Warn("could not seed admin user", zap.Error(err))
		}
		return
	}
	log.Info("seeded admin user", zap.String("email", email))
}
