package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/cache"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/catalog"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/config"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/gateway"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/httpapi"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/publisher"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/repository"
	"github.com/glaucomordente/fastfootapi-fiap-sub000/internal/service"
	"golang.org/x/sync/errgroup"
)

func main() {
	cfg := config.Load()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// Catalog: in-memory collaborator seeded for development; real product
	// CRUD lives outside this service.
	cat := catalog.NewMemoryCatalog()
	seedCatalog(cat)

	// Cart store: mongo when configured, memory with TTL sweep otherwise.
	var carts repository.CartRepository
	switch {
	case cfg.MongoURI != "":
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatalf("failed to connect to mongo: %v", err)
		}
		defer client.Disconnect(context.Background())
		carts = repository.NewMongoCartRepository(client.Database("fastfood"), cfg.CartTTL)
	default:
		memCarts := repository.NewMemoryCartRepository(cfg.CartTTL)
		defer memCarts.Close()
		carts = memCarts
	}

	// Cart cache: optional redis in front of the cart store.
	var cartCache cache.CartCache
	if cfg.RedisAddr != "" {
		rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
		defer rdb.Close()
		cartCache = cache.NewRedisCache(rdb, cfg.CacheTTL)
	}

	// Order store: postgres when configured, memory otherwise.
	var orders repository.OrderRepository
	if cfg.PostgresHost != "" {
		cred := &repository.Credentials{
			Host:              cfg.PostgresHost,
			Port:              cfg.PostgresPort,
			User:              cfg.PostgresUser,
			Password:          cfg.PostgresPassword,
			DBName:            cfg.PostgresDB,
			MigrationsDirPath: cfg.MigrationsPath,
		}
		pg, err := repository.NewPostgresOrderRepository(cred)
		if err != nil {
			log.Fatalf("failed to connect to postgres: %v", err)
		}
		defer pg.Close()
		if err := pg.RunMigrations(cred); err != nil {
			log.Fatalf("failed to run migrations: %v", err)
		}
		orders = pg
	} else {
		orders = repository.NewMemoryOrderRepository()
	}

	payments := repository.NewMemoryPaymentRepository()
	outbox := repository.NewMemoryOutboxRepository()
	tx := repository.NewMemoryTxManager()

	gw := gateway.NewBreakerGateway(gateway.NewMockGateway())

	cartService := service.NewCartService(carts, cartCache, cat)
	checkoutService := service.NewCheckoutService(carts, payments, orders, outbox, cat, gw, tx)
	checkoutService.StrictAmountCheck = cfg.StrictAmountCheck
	orderService := service.NewOrderService(orders, cat, outbox, tx)

	router := httpapi.NewRouter(
		httpapi.NewCartHandler(cartService),
		httpapi.NewPaymentHandler(checkoutService),
		httpapi.NewOrderHandler(orderService),
		cfg.RequestTimeout,
	)

	srv := &http.Server{
		Addr:         ":" + cfg.HTTPPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	g, gctx := errgroup.WithContext(ctx)

	if cfg.KafkaBrokers != "" {
		poller := publisher.NewOutboxPoller(outbox, strings.Split(cfg.KafkaBrokers, ",")...)
		g.Go(func() error {
			poller.Run(gctx)
			return nil
		})
	}

	g.Go(func() error {
		log.Printf("totem API starting on :%s", cfg.HTTPPort)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		log.Println("shutting down server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server error: %v", err)
	}
	log.Println("server exited")
}

// seedCatalog loads the development menu so the totem works out of the box.
func seedCatalog(cat *catalog.MemoryCatalog) {
	products := []catalog.Product{
		{ID: 1, Name: "X-Burger", Category: "Lanche", Price: 18.90, Stock: 50, Purchasable: true},
		{ID: 2, Name: "X-Salada", Category: "Lanche", Price: 21.50, Stock: 50, Purchasable: true},
		{ID: 3, Name: "Batata Frita", Category: "Acompanhamento", Price: 9.90, Stock: 80, Purchasable: true},
		{ID: 4, Name: "Refrigerante Lata", Category: "Bebida", Price: 6.50, Stock: 120, Purchasable: true},
		{ID: 5, Name: "Sundae", Category: "Sobremesa", Price: 8.90, Stock: 40, Purchasable: true},
	}
	for _, p := range products {
		cat.SetProduct(p)
	}
}
