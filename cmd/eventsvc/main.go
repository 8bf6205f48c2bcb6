package main

import (
	"context"
	"database/sql"

	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/joho/godotenv"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	config "github.com/davicafu/eventix/internal/config"
	eventApp "github.com/davicafu/eventix/internal/event/application"
	eventDomain "github.com/davicafu/eventix/internal/event/domain"
	eventHttp "github.com/davicafu/eventix/internal/event/infra/inbound/http"
	eventCache "github.com/davicafu/eventix/internal/event/infra/outbound/cache"
	eventMongo "github.com/davicafu/eventix/internal/event/infra/outbound/db/mongodb"
	eventPostgres "github.com/davicafu/eventix/internal/event/infra/outbound/db/postgres"
	eventRest "github.com/davicafu/eventix/internal/event/infra/outbound/rest"
	"github.com/davicafu/eventix/pkg/logger"

	_ "github.com/jackc/pgx/v5/stdlib"
)

// ---------------- Main ----------------
func main() {
	_ = godotenv.Load() // .env opcional en desarrollo

	logger.Init()          // inicializa zap
	log := logger.Logger() // obtiene logger estructurado
	defer log.Sync()       // flush buffers al salir

	ctx := context.Background()
	cfg := config.LoadConfig()

	// ---------------- DB ----------------
	var eventRepo eventDomain.EventRepository

	switch cfg.DBBackend {
	case "postgres":
		db, err := sql.Open("pgx", cfg.PostgresDSN)
		if err != nil {
			log.Fatal("failed to open Postgres", zap.Error(err))
		}
		defer db.Close()

		if err := db.PingContext(ctx); err != nil {
			log.Fatal("failed to ping Postgres", zap.Error(err))
		}
		if err := eventPostgres.InitPostgres(db); err != nil {
			log.Fatal("failed to initialize Postgres", zap.Error(err))
		}

		eventRepo = eventPostgres.NewEventRepoPostgres(db)
		log.Info("✅ Postgres conectado", zap.String("backend", cfg.DBBackend))
	default:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		defer client.Disconnect(ctx)

		eventRepo, err = eventMongo.NewEventRepoMongoDB(ctx, client, cfg.MongoDB)
		if err != nil {
			log.Fatal("failed to initialize MongoDB", zap.Error(err))
		}
		log.Info("✅ MongoDB conectado", zap.String("db", cfg.MongoDB))
	}

	// ---------------- Cache ----------------
	var addressCache eventDomain.AddressCache
	rdb := redis.NewClient(&redis.Options{Addr: cfg.RedisAddr})
	if err := rdb.Ping(ctx).Err(); err != nil {
		log.Warn("⚠️ Redis no disponible, cache en memoria:", zap.Error(err))
		addressCache = eventCache.NewInMemoryCache(cfg.CacheTTL, 3*cfg.CacheTTL)
	} else {
		addressCache = eventCache.NewRedisCache(rdb, cfg.CacheTTL)
		log.Info("✅ Redis conectado, cache habilitado")
	}

	// ------------ Colaboradores ------------
	viaCep := eventRest.NewViaCepClient(cfg.ViaCepURL)
	ticketChecker := eventRest.NewTicketClient(cfg.TicketServiceURL)

	// --------------- Servicio --------------
	eventService := eventApp.NewEventService(eventRepo, viaCep, addressCache, ticketChecker, log)

	// ---------------- HTTP ----------------
	eventHandler := eventHttp.NewEventHandler(eventService)
	router := gin.Default()
	eventHttp.RegisterEventRoutes(router, eventHandler)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	log.Info("🚀 Event service running",
		zap.String("url", "http://localhost:"+cfg.HTTPPort),
	)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
