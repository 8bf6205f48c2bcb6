package main

import (
	"context"
	"database/sql"
	"os"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/segmentio/kafka-go"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	config "github.com/davicafu/eventix/internal/config"
	ticketApp "github.com/davicafu/eventix/internal/ticket/application"
	ticketDomain "github.com/davicafu/eventix/internal/ticket/domain"
	ticketHttp "github.com/davicafu/eventix/internal/ticket/infra/inbound/http"
	ticketClickhouse "github.com/davicafu/eventix/internal/ticket/infra/outbound/analytics/clickhouse"
	ticketMongo "github.com/davicafu/eventix/internal/ticket/infra/outbound/db/mongodb"
	ticketPostgres "github.com/davicafu/eventix/internal/ticket/infra/outbound/db/postgres"
	ticketQueue "github.com/davicafu/eventix/internal/ticket/infra/outbound/queue"
	ticketRest "github.com/davicafu/eventix/internal/ticket/infra/outbound/rest"
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

	// Puerto propio si no viene de entorno; el 8080 lo ocupa eventsvc.
	if os.Getenv("HTTP_PORT") == "" {
		cfg.HTTPPort = "8081"
	}

	// ---------------- DB ----------------
	var ticketRepo ticketDomain.TicketRepository
	var sequences ticketDomain.SequenceGenerator

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
		if err := ticketPostgres.InitPostgres(db); err != nil {
			log.Fatal("failed to initialize Postgres", zap.Error(err))
		}

		ticketRepo = ticketPostgres.NewTicketRepoPostgres(db)
		sequences = ticketPostgres.NewSequenceRepoPostgres(db)
		log.Info("✅ Postgres conectado", zap.String("backend", cfg.DBBackend))
	default:
		client, err := mongo.Connect(ctx, options.Client().ApplyURI(cfg.MongoURI))
		if err != nil {
			log.Fatal("failed to connect to MongoDB", zap.Error(err))
		}
		defer client.Disconnect(ctx)

		ticketRepo, err = ticketMongo.NewTicketRepoMongoDB(ctx, client, cfg.MongoDB)
		if err != nil {
			log.Fatal("failed to initialize MongoDB", zap.Error(err))
		}
		sequences = ticketMongo.NewSequenceRepoMongoDB(client, cfg.MongoDB)
		log.Info("✅ MongoDB conectado", zap.String("db", cfg.MongoDB))
	}

	// ------------ Notificaciones -----------
	var notifier ticketDomain.NotificationPublisher

	switch cfg.NotifyBackend {
	case "kafka":
		log.Info("🚀 Usando Kafka para notificaciones")
		writer := kafka.NewWriter(kafka.WriterConfig{
			Brokers: cfg.KafkaBrokers,
			Topic:   cfg.KafkaTopic,
		})
		defer writer.Close()

		notifier = ticketQueue.NewKafkaPublisher(writer, log)
	default:
		log.Info("🚀 Usando RabbitMQ para notificaciones")
		rabbit, err := ticketQueue.NewRabbitPublisher(cfg.RabbitURL, cfg.TicketQueue, log)
		if err != nil {
			log.Fatal("failed to connect to RabbitMQ", zap.Error(err))
		}
		defer rabbit.Close()

		notifier = rabbit
	}

	// -------------- Analítica --------------
	var analytics ticketDomain.TicketAnalytics
	if cfg.ClickHouseAddr != "" {
		repo, err := ticketClickhouse.NewTicketLogRepo(cfg.ClickHouseAddr, cfg.ClickHouseDB)
		if err != nil {
			log.Warn("⚠️ ClickHouse no disponible, analítica deshabilitada:", zap.Error(err))
		} else {
			analytics = repo
			log.Info("✅ ClickHouse conectado, analítica habilitada")
		}
	}

	// ------------ Colaboradores ------------
	eventFinder := ticketRest.NewEventClient(cfg.EventServiceURL)

	// --------------- Servicio --------------
	ticketService := ticketApp.NewTicketService(ticketRepo, sequences, eventFinder, notifier, analytics, log)

	// ---------------- HTTP ----------------
	ticketHandler := ticketHttp.NewTicketHandler(ticketService)
	router := gin.Default()
	ticketHttp.RegisterTicketRoutes(router, ticketHandler)

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})

	log.Info("🚀 Ticket service running",
		zap.String("url", "http://localhost:"+cfg.HTTPPort),
	)
	if err := router.Run(":" + cfg.HTTPPort); err != nil {
		log.Fatal("failed to start server", zap.Error(err))
	}
}
