package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strconv"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/httprate"
	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/deckbuilder-services/configs"
	"github.com/avvvet/deckbuilder-services/internal/comm"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/broker"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/db"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/deck"
	handlers "github.com/avvvet/deckbuilder-services/internal/decksvc/handlers"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/notify"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/service"
	"github.com/avvvet/deckbuilder-services/internal/decksvc/store"
	nats "github.com/avvvet/deckbuilder-services/internal/nats"
)

const SERVICE_NAME = "deck"

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	rules, err := deck.LoadRules(os.Getenv("DECK_RULES_FILE"))
	if err != nil {
		log.Fatalf("Invalid deck rules: %v", err)
	}

	// pg connection
	dbpool, err := db.Connect()
	if err != nil {
		log.Fatalf("Failed to connect to DB: %v", err)
	}
	defer db.ClosePool()
	log.Printf("pg connection established successfully")

	if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
		migrateCtx, cancelMigrate := context.WithTimeout(context.Background(), time.Minute)
		err = db.Migrate(migrateCtx, dbpool, dir)
		cancelMigrate()
		if err != nil {
			log.Fatalf("Failed to migrate DB: %v", err)
		}
	}

	catalogService := service.NewCatalogService(store.NewCardStore(dbpool))
	loadCtx, cancelLoad := context.WithTimeout(context.Background(), 30*time.Second)
	err = catalogService.Load(loadCtx)
	cancelLoad()
	if err != nil {
		log.Fatalf("Failed to load card catalog: %v", err)
	}
	log.Infof("card catalog loaded with %d cards", catalogService.Catalog().Len())

	// Connect to NATS
	n, err := nats.Connect(SERVICE_NAME + "_service_" + instanceId)
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(1)
	}
	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	// events come back through NATS so every instance reaches its own sockets
	hub := notify.NewHub()
	b := broker.NewBroker(n.Conn, instanceId, hub.SendToUser)

	sub, err := b.Subscribe(comm.DeckEventsSubject)
	if err != nil {
		log.Errorf("Error: unable to subscribe to %s %v", comm.DeckEventsSubject, err)
		os.Exit(1)
	}

	userService := service.NewUserService(store.NewUserStore(dbpool))
	deckService := service.NewDeckService(store.NewDeckStore(dbpool), catalogService, rules, b)
	collectionService := service.NewCollectionService(store.NewCollectionStore(dbpool), catalogService, b)

	// Setup router
	r := chi.NewRouter()
	c := config.CORS()

	// Middleware
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(c.Handler)

	// to protect the service api from any over requests
	rateLimitStr := os.Getenv("RATE_LIMIT")
	rateLimit, err := strconv.Atoi(rateLimitStr)
	if err != nil {
		log.Fatalf("Invalid RATE_LIMIT value: %v", err)
	}
	r.Use(httprate.LimitByIP(rateLimit, 1*time.Minute))

	// Init handlers and routes
	h := handlers.NewHandler(handlers.InitAuth(), catalogService, deckService, collectionService, userService, hub)
	h.SetRoutes(r)

	// Create server with timeout settings
	server := &http.Server{
		Addr:         ":" + os.Getenv("DECK_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Graceful shutdown
	go func() {
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("ListenAndServe(): %v", err)
		}
	}()
	log.Infof("%s service running at port %s", SERVICE_NAME, server.Addr)

	// Wait for interrupt signal to gracefully shutdown the server
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt)
	<-stop

	sub.Unsubscribe()

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
