package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/go-chi/jwtauth"
	log "github.com/sirupsen/logrus"

	config "github.com/avvvet/deckbuilder-services/configs"
	"github.com/avvvet/deckbuilder-services/internal/activitysvc/broker"
	"github.com/avvvet/deckbuilder-services/internal/activitysvc/handlers"
	"github.com/avvvet/deckbuilder-services/internal/activitysvc/store"
	"github.com/avvvet/deckbuilder-services/internal/comm"
	"github.com/avvvet/deckbuilder-services/internal/db"
	natscli "github.com/avvvet/deckbuilder-services/internal/nats"
)

const SERVICE_NAME = "activity"

var instanceId string

func init() {
	instanceId = config.CreateUniqueInstance(SERVICE_NAME)
	config.Logging(SERVICE_NAME + "_service_" + instanceId)
	config.LoadEnv(SERVICE_NAME)
}

func main() {
	mdb, err := db.ConnectToDB()
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer db.Disconnect(mdb)
	log.Printf("mongo connection established successfully %s", mdb.Name())

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	err = db.CreateTTLIndexForCollection(ctx, mdb, store.CollectionName)
	cancel()
	if err != nil {
		log.Fatalf("Failed to create TTL index: %v", err)
	}

	activityStore := store.NewActivityStore(mdb, store.DefaultTTL)

	// Connect to NATS
	n, err := natscli.Connect(SERVICE_NAME + "_service_" + instanceId)
	if err != nil {
		log.Errorf("Error: unable to connect to NATS server %v", err)
		os.Exit(1)
	}
	defer n.Conn.Close()
	log.Printf("NATS connection established successfully %s", n.Url)

	b := broker.NewBroker(n.Conn, activityStore)
	sub, err := b.QueueSubscribe(comm.DeckEventsSubject, SERVICE_NAME)
	if err != nil {
		log.Errorf("Error: unable to subscribe to queue %v", err)
		os.Exit(1)
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(config.CustomLoggerMiddleware())
	r.Use(middleware.Recoverer)
	r.Use(config.CORS().Handler)

	h := handlers.NewHandler(jwtauth.New("HS256", []byte(os.Getenv("JWT_SECRET_KEY")), nil), activityStore)
	h.SetRoutes(r)

	server := &http.Server{
		Addr:         ":" + os.Getenv("ACTIVITY_SERVICE_PORT"),
		Handler:      r,
		ReadTimeout:  60 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

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

	sub.Drain()

	shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Fatalf("%s service shutdown Failed:%+v", SERVICE_NAME, err)
	}
	log.Infof("%s service gracefully stopped", SERVICE_NAME)
}
