package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/api"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/chat"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/client"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/config"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/poller"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/store"
	"github.com/SHAMIR-467/DecorationStoreWithARview-sub000/utils"
)

func main() {
	config.LoadConfig()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	backend := client.NewClient(config.BackendURL, config.RequestTimeout)

	// Sessions and chat transcripts survive restarts when MongoDB is reachable
	var persister store.Persister = store.NewMemoryPersister()
	var history chat.History = chat.NewMemoryHistory()
	if err := utils.ConnectMongo(config.MongoURI); err != nil {
		log.Printf("MongoDB unavailable, keeping sessions in memory: %v", err)
	} else {
		persister = store.NewMongoPersister(utils.GetCollection(config.DBName, "sessions"))
		history = chat.NewMongoHistory(utils.GetCollection(config.DBName, "chat_messages"))
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := utils.DisconnectMongo(shutdownCtx); err != nil {
				log.Printf("MongoDB disconnect failed: %v", err)
			}
		}()
	}

	if err := utils.InitS3(); err != nil {
		log.Printf("S3 disabled, image keys are served as-is: %v", err)
	}

	handler := api.NewHandler(backend, store.NewRegistry(persister))
	handler.JWTSecret = config.JWTSecret

	gen, err := utils.NewGeminiGenerator(ctx, config.GeminiAPIKey, config.GeminiModel)
	if err != nil {
		log.Printf("Gemini disabled, chat answers list matching products only: %v", err)
		handler.Bot = chat.NewBot(backend, nil, history)
	} else {
		defer gen.Close()
		handler.Bot = chat.NewBot(backend, gen, history)
	}

	scheduler := poller.NewScheduler(ctx, config.RequestTimeout)
	if config.BackendServiceToken == "" {
		log.Println("BACKEND_SERVICE_TOKEN not set, order pollers disabled")
	} else {
		service := backend.WithToken(config.BackendServiceToken)

		var mailer poller.Mailer
		if m, err := utils.NewSendGridMailer(config.SendGridAPIKey, config.NotifyFromEmail); err != nil {
			log.Printf("Order emails disabled: %v", err)
		} else {
			mailer = m
		}

		counter := poller.NewOrderCounter(service, client.ScopeSeller)
		notifier := poller.NewNotifier(service, client.ScopeSeller, mailer, config.NotifyToEmail)
		if err := scheduler.Every("order-counter", config.OrderPollInterval, counter.Poll); err != nil {
			log.Fatalf("Failed to schedule order counter: %v", err)
		}
		if err := scheduler.Every("new-order-notifier", config.NotifyPollInterval, notifier.Poll); err != nil {
			log.Fatalf("Failed to schedule notifier: %v", err)
		}
		handler.Counter = counter
		handler.Notifier = notifier
	}
	scheduler.Start()

	server := &http.Server{
		Addr:              ":" + config.Port,
		Handler:           handler.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		fmt.Printf("Server starting on port %s...\n", config.Port)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	<-ctx.Done()
	log.Println("Shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP shutdown: %v", err)
	}
	scheduler.Stop()
}
