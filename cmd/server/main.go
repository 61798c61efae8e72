package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"procurement-service/config"
	"procurement-service/internal/api"
	"procurement-service/internal/broker"
	"procurement-service/internal/catalog"
	"procurement-service/internal/checkout"
	"procurement-service/internal/narration"
	"procurement-service/internal/planner"
	"procurement-service/internal/redisclient"
	"procurement-service/internal/util"
	"procurement-service/internal/worker"

	"github.com/gin-gonic/gin"
)

func main() {

	cfg := config.Load()

	if err := util.InitLogger(cfg.Server.Env); err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	defer util.SyncLogger()

	logger := util.GetLogger()
	logger.Info("Starting procurement service")

	tp, err := util.InitTracer("procurement-service", cfg.Observ.JaegerEndpoint)
	if err != nil {
		log.Fatalf("Failed to initialize tracer: %v", err)
	}
	defer func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := tp.Shutdown(ctx); err != nil {
			log.Printf("Error shutting down tracer: %v", err)
		}
	}()

	loadCtx, loadCancel := context.WithTimeout(context.Background(), 10*time.Second)
	cat, err := catalog.Load(loadCtx, cfg.Catalog.Source, cfg.Catalog.File, cfg.Catalog.DatabaseURL)
	loadCancel()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	log.Printf("Catalog loaded: %d items from %s source", cat.Len(), cfg.Catalog.Source)

	var explainer narration.Explainer
	if cfg.Narration.OpenAIKey != "" {
		explainer = narration.NewOpenAIExplainer(
			cfg.Narration.OpenAIKey,
			cfg.Narration.OpenAIModel,
			cfg.Narration.OpenAIBaseURL,
			time.Duration(cfg.Narration.TimeoutSeconds)*time.Second,
		)
		log.Println("Live explanation generator enabled")
	} else {
		explainer = narration.NewStubExplainer()
		log.Println("OPENAI_API_KEY is missing, explanations will be simulated")
	}

	if cfg.Redis.Enabled {
		redisClient, err := redisclient.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			log.Printf("Redis unavailable, explanation caching disabled: %v", err)
		} else {
			defer redisClient.Close()
			explainer = narration.NewCachedExplainer(explainer, redisClient,
				time.Duration(cfg.Narration.CacheTTLSeconds)*time.Second)
			log.Println("Redis connected, explanation caching enabled")
		}
	}

	var voice narration.VoiceGenerator
	if cfg.Voice.APIKey != "" {
		voice = narration.NewElevenLabsVoice(
			cfg.Voice.APIKey,
			cfg.Voice.VoiceID,
			cfg.Voice.ModelID,
			cfg.Voice.BaseURL,
			time.Duration(cfg.Voice.TimeoutSeconds)*time.Second,
		)
		log.Println("Live voice generator enabled")
	} else {
		voice = narration.NewStubVoice()
		log.Println("ELEVENLABS_API_KEY is missing, voice reports will be unavailable")
	}

	eventPublisher := broker.NewEventPublisher(nil)

	workerCtx, workerCancel := context.WithCancel(context.Background())
	defer workerCancel()

	var auditWorker *worker.AuditWorker
	if cfg.Kafka.Enabled {
		producer := broker.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents)
		defer producer.Close()
		eventPublisher = broker.NewEventPublisher(producer)
		log.Println("Kafka producer initialized")

		consumer := broker.NewConsumer(cfg.Kafka.Brokers, cfg.Kafka.TopicEvents, cfg.Kafka.ConsumerGroup)
		auditWorker = worker.NewAuditWorker(consumer)
		go func() {
			if err := auditWorker.Start(workerCtx); err != nil {
				log.Printf("Audit worker error: %v", err)
			}
		}()
	}

	plannerService := planner.NewService(cat, explainer, eventPublisher)
	checkoutSimulator := checkout.NewSimulator(eventPublisher)

	if cfg.Server.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	handler := api.NewHandler(cat, plannerService, checkoutSimulator, voice)
	handler.SetupRoutes(router)

	srv := &http.Server{
		Addr:    fmt.Sprintf(":%s", cfg.Server.Port),
		Handler: router,
	}

	go func() {
		log.Printf("Starting HTTP server on port %s", cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("Server forced to shutdown: %v", err)
	}

	workerCancel()
	if auditWorker != nil {
		auditWorker.Stop()
	}

	log.Println("Server exited")
}
