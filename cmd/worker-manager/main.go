// cmd/worker-manager/main.go
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	_ "net/http/pprof"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"padel-notifier/internal/common/camunda"
	"padel-notifier/internal/common/config"
	"padel-notifier/internal/common/database"
	"padel-notifier/internal/common/logger"
	"padel-notifier/internal/common/observability"
	"padel-notifier/internal/delivery"
	"padel-notifier/internal/fanout"
	"padel-notifier/internal/store"

	ma "padel-notifier/internal/workers/notification/match-activity"
	mc "padel-notifier/internal/workers/notification/match-created"
)

// retryWithBackoff attempts to execute a function with exponential backoff
func retryWithBackoff(operation func() error, maxRetries int, initialDelay time.Duration, log *zap.Logger, operationName string) error {
	var err error
	delay := initialDelay

	for i := 0; i < maxRetries; i++ {
		err = operation()
		if err == nil {
			return nil
		}

		if i < maxRetries-1 {
			log.Warn(fmt.Sprintf("%s failed, retrying...", operationName),
				zap.Error(err),
				zap.Int("attempt", i+1),
				zap.Int("maxRetries", maxRetries),
				zap.Duration("nextRetryIn", delay),
			)
			time.Sleep(delay)
			delay *= 2 // Exponential backoff
		}
	}

	return fmt.Errorf("%s failed after %d attempts: %w", operationName, maxRetries, err)
}

func main() {
	zapLog := logger.New("info", "console")
	defer zapLog.Sync()

	// Wrap zap logger with our logger interface
	log := logger.NewZapAdapter(zapLog)

	zapLog.Info("Starting worker manager...")

	cfg, err := config.Load()
	if err != nil {
		zapLog.Fatal("config load failed", zap.Error(err))
	}

	obs := observability.New("worker-manager")
	defer obs.Shutdown()

	ctx := context.Background()

	// --- Init Zeebe Client with retry ---
	var zeebe *camunda.Client
	err = retryWithBackoff(func() error {
		var err error
		zeebe, err = camunda.NewClient(cfg.Camunda.BrokerAddress)
		return err
	}, 10, 2*time.Second, zapLog, "Zeebe client initialization")

	if err != nil {
		zapLog.Fatal("zeebe client failed after retries", zap.Error(err))
	}
	zapLog.Info("Zeebe client connected successfully")

	// --- Init PostgreSQL with retry ---
	var pg *database.PostgresClient
	err = retryWithBackoff(func() error {
		var err error
		pg, err = database.NewPostgres(cfg.Database.Postgres)
		if err != nil {
			return err
		}
		// Test the connection with context
		return pg.Ping(ctx)
	}, 15, 2*time.Second, zapLog, "PostgreSQL connection")

	if err != nil {
		zapLog.Fatal("postgres failed after retries", zap.Error(err))
	}
	defer pg.Close()
	zapLog.Info("PostgreSQL connected successfully")

	matches := store.NewPostgresStore(pg.DB)

	// --- Init Redis with retry (dedup guard only) ---
	var dedup *fanout.DedupGuard
	if cfg.Notifications.Dedup.Enabled {
		var redis *database.RedisClient
		err = retryWithBackoff(func() error {
			var err error
			redis, err = database.NewRedis(cfg.Database.Redis)
			if err != nil {
				return err
			}
			// Test the connection with context
			return redis.Ping(ctx)
		}, 10, 2*time.Second, zapLog, "Redis connection")

		if err != nil {
			zapLog.Fatal("redis failed after retries", zap.Error(err))
		}
		defer redis.Close()
		zapLog.Info("Redis connected successfully")

		dedup = fanout.NewDedupGuard(
			redis.Client,
			time.Duration(cfg.Notifications.Dedup.TTLHours)*time.Hour,
		)
	} else {
		zapLog.Info("Trigger dedup disabled, skipping Redis")
	}

	// --- Init Delivery Channels ---
	var publishers []delivery.Publisher
	if cfg.Notifications.Delivery.Push.Enabled {
		push, err := delivery.NewPushPublisher(
			ctx,
			cfg.Notifications.Delivery.AWS.Region,
			cfg.Notifications.Delivery.Push.TopicARN,
		)
		if err != nil {
			zapLog.Fatal("push publisher failed", zap.Error(err))
		}
		publishers = append(publishers, push)
		zapLog.Info("Push delivery channel enabled")
	}

	if cfg.Notifications.Delivery.Email.Enabled {
		email, err := delivery.NewEmailPublisher(
			ctx,
			cfg.Notifications.Delivery.AWS.Region,
			cfg.Notifications.Delivery.Email.FromEmail,
			matches,
		)
		if err != nil {
			zapLog.Fatal("email publisher failed", zap.Error(err))
		}
		publishers = append(publishers, email)
		zapLog.Info("Email delivery channel enabled")
	}

	coordinator := fanout.NewCoordinator(
		matches,
		fanout.NewResolver(matches, log),
		fanout.NewComposer(cfg.Notifications.LinkBase),
		dedup,
		publishers,
		log,
	)

	// --- Register Workers ---
	var workers []*camunda.CamundaWorker

	if cfg.Workers[mc.TaskType].Enabled {
		handler := mc.NewHandler(
			&mc.Config{
				Timeout: time.Duration(cfg.Workers[mc.TaskType].Timeout) * time.Millisecond,
			},
			coordinator, log,
		)
		workers = append(workers, startWorker(zeebe, mc.TaskType, cfg.Workers[mc.TaskType], handler, zapLog))
	}

	if cfg.Workers[ma.TaskType].Enabled {
		handler := ma.NewHandler(
			&ma.Config{
				Timeout: time.Duration(cfg.Workers[ma.TaskType].Timeout) * time.Millisecond,
			},
			coordinator, log,
		)
		workers = append(workers, startWorker(zeebe, ma.TaskType, cfg.Workers[ma.TaskType], handler, zapLog))
	}

	zapLog.Info("All workers registered successfully", zap.Int("count", len(workers)))

	// --- Health & Metrics Server ---
	go func() {
		http.HandleFunc("/health", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "healthy",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.HandleFunc("/ready", func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			if err := zeebe.HealthCheck(r.Context()); err != nil {
				w.WriteHeader(http.StatusServiceUnavailable)
				json.NewEncoder(w).Encode(map[string]string{
					"status": "not ready",
					"error":  err.Error(),
				})
				return
			}
			w.WriteHeader(http.StatusOK)
			json.NewEncoder(w).Encode(map[string]string{
				"status": "ready",
				"time":   time.Now().Format(time.RFC3339),
			})
		})
		http.Handle("/metrics", promhttp.Handler())
		zapLog.Info("Health/Metrics server listening on :8080")
		if err := http.ListenAndServe(":8080", nil); err != nil {
			zapLog.Error("Health/Metrics server failed", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	zapLog.Info("Shutdown signal received, stopping workers...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	for _, w := range workers {
		if w != nil {
			w.Stop(shutdownCtx)
		}
	}

	if err := zeebe.Close(); err != nil {
		zapLog.Error("Error closing Zeebe client", zap.Error(err))
	}

	zapLog.Info("Worker manager stopped gracefully")
}

func startWorker(client *camunda.Client, taskType string, wcfg config.WorkerConfig, handler camunda.JobHandler, log *zap.Logger) *camunda.CamundaWorker {
	if !wcfg.Enabled {
		log.Info("worker disabled", zap.String("taskType", taskType))
		return nil
	}

	w := camunda.NewWorker(
		client.GetClient(),
		taskType,
		wcfg.MaxJobsActive,
		time.Duration(wcfg.Timeout)*time.Millisecond,
		handler,
		log,
	)
	w.Start()

	log.Info("worker started",
		zap.String("taskType", taskType),
		zap.Int("maxJobsActive", wcfg.MaxJobsActive),
		zap.Int("timeout_ms", wcfg.Timeout),
	)
	return w
}
