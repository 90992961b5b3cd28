package main

import (
	"context"
	"database/sql"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/twmb/franz-go/pkg/kgo"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/sync/errgroup"

	"github.com/Traasa/SistemDekor-sub004/internal/activity"
	activitymetrics "github.com/Traasa/SistemDekor-sub004/internal/activity/metrics"
	kafkasink "github.com/Traasa/SistemDekor-sub004/internal/activity/sink/kafka"
	activitymemory "github.com/Traasa/SistemDekor-sub004/internal/activity/store/memory"
	activitypostgres "github.com/Traasa/SistemDekor-sub004/internal/activity/store/postgres"
	"github.com/Traasa/SistemDekor-sub004/internal/auth"
	authhandler "github.com/Traasa/SistemDekor-sub004/internal/auth/handler"
	"github.com/Traasa/SistemDekor-sub004/internal/auth/store/revocation"
	userstore "github.com/Traasa/SistemDekor-sub004/internal/auth/store/user"
	"github.com/Traasa/SistemDekor-sub004/internal/order"
	"github.com/Traasa/SistemDekor-sub004/internal/platform/config"
	"github.com/Traasa/SistemDekor-sub004/internal/platform/httpserver"
	"github.com/Traasa/SistemDekor-sub004/internal/platform/logger"
	platformredis "github.com/Traasa/SistemDekor-sub004/internal/platform/redis"
	httptransport "github.com/Traasa/SistemDekor-sub004/internal/transport/http"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in the internal packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Activity store: postgres when configured, in-memory otherwise.
	var store activity.Store
	if cfg.DatabaseURL != "" {
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			log.Error("open database", "error", err)
			os.Exit(1)
		}
		defer db.Close()

		pg := activitypostgres.New(db)
		if err := pg.Migrate(ctx); err != nil {
			log.Error("migrate activity store", "error", err)
			os.Exit(1)
		}
		store = pg
	} else {
		log.Warn("DATABASE_URL not set, using in-memory activity store")
		store = activitymemory.NewInMemoryStore()
	}

	metrics := activitymetrics.New()
	recorder := activity.NewRecorder(store, log,
		activity.WithQueueSize(cfg.Activity.QueueSize),
		activity.WithMetrics(metrics),
	)

	// Optional Kafka mirror in front of the recorder.
	var sink activity.Sink = recorder
	if len(cfg.Kafka.Brokers) > 0 {
		client, err := kgo.NewClient(
			kgo.SeedBrokers(cfg.Kafka.Brokers...),
			kgo.AllowAutoTopicCreation(),
		)
		if err != nil {
			log.Error("create kafka client", "error", err)
			os.Exit(1)
		}
		mirror := kafkasink.New(client, cfg.Kafka.Topic, recorder, log)
		defer func() {
			if err := mirror.Close(); err != nil {
				log.Warn("close kafka mirror", "error", err)
			}
			client.Close()
		}()
		sink = mirror
	}

	interceptor := activity.NewInterceptor(sink, log,
		activity.WithSkipFilter(activity.NewSkipFilter(cfg.Activity.SkipPaths)),
		activity.WithSanitizer(activity.NewSanitizer(cfg.Activity.SensitiveFields)),
		activity.WithInterceptorMetrics(metrics),
	)

	// Token revocation: shared via redis when configured.
	var trl auth.RevocationList = revocation.NewMemoryTRL()
	redisClient, err := platformredis.New(cfg.Redis)
	if err != nil {
		log.Error("connect redis", "error", err)
		os.Exit(1)
	}
	if redisClient != nil {
		defer redisClient.Close()
		trl = revocation.NewRedisTRL(redisClient.Client)
	}

	users := userstore.NewInMemoryStore()
	seedAdmin(log, users)

	tokens := auth.NewJWTService(cfg.JWTSigningKey, "sistemdekor", cfg.TokenTTL)
	authService := auth.NewService(users, tokens, trl, log)

	router := httptransport.NewRouter(httptransport.Deps{
		AuthService:   authService,
		AuthHandler:   authhandler.New(authService, log),
		OrderHandler:  order.NewHandler(order.NewInMemoryStore(), log),
		ActivityStore: store,
		Interceptor:   interceptor,
		Logger:        log,
	})

	srv := httpserver.New(cfg.Addr, router)
	log.Info("starting sistemdekor", "addr", cfg.Addr)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		return recorder.Run(gctx)
	})

	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		log.Error("server exited", "error", err)
		os.Exit(1)
	}
}

// seedAdmin provisions the initial staff account from the environment so a
// fresh deployment can sign in.
func seedAdmin(log *slog.Logger, users *userstore.InMemoryStore) {
	email := os.Getenv("ADMIN_EMAIL")
	if email == "" {
		email = "admin@sistemdekor.local"
	}
	name := os.Getenv("ADMIN_NAME")
	if name == "" {
		name = "Administrator"
	}
	password := os.Getenv("ADMIN_PASSWORD")
	if password == "" {
		password = "admin"
		log.Warn("ADMIN_PASSWORD not set, using development default")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		log.Warn("hash admin password", "error", err)
		return
	}

	users.Seed(auth.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		Role:         "admin",
	})
}
