package main

import (
	"context"
	"database/sql"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"

	"github.com/printcon-atlas/atlas-backend/config"
	"github.com/printcon-atlas/atlas-backend/internal/assistant/llm"
	chat "github.com/printcon-atlas/atlas-backend/internal/assistant/service"
	"github.com/printcon-atlas/atlas-backend/internal/bootstrap"
	cronjob "github.com/printcon-atlas/atlas-backend/internal/catalog/cron"
	"github.com/printcon-atlas/atlas-backend/internal/dashboard/panels"
	"github.com/printcon-atlas/atlas-backend/internal/session/repository"
	sessionsvc "github.com/printcon-atlas/atlas-backend/internal/session/service"
	"github.com/printcon-atlas/atlas-backend/internal/storage/postgres"
	"github.com/printcon-atlas/atlas-backend/internal/submissions"
)

const serviceName = "atlas-backend"

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}
	bootstrap.SetGinMode(cfg.App.Environment)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var db *pgxpool.Pool
	if cfg.Database.DSN != "" {
		db, err = bootstrap.OpenDB(ctx, bootstrap.DBOptions{
			DSN:      cfg.Database.DSN,
			MaxConns: int32(cfg.Database.MaxConns),
		})
		if err != nil {
			log.Fatalf("database: %v", err)
		}
		defer db.Close()
	}

	holder, err := bootstrap.LoadCatalog(ctx, cfg.Catalog, db)
	if err != nil {
		log.Fatalf("catalog: %v", err)
	}

	var rdb *redis.Client
	var store repository.Store
	if cfg.Redis.Addr != "" {
		rdb, err = bootstrap.OpenRedis(ctx, bootstrap.RedisOptions{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if err != nil {
			log.Fatalf("redis: %v", err)
		}
		defer rdb.Close()
		store = repository.NewRedisStore(rdb, cfg.Redis.SessionTTL)
	} else {
		log.Println("REDIS_ADDR not set, sessions are kept in memory")
		store = repository.NewMemoryStore(cfg.Redis.SessionTTL)
	}

	var subs submissions.Store
	if cfg.Submissions.DSN != "" {
		sdb, err := postgres.NewConnection(ctx, cfg.Submissions)
		if err != nil {
			log.Fatalf("submissions database: %v", err)
		}
		defer func(db *sql.DB) { _ = db.Close() }(sdb)

		repo := submissions.NewRepo(sdb)
		if err := repo.EnsureSchema(ctx); err != nil {
			log.Fatalf("submissions schema: %v", err)
		}
		subs = repo
	}

	lib, err := panels.Load()
	if err != nil {
		log.Fatalf("panels: %v", err)
	}

	var gen llm.Generator
	key, err := llm.ResolveAPIKey(cfg.Assistant.APIKey, cfg.Assistant.APIKeyFile)
	if err != nil {
		log.Printf("assistant: %v, chat replies disabled", err)
	} else {
		gen = llm.NewOpenAIClient(llm.ClientOptions{
			BaseURL:    cfg.Assistant.BaseURL,
			Model:      cfg.Assistant.Model,
			APIKey:     key,
			Timeout:    cfg.Assistant.Timeout,
			RatePerSec: cfg.Assistant.RatePerSec,
		})
	}
	orch := chat.NewOrchestrator(gen, chat.Config{
		MaxTokens:   cfg.Assistant.MaxTokens,
		Temperature: cfg.Assistant.Temperature,
		Timeout:     cfg.Assistant.Timeout,
	})

	router := bootstrap.BuildRouter(bootstrap.RouterDeps{
		ServiceName:    serviceName,
		Version:        cfg.App.Version,
		AllowedOrigins: cfg.Server.AllowedOrigins,
		AdminAPIKey:    cfg.App.AdminAPIKey,
		DB:             db,
		Redis:          rdb,
		Catalog:        holder,
		Panels:         lib,
		Sessions:       sessionsvc.NewService(store, holder, lib, orch),
		Submissions:    subs,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Server.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	var sched *cronjob.Scheduler
	if cfg.Catalog.ReloadCron != "" {
		sched = cronjob.NewScheduler(cfg.Catalog.ReloadCron, holder)
		if err := sched.Start(); err != nil {
			log.Fatalf("catalog reload schedule: %v", err)
		}
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		log.Printf("%s %s listening on :%s", serviceName, cfg.App.Version, cfg.Server.Port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		if sched != nil {
			sched.Stop()
		}
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		log.Fatalf("server: %v", err)
	}
	log.Println("server stopped")
}
