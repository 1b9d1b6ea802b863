package main

import (
	"context"
	"os/signal"
	"syscall"
	"time"

	"resume-builder/internal/adapter/auth"
	httpadapter "resume-builder/internal/adapter/http"
	repo "resume-builder/internal/adapter/repository"
	"resume-builder/internal/adapter/storage"
	"resume-builder/internal/config"
	"resume-builder/internal/infrastructure/migration"
	"resume-builder/internal/logger"
	"resume-builder/internal/usecase"
	infra "resume-builder/pkg/infrastructure"

	"github.com/sirupsen/logrus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("invalid configuration")
	}
	log := logger.New(cfg.LogLevel)
	entry := logrus.NewEntry(log)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// infra setup
	pool, err := infra.NewResumesPool(ctx, cfg.DatabaseURL)
	if err != nil {
		log.WithError(err).Fatal("resumes DB not available")
	}
	defer pool.Close()

	if err := migration.RunMigrations(ctx, pool, entry.WithField("component", "migration")); err != nil {
		log.WithError(err).Fatal("migrations failed")
	}

	var resumes usecase.Repository = repo.NewResumesRepo(pool, entry.WithField("component", "resumes_repo"))
	if cfg.RedisURL != "" {
		rdb, err := infra.NewRedisClient(ctx, cfg.RedisURL)
		if err != nil {
			log.WithError(err).Warn("redis not available, running without cache")
		} else {
			defer rdb.Close()
			resumes = repo.NewCachedRepo(resumes, repo.NewRedisCache(rdb), cfg.CacheTTL, entry.WithField("component", "cached_repo"))
		}
	}

	var artifacts usecase.ArtifactStore
	switch {
	case cfg.S3.Enabled():
		client, err := infra.NewS3Client(ctx, cfg.S3.Endpoint, cfg.S3.Region, cfg.S3.AccessKey, cfg.S3.SecretKey)
		if err != nil {
			log.WithError(err).Fatal("s3 client")
		}
		artifacts = storage.NewS3Uploader(client, cfg.S3.Bucket)
	case cfg.ExportDir != "":
		artifacts = storage.NewLocalUploader(cfg.ExportDir)
	}

	var authn *auth.JWTAuthenticator
	if cfg.JWTSecret != "" {
		authn = auth.NewJWTAuthenticator(cfg.JWTSecret, cfg.JWTIssuer, cfg.JWTAudience)
	} else {
		log.Warn("SUPABASE_JWT_SECRET is not set, every session is anonymous")
	}

	renderer := infra.NewChromedpRenderer(cfg.ChromePath)
	exporter := usecase.NewExporter(renderer, artifacts, entry.WithField("component", "export"))

	sessions := usecase.NewManager(usecase.SessionDeps{
		Repo:     resumes,
		Exporter: exporter,
		Autosave: usecase.AutosaveConfig{Window: cfg.AutosaveWindow, SignInPath: cfg.SignInPath},
		Log:      entry.WithField("component", "session"),
	})

	go func() {
		t := time.NewTicker(time.Minute)
		defer t.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-t.C:
				if n := sessions.Expire(ctx, cfg.SessionIdle); n > 0 {
					log.WithField("sessions", n).Info("idle sessions ended")
				}
			}
		}
	}()

	app := httpadapter.NewApp(httpadapter.NewHandler(sessions, authn), log)

	go func() {
		if err := app.Listen(":" + cfg.Port); err != nil {
			log.WithError(err).Fatal("server failed")
		}
	}()
	log.WithField("port", cfg.Port).Info("server started")

	<-ctx.Done()
	log.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.WithError(err).Warn("server shutdown")
	}
	// pending autosave windows are written before the pool closes
	sessions.CloseAll(shutdownCtx)
}
