package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"citysafe/internal/auth"
	"citysafe/internal/config"
	apphttp "citysafe/internal/http"
	"citysafe/internal/repository/sqlite"
	"citysafe/internal/service"
	"citysafe/internal/storage"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	cityRepo := sqlite.NewCityRepository(db)
	statRepo := sqlite.NewCrimeStatisticRepository(db)
	attractionRepo := sqlite.NewAttractionRepository(db)
	contactRepo := sqlite.NewEmergencyContactRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := cityRepo.Init(ctx); err != nil {
		logger.Fatalf("init city repository: %v", err)
	}
	if err := statRepo.Init(ctx); err != nil {
		logger.Fatalf("init crime statistic repository: %v", err)
	}
	if err := attractionRepo.Init(ctx); err != nil {
		logger.Fatalf("init attraction repository: %v", err)
	}
	if err := contactRepo.Init(ctx); err != nil {
		logger.Fatalf("init emergency contact repository: %v", err)
	}

	if cfg.Seed.Contacts {
		if err := sqlite.SeedEmergencyContacts(ctx, contactRepo, cityRepo); err != nil {
			logger.Warnf("seed emergency contacts: %v", err)
		}
	}

	tokenService, err := auth.LoadTokenService(auth.KeyConfig{
		PrivateKeyPath: cfg.Auth.PrivateKeyPath,
		PublicKeyPath:  cfg.Auth.PublicKeyPath,
		TTL:            time.Duration(cfg.Auth.TokenTTLMinutes) * time.Minute,
	})
	if err != nil {
		logger.Fatalf("load token keys: %v", err)
	}

	userService := service.NewUserService(userRepo, auth.NewPasswordHasher(), tokenService)
	catalogService := service.NewCatalogService(cityRepo, statRepo, attractionRepo, contactRepo)

	var storageSvc storage.Service
	if cfg.Storage.Bucket != "" {
		storageSvc, err = buildStorage(ctx, cfg, logger)
		if err != nil {
			logger.Fatalf("setup storage: %v", err)
		}
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	handler := apphttp.NewHandler(
		userService,
		catalogService,
		tokenService,
		storageSvc,
		cfg.Storage.Bucket,
		cfg.Storage.KeyPrefix,
	)
	handler.RegisterRoutes(router)

	srv := &http.Server{
		Addr:    cfg.Server.Addr,
		Handler: router,
	}

	go func() {
		logger.Infof("listening on %s", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Fatalf("http server: %v", err)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Warnf("http shutdown: %v", err)
	}

	logger.Info("bye")
}

func buildStorage(ctx context.Context, cfg config.Config, logger *logrus.Logger) (storage.Service, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Storage.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, fmt.Errorf("load aws config: %w", err)
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Storage.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Storage.Endpoint)
			o.UsePathStyle = true
		}
	})
	logger.Infof("using s3 bucket %s (region %s)", cfg.Storage.Bucket, cfg.Storage.Region)
	return storage.NewS3Service(client), nil
}
