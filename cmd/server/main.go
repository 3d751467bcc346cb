package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscfg "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"

	"taskboard/internal/auth"
	"taskboard/internal/backup"
	"taskboard/internal/config"
	apphttp "taskboard/internal/http"
	"taskboard/internal/metrics"
	"taskboard/internal/ratelimit"
	"taskboard/internal/repository/sqlite"
	"taskboard/internal/service"
)

func main() {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})

	cfg, err := config.Load()
	if err != nil {
		logger.Fatalf("load config: %v", err)
	}

	if strings.TrimSpace(cfg.Auth.JWTSecret) == "" {
		logger.Fatalf("auth jwt secret is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	db, err := sqlite.Open(cfg.Database.Path)
	if err != nil {
		logger.Fatalf("open database: %v", err)
	}
	defer db.Close()

	userRepo := sqlite.NewUserRepository(db)
	taskRepo := sqlite.NewTaskRepository(db)

	if err := userRepo.Init(ctx); err != nil {
		logger.Fatalf("init user repository: %v", err)
	}
	if err := taskRepo.Init(ctx); err != nil {
		logger.Fatalf("init task repository: %v", err)
	}

	userService := service.NewUserService(userRepo)
	taskService := service.NewTaskService(taskRepo)
	tokens := auth.NewManager(cfg.Auth.JWTSecret, time.Duration(cfg.Auth.TokenTTLHours)*time.Hour)

	var limiter *ratelimit.LoginLimiter
	if cfg.Redis.Addr != "" {
		rdb := redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
		})
		if err := rdb.Ping(ctx).Err(); err != nil {
			logger.Fatalf("connect redis: %v", err)
		}
		defer rdb.Close()
		limiter = ratelimit.NewLoginLimiter(rdb, cfg.Login.MaxAttempts, time.Duration(cfg.Login.WindowSeconds)*time.Second)
		logger.Infof("login throttle enabled via redis %s", cfg.Redis.Addr)
	}

	var backupRunner *backup.Runner
	if cfg.Backup.Bucket != "" {
		uploader, err := buildUploader(ctx, cfg)
		if err != nil {
			logger.Fatalf("setup backup storage: %v", err)
		}
		backupRunner = backup.NewRunner(backup.Config{
			DatabasePath: cfg.Database.Path,
			Bucket:       cfg.Backup.Bucket,
			KeyPrefix:    cfg.Backup.KeyPrefix,
			Interval:     time.Duration(cfg.Backup.IntervalMinutes) * time.Minute,
			Logger:       logger,
		}, uploader)
		backupRunner.Start(ctx)
		logger.Infof("periodic backups to s3 bucket %s", cfg.Backup.Bucket)
	}

	metrics.Init()

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(apphttp.RequestLogger(logger))

	handler := apphttp.NewHandler(userService, taskService, tokens, limiter, logger)
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
	if backupRunner != nil {
		backupRunner.Wait()
	}

	logger.Info("bye")
}

func buildUploader(ctx context.Context, cfg config.Config) (*backup.S3Uploader, error) {
	loadOpts := []func(*awscfg.LoadOptions) error{
		awscfg.WithRegion(cfg.Backup.Region),
	}
	if cfg.AWS.Profile != "" {
		loadOpts = append(loadOpts, awscfg.WithSharedConfigProfile(cfg.AWS.Profile))
	}

	awsCfg, err := awscfg.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, err
	}

	client := s3.NewFromConfig(awsCfg, func(o *s3.Options) {
		if cfg.Backup.Endpoint != "" {
			o.BaseEndpoint = aws.String(cfg.Backup.Endpoint)
			o.UsePathStyle = true
		}
	})
	return backup.NewS3Uploader(client), nil
}
