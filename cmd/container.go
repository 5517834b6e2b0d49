package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-redis/redis/v8"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"

	"github.com/Ejeanjules/capstone-project/board/account/accountapi"
	"github.com/Ejeanjules/capstone-project/board/account/accountinfra"
	"github.com/Ejeanjules/capstone-project/board/account/accountsrv"
	"github.com/Ejeanjules/capstone-project/board/application/applicationapi"
	"github.com/Ejeanjules/capstone-project/board/application/applicationinfra"
	"github.com/Ejeanjules/capstone-project/board/application/applicationsrv"
	"github.com/Ejeanjules/capstone-project/board/application/worker"
	"github.com/Ejeanjules/capstone-project/board/job/jobapi"
	"github.com/Ejeanjules/capstone-project/board/job/jobinfra"
	"github.com/Ejeanjules/capstone-project/board/job/jobsrv"
	"github.com/Ejeanjules/capstone-project/board/notification/notificationapi"
	"github.com/Ejeanjules/capstone-project/board/notification/notificationinfra"
	"github.com/Ejeanjules/capstone-project/board/notification/notificationsrv"
	"github.com/Ejeanjules/capstone-project/internal/analysis"
	"github.com/Ejeanjules/capstone-project/pkg/fsx"
	"github.com/Ejeanjules/capstone-project/pkg/fsx/fsxlocal"
	"github.com/Ejeanjules/capstone-project/pkg/fsx/fsxs3"
	"github.com/Ejeanjules/capstone-project/pkg/iam/auth"
	"github.com/Ejeanjules/capstone-project/pkg/logx"
)

const analysisQueueName = "resume_analysis"

// Container holds all application dependencies
type Container struct {
	// Config
	AuthConfig auth.Config

	// Infrastructure
	DB            *sqlx.DB
	Redis         *redis.Client
	FileSystem    fsx.FileSystem
	AnalysisQueue *applicationinfra.RedisAnalysisQueue

	// Services
	TokenService        *auth.TokenService
	AccountService      *accountsrv.Service
	JobService          *jobsrv.Service
	ApplicationService  *applicationsrv.Service
	NotificationService *notificationsrv.Service

	// Background workers
	AnalysisWorker *worker.AnalysisWorker

	// API Handlers
	AccountHandlers      *accountapi.Handlers
	JobHandlers          *jobapi.Handlers
	ApplicationHandlers  *applicationapi.Handlers
	NotificationHandlers *notificationapi.Handlers

	// Middleware
	AuthMiddleware *auth.Middleware
}

// NewContainer initializes the dependency injection container
func NewContainer() *Container {
	c := &Container{}
	c.initInfrastructure()
	c.initServices()
	return c
}

func (c *Container) initInfrastructure() {
	// 1. Database Connection
	dbHost := os.Getenv("DB_HOST")
	dbPort := os.Getenv("DB_PORT")
	dbUser := os.Getenv("DB_USER")
	dbPass := os.Getenv("DB_PASS")
	dbName := os.Getenv("DB_NAME")
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		dbHost, dbPort, dbUser, dbPass, dbName)

	db, err := sqlx.Connect("postgres", dsn)
	if err != nil {
		logx.Fatalf("Failed to connect to database: %v", err)
	}
	db.SetMaxOpenConns(25)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(5 * time.Minute)
	c.DB = db

	// 2. Redis Connection
	redisAddr := os.Getenv("REDIS_ADDR")
	redisPass := os.Getenv("REDIS_PASS")
	c.Redis = redis.NewClient(&redis.Options{
		Addr:     redisAddr,
		Password: redisPass,
		DB:       0,
	})
	if _, err := c.Redis.Ping(context.Background()).Result(); err != nil {
		logx.Warnf("Failed to connect to Redis: %v", err)
	}

	// 3. File Storage (S3 in production, local disk for development)
	if backend := os.Getenv("STORAGE_BACKEND"); backend == "local" {
		root := os.Getenv("STORAGE_ROOT")
		if root == "" {
			root = "./uploads"
		}
		c.FileSystem = fsxlocal.NewLocalFileSystem(root)
	} else {
		awsRegion := os.Getenv("AWS_REGION")
		awsBucket := os.Getenv("AWS_BUCKET")
		cfg, err := config.LoadDefaultConfig(context.TODO(), config.WithRegion(awsRegion))
		if err != nil {
			logx.Fatalf("unable to load SDK config, %v", err)
		}
		c.FileSystem = fsxs3.NewS3FileSystem(s3.NewFromConfig(cfg), awsBucket, "uploads")
	}

	// 4. Auth Config
	c.AuthConfig = auth.Config{
		JWTSecret: os.Getenv("JWT_SECRET"),
		Issuer:    "jobboard",
	}
	if c.AuthConfig.JWTSecret == "" {
		logx.Warn("JWT_SECRET is not set, using default (unsafe for production)")
		c.AuthConfig.JWTSecret = "super-secret-key-please-change-me-in-production"
	}
}

func (c *Container) initServices() {
	// --- Repositories ---
	accountRepo := accountinfra.NewPostgresAccountRepository(c.DB)
	jobRepo := jobinfra.NewPostgresJobRepository(c.DB)
	applicationRepo := applicationinfra.NewPostgresApplicationRepository(c.DB)
	notificationRepo := notificationinfra.NewPostgresNotificationRepository(c.DB)

	// --- Queue ---
	c.AnalysisQueue = applicationinfra.NewRedisAnalysisQueue(c.Redis, analysisQueueName)

	// --- Token Service ---
	c.TokenService = auth.NewTokenService(c.AuthConfig)

	// --- Domain Services ---
	c.AccountService = accountsrv.NewService(accountRepo, c.TokenService)
	c.JobService = jobsrv.NewService(jobRepo, applicationRepo)
	c.NotificationService = notificationsrv.NewService(notificationRepo)
	c.ApplicationService = applicationsrv.NewService(
		applicationRepo,
		jobRepo,
		c.FileSystem,
		c.AnalysisQueue,
		analysis.NewAnalyzer(),
		c.NotificationService,
	)

	// --- Background Workers ---
	c.AnalysisWorker = worker.NewAnalysisWorker(c.ApplicationService, c.AnalysisQueue, 2)

	// --- Handlers ---
	c.AccountHandlers = accountapi.NewHandlers(c.AccountService)
	c.JobHandlers = jobapi.NewHandlers(c.JobService)
	c.ApplicationHandlers = applicationapi.NewHandlers(c.ApplicationService)
	c.NotificationHandlers = notificationapi.NewHandlers(c.NotificationService)

	// --- Middleware ---
	c.AuthMiddleware = auth.NewMiddleware(c.TokenService)
}
