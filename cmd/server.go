package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/joho/godotenv"

	"github.com/Ejeanjules/capstone-project/board/account/accountapi"
	"github.com/Ejeanjules/capstone-project/board/application/applicationapi"
	"github.com/Ejeanjules/capstone-project/board/job/jobapi"
	"github.com/Ejeanjules/capstone-project/board/notification/notificationapi"
	"github.com/Ejeanjules/capstone-project/pkg/errx"
	"github.com/Ejeanjules/capstone-project/pkg/logx"
)

func main() {
	// 1. Initialize Logger and Environment
	logx.SetLevel(logx.LevelInfo)
	if err := godotenv.Load(); err != nil {
		logx.Debugf("no .env file loaded: %v", err)
	}
	logx.Info("Starting Job Board API Server...")

	// 2. Initialize Dependency Container
	container := NewContainer()
	defer container.DB.Close()
	defer container.Redis.Close()

	// 3. Create Fiber App with Config
	app := fiber.New(fiber.Config{
		AppName:               "Job Board API",
		DisableStartupMessage: true,
		BodyLimit:             16 << 20, // room for resume uploads
		ErrorHandler:          globalErrorHandler,
	})

	// 4. Global Middleware
	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*", // Configure for production
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PUT, DELETE, PATCH, HEAD",
	}))
	app.Use(logger.New(logger.Config{
		Format: "[${time}] ${status} - ${latency} ${method} ${path}\n",
	}))

	// 5. Health Check
	app.Get("/health", func(c *fiber.Ctx) error {
		queueStats, err := container.AnalysisQueue.GetStats(c.Context())
		if err != nil {
			queueStats = nil
		}
		return c.JSON(fiber.Map{
			"status": "ok",
			"db":     container.DB.Ping() == nil,
			"redis":  container.Redis.Ping(c.Context()).Err() == nil,
			"queue":  queueStats,
		})
	})

	// 6. Register Routes

	// Auth: /api/v1/auth
	accountapi.RegisterRoutes(app, container.AccountHandlers, container.AuthMiddleware)

	// Jobs: /api/v1/jobs
	jobapi.RegisterRoutes(app, container.JobHandlers, container.AuthMiddleware)

	// Applications: /api/v1/applications plus the job-scoped apply/analyze routes
	applicationapi.RegisterRoutes(app, container.ApplicationHandlers, container.AuthMiddleware)

	// Notifications: /api/v1/notifications
	notificationapi.RegisterRoutes(app, container.NotificationHandlers, container.AuthMiddleware)

	// 7. Start Background Workers
	workerCtx, stopWorkers := context.WithCancel(context.Background())
	container.AnalysisWorker.Start(workerCtx)

	// 8. Start Server with Graceful Shutdown
	port := os.Getenv("PORT")
	if port == "" {
		port = "8080"
	}

	// Run server in a goroutine
	go func() {
		logx.Infof("Server listening on port %s", port)
		if err := app.Listen(":" + port); err != nil {
			logx.Fatalf("Server error: %v", err)
		}
	}()

	// Graceful shutdown
	c := make(chan os.Signal, 1)
	signal.Notify(c, os.Interrupt, syscall.SIGTERM)

	<-c // Wait for signal
	logx.Info("Shutting down server...")

	stopWorkers()
	if err := app.Shutdown(); err != nil {
		logx.Errorf("Server forced to shutdown: %v", err)
	}

	logx.Info("Server exited")
}

// globalErrorHandler converts internal errors to standard HTTP responses
func globalErrorHandler(c *fiber.Ctx, err error) error {
	// If it's a Fiber error (e.g., 404 handler not found)
	if e, ok := err.(*fiber.Error); ok {
		return c.Status(e.Code).JSON(fiber.Map{
			"error": e.Message,
			"code":  e.Code,
		})
	}

	// If it's our custom errx.Error
	if e, ok := err.(*errx.Error); ok {
		return c.Status(e.HTTPStatus).JSON(e.ToHTTPResponse())
	}

	// Default unknown error
	logx.Errorf("Internal Server Error: %v", err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"error":   "Internal Server Error",
		"type":    "INTERNAL",
		"code":    "INTERNAL_ERROR",
		"message": "An unexpected error occurred",
	})
}
