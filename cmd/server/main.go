package main

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"os/signal"
	"sync"
	"syscall"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/hibiken/asynq"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	config "github.com/maheshrc27/reelflow/configs"
	"github.com/maheshrc27/reelflow/internal/api/handlers"
	job "github.com/maheshrc27/reelflow/internal/jobs"
	"github.com/maheshrc27/reelflow/internal/queue"
	"github.com/maheshrc27/reelflow/internal/repository"
	"github.com/maheshrc27/reelflow/internal/service"
	"github.com/robfig/cron"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: Failed to load environment variables", err)
	}

	cfg := config.LoadConfig()

	store, db, err := buildStore(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize post store: %v", err)
	}
	if db != nil {
		defer closeDB(db)
	}

	var asynqClient *asynq.Client
	redisConn := asynq.RedisClientOpt{Addr: cfg.RedisURI}
	if cfg.RedisURI != "" {
		asynqClient = asynq.NewClient(redisConn)
		defer asynqClient.Close()
	}

	app := fiber.New(fiber.Config{
		ReadTimeout:  10 * time.Minute,
		WriteTimeout: 10 * time.Minute,
		ErrorHandler: func(c *fiber.Ctx, err error) error {
			log.Printf("Error: %v", err)
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
		},
	})

	app.Use(logger.New())
	app.Use(cors.New(cors.Config{
		AllowOriginsFunc: func(origin string) bool {
			return true
		},
		AllowMethods:     "GET,POST,PUT,DELETE,OPTIONS",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: true,
		MaxAge:           3600,
	}))

	// One guard for every load-then-save window against the store.
	storeMu := &sync.Mutex{}

	pexelsService := service.NewPexelsService(*cfg, nil)
	mediaAPI := service.NewGraphClient(cfg.GraphAPIBase, nil)
	publisherService := service.NewPublisherService(*cfg, mediaAPI)
	schedulerService := service.NewSchedulerService(*cfg, store, storeMu)
	lifecycleService := service.NewLifecycleService(store, publisherService, storeMu)

	api := app.Group("/api")

	video := handlers.NewVideoHandler(*cfg, pexelsService)
	api.Post("/fetch-videos", video.FetchVideos)

	schedule := handlers.NewScheduleHandler(*cfg, schedulerService, pexelsService, store, asynqClient)
	api.Post("/automate", schedule.Automate)
	api.Post("/schedule-post", schedule.SchedulePost)
	api.Get("/scheduled-posts", schedule.ListScheduledPosts)

	cronHandler := handlers.NewCronHandler(lifecycleService)
	api.Get("/cron", cronHandler.RunSweep)

	// cron jobs
	publishJob := job.NewPublishJob(lifecycleService)

	c := cron.New()
	c.AddFunc(cfg.SweepInterval, publishJob.Sweep)
	c.Start()

	if cfg.RedisURI != "" {
		queueW := queue.NewQueue(store, publisherService, storeMu)

		go func() {
			server := asynq.NewServer(redisConn, asynq.Config{
				Concurrency: 1,
			})

			mux := asynq.NewServeMux()
			mux.HandleFunc(queue.TaskTypePublishPost, queueW.HandlePublishPostTask)

			log.Println("Starting the Asynq server...")
			if err := server.Run(mux); err != nil {
				log.Fatalf("Could not start Asynq server: %v", err)
			}
		}()
	}

	go func() {
		if err := app.Listen(":3000"); err != nil {
			log.Fatalf("Failed to start server: %v", err)
		}
	}()
	log.Println("Server is running on http://localhost:3000")

	gracefulShutdown(app, db)
}

func buildStore(cfg *config.Config) (repository.PostStore, *sql.DB, error) {
	switch cfg.StorageBackend {
	case "postgres":
		db, err := sql.Open("postgres", cfg.PostgresURI)
		if err != nil {
			return nil, nil, err
		}
		if err := db.Ping(); err != nil {
			return nil, nil, err
		}
		return repository.NewPostgresStore(db), db, nil
	case "s3":
		store, err := repository.NewS3Store(context.Background(), cfg.R2)
		return store, nil, err
	default:
		return repository.NewFileStore(cfg.StorageFile), nil, nil
	}
}

func closeDB(db *sql.DB) {
	fmt.Fprint(os.Stdout, "Closing database connection... ")
	if err := db.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to close database: %v", err)
		return
	}
	fmt.Fprintln(os.Stdout, "Done")
}

func gracefulShutdown(app *fiber.App, db *sql.DB) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)

	<-quit
	log.Println("Shutting down server...")

	if err := app.Shutdown(); err != nil {
		log.Fatalf("Failed to shut down server: %v", err)
	}

	if db != nil {
		closeDB(db)
	}
	log.Println("Server shutdown complete.")
}
