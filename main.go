package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/bytedance/sonic"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/compress"
	"github.com/gofiber/fiber/v2/middleware/etag"
	"github.com/urfave/cli/v2"
	"gorm.io/gorm"

	"campusvibe_backend/internals/configs"
	database "campusvibe_backend/internals/databases"
	"campusvibe_backend/internals/features/automation/scheduler"
	automation "campusvibe_backend/internals/features/automation/service"
	helper "campusvibe_backend/internals/helpers"
	"campusvibe_backend/internals/helpers/mailer"
	"campusvibe_backend/internals/helpers/storage"
	"campusvibe_backend/internals/helpers/storage/imagex"
	middlewares "campusvibe_backend/internals/middlewares"
	routes "campusvibe_backend/internals/route"
	"campusvibe_backend/internals/seeds"
	adminSeed "campusvibe_backend/internals/seeds/users/auth"
)

func main() {
	configs.LoadEnv()

	app := &cli.App{
		Name:   "campusvibe",
		Usage:  "college event management backend",
		Action: serve,
		Commands: []*cli.Command{
			{Name: "serve", Usage: "run the HTTP server and automation scheduler", Action: serve},
			{Name: "migrate", Usage: "create or update the database schema", Action: migrate},
			{Name: "seed", Usage: "seed admin account and academics data", Action: seed},
			{Name: "offboard", Usage: "run one off-boarding sweep now", Action: offboard},
			{Name: "warn-expiring", Usage: "email users whose access expires within a week", Action: warnExpiring},
			{
				Name:  "create-admin",
				Usage: "create or reset an admin account",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "email", Required: true},
					&cli.StringFlag{Name: "password", Required: true, EnvVars: []string{"ADMIN_PASSWORD"}},
				},
				Action: createAdmin,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("❌ %v", err)
	}
}

func connect() *gorm.DB {
	database.ConnectDB()
	database.TunePool()
	return database.DB
}

func newStore() (storage.Store, error) {
	return storage.NewStoreFromEnv(imagex.NewWebPTransformer(imagex.WebPOptionsFromEnv()))
}

func newDispatcher() *mailer.Dispatcher {
	return mailer.NewDispatcher(
		mailer.NewSenderFromEnv(),
		configs.GetEnvInt("MAIL_WORKERS", 4),
		configs.GetEnvInt("MAIL_QUEUE_SIZE", 256),
	)
}

func drain(d *mailer.Dispatcher) {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := d.Shutdown(ctx); err != nil {
		log.Printf("⚠️ mail queue not drained: %v", err)
	}
}

func serve(_ *cli.Context) error {
	app := fiber.New(fiber.Config{
		JSONEncoder:             sonic.Marshal,
		JSONDecoder:             sonic.Unmarshal,
		DisableStartupMessage:   true,
		ErrorHandler:            helper.FromFiberError,
		BodyLimit:               configs.GetEnvInt("BODY_LIMIT_MB", 10) * 1024 * 1024,
		ProxyHeader:             fiber.HeaderXForwardedFor,
		EnableTrustedProxyCheck: true,
		TrustedProxies:          []string{"0.0.0.0/0"},
	})

	app.Use(compress.New(compress.Config{Level: compress.LevelDefault}))
	app.Use(etag.New())
	middlewares.SetupMiddlewares(app)

	db := connect()
	database.WarmUpQueries()
	if configs.GetEnvBool("AUTO_MIGRATE", false) {
		if err := database.AutoMigrate(db); err != nil {
			return err
		}
	}

	store, err := newStore()
	if err != nil {
		return fmt.Errorf("storage: %w", err)
	}
	dispatcher := newDispatcher()

	// scheduler after DB is ready
	cron, err := scheduler.Start(automation.New(db, store, dispatcher), scheduler.ConfigFromEnv())
	if err != nil {
		return fmt.Errorf("scheduler: %w", err)
	}

	routes.SetupRoutes(app, db, store, dispatcher)

	app.Server().ReadTimeout = 15 * time.Second
	app.Server().WriteTimeout = 30 * time.Second
	app.Server().IdleTimeout = 90 * time.Second

	port := configs.GetEnv("PORT", "3000")
	go func() {
		log.Printf("✅ Listening on :%s", port)
		if err := app.Listen("0.0.0.0:" + port); err != nil {
			log.Fatalf("server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	_ = app.ShutdownWithContext(ctx)

	// wait for a running sweep before closing the pool
	<-cron.Stop().Done()
	drain(dispatcher)
	database.Close(db)
	return nil
}

func migrate(_ *cli.Context) error {
	db := connect()
	defer database.Close(db)
	if err := database.AutoMigrate(db); err != nil {
		return err
	}
	log.Println("✅ Migration finished")
	return nil
}

func seed(_ *cli.Context) error {
	db := connect()
	defer database.Close(db)
	return seeds.RunAllSeeds(db)
}

func offboard(c *cli.Context) error {
	db := connect()
	defer database.Close(db)

	store, err := newStore()
	if err != nil {
		return err
	}
	dispatcher := newDispatcher()
	defer drain(dispatcher)

	sum, err := automation.New(db, store, dispatcher).Run(c.Context)
	if sum != nil {
		log.Printf("✅ Off-boarding: candidates=%d offboarded=%d failed=%d archived=%d",
			sum.Candidates, sum.Offboarded, sum.Failed, sum.EventsArchived)
	}
	if errors.Is(err, automation.ErrRunInProgress) {
		return nil
	}
	return err
}

func warnExpiring(c *cli.Context) error {
	db := connect()
	defer database.Close(db)

	dispatcher := newDispatcher()
	defer drain(dispatcher)

	n, err := automation.New(db, nil, dispatcher).WarnExpiring(c.Context)
	if err != nil {
		return err
	}
	log.Printf("✅ Expiry warnings sent: %d", n)
	return nil
}

func createAdmin(c *cli.Context) error {
	db := connect()
	defer database.Close(db)
	_, err := adminSeed.SeedAdmin(db, c.String("email"), c.String("password"))
	return err
}
