package cmd

import (
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"mangoadmi/internal/config"
	"mangoadmi/internal/repositories"
	"mangoadmi/internal/server"
	"mangoadmi/internal/services"
	"mangoadmi/pkg/database"
	"mangoadmi/pkg/logs"
	"mangoadmi/pkg/mailer"
	"mangoadmi/pkg/rabbitmq"

	"github.com/spf13/cobra"
	"golang.org/x/crypto/bcrypt"
)

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return serve()
		},
	}
}

func serve() error {
	// --- Configuration ---
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return err
	}
	logger := logs.New(cfg)
	slog.SetDefault(logger)

	// --- Database ---
	gw, err := database.Connect(cfg)
	if err != nil {
		logger.Error("PostgreSQL connection error", slog.String("error", err.Error()))
		return err
	}
	defer gw.Close()
	logger.Info("PostgreSQL connected successfully")

	if err := gw.InitializeSchema(); err != nil {
		logger.Error("Error initializing tables", slog.String("error", err.Error()))
	} else {
		logger.Info("Tables initialized successfully")
	}

	// --- Event publisher (optional) ---
	var publisher services.EventPublisher
	if cfg.RabbitMQURL != "" {
		mqClient, err := rabbitmq.NewClient(rabbitmq.Config{URL: cfg.RabbitMQURL})
		if err != nil {
			logger.Warn("RabbitMQ unavailable, domain events disabled", slog.String("error", err.Error()))
		} else {
			defer mqClient.Close()
			publisher = mqClient
		}
	}

	// --- Repositories & Services ---
	hasher := services.NewBcryptHasher(bcrypt.DefaultCost)
	userRepo := repositories.NewGORMUserRepository(gw, hasher)
	contactRepo := repositories.NewGORMContactRepository(gw)

	notifier := services.NewNotificationService(mailer.New(cfg.Mail, logger), publisher, cfg.Mail, logger)
	userService := services.NewUserService(userRepo, hasher, notifier, logger)
	contactService := services.NewContactService(contactRepo, notifier, logger)

	app := server.New(server.Dependencies{
		UserService:    userService,
		ContactService: contactService,
		Database:       gw,
		Logger:         logger,
		AllowedOrigins: cfg.AllowedOrigins,
		RequestLogging: true,
	})

	// --- Start HTTP Server ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server running", slog.String("addr", cfg.Port))
		errCh <- app.Listen(cfg.Port)
	}()

	select {
	case <-quit:
		logger.Info("Shutting down server...")
	case err := <-errCh:
		if err != nil {
			return err
		}
	}

	if err := app.Shutdown(); err != nil {
		logger.Error("Error during Fiber shutdown", slog.String("error", err.Error()))
	}
	// Let in-flight emails finish before the pool and broker close.
	notifier.Wait()
	logger.Info("Server gracefully stopped")
	return nil
}
