package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"expressia/cmd"
	httpadapter "expressia/internal/adapters/in/http"
	"expressia/internal/adapters/out/bus"
	"expressia/internal/adapters/out/postgres/orderrepo"
	"expressia/internal/adapters/out/postgres/storemetarepo"
	"expressia/internal/core/ports"
	"expressia/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	"github.com/rabbitmq/amqp091-go"
	gormpostgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)
	changeBus, notifier := createChangeBus(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, changeBus)

	seedHandler := app.CreateSeedOrdersCommandHandler()
	if err := seedHandler.Handle(context.Background()); err != nil {
		log.Fatalf("Error seeding orders: %v", err)
	}

	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))
	jobManager := jobs.NewJobManager(app.CreateStoreMeta(), notifier, logger)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Error starting jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:           goDotEnvVariable("HTTP_PORT"),
		DBHost:             goDotEnvVariable("DB_HOST"),
		DBPort:             goDotEnvVariable("DB_PORT"),
		DBUser:             goDotEnvVariable("DB_USER"),
		DBPassword:         goDotEnvVariable("DB_PASSWORD"),
		DBName:             goDotEnvVariable("DB_NAME"),
		DBSslMode:          goDotEnvVariable("DB_SSLMODE"),
		AmqpURL:            goDotEnvVariable("AMQP_URL"),
		AmqpOrdersExchange: goDotEnvVariable("AMQP_ORDERS_EXCHANGE"),
	}
	if config.AmqpOrdersExchange == "" {
		config.AmqpOrdersExchange = "orders_changed"
	}
	return config
}

func goDotEnvVariable(key string) string {
	err := godotenv.Load(".env")
	if err != nil {
		log.Fatalf("Error loading .env file")
	}
	return os.Getenv(key)
}

func mustConnectDB(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gormpostgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Error connecting to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &storemetarepo.StoreMetaDTO{}); err != nil {
		log.Fatalf("Error migrating database: %v", err)
	}

	return gormDB
}

// createChangeBus picks the RabbitMQ fanout bus when a broker is configured
// and falls back to the in-process bus otherwise.
func createChangeBus(configs cmd.Config) (ports.ChangeBus, jobs.ChangeNotifier) {
	if configs.AmqpURL == "" {
		inproc := bus.NewInProcChangeBus()
		return inproc, inproc
	}

	conn, err := amqp091.Dial(configs.AmqpURL)
	if err != nil {
		log.Fatalf("Error connecting to RabbitMQ: %v", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		log.Fatalf("Error opening RabbitMQ channel: %v", err)
	}

	rabbit, err := bus.NewRabbitChangeBus(channel, configs.AmqpOrdersExchange)
	if err != nil {
		log.Fatalf("Error setting up change bus: %v", err)
	}

	return rabbit, rabbit
}

func startWebServer(app cmd.CompositionRoot, port string) {
	e := echo.New()

	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateOverrideStatusCommandHandler(),
		app.CreateGetAllOrdersQueryHandler(),
		app.CreateTrackOrderQueryHandler(),
		app.CreateExportHistoryQueryHandler(),
		app.CreateEditingUoWFactory(),
		app.ChangeBus(),
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
