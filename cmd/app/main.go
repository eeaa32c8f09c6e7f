package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"

	"swiftparcel/cmd"
	httpadapter "swiftparcel/internal/adapters/in/http"
	"swiftparcel/internal/adapters/out/postgres/courierrepo"
	"swiftparcel/internal/adapters/out/postgres/notificationrepo"
	"swiftparcel/internal/adapters/out/postgres/orderrepo"
	"swiftparcel/internal/adapters/out/postgres/paymentrepo"
	"swiftparcel/internal/jobs"
)

func main() {
	configs := getConfigs()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := openDatabase(configs)

	app := cmd.NewCompositionRoot(configs, gormDB, logger)

	jobManager := jobs.NewJobManager(
		app.OrderUoWFactory(),
		app.PaymentUoWFactory(),
		app.PaymentGateway(),
		app.CreateAssignCourierCommandHandler(),
		app.CreateReconcilePaymentCommandHandler(),
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:   goDotEnvVariable("HTTP_PORT"),
		DBHost:     goDotEnvVariable("DB_HOST"),
		DBPort:     goDotEnvVariable("DB_PORT"),
		DBUser:     goDotEnvVariable("DB_USER"),
		DBPassword: goDotEnvVariable("DB_PASSWORD"),
		DBName:     goDotEnvVariable("DB_NAME"),
		DBSslMode:  goDotEnvVariable("DB_SSLMODE"),

		DarajaBaseURL:        goDotEnvVariable("DARAJA_BASE_URL"),
		DarajaConsumerKey:    goDotEnvVariable("DARAJA_CONSUMER_KEY"),
		DarajaConsumerSecret: goDotEnvVariable("DARAJA_CONSUMER_SECRET"),
		DarajaShortCode:      goDotEnvVariable("DARAJA_SHORT_CODE"),
		DarajaPasskey:        goDotEnvVariable("DARAJA_PASSKEY"),
		DarajaCallbackURL:    goDotEnvVariable("DARAJA_CALLBACK_URL"),

		RoutingBaseURL: goDotEnvVariable("ROUTING_BASE_URL"),
		RoutingAPIKey:  goDotEnvVariable("ROUTING_API_KEY"),

		SMTPHost:     goDotEnvVariable("SMTP_HOST"),
		SMTPPort:     intEnvVariable("SMTP_PORT"),
		SMTPUsername: goDotEnvVariable("SMTP_USERNAME"),
		SMTPPassword: goDotEnvVariable("SMTP_PASSWORD"),
		SMTPFrom:     goDotEnvVariable("SMTP_FROM"),

		FinanceEmail: goDotEnvVariable("FINANCE_EMAIL"),
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

func intEnvVariable(key string) int {
	value, err := strconv.Atoi(goDotEnvVariable(key))
	if err != nil {
		log.Fatalf("Environment variable %s must be an integer", key)
	}
	return value
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&orderrepo.OrderDTO{},
		&courierrepo.CourierDTO{},
		&paymentrepo.PaymentDTO{},
		&notificationrepo.NotificationDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, port string) {
	server := httpadapter.NewServer(
		app.CreateCreateOrderCommandHandler(),
		app.CreateUpdateOrderStatusCommandHandler(),
		app.CreateUpdateDestinationCommandHandler(),
		app.CreateAssignCourierCommandHandler(),
		app.CreateManualAssignCourierCommandHandler(),
		app.CreateUpdateCourierLocationCommandHandler(),
		app.CreateInitiatePaymentCommandHandler(),
		app.CreateReconcilePaymentCommandHandler(),
		app.CreateMarkNotificationReadCommandHandler(),
		app.CreateGetQuoteQueryHandler(),
		app.CreateGetOrderQueryHandler(),
		app.CreateTrackOrderQueryHandler(),
		app.CreateGetCustomerOrdersQueryHandler(),
		app.CreateGetPaymentStatusQueryHandler(),
		app.CreateGetNotificationsQueryHandler(),
		app.CreateGetAllCouriersQueryHandler(),
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
