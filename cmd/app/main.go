package main

import (
	"fmt"
	"os"
	"strconv"

	"freight/cmd"
	httpadapter "freight/internal/adapters/in/http"
	"freight/internal/adapters/out/postgres/orderrepo"
	"freight/internal/adapters/out/postgres/shipmentrepo"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	postgresdriver "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := mustConnectDB(configs)

	app, err := cmd.NewCompositionRoot(configs, gormDB)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	jobManager := app.CreateJobManager()
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, configs)
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

		CarrierBaseURL:      goDotEnvVariable("CARRIER_BASE_URL"),
		CarrierClientID:     goDotEnvVariable("CARRIER_CLIENT_ID"),
		CarrierClientSecret: goDotEnvVariable("CARRIER_CLIENT_SECRET"),

		OriginPostalCode: goDotEnvVariable("ORIGIN_POSTAL_CODE"),
		OriginStreet:     goDotEnvVariable("ORIGIN_STREET"),
		OriginNumber:     goDotEnvVariable("ORIGIN_NUMBER"),
		OriginDistrict:   goDotEnvVariable("ORIGIN_DISTRICT"),
		OriginCity:       goDotEnvVariable("ORIGIN_CITY"),
		OriginState:      goDotEnvVariable("ORIGIN_STATE"),

		QuoteSecret:         goDotEnvVariable("QUOTE_HMAC_SECRET"),
		StripeWebhookSecret: goDotEnvVariable("STRIPE_WEBHOOK_SECRET"),
	}

	threshold, err := strconv.ParseInt(goDotEnvVariable("FREE_SHIPPING_THRESHOLD_CENTS"), 10, 64)
	if err != nil {
		log.Fatalf("FREE_SHIPPING_THRESHOLD_CENTS must be an integer: %v", err)
	}
	config.FreeShippingThresholdCents = threshold

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
		configs.DBHost, configs.DBPort, configs.DBUser, configs.DBPassword,
		configs.DBName, configs.DBSslMode)

	gormDB, err := gorm.Open(postgresdriver.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	// The core owns only the orders and shipments tables; products and
	// addresses belong to the catalog and accounts services.
	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &shipmentrepo.ShipmentDTO{}); err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(app *cmd.CompositionRoot, configs cmd.Config) {
	quoteHandler := app.CreateQuoteShippingQueryHandler()
	orderShipmentsHandler := app.CreateGetOrderShipmentsQueryHandler()
	reserveHandler := app.CreateReserveCartCommandHandler()
	confirmPaymentHandler := app.CreateConfirmPaymentCommandHandler()
	purchaseHandler := app.CreatePurchaseShipmentsCommandHandler()
	labelsHandler := app.CreateGenerateLabelsCommandHandler()
	syncHandler := app.CreateSyncTrackingCommandHandler()

	server := httpadapter.NewServer(
		quoteHandler,
		orderShipmentsHandler,
		&reserveHandler,
		&confirmPaymentHandler,
		&purchaseHandler,
		&labelsHandler,
		&syncHandler,
		configs.StripeWebhookSecret,
	)

	e := echo.New()
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)))
}
