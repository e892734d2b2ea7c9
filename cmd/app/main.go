package main

import (
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strconv"
	"time"

	"mes/cmd"
	mes_http "mes/internal/adapters/in/http"
	"mes/internal/adapters/out/postgres/machinerepo"
	"mes/internal/adapters/out/postgres/materialrepo"
	"mes/internal/adapters/out/postgres/orderrepo"
	"mes/internal/adapters/out/postgres/productrepo"
	"mes/internal/jobs"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := getConfigs()

	gormDB := openDatabase(configs)

	app := cmd.NewCompositionRoot(configs, gormDB)
	logger := slog.New(slog.NewTextHandler(os.Stdout, nil))

	progressionDelay := time.Duration(configs.ProgressionDelaySeconds) * time.Second
	maintenanceThreshold := time.Duration(configs.MaintenanceThresholdDays) * 24 * time.Hour

	transitionHandler := app.CreateTransitionOrderCommandHandler()
	completeHandler := app.CreateCompleteOrderCommandHandler()
	scheduler := jobs.NewOrderProgressionScheduler(
		&transitionHandler,
		&completeHandler,
		progressionDelay,
		logger,
	)

	jobManager := jobs.NewJobManager(
		app.CreateGetMachinesDueMaintenanceQueryHandler(),
		maintenanceThreshold,
		logger,
	)
	if err := jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	startWebServer(&app, scheduler, maintenanceThreshold, configs.HTTPPort)
}

func getConfigs() cmd.Config {
	config := cmd.Config{
		HTTPPort:                 goDotEnvVariable("HTTP_PORT"),
		DBHost:                   goDotEnvVariable("DB_HOST"),
		DBPort:                   goDotEnvVariable("DB_PORT"),
		DBUser:                   goDotEnvVariable("DB_USER"),
		DBPassword:               goDotEnvVariable("DB_PASSWORD"),
		DBName:                   goDotEnvVariable("DB_NAME"),
		DBSslMode:                goDotEnvVariable("DB_SSLMODE"),
		ProgressionDelaySeconds:  intEnvVariable("PROGRESSION_DELAY_SECONDS", 20),
		MaintenanceThresholdDays: intEnvVariable("MAINTENANCE_THRESHOLD_DAYS", 30),
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

func intEnvVariable(key string, fallback int) int {
	value := goDotEnvVariable(key)
	if value == "" {
		return fallback
	}

	parsed, err := strconv.Atoi(value)
	if err != nil {
		log.Fatalf("Invalid value for %s: %v", key, err)
	}
	return parsed
}

func openDatabase(configs cmd.Config) *gorm.DB {
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		configs.DBHost, configs.DBPort, configs.DBUser,
		configs.DBPassword, configs.DBName, configs.DBSslMode,
	)

	gormDB, err := gorm.Open(gorm_postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	err = gormDB.AutoMigrate(
		&machinerepo.MachineDTO{},
		&machinerepo.MaintenanceRecordDTO{},
		&orderrepo.OrderDTO{},
		&orderrepo.RequirementDTO{},
		&orderrepo.MachineClaimDTO{},
		&materialrepo.MaterialDTO{},
		&productrepo.ProductDTO{},
		&productrepo.BOMLineDTO{},
	)
	if err != nil {
		log.Fatalf("Failed to migrate database: %v", err)
	}

	return gormDB
}

func startWebServer(
	app *cmd.CompositionRoot,
	scheduler *jobs.OrderProgressionScheduler,
	maintenanceThreshold time.Duration,
	port string,
) {
	e := echo.New()
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})

	server := mes_http.NewServer(
		app.CreateCreateMachineCommandHandler(),
		app.CreateCreateOrderCommandHandler(),
		app.CreateTransitionOrderCommandHandler(),
		app.CreateCompleteOrderCommandHandler(),
		app.CreateStartMaintenanceCommandHandler(),
		app.CreateCompleteMaintenanceCommandHandler(),
		app.CreateGetAllMachinesQueryHandler(),
		app.CreateGetActiveOrdersQueryHandler(),
		app.CreateGetOrderStatusCountsQueryHandler(),
		app.CreateGetMachinesDueMaintenanceQueryHandler(),
		scheduler,
		maintenanceThreshold,
	)
	server.RegisterRoutes(e)

	e.Logger.Fatal(e.Start(fmt.Sprintf("0.0.0.0:%s", port)))
}
