package bootstrap

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	appControllers "github.com/SheershikaSB/school-vaccination-portal/internal/app/controllers"
	appMigrations "github.com/SheershikaSB/school-vaccination-portal/internal/app/migrations"
	appRepos "github.com/SheershikaSB/school-vaccination-portal/internal/app/repositories"
	appRoutes "github.com/SheershikaSB/school-vaccination-portal/internal/app/routes"
	appServices "github.com/SheershikaSB/school-vaccination-portal/internal/app/services"
	"github.com/SheershikaSB/school-vaccination-portal/internal/config"
	"github.com/SheershikaSB/school-vaccination-portal/internal/db"
	appMiddleware "github.com/SheershikaSB/school-vaccination-portal/internal/middleware"
	pkgAuth "github.com/SheershikaSB/school-vaccination-portal/internal/pkg/auth"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/filestorage"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/logger"
	"github.com/SheershikaSB/school-vaccination-portal/internal/pkg/ratelimit"
)

// DefaultConfigPath is used when no explicit config file is given.
const DefaultConfigPath = "configs/config.yaml"

// Dependencies holds all the application dependencies
type Dependencies struct {
	Repos              *appRepos.Repositories
	JWTService         *pkgAuth.JWTService
	FileStorage        *filestorage.LocalStorage
	Redis              *redis.Client
	LoginLimiter       *ratelimit.Limiter
	AuthService        appServices.AuthService
	StudentService     appServices.StudentService
	VaccinationService appServices.VaccinationService
	DriveService       appServices.DriveService
	DashboardService   appServices.DashboardService
	ReportService      appServices.ReportService
	Controllers        appRoutes.Controllers
	AuthMiddleware     *appMiddleware.AuthMiddleware
	Logger             zerolog.Logger
}

// LoadConfigAndSetupLogger loads configuration and initializes the logger.
func LoadConfigAndSetupLogger(configPath string) (*config.Config, zerolog.Logger, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}
	cfg, err := config.LoadConfig(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("Failed to load configuration")
		return nil, zerolog.Logger{}, err
	}

	logLevel := logger.LogLevel(strings.ToLower(cfg.Logging.Level))
	lgr := logger.Configure(logger.Config{
		Level:  logLevel,
		Pretty: strings.ToLower(cfg.Logging.Format) == "text",
		File: logger.FileConfig{
			Path:       cfg.Logging.File,
			MaxSizeMB:  cfg.Logging.MaxSizeMB,
			MaxBackups: cfg.Logging.MaxBackups,
			MaxAgeDays: cfg.Logging.MaxAgeDays,
		},
	})

	lgr.Info().Str("logLevel", string(logLevel)).Str("logFormat", cfg.Logging.Format).Msg("Logger configured")
	return cfg, lgr, nil
}

// SetupDatabase connects to PostgreSQL and, when enabled, applies pending migrations.
func SetupDatabase(cfg *config.Config, lgr zerolog.Logger) (*db.PostgresDB, error) {
	lgr.Info().Msg("Establishing database connection...")
	database, err := db.NewPostgresDB(cfg)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to connect to database")
		return nil, err
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := database.Ping(ctx); err != nil {
		lgr.Error().Err(err).Msg("Failed to ping database")
		database.Close()
		return nil, err
	}
	lgr.Info().Msg("Database connection successfully established.")

	if !cfg.Database.AutoMigrate {
		lgr.Info().Msg("Automatic migrations disabled, skipping")
		return database, nil
	}

	if err := RunMigrations(context.Background(), database); err != nil {
		lgr.Error().Err(err).Msg("Database migration error")
		database.Close()
		return nil, err
	}

	return database, nil
}

// RunMigrations applies every pending migration to the database.
func RunMigrations(ctx context.Context, database *db.PostgresDB) error {
	migrator, err := appMigrations.NewMigrator(database.Pool)
	if err != nil {
		return fmt.Errorf("failed to create migrator: %w", err)
	}
	defer migrator.Close()

	if err := migrator.Up(ctx); err != nil {
		return fmt.Errorf("database migrations failed: %w", err)
	}
	return nil
}

// BuildDependencies initializes application repositories, services, and controllers.
func BuildDependencies(cfg *config.Config, database *db.PostgresDB, lgr zerolog.Logger) (*Dependencies, error) {
	deps := &Dependencies{Logger: lgr}

	deps.Repos = appRepos.NewRepositories(database)

	var err error
	deps.FileStorage, err = filestorage.NewLocalStorage(cfg.Server.StoragePath)
	if err != nil {
		lgr.Error().Err(err).Msg("Failed to initialize file storage")
		return nil, fmt.Errorf("failed to initialize file storage: %w", err)
	}

	deps.Redis, err = ratelimit.NewClient(context.Background(), ratelimit.Config{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       cfg.Redis.DB,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to redis: %w", err)
	}
	deps.LoginLimiter = ratelimit.NewLimiter(deps.Redis, cfg.Redis.LoginRateLimit, cfg.LoginRateWindow())
	if !deps.LoginLimiter.Enabled() {
		lgr.Info().Msg("Login rate limiting disabled")
	}

	deps.JWTService = pkgAuth.NewJWTService(pkgAuth.JWTConfig{
		SecretKey:      cfg.JWT.Secret,
		AccessTokenExp: cfg.AccessTokenTTL(),
		TokenIssuer:    cfg.JWT.Issuer,
	})

	deps.AuthService = appServices.NewAuthService(deps.Repos.UserRepository, deps.JWTService, lgr)
	deps.StudentService = appServices.NewStudentService(database, deps.Repos.StudentRepository, deps.Repos.VaccinationRecordRepository, lgr)
	deps.VaccinationService = appServices.NewVaccinationService(database, deps.Repos.StudentRepository, deps.Repos.VaccinationRecordRepository, lgr)
	deps.DriveService = appServices.NewDriveService(deps.Repos.DriveRepository, cfg.Vaccination.DriveLeadDays, nil, lgr)
	deps.DashboardService = appServices.NewDashboardService(deps.Repos.ReportRepository, deps.Repos.DriveRepository, cfg.Vaccination.UpcomingWindowDays, nil)
	deps.ReportService = appServices.NewReportService(deps.Repos.ReportRepository, cfg.Reports.CountMode, lgr)

	deps.AuthMiddleware = appMiddleware.NewAuthMiddleware(deps.JWTService)

	deps.Controllers = appRoutes.Controllers{
		Auth:      appControllers.NewAuthController(deps.AuthService, lgr),
		Student:   appControllers.NewStudentController(deps.StudentService, deps.VaccinationService, deps.FileStorage, lgr),
		Drive:     appControllers.NewDriveController(deps.DriveService),
		Dashboard: appControllers.NewDashboardController(deps.DashboardService),
		Report:    appControllers.NewReportController(deps.ReportService, lgr),
		Health:    appControllers.NewHealthController(database),
	}

	return deps, nil
}

// SetupRouter configures the Gin engine with middleware and routes.
func SetupRouter(cfg *config.Config, deps *Dependencies, lgr zerolog.Logger) (*gin.Engine, error) {
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
		lgr.Info().Msg("Setting Gin mode to release")
	} else {
		gin.SetMode(gin.DebugMode)
		lgr.Info().Msg("Setting Gin mode to debug")
	}

	if err := appMiddleware.RegisterValidators(); err != nil {
		return nil, fmt.Errorf("failed to register validators: %w", err)
	}

	router, err := NewEngine(cfg)
	if err != nil {
		return nil, err
	}

	appRoutes.SetupSwagger(router)

	appRoutes.SetupRouter(router, deps.Controllers, deps.AuthMiddleware, deps.LoginLimiter)

	return router, nil
}

// NewEngine creates the gin engine with the global middleware chain.
// Forwarding headers set the client IP only when sent by a configured proxy.
func NewEngine(cfg *config.Config) (*gin.Engine, error) {
	router := gin.New()
	if err := router.SetTrustedProxies(cfg.Server.TrustedProxies); err != nil {
		return nil, fmt.Errorf("invalid trusted proxies: %w", err)
	}

	router.Use(
		appMiddleware.Recovery(),
		appMiddleware.RequestID(),
		appMiddleware.RequestLogger(),
	)

	if len(cfg.Server.AllowedOrigins) > 0 {
		router.Use(cors.New(cors.Config{
			AllowOrigins:     cfg.Server.AllowedOrigins,
			AllowMethods:     []string{"GET", "POST", "PUT", "OPTIONS"},
			AllowHeaders:     []string{"Origin", "Content-Type", "Authorization", appMiddleware.HeaderRequestID},
			ExposeHeaders:    []string{"Content-Disposition", appMiddleware.HeaderRequestID},
			AllowCredentials: true,
			MaxAge:           12 * time.Hour,
		}))
	}

	return router, nil
}
