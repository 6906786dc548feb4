package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"net/url"
	"os"
	"os/signal"
	"path"
	"strconv"
	"strings"
	"syscall"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/jmoiron/sqlx"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"github.com/segmentio/kafka-go"
	httpSwagger "github.com/swaggo/http-swagger"
	"golang.org/x/time/rate"

	_ "github.com/sbilibin2017/recipe-app-api/docs"
	"github.com/sbilibin2017/recipe-app-api/internal/handlers"
	"github.com/sbilibin2017/recipe-app-api/internal/jwt"
	"github.com/sbilibin2017/recipe-app-api/internal/logger"
	"github.com/sbilibin2017/recipe-app-api/internal/media"
	"github.com/sbilibin2017/recipe-app-api/internal/middlewares"
	"github.com/sbilibin2017/recipe-app-api/internal/migrations"
	"github.com/sbilibin2017/recipe-app-api/internal/repositories"
	"github.com/sbilibin2017/recipe-app-api/internal/services"
)

// Build info variables, set via ldflags at build time.
var (
	buildVersion = "N/A" // Version of the service
	buildDate    = "N/A" // Build date
	buildCommit  = "N/A" // Git commit hash
)

// @title recipe-app-api API
// @version 1.0.0
// @description Multi-user recipe management API: accounts, tokens, recipes, tags and recipe images.
// @host localhost:8080
// @BasePath /
// @schemes http
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	printBuildInfo()
	configPath := parseFlags()

	cfg, err := parseConfig(configPath)
	if err != nil {
		log.Fatalf("failed to parse config: %v", err)
	}

	if err := run(context.Background(), cfg); err != nil {
		log.Fatalf("application stopped with error: %v", err)
	}
}

// printBuildInfo prints the build version, commit hash, and build date.
func printBuildInfo() {
	fmt.Printf("Version: %s, Commit: %s, Build: %s\n", buildVersion, buildCommit, buildDate)
}

// parseFlags parses command-line flags and returns the config file path.
func parseFlags() string {
	c := flag.String("c", "config.env", "Path to configuration file")
	flag.Parse()
	return *c
}

// appConfig holds application, database, Redis, JWT, media, Kafka and rate limit settings.
type appConfig struct {
	AppHost  string
	AppPort  string
	LogLevel string

	PGHost         string
	PGPort         int
	PGUser         string
	PGPassword     string
	PGDB           string
	PGMaxOpenConns int
	PGMaxIdleConns int

	RedisHost         string
	RedisPort         int
	RedisDB           int
	RedisPassword     string
	RedisPoolSize     int
	RedisMinIdleConns int

	JWTSecretKey string
	JWTExpSecond int

	MediaRoot      string
	MediaURL       string
	MediaPath      string
	MaxUploadBytes int64

	KafkaBrokers []string
	KafkaTopic   string

	RateLimitRPS   float64
	RateLimitBurst int
}

// parseConfig loads environment variables from a file and returns the application configuration.
// Variables already set in the environment take precedence over the file.
func parseConfig(path string) (cfg appConfig, err error) {
	_ = godotenv.Load(path)

	getEnv := func(key, defaultValue string) string {
		if val, ok := os.LookupEnv(key); ok && val != "" {
			return val
		}
		return defaultValue
	}
	getInt := func(key, defaultValue string, dst *int) {
		if err != nil {
			return
		}
		if *dst, err = strconv.Atoi(getEnv(key, defaultValue)); err != nil {
			err = fmt.Errorf("%s: %w", key, err)
		}
	}

	// Application config
	cfg.AppHost = getEnv("APP_HOST", "localhost")
	cfg.AppPort = getEnv("APP_PORT", "8080")
	cfg.LogLevel = getEnv("APP_LOG_LEVEL", "info")

	// PostgreSQL config
	cfg.PGHost = getEnv("POSTGRES_HOST", "localhost")
	cfg.PGUser = getEnv("POSTGRES_USER", "user")
	cfg.PGPassword = getEnv("POSTGRES_PASSWORD", "password")
	cfg.PGDB = getEnv("POSTGRES_DB", "database")
	getInt("POSTGRES_PORT", "5432", &cfg.PGPort)
	getInt("POSTGRES_MAX_OPEN_CONNS", "16", &cfg.PGMaxOpenConns)
	getInt("POSTGRES_MAX_IDLE_CONNS", "8", &cfg.PGMaxIdleConns)

	// Redis config
	cfg.RedisHost = getEnv("REDIS_HOST", "localhost")
	cfg.RedisPassword = getEnv("REDIS_PASSWORD", "")
	getInt("REDIS_PORT", "6379", &cfg.RedisPort)
	getInt("REDIS_DB", "0", &cfg.RedisDB)
	getInt("REDIS_POOL_SIZE", "10", &cfg.RedisPoolSize)
	getInt("REDIS_MIN_IDLE_CONNS", "2", &cfg.RedisMinIdleConns)

	// JWT config
	cfg.JWTSecretKey = getEnv("JWT_SECRET_KEY", "my_super_secret_key")
	getInt("JWT_EXP_SECOND", "86400", &cfg.JWTExpSecond)

	// Media config
	cfg.MediaRoot = getEnv("MEDIA_ROOT", "./media")
	cfg.MediaURL = getEnv("MEDIA_URL", "/media/")
	if err == nil {
		if cfg.MediaPath, err = mediaMountPath(cfg.MediaURL); err != nil {
			err = fmt.Errorf("MEDIA_URL: %w", err)
		}
	}
	var maxUploadMB int
	getInt("MAX_UPLOAD_MB", "10", &maxUploadMB)
	cfg.MaxUploadBytes = int64(maxUploadMB) << 20

	// Kafka config
	for _, broker := range strings.Split(getEnv("KAFKA_BROKERS", ""), ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
		}
	}
	cfg.KafkaTopic = getEnv("KAFKA_TOPIC", "recipe-events")

	// Rate limit config
	getInt("RATE_LIMIT_BURST", "10", &cfg.RateLimitBurst)
	if err == nil {
		if cfg.RateLimitRPS, err = strconv.ParseFloat(getEnv("RATE_LIMIT_RPS", "5"), 64); err != nil {
			err = fmt.Errorf("RATE_LIMIT_RPS: %w", err)
		}
	}

	return cfg, err
}

// mediaMountPath returns the router path uploaded files are served under: the path part
// of mediaURL with leading and trailing slashes, so "https://cdn.example.com/m" serves at "/m/".
func mediaMountPath(mediaURL string) (string, error) {
	u, err := url.Parse(mediaURL)
	if err != nil {
		return "", err
	}
	p := path.Clean("/" + u.Path)
	if p == "/" {
		return "", fmt.Errorf("%q has no path to serve files under", mediaURL)
	}
	return p + "/", nil
}

// run initializes the logger, database, Redis, Kafka writer and HTTP server.
// It sets up routes, applies middleware, and handles graceful shutdown.
func run(ctx context.Context, cfg appConfig) error {
	if err := logger.Initialize(cfg.LogLevel); err != nil {
		return fmt.Errorf("failed to initialize logger: %w", err)
	}
	defer logger.Sync()
	log := logger.Log
	log.Infof("Logger initialized with level %s", cfg.LogLevel)

	// Connect to PostgreSQL
	dsn := fmt.Sprintf("postgres://%s:%s@%s:%d/%s?sslmode=disable",
		cfg.PGUser, cfg.PGPassword, cfg.PGHost, cfg.PGPort, cfg.PGDB)
	log.Infof("Connecting to PostgreSQL at %s:%d/%s", cfg.PGHost, cfg.PGPort, cfg.PGDB)

	db, err := sqlx.ConnectContext(ctx, "pgx", dsn)
	if err != nil {
		return fmt.Errorf("PostgreSQL connection error: %w", err)
	}
	defer db.Close()
	db.SetMaxOpenConns(cfg.PGMaxOpenConns)
	db.SetMaxIdleConns(cfg.PGMaxIdleConns)

	if err := migrations.Up(db.DB); err != nil {
		return fmt.Errorf("failed to apply migrations: %w", err)
	}

	// Connect to Redis
	rdb := redis.NewClient(&redis.Options{
		Addr:         fmt.Sprintf("%s:%d", cfg.RedisHost, cfg.RedisPort),
		Password:     cfg.RedisPassword,
		DB:           cfg.RedisDB,
		PoolSize:     cfg.RedisPoolSize,
		MinIdleConns: cfg.RedisMinIdleConns,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("Redis connection error: %w", err)
	}
	defer rdb.Close()

	// Kafka is optional; without brokers events are not published.
	var kafkaWriter services.KafkaWriter
	if len(cfg.KafkaBrokers) > 0 {
		w := &kafka.Writer{
			Addr:                   kafka.TCP(cfg.KafkaBrokers...),
			Topic:                  cfg.KafkaTopic,
			Balancer:               &kafka.Hash{},
			BatchTimeout:           10 * time.Millisecond,
			RequiredAcks:           kafka.RequireOne,
			AllowAutoTopicCreation: true,
		}
		defer w.Close()
		kafkaWriter = w
		log.Infof("Publishing recipe events to Kafka topic %s", cfg.KafkaTopic)
	}

	images, err := media.NewStorage(cfg.MediaRoot, cfg.MediaURL)
	if err != nil {
		return fmt.Errorf("failed to initialize media storage: %w", err)
	}

	// Initialize JWT service
	tokens := jwt.New(
		jwt.WithSecretKey(cfg.JWTSecretKey),
		jwt.WithExpiration(time.Duration(cfg.JWTExpSecond)*time.Second),
	)

	// Initialize repositories
	txManager := repositories.NewTxManager(db)
	userReadRepo := repositories.NewUserReadRepository(db, repositories.GetTxFromContext)
	userWriteRepo := repositories.NewUserWriteRepository(db, repositories.GetTxFromContext)
	tokenRepo := repositories.NewTokenCacheRepository(rdb, tokens.Expiration())
	tagReadRepo := repositories.NewTagReadRepository(db, repositories.GetTxFromContext)
	tagWriteRepo := repositories.NewTagWriteRepository(db, repositories.GetTxFromContext)
	recipeReadRepo := repositories.NewRecipeReadRepository(db, repositories.GetTxFromContext)
	recipeWriteRepo := repositories.NewRecipeWriteRepository(db, repositories.GetTxFromContext)

	// Initialize services
	authService := services.NewAuthService(userReadRepo, userWriteRepo, tokens, tokenRepo)
	recipeService := services.NewRecipeService(
		txManager, recipeReadRepo, recipeWriteRepo, tagWriteRepo, images,
		services.NewEventPublisher(kafkaWriter),
	)
	tagService := services.NewTagService(tagReadRepo, tagWriteRepo)

	ctxShutdown, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM, syscall.SIGQUIT)
	defer stop()

	limiter := middlewares.NewIPRateLimiter(rate.Limit(cfg.RateLimitRPS), cfg.RateLimitBurst)
	go limiter.Run(ctxShutdown, 10*time.Minute)

	r := newRouter(routes{
		register:     handlers.NewRegisterHandler(authService),
		token:        handlers.NewTokenHandler(authService),
		getProfile:   handlers.NewGetProfileHandler(authService),
		patchProfile: handlers.NewUpdateProfileHandler(authService, false),
		putProfile:   handlers.NewUpdateProfileHandler(authService, true),
		listRecipes:  handlers.NewListRecipesHandler(recipeService),
		createRecipe: handlers.NewCreateRecipeHandler(recipeService),
		getRecipe:    handlers.NewGetRecipeHandler(recipeService),
		patchRecipe:  handlers.NewUpdateRecipeHandler(recipeService, false),
		putRecipe:    handlers.NewUpdateRecipeHandler(recipeService, true),
		deleteRecipe: handlers.NewDeleteRecipeHandler(recipeService),
		uploadImage:  handlers.NewUploadRecipeImageHandler(recipeService, cfg.MaxUploadBytes),
		listTags:     handlers.NewListTagsHandler(tagService),
		updateTag:    handlers.NewUpdateTagHandler(tagService),
		deleteTag:    handlers.NewDeleteTagHandler(tagService),
		auth:         middlewares.AuthMiddleware(tokens, authService),
		rateLimit:    middlewares.RateLimitMiddleware(limiter),
		logging:      middlewares.LoggingMiddleware(log),
		mediaPath:    cfg.MediaPath,
		media:        images.Handler(),
		swagger: httpSwagger.Handler(
			httpSwagger.URL(fmt.Sprintf("http://%s:%s/swagger/doc.json", cfg.AppHost, cfg.AppPort)),
		),
	})

	srv := &http.Server{
		Addr:              fmt.Sprintf("%s:%s", cfg.AppHost, cfg.AppPort),
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Graceful shutdown
	errChan := make(chan error, 1)

	go func() {
		log.Infof("HTTP server listening on %s:%s", cfg.AppHost, cfg.AppPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errChan <- fmt.Errorf("HTTP server failed: %w", err)
		}
	}()

	select {
	case <-ctxShutdown.Done():
		log.Info("Shutdown signal received, stopping HTTP server...")
	case serveErr := <-errChan:
		return serveErr
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Errorw("HTTP server shutdown error", "error", err)
	}

	log.Info("HTTP server stopped gracefully")
	return nil
}
