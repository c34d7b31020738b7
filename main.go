package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/Amund211/brawltools/internal/adapters/cache"
	"github.com/Amund211/brawltools/internal/adapters/database"
	"github.com/Amund211/brawltools/internal/adapters/prrepository"
	"github.com/Amund211/brawltools/internal/adapters/statsprovider"
	"github.com/Amund211/brawltools/internal/app"
	"github.com/Amund211/brawltools/internal/config"
	"github.com/Amund211/brawltools/internal/domain"
	"github.com/Amund211/brawltools/internal/logging"
	"github.com/Amund211/brawltools/internal/ports"
	"github.com/Amund211/brawltools/internal/query"
	"github.com/Amund211/brawltools/internal/ratelimiting"
	"github.com/Amund211/brawltools/internal/reporting"
	"github.com/Amund211/brawltools/internal/telemetry"
	"github.com/google/uuid"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	// Root certificates for the scratch image
	_ "golang.org/x/crypto/x509roots/fallback"
)

// TODO: Put in config
const PROD_DOMAIN_SUFFIX = "brawltools.com"
const STAGING_DOMAIN_SUFFIX = "brawltools-web.pages.dev"

// Set with -ldflags "-X main.version=..."
var version = "dev"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	instanceID := uuid.New().String()
	baseLogger := slog.New(slog.NewJSONHandler(os.Stdout, nil)).With("instanceID", instanceID)

	fail := func(msg string, args ...any) {
		baseLogger.Error(msg, args...)
		os.Exit(1)
	}

	config, err := config.ConfigFromEnv()
	if err != nil {
		fail("Failed to load config", "error", err.Error())
	}
	baseLogger.Info("Loaded config", "config", config.NonSensitiveString())

	logger := slog.New(
		logging.NewGoogleCloudTracingLogHandler(slog.NewJSONHandler(os.Stdout, nil), config.GoogleCloudProject()),
	).With("instanceID", instanceID)

	shutdownTelemetry, err := telemetry.SetupOTelSDK(ctx, "brawltools", version)
	if err != nil {
		fail("Failed to set up telemetry", "error", err.Error())
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTelemetry(shutdownCtx); err != nil {
			logger.Error("Failed to shut down telemetry", "error", err.Error())
		}
	}()
	logger.Info("Initialized telemetry")

	sentryMiddleware, flush, err := reporting.NewSentryMiddlewareOrMock(config)
	if err != nil {
		fail("Failed to initialize Sentry", "error", err.Error())
	}
	defer flush()
	logger.Info("Initialized Sentry middleware")

	httpClient := &http.Client{
		Timeout:   10 * time.Second,
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	}
	// Stay well below what a single client is expected to send to the API
	apiLimiter := ratelimiting.NewWindowLimitRequestLimiter(600, time.Minute, time.Now, time.After)
	limitedHTTPClient := ratelimiting.NewLimitedHTTPClient(httpClient, apiLimiter, 500*time.Millisecond)

	executor := query.NewExecutor(limitedHTTPClient, config.APIBaseURL())
	brawlTools, err := statsprovider.New(executor)
	if err != nil {
		fail("Failed to initialize statistics provider", "error", err.Error())
	}
	logger.Info("Initialized statistics provider", "apiBaseURL", executor.BaseURL())

	logger.Info("Initializing database connection")
	db, err := database.NewCloudsqlPostgresDatabase(config)
	if err != nil {
		fail("Failed to initialize database", "error", err.Error())
	}
	defer db.Close()
	logger.Info("Initialized database connection")

	repositorySchemaName := database.GetSchemaName(!config.IsProduction())

	err = database.NewDatabaseMigrator(db, logger.With("component", "migrator")).Migrate(ctx, repositorySchemaName)
	if err != nil {
		fail("Failed to migrate database", "error", err.Error())
	}

	prRepo := prrepository.NewPostgres(db, repositorySchemaName)
	logger.Info("Initialized PRRepository")

	playerCache, stopPlayerCache := cache.NewTTLCache[*domain.Player](10 * time.Minute)
	defer stopPlayerCache()
	prCache, stopPRCache := cache.NewTTLCache[*domain.PlayerPR](10 * time.Minute)
	defer stopPRCache()
	searchCache, stopSearchCache := cache.NewTTLCache[domain.SearchPlayers](1 * time.Hour)
	defer stopSearchCache()
	matchupCache, stopMatchupCache := cache.NewTTLCache[domain.Matchups](10 * time.Minute)
	defer stopMatchupCache()
	prListCache, stopPRListCache := cache.NewTTLCache[domain.PRList](1 * time.Hour)
	defer stopPRListCache()
	placementsCache, stopPlacementsCache := cache.NewTTLCache[domain.PlayerPlacements](10 * time.Minute)
	defer stopPlacementsCache()

	getPlayer := app.BuildGetPlayerWithCache(playerCache, brawlTools)
	getPlayerPR := app.BuildGetPlayerPRWithCache(prCache, brawlTools, prRepo, time.Now)
	getPRHistory := app.BuildGetPRHistory(prRepo)
	searchPlayers := app.BuildSearchPlayers(searchCache, brawlTools)
	getMatchup := app.BuildGetMatchup(matchupCache, brawlTools)
	listPR := app.BuildListPR(prListCache, brawlTools)
	getPlayerPlacements := app.BuildGetPlayerPlacements(placementsCache, brawlTools)

	allowedOrigins, err := ports.NewDomainSuffixes(PROD_DOMAIN_SUFFIX, STAGING_DOMAIN_SUFFIX)
	if err != nil {
		fail("Failed to initialize allowed origins", "error", err.Error())
	}

	ipRateLimiter, stopIPRateLimiter := ports.NewIPRateLimiter()
	defer stopIPRateLimiter()
	userIDRateLimiter, stopUserIDRateLimiter := ports.NewUserIDRateLimiter()
	defer stopUserIDRateLimiter()

	endpointMiddleware := func(name string) ports.Middleware {
		return ports.BuildEndpointMiddleware(
			name,
			logger.With("port", name),
			sentryMiddleware,
			allowedOrigins,
			ipRateLimiter,
			userIDRateLimiter,
		)
	}

	mux := http.NewServeMux()
	handle := func(pattern string, handler http.HandlerFunc) {
		mux.HandleFunc("OPTIONS "+pattern, ports.BuildCORSHandler(allowedOrigins))
		mux.HandleFunc("GET "+pattern, handler)
	}

	handle("/v1/player/{playerId}", ports.MakeGetPlayerHandler(getPlayer, endpointMiddleware("player")))
	handle("/v1/player/{playerId}/pr", ports.MakeGetPlayerPRHandler(getPlayerPR, endpointMiddleware("playerpr")))
	handle("/v1/player/{playerId}/pr/history", ports.MakeGetPRHistoryHandler(getPRHistory, endpointMiddleware("prhistory")))
	handle("/v1/player/{playerId}/placements", ports.MakeGetPlayerPlacementsHandler(getPlayerPlacements, endpointMiddleware("placements")))
	handle("/v1/matchup", ports.MakeGetMatchupHandler(getMatchup, endpointMiddleware("matchup")))
	handle("/v1/search", ports.MakeSearchPlayersHandler(searchPlayers, endpointMiddleware("search")))
	handle("/v1/pr", ports.MakeListPRHandler(listPR, endpointMiddleware("prlist")))

	server := &http.Server{
		Addr:              fmt.Sprintf(":%s", config.Port()),
		Handler:           otelhttp.NewHandler(mux, "brawltools"),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		<-ctx.Done()
		logger.Info("Shutting down server")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("Failed to shut down server", "error", err.Error())
		}
	}()

	logger.Info("Init complete")
	err = server.ListenAndServe()
	if errors.Is(err, http.ErrServerClosed) {
		logger.Info("Server shutdown")
	} else {
		fail("Server error", "error", err.Error())
	}
}
