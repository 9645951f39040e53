package app

import (
	"fmt"
	"net/http"

	_ "github.com/lib/pq"
	"github.com/uptrace/opentelemetry-go-extra/otelsql"
	"github.com/uptrace/opentelemetry-go-extra/otelsqlx"

	"github.com/bolzplatz/tippspiel/external/openliga"
	"github.com/bolzplatz/tippspiel/internal/config"
	"github.com/bolzplatz/tippspiel/internal/domain/gameround"
	"github.com/bolzplatz/tippspiel/internal/infrastructure/repository/postgres"
	"github.com/bolzplatz/tippspiel/internal/interfaces/httpapi"
	"github.com/bolzplatz/tippspiel/internal/platform/logging"
	"github.com/bolzplatz/tippspiel/internal/usecase"
)

// NewHTTPServer wires repositories, services and the router into a ready
// server. The returned cleanup closes the database pool.
func NewHTTPServer(cfg config.Config, logger *logging.Logger) (*http.Server, func(), error) {
	db, err := otelsqlx.Connect("postgres", cfg.DBURL,
		otelsql.WithDBName(cfg.ServiceName),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("connect postgres: %w", err)
	}
	cleanup := func() {
		if closeErr := db.Close(); closeErr != nil {
			logger.Warn("close database", "error", closeErr)
		}
	}

	teamRepo := postgres.NewTeamRepository(db)
	matchRepo := postgres.NewMatchRepository(db)
	predictionRepo := postgres.NewPredictionRepository(db)
	userRepo := postgres.NewUserRepository(db)
	voteRepo := postgres.NewVoteRepository(db)

	feed := openliga.NewClient(openliga.ClientConfig{
		BaseURL: cfg.OpenLigaBaseURL,
		Timeout: cfg.OpenLigaTimeout,
		Logger:  logger,
	})

	calendar := gameround.DefaultCalendar()

	syncSvc := usecase.NewSyncService(feed, matchRepo, teamRepo, logger, usecase.SyncConfig{
		Competitions: cfg.Competitions,
		Season:       cfg.Season,
		TeamFilter:   cfg.TeamFilter,
		Workers:      cfg.SyncWorkers,
	})
	scoringSvc := usecase.NewScoringService(matchRepo, predictionRepo, userRepo, logger)
	predictionSvc := usecase.NewPredictionService(matchRepo, predictionRepo, calendar, cfg.NoDrawCompetitions, logger)
	leaderboardSvc := usecase.NewLeaderboardService(syncSvc, scoringSvc, matchRepo, predictionRepo, userRepo, calendar, logger)
	tableSvc := usecase.NewTableService(teamRepo)
	dashboardSvc := usecase.NewDashboardService(matchRepo, predictionRepo, userRepo)
	pollSvc := usecase.NewPollService(voteRepo)
	authSvc := usecase.NewAuthService(userRepo, usecase.AuthConfig{
		AccessCode: cfg.AccessCode,
		JWTSecret:  []byte(cfg.JWTSecret),
		TokenTTL:   cfg.TokenTTL,
	}, logger)

	handler := httpapi.NewHandler(
		authSvc,
		predictionSvc,
		leaderboardSvc,
		tableSvc,
		dashboardSvc,
		pollSvc,
		syncSvc,
		scoringSvc,
		teamRepo,
		logger,
	)
	router := httpapi.NewRouter(handler, authSvc, logger, cfg.CORSAllowedOrigins, cfg.InternalJobToken)

	server := &http.Server{
		Addr:         cfg.HTTPAddr,
		Handler:      router,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
	}

	if server.Addr == "" {
		cleanup()
		return nil, nil, fmt.Errorf("http server addr cannot be empty")
	}

	return server, cleanup, nil
}
