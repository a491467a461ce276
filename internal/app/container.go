package app

import (
	"net/http"

	"github.com/sirupsen/logrus"

	"github.com/wordsnap/wordsnap/internal/adapter/repository"
	"github.com/wordsnap/wordsnap/internal/adapter/rest"
	"github.com/wordsnap/wordsnap/internal/infrastructure/config"
	"github.com/wordsnap/wordsnap/internal/infrastructure/database"
	"github.com/wordsnap/wordsnap/internal/infrastructure/scheduler"
	"github.com/wordsnap/wordsnap/internal/infrastructure/server"
	"github.com/wordsnap/wordsnap/internal/usecase"
)

// Container aggregates the application dependencies.
type Container struct {
	Config    *config.Config
	Logger    *logrus.Logger
	Server    *server.Server
	Scheduler *scheduler.Scheduler
}

// Initialize builds the application container: config, logger, database pool,
// repositories, usecases, HTTP server and the background scheduler. The
// returned cleanup closes the pool.
func Initialize() (*Container, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}

	logger, err := server.NewLogger(cfg)
	if err != nil {
		return nil, nil, err
	}

	pool, cleanup, err := database.NewConnection(cfg)
	if err != nil {
		if cleanup != nil {
			cleanup()
		}
		return nil, nil, err
	}

	wordRepo := repository.NewWordRepository(pool)
	quizRepo := repository.NewQuizResultRepository(pool)
	statsRepo := repository.NewStatisticsRepository(pool)

	wordUC := usecase.NewWordUsecase(wordRepo)
	quizUC := usecase.NewQuizUsecase(wordRepo, quizRepo, logger)
	statsUC := usecase.NewStatsUsecase(wordRepo, quizRepo, statsRepo)

	handler := rest.NewHandler(wordUC, quizUC, statsUC, logger)
	mux := http.NewServeMux()
	handler.RegisterRoutes(mux)

	return &Container{
		Config:    cfg,
		Logger:    logger,
		Server:    server.NewServer(cfg, logger, mux),
		Scheduler: scheduler.New(statsUC, logger, cfg.Scheduler.StatsRefreshInterval),
	}, cleanup, nil
}
