package app

import (
	"net/http"

	"bokumono-go/internal/config"
	"bokumono-go/internal/db"
	petsdomain "bokumono-go/internal/domain/pets"
	profiledomain "bokumono-go/internal/domain/profile"
	schedulesdomain "bokumono-go/internal/domain/schedules"
	"bokumono-go/internal/repository/inmemory"
	petsrepo "bokumono-go/internal/repository/postgres/pets"
	profilerepo "bokumono-go/internal/repository/postgres/profile"
	schedulesrepo "bokumono-go/internal/repository/postgres/schedules"
	"bokumono-go/internal/transport/httpserver"
	"bokumono-go/internal/transport/httpserver/handler"
	"bokumono-go/pkg/logger"
	"gorm.io/gorm"
)

type App struct {
	cfg        config.Config
	httpServer *http.Server
	db         *gorm.DB
}

func New(log logger.Logger) (*App, error) {
	log.Info("app: loading config")
	cfg, err := config.Load(log)
	if err != nil {
		return nil, err
	}

	log.Info("app: initializing database")
	dbConn, err := db.NewPostgres(cfg.DB, log)
	if err != nil {
		return nil, err
	}
	if err := db.Migrate(dbConn); err != nil {
		return nil, err
	}

	schedulesService := schedulesdomain.NewService(schedulesrepo.NewPostgres(dbConn))
	petsService := petsdomain.NewService(petsrepo.NewPostgres(dbConn), schedulesService, log)
	petsService.SetCache(inmemory.NewInMemoryPetsCache(), cfg.PetsCacheTTL)
	profileService := profiledomain.NewService(profilerepo.NewPostgres(dbConn))

	handlers := handler.New(petsService, schedulesService, profileService, log)

	log.Info("app: initializing router")
	router := httpserver.NewRouter(cfg, handlers, profileService, log)

	log.Info("app: initializing http server")
	srv := httpserver.New(cfg, router)

	return &App{
		cfg:        cfg,
		httpServer: srv,
		db:         dbConn,
	}, nil
}

func (a *App) HTTPServer() *http.Server {
	return a.httpServer
}

func (a *App) Close() error {
	if a.db == nil {
		return nil
	}
	sqlDB, err := a.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
