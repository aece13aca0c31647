package root

import (
	"context"
	"database/sql"

	"cultivator/internal/config"
	"cultivator/internal/engine"
	"cultivator/internal/logging"
	"cultivator/internal/storage"
)

func openDB(ctx context.Context) (*sql.DB, config.Config, func(), error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	db, err := storage.Open(ctx, cfg.DBPath)
	if err != nil {
		return nil, config.Config{}, nil, err
	}
	cleanup := func() {
		_ = db.Close()
	}
	return db, cfg, cleanup, nil
}

func openService(ctx context.Context) (*engine.Service, func(), error) {
	db, cfg, cleanup, err := openDB(ctx)
	if err != nil {
		return nil, nil, err
	}
	log := logging.New(cfg.Env, cfg.LogLevel)
	svc := engine.NewService(db, log, engine.SystemClock())
	if err := svc.SeedShop(ctx); err != nil {
		cleanup()
		return nil, nil, err
	}
	return svc, cleanup, nil
}
