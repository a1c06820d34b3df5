package directory

import (
	"context"
	"fmt"

	"github.com/uptrace/bun"

	"oncampus/internal/collection"
	"oncampus/internal/config"
	"oncampus/internal/logger"
	"oncampus/internal/storage"
	"oncampus/internal/storage/db"
	rediswrap "oncampus/internal/storage/redis"
)

// OpenStore connects to the backend selected by cfg.Store.Driver and applies
// the configured namespace. The returned close function releases the
// backend's connections.
func OpenStore(ctx context.Context, cfg *config.Config, log *logger.Logger) (storage.Store, func() error, error) {
	var (
		kv      storage.Store
		closeFn = func() error { return nil }
	)

	switch cfg.Store.Driver {
	case config.DriverMemory:
		log.Warn("STORE", "Using in-memory store, data is lost on exit")
		kv = storage.NewMemory(nil)

	case config.DriverRedis:
		client, err := rediswrap.Connect(ctx, cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB)
		if err != nil {
			return nil, nil, err
		}
		log.Info("REDIS", fmt.Sprintf("Connected to Redis at %s (DB: %d)", cfg.Redis.Addr, cfg.Redis.DB))
		kv = rediswrap.NewRedis(client, log)
		closeFn = client.Close

	case config.DriverSQLite, config.DriverPostgres:
		var (
			bunDB *bun.DB
			err   error
		)
		if cfg.Store.Driver == config.DriverPostgres {
			bunDB, err = db.OpenPostgres(cfg.Database.PostgresDSN)
		} else {
			bunDB, err = db.OpenSQLite(cfg.Database.SQLiteDSN)
		}
		if err != nil {
			return nil, nil, err
		}

		store := &db.DB{Bun: bunDB}
		if err := store.Migrate(ctx); err != nil {
			bunDB.Close()
			return nil, nil, err
		}
		log.Info("DATABASE", fmt.Sprintf("Using %s key-value table kv_entries", cfg.Store.Driver))
		kv = store
		closeFn = bunDB.Close

	default:
		return nil, nil, fmt.Errorf("unknown STORE_DRIVER %q", cfg.Store.Driver)
	}

	if cfg.Store.Namespace != "" {
		log.Info("STORE", fmt.Sprintf("Namespacing keys under %q", cfg.Store.Namespace))
	}
	return storage.Namespaced(kv, cfg.Store.Namespace), closeFn, nil
}

// Open builds a Directory over the configured store. Collections are not
// initialized yet.
func Open(ctx context.Context, cfg *config.Config, log *logger.Logger, opts ...collection.Option) (*Directory, func() error, error) {
	kv, closeFn, err := OpenStore(ctx, cfg, log)
	if err != nil {
		return nil, nil, err
	}

	fingerprint, ok := collection.FingerprintByName(cfg.Store.FingerprintMode)
	if !ok {
		log.Warn("CONFIG", fmt.Sprintf("Unknown FINGERPRINT_MODE %q, using length", cfg.Store.FingerprintMode))
	}
	opts = append([]collection.Option{collection.WithFingerprint(fingerprint)}, opts...)

	return New(kv, log, opts...), closeFn, nil
}
