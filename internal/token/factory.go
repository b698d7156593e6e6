package token

import (
	"log/slog"

	"voteroom/internal/config"
)

// NewStoreFromConfig picks the durable backend: Redis when a host is
// configured, the token file otherwise. A failed Redis connection falls
// back to the file backend rather than leaving the client without
// durable credentials.
func NewStoreFromConfig(cfg config.TokenConfig, log *slog.Logger) (*Store, error) {
	if log == nil {
		log = slog.Default()
	}

	if cfg.Redis.Host != "" {
		backend, err := NewRedisBackend(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Username, cfg.Redis.Password, cfg.Redis.Prefix)
		if err == nil {
			log.Info("using redis token store", "addr", cfg.Redis.Host+":"+cfg.Redis.Port)
			return NewStore(backend, log), nil
		}
		log.Warn("redis connection failed, falling back to file token store", "err", err)
	}

	backend, err := NewFileBackend()
	if err != nil {
		return nil, err
	}
	log.Debug("using file token store", "path", backend.Path())
	return NewStore(backend, log), nil
}
