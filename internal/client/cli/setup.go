package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/dmitrijs2005/docvault/internal/client/config"
	"github.com/dmitrijs2005/docvault/internal/client/repositories/files"
	"github.com/dmitrijs2005/docvault/internal/client/services"
	"github.com/dmitrijs2005/docvault/internal/client/share"
	"github.com/dmitrijs2005/docvault/internal/client/storage"
	"github.com/dmitrijs2005/docvault/internal/logging"
)

// Setup opens storage for cfg and wires the services into an App. The
// returned close function releases the database.
func Setup(ctx context.Context, cfg *config.Config, in io.Reader, out, logOut io.Writer) (*App, func() error, error) {
	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, nil, err
	}
	log := logging.New(logOut, level)

	db, err := storage.InitDatabase(ctx, cfg.StorageDriver, cfg.DSN())
	if err != nil {
		return nil, nil, fmt.Errorf("error initializing database: %w", err)
	}

	store, err := storage.NewStore(db, cfg.StorageDriver)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	fs, err := newFileStorage(ctx, cfg)
	if err != nil {
		_ = db.Close()
		return nil, nil, err
	}

	as := services.NewAuthService(store, log.With("component", "auth"))
	ds := services.NewDocumentService(as, store, fs,
		share.New(cfg.ShareCommand, cfg.ShareDir), cfg.CacheDir(),
		log.With("component", "documents"))

	log.Debug(ctx, "storage ready", "driver", cfg.StorageDriver, "files", cfg.FilesBackend)
	return NewApp(as, ds, log, in, out), db.Close, nil
}

func newFileStorage(ctx context.Context, cfg *config.Config) (files.Storage, error) {
	switch cfg.FilesBackend {
	case config.FilesLocal:
		return files.NewLocalStorage(cfg.DataDir), nil
	case config.FilesS3:
		return files.NewS3Storage(ctx, files.S3Options{
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}
	return nil, fmt.Errorf("unsupported files backend %q", cfg.FilesBackend)
}
