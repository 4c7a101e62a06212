package location

import (
	"context"
	"fmt"

	"github.com/bbernstein/lunartide/internal/config"
	"github.com/rs/zerolog/log"
)

// NewStore builds the Store selected by cfg.StoreBackend
func NewStore(ctx context.Context, cfg *config.Config) (Store, error) {
	log.Debug().Str("backend", cfg.StoreBackend).Str("profile", cfg.Profile).Msg("Creating location store")

	switch cfg.StoreBackend {
	case "", config.StoreMemory:
		return NewMemoryStore(), nil

	case config.StoreFile:
		return NewFileStore(cfg.StoreFilePath), nil

	case config.StoreDynamoDB:
		client, err := NewDynamoClient(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating DynamoDB client: %w", err)
		}
		return NewDynamoStore(client, cfg.DynamoTable, cfg.Profile), nil

	case config.StoreS3:
		if cfg.S3Bucket == "" {
			return nil, fmt.Errorf("S3_BUCKET is required for the s3 store")
		}
		client, err := NewS3Client(ctx)
		if err != nil {
			return nil, fmt.Errorf("creating S3 client: %w", err)
		}
		return NewS3Store(client, cfg.S3Bucket, cfg.Profile), nil

	case config.StorePostgres:
		if cfg.DatabaseDSN == "" {
			return nil, fmt.Errorf("DATABASE_DSN is required for the postgres store")
		}
		db, err := OpenPostgres(cfg.DatabaseDSN)
		if err != nil {
			return nil, err
		}
		return NewGormStore(db, cfg.Profile)

	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
