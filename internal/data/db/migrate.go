package db

import (
	"fmt"

	types "github.com/yungbote/brainsync-backend/internal/domain"
)

// AutoMigrateAll creates or updates every table. On Postgres the pgvector extension is
// enabled first because note.embedding is a vector column.
func (s *Service) AutoMigrateAll() error {
	if s.driver == DriverPostgres {
		if err := s.db.Exec(`CREATE EXTENSION IF NOT EXISTS vector;`).Error; err != nil {
			return fmt.Errorf("failed to enable pgvector extension: %w", err)
		}
	}
	if err := s.db.AutoMigrate(types.Models()...); err != nil {
		return fmt.Errorf("automigrate: %w", err)
	}
	s.log.Info("Database migrated", "driver", s.driver, "models", len(types.Models()))
	return nil
}
