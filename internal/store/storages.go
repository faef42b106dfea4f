package store

import "github.com/MKhiriev/go-realm/internal/logger"

// Storages aggregates the repositories of one service. Only the fields the
// running service needs are populated.
type Storages struct {
	UserRepository      UserRepository
	GameStateRepository GameStateRepository
}

// NewAuthStorages builds the repositories of the auth service.
func NewAuthStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		UserRepository: NewUserRepository(db, log),
	}
}

// NewGameStorages builds the repositories of the game service.
func NewGameStorages(db *DB, log *logger.Logger) *Storages {
	return &Storages{
		GameStateRepository: NewGameStateRepository(db, log),
	}
}
