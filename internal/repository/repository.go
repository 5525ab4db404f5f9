package repository

import (
	"github.com/avelichko/taskdeck/pkg/database"
)

// Repositories holds all repository interfaces
type Repositories struct {
	User         UserRepository
	InvalidToken InvalidTokenRepository
	Task         TaskRepository
}

// NewRepositories creates all repositories
func NewRepositories(db *database.Postgres) *Repositories {
	return &Repositories{
		User:         NewUserRepository(db),
		InvalidToken: NewInvalidTokenRepository(db),
		Task:         NewTaskRepository(db),
	}
}
