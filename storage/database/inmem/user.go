package inmemdb

import (
	"context"
	"strings"

	"github.com/jltacademy/backend/core/user"
)

type userRepository struct {
	db *DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *DB) *userRepository {
	return &userRepository{db: db}
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	repo.db.user.Lock()
	defer repo.db.user.Unlock()

	repo.db.user.seq++
	usr.ID = repo.db.user.seq
	repo.db.user.table[usr.ID] = &usr
	return usr, nil
}

func (repo userRepository) GetUserByID(ctx context.Context, id int) (user.User, error) {
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()

	if usr, ok := repo.db.user.table[id]; ok {
		return *usr, nil
	}
	return user.User{}, user.ErrNotFound
}

func (repo userRepository) GetUserByUsernameOrEmail(ctx context.Context, uname string) (user.User, error) {
	repo.db.user.RLock()
	defer repo.db.user.RUnlock()

	uname = strings.ToLower(uname)
	for _, usr := range repo.db.user.table {
		if strings.ToLower(usr.Username) == uname || strings.ToLower(usr.Email) == uname {
			return *usr, nil
		}
	}
	return user.User{}, user.ErrNotFound
}

func (repo userRepository) UpdateUserPassword(ctx context.Context, usr user.User) error {
	repo.db.user.Lock()
	defer repo.db.user.Unlock()

	stored, ok := repo.db.user.table[usr.ID]
	if !ok {
		return user.ErrNotFound
	}
	stored.PasswordHash = usr.PasswordHash
	stored.UpdatedAt = usr.UpdatedAt
	return nil
}
