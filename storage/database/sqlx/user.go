package sqlxrepos

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/pkg/errors"

	"github.com/jltacademy/backend/core/user"
)

type userRepository struct {
	db *sqlx.DB
}

var _ user.Repository = (*userRepository)(nil) // interface compliance check

func NewUserRepository(db *sqlx.DB) *userRepository {
	return &userRepository{db: db}
}

// trapNoRowsErr maps psql "no rows" err to user.ErrNotFound
func (repo userRepository) trapNoRowsErr(err error, msg string) error {
	if err == sql.ErrNoRows {
		return user.ErrNotFound
	}
	return errors.Wrap(err, msg)
}

func (repo userRepository) CreateUser(ctx context.Context, usr user.User) (user.User, error) {
	query := `
		INSERT INTO admin_user (username, email, password_hash, role, created_at, updated_at)
		VALUES (:username, :email, :password_hash, :role, :created_at, :updated_at)
		RETURNING id`
	rows, err := sqlx.NamedQueryContext(ctx, repo.db, query, usr)
	if err != nil {
		return user.User{}, errors.Wrap(err, "creating user")
	}
	defer func() { _ = rows.Close() }()
	if rows.Next() {
		if err = rows.Scan(&usr.ID); err != nil {
			return user.User{}, errors.Wrap(err, "creating user")
		}
	}
	return usr, rows.Err()
}

func (repo userRepository) GetUserByID(ctx context.Context, id int) (user.User, error) {
	var usr user.User
	query := `SELECT * FROM admin_user WHERE id = $1`
	if err := repo.db.GetContext(ctx, &usr, query, id); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "getting user by ID")
	}
	return usr, nil
}

func (repo userRepository) GetUserByUsernameOrEmail(ctx context.Context, username string) (user.User, error) {
	var usr user.User
	query := `SELECT * FROM admin_user WHERE username = $1 OR email = $1`
	if err := repo.db.GetContext(ctx, &usr, query, username); err != nil {
		return user.User{}, repo.trapNoRowsErr(err, "getting user by username or email")
	}
	return usr, nil
}

func (repo userRepository) UpdateUserPassword(ctx context.Context, usr user.User) error {
	query := `UPDATE admin_user SET password_hash = :password_hash, updated_at = :updated_at WHERE id = :id`
	res, err := repo.db.NamedExecContext(ctx, query, usr)
	if err != nil {
		return errors.Wrap(err, "updating user password")
	}
	n, err := res.RowsAffected()
	if err != nil {
		return errors.Wrap(err, "updating user password")
	}
	if n == 0 {
		return user.ErrNotFound
	}
	return nil
}
