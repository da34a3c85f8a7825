package sqldb

import (
	"context"
	"fmt"

	"github.com/fedenh3/proyecto-cava/internal/domain/user"
	qb "github.com/fedenh3/proyecto-cava/internal/platform/querybuilder"
)

type UserRepository struct {
	db *DB
}

func NewUserRepository(db *DB) *UserRepository {
	return &UserRepository{db: db}
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (user.User, bool, error) {
	query, args, err := qb.Select("*").Dialect(r.db.Dialect).From("usuarios").
		Where(qb.Eq("username", username)).
		ToSQL()
	if err != nil {
		return user.User{}, false, fmt.Errorf("build find usuario query: %w", err)
	}

	var row usuarioTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return user.User{}, false, nil
		}
		return user.User{}, false, fmt.Errorf("find usuario %s: %w", username, err)
	}

	return user.User{
		ID:           row.ID,
		Username:     row.Username,
		PasswordHash: row.PasswordHash,
		Role:         row.Rol,
		Name:         nullStringValue(row.Nombre),
	}, true, nil
}

func (r *UserRepository) Insert(ctx context.Context, u user.User) (int64, error) {
	query, args, err := qb.InsertInto("usuarios").Dialect(r.db.Dialect).
		Columns("username", "password_hash", "rol", "nombre").
		Values(u.Username, u.PasswordHash, u.Role, nullString(u.Name)).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build insert usuario query: %w", err)
	}

	id, err := insertID(ctx, r.db, r.db.Dialect, query, args)
	if err != nil {
		return 0, fmt.Errorf("insert usuario %s: %w", u.Username, err)
	}
	return id, nil
}
