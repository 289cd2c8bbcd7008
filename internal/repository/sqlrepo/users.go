package sqlrepo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blog-orms/internal/utils/databaseutils"
	"github.com/siahsang/blog-orms/models"
)

type UserRepository struct {
	sqlTemplate *databaseutils.SQLTemplate
}

func scanUser(rows *sql.Rows) (*models.User, error) {
	user := &models.User{}
	if err := rows.Scan(&user.ID, &user.Name, &user.Email, &user.Active); err != nil {
		return nil, err
	}
	return user, nil
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	const selectSQL = `SELECT id, name, email, active FROM users ORDER BY name, id`

	users, err := databaseutils.ExecuteQuery(r.sqlTemplate, ctx, selectSQL, scanUser)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return users, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	const selectSQL = `SELECT id, name, email, active FROM users WHERE id = ?`
	return findOne(r.sqlTemplate, ctx, selectSQL, scanUser, id)
}

func (r *UserRepository) Create(ctx context.Context, input models.CreateUserInput) (*models.User, error) {
	const insertSQL = `INSERT INTO users (id, name, email, active) VALUES (?, ?, ?, ?)`

	user := &models.User{
		ID:     uuid.NewString(),
		Name:   input.Name,
		Email:  input.Email,
		Active: true,
	}
	if _, err := r.sqlTemplate.Exec(ctx, insertSQL, user.ID, user.Name, user.Email, user.Active); err != nil {
		return nil, xerrors.New(err)
	}
	return user, nil
}

func (r *UserRepository) Update(ctx context.Context, id string, input models.UpdateUserInput) (*models.User, error) {
	const updateSQL = `UPDATE users SET name = ?, email = ?, active = ? WHERE id = ?`

	user, err := r.FindByID(ctx, id)
	if err != nil || user == nil {
		return nil, err
	}

	if input.Name != nil {
		user.Name = *input.Name
	}
	if input.Email != nil {
		user.Email = *input.Email
	}
	if input.Active != nil {
		user.Active = *input.Active
	}

	affected, err := r.sqlTemplate.ExecAffected(ctx, updateSQL, user.Name, user.Email, user.Active, id)
	if err != nil {
		return nil, xerrors.New(err)
	}
	if affected == 0 {
		return nil, nil
	}
	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	const deleteSQL = `DELETE FROM users WHERE id = ?`

	affected, err := r.sqlTemplate.ExecAffected(ctx, deleteSQL, id)
	if err != nil {
		return false, xerrors.New(err)
	}
	return affected > 0, nil
}
