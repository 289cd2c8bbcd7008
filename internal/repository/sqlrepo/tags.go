package sqlrepo

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blog-orms/internal/utils/databaseutils"
	"github.com/siahsang/blog-orms/models"
)

type TagRepository struct {
	sqlTemplate *databaseutils.SQLTemplate
}

func scanTag(rows *sql.Rows) (*models.Tag, error) {
	tag := &models.Tag{}
	if err := rows.Scan(&tag.ID, &tag.Name); err != nil {
		return nil, err
	}
	return tag, nil
}

func (r *TagRepository) FindAll(ctx context.Context) ([]*models.Tag, error) {
	const selectSQL = `SELECT id, name FROM tags ORDER BY name`

	tags, err := databaseutils.ExecuteQuery(r.sqlTemplate, ctx, selectSQL, scanTag)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return tags, nil
}

func (r *TagRepository) FindByID(ctx context.Context, id string) (*models.Tag, error) {
	const selectSQL = `SELECT id, name FROM tags WHERE id = ?`
	return findOne(r.sqlTemplate, ctx, selectSQL, scanTag, id)
}

func (r *TagRepository) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	const selectSQL = `SELECT id, name FROM tags WHERE name = ?`
	return findOne(r.sqlTemplate, ctx, selectSQL, scanTag, name)
}

func (r *TagRepository) Create(ctx context.Context, name string) (*models.Tag, error) {
	const insertSQL = `INSERT INTO tags (id, name) VALUES (?, ?)`

	tag := &models.Tag{ID: uuid.NewString(), Name: name}
	if _, err := r.sqlTemplate.Exec(ctx, insertSQL, tag.ID, tag.Name); err != nil {
		return nil, xerrors.New(err)
	}
	return tag, nil
}

func (r *TagRepository) Update(ctx context.Context, id, name string) (*models.Tag, error) {
	const updateSQL = `UPDATE tags SET name = ? WHERE id = ?`

	affected, err := r.sqlTemplate.ExecAffected(ctx, updateSQL, name, id)
	if err != nil {
		return nil, xerrors.New(err)
	}
	if affected == 0 {
		return nil, nil
	}
	return &models.Tag{ID: id, Name: name}, nil
}

func (r *TagRepository) Delete(ctx context.Context, id string) (bool, error) {
	const deleteSQL = `DELETE FROM tags WHERE id = ?`

	affected, err := r.sqlTemplate.ExecAffected(ctx, deleteSQL, id)
	if err != nil {
		return false, xerrors.New(err)
	}
	return affected > 0, nil
}
