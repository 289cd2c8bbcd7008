package gormrepo

import (
	"context"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blog-orms/internal/utils/functional"
	"github.com/siahsang/blog-orms/models"
)

type TagRepository struct {
	session
}

func (r *TagRepository) FindAll(ctx context.Context) ([]*models.Tag, error) {
	db, cancel := r.with(ctx)
	defer cancel()

	var rows []TagModel
	if err := db.Order("name").Find(&rows).Error; err != nil {
		return nil, xerrors.New(err)
	}
	return functional.Map(rows, TagModel.toDomain), nil
}

func (r *TagRepository) FindByID(ctx context.Context, id string) (*models.Tag, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *TagRepository) FindByName(ctx context.Context, name string) (*models.Tag, error) {
	return r.findOne(ctx, "name = ?", name)
}

func (r *TagRepository) findOne(ctx context.Context, condition string, arg any) (*models.Tag, error) {
	db, cancel := r.with(ctx)
	defer cancel()

	var rows []TagModel
	if err := db.Where(condition, arg).Limit(1).Find(&rows).Error; err != nil {
		return nil, xerrors.New(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toDomain(), nil
}

func (r *TagRepository) Create(ctx context.Context, name string) (*models.Tag, error) {
	db, cancel := r.with(ctx)
	defer cancel()

	m := TagModel{Name: name}
	if err := db.Create(&m).Error; err != nil {
		return nil, xerrors.New(err)
	}
	return m.toDomain(), nil
}

func (r *TagRepository) Update(ctx context.Context, id, name string) (*models.Tag, error) {
	db, cancel := r.with(ctx)
	defer cancel()

	result := db.Model(&TagModel{}).Where("id = ?", id).Update("name", name)
	if result.Error != nil {
		return nil, xerrors.New(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return &models.Tag{ID: id, Name: name}, nil
}

func (r *TagRepository) Delete(ctx context.Context, id string) (bool, error) {
	db, cancel := r.with(ctx)
	defer cancel()

	result := db.Where("id = ?", id).Delete(&TagModel{})
	if result.Error != nil {
		return false, xerrors.New(result.Error)
	}
	return result.RowsAffected > 0, nil
}
