package gormrepo

import (
	"context"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blog-orms/internal/utils/functional"
	"github.com/siahsang/blog-orms/models"
)

type UserRepository struct {
	session
}

func (r *UserRepository) FindAll(ctx context.Context) ([]*models.User, error) {
	db, cancel := r.with(ctx)
	defer cancel()

	var rows []UserModel
	if err := db.Order("name, id").Find(&rows).Error; err != nil {
		return nil, xerrors.New(err)
	}
	return functional.Map(rows, UserModel.toDomain), nil
}

func (r *UserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	db, cancel := r.with(ctx)
	defer cancel()

	var rows []UserModel
	if err := db.Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, xerrors.New(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toDomain(), nil
}

func (r *UserRepository) Create(ctx context.Context, input models.CreateUserInput) (*models.User, error) {
	db, cancel := r.with(ctx)
	defer cancel()

	m := UserModel{Name: input.Name, Email: input.Email, Active: true}
	if err := db.Create(&m).Error; err != nil {
		return nil, xerrors.New(err)
	}
	return m.toDomain(), nil
}

func (r *UserRepository) Update(ctx context.Context, id string, input models.UpdateUserInput) (*models.User, error) {
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

	db, cancel := r.with(ctx)
	defer cancel()

	result := db.Model(&UserModel{}).Where("id = ?", id).Updates(map[string]any{
		"name":   user.Name,
		"email":  user.Email,
		"active": user.Active,
	})
	if result.Error != nil {
		return nil, xerrors.New(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return user, nil
}

func (r *UserRepository) Delete(ctx context.Context, id string) (bool, error) {
	db, cancel := r.with(ctx)
	defer cancel()

	result := db.Where("id = ?", id).Delete(&UserModel{})
	if result.Error != nil {
		return false, xerrors.New(result.Error)
	}
	return result.RowsAffected > 0, nil
}
