package gormrepo

import (
	"context"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blog-orms/internal/utils/functional"
	"github.com/siahsang/blog-orms/models"
)

type CommentRepository struct {
	session
}

func (r *CommentRepository) FindByArticleID(ctx context.Context, articleID string) ([]*models.Comment, error) {
	db, cancel := r.with(ctx)
	defer cancel()

	var rows []CommentModel
	if err := db.Where("article_id = ?", articleID).Order("created_at, id").Find(&rows).Error; err != nil {
		return nil, xerrors.New(err)
	}
	return functional.Map(rows, CommentModel.toDomain), nil
}

func (r *CommentRepository) Create(ctx context.Context, input models.CreateCommentInput) (*models.Comment, error) {
	db, cancel := r.with(ctx)
	defer cancel()

	m := CommentModel{
		Content:   input.Content,
		AuthorID:  input.AuthorID,
		ArticleID: input.ArticleID,
		CreatedAt: now(),
	}
	if err := db.Create(&m).Error; err != nil {
		return nil, xerrors.New(err)
	}
	return m.toDomain(), nil
}

func (r *CommentRepository) Update(ctx context.Context, id string, input models.UpdateCommentInput) (*models.Comment, error) {
	db, cancel := r.with(ctx)
	defer cancel()

	var rows []CommentModel
	if err := db.Where("id = ?", id).Limit(1).Find(&rows).Error; err != nil {
		return nil, xerrors.New(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	comment := rows[0]
	if input.Content != nil {
		comment.Content = *input.Content
	}

	result := db.Model(&CommentModel{}).Where("id = ?", id).Update("content", comment.Content)
	if result.Error != nil {
		return nil, xerrors.New(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return comment.toDomain(), nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) (bool, error) {
	db, cancel := r.with(ctx)
	defer cancel()

	result := db.Where("id = ?", id).Delete(&CommentModel{})
	if result.Error != nil {
		return false, xerrors.New(result.Error)
	}
	return result.RowsAffected > 0, nil
}
