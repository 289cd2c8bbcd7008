package gormrepo

import (
	"context"
	"log/slog"

	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blog-orms/internal/utils/functional"
	"github.com/siahsang/blog-orms/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ArticleRepository struct {
	session
	log *slog.Logger
}

func orderedTags(db *gorm.DB) *gorm.DB {
	return db.Order("tags.name, tags.id")
}

func orderedComments(db *gorm.DB) *gorm.DB {
	return db.Order("comments.created_at, comments.id")
}

// withAssociations preloads tags always and comments on request.
func withAssociations(db *gorm.DB, includeComments bool) *gorm.DB {
	db = db.Preload("Tags", orderedTags)
	if includeComments {
		db = db.Preload("Comments", orderedComments)
	}
	return db
}

func (r *ArticleRepository) FindAll(ctx context.Context, options models.FetchArticlesOptions) ([]*models.Article, error) {
	db, cancel := r.with(ctx)
	defer cancel()

	q := withAssociations(db.Model(&ArticleModel{}), options.IncludeComments)
	if options.AuthorID != "" {
		q = q.Where("articles.author_id = ?", options.AuthorID)
	}
	if options.TagID != "" {
		q = q.Where("EXISTS (SELECT 1 FROM article_tags j WHERE j.article_id = articles.id AND j.tag_id = ?)", options.TagID)
	}
	if options.TagName != "" {
		q = q.Where(`EXISTS (
			SELECT 1 FROM article_tags j
			JOIN tags t ON t.id = j.tag_id
			WHERE j.article_id = articles.id AND t.name = ?
		)`, options.TagName)
	}

	var rows []ArticleModel
	err := q.Order("articles.published_at DESC, articles.id ASC").
		Limit(options.EffectiveLimit()).
		Offset(options.Offset()).
		Find(&rows).Error
	if err != nil {
		return nil, xerrors.New(err)
	}

	return functional.Map(rows, func(m ArticleModel) *models.Article {
		return m.toDomain(options.IncludeComments)
	}), nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string, options models.FetchArticlesOptions) (*models.Article, error) {
	db, cancel := r.with(ctx)
	defer cancel()

	var rows []ArticleModel
	err := withAssociations(db, options.IncludeComments).
		Where("articles.id = ?", id).
		Limit(1).
		Find(&rows).Error
	if err != nil {
		return nil, xerrors.New(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return rows[0].toDomain(options.IncludeComments), nil
}

func (r *ArticleRepository) Create(ctx context.Context, input models.CreateArticleInput) (*models.Article, error) {
	db, cancel := r.with(ctx)
	defer cancel()

	m := ArticleModel{
		Title:       input.Title,
		Content:     input.Content,
		AuthorID:    input.AuthorID,
		PublishedAt: now(),
	}
	if err := db.Omit(clause.Associations).Create(&m).Error; err != nil {
		return nil, xerrors.New(err)
	}
	return m.toDomain(true), nil
}

func (r *ArticleRepository) Update(ctx context.Context, id string, input models.UpdateArticleInput) (*models.Article, error) {
	article, err := r.FindByID(ctx, id, models.FetchArticlesOptions{})
	if err != nil || article == nil {
		return nil, err
	}

	if input.Title != nil {
		article.Title = *input.Title
	}
	if input.Content != nil {
		article.Content = *input.Content
	}

	db, cancel := r.with(ctx)
	defer cancel()

	result := db.Model(&ArticleModel{}).Where("id = ?", id).Updates(map[string]any{
		"title":   article.Title,
		"content": article.Content,
	})
	if result.Error != nil {
		return nil, xerrors.New(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}
	return article, nil
}

// Delete leaves join rows and comments to the foreign key cascade.
func (r *ArticleRepository) Delete(ctx context.Context, id string) (bool, error) {
	db, cancel := r.with(ctx)
	defer cancel()

	result := db.Where("id = ?", id).Delete(&ArticleModel{})
	if result.Error != nil {
		return false, xerrors.New(result.Error)
	}
	return result.RowsAffected > 0, nil
}

func (r *ArticleRepository) AddTagToArticle(ctx context.Context, articleID, tagID string) (*models.Article, error) {
	db, cancel := r.with(ctx)

	var articles, tags int64
	if err := db.Model(&ArticleModel{}).Where("id = ?", articleID).Count(&articles).Error; err != nil {
		cancel()
		return nil, xerrors.New(err)
	}
	if err := db.Model(&TagModel{}).Where("id = ?", tagID).Count(&tags).Error; err != nil {
		cancel()
		return nil, xerrors.New(err)
	}
	if articles == 0 || tags == 0 {
		cancel()
		r.log.DebugContext(ctx, "Article or tag missing, tag not linked", "article_id", articleID, "tag_id", tagID)
		return nil, nil
	}

	result := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "article_id"}, {Name: "tag_id"}},
		DoNothing: true,
	}).Create(&ArticleTagModel{ArticleID: articleID, TagID: tagID})
	cancel()
	if result.Error != nil {
		return nil, xerrors.New(result.Error)
	}
	if result.RowsAffected == 0 {
		r.log.DebugContext(ctx, "Tag already linked to article", "article_id", articleID, "tag_id", tagID)
		return nil, nil
	}

	return r.FindByID(ctx, articleID, models.FetchArticlesOptions{IncludeComments: true})
}

func (r *ArticleRepository) RemoveTagFromArticle(ctx context.Context, articleID, tagID string) (*models.Article, error) {
	db, cancel := r.with(ctx)
	result := db.Where("article_id = ? AND tag_id = ?", articleID, tagID).Delete(&ArticleTagModel{})
	cancel()
	if result.Error != nil {
		return nil, xerrors.New(result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	return r.FindByID(ctx, articleID, models.FetchArticlesOptions{IncludeComments: true})
}
