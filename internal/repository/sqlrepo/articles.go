package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blog-orms/internal/utils/collectionutils"
	"github.com/siahsang/blog-orms/internal/utils/databaseutils"
	"github.com/siahsang/blog-orms/internal/utils/functional"
	"github.com/siahsang/blog-orms/internal/utils/stringutils"
	"github.com/siahsang/blog-orms/models"
)

type ArticleRepository struct {
	sqlTemplate *databaseutils.SQLTemplate
	comments    *CommentRepository
	log         *slog.Logger
}

// articleTagRow is one row of the article LEFT JOIN tags fan-out. Tag columns
// are null for an article without tags.
type articleTagRow struct {
	article *models.Article
	tagID   sql.NullString
	tagName sql.NullString
}

type taggedRow struct {
	articleID string
	tag       *models.Tag
}

func scanArticle(rows *sql.Rows) (*models.Article, error) {
	article := &models.Article{}
	if err := rows.Scan(&article.ID, &article.Title, &article.Content, &article.AuthorID, &article.PublishedAt); err != nil {
		return nil, err
	}
	article.Tags = []*models.Tag{}
	article.Comments = []*models.Comment{}
	return article, nil
}

func scanArticleTagRow(rows *sql.Rows) (articleTagRow, error) {
	row := articleTagRow{article: &models.Article{}}
	err := rows.Scan(&row.article.ID, &row.article.Title, &row.article.Content, &row.article.AuthorID,
		&row.article.PublishedAt, &row.tagID, &row.tagName)
	return row, err
}

func scanTaggedRow(rows *sql.Rows) (taggedRow, error) {
	row := taggedRow{tag: &models.Tag{}}
	err := rows.Scan(&row.articleID, &row.tag.ID, &row.tag.Name)
	return row, err
}

func (r *ArticleRepository) FindAll(ctx context.Context, options models.FetchArticlesOptions) ([]*models.Article, error) {
	var conditions []string
	var args []any

	if options.AuthorID != "" {
		conditions = append(conditions, "a.author_id = ?")
		args = append(args, options.AuthorID)
	}
	if options.TagID != "" {
		conditions = append(conditions, `EXISTS (
			SELECT 1 FROM article_tags j WHERE j.article_id = a.id AND j.tag_id = ?
		)`)
		args = append(args, options.TagID)
	}
	if options.TagName != "" {
		conditions = append(conditions, `EXISTS (
			SELECT 1 FROM article_tags j
			JOIN tags t ON t.id = j.tag_id
			WHERE j.article_id = a.id AND t.name = ?
		)`)
		args = append(args, options.TagName)
	}

	where := ""
	if len(conditions) > 0 {
		where = "WHERE " + strings.Join(conditions, " AND ")
	}

	selectSQL := fmt.Sprintf(`
		SELECT a.id, a.title, a.content, a.author_id, a.published_at
		FROM articles a
		%s
		ORDER BY a.published_at DESC, a.id ASC
		LIMIT ? OFFSET ?
	`, where)
	args = append(args, options.EffectiveLimit(), options.Offset())

	articles, err := databaseutils.ExecuteQuery(r.sqlTemplate, ctx, selectSQL, scanArticle, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	if err := r.attachTags(ctx, articles); err != nil {
		return nil, err
	}
	if options.IncludeComments {
		if err := r.attachComments(ctx, articles); err != nil {
			return nil, err
		}
	}

	return articles, nil
}

func (r *ArticleRepository) attachTags(ctx context.Context, articles []*models.Article) error {
	if len(articles) == 0 {
		return nil
	}

	ids := functional.Map(articles, func(a *models.Article) string { return a.ID })
	placeholders, args := stringutils.InClause(ids)
	selectSQL := fmt.Sprintf(`
		SELECT j.article_id, t.id, t.name
		FROM article_tags j
		JOIN tags t ON t.id = j.tag_id
		WHERE j.article_id IN (%s)
		ORDER BY t.name, t.id
	`, placeholders)

	rows, err := databaseutils.ExecuteQuery(r.sqlTemplate, ctx, selectSQL, scanTaggedRow, args...)
	if err != nil {
		return xerrors.New(err)
	}

	tagsByArticle := collectionutils.GroupBy(rows, func(row taggedRow) string { return row.articleID })
	for _, article := range articles {
		tagged := collectionutils.DistinctBy(
			collectionutils.GetOrDefault(tagsByArticle, article.ID, nil),
			func(row taggedRow) string { return row.tag.ID },
		)
		article.Tags = functional.Map(tagged, func(row taggedRow) *models.Tag { return row.tag })
	}
	return nil
}

func (r *ArticleRepository) attachComments(ctx context.Context, articles []*models.Article) error {
	ids := functional.Map(articles, func(a *models.Article) string { return a.ID })
	commentsByArticle, err := r.comments.findByArticleIDs(ctx, ids)
	if err != nil {
		return err
	}

	for _, article := range articles {
		article.Comments = collectionutils.GetOrDefault(commentsByArticle, article.ID, []*models.Comment{})
	}
	return nil
}

func (r *ArticleRepository) FindByID(ctx context.Context, id string, options models.FetchArticlesOptions) (*models.Article, error) {
	const selectSQL = `
		SELECT a.id, a.title, a.content, a.author_id, a.published_at, t.id, t.name
		FROM articles a
		LEFT JOIN article_tags j ON j.article_id = a.id
		LEFT JOIN tags t ON t.id = j.tag_id
		WHERE a.id = ?
		ORDER BY t.name, t.id
	`

	rows, err := databaseutils.ExecuteQuery(r.sqlTemplate, ctx, selectSQL, scanArticleTagRow, id)
	if err != nil {
		return nil, xerrors.New(err)
	}
	if len(rows) == 0 {
		return nil, nil
	}

	article := rows[0].article
	article.Tags = []*models.Tag{}
	article.Comments = []*models.Comment{}
	seen := make(map[string]struct{}, len(rows))
	for _, row := range rows {
		if !row.tagID.Valid {
			continue
		}
		if _, ok := seen[row.tagID.String]; ok {
			continue
		}
		seen[row.tagID.String] = struct{}{}
		article.Tags = append(article.Tags, &models.Tag{ID: row.tagID.String, Name: row.tagName.String})
	}

	if options.IncludeComments {
		if err := r.attachComments(ctx, []*models.Article{article}); err != nil {
			return nil, err
		}
	}

	return article, nil
}

func (r *ArticleRepository) Create(ctx context.Context, input models.CreateArticleInput) (*models.Article, error) {
	const insertSQL = `
		INSERT INTO articles (id, title, content, author_id, published_at)
		VALUES (?, ?, ?, ?, ?)
	`

	article := &models.Article{
		ID:          uuid.NewString(),
		Title:       input.Title,
		Content:     input.Content,
		AuthorID:    input.AuthorID,
		PublishedAt: now(),
		Tags:        []*models.Tag{},
		Comments:    []*models.Comment{},
	}

	_, err := r.sqlTemplate.Exec(ctx, insertSQL, article.ID, article.Title, article.Content, article.AuthorID, article.PublishedAt)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return article, nil
}

// Update reads, merges and writes inside one transaction.
func (r *ArticleRepository) Update(ctx context.Context, id string, input models.UpdateArticleInput) (*models.Article, error) {
	const updateSQL = `UPDATE articles SET title = ?, content = ? WHERE id = ?`

	return databaseutils.DoTransactionally(r.sqlTemplate, ctx, func(txCtx context.Context) (*models.Article, error) {
		article, err := r.FindByID(txCtx, id, models.FetchArticlesOptions{})
		if err != nil || article == nil {
			return nil, err
		}

		if input.Title != nil {
			article.Title = *input.Title
		}
		if input.Content != nil {
			article.Content = *input.Content
		}

		affected, err := r.sqlTemplate.ExecAffected(txCtx, updateSQL, article.Title, article.Content, id)
		if err != nil {
			return nil, xerrors.New(err)
		}
		if affected == 0 {
			return nil, nil
		}
		return article, nil
	})
}

func (r *ArticleRepository) Delete(ctx context.Context, id string) (bool, error) {
	const deleteSQL = `DELETE FROM articles WHERE id = ?`

	affected, err := r.sqlTemplate.ExecAffected(ctx, deleteSQL, id)
	if err != nil {
		return false, xerrors.New(err)
	}
	return affected > 0, nil
}

func (r *ArticleRepository) AddTagToArticle(ctx context.Context, articleID, tagID string) (*models.Article, error) {
	const existsSQL = `
		SELECT
			EXISTS (SELECT 1 FROM articles WHERE id = ?),
			EXISTS (SELECT 1 FROM tags WHERE id = ?)
	`
	const insertSQL = `
		INSERT INTO article_tags (article_id, tag_id)
		VALUES (?, ?)
		ON CONFLICT (article_id, tag_id) DO NOTHING
	`

	applied, err := databaseutils.DoTransactionally(r.sqlTemplate, ctx, func(txCtx context.Context) (bool, error) {
		found, err := databaseutils.ExecuteSingleQuery(r.sqlTemplate, txCtx, existsSQL, func(rows *sql.Rows) (bool, error) {
			var articleExists, tagExists bool
			if err := rows.Scan(&articleExists, &tagExists); err != nil {
				return false, err
			}
			return articleExists && tagExists, nil
		}, articleID, tagID)
		if err != nil {
			return false, xerrors.New(err)
		}
		if !found {
			r.log.DebugContext(ctx, "Article or tag missing, tag not linked", "article_id", articleID, "tag_id", tagID)
			return false, nil
		}

		affected, err := r.sqlTemplate.ExecAffected(txCtx, insertSQL, articleID, tagID)
		if err != nil {
			return false, xerrors.New(err)
		}
		if affected == 0 {
			r.log.DebugContext(ctx, "Tag already linked to article", "article_id", articleID, "tag_id", tagID)
		}
		return affected > 0, nil
	})
	if err != nil || !applied {
		return nil, err
	}

	return r.FindByID(ctx, articleID, models.FetchArticlesOptions{IncludeComments: true})
}

func (r *ArticleRepository) RemoveTagFromArticle(ctx context.Context, articleID, tagID string) (*models.Article, error) {
	const deleteSQL = `DELETE FROM article_tags WHERE article_id = ? AND tag_id = ?`

	affected, err := r.sqlTemplate.ExecAffected(ctx, deleteSQL, articleID, tagID)
	if err != nil {
		return nil, xerrors.New(err)
	}
	if affected == 0 {
		return nil, nil
	}

	return r.FindByID(ctx, articleID, models.FetchArticlesOptions{IncludeComments: true})
}
