package sqlrepo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/mdobak/go-xerrors"
	"github.com/siahsang/blog-orms/internal/utils/collectionutils"
	"github.com/siahsang/blog-orms/internal/utils/databaseutils"
	"github.com/siahsang/blog-orms/internal/utils/stringutils"
	"github.com/siahsang/blog-orms/models"
)

type CommentRepository struct {
	sqlTemplate *databaseutils.SQLTemplate
}

func scanComment(rows *sql.Rows) (*models.Comment, error) {
	comment := &models.Comment{}
	if err := rows.Scan(&comment.ID, &comment.Content, &comment.AuthorID, &comment.ArticleID, &comment.CreatedAt); err != nil {
		return nil, err
	}
	return comment, nil
}

func (r *CommentRepository) FindByArticleID(ctx context.Context, articleID string) ([]*models.Comment, error) {
	const selectSQL = `
		SELECT id, content, author_id, article_id, created_at
		FROM comments
		WHERE article_id = ?
		ORDER BY created_at, id
	`

	comments, err := databaseutils.ExecuteQuery(r.sqlTemplate, ctx, selectSQL, scanComment, articleID)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return comments, nil
}

// findByArticleIDs loads the comments of several articles in one query, keyed
// by article id.
func (r *CommentRepository) findByArticleIDs(ctx context.Context, articleIDs []string) (map[string][]*models.Comment, error) {
	if len(articleIDs) == 0 {
		return map[string][]*models.Comment{}, nil
	}

	placeholders, args := stringutils.InClause(articleIDs)
	selectSQL := fmt.Sprintf(`
		SELECT id, content, author_id, article_id, created_at
		FROM comments
		WHERE article_id IN (%s)
		ORDER BY created_at, id
	`, placeholders)

	comments, err := databaseutils.ExecuteQuery(r.sqlTemplate, ctx, selectSQL, scanComment, args...)
	if err != nil {
		return nil, xerrors.New(err)
	}

	return collectionutils.GroupBy(comments, func(c *models.Comment) string {
		return c.ArticleID
	}), nil
}

func (r *CommentRepository) findByID(ctx context.Context, id string) (*models.Comment, error) {
	const selectSQL = `SELECT id, content, author_id, article_id, created_at FROM comments WHERE id = ?`
	return findOne(r.sqlTemplate, ctx, selectSQL, scanComment, id)
}

func (r *CommentRepository) Create(ctx context.Context, input models.CreateCommentInput) (*models.Comment, error) {
	const insertSQL = `
		INSERT INTO comments (id, content, author_id, article_id, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	comment := &models.Comment{
		ID:        uuid.NewString(),
		Content:   input.Content,
		AuthorID:  input.AuthorID,
		ArticleID: input.ArticleID,
		CreatedAt: now(),
	}
	_, err := r.sqlTemplate.Exec(ctx, insertSQL, comment.ID, comment.Content, comment.AuthorID, comment.ArticleID, comment.CreatedAt)
	if err != nil {
		return nil, xerrors.New(err)
	}
	return comment, nil
}

func (r *CommentRepository) Update(ctx context.Context, id string, input models.UpdateCommentInput) (*models.Comment, error) {
	const updateSQL = `UPDATE comments SET content = ? WHERE id = ?`

	comment, err := r.findByID(ctx, id)
	if err != nil || comment == nil {
		return nil, err
	}

	if input.Content != nil {
		comment.Content = *input.Content
	}

	affected, err := r.sqlTemplate.ExecAffected(ctx, updateSQL, comment.Content, id)
	if err != nil {
		return nil, xerrors.New(err)
	}
	if affected == 0 {
		return nil, nil
	}
	return comment, nil
}

func (r *CommentRepository) Delete(ctx context.Context, id string) (bool, error) {
	const deleteSQL = `DELETE FROM comments WHERE id = ?`

	affected, err := r.sqlTemplate.ExecAffected(ctx, deleteSQL, id)
	if err != nil {
		return false, xerrors.New(err)
	}
	return affected > 0, nil
}
