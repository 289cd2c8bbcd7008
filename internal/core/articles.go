package core

import (
	"context"
	"log/slog"

	"github.com/siahsang/blog-orms/models"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/metric"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer = otel.Tracer("core")
	meter  = otel.Meter("core")
)

// ArticleService composes articles with their comments and tags. It keeps no
// state between calls; every operation reads the store again. Multi-step
// operations are not transactional.
type ArticleService struct {
	log      *slog.Logger
	articles ArticleRepository
	comments CommentRepository
	tags     TagRepository

	articlesCreated metric.Int64Counter
	commentsCreated metric.Int64Counter
	tagsCreated     metric.Int64Counter
}

func NewArticleService(articles ArticleRepository, comments CommentRepository, tags TagRepository, log *slog.Logger) *ArticleService {
	s := &ArticleService{
		log:      log,
		articles: articles,
		comments: comments,
		tags:     tags,
	}

	var err error
	if s.articlesCreated, err = meter.Int64Counter("blog.articles.created"); err != nil {
		log.Warn("failed to create articles counter", slog.String("error", err.Error()))
	}
	if s.commentsCreated, err = meter.Int64Counter("blog.comments.created"); err != nil {
		log.Warn("failed to create comments counter", slog.String("error", err.Error()))
	}
	if s.tagsCreated, err = meter.Int64Counter("blog.tags.created"); err != nil {
		log.Warn("failed to create tags counter", slog.String("error", err.Error()))
	}

	return s
}

func (s *ArticleService) Create(ctx context.Context, input models.CreateArticleInput) (*models.Article, error) {
	ctx, span := startSpan(ctx, "ArticleService.Create", attribute.String("article.author_id", input.AuthorID))
	defer span.End()

	article, err := s.articles.Create(ctx, input)
	if err != nil {
		return nil, recordError(span, err)
	}

	count(ctx, s.articlesCreated)
	s.log.InfoContext(ctx, "Article created", "article_id", article.ID, "author_id", article.AuthorID)
	return article, nil
}

func (s *ArticleService) FindAll(ctx context.Context, options models.FetchArticlesOptions) ([]*models.Article, error) {
	ctx, span := startSpan(ctx, "ArticleService.FindAll",
		attribute.Int("page", options.EffectivePage()),
		attribute.Int("limit", options.EffectiveLimit()),
	)
	defer span.End()

	articles, err := s.articles.FindAll(ctx, options)
	if err != nil {
		return nil, recordError(span, err)
	}
	return articles, nil
}

func (s *ArticleService) FindOne(ctx context.Context, id string, includeComments bool) (*models.Article, error) {
	ctx, span := startSpan(ctx, "ArticleService.FindOne", attribute.String("article.id", id))
	defer span.End()

	article, err := s.articles.FindByID(ctx, id, models.FetchArticlesOptions{IncludeComments: includeComments})
	if err != nil {
		return nil, recordError(span, err)
	}
	if article == nil {
		return nil, recordError(span, notFound("Article with id %s not found", id))
	}
	return article, nil
}

func (s *ArticleService) Update(ctx context.Context, id string, input models.UpdateArticleInput) (*models.Article, error) {
	ctx, span := startSpan(ctx, "ArticleService.Update", attribute.String("article.id", id))
	defer span.End()

	article, err := s.articles.Update(ctx, id, input)
	if err != nil {
		return nil, recordError(span, err)
	}
	if article == nil {
		return nil, recordError(span, notFound("Article with id %s not found", id))
	}
	return article, nil
}

func (s *ArticleService) Remove(ctx context.Context, id string) error {
	ctx, span := startSpan(ctx, "ArticleService.Remove", attribute.String("article.id", id))
	defer span.End()

	deleted, err := s.articles.Delete(ctx, id)
	if err != nil {
		return recordError(span, err)
	}
	if !deleted {
		return recordError(span, notFound("Article with id %s not found", id))
	}
	return nil
}

// CreateComment does not check that the article exists; the store's foreign
// key decides.
func (s *ArticleService) CreateComment(ctx context.Context, articleID string, input models.CreateCommentInput) (*models.Comment, error) {
	ctx, span := startSpan(ctx, "ArticleService.CreateComment", attribute.String("article.id", articleID))
	defer span.End()

	input.ArticleID = articleID
	comment, err := s.comments.Create(ctx, input)
	if err != nil {
		return nil, recordError(span, err)
	}

	count(ctx, s.commentsCreated)
	return comment, nil
}

func (s *ArticleService) UpdateComment(ctx context.Context, articleID, commentID string, input models.UpdateCommentInput) (*models.Comment, error) {
	ctx, span := startSpan(ctx, "ArticleService.UpdateComment",
		attribute.String("article.id", articleID),
		attribute.String("comment.id", commentID),
	)
	defer span.End()

	comment, err := s.comments.Update(ctx, commentID, input)
	if err != nil {
		return nil, recordError(span, err)
	}
	if comment == nil {
		return nil, recordError(span, notFound("Comment with id %s not found for article %s", commentID, articleID))
	}
	return comment, nil
}

func (s *ArticleService) DeleteComment(ctx context.Context, articleID, commentID string) error {
	ctx, span := startSpan(ctx, "ArticleService.DeleteComment",
		attribute.String("article.id", articleID),
		attribute.String("comment.id", commentID),
	)
	defer span.End()

	deleted, err := s.comments.Delete(ctx, commentID)
	if err != nil {
		return recordError(span, err)
	}
	if !deleted {
		return recordError(span, notFound("Comment with id %s not found for article %s", commentID, articleID))
	}
	return nil
}

// FindCommentsByArticleID answers NotFound for an empty list, so an article
// without comments looks the same as a missing article.
func (s *ArticleService) FindCommentsByArticleID(ctx context.Context, articleID string) ([]*models.Comment, error) {
	ctx, span := startSpan(ctx, "ArticleService.FindCommentsByArticleID", attribute.String("article.id", articleID))
	defer span.End()

	comments, err := s.comments.FindByArticleID(ctx, articleID)
	if err != nil {
		return nil, recordError(span, err)
	}
	if len(comments) == 0 {
		return nil, recordError(span, notFound("No comments found for article with id %s", articleID))
	}
	return comments, nil
}

// AddTagToArticle links an existing tag, or creates a tag from input.TagName
// first. The created tag stays behind if linking fails.
func (s *ArticleService) AddTagToArticle(ctx context.Context, articleID string, input models.PushTagInput) (*models.Article, error) {
	ctx, span := startSpan(ctx, "ArticleService.AddTagToArticle", attribute.String("article.id", articleID))
	defer span.End()

	tagID := input.TagID
	if tagID == "" {
		if input.TagName == "" {
			return nil, recordError(span, notFound("Either tagId or tagName must be provided"))
		}
		tag, err := s.tags.Create(ctx, input.TagName)
		if err != nil {
			return nil, recordError(span, err)
		}
		count(ctx, s.tagsCreated)
		tagID = tag.ID
	}
	span.SetAttributes(attribute.String("tag.id", tagID))

	article, err := s.articles.AddTagToArticle(ctx, articleID, tagID)
	if err != nil {
		return nil, recordError(span, err)
	}
	if article == nil {
		return nil, recordError(span, notFound("Article with id %s not found or tag with id %s not found", articleID, tagID))
	}
	return article, nil
}

func (s *ArticleService) RemoveTagFromArticle(ctx context.Context, articleID, tagID string) (*models.Article, error) {
	ctx, span := startSpan(ctx, "ArticleService.RemoveTagFromArticle",
		attribute.String("article.id", articleID),
		attribute.String("tag.id", tagID),
	)
	defer span.End()

	article, err := s.articles.RemoveTagFromArticle(ctx, articleID, tagID)
	if err != nil {
		return nil, recordError(span, err)
	}
	if article == nil {
		return nil, recordError(span, notFound("Article with id %s not found or tag with id %s not found", articleID, tagID))
	}
	return article, nil
}

// CreateTag reports an existing name as NotFound, not as a conflict.
func (s *ArticleService) CreateTag(ctx context.Context, name string) (*models.Tag, error) {
	ctx, span := startSpan(ctx, "ArticleService.CreateTag", attribute.String("tag.name", name))
	defer span.End()

	existing, err := s.tags.FindByName(ctx, name)
	if err != nil {
		return nil, recordError(span, err)
	}
	if existing != nil {
		return nil, recordError(span, notFound("Tag with name %s already exists", name))
	}

	tag, err := s.tags.Create(ctx, name)
	if err != nil {
		return nil, recordError(span, err)
	}

	count(ctx, s.tagsCreated)
	return tag, nil
}

func (s *ArticleService) FindAllTags(ctx context.Context) ([]*models.Tag, error) {
	ctx, span := startSpan(ctx, "ArticleService.FindAllTags")
	defer span.End()

	tags, err := s.tags.FindAll(ctx)
	if err != nil {
		return nil, recordError(span, err)
	}
	return tags, nil
}

func (s *ArticleService) UpdateTag(ctx context.Context, id, name string) (*models.Tag, error) {
	ctx, span := startSpan(ctx, "ArticleService.UpdateTag", attribute.String("tag.id", id))
	defer span.End()

	tag, err := s.tags.Update(ctx, id, name)
	if err != nil {
		return nil, recordError(span, err)
	}
	if tag == nil {
		return nil, recordError(span, notFound("Tag with id %s not found", id))
	}
	return tag, nil
}

func (s *ArticleService) DeleteTag(ctx context.Context, id string) error {
	ctx, span := startSpan(ctx, "ArticleService.DeleteTag", attribute.String("tag.id", id))
	defer span.End()

	deleted, err := s.tags.Delete(ctx, id)
	if err != nil {
		return recordError(span, err)
	}
	if !deleted {
		return recordError(span, notFound("Tag with id %s not found", id))
	}
	return nil
}

func startSpan(ctx context.Context, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	return tracer.Start(ctx, name,
		trace.WithSpanKind(trace.SpanKindInternal),
		trace.WithAttributes(attrs...),
	)
}

// recordError marks the span failed and hands err back unchanged.
func recordError(span trace.Span, err error) error {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	return err
}

func count(ctx context.Context, counter metric.Int64Counter) {
	if counter != nil {
		counter.Add(ctx, 1)
	}
}
