package models

const DefaultArticleLimit = 100

// FetchArticlesOptions narrows and pages article listings. Zero values mean
// "not set": no filter, page 1, DefaultArticleLimit.
type FetchArticlesOptions struct {
	IncludeComments bool
	Page            int
	Limit           int
	TagID           string
	TagName         string
	AuthorID        string
}

// Offset returns the number of articles skipped before the requested page.
func (o FetchArticlesOptions) Offset() int {
	return (o.EffectivePage() - 1) * o.EffectiveLimit()
}

func (o FetchArticlesOptions) EffectiveLimit() int {
	if o.Limit <= 0 {
		return DefaultArticleLimit
	}
	return o.Limit
}

func (o FetchArticlesOptions) EffectivePage() int {
	if o.Page <= 0 {
		return 1
	}
	return o.Page
}

type CreateArticleInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	AuthorID string `json:"authorId"`
}

type UpdateArticleInput struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type CreateCommentInput struct {
	Content   string `json:"content"`
	AuthorID  string `json:"authorId"`
	ArticleID string `json:"-"`
}

type UpdateCommentInput struct {
	Content *string `json:"content"`
}

// PushTagInput links an article to an existing tag by id or to a new tag by name.
type PushTagInput struct {
	TagID   string `json:"tagId"`
	TagName string `json:"tagName"`
}

type CreateUserInput struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

type UpdateUserInput struct {
	Name   *string `json:"name"`
	Email  *string `json:"email"`
	Active *bool   `json:"active"`
}
