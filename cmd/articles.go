package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/siahsang/blog-orms/internal/filter"
	"github.com/siahsang/blog-orms/internal/validator"
	"github.com/siahsang/blog-orms/models"
)

func (app *application) createArticle(c *gin.Context) {
	var input models.CreateArticleInput
	if !app.decodeBody(c, &input) {
		return
	}

	input.Title = strings.TrimSpace(input.Title)

	v := validator.New()
	v.CheckNotBlank(input.Title, "title", "must be provided")
	v.CheckNotBlank(input.Content, "content", "must be provided")
	checkID(v, input.AuthorID, "authorId")
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	article, err := app.core.Articles.Create(c.Request.Context(), input)
	if err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, article)
}

func (app *application) getArticles(c *gin.Context) {
	v := validator.New()

	options := models.FetchArticlesOptions{
		IncludeComments: app.readBool(c, "includeComments", false, v),
		TagID:           app.readString(c, "tagId", ""),
		TagName:         app.readString(c, "tagName", ""),
		AuthorID:        app.readString(c, "authorId", ""),
	}
	if options.TagID != "" {
		v.CheckUUID(options.TagID, "tagId")
	}
	if options.AuthorID != "" {
		v.CheckUUID(options.AuthorID, "authorId")
	}

	page := app.readInt(c, "page", 1, v)
	limit := app.readInt(c, "limit", models.DefaultArticleLimit, v)
	filters := filter.NewFilter(page, limit)
	filter.ValidateFilters(filters, v)

	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}
	filters.Apply(&options)

	articles, err := app.core.Articles.FindAll(c.Request.Context(), options)
	if err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, articles)
}

func (app *application) getArticle(c *gin.Context) {
	v := validator.New()
	id := app.pathID(c, "id", v)
	includeComments := app.readBool(c, "includeComments", false, v)
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	article, err := app.core.Articles.FindOne(c.Request.Context(), id, includeComments)
	if err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

func (app *application) updateArticle(c *gin.Context) {
	v := validator.New()
	id := app.pathID(c, "id", v)
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	var input models.UpdateArticleInput
	if !app.decodeBody(c, &input) {
		return
	}

	v.CheckOptionalNotBlank(input.Title, "title", "must not be blank")
	v.CheckOptionalNotBlank(input.Content, "content", "must not be blank")
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	article, err := app.core.Articles.Update(c.Request.Context(), id, input)
	if err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

func (app *application) deleteArticle(c *gin.Context) {
	v := validator.New()
	id := app.pathID(c, "id", v)
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	if err := app.core.Articles.Remove(c.Request.Context(), id); err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
