package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/siahsang/blog-orms/internal/validator"
	"github.com/siahsang/blog-orms/models"
)

type tagPayload struct {
	Name string `json:"name"`
}

func (app *application) pushTag(c *gin.Context) {
	v := validator.New()
	articleID := app.pathID(c, "id", v)
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	var input models.PushTagInput
	if !app.decodeBody(c, &input) {
		return
	}

	input.TagName = strings.TrimSpace(input.TagName)
	if input.TagID != "" {
		v.CheckUUID(input.TagID, "tagId")
	}
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	article, err := app.core.Articles.AddTagToArticle(c.Request.Context(), articleID, input)
	if err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, article)
}

func (app *application) removeTag(c *gin.Context) {
	v := validator.New()
	articleID := app.pathID(c, "id", v)
	tagID := app.pathID(c, "tagId", v)
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	article, err := app.core.Articles.RemoveTagFromArticle(c.Request.Context(), articleID, tagID)
	if err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, article)
}

func (app *application) createTag(c *gin.Context) {
	var input tagPayload
	if !app.decodeBody(c, &input) {
		return
	}

	input.Name = strings.TrimSpace(input.Name)

	v := validator.New()
	v.CheckNotBlank(input.Name, "name", "must be provided")
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	tag, err := app.core.Articles.CreateTag(c.Request.Context(), input.Name)
	if err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, tag)
}

func (app *application) getTags(c *gin.Context) {
	tags, err := app.core.Articles.FindAllTags(c.Request.Context())
	if err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, tags)
}

func (app *application) updateTag(c *gin.Context) {
	v := validator.New()
	id := app.pathID(c, "id", v)
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	var input tagPayload
	if !app.decodeBody(c, &input) {
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	v.CheckNotBlank(input.Name, "name", "must be provided")
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	tag, err := app.core.Articles.UpdateTag(c.Request.Context(), id, input.Name)
	if err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, tag)
}

func (app *application) deleteTag(c *gin.Context) {
	v := validator.New()
	id := app.pathID(c, "id", v)
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	if err := app.core.Articles.DeleteTag(c.Request.Context(), id); err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
