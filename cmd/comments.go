package main

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/siahsang/blog-orms/internal/validator"
	"github.com/siahsang/blog-orms/models"
)

func (app *application) createComment(c *gin.Context) {
	v := validator.New()
	articleID := app.pathID(c, "id", v)
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	var input models.CreateCommentInput
	if !app.decodeBody(c, &input) {
		return
	}

	v.CheckNotBlank(input.Content, "content", "must be provided")
	checkID(v, input.AuthorID, "authorId")
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	comment, err := app.core.Articles.CreateComment(c.Request.Context(), articleID, input)
	if err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, comment)
}

func (app *application) getComments(c *gin.Context) {
	v := validator.New()
	articleID := app.pathID(c, "id", v)
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	comments, err := app.core.Articles.FindCommentsByArticleID(c.Request.Context(), articleID)
	if err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, comments)
}

func (app *application) updateComment(c *gin.Context) {
	v := validator.New()
	articleID := app.pathID(c, "id", v)
	commentID := app.pathID(c, "commentId", v)
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	var input models.UpdateCommentInput
	if !app.decodeBody(c, &input) {
		return
	}

	v.CheckOptionalNotBlank(input.Content, "content", "must not be blank")
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	comment, err := app.core.Articles.UpdateComment(c.Request.Context(), articleID, commentID, input)
	if err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, comment)
}

func (app *application) deleteComment(c *gin.Context) {
	v := validator.New()
	articleID := app.pathID(c, "id", v)
	commentID := app.pathID(c, "commentId", v)
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	if err := app.core.Articles.DeleteComment(c.Request.Context(), articleID, commentID); err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
