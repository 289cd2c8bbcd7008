package main

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/siahsang/blog-orms/internal/validator"
	"github.com/siahsang/blog-orms/models"
)

func (app *application) getUsers(c *gin.Context) {
	users, err := app.core.Users.FindAll(c.Request.Context())
	if err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, users)
}

func (app *application) getUser(c *gin.Context) {
	v := validator.New()
	id := app.pathID(c, "id", v)
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	user, err := app.core.Users.FindByID(c.Request.Context(), id)
	if err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (app *application) createUser(c *gin.Context) {
	var input models.CreateUserInput
	if !app.decodeBody(c, &input) {
		return
	}

	input.Name = strings.TrimSpace(input.Name)
	input.Email = strings.TrimSpace(input.Email)

	v := validator.New()
	v.CheckNotBlank(input.Name, "name", "must be provided")
	checkEmail(v, input.Email)
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	user, err := app.core.Users.Create(c.Request.Context(), input)
	if err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusCreated, user)
}

func (app *application) updateUser(c *gin.Context) {
	v := validator.New()
	id := app.pathID(c, "id", v)
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	var input models.UpdateUserInput
	if !app.decodeBody(c, &input) {
		return
	}

	v.CheckOptionalNotBlank(input.Name, "name", "must not be blank")
	if input.Email != nil {
		checkEmail(v, *input.Email)
	}
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	user, err := app.core.Users.Update(c.Request.Context(), id, input)
	if err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.JSON(http.StatusOK, user)
}

func (app *application) deleteUser(c *gin.Context) {
	v := validator.New()
	id := app.pathID(c, "id", v)
	if !v.IsValid() {
		app.badRequestResponse(c, &AppError{ErrorDetails: v.Errors})
		return
	}

	if err := app.core.Users.Delete(c.Request.Context(), id); err != nil {
		app.serviceErrorResponse(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
