package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shahzadcollection/storefront-api/middleware"
	"github.com/shahzadcollection/storefront-api/services"
)

// ListUsers handles GET /api/v1/admin/users - active staff accounts
func ListUsers(c *gin.Context) {
	users, err := authService().ListUsers(c.Request.Context())
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, users)
}

// CreateUser handles POST /api/v1/admin/users - creates an admin or employee account
func CreateUser(c *gin.Context) {
	var req services.CreateUserInput
	if !bindJSON(c, &req) {
		return
	}

	user, err := authService().CreateUser(c.Request.Context(), req)
	if err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusCreated, user)
}

// DeactivateUser handles DELETE /api/v1/admin/users/:id - soft-deletes a staff account
func DeactivateUser(c *gin.Context) {
	id, ok := paramID(c, "id")
	if !ok {
		return
	}

	subject, _ := middleware.GetUserID(c)
	if current, err := authService().ResolveSubject(c.Request.Context(), subject); err == nil && current.ID == id {
		middleware.RespondError(c, services.ValidationError("SELF_DEACTIVATION", "You cannot deactivate your own account", nil))
		return
	}

	if err := authService().DeactivateUser(c.Request.Context(), id); err != nil {
		middleware.RespondError(c, err)
		return
	}
	middleware.RespondOK(c, http.StatusOK, gin.H{"id": id, "active": false})
}
