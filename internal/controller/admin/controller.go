// Package admin provides HTTP handlers for user administration.
package admin

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"jobboard-backend/internal/database"
	"jobboard-backend/internal/model"
	"jobboard-backend/internal/utilities"
)

// AdminController handles user role management endpoints
type AdminController struct {
	DB *database.DBinstanceStruct
}

// NewAdminController creates a new instance of AdminController.
func NewAdminController(db *database.DBinstanceStruct) *AdminController {
	return &AdminController{DB: db}
}

// GetUsers lists every registered account.
// @Summary List all users
// @Description Only admin have access to this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Success 200 {array} model.User
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/users [get]
func (ac *AdminController) GetUsers(c *gin.Context) {
	var users []model.User
	if err := ac.DB.Order("id ASC").Find(&users).Error; err != nil {
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to fetch users: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, users)
}

// PromoteUser grants the admin role to a user. Promoting an admin again is a
// no-op success.
// @Summary Promote a user to admin
// @Description Only admin have access to this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the user to promote"
// @Success 200 {object} utilities.MessageResponse
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/users/{id}/promote [patch]
func (ac *AdminController) PromoteUser(c *gin.Context) {
	target, ok := ac.findUser(c)
	if !ok {
		return
	}

	if target.Role != model.RoleAdmin {
		if err := ac.DB.Model(&target).Update("role", model.RoleAdmin).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to update user: %s", err.Error()),
			})
			return
		}
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{
		Message: fmt.Sprintf("%s is now an admin", target.Username),
	})
}

// DemoteUser revokes the admin role from a user. An admin cannot demote their
// own account.
// @Summary Demote an admin to member
// @Description Only admin have access to this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the user to demote"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Cannot demote yourself"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/users/{id}/demote [patch]
func (ac *AdminController) DemoteUser(c *gin.Context) {
	actor, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	target, ok := ac.findUser(c)
	if !ok {
		return
	}

	if target.ID == actor.ID {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "You cannot demote yourself"})
		return
	}

	if target.Role != model.RoleMember {
		if err := ac.DB.Model(&target).Update("role", model.RoleMember).Error; err != nil {
			c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
				Error: fmt.Sprintf("Failed to update user: %s", err.Error()),
			})
			return
		}
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{
		Message: fmt.Sprintf("%s is now a member", target.Username),
	})
}

// DeleteUser removes a user and all of their applications. An admin cannot
// delete their own account.
// @Summary Delete a user account and its applications
// @Description Only admin have access to this endpoint
// @Tags Admin
// @Produce json
// @Param Authorization header string true "Insert your access token" default(Bearer <your access token>)
// @Param id path integer true "ID of the user to delete"
// @Success 200 {object} utilities.MessageResponse
// @Failure 400 {object} utilities.ErrorResponse "Cannot delete yourself"
// @Failure 401 {object} utilities.ErrorResponse "Invalid token"
// @Failure 403 {object} utilities.ErrorResponse "Not logged in as admin"
// @Failure 404 {object} utilities.ErrorResponse "User not found"
// @Failure 500 {object} utilities.ErrorResponse "Database error"
// @Router /admin/users/{id} [delete]
func (ac *AdminController) DeleteUser(c *gin.Context) {
	actor, err := utilities.ExtractUser(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, utilities.ErrorResponse{Error: err.Error()})
		return
	}

	target, ok := ac.findUser(c)
	if !ok {
		return
	}

	if target.ID == actor.ID {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "You cannot delete yourself"})
		return
	}

	if err := ac.DB.DeleteUserCascade(target.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "User not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to delete user: %s", err.Error()),
		})
		return
	}

	c.JSON(http.StatusOK, utilities.MessageResponse{
		Message: fmt.Sprintf("%s and their applications deleted", target.Username),
	})
}

// findUser loads the user named by the :id path param, writing the error
// response itself when the lookup fails.
func (ac *AdminController) findUser(c *gin.Context) (model.User, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil {
		c.JSON(http.StatusBadRequest, utilities.ErrorResponse{Error: "Invalid user id"})
		return model.User{}, false
	}

	user := model.User{}
	if err := ac.DB.Where("id = ?", id).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusNotFound, utilities.ErrorResponse{Error: "User not found"})
			return model.User{}, false
		}
		c.JSON(http.StatusInternalServerError, utilities.ErrorResponse{
			Error: fmt.Sprintf("Failed to retrieve user: %s", err.Error()),
		})
		return model.User{}, false
	}

	return user, true
}
