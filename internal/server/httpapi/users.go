package httpapi

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/snugbooks/backend/internal/server/models"
)

type createUserRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required"`
	Name     *string `json:"name"`
}

type updateRoleRequest struct {
	Role string `json:"role" binding:"required,oneof=user admin"`
}

type userProfile struct {
	ID    int64   `json:"id"`
	Email string  `json:"email"`
	Name  *string `json:"name"`
	Role  string  `json:"role"`
}

func profileOf(u *models.User) userProfile {
	return userProfile{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

func (s *Server) listUsers(c *gin.Context) {
	users, err := s.users.List(c.Request.Context())
	if err != nil {
		s.writeError(c, err)
		return
	}

	result := make([]userProfile, 0, len(users))
	for _, u := range users {
		result = append(result, profileOf(u))
	}
	c.JSON(http.StatusOK, result)
}

func (s *Server) createUser(c *gin.Context) {
	var req createUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	u, err := s.users.Register(c.Request.Context(), req.Email, req.Password, req.Name)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"id": u.ID, "email": u.Email, "name": u.Name})
}

func (s *Server) updateUserRole(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		badRequest(c, err)
		return
	}

	var req updateRoleRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, err)
		return
	}

	u, err := s.users.UpdateRole(c.Request.Context(), id, req.Role)
	if err != nil {
		s.writeError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"success": true, "user": profileOf(u)})
}
