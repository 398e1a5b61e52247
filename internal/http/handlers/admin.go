package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabzii/internal/http/middleware"
)

type adminRegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=6"`
	Role     string `json:"role"`
}

type adminLoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type resetPasswordRequest struct {
	CurrentPassword string `json:"currentPassword" binding:"required"`
	NewPassword     string `json:"newPassword" binding:"required,min=6"`
}

func AdminRegister(c *gin.Context) {
	var req adminRegisterRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	u, err := adminService(c).Register(c.Request.Context(), req.Email, req.Password, req.Role)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "admin registered", "admin": u})
}

func AdminLogin(c *gin.Context) {
	var req adminLoginRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	u, token, err := adminService(c).Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"message": "login successful",
		"token":   token,
		"admin":   u,
	})
}

func AdminProfile(c *gin.Context) {
	u, err := adminService(c).Profile(c.Request.Context(), middleware.PrincipalID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"admin": u})
}

func AdminResetPassword(c *gin.Context) {
	var req resetPasswordRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	err := adminService(c).ResetPassword(c.Request.Context(), middleware.PrincipalID(c), req.CurrentPassword, req.NewPassword)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "password updated"})
}
