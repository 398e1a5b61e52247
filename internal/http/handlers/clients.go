package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cabzii/internal/http/middleware"
	"cabzii/internal/services"
)

type sendOTPRequest struct {
	Mobile string `json:"mobile" binding:"required,mobile"`
}

type verifyOTPRequest struct {
	Mobile string `json:"mobile" binding:"required,mobile"`
	OTP    string `json:"otp" binding:"required,len=4,numeric"`
}

// SendOTP dispatches a login code to the given mobile number.
func SendOTP(c *gin.Context) {
	var req sendOTPRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	if err := clientAuthService(c).SendOTP(c.Request.Context(), req.Mobile); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "OTP sent"})
}

// VerifyOTP checks the code and returns a session token, provisioning the
// client record on first login.
func VerifyOTP(c *gin.Context) {
	var req verifyOTPRequest
	if !BindJSONOrError(c, &req) {
		return
	}

	client, token, created, err := clientAuthService(c).VerifyOTP(c.Request.Context(), req.Mobile, req.OTP)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, gin.H{
		"message": "login successful",
		"token":   token,
		"client":  client,
	})
}

// GetClientProfile returns the authenticated client's profile.
func GetClientProfile(c *gin.Context) {
	client, err := profileService(c).Get(c.Request.Context(), middleware.PrincipalID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"client": client})
}

// UpdateClientProfile applies allow-listed profile fields.
func UpdateClientProfile(c *gin.Context) {
	var req services.ProfileInput
	if !BindJSONOrError(c, &req) {
		return
	}

	client, err := profileService(c).Update(c.Request.Context(), middleware.PrincipalID(c), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "profile updated", "client": client})
}

// GetMyBookings returns the authenticated client's bookings grouped by kind.
func GetMyBookings(c *gin.Context) {
	grouped, err := bookingService(c).ListForClient(c.Request.Context(), middleware.PrincipalID(c))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"bookings": grouped})
}
