package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"delivery_tracker/internal/apperr"
	"delivery_tracker/internal/config"
	"delivery_tracker/internal/middleware"
	"delivery_tracker/internal/models"
)

type signupInput struct {
	Name     string `json:"name" binding:"required"`
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
	Role     string `json:"role"`
}

// SignupOperator registers a dashboard operator and returns a token.
func SignupOperator(c *gin.Context) {
	var input signupInput
	if err := c.ShouldBindJSON(&input); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if input.Role == "" {
		input.Role = "operator"
	}
	if input.Role != "operator" && input.Role != "admin" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "role must be operator or admin"})
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not hash password"})
		return
	}

	operator := models.Operator{
		Name:     input.Name,
		Email:    input.Email,
		Password: string(hashedPassword),
		Role:     input.Role,
	}
	if err := config.DB.Create(&operator).Error; err != nil {
		if apperr.IsConflict(err) {
			c.JSON(http.StatusConflict, gin.H{"error": "email already in use"})
			return
		}
		respondErr(c, err)
		return
	}

	token, err := middleware.GenerateToken(operator.ID, operator.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"token":    token,
		"operator": operator,
	})
}

// LoginOperator checks credentials and returns a fresh token.
func LoginOperator(c *gin.Context) {
	var body struct {
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	var operator models.Operator
	if err := config.DB.Where("email = ?", body.Email).First(&operator).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			c.JSON(http.StatusUnauthorized, gin.H{"error": "operator not found or invalid credentials"})
			return
		}
		respondErr(c, err)
		return
	}

	if err := bcrypt.CompareHashAndPassword([]byte(operator.Password), []byte(body.Password)); err != nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "operator not found or invalid credentials"})
		return
	}

	token, err := middleware.GenerateToken(operator.ID, operator.Role)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not generate token"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":    token,
		"operator": operator,
	})
}
