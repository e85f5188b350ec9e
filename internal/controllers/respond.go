package controllers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	logrus "github.com/sirupsen/logrus"

	"delivery_tracker/internal/apperr"
)

// respondErr translates any service error to the HTTP contract through
// the apperr taxonomy. Internal errors are logged with their cause but
// never leak details in release mode.
func respondErr(c *gin.Context, err error) {
	status := apperr.Status(err)
	message := err.Error()
	if status == http.StatusInternalServerError {
		logrus.WithError(err).WithFields(logrus.Fields{
			"method": c.Request.Method,
			"path":   c.FullPath(),
		}).Error("Unexpected error handling request.")
		if gin.Mode() == gin.ReleaseMode {
			message = "internal server error"
		}
	}
	c.JSON(status, gin.H{"error": message})
}

// paramUint parses a numeric path parameter, aborting with 400 on garbage.
func paramUint(c *gin.Context, name string) (uint, bool) {
	raw := c.Param(name)
	v, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid " + name + " format."})
		return 0, false
	}
	return uint(v), true
}
