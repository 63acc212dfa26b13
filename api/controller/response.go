package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

const (
	APIVersion    = "1.0.0"
	ServiceType   = "anidex"
	ServerVersion = "0.9.1"
)

// SuccessResponse 统一成功响应包络
func SuccessResponse(c *gin.Context, key string, data interface{}, count int) {
	c.JSON(http.StatusOK, gin.H{
		"anidex-response": gin.H{
			"status":        "ok",
			"version":       APIVersion,
			"type":          ServiceType,
			"serverVersion": ServerVersion,
			key:             data,
			"count":         count,
		},
	})
}

// ErrorResponse 统一错误响应包络，code为机器可读错误码
func ErrorResponse(c *gin.Context, status int, code string, message string) {
	c.JSON(status, gin.H{
		"anidex-response": gin.H{
			"status":        "failed",
			"version":       APIVersion,
			"type":          ServiceType,
			"serverVersion": ServerVersion,
			"error": gin.H{
				"code":    code,
				"message": message,
			},
		},
	})
}
