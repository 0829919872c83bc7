package utils

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Fail writes an error response in the API's uniform shape: a JSON object
// carrying a human-readable msg field.
func Fail(ctx *gin.Context, status int, msg string) {
	ctx.JSON(status, gin.H{"msg": msg})
}

// ServerError writes the generic 500 response for unexpected failures.
func ServerError(ctx *gin.Context) {
	Fail(ctx, http.StatusInternalServerError, "Server error")
}

// OK writes a 200 response with the given payload.
func OK(ctx *gin.Context, payload interface{}) {
	ctx.JSON(http.StatusOK, payload)
}
