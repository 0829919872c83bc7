package controllers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/karmakarsharmila40/idea-publishing-platform/middleware"
	"github.com/karmakarsharmila40/idea-publishing-platform/repositories"
	"github.com/karmakarsharmila40/idea-publishing-platform/utils"
)

// actingUserID returns the authenticated caller's ObjectID from the context.
func actingUserID(ctx *gin.Context) (primitive.ObjectID, bool) {
	value, exists := ctx.Get(middleware.ContextUserIDKey)
	if !exists {
		return primitive.NilObjectID, false
	}
	hex, ok := value.(string)
	if !ok {
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(hex)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return id, true
}

// parseIDParam reads a path parameter as an ObjectID. A malformed id is
// indistinguishable from an unknown one and yields the same 404.
func parseIDParam(ctx *gin.Context, name, notFoundMsg string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(ctx.Param(name))
	if err != nil {
		utils.Fail(ctx, http.StatusNotFound, notFoundMsg)
		return primitive.NilObjectID, false
	}
	return id, true
}

// respondStoreError maps repository sentinel errors to the API's status
// codes. Anything unrecognized is logged and reported as a server error.
func respondStoreError(ctx *gin.Context, err error) {
	switch {
	case errors.Is(err, repositories.ErrIdeaNotFound):
		utils.Fail(ctx, http.StatusNotFound, "Idea not found")
	case errors.Is(err, repositories.ErrCommentNotFound):
		utils.Fail(ctx, http.StatusNotFound, "Comment not found")
	case errors.Is(err, repositories.ErrAttachmentNotFound):
		utils.Fail(ctx, http.StatusNotFound, "Attachment not found")
	case errors.Is(err, repositories.ErrNotOwner), errors.Is(err, repositories.ErrNotCommentAuthor):
		utils.Fail(ctx, http.StatusUnauthorized, "User not authorized")
	default:
		if utils.Sugar != nil {
			utils.Sugar.Errorf("store error on %s %s: %v", ctx.Request.Method, ctx.Request.URL.Path, err)
		}
		utils.ServerError(ctx)
	}
}
