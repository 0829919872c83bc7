package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/karmakarsharmila40/idea-publishing-platform/models"
	"github.com/karmakarsharmila40/idea-publishing-platform/utils"
)

// CommentController manages the comments embedded in ideas.
type CommentController struct {
	ideas IdeaStore
}

// NewCommentController creates a CommentController backed by the given store.
func NewCommentController(ideas IdeaStore) *CommentController {
	return &CommentController{ideas: ideas}
}

// AddComment appends a comment to the front of an idea's comment list and
// returns the updated list, newest first.
func (c *CommentController) AddComment(ctx *gin.Context) {
	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "Text is required")
		return
	}

	text := utils.Sanitize(req.Text)
	if text == "" {
		utils.Fail(ctx, http.StatusBadRequest, "Text is required")
		return
	}
	if len(text) > models.MaxCommentLen {
		utils.Fail(ctx, http.StatusBadRequest, "Comment must be 5000 characters or less")
		return
	}

	ideaID, ok := parseIDParam(ctx, "ideaId", "Idea not found")
	if !ok {
		return
	}
	userID, ok := actingUserID(ctx)
	if !ok {
		utils.Fail(ctx, http.StatusUnauthorized, "Token is not valid")
		return
	}

	comments, err := c.ideas.AddComment(ctx.Request.Context(), ideaID, userID, text)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.OK(ctx, comments)
}

// DeleteComment removes a comment authored by the caller and returns the
// remaining comments.
func (c *CommentController) DeleteComment(ctx *gin.Context) {
	ideaID, ok := parseIDParam(ctx, "ideaId", "Idea not found")
	if !ok {
		return
	}
	commentID, ok := parseIDParam(ctx, "commentId", "Comment not found")
	if !ok {
		return
	}
	userID, ok := actingUserID(ctx)
	if !ok {
		utils.Fail(ctx, http.StatusUnauthorized, "Token is not valid")
		return
	}

	comments, err := c.ideas.DeleteComment(ctx.Request.Context(), ideaID, commentID, userID)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.OK(ctx, comments)
}
