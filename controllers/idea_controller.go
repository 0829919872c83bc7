package controllers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/karmakarsharmila40/idea-publishing-platform/models"
	"github.com/karmakarsharmila40/idea-publishing-platform/repositories"
	"github.com/karmakarsharmila40/idea-publishing-platform/utils"
)

// IdeaController manages idea CRUD, voting and the paged listing.
type IdeaController struct {
	ideas IdeaStore
}

// NewIdeaController creates an IdeaController backed by the given store.
func NewIdeaController(ideas IdeaStore) *IdeaController {
	return &IdeaController{ideas: ideas}
}

// CreateIdea creates a new idea owned by the caller.
func (c *IdeaController) CreateIdea(ctx *gin.Context) {
	var req struct {
		Title       string `json:"title" binding:"required"`
		Description string `json:"description" binding:"required"`
		Category    string `json:"category" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "Please include title, description and category")
		return
	}

	title := utils.SanitizeStrict(strings.TrimSpace(req.Title))
	description := utils.Sanitize(req.Description)
	category := utils.SanitizeStrict(strings.TrimSpace(req.Category))
	if title == "" || description == "" || category == "" {
		utils.Fail(ctx, http.StatusBadRequest, "Please include title, description and category")
		return
	}
	if msg, ok := checkIdeaBounds(title, description); !ok {
		utils.Fail(ctx, http.StatusBadRequest, msg)
		return
	}

	userID, ok := actingUserID(ctx)
	if !ok {
		utils.Fail(ctx, http.StatusUnauthorized, "Token is not valid")
		return
	}

	idea, err := c.ideas.Create(ctx.Request.Context(), userID, title, description, category)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.OK(ctx, idea)
}

// ListIdeas returns a filtered, sorted page of ideas.
func (c *IdeaController) ListIdeas(ctx *gin.Context) {
	params := repositories.ListParams{
		Page:     atoiDefault(ctx.Query("page"), repositories.DefaultPage),
		Limit:    atoiDefault(ctx.Query("limit"), repositories.DefaultLimit),
		Category: strings.TrimSpace(ctx.Query("category")),
		Search:   strings.TrimSpace(ctx.Query("search")),
		User:     strings.TrimSpace(ctx.Query("user")),
		SortBy:   strings.TrimSpace(ctx.Query("sortBy")),
		Order:    strings.TrimSpace(ctx.Query("order")),
	}

	result, err := c.ideas.List(ctx.Request.Context(), params)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.OK(ctx, result)
}

// GetIdea returns a single idea and bumps its view counter.
func (c *IdeaController) GetIdea(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Idea not found")
	if !ok {
		return
	}
	idea, err := c.ideas.GetByID(ctx.Request.Context(), id)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.OK(ctx, idea)
}

// UpdateIdea edits the supplied fields of an idea the caller owns. Fields
// left empty in the payload keep their stored value.
func (c *IdeaController) UpdateIdea(ctx *gin.Context) {
	var req struct {
		Title       string `json:"title"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "Invalid request payload")
		return
	}

	upd := repositories.IdeaUpdate{
		Title:       utils.SanitizeStrict(strings.TrimSpace(req.Title)),
		Description: utils.Sanitize(req.Description),
		Category:    utils.SanitizeStrict(strings.TrimSpace(req.Category)),
	}
	if msg, ok := checkIdeaBounds(upd.Title, upd.Description); !ok {
		utils.Fail(ctx, http.StatusBadRequest, msg)
		return
	}

	id, ok := parseIDParam(ctx, "id", "Idea not found")
	if !ok {
		return
	}
	userID, ok := actingUserID(ctx)
	if !ok {
		utils.Fail(ctx, http.StatusUnauthorized, "Token is not valid")
		return
	}

	idea, err := c.ideas.Update(ctx.Request.Context(), id, userID, upd)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.OK(ctx, idea)
}

// DeleteIdea permanently removes an idea the caller owns.
func (c *IdeaController) DeleteIdea(ctx *gin.Context) {
	id, ok := parseIDParam(ctx, "id", "Idea not found")
	if !ok {
		return
	}
	userID, ok := actingUserID(ctx)
	if !ok {
		utils.Fail(ctx, http.StatusUnauthorized, "Token is not valid")
		return
	}

	if err := c.ideas.Delete(ctx.Request.Context(), id, userID); err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.OK(ctx, gin.H{"msg": "Idea removed"})
}

// VoteIdea records an up or down vote for the caller and returns the new
// counts. Repeating a direction keeps the vote; the opposite switches it.
func (c *IdeaController) VoteIdea(ctx *gin.Context) {
	var req struct {
		VoteType string `json:"voteType"`
	}
	if err := ctx.ShouldBindJSON(&req); err != nil {
		utils.Fail(ctx, http.StatusBadRequest, "Invalid vote type")
		return
	}
	if req.VoteType != models.VoteUp && req.VoteType != models.VoteDown {
		utils.Fail(ctx, http.StatusBadRequest, "Invalid vote type")
		return
	}

	id, ok := parseIDParam(ctx, "id", "Idea not found")
	if !ok {
		return
	}
	userID, ok := actingUserID(ctx)
	if !ok {
		utils.Fail(ctx, http.StatusUnauthorized, "Token is not valid")
		return
	}

	result, err := c.ideas.Vote(ctx.Request.Context(), id, userID, req.VoteType)
	if err != nil {
		respondStoreError(ctx, err)
		return
	}
	utils.OK(ctx, result)
}

func checkIdeaBounds(title, description string) (string, bool) {
	if len(title) > models.MaxTitleLen {
		return "Title must be 500 characters or less", false
	}
	if len(description) > models.MaxDescriptionLen {
		return "Description must be 50000 characters or less", false
	}
	return "", true
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return n
}
