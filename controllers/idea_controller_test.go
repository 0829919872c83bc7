package controllers

import (
	"net/http"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/karmakarsharmila40/idea-publishing-platform/models"
	"github.com/karmakarsharmila40/idea-publishing-platform/repositories"
)

func newIdeaEngine(ideas IdeaStore, userID primitive.ObjectID) *gin.Engine {
	ic := NewIdeaController(ideas)
	r := gin.New()
	r.GET("/api/ideas", ic.ListIdeas)
	r.GET("/api/ideas/:id", ic.GetIdea)

	authed := r.Group("/api", asUser(userID))
	authed.POST("/ideas", ic.CreateIdea)
	authed.PUT("/ideas/:id", ic.UpdateIdea)
	authed.DELETE("/ideas/:id", ic.DeleteIdea)
	authed.POST("/ideas/:id/vote", ic.VoteIdea)
	return r
}

func TestCreateIdeaSanitizesInput(t *testing.T) {
	userID := primitive.NewObjectID()
	ideas := &fakeIdeaStore{
		create: func(ownerID primitive.ObjectID, title, description, category string) (*models.Idea, error) {
			if ownerID != userID {
				t.Errorf("owner %s, want %s", ownerID.Hex(), userID.Hex())
			}
			if strings.Contains(title, "<") || strings.Contains(description, "script") {
				t.Errorf("markup reached the store: title=%q description=%q", title, description)
			}
			return &models.Idea{ID: primitive.NewObjectID(), Owner: nil, Title: title, Description: description, Category: category}, nil
		},
	}
	r := newIdeaEngine(ideas, userID)

	w := doJSON(t, r, http.MethodPost, "/api/ideas", gin.H{
		"title":       "<b>Solar</b> Roads",
		"description": "Pave roads with panels<script>alert(1)</script>",
		"category":    "energy",
	})
	wantStatus(t, w, http.StatusOK)
}

func TestCreateIdeaMissingFields(t *testing.T) {
	r := newIdeaEngine(&fakeIdeaStore{}, primitive.NewObjectID())

	for _, body := range []gin.H{
		{},
		{"title": "Solar Roads"},
		{"title": "Solar Roads", "description": "panels everywhere"},
		{"title": "<script>x</script>", "description": "panels", "category": "energy"},
	} {
		w := doJSON(t, r, http.MethodPost, "/api/ideas", body)
		wantMsg(t, w, http.StatusBadRequest, "Please include title, description and category")
	}
}

func TestCreateIdeaTitleTooLong(t *testing.T) {
	r := newIdeaEngine(&fakeIdeaStore{}, primitive.NewObjectID())

	w := doJSON(t, r, http.MethodPost, "/api/ideas", gin.H{
		"title":       strings.Repeat("a", models.MaxTitleLen+1),
		"description": "fits",
		"category":    "energy",
	})
	wantMsg(t, w, http.StatusBadRequest, "Title must be 500 characters or less")
}

func TestGetIdeaMalformedID(t *testing.T) {
	r := newIdeaEngine(&fakeIdeaStore{}, primitive.NewObjectID())

	w := doJSON(t, r, http.MethodGet, "/api/ideas/not-an-id", nil)
	wantMsg(t, w, http.StatusNotFound, "Idea not found")
}

func TestGetIdeaUnknownID(t *testing.T) {
	ideas := &fakeIdeaStore{
		getByID: func(id primitive.ObjectID) (*models.Idea, error) {
			return nil, repositories.ErrIdeaNotFound
		},
	}
	r := newIdeaEngine(ideas, primitive.NewObjectID())

	w := doJSON(t, r, http.MethodGet, "/api/ideas/"+primitive.NewObjectID().Hex(), nil)
	wantMsg(t, w, http.StatusNotFound, "Idea not found")
}

func TestUpdateIdeaNotOwner(t *testing.T) {
	ideas := &fakeIdeaStore{
		update: func(id, actorID primitive.ObjectID, upd repositories.IdeaUpdate) (*models.Idea, error) {
			return nil, repositories.ErrNotOwner
		},
	}
	r := newIdeaEngine(ideas, primitive.NewObjectID())

	w := doJSON(t, r, http.MethodPut, "/api/ideas/"+primitive.NewObjectID().Hex(), gin.H{
		"title": "New title",
	})
	wantMsg(t, w, http.StatusUnauthorized, "User not authorized")
}

func TestUpdateIdeaSkipsEmptyFields(t *testing.T) {
	ideaID := primitive.NewObjectID()
	ideas := &fakeIdeaStore{
		update: func(id, actorID primitive.ObjectID, upd repositories.IdeaUpdate) (*models.Idea, error) {
			if upd.Title != "New title" {
				t.Errorf("got title %q", upd.Title)
			}
			if upd.Description != "" || upd.Category != "" {
				t.Errorf("absent fields should stay empty, got %+v", upd)
			}
			return &models.Idea{ID: id, Title: upd.Title}, nil
		},
	}
	r := newIdeaEngine(ideas, primitive.NewObjectID())

	w := doJSON(t, r, http.MethodPut, "/api/ideas/"+ideaID.Hex(), gin.H{"title": "New title"})
	wantStatus(t, w, http.StatusOK)
}

func TestDeleteIdea(t *testing.T) {
	userID := primitive.NewObjectID()
	ideaID := primitive.NewObjectID()
	called := false
	ideas := &fakeIdeaStore{
		delete: func(id, actorID primitive.ObjectID) error {
			called = true
			if id != ideaID || actorID != userID {
				t.Errorf("delete(%s, %s), want (%s, %s)", id.Hex(), actorID.Hex(), ideaID.Hex(), userID.Hex())
			}
			return nil
		},
	}
	r := newIdeaEngine(ideas, userID)

	w := doJSON(t, r, http.MethodDelete, "/api/ideas/"+ideaID.Hex(), nil)
	wantMsg(t, w, http.StatusOK, "Idea removed")
	if !called {
		t.Fatal("store delete never called")
	}
}

func TestVoteIdeaInvalidType(t *testing.T) {
	r := newIdeaEngine(&fakeIdeaStore{}, primitive.NewObjectID())

	for _, vote := range []any{"sideways", "", nil, 7} {
		w := doJSON(t, r, http.MethodPost, "/api/ideas/"+primitive.NewObjectID().Hex()+"/vote", gin.H{"voteType": vote})
		wantMsg(t, w, http.StatusBadRequest, "Invalid vote type")
	}
}

func TestVoteIdeaReturnsCounts(t *testing.T) {
	userID := primitive.NewObjectID()
	ideas := &fakeIdeaStore{
		vote: func(id, actorID primitive.ObjectID, direction string) (*repositories.VoteResult, error) {
			if direction != models.VoteUp {
				t.Errorf("got direction %q", direction)
			}
			return &repositories.VoteResult{Upvotes: 1, Downvotes: 0, VoteCount: 1}, nil
		},
	}
	r := newIdeaEngine(ideas, userID)

	w := doJSON(t, r, http.MethodPost, "/api/ideas/"+primitive.NewObjectID().Hex()+"/vote", gin.H{"voteType": "up"})
	wantStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	if body["voteCount"] != float64(1) {
		t.Errorf("got voteCount %v, want 1", body["voteCount"])
	}
}

func TestListIdeasPassesQueryParams(t *testing.T) {
	ideas := &fakeIdeaStore{
		list: func(params repositories.ListParams) (*repositories.ListResult, error) {
			want := repositories.ListParams{
				Page:     3,
				Limit:    5,
				Category: "energy",
				Search:   "solar",
				SortBy:   "views",
				Order:    "asc",
			}
			if params != want {
				t.Errorf("got params %+v, want %+v", params, want)
			}
			return &repositories.ListResult{
				Ideas:       []models.Idea{},
				TotalPages:  4,
				CurrentPage: 3,
			}, nil
		},
	}
	r := newIdeaEngine(ideas, primitive.NewObjectID())

	w := doJSON(t, r, http.MethodGet, "/api/ideas?page=3&limit=5&category=energy&search=solar&sortBy=views&order=asc", nil)
	wantStatus(t, w, http.StatusOK)
	body := decodeBody(t, w)
	if body["totalPages"] != float64(4) || body["currentPage"] != float64(3) {
		t.Errorf("got paging %v/%v", body["totalPages"], body["currentPage"])
	}
	if _, ok := body["ideas"]; !ok {
		t.Error("response misses ideas field")
	}
}

func TestListIdeasDefaultsGarbageNumbers(t *testing.T) {
	ideas := &fakeIdeaStore{
		list: func(params repositories.ListParams) (*repositories.ListResult, error) {
			if params.Page != repositories.DefaultPage || params.Limit != repositories.DefaultLimit {
				t.Errorf("got page=%d limit=%d, want defaults", params.Page, params.Limit)
			}
			return &repositories.ListResult{Ideas: []models.Idea{}, TotalPages: 0, CurrentPage: 1}, nil
		},
	}
	r := newIdeaEngine(ideas, primitive.NewObjectID())

	w := doJSON(t, r, http.MethodGet, "/api/ideas?page=abc&limit=", nil)
	wantStatus(t, w, http.StatusOK)
}
