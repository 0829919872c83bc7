package controllers

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/karmakarsharmila40/idea-publishing-platform/models"
	"github.com/karmakarsharmila40/idea-publishing-platform/repositories"
)

// UserStore is the slice of the user repository the controllers need.
type UserStore interface {
	Create(ctx context.Context, u models.User) (models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.User, error)
}

// IdeaStore is the slice of the idea repository the controllers need.
type IdeaStore interface {
	Create(ctx context.Context, ownerID primitive.ObjectID, title, description, category string) (*models.Idea, error)
	GetByID(ctx context.Context, id primitive.ObjectID) (*models.Idea, error)
	Update(ctx context.Context, id, actorID primitive.ObjectID, upd repositories.IdeaUpdate) (*models.Idea, error)
	Delete(ctx context.Context, id, actorID primitive.ObjectID) error
	Vote(ctx context.Context, id, actorID primitive.ObjectID, direction string) (*repositories.VoteResult, error)
	AddComment(ctx context.Context, ideaID, authorID primitive.ObjectID, text string) ([]models.Comment, error)
	DeleteComment(ctx context.Context, ideaID, commentID, actorID primitive.ObjectID) ([]models.Comment, error)
	AddAttachment(ctx context.Context, ideaID, actorID primitive.ObjectID, att models.Attachment) ([]models.Attachment, error)
	RemoveAttachment(ctx context.Context, ideaID primitive.ObjectID, fileID string, actorID primitive.ObjectID) (*models.Attachment, []models.Attachment, error)
	List(ctx context.Context, params repositories.ListParams) (*repositories.ListResult, error)
}
