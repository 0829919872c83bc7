package repositories

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/karmakarsharmila40/idea-publishing-platform/models"
)

// IdeaRepository owns the idea documents and their mutation rules: ownership
// checks, the vote toggle, newest-first comments and the view counter.
type IdeaRepository struct {
	ideas *mongo.Collection
	users *mongo.Collection
}

// NewIdeaRepository creates a repository bound to the given database.
func NewIdeaRepository(db *mongo.Database) *IdeaRepository {
	return &IdeaRepository{
		ideas: db.Collection("ideas"),
		users: db.Collection("users"),
	}
}

// IdeaUpdate carries the editable idea fields. Empty strings mean "not
// supplied" and leave the stored value untouched; a field can therefore not
// be cleared to empty through an update. That mirrors the upstream service
// and is a known ambiguity, not an accident.
type IdeaUpdate struct {
	Title       string
	Description string
	Category    string
}

// VoteResult is the payload returned by the vote endpoint.
type VoteResult struct {
	Upvotes   int `json:"upvotes"`
	Downvotes int `json:"downvotes"`
	VoteCount int `json:"voteCount"`
}

// ListResult is a single page of ideas plus paging metadata.
type ListResult struct {
	Ideas       []models.Idea `json:"ideas"`
	TotalPages  int64         `json:"totalPages"`
	CurrentPage int           `json:"currentPage"`
}

// Create inserts a new idea owned by ownerID with empty votes and comments.
func (r *IdeaRepository) Create(ctx context.Context, ownerID primitive.ObjectID, title, description, category string) (*models.Idea, error) {
	idea := models.Idea{
		ID:          primitive.NewObjectID(),
		User:        ownerID,
		Title:       title,
		Description: description,
		Category:    category,
		Attachments: []models.Attachment{},
		Votes: models.Votes{
			Upvotes:   []primitive.ObjectID{},
			Downvotes: []primitive.ObjectID{},
		},
		Comments:  []models.Comment{},
		CreatedAt: time.Now().UTC(),
	}
	if _, err := r.ideas.InsertOne(ctx, idea); err != nil {
		return nil, err
	}
	idea.Derive()
	r.populateOwners(ctx, []models.Idea{}, &idea)
	return &idea, nil
}

// GetByID fetches an idea and increments its view counter by one. The
// increment is persisted before the document is returned, and applies to
// every successful fetch including repeat views and the owner's own.
func (r *IdeaRepository) GetByID(ctx context.Context, id primitive.ObjectID) (*models.Idea, error) {
	var idea models.Idea
	after := options.After
	err := r.ideas.FindOneAndUpdate(ctx,
		bson.M{"_id": id},
		bson.M{"$inc": bson.M{"views": 1}},
		&options.FindOneAndUpdateOptions{ReturnDocument: &after},
	).Decode(&idea)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrIdeaNotFound
		}
		return nil, err
	}
	idea.Derive()
	r.populateOwners(ctx, nil, &idea)
	r.populateCommentAuthors(ctx, &idea)
	return &idea, nil
}

// Update overwrites the supplied fields after verifying ownership.
func (r *IdeaRepository) Update(ctx context.Context, id, actorID primitive.ObjectID, upd IdeaUpdate) (*models.Idea, error) {
	idea, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if idea.User != actorID {
		return nil, ErrNotOwner
	}

	set := bson.M{}
	if upd.Title != "" {
		set["title"] = upd.Title
	}
	if upd.Description != "" {
		set["description"] = upd.Description
	}
	if upd.Category != "" {
		set["category"] = upd.Category
	}
	if len(set) > 0 {
		if _, err := r.ideas.UpdateByID(ctx, id, bson.M{"$set": set}); err != nil {
			return nil, err
		}
	}

	updated, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}
	updated.Derive()
	r.populateOwners(ctx, nil, updated)
	r.populateCommentAuthors(ctx, updated)
	return updated, nil
}

// Delete removes the idea permanently. Owner only.
func (r *IdeaRepository) Delete(ctx context.Context, id, actorID primitive.ObjectID) error {
	idea, err := r.load(ctx, id)
	if err != nil {
		return err
	}
	if idea.User != actorID {
		return ErrNotOwner
	}
	_, err = r.ideas.DeleteOne(ctx, bson.M{"_id": id})
	return err
}

// Vote applies an up or down vote for actorID and persists the whole votes
// subdocument. Two concurrent votes on the same idea race and the last write
// wins; individual documents stay internally consistent.
func (r *IdeaRepository) Vote(ctx context.Context, id, actorID primitive.ObjectID, direction string) (*VoteResult, error) {
	idea, err := r.load(ctx, id)
	if err != nil {
		return nil, err
	}
	idea.Votes.Apply(actorID, direction)
	if _, err := r.ideas.UpdateByID(ctx, id, bson.M{"$set": bson.M{"votes": idea.Votes}}); err != nil {
		return nil, err
	}
	return &VoteResult{
		Upvotes:   len(idea.Votes.Upvotes),
		Downvotes: len(idea.Votes.Downvotes),
		VoteCount: idea.Votes.Count(),
	}, nil
}

// AddComment inserts a comment at the front of the sequence and returns the
// full comment list, newest first.
func (r *IdeaRepository) AddComment(ctx context.Context, ideaID, authorID primitive.ObjectID, text string) ([]models.Comment, error) {
	if _, err := r.load(ctx, ideaID); err != nil {
		return nil, err
	}
	comment := models.Comment{
		ID:   primitive.NewObjectID(),
		User: authorID,
		Text: text,
		Date: time.Now().UTC(),
	}
	_, err := r.ideas.UpdateByID(ctx, ideaID, bson.M{
		"$push": bson.M{"comments": bson.M{"$each": bson.A{comment}, "$position": 0}},
	})
	if err != nil {
		return nil, err
	}
	return r.comments(ctx, ideaID)
}

// DeleteComment removes a comment. Only its author may delete it; the idea
// owner has no special right over other users' comments.
func (r *IdeaRepository) DeleteComment(ctx context.Context, ideaID, commentID, actorID primitive.ObjectID) ([]models.Comment, error) {
	idea, err := r.load(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	var found *models.Comment
	for i := range idea.Comments {
		if idea.Comments[i].ID == commentID {
			found = &idea.Comments[i]
			break
		}
	}
	if found == nil {
		return nil, ErrCommentNotFound
	}
	if found.User != actorID {
		return nil, ErrNotCommentAuthor
	}
	_, err = r.ideas.UpdateByID(ctx, ideaID, bson.M{
		"$pull": bson.M{"comments": bson.M{"_id": commentID}},
	})
	if err != nil {
		return nil, err
	}
	return r.comments(ctx, ideaID)
}

// AddAttachment appends a file reference to the idea. Owner only.
func (r *IdeaRepository) AddAttachment(ctx context.Context, ideaID, actorID primitive.ObjectID, att models.Attachment) ([]models.Attachment, error) {
	idea, err := r.load(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	if idea.User != actorID {
		return nil, ErrNotOwner
	}
	if _, err := r.ideas.UpdateByID(ctx, ideaID, bson.M{"$push": bson.M{"attachments": att}}); err != nil {
		return nil, err
	}
	updated, err := r.load(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	updated.Derive()
	return updated.Attachments, nil
}

// RemoveAttachment pulls a file reference by its fileId. Owner only. The
// removed entry is returned so the caller can unlink the stored file.
func (r *IdeaRepository) RemoveAttachment(ctx context.Context, ideaID primitive.ObjectID, fileID string, actorID primitive.ObjectID) (*models.Attachment, []models.Attachment, error) {
	idea, err := r.load(ctx, ideaID)
	if err != nil {
		return nil, nil, err
	}
	if idea.User != actorID {
		return nil, nil, ErrNotOwner
	}
	var removed *models.Attachment
	for i := range idea.Attachments {
		if idea.Attachments[i].FileID == fileID {
			removed = &idea.Attachments[i]
			break
		}
	}
	if removed == nil {
		return nil, nil, ErrAttachmentNotFound
	}
	_, err = r.ideas.UpdateByID(ctx, ideaID, bson.M{
		"$pull": bson.M{"attachments": bson.M{"fileId": fileID}},
	})
	if err != nil {
		return nil, nil, err
	}
	updated, err := r.load(ctx, ideaID)
	if err != nil {
		return nil, nil, err
	}
	updated.Derive()
	return removed, updated.Attachments, nil
}

// List returns one page of ideas matching the filter, with owner profiles
// embedded and paging metadata computed from the total match count.
func (r *IdeaRepository) List(ctx context.Context, params ListParams) (*ListResult, error) {
	params = params.Normalize()
	filter := params.Filter()

	total, err := r.ideas.CountDocuments(ctx, filter)
	if err != nil {
		return nil, err
	}

	opts := options.Find().
		SetSort(params.Sort()).
		SetSkip(params.Skip()).
		SetLimit(int64(params.Limit))
	cur, err := r.ideas.Find(ctx, filter, opts)
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	ideas := []models.Idea{}
	if err := cur.All(ctx, &ideas); err != nil {
		return nil, err
	}
	for i := range ideas {
		ideas[i].Derive()
	}
	r.populateOwners(ctx, ideas, nil)

	return &ListResult{
		Ideas:       ideas,
		TotalPages:  params.TotalPages(total),
		CurrentPage: params.Page,
	}, nil
}

// load fetches an idea without touching the view counter.
func (r *IdeaRepository) load(ctx context.Context, id primitive.ObjectID) (*models.Idea, error) {
	var idea models.Idea
	if err := r.ideas.FindOne(ctx, bson.M{"_id": id}).Decode(&idea); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrIdeaNotFound
		}
		return nil, err
	}
	return &idea, nil
}

// comments reloads the idea and returns its comment list with authors filled.
func (r *IdeaRepository) comments(ctx context.Context, ideaID primitive.ObjectID) ([]models.Comment, error) {
	idea, err := r.load(ctx, ideaID)
	if err != nil {
		return nil, err
	}
	idea.Derive()
	r.populateCommentAuthors(ctx, idea)
	return idea.Comments, nil
}

// populateOwners fills the Owner field of every idea (and the optional single
// idea) from the users collection. Lookup failures leave Owner nil rather than
// failing the request.
func (r *IdeaRepository) populateOwners(ctx context.Context, ideas []models.Idea, single *models.Idea) {
	ids := make([]primitive.ObjectID, 0, len(ideas)+1)
	for i := range ideas {
		ids = append(ids, ideas[i].User)
	}
	if single != nil {
		ids = append(ids, single.User)
	}
	byID := r.lookupUsers(ctx, ids)
	for i := range ideas {
		if u, ok := byID[ideas[i].User]; ok {
			pub := u
			ideas[i].Owner = &pub
		}
	}
	if single != nil {
		if u, ok := byID[single.User]; ok {
			pub := u
			single.Owner = &pub
		}
	}
}

// populateCommentAuthors fills Author for each embedded comment.
func (r *IdeaRepository) populateCommentAuthors(ctx context.Context, idea *models.Idea) {
	ids := make([]primitive.ObjectID, 0, len(idea.Comments))
	for i := range idea.Comments {
		ids = append(ids, idea.Comments[i].User)
	}
	byID := r.lookupUsers(ctx, ids)
	for i := range idea.Comments {
		if u, ok := byID[idea.Comments[i].User]; ok {
			pub := u
			idea.Comments[i].Author = &pub
		}
	}
}

// lookupUsers loads public profiles for a set of user IDs, deduplicated.
func (r *IdeaRepository) lookupUsers(ctx context.Context, ids []primitive.ObjectID) map[primitive.ObjectID]models.PublicUser {
	out := map[primitive.ObjectID]models.PublicUser{}
	unique := uniqueObjectIDs(ids)
	if len(unique) == 0 {
		return out
	}
	cur, err := r.users.Find(ctx, bson.M{"_id": bson.M{"$in": unique}})
	if err != nil {
		return out
	}
	defer cur.Close(ctx)
	var users []models.User
	if err := cur.All(ctx, &users); err != nil {
		return out
	}
	for _, u := range users {
		out[u.ID] = u.Public()
	}
	return out
}

func uniqueObjectIDs(ids []primitive.ObjectID) []primitive.ObjectID {
	seen := make(map[primitive.ObjectID]bool, len(ids))
	out := make([]primitive.ObjectID, 0, len(ids))
	for _, id := range ids {
		if !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
