package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field length bounds enforced when creating or editing ideas and comments.
const (
	MaxTitleLen       = 500
	MaxDescriptionLen = 50000
	MaxCommentLen     = 5000
)

// Vote directions accepted by the vote endpoint.
const (
	VoteUp   = "up"
	VoteDown = "down"
)

// Attachment is a file reference appended to an idea by the upload endpoint.
type Attachment struct {
	FileID     string    `bson:"fileId" json:"fileId"`
	FileName   string    `bson:"fileName" json:"fileName"`
	FileURL    string    `bson:"fileUrl" json:"fileUrl"`
	FileType   string    `bson:"fileType" json:"fileType"`
	UploadDate time.Time `bson:"uploadDate" json:"uploadDate"`
}

// Comment is a reply embedded in an idea, newest first.
type Comment struct {
	ID     primitive.ObjectID `bson:"_id" json:"_id"`
	User   primitive.ObjectID `bson:"user" json:"user"`
	Author *PublicUser        `bson:"-" json:"author,omitempty"`
	Text   string             `bson:"text" json:"text"`
	Date   time.Time          `bson:"date" json:"date"`
}

// Votes holds the two membership sets of user IDs. A user ID appears in at
// most one of the two slices at any time.
type Votes struct {
	Upvotes   []primitive.ObjectID `bson:"upvotes" json:"upvotes"`
	Downvotes []primitive.ObjectID `bson:"downvotes" json:"downvotes"`
}

// Apply records a vote for userID in the given direction. Any existing vote by
// the same user is removed first, so voting the same direction twice is a
// no-op and voting the opposite direction switches the vote.
func (v *Votes) Apply(userID primitive.ObjectID, direction string) {
	v.Upvotes = removeID(v.Upvotes, userID)
	v.Downvotes = removeID(v.Downvotes, userID)
	if direction == VoteUp {
		v.Upvotes = append(v.Upvotes, userID)
	} else {
		v.Downvotes = append(v.Downvotes, userID)
	}
}

// Count returns upvotes minus downvotes.
func (v Votes) Count() int {
	return len(v.Upvotes) - len(v.Downvotes)
}

func removeID(ids []primitive.ObjectID, id primitive.ObjectID) []primitive.ObjectID {
	out := ids[:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

// Idea is the primary content document. Owner, votes and comments reference
// users by ID; Owner/Author views are filled in from the users collection
// before responses are written and are never persisted.
type Idea struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id"`
	User        primitive.ObjectID `bson:"user" json:"user"`
	Owner       *PublicUser        `bson:"-" json:"owner,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description" json:"description"`
	Category    string             `bson:"category" json:"category"`
	Attachments []Attachment       `bson:"attachments" json:"attachments"`
	Votes       Votes              `bson:"votes" json:"votes"`
	Views       int64              `bson:"views" json:"views"`
	Comments    []Comment          `bson:"comments" json:"comments"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	VoteCount   int                `bson:"-" json:"voteCount"`
}

// Derive fills computed fields after a document is loaded.
func (i *Idea) Derive() {
	i.VoteCount = i.Votes.Count()
	if i.Attachments == nil {
		i.Attachments = []Attachment{}
	}
	if i.Comments == nil {
		i.Comments = []Comment{}
	}
	if i.Votes.Upvotes == nil {
		i.Votes.Upvotes = []primitive.ObjectID{}
	}
	if i.Votes.Downvotes == nil {
		i.Votes.Downvotes = []primitive.ObjectID{}
	}
}
