package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a social media post stored in MongoDB. Likes and comments are
// embedded: the liker array is ordered by like time and holds each user at
// most once, comments keep insertion order and never outlive the post.
type Post struct {
	ID        primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`
	AuthorID  uint               `json:"author_id" bson:"author_id"`
	Content   string             `json:"content" bson:"content"`
	Image     string             `json:"image,omitempty" bson:"image,omitempty"`
	Likes     []uint             `json:"likes" bson:"likes"`
	Comments  []Comment          `json:"comments" bson:"comments"`
	CreatedAt time.Time          `json:"created_at" bson:"created_at"`
}

// Comment is embedded in its post and immutable once created
type Comment struct {
	AuthorID  uint      `json:"author_id" bson:"author_id"`
	Text      string    `json:"text" bson:"text"`
	CreatedAt time.Time `json:"created_at" bson:"created_at"`
}

// CreatePostRequest defines the request body for creating a new post
type CreatePostRequest struct {
	Content string `json:"content" validate:"required,max=280"`
	Image   string `json:"image,omitempty" validate:"omitempty,url"`
}

// AddCommentRequest defines the request body for commenting on a post
type AddCommentRequest struct {
	Text string `json:"text" validate:"required,max=280"`
}

// CommentView is a comment with its author joined at read time
type CommentView struct {
	Comment
	Author UserCompact `json:"author"`
}

// PostView is a post with author fields joined at read time, not stored
type PostView struct {
	ID        primitive.ObjectID `json:"id"`
	AuthorID  uint               `json:"author_id"`
	Content   string             `json:"content"`
	Image     string             `json:"image,omitempty"`
	Likes     []uint             `json:"likes"`
	Comments  []CommentView      `json:"comments"`
	CreatedAt time.Time          `json:"created_at"`
	Author    UserCompact        `json:"author"`
}
