package repositories

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/tanvir-rifat07/chirplink/internal/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// PostRepository defines the interface for post data operations
type PostRepository interface {
	CreatePost(ctx context.Context, post *models.Post) error
	GetPostByID(ctx context.Context, id string) (*models.Post, error)
	GetPostsByAuthor(ctx context.Context, authorID uint, skip, limit int64) ([]models.Post, error)
	GetPostsByAuthors(ctx context.Context, authorIDs []uint, skip, limit int64) ([]models.Post, error)
	GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error)
	ToggleLike(ctx context.Context, id string, userID uint) (bool, error)
	AddComment(ctx context.Context, id string, comment models.Comment) (*models.Post, error)
}

// MongoPostRepository implements PostRepository for MongoDB
type MongoPostRepository struct {
	collection *mongo.Collection
}

// NewMongoPostRepository creates a new MongoPostRepository
func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{collection: db.Collection("posts")}
}

// newest first; ties keep insertion order
var postSort = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: 1}}

// CreatePost creates a new post in MongoDB
func (r *MongoPostRepository) CreatePost(ctx context.Context, post *models.Post) error {
	post.ID = primitive.NewObjectID()
	post.CreatedAt = time.Now()
	if post.Likes == nil {
		post.Likes = []uint{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	_, err := r.collection.InsertOne(ctx, post)
	return err
}

// GetPostByID retrieves a post by ID from MongoDB
func (r *MongoPostRepository) GetPostByID(ctx context.Context, id string) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPostNotFound
	}

	var post models.Post
	err = r.collection.FindOne(ctx, bson.M{"_id": objID}).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}

// GetPostsByAuthor retrieves posts by a single author, newest first
func (r *MongoPostRepository) GetPostsByAuthor(ctx context.Context, authorID uint, skip, limit int64) ([]models.Post, error) {
	return r.find(ctx, bson.M{"author_id": authorID}, skip, limit)
}

// GetPostsByAuthors retrieves posts by any of the given authors, newest first
func (r *MongoPostRepository) GetPostsByAuthors(ctx context.Context, authorIDs []uint, skip, limit int64) ([]models.Post, error) {
	if len(authorIDs) == 0 {
		return []models.Post{}, nil
	}
	return r.find(ctx, bson.M{"author_id": bson.M{"$in": authorIDs}}, skip, limit)
}

// GetAllPosts retrieves all posts with pagination, newest first
func (r *MongoPostRepository) GetAllPosts(ctx context.Context, skip, limit int64) ([]models.Post, error) {
	return r.find(ctx, bson.M{}, skip, limit)
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M, skip, limit int64) ([]models.Post, error) {
	posts := []models.Post{}
	findOptions := options.Find().SetSkip(skip).SetLimit(limit).SetSort(postSort)
	cursor, err := r.collection.Find(ctx, filter, findOptions)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	if err = cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// ToggleLike adds userID to the post's liker array if absent, removes it if
// present, and returns the resulting like state. $addToSet keeps the array
// duplicate-free even when two toggles race.
func (r *MongoPostRepository) ToggleLike(ctx context.Context, id string, userID uint) (bool, error) {
	post, err := r.GetPostByID(ctx, id)
	if err != nil {
		return false, err
	}

	liked := false
	for _, uid := range post.Likes {
		if uid == userID {
			liked = true
			break
		}
	}

	var update bson.M
	if liked {
		update = bson.M{"$pull": bson.M{"likes": userID}}
	} else {
		update = bson.M{"$addToSet": bson.M{"likes": userID}}
	}
	if _, err := r.collection.UpdateOne(ctx, bson.M{"_id": post.ID}, update); err != nil {
		return false, fmt.Errorf("failed to toggle like: %w", err)
	}
	return !liked, nil
}

// AddComment appends a comment to the post and returns the updated post
func (r *MongoPostRepository) AddComment(ctx context.Context, id string, comment models.Comment) (*models.Post, error) {
	objID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrPostNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post models.Post
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": objID}, bson.M{"$push": bson.M{"comments": comment}}, opts).Decode(&post)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrPostNotFound
		}
		return nil, err
	}
	return &post, nil
}
