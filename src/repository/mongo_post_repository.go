package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/theleywin/Backend-Blog/src/lib"
	"github.com/theleywin/Backend-Blog/src/models"
)

type postDocument struct {
	Id        primitive.ObjectID   `bson:"_id,omitempty"`
	Title     string               `bson:"title"`
	Content   string               `bson:"content"`
	Author    primitive.ObjectID   `bson:"author"`
	Image     string               `bson:"image,omitempty"`
	Likes     []primitive.ObjectID `bson:"likes"`
	Comments  []commentDocument    `bson:"comments"`
	CreatedAt time.Time            `bson:"createdAt"`
	UpdatedAt time.Time            `bson:"updatedAt"`
}

type commentDocument struct {
	Id        primitive.ObjectID `bson:"_id"`
	User      primitive.ObjectID `bson:"user"`
	Text      string             `bson:"text"`
	CreatedAt time.Time          `bson:"createdAt"`
}

func (d postDocument) toModel() models.Post {
	post := models.Post{
		ID:        d.Id.Hex(),
		Title:     d.Title,
		Content:   d.Content,
		AuthorID:  d.Author.Hex(),
		Image:     d.Image,
		Likes:     make([]string, 0, len(d.Likes)),
		Comments:  make([]models.Comment, 0, len(d.Comments)),
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
	for _, like := range d.Likes {
		post.Likes = append(post.Likes, like.Hex())
	}
	for _, comment := range d.Comments {
		post.Comments = append(post.Comments, models.Comment{
			ID:        comment.Id.Hex(),
			UserID:    comment.User.Hex(),
			Text:      comment.Text,
			CreatedAt: comment.CreatedAt,
		})
	}
	return post
}

// MongoPostRepository stores each post as one document in the posts collection
type MongoPostRepository struct {
	collection *mongo.Collection
	now        func() time.Time
}

func NewMongoPostRepository(db *mongo.Database) *MongoPostRepository {
	return &MongoPostRepository{
		collection: db.Collection(lib.PostsCollection),
		now:        time.Now,
	}
}

func (r *MongoPostRepository) Create(ctx context.Context, post *models.Post) error {
	author, err := objectID(post.AuthorID)
	if err != nil {
		return fmt.Errorf("author: %w", err)
	}

	now := r.now().UTC().Truncate(time.Millisecond)
	doc := postDocument{
		Id:        primitive.NewObjectID(),
		Title:     post.Title,
		Content:   post.Content,
		Author:    author,
		Image:     post.Image,
		Likes:     []primitive.ObjectID{},
		Comments:  []commentDocument{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.collection.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	*post = doc.toModel()
	return nil
}

func (r *MongoPostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	postID, err := objectID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	var doc postDocument
	err = r.collection.FindOne(ctx, bson.M{"_id": postID}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	post := doc.toModel()
	return &post, nil
}

func (r *MongoPostRepository) FindAll(ctx context.Context) ([]models.Post, error) {
	return r.find(ctx, bson.M{})
}

func (r *MongoPostRepository) FindByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	author, err := objectID(authorID)
	if err != nil {
		// no post can reference an id the store could never have issued
		return []models.Post{}, nil
	}
	return r.find(ctx, bson.M{"author": author})
}

func (r *MongoPostRepository) find(ctx context.Context, filter bson.M) ([]models.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "createdAt", Value: -1}})
	cursor, err := r.collection.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}
	defer cursor.Close(ctx)

	var docs []postDocument
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, fmt.Errorf("decode posts: %w", err)
	}

	posts := make([]models.Post, 0, len(docs))
	for _, doc := range docs {
		posts = append(posts, doc.toModel())
	}
	return posts, nil
}

func (r *MongoPostRepository) Update(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	set := bson.M{"updatedAt": r.now().UTC().Truncate(time.Millisecond)}
	if patch.Title != nil {
		set["title"] = *patch.Title
	}
	if patch.Content != nil {
		set["content"] = *patch.Content
	}
	if patch.Image != nil {
		set["image"] = *patch.Image
	}

	return r.findOneAndUpdate(ctx, id, bson.M{"$set": set})
}

func (r *MongoPostRepository) Delete(ctx context.Context, id string) error {
	postID, err := objectID(id)
	if err != nil {
		return ErrNotFound
	}

	result, err := r.collection.DeleteOne(ctx, bson.M{"_id": postID})
	if err != nil {
		return fmt.Errorf("delete post: %w", err)
	}
	if result.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ToggleLike runs as a single pipeline update so concurrent toggles on the
// same post are serialized by the server.
func (r *MongoPostRepository) ToggleLike(ctx context.Context, id string, userID string) (*models.Post, error) {
	user, err := objectID(userID)
	if err != nil {
		return nil, fmt.Errorf("user: %w", err)
	}

	likes := bson.D{{Key: "$ifNull", Value: bson.A{"$likes", bson.A{}}}}
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.D{
			{Key: "likes", Value: bson.D{{Key: "$cond", Value: bson.D{
				{Key: "if", Value: bson.D{{Key: "$in", Value: bson.A{user, likes}}}},
				{Key: "then", Value: bson.D{{Key: "$filter", Value: bson.D{
					{Key: "input", Value: likes},
					{Key: "cond", Value: bson.D{{Key: "$ne", Value: bson.A{"$$this", user}}}},
				}}}},
				{Key: "else", Value: bson.D{{Key: "$concatArrays", Value: bson.A{likes, bson.A{user}}}}},
			}}}},
			{Key: "updatedAt", Value: r.now().UTC().Truncate(time.Millisecond)},
		}}},
	}

	return r.findOneAndUpdate(ctx, id, update)
}

func (r *MongoPostRepository) AppendComment(ctx context.Context, id string, comment models.Comment) (*models.Post, error) {
	user, err := objectID(comment.UserID)
	if err != nil {
		return nil, fmt.Errorf("comment user: %w", err)
	}

	now := r.now().UTC().Truncate(time.Millisecond)
	createdAt := comment.CreatedAt
	if createdAt.IsZero() {
		createdAt = now
	}

	update := bson.M{
		"$push": bson.M{
			"comments": commentDocument{
				Id:        primitive.NewObjectID(),
				User:      user,
				Text:      comment.Text,
				CreatedAt: createdAt.UTC().Truncate(time.Millisecond),
			},
		},
		"$set": bson.M{"updatedAt": now},
	}

	return r.findOneAndUpdate(ctx, id, update)
}

func (r *MongoPostRepository) findOneAndUpdate(ctx context.Context, id string, update interface{}) (*models.Post, error) {
	postID, err := objectID(id)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)

	var doc postDocument
	err = r.collection.FindOneAndUpdate(ctx, bson.M{"_id": postID}, update, opts).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	post := doc.toModel()
	return &post, nil
}

func objectID(id string) (primitive.ObjectID, error) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("%w: %q", ErrInvalidReference, id)
	}
	return oid, nil
}
