package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/theleywin/Backend-Blog/src/models"
)

// postRow keeps likes and comments as JSON columns on the post row so that a
// post and its engagement stay one read-modify-write unit.
type postRow struct {
	ID        string `gorm:"primaryKey"`
	Title     string `gorm:"not null"`
	Content   string `gorm:"type:text;not null"`
	AuthorID  string `gorm:"index;not null"`
	Image     string
	Likes     []string         `gorm:"serializer:json"`
	Comments  []models.Comment `gorm:"serializer:json"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (postRow) TableName() string {
	return "posts"
}

func (r postRow) toModel() models.Post {
	post := models.Post{
		ID:        r.ID,
		Title:     r.Title,
		Content:   r.Content,
		AuthorID:  r.AuthorID,
		Image:     r.Image,
		Likes:     r.Likes,
		Comments:  r.Comments,
		CreatedAt: r.CreatedAt,
		UpdatedAt: r.UpdatedAt,
	}
	if post.Likes == nil {
		post.Likes = []string{}
	}
	if post.Comments == nil {
		post.Comments = []models.Comment{}
	}
	return post
}

func postRowFromModel(p models.Post) postRow {
	return postRow{
		ID:        p.ID,
		Title:     p.Title,
		Content:   p.Content,
		AuthorID:  p.AuthorID,
		Image:     p.Image,
		Likes:     p.Likes,
		Comments:  p.Comments,
		CreatedAt: p.CreatedAt,
		UpdatedAt: p.UpdatedAt,
	}
}

type SQLitePostRepository struct {
	db  *gorm.DB
	now func() time.Time
}

func NewSQLitePostRepository(db *gorm.DB) *SQLitePostRepository {
	return &SQLitePostRepository{db: db, now: time.Now}
}

func (r *SQLitePostRepository) Create(ctx context.Context, post *models.Post) error {
	now := r.now().UTC()
	row := postRow{
		ID:        uuid.NewString(),
		Title:     post.Title,
		Content:   post.Content,
		AuthorID:  post.AuthorID,
		Image:     post.Image,
		Likes:     []string{},
		Comments:  []models.Comment{},
		CreatedAt: now,
		UpdatedAt: now,
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		return fmt.Errorf("insert post: %w", err)
	}

	*post = row.toModel()
	return nil
}

func (r *SQLitePostRepository) FindByID(ctx context.Context, id string) (*models.Post, error) {
	var row postRow
	if err := r.db.WithContext(ctx).First(&row, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find post: %w", err)
	}

	post := row.toModel()
	return &post, nil
}

func (r *SQLitePostRepository) FindAll(ctx context.Context) ([]models.Post, error) {
	return r.find(ctx, r.db.WithContext(ctx))
}

func (r *SQLitePostRepository) FindByAuthor(ctx context.Context, authorID string) ([]models.Post, error) {
	return r.find(ctx, r.db.WithContext(ctx).Where("author_id = ?", authorID))
}

func (r *SQLitePostRepository) find(_ context.Context, query *gorm.DB) ([]models.Post, error) {
	var rows []postRow
	if err := query.Order("created_at DESC").Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find posts: %w", err)
	}

	posts := make([]models.Post, 0, len(rows))
	for _, row := range rows {
		posts = append(posts, row.toModel())
	}
	return posts, nil
}

func (r *SQLitePostRepository) Update(ctx context.Context, id string, patch models.PostPatch) (*models.Post, error) {
	return r.mutate(ctx, id, func(post *models.Post, now time.Time) {
		post.Apply(patch, now)
	})
}

func (r *SQLitePostRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&postRow{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("delete post: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLitePostRepository) ToggleLike(ctx context.Context, id string, userID string) (*models.Post, error) {
	return r.mutate(ctx, id, func(post *models.Post, now time.Time) {
		post.ToggleLike(userID, now)
	})
}

func (r *SQLitePostRepository) AppendComment(ctx context.Context, id string, comment models.Comment) (*models.Post, error) {
	return r.mutate(ctx, id, func(post *models.Post, now time.Time) {
		comment.ID = uuid.NewString()
		if comment.CreatedAt.IsZero() {
			comment.CreatedAt = now
		}
		post.AddComment(comment, now)
	})
}

// mutate loads, changes and saves one post inside a transaction
func (r *SQLitePostRepository) mutate(ctx context.Context, id string, change func(*models.Post, time.Time)) (*models.Post, error) {
	var updated models.Post

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row postRow
		if err := tx.First(&row, "id = ?", id).Error; err != nil {
			return err
		}

		post := row.toModel()
		change(&post, r.now().UTC())

		next := postRowFromModel(post)
		if err := tx.Save(&next).Error; err != nil {
			return err
		}

		updated = next.toModel()
		return nil
	})
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update post: %w", err)
	}

	return &updated, nil
}
