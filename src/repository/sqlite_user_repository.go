package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/theleywin/Backend-Blog/src/models"
)

type userRow struct {
	ID        string `gorm:"primaryKey"`
	Username  string `gorm:"not null"`
	Email     string `gorm:"uniqueIndex;not null"`
	Password  string `gorm:"not null"`
	CreatedAt time.Time
}

func (userRow) TableName() string {
	return "users"
}

func (r userRow) toModel() models.User {
	return models.User{
		ID:        r.ID,
		Username:  r.Username,
		Email:     r.Email,
		Password:  r.Password,
		CreatedAt: r.CreatedAt,
	}
}

type SQLiteUserRepository struct {
	db *gorm.DB
}

func NewSQLiteUserRepository(db *gorm.DB) *SQLiteUserRepository {
	return &SQLiteUserRepository{db: db}
}

func (r *SQLiteUserRepository) Create(ctx context.Context, user *models.User) error {
	row := userRow{
		ID:        uuid.NewString(),
		Username:  user.Username,
		Email:     user.Email,
		Password:  user.Password,
		CreatedAt: time.Now().UTC(),
	}

	if err := r.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicate
		}
		return fmt.Errorf("insert user: %w", err)
	}

	*user = row.toModel()
	return nil
}

func (r *SQLiteUserRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.findOne(ctx, "email = ?", email)
}

func (r *SQLiteUserRepository) FindByID(ctx context.Context, id string) (*models.User, error) {
	return r.findOne(ctx, "id = ?", id)
}

func (r *SQLiteUserRepository) FindByIDs(ctx context.Context, ids []string) ([]models.User, error) {
	if len(ids) == 0 {
		return []models.User{}, nil
	}

	var rows []userRow
	if err := r.db.WithContext(ctx).Where("id IN ?", ids).Find(&rows).Error; err != nil {
		return nil, fmt.Errorf("find users: %w", err)
	}

	users := make([]models.User, 0, len(rows))
	for _, row := range rows {
		users = append(users, row.toModel())
	}
	return users, nil
}

func (r *SQLiteUserRepository) findOne(ctx context.Context, query string, arg string) (*models.User, error) {
	var row userRow
	if err := r.db.WithContext(ctx).Where(query, arg).First(&row).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}

	user := row.toModel()
	return &user, nil
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}
