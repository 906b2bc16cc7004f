package models

import (
	"slices"
	"time"
)

type Post struct {
	ID        string    `json:"_id"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"author"`
	Image     string    `json:"image,omitempty"`
	Likes     []string  `json:"likes"`
	Comments  []Comment `json:"comments"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type Comment struct {
	ID        string    `json:"_id"`
	UserID    string    `json:"user"`
	Text      string    `json:"text"`
	CreatedAt time.Time `json:"createdAt"`
}

// PostPatch carries the fields a post's author may change. Nil fields are left untouched.
type PostPatch struct {
	Title   *string `json:"title,omitempty"`
	Content *string `json:"content,omitempty"`
	Image   *string `json:"image,omitempty"`
}

// Empty reports whether the patch would change nothing.
func (p PostPatch) Empty() bool {
	return p.Title == nil && p.Content == nil && p.Image == nil
}

// Apply merges the patch into the post. Identity, ownership and engagement are never touched.
func (p *Post) Apply(patch PostPatch, now time.Time) {
	if patch.Title != nil {
		p.Title = *patch.Title
	}
	if patch.Content != nil {
		p.Content = *patch.Content
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	p.UpdatedAt = now
}

// LikedBy reports whether userID is in the like set.
func (p *Post) LikedBy(userID string) bool {
	return slices.Contains(p.Likes, userID)
}

// ToggleLike flips userID's membership in the like set and returns the new state.
func (p *Post) ToggleLike(userID string, now time.Time) bool {
	liked := !p.LikedBy(userID)
	if liked {
		p.Likes = append(p.Likes, userID)
	} else {
		p.Likes = slices.DeleteFunc(p.Likes, func(id string) bool { return id == userID })
	}
	p.UpdatedAt = now
	return liked
}

// AddComment appends to the comment list; existing comments are never reordered.
func (p *Post) AddComment(comment Comment, now time.Time) {
	p.Comments = append(p.Comments, comment)
	p.UpdatedAt = now
}

// PostDto is the populated shape returned to clients
type PostDto struct {
	ID        string       `json:"_id"`
	Title     string       `json:"title"`
	Content   string       `json:"content"`
	Author    UserDto      `json:"author"`
	Image     string       `json:"image,omitempty"`
	Likes     []string     `json:"likes"`
	Comments  []CommentDto `json:"comments"`
	CreatedAt time.Time    `json:"createdAt"`
	UpdatedAt time.Time    `json:"updatedAt"`
}

type CommentDto struct {
	ID        string    `json:"_id"`
	Text      string    `json:"text"`
	User      UserDto   `json:"user"`
	CreatedAt time.Time `json:"createdAt"`
}
