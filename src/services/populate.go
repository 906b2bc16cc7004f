package services

import (
	"context"

	"github.com/theleywin/Backend-Blog/src/models"
	"github.com/theleywin/Backend-Blog/src/repository"
)

// usernames resolves every user id referenced by the posts in one lookup.
// Ids the store no longer knows are simply absent from the result.
func usernames(ctx context.Context, users repository.UserRepository, posts ...models.Post) (map[string]string, error) {
	seen := make(map[string]struct{})
	var ids []string
	add := func(id string) {
		if _, ok := seen[id]; ok || id == "" {
			return
		}
		seen[id] = struct{}{}
		ids = append(ids, id)
	}
	for _, post := range posts {
		add(post.AuthorID)
		for _, comment := range post.Comments {
			add(comment.UserID)
		}
	}

	names := make(map[string]string, len(ids))
	if len(ids) == 0 {
		return names, nil
	}

	found, err := users.FindByIDs(ctx, ids)
	if err != nil {
		return nil, storeError("populate users", err)
	}
	for _, user := range found {
		names[user.ID] = user.Username
	}
	return names, nil
}

func userDto(id string, names map[string]string) models.UserDto {
	return models.UserDto{ID: id, Username: names[id]}
}

func toPostDto(post models.Post, names map[string]string) models.PostDto {
	likes := post.Likes
	if likes == nil {
		likes = []string{}
	}
	return models.PostDto{
		ID:        post.ID,
		Title:     post.Title,
		Content:   post.Content,
		Author:    userDto(post.AuthorID, names),
		Image:     post.Image,
		Likes:     likes,
		Comments:  toCommentDtos(post.Comments, names),
		CreatedAt: post.CreatedAt,
		UpdatedAt: post.UpdatedAt,
	}
}

func toCommentDtos(comments []models.Comment, names map[string]string) []models.CommentDto {
	dtos := make([]models.CommentDto, 0, len(comments))
	for _, comment := range comments {
		dtos = append(dtos, models.CommentDto{
			ID:        comment.ID,
			Text:      comment.Text,
			User:      userDto(comment.UserID, names),
			CreatedAt: comment.CreatedAt,
		})
	}
	return dtos
}
