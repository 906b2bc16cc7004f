package services

import "github.com/theleywin/Backend-Blog/src/models"

// CanMutate reports whether caller may update or delete post. Only the author may.
// Likes and comments are open to any authenticated caller and never consult this.
func CanMutate(caller models.Identity, post *models.Post) bool {
	if post == nil {
		return false
	}
	return models.SameID(caller.ID, post.AuthorID)
}
