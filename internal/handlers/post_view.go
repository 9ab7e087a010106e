package handlers

import (
	"github.com/tanvir-rifat07/chirplink/internal/models"
	"github.com/tanvir-rifat07/chirplink/internal/repositories"
)

// buildPostViews joins author fields onto posts and their comments at read
// time. Authors are fetched once per unique ID, not per post.
func buildPostViews(posts []models.Post, userRepo repositories.UserRepository) ([]models.PostView, error) {
	seen := make(map[uint]bool)
	var authorIDs []uint
	for _, p := range posts {
		if !seen[p.AuthorID] {
			seen[p.AuthorID] = true
			authorIDs = append(authorIDs, p.AuthorID)
		}
		for _, cm := range p.Comments {
			if !seen[cm.AuthorID] {
				seen[cm.AuthorID] = true
				authorIDs = append(authorIDs, cm.AuthorID)
			}
		}
	}

	users, err := userRepo.GetUsersByIDs(authorIDs)
	if err != nil {
		return nil, err
	}
	userMap := make(map[uint]models.UserCompact, len(users))
	for i := range users {
		userMap[users[i].ID] = users[i].ToCompact()
	}

	views := make([]models.PostView, len(posts))
	for i, p := range posts {
		comments := make([]models.CommentView, len(p.Comments))
		for j, cm := range p.Comments {
			comments[j] = models.CommentView{Comment: cm, Author: userMap[cm.AuthorID]}
		}
		likes := p.Likes
		if likes == nil {
			likes = []uint{}
		}
		views[i] = models.PostView{
			ID:        p.ID,
			AuthorID:  p.AuthorID,
			Content:   p.Content,
			Image:     p.Image,
			Likes:     likes,
			Comments:  comments,
			CreatedAt: p.CreatedAt,
			Author:    userMap[p.AuthorID],
		}
	}
	return views, nil
}

// buildPostView joins author fields onto a single post
func buildPostView(post *models.Post, userRepo repositories.UserRepository) (*models.PostView, error) {
	views, err := buildPostViews([]models.Post{*post}, userRepo)
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}
