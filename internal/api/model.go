package api

import (
	"github.com/avoronova/postmirror/internal/storage/entity"
)

type userModel struct {
	ID       entity.ID `json:"id"`
	Name     string    `json:"name"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

type postModel struct {
	ID     entity.ID `json:"id"`
	UserID entity.ID `json:"user_id"`
	Title  string    `json:"title"`
	Body   string    `json:"body"`
}

func wrapUser(u *entity.User) *userModel {
	return &userModel{ID: u.ID, Name: u.Name, Username: u.Username, Email: u.Email}
}

func wrapUsers(users []*entity.User) []*userModel {
	um := make([]*userModel, len(users))
	for i, u := range users {
		um[i] = wrapUser(u)
	}
	return um
}

func wrapPost(p *entity.Post) *postModel {
	return &postModel{ID: p.ID, UserID: p.UserID, Title: p.Title, Body: p.Body}
}

func wrapPosts(posts []*entity.Post) []*postModel {
	pm := make([]*postModel, len(posts))
	for i, p := range posts {
		pm[i] = wrapPost(p)
	}
	return pm
}
