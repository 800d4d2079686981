package types

import (
	"time"

	"github.com/photoshare-dev/photoshare/internal/models"
)

type UserResponse struct {
	ID        uint      `json:"id"`
	Username  string    `json:"username"`
	Email     string    `json:"email,omitempty"`
	Avatar    *string   `json:"avatar"`
	IsActive  bool      `json:"is_active"`
	IsAdmin   bool      `json:"is_admin"`
	CreatedAt time.Time `json:"date_created"`
}

// NewUserResponse hides the email unless private is set (the account owner
// or staff is asking).
func NewUserResponse(u *models.User, private bool) UserResponse {
	response := UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Avatar:    u.Avatar,
		IsActive:  u.IsActive,
		IsAdmin:   u.IsAdmin,
		CreatedAt: u.CreatedAt,
	}

	if private {
		response.Email = u.Email
	}

	return response
}

type AuthorResponse struct {
	ID       uint    `json:"id"`
	Username string  `json:"username"`
	Avatar   *string `json:"avatar"`
}

func NewAuthorResponse(u models.User) AuthorResponse {
	return AuthorResponse{ID: u.ID, Username: u.Username, Avatar: u.Avatar}
}

type PostResponse struct {
	ID          uint           `json:"id"`
	Title       string         `json:"title"`
	Description *string        `json:"description"`
	Image       string         `json:"image"`
	Author      AuthorResponse `json:"author"`
	Likes       *int64         `json:"likes,omitempty"`
	CreatedAt   time.Time      `json:"date_created"`
	UpdatedAt   time.Time      `json:"date_updated"`
}

func NewPostResponse(p *models.Post) PostResponse {
	return PostResponse{
		ID:          p.ID,
		Title:       p.Title,
		Description: p.Description,
		Image:       p.Image,
		Author:      NewAuthorResponse(p.Author),
		CreatedAt:   p.CreatedAt,
		UpdatedAt:   p.UpdatedAt,
	}
}

func NewPostResponses(posts []models.Post) []PostResponse {
	response := make([]PostResponse, 0, len(posts))

	for i := range posts {
		response = append(response, NewPostResponse(&posts[i]))
	}

	return response
}

type CommentResponse struct {
	ID        uint           `json:"id"`
	Text      string         `json:"text"`
	PostID    uint           `json:"post_id"`
	Author    AuthorResponse `json:"author"`
	CreatedAt time.Time      `json:"date_created"`
}

func NewCommentResponse(c *models.Comment) CommentResponse {
	return CommentResponse{
		ID:        c.ID,
		Text:      c.Text,
		PostID:    c.PostID,
		Author:    NewAuthorResponse(c.Author),
		CreatedAt: c.CreatedAt,
	}
}

type CollectionResponse struct {
	ID        uint           `json:"id"`
	Title     string         `json:"title"`
	AuthorID  uint           `json:"author_id"`
	Posts     []PostResponse `json:"posts,omitempty"`
	CreatedAt time.Time      `json:"date_created"`
	UpdatedAt time.Time      `json:"date_updated"`
}

func NewCollectionResponse(c *models.Collection) CollectionResponse {
	response := CollectionResponse{
		ID:        c.ID,
		Title:     c.Title,
		AuthorID:  c.AuthorID,
		CreatedAt: c.CreatedAt,
		UpdatedAt: c.UpdatedAt,
	}

	if c.Posts != nil {
		response.Posts = NewPostResponses(c.Posts)
	}

	return response
}

type GalleryResponse struct {
	ID            uint           `json:"id"`
	Title         string         `json:"title"`
	Description   *string        `json:"description"`
	TimeOpen      time.Time      `json:"time_open"`
	TimeClose     time.Time      `json:"time_close"`
	LimitVisitors *int           `json:"limit_visitors"`
	Author        AuthorResponse `json:"author"`
	Posts         []PostResponse `json:"posts,omitempty"`
	CreatedAt     time.Time      `json:"date_created"`
	UpdatedAt     time.Time      `json:"date_updated"`
}

func NewGalleryResponse(g *models.Gallery) GalleryResponse {
	response := GalleryResponse{
		ID:            g.ID,
		Title:         g.Title,
		Description:   g.Description,
		TimeOpen:      g.TimeOpen,
		TimeClose:     g.TimeClose,
		LimitVisitors: g.LimitVisitors,
		Author:        NewAuthorResponse(g.Author),
		CreatedAt:     g.CreatedAt,
		UpdatedAt:     g.UpdatedAt,
	}

	if g.Posts != nil {
		response.Posts = NewPostResponses(g.Posts)
	}

	return response
}

type VisitResponse struct {
	ID        uint           `json:"id"`
	GalleryID uint           `json:"gallery_id"`
	Visitor   AuthorResponse `json:"visitor"`
	CreatedAt time.Time      `json:"date_created"`
}

func NewVisitResponse(v *models.Visitor) VisitResponse {
	return VisitResponse{
		ID:        v.ID,
		GalleryID: v.GalleryID,
		Visitor:   NewAuthorResponse(v.User),
		CreatedAt: v.CreatedAt,
	}
}
