package entities

import (
	"errors"
	"time"
)

type Product struct {
	ID          string
	Title       string
	Description string
	Price       float64
	Category    string
	Image       string
	ImageURL    string
	InStock     bool
	CreatedAt   time.Time
}

type GalleryImage struct {
	ID          string
	Title       string
	Description string
	Category    string
	Image       string
	ImageURL    string
	CreatedAt   time.Time
}

type BlogPost struct {
	ID        string
	Title     string
	Excerpt   string
	Content   string
	Author    string
	Category  string
	ReadTime  string
	Tags      []string
	Image     string
	ImageURL  string
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}

type ContactMessage struct {
	ID        string
	Name      string
	Email     string
	Message   string
	CreatedAt time.Time
}

var (
	ErrProductNotFound  = errors.New("product not found")
	ErrGalleryNotFound  = errors.New("gallery image not found")
	ErrBlogPostNotFound = errors.New("blog post not found")
)
