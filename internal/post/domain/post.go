package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/gosimple/slug"
)

// PostData son los campos que envía el formulario de alta.
type PostData struct {
	Title      string
	Content    string
	CategoryID int64
	Status     bool
}

// Post es una entrada del blog asociada a una categoría.
type Post struct {
	ID         int64     `json:"id"`
	Title      string    `json:"title"`
	Slug       string    `json:"slug"`
	Content    string    `json:"content"`
	CategoryID int64     `json:"category_id"`
	Status     bool      `json:"status"`
	Picture    string    `json:"picture"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// Validate comprueba los campos del formulario (la imagen va aparte).
func (d PostData) Validate() error {
	title := strings.TrimSpace(d.Title)
	switch {
	case title == "" || len(title) > 255:
		return fmt.Errorf("%w: the title field is required (max 255)", ErrInvalidPost)
	case strings.TrimSpace(d.Content) == "":
		return fmt.Errorf("%w: the content field is required", ErrInvalidPost)
	case d.CategoryID <= 0:
		return fmt.Errorf("%w: the category id field is required", ErrInvalidPost)
	}
	return nil
}

// NewPost valida los datos y genera el slug a partir del título.
func NewPost(data PostData, picture string, now time.Time) (*Post, error) {
	if err := data.Validate(); err != nil {
		return nil, err
	}
	if picture == "" {
		return nil, fmt.Errorf("%w: the picture field is required", ErrInvalidPost)
	}

	title := strings.TrimSpace(data.Title)
	return &Post{
		Title:      title,
		Slug:       slug.Make(title),
		Content:    data.Content,
		CategoryID: data.CategoryID,
		Status:     data.Status,
		Picture:    picture,
		CreatedAt:  now.UTC(),
		UpdatedAt:  now.UTC(),
	}, nil
}

func (p *Post) Field(name string) (any, bool) {
	switch name {
	case "id":
		return p.ID, true
	case "title":
		return p.Title, true
	case "slug":
		return p.Slug, true
	case "content":
		return p.Content, true
	case "category_id":
		return p.CategoryID, true
	case "status":
		return p.Status, true
	case "created_at":
		return p.CreatedAt, true
	}
	return nil, false
}
