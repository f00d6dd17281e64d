package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewPost_Slug(t *testing.T) {
	p, err := NewPost(PostData{Title: "  Hola Mundo: ¡Go en producción! ", Content: "x", CategoryID: 1}, "posts/a.png", time.Now())
	require.NoError(t, err)
	assert.Equal(t, "hola-mundo-go-en-produccion", p.Slug)
	assert.Equal(t, "Hola Mundo: ¡Go en producción!", p.Title)
}

func TestNewPost_Validation(t *testing.T) {
	valid := PostData{Title: "t", Content: "c", CategoryID: 1}

	tests := []struct {
		name    string
		mutate  func(*PostData)
		picture string
	}{
		{name: "sin título", mutate: func(d *PostData) { d.Title = "" }, picture: "p"},
		{name: "sin contenido", mutate: func(d *PostData) { d.Content = " " }, picture: "p"},
		{name: "sin categoría", mutate: func(d *PostData) { d.CategoryID = 0 }, picture: "p"},
		{name: "sin imagen", mutate: func(d *PostData) {}, picture: ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			d := valid
			tt.mutate(&d)
			_, err := NewPost(d, tt.picture, time.Now())
			assert.ErrorIs(t, err, ErrInvalidPost)
		})
	}
}
