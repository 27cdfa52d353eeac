package main

import (
	"github.com/google/uuid"
)

type Post struct {
	ID    string
	Text  string
	Image string
	Liked bool
}

// NewPost assigns a fresh local identifier, never one derived from the content.
func NewPost(text, image string) Post {
	return Post{
		ID:    uuid.New().String(),
		Text:  text,
		Image: image,
	}
}

func (p Post) HasImage() bool {
	return p.Image != ""
}
