package model

import "time"

// Note is a coloured free-text note. IsPrivate only gates opening; content is
// stored as plaintext either way.
type Note struct {
	ID              string    `json:"id"`
	Title           string    `json:"title"`
	Content         string    `json:"content"`
	BackgroundColor string    `json:"bgColor"`
	TextColor       string    `json:"textColor"`
	IsPrivate       bool      `json:"isPrivate"`
	CreatedAt       time.Time `json:"createdAt"`
}

// NoteColor is a background/text colour pair from the note palette.
type NoteColor struct {
	Name       string
	Background string
	Text       string
}
