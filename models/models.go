package models

import "time"

type User struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Email  string `json:"email"`
	Active bool   `json:"active"`
}

type Article struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Content     string     `json:"content"`
	AuthorID    string     `json:"authorId"`
	PublishedAt time.Time  `json:"publishedAt"`
	Tags        []*Tag     `json:"tags"`
	Comments    []*Comment `json:"comments"`
}

type Comment struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	AuthorID  string    `json:"authorId"`
	ArticleID string    `json:"articleId"`
	CreatedAt time.Time `json:"createdAt"`
}

type Tag struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type ArticleTag struct {
	ArticleID string `json:"articleId"`
	TagID     string `json:"tagId"`
}
