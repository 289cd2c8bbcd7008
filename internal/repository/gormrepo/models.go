package gormrepo

import (
	"time"

	"github.com/google/uuid"
	"github.com/siahsang/blog-orms/internal/utils/functional"
	"github.com/siahsang/blog-orms/models"
	"gorm.io/gorm"
)

type UserModel struct {
	ID     string `gorm:"primaryKey"`
	Name   string `gorm:"not null"`
	Email  string `gorm:"not null;uniqueIndex"`
	Active bool   `gorm:"not null"`
}

func (UserModel) TableName() string { return "users" }

type ArticleModel struct {
	ID          string         `gorm:"primaryKey"`
	Title       string         `gorm:"not null"`
	Content     string         `gorm:"not null"`
	AuthorID    string         `gorm:"not null;index"`
	PublishedAt time.Time      `gorm:"not null"`
	Tags        []TagModel     `gorm:"many2many:article_tags;joinForeignKey:ArticleID;joinReferences:TagID"`
	Comments    []CommentModel `gorm:"foreignKey:ArticleID"`
}

func (ArticleModel) TableName() string { return "articles" }

type CommentModel struct {
	ID        string    `gorm:"primaryKey"`
	Content   string    `gorm:"not null"`
	AuthorID  string    `gorm:"not null"`
	ArticleID string    `gorm:"not null;index"`
	CreatedAt time.Time `gorm:"not null"`
}

func (CommentModel) TableName() string { return "comments" }

type TagModel struct {
	ID   string `gorm:"primaryKey"`
	Name string `gorm:"not null;uniqueIndex"`
}

func (TagModel) TableName() string { return "tags" }

type ArticleTagModel struct {
	ArticleID string `gorm:"primaryKey"`
	TagID     string `gorm:"primaryKey"`
}

func (ArticleTagModel) TableName() string { return "article_tags" }

func (m *UserModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *ArticleModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *CommentModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m *TagModel) BeforeCreate(*gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (m UserModel) toDomain() *models.User {
	return &models.User{ID: m.ID, Name: m.Name, Email: m.Email, Active: m.Active}
}

func (m TagModel) toDomain() *models.Tag {
	return &models.Tag{ID: m.ID, Name: m.Name}
}

func (m CommentModel) toDomain() *models.Comment {
	return &models.Comment{
		ID:        m.ID,
		Content:   m.Content,
		AuthorID:  m.AuthorID,
		ArticleID: m.ArticleID,
		CreatedAt: m.CreatedAt,
	}
}

// toDomain leaves Comments empty unless they were preloaded.
func (m ArticleModel) toDomain(withComments bool) *models.Article {
	article := &models.Article{
		ID:          m.ID,
		Title:       m.Title,
		Content:     m.Content,
		AuthorID:    m.AuthorID,
		PublishedAt: m.PublishedAt,
		Tags:        functional.Map(m.Tags, TagModel.toDomain),
		Comments:    []*models.Comment{},
	}
	if withComments {
		article.Comments = functional.Map(m.Comments, CommentModel.toDomain)
	}
	return article
}
