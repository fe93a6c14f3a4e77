package domain

import "time"

type Comment struct {
	ID           int64     `json:"id" gorm:"column:id;primaryKey"`
	Content      string    `json:"content" gorm:"column:content;not null"`
	ExperienceID int64     `json:"experienceId" gorm:"column:experience_id;index;not null"`
	UserID       int64     `json:"userId" gorm:"column:user_id;not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Comment) TableName() string { return "comments" }

type CommentLike struct {
	CommentID int64     `json:"commentId" gorm:"column:comment_id;primaryKey"`
	UserID    int64     `json:"userId" gorm:"column:user_id;primaryKey"`
	CreatedAt time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (CommentLike) TableName() string { return "comment_likes" }
