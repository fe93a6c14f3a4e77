package domain

import "time"

type Experience struct {
	ID          int64     `json:"id" gorm:"column:id;primaryKey"`
	Title       string    `json:"title" gorm:"column:title;not null"`
	Content     string    `json:"content" gorm:"column:content;not null"`
	ScheduledAt time.Time `json:"scheduledAt" gorm:"column:scheduled_at;not null"`
	URL         *string   `json:"url,omitempty" gorm:"column:url"`
	ImageURL    *string   `json:"imageUrl,omitempty" gorm:"column:image_url"`
	Location    *string   `json:"location,omitempty" gorm:"column:location"`
	UserID      int64     `json:"userId" gorm:"column:user_id;index;not null"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt   time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (Experience) TableName() string { return "experiences" }

// ExperienceAttendee links a user to an experience they attend.
// The composite primary key is the only duplicate-attend guard at the
// storage level.
type ExperienceAttendee struct {
	ExperienceID int64     `json:"experienceId" gorm:"column:experience_id;primaryKey"`
	UserID       int64     `json:"userId" gorm:"column:user_id;primaryKey"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (ExperienceAttendee) TableName() string { return "experience_attendees" }

type ExperienceFavorite struct {
	ExperienceID int64     `json:"experienceId" gorm:"column:experience_id;primaryKey"`
	UserID       int64     `json:"userId" gorm:"column:user_id;primaryKey"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (ExperienceFavorite) TableName() string { return "experience_favorites" }

type ExperienceTag struct {
	ExperienceID int64     `json:"experienceId" gorm:"column:experience_id;primaryKey"`
	TagID        int64     `json:"tagId" gorm:"column:tag_id;primaryKey"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (ExperienceTag) TableName() string { return "experience_tags" }
