package domain

import "time"

// NotificationType identifies the social action a notification was written for.
type NotificationType string

const (
	NotificationUserAttendingExperience   NotificationType = "user_attending_experience"
	NotificationUserUnattendingExperience NotificationType = "user_unattending_experience"
	NotificationUserCommentedExperience   NotificationType = "user_commented_experience"
	NotificationUserFollowedUser          NotificationType = "user_followed_user"
	NotificationUserKickedExperience      NotificationType = "user_kicked_experience"
)

// Notification is a fan-out row written synchronously with the action that
// triggered it. FromUserID is the actor; UserID is the recipient and stays
// nullable in the schema even though every write path currently sets it.
// CreatedAt is assigned by the process at insert time, not by the database.
type Notification struct {
	ID           int64            `json:"id" gorm:"column:id;primaryKey"`
	Type         NotificationType `json:"type" gorm:"column:type;not null"`
	Read         bool             `json:"read" gorm:"column:read;not null;default:false"`
	CommentID    *int64           `json:"commentId,omitempty" gorm:"column:comment_id;index"`
	ExperienceID *int64           `json:"experienceId,omitempty" gorm:"column:experience_id;index"`
	FromUserID   int64            `json:"fromUserId" gorm:"column:from_user_id;index;not null"`
	UserID       *int64           `json:"userId,omitempty" gorm:"column:user_id;index"`
	CreatedAt    time.Time        `json:"createdAt" gorm:"column:created_at"`
}

func (Notification) TableName() string { return "notifications" }
