package domain

import "time"

type User struct {
	ID           int64     `json:"id" gorm:"column:id;primaryKey"`
	Name         string    `json:"name" gorm:"column:name;not null"`
	Bio          *string   `json:"bio,omitempty" gorm:"column:bio"`
	AvatarURL    *string   `json:"avatarUrl,omitempty" gorm:"column:avatar_url"`
	Email        string    `json:"email" gorm:"column:email;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"column:password;not null"`
	CreatedAt    time.Time `json:"createdAt" gorm:"column:created_at"`
	UpdatedAt    time.Time `json:"updatedAt" gorm:"column:updated_at"`
}

func (User) TableName() string { return "users" }

// PublicUser is the profile shape shown to other users: no email, no password.
type PublicUser struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Bio       *string   `json:"bio,omitempty"`
	AvatarURL *string   `json:"avatarUrl,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u *User) Public() PublicUser {
	return PublicUser{
		ID:        u.ID,
		Name:      u.Name,
		Bio:       u.Bio,
		AvatarURL: u.AvatarURL,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// Follow is a follower -> following edge between two users.
type Follow struct {
	FollowerID  int64     `json:"followerId" gorm:"column:follower_id;primaryKey"`
	FollowingID int64     `json:"followingId" gorm:"column:following_id;primaryKey"`
	CreatedAt   time.Time `json:"createdAt" gorm:"column:created_at"`
}

func (Follow) TableName() string { return "user_follows" }
