package user

import "experiencehub/internal/domain"

// Profile is a public user enriched with the counters the profile page and
// user lists render. IsFollowing is false for anonymous viewers.
type Profile struct {
	domain.PublicUser
	FollowersCount         int64 `json:"followersCount"`
	FollowingCount         int64 `json:"followingCount"`
	HostedExperiencesCount int64 `json:"hostedExperiencesCount"`
	IsFollowing            bool  `json:"isFollowing"`
}

type EditProfileRequest struct {
	Name string  `form:"name" binding:"required"`
	Bio  *string `form:"bio"`
}

type ListResult struct {
	Users      []Profile `json:"users"`
	NextCursor *int      `json:"nextCursor,omitempty"`
}
