package notification

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"experiencehub/internal/domain"
)

func TestContentTemplates(t *testing.T) {
	cases := []struct {
		typ  domain.NotificationType
		want string
	}{
		{domain.NotificationUserAttendingExperience, "Alice is attending your experience"},
		{domain.NotificationUserUnattendingExperience, "Alice is no longer attending your experience"},
		{domain.NotificationUserCommentedExperience, "Alice commented on your experience"},
		{domain.NotificationUserFollowedUser, "Alice followed you"},
		{domain.NotificationUserKickedExperience, "Alice kicked you from the experience"},
	}

	for _, tc := range cases {
		assert.Equal(t, tc.want, Content(tc.typ, "Alice"))
	}
}

func TestContentUnknownType(t *testing.T) {
	assert.Equal(t, "New notification", Content(domain.NotificationType("something_new"), "Alice"))
}
