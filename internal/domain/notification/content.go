package notification

import "experiencehub/internal/domain"

// Content renders the human-readable notification text from the type and the
// actor's name. Content is derived at read time, never stored; unknown types
// fall back to a generic string instead of failing.
func Content(t domain.NotificationType, fromUserName string) string {
	switch t {
	case domain.NotificationUserAttendingExperience:
		return fromUserName + " is attending your experience"
	case domain.NotificationUserUnattendingExperience:
		return fromUserName + " is no longer attending your experience"
	case domain.NotificationUserCommentedExperience:
		return fromUserName + " commented on your experience"
	case domain.NotificationUserFollowedUser:
		return fromUserName + " followed you"
	case domain.NotificationUserKickedExperience:
		return fromUserName + " kicked you from the experience"
	default:
		return "New notification"
	}
}
