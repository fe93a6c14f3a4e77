package main

import (
	"log"
	"time"

	"golang.org/x/crypto/bcrypt"

	"experiencehub/internal/database"
	"experiencehub/internal/domain"
)

func main() {
	db, err := database.Connect("experiencehub.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := database.Migrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (children first to avoid foreign key errors)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM comment_likes")
	db.Exec("DELETE FROM comments")
	db.Exec("DELETE FROM experience_tags")
	db.Exec("DELETE FROM experience_favorites")
	db.Exec("DELETE FROM experience_attendees")
	db.Exec("DELETE FROM experiences")
	db.Exec("DELETE FROM tags")
	db.Exec("DELETE FROM user_follows")
	db.Exec("DELETE FROM users")

	now := time.Now()

	// ================== USERS ==================
	log.Println("Creating users...")

	users := make([]domain.User, 0, 4)
	demo := []struct {
		name  string
		email string
		bio   string
	}{
		{"Alice Tran", "alice@example.com", "Weekend hiker, weekday cook."},
		{"Ben Okafor", "ben@example.com", "Always up for live music."},
		{"Clara Diaz", "clara@example.com", "Board games and bad puns."},
		{"Dmitri Volkov", "dmitri@example.com", "Runs slow, shows up anyway."},
	}
	for _, d := range demo {
		hash, err := bcrypt.GenerateFromPassword([]byte("password123"), 12)
		if err != nil {
			log.Fatal("hash failed:", err)
		}
		bio := d.bio
		u := domain.User{
			Name:         d.name,
			Email:        d.email,
			Bio:          &bio,
			PasswordHash: string(hash),
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		if err := db.Create(&u).Error; err != nil {
			log.Fatal("create user failed:", err)
		}
		users = append(users, u)
	}
	alice, ben, clara, dmitri := users[0], users[1], users[2], users[3]

	// ================== TAGS ==================
	log.Println("Creating tags...")

	tagNames := []string{"outdoors", "music", "food", "games", "sports"}
	tags := make([]domain.Tag, 0, len(tagNames))
	for _, name := range tagNames {
		t := domain.Tag{Name: name, CreatedAt: now, UpdatedAt: now}
		if err := db.Create(&t).Error; err != nil {
			log.Fatal("create tag failed:", err)
		}
		tags = append(tags, t)
	}

	// ================== EXPERIENCES ==================
	log.Println("Creating experiences...")

	location1 := "Eagle Ridge trailhead"
	hike := domain.Experience{
		Title:       "Sunrise ridge hike",
		Content:     "Easy 8km loop, back before lunch. Bring water and a headlamp for the first hour.",
		ScheduledAt: now.AddDate(0, 0, 7),
		Location:    &location1,
		UserID:      alice.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(&hike).Error; err != nil {
		log.Fatal("create experience failed:", err)
	}

	location2 := "The Basement, 4th Street"
	gig := domain.Experience{
		Title:       "Local bands night",
		Content:     "Three bands, no cover before 8. Meeting at the bar near the stage.",
		ScheduledAt: now.AddDate(0, 0, 3),
		Location:    &location2,
		UserID:      ben.ID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := db.Create(&gig).Error; err != nil {
		log.Fatal("create experience failed:", err)
	}

	db.Create(&domain.ExperienceTag{ExperienceID: hike.ID, TagID: tags[0].ID, CreatedAt: now})
	db.Create(&domain.ExperienceTag{ExperienceID: hike.ID, TagID: tags[4].ID, CreatedAt: now})
	db.Create(&domain.ExperienceTag{ExperienceID: gig.ID, TagID: tags[1].ID, CreatedAt: now})

	// ================== SOCIAL GRAPH ==================
	log.Println("Creating follows and attendance...")

	db.Create(&domain.Follow{FollowerID: ben.ID, FollowingID: alice.ID, CreatedAt: now})
	db.Create(&domain.Follow{FollowerID: clara.ID, FollowingID: alice.ID, CreatedAt: now})
	db.Create(&domain.Follow{FollowerID: alice.ID, FollowingID: ben.ID, CreatedAt: now})

	db.Create(&domain.ExperienceAttendee{ExperienceID: hike.ID, UserID: ben.ID, CreatedAt: now})
	db.Create(&domain.ExperienceAttendee{ExperienceID: hike.ID, UserID: clara.ID, CreatedAt: now})
	db.Create(&domain.ExperienceAttendee{ExperienceID: gig.ID, UserID: dmitri.ID, CreatedAt: now})

	db.Create(&domain.ExperienceFavorite{ExperienceID: gig.ID, UserID: clara.ID, CreatedAt: now})

	// ================== COMMENTS ==================
	log.Println("Creating comments...")

	c1 := domain.Comment{
		Content:      "Is the trail okay after last week's rain?",
		ExperienceID: hike.ID,
		UserID:       ben.ID,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	db.Create(&c1)
	db.Create(&domain.CommentLike{CommentID: c1.ID, UserID: clara.ID, CreatedAt: now})

	// ================== NOTIFICATIONS ==================
	log.Println("Creating notifications...")

	db.Create(&domain.Notification{
		Type:         domain.NotificationUserAttendingExperience,
		ExperienceID: &hike.ID,
		FromUserID:   ben.ID,
		UserID:       &alice.ID,
		CreatedAt:    now,
	})
	db.Create(&domain.Notification{
		Type:         domain.NotificationUserCommentedExperience,
		CommentID:    &c1.ID,
		ExperienceID: &hike.ID,
		FromUserID:   ben.ID,
		UserID:       &alice.ID,
		CreatedAt:    now,
	})
	db.Create(&domain.Notification{
		Type:       domain.NotificationUserFollowedUser,
		FromUserID: clara.ID,
		UserID:     &alice.ID,
		CreatedAt:  now,
	})

	log.Println("Seed complete. Log in with alice@example.com / password123")
}
