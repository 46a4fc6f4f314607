package main

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"os"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"pronet/internal/database"
	"pronet/internal/domain/account"
	"pronet/internal/domain/comment"
	"pronet/internal/domain/entitlement"
	"pronet/internal/domain/like"
	"pronet/internal/domain/media"
	"pronet/internal/domain/notification"
	"pronet/internal/domain/post"
)

func main() {
	dsn := os.Getenv("DATABASE_URL")
	if dsn == "" {
		dsn = "pronet.db"
	}

	db, err := database.Connect(dsn)
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := db.AutoMigrate(
		&account.Account{},
		&entitlement.Entitlement{},
		&media.Media{},
		&post.Post{},
		&post.PostMedia{},
		&comment.Comment{},
		&like.Like{},
		&notification.Notification{},
	); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	// Cleanup old data (children first to avoid dangling references)
	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM notifications")
	db.Exec("DELETE FROM likes")
	db.Exec("DELETE FROM comments")
	db.Exec("DELETE FROM post_media")
	db.Exec("DELETE FROM posts")
	db.Exec("DELETE FROM media")
	db.Exec("DELETE FROM entitlements")
	db.Exec("DELETE FROM accounts")

	ctx := context.Background()

	// ================== ACCOUNTS ==================
	log.Println("Creating accounts...")
	hash, _ := bcrypt.GenerateFromPassword([]byte("demo123"), bcrypt.DefaultCost)

	users := make([]*account.Account, 0, 3)
	for i, email := range []string{"asel@example.com", "bekzat@example.com", "dina@example.com"} {
		u := &account.Account{
			Name:         fmt.Sprintf("User %d", i+1),
			Email:        email,
			PasswordHash: string(hash),
			Kind:         account.KindUser,
		}
		db.Create(u)
		users = append(users, u)
	}

	company := &account.Account{
		Name:         "Northlight Media",
		Email:        "hello@northlight.example.com",
		PasswordHash: string(hash),
		Kind:         account.KindCompany,
	}
	db.Create(company)

	// First user gets an active entitlement, so they post past the free tier.
	db.Create(&entitlement.Entitlement{
		ID:        uuid.New().String(),
		AccountID: users[0].ID,
		Status:    entitlement.StatusActive,
	})

	// ================== POSTS ==================
	log.Println("Creating posts...")
	postRepo := post.NewRepository(db)
	accountRepo := account.NewRepository(db)

	posts := make([]*post.Post, 0, 8)
	for i := 0; i < 8; i++ {
		creator := users[i%len(users)]
		p := &post.Post{
			ID:          uuid.New().String(),
			CreatorID:   creator.ID,
			Description: fmt.Sprintf("Post %d: notes from the field", i+1),
			CreatedAt:   time.Now().Add(-time.Duration(8-i) * time.Hour),
		}
		if err := postRepo.Create(ctx, p, nil); err != nil {
			log.Fatal("seed post failed:", err)
		}
		if err := accountRepo.IncrementCreatedPosts(ctx, creator.ID); err != nil {
			log.Fatal("seed counter failed:", err)
		}
		posts = append(posts, p)
	}

	// ================== COMMENTS ==================
	log.Println("Creating comment threads...")
	commentRepo := comment.NewRepository(db)
	for _, p := range posts[:4] {
		root := &comment.Comment{
			ID:         uuid.New().String(),
			PostID:     p.ID,
			AuthorID:   users[1].ID,
			AuthorName: users[1].Name,
			Content:    "Great post!",
		}
		if err := commentRepo.Create(ctx, root); err != nil {
			log.Fatal("seed comment failed:", err)
		}

		reply := &comment.Comment{
			ID:         uuid.New().String(),
			PostID:     p.ID,
			ParentID:   &root.ID,
			AuthorID:   p.CreatorID,
			AuthorName: "Author",
			Content:    "Thanks!",
			Path:       comment.ChildOf(root.Path, root.ID),
		}
		if err := commentRepo.Create(ctx, reply); err != nil {
			log.Fatal("seed reply failed:", err)
		}
	}

	// ================== LIKES ==================
	log.Println("Creating likes...")
	for _, p := range posts {
		for _, u := range users {
			if u.ID == p.CreatorID || rand.Intn(2) == 0 {
				continue
			}
			db.Create(&like.Like{ID: uuid.New().String(), PostID: p.ID, UserID: u.ID})
		}
	}

	// ================== NOTIFICATIONS ==================
	log.Println("Creating notifications...")
	for _, p := range posts[:4] {
		n := &notification.Notification{
			AccountID: p.CreatorID,
			Type:      notification.TypePostCommented,
			Title:     "New comment",
			Message:   "Someone commented on your post",
		}
		_ = n.SetData(&notification.EventData{PostID: p.ID, ActorID: users[1].ID})
		db.Create(n)
	}

	log.Println("Seed completed.")
	log.Println("Accounts: asel/bekzat/dina@example.com and hello@northlight.example.com, password demo123")
}
