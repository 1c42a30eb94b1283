// Command main fills the forum database with fake users and discussions.
package main

import (
	"context"
	"flag"
	"log"

	"forumapi/internal/auth"
	"forumapi/internal/config"
	"forumapi/internal/database"
	"forumapi/internal/repository"
	"forumapi/internal/seed"
	"forumapi/internal/service"
)

func main() {
	defaults := seed.DefaultOptions()
	numUsers := flag.Int("users", defaults.Users, "Number of users to create")
	threadsPerUser := flag.Int("threads", defaults.ThreadsPerUser, "Threads per user")
	commentsPerThread := flag.Int("comments", defaults.CommentsPerThread, "Comments per thread")
	repliesPerComment := flag.Int("replies", defaults.RepliesPerComment, "Replies per comment")
	likeChance := flag.Float64("like-chance", defaults.LikeChance, "Probability that a user likes a comment")
	randomSeed := flag.Int64("seed", 0, "Random seed for reproducible data (0 = random)")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, %d threads/user, clean=%v", *numUsers, *threadsPerUser, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	ctx := context.Background()
	if err := database.ApplySchema(ctx, db, cfg); err != nil {
		log.Fatalf("Failed to apply schema: %v", err)
	}

	if *shouldClean {
		if err := seed.ClearAll(db); err != nil {
			log.Fatalf("Cleanup failed: %v", err)
		}
	}

	userRepo := repository.NewUserRepository(db)
	threadRepo := repository.NewThreadRepository(db)
	commentRepo := repository.NewCommentRepository(db)
	replyRepo := repository.NewReplyRepository(db)

	s := seed.NewSeeder(seed.Services{
		Users:    service.NewUserService(userRepo, auth.NewBcryptHasher()),
		Threads:  service.NewThreadService(threadRepo, commentRepo, replyRepo),
		Comments: service.NewCommentService(commentRepo, threadRepo),
		Replies:  service.NewReplyService(replyRepo, commentRepo, threadRepo),
	}, seed.Options{
		Users:             *numUsers,
		ThreadsPerUser:    *threadsPerUser,
		CommentsPerThread: *commentsPerThread,
		RepliesPerComment: *repliesPerComment,
		LikeChance:        *likeChance,
		RandomSeed:        *randomSeed,
	})

	summary, err := s.Run(ctx)
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Seeded %d users, %d threads, %d comments, %d replies, %d likes",
		summary.Users, summary.Threads, summary.Comments, summary.Replies, summary.Likes)
	log.Printf("All seeded users have the password: %s", seed.DefaultPassword)
}
