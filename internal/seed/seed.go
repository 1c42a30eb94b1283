// Package seed populates a development database with fake forum activity.
// It goes through the services so seeded data obeys the same rules as API traffic.
package seed

import (
	"context"
	"fmt"
	"log"
	"regexp"
	"strings"

	"forumapi/internal/models"
	"forumapi/internal/service"

	"github.com/brianvoe/gofakeit/v6"
	"gorm.io/gorm"
)

// DefaultPassword is shared by every seeded account.
const DefaultPassword = "password123"

var usernameStrip = regexp.MustCompile(`[^A-Za-z0-9_]`)

// Options controls how much data is generated.
type Options struct {
	Users             int
	ThreadsPerUser    int
	CommentsPerThread int
	RepliesPerComment int
	// LikeChance is the probability that a given user likes a given comment.
	LikeChance float64
	// RandomSeed makes runs reproducible when non-zero.
	RandomSeed int64
}

// DefaultOptions returns a small but lively forum.
func DefaultOptions() Options {
	return Options{
		Users:             10,
		ThreadsPerUser:    2,
		CommentsPerThread: 4,
		RepliesPerComment: 2,
		LikeChance:        0.3,
	}
}

// Summary reports what a run created.
type Summary struct {
	Users    int
	Threads  int
	Comments int
	Replies  int
	Likes    int
}

// Services bundles the use cases the seeder drives.
type Services struct {
	Users    *service.UserService
	Threads  *service.ThreadService
	Comments *service.CommentService
	Replies  *service.ReplyService
}

// Seeder generates fake forum content.
type Seeder struct {
	svc   Services
	opts  Options
	faker *gofakeit.Faker
	n     int
}

// NewSeeder creates a Seeder. A zero RandomSeed picks a random one.
func NewSeeder(svc Services, opts Options) *Seeder {
	return &Seeder{svc: svc, opts: opts, faker: gofakeit.New(opts.RandomSeed)}
}

// BuildUser returns a registration payload with a unique, valid username.
func (s *Seeder) BuildUser() models.RegisterUser {
	s.n++
	base := usernameStrip.ReplaceAllString(strings.ToLower(s.faker.Username()), "")
	suffix := fmt.Sprintf("_%d", s.n)
	if limit := 50 - len(suffix); len(base) > limit {
		base = base[:limit]
	}
	return models.RegisterUser{
		Username: base + suffix,
		Password: DefaultPassword,
		Fullname: s.faker.Name(),
	}
}

// BuildThread returns a thread payload owned by owner.
func (s *Seeder) BuildThread(owner string) models.NewThread {
	return models.NewThread{
		Title: strings.TrimSuffix(s.faker.Sentence(5), "."),
		Body:  s.faker.Paragraph(1, 3, 12, "\n"),
		Owner: owner,
	}
}

// BuildComment returns a comment payload for threadID.
func (s *Seeder) BuildComment(threadID, owner string) models.NewComment {
	return models.NewComment{Content: s.faker.Sentence(12), ThreadID: threadID, Owner: owner}
}

// BuildReply returns a reply payload for commentID.
func (s *Seeder) BuildReply(commentID, owner string) models.NewReply {
	return models.NewReply{Content: s.faker.Sentence(8), CommentID: commentID, Owner: owner}
}

func (s *Seeder) pick(users []*models.AddedUser) *models.AddedUser {
	return users[s.faker.Number(0, len(users)-1)]
}

// Run creates users, threads, comments, replies and likes.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	sum := &Summary{}
	if s.opts.Users <= 0 {
		return sum, nil
	}

	users := make([]*models.AddedUser, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		u, err := s.svc.Users.Register(ctx, s.BuildUser())
		if err != nil {
			return sum, fmt.Errorf("register user: %w", err)
		}
		users = append(users, u)
		sum.Users++
	}
	log.Printf("seeded %d users", sum.Users)

	for _, author := range users {
		for t := 0; t < s.opts.ThreadsPerUser; t++ {
			thread, err := s.svc.Threads.AddThread(ctx, s.BuildThread(author.ID))
			if err != nil {
				return sum, fmt.Errorf("add thread: %w", err)
			}
			sum.Threads++

			for c := 0; c < s.opts.CommentsPerThread; c++ {
				comment, err := s.svc.Comments.AddComment(ctx, s.BuildComment(thread.ID, s.pick(users).ID))
				if err != nil {
					return sum, fmt.Errorf("add comment: %w", err)
				}
				sum.Comments++

				for r := 0; r < s.opts.RepliesPerComment; r++ {
					_, err := s.svc.Replies.AddReply(ctx, service.AddReplyInput{
						ThreadID: thread.ID,
						Reply:    s.BuildReply(comment.ID, s.pick(users).ID),
					})
					if err != nil {
						return sum, fmt.Errorf("add reply: %w", err)
					}
					sum.Replies++
				}

				for _, liker := range users {
					if s.faker.Float64Range(0, 1) >= s.opts.LikeChance {
						continue
					}
					if _, err := s.svc.Comments.ToggleLike(ctx, service.ToggleLikeInput{
						ThreadID:  thread.ID,
						CommentID: comment.ID,
						UserID:    liker.ID,
					}); err != nil {
						return sum, fmt.Errorf("like comment: %w", err)
					}
					sum.Likes++
				}
			}
		}
	}

	log.Printf("seeded %d threads, %d comments, %d replies, %d likes", sum.Threads, sum.Comments, sum.Replies, sum.Likes)
	return sum, nil
}

// ClearAll removes all forum data, children first.
func ClearAll(db *gorm.DB) error {
	tables := []string{"user_comment_likes", "replies", "comments", "threads", "authentications", "users"}
	for _, table := range tables {
		if err := db.Exec("DELETE FROM " + table).Error; err != nil {
			return fmt.Errorf("clear %s: %w", table, err)
		}
	}
	log.Println("cleared forum tables")
	return nil
}
