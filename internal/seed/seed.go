// Package seed provides helpers to create demo data for the application
// store. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"ripple/internal/models"
	"ripple/internal/store"

	"github.com/brianvoe/gofakeit/v6"
	"github.com/google/uuid"
)

// Options controls the shape of the generated data.
type Options struct {
	Users     int
	Posts     int
	MaxDays   int
	FollowPct float64
}

// Seeder populates a store with generated users, posts, follows, likes and
// comments.
type Seeder struct {
	store *store.Store
	rng   *rand.Rand
	opts  Options
}

// NewSeeder creates a new Seeder bound to the given store.
func NewSeeder(st *store.Store, opts Options) *Seeder {
	gofakeit.Seed(time.Now().UnixNano())
	if opts.Users <= 0 {
		opts.Users = 25
	}
	if opts.Posts <= 0 {
		opts.Posts = 100
	}
	if opts.MaxDays <= 0 {
		opts.MaxDays = 90
	}
	if opts.FollowPct <= 0 {
		opts.FollowPct = 0.15
	}
	return &Seeder{
		store: st,
		rng:   rand.New(rand.NewSource(time.Now().UnixNano())),
		opts:  opts,
	}
}

// BuildUser constructs a sample user. Optional override functions may
// modify the generated user before it is stored.
func (s *Seeder) BuildUser(overrides ...func(*models.User)) models.User {
	user := models.User{
		ID:          uuid.NewString(),
		Username:    gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Password:    "password123",
		DisplayName: gofakeit.Name(),
		Avatar:      fmt.Sprintf("https://i.pravatar.cc/150?u=%s", gofakeit.UUID()),
		Bio:         gofakeit.Sentence(10),
		CreatedAt:   s.pastTime(),
	}
	for _, override := range overrides {
		override(&user)
	}
	return user
}

// BuildPost constructs a sample original post for the given author.
func (s *Seeder) BuildPost(author models.User, overrides ...func(*models.Post)) models.Post {
	post := models.Post{
		ID:        uuid.NewString(),
		AuthorID:  author.ID,
		Text:      gofakeit.Sentence(gofakeit.Number(5, 20)),
		CreatedAt: s.pastTime(),
		State:     models.PostStateActive,
	}
	if s.rng.Intn(4) == 0 {
		post.MediaURL = fmt.Sprintf("https://picsum.photos/seed/%s/800/800", gofakeit.UUID())
		post.MediaType = models.MediaTypeImage
	}
	for _, override := range overrides {
		override(&post)
	}
	return post
}

// Run seeds the full social mesh: users, posts, a sprinkle of reposts,
// follow edges, likes and comments.
func (s *Seeder) Run(ctx context.Context) ([]models.User, error) {
	users := make([]models.User, 0, s.opts.Users)
	for i := 0; i < s.opts.Users; i++ {
		u := s.BuildUser()
		s.store.AddUser(ctx, u)
		users = append(users, u)
	}

	posts := make([]models.Post, 0, s.opts.Posts)
	for i := 0; i < s.opts.Posts; i++ {
		author := users[s.rng.Intn(len(users))]
		p := s.BuildPost(author)
		s.store.AddPost(ctx, p)
		posts = append(posts, p)
	}

	// Reposts reference a random original; chains stay one hop by
	// construction because only originals are sampled here.
	for i := 0; i < s.opts.Posts/10; i++ {
		original := posts[s.rng.Intn(len(posts))]
		author := users[s.rng.Intn(len(users))]
		s.store.AddPost(ctx, models.Post{
			ID:        uuid.NewString(),
			AuthorID:  author.ID,
			CreatedAt: s.pastTime(),
			RepostOf:  original.ID,
			State:     models.PostStateActive,
		})
	}

	for _, follower := range users {
		for _, following := range users {
			if follower.ID == following.ID {
				continue
			}
			if s.rng.Float64() < s.opts.FollowPct && !s.store.HasFollow(follower.ID, following.ID) {
				s.store.ToggleFollow(ctx, follower.ID, following.ID)
			}
		}
	}

	for _, p := range posts {
		for i := 0; i < s.rng.Intn(5); i++ {
			fan := users[s.rng.Intn(len(users))]
			if !s.store.HasLike(fan.ID, p.ID) {
				s.store.ToggleLike(ctx, fan.ID, p.ID)
			}
		}
		if s.rng.Intn(3) == 0 {
			commenter := users[s.rng.Intn(len(users))]
			s.store.AddComment(ctx, models.Comment{
				ID:        uuid.NewString(),
				AuthorID:  commenter.ID,
				PostID:    p.ID,
				Text:      gofakeit.Sentence(gofakeit.Number(3, 12)),
				CreatedAt: s.pastTime(),
			})
		}
	}

	// A couple of accounts get synthetic followers so the verification
	// path has data to show.
	for i := 0; i < 2 && i < len(users); i++ {
		s.store.AddSyntheticFollowers(ctx, users[i].ID, gofakeit.Number(100, 1200))
	}

	return users, nil
}

func (s *Seeder) pastTime() time.Time {
	daysBack := s.rng.Intn(s.opts.MaxDays)
	hoursBack := s.rng.Intn(24)
	minsBack := s.rng.Intn(60)
	return time.Now().UTC().
		Add(-time.Duration(daysBack)*24*time.Hour -
			time.Duration(hoursBack)*time.Hour -
			time.Duration(minsBack)*time.Minute)
}
