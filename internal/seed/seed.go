package seed

import (
	"fmt"
	"log"

	"corkboard/internal/models"

	"gorm.io/gorm"
)

// Options configuration for the seeder
type Options struct {
	NumUsers int
	NumPosts int
	// AnonymousRatio is the fraction of posts and comments created without
	// an account, in [0,1]. Zero means the default of 0.4.
	AnonymousRatio float64
	// MaxDays bounds how far back generated timestamps spread.
	MaxDays int
	// FastHash trades bcrypt cost for speed. Development only.
	FastHash bool
}

// Seeder populates the database with generated board content.
type Seeder struct {
	db      *gorm.DB
	factory *Factory
	opts    Options
}

// NewSeeder creates a Seeder with the given options applied.
func NewSeeder(db *gorm.DB, opts Options) *Seeder {
	if opts.NumUsers <= 0 {
		opts.NumUsers = 20
	}
	if opts.NumPosts <= 0 {
		opts.NumPosts = 100
	}
	if opts.AnonymousRatio <= 0 || opts.AnonymousRatio > 1 {
		opts.AnonymousRatio = 0.4
	}
	return &Seeder{db: db, factory: NewFactory(db, opts), opts: opts}
}

// ClearAll removes all board data. Comments go first so the post cascade
// never races the counter updates.
func (s *Seeder) ClearAll() error {
	log.Println("Clearing existing data...")
	for _, model := range []interface{}{&models.Comment{}, &models.Image{}, &models.Post{}, &models.User{}} {
		if err := s.db.Session(&gorm.Session{AllowGlobalUpdate: true}).Delete(model).Error; err != nil {
			return fmt.Errorf("clear %T: %w", model, err)
		}
	}
	return nil
}

// Run populates the database: accounts, a mix of member and anonymous posts,
// and comment threads with accurate counters.
func (s *Seeder) Run() error {
	log.Printf("Seeding %d users and %d posts...", s.opts.NumUsers, s.opts.NumPosts)

	users := make([]*models.User, 0, s.opts.NumUsers)
	for i := 0; i < s.opts.NumUsers; i++ {
		user, err := s.factory.CreateUser()
		if err != nil {
			return err
		}
		users = append(users, user)
	}

	posts := make([]*models.Post, 0, s.opts.NumPosts)
	for i := 0; i < s.opts.NumPosts; i++ {
		if s.factory.rng.Float64() < s.opts.AnonymousRatio || len(users) == 0 {
			posts = append(posts, s.factory.BuildAnonymousPost())
		} else {
			author := users[s.factory.rng.Intn(len(users))]
			posts = append(posts, s.factory.BuildMemberPost(author))
		}
	}
	if err := s.factory.CreatePostsBatch(posts); err != nil {
		return err
	}

	if err := s.seedComments(posts, users); err != nil {
		return err
	}

	log.Printf("Seeded %d users, %d posts. Every credential is %q.", len(users), len(posts), DemoCredential)
	return nil
}

func (s *Seeder) seedComments(posts []*models.Post, users []*models.User) error {
	for _, post := range posts {
		count := s.factory.rng.Intn(6)
		for i := 0; i < count; i++ {
			var author *models.User
			if s.factory.rng.Float64() >= s.opts.AnonymousRatio && len(users) > 0 {
				author = users[s.factory.rng.Intn(len(users))]
			}
			if _, err := s.factory.CreateComment(post, author); err != nil {
				return err
			}
		}
		if count > 0 {
			err := s.db.Model(&models.Post{}).Where("id = ?", post.ID).
				UpdateColumn("comment_count", count).Error
			if err != nil {
				return fmt.Errorf("update comment count: %w", err)
			}
		}

		// a few views so sorting by popularity has something to chew on
		views := s.factory.rng.Intn(500)
		if views > 0 {
			err := s.db.Model(&models.Post{}).Where("id = ?", post.ID).
				UpdateColumn("view", views).Error
			if err != nil {
				return fmt.Errorf("update views: %w", err)
			}
		}
	}
	return nil
}
