// Package seed provides helpers to create test and demo data for the
// application database. These helpers are intended for development and
// testing only.
package seed

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"corkboard/internal/models"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DemoCredential is the plaintext password behind every seeded account and
// every seeded anonymous post or comment.
const DemoCredential = "password123"

// Factory builds domain entities and persists them to the database.
type Factory struct {
	db   *gorm.DB
	rng  *rand.Rand
	opts Options
	// bcrypt digests are expensive, so the demo credential is hashed once
	// and shared across every generated row.
	credentialHash string
}

// NewFactory creates a new Factory bound to the provided Gorm DB.
func NewFactory(db *gorm.DB, opts Options) *Factory {
	gofakeit.Seed(time.Now().UnixNano())

	cost := bcrypt.DefaultCost
	if opts.FastHash {
		cost = bcrypt.MinCost
	}
	hash, _ := bcrypt.GenerateFromPassword([]byte(DemoCredential), cost)

	return &Factory{
		db:             db,
		rng:            rand.New(rand.NewSource(time.Now().UnixNano())),
		opts:           opts,
		credentialHash: string(hash),
	}
}

// CreateUser constructs and persists a sample account. Optional override
// functions may modify the generated user before saving.
func (f *Factory) CreateUser(overrides ...func(*models.User)) (*models.User, error) {
	user := &models.User{
		Email:    gofakeit.Email(),
		Nickname: gofakeit.Username() + fmt.Sprintf("%d", gofakeit.Number(100, 999)),
		Password: f.credentialHash,
		Role:     models.RoleUser,
	}

	for _, override := range overrides {
		override(user)
	}

	if err := f.db.Create(user).Error; err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

// BuildMemberPost constructs a post owned by the given account but does not
// persist it. Useful for batching.
func (f *Factory) BuildMemberPost(author *models.User, overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:    gofakeit.Sentence(5),
		Content:  gofakeit.Paragraph(1, 3, 5, "\n"),
		AuthorID: &author.ID,
		Nickname: author.Nickname,
	}
	f.spreadCreatedAt(&post.CreatedAt)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// BuildAnonymousPost constructs a password-gated drive-by post without
// persisting it. The edit credential is always DemoCredential.
func (f *Factory) BuildAnonymousPost(overrides ...func(*models.Post)) *models.Post {
	post := &models.Post{
		Title:    gofakeit.Sentence(5),
		Content:  gofakeit.Paragraph(1, 3, 5, "\n"),
		Nickname: gofakeit.PetName(),
		Password: f.credentialHash,
	}
	f.spreadCreatedAt(&post.CreatedAt)

	for _, override := range overrides {
		override(post)
	}
	return post
}

// CreatePostsBatch persists multiple posts in a single DB call.
func (f *Factory) CreatePostsBatch(posts []*models.Post) error {
	if len(posts) == 0 {
		return nil
	}
	if err := f.db.Create(&posts).Error; err != nil {
		return fmt.Errorf("create posts batch: %w", err)
	}
	log.Printf("created %d posts", len(posts))
	return nil
}

// CreateComment persists a comment on the given post. When author is nil the
// comment is anonymous and carries the shared demo credential.
func (f *Factory) CreateComment(post *models.Post, author *models.User, overrides ...func(*models.Comment)) (*models.Comment, error) {
	comment := &models.Comment{
		PostID:  post.ID,
		Content: gofakeit.Sentence(f.rng.Intn(12) + 3),
	}
	if author != nil {
		comment.AuthorID = &author.ID
		comment.Nickname = author.Nickname
	} else {
		comment.Nickname = gofakeit.PetName()
		comment.Password = f.credentialHash
	}

	// keep replies after their post
	earliest := post.CreatedAt
	if earliest.IsZero() {
		earliest = time.Now().Add(-24 * time.Hour)
	}
	span := time.Since(earliest)
	if span > 0 {
		comment.CreatedAt = earliest.Add(time.Duration(f.rng.Int63n(int64(span))))
	}

	for _, override := range overrides {
		override(comment)
	}

	if err := f.db.Create(comment).Error; err != nil {
		return nil, fmt.Errorf("create comment: %w", err)
	}
	return comment, nil
}

// spreadCreatedAt backdates a timestamp so listings look lived-in.
func (f *Factory) spreadCreatedAt(ts *time.Time) {
	maxDays := f.opts.MaxDays
	if maxDays <= 0 {
		maxDays = 90
	}
	daysBack := f.rng.Intn(maxDays)
	hoursBack := f.rng.Intn(24)
	minsBack := f.rng.Intn(60)
	*ts = time.Now().Add(-time.Duration(daysBack)*24*time.Hour - time.Duration(hoursBack)*time.Hour - time.Duration(minsBack)*time.Minute)
}
