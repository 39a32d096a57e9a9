package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"corkboard/internal/cache"
	"corkboard/internal/models"

	"gorm.io/gorm"
)

// ListParams captures the listing query surface: free-text search over
// title or nickname, a whitelisted sort column and direction, and paging.
type ListParams struct {
	Search string
	Sort   string
	Order  string
	Limit  int
	Offset int
}

// PostRepository defines persistence operations for posts.
type PostRepository interface {
	Create(ctx context.Context, post *models.Post) error
	GetByID(ctx context.Context, id uint) (*models.Post, error)
	List(ctx context.Context, params ListParams) ([]*models.Post, int64, error)
	Update(ctx context.Context, post *models.Post) error
	Delete(ctx context.Context, id uint) error
	IncrementView(ctx context.Context, id uint) error
}

type postRepository struct {
	db *gorm.DB
}

// NewPostRepository creates a new post repository.
func NewPostRepository(db *gorm.DB) PostRepository {
	return &postRepository{db: db}
}

func (r *postRepository) Create(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Create(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostLists(ctx)
	return nil
}

func (r *postRepository) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	var post models.Post
	err := r.db.WithContext(ctx).Preload("Author").First(&post, id).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, models.NewNotFoundError("Post", id)
		}
		return nil, models.NewInternalError(err)
	}
	return &post, nil
}

// cachedListing is the JSON shape stored in redis for one listing page.
type cachedListing struct {
	Posts []*models.Post `json:"posts"`
	Total int64          `json:"total"`
}

func (r *postRepository) List(ctx context.Context, params ListParams) ([]*models.Post, int64, error) {
	key := cache.PostListKey(listFingerprint(params))

	var listing cachedListing
	err := cache.Aside(ctx, key, &listing, cache.PostListTTL, func() error {
		posts, total, loadErr := r.listFromDB(ctx, params)
		if loadErr != nil {
			return loadErr
		}
		listing.Posts = posts
		listing.Total = total
		cache.RememberPostListKey(ctx, key)
		return nil
	})
	if err != nil {
		return nil, 0, err
	}
	return listing.Posts, listing.Total, nil
}

func (r *postRepository) listFromDB(ctx context.Context, params ListParams) ([]*models.Post, int64, error) {
	base := r.db.WithContext(ctx).Model(&models.Post{})
	if search := strings.TrimSpace(params.Search); search != "" {
		like := "%" + search + "%"
		base = base.Where("title ILIKE ? OR content ILIKE ? OR nickname ILIKE ?", like, like, like)
	}

	var total int64
	if err := base.Count(&total).Error; err != nil {
		return nil, 0, models.NewInternalError(err)
	}

	var posts []*models.Post
	err := base.
		Preload("Author").
		Order(orderClause(params.Sort, params.Order)).
		Limit(params.Limit).
		Offset(params.Offset).
		Find(&posts).Error
	if err != nil {
		return nil, 0, models.NewInternalError(err)
	}
	return posts, total, nil
}

// orderClause builds a safe ORDER BY from whitelisted column names. Unknown
// columns fall back to newest-first.
func orderClause(sort, order string) string {
	column := "created_at"
	switch sort {
	case "view", "comment_count", "title", "created_at":
		column = sort
	}
	direction := "DESC"
	if strings.EqualFold(order, "asc") {
		direction = "ASC"
	}
	return fmt.Sprintf("%s %s, id %s", column, direction, direction)
}

func listFingerprint(params ListParams) string {
	return fmt.Sprintf("%s:%s:%s:%d:%d",
		strings.ToLower(strings.TrimSpace(params.Search)),
		params.Sort, params.Order, params.Limit, params.Offset)
}

func (r *postRepository) Update(ctx context.Context, post *models.Post) error {
	if err := r.db.WithContext(ctx).Save(post).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostLists(ctx)
	return nil
}

// Delete removes the post row permanently. Comments go with it via the
// ON DELETE CASCADE foreign key.
func (r *postRepository) Delete(ctx context.Context, id uint) error {
	if err := r.db.WithContext(ctx).Delete(&models.Post{}, id).Error; err != nil {
		return models.NewInternalError(err)
	}
	cache.InvalidatePostLists(ctx)
	return nil
}

// IncrementView bumps the view counter in a single UPDATE so concurrent
// readers never lose an increment.
func (r *postRepository) IncrementView(ctx context.Context, id uint) error {
	err := r.db.WithContext(ctx).
		Model(&models.Post{}).
		Where("id = ?", id).
		UpdateColumn("view", gorm.Expr("view + ?", 1)).Error
	if err != nil {
		return models.NewInternalError(err)
	}
	return nil
}
