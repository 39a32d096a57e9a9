package service

import (
	"context"
	"log/slog"
	"strings"

	"corkboard/internal/authz"
	"corkboard/internal/models"
	"corkboard/internal/observability"
	"corkboard/internal/repository"
	"corkboard/internal/validation"
)

type CreatePostInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

type UpdatePostInput struct {
	Title    string `json:"title"`
	Content  string `json:"content"`
	Password string `json:"password"`
}

type ListPostsInput struct {
	Search string
	Sort   string
	Order  string
	Page   int
	Limit  int
}

// PostListing is one page of posts with paging metadata.
type PostListing struct {
	Posts      []*models.Post `json:"posts"`
	Total      int64          `json:"total"`
	Page       int            `json:"page"`
	TotalPages int            `json:"total_pages"`
}

// PostService owns post lifecycle and the ownership checks guarding it.
type PostService struct {
	postRepo repository.PostRepository
	resolver *authz.Resolver
}

func NewPostService(postRepo repository.PostRepository, resolver *authz.Resolver) *PostService {
	return &PostService{postRepo: postRepo, resolver: resolver}
}

// Create validates the input, attributes ownership to the actor and stores
// the post. Anonymous creators get their credential hashed during
// attribution; it is never stored in the clear.
func (s *PostService) Create(ctx context.Context, actor authz.Actor, in CreatePostInput) (*models.Post, error) {
	if err := validation.ValidatePostInput(in.Title, in.Content); err != nil {
		return nil, err
	}
	if !actor.IsMember() {
		if err := validation.ValidateNickname(in.Nickname); err != nil {
			return nil, err
		}
		if err := validation.ValidateAnonCredential(in.Password); err != nil {
			return nil, err
		}
	}

	fields, err := s.resolver.Attribute(actor, in.Nickname, in.Password)
	if err != nil {
		return nil, err
	}

	post := &models.Post{
		Title:    strings.TrimSpace(in.Title),
		Content:  in.Content,
		AuthorID: fields.AuthorID,
		Nickname: fields.Nickname,
		Password: fields.CredentialHash,
		HasImage: contentHasImage(in.Content),
	}
	if err := s.postRepo.Create(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Get returns one post and bumps its view counter. The counter increment is
// a side effect of reading, not an authorized mutation, so it happens for
// every actor.
func (s *PostService) Get(ctx context.Context, id uint) (*models.Post, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.postRepo.IncrementView(ctx, id); err != nil {
		// Best effort: a lost view bump must not fail the read.
		slog.WarnContext(ctx, "view increment failed", "post_id", id, "error", err)
	} else {
		post.View++
		observability.PostViews.Inc()
	}
	return post, nil
}

func (s *PostService) List(ctx context.Context, in ListPostsInput) (*PostListing, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = 20
	}
	if limit > 100 {
		limit = 100
	}

	posts, total, err := s.postRepo.List(ctx, repository.ListParams{
		Search: in.Search,
		Sort:   in.Sort,
		Order:  in.Order,
		Limit:  limit,
		Offset: (page - 1) * limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int((total + int64(limit) - 1) / int64(limit))
	return &PostListing{
		Posts:      posts,
		Total:      total,
		Page:       page,
		TotalPages: totalPages,
	}, nil
}

// Update edits a post's title and content after the actor passes the
// ownership check.
func (s *PostService) Update(ctx context.Context, actor authz.Actor, id uint, in UpdatePostInput) (*models.Post, error) {
	if err := validation.ValidatePostInput(in.Title, in.Content); err != nil {
		return nil, err
	}

	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.authorize(actor, post.AuthorID, post.Password, in.Password, "post"); err != nil {
		return nil, err
	}

	post.Title = strings.TrimSpace(in.Title)
	post.Content = in.Content
	post.HasImage = contentHasImage(in.Content)
	if err := s.postRepo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

// Delete removes a post permanently after the actor passes the ownership
// check. Its comments go with it.
func (s *PostService) Delete(ctx context.Context, actor authz.Actor, id uint, password string) error {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.authorize(actor, post.AuthorID, post.Password, password, "post"); err != nil {
		return err
	}
	return s.postRepo.Delete(ctx, id)
}

// VerifyPassword pre-checks an anonymous post's credential so a client can
// gate its edit form. Member-owned posts have no credential to verify.
func (s *PostService) VerifyPassword(ctx context.Context, id uint, password string) (bool, error) {
	post, err := s.postRepo.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	own, err := authz.OwnershipOf(post.AuthorID, post.Password)
	if err != nil {
		return false, models.NewInternalError(err)
	}
	if _, isMember := own.(authz.MemberOwned); isMember {
		return false, models.NewValidationError("Post is not password protected")
	}

	decision := s.resolver.Authorize(authz.Anonymous(), own, password)
	if !decision.Allowed {
		observability.AnonymousCredentialFailures.Inc()
	}
	return decision.Allowed, nil
}

// authorize runs the ownership decision table for a mutation and maps a
// denial onto the API error taxonomy.
func (s *PostService) authorize(actor authz.Actor, authorID *uint, storedHash, supplied, kind string) error {
	own, err := authz.OwnershipOf(authorID, storedHash)
	if err != nil {
		return models.NewInternalError(err)
	}

	decision := s.resolver.Authorize(actor, own, supplied)
	recordDecision(kind, decision)
	if decision.Allowed {
		return nil
	}
	return denialError(decision)
}

// denialError maps a deny reason onto the HTTP error taxonomy. A wrong or
// missing anonymous credential reads as a failed authentication attempt; a
// mismatched account is an authenticated actor lacking rights.
func denialError(decision authz.Decision) error {
	switch decision.Reason {
	case authz.ReasonNotOwner:
		return models.NewForbiddenError("You do not own this resource")
	case authz.ReasonMemberOnly:
		return models.NewUnauthorizedError("This resource belongs to an account")
	default:
		observability.AnonymousCredentialFailures.Inc()
		return models.NewUnauthorizedError("Invalid password")
	}
}

func recordDecision(kind string, decision authz.Decision) {
	outcome := "allow"
	if !decision.Allowed {
		outcome = "deny"
	}
	observability.AuthzDecisions.WithLabelValues(kind, outcome).Inc()
}

// contentHasImage reports whether the content embeds an uploaded image.
func contentHasImage(content string) bool {
	return strings.Contains(content, "/media/")
}
