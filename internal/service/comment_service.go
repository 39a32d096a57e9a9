package service

import (
	"context"

	"corkboard/internal/authz"
	"corkboard/internal/models"
	"corkboard/internal/repository"
	"corkboard/internal/validation"
)

type CreateCommentInput struct {
	Content  string `json:"content"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// CommentService owns comment lifecycle. Comments soft delete so the parent
// post's thread keeps its shape, and every write keeps the post's comment
// counter in step.
type CommentService struct {
	commentRepo repository.CommentRepository
	postRepo    repository.PostRepository
	resolver    *authz.Resolver
}

func NewCommentService(commentRepo repository.CommentRepository, postRepo repository.PostRepository, resolver *authz.Resolver) *CommentService {
	return &CommentService{commentRepo: commentRepo, postRepo: postRepo, resolver: resolver}
}

// List returns the visible comments of a post, oldest first.
func (s *CommentService) List(ctx context.Context, postID uint) ([]*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	return s.commentRepo.ListByPost(ctx, postID)
}

// Create validates and attributes a new comment, then stores it together
// with the parent post's counter bump.
func (s *CommentService) Create(ctx context.Context, actor authz.Actor, postID uint, in CreateCommentInput) (*models.Comment, error) {
	if _, err := s.postRepo.GetByID(ctx, postID); err != nil {
		return nil, err
	}
	if err := validation.ValidateCommentContent(in.Content); err != nil {
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

	comment := &models.Comment{
		PostID:   postID,
		Content:  in.Content,
		AuthorID: fields.AuthorID,
		Nickname: fields.Nickname,
		Password: fields.CredentialHash,
	}
	if err := s.commentRepo.CreateWithCount(ctx, comment); err != nil {
		return nil, err
	}
	return comment, nil
}

// Delete soft deletes a comment after the actor passes the ownership check.
// A comment that is already removed conflicts before any credential is
// looked at, so clients see the same answer no matter what they supply.
func (s *CommentService) Delete(ctx context.Context, actor authz.Actor, commentID uint, password string) error {
	comment, err := s.commentRepo.GetByID(ctx, commentID)
	if err != nil {
		return err
	}
	if comment.IsDeleted {
		return models.NewConflictError("Comment already removed")
	}

	own, err := authz.OwnershipOf(comment.AuthorID, comment.Password)
	if err != nil {
		return models.NewInternalError(err)
	}
	decision := s.resolver.Authorize(actor, own, password)
	recordDecision("comment", decision)
	if !decision.Allowed {
		return denialError(decision)
	}

	return s.commentRepo.SoftDeleteWithCount(ctx, comment)
}
