package service

import (
	"context"

	"corkboard/internal/authz"
	"corkboard/internal/models"
	"corkboard/internal/repository"

	"golang.org/x/crypto/bcrypt"
)

func testResolver() *authz.Resolver {
	return authz.NewResolver(authz.BcryptHasher{Cost: bcrypt.MinCost})
}

// postRepoStub is a stub for repository.PostRepository.
type postRepoStub struct {
	createFn        func(context.Context, *models.Post) error
	getByIDFn       func(context.Context, uint) (*models.Post, error)
	listFn          func(context.Context, repository.ListParams) ([]*models.Post, int64, error)
	updateFn        func(context.Context, *models.Post) error
	deleteFn        func(context.Context, uint) error
	incrementViewFn func(context.Context, uint) error
}

func (s *postRepoStub) Create(ctx context.Context, post *models.Post) error {
	return s.createFn(ctx, post)
}
func (s *postRepoStub) GetByID(ctx context.Context, id uint) (*models.Post, error) {
	return s.getByIDFn(ctx, id)
}
func (s *postRepoStub) List(ctx context.Context, params repository.ListParams) ([]*models.Post, int64, error) {
	return s.listFn(ctx, params)
}
func (s *postRepoStub) Update(ctx context.Context, post *models.Post) error {
	return s.updateFn(ctx, post)
}
func (s *postRepoStub) Delete(ctx context.Context, id uint) error {
	return s.deleteFn(ctx, id)
}
func (s *postRepoStub) IncrementView(ctx context.Context, id uint) error {
	return s.incrementViewFn(ctx, id)
}

func noopPostRepo() *postRepoStub {
	return &postRepoStub{
		createFn:  func(_ context.Context, _ *models.Post) error { return nil },
		getByIDFn: func(_ context.Context, _ uint) (*models.Post, error) { return &models.Post{}, nil },
		listFn: func(_ context.Context, _ repository.ListParams) ([]*models.Post, int64, error) {
			return nil, 0, nil
		},
		updateFn:        func(_ context.Context, _ *models.Post) error { return nil },
		deleteFn:        func(_ context.Context, _ uint) error { return nil },
		incrementViewFn: func(_ context.Context, _ uint) error { return nil },
	}
}

// commentRepoStub is a stub for repository.CommentRepository.
type commentRepoStub struct {
	getByIDFn             func(context.Context, uint) (*models.Comment, error)
	listByPostFn          func(context.Context, uint) ([]*models.Comment, error)
	createWithCountFn     func(context.Context, *models.Comment) error
	softDeleteWithCountFn func(context.Context, *models.Comment) error
}

func (s *commentRepoStub) GetByID(ctx context.Context, id uint) (*models.Comment, error) {
	return s.getByIDFn(ctx, id)
}
func (s *commentRepoStub) ListByPost(ctx context.Context, postID uint) ([]*models.Comment, error) {
	return s.listByPostFn(ctx, postID)
}
func (s *commentRepoStub) CreateWithCount(ctx context.Context, comment *models.Comment) error {
	return s.createWithCountFn(ctx, comment)
}
func (s *commentRepoStub) SoftDeleteWithCount(ctx context.Context, comment *models.Comment) error {
	return s.softDeleteWithCountFn(ctx, comment)
}

func noopCommentRepo() *commentRepoStub {
	return &commentRepoStub{
		getByIDFn:             func(_ context.Context, _ uint) (*models.Comment, error) { return &models.Comment{}, nil },
		listByPostFn:          func(_ context.Context, _ uint) ([]*models.Comment, error) { return nil, nil },
		createWithCountFn:     func(_ context.Context, _ *models.Comment) error { return nil },
		softDeleteWithCountFn: func(_ context.Context, _ *models.Comment) error { return nil },
	}
}

// userRepoStub is a stub for repository.UserRepository.
type userRepoStub struct {
	createFn        func(context.Context, *models.User) error
	getByIDFn       func(context.Context, uint) (*models.User, error)
	getByEmailFn    func(context.Context, string) (*models.User, error)
	getByNicknameFn func(context.Context, string) (*models.User, error)
	existsFn        func(context.Context, string, string) (bool, error)
}

func (s *userRepoStub) Create(ctx context.Context, user *models.User) error {
	return s.createFn(ctx, user)
}
func (s *userRepoStub) GetByID(ctx context.Context, id uint) (*models.User, error) {
	return s.getByIDFn(ctx, id)
}
func (s *userRepoStub) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	return s.getByEmailFn(ctx, email)
}
func (s *userRepoStub) GetByNickname(ctx context.Context, nickname string) (*models.User, error) {
	return s.getByNicknameFn(ctx, nickname)
}
func (s *userRepoStub) ExistsByEmailOrNickname(ctx context.Context, email, nickname string) (bool, error) {
	return s.existsFn(ctx, email, nickname)
}

func noopUserRepo() *userRepoStub {
	return &userRepoStub{
		createFn:        func(_ context.Context, _ *models.User) error { return nil },
		getByIDFn:       func(_ context.Context, _ uint) (*models.User, error) { return &models.User{}, nil },
		getByEmailFn:    func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		getByNicknameFn: func(_ context.Context, _ string) (*models.User, error) { return nil, nil },
		existsFn:        func(_ context.Context, _, _ string) (bool, error) { return false, nil },
	}
}

// imageRepoStub is a stub for repository.ImageRepository.
type imageRepoStub struct {
	createFn    func(context.Context, *models.Image) error
	getByHashFn func(context.Context, string) (*models.Image, error)
}

func (s *imageRepoStub) Create(ctx context.Context, image *models.Image) error {
	return s.createFn(ctx, image)
}
func (s *imageRepoStub) GetByHash(ctx context.Context, hash string) (*models.Image, error) {
	return s.getByHashFn(ctx, hash)
}

func noopImageRepo() *imageRepoStub {
	return &imageRepoStub{
		createFn:    func(_ context.Context, _ *models.Image) error { return nil },
		getByHashFn: func(_ context.Context, _ string) (*models.Image, error) { return nil, nil },
	}
}
