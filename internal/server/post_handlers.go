package server

import (
	"corkboard/internal/middleware"
	"corkboard/internal/models"
	"corkboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// GetPosts handles GET /api/posts
func (s *Server) GetPosts(c *fiber.Ctx) error {
	paging := parsePaging(c, 20)

	listing, err := s.postService.List(c.Context(), service.ListPostsInput{
		Search: c.Query("search"),
		Sort:   c.Query("sort", "created_at"),
		Order:  c.Query("order", "desc"),
		Page:   paging.Page,
		Limit:  paging.Limit,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(listing)
}

// GetPost handles GET /api/posts/:id
func (s *Server) GetPost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	post, err := s.postService.Get(c.Context(), id)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(post)
}

// CreatePost handles POST /api/posts
func (s *Server) CreatePost(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	var req service.CreatePostInput
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Create(c.Context(), actor, req)
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(post)
}

// UpdatePost handles PATCH /api/posts/:id
func (s *Server) UpdatePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor := middleware.ActorFromCtx(c)

	var req service.UpdatePostInput
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	post, err := s.postService.Update(c.Context(), actor, id, req)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(post)
}

// DeletePost handles DELETE /api/posts/:id
func (s *Server) DeletePost(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}
	actor := middleware.ActorFromCtx(c)

	var req struct {
		Password string `json:"password"`
	}
	// The body is optional for member deletes.
	_ = c.BodyParser(&req)

	if err := s.postService.Delete(c.Context(), actor, id, req.Password); err != nil {
		return fail(c, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// VerifyPostPassword handles POST /api/posts/:id/verify
func (s *Server) VerifyPostPassword(c *fiber.Ctx) error {
	id, err := s.parseID(c, "id")
	if err != nil {
		return nil
	}

	var req struct {
		Password string `json:"password"`
	}
	if err := c.BodyParser(&req); err != nil {
		return fail(c, models.NewValidationError("Invalid request body"))
	}

	valid, err := s.postService.VerifyPassword(c.Context(), id, req.Password)
	if err != nil {
		return fail(c, err)
	}

	return c.JSON(fiber.Map{"valid": valid})
}
