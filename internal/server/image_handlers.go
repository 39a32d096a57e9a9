package server

import (
	"io"

	"corkboard/internal/middleware"
	"corkboard/internal/models"
	"corkboard/internal/service"

	"github.com/gofiber/fiber/v2"
)

// UploadImage handles POST /api/images (multipart form, field "image")
func (s *Server) UploadImage(c *fiber.Ctx) error {
	actor := middleware.ActorFromCtx(c)

	fileHeader, err := c.FormFile("image")
	if err != nil {
		return fail(c, models.NewValidationError("Image file is required"))
	}

	file, err := fileHeader.Open()
	if err != nil {
		return fail(c, models.NewValidationError("Could not read uploaded file"))
	}
	defer file.Close()

	content, err := io.ReadAll(file)
	if err != nil {
		return fail(c, models.NewInternalError(err))
	}

	result, err := s.imageService.Upload(c.Context(), actor, service.UploadImageInput{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	})
	if err != nil {
		return fail(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(result)
}
