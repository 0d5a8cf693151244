package handler

import (
	"io"

	"github.com/gofiber/fiber/v2"

	"surveygen/internal/domain"
	"surveygen/internal/dto"
	"surveygen/internal/middleware"
	"surveygen/internal/service"
	"surveygen/internal/validation"
)

// MultipartFieldName is the form field carrying the uploaded files.
const MultipartFieldName = "files"

// DocumentHandler handles markdown uploads.
type DocumentHandler struct {
	documentService service.DocumentService
	validator       *validation.DocumentValidator
}

// NewDocumentHandler creates a new DocumentHandler instance
func NewDocumentHandler(documentService service.DocumentService, validator *validation.DocumentValidator) *DocumentHandler {
	return &DocumentHandler{
		documentService: documentService,
		validator:       validator,
	}
}

// Upload godoc
// @Summary Upload markdown files and generate quizzes
// @Description Generates one quiz per uploaded file. Authenticated uploads are persisted; anonymous uploads are generated and returned only.
// @Tags documents
// @Accept multipart/form-data
// @Produce json
// @Param files formData file true "Markdown files"
// @Success 200 {array} dto.QuizResponse
// @Failure 400 {object} middleware.ErrorResponse
// @Failure 502 {object} middleware.ErrorResponse
// @Router /documents/upload [post]
func (h *DocumentHandler) Upload(c *fiber.Ctx) error {
	form, err := c.MultipartForm()
	if err != nil {
		return domain.NewValidationError("No files found in request")
	}

	files := form.File[MultipartFieldName]
	if err := h.validator.ValidateFileHeaders(files); err != nil {
		return err
	}

	docs := make([]dto.UploadedDocument, 0, len(files))
	for _, fileHeader := range files {
		file, err := fileHeader.Open()
		if err != nil {
			return domain.NewInternalError("failed to open uploaded file", err)
		}
		content, err := io.ReadAll(file)
		file.Close()
		if err != nil {
			return domain.NewInternalError("failed to read uploaded file", err)
		}
		docs = append(docs, dto.UploadedDocument{
			Filename: fileHeader.Filename,
			Content:  string(content),
		})
	}

	userID := ""
	if user := middleware.AuthUserFromContext(c); user != nil {
		userID = user.ID
	}

	quizzes, err := h.documentService.GenerateQuizzes(c.Context(), docs, userID)
	if err != nil {
		return err
	}
	return c.JSON(quizzes)
}
