package validation

import (
	"fmt"
	"mime/multipart"
	"path/filepath"
	"strings"

	"surveygen/internal/domain"
	"surveygen/internal/dto"
)

// DocumentValidator checks uploaded files before any content is read or
// handed to generation. Allowed extensions are lowercase with leading dot.
type DocumentValidator struct {
	allowedExtensions []string
}

func NewDocumentValidator(allowedExtensions []string) *DocumentValidator {
	exts := make([]string, 0, len(allowedExtensions))
	for _, ext := range allowedExtensions {
		exts = append(exts, strings.ToLower(ext))
	}
	return &DocumentValidator{allowedExtensions: exts}
}

// ValidateFileHeaders rejects an empty batch and any zero-size part before
// the files are opened.
func (v *DocumentValidator) ValidateFileHeaders(files []*multipart.FileHeader) error {
	if len(files) == 0 {
		return domain.NewValidationError("No files found in request")
	}
	for _, file := range files {
		if file == nil || file.Size == 0 {
			return domain.NewValidationError("Empty file found in request")
		}
	}
	return nil
}

// ValidateDocument checks a single extracted document. Filename rules run
// before content rules so a bad name fails fast.
func (v *DocumentValidator) ValidateDocument(doc dto.UploadedDocument) error {
	if err := v.validateFilename(doc.Filename); err != nil {
		return err
	}
	if strings.TrimSpace(doc.Content) == "" {
		return domain.NewValidationError("Uploaded file is empty")
	}
	return nil
}

func (v *DocumentValidator) validateFilename(name string) error {
	if strings.TrimSpace(name) == "" {
		return domain.NewValidationError("Filename cannot be empty")
	}
	ext := strings.ToLower(filepath.Ext(name))
	for _, allowed := range v.allowedExtensions {
		if ext == allowed {
			return nil
		}
	}
	return domain.NewValidationError(v.extensionMessage())
}

func (v *DocumentValidator) extensionMessage() string {
	return fmt.Sprintf("Only %s files are allowed", strings.Join(v.allowedExtensions, ", "))
}
