package services

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/sahithdaddla/veera20-Job-Applications/pkg/apperrors"
)

// FileCategory selects which upload policy applies.
type FileCategory string

const (
	// CategoryApplication covers intake documents submitted with an
	// application (resume, ID proof, education docs, certificates).
	CategoryApplication FileCategory = "application"
	// CategoryOffer covers post-acceptance offer documents.
	CategoryOffer FileCategory = "offer"
)

// FilePolicy is the per-category upload acceptance rule. Checks run before
// any byte reaches storage or the ledger.
type FilePolicy struct {
	MaxSize      int64
	AllowedMimes map[string]bool
	// AllowedExts, when non-empty, must ALSO match: extension and declared
	// mime are checked independently and both must pass.
	AllowedExts map[string]bool
	description string // Human-readable type list for rejection messages
}

// FilePolicies holds the policy per category.
type FilePolicies map[FileCategory]*FilePolicy

// DefaultFilePolicies builds the standard policy set. Size overrides of
// zero keep the defaults.
func DefaultFilePolicies(maxApplicationSize, maxOfferSize int64) FilePolicies {
	if maxApplicationSize == 0 {
		maxApplicationSize = 2 * 1024 * 1024
	}
	if maxOfferSize == 0 {
		maxOfferSize = 10 * 1024 * 1024
	}

	return FilePolicies{
		CategoryApplication: {
			MaxSize: maxApplicationSize,
			AllowedMimes: map[string]bool{
				"application/pdf": true,
				"image/jpeg":      true,
				"image/jpg":       true,
				"image/png":       true,
			},
			AllowedExts: map[string]bool{
				".pdf":  true,
				".jpg":  true,
				".jpeg": true,
				".png":  true,
			},
			description: "PDF, JPG, JPEG, and PNG",
		},
		CategoryOffer: {
			MaxSize: maxOfferSize,
			AllowedMimes: map[string]bool{
				"application/pdf": true,
				"image/jpeg":      true,
				"image/jpg":       true,
				"image/png":       true,
				"application/vnd.openxmlformats-officedocument.wordprocessingml.document": true,
			},
			description: "PDF, JPG, JPEG, PNG, and DOCX",
		},
	}
}

// Check validates one candidate file against the category policy. The
// returned errors are surfaced to the client verbatim.
func (p *FilePolicy) Check(filename, mimeType string, size int64) error {
	if size > p.MaxSize {
		return apperrors.FileTooLarge(fmt.Sprintf(
			"File %q exceeds the %dMB limit", filename, p.MaxSize/(1024*1024)))
	}

	if !p.AllowedMimes[strings.ToLower(mimeType)] {
		return apperrors.InvalidFileType(fmt.Sprintf(
			"Only %s files are allowed", p.description))
	}

	if len(p.AllowedExts) > 0 {
		ext := strings.ToLower(filepath.Ext(filename))
		if !p.AllowedExts[ext] {
			return apperrors.InvalidFileType(fmt.Sprintf(
				"Only %s files are allowed", p.description))
		}
	}

	return nil
}

// Check validates a file under the named category.
func (ps FilePolicies) Check(category FileCategory, filename, mimeType string, size int64) error {
	policy, ok := ps[category]
	if !ok {
		return apperrors.NewBadRequestError(fmt.Sprintf("unknown upload category: %s", category))
	}
	return policy.Check(filename, mimeType, size)
}
