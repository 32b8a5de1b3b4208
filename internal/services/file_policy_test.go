package services

import (
	"testing"

	"github.com/sahithdaddla/veera20-Job-Applications/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilePolicyApplicationCategory(t *testing.T) {
	policies := DefaultFilePolicies(0, 0)

	tests := []struct {
		name     string
		filename string
		mimeType string
		size     int64
		wantCode apperrors.ErrorCode
	}{
		{"pdf ok", "resume.pdf", "application/pdf", 1024, ""},
		{"jpeg ok", "photo.jpeg", "image/jpeg", 1024, ""},
		{"png ok", "scan.png", "image/png", 2 * 1024 * 1024, ""},
		{"over size limit", "resume.pdf", "application/pdf", 2*1024*1024 + 1, apperrors.CodeFileTooLarge},
		{"docx not allowed", "resume.docx", "application/vnd.openxmlformats-officedocument.wordprocessingml.document", 1024, apperrors.CodeInvalidFileType},
		{"mime ok but extension wrong", "resume.exe", "application/pdf", 1024, apperrors.CodeInvalidFileType},
		{"extension ok but mime wrong", "resume.pdf", "application/octet-stream", 1024, apperrors.CodeInvalidFileType},
		{"uppercase extension accepted", "RESUME.PDF", "application/pdf", 1024, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := policies.Check(CategoryApplication, tt.filename, tt.mimeType, tt.size)
			if tt.wantCode == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var appErr *apperrors.AppError
			require.True(t, apperrors.As(err, &appErr))
			assert.Equal(t, tt.wantCode, appErr.Code)
		})
	}
}

func TestFilePolicyOfferCategory(t *testing.T) {
	policies := DefaultFilePolicies(0, 0)

	// Offer documents additionally allow docx, up to 10MB, with no
	// extension requirement.
	assert.NoError(t, policies.Check(CategoryOffer, "letter.docx",
		"application/vnd.openxmlformats-officedocument.wordprocessingml.document", 5*1024*1024))
	assert.NoError(t, policies.Check(CategoryOffer, "letter.pdf", "application/pdf", 10*1024*1024))

	err := policies.Check(CategoryOffer, "letter.pdf", "application/pdf", 10*1024*1024+1)
	require.Error(t, err)
	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeFileTooLarge, appErr.Code)

	err = policies.Check(CategoryOffer, "letter.zip", "application/zip", 1024)
	require.Error(t, err)
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidFileType, appErr.Code)
}

func TestFilePolicyUnknownCategory(t *testing.T) {
	policies := DefaultFilePolicies(0, 0)
	err := policies.Check(FileCategory("bogus"), "a.pdf", "application/pdf", 10)
	require.Error(t, err)
}

func TestFilePolicySizeOverrides(t *testing.T) {
	policies := DefaultFilePolicies(100, 200)
	assert.Error(t, policies.Check(CategoryApplication, "a.pdf", "application/pdf", 101))
	assert.NoError(t, policies.Check(CategoryApplication, "a.pdf", "application/pdf", 100))
	assert.Error(t, policies.Check(CategoryOffer, "a.pdf", "application/pdf", 201))
}
