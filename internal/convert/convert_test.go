package convert

import (
	"bytes"
	"context"
	"image"
	"image/color"
	"image/jpeg"
	"image/png"
	"testing"

	"github.com/sahithdaddla/veera20-Job-Applications/pkg/apperrors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestClassify(t *testing.T) {
	tests := []struct {
		mimeType string
		want     Kind
	}{
		{"application/pdf", KindPdf},
		{"image/jpeg", KindImage},
		{"image/jpg", KindImage},
		{"image/png", KindImage},
		{"application/vnd.openxmlformats-officedocument.wordprocessingml.document", KindWord},
		{"application/msword", KindWord},
		{"application/zip", KindUnsupported},
		{"text/plain", KindUnsupported},
		{"", KindUnsupported},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Classify(tt.mimeType), "mime %q", tt.mimeType)
	}
}

func TestToPDFIdentityForPdf(t *testing.T) {
	c := New("soffice", "")

	data := []byte("%PDF-1.4 fake but byte-identical")
	out, err := c.ToPDF(context.Background(), "application/pdf", data)
	require.NoError(t, err)
	assert.Equal(t, data, out)
}

func testImage(t *testing.T, encode func(buf *bytes.Buffer, img image.Image) error) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, 120, 80))
	for x := 0; x < 120; x++ {
		for y := 0; y < 80; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 100, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, encode(&buf, img))
	return buf.Bytes()
}

func TestToPDFImageProducesSinglePagePDF(t *testing.T) {
	c := New("soffice", "")

	t.Run("png", func(t *testing.T) {
		data := testImage(t, func(buf *bytes.Buffer, img image.Image) error {
			return png.Encode(buf, img)
		})

		out, err := c.ToPDF(context.Background(), "image/png", data)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")), "output should be a PDF document")
		assert.True(t, bytes.Contains(out, []byte("/Count 1")), "expected exactly one page")
	})

	t.Run("jpeg", func(t *testing.T) {
		data := testImage(t, func(buf *bytes.Buffer, img image.Image) error {
			return jpeg.Encode(buf, img, &jpeg.Options{Quality: 90})
		})

		out, err := c.ToPDF(context.Background(), "image/jpeg", data)
		require.NoError(t, err)
		assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
	})
}

func TestToPDFCorruptImage(t *testing.T) {
	c := New("soffice", "")

	_, err := c.ToPDF(context.Background(), "image/png", []byte("not an image"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeConversionError, appErr.Code)
}

func TestToPDFUnsupportedType(t *testing.T) {
	c := New("soffice", "")

	_, err := c.ToPDF(context.Background(), "application/zip", []byte("PK..."))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeInvalidFileType, appErr.Code)
}

func TestToPDFWordEngineFailure(t *testing.T) {
	// A conversion engine that does not exist must surface as a conversion
	// error, not be silently passed through.
	c := New("/nonexistent/soffice-bin", "")

	_, err := c.ToPDF(context.Background(), "application/vnd.openxmlformats-officedocument.wordprocessingml.document", []byte("docx bytes"))
	require.Error(t, err)

	var appErr *apperrors.AppError
	require.True(t, apperrors.As(err, &appErr))
	assert.Equal(t, apperrors.CodeConversionError, appErr.Code)
}
