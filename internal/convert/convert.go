// Package convert produces a normalized PDF representation of a stored
// offer document, dispatching on the document's declared mime type.
package convert

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/sahithdaddla/veera20-Job-Applications/pkg/apperrors"

	execute "github.com/alexellis/go-execute/v2"
	"github.com/disintegration/imaging"
	"github.com/jung-kurt/gofpdf"
)

// Kind is the converter's view of a declared mime type. Dispatch happens on
// this tag, never on sniffed content, so adding a format is a change to
// Classify plus one case in ToPDF.
type Kind int

const (
	KindUnsupported Kind = iota
	KindPdf
	KindImage
	KindWord
)

const wordMime = "application/vnd.openxmlformats-officedocument.wordprocessingml.document"

// Classify maps a declared mime type to its conversion variant.
func Classify(mimeType string) Kind {
	switch mimeType {
	case "application/pdf":
		return KindPdf
	case "image/jpeg", "image/jpg", "image/png":
		return KindImage
	case wordMime, "application/msword":
		return KindWord
	default:
		return KindUnsupported
	}
}

// Converter turns stored documents into PDF bytes. Word documents go
// through an external engine; everything else is handled in-process.
type Converter struct {
	sofficeBin string
	tempDir    string
}

// New builds a converter. sofficeBin is the LibreOffice binary used for
// word-processing documents; tempDir "" means the system temp directory.
func New(sofficeBin, tempDir string) *Converter {
	if sofficeBin == "" {
		sofficeBin = "soffice"
	}
	return &Converter{sofficeBin: sofficeBin, tempDir: tempDir}
}

// ToPDF converts data to PDF according to its declared mime type.
// PDF input is returned unchanged. Each call produces one standalone
// document; batches are never merged.
func (c *Converter) ToPDF(ctx context.Context, mimeType string, data []byte) ([]byte, error) {
	switch Classify(mimeType) {
	case KindPdf:
		return data, nil
	case KindImage:
		return c.imageToPDF(mimeType, data)
	case KindWord:
		return c.wordToPDF(ctx, data)
	default:
		return nil, apperrors.UnsupportedType(mimeType)
	}
}

// imageToPDF places the image on a single A4 page, scaled to fit with the
// aspect ratio preserved and centered.
func (c *Converter) imageToPDF(mimeType string, data []byte) ([]byte, error) {
	imageType := "PNG"
	if mimeType == "image/jpeg" || mimeType == "image/jpg" {
		imageType = "JPG"
		// Phone photos carry EXIF orientation that PDF viewers ignore;
		// re-encode upright before embedding.
		oriented, err := reencodeJPEG(data)
		if err != nil {
			return nil, apperrors.ConversionError(err)
		}
		data = oriented
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.AddPage()

	opts := gofpdf.ImageOptions{ImageType: imageType}
	info := pdf.RegisterImageOptionsReader("document", opts, bytes.NewReader(data))
	if pdf.Err() {
		return nil, apperrors.ConversionError(pdf.Error())
	}

	pageW, pageH := pdf.GetPageSize()
	const margin = 10.0
	availW, availH := pageW-2*margin, pageH-2*margin

	w, h := info.Extent()
	scale := availW / w
	if availH/h < scale {
		scale = availH / h
	}
	w, h = w*scale, h*scale

	x := (pageW - w) / 2
	y := (pageH - h) / 2
	pdf.ImageOptions("document", x, y, w, h, false, opts, 0, "")

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, apperrors.ConversionError(err)
	}
	return buf.Bytes(), nil
}

func reencodeJPEG(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("decode jpeg: %w", err)
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(90)); err != nil {
		return nil, fmt.Errorf("encode jpeg: %w", err)
	}
	return buf.Bytes(), nil
}

// wordToPDF writes the document to a scratch directory and runs the
// external engine over it. The engine inherits the request context; there
// is no additional deadline, so a hung engine blocks the request.
func (c *Converter) wordToPDF(ctx context.Context, data []byte) ([]byte, error) {
	workDir, err := os.MkdirTemp(c.tempDir, "offer-convert-")
	if err != nil {
		return nil, apperrors.ConversionError(err)
	}
	defer os.RemoveAll(workDir)

	srcPath := filepath.Join(workDir, "document.docx")
	if err := os.WriteFile(srcPath, data, 0600); err != nil {
		return nil, apperrors.ConversionError(err)
	}

	task := execute.ExecTask{
		Command: c.sofficeBin,
		Args: []string{
			"--headless",
			"--convert-to", "pdf",
			"--outdir", workDir,
			srcPath,
		},
		StreamStdio: false,
	}

	res, err := task.Execute(ctx)
	if err != nil {
		return nil, apperrors.ConversionError(err)
	}
	if res.ExitCode != 0 {
		return nil, apperrors.ConversionError(fmt.Errorf("conversion engine exited with code %d: %s", res.ExitCode, res.Stderr))
	}

	out, err := os.ReadFile(filepath.Join(workDir, "document.pdf"))
	if err != nil {
		return nil, apperrors.ConversionError(fmt.Errorf("conversion engine produced no output: %w", err))
	}
	return out, nil
}
