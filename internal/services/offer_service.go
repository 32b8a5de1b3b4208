package services

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"strings"
	"time"

	"github.com/sahithdaddla/veera20-Job-Applications/internal/convert"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/logger"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/models"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/repositories"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/storage"
	"github.com/sahithdaddla/veera20-Job-Applications/pkg/apperrors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// OfferService manages the offer-document packet of an accepted
// application: replace-on-reupload, listing, PDF download and deletion.
type OfferService interface {
	// Replace supersedes the application's current offer documents with the
	// uploaded batch. The application must exist and be Accepted; nothing is
	// written otherwise. The old-set cleanup and new-set insert are a
	// multi-step sequence, not a transaction: a failure partway leaves the
	// steps already performed in place and surfaces the error.
	Replace(ctx context.Context, db *gorm.DB, applicationID uint, files []*multipart.FileHeader) ([]models.OfferDocument, error)

	// ListByApplication returns the application's offer documents, newest
	// first.
	ListByApplication(ctx context.Context, db *gorm.DB, applicationID uint) ([]models.OfferDocument, error)

	// Download returns the document converted to PDF together with the
	// attachment filename. The filename's date is the download moment; the
	// letter is regenerated fresh on every call.
	Download(ctx context.Context, db *gorm.DB, applicationID uint, fileID string) (string, []byte, error)

	// Delete removes one offer document (blob first, absence tolerated,
	// then the ledger row). A second delete of the same id is NotFound.
	Delete(ctx context.Context, db *gorm.DB, applicationID uint, fileID string) error
}

type offerService struct {
	appRepo   repositories.ApplicationRepository
	offerRepo repositories.OfferDocumentRepository
	store     storage.Storage
	converter *convert.Converter
	policies  FilePolicies
}

func NewOfferService(
	appRepo repositories.ApplicationRepository,
	offerRepo repositories.OfferDocumentRepository,
	store storage.Storage,
	converter *convert.Converter,
	policies FilePolicies,
) OfferService {
	return &offerService{
		appRepo:   appRepo,
		offerRepo: offerRepo,
		store:     store,
		converter: converter,
		policies:  policies,
	}
}

func (s *offerService) Replace(ctx context.Context, db *gorm.DB, applicationID uint, files []*multipart.FileHeader) ([]models.OfferDocument, error) {
	app, err := s.requireApplication(db, applicationID)
	if err != nil {
		return nil, err
	}
	if app.Status != models.StatusAccepted {
		return nil, apperrors.ErrApplicationNotAccepted
	}

	if len(files) == 0 {
		return nil, apperrors.NewBadRequestError("No files uploaded")
	}

	// Validate the whole batch before touching storage or the ledger.
	for _, fh := range files {
		if err := s.policies.Check(CategoryOffer, fh.Filename, fh.Header.Get("Content-Type"), fh.Size); err != nil {
			return nil, err
		}
	}

	// Supersede the previous packet. Blob deletes tolerate absence; any
	// other failure aborts here, leaving already-removed files gone.
	existing, err := s.offerRepo.FindByApplication(db, applicationID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	for _, doc := range existing {
		if err := s.store.Delete(ctx, doc.Path); err != nil {
			return nil, apperrors.StorageError(err)
		}
		if err := s.offerRepo.DeleteByID(db, doc.ID); err != nil {
			return nil, apperrors.InternalError(err)
		}
	}

	docs := make([]models.OfferDocument, 0, len(files))
	for _, fh := range files {
		doc, err := s.storeOfferFile(ctx, db, applicationID, fh)
		if err != nil {
			return nil, err
		}
		docs = append(docs, *doc)
	}

	logger.CtxInfo(ctx, "offer documents replaced",
		"application_id", applicationID,
		"superseded", len(existing),
		"stored", len(docs),
	)
	return docs, nil
}

// storeOfferFile writes the blob, hashes the bytes read back from storage
// and inserts the ledger row under a fresh id.
func (s *offerService) storeOfferFile(ctx context.Context, db *gorm.DB, applicationID uint, fh *multipart.FileHeader) (*models.OfferDocument, error) {
	src, err := fh.Open()
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	defer src.Close()

	path := storage.GeneratePath(fh.Filename)
	if err := s.store.Save(ctx, path, src); err != nil {
		return nil, apperrors.StorageError(err)
	}

	checksum, size, err := s.hashStored(ctx, path)
	if err != nil {
		return nil, err
	}

	doc := &models.OfferDocument{
		ID:            uuid.NewString(),
		ApplicationID: applicationID,
		OriginalName:  fh.Filename,
		Path:          path,
		Size:          size,
		MimeType:      fh.Header.Get("Content-Type"),
		Checksum:      checksum,
		CreatedAt:     time.Now().UTC(),
	}

	if err := s.offerRepo.Create(db, doc); err != nil {
		return nil, apperrors.InternalError(err)
	}
	return doc, nil
}

// hashStored digests the durably written blob, so the recorded checksum is
// guaranteed to match what a later Get returns.
func (s *offerService) hashStored(ctx context.Context, path string) (string, int64, error) {
	reader, err := s.store.Get(ctx, path)
	if err != nil {
		return "", 0, apperrors.StorageError(err)
	}
	defer reader.Close()

	h := sha256.New()
	size, err := io.Copy(h, reader)
	if err != nil {
		return "", 0, apperrors.StorageError(err)
	}
	return hex.EncodeToString(h.Sum(nil)), size, nil
}

func (s *offerService) ListByApplication(ctx context.Context, db *gorm.DB, applicationID uint) ([]models.OfferDocument, error) {
	if _, err := s.requireApplication(db, applicationID); err != nil {
		return nil, err
	}

	docs, err := s.offerRepo.FindByApplication(db, applicationID)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}
	if docs == nil {
		docs = []models.OfferDocument{}
	}
	return docs, nil
}

func (s *offerService) Download(ctx context.Context, db *gorm.DB, applicationID uint, fileID string) (string, []byte, error) {
	app, err := s.requireApplication(db, applicationID)
	if err != nil {
		return "", nil, err
	}

	doc, err := s.offerRepo.FindByIDForApplication(db, applicationID, fileID)
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, apperrors.ErrFileNotFound
		}
		return "", nil, apperrors.InternalError(err)
	}

	reader, err := s.store.Get(ctx, doc.Path)
	if err != nil {
		if apperrors.Is(err, storage.ErrNotFound) {
			// Ledger row without a blob: the pair is out of agreement.
			return "", nil, apperrors.ErrFileNotFound.WithError(err)
		}
		return "", nil, apperrors.StorageError(err)
	}
	defer reader.Close()

	data, err := io.ReadAll(reader)
	if err != nil {
		return "", nil, apperrors.StorageError(err)
	}

	pdf, err := s.converter.ToPDF(ctx, doc.MimeType, data)
	if err != nil {
		return "", nil, err
	}

	return offerLetterFilename(app, time.Now()), pdf, nil
}

func (s *offerService) Delete(ctx context.Context, db *gorm.DB, applicationID uint, fileID string) error {
	if _, err := s.requireApplication(db, applicationID); err != nil {
		return err
	}

	doc, err := s.offerRepo.FindByIDForApplication(db, applicationID, fileID)
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return apperrors.ErrFileNotFound
		}
		return apperrors.InternalError(err)
	}

	if err := s.store.Delete(ctx, doc.Path); err != nil {
		return apperrors.StorageError(err)
	}
	if err := s.offerRepo.DeleteByID(db, doc.ID); err != nil {
		return apperrors.InternalError(err)
	}
	return nil
}

func (s *offerService) requireApplication(db *gorm.DB, applicationID uint) (*models.Application, error) {
	app, err := s.appRepo.FindByID(db, applicationID)
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}
	return app, nil
}

// offerLetterFilename builds the attachment name
// Offer_Letter_<name-with-underscores>_<date>.pdf, dated at download time.
func offerLetterFilename(app *models.Application, now time.Time) string {
	name := "Candidate"
	var info struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(app.PersonalInfo, &info); err == nil && info.Name != "" {
		name = info.Name
	}

	if s := sanitizeFilenamePart(name); s != "" {
		name = s
	} else {
		name = "Candidate"
	}
	return fmt.Sprintf("Offer_Letter_%s_%s.pdf", name, now.Format("2006-01-02"))
}

// sanitizeFilenamePart restricts an untrusted name to characters safe inside
// a quoted Content-Disposition filename.
func sanitizeFilenamePart(name string) string {
	var b strings.Builder
	for _, r := range strings.TrimSpace(name) {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.', r == '-':
			b.WriteRune(r)
		default:
			b.WriteRune('_')
		}
	}
	return strings.Trim(b.String(), "._")
}
