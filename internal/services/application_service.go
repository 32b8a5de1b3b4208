package services

import (
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"time"

	"github.com/sahithdaddla/veera20-Job-Applications/internal/models"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/repositories"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/search"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/storage"
	"github.com/sahithdaddla/veera20-Job-Applications/pkg/apperrors"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Multipart file fields accepted on submission and their max counts.
var intakeFileFields = map[string]int{
	"resume":            1,
	"idProof":           1,
	"sscDocs":           10,
	"interDocs":         10,
	"qualificationDocs": 10,
	"certificates":      10,
}

// SubmitRequest carries the raw multipart submission: three JSON-encoded
// text fields plus the uploaded intake documents keyed by field name.
type SubmitRequest struct {
	PersonalInfo   string
	WorkExperience string
	Documents      string
	Files          map[string][]*multipart.FileHeader
}

// ListResult is one page of applications plus the filter-consistent total.
type ListResult struct {
	Applications []models.Application `json:"applications"`
	Total        int64                `json:"total"`
}

type ApplicationService interface {
	// Submit validates and stores a new application. The stored status is
	// always Pending regardless of client input.
	Submit(ctx context.Context, db *gorm.DB, req *SubmitRequest) (*models.Application, error)

	// List searches applications with the query mini-language, an optional
	// status filter and pagination, newest first.
	List(ctx context.Context, db *gorm.DB, rawQuery, status string, page, limit int) (*ListResult, error)

	// UpdateStatus performs the review action: Pending -> Accepted/Rejected.
	UpdateStatus(ctx context.Context, db *gorm.DB, id uint, status string) (*models.Application, error)
}

type applicationService struct {
	appRepo  repositories.ApplicationRepository
	store    storage.Storage
	policies FilePolicies
}

func NewApplicationService(
	appRepo repositories.ApplicationRepository,
	store storage.Storage,
	policies FilePolicies,
) ApplicationService {
	return &applicationService{
		appRepo:  appRepo,
		store:    store,
		policies: policies,
	}
}

func (s *applicationService) Submit(ctx context.Context, db *gorm.DB, req *SubmitRequest) (*models.Application, error) {
	if req.PersonalInfo == "" || req.WorkExperience == "" || req.Documents == "" {
		return nil, apperrors.ErrMissingRequiredFields
	}

	var personalInfo, workExperience map[string]interface{}
	if err := json.Unmarshal([]byte(req.PersonalInfo), &personalInfo); err != nil {
		return nil, apperrors.NewBadRequestError("personalInfo is not valid JSON")
	}
	if err := json.Unmarshal([]byte(req.WorkExperience), &workExperience); err != nil {
		return nil, apperrors.NewBadRequestError("workExperience is not valid JSON")
	}
	var submittedDocs models.DocumentsData
	if err := json.Unmarshal([]byte(req.Documents), &submittedDocs); err != nil {
		return nil, apperrors.NewBadRequestError("documents is not valid JSON")
	}

	// Validate every file before any byte is persisted.
	for field, headers := range req.Files {
		maxCount, known := intakeFileFields[field]
		if !known {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("unexpected file field: %s", field))
		}
		if len(headers) > maxCount {
			return nil, apperrors.NewBadRequestError(fmt.Sprintf("too many files for field %s (max %d)", field, maxCount))
		}
		for _, fh := range headers {
			if err := s.policies.Check(CategoryApplication, fh.Filename, fh.Header.Get("Content-Type"), fh.Size); err != nil {
				return nil, err
			}
		}
	}

	stored := make(map[string][]models.FileRef, len(req.Files))
	for field, headers := range req.Files {
		for _, fh := range headers {
			ref, err := s.storeIntakeFile(ctx, fh)
			if err != nil {
				return nil, err
			}
			stored[field] = append(stored[field], ref)
		}
	}

	var education models.EducationData
	education.SSC.Documents = refsOrEmpty(stored["sscDocs"])
	education.Intermediate.Documents = refsOrEmpty(stored["interDocs"])
	education.QualificationDocuments = refsOrEmpty(stored["qualificationDocs"])

	documents := models.DocumentsData{
		Certificates:      refsOrEmpty(stored["certificates"]),
		CurrentLocation:   submittedDocs.CurrentLocation,
		PreferredLocation: submittedDocs.PreferredLocation,
	}
	if refs := stored["resume"]; len(refs) > 0 {
		documents.Resume = &refs[0]
	}
	if refs := stored["idProof"]; len(refs) > 0 {
		documents.IDProof = &refs[0]
	}

	app := &models.Application{
		PersonalInfo:   mustJSON(personalInfo),
		Education:      mustJSON(education),
		WorkExperience: mustJSON(workExperience),
		Documents:      mustJSON(documents),
		Date:           time.Now().UTC(),
		Status:         models.StatusPending,
	}

	if err := s.appRepo.Create(db, app); err != nil {
		if apperrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, apperrors.ErrDuplicateApplication.WithError(err)
		}
		return nil, apperrors.InternalError(err)
	}

	return app, nil
}

func (s *applicationService) storeIntakeFile(ctx context.Context, fh *multipart.FileHeader) (models.FileRef, error) {
	src, err := fh.Open()
	if err != nil {
		return models.FileRef{}, apperrors.InternalError(err)
	}
	defer src.Close()

	path := storage.GeneratePath(fh.Filename)
	if err := s.store.Save(ctx, path, src); err != nil {
		return models.FileRef{}, apperrors.StorageError(err)
	}

	return models.FileRef{Name: fh.Filename, Path: s.store.URL(path)}, nil
}

func (s *applicationService) List(ctx context.Context, db *gorm.DB, rawQuery, status string, page, limit int) (*ListResult, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	q := search.Parse(rawQuery)
	apps, total, err := s.appRepo.Search(db, q, status, page, limit)
	if err != nil {
		return nil, apperrors.InternalError(err)
	}

	if apps == nil {
		apps = []models.Application{}
	}
	return &ListResult{Applications: apps, Total: total}, nil
}

func (s *applicationService) UpdateStatus(ctx context.Context, db *gorm.DB, id uint, status string) (*models.Application, error) {
	if !models.ValidReviewStatus(status) {
		return nil, apperrors.ErrInvalidStatus
	}

	app, err := s.appRepo.UpdateStatus(db, id, models.ApplicationStatus(status), time.Now().UTC())
	if err != nil {
		if apperrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrApplicationNotFound
		}
		return nil, apperrors.InternalError(err)
	}

	return app, nil
}

func refsOrEmpty(refs []models.FileRef) []models.FileRef {
	if refs == nil {
		return []models.FileRef{}
	}
	return refs
}

// mustJSON marshals values that were just unmarshalled or built locally;
// failure here would be a programming error.
func mustJSON(v interface{}) datatypes.JSON {
	b, err := json.Marshal(v)
	if err != nil {
		panic(fmt.Sprintf("marshal application column: %v", err))
	}
	return datatypes.JSON(b)
}
