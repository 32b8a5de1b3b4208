package services

import (
	"bytes"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/textproto"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/sahithdaddla/veera20-Job-Applications/internal/models"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/search"

	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// In-memory repository fakes. The db argument is ignored; services receive
// nil in tests.

type fakeApplicationRepo struct {
	nextID uint
	apps   map[uint]*models.Application
}

func newFakeApplicationRepo() *fakeApplicationRepo {
	return &fakeApplicationRepo{nextID: 1, apps: map[uint]*models.Application{}}
}

func (f *fakeApplicationRepo) Create(_ *gorm.DB, app *models.Application) error {
	app.ID = f.nextID
	f.nextID++
	stored := *app
	f.apps[app.ID] = &stored
	return nil
}

func (f *fakeApplicationRepo) FindByID(_ *gorm.DB, id uint) (*models.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	clone := *app
	return &clone, nil
}

// personalInfo mirrors the fields the real filter reaches into with
// personal_info->>'...' clauses.
type personalInfo struct {
	Name  string `json:"name"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}

func (f *fakeApplicationRepo) Search(_ *gorm.DB, q search.Query, status string, page, limit int) ([]models.Application, int64, error) {
	var matched []models.Application
	for _, app := range f.apps {
		var info personalInfo
		_ = json.Unmarshal(app.PersonalInfo, &info)

		if q.ID != nil && app.ID != *q.ID {
			continue
		}
		if q.Name != "" && !containsFold(info.Name, q.Name) {
			continue
		}
		if q.Email != "" && !containsFold(info.Email, q.Email) {
			continue
		}
		if q.Text != "" &&
			!containsFold(info.Name, q.Text) &&
			!containsFold(info.Email, q.Text) &&
			!containsFold(info.Phone, q.Text) {
			continue
		}
		if status != "" && status != "all" && string(app.Status) != status {
			continue
		}
		matched = append(matched, *app)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].Date.After(matched[j].Date) })

	total := int64(len(matched))
	start := (page - 1) * limit
	if start > len(matched) {
		start = len(matched)
	}
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

func (f *fakeApplicationRepo) UpdateStatus(_ *gorm.DB, id uint, status models.ApplicationStatus, date time.Time) (*models.Application, error) {
	app, ok := f.apps[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	app.Status = status
	app.Date = date
	clone := *app
	return &clone, nil
}

type fakeOfferRepo struct {
	docs map[string]models.OfferDocument
}

func newFakeOfferRepo() *fakeOfferRepo {
	return &fakeOfferRepo{docs: map[string]models.OfferDocument{}}
}

func (f *fakeOfferRepo) Create(_ *gorm.DB, doc *models.OfferDocument) error {
	f.docs[doc.ID] = *doc
	return nil
}

func (f *fakeOfferRepo) FindByApplication(_ *gorm.DB, applicationID uint) ([]models.OfferDocument, error) {
	var docs []models.OfferDocument
	for _, doc := range f.docs {
		if doc.ApplicationID == applicationID {
			docs = append(docs, doc)
		}
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].CreatedAt.After(docs[j].CreatedAt) })
	return docs, nil
}

func (f *fakeOfferRepo) FindByIDForApplication(_ *gorm.DB, applicationID uint, fileID string) (*models.OfferDocument, error) {
	doc, ok := f.docs[fileID]
	if !ok || doc.ApplicationID != applicationID {
		return nil, gorm.ErrRecordNotFound
	}
	return &doc, nil
}

func (f *fakeOfferRepo) DeleteByID(_ *gorm.DB, fileID string) error {
	delete(f.docs, fileID)
	return nil
}

// makeFileHeader builds a real *multipart.FileHeader by writing and
// re-parsing a multipart body, the same way gin receives uploads.
func makeFileHeader(t *testing.T, filename, contentType string, data []byte) *multipart.FileHeader {
	t.Helper()

	body := new(bytes.Buffer)
	writer := multipart.NewWriter(body)

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename="%s"`, filename))
	header.Set("Content-Type", contentType)

	part, err := writer.CreatePart(header)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	require.NoError(t, writer.Close())

	form, err := multipart.NewReader(body, writer.Boundary()).ReadForm(32 << 20)
	require.NoError(t, err)
	files := form.File["file"]
	require.Len(t, files, 1)
	return files[0]
}
