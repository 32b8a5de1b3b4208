package repositories

import (
	"time"

	"github.com/sahithdaddla/veera20-Job-Applications/internal/models"
	"github.com/sahithdaddla/veera20-Job-Applications/internal/search"

	"gorm.io/gorm"
)

type ApplicationRepository interface {
	Create(db *gorm.DB, app *models.Application) error
	FindByID(db *gorm.DB, id uint) (*models.Application, error)
	// Search returns one page of applications matching the parsed query and
	// status filter, newest first, plus the total count over the same filter.
	Search(db *gorm.DB, q search.Query, status string, page, limit int) ([]models.Application, int64, error)
	UpdateStatus(db *gorm.DB, id uint, status models.ApplicationStatus, date time.Time) (*models.Application, error)
}

type applicationRepository struct{}

func NewApplicationRepository() ApplicationRepository {
	return &applicationRepository{}
}

func (r *applicationRepository) Create(db *gorm.DB, app *models.Application) error {
	return db.Create(app).Error
}

func (r *applicationRepository) FindByID(db *gorm.DB, id uint) (*models.Application, error) {
	var app models.Application
	if err := db.First(&app, id).Error; err != nil {
		return nil, err
	}
	return &app, nil
}

// applyFilter translates the parsed query into JSONB ILIKE clauses, matching
// the shape of the original search SQL over personal_info.
func applyFilter(db *gorm.DB, q search.Query, status string) *gorm.DB {
	tx := db.Model(&models.Application{})

	if q.ID != nil {
		tx = tx.Where("id = ?", *q.ID)
	}
	if q.Name != "" {
		tx = tx.Where("personal_info->>'name' ILIKE ?", "%"+q.Name+"%")
	}
	if q.Email != "" {
		tx = tx.Where("personal_info->>'email' ILIKE ?", "%"+q.Email+"%")
	}
	if q.Text != "" {
		like := "%" + q.Text + "%"
		tx = tx.Where(
			"personal_info->>'name' ILIKE ? OR personal_info->>'email' ILIKE ? OR personal_info->>'phone' ILIKE ?",
			like, like, like,
		)
	}
	if status != "" && status != "all" {
		tx = tx.Where("status = ?", status)
	}

	return tx
}

func (r *applicationRepository) Search(db *gorm.DB, q search.Query, status string, page, limit int) ([]models.Application, int64, error) {
	filtered := applyFilter(db, q, status)

	// Count over the same filter, independent of page/limit.
	var total int64
	if err := filtered.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var apps []models.Application
	offset := (page - 1) * limit
	err := filtered.
		Order("date DESC").
		Limit(limit).
		Offset(offset).
		Find(&apps).Error
	if err != nil {
		return nil, 0, err
	}

	return apps, total, nil
}

func (r *applicationRepository) UpdateStatus(db *gorm.DB, id uint, status models.ApplicationStatus, date time.Time) (*models.Application, error) {
	var app models.Application
	if err := db.First(&app, id).Error; err != nil {
		return nil, err
	}

	app.Status = status
	app.Date = date
	if err := db.Model(&app).Updates(map[string]interface{}{"status": status, "date": date}).Error; err != nil {
		return nil, err
	}

	return &app, nil
}
