package repositories

import (
	"github.com/sahithdaddla/veera20-Job-Applications/internal/models"

	"gorm.io/gorm"
)

// OfferDocumentRepository is the file record ledger: metadata rows for
// stored offer documents. External lookups are always keyed by the
// (application, file) pair so a file id cannot be reached through a
// different application.
type OfferDocumentRepository interface {
	Create(db *gorm.DB, doc *models.OfferDocument) error
	FindByApplication(db *gorm.DB, applicationID uint) ([]models.OfferDocument, error)
	FindByIDForApplication(db *gorm.DB, applicationID uint, fileID string) (*models.OfferDocument, error)
	DeleteByID(db *gorm.DB, fileID string) error
}

type offerDocumentRepository struct{}

func NewOfferDocumentRepository() OfferDocumentRepository {
	return &offerDocumentRepository{}
}

func (r *offerDocumentRepository) Create(db *gorm.DB, doc *models.OfferDocument) error {
	return db.Create(doc).Error
}

func (r *offerDocumentRepository) FindByApplication(db *gorm.DB, applicationID uint) ([]models.OfferDocument, error) {
	var docs []models.OfferDocument
	err := db.
		Where("application_id = ?", applicationID).
		Order("created_at DESC").
		Find(&docs).Error
	if err != nil {
		return nil, err
	}
	return docs, nil
}

func (r *offerDocumentRepository) FindByIDForApplication(db *gorm.DB, applicationID uint, fileID string) (*models.OfferDocument, error) {
	var doc models.OfferDocument
	err := db.
		Where("application_id = ? AND id = ?", applicationID, fileID).
		First(&doc).Error
	if err != nil {
		return nil, err
	}
	return &doc, nil
}

func (r *offerDocumentRepository) DeleteByID(db *gorm.DB, fileID string) error {
	return db.Delete(&models.OfferDocument{}, "id = ?", fileID).Error
}
