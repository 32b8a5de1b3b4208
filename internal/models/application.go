package models

import (
	"time"

	"gorm.io/datatypes"
)

// ApplicationStatus is the review state of an application. Transitions are
// Pending -> Accepted or Pending -> Rejected, driven by the review endpoint.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "Pending"
	StatusAccepted ApplicationStatus = "Accepted"
	StatusRejected ApplicationStatus = "Rejected"
)

// ValidReviewStatus reports whether s is a status the review action accepts.
func ValidReviewStatus(s string) bool {
	return s == string(StatusAccepted) || s == string(StatusRejected)
}

// Application is one submitted candidacy. The nested intake data arrives as
// JSON-encoded multipart fields and is stored as JSON columns; document
// references inside it are immutable after submission.
type Application struct {
	ID             uint              `gorm:"primaryKey" json:"id"`
	PersonalInfo   datatypes.JSON    `gorm:"column:personal_info;type:jsonb" json:"personal_info"`
	Education      datatypes.JSON    `gorm:"type:jsonb" json:"education"`
	WorkExperience datatypes.JSON    `gorm:"column:work_experience;type:jsonb" json:"work_experience"`
	Documents      datatypes.JSON    `gorm:"type:jsonb" json:"documents"`
	Date           time.Time         `gorm:"index" json:"date"`
	Status         ApplicationStatus `gorm:"type:varchar(16);default:'Pending'" json:"status"`
}

// FileRef is a stored intake document reference: the applicant's original
// filename plus the public URL of the stored blob.
type FileRef struct {
	Name string `json:"name"`
	Path string `json:"path"`
}

// EducationData mirrors the intake form's education block.
type EducationData struct {
	SSC struct {
		Documents []FileRef `json:"documents"`
	} `json:"ssc"`
	Intermediate struct {
		Documents []FileRef `json:"documents"`
	} `json:"intermediate"`
	QualificationDocuments []FileRef `json:"qualificationDocuments"`
}

// DocumentsData mirrors the intake form's documents block.
type DocumentsData struct {
	Resume            *FileRef  `json:"resume"`
	IDProof           *FileRef  `json:"idProof"`
	Certificates      []FileRef `json:"certificates"`
	CurrentLocation   string    `json:"currentLocation"`
	PreferredLocation string    `json:"preferredLocation"`
}
