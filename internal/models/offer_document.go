package models

import "time"

// OfferDocument is the ledger row for one stored offer file. The blob lives
// in storage under Path; the row and the blob are only valid together.
type OfferDocument struct {
	ID            string    `gorm:"type:uuid;primaryKey" json:"id"`
	ApplicationID uint      `gorm:"not null;index" json:"application_id"`
	OriginalName  string    `gorm:"not null" json:"original_name"` // Untrusted, from the upload
	Path          string    `gorm:"not null" json:"path"`          // Server generated storage path
	Size          int64     `json:"size"`
	MimeType      string    `gorm:"column:mime_type" json:"mime_type"` // Declared at upload, not sniffed
	Checksum      string    `gorm:"type:char(64)" json:"checksum"`     // SHA-256 hex of the stored bytes
	CreatedAt     time.Time `json:"created_at"`
}
