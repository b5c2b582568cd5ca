package report

import "time"

// Location carries the coordinate exactly as the reporting client sent it.
// The raw strings are persisted verbatim for audit and re-geocoding; only
// the enricher ever parses them.
type Location struct {
	Latitude  string `json:"latitude"`
	Longitude string `json:"longitude"`
}

// Submission is a raw incoming incident report before validation. The zone
// is deliberately absent: it is assigned by the locator, never by a client.
type Submission struct {
	Email       string    `json:"email"`
	Age         int       `json:"age"`
	Description string    `json:"description"`
	Date        string    `json:"date"`
	Type        string    `json:"type"`
	Location    Location  `json:"location"`
	SendTime    time.Time `json:"send_time"`
}

// Report is the persisted, code-based form of an incident report.
type Report struct {
	ID           string    `gorm:"primaryKey;size:36" json:"id"`
	UserEmail    string    `gorm:"index;size:255" json:"user_email"`
	Age          int       `json:"age"`
	Description  string    `json:"description"`
	Date         string    `gorm:"size:64" json:"date"`
	Category     int       `json:"category"`
	Zone         int       `json:"zone"`
	Latitude     string    `gorm:"size:32" json:"latitude"`
	Longitude    string    `gorm:"size:32" json:"longitude"`
	CreationTime time.Time `gorm:"index" json:"creation_time"`
	Version      string    `gorm:"size:8" json:"version"`
}

func (Report) TableName() string {
	return "reports.reports"
}

// DisplayReport is the label-based, presentation-facing form. It is built
// from persisted reports on every read and never written back to storage.
type DisplayReport struct {
	ID           string    `json:"id"`
	UserEmail    string    `json:"user_email"`
	Age          int       `json:"age"`
	Description  string    `json:"description"`
	Date         string    `json:"date"`
	Category     string    `json:"category"`
	Zone         string    `json:"zone"`
	Location     Location  `json:"location"`
	CreationTime time.Time `json:"creation_time"`
	Version      string    `json:"version"`
}
