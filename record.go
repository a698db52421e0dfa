package noticeharvest

import (
	"context"
	"time"
)

// EntryType discriminates the record variants.
type EntryType string

// Record variants.
const (
	EntryRecall       EntryType = "recall"
	EntryAlert        EntryType = "alert"
	EntryPressRelease EntryType = "press_release"
)

// Valid reports whether t is a known entry type.
func (t EntryType) Valid() bool {
	switch t {
	case EntryRecall, EntryAlert, EntryPressRelease:
		return true
	}
	return false
}

// Recall holds the recall variant fields. Nil means the field was not
// present in the scraped data; an empty string means it was scraped empty.
type Recall struct {
	DateIssued        *string `json:"dateRecallIssued"`
	ProductName       *string `json:"productName"`
	ProductType       *string `json:"productType"`
	Manufacturer      *string `json:"manufacturer"`
	RecallingFirm     *string `json:"recallingFirm"`
	BatchNumbers      *string `json:"batchNumbers"`
	ManufacturingDate *string `json:"manufacturingDate"`
	ExpiryDate        *string `json:"expiryDate"`
	Reason            *string `json:"reasonForRecall"`
	SourceURL         *string `json:"sourceUrl"`
}

// Alert holds the alert variant fields.
type Alert struct {
	DateIssued *string `json:"dateIssued"`
	Title      *string `json:"alertTitle"`
	Filename   *string `json:"alertPdfFilename"`
}

// PressRelease holds the press release variant fields.
type PressRelease struct {
	Title       *string `json:"pressReleaseTitle"`
	Date        *string `json:"pressReleaseDate"`
	DocumentURL *string `json:"pdfPressReleaseLinkPublicLink"`
}

// Record is a persisted notice. Exactly one of Recall, Alert and
// PressRelease is set, matching Type.
type Record struct {
	ID   int64     `json:"id"`
	Type EntryType `json:"entryType"`

	Recall       *Recall       `json:"recall,omitempty"`
	Alert        *Alert        `json:"alert,omitempty"`
	PressRelease *PressRelease `json:"pressRelease,omitempty"`

	ArtifactPath string  `json:"pdfPath"`
	Text         *string `json:"allText"`
	TextHash     string  `json:"textHash"`
	RunID        string  `json:"runId"`

	CreatedAt time.Time `json:"createdAt"`
}

// Title returns the headline of the active variant, or "" if it has none.
func (r *Record) Title() string {
	var p *string
	switch {
	case r.Recall != nil:
		p = r.Recall.ProductName
	case r.Alert != nil:
		p = r.Alert.Title
	case r.PressRelease != nil:
		p = r.PressRelease.Title
	}
	if p == nil {
		return ""
	}
	return *p
}

// Validate returns an error if the record has no discriminant, more than
// one variant, or a variant that disagrees with its discriminant.
func (r *Record) Validate() error {
	if !r.Type.Valid() {
		return Errorf(EINVALID, "record entry type %q invalid", r.Type)
	}
	n := 0
	if r.Recall != nil {
		n++
	}
	if r.Alert != nil {
		n++
	}
	if r.PressRelease != nil {
		n++
	}
	if n != 1 {
		return Errorf(EINVALID, "record must carry exactly one variant, has %d", n)
	}
	switch r.Type {
	case EntryRecall:
		if r.Recall == nil {
			return Errorf(EINVALID, "recall record missing recall fields")
		}
	case EntryAlert:
		if r.Alert == nil {
			return Errorf(EINVALID, "alert record missing alert fields")
		}
	case EntryPressRelease:
		if r.PressRelease == nil {
			return Errorf(EINVALID, "press release record missing press release fields")
		}
	}
	if r.ArtifactPath == "" {
		return Errorf(EINVALID, "record artifact path required")
	}
	return nil
}

// RecordWriter persists records.
type RecordWriter interface {
	// CreateRecord inserts a new record and sets its ID, CreatedAt and
	// TextHash. Records are never updated or merged.
	CreateRecord(ctx context.Context, rec *Record) error
}

// RecordService represents a service for managing records.
type RecordService interface {
	RecordWriter

	// FindRecords retrieves records matching the filter, newest first.
	FindRecords(ctx context.Context, filter RecordFilter) ([]*Record, error)

	// DeleteRecords removes records matching the filter and returns how
	// many were removed.
	DeleteRecords(ctx context.Context, filter RecordFilter) (int, error)
}

// RecordFilter represents a filter for FindRecords and DeleteRecords.
type RecordFilter struct {
	Type  *EntryType `json:"entryType"`
	RunID *string    `json:"runId"`

	// Query matches titles, product names and full text, case-insensitively.
	Query *string `json:"query"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
