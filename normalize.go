package noticeharvest

import (
	"path/filepath"
	"strings"
)

// NewRecord maps a template's field map onto its record variant. Fields
// missing from the map stay nil; dates that do not parse become nil.
func NewRecord(tmpl Template, fields *FieldMap, art Artifact, text string) (*Record, error) {
	rec := &Record{
		Type:         tmpl.Entry,
		ArtifactPath: art.Path,
	}
	if strings.TrimSpace(text) != "" {
		rec.Text = &text
	}

	switch tmpl.Entry {
	case EntryRecall:
		rec.Recall = &Recall{
			DateIssued:        dateField(fields, FieldDateRecallIssued),
			ProductName:       field(fields, FieldProductName),
			ProductType:       field(fields, FieldProductType),
			Manufacturer:      field(fields, FieldManufacturer),
			RecallingFirm:     field(fields, FieldRecallingFirm),
			BatchNumbers:      field(fields, FieldBatches),
			ManufacturingDate: field(fields, FieldManufacturingDate),
			ExpiryDate:        field(fields, FieldExpiryDate),
			Reason:            field(fields, FieldReason),
			SourceURL:         nonEmpty(art.SourceURL),
		}
	case EntryAlert:
		rec.Alert = &Alert{
			DateIssued: dateField(fields, FieldDateIssued),
			Title:      field(fields, FieldAlertTitle),
			Filename:   nonEmpty(filepath.Base(art.Path)),
		}
	case EntryPressRelease:
		pr := &PressRelease{
			Title: field(fields, FieldTitle),
			Date:  dateField(fields, FieldDate),
		}
		if !art.Generated {
			pr.DocumentURL = nonEmpty(art.SourceURL)
		}
		rec.PressRelease = pr
	}

	if err := rec.Validate(); err != nil {
		return nil, err
	}
	return rec, nil
}

func field(fields *FieldMap, key string) *string {
	v, ok := fields.Lookup(key)
	if !ok {
		return nil
	}
	return &v
}

func dateField(fields *FieldMap, key string) *string {
	v, ok := ParseDate(fields.Get(key))
	if !ok {
		return nil
	}
	return &v
}

func nonEmpty(s string) *string {
	if s == "" || s == "." {
		return nil
	}
	return &s
}
