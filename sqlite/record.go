package sqlite

import (
	"context"
	"database/sql"
	"strings"

	"github.com/fwojciec/noticeharvest"
)

// Compile-time interface verification.
var _ noticeharvest.RecordService = (*RecordService)(nil)

const recordColumns = `id, entry_type, date_recall_issued, date_issued, product_name, product_type,
	manufacturer, recalling_firm, batch_numbers, manufacturing_date, expiry_date, reason_for_recall,
	source_url, pdf_path, alert_title, alert_pdf_filename, press_release_title, press_release_date,
	pdf_press_release_link_public_link, all_text, text_hash, run_id, created_at`

// RecordService implements noticeharvest.RecordService using SQLite.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// CreateRecord inserts the record in its own transaction. The database
// assigns the ID and creation time; a failed insert is rolled back so the
// connection is ready for the next row.
func (s *RecordService) CreateRecord(ctx context.Context, rec *noticeharvest.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	rec.TextHash = hashText(rec.Text)

	var recall noticeharvest.Recall
	var alert noticeharvest.Alert
	var press noticeharvest.PressRelease
	switch {
	case rec.Recall != nil:
		recall = *rec.Recall
	case rec.Alert != nil:
		alert = *rec.Alert
	case rec.PressRelease != nil:
		press = *rec.PressRelease
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	var createdAt string
	err = tx.QueryRowContext(ctx, `
		INSERT INTO notices (
			entry_type, date_recall_issued, date_issued, product_name, product_type,
			manufacturer, recalling_firm, batch_numbers, manufacturing_date, expiry_date,
			reason_for_recall, source_url, pdf_path, alert_title, alert_pdf_filename,
			press_release_title, press_release_date, pdf_press_release_link_public_link,
			all_text, text_hash, run_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		RETURNING id, created_at
	`,
		string(rec.Type), nullable(recall.DateIssued), nullable(alert.DateIssued),
		nullable(recall.ProductName), nullable(recall.ProductType), nullable(recall.Manufacturer),
		nullable(recall.RecallingFirm), nullable(recall.BatchNumbers), nullable(recall.ManufacturingDate),
		nullable(recall.ExpiryDate), nullable(recall.Reason), nullable(recall.SourceURL),
		rec.ArtifactPath, nullable(alert.Title), nullable(alert.Filename),
		nullable(press.Title), nullable(press.Date), nullable(press.DocumentURL),
		nullable(rec.Text), rec.TextHash, rec.RunID,
	).Scan(&rec.ID, &createdAt)
	if err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return err
	}

	rec.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	return err
}

// FindRecords retrieves records matching the filter, newest first.
func (s *RecordService) FindRecords(ctx context.Context, filter noticeharvest.RecordFilter) ([]*noticeharvest.Record, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + recordColumns + " FROM notices")
	appendFilter(&query, &args, filter)
	query.WriteString(" ORDER BY created_at DESC, id DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var recs []*noticeharvest.Record
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}

	return recs, rows.Err()
}

// DeleteRecords removes every record matching the filter. Limit and Offset
// are ignored.
func (s *RecordService) DeleteRecords(ctx context.Context, filter noticeharvest.RecordFilter) (int, error) {
	var query strings.Builder
	var args []any

	query.WriteString("DELETE FROM notices")
	appendFilter(&query, &args, filter)

	result, err := s.db.ExecContext(ctx, query.String(), args...)
	if err != nil {
		return 0, err
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// scanRecord reads one notices row into a record with the variant chosen by
// entry_type.
func scanRecord(rows *sql.Rows) (*noticeharvest.Record, error) {
	var (
		rec                                                       noticeharvest.Record
		entryType, createdAt                                      string
		dateRecallIssued, dateIssued, productName, productType    sql.NullString
		manufacturer, recallingFirm, batches, mfgDate, expiryDate sql.NullString
		reason, sourceURL, alertTitle, alertFilename              sql.NullString
		pressTitle, pressDate, pressLink, text                    sql.NullString
	)

	if err := rows.Scan(&rec.ID, &entryType, &dateRecallIssued, &dateIssued, &productName, &productType,
		&manufacturer, &recallingFirm, &batches, &mfgDate, &expiryDate, &reason,
		&sourceURL, &rec.ArtifactPath, &alertTitle, &alertFilename, &pressTitle, &pressDate,
		&pressLink, &text, &rec.TextHash, &rec.RunID, &createdAt); err != nil {
		return nil, err
	}

	rec.Type = noticeharvest.EntryType(entryType)
	rec.Text = ptr(text)

	switch rec.Type {
	case noticeharvest.EntryRecall:
		rec.Recall = &noticeharvest.Recall{
			DateIssued:        ptr(dateRecallIssued),
			ProductName:       ptr(productName),
			ProductType:       ptr(productType),
			Manufacturer:      ptr(manufacturer),
			RecallingFirm:     ptr(recallingFirm),
			BatchNumbers:      ptr(batches),
			ManufacturingDate: ptr(mfgDate),
			ExpiryDate:        ptr(expiryDate),
			Reason:            ptr(reason),
			SourceURL:         ptr(sourceURL),
		}
	case noticeharvest.EntryAlert:
		rec.Alert = &noticeharvest.Alert{
			DateIssued: ptr(dateIssued),
			Title:      ptr(alertTitle),
			Filename:   ptr(alertFilename),
		}
	case noticeharvest.EntryPressRelease:
		rec.PressRelease = &noticeharvest.PressRelease{
			Title:       ptr(pressTitle),
			Date:        ptr(pressDate),
			DocumentURL: ptr(pressLink),
		}
	default:
		return nil, noticeharvest.Errorf(noticeharvest.EINTERNAL, "record %d has unknown entry type %q", rec.ID, entryType)
	}

	var err error
	rec.CreatedAt, err = parseRFC3339(createdAt, "created_at")
	if err != nil {
		return nil, err
	}
	return &rec, nil
}
