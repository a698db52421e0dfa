package postgres

import (
	"context"
	"database/sql"
	"encoding/hex"
	"fmt"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/noticeharvest"
)

// Compile-time interface verification.
var _ noticeharvest.RecordService = (*RecordService)(nil)

const selectColumns = `id, entry_type, date_recall_issued::text AS date_recall_issued,
	date_issued::text AS date_issued, product_name, product_type, manufacturer, recalling_firm,
	batch_numbers, manufacturing_date, expiry_date, reason_for_recall, source_url, pdf_path,
	alert_title, alert_pdf_filename, press_release_title,
	press_release_date::text AS press_release_date, pdf_press_release_link_public_link,
	all_text, text_hash, run_id, created_at`

const insertRecord = `
	INSERT INTO notices (
		entry_type, date_recall_issued, date_issued, product_name, product_type,
		manufacturer, recalling_firm, batch_numbers, manufacturing_date, expiry_date,
		reason_for_recall, source_url, pdf_path, alert_title, alert_pdf_filename,
		press_release_title, press_release_date, pdf_press_release_link_public_link,
		all_text, text_hash, run_id
	) VALUES (
		:entry_type, :date_recall_issued, :date_issued, :product_name, :product_type,
		:manufacturer, :recalling_firm, :batch_numbers, :manufacturing_date, :expiry_date,
		:reason_for_recall, :source_url, :pdf_path, :alert_title, :alert_pdf_filename,
		:press_release_title, :press_release_date, :pdf_press_release_link_public_link,
		:all_text, :text_hash, :run_id
	)
	RETURNING id, created_at`

// Row is the flat notices table shape of a record.
type Row struct {
	ID                int64          `db:"id"`
	EntryType         string         `db:"entry_type"`
	DateRecallIssued  sql.NullString `db:"date_recall_issued"`
	DateIssued        sql.NullString `db:"date_issued"`
	ProductName       sql.NullString `db:"product_name"`
	ProductType       sql.NullString `db:"product_type"`
	Manufacturer      sql.NullString `db:"manufacturer"`
	RecallingFirm     sql.NullString `db:"recalling_firm"`
	BatchNumbers      sql.NullString `db:"batch_numbers"`
	ManufacturingDate sql.NullString `db:"manufacturing_date"`
	ExpiryDate        sql.NullString `db:"expiry_date"`
	Reason            sql.NullString `db:"reason_for_recall"`
	SourceURL         sql.NullString `db:"source_url"`
	ArtifactPath      string         `db:"pdf_path"`
	AlertTitle        sql.NullString `db:"alert_title"`
	AlertFilename     sql.NullString `db:"alert_pdf_filename"`
	PressTitle        sql.NullString `db:"press_release_title"`
	PressDate         sql.NullString `db:"press_release_date"`
	PressDocumentURL  sql.NullString `db:"pdf_press_release_link_public_link"`
	Text              sql.NullString `db:"all_text"`
	TextHash          string         `db:"text_hash"`
	RunID             string         `db:"run_id"`
	CreatedAt         time.Time      `db:"created_at"`
}

// NewRow flattens a record into its table row.
func NewRow(rec *noticeharvest.Record) Row {
	row := Row{
		ID:           rec.ID,
		EntryType:    string(rec.Type),
		ArtifactPath: rec.ArtifactPath,
		Text:         null(rec.Text),
		TextHash:     rec.TextHash,
		RunID:        rec.RunID,
		CreatedAt:    rec.CreatedAt,
	}
	if r := rec.Recall; r != nil {
		row.DateRecallIssued = null(r.DateIssued)
		row.ProductName = null(r.ProductName)
		row.ProductType = null(r.ProductType)
		row.Manufacturer = null(r.Manufacturer)
		row.RecallingFirm = null(r.RecallingFirm)
		row.BatchNumbers = null(r.BatchNumbers)
		row.ManufacturingDate = null(r.ManufacturingDate)
		row.ExpiryDate = null(r.ExpiryDate)
		row.Reason = null(r.Reason)
		row.SourceURL = null(r.SourceURL)
	}
	if a := rec.Alert; a != nil {
		row.DateIssued = null(a.DateIssued)
		row.AlertTitle = null(a.Title)
		row.AlertFilename = null(a.Filename)
	}
	if p := rec.PressRelease; p != nil {
		row.PressTitle = null(p.Title)
		row.PressDate = null(p.Date)
		row.PressDocumentURL = null(p.DocumentURL)
	}
	return row
}

// Record rebuilds the record, populating only the variant named by EntryType.
func (row Row) Record() (*noticeharvest.Record, error) {
	rec := &noticeharvest.Record{
		ID:           row.ID,
		Type:         noticeharvest.EntryType(row.EntryType),
		ArtifactPath: row.ArtifactPath,
		Text:         ptr(row.Text),
		TextHash:     row.TextHash,
		RunID:        row.RunID,
		CreatedAt:    row.CreatedAt,
	}
	switch rec.Type {
	case noticeharvest.EntryRecall:
		rec.Recall = &noticeharvest.Recall{
			DateIssued:        ptr(row.DateRecallIssued),
			ProductName:       ptr(row.ProductName),
			ProductType:       ptr(row.ProductType),
			Manufacturer:      ptr(row.Manufacturer),
			RecallingFirm:     ptr(row.RecallingFirm),
			BatchNumbers:      ptr(row.BatchNumbers),
			ManufacturingDate: ptr(row.ManufacturingDate),
			ExpiryDate:        ptr(row.ExpiryDate),
			Reason:            ptr(row.Reason),
			SourceURL:         ptr(row.SourceURL),
		}
	case noticeharvest.EntryAlert:
		rec.Alert = &noticeharvest.Alert{
			DateIssued: ptr(row.DateIssued),
			Title:      ptr(row.AlertTitle),
			Filename:   ptr(row.AlertFilename),
		}
	case noticeharvest.EntryPressRelease:
		rec.PressRelease = &noticeharvest.PressRelease{
			Title:       ptr(row.PressTitle),
			Date:        ptr(row.PressDate),
			DocumentURL: ptr(row.PressDocumentURL),
		}
	default:
		return nil, noticeharvest.Errorf(noticeharvest.EINTERNAL, "record %d has unknown entry type %q", row.ID, row.EntryType)
	}
	return rec, nil
}

// RecordService implements noticeharvest.RecordService using PostgreSQL.
type RecordService struct {
	db *DB
}

// NewRecordService creates a new RecordService.
func NewRecordService(db *DB) *RecordService {
	return &RecordService{db: db}
}

// CreateRecord inserts the record in its own transaction, rolling back on
// failure. The database assigns the ID and creation time.
func (s *RecordService) CreateRecord(ctx context.Context, rec *noticeharvest.Record) error {
	if err := rec.Validate(); err != nil {
		return err
	}
	rec.TextHash = HashText(rec.Text)

	tx, err := s.db.db.BeginTxx(ctx, nil)
	if err != nil {
		return err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareNamedContext(ctx, insertRecord)
	if err != nil {
		return fmt.Errorf("prepare insert: %w", err)
	}
	defer stmt.Close()

	if err := stmt.QueryRowxContext(ctx, NewRow(rec)).Scan(&rec.ID, &rec.CreatedAt); err != nil {
		return fmt.Errorf("insert notice: %w", err)
	}

	return tx.Commit()
}

// FindRecords retrieves records matching the filter, newest first.
func (s *RecordService) FindRecords(ctx context.Context, filter noticeharvest.RecordFilter) ([]*noticeharvest.Record, error) {
	where, args := WhereClause(filter)

	var query strings.Builder
	query.WriteString("SELECT " + selectColumns + " FROM notices" + where)
	query.WriteString(" ORDER BY created_at DESC, id DESC")
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		fmt.Fprintf(&query, " LIMIT $%d", len(args))
	}
	if filter.Offset > 0 {
		args = append(args, filter.Offset)
		fmt.Fprintf(&query, " OFFSET $%d", len(args))
	}

	var rows []Row
	if err := s.db.db.SelectContext(ctx, &rows, query.String(), args...); err != nil {
		return nil, fmt.Errorf("find notices: %w", err)
	}

	recs := make([]*noticeharvest.Record, 0, len(rows))
	for _, row := range rows {
		rec, err := row.Record()
		if err != nil {
			return nil, err
		}
		recs = append(recs, rec)
	}
	return recs, nil
}

// DeleteRecords removes every record matching the filter. Limit and Offset
// are ignored.
func (s *RecordService) DeleteRecords(ctx context.Context, filter noticeharvest.RecordFilter) (int, error) {
	where, args := WhereClause(filter)

	result, err := s.db.db.ExecContext(ctx, "DELETE FROM notices"+where, args...)
	if err != nil {
		return 0, fmt.Errorf("delete notices: %w", err)
	}

	n, err := result.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

// WhereClause renders the filter's Type, RunID and Query conditions with
// numbered placeholders.
func WhereClause(filter noticeharvest.RecordFilter) (string, []any) {
	var conds []string
	var args []any

	if filter.Type != nil {
		args = append(args, string(*filter.Type))
		conds = append(conds, fmt.Sprintf("entry_type = $%d", len(args)))
	}
	if filter.RunID != nil {
		args = append(args, *filter.RunID)
		conds = append(conds, fmt.Sprintf("run_id = $%d", len(args)))
	}
	if filter.Query != nil {
		args = append(args, "%"+*filter.Query+"%")
		n := len(args)
		conds = append(conds, fmt.Sprintf(
			"(product_name ILIKE $%[1]d OR alert_title ILIKE $%[1]d OR press_release_title ILIKE $%[1]d OR all_text ILIKE $%[1]d)", n))
	}

	if len(conds) == 0 {
		return "", nil
	}
	return " WHERE " + strings.Join(conds, " AND "), args
}

// HashText computes xxHash of the record text and returns a hex string.
// Records without text hash to "".
func HashText(text *string) string {
	if text == nil {
		return ""
	}
	var b [8]byte
	h := xxhash.Sum64String(*text)
	for i := range b {
		b[i] = byte(h >> (56 - 8*i))
	}
	return hex.EncodeToString(b[:])
}

func null(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func ptr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	s := ns.String
	return &s
}
