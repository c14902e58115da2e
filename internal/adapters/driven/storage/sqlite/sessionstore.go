package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/simlab-siue/methodosync/internal/core/domain"
	"github.com/simlab-siue/methodosync/internal/core/ports/driven"
)

// jsonNull is the JSON representation of null.
const jsonNull = "null"

// sessionStore implements driven.SessionStore.
type sessionStore struct {
	store *Store
}

var _ driven.SessionStore = (*sessionStore)(nil)

// sessionTables are cleared on reset, children first.
var sessionTables = []string{
	"codebook_rows",
	"parsed_documents",
	"axial_categories",
	"annotations",
	"session_meta",
}

// Load reads the whole session. A fresh database yields an empty session.
func (s *sessionStore) Load(ctx context.Context) (domain.Session, error) {
	var session domain.Session

	row := s.store.db.QueryRowContext(ctx, `SELECT video_id, last_markdown FROM session_meta WHERE id = 1`)
	err := row.Scan(&session.VideoID, &session.LastMarkdown)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return domain.Session{}, fmt.Errorf("querying session: %w", err)
	}

	if session.Annotations, err = s.loadAnnotations(ctx); err != nil {
		return domain.Session{}, err
	}
	if session.AxialCategories, err = s.loadAxialCategories(ctx); err != nil {
		return domain.Session{}, err
	}
	if session.ParsedDocuments, err = s.loadParsedDocuments(ctx); err != nil {
		return domain.Session{}, err
	}
	rows, err := s.loadCodebookRows(ctx)
	if err != nil {
		return domain.Session{}, err
	}
	session.Codebook = domain.NewCodebook(rows)

	return session, nil
}

// Save replaces the stored session in one transaction.
func (s *sessionStore) Save(ctx context.Context, session domain.Session) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := clearTables(ctx, tx); err != nil {
		return err
	}

	_, err = tx.ExecContext(ctx, `
		INSERT INTO session_meta (id, video_id, last_markdown, updated_at)
		VALUES (1, ?, ?, CURRENT_TIMESTAMP)
	`, session.VideoID, session.LastMarkdown)
	if err != nil {
		return fmt.Errorf("saving session: %w", err)
	}

	if err := saveAnnotations(ctx, tx, session.Annotations); err != nil {
		return err
	}
	if err := saveAxialCategories(ctx, tx, session.AxialCategories); err != nil {
		return err
	}
	if err := saveParsedDocuments(ctx, tx, session.ParsedDocuments); err != nil {
		return err
	}
	if err := saveCodebookRows(ctx, tx, session.Codebook.Rows()); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing session: %w", err)
	}
	return nil
}

// Reset discards the stored session.
func (s *sessionStore) Reset(ctx context.Context) error {
	tx, err := s.store.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck // no-op after commit

	if err := clearTables(ctx, tx); err != nil {
		return err
	}
	return tx.Commit()
}

func clearTables(ctx context.Context, tx *sql.Tx) error {
	for _, table := range sessionTables {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}
	return nil
}

// ==================== Annotations ====================

func saveAnnotations(ctx context.Context, tx *sql.Tx, annotations []domain.Annotation) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO annotations (position, id, video_id, timestamp_seconds, observation_text,
			open_codes, axial_category, analytical_memo)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing annotation insert: %w", err)
	}
	defer stmt.Close()

	for i := range annotations {
		a := &annotations[i]
		codes, err := json.Marshal(domain.NormaliseOpenCodes(a.OpenCodes))
		if err != nil {
			return fmt.Errorf("marshalling open codes: %w", err)
		}
		_, err = stmt.ExecContext(ctx, i, a.ID, a.VideoID, a.Timestamp, a.ObservationText,
			string(codes), a.AxialCategory, a.AnalyticalMemo)
		if err != nil {
			return fmt.Errorf("saving annotation %s: %w", a.ID, err)
		}
	}
	return nil
}

func (s *sessionStore) loadAnnotations(ctx context.Context) ([]domain.Annotation, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, video_id, timestamp_seconds, observation_text, open_codes, axial_category, analytical_memo
		FROM annotations ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying annotations: %w", err)
	}
	defer rows.Close()

	var annotations []domain.Annotation //nolint:prealloc // size unknown from query
	for rows.Next() {
		var a domain.Annotation
		var codes string
		if err := rows.Scan(&a.ID, &a.VideoID, &a.Timestamp, &a.ObservationText,
			&codes, &a.AxialCategory, &a.AnalyticalMemo); err != nil {
			return nil, fmt.Errorf("scanning annotation: %w", err)
		}
		if err := json.Unmarshal([]byte(codes), &a.OpenCodes); err != nil {
			return nil, fmt.Errorf("unmarshalling open codes: %w", err)
		}
		annotations = append(annotations, a)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating annotations: %w", err)
	}
	return annotations, nil
}

// ==================== Axial Categories ====================

func saveAxialCategories(ctx context.Context, tx *sql.Tx, categories []string) error {
	for i, name := range categories {
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO axial_categories (position, name) VALUES (?, ?)`, i, name); err != nil {
			return fmt.Errorf("saving axial category %q: %w", name, err)
		}
	}
	return nil
}

func (s *sessionStore) loadAxialCategories(ctx context.Context) ([]string, error) {
	rows, err := s.store.db.QueryContext(ctx, `SELECT name FROM axial_categories ORDER BY position`)
	if err != nil {
		return nil, fmt.Errorf("querying axial categories: %w", err)
	}
	defer rows.Close()

	var categories []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("scanning axial category: %w", err)
		}
		categories = append(categories, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating axial categories: %w", err)
	}
	return categories, nil
}

// ==================== Parsed Documents ====================

func saveParsedDocuments(ctx context.Context, tx *sql.Tx, docs []domain.ParsedDocument) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO parsed_documents (position, filename, axial_category, identified_categories,
			overarching_themes, error_kind, error_message)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing parsed document insert: %w", err)
	}
	defer stmt.Close()

	for i := range docs {
		d := &docs[i]
		identified, err := nullableJSON(d.IdentifiedCategories)
		if err != nil {
			return err
		}
		themes, err := nullableJSON(d.OverarchingThemes)
		if err != nil {
			return err
		}
		var kind, message sql.NullString
		if d.ParseError != nil {
			kind = sql.NullString{String: string(d.ParseError.Kind), Valid: true}
			message = sql.NullString{String: d.ParseError.Message, Valid: true}
		}
		if _, err := stmt.ExecContext(ctx, i, d.Filename, d.AxialCategory, identified, themes, kind, message); err != nil {
			return fmt.Errorf("saving parsed document %s: %w", d.Filename, err)
		}
	}
	return nil
}

func (s *sessionStore) loadParsedDocuments(ctx context.Context) ([]domain.ParsedDocument, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT filename, axial_category, identified_categories, overarching_themes, error_kind, error_message
		FROM parsed_documents ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying parsed documents: %w", err)
	}
	defer rows.Close()

	var docs []domain.ParsedDocument
	for rows.Next() {
		var d domain.ParsedDocument
		var identified, themes, kind, message sql.NullString
		if err := rows.Scan(&d.Filename, &d.AxialCategory, &identified, &themes, &kind, &message); err != nil {
			return nil, fmt.Errorf("scanning parsed document: %w", err)
		}
		if d.IdentifiedCategories, err = stringsFromJSON(identified); err != nil {
			return nil, err
		}
		if d.OverarchingThemes, err = stringsFromJSON(themes); err != nil {
			return nil, err
		}
		if kind.Valid {
			d.ParseError = &domain.ParseError{Kind: domain.ParseErrorKind(kind.String), Message: message.String}
		}
		docs = append(docs, d)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating parsed documents: %w", err)
	}
	return docs, nil
}

// nullableJSON stores nil slices as NULL so "absent" survives a round trip.
func nullableJSON(values []string) (sql.NullString, error) {
	if values == nil {
		return sql.NullString{}, nil
	}
	data, err := json.Marshal(values)
	if err != nil {
		return sql.NullString{}, fmt.Errorf("marshalling categories: %w", err)
	}
	return sql.NullString{String: string(data), Valid: true}, nil
}

func stringsFromJSON(v sql.NullString) ([]string, error) {
	if !v.Valid || v.String == jsonNull {
		return nil, nil
	}
	out := []string{}
	if err := json.Unmarshal([]byte(v.String), &out); err != nil {
		return nil, fmt.Errorf("unmarshalling categories: %w", err)
	}
	return out, nil
}

// ==================== Codebook Rows ====================

func saveCodebookRows(ctx context.Context, tx *sql.Tx, rows []domain.CodebookRow) error {
	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO codebook_rows (position, id, source, variable_name, variable_label, definition,
			inclusion_rules, exclusion_rules, values_scale, anchor_example)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing codebook row insert: %w", err)
	}
	defer stmt.Close()

	for i := range rows {
		r := &rows[i]
		if !r.Source.IsValid() {
			return fmt.Errorf("%w: row %s has source %q", domain.ErrInvalidInput, r.ID, r.Source)
		}
		_, err := stmt.ExecContext(ctx, i, r.ID, r.Source.String(), r.VariableName, r.VariableLabel,
			r.DefinitionText, r.InclusionRules, r.ExclusionRules, r.ValuesScale, r.AnchorExample)
		if err != nil {
			return fmt.Errorf("saving codebook row %s: %w", r.ID, err)
		}
	}
	return nil
}

func (s *sessionStore) loadCodebookRows(ctx context.Context) ([]domain.CodebookRow, error) {
	rows, err := s.store.db.QueryContext(ctx, `
		SELECT id, source, variable_name, variable_label, definition,
			inclusion_rules, exclusion_rules, values_scale, anchor_example
		FROM codebook_rows ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("querying codebook rows: %w", err)
	}
	defer rows.Close()

	var out []domain.CodebookRow
	for rows.Next() {
		var r domain.CodebookRow
		var source string
		if err := rows.Scan(&r.ID, &source, &r.VariableName, &r.VariableLabel, &r.DefinitionText,
			&r.InclusionRules, &r.ExclusionRules, &r.ValuesScale, &r.AnchorExample); err != nil {
			return nil, fmt.Errorf("scanning codebook row: %w", err)
		}
		r.Source = domain.RowSource(source)
		out = append(out, r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating codebook rows: %w", err)
	}
	return out, nil
}
