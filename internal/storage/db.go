package storage

import (
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"fergusquote/internal"
)

type DB struct {
	conn *sql.DB
}

func Open(path string) (*DB, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, err
	}

	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	if _, err := conn.Exec(`PRAGMA journal_mode = WAL;`); err != nil {
		_ = conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.init(); err != nil {
		_ = conn.Close()
		return nil, err
	}

	return db, nil
}

func (d *DB) Close() error {
	return d.conn.Close()
}

func (d *DB) init() error {
	schema := `
CREATE TABLE IF NOT EXISTS batches (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  source TEXT NOT NULL,
  fileName TEXT NOT NULL,
  jobHint TEXT,
  itemCount INTEGER NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE TABLE IF NOT EXISTS items (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  batchId INTEGER NOT NULL,
  lineNo INTEGER NOT NULL,
  source TEXT NOT NULL,
  fieldsJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(batchId) REFERENCES batches(id)
);
CREATE INDEX IF NOT EXISTS idx_items_batchId ON items(batchId);

CREATE TABLE IF NOT EXISTS pushes (
  id INTEGER PRIMARY KEY AUTOINCREMENT,
  batchId INTEGER NOT NULL,
  jobNo TEXT NOT NULL,
  jobId INTEGER NOT NULL,
  quoteId INTEGER,
  action TEXT NOT NULL,
  title TEXT,
  payloadJson TEXT NOT NULL,
  createdAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP,
  FOREIGN KEY(batchId) REFERENCES batches(id)
);

CREATE TABLE IF NOT EXISTS metadata (
  key TEXT PRIMARY KEY,
  value TEXT NOT NULL,
  updatedAt TEXT NOT NULL DEFAULT CURRENT_TIMESTAMP
);
`

	_, err := d.conn.Exec(schema)
	return err
}

// InsertBatch stores one imported takeoff file and all of its raw
// items in a single transaction.
func (d *DB) InsertBatch(source, fileName, jobHint string, items []internal.RawItem) (internal.BatchRow, error) {
	tx, err := d.conn.Begin()
	if err != nil {
		return internal.BatchRow{}, err
	}
	defer func() { _ = tx.Rollback() }()

	result, err := tx.Exec(`
INSERT INTO batches (source, fileName, jobHint, itemCount) VALUES (?, ?, ?, ?)
`, source, fileName, jobHint, len(items))
	if err != nil {
		return internal.BatchRow{}, err
	}
	batchID, err := result.LastInsertId()
	if err != nil {
		return internal.BatchRow{}, err
	}

	stmt, err := tx.Prepare(`INSERT INTO items (batchId, lineNo, source, fieldsJson) VALUES (?, ?, ?, ?)`)
	if err != nil {
		return internal.BatchRow{}, err
	}
	defer stmt.Close()

	for _, item := range items {
		fieldsJSON, _ := json.Marshal(item.Fields)
		if _, err := stmt.Exec(batchID, item.LineNo, string(item.Source), string(fieldsJSON)); err != nil {
			return internal.BatchRow{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		return internal.BatchRow{}, err
	}
	return d.MustBatch(int(batchID))
}

func (d *DB) GetBatch(id int) (*internal.BatchRow, error) {
	var row internal.BatchRow
	err := d.conn.QueryRow(`
SELECT id, source, fileName, COALESCE(jobHint, ''), itemCount, createdAt
FROM batches WHERE id = ?
`, id).Scan(&row.ID, &row.Source, &row.FileName, &row.JobHint, &row.ItemCount, &row.CreatedAt)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &row, nil
}

func (d *DB) MustBatch(id int) (internal.BatchRow, error) {
	row, err := d.GetBatch(id)
	if err != nil {
		return internal.BatchRow{}, err
	}
	if row == nil {
		return internal.BatchRow{}, fmt.Errorf("batch not found: id=%d", id)
	}
	return *row, nil
}

func (d *DB) ListBatches(limit int) ([]internal.BatchRow, error) {
	rows, err := d.conn.Query(`
SELECT id, source, fileName, COALESCE(jobHint, ''), itemCount, createdAt
FROM batches ORDER BY id DESC LIMIT ?
`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.BatchRow
	for rows.Next() {
		var row internal.BatchRow
		if err := rows.Scan(&row.ID, &row.Source, &row.FileName, &row.JobHint, &row.ItemCount, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) GetBatchItems(batchID int) ([]internal.RawItem, error) {
	rows, err := d.conn.Query(`
SELECT lineNo, source, fieldsJson FROM items WHERE batchId = ? ORDER BY lineNo ASC
`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.RawItem
	for rows.Next() {
		var item internal.RawItem
		var source, fieldsJSON string
		if err := rows.Scan(&item.LineNo, &source, &fieldsJSON); err != nil {
			return nil, err
		}
		item.Source = internal.ItemSource(source)
		if err := json.Unmarshal([]byte(fieldsJSON), &item.Fields); err != nil {
			return nil, err
		}
		out = append(out, item)
	}
	return out, rows.Err()
}

// InsertPush records one submission attempt, successful or not, with
// the exact payload that was sent.
func (d *DB) InsertPush(batchID int, result internal.PushResult, title string, payload internal.QuotePayload) error {
	payloadJSON, _ := json.Marshal(payload)
	_, err := d.conn.Exec(`
INSERT INTO pushes (batchId, jobNo, jobId, quoteId, action, title, payloadJson)
VALUES (?, ?, ?, ?, ?, ?, ?)
`, batchID, result.JobNo, result.JobID, result.QuoteID, string(result.Action), title, string(payloadJSON))
	return err
}

func (d *DB) ListPushes(batchID int) ([]internal.PushRow, error) {
	rows, err := d.conn.Query(`
SELECT id, batchId, jobNo, jobId, COALESCE(quoteId, 0), action, COALESCE(title, ''), createdAt
FROM pushes WHERE batchId = ? ORDER BY id ASC
`, batchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []internal.PushRow
	for rows.Next() {
		var row internal.PushRow
		if err := rows.Scan(&row.ID, &row.BatchID, &row.JobNo, &row.JobID, &row.QuoteID, &row.Action, &row.Title, &row.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (d *DB) SetMetadata(key, value string) error {
	_, err := d.conn.Exec(`
INSERT INTO metadata (key, value) VALUES (?, ?)
ON CONFLICT(key) DO UPDATE SET value = excluded.value, updatedAt = CURRENT_TIMESTAMP
`, key, value)
	return err
}

func (d *DB) GetMetadata(key string) (*string, error) {
	var value string
	err := d.conn.QueryRow(`SELECT value FROM metadata WHERE key = ?`, key).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &value, nil
}
