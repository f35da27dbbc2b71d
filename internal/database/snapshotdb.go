package database

import (
	"context"
	"database/sql"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"golang.org/x/crypto/blake2b"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/nao1215/vacationreport/internal/model"
)

// DBFileName is the database file name inside the database directory.
const DBFileName = "vacationreport.db"

var (
	// ErrNoSnapshots is returned when an operation needs at least one snapshot.
	ErrNoSnapshots = errors.New("no snapshots recorded")

	// ErrDatabaseNotFound is returned by Open when the database file does
	// not exist and CreateIfNotExists is false.
	ErrDatabaseNotFound = errors.New("history database not found")
)

// SnapshotDB stores generated reports.
type SnapshotDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// Options configures SnapshotDB behavior.
type Options struct {
	// CreateIfNotExists creates the database file if it doesn't exist.
	CreateIfNotExists bool

	// EnableWAL enables Write-Ahead Logging.
	EnableWAL bool
}

// DefaultOptions returns the default database options.
func DefaultOptions() Options {
	return Options{
		CreateIfNotExists: true,
		EnableWAL:         true,
	}
}

// ReadOnlyOptions returns options for commands that only read snapshots.
// The database file is never created.
func ReadOnlyOptions() Options {
	return Options{
		CreateIfNotExists: false,
		EnableWAL:         true,
	}
}

// Open opens or creates a SnapshotDB in dbDir.
// If CreateIfNotExists is false and the database doesn't exist, an error is returned.
func Open(dbDir string, opts Options) (*SnapshotDB, error) {
	dbPath := filepath.Join(dbDir, DBFileName)

	if !opts.CreateIfNotExists {
		if _, err := os.Stat(dbPath); os.IsNotExist(err) {
			return nil, fmt.Errorf("%w at %s", ErrDatabaseNotFound, dbPath)
		} else if err != nil {
			return nil, fmt.Errorf("failed to check database path: %w", err)
		}
	} else {
		if err := os.MkdirAll(dbDir, 0750); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	// mode=rw refuses to create a missing file, mode=rwc allows it.
	// Write transactions take the lock at BEGIN so concurrent saves queue up.
	const params = "&_txlock=immediate&_pragma=busy_timeout(5000)"
	dsn := dbPath + "?mode=rw" + params
	if opts.CreateIfNotExists {
		dsn = dbPath + "?mode=rwc" + params
	}

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// SQLite only supports one writer
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	sdb := &SnapshotDB{
		db:     db,
		dbPath: dbPath,
	}

	if opts.EnableWAL {
		if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
			_ = db.Close()
			return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
		}
	}

	if err := sdb.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return sdb, nil
}

// Path returns the database file path.
func (sdb *SnapshotDB) Path() string {
	return sdb.dbPath
}

// Close closes the database connection.
func (sdb *SnapshotDB) Close() error {
	return sdb.db.Close()
}

// createTables creates the database schema if it doesn't exist.
func (sdb *SnapshotDB) createTables() error {
	schema := `
	CREATE TABLE IF NOT EXISTS snapshots (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		created_at TEXT NOT NULL,
		checksum TEXT NOT NULL,
		entry_count INTEGER NOT NULL,
		total_km INTEGER NOT NULL,
		report_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_snapshots_checksum ON snapshots(checksum);
	`

	_, err := sdb.db.ExecContext(context.Background(), schema)
	return err
}

// Snapshot is one stored report.
type Snapshot struct {
	ID         int64
	Timestamp  time.Time
	Checksum   string
	EntryCount int
	TotalKm    int

	// Report is nil for results of List.
	Report *model.Report
}

// Checksum returns the hex BLAKE2b-256 digest of the report rows.
// Only city and distance take part, in order; the generation time does not.
func Checksum(report *model.Report) string {
	var buf []byte
	for _, e := range report.Entries {
		buf = append(buf, e.City...)
		buf = append(buf, 0)
		buf = strconv.AppendInt(buf, int64(e.Distance), 10)
		buf = append(buf, '\n')
	}
	sum := blake2b.Sum256(buf)
	return hex.EncodeToString(sum[:])
}

// Save stores report as a new snapshot unless the latest snapshot has the
// same checksum. It returns the snapshot ID that holds the report and
// whether a new row was written.
func (sdb *SnapshotDB) Save(ctx context.Context, report *model.Report) (int64, bool, error) {
	checksum := Checksum(report)

	reportJSON, err := json.Marshal(report)
	if err != nil {
		return 0, false, fmt.Errorf("failed to serialize report: %w", err)
	}

	createdAt := report.GeneratedAt
	if createdAt.IsZero() {
		createdAt = time.Now()
	}

	tx, err := sdb.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, false, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	latest, err := latestMeta(ctx, tx)
	if err != nil {
		return 0, false, err
	}
	if latest != nil && latest.Checksum == checksum {
		return latest.ID, false, nil
	}

	query := `
	INSERT INTO snapshots (created_at, checksum, entry_count, total_km, report_json)
	VALUES (?, ?, ?, ?, ?)
	`

	result, err := tx.ExecContext(ctx, query,
		createdAt.UTC().Format(time.RFC3339Nano),
		checksum,
		report.Len(),
		report.TotalDistance(),
		string(reportJSON),
	)
	if err != nil {
		return 0, false, fmt.Errorf("failed to save snapshot: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return 0, false, fmt.Errorf("failed to get snapshot ID: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return 0, false, fmt.Errorf("failed to commit snapshot: %w", err)
	}
	return id, true, nil
}

// List returns all snapshots, newest first, without their reports.
func (sdb *SnapshotDB) List(ctx context.Context) ([]Snapshot, error) {
	query := `
	SELECT id, created_at, checksum, entry_count, total_km
	FROM snapshots
	ORDER BY id DESC
	`

	rows, err := sdb.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list snapshots: %w", err)
	}
	defer rows.Close()

	var snapshots []Snapshot
	for rows.Next() {
		var s Snapshot
		var createdAt string
		if err := rows.Scan(&s.ID, &createdAt, &s.Checksum, &s.EntryCount, &s.TotalKm); err != nil {
			return nil, fmt.Errorf("failed to scan snapshot: %w", err)
		}
		s.Timestamp = parseTimestamp(createdAt)
		snapshots = append(snapshots, s)
	}

	return snapshots, rows.Err()
}

// Latest returns the most recent snapshot with its report.
// Returns ErrNoSnapshots when the database is empty.
func (sdb *SnapshotDB) Latest(ctx context.Context) (*Snapshot, error) {
	query := `
	SELECT id, created_at, checksum, entry_count, total_km, report_json
	FROM snapshots
	ORDER BY id DESC
	LIMIT 1
	`

	s, err := sdb.scanSnapshot(sdb.db.QueryRowContext(ctx, query))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNoSnapshots
	}
	return s, err
}

// Get returns the snapshot with the given ID, or nil if it does not exist.
func (sdb *SnapshotDB) Get(ctx context.Context, id int64) (*Snapshot, error) {
	query := `
	SELECT id, created_at, checksum, entry_count, total_km, report_json
	FROM snapshots
	WHERE id = ?
	`

	s, err := sdb.scanSnapshot(sdb.db.QueryRowContext(ctx, query, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	return s, err
}

// latestMeta returns the newest snapshot without decoding its report,
// or nil when there is none.
func latestMeta(ctx context.Context, tx *sql.Tx) (*Snapshot, error) {
	query := `SELECT id, checksum FROM snapshots ORDER BY id DESC LIMIT 1`

	var s Snapshot
	err := tx.QueryRowContext(ctx, query).Scan(&s.ID, &s.Checksum)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get latest snapshot: %w", err)
	}
	return &s, nil
}

// scanSnapshot reads a full snapshot row. sql.ErrNoRows is returned unwrapped.
func (sdb *SnapshotDB) scanSnapshot(row *sql.Row) (*Snapshot, error) {
	var s Snapshot
	var createdAt, reportJSON string

	err := row.Scan(&s.ID, &createdAt, &s.Checksum, &s.EntryCount, &s.TotalKm, &reportJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get snapshot: %w", err)
	}

	var report model.Report
	if err := json.Unmarshal([]byte(reportJSON), &report); err != nil {
		return nil, fmt.Errorf("failed to parse snapshot %d: %w", s.ID, err)
	}
	if report.Entries == nil {
		report.Entries = []model.CityDistance{}
	}

	s.Timestamp = parseTimestamp(createdAt)
	s.Report = &report
	return &s, nil
}

// timestampFormats lists formats accepted by parseTimestamp.
var timestampFormats = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02 15:04:05",
}

// parseTimestamp attempts to parse a timestamp string using multiple formats.
// If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
