package hokan

import (
	"encoding/json"
	"fmt"
	"path"
	"sync"

	"github.com/gdbu/scribe"
	"github.com/hatchify/errors"
	"github.com/jmoiron/sqlx"

	// Registers the pure-Go sqlite driver
	_ "modernc.org/sqlite"
)

const createEntriesTable = `
CREATE TABLE IF NOT EXISTS entries (
	id        INTEGER PRIMARY KEY AUTOINCREMENT,
	name      TEXT NOT NULL,
	file_ext  TEXT NOT NULL,
	mime_type TEXT NOT NULL,
	size      INTEGER NOT NULL,
	info      TEXT NOT NULL DEFAULT '',
	payload   BLOB NOT NULL
)`

const insertEntry = `
INSERT INTO entries (name, file_ext, mime_type, size, info, payload)
VALUES (?, ?, ?, ?, ?, ?)`

var _ Archive = &DBArchive{}

// NewDBArchive will initialize a new DBArchive persisting entries as rows
// within a sqlite database at <dir>/<name>.db. Added entries are inserted
// within a single transaction which Export commits.
func NewDBArchive(o Options, e Exporter) (dp *DBArchive, err error) {
	if err = o.Validate(); err != nil {
		return
	}

	if e == nil {
		err = ErrNilExporter
		return
	}

	var d DBArchive
	// Set output prefix
	prefix := fmt.Sprintf("DBArchive (%v)", o.FullName())
	// Initialize DBArchive output
	d.out = scribe.New(prefix)
	d.e = e
	d.filename = path.Join(o.Dir, o.FullName()+".db")

	// Open target database
	// Note: This will create the database if it does not exist
	if d.db, err = sqlx.Open("sqlite", d.filename); err != nil {
		err = fmt.Errorf("error opening database: %v", err)
		return
	}

	// Whenever function ends, close the archive if an error was encountered
	defer func() { d.closeIfError(err) }()

	if _, err = d.db.Exec(createEntriesTable); err != nil {
		err = fmt.Errorf("error creating entries table: %v", err)
		return
	}

	// Begin the accumulation transaction
	if d.tx, err = d.db.Beginx(); err != nil {
		err = fmt.Errorf("error beginning transaction: %v", err)
		return
	}

	// Associate returning pointer to created DBArchive
	dp = &d
	return
}

// DBArchive collects values and finalizes them as rows within a sqlite
// database. A DBArchive is single-use, after Export has been called both
// Add and Export will return ErrIsClosed.
type DBArchive struct {
	mux sync.Mutex

	// Output logger
	out *scribe.Scribe

	// Exporter used to convert added values
	e Exporter

	db *sqlx.DB
	tx *sqlx.Tx

	// Location of database
	filename string
	// Count of added entries, used for derived names
	count int

	closed bool
}

// Add will export the provided value through the bound Exporter and insert
// the resulting entry within the archive transaction
func (d *DBArchive) Add(value interface{}, opts ...AddOption) (err error) {
	d.mux.Lock()
	defer d.mux.Unlock()

	// Check to see if the DBArchive is closed
	if d.closed {
		return errors.ErrIsClosed
	}

	c := makeAddConfig(opts)

	var (
		payload []byte
		m       Metadata
	)

	// Export value through the bound exporter
	if payload, m, err = d.e.Export(value, c.format); err != nil {
		err = fmt.Errorf("error exporting value: %v", err)
		return
	}

	name := c.name
	if len(name) == 0 {
		name = fmt.Sprintf("entry-%d", d.count)
	}

	var info []byte
	if len(c.info) > 0 {
		// Persist the per-entry pairs as a JSON object
		if info, err = json.Marshal(c.info); err != nil {
			err = fmt.Errorf("error encoding entry info: %v", err)
			return
		}
	}

	if _, err = d.tx.Exec(insertEntry, name, m.FileExt, m.MimeType, m.Size, string(info), payload); err != nil {
		err = fmt.Errorf("error inserting entry <%s>: %v", name, err)
		return
	}

	d.count++
	return
}

// Export will commit the accumulated entries and close the database. The
// archive is terminal after this call, even when an error is returned.
func (d *DBArchive) Export() (err error) {
	d.mux.Lock()
	defer d.mux.Unlock()

	// Check to see if the DBArchive is closed
	if d.closed {
		return errors.ErrIsClosed
	}

	// Mark archive as closed
	d.closed = true

	var errs errors.ErrorList
	errs.Push(d.tx.Commit())
	errs.Push(d.db.Close())
	if err = errs.Err(); err != nil {
		return
	}

	d.out.Notificationf("exported %d entries to <%s>", d.count, d.filename)
	return
}

func (d *DBArchive) closeIfError(err error) {
	if err == nil {
		return
	}

	if d.tx != nil {
		if rollbackErr := d.tx.Rollback(); rollbackErr != nil {
			d.out.Errorf("error rolling back transaction: %v", rollbackErr)
		}
	}

	if closeErr := d.db.Close(); closeErr != nil {
		d.out.Errorf("error closing database: %v", closeErr)
	}
}

// ArchivedEntry represents one finalized row within a DBArchive database
type ArchivedEntry struct {
	ID       int64  `db:"id"`
	Name     string `db:"name"`
	FileExt  string `db:"file_ext"`
	MimeType string `db:"mime_type"`
	Size     int64  `db:"size"`
	Info     string `db:"info"`
	Payload  []byte `db:"payload"`
}
