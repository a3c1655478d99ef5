package ledger

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"k8s.io/klog"

	"github.com/grossbook-dev/grossbook/internal/model"
)

// ErrWriteFailed marks a durable-storage write that did not complete. A
// purchase whose append fails with it must not be considered recorded.
var ErrWriteFailed = errors.New("grossbook write failed")

// Store is the append-only, file-backed grossbook. All appends are
// serialized through a single mutex; reads take the same mutex so every
// query observes either all or none of an in-flight record.
type Store struct {
	path string
	mu   sync.Mutex
}

// NewStore creates a Store over the grossbook file at path. The file is
// created on first append.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the grossbook file path.
func (s *Store) Path() string {
	return s.path
}

// Append durably writes one record to the grossbook. The record is synced
// to stable storage before Append returns; a crash after a successful
// Append cannot drop the record.
func (s *Store) Append(rec model.Record) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.append(rec); err != nil {
		return fmt.Errorf("%w: %v", ErrWriteFailed, err)
	}
	return nil
}

func (s *Store) append(rec model.Record) error {
	if dir := filepath.Dir(s.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("creating grossbook dir: %w", err)
		}
	}

	isNew := false
	if _, err := os.Stat(s.path); errors.Is(err, fs.ErrNotExist) {
		isNew = true
	}

	f, err := os.OpenFile(s.path, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening grossbook: %w", err)
	}
	defer f.Close()

	if isNew {
		if _, err := fmt.Fprintln(f, Header); err != nil {
			return fmt.Errorf("writing header: %w", err)
		}
	}

	if err := AppendRecords(f, []model.Record{rec}); err != nil {
		return fmt.Errorf("appending record: %w", err)
	}

	if err := f.Sync(); err != nil {
		return fmt.Errorf("syncing grossbook: %w", err)
	}
	return nil
}

// readAll loads the full grossbook. A missing file is an empty grossbook.
// Callers must hold s.mu.
func (s *Store) readAll() ([]model.Record, error) {
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening grossbook %s: %w", s.path, err)
	}
	defer f.Close()

	records, err := ReadRecords(f)
	if err != nil {
		return nil, fmt.Errorf("reading grossbook %s: %w", s.path, err)
	}
	return records, nil
}

// QueryByDate returns all records whose date column exactly matches date.
func (s *Store) QueryByDate(date string) (bool, []model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.readAll()
	if err != nil {
		return false, nil, err
	}

	var rows []model.Record
	for _, rec := range all {
		if rec.Date == date {
			rows = append(rows, rec)
		}
	}
	return len(rows) > 0, rows, nil
}

// QueryByMonth returns all records whose date falls in the same calendar
// month and year as date. Rows with malformed stored dates are excluded
// and reported as a data-integrity warning, never a fatal error.
func (s *Store) QueryByMonth(date string) ([]model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.queryByMonth(date)
}

func (s *Store) queryByMonth(date string) ([]model.Record, error) {
	ref, err := ParseDate(date)
	if err != nil {
		return nil, err
	}

	all, err := s.readAll()
	if err != nil {
		return nil, err
	}

	var rows []model.Record
	skipped := 0
	for _, rec := range all {
		d, err := ParseDate(rec.Date)
		if err != nil {
			skipped++
			continue
		}
		if SameMonth(d, ref) {
			rows = append(rows, rec)
		}
	}
	if skipped > 0 {
		klog.Warningf("grossbook %s: skipped %d rows with malformed dates", s.path, skipped)
	}
	return rows, nil
}

// QueryDutyEntries returns the month's records excluding pocket_money and
// targets, i.e. everything that counts as shared duty spending.
func (s *Store) QueryDutyEntries(date string) (bool, []model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	month, err := s.queryByMonth(date)
	if err != nil {
		return false, nil, err
	}

	var rows []model.Record
	for _, rec := range month {
		if rec.IsDuty() {
			rows = append(rows, rec)
		}
	}
	return len(rows) > 0, rows, nil
}

// QueryPocketMoney returns the month's pocket_money records.
func (s *Store) QueryPocketMoney(date string) (bool, []model.Record, error) {
	return s.queryPurpose(date, model.PurposePocketMoney)
}

// QueryGroceries returns the month's groceries records.
func (s *Store) QueryGroceries(date string) (bool, []model.Record, error) {
	return s.queryPurpose(date, model.PurposeGroceries)
}

func (s *Store) queryPurpose(date, purpose string) (bool, []model.Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	month, err := s.queryByMonth(date)
	if err != nil {
		return false, nil, err
	}

	var rows []model.Record
	for _, rec := range month {
		if rec.Purpose == purpose {
			rows = append(rows, rec)
		}
	}
	return len(rows) > 0, rows, nil
}
