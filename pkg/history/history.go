// Package history persists generation results and user ratings as CSV files.
// CSV keeps the records directly openable in Excel; files are written with a
// UTF-8 BOM so Chinese text displays correctly there.
package history

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"

	apperrors "github.com/shirleylv/article-seo-tool/pkg/errors"
)

const timeLayout = "2006-01-02 15:04:05"

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

var historyHeader = []string{"ID", "时间", "标题", "摘要", "关键词", "slug", "文章附加", "AI模型"}

var ratingsHeader = []string{"ID", "时间", "模型", "标题", "摘要", "关键词", "Slug", "评分"}

// Record is one generation result row.
type Record struct {
	ID         string
	Time       time.Time
	Title      string
	Summary    string
	Keywords   string
	Slug       string
	SourceFile string
	Model      string
}

// Rating is one user score row, 1 to 5.
type Rating struct {
	ID       string
	Time     time.Time
	Provider string
	Title    string
	Summary  string
	Keywords string
	Slug     string
	Score    int
}

// Store appends and reads the history and ratings CSV files. A single mutex
// serializes all file access; the tool is single-operator so contention is
// not a concern.
type Store struct {
	mu          sync.Mutex
	path        string
	ratingsPath string
	now         func() time.Time
}

// NewStore opens a store rooted at the given CSV paths, creating the history
// file with its header row when absent.
func NewStore(path, ratingsPath string) (*Store, error) {
	s := &Store{path: path, ratingsPath: ratingsPath, now: time.Now}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeStorageWrite, "creating history directory")
	}
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := writeHeader(path, historyHeader); err != nil {
			return nil, err
		}
	}
	return s, nil
}

// SetClock overrides the timestamp source, for tests.
func (s *Store) SetClock(now func() time.Time) {
	s.now = now
}

// Path returns the history CSV location, for file downloads.
func (s *Store) Path() string {
	return s.path
}

// Append writes one generation record. ID and Time are assigned when unset.
func (s *Store) Append(rec Record) (Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if rec.ID == "" {
		rec.ID = ulid.Make().String()
	}
	if rec.Time.IsZero() {
		rec.Time = s.now()
	}
	row := []string{
		rec.ID,
		rec.Time.Format(timeLayout),
		rec.Title,
		rec.Summary,
		rec.Keywords,
		rec.Slug,
		rec.SourceFile,
		rec.Model,
	}
	if err := appendRow(s.path, historyHeader, row); err != nil {
		return Record{}, err
	}
	return rec, nil
}

// List returns all generation records, oldest first.
func (s *Store) List() ([]Record, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := readRows(s.path)
	if err != nil {
		return nil, err
	}
	records := make([]Record, 0, len(rows))
	for _, row := range rows {
		if len(row) < len(historyHeader) {
			continue
		}
		ts, err := time.Parse(timeLayout, row[1])
		if err != nil {
			continue
		}
		records = append(records, Record{
			ID:         row[0],
			Time:       ts,
			Title:      row[2],
			Summary:    row[3],
			Keywords:   row[4],
			Slug:       row[5],
			SourceFile: row[6],
			Model:      row[7],
		})
	}
	return records, nil
}

// Reset discards all history and recreates the empty file with its header.
func (s *Store) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageWrite, "removing history file")
	}
	return writeHeader(s.path, historyHeader)
}

// AddRating records one user score. The ratings file is created lazily.
func (s *Store) AddRating(r Rating) (Rating, error) {
	if r.Score < 1 || r.Score > 5 {
		return Rating{}, apperrors.New(apperrors.ErrCodeInvalidInput,
			fmt.Sprintf("rating must be between 1 and 5, got %d", r.Score))
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if r.ID == "" {
		r.ID = ulid.Make().String()
	}
	if r.Time.IsZero() {
		r.Time = s.now()
	}
	row := []string{
		r.ID,
		r.Time.Format(timeLayout),
		r.Provider,
		r.Title,
		r.Summary,
		r.Keywords,
		r.Slug,
		strconv.Itoa(r.Score),
	}
	if err := appendRow(s.ratingsPath, ratingsHeader, row); err != nil {
		return Rating{}, err
	}
	return r, nil
}

func writeHeader(path string, header []string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageWrite, "creating csv file")
	}
	defer f.Close()

	if _, err := f.Write(utf8BOM); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageWrite, "writing csv header")
	}
	w := csv.NewWriter(f)
	if err := w.Write(header); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageWrite, "writing csv header")
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageWrite, "writing csv header")
	}
	return nil
}

func appendRow(path string, header, row []string) error {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return apperrors.Wrap(err, apperrors.ErrCodeStorageWrite, "creating csv directory")
		}
		if err := writeHeader(path, header); err != nil {
			return err
		}
	}
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageWrite, "opening csv file")
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageWrite, "appending csv row")
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeStorageWrite, "appending csv row")
	}
	return nil
}

func readRows(path string) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, apperrors.Wrap(err, apperrors.ErrCodeStorageRead, "reading csv file")
	}
	data = bytes.TrimPrefix(data, utf8BOM)

	r := csv.NewReader(bytes.NewReader(data))
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeStorageRead, "parsing csv file")
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}
