package backup

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/backup-toolkit/internal/models"
	"github.com/rs/zerolog"
)

// Store reads and writes one backup document on disk
type Store struct {
	path         string
	keepPrevious bool
	log          zerolog.Logger
}

// NewStore creates a store for the document at path. With keepPrevious the
// file being replaced is copied to <path>.bak first.
func NewStore(path string, keepPrevious bool, log zerolog.Logger) *Store {
	return &Store{
		path:         path,
		keepPrevious: keepPrevious,
		log:          log.With().Str("component", "backup_store").Str("file", path).Logger(),
	}
}

// Path returns the document path
func (s *Store) Path() string {
	return s.path
}

// Load reads and parses the document
func (s *Store) Load() (*models.Document, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read backup file: %w", err)
	}

	var doc models.Document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("failed to parse backup file %s: %w", s.path, err)
	}

	s.log.Info().
		Int("news", len(doc.News)).
		Int("products", len(doc.Products)).
		Int("permissions", len(doc.Permissions)).
		Msg("Backup document loaded")

	return &doc, nil
}

// Save writes the whole document back to the store path, pretty-printed with
// two-space indentation and without escaping non-ASCII or HTML characters.
// The new content is written to a temporary file in the same directory and
// renamed over the old one.
func (s *Store) Save(doc *models.Document) error {
	data, err := Encode(doc)
	if err != nil {
		return fmt.Errorf("failed to encode backup document: %w", err)
	}

	if s.keepPrevious {
		if err := copyFile(s.path, s.path+".bak"); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("failed to keep previous backup: %w", err)
		}
	}

	if err := writeFileAtomic(s.path, data); err != nil {
		return fmt.Errorf("failed to write backup file: %w", err)
	}

	s.log.Info().Int("bytes", len(data)).Msg("Backup document saved")
	return nil
}

// Encode renders a document the way Save writes it
func Encode(doc *models.Document) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// FileName returns the conventional backup file name for t:
// backup_<ISO-8601 UTC with ':' and '.' replaced by '-'>.json
func FileName(t time.Time) string {
	stamp := t.UTC().Format("2006-01-02T15:04:05.000Z")
	return "backup_" + strings.NewReplacer(":", "-", ".", "-").Replace(stamp) + ".json"
}

// Latest returns the newest backup_*.json file in dir. Names embed an ISO
// timestamp, so the lexically greatest name is the newest.
func Latest(dir string) (string, error) {
	matches, err := filepath.Glob(filepath.Join(dir, "backup_*.json"))
	if err != nil {
		return "", err
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no backup_*.json in %s: %w", dir, os.ErrNotExist)
	}
	sort.Strings(matches)
	return matches[len(matches)-1], nil
}

func writeFileAtomic(path string, data []byte) error {
	mode := os.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), ".backup-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, mode); err != nil {
		return err
	}

	return os.Rename(tmpName, path)
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
