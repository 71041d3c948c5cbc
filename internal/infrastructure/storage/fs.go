package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"svw.info/pairing/internal/domain"
	"svw.info/pairing/internal/report"
)

// FS stores one text file per finished session in a results directory.
type FS struct{ dir string }

func NewFS(dir string) *FS { return &FS{dir: dir} }

// Dir returns the results directory.
func (s *FS) Dir() string { return s.dir }

// Save writes the report to a temp file and links it into place. An existing
// file is never overwritten: a name already taken fails with fs.ErrExist.
func (s *FS) Save(ctx context.Context, r *domain.Report) (domain.ReportMeta, error) {
	if r == nil || strings.TrimSpace(r.SessionCode) == "" {
		return domain.ReportMeta{}, errors.New("invalid report: missing session code")
	}
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return domain.ReportMeta{}, fmt.Errorf("storage: mkdir %s: %w", s.dir, err)
	}
	name := report.FileName(r.SessionCode, r.CreatedAt)
	target := filepath.Join(s.dir, name)
	if _, err := os.Stat(target); err == nil {
		return domain.ReportMeta{}, fmt.Errorf("storage: %s: %w", name, fs.ErrExist)
	}

	var buf bytes.Buffer
	if err := report.Render(&buf, r.Results); err != nil {
		return domain.ReportMeta{}, err
	}

	f, err := os.CreateTemp(s.dir, "."+name+"-*.tmp")
	if err != nil {
		return domain.ReportMeta{}, fmt.Errorf("storage: create tmp: %w", err)
	}
	tmp := f.Name()
	if _, err := f.Write(buf.Bytes()); err != nil {
		f.Close()
		os.Remove(tmp)
		return domain.ReportMeta{}, fmt.Errorf("storage: write tmp: %w", err)
	}
	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tmp)
		return domain.ReportMeta{}, fmt.Errorf("storage: sync tmp: %w", err)
	}
	if err := f.Close(); err != nil {
		os.Remove(tmp)
		return domain.ReportMeta{}, fmt.Errorf("storage: close tmp: %w", err)
	}
	// Link fails when target exists; Rename would replace it.
	err = os.Link(tmp, target)
	os.Remove(tmp)
	if err != nil {
		return domain.ReportMeta{}, fmt.Errorf("storage: %s: %w", name, err)
	}
	return domain.ReportMeta{
		Name:        name,
		SessionCode: strings.TrimSpace(r.SessionCode),
		CreatedAt:   r.CreatedAt,
		Size:        int64(buf.Len()),
	}, nil
}

// List returns the saved reports, newest first. A missing directory is empty.
func (s *FS) List(ctx context.Context) ([]domain.ReportMeta, error) {
	ents, err := os.ReadDir(s.dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	var out []domain.ReportMeta
	for _, e := range ents {
		if e.IsDir() {
			continue
		}
		code, ts, ok := report.ParseFileName(e.Name())
		if !ok {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		out = append(out, domain.ReportMeta{
			Name:        e.Name(),
			SessionCode: code,
			CreatedAt:   ts,
			Size:        info.Size(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt.Equal(out[j].CreatedAt) {
			return out[i].Name < out[j].Name
		}
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}

// Load returns the raw text of a saved report.
func (s *FS) Load(ctx context.Context, name string) ([]byte, error) {
	if name == "" || filepath.Base(name) != name || !strings.HasSuffix(name, report.Ext) {
		return nil, fmt.Errorf("storage: invalid report name %q: %w", name, fs.ErrInvalid)
	}
	return os.ReadFile(filepath.Join(s.dir, name))
}
