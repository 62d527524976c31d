package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/paladino/propiedades-web/internal/models"
)

// ErrInquiryNotFound is returned when no archived inquiry has the given id.
var ErrInquiryNotFound = errors.New("inquiry not found")

// Storage archives contact inquiries as JSON files under basePath/YYYY/MM/DD.
type Storage struct {
	basePath string
	mu       sync.RWMutex
}

func NewStorage(basePath string) (*Storage, error) {
	// Create base directory if it doesn't exist
	if err := os.MkdirAll(basePath, 0755); err != nil {
		return nil, fmt.Errorf("failed to create storage directory: %w", err)
	}

	return &Storage{
		basePath: basePath,
	}, nil
}

// SaveInquiry writes the inquiry to disk. The first save picks a dated file
// path from ReceivedAt; later saves overwrite the same file.
func (s *Storage) SaveInquiry(ctx context.Context, item *models.Inquiry) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	default:
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if item.FilePath == "" {
		// Create dated directory (YYYY/MM/DD)
		datePath := filepath.Join(s.basePath, item.ReceivedAt.Format("2006/01/02"))
		if err := os.MkdirAll(datePath, 0755); err != nil {
			return fmt.Errorf("failed to create date directory: %w", err)
		}
		filename := fmt.Sprintf("%d_%s.json", item.ReceivedAt.Unix(), item.ID)
		item.FilePath = filepath.Join(datePath, filename)
	}

	data, err := json.MarshalIndent(item, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal inquiry: %w", err)
	}

	// Write through a temp file so readers never see a partial document
	tmp := item.FilePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0644); err != nil {
		return fmt.Errorf("failed to write inquiry file: %w", err)
	}
	if err := os.Rename(tmp, item.FilePath); err != nil {
		return fmt.Errorf("failed to move inquiry file into place: %w", err)
	}

	return nil
}

// GetInquiry retrieves an inquiry by its id.
func (s *Storage) GetInquiry(ctx context.Context, id string) (*models.Inquiry, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var found *models.Inquiry
	suffix := "_" + id + ".json"
	err := filepath.WalkDir(s.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), suffix) {
			return nil
		}

		item, err := readInquiry(path)
		if err != nil {
			return err
		}
		found = item
		return fs.SkipAll
	})
	if err != nil {
		return nil, fmt.Errorf("error walking the path: %w", err)
	}

	if found == nil {
		return nil, fmt.Errorf("%w: %s", ErrInquiryNotFound, id)
	}
	return found, nil
}

// ListInquiries returns a page of inquiries, newest first. Pages start at 1.
func (s *Storage) ListInquiries(ctx context.Context, page, pageSize int) ([]*models.Inquiry, error) {
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	default:
	}

	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = 20
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	// Get all JSON files
	var files []string
	err := filepath.WalkDir(s.basePath, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".json") {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("error walking the path: %w", err)
	}

	// Dated directories and the unix-time prefix sort chronologically
	sort.Sort(sort.Reverse(sort.StringSlice(files)))

	// Apply pagination
	start := (page - 1) * pageSize
	if start >= len(files) {
		return []*models.Inquiry{}, nil
	}
	end := start + pageSize
	if end > len(files) {
		end = len(files)
	}

	items := make([]*models.Inquiry, 0, end-start)
	for _, file := range files[start:end] {
		item, err := readInquiry(file)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, nil
}

func readInquiry(path string) (*models.Inquiry, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", path, err)
	}

	var item models.Inquiry
	if err := json.Unmarshal(data, &item); err != nil {
		return nil, fmt.Errorf("failed to unmarshal inquiry %s: %w", path, err)
	}
	item.FilePath = path
	return &item, nil
}
