// Package file provides file-backed catalog sources.
package file

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/davrell/gamerec/types"
)

// Default column headers, matching the catalog export format.
const (
	defaultNameColumn     = "game"
	defaultApprovalColumn = "votes_up_count"
	defaultUsageColumn    = "total_playtime"
)

// CSVSource reads the catalog from a delimited-text file with a header row.
// Column headers are matched case-insensitively; columns beyond the three
// required ones are ignored. Each read parses the file fresh — wrap in a
// CachedSource to avoid re-parsing on every request.
type CSVSource struct {
	path           string
	nameColumn     string
	approvalColumn string
	usageColumn    string
}

// NewCSVSource creates a new CSV file source
func NewCSVSource(config types.SourceConfig) (*CSVSource, error) {
	if config.Path == "" {
		return nil, fmt.Errorf("csv source requires a path")
	}
	if _, err := os.Stat(config.Path); err != nil {
		return nil, fmt.Errorf("csv source: %w", err)
	}

	s := &CSVSource{
		path:           config.Path,
		nameColumn:     defaultNameColumn,
		approvalColumn: defaultApprovalColumn,
		usageColumn:    defaultUsageColumn,
	}

	if v, ok := config.Options["name_column"].(string); ok && v != "" {
		s.nameColumn = v
	}
	if v, ok := config.Options["approval_column"].(string); ok && v != "" {
		s.approvalColumn = v
	}
	if v, ok := config.Options["usage_column"].(string); ok && v != "" {
		s.usageColumn = v
	}

	return s, nil
}

// Items reads and parses the file, returning items in file order.
// Malformed rows (missing fields, non-numeric attributes, negative values)
// are load errors: the recommender itself never validates attributes, so
// bad data must not get past the loader.
func (s *CSVSource) Items(ctx context.Context) ([]types.Item, error) {
	f, err := os.Open(s.path)
	if err != nil {
		return nil, fmt.Errorf("failed to open catalog file: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.TrimLeadingSpace = true

	header, err := r.Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog header: %w", err)
	}

	nameIdx, approvalIdx, usageIdx := -1, -1, -1
	for i, col := range header {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case strings.ToLower(s.nameColumn):
			nameIdx = i
		case strings.ToLower(s.approvalColumn):
			approvalIdx = i
		case strings.ToLower(s.usageColumn):
			usageIdx = i
		}
	}
	if nameIdx < 0 || approvalIdx < 0 || usageIdx < 0 {
		return nil, fmt.Errorf("catalog header missing required columns %q, %q, %q",
			s.nameColumn, s.approvalColumn, s.usageColumn)
	}

	var items []types.Item
	line := 1
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read catalog row: %w", err)
		}
		line++

		item, err := s.parseRecord(record, nameIdx, approvalIdx, usageIdx)
		if err != nil {
			return nil, fmt.Errorf("catalog line %d: %w", line, err)
		}
		items = append(items, item)
	}

	return items, nil
}

func (s *CSVSource) parseRecord(record []string, nameIdx, approvalIdx, usageIdx int) (types.Item, error) {
	max := nameIdx
	if approvalIdx > max {
		max = approvalIdx
	}
	if usageIdx > max {
		max = usageIdx
	}
	if len(record) <= max {
		return types.Item{}, fmt.Errorf("row has %d fields, need at least %d", len(record), max+1)
	}

	name := strings.TrimSpace(record[nameIdx])
	if name == "" {
		return types.Item{}, fmt.Errorf("empty item name")
	}

	approval, err := strconv.ParseFloat(strings.TrimSpace(record[approvalIdx]), 64)
	if err != nil {
		return types.Item{}, fmt.Errorf("invalid approval count %q", record[approvalIdx])
	}
	usage, err := strconv.ParseFloat(strings.TrimSpace(record[usageIdx]), 64)
	if err != nil {
		return types.Item{}, fmt.Errorf("invalid usage time %q", record[usageIdx])
	}
	if approval < 0 || usage < 0 {
		return types.Item{}, fmt.Errorf("negative attribute for item %q", name)
	}

	return types.Item{
		Name:          name,
		ApprovalCount: approval,
		UsageTime:     usage,
	}, nil
}

// Len returns the number of items in the catalog
func (s *CSVSource) Len(ctx context.Context) (int, error) {
	items, err := s.Items(ctx)
	if err != nil {
		return 0, err
	}
	return len(items), nil
}

// Fingerprint describes the current state of the backing file so cached
// snapshots can be invalidated when the file changes.
func (s *CSVSource) Fingerprint(ctx context.Context) (string, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return "", fmt.Errorf("failed to stat catalog file: %w", err)
	}
	return fmt.Sprintf("%s:%d:%d", s.path, info.Size(), info.ModTime().UnixNano()), nil
}

// Close closes the CSV source (no-op, the file is not held open)
func (s *CSVSource) Close() error {
	return nil
}
