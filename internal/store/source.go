package store

import (
	"context"

	"github.com/neorent/forecast/internal/config"
	"github.com/neorent/forecast/internal/domain"
)

// Source supplies the portfolio a report is computed from
type Source interface {
	Load(ctx context.Context) (*domain.Configuration, error)
}

// FileSource reads a portfolio from a YAML document
type FileSource struct {
	Path   string
	parser *config.InputParser
}

// NewFileSource creates a source for the YAML file at path
func NewFileSource(path string) *FileSource {
	return &FileSource{Path: path, parser: config.NewInputParser()}
}

// Load parses and validates the file
func (f *FileSource) Load(ctx context.Context) (*domain.Configuration, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return f.parser.LoadFromFile(f.Path)
}

var (
	_ Source = (*FileSource)(nil)
	_ Source = (*Store)(nil)
)
