package source

import (
	"fmt"
	"os"

	"github.com/wallact/wallact/pkg/models"
	"github.com/wallact/wallact/pkg/parser"
)

// File reads a Wallos JSON export from disk.
type File struct {
	path   string
	parser *parser.Parser
}

func NewFile(path string, p *parser.Parser) *File {
	return &File{
		path:   path,
		parser: p,
	}
}

func (f *File) Subscriptions() ([]models.Subscription, error) {
	data, err := os.ReadFile(f.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read export file %s: %w", f.path, err)
	}

	raws, err := decodeRecords(data, "subscriptions")
	if err != nil {
		return nil, err
	}

	return f.parser.NormalizeAll(raws), nil
}
