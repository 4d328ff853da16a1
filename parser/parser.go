package parser

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/spf13/afero"

	"github.com/wordgrain/wgtools/wgerrors"
)

// DefaultMaxFileSize is the default limit on input size (10 MiB).
const DefaultMaxFileSize int64 = 10 << 20

// Parser loads JSON and YAML documents.
type Parser struct {
	// FS is the filesystem files are read from.
	// If nil, the operating system filesystem is used.
	FS afero.Fs
	// Logger is the structured logger for debug output.
	// If nil, logging is disabled (default)
	Logger Logger
	// MaxFileSize is the maximum input size in bytes.
	// Default: 10 MiB
	MaxFileSize int64
}

// New creates a new Parser instance with default settings
func New() *Parser {
	return &Parser{
		FS:          afero.NewOsFs(),
		MaxFileSize: DefaultMaxFileSize,
	}
}

func (p *Parser) log() Logger {
	return OrNop(p.Logger)
}

func (p *Parser) fs() afero.Fs {
	if p.FS != nil {
		return p.FS
	}
	return afero.NewOsFs()
}

func (p *Parser) maxFileSize() int64 {
	if p.MaxFileSize > 0 {
		return p.MaxFileSize
	}
	return DefaultMaxFileSize
}

// SourceFormat represents the format of the source document
type SourceFormat string

const (
	// SourceFormatYAML indicates the source was in YAML format
	SourceFormatYAML SourceFormat = "yaml"
	// SourceFormatJSON indicates the source was in JSON format
	SourceFormatJSON SourceFormat = "json"
	// SourceFormatUnknown indicates the source format could not be determined
	SourceFormatUnknown SourceFormat = "unknown"
)

// ParseResult contains a loaded document and metadata about its source.
//
// Callers should treat Data as read-only; it may be cached and shared.
type ParseResult struct {
	// SourcePath is the path the document was read from.
	// For readers and byte slices it is "ParseReader.json", "ParseBytes.yaml" and so on.
	SourcePath string
	// SourceFormat is the format of the source (JSON or YAML)
	SourceFormat SourceFormat
	// Data is the decoded value tree
	Data any
	// LoadTime is the time taken to read the source
	LoadTime time.Duration
	// SourceSize is the size of the source data in bytes
	SourceSize int64
}

// Object returns the root of the document when it is a JSON object.
func (pr *ParseResult) Object() (*Object, bool) {
	obj, ok := pr.Data.(*Object)
	return obj, ok
}

// Parse reads and decodes the file at path.
func (p *Parser) Parse(path string) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := p.readFile(path)
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, err
	}

	format := detectFormatFromPath(path)
	if format == SourceFormatUnknown {
		format = detectFormatFromContent(data)
	}
	res, err := p.decode(data, format, path)
	if err != nil {
		return nil, err
	}
	res.SourcePath = path
	res.LoadTime = loadTime
	p.log().Debug("loaded document", "path", path, "format", res.SourceFormat, "size", res.SourceSize)
	return res, nil
}

// ParseReader decodes a document from r.
// The SourcePath of the result is "ParseReader.json" or "ParseReader.yaml".
func (p *Parser) ParseReader(r io.Reader) (*ParseResult, error) {
	loadStart := time.Now()
	data, err := p.readAll(r, "ParseReader")
	loadTime := time.Since(loadStart)
	if err != nil {
		return nil, err
	}
	res, err := p.decode(data, detectFormatFromContent(data), "")
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseReader." + string(res.SourceFormat)
	res.LoadTime = loadTime
	return res, nil
}

// ParseBytes decodes a document held in memory.
// The SourcePath of the result is "ParseBytes.json" or "ParseBytes.yaml".
func (p *Parser) ParseBytes(data []byte) (*ParseResult, error) {
	if int64(len(data)) > p.maxFileSize() {
		return nil, p.limitError(int64(len(data)))
	}
	res, err := p.decode(data, detectFormatFromContent(data), "")
	if err != nil {
		return nil, err
	}
	res.SourcePath = "ParseBytes." + string(res.SourceFormat)
	return res, nil
}

func (p *Parser) readFile(path string) ([]byte, error) {
	f, err := p.fs().Open(path)
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read file: %w", err)
	}
	defer func() { _ = f.Close() }()
	return p.readAll(f, path)
}

// readAll reads r up to the size limit.
func (p *Parser) readAll(r io.Reader, source string) ([]byte, error) {
	limit := p.maxFileSize()
	data, err := io.ReadAll(io.LimitReader(r, limit+1))
	if err != nil {
		return nil, fmt.Errorf("parser: failed to read %s: %w", source, err)
	}
	if int64(len(data)) > limit {
		return nil, p.limitError(int64(len(data)))
	}
	return data, nil
}

func (p *Parser) limitError(actual int64) error {
	return &wgerrors.ResourceLimitError{
		ResourceType: "file size",
		Limit:        p.maxFileSize(),
		Actual:       actual,
		Message:      "input is larger than " + FormatBytes(p.maxFileSize()),
	}
}

// decode parses data in the given format. Unknown formats are treated as YAML,
// which is a superset of JSON.
func (p *Parser) decode(data []byte, format SourceFormat, path string) (*ParseResult, error) {
	var (
		v   any
		err error
	)
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, &wgerrors.ParseError{Path: path, Message: "document is empty"}
	}
	switch format {
	case SourceFormatJSON:
		v, err = DecodeJSON(data)
	default:
		format = SourceFormatYAML
		v, err = DecodeYAML(data)
	}
	if err != nil {
		var pe *wgerrors.ParseError
		if errors.As(err, &pe) && pe.Path == "" {
			pe.Path = path
		}
		return nil, err
	}
	return &ParseResult{
		SourceFormat: format,
		Data:         v,
		SourceSize:   int64(len(data)),
	}, nil
}

// IsDocumentPath reports whether path has an extension the parser recognises.
func IsDocumentPath(path string) bool {
	return detectFormatFromPath(filepath.Base(path)) != SourceFormatUnknown
}
