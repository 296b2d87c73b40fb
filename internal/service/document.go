package service

import (
	"bytes"
	"context"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"github.com/yuin/goldmark"
	highlighting "github.com/yuin/goldmark-highlighting/v2"
	meta "github.com/yuin/goldmark-meta"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
	"github.com/yuin/goldmark/renderer/html"

	"otoran/internal/logger"
)

// DocumentService renders the markdown pages shipped with the site
type DocumentService struct {
	docs     fs.FS
	markdown goldmark.Markdown
	logger   *logger.Logger
}

// DocumentInfo contains metadata about a document
type DocumentInfo struct {
	Name        string                 `json:"name"`
	Title       string                 `json:"title"`
	Description string                 `json:"description"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
}

// RenderResult contains the rendered document and metadata
type RenderResult struct {
	HTML     string       `json:"html"`
	Metadata DocumentInfo `json:"metadata"`
}

// NewDocumentService creates a document service reading .md files from docs
func NewDocumentService(docs fs.FS, log *logger.Logger) *DocumentService {
	md := goldmark.New(
		goldmark.WithExtensions(
			extension.GFM,
			meta.Meta,
			highlighting.NewHighlighting(
				highlighting.WithStyle("github"),
			),
		),
		goldmark.WithParserOptions(
			parser.WithAutoHeadingID(),
		),
		goldmark.WithRendererOptions(
			html.WithHardWraps(),
			html.WithXHTML(),
		),
	)

	log.Info("Document service initialized")

	return &DocumentService{
		docs:     docs,
		markdown: md,
		logger:   log,
	}
}

// ErrDocumentNotFound is returned for unknown document names
type ErrDocumentNotFound struct {
	Name string
}

func (e ErrDocumentNotFound) Error() string {
	return fmt.Sprintf("document not found: %s", e.Name)
}

// GetDocument renders a document by name, with or without the .md extension
func (s *DocumentService) GetDocument(ctx context.Context, name string) (*RenderResult, error) {
	// path.Base keeps lookups inside the docs root
	name = strings.TrimSuffix(path.Base(name), ".md")
	if name == "" || name == "." || name == "/" {
		return nil, ErrDocumentNotFound{Name: name}
	}

	content, err := fs.ReadFile(s.docs, name+".md")
	if err != nil {
		s.logger.Debug("Document %s not readable: %v", name, err)
		return nil, ErrDocumentNotFound{Name: name}
	}

	var buf bytes.Buffer
	pctx := parser.NewContext()
	if err := s.markdown.Convert(content, &buf, parser.WithContext(pctx)); err != nil {
		return nil, fmt.Errorf("failed to render markdown: %w", err)
	}

	metaData := meta.Get(pctx)
	if metaData == nil {
		metaData = make(map[string]interface{})
	}

	return &RenderResult{
		HTML: buf.String(),
		Metadata: DocumentInfo{
			Name:        name,
			Title:       getStringFromMeta(metaData, "title", name),
			Description: getStringFromMeta(metaData, "description", ""),
			Metadata:    metaData,
		},
	}, nil
}

// ListDocuments returns the available documents sorted by name
func (s *DocumentService) ListDocuments(ctx context.Context) ([]DocumentInfo, error) {
	entries, err := fs.ReadDir(s.docs, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read docs directory: %w", err)
	}

	var docs []DocumentInfo
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".md") {
			continue
		}

		name := strings.TrimSuffix(entry.Name(), ".md")
		result, err := s.GetDocument(ctx, name)
		if err != nil {
			s.logger.Warn("Skipping document %s: %v", name, err)
			continue
		}
		docs = append(docs, result.Metadata)
	}

	sort.Slice(docs, func(i, j int) bool {
		return docs[i].Name < docs[j].Name
	})

	return docs, nil
}

// Helper function to safely get string values from metadata
func getStringFromMeta(meta map[string]interface{}, key, defaultValue string) string {
	if value, ok := meta[key]; ok {
		if str, ok := value.(string); ok {
			return str
		}
	}
	return defaultValue
}
