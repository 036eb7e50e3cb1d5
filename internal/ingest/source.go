package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// Document is one raw source document available for ingestion.
type Document struct {
	// Name is the base filename, used as the provenance source identifier.
	Name string
	// Path is a local filesystem path the extractors can read.
	Path string
}

// DocumentSource discovers the documents backing each knowledge domain.
type DocumentSource interface {
	// ListDomains returns the domain identifiers with source documents.
	ListDomains(ctx context.Context) ([]string, error)
	// ListDocuments returns the documents for one domain.
	ListDocuments(ctx context.Context, domainID string) ([]Document, error)
}

var supportedExtensions = map[string]bool{
	".pdf": true,
	".txt": true,
	".md":  true,
}

// localDirSource reads documents from per-domain subdirectories of a root
// directory.
type localDirSource struct {
	root string
}

// NewLocalDirSource creates a DocumentSource over a local directory tree.
func NewLocalDirSource(root string) DocumentSource {
	return &localDirSource{root: root}
}

func (s *localDirSource) ListDomains(ctx context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		return nil, fmt.Errorf("failed to read knowledge base path %s: %w", s.root, err)
	}

	var domains []string
	for _, entry := range entries {
		if entry.IsDir() {
			domains = append(domains, entry.Name())
		}
	}
	sort.Strings(domains)
	return domains, nil
}

func (s *localDirSource) ListDocuments(ctx context.Context, domainID string) ([]Document, error) {
	dir := filepath.Join(s.root, domainID)
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("domain path does not exist: %s", dir)
		}
		return nil, fmt.Errorf("failed to read domain path %s: %w", dir, err)
	}

	var docs []Document
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		if !supportedExtensions[strings.ToLower(filepath.Ext(entry.Name()))] {
			continue
		}
		docs = append(docs, Document{
			Name: entry.Name(),
			Path: filepath.Join(dir, entry.Name()),
		})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}

// ObjectStore is the object-storage capability the S3-backed source needs.
type ObjectStore interface {
	ListPrefixes(ctx context.Context) ([]string, error)
	ListObjects(ctx context.Context, prefix string) ([]string, error)
	Download(ctx context.Context, key, destPath string) error
}

// s3Source stages documents from an object-storage bucket into a local
// scratch directory before extraction. Keys are laid out as
// <domain>/<filename>.
type s3Source struct {
	store      ObjectStore
	scratchDir string
}

// NewS3Source creates a DocumentSource over an object-storage bucket.
func NewS3Source(store ObjectStore, scratchDir string) DocumentSource {
	return &s3Source{store: store, scratchDir: scratchDir}
}

func (s *s3Source) ListDomains(ctx context.Context) ([]string, error) {
	prefixes, err := s.store.ListPrefixes(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list bucket prefixes: %w", err)
	}

	domains := make([]string, 0, len(prefixes))
	for _, p := range prefixes {
		domains = append(domains, strings.TrimSuffix(p, "/"))
	}
	sort.Strings(domains)
	return domains, nil
}

func (s *s3Source) ListDocuments(ctx context.Context, domainID string) ([]Document, error) {
	keys, err := s.store.ListObjects(ctx, domainID+"/")
	if err != nil {
		return nil, fmt.Errorf("failed to list objects for %s: %w", domainID, err)
	}

	dir := filepath.Join(s.scratchDir, domainID)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create scratch dir: %w", err)
	}

	var docs []Document
	for _, key := range keys {
		name := filepath.Base(key)
		if !supportedExtensions[strings.ToLower(filepath.Ext(name))] {
			continue
		}
		dest := filepath.Join(dir, name)
		if err := s.store.Download(ctx, key, dest); err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", key, err)
		}
		docs = append(docs, Document{Name: name, Path: dest})
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].Name < docs[j].Name })
	return docs, nil
}
