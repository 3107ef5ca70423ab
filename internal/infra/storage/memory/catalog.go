package memory

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sort"
	"sync"

	"balilove/internal/domain/catalog"
)

// CatalogRepository keeps package templates in memory for local runs and tests.
type CatalogRepository struct {
	mu        sync.RWMutex
	templates map[catalog.TemplateID]*catalog.PackageTemplate
}

// NewCatalogRepository builds an empty repository.
func NewCatalogRepository() *CatalogRepository {
	return &CatalogRepository{
		templates: make(map[catalog.TemplateID]*catalog.PackageTemplate),
	}
}

// Template returns a template or catalog.ErrTemplateNotFound.
func (r *CatalogRepository) Template(_ context.Context, id catalog.TemplateID) (*catalog.PackageTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	tmpl, ok := r.templates[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", catalog.ErrTemplateNotFound, id)
	}
	return tmpl, nil
}

// Templates lists every template ordered by id.
func (r *CatalogRepository) Templates(_ context.Context) ([]*catalog.PackageTemplate, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*catalog.PackageTemplate, 0, len(r.templates))
	for _, t := range r.templates {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

// Save stores or replaces a template.
func (r *CatalogRepository) Save(_ context.Context, tmpl *catalog.PackageTemplate) error {
	if tmpl == nil {
		return nil
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.templates[tmpl.ID] = tmpl
	return nil
}

// LoadTemplates decodes a JSON array of template documents, validating
// every product, and saves them.
func (r *CatalogRepository) LoadTemplates(ctx context.Context, src io.Reader) (int, error) {
	var docs []catalog.TemplateDocument
	if err := json.NewDecoder(src).Decode(&docs); err != nil {
		return 0, fmt.Errorf("memory: decode catalog: %w", err)
	}
	for _, doc := range docs {
		if doc.ID == "" {
			return 0, fmt.Errorf("memory: template %q has no id", doc.Name)
		}
		for i, item := range doc.Items {
			if err := item.Product.Validate(); err != nil {
				return 0, fmt.Errorf("memory: template %s item %d: %w", doc.ID, i, err)
			}
		}
	}
	for _, doc := range docs {
		if err := r.Save(ctx, doc.ToTemplate()); err != nil {
			return 0, err
		}
	}
	return len(docs), nil
}

// LoadFile is LoadTemplates over a fixtures file.
func (r *CatalogRepository) LoadFile(ctx context.Context, path string) (int, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, err
	}
	defer f.Close()
	return r.LoadTemplates(ctx, f)
}

var _ catalog.Repository = (*CatalogRepository)(nil)
