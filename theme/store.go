package theme

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/goliatone/go-attrs/layering"
)

// ErrETagMismatch indicates a concurrent writer updated the stored document
// between load and save.
var ErrETagMismatch = errors.New("theme: etag mismatch")

// Ref identifies one persisted theme document, optionally scoped to a scene.
type Ref struct {
	Scene string
	Name  string
}

// Identifier returns a deterministic storage key for the reference.
func (r Ref) Identifier() (string, error) {
	if r.Name == "" {
		return "", fmt.Errorf("theme: ref needs a theme name")
	}
	if r.Scene == "" {
		return "global/" + r.Name, nil
	}
	return fmt.Sprintf("scene/%s/%s", r.Scene, r.Name), nil
}

// Meta is storage-owned metadata used for trace/audit and concurrency
// control.
type Meta struct {
	SnapshotID string    `json:"snapshot_id,omitempty"`
	ETag       string    `json:"etag,omitempty"`
	UpdatedAt  time.Time `json:"updated_at,omitempty"`
}

// Store loads and saves theme documents.
type Store interface {
	Load(ctx context.Context, ref Ref) (doc Document, meta Meta, ok bool, err error)
	Save(ctx context.Context, ref Ref, doc Document, meta Meta) (Meta, error)
}

// MemoryStore is a minimal in-memory Store intended for tests and examples.
type MemoryStore struct {
	mu      sync.RWMutex
	records map[string]memoryRecord
}

type memoryRecord struct {
	doc  Document
	meta Meta
}

// NewMemoryStore constructs an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{records: map[string]memoryRecord{}}
}

// Load implements Store.
func (s *MemoryStore) Load(_ context.Context, ref Ref) (Document, Meta, bool, error) {
	key, err := ref.Identifier()
	if err != nil {
		return Document{}, Meta{}, false, err
	}

	s.mu.RLock()
	record, ok := s.records[key]
	s.mu.RUnlock()
	if !ok {
		return Document{}, Meta{}, false, nil
	}
	return cloneDocument(record.doc), record.meta, true, nil
}

// Save implements Store. It rejects stale writes via ETag comparison and
// stamps each accepted write with a fresh snapshot ID.
func (s *MemoryStore) Save(_ context.Context, ref Ref, doc Document, meta Meta) (Meta, error) {
	key, err := ref.Identifier()
	if err != nil {
		return Meta{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if existing, ok := s.records[key]; ok && meta.ETag != "" && existing.meta.ETag != meta.ETag {
		return Meta{}, fmt.Errorf("%w: expected %q, got %q", ErrETagMismatch, meta.ETag, existing.meta.ETag)
	}
	saved := Meta{
		SnapshotID: uuid.NewString(),
		ETag:       uuid.NewString(),
		UpdatedAt:  time.Now(),
	}
	s.records[key] = memoryRecord{doc: cloneDocument(doc), meta: saved}
	return saved, nil
}

// Resolver loads stored documents and links them into a parent chain.
type Resolver struct {
	Store Store
}

// Chain loads names (nearest theme first, root last) for scene and returns
// the nearest theme with its ancestry linked. Missing documents are skipped;
// at least one must exist.
func (r Resolver) Chain(ctx context.Context, scene string, names ...string) (*Theme, error) {
	if r.Store == nil {
		return nil, fmt.Errorf("theme: store is required")
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("theme: at least one theme name is required")
	}

	var loaded []*Theme
	for _, name := range names {
		doc, meta, ok, err := r.Store.Load(ctx, Ref{Scene: scene, Name: name})
		if err != nil {
			return nil, fmt.Errorf("theme: load %q for scene %q: %w", name, scene, err)
		}
		if !ok {
			continue
		}
		t, err := FromDocument(doc)
		if err != nil {
			return nil, err
		}
		t.snapshotID = meta.SnapshotID
		loaded = append(loaded, t)
	}
	if len(loaded) == 0 {
		return nil, fmt.Errorf("theme: no documents found for scene %q", scene)
	}

	for i := len(loaded) - 2; i >= 0; i-- {
		loaded[i].parent = loaded[i+1]
	}
	return loaded[0], nil
}

func cloneDocument(doc Document) Document {
	return Document{
		Name:       doc.Name,
		Attributes: layering.Clone(doc.Attributes),
	}
}
