package portfolio

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"weddingfolio/internal/domain"
	"weddingfolio/internal/domain/models"
	"weddingfolio/internal/domain/repositories"
	"weddingfolio/internal/domain/services"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// memFolderStore is an in-memory folder table with a (owner, parent, name)
// uniqueness constraint.
type memFolderStore struct {
	mu      sync.Mutex
	seq     int
	folders map[string]*models.Folder // key -> folder
	byID    map[string]*models.Folder

	creates   int
	conflicts int

	// createErr, when set, is consulted before every insert
	createErr func(name string) error
	// blindFinds makes FindByName report "absent" regardless of contents
	blindFinds bool
	// findHook runs before every lookup; returning true hides existing rows
	findHook func(key string) bool
}

func newMemFolderStore() *memFolderStore {
	return &memFolderStore{
		folders: make(map[string]*models.Folder),
		byID:    make(map[string]*models.Folder),
	}
}

func folderKey(ownerID string, parentID *string, name string) string {
	parent := "<root>"
	if parentID != nil {
		parent = *parentID
	}
	return ownerID + "|" + parent + "|" + name
}

func (s *memFolderStore) FindByName(ctx context.Context, ownerID string, parentID *string, name string) (*models.Folder, error) {
	key := folderKey(ownerID, parentID, name)
	blind := false
	if s.findHook != nil {
		blind = s.findHook(key)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if blind || s.blindFinds {
		return nil, nil
	}
	f, ok := s.folders[key]
	if !ok {
		return nil, nil
	}
	copied := *f
	return &copied, nil
}

func (s *memFolderStore) Create(ctx context.Context, folder *models.Folder) error {
	if s.createErr != nil {
		if err := s.createErr(folder.Name); err != nil {
			return err
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.creates++

	key := folderKey(folder.OwnerID, folder.ParentID, folder.Name)
	if _, exists := s.folders[key]; exists {
		s.conflicts++
		return fmt.Errorf("folder '%s': %w", folder.Name, domain.ErrConflict)
	}

	s.seq++
	folder.ID = fmt.Sprintf("folder-%d", s.seq)
	folder.CreatedAt = time.Now()
	stored := *folder
	s.folders[key] = &stored
	s.byID[stored.ID] = &stored
	return nil
}

func (s *memFolderStore) GetByID(ctx context.Context, id, ownerID string) (*models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	f, ok := s.byID[id]
	if !ok || f.OwnerID != ownerID {
		return nil, fmt.Errorf("folder %s: %w", id, domain.ErrNotFound)
	}
	copied := *f
	return &copied, nil
}

func (s *memFolderStore) ListChildren(ctx context.Context, parentID *string, ownerID string) ([]models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Folder
	for _, f := range s.byID {
		if f.OwnerID != ownerID {
			continue
		}
		if (parentID == nil && f.ParentID == nil) || (parentID != nil && f.ParentID != nil && *f.ParentID == *parentID) {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (s *memFolderStore) ListAll(ctx context.Context, ownerID string) ([]models.Folder, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Folder
	for _, f := range s.byID {
		if f.OwnerID == ownerID {
			out = append(out, *f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (s *memFolderStore) GetPath(ctx context.Context, folderID, ownerID string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var parts []string
	id := &folderID
	for id != nil {
		f, ok := s.byID[*id]
		if !ok || f.OwnerID != ownerID {
			return "", fmt.Errorf("folder %s: %w", *id, domain.ErrNotFound)
		}
		parts = append([]string{f.Name}, parts...)
		id = f.ParentID
	}
	return strings.Join(parts, "/"), nil
}

func (s *memFolderStore) count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byID)
}

var _ repositories.FolderRepository = (*memFolderStore)(nil)

// memWeddingRepo is an in-memory wedding table
type memWeddingRepo struct {
	mu       sync.Mutex
	seq      int
	weddings map[string]*models.Wedding
}

func newMemWeddingRepo() *memWeddingRepo {
	return &memWeddingRepo{weddings: make(map[string]*models.Wedding)}
}

func (r *memWeddingRepo) Create(ctx context.Context, w *models.Wedding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	w.ID = fmt.Sprintf("wedding-%d", r.seq)
	stored := *w
	r.weddings[w.ID] = &stored
	return nil
}

func (r *memWeddingRepo) GetByID(ctx context.Context, id, ownerID string) (*models.Wedding, error) {
	w, err := r.GetByIDOnly(ctx, id)
	if err != nil {
		return nil, err
	}
	if w.OwnerID != ownerID {
		return nil, fmt.Errorf("wedding %s: %w", id, domain.ErrNotFound)
	}
	return w, nil
}

func (r *memWeddingRepo) GetByIDOnly(ctx context.Context, id string) (*models.Wedding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.weddings[id]
	if !ok {
		return nil, fmt.Errorf("wedding %s: %w", id, domain.ErrNotFound)
	}
	copied := *w
	return &copied, nil
}

func (r *memWeddingRepo) List(ctx context.Context, ownerID string) ([]models.Wedding, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Wedding
	for _, w := range r.weddings {
		if w.OwnerID == ownerID {
			out = append(out, *w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memWeddingRepo) Update(ctx context.Context, w *models.Wedding) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.weddings[w.ID]; !ok {
		return fmt.Errorf("wedding %s: %w", w.ID, domain.ErrNotFound)
	}
	stored := *w
	r.weddings[w.ID] = &stored
	return nil
}

func (r *memWeddingRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	w, ok := r.weddings[id]
	if !ok || w.OwnerID != ownerID {
		return fmt.Errorf("wedding %s: %w", id, domain.ErrNotFound)
	}
	delete(r.weddings, id)
	return nil
}

// memMediaRepo is an in-memory media table
type memMediaRepo struct {
	mu    sync.Mutex
	seq   int
	media map[string]*models.Media
}

func newMemMediaRepo() *memMediaRepo {
	return &memMediaRepo{media: make(map[string]*models.Media)}
}

func (r *memMediaRepo) Create(ctx context.Context, m *models.Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.seq++
	m.ID = fmt.Sprintf("media-%d", r.seq)
	stored := *m
	r.media[m.ID] = &stored
	return nil
}

func (r *memMediaRepo) GetByID(ctx context.Context, id, ownerID string) (*models.Media, error) {
	m, err := r.GetByIDOnly(ctx, id)
	if err != nil {
		return nil, err
	}
	if m.OwnerID != ownerID {
		return nil, fmt.Errorf("media %s: %w", id, domain.ErrNotFound)
	}
	return m, nil
}

func (r *memMediaRepo) GetByIDOnly(ctx context.Context, id string) (*models.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.media[id]
	if !ok {
		return nil, fmt.Errorf("media %s: %w", id, domain.ErrNotFound)
	}
	copied := *m
	return &copied, nil
}

func (r *memMediaRepo) ListByWedding(ctx context.Context, weddingID, ownerID string) ([]models.Media, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []models.Media
	for _, m := range r.media {
		if m.WeddingID == weddingID && m.OwnerID == ownerID {
			out = append(out, *m)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *memMediaRepo) UpdateClassification(ctx context.Context, m *models.Media) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.media[m.ID]; !ok {
		return fmt.Errorf("media %s: %w", m.ID, domain.ErrNotFound)
	}
	stored := *m
	r.media[m.ID] = &stored
	return nil
}

func (r *memMediaRepo) MoveToFolder(ctx context.Context, weddingID, ownerID, folderID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, m := range r.media {
		if m.WeddingID == weddingID && m.OwnerID == ownerID {
			id := folderID
			m.FolderID = &id
		}
	}
	return nil
}

func (r *memMediaRepo) Delete(ctx context.Context, id, ownerID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	m, ok := r.media[id]
	if !ok || m.OwnerID != ownerID {
		return fmt.Errorf("media %s: %w", id, domain.ErrNotFound)
	}
	delete(r.media, id)
	return nil
}

func (r *memMediaRepo) DeleteByWedding(ctx context.Context, weddingID, ownerID string) ([]string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var keys []string
	for id, m := range r.media {
		if m.WeddingID == weddingID && m.OwnerID == ownerID {
			keys = append(keys, m.ObjectKey)
			delete(r.media, id)
		}
	}
	sort.Strings(keys)
	return keys, nil
}

// memBlobStore is an in-memory object store
type memBlobStore struct {
	mu      sync.Mutex
	objects map[string][]byte
	putErr  error
}

func newMemBlobStore() *memBlobStore {
	return &memBlobStore{objects: make(map[string][]byte)}
}

func (b *memBlobStore) Put(ctx context.Context, key string, body io.Reader, size int64, contentType string) error {
	if b.putErr != nil {
		return b.putErr
	}
	var buf bytes.Buffer
	if _, err := io.Copy(&buf, body); err != nil {
		return err
	}
	b.mu.Lock()
	defer b.mu.Unlock()
	b.objects[key] = buf.Bytes()
	return nil
}

func (b *memBlobStore) PresignGet(ctx context.Context, key string) (string, error) {
	return "https://blobs.test/" + key + "?sig=1", nil
}

func (b *memBlobStore) Remove(ctx context.Context, key string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.objects, key)
	return nil
}

func (b *memBlobStore) has(key string) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	_, ok := b.objects[key]
	return ok
}

// stubClassifier returns a canned analysis and records the requests it saw
type stubClassifier struct {
	mu       sync.Mutex
	analysis services.Analysis
	requests []services.ClassificationRequest
}

func (c *stubClassifier) Analyze(ctx context.Context, req services.ClassificationRequest) services.Analysis {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.requests = append(c.requests, req)
	return c.analysis
}

// inlineTx runs the function without a real transaction
type inlineTx struct{}

func (inlineTx) ExecTx(ctx context.Context, fn repositories.TxFn) error {
	return fn(ctx)
}
