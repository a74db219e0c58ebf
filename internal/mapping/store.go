package mapping

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/Kadhiravan2002/AuraX/internal"
)

// SimilarityThreshold is the minimum header overlap for FindSimilar to
// suggest a saved mapping. Matches the 70% cutoff the product settled on.
const SimilarityThreshold = 0.70

// Repository persists the saved-mapping collection as a whole. There is no
// finer-grained contract; implementations read and write the full list.
type Repository interface {
	LoadMappings(ctx context.Context) ([]internal.SavedMapping, error)
	StoreMappings(ctx context.Context, mappings []internal.SavedMapping) error
}

// Store is the registry of saved column mappings. Entries are kept in
// creation order; saving under an existing name supersedes that entry.
type Store struct {
	mu       sync.RWMutex
	mappings []internal.SavedMapping
	repo     Repository
	logger   internal.Logger
}

func NewStore(ctx context.Context, repo Repository, logger internal.Logger) (*Store, error) {
	s := &Store{repo: repo, logger: logger}
	if repo != nil {
		loaded, err := repo.LoadMappings(ctx)
		if err != nil {
			return nil, err
		}
		s.mappings = loaded
	}
	return s, nil
}

// Save records a mapping under name, replacing any same-named entry. The new
// entry always gets a fresh ID and timestamp; nothing is mutated in place.
func (s *Store) Save(ctx context.Context, name string, m internal.ColumnMapping, headers []string) internal.SavedMapping {
	entry := internal.SavedMapping{
		ID:        uuid.NewString(),
		Name:      name,
		Mapping:   cloneMapping(m),
		Headers:   append([]string(nil), headers...),
		CreatedAt: time.Now(),
	}

	s.mu.Lock()
	kept := s.mappings[:0]
	for _, existing := range s.mappings {
		if existing.Name != name {
			kept = append(kept, existing)
		}
	}
	s.mappings = append(kept, entry)
	snapshot := append([]internal.SavedMapping(nil), s.mappings...)
	s.mu.Unlock()

	s.persist(ctx, snapshot)
	return entry
}

// Find returns the mapping with the given id, or nil.
func (s *Store) Find(id string) *internal.SavedMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.mappings {
		if s.mappings[i].ID == id {
			m := s.mappings[i]
			return &m
		}
	}
	return nil
}

// List returns all saved mappings in creation order.
func (s *Store) List() []internal.SavedMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]internal.SavedMapping(nil), s.mappings...)
}

// Delete removes the mapping with the given id, reporting whether anything
// was deleted.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	kept := s.mappings[:0]
	found := false
	for _, existing := range s.mappings {
		if existing.ID == id {
			found = true
			continue
		}
		kept = append(kept, existing)
	}
	s.mappings = kept
	snapshot := append([]internal.SavedMapping(nil), s.mappings...)
	s.mu.Unlock()

	if found {
		s.persist(ctx, snapshot)
	}
	return found
}

// FindSimilar suggests a saved mapping whose trained headers overlap the new
// file's headers by at least SimilarityThreshold. Entries are checked in
// creation order and the first hit wins; this is a heuristic, not an exact
// contract.
func (s *Store) FindSimilar(headers []string) *internal.SavedMapping {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for i := range s.mappings {
		if Similarity(headers, s.mappings[i].Headers) >= SimilarityThreshold {
			m := s.mappings[i]
			return &m
		}
	}
	return nil
}

// Similarity is the overlap ratio |a ∩ b| / max(|a|, |b|) over unique header
// strings.
func Similarity(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setA := toSet(a)
	setB := toSet(b)
	common := 0
	for h := range setA {
		if setB[h] {
			common++
		}
	}
	denom := len(setA)
	if len(setB) > denom {
		denom = len(setB)
	}
	return float64(common) / float64(denom)
}

func (s *Store) persist(ctx context.Context, snapshot []internal.SavedMapping) {
	if s.repo == nil {
		return
	}
	if err := s.repo.StoreMappings(ctx, snapshot); err != nil {
		// Persistence is best-effort for this local registry; the in-memory
		// state stays authoritative for the session.
		s.logger.Errorf("mapping: failed to persist mappings: %v", err)
	}
}

func toSet(headers []string) map[string]bool {
	set := make(map[string]bool, len(headers))
	for _, h := range headers {
		set[h] = true
	}
	return set
}

func cloneMapping(m internal.ColumnMapping) internal.ColumnMapping {
	out := make(internal.ColumnMapping, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}
