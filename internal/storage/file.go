package storage

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"os"
	"sort"
	"sync"
	"time"

	"github.com/Kadhiravan2002/AuraX/internal"
)

// FileRecordStore keeps health records in memory and flushes them to a JSON
// file. Writes are debounced: mutations poke a channel and a background
// worker persists after a short quiet period. Close flushes synchronously.
type FileRecordStore struct {
	records      map[string]map[string]*internal.HealthRecord // userID -> date -> record
	mu           sync.RWMutex
	path         string
	saveChan     chan struct{}
	shutdownChan chan struct{}
	saveDelay    time.Duration
	logger       internal.Logger
}

func NewFileRecordStore(path string, logger internal.Logger) (*FileRecordStore, error) {
	s := &FileRecordStore{
		records:      make(map[string]map[string]*internal.HealthRecord),
		path:         path,
		saveChan:     make(chan struct{}, 1),
		shutdownChan: make(chan struct{}),
		saveDelay:    500 * time.Millisecond,
		logger:       logger,
	}
	if err := s.load(); err != nil {
		logger.Errorf("storage: failed to load health records: %v", err)
		return nil, err
	}
	go s.saveWorker()
	return s, nil
}

func (s *FileRecordStore) load() error {
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}
	defer file.Close()

	var records []*internal.HealthRecord
	if err := json.NewDecoder(file).Decode(&records); err != nil {
		if errors.Is(err, io.EOF) {
			return nil
		}
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	for _, r := range records {
		if s.records[r.UserID] == nil {
			s.records[r.UserID] = make(map[string]*internal.HealthRecord)
		}
		s.records[r.UserID][r.Date] = r
	}
	return nil
}

func (s *FileRecordStore) save() error {
	s.mu.RLock()
	var records []*internal.HealthRecord
	for _, byDate := range s.records {
		for _, r := range byDate {
			records = append(records, r)
		}
	}
	s.mu.RUnlock()
	if records == nil {
		records = make([]*internal.HealthRecord, 0)
	}
	sort.Slice(records, func(i, j int) bool {
		if records[i].UserID != records[j].UserID {
			return records[i].UserID < records[j].UserID
		}
		return records[i].Date < records[j].Date
	})
	return atomicWriteFileJSON(s.path, records)
}

func (s *FileRecordStore) saveWorker() {
	timer := time.NewTimer(s.saveDelay)
	defer timer.Stop()

	for {
		select {
		case <-s.saveChan:
			timer.Reset(s.saveDelay)
		case <-timer.C:
			if err := s.save(); err != nil {
				s.logger.Errorf("storage: error saving health records: %v", err)
			}
		case <-s.shutdownChan:
			return
		}
	}
}

func (s *FileRecordStore) scheduleSave() {
	select {
	case s.saveChan <- struct{}{}:
	default:
	}
}

func (s *FileRecordStore) Close() error {
	close(s.shutdownChan)
	return s.save()
}

// --- RecordRepository ---

func (s *FileRecordStore) ListByUser(ctx context.Context, userID string) ([]internal.HealthRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	byDate, ok := s.records[userID]
	if !ok {
		return []internal.HealthRecord{}, nil
	}
	records := make([]internal.HealthRecord, 0, len(byDate))
	for _, r := range byDate {
		records = append(records, *r)
	}
	sort.Slice(records, func(i, j int) bool {
		return records[i].Date > records[j].Date
	})
	return records, nil
}

func (s *FileRecordStore) GetByUserDate(ctx context.Context, userID, date string) (*internal.HealthRecord, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if r, ok := s.records[userID][date]; ok {
		clone := *r
		return &clone, nil
	}
	return nil, ErrNotFound
}

func (s *FileRecordStore) Upsert(ctx context.Context, record *internal.HealthRecord) error {
	s.mu.Lock()
	s.put(record)
	s.mu.Unlock()
	s.scheduleSave()
	return nil
}

func (s *FileRecordStore) Insert(ctx context.Context, record *internal.HealthRecord) error {
	s.mu.Lock()
	if _, exists := s.records[record.UserID][record.Date]; exists {
		s.mu.Unlock()
		return ErrDuplicate
	}
	s.put(record)
	s.mu.Unlock()
	s.scheduleSave()
	return nil
}

func (s *FileRecordStore) DeleteWhere(ctx context.Context, userID string, dates []string) error {
	s.mu.Lock()
	if byDate, ok := s.records[userID]; ok {
		for _, d := range dates {
			delete(byDate, d)
		}
	}
	s.mu.Unlock()
	s.scheduleSave()
	return nil
}

// put assumes the caller holds the write lock.
func (s *FileRecordStore) put(record *internal.HealthRecord) {
	clone := *record
	if clone.CreatedAt.IsZero() {
		clone.CreatedAt = time.Now()
	}
	if s.records[clone.UserID] == nil {
		s.records[clone.UserID] = make(map[string]*internal.HealthRecord)
	}
	s.records[clone.UserID][clone.Date] = &clone
}

func atomicWriteFileJSON(filePath string, data interface{}) error {
	tempFile := filePath + ".tmp"
	f, err := os.Create(tempFile)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(data); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Sync(); err != nil {
		f.Close()
		os.Remove(tempFile)
		return err
	}

	if err := f.Close(); err != nil {
		os.Remove(tempFile)
		return err
	}

	return os.Rename(tempFile, filePath)
}

// --- Compile-time assertions ---
var _ RecordRepository = (*FileRecordStore)(nil)

// FileMappingStore persists the saved-mapping collection as one JSON file.
// The collection is small and always written whole, so writes are
// synchronous and atomic rather than debounced.
type FileMappingStore struct {
	mu     sync.Mutex
	path   string
	logger internal.Logger
}

func NewFileMappingStore(path string, logger internal.Logger) *FileMappingStore {
	return &FileMappingStore{path: path, logger: logger}
}

func (s *FileMappingStore) LoadMappings(ctx context.Context) ([]internal.SavedMapping, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	file, err := os.Open(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}
	defer file.Close()

	var mappings []internal.SavedMapping
	if err := json.NewDecoder(file).Decode(&mappings); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, nil
		}
		return nil, err
	}
	return mappings, nil
}

func (s *FileMappingStore) StoreMappings(ctx context.Context, mappings []internal.SavedMapping) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if mappings == nil {
		mappings = make([]internal.SavedMapping, 0)
	}
	return atomicWriteFileJSON(s.path, mappings)
}
