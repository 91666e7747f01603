// Package storage is the durable key-value layer behind sessions and
// lifetime statistics. Entries live in memory and are flushed as one
// zstd-compressed JSON snapshot, written atomically.
package storage

import (
	"os"
	"sync"

	json "github.com/goccy/go-json"

	"psgdle/internal/providers"
	"psgdle/internal/storage/interfaces"
	"psgdle/internal/structures"
)

type StoreInterface interface {
	Get(key string) ([]byte, bool)
	Put(key string, value []byte)
	Delete(key string)
	Len() int
	LoadFromFile() error
	SaveToFile() error
	Close()
}

// snapshot is the on-disk envelope. The version field leaves room for
// format migration on load.
type snapshot struct {
	Version int               `json:"version"`
	Entries map[string][]byte `json:"entries"`
}

const snapshotVersion = 1

type FileStore struct {
	mu         sync.RWMutex
	data       map[string][]byte
	path       string
	compressor interfaces.CompressorInterface
	logger     providers.Logger
}

func NewFileStore(conf *structures.Config, compressor interfaces.CompressorInterface, logger providers.Logger) StoreInterface {
	return &FileStore{
		data:       make(map[string][]byte),
		path:       conf.Persistence.FilePath,
		compressor: compressor,
		logger:     logger,
	}
}

func (s *FileStore) Get(key string) ([]byte, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	val, ok := s.data[key]
	return val, ok
}

func (s *FileStore) Put(key string, value []byte) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.data[key] = value
}

func (s *FileStore) Delete(key string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.data, key)
}

func (s *FileStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.data)
}

// SaveToFile writes the full snapshot through a temp file with fsync
// and rename, so a crash mid-write never clobbers the previous one.
func (s *FileStore) SaveToFile() error {
	s.mu.RLock()
	snap := snapshot{Version: snapshotVersion, Entries: make(map[string][]byte, len(s.data))}
	for k, v := range s.data {
		snap.Entries[k] = v
	}
	s.mu.RUnlock()

	jsonData, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	data, err := s.compressor.Compress(jsonData)
	if err != nil {
		return err
	}

	tmpFile := s.path + ".tmp"
	file, err := os.Create(tmpFile)
	if err != nil {
		return err
	}

	_, err = file.Write(data)
	if err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Sync(); err != nil {
		file.Close()
		os.Remove(tmpFile)
		return err
	}

	if err = file.Close(); err != nil {
		os.Remove(tmpFile)
		return err
	}

	return os.Rename(tmpFile, s.path)
}

// LoadFromFile restores the snapshot. A missing file is a fresh start;
// an unreadable or corrupt one is logged and discarded the same way —
// persisted-state damage never escalates into a startup failure.
func (s *FileStore) LoadFromFile() error {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return err
	}

	decompressed, err := s.compressor.Decompress(data)
	if err != nil {
		s.logger.Warnf(providers.TypeApp, "Corrupt store snapshot, starting clean: %s", err)
		return nil
	}

	var snap snapshot
	if err := json.Unmarshal(decompressed, &snap); err != nil || snap.Entries == nil {
		s.logger.Warnf(providers.TypeApp, "Unreadable store snapshot, starting clean")
		return nil
	}

	s.mu.Lock()
	s.data = snap.Entries
	s.mu.Unlock()
	return nil
}

func (s *FileStore) Close() {
	s.compressor.Close()
}
