package dataset

import (
	"log"
	"sync"
)

// Store hands out the current Dataset snapshot, reloading when the files on
// disk have been regenerated. Datasets are immutable once loaded, so readers
// can hold a returned pointer for as long as they like.
type Store struct {
	mu  sync.RWMutex
	src Source
	ds  *Dataset
}

func NewStore(src Source) (*Store, error) {
	ds, err := Load(src)
	if err != nil {
		return nil, err
	}
	return &Store{src: src, ds: ds}, nil
}

// Current returns the latest snapshot, refreshing it first if either input
// file's mod time moved. A failed refresh keeps serving the previous
// snapshot rather than taking the dashboard down mid-session.
func (s *Store) Current() *Dataset {
	s.mu.RLock()
	src, ds := s.src, s.ds
	s.mu.RUnlock()

	stale, err := src.Stale()
	if err != nil || !stale {
		if err != nil {
			log.Printf("dataset staleness check failed: %v", err)
		}
		return ds
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	// Another request may have refreshed while we waited for the lock.
	if stale, err := s.src.Stale(); err != nil || !stale {
		return s.ds
	}

	fresh, err := NewSource(s.src.MetricsPath, s.src.GeoJSONPath)
	if err != nil {
		log.Printf("dataset reload skipped: %v", err)
		return s.ds
	}
	reloaded, err := Load(fresh)
	if err != nil {
		log.Printf("dataset reload failed, keeping previous snapshot: %v", err)
		return s.ds
	}
	s.src, s.ds = fresh, reloaded
	log.Printf("dataset reloaded: %d precincts, %d features", len(reloaded.Precincts), len(reloaded.Features))
	return s.ds
}
