// internal/services/skeleton_store.go
package services

import (
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	apperrors "github.com/crunchvision/boxstylemcp/internal/errors"
	"github.com/crunchvision/boxstylemcp/internal/models"
)

// SkeletonStore keeps assembled skeletons addressable between requests so
// they can be refined without reassembling. Entries expire; concurrent edits
// to the same skeleton serialize through per-ID locks.
type SkeletonStore struct {
	skeletons *cache.Cache
	locks     *LockManager
}

// NewSkeletonStore creates the store. Skeletons expire after ttl.
func NewSkeletonStore(ttl, cleanupInterval time.Duration) *SkeletonStore {
	if ttl <= 0 {
		ttl = 30 * time.Minute
	}
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}

	return &SkeletonStore{
		skeletons: cache.New(ttl, cleanupInterval),
		locks:     NewLockManager(),
	}
}

// Save assigns the skeleton an ID and stores it.
func (s *SkeletonStore) Save(skeleton *models.PromptSkeleton) string {
	id := uuid.NewString()
	skeleton.ID = id
	s.skeletons.Set(id, skeleton, cache.DefaultExpiration)
	return id
}

// Get returns the stored skeleton for an ID.
func (s *SkeletonStore) Get(id string) (*models.PromptSkeleton, error) {
	entry, found := s.skeletons.Get(id)
	if !found {
		return nil, apperrors.NewNotFoundError("skeleton not found: "+id, nil)
	}

	skeleton, ok := entry.(*models.PromptSkeleton)
	if !ok {
		return nil, apperrors.NewProcessingError("stored entry is not a skeleton", nil)
	}
	return skeleton, nil
}

// Update applies fn to a stored skeleton under its write lock and refreshes
// its expiration on success. The skeleton is left unchanged when fn fails.
func (s *SkeletonStore) Update(id string, fn func(*models.PromptSkeleton) error) (*models.PromptSkeleton, error) {
	var skeleton *models.PromptSkeleton
	err := s.locks.WithLock(id, func() error {
		var err error
		skeleton, err = s.Get(id)
		if err != nil {
			return err
		}

		if err := fn(skeleton); err != nil {
			return err
		}

		s.skeletons.Set(id, skeleton, cache.DefaultExpiration)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return skeleton, nil
}

// Count reports the number of live skeletons.
func (s *SkeletonStore) Count() int {
	return s.skeletons.ItemCount()
}
