package users

import (
	"context"
	"sync"

	"github.com/dmitrijs2005/authkeeper/internal/common"
	"github.com/dmitrijs2005/authkeeper/internal/server/models"
	"github.com/google/uuid"
)

// MemoryRepository keeps users in process memory. It is meant for local
// runs and tests; data is lost on restart.
type MemoryRepository struct {
	mu      sync.RWMutex
	byID    map[models.UserID]models.User
	byEmail map[string]models.UserID
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{
		byID:    make(map[models.UserID]models.User),
		byEmail: make(map[string]models.UserID),
	}
}

func (r *MemoryRepository) Create(_ context.Context, user *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byEmail[user.Email]; ok {
		return nil, common.ErrorAlreadyExists
	}

	user.ID = models.UserID(uuid.NewString())

	stored := *user
	stored.PasswordHash = append([]byte(nil), user.PasswordHash...)
	r.byID[user.ID] = stored
	r.byEmail[user.Email] = user.ID

	return user, nil
}

func (r *MemoryRepository) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byEmail[email]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return r.copyOf(id), nil
}

func (r *MemoryRepository) GetUserByID(_ context.Context, id models.UserID) (*models.User, error) {
	if _, err := uuid.Parse(id.String()); err != nil {
		return nil, common.ErrorMalformedID
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	if _, ok := r.byID[id]; !ok {
		return nil, common.ErrorNotFound
	}
	return r.copyOf(id), nil
}

// copyOf must be called with r.mu held.
func (r *MemoryRepository) copyOf(id models.UserID) *models.User {
	u := r.byID[id]
	u.PasswordHash = append([]byte(nil), u.PasswordHash...)
	return &u
}
