// Copyright (c) 2026 SocialLink. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"cmp"
	"context"
	"slices"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/sociallink/internal/catalog/policy"
	"github.com/taibuivan/sociallink/internal/platform/apperr"
	"github.com/taibuivan/sociallink/pkg/pagination"
)

// # In-Memory Repositories
//
// Used by the demo data source and by tests. Each repository guards its
// collection with a single mutex and hands out copies.

// MemoryUserRepository implements UserRepository over a map.
type MemoryUserRepository struct {
	mutex sync.RWMutex
	users map[string]*User
}

// NewMemoryUserRepository returns an empty repository.
func NewMemoryUserRepository() *MemoryUserRepository {
	return &MemoryUserRepository{users: make(map[string]*User)}
}

// FindByID implements [UserRepository].
func (repository *MemoryUserRepository) FindByID(_ context.Context, id string) (*User, error) {
	repository.mutex.RLock()
	defer repository.mutex.RUnlock()

	if user, found := repository.users[id]; found {
		return user.Clone(), nil
	}
	return nil, apperr.NotFound(resourceAccount)
}

// FindByEmail implements [UserRepository].
func (repository *MemoryUserRepository) FindByEmail(_ context.Context, email string) (*User, error) {
	return repository.findBy(func(user *User) bool { return strings.EqualFold(user.Email, email) })
}

// FindByUsername implements [UserRepository].
func (repository *MemoryUserRepository) FindByUsername(_ context.Context, username string) (*User, error) {
	return repository.findBy(func(user *User) bool { return strings.EqualFold(user.Username, username) })
}

func (repository *MemoryUserRepository) findBy(match func(*User) bool) (*User, error) {
	repository.mutex.RLock()
	defer repository.mutex.RUnlock()

	for _, user := range repository.users {
		if match(user) {
			return user.Clone(), nil
		}
	}
	return nil, apperr.NotFound(resourceAccount)
}

// Create implements [UserRepository].
func (repository *MemoryUserRepository) Create(_ context.Context, user *User) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	if _, exists := repository.users[user.ID]; exists {
		return apperr.Conflict(resourceAccount + " already exists")
	}
	if err := repository.checkUniqueLocked(user); err != nil {
		return err
	}

	now := time.Now().UTC()
	if user.CreatedAt.IsZero() {
		user.CreatedAt = now
	}
	user.UpdatedAt = now

	repository.users[user.ID] = user.Clone()
	return nil
}

// Update implements [UserRepository].
func (repository *MemoryUserRepository) Update(_ context.Context, user *User) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	stored, found := repository.users[user.ID]
	if !found {
		return apperr.NotFound(resourceAccount)
	}
	if err := repository.checkUniqueLocked(user); err != nil {
		return err
	}

	user.UpdatedAt = time.Now().UTC()

	updated := user.Clone()
	updated.Email = stored.Email
	updated.PasswordHash = stored.PasswordHash
	updated.CreatedAt = stored.CreatedAt
	repository.users[user.ID] = updated
	return nil
}

// checkUniqueLocked rejects an email or username held by another account.
func (repository *MemoryUserRepository) checkUniqueLocked(candidate *User) error {
	for id, user := range repository.users {
		if id == candidate.ID {
			continue
		}
		if strings.EqualFold(user.Email, candidate.Email) || strings.EqualFold(user.Username, candidate.Username) {
			return apperr.Conflict(resourceAccount + " already exists")
		}
	}
	return nil
}

// UpdatePassword implements [UserRepository].
func (repository *MemoryUserRepository) UpdatePassword(_ context.Context, userID, newHash string) error {
	return repository.mutate(userID, func(user *User) {
		user.PasswordHash = newHash
	})
}

// UpdatePlan implements [UserRepository].
func (repository *MemoryUserRepository) UpdatePlan(_ context.Context, userID string, plan policy.Plan, expiresAt *time.Time) error {
	return repository.mutate(userID, func(user *User) {
		user.Plan = plan
		user.PlanExpiresAt = nil
		if expiresAt != nil {
			expiry := *expiresAt
			user.PlanExpiresAt = &expiry
		}
	})
}

func (repository *MemoryUserRepository) mutate(userID string, apply func(*User)) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	user, found := repository.users[userID]
	if !found {
		return apperr.NotFound(resourceAccount)
	}
	apply(user)
	user.UpdatedAt = time.Now().UTC()
	return nil
}

// List implements [UserRepository].
func (repository *MemoryUserRepository) List(_ context.Context, filter ListFilter, params pagination.Params) ([]*User, int, error) {
	repository.mutex.RLock()
	defer repository.mutex.RUnlock()

	query := strings.ToLower(strings.TrimSpace(filter.Query))
	matched := make([]*User, 0, len(repository.users))
	for _, user := range repository.users {
		if query != "" &&
			!strings.Contains(strings.ToLower(user.Email), query) &&
			!strings.Contains(strings.ToLower(user.Username), query) &&
			!strings.Contains(strings.ToLower(user.DisplayName), query) {
			continue
		}
		if filter.Status != "" && user.Status != filter.Status {
			continue
		}
		if len(filter.Plans) > 0 && !slices.Contains(filter.Plans, user.Plan) {
			continue
		}
		matched = append(matched, user)
	}

	slices.SortFunc(matched, func(a, b *User) int {
		if order := b.CreatedAt.Compare(a.CreatedAt); order != 0 {
			return order
		}
		return cmp.Compare(b.ID, a.ID)
	})

	start, end := params.Window(len(matched))
	page := make([]*User, 0, end-start)
	for _, user := range matched[start:end] {
		page = append(page, user.Clone())
	}
	return page, len(matched), nil
}

// Stats implements [UserRepository].
func (repository *MemoryUserRepository) Stats(_ context.Context) (*Stats, error) {
	repository.mutex.RLock()
	defer repository.mutex.RUnlock()

	stats := newStats()
	for _, user := range repository.users {
		stats.add(user.Plan, user.Status, 1)
	}
	return stats, nil
}

// Delete implements [UserRepository].
func (repository *MemoryUserRepository) Delete(_ context.Context, id string) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	if _, found := repository.users[id]; !found {
		return apperr.NotFound(resourceAccount)
	}
	delete(repository.users, id)
	return nil
}

// MemorySessionRepository implements SessionRepository over a map.
type MemorySessionRepository struct {
	mutex    sync.Mutex
	sessions map[string]*Session
}

// NewMemorySessionRepository returns an empty repository.
func NewMemorySessionRepository() *MemorySessionRepository {
	return &MemorySessionRepository{sessions: make(map[string]*Session)}
}

// Create implements [SessionRepository].
func (repository *MemorySessionRepository) Create(_ context.Context, session *Session) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	if session.CreatedAt.IsZero() {
		session.CreatedAt = time.Now().UTC()
	}
	stored := *session
	repository.sessions[session.ID] = &stored
	return nil
}

// FindByTokenHash implements [SessionRepository].
func (repository *MemorySessionRepository) FindByTokenHash(_ context.Context, tokenHash string) (*Session, error) {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	now := time.Now()
	for _, session := range repository.sessions {
		if session.TokenHash == tokenHash && !session.IsRevoked && session.ExpiresAt.After(now) {
			found := *session
			return &found, nil
		}
	}
	return nil, apperr.NotFound("Session")
}

// Revoke implements [SessionRepository].
func (repository *MemorySessionRepository) Revoke(_ context.Context, sessionID string) error {
	repository.revokeWhere(func(session *Session) bool { return session.ID == sessionID })
	return nil
}

// RevokeAll implements [SessionRepository].
func (repository *MemorySessionRepository) RevokeAll(_ context.Context, userID string) error {
	repository.revokeWhere(func(session *Session) bool { return session.UserID == userID })
	return nil
}

// RevokeOthers implements [SessionRepository].
func (repository *MemorySessionRepository) RevokeOthers(_ context.Context, userID, currentSessionID string) error {
	repository.revokeWhere(func(session *Session) bool {
		return session.UserID == userID && session.ID != currentSessionID
	})
	return nil
}

func (repository *MemorySessionRepository) revokeWhere(match func(*Session) bool) {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	for _, session := range repository.sessions {
		if match(session) {
			session.IsRevoked = true
		}
	}
}

// DeleteByUser implements [SessionRepository].
func (repository *MemorySessionRepository) DeleteByUser(_ context.Context, userID string) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	for id, session := range repository.sessions {
		if session.UserID == userID {
			delete(repository.sessions, id)
		}
	}
	return nil
}

// MemoryResetTokenRepository implements ResetTokenRepository with lazy expiry.
type MemoryResetTokenRepository struct {
	mutex  sync.Mutex
	tokens map[string]memoryResetToken
	now    func() time.Time
}

type memoryResetToken struct {
	userID    string
	expiresAt time.Time
}

// NewMemoryResetTokenRepository returns an empty repository.
func NewMemoryResetTokenRepository() *MemoryResetTokenRepository {
	return &MemoryResetTokenRepository{tokens: make(map[string]memoryResetToken), now: time.Now}
}

// Set implements [ResetTokenRepository].
func (repository *MemoryResetTokenRepository) Set(_ context.Context, token string, userID string, ttl time.Duration) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	repository.tokens[token] = memoryResetToken{userID: userID, expiresAt: repository.now().Add(ttl)}
	return nil
}

// Get implements [ResetTokenRepository].
func (repository *MemoryResetTokenRepository) Get(_ context.Context, token string) (string, error) {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	entry, found := repository.tokens[token]
	if !found {
		return "", errResetTokenInvalid()
	}
	if !repository.now().Before(entry.expiresAt) {
		delete(repository.tokens, token)
		return "", errResetTokenInvalid()
	}
	return entry.userID, nil
}

// Delete implements [ResetTokenRepository].
func (repository *MemoryResetTokenRepository) Delete(_ context.Context, token string) error {
	repository.mutex.Lock()
	defer repository.mutex.Unlock()

	delete(repository.tokens, token)
	return nil
}
