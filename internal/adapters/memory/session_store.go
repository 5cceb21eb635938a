package memory

import (
	"context"
	"hash/fnv"
	"sync"
	"time"

	"github.com/noorulain276775/pizza-delivery-app/internal/domain"
	"github.com/noorulain276775/pizza-delivery-app/internal/ports"
)

const sessionShardCount = 32

// SessionStore keeps conversation history in process memory, sharded by
// session id so that appends to one session are linearizable while unrelated
// sessions proceed in parallel. There is no cross-shard locking; Stats walks
// the shards one at a time.
//
// Sessions live until explicitly cleared. No idle eviction is applied.
type SessionStore struct {
	shards [sessionShardCount]sessionShard
	nowFn  func() time.Time
}

type sessionShard struct {
	mu       sync.Mutex
	sessions map[string]*domain.ChatSession
}

func NewSessionStore() *SessionStore {
	s := &SessionStore{nowFn: func() time.Time { return time.Now().UTC() }}
	for i := range s.shards {
		s.shards[i].sessions = make(map[string]*domain.ChatSession)
	}
	return s
}

func (s *SessionStore) shard(sessionID string) *sessionShard {
	h := fnv.New32a()
	_, _ = h.Write([]byte(sessionID))
	return &s.shards[h.Sum32()%sessionShardCount]
}

// Get returns the session, creating an empty one on first reference.
func (s *SessionStore) Get(_ context.Context, sessionID string) (domain.ChatSession, error) {
	shard := s.shard(sessionID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	session := shard.getOrCreate(sessionID, s.nowFn())
	// Copy out under the lock so callers never alias the mutable slice.
	snapshot := *session
	snapshot.Messages = make([]domain.ChatMessage, len(session.Messages))
	copy(snapshot.Messages, session.Messages)
	return snapshot, nil
}

func (s *SessionStore) Append(_ context.Context, sessionID string, messages ...domain.ChatMessage) error {
	shard := s.shard(sessionID)
	shard.mu.Lock()
	defer shard.mu.Unlock()

	now := s.nowFn()
	session := shard.getOrCreate(sessionID, now)
	session.Messages = append(session.Messages, messages...)
	session.LastActiveAt = now
	return nil
}

func (s *SessionStore) Clear(_ context.Context, sessionID string) error {
	shard := s.shard(sessionID)
	shard.mu.Lock()
	defer shard.mu.Unlock()
	delete(shard.sessions, sessionID)
	return nil
}

func (s *SessionStore) Stats(_ context.Context) (ports.SessionStats, error) {
	stats := ports.SessionStats{}
	for i := range s.shards {
		shard := &s.shards[i]
		shard.mu.Lock()
		stats.ActiveSessions += len(shard.sessions)
		for _, session := range shard.sessions {
			stats.TotalMessages += len(session.Messages)
		}
		shard.mu.Unlock()
	}
	return stats, nil
}

func (sh *sessionShard) getOrCreate(sessionID string, now time.Time) *domain.ChatSession {
	if session, ok := sh.sessions[sessionID]; ok {
		return session
	}
	session := &domain.ChatSession{
		SessionID:    sessionID,
		CreatedAt:    now,
		LastActiveAt: now,
	}
	sh.sessions[sessionID] = session
	return session
}
