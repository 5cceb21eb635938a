package application

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/noorulain276775/pizza-delivery-app/internal/domain"
	"github.com/noorulain276775/pizza-delivery-app/internal/ports"
)

// ChatService orchestrates the conversational flow: throttle, fetch session,
// build bounded context, respond via the strategy, append the exchange.
type ChatService struct {
	sessions ports.SessionStore
	limiter  ports.RateLimiter
	strategy *ResponseStrategy
	logger   *slog.Logger
	nowFn    func() time.Time
}

type ChatServiceDeps struct {
	Sessions ports.SessionStore
	Limiter  ports.RateLimiter
	Strategy *ResponseStrategy
	Logger   *slog.Logger
}

func NewChatService(deps ChatServiceDeps) *ChatService {
	logger := deps.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &ChatService{
		sessions: deps.Sessions,
		limiter:  deps.Limiter,
		strategy: deps.Strategy,
		logger:   logger.With("module", "chat", "layer", "application"),
		nowFn:    func() time.Time { return time.Now().UTC() },
	}
}

// Chat handles one conversational turn. Generation failures are invisible to
// the caller; the only caller-visible failures are message validation and
// throttling.
func (s *ChatService) Chat(ctx context.Context, req ChatRequest) (ChatResponse, error) {
	if err := domain.ValidateChatMessage(req.Message); err != nil {
		return ChatResponse{}, err
	}
	message := strings.TrimSpace(req.Message)

	sessionID := strings.TrimSpace(req.SessionID)
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	allowed, err := s.limiter.Allow(ctx, sessionID)
	if err != nil {
		// A broken limiter backend must not take chat down; fail open and log.
		s.logger.WarnContext(ctx, "rate limiter unavailable, failing open",
			"operation", "chat", "outcome", "degraded", "error", err.Error())
		allowed = true
	}
	if !allowed {
		return ChatResponse{}, domain.ErrRateLimited
	}

	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("get session: %w", err)
	}

	convContext := domain.BuildContext(session, message)
	reply := s.strategy.Respond(ctx, message, convContext)

	now := s.nowFn()
	err = s.sessions.Append(ctx, sessionID,
		domain.ChatMessage{Role: domain.RoleUser, Text: message, Timestamp: now},
		domain.ChatMessage{Role: domain.RoleAssistant, Text: reply, Timestamp: now},
	)
	if err != nil {
		return ChatResponse{}, fmt.Errorf("append session: %w", err)
	}

	s.logger.InfoContext(ctx, "chat turn completed",
		"operation", "chat",
		"outcome", "success",
		"session_id", sessionID,
		"model_state", s.strategy.State().String(),
	)
	return ChatResponse{SessionID: sessionID, Response: reply, Timestamp: now}, nil
}

func (s *ChatService) History(ctx context.Context, sessionID string) (ChatHistoryResponse, error) {
	session, err := s.sessions.Get(ctx, sessionID)
	if err != nil {
		return ChatHistoryResponse{}, fmt.Errorf("get session: %w", err)
	}
	history := make([]ChatMessageResponse, 0, len(session.Messages))
	for _, msg := range session.Messages {
		history = append(history, ChatMessageResponse{
			Role:      string(msg.Role),
			Text:      msg.Text,
			Timestamp: msg.Timestamp,
		})
	}
	return ChatHistoryResponse{SessionID: sessionID, History: history}, nil
}

func (s *ChatService) ClearHistory(ctx context.Context, sessionID string) error {
	if err := s.sessions.Clear(ctx, sessionID); err != nil {
		return fmt.Errorf("clear session: %w", err)
	}
	s.logger.InfoContext(ctx, "chat history cleared",
		"operation", "clear_history", "outcome", "success", "session_id", sessionID)
	return nil
}

// Health surfaces the strategy state machine and session store stats for
// operators.
func (s *ChatService) Health(ctx context.Context) (ChatHealthResponse, error) {
	stats, err := s.sessions.Stats(ctx)
	if err != nil {
		return ChatHealthResponse{}, fmt.Errorf("session stats: %w", err)
	}
	state := s.strategy.State()
	return ChatHealthResponse{
		ModelReady:     state == StateReady,
		Degraded:       state == StateDegraded,
		ActiveSessions: stats.ActiveSessions,
	}, nil
}

func (s *ChatService) Stats(ctx context.Context) (ChatStatsResponse, error) {
	stats, err := s.sessions.Stats(ctx)
	if err != nil {
		return ChatStatsResponse{}, fmt.Errorf("session stats: %w", err)
	}
	return ChatStatsResponse{
		ActiveSessions: stats.ActiveSessions,
		TotalMessages:  stats.TotalMessages,
		FallbackMode:   s.strategy.State() != StateReady,
	}, nil
}
