package service

import (
	"errors"
	"fmt"
	"strings"

	"go.uber.org/zap"

	"materia/internal/domain"
	"materia/internal/query"
	"materia/internal/similarity"
)

// NoMaterialsReply is the answer given when the dataset has no rows.
const NoMaterialsReply = "No materials available."

// ConversationStore is the subset of the session store the service writes to.
type ConversationStore interface {
	Append(id string, role domain.Role, content string) error
}

// MatchService answers material queries against a read-only dataset.
// It holds no per-session state and may be shared between sessions.
type MatchService struct {
	dataset *domain.Dataset
	topK    int
	logger  *zap.Logger
}

func NewMatchService(dataset *domain.Dataset, topK int, logger *zap.Logger) *MatchService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if topK <= 0 {
		topK = similarity.DefaultTopK
	}
	return &MatchService{dataset: dataset, topK: topK, logger: logger}
}

// Properties returns the attribute names users can type.
func (s *MatchService) Properties() []string {
	return append([]string(nil), s.dataset.Schema...)
}

// Match parses text and ranks the dataset against it.
func (s *MatchService) Match(text string) ([]domain.Match, error) {
	q, err := query.Parse(text)
	if err != nil {
		return nil, err
	}
	if unknown := query.Unknown(q, s.dataset.Schema); len(unknown) > 0 {
		s.logger.Debug("ignoring unknown properties", zap.Strings("keys", unknown))
	}
	return similarity.Rank(q, s.dataset, s.topK), nil
}

// Ask records text as a user message in conversation id, answers it and
// records the answer. Query errors become the answer; only store errors are
// returned.
func (s *MatchService) Ask(store ConversationStore, id, text string) (string, error) {
	if err := store.Append(id, domain.RoleUser, text); err != nil {
		return "", fmt.Errorf("append user message: %w", err)
	}
	reply := s.Reply(text)
	if err := store.Append(id, domain.RoleAssistant, reply); err != nil {
		return "", fmt.Errorf("append assistant message: %w", err)
	}
	return reply, nil
}

// Reply answers text without touching any conversation.
func (s *MatchService) Reply(text string) string {
	matches, err := s.Match(text)
	if err != nil {
		var pe *domain.ParseError
		if errors.As(err, &pe) {
			s.logger.Info("query rejected", zap.String("segment", pe.Segment), zap.Error(err))
		} else {
			s.logger.Error("query failed", zap.Error(err))
		}
		return FormatError(err)
	}
	s.logger.Info("query answered", zap.String("query", text), zap.Int("matches", len(matches)))
	return FormatMatches(matches)
}

// FormatMatches renders ranked matches as a numbered list.
func FormatMatches(matches []domain.Match) string {
	if len(matches) == 0 {
		return NoMaterialsReply
	}
	var b strings.Builder
	b.WriteString("Best matching materials:\n")
	for i, m := range matches {
		fmt.Fprintf(&b, "\n%d. %s (similarity: %.2f%%)", i+1, m.Name, m.Similarity)
	}
	return b.String()
}

// FormatError renders a query error for the user.
func FormatError(err error) string {
	return "Could not interpret your input.\n\nTechnical error: " + err.Error()
}
