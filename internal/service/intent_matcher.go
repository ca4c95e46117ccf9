package service

import (
	"strings"

	"clinic-site-api/internal/domain/entity"
)

// IntentMatcher classifies free text against an ordered intent table.
type IntentMatcher struct {
	intents []entity.ChatIntent
}

// NewIntentMatcher copies intents so later mutation by the caller cannot
// reorder matching. A nil table uses DefaultIntents.
func NewIntentMatcher(intents []entity.ChatIntent) *IntentMatcher {
	if intents == nil {
		intents = DefaultIntents()
	}
	table := make([]entity.ChatIntent, len(intents))
	copy(table, intents)
	return &IntentMatcher{intents: table}
}

// Match returns the first intent, in table order, with a pattern contained in
// the lower-cased, trimmed text. Earlier intents win over better matches later.
func (m *IntentMatcher) Match(text string) (*entity.ChatIntent, bool) {
	normalized := strings.ToLower(strings.TrimSpace(text))
	if normalized == "" {
		return nil, false
	}
	for i := range m.intents {
		for _, pattern := range m.intents[i].Patterns {
			if strings.Contains(normalized, pattern) {
				intent := m.intents[i]
				return &intent, true
			}
		}
	}
	return nil, false
}

// Lookup resolves a quick-reply value straight to its intent.
func (m *IntentMatcher) Lookup(key string) (*entity.ChatIntent, bool) {
	for i := range m.intents {
		if m.intents[i].Key == key {
			intent := m.intents[i]
			return &intent, true
		}
	}
	return nil, false
}
