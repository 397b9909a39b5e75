package newsroom

import (
	"context"
	"fmt"
	"sync"
)

// ScriptedBackend replays canned completions keyed by the system prompt
// that selects the agent. It backs tests and local runs without an API key.
type ScriptedBackend struct {
	mu      sync.Mutex
	replies map[string][]string
}

func NewScriptedBackend() *ScriptedBackend {
	return &ScriptedBackend{replies: make(map[string][]string)}
}

// Queue appends replies for the agent identified by systemPrompt; each
// Complete call consumes one.
func (s *ScriptedBackend) Queue(systemPrompt string, replies ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replies[systemPrompt] = append(s.replies[systemPrompt], replies...)
}

func (s *ScriptedBackend) Complete(_ context.Context, systemPrompt, _ string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	queue := s.replies[systemPrompt]
	if len(queue) == 0 {
		return "", fmt.Errorf("no scripted reply left for system prompt %q", systemPrompt)
	}
	reply := queue[0]
	s.replies[systemPrompt] = queue[1:]
	return reply, nil
}
