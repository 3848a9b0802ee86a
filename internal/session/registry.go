package session

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"sync"
)

// Tool names exposed to the conversational layer.
const (
	ToolSetCandidateName  = "set_candidate_name"
	ToolSetCandidateEmail = "set_candidate_email"
	ToolRecordAnswer      = "record_answer"
	ToolFinalizeInterview = "finalize_interview"
)

// ErrUnknownTool is returned when an invocation names an unregistered tool.
var ErrUnknownTool = stderrors.New("unknown tool")

// Tool is one callable session mutation. The returned string is surfaced
// verbatim to the candidate as the next conversational turn.
type Tool interface {
	Name() string
	Description() string
	Invoke(ctx context.Context, sess *Session, params map[string]any) (string, error)
}

// Registry stores tool handlers keyed by their canonical names.
type Registry struct {
	mu       sync.RWMutex
	handlers map[string]Tool
}

// NewRegistry constructs a registry preloaded with the four session tools.
func NewRegistry() *Registry {
	r := &Registry{handlers: make(map[string]Tool)}
	r.Register(&setCandidateNameTool{})
	r.Register(&setCandidateEmailTool{})
	r.Register(&recordAnswerTool{})
	r.Register(&finalizeInterviewTool{})
	return r
}

// Register adds a tool handler. Names are stored lowercase for
// case-insensitive lookup.
func (r *Registry) Register(handler Tool) {
	if handler == nil {
		return
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.handlers[strings.ToLower(handler.Name())] = handler
}

// Invoke runs the named tool against a session.
func (r *Registry) Invoke(ctx context.Context, sess *Session, name string, params map[string]any) (string, error) {
	handler := r.getHandler(name)
	if handler == nil {
		return "", fmt.Errorf("%w: %s", ErrUnknownTool, name)
	}

	return handler.Invoke(ctx, sess, params)
}

// Count returns the number of registered tools.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.handlers)
}

func (r *Registry) getHandler(name string) Tool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if name == "" {
		return nil
	}
	return r.handlers[strings.ToLower(name)]
}
