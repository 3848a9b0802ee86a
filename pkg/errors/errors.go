package errors

import "fmt"

// Error codes
const (
	CodeAgentError  = "AGENT_ERROR"
	CodeValidation  = "VALIDATION_ERROR"
	CodeWrongState  = "WRONG_STATE_ERROR"
	CodePersistence = "PERSISTENCE_ERROR"
	CodeCache       = "CACHE_ERROR"
	CodeService     = "SERVICE_ERROR"
)

type AgentError struct {
	Message string
	Code    string
	Context map[string]any
	Cause   error
}

func (e *AgentError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *AgentError) Unwrap() error {
	return e.Cause
}

func NewAgentError(message, code string, context map[string]any) *AgentError {
	return &AgentError{
		Message: message,
		Code:    code,
		Context: context,
	}
}

func (e *AgentError) WithCause(cause error) *AgentError {
	e.Cause = cause
	return e
}

// ValidationError rejects bad tool input (empty name, blank answer). The
// session surfaces a corrective prompt and the conversation continues.
type ValidationError struct {
	*AgentError
	Field string
	Value interface{}
}

func NewValidationError(message, field string, value interface{}) *ValidationError {
	return &ValidationError{
		AgentError: &AgentError{
			Message: message,
			Code:    CodeValidation,
			Context: map[string]any{
				"field": field,
				"value": value,
			},
		},
		Field: field,
		Value: value,
	}
}

// StateError rejects a tool call made outside the state that accepts it,
// e.g. recording an email before the name was captured.
type StateError struct {
	*AgentError
	Tool  string
	State string
}

func NewStateError(message, tool, state string) *StateError {
	return &StateError{
		AgentError: &AgentError{
			Message: message,
			Code:    CodeWrongState,
			Context: map[string]any{
				"tool":  tool,
				"state": state,
			},
		},
		Tool:  tool,
		State: state,
	}
}

// PersistenceError marks a failed interview write. This is the one failure
// finalize propagates: a lost interview result has no soft fallback.
type PersistenceError struct {
	*AgentError
	Operation string
}

func NewPersistenceError(message, operation string, cause error) *PersistenceError {
	return &PersistenceError{
		AgentError: &AgentError{
			Message: message,
			Code:    CodePersistence,
			Context: map[string]any{
				"operation": operation,
			},
			Cause: cause,
		},
		Operation: operation,
	}
}

type CacheError struct {
	*AgentError
	Operation string
	Key       string
}

func NewCacheError(message, operation, key string, cause error) *CacheError {
	return &CacheError{
		AgentError: &AgentError{
			Message: message,
			Code:    CodeCache,
			Context: map[string]any{
				"operation": operation,
				"key":       key,
			},
			Cause: cause,
		},
		Operation: operation,
		Key:       key,
	}
}

type ServiceError struct {
	*AgentError
	Service   string
	Operation string
}

func NewServiceError(message, service, operation string, cause error) *ServiceError {
	return &ServiceError{
		AgentError: &AgentError{
			Message: message,
			Code:    CodeService,
			Context: map[string]any{
				"service":   service,
				"operation": operation,
			},
			Cause: cause,
		},
		Service:   service,
		Operation: operation,
	}
}
