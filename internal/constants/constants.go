package constants

import "time"

var ScoringConfig = struct {
	KnowledgeAmplification int
	KnowledgeCap           int
	KnowledgeFallback      int
}{
	KnowledgeAmplification: 3, // short reference corpus vs free-form answers
	KnowledgeCap:           98,
	KnowledgeFallback:      15, // fail-soft score for degenerate answer text
}

var ReportConfig = struct {
	NarrativeTimeout time.Duration
	DeliveryTimeout  time.Duration
	PipelineTimeout  time.Duration
	SentMarkerTTL    time.Duration
}{
	NarrativeTimeout: 30 * time.Second,
	DeliveryTimeout:  15 * time.Second,
	PipelineTimeout:  60 * time.Second,
	SentMarkerTTL:    24 * time.Hour,
}

var CircuitBreakerConfig = struct {
	FailureThreshold int
	ResetTimeout     time.Duration
	RateLimitTimeout time.Duration
}{
	FailureThreshold: 3,
	ResetTimeout:     30 * time.Second,
	RateLimitTimeout: 1 * time.Hour,
}

var GatewayConfig = struct {
	ReadLimit        int64
	WriteTimeout     time.Duration
	HandshakeTimeout time.Duration
}{
	ReadLimit:        64 * 1024,
	WriteTimeout:     10 * time.Second,
	HandshakeTimeout: 10 * time.Second,
}

var InputLimits = struct {
	MaxAnswerLength int
	MaxNameLength   int
}{
	MaxAnswerLength: 4000,
	MaxNameLength:   200,
}

var APIConfig = struct {
	ResendBaseURL string
	ResendTimeout time.Duration
}{
	ResendBaseURL: "https://api.resend.com",
	ResendTimeout: 10 * time.Second,
}
