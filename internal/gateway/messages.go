package gateway

// Frame types exchanged with the conversational driving layer.
const (
	FrameJoin   = "join"
	FrameJoined = "joined"
	FrameTool   = "tool"
	FrameReply  = "reply"
	FrameError  = "error"
)

// InboundFrame is one message from the driving layer: a join carrying the
// participant identity, or a tool invocation.
type InboundFrame struct {
	Type     string         `json:"type"`
	Identity string         `json:"identity,omitempty"`
	Tool     string         `json:"tool,omitempty"`
	Params   map[string]any `json:"params,omitempty"`
}

// OutboundFrame is the gateway's answer. Prompt carries the verbatim
// next-turn text a tool returned; corrective prompts for rejected input
// come back the same way with an error code set.
type OutboundFrame struct {
	Type         string   `json:"type"`
	SessionID    string   `json:"session_id,omitempty"`
	QuestionSet  string   `json:"question_set,omitempty"`
	Role         string   `json:"role,omitempty"`
	Instructions string   `json:"instructions,omitempty"`
	Questions    []string `json:"questions,omitempty"`
	Tool         string   `json:"tool,omitempty"`
	Prompt       string   `json:"prompt,omitempty"`
	ErrorCode    string   `json:"error_code,omitempty"`
}
