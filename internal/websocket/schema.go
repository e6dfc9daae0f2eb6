package websocket

// ─── Actions (Client → Server) ──────────────────────────────────────

type Action string

const (
	ActionAnswer Action = "answer"
	ActionFinish Action = "finish"
	ActionPing   Action = "ping"
)

// Request is the single client message shape. The question fields are
// only read for the answer action.
type Request struct {
	Action     Action `json:"action"`
	QuestionID string `json:"question_id,omitempty"`
	Value      string `json:"value,omitempty"`
	Slot       int    `json:"slot,omitempty"`
}

// ─── Events (Server → Client) ───────────────────────────────────────

type Event string

const (
	EventTick     Event = "tick"
	EventSaved    Event = "saved"
	EventFinished Event = "finished"
	EventError    Event = "error"
	EventPong     Event = "pong"
)

// TickEvent carries the once-per-second countdown push.
type TickEvent struct {
	Event            Event `json:"event"`
	RemainingSeconds int   `json:"remaining_seconds"`
}

// SavedEvent acknowledges one autosaved answer with its stored encoding.
type SavedEvent struct {
	Event      Event  `json:"event"`
	QuestionID string `json:"question_id"`
	Value      string `json:"value"`
}

// FinishedEvent carries the graded summary when the session ends, either
// by confirmation or because the countdown reached zero.
type FinishedEvent struct {
	Event   Event  `json:"event"`
	Forced  bool   `json:"forced"`
	Correct int    `json:"benar"`
	Wrong   int    `json:"salah"`
	Score   int    `json:"skor"`
	Message string `json:"message,omitempty"`
}

type ErrorEvent struct {
	Event Event  `json:"event"`
	Error string `json:"error"`
}

type PongEvent struct {
	Event Event `json:"event"`
}
