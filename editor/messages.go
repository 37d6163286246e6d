package editor

import "github.com/rs/zerolog/log"

// MessageLevel grades a status message.
type MessageLevel int

const (
	LevelInfo MessageLevel = iota
	LevelWarning
	LevelError
)

// BackgroundSource marks messages that must not steal the active slot from
// user-facing ones.
const BackgroundSource = "lsp"

const (
	defaultHistoryLimit = 256
	defaultEventLimit   = 512
)

// Message is one entry in the message center.
type Message struct {
	Seq    uint64
	Level  MessageLevel
	Source string
	Text   string
}

// MessageEventKind tags entries in the polling buffer.
type MessageEventKind int

const (
	MessagePublished MessageEventKind = iota
	MessageDismissed
	MessagesCleared
)

// MessageEvent is one entry of the polling buffer. Published events carry
// the message.
type MessageEvent struct {
	Seq     uint64
	Kind    MessageEventKind
	Message Message
}

// Snapshot is a copy of the center's visible state for renderers.
type Snapshot struct {
	Active  *Message
	History []Message
	LastSeq uint64
}

// MessageCenter is an append-only log of status messages with a bounded
// history and a bounded event buffer for polling consumers. Main-thread
// only; background subsystems publish through the main loop.
type MessageCenter struct {
	seq     uint64
	active  *Message
	history []Message
	events  []MessageEvent

	historyLimit int
	eventLimit   int
}

// NewMessageCenter returns a center with the default bounds.
func NewMessageCenter() *MessageCenter {
	return &MessageCenter{
		historyLimit: defaultHistoryLimit,
		eventLimit:   defaultEventLimit,
	}
}

// SetLimits overrides the history and event bounds.
func (m *MessageCenter) SetLimits(history, events int) {
	if history > 0 {
		m.historyLimit = history
	}
	if events > 0 {
		m.eventLimit = events
	}
}

// Publish appends a message. Foreground messages (source other than
// BackgroundSource) always become active; background ones only when no
// foreground message holds the slot.
func (m *MessageCenter) Publish(level MessageLevel, source, text string) Message {
	m.seq++
	msg := Message{Seq: m.seq, Level: level, Source: source, Text: text}

	m.history = append(m.history, msg)
	if len(m.history) > m.historyLimit {
		m.history = m.history[len(m.history)-m.historyLimit:]
	}
	m.pushEvent(MessageEvent{Seq: msg.Seq, Kind: MessagePublished, Message: msg})

	if source != BackgroundSource || m.active == nil || m.active.Source == BackgroundSource {
		active := msg
		m.active = &active
	}
	if level == LevelError {
		log.Error().Str("source", source).Msg(text)
	}
	return msg
}

// Active returns the message currently shown in the status area.
func (m *MessageCenter) Active() (Message, bool) {
	if m.active == nil {
		return Message{}, false
	}
	return *m.active, true
}

// Dismiss clears the active message without touching history.
func (m *MessageCenter) Dismiss() {
	if m.active == nil {
		return
	}
	m.active = nil
	m.seq++
	m.pushEvent(MessageEvent{Seq: m.seq, Kind: MessageDismissed})
}

// Clear drops the history and the active message.
func (m *MessageCenter) Clear() {
	m.active = nil
	m.history = nil
	m.seq++
	m.pushEvent(MessageEvent{Seq: m.seq, Kind: MessagesCleared})
}

// EventsSince returns the buffered events newer than seq.
func (m *MessageCenter) EventsSince(seq uint64) []MessageEvent {
	i := len(m.events)
	for i > 0 && m.events[i-1].Seq > seq {
		i--
	}
	out := make([]MessageEvent, len(m.events)-i)
	copy(out, m.events[i:])
	return out
}

// History returns the retained messages, oldest first.
func (m *MessageCenter) History() []Message {
	out := make([]Message, len(m.history))
	copy(out, m.history)
	return out
}

// TakeSnapshot copies the visible state.
func (m *MessageCenter) TakeSnapshot() Snapshot {
	snap := Snapshot{History: m.History(), LastSeq: m.seq}
	if m.active != nil {
		active := *m.active
		snap.Active = &active
	}
	return snap
}

func (m *MessageCenter) pushEvent(ev MessageEvent) {
	m.events = append(m.events, ev)
	if len(m.events) > m.eventLimit {
		m.events = m.events[len(m.events)-m.eventLimit:]
	}
}
