package core

import (
	"time"

	"github.com/Gearhartlove/pregel-ex/payload"
)

// Message is an immutable unit of inter-vertex communication. Superstep is
// always the sender's superstep counter at send time (invariant 3);
// Timestamp is captured for diagnostics only and carries no ordering
// semantics beyond Superstep.
type Message struct {
	Sender    string
	Recipient string
	Content   payload.Value
	Superstep uint64
	Timestamp time.Time
}

// NewMessage constructs a Message, stamping the current wall-clock time.
func NewMessage(sender, recipient string, content payload.Value, superstep uint64) Message {
	return Message{
		Sender:    sender,
		Recipient: recipient,
		Content:   content,
		Superstep: superstep,
		Timestamp: time.Now(),
	}
}

func contentsOf(msgs []Message) []payload.Value {
	out := make([]payload.Value, len(msgs))
	for i, m := range msgs {
		out[i] = m.Content
	}
	return out
}

func cloneMessages(msgs []Message) []Message {
	out := make([]Message, len(msgs))
	copy(out, msgs)
	return out
}
