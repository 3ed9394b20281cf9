package llm

// ConversationBuffer keeps a bounded window of user/assistant turns for one
// provider. When full, appending evicts the oldest turn.
type ConversationBuffer struct {
	max  int
	msgs []Message
}

func NewConversationBuffer(max int) *ConversationBuffer {
	if max < 1 {
		max = 1
	}
	return &ConversationBuffer{max: max}
}

func (b *ConversationBuffer) Append(role, content string) {
	b.msgs = append(b.msgs, Message{Role: role, Content: content})
	if len(b.msgs) > b.max {
		b.msgs = b.msgs[len(b.msgs)-b.max:]
	}
}

// Messages returns a copy of the current window, oldest first.
func (b *ConversationBuffer) Messages() []Message {
	out := make([]Message, len(b.msgs))
	copy(out, b.msgs)
	return out
}

func (b *ConversationBuffer) Len() int {
	return len(b.msgs)
}

func (b *ConversationBuffer) Reset() {
	b.msgs = nil
}
