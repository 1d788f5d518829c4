package mqtt

// queuedMsg is a publish held back while the broker is unreachable.
type queuedMsg struct {
	topic    string
	qos      byte
	retained bool
	payload  []byte
}

// ringBuffer holds a bounded backlog of messages. When full, the oldest
// message is dropped to make room, so a long outage keeps the most recent
// events rather than the stalest.
type ringBuffer struct {
	msgs []queuedMsg
	head int
	size int
}

func newRingBuffer(capacity int) *ringBuffer {
	return &ringBuffer{msgs: make([]queuedMsg, capacity)}
}

func (b *ringBuffer) push(m queuedMsg) {
	if b.size < len(b.msgs) {
		b.msgs[(b.head+b.size)%len(b.msgs)] = m
		b.size++
		return
	}
	// Full: overwrite the oldest slot.
	b.msgs[b.head] = m
	b.head = (b.head + 1) % len(b.msgs)
}

// drain returns all buffered messages in arrival order and empties the buffer.
func (b *ringBuffer) drain() []queuedMsg {
	if b.size == 0 {
		return nil
	}
	out := make([]queuedMsg, b.size)
	for i := 0; i < b.size; i++ {
		out[i] = b.msgs[(b.head+i)%len(b.msgs)]
	}
	b.head = 0
	b.size = 0
	return out
}

func (b *ringBuffer) len() int {
	return b.size
}
