package outbox

// Message is an outbox row recorded alongside a state change. The worker
// relay reads pending rows and publishes them to the message bus.
type Message struct {
	ID         string
	EventType  string
	Payload    []byte
	Status     string // pending, published, failed
	RetryCount int
}

const (
	StatusPending   = "pending"
	StatusPublished = "published"
	StatusFailed    = "failed"
)
