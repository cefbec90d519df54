package messages

// Sender labels used in transcripts.
const (
	FromSESI   = "SESI"
	FromClient = "Cliente"
)

// Message is one line of a support transcript.
type Message struct {
	From string `json:"from"`
	Text string `json:"text"`
	Time string `json:"time"`
}

// Thread is a support conversation with the client.
type Thread struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Messages    []Message `json:"messages"`
}

// SendRequest is a new client message. Blank text is rejected by the
// service after sanitising.
type SendRequest struct {
	Text string `json:"text" validate:"max=2000"`
}

// SendResponse acknowledges a message. Delivery is not tracked.
type SendResponse struct {
	ThreadID string `json:"threadId"`
	Message  string `json:"message"`
}
