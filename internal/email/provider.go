package email

// Email is a single outbound message.
type Email struct {
	To      []string
	Subject string
	Body    string
	HTML    bool
}

// Provider sends transactional email.
type Provider interface {
	// Send delivers a single message.
	Send(email *Email) error

	// SendVerification sends the account verification message.
	SendVerification(to string, token string) error

	// Close releases the underlying connection if the provider holds one.
	Close() error
}
