package mailer

// EmailJob is the JSON payload put on the RabbitMQ queue for sending email.
// Text is the fallback body; Template selects one of the known templates and
// Data feeds it.
type EmailJob struct {
	To       string         `json:"to"`
	Subject  string         `json:"subject,omitempty"`
	Text     string         `json:"text,omitempty"`
	HTML     string         `json:"html,omitempty"`
	Template string         `json:"template,omitempty"` // "contact_message" or "devis_created"
	Data     map[string]any `json:"data,omitempty"`
}
