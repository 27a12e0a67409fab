package delivery

// Config holds delivery provider configuration. The Postmark tokens are
// optional to support development environments where delivery falls back to
// DevSender; NewFromConfig in the root package performs that selection at
// startup.
type Config struct {
	PostmarkServerToken  string `env:"POSTMARK_SERVER_TOKEN"`
	PostmarkAccountToken string `env:"POSTMARK_ACCOUNT_TOKEN"`
	SenderEmail          string `env:"TWOFACTOR_SENDER_EMAIL"`
}
