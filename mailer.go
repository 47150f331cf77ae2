package securelogin

import "context"

type logMailer struct {
	logger Logger
}

// NewLogMailer returns a Mailer that writes codes to the log instead of
// sending mail. Useful for development and tests; production wires a real
// delivery implementation.
func NewLogMailer(logger Logger) Mailer {
	return &logMailer{logger: ResolveLogger("mailer", logger)}
}

func (m *logMailer) SendOtp(ctx context.Context, email, code string) error {
	m.logger.Info("otp delivery", "email", email, "code", code)
	return nil
}
