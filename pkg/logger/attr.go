package logger

import "log/slog"

// Error records err under "error". A nil err yields an empty Attr, which slog drops.
func Error(err error) slog.Attr {
	if err == nil {
		return slog.Attr{}
	}
	return slog.Any("error", err)
}

// Subject records the account a two-factor operation is about.
func Subject(id string) slog.Attr {
	return slog.String("subject", id)
}

// EnrollmentID records the enrollment identifier.
func EnrollmentID(id any) slog.Attr {
	if id == nil {
		return slog.Attr{}
	}
	return slog.Any("enrollment_id", id)
}

// Counter records a TOTP time step.
func Counter(c uint64) slog.Attr {
	return slog.Uint64("counter", c)
}

// Component records the component name under the key "component".
func Component(name string) slog.Attr {
	return slog.String("component", name)
}

// Event records the event name under the key "event".
func Event(name string) slog.Attr {
	return slog.String("event", name)
}
