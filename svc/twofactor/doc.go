// Package twofactor wires the TOTP primitives into the two operations an
// application needs: enrolling an account and checking a code at login.
//
// Enroll returns the secret, its otpauth:// URI, recovery codes and their
// bcrypt hashes; storing them is the caller's job. Verify normalizes the
// submitted code, matches it within the configured drift window and, when a
// totp.ReplayGuard is configured, refuses a time step that was already used.
//
//	auth, _ := totp.New(totp.WithIssuer("BI Platform"))
//	svc, err := twofactor.New(auth,
//		twofactor.WithLogger(log),
//		twofactor.WithReplayGuard(redis.NewReplayStore(client, "", twofactor.ReplayTTL(auth))),
//	)
//
//	enrollment, err := svc.Enroll(ctx, "user@example.com")
//	ok, err := svc.Verify(ctx, userID, storedSecret, submitted)
//
// Secrets, codes and recovery values are never written to the log.
package twofactor
