package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/biplatform/authkit/pkg/config"
	"github.com/biplatform/authkit/pkg/redis"
	"github.com/biplatform/authkit/pkg/totp"
)

var errCodeRejected = errors.New("code rejected")

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "totpctl",
		Short:         "Two-factor (TOTP) developer tool",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.AddCommand(
		newSecretCmd(),
		newURICmd(),
		newCodeCmd(),
		newVerifyCmd(),
		newRecoveryCmd(),
		newEnrollCmd(),
		newKeygenCmd(),
		newHealthCmd(),
	)
	return root
}

func newSecretCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "secret",
		Short: "Generate a new Base32 secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			secret, err := totp.GenerateSecret()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), secret)
			return err
		},
	}
}

func newURICmd() *cobra.Command {
	var secret, account, issuer string
	cmd := &cobra.Command{
		Use:   "uri",
		Short: "Print the otpauth:// provisioning URI for a secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			uri, err := totp.BuildProvisioningURI(secret, account, issuer)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), uri)
			return err
		},
	}
	cmd.Flags().StringVarP(&secret, "secret", "s", "", "Base32 secret")
	cmd.Flags().StringVarP(&account, "account", "a", "", "account name, usually an email")
	cmd.Flags().StringVarP(&issuer, "issuer", "i", totp.DefaultIssuer, "issuer shown in the authenticator app")
	_ = cmd.MarkFlagRequired("secret")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

func newCodeCmd() *cobra.Command {
	var secret string
	var at int64
	cmd := &cobra.Command{
		Use:   "code",
		Short: "Print the current code for a secret",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			t := time.Now()
			if cmd.Flags().Changed("at") {
				t = time.Unix(at, 0)
			}
			code, err := totp.GenerateTOTPWithTime(secret, t)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), code)
			return err
		},
	}
	cmd.Flags().StringVarP(&secret, "secret", "s", "", "Base32 secret")
	cmd.Flags().Int64VarP(&at, "at", "t", 0, "Unix time in seconds (default now)")
	_ = cmd.MarkFlagRequired("secret")
	return cmd
}

func newVerifyCmd() *cobra.Command {
	var secret, code, subject string
	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Check a code the way the login path does",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			if subject == "" {
				subject = "totpctl"
			}
			ok, err := a.svc.Verify(cmd.Context(), subject, secret, code)
			if err != nil {
				return err
			}
			if !ok {
				return errCodeRejected
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "ok")
			return err
		},
	}
	cmd.Flags().StringVarP(&secret, "secret", "s", "", "Base32 secret")
	cmd.Flags().StringVarP(&code, "code", "c", "", "submitted code")
	cmd.Flags().StringVar(&subject, "subject", "", "subject used for replay protection")
	_ = cmd.MarkFlagRequired("secret")
	_ = cmd.MarkFlagRequired("code")
	return cmd
}

func newRecoveryCmd() *cobra.Command {
	var count int
	cmd := &cobra.Command{
		Use:   "recovery",
		Short: "Generate recovery codes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			codes, err := totp.GenerateRecoveryCodes(count)
			if err != nil {
				return err
			}
			for _, c := range codes {
				if _, err := fmt.Fprintln(cmd.OutOrStdout(), c); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&count, "count", "n", totp.DefaultRecoveryCodeCount, "number of codes")
	return cmd
}

func newEnrollCmd() *cobra.Command {
	var account string
	cmd := &cobra.Command{
		Use:   "enroll",
		Short: "Run a full enrollment and print it as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := loadApp(cmd.Context())
			if err != nil {
				return err
			}
			defer a.close()

			e, err := a.svc.Enroll(cmd.Context(), account)
			if err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(enrollmentOutput{
				ID:                 e.ID.String(),
				Account:            e.Account,
				Secret:             e.Secret,
				SealedSecret:       e.SealedSecret,
				URI:                e.URI,
				RecoveryCodes:      e.RecoveryCodes,
				RecoveryCodeHashes: e.RecoveryCodeHashes,
			})
		},
	}
	cmd.Flags().StringVarP(&account, "account", "a", "", "account name, usually an email")
	_ = cmd.MarkFlagRequired("account")
	return cmd
}

type enrollmentOutput struct {
	ID                 string   `json:"id"`
	Account            string   `json:"account"`
	Secret             string   `json:"secret"`
	SealedSecret       string   `json:"sealed_secret,omitempty"`
	URI                string   `json:"uri"`
	RecoveryCodes      []string `json:"recovery_codes"`
	RecoveryCodeHashes []string `json:"recovery_code_hashes"`
}

func newKeygenCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "keygen",
		Short: "Generate a value for TOTP_ENCRYPTION_KEY",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := totp.GenerateEncodedEncryptionKey()
			if err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.OutOrStdout(), "TOTP_ENCRYPTION_KEY=%s\n", key)
			return err
		},
	}
}

func newHealthCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Check the replay-guard backend",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			var cfg redis.Config
			if err := config.Load(&cfg); err != nil {
				return err
			}
			if cfg.ConnectionURL == "" {
				_, err := fmt.Fprintln(cmd.OutOrStdout(), "replay guard: memory")
				return err
			}

			client, err := redis.Connect(cmd.Context(), cfg)
			if err != nil {
				return err
			}
			defer client.Close()

			if err := redis.Healthcheck(client)(cmd.Context()); err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), "replay guard: redis ok")
			return err
		},
	}
}
