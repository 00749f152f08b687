package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/healthlog/internal/security"
	"github.com/terraincognita07/healthlog/internal/services"
)

const generatedPasswordAlphabet = "ABCDEFGHJKLMNPQRSTUVWXYZabcdefghijkmnopqrstuvwxyz23456789"

var errPasswordAlreadySet = errors.New("a report password is already set; use --force to replace it")

func newPasswordCommand(options *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "password",
		Short: "Manage the report password",
	}
	cmd.AddCommand(
		newPasswordStatusCommand(options),
		newPasswordSetCommand(options),
		newPasswordGenerateCommand(options),
		newPasswordVerifyCommand(options),
		newPasswordClearCommand(options),
	)
	return cmd
}

func newPasswordStatusCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show whether a report password is set",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(options, func(rt *runtime) error {
				hasPassword, err := rt.passwords.Status()
				if err != nil {
					return fmt.Errorf("load password status: %w", err)
				}
				if hasPassword {
					fmt.Fprintln(cmd.OutOrStdout(), "Report password: set")
				} else {
					fmt.Fprintln(cmd.OutOrStdout(), "Report password: not set")
				}
				return nil
			})
		},
	}
}

func newPasswordSetCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "set",
		Short: "Set or change the report password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(options, func(rt *runtime) error {
				reader := newInputReader(cmd)

				hasPassword, err := rt.passwords.Status()
				if err != nil {
					return fmt.Errorf("load password status: %w", err)
				}
				current := ""
				if hasPassword {
					if current, err = promptPassword(cmd, reader, "Current password: "); err != nil {
						return err
					}
				}
				newPassword, err := promptPassword(cmd, reader, "New password: ")
				if err != nil {
					return err
				}
				confirm, err := promptPassword(cmd, reader, "Confirm password: ")
				if err != nil {
					return err
				}

				if err := rt.passwords.Change(current, newPassword, confirm); err != nil {
					return describePasswordError(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "✅ Report password updated")
				return nil
			})
		},
	}
}

func newPasswordGenerateCommand(options *rootOptions) *cobra.Command {
	var (
		length int
		force  bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a random report password, store it and print it once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(options, func(rt *runtime) error {
				hasPassword, err := rt.passwords.Status()
				if err != nil {
					return fmt.Errorf("load password status: %w", err)
				}
				if hasPassword && !force {
					return errPasswordAlreadySet
				}

				password, err := generatePassword(length)
				if err != nil {
					return fmt.Errorf("generate password: %w", err)
				}
				if err := rt.passwords.Replace(password); err != nil {
					return fmt.Errorf("store password: %w", err)
				}

				out := cmd.OutOrStdout()
				fmt.Fprintln(out, "✅ Report password generated")
				fmt.Fprintf(out, "Password: %s\n", password)
				fmt.Fprintln(out, "It is not shown again. Keep it somewhere safe.")
				return nil
			})
		},
	}
	cmd.Flags().IntVar(&length, "length", 16, "Password length (minimum 8)")
	cmd.Flags().BoolVar(&force, "force", false, "Replace an existing password")
	return cmd
}

func newPasswordVerifyCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "verify",
		Short: "Check a password against the stored one",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(options, func(rt *runtime) error {
				password, err := promptPassword(cmd, newInputReader(cmd), "Password: ")
				if err != nil {
					return err
				}
				ok, err := rt.passwords.Verify(password)
				if err != nil {
					return fmt.Errorf("verify password: %w", err)
				}
				if !ok {
					return errors.New("password does not match")
				}
				fmt.Fprintln(cmd.OutOrStdout(), "✅ Password matches")
				return nil
			})
		},
	}
}

func newPasswordClearCommand(options *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clear",
		Short: "Remove the report password",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(options, func(rt *runtime) error {
				hasPassword, err := rt.passwords.Status()
				if err != nil {
					return fmt.Errorf("load password status: %w", err)
				}
				if !hasPassword {
					fmt.Fprintln(cmd.OutOrStdout(), "No report password is set")
					return nil
				}

				current, err := promptPassword(cmd, newInputReader(cmd), "Current password: ")
				if err != nil {
					return err
				}
				if err := rt.passwords.Clear(current); err != nil {
					return describePasswordError(err)
				}
				fmt.Fprintln(cmd.OutOrStdout(), "✅ Report password cleared")
				return nil
			})
		},
	}
}

// generatePassword draws from an alphabet without look-alike characters until
// the result passes the strength policy.
func generatePassword(length int) (string, error) {
	if length < 8 {
		length = 8
	}

	for attempt := 0; attempt < 64; attempt++ {
		candidate, err := security.RandomString(length, generatedPasswordAlphabet)
		if err != nil {
			return "", err
		}
		if services.ValidatePasswordStrength(candidate) == nil {
			return candidate, nil
		}
	}
	return "", errors.New("no candidate passed the strength policy")
}

func describePasswordError(err error) error {
	switch {
	case errors.Is(err, services.ErrCurrentPasswordInvalid):
		return errors.New("current password is incorrect")
	case errors.Is(err, services.ErrPasswordMismatch):
		return errors.New("passwords do not match")
	case errors.Is(err, services.ErrPasswordMustDiffer):
		return errors.New("new password must differ from the current one")
	case errors.Is(err, services.ErrWeakPassword):
		return errors.New("password needs at least 8 characters with upper case, lower case and digits")
	case errors.Is(err, services.ErrPasswordInputInvalid):
		return errors.New("password must not be empty")
	default:
		return err
	}
}
