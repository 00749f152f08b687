package cli

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/terraincognita07/healthlog/internal/services"
)

func newExportCommand(options *rootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export records as JSON or as a PDF report",
	}
	cmd.AddCommand(newExportJSONCommand(options), newExportReportCommand(options))
	return cmd
}

func newExportJSONCommand(options *rootOptions) *cobra.Command {
	var (
		dateRange rangeFlags
		toStdout  bool
	)

	cmd := &cobra.Command{
		Use:   "json",
		Short: "Export records in the range as JSON",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(options, func(rt *runtime) error {
				resolved, err := dateRange.resolve(rt)
				if err != nil {
					return err
				}

				if toStdout {
					text, err := rt.exports.ExportJSON(cmd.Context(), resolved)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), text)
					return nil
				}

				file, err := rt.exports.SaveJSON(cmd.Context(), resolved)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Exported data to %s\n", file.Path)
				return nil
			})
		},
	}
	dateRange.register(cmd)
	cmd.Flags().BoolVar(&toStdout, "stdout", false, "Print the JSON instead of writing a file")
	return cmd
}

func newExportReportCommand(options *rootOptions) *cobra.Command {
	var (
		dateRange rangeFlags
		encrypt   bool
		password  string
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render a PDF health report for the range",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return withRuntime(options, func(rt *runtime) error {
				resolved, err := dateRange.resolve(rt)
				if err != nil {
					return err
				}

				reportPassword := ""
				if encrypt || password != "" {
					reportPassword, err = passwordOrPrompt(cmd, newInputReader(cmd), password, "Report password: ")
					if err != nil {
						return err
					}
				}

				file, err := rt.exports.ExportReport(cmd.Context(), resolved, reportPassword)
				if err != nil {
					return err
				}
				if file.Encrypted {
					fmt.Fprintf(cmd.OutOrStdout(), "Encrypted report written to %s\n", file.Path)
				} else {
					fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", file.Path)
				}
				return nil
			})
		},
	}
	dateRange.register(cmd)
	cmd.Flags().BoolVar(&encrypt, "encrypt", false, "Encrypt the report; prompts for the password")
	cmd.Flags().StringVar(&password, "password", "", "Encrypt the report with this password")
	return cmd
}

func newDecryptCommand(options *rootOptions) *cobra.Command {
	var (
		out      string
		password string
	)

	cmd := &cobra.Command{
		Use:   "decrypt <file>",
		Short: "Decrypt an encrypted report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			source := args[0]
			destination := strings.TrimSpace(out)
			if destination == "" {
				destination = strings.TrimSuffix(source, ".enc")
				if destination == source {
					return fmt.Errorf("--out is required when %s has no .enc suffix", filepath.Base(source))
				}
			}

			return withRuntime(options, func(rt *runtime) error {
				blob, err := os.ReadFile(source)
				if err != nil {
					return fmt.Errorf("read encrypted report: %w", err)
				}

				reportPassword, err := passwordOrPrompt(cmd, newInputReader(cmd), password, "Report password: ")
				if err != nil {
					return err
				}

				plaintext, err := rt.crypto.Decrypt(blob, reportPassword)
				if err != nil {
					if services.KindOf(err) == services.KindAuthenticationFailure {
						return fmt.Errorf("decrypt %s: wrong password or corrupted file", filepath.Base(source))
					}
					return fmt.Errorf("decrypt %s: %w", filepath.Base(source), err)
				}

				path, err := services.WriteFileAtomic(filepath.Dir(destination), filepath.Base(destination), plaintext)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Decrypted report written to %s\n", path)
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&out, "out", "", "Destination file, defaults to the input without .enc")
	cmd.Flags().StringVar(&password, "password", "", "Report password; prompts when omitted")
	return cmd
}
