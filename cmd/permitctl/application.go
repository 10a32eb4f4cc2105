package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/internal/app/wizard"
	"github.com/ikkim/permit-backend/pkg/permitclient"
)

func newClient(v *viper.Viper) (*permitclient.Client, error) {
	return permitclient.NewClient(permitclient.Config{
		BaseURL: v.GetString("api_url"),
		Timeout: v.GetDuration("timeout"),
	})
}

// readForm decodes a JSON application form from path, or stdin when path is "-".
// Decoding onto base keeps every field the file leaves out.
func readForm(path string, base model.ApplicationForm) (model.ApplicationForm, error) {
	var r io.Reader = os.Stdin
	if path != "-" {
		f, err := os.Open(path)
		if err != nil {
			return base, err
		}
		defer f.Close()
		r = f
	}
	if err := json.NewDecoder(r).Decode(&base); err != nil {
		return base, fmt.Errorf("failed to read %s: %w", path, err)
	}
	return base, nil
}

// walkSteps fills each wizard step from form and advances, stopping at the
// first step that fails validation.
func walkSteps(out io.Writer, w *wizard.Wizard, form model.ApplicationForm) error {
	steps := []func(){
		func() { w.SetTaxpayer(form.TaxpayerInfo) },
		func() { w.SetBusiness(form.BusinessInfo) },
		func() { w.SetApplicationDetails(form.ApplicationInfo) },
	}
	for _, fill := range steps {
		fill()
		step := w.Step
		if !w.Next() {
			printErrors(out, step.Title(), w.Errors)
			return wizard.ErrValidationFailed
		}
		fmt.Fprintf(out, "✓ %s\n", step.Title())
	}
	if len(form.OfficeReviews) > 0 {
		w.SetOfficeReviews(wizard.EnsureRequiredOffices(form.OfficeReviews))
	}
	return nil
}

func printErrors(out io.Writer, title string, errs []string) {
	fmt.Fprintf(out, "✗ %s\n", title)
	for _, e := range errs {
		fmt.Fprintf(out, "  - %s\n", e)
	}
}

func printResult(out io.Writer, result *model.SubmissionResult) {
	fmt.Fprintln(out, result.Message)
	fmt.Fprintf(out, "Application ID: %s\n", result.ApplicationID)
	if result.BusinessPlateNo != "" {
		fmt.Fprintf(out, "Business Plate No: %s\n", result.BusinessPlateNo)
	}
}

func applyCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "apply",
		Short: "Walk a new application through the wizard and submit it",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, _ := cmd.Flags().GetString("file")
			form, err := readForm(file, model.NewApplicationForm())
			if err != nil {
				return err
			}
			client, err := newClient(v)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			w := wizard.New()
			if err := walkSteps(out, w, form); err != nil {
				return err
			}
			if err := w.Submit(cmd.Context(), client); err != nil {
				printErrors(out, wizard.StepOfficeReviews.Title(), w.Errors)
				return err
			}
			printResult(out, w.Result)
			return nil
		},
	}
	cmd.Flags().StringP("file", "f", "", "application form JSON (- for stdin)")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func modifyCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "modify",
		Short: "Load a submitted application, apply edits and resubmit it",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			file, _ := cmd.Flags().GetString("file")

			client, err := newClient(v)
			if err != nil {
				return err
			}
			stored, err := client.SearchApplication(cmd.Context(), id)
			if err != nil {
				return err
			}

			form := stored.ForModification()
			if file != "" {
				if form, err = readForm(file, form); err != nil {
					return err
				}
			}

			out := cmd.OutOrStdout()
			w := wizard.NewModification(*stored)
			if err := walkSteps(out, w, form); err != nil {
				return err
			}
			if err := w.Submit(cmd.Context(), client); err != nil {
				printErrors(out, wizard.StepOfficeReviews.Title(), w.Errors)
				return err
			}
			printResult(out, w.Result)
			return nil
		},
	}
	cmd.Flags().String("id", "", "application ID")
	cmd.Flags().StringP("file", "f", "", "JSON edits applied over the stored application")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}

func renewCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "renew",
		Short: "Renew a business permit for the next cycle",
		RunE: func(cmd *cobra.Command, args []string) error {
			account, _ := cmd.Flags().GetString("account")
			file, _ := cmd.Flags().GetString("file")

			client, err := newClient(v)
			if err != nil {
				return err
			}
			prior, err := client.RenewSearch(cmd.Context(), account)
			if err != nil {
				return err
			}

			renewal := wizard.NewRenewal(*prior)
			if renewal.BusinessAccountNo == "" {
				renewal.BusinessAccountNo = account
			}
			form, err := readForm(file, renewal.Draft)
			if err != nil {
				return err
			}
			renewal.SetApplicationDetails(form.ApplicationInfo)
			renewal.SetOfficeReviews(wizard.EnsureRequiredOffices(form.OfficeReviews))

			out := cmd.OutOrStdout()
			if err := renewal.Submit(cmd.Context(), client); err != nil {
				printErrors(out, "Renewal", renewal.Errors)
				return err
			}
			printResult(out, renewal.Result)
			return nil
		},
	}
	cmd.Flags().String("account", "", "business account number")
	cmd.Flags().StringP("file", "f", "", "renewal JSON with applicationInfo and officeReviews")
	_ = cmd.MarkFlagRequired("account")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func trackCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "track",
		Short: "Show the release status of an application",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			client, err := newClient(v)
			if err != nil {
				return err
			}
			result, err := client.Track(cmd.Context(), strings.TrimSpace(id))
			if err != nil {
				return err
			}
			for _, line := range result.Display() {
				fmt.Fprintln(cmd.OutOrStdout(), line)
			}
			return nil
		},
	}
	cmd.Flags().String("id", "", "application ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
