package main

import (
	"errors"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ikkim/permit-backend/internal/app/model"
	"github.com/ikkim/permit-backend/pkg/permitclient"
)

func adminCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "admin",
		Short: "Staff dashboard operations",
	}
	cmd.PersistentFlags().String("password", "", "admin password (env PERMIT_ADMIN_PASSWORD)")
	_ = v.BindPFlag("admin_password", cmd.PersistentFlags().Lookup("password"))

	cmd.AddCommand(
		adminListCmd(v),
		adminExportCmd(v),
		adminDeleteCmd(v),
	)
	return cmd
}

// adminClient logs in and returns a client carrying the session token.
func adminClient(cmd *cobra.Command, v *viper.Viper) (*permitclient.Client, error) {
	password := v.GetString("admin_password")
	if password == "" {
		return nil, errors.New("admin password is required: pass --password or set PERMIT_ADMIN_PASSWORD")
	}
	client, err := newClient(v)
	if err != nil {
		return nil, err
	}
	if _, err := client.Login(cmd.Context(), password); err != nil {
		return nil, err
	}
	return client, nil
}

func adminListCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List applications with release statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			search, _ := cmd.Flags().GetString("search")
			client, err := adminClient(cmd, v)
			if err != nil {
				return err
			}
			defer client.Logout(cmd.Context())

			list, err := client.ListApplications(cmd.Context(), search)
			if err != nil {
				return err
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "APPLICATION ID\tTRADE NAME\tTAXPAYER\tAPPLIED\tSTATUS")
			for _, row := range list.Applications {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
					row.ApplicationID,
					row.BusinessTradeName,
					row.TaxpayerName,
					row.DateOfApplication,
					row.Application.ReleaseStatus().Label(),
				)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			printStats(cmd, list.Stats)
			return nil
		},
	}
	cmd.Flags().String("search", "", "filter by business name, taxpayer name or mayor permit number")
	return cmd
}

func printStats(cmd *cobra.Command, stats model.ApplicationStats) {
	fmt.Fprintf(cmd.OutOrStdout(), "\nTotal: %d  Processing: %d  Ready: %d  Completed: %d\n",
		stats.Total, stats.Processing, stats.Ready, stats.Completed)
}

func adminExportCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the dashboard as a spreadsheet",
		RunE: func(cmd *cobra.Command, args []string) error {
			search, _ := cmd.Flags().GetString("search")
			path, _ := cmd.Flags().GetString("out")

			client, err := adminClient(cmd, v)
			if err != nil {
				return err
			}
			defer client.Logout(cmd.Context())

			f, err := os.Create(path)
			if err != nil {
				return err
			}
			if err := client.ExportApplications(cmd.Context(), search, f); err != nil {
				f.Close()
				os.Remove(path)
				return err
			}
			if err := f.Close(); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s\n", path)
			return nil
		},
	}
	cmd.Flags().String("search", "", "filter rows before export")
	cmd.Flags().StringP("out", "o", "applications.xlsx", "output file")
	return cmd
}

func adminDeleteCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete",
		Short: "Delete an application and its office reviews",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetString("id")
			client, err := adminClient(cmd, v)
			if err != nil {
				return err
			}
			defer client.Logout(cmd.Context())

			if err := client.DeleteApplication(cmd.Context(), id); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Application deleted successfully")
			return nil
		},
	}
	cmd.Flags().String("id", "", "application ID")
	_ = cmd.MarkFlagRequired("id")
	return cmd
}
