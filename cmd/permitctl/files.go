package main

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func uploadCmd(v *viper.Viper) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "upload PATH",
		Short: "Upload a PDF, JPEG or PNG document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			test, _ := cmd.Flags().GetBool("test")
			client, err := newClient(v)
			if err != nil {
				return err
			}
			result, err := client.UploadFile(cmd.Context(), args[0], test)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, result.Message)
			fmt.Fprintf(out, "Path: %s\n", result.Path)
			if result.URL != "" {
				fmt.Fprintf(out, "URL: %s\n", result.URL)
			}
			return nil
		},
	}
	cmd.Flags().Bool("test", false, "store under test/ to check the bucket")
	return cmd
}

func signedURLCmd(v *viper.Viper) *cobra.Command {
	return &cobra.Command{
		Use:   "signed-url PATH",
		Short: "Print a time-limited download link for a stored document",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := newClient(v)
			if err != nil {
				return err
			}
			url, err := client.SignedURL(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), url)
			return nil
		},
	}
}
