package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ikkim/permit-backend/pkg/logger"
)

func main() {
	_ = godotenv.Load()

	if err := rootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	v := viper.New()
	v.SetEnvPrefix("PERMIT")
	v.AutomaticEnv()
	v.SetDefault("api_url", "http://localhost:8080/api/v1")
	v.SetDefault("timeout", "30s")

	root := &cobra.Command{
		Use:           "permitctl",
		Short:         "Command line client for the business permit portal",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := "warn"
			if v.GetBool("debug") {
				level = "debug"
			}
			logger.Initialize(logger.Config{Level: level, Format: "console", Output: os.Stderr})
		},
	}

	root.PersistentFlags().String("api-url", "", "API base URL (env PERMIT_API_URL)")
	root.PersistentFlags().Duration("timeout", 0, "request timeout (env PERMIT_TIMEOUT)")
	root.PersistentFlags().Bool("debug", false, "log every request")
	_ = v.BindPFlag("api_url", root.PersistentFlags().Lookup("api-url"))
	_ = v.BindPFlag("timeout", root.PersistentFlags().Lookup("timeout"))
	_ = v.BindPFlag("debug", root.PersistentFlags().Lookup("debug"))

	root.AddCommand(
		applyCmd(v),
		modifyCmd(v),
		renewCmd(v),
		trackCmd(v),
		uploadCmd(v),
		signedURLCmd(v),
		adminCmd(v),
	)
	return root
}
