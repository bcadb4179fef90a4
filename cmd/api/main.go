package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"user-directory-service/cmd/api/app"
	"user-directory-service/internal/docs"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var configPath string

	serve := func(cmd *cobra.Command, _ []string) error {
		a, err := app.New(cmd.Context(), configPath)
		if err != nil {
			return err
		}
		return a.Run(cmd.Context())
	}

	root := &cobra.Command{
		Use:           "user-directory-service",
		Short:         "User directory REST API with gRPC health checks",
		SilenceUsage:  true,
		RunE:          serve,
	}
	root.PersistentFlags().StringVar(&configPath, "config-path", defaultConfigPath(),
		"directory containing app.env (defaults to $CONFIG_PATH or .)")

	root.AddCommand(&cobra.Command{
		Use:   "serve",
		Short: "Run the REST and gRPC servers",
		Args:  cobra.NoArgs,
		RunE:  serve,
	})
	root.AddCommand(newOpenAPICmd())

	root.SetContext(context.Background())
	return root
}

func newOpenAPICmd() *cobra.Command {
	var host string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the Swagger 2.0 document served under /docs",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return writeOpenAPI(cmd.OutOrStdout(), host)
		},
	}
	cmd.Flags().StringVar(&host, "host", "", "override the document host, e.g. api.example.com")

	return cmd
}

func writeOpenAPI(w io.Writer, host string) error {
	s, err := docs.Spec()
	if err != nil {
		return err
	}
	if host != "" {
		s.Host = host
	}

	out, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return fmt.Errorf("encode swagger document: %w", err)
	}

	_, err = fmt.Fprintln(w, string(out))
	return err
}

// defaultConfigPath returns the configuration path
func defaultConfigPath() string {
	if path := os.Getenv("CONFIG_PATH"); path != "" {
		return path
	}
	return "."
}
