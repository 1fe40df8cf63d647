package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/Gobd/valerror/openapi"
	"github.com/spf13/cobra"
)

func newRootCmd() *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "valerror-demo",
		Short:         "Demo API answering validation failures with a 400 envelope",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to a YAML config file")

	root.AddCommand(newServeCmd(&configPath), newOpenAPICmd(&configPath))
	return root
}

func newServeCmd(configPath *string) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the demo API server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") {
				cfg.Addr = addr
			}
			return serve(cmd.Context(), cfg)
		},
	}
	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	return cmd
}

func newOpenAPICmd(configPath *string) *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "openapi",
		Short: "Print the demo API's patched OpenAPI document",
		RunE: func(cmd *cobra.Command, _ []string) error {
			f := openapi.Format(format)
			if f != openapi.JSON && f != openapi.YAML {
				return fmt.Errorf("unknown format %q: want json or yaml", format)
			}
			cfg, err := loadConfig(*configPath)
			if err != nil {
				return err
			}

			a, _ := newAPI(cfg)
			doc, err := a.OpenAPI(cmd.Context())
			if err != nil {
				return err
			}
			b, _, err := openapi.Marshal(doc, f)
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), string(b))
			return err
		},
	}
	cmd.Flags().StringVar(&format, "format", string(openapi.JSON), "output format: json or yaml")
	return cmd
}

func serve(ctx context.Context, cfg fileConfig) error {
	a, _ := newAPI(cfg)
	log := cfg.logger()

	// Build the document up front so a broken hook fails at startup.
	if _, err := a.OpenAPI(ctx); err != nil {
		return err
	}

	srv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           a,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info("listening", "addr", cfg.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		log.Info("shutting down")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	}
}
