package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"karat/internal/api"
	"karat/internal/logging"

	"github.com/spf13/cobra"
)

func newExportCmd() *cobra.Command {
	var format string
	var output string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Download the client list as CSV or JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := boot()
			if err != nil {
				return err
			}
			defer logging.CloseAll()

			export, err := a.client.ExportClients(context.Background(), api.ExportFormat(format))
			if err != nil {
				return err
			}

			path := output
			if path == "" {
				path = export.Filename
			}
			if path == "" {
				path = fmt.Sprintf("clients-%s.%s", time.Now().Format("2006-01-02"), format)
			}

			if err := os.WriteFile(path, export.Data, 0o644); err != nil {
				return fmt.Errorf("failed to write export: %w", err)
			}
			logging.Export("wrote %d bytes to %s", len(export.Data), path)
			fmt.Printf("Wrote %s (%d bytes)\n", path, len(export.Data))
			return nil
		},
	}

	cmd.Flags().StringVarP(&format, "format", "f", "csv", "export format: csv or json")
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (defaults to the server-suggested name)")
	return cmd
}

func newImportCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "import [file]",
		Short: "Upload a product catalog CSV",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := boot()
			if err != nil {
				return err
			}
			defer logging.CloseAll()

			file, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer file.Close()

			resp, err := a.client.ImportProducts(context.Background(), file.Name(), file)
			if err != nil {
				return err
			}
			if !resp.Success {
				return fmt.Errorf("import rejected: %s", resp.Message)
			}
			if resp.Message != "" {
				fmt.Println(resp.Message)
			} else {
				fmt.Println("Import complete.")
			}
			return nil
		},
	}
}
