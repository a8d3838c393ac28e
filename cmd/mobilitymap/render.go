package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Regenerate the map artifact and exit",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		shutdownTracer := startTelemetry(cmd.Context(), cfg)
		defer shutdownTracer()

		pipeline, _, err := buildPipeline(afero.NewOsFs(), cfg)
		if err != nil {
			return err
		}
		result, err := pipeline.Run(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "wrote %s (%d bytes, %d records, %d unmatched)\n",
			result.ArtifactPath, result.ArtifactSize, len(result.Records), len(result.Unmatched))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(renderCmd)
}
