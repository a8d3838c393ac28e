package main

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

var strictCheck bool

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Report country names that have no boundary feature",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		pipeline, _, err := buildPipeline(afero.NewOsFs(), cfg)
		if err != nil {
			return err
		}
		records, warnings, err := pipeline.Check(cmd.Context())
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "%d records, mapping set %q, %d unmatched\n", len(records), cfg.Reconcile.MappingSet, len(warnings))
		for _, w := range warnings {
			fmt.Fprintf(out, "  %s\n", w.Error())
		}

		if strictCheck && len(warnings) > 0 {
			return fmt.Errorf("%d unmatched country names", len(warnings))
		}
		return nil
	},
}

func init() {
	checkCmd.Flags().BoolVar(&strictCheck, "strict", false, "exit non-zero when any name is unmatched")
	rootCmd.AddCommand(checkCmd)
}
