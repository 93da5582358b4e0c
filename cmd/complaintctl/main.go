package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	var (
		envFile string
		verbose bool
	)

	rootCmd := &cobra.Command{
		Use:           "complaintctl",
		Short:         "Administration of the complaint map store",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "env file read before the process environment")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "log store activity")

	opts := func() globalOptions {
		return globalOptions{envFile: envFile, verbose: verbose}
	}

	rootCmd.AddCommand(initCmd(opts))
	rootCmd.AddCommand(importLegacyCmd(opts))
	rootCmd.AddCommand(statsCmd(opts))

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func initCmd(opts func() globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "init",
		Short: "Create or upgrade the complaints schema",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(cmd.Context(), opts())
			if err != nil {
				return err
			}
			defer env.close()
			return runInit(cmd.Context(), env, cmd.OutOrStdout())
		},
	}
}

func importLegacyCmd(opts func() globalOptions) *cobra.Command {
	var source, table string

	cmd := &cobra.Command{
		Use:   "import-legacy",
		Short: "Copy complaints from a legacy sqlite file into the store",
		Long: "Copies rows from a legacy sqlite table whose columns use alternate names " +
			"(type, categorie, latitude, intensite, date_heure...). Issue types are " +
			"normalized and original timestamps are kept. The copy is transactional " +
			"and each source table can be imported only once.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(cmd.Context(), opts())
			if err != nil {
				return err
			}
			defer env.close()
			return runImportLegacy(cmd.Context(), env, source, table, cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVar(&source, "source", "", "legacy sqlite file")
	cmd.Flags().StringVar(&table, "table", "complaints", "legacy table name")
	_ = cmd.MarkFlagRequired("source")
	return cmd
}

func statsCmd(opts func() globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Print complaint counts and mean intensity per issue type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			env, err := setup(cmd.Context(), opts())
			if err != nil {
				return err
			}
			defer env.close()
			return runStats(cmd.Context(), env, cmd.OutOrStdout())
		},
	}
}
