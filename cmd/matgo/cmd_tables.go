package main

import (
	"fmt"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	awss3 "github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/hupe1980/matgo/element"
	"github.com/hupe1980/matgo/magpie"
	s3source "github.com/hupe1980/matgo/magpie/s3"
	"github.com/spf13/cobra"
)

var tablesCmd = &cobra.Command{
	Use:   "tables",
	Short: "Inspect and synchronize property tables",
}

var tablesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the properties of the configured source",
	Args:  cobra.NoArgs,
	RunE:  runTablesList,
}

var tablesShowCmd = &cobra.Command{
	Use:   "show <property>",
	Short: "Print one property table, one line per atomic number",
	Args:  cobra.ExactArgs(1),
	RunE:  runTablesShow,
}

var (
	syncBucket      string
	syncPrefix      string
	syncDir         string
	syncConcurrency int
)

var tablesSyncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Download a table dataset from S3 into a local directory",
	Long: `Downloads every property table of an S3 dataset into a local
directory, so later runs can use the dir source without network access.

Example:
  matgo tables sync --bucket matgo-tables --prefix magpie/ --dir ./data/magpie`,
	Args: cobra.NoArgs,
	RunE: runTablesSync,
}

func init() {
	tablesSyncCmd.Flags().StringVar(&syncBucket, "bucket", "", "S3 bucket (default: config s3.bucket)")
	tablesSyncCmd.Flags().StringVar(&syncPrefix, "prefix", "", "Key prefix of the dataset (default: config s3.prefix)")
	tablesSyncCmd.Flags().StringVar(&syncDir, "dir", "", "Target directory (default: config data.dir)")
	tablesSyncCmd.Flags().IntVar(&syncConcurrency, "concurrency", 4, "Parallel downloads")

	tablesCmd.AddCommand(tablesListCmd)
	tablesCmd.AddCommand(tablesShowCmd)
	tablesCmd.AddCommand(tablesSyncCmd)
}

func runTablesList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src, err := newSource(ctx, cfg)
	if err != nil {
		return err
	}

	store := magpie.NewStore(src)

	catalog, err := store.Catalog(ctx)
	if err != nil {
		return err
	}

	units, err := store.Units(ctx)
	if err != nil {
		return err
	}

	for _, property := range catalog {
		if unit := units[property]; unit != "" {
			fmt.Fprintf(cmd.OutOrStdout(), "%s [%s]\n", property, unit)
			continue
		}

		fmt.Fprintln(cmd.OutOrStdout(), property)
	}

	return nil
}

func runTablesShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	src, err := newSource(ctx, cfg)
	if err != nil {
		return err
	}

	table, err := magpie.NewStore(src).Load(ctx, args[0])
	if err != nil {
		return err
	}

	if unit := table.Unit(); unit != "" {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s [%s]\n", table.Property(), unit)
	} else {
		fmt.Fprintf(cmd.OutOrStdout(), "# %s\n", table.Property())
	}

	symbols := element.Default()

	for z := 1; z <= table.Len(); z++ {
		symbol, err := symbols.Symbol(z)
		if err != nil {
			symbol = "?"
		}

		if v, ok := table.Value(z); ok {
			fmt.Fprintf(cmd.OutOrStdout(), "%3d %-3s %g\n", z, symbol, v)
			continue
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%3d %-3s -\n", z, symbol)
	}

	return nil
}

func runTablesSync(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	bucket := syncBucket
	if bucket == "" {
		bucket = cfg.S3.Bucket
	}

	if bucket == "" {
		return fmt.Errorf("no bucket: pass --bucket or set s3.bucket")
	}

	prefix := syncPrefix
	if prefix == "" {
		prefix = cfg.S3.Prefix
	}

	dir := syncDir
	if dir == "" {
		dir = cfg.Data.Dir
	}

	awsCfg, err := awsconfig.LoadDefaultConfig(ctx)
	if err != nil {
		return fmt.Errorf("load AWS config: %w", err)
	}

	n, err := s3source.DownloadDataset(ctx, awss3.NewFromConfig(awsCfg), bucket, prefix, dir, syncConcurrency)
	if err != nil {
		return err
	}

	fmt.Fprintf(cmd.OutOrStdout(), "downloaded %d tables to %s\n", n, dir)

	return nil
}
