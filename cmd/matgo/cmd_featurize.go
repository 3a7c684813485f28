package main

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/hupe1980/matgo"
	"github.com/hupe1980/matgo/composition"
	"github.com/spf13/cobra"
)

var (
	featurizePrecheck bool
	featurizeOutput   string
)

var featurizeCmd = &cobra.Command{
	Use:   "featurize <formula> [formula...]",
	Short: "Compute descriptor vectors and write them as CSV",
	Long: `Computes the full descriptor vector for each formula and writes one
CSV row per composition, with a header naming every feature.

Example:
  matgo featurize NaCl Fe2O3 LiCoO2 > features.csv`,
	Args: cobra.MinimumNArgs(1),
	RunE: runFeaturize,
}

func init() {
	featurizeCmd.Flags().BoolVar(&featurizePrecheck, "precheck", false, "Skip formulas with incomplete table coverage instead of failing")
	featurizeCmd.Flags().StringVarP(&featurizeOutput, "output", "o", "", "Write CSV to a file instead of stdout")
}

func runFeaturize(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	eng, err := newEngine(ctx, cfg)
	if err != nil {
		return err
	}

	formulas := args

	if featurizePrecheck {
		kept := make([]string, 0, len(args))

		for _, formula := range args {
			comp, err := composition.Parse(formula)
			if err != nil {
				return err
			}

			ok, err := eng.Precheck(ctx, comp)
			if err != nil {
				return err
			}

			if !ok {
				fmt.Fprintf(cmd.ErrOrStderr(), "skipping %s: incomplete table coverage\n", formula)
				continue
			}

			kept = append(kept, formula)
		}

		formulas = kept
	}

	vectors, err := eng.FeaturizeBatch(ctx, formulas)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()

	if featurizeOutput != "" {
		f, err := os.Create(featurizeOutput)
		if err != nil {
			return err
		}
		defer f.Close()

		out = f
	}

	return writeCSV(out, vectors)
}

func writeCSV(w io.Writer, vectors []*matgo.FeatureVector) error {
	if len(vectors) == 0 {
		return nil
	}

	cw := csv.NewWriter(w)

	header := append([]string{"formula"}, vectors[0].Labels()...)
	if err := cw.Write(header); err != nil {
		return err
	}

	for _, fv := range vectors {
		row := make([]string, 0, fv.Len()+1)
		row = append(row, fv.Formula)

		for _, v := range fv.Values() {
			row = append(row, strconv.FormatFloat(v, 'g', -1, 64))
		}

		if err := cw.Write(row); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}
