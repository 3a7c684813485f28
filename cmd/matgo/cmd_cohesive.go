package main

import (
	"errors"
	"fmt"

	"github.com/hupe1980/matgo"
	"github.com/hupe1980/matgo/composition"
	"github.com/hupe1980/matgo/energy"
	"github.com/spf13/cobra"
)

var cohesiveCmd = &cobra.Command{
	Use:   "cohesive <formula> [formula...]",
	Short: "Derive cohesive energies from the materials database",
	Long: `Looks up the most stable known structure of each formula and derives
its cohesive energy from the formation energy and the embedded elemental
references. Requires a materials API key (materials.api_key in the config
file or MATGO_MP_API_KEY).`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCohesive,
}

func runCohesive(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	if cfg.Materials.APIKey == "" {
		return errors.New("no materials API key: set materials.api_key or MATGO_MP_API_KEY")
	}

	eng := matgo.New(
		matgo.WithEnergyClient(energy.NewRESTClient(cfg.Materials.APIKey)),
		matgo.WithLogger(newLogger()),
	)

	for _, formula := range args {
		comp, err := composition.Parse(formula)
		if err != nil {
			return err
		}

		rec, err := eng.CohesiveEnergy(ctx, comp)
		if err != nil {
			return err
		}

		fmt.Fprintf(cmd.OutOrStdout(), "%s\tformation %.4f eV/atom\tcohesive %.4f eV/atom\n",
			rec.Formula, rec.FormationEnergy, rec.CohesiveEnergy)
	}

	return nil
}
