package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/nurpe/agrojobs/internal/seed"
)

type SeedCmd struct {
	file string
	open Opener
}

func NewSeedCmd(open Opener) *cobra.Command {
	sc := &SeedCmd{open: open}
	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Load clients, locations and resources from a YAML file",
		RunE:  sc.run,
	}
	cmd.Flags().StringVar(&sc.file, "file", "", "Fixtures file; the built-in sample clients are used when empty")
	return cmd
}

func (sc *SeedCmd) run(cmd *cobra.Command, _ []string) error {
	fixtures, err := sc.fixtures()
	if err != nil {
		return err
	}

	return withDeps(sc.open, func(deps *Deps) error {
		result, err := seed.Apply(cmd.Context(), fixtures, operator, deps.Clients, deps.Resources)
		if err != nil {
			return fmt.Errorf("seed failed after %d clients and %d resources: %w", result.Clients, result.Resources, err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "seeded %d clients, %d locations, %d resources\n",
			result.Clients, result.Locations, result.Resources)
		return nil
	})
}

func (sc *SeedCmd) fixtures() (*seed.Fixtures, error) {
	if sc.file == "" {
		return seed.Default()
	}
	f, err := os.Open(sc.file)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return seed.Read(f)
}
