package main

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/san-kum/phasekit/internal/config"
	"github.com/san-kum/phasekit/internal/hull"
	"github.com/san-kum/phasekit/internal/oqmd"
	"github.com/san-kum/phasekit/internal/phase"
	"github.com/san-kum/phasekit/internal/tui"
	"github.com/san-kum/phasekit/internal/viz"
)

var (
	datasetFile string
	presetName  string
	element     string
	dimension   int
	outFile     string
	filterExpr  string
	limit       int
	baseURL     string
	timeout     time.Duration
	plotWidth   int
	plotHeight  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "phasekit",
		Short: "thermodynamic phase data toolkit",
	}
	rootCmd.PersistentFlags().StringVar(&datasetFile, "dataset", "", "dataset file (yaml)")
	rootCmd.PersistentFlags().StringVar(&presetName, "preset", "", "built-in sample space")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list phases in a dataset",
		RunE:  runList,
	}
	listCmd.Flags().StringVar(&element, "element", "", "only phases containing this element")
	listCmd.Flags().IntVar(&dimension, "dim", 0, "only phases with this many elements")

	hullCmd := &cobra.Command{
		Use:   "hull [eltA] [eltB]",
		Short: "binary hull and stability analysis",
		Args:  cobra.ExactArgs(2),
		RunE:  runHull,
	}
	hullCmd.Flags().IntVar(&plotWidth, "width", 60, "plot width")
	hullCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")

	fetchCmd := &cobra.Command{
		Use:   "fetch [space]",
		Short: "fetch formation energies from OQMD",
		Args:  cobra.ExactArgs(1),
		RunE:  runFetch,
	}
	fetchCmd.Flags().StringVar(&outFile, "out", "", "write dataset to file instead of stdout")
	fetchCmd.Flags().StringVar(&filterExpr, "filter", "", "raw OQMD filter expression")
	fetchCmd.Flags().IntVar(&limit, "limit", 0, "fetch a single page of this size")
	fetchCmd.Flags().StringVar(&baseURL, "url", oqmd.DefaultBaseURL, "API base URL")
	fetchCmd.Flags().DurationVar(&timeout, "timeout", 30*time.Second, "request timeout")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in sample spaces",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				fmt.Printf("%s\t%s\n", name, config.Presets[name].Description)
			}
			return nil
		},
	}

	browseCmd := &cobra.Command{
		Use:   "browse",
		Short: "interactive phase browser",
		RunE: func(cmd *cobra.Command, args []string) error {
			pd, err := loadPhases()
			if err != nil {
				return err
			}
			return tui.Run(pd)
		},
	}

	rootCmd.AddCommand(listCmd, hullCmd, fetchCmd, presetsCmd, browseCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func loadPhases() (*phase.Data, error) {
	var ds *config.Dataset
	switch {
	case datasetFile != "":
		loaded, err := config.Load(datasetFile)
		if err != nil {
			return nil, err
		}
		ds = loaded
	case presetName != "":
		ds = config.GetPreset(presetName)
		if ds == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", presetName, config.ListPresets())
		}
	default:
		return nil, fmt.Errorf("specify --dataset or --preset")
	}

	phases, err := ds.Build()
	if err != nil {
		return nil, err
	}
	pd := phase.NewData()
	pd.AddAll(phases)
	return pd, nil
}

func runList(cmd *cobra.Command, args []string) error {
	pd, err := loadPhases()
	if err != nil {
		return err
	}

	phases := pd.Phases()
	if element != "" {
		phases = pd.ByElement(element)
	}
	if dimension > 0 {
		phases = pd.ByDim(dimension)
	}
	fmt.Print(viz.PhaseTable(phases))
	fmt.Printf("space: %v\n", pd.Space())
	return nil
}

func runHull(cmd *cobra.Command, args []string) error {
	pd, err := loadPhases()
	if err != nil {
		return err
	}

	d, err := hull.Binary(pd, args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Println(viz.HullPlot(d, plotWidth, plotHeight))
	return nil
}

func runFetch(cmd *cobra.Command, args []string) error {
	client := oqmd.NewClient(oqmd.WithBaseURL(baseURL), oqmd.WithTimeout(timeout))
	ctx := cmd.Context()

	var records []phase.Record
	if limit > 0 || filterExpr != "" {
		resp, err := client.FormationEnergies(ctx, oqmd.Query{
			Composition: args[0],
			Filter:      filterExpr,
			Limit:       limit,
		})
		if err != nil {
			return err
		}
		records = resp.Data
	} else {
		var err error
		records, err = client.PhaseSpace(ctx, args[0])
		if err != nil {
			return err
		}
	}

	pd := phase.NewData()
	if err := pd.ReadAPIData(records, true); err != nil {
		return err
	}

	ds := &config.Dataset{Description: fmt.Sprintf("OQMD %s", args[0])}
	for _, p := range pd.Phases() {
		ds.Phases = append(ds.Phases, config.Entry{
			Composition: p.Comp().Format(),
			Energy:      p.Energy(),
		})
	}

	if outFile != "" {
		if err := config.Save(outFile, ds); err != nil {
			return err
		}
		fmt.Printf("wrote %s (%d phases)\n", outFile, pd.Len())
		return nil
	}
	fmt.Print(viz.PhaseTable(pd.Phases()))
	return nil
}
