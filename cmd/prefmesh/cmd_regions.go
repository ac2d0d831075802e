package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prefmesh/prefmesh/region"
)

var regionsCmd = &cobra.Command{
	Use:   "regions",
	Short: "List the regions in the configured dataset",
	RunE:  runRegions,
}

func runRegions(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	dataset := region.Default()
	if cfg.DatasetPath != "" {
		dataset, err = region.LoadFile(cfg.DatasetPath)
		if err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	for _, r := range dataset.Regions {
		neighbors := dataset.Adjacency[r.ID]
		fmt.Fprintf(out, "%-10s area=%-8s cluster=%-16s neighbors=[%s]\n", r.ID, r.Area, r.Cluster, strings.Join(neighbors, ", "))
	}
	return nil
}
