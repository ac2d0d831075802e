package main

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/prefmesh/prefmesh/engine"
)

var evalFlags struct {
	adID     string
	content  string
	category string
	targets  []string
	jsonOut  bool
}

var evalCmd = &cobra.Command{
	Use:   "eval",
	Short: "Evaluate an advertisement across regional persona agents",
	RunE:  runEval,
}

func init() {
	f := evalCmd.Flags()
	f.StringVar(&evalFlags.adID, "ad-id", "", "Advertisement id (required)")
	f.StringVar(&evalFlags.content, "content", "", "Advertisement content text (required)")
	f.StringVar(&evalFlags.category, "category", "", "Advertisement category")
	f.StringSliceVar(&evalFlags.targets, "targets", nil, "Target region ids (default: all known regions)")
	f.BoolVar(&evalFlags.jsonOut, "json", false, "Print the full report as JSON")

	_ = evalCmd.MarkFlagRequired("ad-id")
	_ = evalCmd.MarkFlagRequired("content")
}

func runEval(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	mesh, err := buildMesh(cfg)
	if err != nil {
		return err
	}

	ad := engine.Ad{ID: evalFlags.adID, Content: evalFlags.content, Category: evalFlags.category}
	targets := evalFlags.targets
	if len(targets) == 0 {
		targets = mesh.Registry().IDs()
	}

	report, err := mesh.Evaluate(cmd.Context(), ad, targets)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if evalFlags.jsonOut {
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(report)
	}

	fmt.Fprintf(out, "Run:    %s\n", report.RunID)
	fmt.Fprintf(out, "Ad:     %s\n", report.AdID)
	fmt.Fprintf(out, "State:  %s (%d succeeded, %d failed)\n", report.State, len(report.Succeeded), len(report.Failed))
	for _, r := range report.Succeeded {
		line := fmt.Sprintf("  %-10s liking=%.2f purchase_intent=%.2f", r.AgentID, r.Record.Liking, r.Record.PurchaseIntent)
		if r.Aggregate != nil {
			line += fmt.Sprintf(" (aggregate %.2f/%.2f, %d neighbors)", r.Aggregate.AggregateLiking, r.Aggregate.AggregatePurchaseIntent, len(r.Aggregate.NeighborInfluence))
		}
		fmt.Fprintln(out, line)
	}
	for _, f := range report.Failed {
		fmt.Fprintf(out, "  %-10s FAILED: %s\n", f.AgentID, f.Error)
	}
	fmt.Fprintf(out, "Liking ranking:          %s\n", strings.Join(report.LikingRanking, " > "))
	fmt.Fprintf(out, "Purchase intent ranking: %s\n", strings.Join(report.PurchaseIntentRanking, " > "))
	for _, c := range report.Clusters {
		if c.NoData {
			fmt.Fprintf(out, "  cluster %-18s no data\n", c.Cluster)
			continue
		}
		fmt.Fprintf(out, "  cluster %-18s agents=%d liking=%.2f purchase_intent=%.2f\n", c.Cluster, c.Agents, c.MeanLiking, c.MeanPurchaseIntent)
	}
	return nil
}
