package main

import (
	"encoding/json"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/vacationreport/internal/config"
	"github.com/nao1215/vacationreport/internal/distance"
	"github.com/nao1215/vacationreport/internal/model"
	"github.com/nao1215/vacationreport/internal/plan"
	"github.com/nao1215/vacationreport/internal/report"
	"github.com/spf13/cobra"
)

// NewPlanCmd creates the plan command.
func NewPlanCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Plan a short route from Berlin through the cities in distances.csv",
		Long: `Plan orders the cities of distances.csv into an open route that starts
in Berlin and visits every city once without returning.

Legs from Berlin use the distances in distances.csv. Legs between two
other cities use the great-circle distance between their coordinates.
The order comes from a nearest-neighbour tour improved with 2-opt.

Examples:
  # Plan a route through every city in distances.csv
  vacationreport plan

  # Plan a route through a custom set of cities
  vacationreport plan --city Paris --city Vienna --city Rome

  # Keep the plain nearest-neighbour order
  vacationreport plan --no-optimize`,
		Args: cobra.NoArgs,
		RunE: runPlanCmd,
	}

	cmd.Flags().StringSliceP("city", "C", nil,
		"Plan a route through these cities instead of every city in distances.csv")
	cmd.Flags().Bool("no-optimize", false,
		"Skip the 2-opt improvement")
	cmd.Flags().BoolP("json", "j", false,
		"Output the route in JSON format")
	cmd.Flags().BoolP("markdown", "m", false,
		"Output the route in Markdown format")

	return cmd
}

// RouteStop is one row of the plan command output.
type RouteStop struct {
	Order int    `json:"order"`
	City  string `json:"city"`
	LegKm int    `json:"leg_km"`
}

// RouteResult is the plan command output. Distances are rounded to whole km.
type RouteResult struct {
	Start   string      `json:"start"`
	Stops   []RouteStop `json:"stops"`
	TotalKm int         `json:"total_km"`
}

// newRouteResult rounds a planned route for display.
func newRouteResult(start string, route *plan.Route) *RouteResult {
	result := &RouteResult{
		Start:   start,
		Stops:   make([]RouteStop, 0, len(route.Stops)),
		TotalKm: int(math.Round(route.TotalKm)),
	}
	for i, s := range route.Stops {
		result.Stops = append(result.Stops, RouteStop{
			Order: i + 1,
			City:  s.City,
			LegKm: int(math.Round(s.LegKm)),
		})
	}
	return result
}

// runPlanCmd executes the plan command.
func runPlanCmd(cmd *cobra.Command, _ []string) error {
	jsonOutput, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}
	markdownOutput, err := cmd.Flags().GetBool("markdown")
	if err != nil {
		return err
	}
	if jsonOutput && markdownOutput {
		return fmt.Errorf("configuration error: %w", config.ErrConflictingReportFormats)
	}
	noOptimize, err := cmd.Flags().GetBool("no-optimize")
	if err != nil {
		return err
	}
	cities, err := cmd.Flags().GetStringSlice("city")
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger := setupLogger(cmd, cfg)

	rep, err := distance.NewLoader(distance.WithLogger(logger)).LoadReport(distance.FileName)
	if err != nil {
		return err
	}
	if len(cities) == 0 {
		cities = cityNames(rep)
	}

	var opts []plan.Option
	if noOptimize {
		opts = append(opts, plan.WithMaxIterations(0))
	}
	planner := plan.NewPlanner(plan.NewDistanceFunc(model.StartingCity, rep.Lookup()), opts...)

	route, err := planner.Plan(model.StartingCity, cities)
	if err != nil {
		return fmt.Errorf("cannot plan route: %w", err)
	}
	logger.Debug("route planned", "stops", len(route.Stops), "totalKm", route.TotalKm, "optimized", !noOptimize)

	result := newRouteResult(model.StartingCity, route)
	out := cmd.OutOrStdout()
	switch {
	case jsonOutput:
		return outputRouteJSON(out, result)
	case markdownOutput:
		return outputRouteMarkdown(out, result)
	default:
		return outputRouteText(out, result)
	}
}

// cityNames returns the report cities in file order.
func cityNames(rep *model.Report) []string {
	names := make([]string, 0, rep.Len())
	for _, e := range rep.Entries {
		names = append(names, e.City)
	}
	return names
}

// outputRouteJSON outputs the route in JSON format.
func outputRouteJSON(w io.Writer, result *RouteResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// outputRouteMarkdown outputs the route in Markdown format.
func outputRouteMarkdown(w io.Writer, result *RouteResult) error {
	md := markdown.NewMarkdown(w)

	md.H1("Route from " + result.Start)
	md.PlainText("")

	rows := make([][]string, 0, len(result.Stops))
	for _, s := range result.Stops {
		leg := "-"
		if s.Order > 1 {
			leg = strconv.Itoa(s.LegKm)
		}
		rows = append(rows, []string{strconv.Itoa(s.Order), s.City, leg})
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "City", "Leg (km)"},
		Rows:   rows,
	})
	md.PlainText("")
	md.PlainTextf("Total distance (no return to start): %d km", result.TotalKm)

	return md.Build()
}

// outputRouteText outputs the route in human-readable text format.
func outputRouteText(w io.Writer, result *RouteResult) error {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Route from %s (%d stops)\n", result.Start, len(result.Stops))
	sb.WriteString(report.Separator)
	sb.WriteString("\n")
	for _, s := range result.Stops {
		if s.Order == 1 {
			fmt.Fprintf(&sb, "%d. %s\n", s.Order, s.City)
			continue
		}
		fmt.Fprintf(&sb, "%d. %s - %d km\n", s.Order, s.City, s.LegKm)
	}
	fmt.Fprintf(&sb, "Total distance (no return to start): %d km\n", result.TotalKm)

	_, err := io.WriteString(w, sb.String())
	return err
}
