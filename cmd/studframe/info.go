package main

import (
	"fmt"
	"io"
	"sort"

	"github.com/philipparndt/studframe/pkg/analysis"
	"github.com/philipparndt/studframe/pkg/frame"
	"github.com/spf13/cobra"
)

var infoCmd = &cobra.Command{
	Use:   "info [file]",
	Short: "Display general information about a line network",
	Long:  "Resolve the file and show member, joint and operation statistics per frame, fitted curve radii and any invalid joints.",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func init() {
	rootCmd.AddCommand(infoCmd)
}

func runInfo(cmd *cobra.Command, args []string) error {
	filename := args[0]

	network, frames, err := resolveFile(filename, cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, "Line Network Information")
	fmt.Fprintln(out, "========================")
	fmt.Fprintf(out, "Name: %s\n", network.Name)
	fmt.Fprintf(out, "File: %s\n", filename)
	fmt.Fprintf(out, "Frames: %d\n\n", len(frames))

	for _, f := range frames {
		r := analysis.Analyze(f.Structure)

		fmt.Fprintf(out, "Frame %s\n", f.Name)
		fmt.Fprintf(out, "  Members: %d\n", r.MemberCount)
		fmt.Fprintf(out, "  Braces: %d\n", r.BraceCount)

		fmt.Fprintln(out, "  Joints:")
		for _, t := range frame.JointTypes() {
			fmt.Fprintf(out, "    %-12s %d\n", t, r.JointCounts[t])
		}

		fmt.Fprintln(out, "  Lengths:")
		fmt.Fprintf(out, "    Total: %s\n", analysis.FormatMeasurement(r.TotalLength, ""))
		fmt.Fprintf(out, "    Minimum: %s\n", analysis.FormatMeasurement(r.MinLength, ""))
		fmt.Fprintf(out, "    Maximum: %s\n", analysis.FormatMeasurement(r.MaxLength, ""))
		fmt.Fprintf(out, "    Average: %s\n", analysis.FormatMeasurement(r.AvgLength, ""))

		fmt.Fprintf(out, "  Operations: %d\n", r.OperationTotal())
		for _, t := range frame.OperationTypes() {
			if n := r.OperationCounts[t]; n > 0 {
				fmt.Fprintf(out, "    %-12s %d\n", t, n)
			}
		}

		fmt.Fprintln(out, "  Bounding Box:")
		fmt.Fprintf(out, "    Min: %s\n", analysis.FormatVector(r.BoundingBox.Min))
		fmt.Fprintf(out, "    Max: %s\n", analysis.FormatVector(r.BoundingBox.Max))
		fmt.Fprintf(out, "    Size: %s\n", analysis.FormatVector(r.Dimensions))

		if len(r.InvalidJoints) > 0 {
			fmt.Fprintln(out, "  Invalid joints:")
			for _, j := range r.InvalidJoints {
				fmt.Fprintf(out, "    %s / %s\n", j.A, j.B)
			}
		}

		printOutOfRange(out, f.Structure.AllMembers())
		fmt.Fprintln(out)
	}

	arcs, err := analysis.CurveArcs(network)
	if err != nil {
		return err
	}
	if len(arcs) > 0 {
		fmt.Fprintln(out, "Curves:")
		for _, a := range arcs {
			fmt.Fprintf(out, "  %s/%s radius %s center %s (fit deviation %.4f)\n",
				a.Frame, a.Name, analysis.FormatMeasurement(a.Radius, ""), analysis.FormatVector(a.Center), a.StdDev)
		}
	}
	return nil
}

// printOutOfRange lists members with operations off their length, by name
func printOutOfRange(out io.Writer, members []*frame.Member) {
	outside := analysis.OutOfRange(members)
	names := make([]string, 0, len(outside))
	for name := range outside {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(out, "  %s has %d operations outside its length\n", name, len(outside[name]))
	}
}
