package main

import (
	"fmt"
	"sort"

	"github.com/philipparndt/studframe/pkg/analysis"
	"github.com/spf13/cobra"
)

var (
	membersCount    int
	membersLongest  bool
	membersShortest bool
	membersOps      bool
)

var membersCmd = &cobra.Command{
	Use:   "members [file]",
	Short: "List resolved members and their operations",
	Long:  "Resolve the file and display each member's length, web normal and, optionally, its operations in location order.",
	Args:  cobra.ExactArgs(1),
	RunE:  runMembers,
}

func init() {
	rootCmd.AddCommand(membersCmd)

	membersCmd.Flags().IntVarP(&membersCount, "count", "n", 20, "Number of members to display per frame")
	membersCmd.Flags().BoolVarP(&membersLongest, "longest", "l", false, "Sort by length, longest first")
	membersCmd.Flags().BoolVarP(&membersShortest, "shortest", "s", false, "Sort by length, shortest first")
	membersCmd.Flags().BoolVar(&membersOps, "ops", false, "Show operations")
	membersCmd.MarkFlagsMutuallyExclusive("longest", "shortest")
}

func runMembers(cmd *cobra.Command, args []string) error {
	_, frames, err := resolveFile(args[0], cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range frames {
		members := f.Structure.AllMembers()
		switch {
		case membersLongest:
			sort.SliceStable(members, func(i, j int) bool { return members[i].Length() > members[j].Length() })
		case membersShortest:
			sort.SliceStable(members, func(i, j int) bool { return members[i].Length() < members[j].Length() })
		}
		if len(members) > membersCount {
			members = members[:membersCount]
		}

		fmt.Fprintf(out, "Frame %s (%d members, %d braces)\n", f.Name, len(f.Structure.Members), len(f.Structure.Braces))
		fmt.Fprintf(out, "%-16s %-12s %-32s %-6s\n", "Name", "Length", "Normal", "Ops")
		fmt.Fprintln(out, "---------------------------------------------------------------------")
		for _, m := range members {
			fmt.Fprintf(out, "%-16s %-12.4f %-32s %-6d\n", m.Name, m.Length(), analysis.FormatVector(m.Normal), len(m.Operations))
			if membersOps {
				for _, op := range m.SortedOperations() {
					fmt.Fprintf(out, "    %-14s %10.4f\n", op.Type, op.Location)
				}
			}
		}
		fmt.Fprintln(out)
	}
	return nil
}
