package main

import (
	"fmt"
	"strings"

	"github.com/philipparndt/studframe/pkg/frame"
	"github.com/spf13/cobra"
)

var jointsType string

var jointsCmd = &cobra.Command{
	Use:   "joints [file]",
	Short: "List the joints discovered in a line network",
	Long:  "Resolve the file and list every joint in discovery order with its type and members.",
	Args:  cobra.ExactArgs(1),
	RunE:  runJoints,
}

func init() {
	rootCmd.AddCommand(jointsCmd)

	jointsCmd.Flags().StringVarP(&jointsType, "type", "t", "", "Only show joints of this type (FaceToFace, Branch, T, PassThrough, Invalid)")
}

func runJoints(cmd *cobra.Command, args []string) error {
	filter, err := parseJointType(jointsType)
	if err != nil {
		return err
	}

	_, frames, err := resolveFile(args[0], cfg, logger)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	for _, f := range frames {
		s := f.Structure
		fmt.Fprintf(out, "Frame %s\n", f.Name)
		fmt.Fprintf(out, "%-6s %-12s %-20s %-20s\n", "Index", "Type", "A", "B")
		fmt.Fprintln(out, strings.Repeat("-", 60))
		for i, j := range s.Joints {
			if filter != nil && j.Type != *filter {
				continue
			}
			fmt.Fprintf(out, "%-6d %-12s %-20s %-20s\n", i+1, j.Type, s.Members[j.A].Name, s.Members[j.B].Name)
		}
		fmt.Fprintln(out)
	}
	return nil
}

func parseJointType(name string) (*frame.JointType, error) {
	if name == "" {
		return nil, nil
	}
	for _, t := range frame.JointTypes() {
		if strings.EqualFold(t.String(), name) {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("unknown joint type %q", name)
}
