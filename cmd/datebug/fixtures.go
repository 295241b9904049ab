package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kboshold/bug-reproduction-prisma-date/internal/fixtures"
	"github.com/kboshold/bug-reproduction-prisma-date/internal/report"
	"github.com/kboshold/bug-reproduction-prisma-date/pkg/types"
)

var fixturesCmd = &cobra.Command{
	Use:   "fixtures",
	Short: "List the fixture dates and the update-path placeholder",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		for _, d := range fixtures.Dates() {
			fmt.Fprintf(out, "%s  year %d\n", report.ISOString(d), types.CalendarYear(d))
		}
		fmt.Fprintf(out, "placeholder: %s\n", report.ISOString(fixtures.Sentinel))
		return nil
	},
}
