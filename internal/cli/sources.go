package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/ppiankov/faqharvest/internal/extract/adapters"
	"github.com/spf13/cobra"
)

var sourcesCmd = &cobra.Command{
	Use:   "sources",
	Short: "List the registered FAQ sources in harvest order",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "ID\tNAME\tSTYLE\tLOCATION")
		for _, d := range adapters.NewRegistry().All() {
			location := strings.Join(d.URLs, " ")
			if d.PinnedFile != "" {
				location = "pinned:" + d.PinnedFile
			}
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", d.ID, d.Name, d.Style, location)
		}
		return tw.Flush()
	},
}

func init() {
	rootCmd.AddCommand(sourcesCmd)
}
