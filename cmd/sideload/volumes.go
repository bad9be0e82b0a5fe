package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/conn-castle/sideload/internal/messages"
	"github.com/conn-castle/sideload/internal/volume"
)

func newVolumesCmd() *cobra.Command {
	var tablePath string

	cmd := &cobra.Command{
		Use:   messages.VolumesUse,
		Short: messages.VolumesShort,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := volume.LoadTable(tablePath)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			_, _ = fmt.Fprintln(w, messages.VolumesHeader)
			for _, v := range table.Volumes {
				_, _ = fmt.Fprintf(w, messages.VolumesRowFmt, v.ID, v.MountPoint, v.FSType, v.FallbackBlockDev)
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&tablePath, "table", volume.DefaultTablePath, messages.ApplyFlagTable)

	return cmd
}
