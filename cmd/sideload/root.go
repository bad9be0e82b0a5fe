package main

import (
	"github.com/spf13/cobra"

	"github.com/conn-castle/sideload/internal/messages"
)

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           messages.RootUse,
		Short:         messages.RootShort,
		Long:          messages.RootLong,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.AddCommand(newApplyCmd())
	cmd.AddCommand(newHostCmd())
	cmd.AddCommand(newVolumesCmd())

	return cmd
}
