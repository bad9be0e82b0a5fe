package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/conn-castle/sideload/internal/bootmsg"
	"github.com/conn-castle/sideload/internal/install"
	"github.com/conn-castle/sideload/internal/messages"
	"github.com/conn-castle/sideload/internal/ui"
	"github.com/conn-castle/sideload/internal/volume"
)

func newApplyCmd() *cobra.Command {
	var volumeID string
	var tablePath string

	cmd := &cobra.Command{
		Use:   messages.ApplyUse,
		Short: messages.ApplyShort,
		Long:  messages.ApplyLong,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			table, err := volume.LoadTable(tablePath)
			if err != nil {
				return err
			}
			v, ok := table.ForID(volumeID)
			if !ok {
				return fmt.Errorf(messages.ApplyUnknownVolumeFmt, volumeID, tablePath)
			}

			menu := ui.NewMenu()
			printer := ui.NewPrinter()
			manager := volume.VoldClient{}
			orch := &install.Orchestrator{
				Mounter:    &volume.Mounter{Volumes: manager},
				Volumes:    manager,
				Menu:       menu,
				Spawner:    install.SelfSpawner{},
				Installer:  install.ExecInstaller{UI: printer},
				BootMarker: bootmsg.BCBWriter{},
				Confirm:    ui.NewPrompts(menu),
				UI:         printer,
			}

			switch orch.Apply(v) {
			case install.OutcomeSuccess:
				_, _ = color.New(color.FgGreen).Fprintln(cmd.OutOrStdout(), messages.ApplyComplete)
				return nil
			case install.OutcomeNone:
				return nil
			default:
				_, _ = color.New(color.FgRed).Fprintln(cmd.ErrOrStderr(), messages.ApplyFailed)
				return SilentExitError{Code: 1}
			}
		},
	}

	cmd.Flags().StringVar(&volumeID, "volume", "sdcard", messages.ApplyFlagVolume)
	cmd.Flags().StringVar(&tablePath, "table", volume.DefaultTablePath, messages.ApplyFlagTable)

	return cmd
}
