package main

import (
	"errors"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/conn-castle/sideload/internal/fusehost"
	"github.com/conn-castle/sideload/internal/messages"
)

func newHostCmd() *cobra.Command {
	var packagePath string

	cmd := &cobra.Command{
		Use:    messages.HostUse,
		Short:  messages.HostShort,
		Long:   messages.HostLong,
		Hidden: true,
		Args:   cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if packagePath == "" {
				return errors.New(messages.HostPackageRequired)
			}
			logger := zerolog.New(cmd.ErrOrStderr()).With().
				Timestamp().
				Str("component", "fusehost").
				Logger()
			if err := fusehost.Run(packagePath, logger); err != nil {
				logger.Error().Err(err).Msg("host failed")
				return SilentExitError{Code: 1}
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&packagePath, "package", "", messages.HostFlagPackage)

	return cmd
}
