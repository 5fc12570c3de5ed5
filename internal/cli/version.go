package cli

import (
	"github.com/maloquacious/semver"
	"github.com/spf13/cobra"
)

// Version is the release of this build; Build carries the VCS commit.
var Version = semver.Version{Minor: 1, PreRelease: "alpha", Build: semver.Commit()}

// NewVersionCommand creates the version command. It never opens the store.
func NewVersionCommand(opts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:           "version",
		Short:         "Print the version",
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return formatter(opts, cmd).Success(VersionInfo{Version: Version.String()})
		},
	}
}
