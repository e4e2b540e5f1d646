package main

import (
	cli "github.com/spf13/cobra"

	"github.com/vedantwpatil/point-tracker/internal/gui"
	"github.com/vedantwpatil/point-tracker/internal/shim"
)

var (
	pointCmd = &cli.Command{
		Use:   "point",
		Short: "Click a point in the video and have the cursor follow it",
		RunE: func(cmd *cli.Command, args []string) error {
			return application.trackPoint(application.Context())
		},
	}

	boxCmd = &cli.Command{
		Use:   "box",
		Short: "Select a region in the video and have the cursor follow its center",
		RunE: func(cmd *cli.Command, args []string) error {
			return application.trackBox(application.Context())
		},
	}

	animateCmd = &cli.Command{
		Use:   "animate",
		Short: "Step the cursor toward the configured target",
		RunE: func(cmd *cli.Command, args []string) error {
			return application.animate(application.Context())
		},
	}

	menuCmd = &cli.Command{
		Use:   "menu",
		Short: "Choose a feature from an interactive menu",
		RunE: func(cmd *cli.Command, args []string) error {
			menu := shim.NewMenu(cmd.InOrStdin(), cmd.OutOrStdout(), application.Dispatcher())
			return menu.Run(application.Context())
		},
	}

	dialogCmd = &cli.Command{
		Use:   "dialog",
		Short: "Open the desktop dialog that launches the box tracker",
		Run: func(cmd *cli.Command, args []string) {
			gui.NewDialog(application.Dispatcher()).Run(application.Context())
		},
	}
)

func init() {
	rootCmd.AddCommand(pointCmd, boxCmd, animateCmd, menuCmd, dialogCmd)
	// without a subcommand the menu is shown
	rootCmd.RunE = menuCmd.RunE
}
