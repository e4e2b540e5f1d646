package main

import (
	"log"

	cli "github.com/spf13/cobra"

	"github.com/vedantwpatil/point-tracker/internal/config"
)

var (
	configPath string
	source     string
	device     int
	videoFile  string

	application *Application

	rootCmd = &cli.Command{
		Use:   "tracker",
		Short: "Drive the mouse cursor from a tracked point in a video feed",
		PersistentPreRunE: func(cmd *cli.Command, args []string) error {
			cfg, err := config.Load(configPath)
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("source") {
				cfg.Camera.Source = source
			}
			if flags.Changed("device") {
				cfg.Camera.Device = device
			}
			if flags.Changed("file") {
				cfg.Camera.File = videoFile
				if !flags.Changed("source") {
					cfg.Camera.Source = config.SourceFile
				}
			}
			if err := cfg.Validate(); err != nil {
				return err
			}
			application = NewApplication(cfg)
			return nil
		},
		PersistentPostRun: func(cmd *cli.Command, args []string) {
			application.cleanup()
		},
		SilenceUsage: true,
	}
)

func init() {
	pf := rootCmd.PersistentFlags()
	pf.StringVarP(&configPath, "config", "c", "", "TOML configuration file")
	pf.StringVar(&source, "source", config.SourceCamera, "video source: camera, file or screen")
	pf.IntVarP(&device, "device", "d", 1, "camera device index")
	pf.StringVarP(&videoFile, "file", "f", "", "video file to track instead of a camera")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		log.Fatalf("Error: %v", err)
	}
}
