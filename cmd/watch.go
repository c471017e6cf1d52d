package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ebradham/photo-exif-organizer/internal"
)

var (
	watchDestFlag string
	watchTagFlag  string
)

var watchCmd = &cobra.Command{
	Use:   "watch [source]",
	Short: "Watch a folder and organize new images as they appear",
	Long: `Watch a source folder (recursively) and run every newly created image
file through the organize pipeline. Files are processed one at a time, in
arrival order. Stop with Ctrl-C.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		source := args[0]

		info, err := os.Stat(source)
		if err != nil || !info.IsDir() {
			return fmt.Errorf("folder does not exist or is not a directory: %s", source)
		}

		conf, err := internal.LoadConfig()
		if err != nil {
			return err
		}
		if watchDestFlag != "" {
			conf.Destination = watchDestFlag
		}
		if watchTagFlag != "" {
			conf.Tag = watchTagFlag
		}
		internal.InitLogger(conf.LogLevel)

		fs := afero.NewOsFs()
		if err := fs.MkdirAll(conf.Destination, 0755); err != nil {
			return fmt.Errorf("failed to create destination %s: %w", conf.Destination, err)
		}

		reader, cleanup := newTagReader(fs, conf)
		defer cleanup()

		org := internal.NewOrganizer(fs, conf, reader)

		watcher, err := internal.NewWatcher(source, internal.NewClassifier(conf.ImageExt))
		if err != nil {
			return err
		}
		defer watcher.Close()

		sigs := make(chan os.Signal, 1)
		signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)

		log.Info().Str("source", source).Str("destination", conf.Destination).Msg("watching for new images")

		for {
			select {
			case path := <-watcher.Events():
				org.ProcessFile(path)
			case err := <-watcher.Errors():
				log.Error().Err(err).Msg("watcher error")
			case <-sigs:
				fmt.Print(org.Summary())
				return nil
			}
		}
	},
}

func init() {
	watchCmd.Flags().StringVarP(&watchDestFlag, "destination", "d", "", "Destination folder for organized images")
	watchCmd.Flags().StringVarP(&watchTagFlag, "tag", "t", "", "Prefix added to copied filenames")

	rootCmd.AddCommand(watchCmd)
}
