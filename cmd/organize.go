package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ebradham/photo-exif-organizer/internal"
)

var (
	destFlag          string
	tagFlag           string
	rerunFlag         bool
	sharedTrackerFlag bool
	exifToolFlag      bool
	manifestFlag      bool
)

var organizeCmd = &cobra.Command{
	Use:   "organize [source]...",
	Short: "Copy images from source folders into a year/month tree",
	Long: `Scan one or more source folders for image files, resolve each file's
capture date from EXIF metadata (falling back to modification time), and copy
it into destination/YYYY/MM. Byte-identical repeats within a run are routed to
the duplicates area instead; nothing is ever overwritten.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := internal.LoadConfig()
		if err != nil {
			return err
		}

		// Flags win over config file values
		if destFlag != "" {
			conf.Destination = destFlag
		}
		if tagFlag != "" {
			conf.Tag = tagFlag
		}
		if cmd.Flags().Changed("rerun") {
			conf.Rerun = rerunFlag
		}
		if cmd.Flags().Changed("shared-tracker") {
			conf.SharedTracker = sharedTrackerFlag
		}
		if cmd.Flags().Changed("exiftool") {
			conf.UseExifTool = exifToolFlag
		}
		if cmd.Flags().Changed("manifest") {
			conf.WriteManifest = manifestFlag
		}

		internal.InitLogger(conf.LogLevel)

		fs := afero.NewOsFs()
		reader, cleanup := newTagReader(fs, conf)
		defer cleanup()

		org := internal.NewOrganizer(fs, conf, reader)

		if conf.WriteManifest {
			session, err := internal.NewSession(fs, conf.Destination)
			if err != nil {
				return err
			}
			defer session.Close()
			org.Session = session
		}

		if err := org.Run(args); err != nil {
			return err
		}

		fmt.Print(org.Summary())
		return nil
	},
}

// newTagReader picks the metadata reader: goexif by default, the external
// exiftool binary when configured. Falls back to goexif if exiftool is not
// available.
func newTagReader(fs afero.Fs, conf *internal.Config) (internal.TagReader, func()) {
	if conf.UseExifTool {
		reader, err := internal.NewExifToolReader()
		if err == nil {
			return reader, func() { reader.Close() }
		}
		log.Warn().Err(err).Msg("exiftool unavailable, using built-in exif decoder")
	}
	return internal.NewExifReader(fs), func() {}
}

func init() {
	organizeCmd.Flags().StringVarP(&destFlag, "destination", "d", "", "Destination folder for organized images")
	organizeCmd.Flags().StringVarP(&tagFlag, "tag", "t", "", "Prefix added to copied filenames")
	organizeCmd.Flags().BoolVarP(&rerunFlag, "rerun", "r", false, "Skip files whose content is already in the destination")
	organizeCmd.Flags().BoolVar(&sharedTrackerFlag, "shared-tracker", false, "Track duplicates across all source folders instead of per folder")
	organizeCmd.Flags().BoolVar(&exifToolFlag, "exiftool", false, "Use the exiftool binary for metadata extraction")
	organizeCmd.Flags().BoolVar(&manifestFlag, "manifest", false, "Write a JSONL manifest of this run under the destination")

	rootCmd.AddCommand(organizeCmd)
}
