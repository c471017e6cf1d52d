package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ebradham/photo-exif-organizer/internal"
)

var (
	moveFlag    bool
	moveDirFlag string
)

var dedupeCmd = &cobra.Command{
	Use:   "dedupe [folder]...",
	Short: "Report duplicate images in a folder without organizing",
	Long: `Scan folders for byte-identical image files and report them. With
--move, every occurrence after the first is moved into a duplicates subfolder
of the scanned folder, nested under the file's source directory name.`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := internal.LoadConfig()
		if err != nil {
			return err
		}
		internal.InitLogger(conf.LogLevel)

		fs := afero.NewOsFs()
		for _, folder := range args {
			deduper := internal.NewDeduper(fs, conf, moveFlag, moveDirFlag)
			stats, err := deduper.Run(folder)
			if err != nil {
				fmt.Printf("Error checking %s: %v\n", folder, err)
				continue
			}
			fmt.Print(stats.Summary())
		}
		return nil
	},
}

func init() {
	dedupeCmd.Flags().BoolVarP(&moveFlag, "move", "m", false, "Move duplicates into a duplicates folder")
	dedupeCmd.Flags().StringVar(&moveDirFlag, "move-dir", "", "Folder to move duplicates into (default <folder>/duplicates)")

	rootCmd.AddCommand(dedupeCmd)
}
