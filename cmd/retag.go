package cmd

import (
	"fmt"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/ebradham/photo-exif-organizer/internal"
)

var retagPrefixFlag string

var retagCmd = &cobra.Command{
	Use:   "retag [folder]",
	Short: "Rename images in place by prepending a prefix",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		conf, err := internal.LoadConfig()
		if err != nil {
			return err
		}
		internal.InitLogger(conf.LogLevel)

		prefix := retagPrefixFlag
		if prefix == "" {
			prefix = conf.Tag
		}
		if prefix == "" {
			return fmt.Errorf("no prefix specified: use --tag")
		}

		fs := afero.NewOsFs()
		classifier := internal.NewClassifier(conf.ImageExt)
		renamed, err := internal.AddPrefix(fs, classifier, args[0], prefix)
		if err != nil {
			return err
		}

		fmt.Printf("\nRename operation complete!\nFiles renamed: %d\n", renamed)
		return nil
	},
}

func init() {
	retagCmd.Flags().StringVarP(&retagPrefixFlag, "tag", "t", "", "Prefix to prepend to filenames")

	rootCmd.AddCommand(retagCmd)
}
