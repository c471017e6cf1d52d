package main

import (
	"os"

	"github.com/ebradham/photo-exif-organizer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
