package main

import (
	"os"

	"github.com/avelezco/redbag-claimer/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
