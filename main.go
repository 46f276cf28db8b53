package main

import (
	"os"

	"github.com/satish1373/automation-pipeline-demo/cmd"
)

func main() {
	if err := cmd.Execute(); err != nil {
		os.Exit(1)
	}
}
