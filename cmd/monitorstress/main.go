package main

import (
	"fmt"
	"os"

	"github.com/notorious-go/monitors/cmd/monitorstress/commands"
)

func main() {
	cmd := commands.NewRootCmd("monitorstress", "Soak test the monitor-based primitives", "")
	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
