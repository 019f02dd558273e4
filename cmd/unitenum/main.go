package main

import (
	"os"

	"github.com/aodinokov/unitenum/cmd/check"
	"github.com/aodinokov/unitenum/cmd/run"
	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:          "unitenum",
		Short:        "derives tables and accessors for unit-only enumerations",
		SilenceUsage: true,
	}
	root.AddCommand(run.NewCommand())
	root.AddCommand(check.NewCommand())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
