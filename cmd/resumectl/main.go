package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "resumectl",
		Short:         "Convert resumes into the fixed DOCX layout",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(convertCmd())
	root.AddCommand(renderCmd())
	root.AddCommand(serveCmd())
	root.AddCommand(migrateCmd())
	return root
}
