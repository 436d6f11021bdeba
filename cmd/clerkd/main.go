package main

import (
	"log"
	"os"
	"runtime/debug"

	"github.com/spf13/cobra"

	"github.com/tenancyjustice/clerk/cmd/clerkd/commands"
	"github.com/tenancyjustice/clerk/pkg/configuration"
)

func main() {
	defer func() {
		if r := recover(); r != nil {
			configuration.Use().Unload()
			log.Println(r)
			debug.PrintStack()
			os.Exit(1)
		}
	}()

	root := &cobra.Command{
		Use:   "clerkd",
		Short: "Tenancy legal case management worker",
	}
	root.AddCommand(
		commands.NewMigrateCmd(),
		commands.NewResyncCmd(),
		commands.NewProcessCmd(),
	)

	if err := root.Execute(); err != nil {
		configuration.Use().Unload()
		os.Exit(1)
	}
}
