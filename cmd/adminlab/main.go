package main

import (
	"os"

	"github.com/spf13/cobra"
)

func main() {
	root := &cobra.Command{
		Use:           "adminlab",
		Short:         "Panel de administración: clientes, usuarios, productos, posts y pagos",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.AddCommand(newServeCmd(), newSeedCmd())

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}
