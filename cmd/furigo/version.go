package main

import (
	"fmt"

	"github.com/ZaguanLabs/furigo"
	"github.com/spf13/cobra"
)

func newVersionCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(a.stdout, "%s %s\n", furigo.Name, furigo.FullVersion())
			if furigo.BuildDate != "" {
				fmt.Fprintf(a.stdout, "  built:   %s\n", furigo.BuildDate)
			}
		},
	}
}
