package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/ZaguanLabs/furigo"
	"github.com/ZaguanLabs/furigo/client"
	"github.com/spf13/cobra"
)

func newMenuCmd(a *app) *cobra.Command {
	var (
		host  string
		local bool
	)

	cmd := &cobra.Command{
		Use:   "menu",
		Short: "List the context-menu entries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			items := furigo.Menu()
			if !local {
				if err := a.load(); err != nil {
					return err
				}
				remote, err := client.New(a.hostURL(host)).Menu(cmd.Context())
				if err != nil {
					return err
				}
				items = remote
			}

			tw := tabwriter.NewWriter(a.stdout, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPARENT\tTITLE")
			for _, item := range items {
				parent := item.ParentID
				if parent == "" {
					parent = "-"
				}
				fmt.Fprintf(tw, "%s\t%s\t%s\n", item.ID, parent, item.Title)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "host URL (default from config)")
	cmd.Flags().BoolVar(&local, "local", false, "list the built-in entries without a host")
	return cmd
}
