package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/simdem/archive-plugins/pkg/plugin"
)

func newPluginsCommand(ctx *commandContext) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plugins",
		Short: "Inspect the plugin manifest",
	}
	cmd.AddCommand(newPluginsListCommand(ctx))
	return cmd
}

func newPluginsListCommand(ctx *commandContext) *cobra.Command {
	var manifestPath string
	var author string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List manifest plugins, optionally only those enabled for --author",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := loadRegistry(manifestPath)
			if err != nil {
				return err
			}

			entries := reg.Plugins
			if strings.TrimSpace(author) != "" {
				entries = reg.ForAuthor(author)
			}
			if len(entries) == 0 {
				_, err := fmt.Fprintln(ctx.stdout, "No plugins registered.")
				return err
			}

			rows := make([][]string, 0, len(entries))
			for _, m := range entries {
				builtin := "-"
				if _, err := plugin.Resolve(m); err == nil {
					builtin = "yes"
				}
				rows = append(rows, []string{
					m.Name,
					m.Author,
					m.Target,
					strconv.FormatBool(m.Pre),
					strconv.FormatBool(m.Post),
					m.Path,
					builtin,
				})
			}
			_, err = fmt.Fprintln(ctx.stdout, renderTable(
				[]string{"Name", "Author", "Target", "Pre", "Post", "Path", "Builtin"},
				rows,
			))
			return err
		},
	}
	cmd.Flags().StringVar(&manifestPath, "manifest", "", "Plugin manifest (.toml or .yaml)")
	cmd.Flags().StringVar(&author, "author", "", "Only show plugins enabled for this user")
	return cmd
}
