package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"

	"fandomexplorer/internal/apiclient"
	"fandomexplorer/internal/superhero"
	"fandomexplorer/pkg/models"
)

type options struct {
	api     string
	asJSON  bool
	timeout time.Duration
}

func main() {
	if err := newRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	opts := &options{}
	root := &cobra.Command{
		Use:           "fandom",
		Short:         "Query a running fandom explorer api-server",
		SilenceUsage:  true,
		SilenceErrors: false,
	}
	root.PersistentFlags().StringVar(&opts.api, "api", envOr("FANDOM_API", apiclient.DefaultBaseURL), "API base URL")
	root.PersistentFlags().BoolVar(&opts.asJSON, "json", false, "print raw JSON instead of tables")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", 60*time.Second, "request timeout")

	root.AddCommand(
		healthCommand(opts),
		charactersCommand(opts),
		searchCommand(opts),
		characterCommand(opts),
		fieldCommand(opts),
		mediaCommand(opts),
	)
	return root
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func (o *options) client() *apiclient.Client {
	return apiclient.New(o.api, o.timeout)
}

func (o *options) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), o.timeout)
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	return t
}

func healthCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "health",
		Short: "Show which upstream APIs are configured",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := o.context(cmd)
			defer cancel()
			h, err := o.client().Health(ctx)
			if err != nil {
				return err
			}
			if o.asJSON {
				return printJSON(h)
			}
			t := newTable()
			t.AppendHeader(table.Row{"Upstream", "Configured"})
			t.AppendRow(table.Row{"superhero", h.Superhero})
			t.AppendRow(table.Row{"comicvine", h.ComicVine})
			t.Render()
			return nil
		},
	}
}

func renderSummaries(o *options, items []models.CharacterSummary) error {
	if o.asJSON {
		return printJSON(items)
	}
	t := newTable()
	t.AppendHeader(table.Row{"ID", "Name", "Publisher", "Alignment"})
	for _, c := range items {
		t.AppendRow(table.Row{c.ID, c.Name, c.Publisher, c.Alignment})
	}
	t.AppendFooter(table.Row{"", "", "Total", len(items)})
	t.Render()
	return nil
}

func charactersCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:     "characters",
		Aliases: []string{"all"},
		Short:   "List every character, sorted by name",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, cancel := o.context(cmd)
			defer cancel()
			items, err := o.client().Characters(ctx)
			if err != nil {
				return err
			}
			return renderSummaries(o, items)
		},
	}
}

func searchCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "search <name>",
		Short: "Search characters by name",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := o.context(cmd)
			defer cancel()
			items, err := o.client().Search(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			return renderSummaries(o, items)
		},
	}
}

func characterCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "character <id>",
		Short: "Show the full record of one character",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := o.context(cmd)
			defer cancel()
			d, err := o.client().Character(ctx, args[0])
			if err != nil {
				return err
			}
			if o.asJSON {
				return printJSON(d)
			}
			t := newTable()
			t.SetTitle(fmt.Sprintf("%s (#%s)", d.Name, d.ID))
			t.AppendRows([]table.Row{
				{"Real name", d.Biography.RealName},
				{"Publisher", d.Biography.Publisher},
				{"Alignment", d.Biography.Alignment},
				{"First appearance", d.Biography.FirstAppearance},
				{"Aliases", strings.Join(d.Biography.Aliases, ", ")},
			})
			t.AppendSeparator()
			p := d.Powerstats
			t.AppendRows([]table.Row{
				{"Intelligence", p.Intelligence},
				{"Strength", p.Strength},
				{"Speed", p.Speed},
				{"Durability", p.Durability},
				{"Power", p.Power},
				{"Combat", p.Combat},
			})
			t.AppendSeparator()
			t.AppendRows([]table.Row{
				{"Gender", d.Appearance.Gender},
				{"Race", d.Appearance.Race},
				{"Height", strings.Join(d.Appearance.Height, " / ")},
				{"Weight", strings.Join(d.Appearance.Weight, " / ")},
				{"Occupation", d.Work.Occupation},
				{"Base", d.Work.Base},
			})
			t.Render()
			return nil
		},
	}
}

func fieldCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:       "field <id> <" + strings.Join(superhero.Fields, "|") + ">",
		Short:     "Show one sub-resource of a character as returned upstream",
		Args:      cobra.ExactArgs(2),
		ValidArgs: superhero.Fields,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := o.context(cmd)
			defer cancel()
			m, err := o.client().Field(ctx, args[0], args[1])
			if err != nil {
				return err
			}
			if o.asJSON {
				return printJSON(m)
			}
			keys := make([]string, 0, len(m))
			for k := range m {
				keys = append(keys, k)
			}
			sort.Strings(keys)
			t := newTable()
			t.AppendHeader(table.Row{"Key", "Value"})
			for _, k := range keys {
				t.AppendRow(table.Row{k, m[k]})
			}
			t.Render()
			return nil
		},
	}
}

func mediaCommand(o *options) *cobra.Command {
	return &cobra.Command{
		Use:   "media <name>",
		Short: "List ComicVine movies and issue credits for a character",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := o.context(cmd)
			defer cancel()
			m, err := o.client().Media(ctx, strings.Join(args, " "))
			if err != nil {
				return err
			}
			if o.asJSON {
				return printJSON(m)
			}
			t := newTable()
			t.AppendHeader(table.Row{"Kind", "ID", "Name", "Issue"})
			for _, r := range m.Movies {
				t.AppendRow(table.Row{"movie", r.ID, r.Name, ""})
			}
			for _, r := range m.Comics {
				t.AppendRow(table.Row{"issue", r.ID, r.Name, r.IssueNumber})
			}
			t.Render()
			return nil
		},
	}
}
