package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/MrSnakeDoc/toolshelf/internal/client"
	"github.com/MrSnakeDoc/toolshelf/internal/domain"
)

func writeJSON(w io.Writer, value any) error {
	data, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintln(w, string(data))
	return err
}

func printTools(w io.Writer, tools []domain.Tool, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(w, tools)
	}
	if len(tools) == 0 {
		_, err := fmt.Fprintln(w, "no tools found")
		return err
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tCATEGORY\tPRICING\tFEATURED")
	for _, t := range tools {
		featured := ""
		if t.Featured {
			featured = "★"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Name, t.Category, t.Pricing, featured)
	}
	return tw.Flush()
}

func printTool(w io.Writer, t domain.Tool, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(w, t)
	}
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintf(tw, "id:\t%s\n", t.ID)
	fmt.Fprintf(tw, "name:\t%s\n", t.Name)
	fmt.Fprintf(tw, "url:\t%s\n", t.URL)
	fmt.Fprintf(tw, "description:\t%s\n", t.ShortDescription)
	fmt.Fprintf(tw, "category:\t%s\n", t.Category)
	fmt.Fprintf(tw, "pricing:\t%s\n", t.Pricing)
	fmt.Fprintf(tw, "tags:\t%s\n", strings.Join(t.Tags, ", "))
	fmt.Fprintf(tw, "featured:\t%t\n", t.Featured)
	if t.Language != "" {
		fmt.Fprintf(tw, "language:\t%s\n", t.Language)
	}
	return tw.Flush()
}

func printOptions(w io.Writer, opts client.Options, jsonOutput bool) error {
	if jsonOutput {
		return writeJSON(w, opts)
	}
	fmt.Fprintln(w, "categories:")
	for _, c := range opts.Categories {
		fmt.Fprintf(w, "  %s\n", c)
	}
	fmt.Fprintln(w, "pricing:")
	for _, p := range opts.Pricing {
		fmt.Fprintf(w, "  %s\n", p)
	}
	return nil
}
