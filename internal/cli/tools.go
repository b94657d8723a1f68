package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/MrSnakeDoc/toolshelf/internal/client"
	"github.com/MrSnakeDoc/toolshelf/internal/domain"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
)

// call runs fn against the API and logs it at debug level. Record changes go
// through cat so they get the same checks as any other catalog client.
func call(cmd *cobra.Command, opts *options, op string, fn func(ctx context.Context, api *client.API, cat *client.Catalog) error) error {
	ctx, cancel := opts.context(cmd)
	defer cancel()

	api := opts.api()
	start := time.Now()
	err := fn(ctx, api, client.NewCatalog(api))
	opts.log.Debug("request",
		logger.String("op", op),
		logger.String("server", opts.server()),
		logger.Duration("elapsed", time.Since(start)),
		logger.Bool("ok", err == nil),
	)
	return exitFor(err)
}

func newListCmd(opts *options) *cobra.Command {
	var f domain.Filter
	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List tools, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return call(cmd, opts, "list", func(ctx context.Context, _ *client.API, cat *client.Catalog) error {
				if err := cat.Load(ctx, f); err != nil {
					return err
				}
				return printTools(cmd.OutOrStdout(), cat.Tools(), opts.jsonOutput())
			})
		},
	}
	cmd.Flags().StringVar(&f.Category, "category", "", "only tools in this category")
	cmd.Flags().StringVar(&f.Pricing, "pricing", "", "only tools with this pricing model")
	cmd.Flags().BoolVar(&f.FeaturedOnly, "featured", false, "only featured tools")
	cmd.Flags().StringVarP(&f.Query, "query", "q", "", "search name, description and tags")
	return cmd
}

func newGetCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(cmd, opts, "get", func(ctx context.Context, api *client.API, _ *client.Catalog) error {
				tool, err := api.GetTool(ctx, args[0])
				if err != nil {
					return err
				}
				return printTool(cmd.OutOrStdout(), tool, opts.jsonOutput())
			})
		},
	}
}

// formFlags registers the create/edit fields on fs.
func formFlags(fs *pflag.FlagSet, form *client.Form, tags *string) {
	fs.StringVar(&form.Name, "name", "", "tool name")
	fs.StringVar(&form.URL, "url", "", "tool URL")
	fs.StringVar(&form.ShortDescription, "description", "", "short description")
	fs.StringVar(&form.Category, "category", "", "category")
	fs.StringVar(&form.Pricing, "pricing", "", "pricing model")
	fs.StringVar(tags, "tags", "", "comma separated tags")
	fs.BoolVar(&form.Featured, "featured", false, "mark as featured")
	fs.StringVar(&form.Language, "language", "", "operating language(s)")
}

func newCreateCmd(opts *options) *cobra.Command {
	var (
		form client.Form
		tags string
	)
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Add a tool",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			form.Tags = client.ParseTags(tags)
			if err := form.Validate(); err != nil {
				return exitFor(err)
			}
			warnUnknown(cmd.ErrOrStderr(), form.Category, form.Pricing)
			return call(cmd, opts, "create", func(ctx context.Context, _ *client.API, cat *client.Catalog) error {
				tool, err := cat.Create(ctx, form)
				if err != nil {
					return err
				}
				return printTool(cmd.OutOrStdout(), tool, opts.jsonOutput())
			})
		},
	}
	formFlags(cmd.Flags(), &form, &tags)
	return cmd
}

func newEditCmd(opts *options) *cobra.Command {
	var (
		form client.Form
		tags string
	)
	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Update the given fields of a tool",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			patch := editPatch(cmd.Flags(), form, tags)
			if patch.IsEmpty() {
				return usageError("nothing to update: pass at least one field flag")
			}
			if err := client.ValidatePatch(patch); err != nil {
				return exitFor(err)
			}
			patch = client.NormalizePatch(patch)
			warnUnknown(cmd.ErrOrStderr(), deref(patch.Category), deref(patch.Pricing))
			return call(cmd, opts, "edit", func(ctx context.Context, _ *client.API, cat *client.Catalog) error {
				tool, err := cat.Update(ctx, args[0], patch)
				if err != nil {
					return err
				}
				return printTool(cmd.OutOrStdout(), tool, opts.jsonOutput())
			})
		},
	}
	formFlags(cmd.Flags(), &form, &tags)
	return cmd
}

// editPatch sets only the fields whose flag was given on the command line.
func editPatch(fs *pflag.FlagSet, form client.Form, tags string) domain.Patch {
	var p domain.Patch
	str := func(flag string, v string) *string {
		if !fs.Changed(flag) {
			return nil
		}
		return &v
	}
	p.Name = str("name", form.Name)
	p.URL = str("url", form.URL)
	p.ShortDescription = str("description", form.ShortDescription)
	p.Category = str("category", form.Category)
	p.Pricing = str("pricing", form.Pricing)
	p.Language = str("language", form.Language)
	if fs.Changed("tags") {
		parsed := client.ParseTags(tags)
		p.Tags = &parsed
	}
	if fs.Changed("featured") {
		featured := form.Featured
		p.Featured = &featured
	}
	return p
}

// warnUnknown notes a category or pricing model outside the known sets. The
// server stores any value, so this is a hint and never an error.
func warnUnknown(w io.Writer, category, pricing string) {
	if category != "" && category != domain.DefaultCategory && !domain.IsKnownCategory(category) {
		fmt.Fprintf(w, "warning: unknown category %q, see `toolshelfctl options`\n", category)
	}
	if pricing != "" && pricing != domain.DefaultPricing && !domain.IsKnownPricing(pricing) {
		fmt.Fprintf(w, "warning: unknown pricing model %q, see `toolshelfctl options`\n", pricing)
	}
}

func deref(v *string) string {
	if v == nil {
		return ""
	}
	return *v
}

func newDeleteCmd(opts *options) *cobra.Command {
	var yes bool
	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a tool",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return call(cmd, opts, "delete", func(ctx context.Context, _ *client.API, cat *client.Catalog) error {
				err := cat.Delete(ctx, args[0], yes)
				if errors.Is(err, client.ErrNotConfirmed) {
					return fmt.Errorf("refusing to delete %s without --yes: %w", args[0], err)
				}
				if err != nil {
					return err
				}
				if opts.jsonOutput() {
					return writeJSON(cmd.OutOrStdout(), map[string]string{"deleted": args[0]})
				}
				_, err = fmt.Fprintf(cmd.OutOrStdout(), "deleted %s\n", args[0])
				return err
			})
		},
	}
	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "confirm the deletion")
	return cmd
}

func newOptionsCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "options",
		Short: "List the known categories and pricing models",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return call(cmd, opts, "options", func(ctx context.Context, api *client.API, _ *client.Catalog) error {
				o, err := api.Options(ctx)
				if err != nil {
					return err
				}
				return printOptions(cmd.OutOrStdout(), o, opts.jsonOutput())
			})
		},
	}
}
