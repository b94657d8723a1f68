// Package cli implements toolshelfctl, a command line client for the
// toolshelf HTTP API.
package cli

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/MrSnakeDoc/toolshelf/internal/client"
	"github.com/MrSnakeDoc/toolshelf/internal/logger"
	"github.com/MrSnakeDoc/toolshelf/internal/version"
)

const (
	DefaultServer  = "http://localhost:4000"
	DefaultTimeout = 10 * time.Second
	envPrefix      = "TOOLSHELF"
)

type options struct {
	v          *viper.Viper
	httpClient *http.Client // tests inject the httptest client
	log        logger.Logger
}

func (o *options) server() string {
	return strings.TrimSpace(o.v.GetString("server"))
}

func (o *options) jsonOutput() bool {
	return o.v.GetBool("json")
}

func (o *options) api() *client.API {
	hc := o.httpClient
	if hc == nil {
		hc = &http.Client{Timeout: o.v.GetDuration("timeout")}
	}
	return client.NewAPI(o.server(), client.WithHTTPClient(hc))
}

// context returns a context bounded by --timeout.
func (o *options) context(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return context.WithTimeout(ctx, o.v.GetDuration("timeout"))
}

// NewRootCommand builds the toolshelfctl command tree.
//
// Settings resolve as flag, then TOOLSHELF_* environment variable, then default.
func NewRootCommand() *cobra.Command {
	return newRootCommand(nil)
}

func newRootCommand(hc *http.Client) *cobra.Command {
	opts := &options{
		v:          viper.New(),
		httpClient: hc,
		log:        logger.NewNop(),
	}
	opts.v.SetEnvPrefix(envPrefix)
	opts.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	opts.v.AutomaticEnv()
	opts.v.SetDefault("server", DefaultServer)
	opts.v.SetDefault("timeout", DefaultTimeout)

	root := &cobra.Command{
		Use:           "toolshelfctl",
		Short:         "Command line client for the toolshelf catalog",
		Version:       version.String(),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if opts.server() == "" {
				return usageError("--server must not be empty")
			}
			if opts.v.GetBool("debug") {
				opts.log = logger.New("debug", true)
			}
			return nil
		},
		PersistentPostRun: func(_ *cobra.Command, _ []string) {
			_ = opts.log.Sync()
		},
	}

	pf := root.PersistentFlags()
	pf.String("server", DefaultServer, "toolshelf server base URL (env TOOLSHELF_SERVER)")
	pf.Duration("timeout", DefaultTimeout, "request timeout (env TOOLSHELF_TIMEOUT)")
	pf.Bool("json", false, "output JSON")
	pf.Bool("debug", false, "log requests to stderr")
	for _, name := range []string{"server", "timeout", "json", "debug"} {
		_ = opts.v.BindPFlag(name, pf.Lookup(name))
	}

	root.AddCommand(
		newListCmd(opts),
		newGetCmd(opts),
		newCreateCmd(opts),
		newEditCmd(opts),
		newDeleteCmd(opts),
		newOptionsCmd(opts),
	)
	return root
}
