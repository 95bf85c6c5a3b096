package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/revisify/internal/adapters/driving/web"
	"github.com/custodia-labs/revisify/internal/core/services"
)

// ServeConfig holds configuration for the serve command.
type ServeConfig struct {
	// Addr is the default listen address.
	Addr string

	// Web configures the server.
	Web web.Config
}

// serveConfig holds the current serve configuration.
var serveConfig = &ServeConfig{Addr: web.DefaultAddr}

var (
	serveAddr     string
	serveFindPort bool
)

// findPortSpan is how many ports after the configured one --find-port tries.
const findPortSpan = 100

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the browser editor and viewer",
	Long: `Start a local web server hosting the editor at / and the viewer at
/viewer. The viewer updates as soon as a new revision is published.

The address defaults to server.addr from the config file. With --find-port
the next free port is used when that address is taken.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

// SetServeConfig sets the configuration for the serve command.
func SetServeConfig(config *ServeConfig) {
	if config != nil {
		serveConfig = config
	}
}

func init() {
	serveCmd.Flags().StringVarP(&serveAddr, "addr", "a", "", "listen address (host:port)")
	serveCmd.Flags().BoolVar(&serveFindPort, "find-port", false, "use the next free port if the address is taken")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, _ []string) error {
	if editService == nil {
		return errEditNotConfigured
	}

	server, err := web.NewServer(&web.Ports{
		Edit:    editService,
		Publish: publishService,
		View:    viewService,
	}, serveConfig.Web)
	if err != nil {
		return err
	}

	addr := serveAddr
	if addr == "" {
		addr = serveConfig.Addr
	}
	if serveFindPort {
		free, err := services.FindAvailableAddr(addr, findPortSpan)
		if err != nil {
			return err
		}
		addr = free
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Editor: http://%s/\nViewer: http://%s/viewer\n", addr, addr)
	return server.Run(cmd.Context(), addr)
}
