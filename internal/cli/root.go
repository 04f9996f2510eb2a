// Package cli defines the cobra command tree for vmsync.
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/phawaaz/vmsync/internal/client"
	"github.com/phawaaz/vmsync/internal/logging"
	"github.com/phawaaz/vmsync/internal/session"
	"github.com/phawaaz/vmsync/internal/visitsync"
)

var (
	flagFormat  string
	flagSession string
	flagDebug   bool
)

// NewRootCmd creates the root cobra command with global flags.
func NewRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "vmsync",
		Short:         "Schedule and track your visitor-management visits",
		Long:          "A companion client for the Phawaaz visitor-management system. Log in, schedule visits, sync your visit summary, and review upcoming check-ins from the terminal.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.Setup(flagDebug)
		},
	}

	root.PersistentFlags().StringVar(&flagFormat, "format", "text", "output format (text|json)")
	root.PersistentFlags().StringVar(&flagSession, "session", "", "session database path (default: ~/.config/vmsync/session.db)")
	root.PersistentFlags().BoolVar(&flagDebug, "debug", false, "enable debug logging of API requests")

	root.AddCommand(
		newLoginCmd(),
		newRegisterCmd(),
		newLogoutCmd(),
		newWhoamiCmd(),
		newStatusCmd(),
		newListCmd(),
		newUpcomingCmd(),
		newScheduleCmd(),
		newVersionCmd(),
	)

	return root
}

// newAPIClient creates an HTTP client for the VMS API.
func newAPIClient() *client.Client {
	c := client.New(getServerURL())
	if flagDebug {
		c.SetTransport(&logging.Transport{})
	}
	return c
}

// openStore opens the session store using the --session flag or default path.
func openStore() (*session.Store, error) {
	path := flagSession
	if path == "" {
		var err error
		path, err = session.DefaultPath()
		if err != nil {
			return nil, err
		}
	}
	return session.Open(path)
}

// newService builds the synchronization service over a fresh client and the
// session store. The caller owns closing the returned store.
func newService() (*visitsync.Service, *session.Store, error) {
	store, err := openStore()
	if err != nil {
		return nil, nil, err
	}
	return visitsync.New(newAPIClient(), store), store, nil
}

// isJSON returns true if the --format flag is set to json.
func isJSON() bool {
	return flagFormat == "json"
}

// closeStore closes the session store, logging any error to stderr.
func closeStore(store *session.Store) {
	if err := store.Close(); err != nil {
		fmt.Fprintf(os.Stderr, "warning: closing session store: %v\n", err)
	}
}
