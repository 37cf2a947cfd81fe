package arg

import (
	"fmt"
	"os"

	"github.com/godbus/dbus/v5"
	"github.com/spf13/cobra"

	"github.com/SoarinFerret/AppWarden/internal/ipc"
)

var rootCmd = &cobra.Command{
	Use:   "awctl",
	Short: "awctl is the command line tool for AppWarden",
	Long: `awctl allows you to interact with the AppWarden daemon via D-Bus.
			You can manage allowed windows, the blocked app selection, and the
			daily override, and query the current blocking status.`,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// daemon returns the daemon's D-Bus object. The caller owns the connection.
func daemon() (*dbus.Conn, dbus.BusObject, error) {
	conn, err := dbus.ConnectSystemBus()
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to system bus: %w", err)
	}
	return conn, conn.Object(ipc.ServiceName, dbus.ObjectPath(ipc.ObjectPath)), nil
}
