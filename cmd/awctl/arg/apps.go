package arg

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/SoarinFerret/AppWarden/internal/ipc"
)

var appsCmd = &cobra.Command{
	Use:   "apps",
	Short: "Manage the blocked application selection",
}

var appsSetCmd = &cobra.Command{
	Use:   "set <command>...",
	Short: "Set the application selection",
	Long: `Set the commands to restrict, matched against process names.
Example:
  awctl apps set steam discord firefox`,
	Args: cobra.MinimumNArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		conn, obj, err := daemon()
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		if err := obj.Call(ipc.InterfaceName+".SetApps", 0, args).Store(); err != nil {
			log.Fatal("Failed to set apps:", err)
		}
		fmt.Println("Application selection updated")
	},
}

var appsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the application selection",
	Run: func(cmd *cobra.Command, args []string) {
		conn, obj, err := daemon()
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		var apps []string
		if err := obj.Call(ipc.InterfaceName+".GetApps", 0).Store(&apps); err != nil {
			log.Fatal("Failed to get apps:", err)
		}
		if len(apps) == 0 {
			fmt.Println("No applications selected - shielding is a no-op")
			return
		}
		for _, a := range apps {
			fmt.Println(a)
		}
	},
}

func init() {
	appsCmd.AddCommand(appsSetCmd)
	appsCmd.AddCommand(appsListCmd)
	rootCmd.AddCommand(appsCmd)
}
