package arg

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/SoarinFerret/AppWarden/internal/ipc"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current blocking status",
	Run: func(cmd *cobra.Command, args []string) {
		conn, obj, err := daemon()
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		var result string
		if err := obj.Call(ipc.InterfaceName+".Status", 0).Store(&result); err != nil {
			log.Fatal("Failed to get status:", err)
		}

		var status struct {
			Blocked                  bool   `json:"blocked"`
			Detail                   string `json:"detail"`
			OverrideAvailable        bool   `json:"overrideAvailable"`
			OverrideRemainingSeconds int64  `json:"overrideRemainingSeconds"`
		}
		if err := json.Unmarshal([]byte(result), &status); err != nil {
			log.Fatal("Failed to parse response:", err)
		}

		if status.Blocked {
			fmt.Println("Apps Blocked")
		} else {
			fmt.Println("Apps Allowed")
		}
		fmt.Println(" ", status.Detail)
		if status.OverrideAvailable {
			fmt.Println("  Override available")
		} else {
			fmt.Println("  Override already used today")
		}
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
