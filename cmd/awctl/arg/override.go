package arg

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/spf13/cobra"

	"github.com/SoarinFerret/AppWarden/internal/ipc"
)

var overrideCmd = &cobra.Command{
	Use:   "override",
	Short: "Activate the daily override",
	Long: `Temporarily lift the block for the configured duration (45 minutes
by default). The override can be used once per calendar day.`,
	Run: func(cmd *cobra.Command, args []string) {
		conn, obj, err := daemon()
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		var result string
		if err := obj.Call(ipc.InterfaceName+".ActivateOverride", 0).Store(&result); err != nil {
			log.Fatal("Failed to activate override:", err)
		}

		var state struct {
			ExpiresAt *time.Time `json:"overrideExpiresAt"`
		}
		if err := json.Unmarshal([]byte(result), &state); err != nil {
			log.Fatal("Failed to parse response:", err)
		}

		fmt.Println("Override activated")
		if state.ExpiresAt != nil {
			fmt.Println("  Expires:", state.ExpiresAt.Format(time.Kitchen))
		}
	},
}

func init() {
	rootCmd.AddCommand(overrideCmd)
}
