package arg

import (
	"encoding/json"
	"fmt"
	"log"

	"github.com/spf13/cobra"

	"github.com/SoarinFerret/AppWarden/internal/ipc"
	"github.com/SoarinFerret/AppWarden/internal/schedule"
)

var windowLabel string

var scheduleCmd = &cobra.Command{
	Use:   "schedule",
	Short: "Manage the allowed time windows",
}

var scheduleListCmd = &cobra.Command{
	Use:   "list",
	Short: "List the allowed windows",
	Run: func(cmd *cobra.Command, args []string) {
		conn, obj, err := daemon()
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		var result string
		if err := obj.Call(ipc.InterfaceName+".ListWindows", 0).Store(&result); err != nil {
			log.Fatal("Failed to list windows:", err)
		}

		var windows []schedule.TimeWindow
		if err := json.Unmarshal([]byte(result), &windows); err != nil {
			log.Fatal("Failed to parse response:", err)
		}

		if len(windows) == 0 {
			fmt.Println("No allowed windows configured - apps are blocked all day")
			return
		}
		for _, w := range windows {
			fmt.Printf("%s  %-20s %s\n", w.ID, w.Label, w)
		}
	},
}

var scheduleAddCmd = &cobra.Command{
	Use:   "add <HH:MM-HH:MM>",
	Short: "Add an allowed window",
	Long: `Add a daily allowed window.
Examples:
  awctl schedule add 09:00-09:30 --label Breakfast
  awctl schedule add 18:00-19:00 --label Dinner`,
	Args: cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		conn, obj, err := daemon()
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		var id string
		if err := obj.Call(ipc.InterfaceName+".AddWindow", 0, windowLabel, args[0]).Store(&id); err != nil {
			log.Fatal("Failed to add window:", err)
		}
		fmt.Println("Window added:", id)
	},
}

var scheduleRemoveCmd = &cobra.Command{
	Use:   "remove <id>",
	Short: "Remove an allowed window by id",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		conn, obj, err := daemon()
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		if err := obj.Call(ipc.InterfaceName+".RemoveWindow", 0, args[0]).Store(); err != nil {
			log.Fatal("Failed to remove window:", err)
		}
		fmt.Println("Window removed:", args[0])
	},
}

var scheduleExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the allowed windows as an iCalendar feed",
	Run: func(cmd *cobra.Command, args []string) {
		conn, obj, err := daemon()
		if err != nil {
			log.Fatal(err)
		}
		defer conn.Close()

		var ical string
		if err := obj.Call(ipc.InterfaceName+".ExportSchedule", 0).Store(&ical); err != nil {
			log.Fatal("Failed to export schedule:", err)
		}
		fmt.Print(ical)
	},
}

func init() {
	scheduleAddCmd.Flags().StringVarP(&windowLabel, "label", "l", "", "Label for the window")

	scheduleCmd.AddCommand(scheduleListCmd)
	scheduleCmd.AddCommand(scheduleAddCmd)
	scheduleCmd.AddCommand(scheduleRemoveCmd)
	scheduleCmd.AddCommand(scheduleExportCmd)
	rootCmd.AddCommand(scheduleCmd)
}
