package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/jmylchreest/battray/internal/upower"
)

var statusOpts struct {
	jsonOutput bool
}

// jsonStatus is the machine-readable status output.
type jsonStatus struct {
	IconName    string  `json:"icon_name"`
	Percentage  float64 `json:"percentage"`
	State       string  `json:"state"`
	TimeToEmpty int64   `json:"time_to_empty_seconds,omitempty"`
	TimeToFull  int64   `json:"time_to_full_seconds,omitempty"`
	IsPresent   bool    `json:"is_present"`
}

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the current battery state",
	Long: `Print the current state of the UPower display device: icon,
percentage, charging state, and the time estimate UPower reports.

With --json the output is a single JSON object, suitable for status bars:

  "custom/battery": {
    "exec": "battray status --json",
    "interval": 30,
    "return-type": "json"
  }`,
	RunE: runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)

	statusCmd.Flags().BoolVar(&statusOpts.jsonOutput, "json", false,
		"Output as JSON")
}

func runStatus(cmd *cobra.Command, args []string) error {
	conn, err := upower.Connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	device, err := upower.ResolveDisplayDevice(conn)
	if err != nil {
		return err
	}

	st := device.Status()

	if statusOpts.jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		return enc.Encode(jsonStatus{
			IconName:    st.IconName,
			Percentage:  st.Percentage,
			State:       st.State.String(),
			TimeToEmpty: int64(st.TimeToEmpty / time.Second),
			TimeToFull:  int64(st.TimeToFull / time.Second),
			IsPresent:   st.IsPresent,
		})
	}

	fmt.Printf("%.0f%% (%s)\n", st.Percentage, st.State)
	if estimate := formatEstimate(st); estimate != "" {
		fmt.Println(estimate)
	}
	return nil
}

// formatEstimate phrases the relevant time estimate for the current state.
func formatEstimate(st upower.Status) string {
	now := time.Now()
	switch st.State {
	case upower.StateDischarging:
		if st.TimeToEmpty > 0 {
			return humanize.RelTime(now.Add(st.TimeToEmpty), now, "", "until empty")
		}
	case upower.StateCharging:
		if st.TimeToFull > 0 {
			return humanize.RelTime(now.Add(st.TimeToFull), now, "", "until full")
		}
	}
	return ""
}
