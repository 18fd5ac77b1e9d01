package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/battray/internal/battery"
	"github.com/jmylchreest/battray/internal/upower"
)

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Follow battery state changes",
	Long: `Subscribe to property changes of the UPower display device and
print one line per recomputed snapshot until interrupted.

The first line is printed immediately from current values; subsequent
lines follow UPower's change notifications.`,
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	conn, err := upower.Connect()
	if err != nil {
		return err
	}
	defer conn.Close()

	device, err := upower.ResolveDisplayDevice(conn)
	if err != nil {
		return err
	}
	logger.Debug("display device resolved", "path", device.Path())

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	events := device.Watch(ctx,
		upower.PropIconName,
		upower.PropPercentage,
		upower.PropTimeToEmpty,
	)

	sync := battery.NewSynchronizer(device, events, logger)
	sync.SetPublishCallback(func(snap battery.Snapshot) {
		fmt.Fprintf(os.Stdout, "%s\t%s\n", snap.IconName, battery.FormatRemaining(snap.TimeRemaining, snap.Percent))
	})
	sync.Run(ctx)

	return nil
}
