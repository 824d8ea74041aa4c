package main

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"landing-countdown/countdown/domain"

	"github.com/spf13/cobra"
)

func newRemainingCmd(c *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "remaining",
		Short: "Print the time left once",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, err := c.service()
			if err != nil {
				return err
			}
			snap := svc.Snapshot(svc.ResolveTarget(c.target))
			if asJSON {
				return writeSnapshotJSON(cmd.OutOrStdout(), snap)
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), formatLine(snap.Remaining))
			return err
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the snapshot as JSON")
	return cmd
}

// formatLine escreve a linha no formato do widget: "12 Dias 03 Horas 00 Min 09 Seg".
func formatLine(rem domain.Remaining) string {
	return fmt.Sprintf("%s Dias %s Horas %s Min %s Seg",
		domain.Pad2(rem.Days), domain.Pad2(rem.Hours), domain.Pad2(rem.Minutes), domain.Pad2(rem.Seconds))
}

type snapshotJSON struct {
	Target       string `json:"target"`
	Days         int    `json:"days"`
	Hours        int    `json:"hours"`
	Minutes      int    `json:"minutes"`
	Seconds      int    `json:"seconds"`
	TotalSeconds int64  `json:"total_seconds"`
	State        string `json:"state"`
}

func writeSnapshotJSON(w io.Writer, snap domain.Snapshot) error {
	out := snapshotJSON{
		Days:         snap.Remaining.Days,
		Hours:        snap.Remaining.Hours,
		Minutes:      snap.Remaining.Minutes,
		Seconds:      snap.Remaining.Seconds,
		TotalSeconds: snap.Remaining.TotalSeconds(),
		State:        snap.State.String(),
	}
	if !snap.Target.IsZero() {
		out.Target = snap.Target.Format(time.RFC3339)
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(out)
}
