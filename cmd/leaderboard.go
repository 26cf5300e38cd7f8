// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/canonical/sales-leaderboard/pkg/leaderboard"
)

var leaderboardCmd = &cobra.Command{
	Use:   "leaderboard [campaign-id]",
	Short: "Show the ranked totals of a campaign",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags()
		if err != nil {
			return err
		}

		board, err := fetchLeaderboard(cmd.Context(), client, args[0])
		if err != nil {
			return err
		}

		renderLeaderboard(os.Stdout, board)
		return nil
	},
}

func fetchLeaderboard(ctx context.Context, client *apiClient, campaignID string) (*leaderboard.Leaderboard, error) {
	board := new(leaderboard.Leaderboard)
	if err := client.do(ctx, http.MethodGet, "/campaigns/"+campaignID+"/leaderboard", nil, nil, board); err != nil {
		return nil, fmt.Errorf("failed to fetch leaderboard: %w", err)
	}

	return board, nil
}

// renderLeaderboard prints the board with the leader highlighted
func renderLeaderboard(out io.Writer, board *leaderboard.Leaderboard) {
	title := board.CampaignID
	if c := board.Campaign; c != nil {
		title = c.PrizeEmoji + " " + c.Name
	}

	state := "ended"
	if board.Running {
		state = "running"
	}

	leader := color.New(color.FgYellow, color.Bold)

	fmt.Fprintf(out, "%s (%s), total %s", title, state, board.TotalAmount)
	if c := board.Campaign; c != nil && c.TargetAmount != nil {
		fmt.Fprintf(out, " of %s", c.TargetAmount)
	}
	fmt.Fprintln(out)

	if len(board.Entries) == 0 {
		fmt.Fprintln(out, "no sales yet")
		return
	}

	var table bytes.Buffer

	w := tabwriter.NewWriter(&table, 0, 0, 3, ' ', 0)
	fmt.Fprintln(w, "RANK\tSELLER\tTOTAL\tSALES")
	for _, e := range board.Entries {
		fmt.Fprintf(w, "%d\t%s\t%s\t%d\n", e.Rank, e.SellerName, e.TotalAmount, e.SalesCount)
	}
	w.Flush()

	// colors are applied after alignment, escape codes would skew the columns
	lines := strings.Split(strings.TrimSuffix(table.String(), "\n"), "\n")
	for i, line := range lines {
		if i > 0 && board.Entries[i-1].Rank == 1 {
			line = leader.Sprint(line)
		}
		fmt.Fprintln(out, line)
	}
}

func init() {
	rootCmd.AddCommand(leaderboardCmd)
}
