// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"net/http"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/canonical/sales-leaderboard/internal/types"
	"github.com/canonical/sales-leaderboard/pkg/campaigns"
)

const dateLayout = "2006-01-02"

var campaignFlags struct {
	description string
	emoji       string
	prize       string
	start       string
	end         string
	target      string
}

var campaignCmd = &cobra.Command{
	Use:   "campaign",
	Short: "Manage sales campaigns",
}

var listCampaignsCmd = &cobra.Command{
	Use:   "list",
	Short: "List the campaigns visible to the authenticated user",
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags()
		if err != nil {
			return err
		}

		var cs []*campaigns.CampaignView
		if err := client.do(cmd.Context(), http.MethodGet, "/campaigns", nil, nil, &cs); err != nil {
			return fmt.Errorf("failed to list campaigns: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tSTART\tEND\tTARGET\tRUNNING")
		for _, c := range cs {
			target := "-"
			if c.TargetAmount != nil {
				target = c.TargetAmount.String()
			}
			fmt.Fprintf(w, "%s\t%s %s\t%s\t%s\t%s\t%v\n", c.ID, c.PrizeEmoji, c.Name, c.StartDate.Format(dateLayout), c.EndDate.Format(dateLayout), target, c.Running)
		}
		w.Flush()
		return nil
	},
}

var createCampaignCmd = &cobra.Command{
	Use:   "create [name]",
	Short: "Create a campaign, dates are YYYY-MM-DD or RFC 3339",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, err := parseDate(campaignFlags.start, false)
		if err != nil {
			return err
		}

		end, err := parseDate(campaignFlags.end, true)
		if err != nil {
			return err
		}

		client, err := clientFromFlags()
		if err != nil {
			return err
		}

		req := &campaigns.CreateCampaignRequest{
			Name:             args[0],
			Description:      campaignFlags.description,
			PrizeEmoji:       campaignFlags.emoji,
			PrizeDescription: campaignFlags.prize,
			StartDate:        &start,
			EndDate:          &end,
			TargetAmount:     types.DecimalString(campaignFlags.target),
		}

		c := new(campaigns.CampaignView)
		if err := client.do(cmd.Context(), http.MethodPost, "/campaigns", nil, req, c); err != nil {
			return fmt.Errorf("failed to create campaign: %w", err)
		}

		fmt.Printf("Campaign created: %s (ID: %s)\n", c.Name, c.ID)
		return nil
	},
}

var addParticipantCmd = &cobra.Command{
	Use:   "add-seller [campaign-id] [user-id]",
	Short: "Enroll a seller in a campaign",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags()
		if err != nil {
			return err
		}

		req := &campaigns.AddParticipantRequest{UserID: args[1]}
		if err := client.do(cmd.Context(), http.MethodPost, "/campaigns/"+args[0]+"/participants", nil, req, nil); err != nil {
			return fmt.Errorf("failed to add participant: %w", err)
		}

		fmt.Printf("Seller %s enrolled in campaign %s\n", args[1], args[0])
		return nil
	},
}

var removeParticipantCmd = &cobra.Command{
	Use:   "remove-seller [campaign-id] [user-id]",
	Short: "Remove a seller from a campaign",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags()
		if err != nil {
			return err
		}

		if err := client.do(cmd.Context(), http.MethodDelete, "/campaigns/"+args[0]+"/participants/"+args[1], nil, nil, nil); err != nil {
			return fmt.Errorf("failed to remove participant: %w", err)
		}

		fmt.Printf("Seller %s removed from campaign %s\n", args[1], args[0])
		return nil
	},
}

// parseDate accepts a calendar day or a full timestamp, a bare end day covers the whole day
func parseDate(s string, endOfDay bool) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}

	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD or RFC 3339", s)
	}

	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}

	return t, nil
}

func init() {
	createCampaignCmd.Flags().StringVar(&campaignFlags.description, "description", "", "Campaign description")
	createCampaignCmd.Flags().StringVar(&campaignFlags.emoji, "emoji", "", "Prize emoji")
	createCampaignCmd.Flags().StringVar(&campaignFlags.prize, "prize", "", "Prize description")
	createCampaignCmd.Flags().StringVar(&campaignFlags.start, "start", "", "Start date")
	createCampaignCmd.Flags().StringVar(&campaignFlags.end, "end", "", "End date")
	createCampaignCmd.Flags().StringVar(&campaignFlags.target, "target", "", "Target amount")
	_ = createCampaignCmd.MarkFlagRequired("start")
	_ = createCampaignCmd.MarkFlagRequired("end")

	campaignCmd.AddCommand(listCampaignsCmd)
	campaignCmd.AddCommand(createCampaignCmd)
	campaignCmd.AddCommand(addParticipantCmd)
	campaignCmd.AddCommand(removeParticipantCmd)
	rootCmd.AddCommand(campaignCmd)
}
