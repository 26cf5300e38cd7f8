// Copyright 2026 Canonical Ltd.
// SPDX-License-Identifier: AGPL-3.0

package cmd

import (
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/canonical/sales-leaderboard/internal/types"
	"github.com/canonical/sales-leaderboard/pkg/sales"
)

var saleFlags struct {
	seller   string
	customer string
	product  string
	notes    string
	date     string
	page     int
	size     int
}

var saleCmd = &cobra.Command{
	Use:   "sale",
	Short: "Record and inspect sales",
}

var recordSaleCmd = &cobra.Command{
	Use:   "record [campaign-id] [amount]",
	Short: "Record a sale, the seller defaults to the authenticated user",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags()
		if err != nil {
			return err
		}

		req := &sales.RecordSaleRequest{
			CampaignID:         args[0],
			SellerID:           saleFlags.seller,
			Amount:             types.DecimalString(args[1]),
			CustomerName:       saleFlags.customer,
			ProductDescription: saleFlags.product,
			Notes:              saleFlags.notes,
		}

		if saleFlags.date != "" {
			d, err := parseDate(saleFlags.date, false)
			if err != nil {
				return err
			}
			req.SaleDate = &d
		}

		sale := new(types.Sale)
		if err := client.do(cmd.Context(), http.MethodPost, "/sales", nil, req, sale); err != nil {
			return fmt.Errorf("failed to record sale: %w", err)
		}

		fmt.Printf("Sale recorded: %s for %s (ID: %s)\n", sale.Amount, sale.SellerName, sale.ID)
		return nil
	},
}

var deleteSaleCmd = &cobra.Command{
	Use:   "delete [id]",
	Short: "Delete a sale",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags()
		if err != nil {
			return err
		}

		if err := client.do(cmd.Context(), http.MethodDelete, "/sales/"+args[0], nil, nil, nil); err != nil {
			return fmt.Errorf("failed to delete sale: %w", err)
		}

		fmt.Printf("Sale deleted: %s\n", args[0])
		return nil
	},
}

var listSalesCmd = &cobra.Command{
	Use:   "list [campaign-id]",
	Short: "List the sales of a campaign, newest first",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := clientFromFlags()
		if err != nil {
			return err
		}

		q := url.Values{}
		if saleFlags.page > 0 {
			q.Set("page", strconv.Itoa(saleFlags.page))
		}
		if saleFlags.size > 0 {
			q.Set("size", strconv.Itoa(saleFlags.size))
		}

		var ss []*types.Sale
		if err := client.do(cmd.Context(), http.MethodGet, "/campaigns/"+args[0]+"/sales", q, nil, &ss); err != nil {
			return fmt.Errorf("failed to list sales: %w", err)
		}

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 3, ' ', 0)
		fmt.Fprintln(w, "ID\tDATE\tSELLER\tAMOUNT\tCUSTOMER\tPRODUCT")
		for _, s := range ss {
			fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\n", s.ID, s.SaleDate.Format(dateLayout), s.SellerName, s.Amount, s.CustomerName, s.ProductDescription)
		}
		w.Flush()
		return nil
	},
}

func init() {
	recordSaleCmd.Flags().StringVar(&saleFlags.seller, "seller", "", "Seller user id, admins only")
	recordSaleCmd.Flags().StringVar(&saleFlags.customer, "customer", "", "Customer name")
	recordSaleCmd.Flags().StringVar(&saleFlags.product, "product", "", "Product description")
	recordSaleCmd.Flags().StringVar(&saleFlags.notes, "notes", "", "Free form notes")
	recordSaleCmd.Flags().StringVar(&saleFlags.date, "date", "", "Sale date, defaults to now")
	_ = recordSaleCmd.MarkFlagRequired("customer")
	_ = recordSaleCmd.MarkFlagRequired("product")

	listSalesCmd.Flags().IntVar(&saleFlags.page, "page", 0, "Page number")
	listSalesCmd.Flags().IntVar(&saleFlags.size, "size", 0, "Page size")

	saleCmd.AddCommand(recordSaleCmd)
	saleCmd.AddCommand(deleteSaleCmd)
	saleCmd.AddCommand(listSalesCmd)
	rootCmd.AddCommand(saleCmd)
}
