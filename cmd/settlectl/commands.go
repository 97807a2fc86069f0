package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmynk/sitesettle/internal/calculator"
	"github.com/mmynk/sitesettle/internal/models"
	"github.com/mmynk/sitesettle/pkg/logging"
)

type rootOptions struct {
	file     string
	logLevel string
}

func newRootCmd(out io.Writer) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "settlectl",
		Short:         "Net and settle material debts between construction sites",
		SilenceUsage:  true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			slog.SetDefault(logging.New(os.Stderr, logging.ParseLevel(opts.logLevel)))
		},
	}
	cmd.SetOut(out)
	cmd.PersistentFlags().StringVarP(&opts.file, "file", "f", "debts.yaml", "YAML file of open debts")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "warn", "debug, info, warn or error")

	cmd.AddCommand(
		newBalancesCmd(opts),
		newNetCmd(opts),
		newGenerateCmd(opts),
	)
	return cmd
}

func newBalancesCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "balances",
		Short: "Show what each site owes each other site",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debts, err := loadDebts(opts.file)
			if err != nil {
				return err
			}
			balances := calculator.Aggregate(debts)
			slog.Debug("Aggregated debts", "debts", len(debts), "balances", len(balances))

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "DEBTOR\tCREDITOR\tOWED\tMATERIALS\tVENDOR")
			for _, b := range balances {
				fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
					b.DebtorSiteID, b.CreditorSiteID, b.TotalAmountOwed.StringFixed(2),
					len(b.MaterialBreakdown), vendorState(b.HasUnpaidVendor))
			}
			fmt.Fprintln(w)
			fmt.Fprintln(w, "SITE\tOWED TO\tOWED BY\tNET")
			for _, s := range calculator.SummarizeSites(balances) {
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
					s.SiteID, s.OwedToSite.StringFixed(2), s.OwedBySite.StringFixed(2), s.Net.StringFixed(2))
			}
			return w.Flush()
		},
	}
}

func newNetCmd(opts *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "net",
		Short: "Show reciprocal pairs and what netting each would leave",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debts, err := loadDebts(opts.file)
			if err != nil {
				return err
			}
			netting := calculator.DetectReciprocalPairs(calculator.Aggregate(debts))

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "PAIR\tOFFSET\tPAYER\tRECEIVER\tNET")
			for _, p := range netting.Pairs {
				fmt.Fprintf(w, "%s <-> %s\t%s\t%s\t%s\t%s\n",
					p.A.DebtorSiteID, p.A.CreditorSiteID, p.OffsetAmount.StringFixed(2),
					p.NetPayerSiteID, p.NetReceiverSiteID, p.NetRemaining.StringFixed(2))
			}
			if len(netting.Remainder) > 0 {
				fmt.Fprintln(w)
				fmt.Fprintln(w, "ONE-WAY\tOWED")
				for _, b := range netting.Remainder {
					fmt.Fprintf(w, "%s -> %s\t%s\n", b.DebtorSiteID, b.CreditorSiteID, b.TotalAmountOwed.StringFixed(2))
				}
			}
			return w.Flush()
		},
	}
}

type generateOptions struct {
	debtor    string
	creditor  string
	materials []string
	net       bool
}

func newGenerateCmd(opts *rootOptions) *cobra.Command {
	g := &generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Draft the settlement for one balance, or the net settlement for a reciprocal pair",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			debts, err := loadDebts(opts.file)
			if err != nil {
				return err
			}
			balances := calculator.Aggregate(debts)

			if g.net {
				pair, ok := calculator.FindPair(calculator.DetectReciprocalPairs(balances).Pairs, g.debtor, g.creditor)
				if !ok {
					return fmt.Errorf("%w: %s and %s do not owe each other", calculator.ErrNothingToSettle, g.debtor, g.creditor)
				}
				result, err := calculator.GenerateNet(pair)
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "offset %s between %s and %s\n",
					result.Offset.OffsetAmount.StringFixed(2), result.Offset.SiteAID, result.Offset.SiteBID)
				if result.Settlement == nil {
					fmt.Fprintln(cmd.OutOrStdout(), "fully net, nothing to pay")
					return nil
				}
				printSettlement(cmd.OutOrStdout(), *result.Settlement)
				return nil
			}

			balance, ok := calculator.FindBalance(balances, g.debtor, g.creditor)
			if !ok {
				return fmt.Errorf("%w: %s has no open debts to %s", calculator.ErrNothingToSettle, g.debtor, g.creditor)
			}
			settlement, err := calculator.GenerateFromBalance(balance, g.materials)
			if err != nil {
				return err
			}
			printSettlement(cmd.OutOrStdout(), settlement)
			return nil
		},
	}
	cmd.Flags().StringVar(&g.debtor, "debtor", "", "site that owes")
	cmd.Flags().StringVar(&g.creditor, "creditor", "", "site that is owed")
	cmd.Flags().StringSliceVar(&g.materials, "material", nil, "bill only these material IDs")
	cmd.Flags().BoolVar(&g.net, "net", false, "net the reciprocal pair between --debtor and --creditor")
	_ = cmd.MarkFlagRequired("debtor")
	_ = cmd.MarkFlagRequired("creditor")
	cmd.MarkFlagsMutuallyExclusive("net", "material")
	return cmd
}

func printSettlement(w io.Writer, s models.Settlement) {
	fmt.Fprintf(w, "%s pays %s %s (%s) for %s\n",
		s.ToSiteID, s.FromSiteID, s.TotalAmount.StringFixed(2), s.Kind, strings.Join(s.MaterialIDs, ", "))
}

func vendorState(unpaid bool) string {
	if unpaid {
		return "unpaid"
	}
	return "paid"
}
