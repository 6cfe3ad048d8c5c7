package main

import (
	"encoding/json"
	"os"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"

	"github.com/mmynk/claimtrack/internal/calculator"
	"github.com/mmynk/claimtrack/internal/export"
	"github.com/mmynk/claimtrack/internal/rates"
	"github.com/mmynk/claimtrack/internal/service"
	"github.com/mmynk/claimtrack/pkg/claimsapi"
)

var (
	reportOrgID string
	draftXLSX   string
)

var exposureCmd = &cobra.Command{
	Use:   "exposure <claim-id>",
	Short: "Print a claim's financial exposure",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		if _, err := store.GetClaim(ctx, reportOrgID, args[0]); err != nil {
			return err
		}
		exposure, err := calculator.ComputeExposure(ctx, store, args[0])
		if err != nil {
			return err
		}

		return printJSON(cmd, claimsapi.Exposure{
			ExposureCents:           exposure.ExposureCents,
			PaidCents:               exposure.PaidCents,
			ApprovedSupplementCents: exposure.ApprovedSupplementCents,
			PendingSupplementCents:  exposure.PendingSupplementCents,
		})
	},
}

var draftCmd = &cobra.Command{
	Use:   "draft <claim-id>",
	Short: "Build a claim's depreciation draft",
	Long:  "Prints the depreciation draft as JSON, or writes it as a spreadsheet with --xlsx.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		schedule, err := rates.LoadFile(cfg.Rates.ScheduleFile)
		if err != nil {
			return err
		}

		store, err := openStore(ctx)
		if err != nil {
			return err
		}
		defer store.Close()

		claim, err := store.GetClaim(ctx, reportOrgID, args[0])
		if err != nil {
			return err
		}
		draft, err := calculator.ComputeDepreciationDraft(ctx, store, reportOrgID, claim.ID, schedule)
		if err != nil {
			return err
		}

		if draftXLSX == "" {
			return printJSON(cmd, service.DraftToAPI(draft))
		}

		f, err := os.Create(draftXLSX)
		if err != nil {
			return eris.Wrap(err, "create xlsx file")
		}
		defer f.Close()
		if err := export.WriteDraftXLSX(f, claim, draft); err != nil {
			return err
		}
		return f.Close()
	},
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func init() {
	for _, c := range []*cobra.Command{exposureCmd, draftCmd} {
		c.Flags().StringVar(&reportOrgID, "org", "", "organization that owns the claim (required)")
		_ = c.MarkFlagRequired("org")
		rootCmd.AddCommand(c)
	}
	draftCmd.Flags().StringVar(&draftXLSX, "xlsx", "", "write the draft to this spreadsheet path")
}
