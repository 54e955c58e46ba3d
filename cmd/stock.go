package cmd

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"warehouse.GO/config"
	"warehouse.GO/cron/jobs"
	"warehouse.GO/model/entity/warehouse"
	"warehouse.GO/service/allocation"
)

var stockAuditCmd = &cobra.Command{
	Use:   "stock:audit",
	Short: "Compare every batch total with the sum of its location rows",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		drift, err := jobs.StockAudit(context.Background(), db, config.GetLogger())
		if err != nil {
			return err
		}
		out := cmd.OutOrStdout()
		if len(drift) == 0 {
			fmt.Fprintln(out, "All batch totals match their location rows.")
			return nil
		}
		fmt.Fprintf(out, "%d batch(es) drifted:\n", len(drift))
		for _, d := range drift {
			fmt.Fprintf(out, "  batch %d (%s): total %d, locations %d\n", d.BatchID, d.Barcode, d.QuantityUnits, d.RowUnits)
		}
		return nil
	},
}

var (
	simLocations []string
	simVolume    string
	simIn        int
	simOut       int
	simPreferred string
)

var stockSimulateCmd = &cobra.Command{
	Use:   "stock:simulate",
	Short: "Dry-run the allocation engine on in-memory locations",
	Example: `  warehouse stock:simulate --location A-01=10 --location B-01=4 --volume 2 --in 9 --out 3
  warehouse stock:simulate --location A-01=10 --location B-01=4 --volume 2 --in 4 --preferred B-01`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return simulate(cmd.OutOrStdout())
	},
}

func simulate(out io.Writer) error {
	if len(simLocations) == 0 {
		return fmt.Errorf("at least one --location CODE=CAPACITY is required")
	}
	volume, err := decimal.NewFromString(simVolume)
	if err != nil || volume.IsNegative() {
		return fmt.Errorf("invalid --volume %q", simVolume)
	}

	ctx := context.Background()
	store := allocation.NewMemoryStore()
	byCode := map[string]*warehouse.Location{}
	var ordered []*warehouse.Location
	for i, arg := range simLocations {
		code, capacity, ok := strings.Cut(arg, "=")
		if !ok {
			return fmt.Errorf("invalid --location %q, want CODE=CAPACITY", arg)
		}
		vol, err := decimal.NewFromString(capacity)
		if err != nil {
			return fmt.Errorf("invalid capacity in %q", arg)
		}
		loc := warehouse.Location{ID: uint(i + 1), Code: code, Name: code, CapacityVolume: vol}
		store.AddLocation(loc)
		byCode[code] = &loc
		ordered = append(ordered, &loc)
	}
	var preferred *warehouse.Location
	if simPreferred != "" {
		if preferred = byCode[simPreferred]; preferred == nil {
			return fmt.Errorf("--preferred %s is not one of the locations", simPreferred)
		}
	}

	item := warehouse.Item{ID: 1, SKUCode: "SIM", Name: "simulated", Unit: config.App().DefaultUnit, PackagingVolume: volume}
	batch := &warehouse.Batch{ID: 1, ItemID: 1, Item: item, BatchNumber: "SIM"}
	store.AddBatch(*batch)
	engine := allocation.NewEngine(store)

	placeable, err := engine.MaxPlaceableUnits(ctx, &item, preferred)
	if err != nil {
		return err
	}
	if placeable >= allocation.UnlimitedUnits {
		fmt.Fprintln(out, "Placeable before inbound: unlimited")
	} else {
		fmt.Fprintf(out, "Placeable before inbound: %d\n", placeable)
	}

	if simIn > 0 {
		res, err := engine.AllocateInbound(ctx, batch, simIn, preferred)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Inbound %d: allocated %d, not shelved %d\n", simIn, res.AllocatedUnits, res.RemainingUnits)
		for _, a := range res.Assignments {
			fmt.Fprintf(out, "  + %s %d\n", a.Location.Code, a.Units)
		}
	}
	if simOut > 0 {
		res, err := engine.ReleaseOutbound(ctx, batch, simOut, preferred)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "Outbound %d: removed %d from locations\n", simOut, res.RemovedUnits)
		for _, a := range res.Assignments {
			fmt.Fprintf(out, "  - %s %d\n", a.Location.Code, a.Units)
		}
	}

	fmt.Fprintf(out, "Batch total: %d\n", store.BatchQuantity(batch.ID))
	for _, l := range ordered {
		if n := store.Quantity(batch.ID, l.ID); n > 0 {
			fmt.Fprintf(out, "  %s: %d\n", l.Code, n)
		}
	}
	return nil
}

func init() {
	f := stockSimulateCmd.Flags()
	f.StringArrayVar(&simLocations, "location", nil, "Location as CODE=CAPACITY (repeatable)")
	f.StringVar(&simVolume, "volume", "1", "Packaging volume of one unit")
	f.IntVar(&simIn, "in", 0, "Units to receive")
	f.IntVar(&simOut, "out", 0, "Units to ship after receiving")
	f.StringVar(&simPreferred, "preferred", "", "Preferred location code")
	rootCmd.AddCommand(stockAuditCmd, stockSimulateCmd)
}
