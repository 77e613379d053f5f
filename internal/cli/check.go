package cli

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/vvka-141/claimload/internal/blob"
	"github.com/vvka-141/claimload/internal/checksum"
	"github.com/vvka-141/claimload/internal/db"
	"github.com/vvka-141/claimload/internal/frame"
	"github.com/vvka-141/claimload/pkg/claimload"
)

var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Verify connectivity and landing feeds without loading",
	Long: `Check performs a dry preflight of a load run:

1. Resolves configuration exactly as 'run' would
2. Connects to the warehouse and pings it
3. Verifies the staging tables, run ledger, and upsert procedures exist
4. Downloads each landing CSV and validates its schema

Nothing is written: staging tables, final tables, and the run ledger are
untouched. Use it to validate credentials and feeds before scheduling runs.

Examples:
  claimload check
  claimload check -d claims -U loader --container landing`,
	Args: cobra.NoArgs,
	RunE: runCheck,
}

var checkFlags connFlagValues

func init() {
	rootCmd.AddCommand(checkCmd)
	registerConnFlags(checkCmd, &checkFlags)
}

// feedChecks pairs each landing object with its expected header.
var feedChecks = []struct {
	object  string
	columns []string
}{
	{claimload.ProviderObject, []string{"Name", "Region", "Specialty"}},
	{claimload.PatientObject, []string{"FirstName", "LastName", "BirthDate", "Gender"}},
	{claimload.ClaimObject, []string{
		"PatientFirstName", "PatientLastName", "PatientBirthDate",
		"ProviderName", "ProviderRegion",
		"AmountBilled", "AmountPaid", "Status", "DateSubmitted", "DatePaid",
	}},
}

func runCheck(cmd *cobra.Command, args []string) error {
	verbose := getVerboseFlag(cmd)
	_ = godotenv.Load()

	setup, err := resolveSetup(cmd, &checkFlags, verbose)
	if err != nil {
		return err
	}
	setup.connConfig.AppName = "claimload-check"

	ctx, cancel := context.WithTimeout(context.Background(), setup.timeout)
	defer cancel()

	failures := 0
	var firstErr error

	connector, err := db.NewConnector(setup.connConfig)
	if err != nil {
		return err
	}
	started := time.Now()
	pool, err := connector.Connect(ctx)
	if err != nil {
		fmt.Printf("✗ warehouse: %v\n", err)
		failures++
		firstErr = err
	} else {
		fmt.Printf("✓ warehouse %s:%d/%s reachable (%s)\n",
			setup.connConfig.Host, setup.connConfig.Port, setup.connConfig.Database,
			time.Since(started).Round(time.Millisecond))
		if err := checkWarehouseObjects(ctx, pool); err != nil {
			fmt.Printf("✗ warehouse objects: %v\n", err)
			failures++
			if firstErr == nil {
				firstErr = err
			}
		} else {
			fmt.Println("✓ staging tables, run ledger, and upsert procedures present")
		}
		pool.Close()
	}

	store, err := blob.NewStore(setup.storageConn)
	if err != nil {
		return err
	}

	for _, feed := range feedChecks {
		if err := checkFeed(ctx, store, setup.container, feed.object, feed.columns); err != nil {
			fmt.Printf("✗ %s/%s: %v\n", setup.container, feed.object, err)
			failures++
			if firstErr == nil {
				firstErr = err
			}
		}
	}

	if failures > 0 {
		// Wrapping the first failure keeps its exit-code classification.
		return fmt.Errorf("%d check(s) failed: %w", failures, firstErr)
	}

	fmt.Fprintln(os.Stderr, "All checks passed.")
	return nil
}

// checkWarehouseObjects verifies the external schema this tool writes to and
// calls into actually exists: staging tables, the run ledger, and the upsert
// procedures.
func checkWarehouseObjects(ctx context.Context, pool *pgxpool.Pool) error {
	relations := []string{
		claimload.StgProviderTable,
		claimload.StgPatientTable,
		claimload.StgClaimTable,
		claimload.RunTable,
	}
	for _, rel := range relations {
		var exists bool
		err := pool.QueryRow(ctx, `SELECT to_regclass($1) IS NOT NULL`,
			pgx.Identifier{rel}.Sanitize()).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("relation %q not found (wrong database?)", rel)
		}
	}

	procs := []string{
		claimload.ProcUpsertProvider,
		claimload.ProcUpsertPatient,
		claimload.ProcUpsertClaim,
	}
	for _, proc := range procs {
		var exists bool
		err := pool.QueryRow(ctx,
			`SELECT EXISTS (SELECT 1 FROM pg_proc WHERE proname = $1)`, proc).Scan(&exists)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("procedure %s not found", proc)
		}
	}
	return nil
}

// checkFeed downloads and schema-validates one landing CSV.
func checkFeed(ctx context.Context, store blob.Store, container, object string, columns []string) error {
	data, err := store.Get(ctx, container, object)
	if err != nil {
		return err
	}

	f, err := frame.FromCSV(data)
	if err != nil {
		return err
	}
	f = f.RepairSingleColumn()

	if err := f.Validate(columns); err != nil {
		return err
	}

	fmt.Printf("✓ %s/%s: %d rows, schema ok, sha256 %s\n",
		container, object, f.RowCount(), checksum.Short(data))
	return nil
}
