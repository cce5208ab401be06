package iostore

import (
	"context"
	"errors"
	"fmt"

	"github.com/huangsam/timeline-detective/internal/contract"
	"github.com/huangsam/timeline-detective/internal/parquet"
)

// ExecuteStoreExport writes every stored segment to a Parquet file next to outputFile.
func ExecuteStoreExport(ctx context.Context, mgr contract.StoreManager, outputFile string) error {
	// Validate that output file is specified
	if outputFile == "" {
		return errors.New("--output-file is required for export command")
	}

	store := mgr.GetSegmentStore()
	if store == nil {
		return errors.New("segment store is not initialized")
	}

	// Check if there's any data to export
	status, err := store.GetStatus()
	if err != nil {
		return fmt.Errorf("failed to get store status: %w", err)
	}
	if status.TotalSegments == 0 {
		return errors.New("no imported segments found to export")
	}

	fmt.Printf("Exporting data from %s backend...\n", status.Backend)
	fmt.Printf("Import #%d from %s\n", status.ImportID, status.Source)

	records, err := store.AllSegments(ctx)
	if err != nil {
		return fmt.Errorf("failed to retrieve segments: %w", err)
	}

	segmentsFile := outputFile + ".segments.parquet"
	rows := parquet.ConvertSegmentRecords(records)
	if err := parquet.WriteSegmentsParquet(rows, segmentsFile); err != nil {
		return fmt.Errorf("failed to write segments: %w", err)
	}
	fmt.Printf("Exported %d segments to: %s\n", len(rows), segmentsFile)

	return nil
}
