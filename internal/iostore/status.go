package iostore

import (
	"fmt"
	"sort"

	"github.com/huangsam/timeline-detective/schema"
)

// PrintStoreStatus prints segment store status information.
func PrintStoreStatus(status schema.StoreStatus) {
	fmt.Printf("Store Backend: %s\n", status.Backend)
	fmt.Printf("Connected: %t\n", status.Connected)
	if !status.Connected {
		return
	}
	if status.ImportID == 0 {
		fmt.Println("No timeline imported")
	} else {
		fmt.Printf("Import ID: %d\n", status.ImportID)
		fmt.Printf("Source: %s\n", status.Source)
		fmt.Printf("Imported At: %s\n", status.ImportedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Printf("Total Segments: %d\n", status.TotalSegments)

	kinds := make([]string, 0, len(status.SegmentsByKind))
	for kind := range status.SegmentsByKind {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		fmt.Printf("  %s: %d\n", kind, status.SegmentsByKind[kind])
	}

	fmt.Println("Table Sizes:")
	for _, table := range []string{importsTable, segmentsTable} {
		fmt.Printf("  %s: %d rows\n", table, status.TableSizes[table])
	}
}
