package cli

import (
	"fmt"
	"strings"

	"github.com/brownsdata/ingredient-allocator/internal/domain/allocator"
)

// PrintAllocationTable prints an allocation plan the way the old dashboard
// rendered it: one row per department, proportion and allocated quantity.
func PrintAllocationTable(item string, result *allocator.Result) {
	fmt.Printf("Allocation for %q (available: %s)\n", item, result.Target.String())
	fmt.Println(strings.Repeat("-", 56))
	fmt.Printf("%-32s %10s %12s\n", "Department", "Share %", "Allocated")
	fmt.Println(strings.Repeat("-", 56))

	for _, a := range result.Allocations {
		fmt.Printf("%-32s %10.2f %12s\n", a.Key.String(), a.Share, a.Quantity.String())
	}

	fmt.Println(strings.Repeat("-", 56))
	fmt.Printf("%-32s %10.2f %12s\n", "Total", 100.0, result.Total.String())
}
