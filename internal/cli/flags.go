package cli

import "flag"

// ServeFlags holds the CLI flags for the serve command.
type ServeFlags struct {
	Port    int
	Verbose bool
}

// ParseServeFlags parses command line flags for the serve command.
func ParseServeFlags() *ServeFlags {
	flags := &ServeFlags{}
	flag.IntVar(&flags.Port, "port", 0, "Port to listen on (0 = use config)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// ImportFlags holds the CLI flags for the import command.
type ImportFlags struct {
	File    string
	MinYear int
	Verbose bool
}

// ParseImportFlags parses command line flags for the import command.
func ParseImportFlags() *ImportFlags {
	flags := &ImportFlags{}
	flag.StringVar(&flags.File, "file", "", "Path to a CHECK_OUT CSV export")
	flag.IntVar(&flags.MinYear, "min-year", 0, "Drop rows before this year (0 = use config)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}

// AllocateFlags holds the CLI flags for the one-shot allocate command.
type AllocateFlags struct {
	Item       string
	Quantity   float64
	Department string
	Levels     string
	MinShare   float64
	Precision  int
	Verbose    bool
}

// ParseAllocateFlags parses command line flags for the allocate command.
func ParseAllocateFlags() *AllocateFlags {
	flags := &AllocateFlags{}
	flag.StringVar(&flags.Item, "item", "", "Item name or serial code")
	flag.Float64Var(&flags.Quantity, "quantity", 0, "Available quantity to distribute")
	flag.StringVar(&flags.Department, "department", "", "Restrict to one department (empty = all)")
	flag.StringVar(&flags.Levels, "levels", "department", "Grouping levels: department, section, or department,section")
	flag.Float64Var(&flags.MinShare, "min-share", -1, "Significance threshold in percent (-1 = use config)")
	flag.IntVar(&flags.Precision, "precision", 0, "Decimal places to allocate at (0 = whole units)")
	flag.BoolVar(&flags.Verbose, "verbose", false, "Verbose output")
	flag.Parse()
	return flags
}
