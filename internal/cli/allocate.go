package cli

import (
	"errors"
	"fmt"

	"github.com/brownsdata/ingredient-allocator/internal/application/service"
	"github.com/brownsdata/ingredient-allocator/internal/domain/usage"
	"github.com/brownsdata/ingredient-allocator/internal/infrastructure/config"
	"github.com/brownsdata/ingredient-allocator/internal/infrastructure/logging"
	"github.com/brownsdata/ingredient-allocator/internal/infrastructure/storage"
)

// RunAllocate computes one allocation plan and prints it as a table.
func RunAllocate(cfg *config.Config, flags *AllocateFlags) error {
	loggingCfg := cfg.Observability.Logging
	if flags.Verbose {
		loggingCfg.Level = "debug"
	}
	logger := logging.NewLoggerWithSystem(loggingCfg, "allocate")

	if flags.Item == "" {
		return fmt.Errorf("-item is required")
	}

	store, err := storage.NewStorage(cfg.Storage.DatabasePath)
	if err != nil {
		return err
	}
	defer func() { _ = store.Close() }()

	svc := service.NewAllocationService(store, cfg.Allocation, logger)

	req := service.PlanRequest{
		Identifier:        flags.Item,
		AvailableQuantity: flags.Quantity,
		Department:        flags.Department,
		Levels:            parseLevelsFlag(flags.Levels),
		Precision:         int32(flags.Precision),
	}
	if flags.MinShare >= 0 {
		minShare := flags.MinShare
		req.MinSharePct = &minShare
	}

	result, err := svc.Plan(req)
	if errors.Is(err, usage.ErrNoData) {
		fmt.Printf("Item %q not found in historical data.\n", flags.Item)
		return nil
	}
	if err != nil {
		return err
	}

	PrintAllocationTable(flags.Item, result)
	return nil
}

func parseLevelsFlag(val string) []usage.GroupLevel {
	switch val {
	case "", "department":
		return []usage.GroupLevel{usage.LevelDepartment}
	case "section":
		return []usage.GroupLevel{usage.LevelSection}
	case "department,section":
		return []usage.GroupLevel{usage.LevelDepartment, usage.LevelSection}
	default:
		// Let the engine reject anything else with a proper error.
		return []usage.GroupLevel{usage.GroupLevel(val)}
	}
}
