// main is the entry point for the timeline-detective CLI.
package main

import (
	"github.com/huangsam/timeline-detective/cmd"
	"github.com/huangsam/timeline-detective/internal/contract"
	"github.com/huangsam/timeline-detective/internal/iostore"
)

func main() {
	cmd.SetStoreManager(iostore.Manager)
	defer iostore.CloseStores()

	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		iostore.CloseStores()
		contract.LogFatal("Command failed", err)
	}
}
