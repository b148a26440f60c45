// githours estimates the hours spent on a Git repository from its commit history.
package main

import (
	"github.com/huangsam/githours/cmd"
	"github.com/huangsam/githours/internal/contract"
)

func main() {
	err := cmd.Execute()
	if stopErr := cmd.StopProfiling(); stopErr != nil {
		contract.LogWarn("Failed to stop profiling", stopErr)
	}
	if err != nil {
		contract.LogFatal("Cannot estimate hours", err)
	}
}
