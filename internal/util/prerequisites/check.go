// Package prerequisites checks for the client tools the cluster manager shells out to.
package prerequisites

import (
	"os/exec"
	"strings"
)

// Tool is a client binary looked up on PATH.
type Tool struct {
	Name       string
	Required   bool
	InstallURL string
}

// DefaultTools returns the tools that must be installed. docker manages
// every network and instance.
func DefaultTools() []Tool {
	return []Tool{
		{Name: "docker", Required: true, InstallURL: "https://docs.docker.com/engine/install/"},
	}
}

// OptionalTools returns tools that help when working with a running cluster.
func OptionalTools() []Tool {
	return []Tool{
		{Name: "psql", InstallURL: "https://www.postgresql.org/download/"},
	}
}

// CheckResult is the outcome of looking up one tool.
type CheckResult struct {
	Tool    Tool
	Found   bool
	Version string
}

// CheckResults holds one result per checked tool, in input order.
type CheckResults struct {
	Results []CheckResult
}

// Check looks up every tool on PATH and reads the version of those found.
func Check(tools []Tool) *CheckResults {
	results := &CheckResults{Results: make([]CheckResult, 0, len(tools))}
	for _, tool := range tools {
		result := CheckResult{Tool: tool}
		if _, err := exec.LookPath(tool.Name); err == nil {
			result.Found = true
			result.Version = toolVersion(tool.Name)
		}
		results.Results = append(results.Results, result)
	}
	return results
}

// CheckAll checks the default and the optional tools.
func CheckAll() *CheckResults {
	return Check(append(DefaultTools(), OptionalTools()...))
}

// toolVersion returns the first line of "<name> --version", or "" when the
// tool does not answer.
func toolVersion(name string) string {
	// #nosec G204 - name comes from the fixed tool lists above
	out, err := exec.Command(name, "--version").Output()
	if err != nil {
		return ""
	}
	line, _, _ := strings.Cut(string(out), "\n")
	return strings.TrimSpace(line)
}
