package handlers

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/imamik/pgbcluster/internal/platform/docker"
	"github.com/imamik/pgbcluster/internal/topology"
	"github.com/imamik/pgbcluster/internal/util/netutil"
	"github.com/imamik/pgbcluster/internal/util/prerequisites"
)

// Factory function variables for doctor - can be replaced in tests.
var (
	// checkTools looks up the client tools on PATH.
	checkTools = prerequisites.CheckAll

	// busyPorts returns host ports that cannot be bound.
	busyPorts = netutil.BusyPorts
)

// DoctorStatus represents the diagnostic result.
type DoctorStatus struct {
	ConfigPath  string        `json:"configPath"`
	ClusterName string        `json:"clusterName,omitempty"`
	ConfigError string        `json:"configError,omitempty"`
	Tools       []ToolHealth  `json:"tools"`
	Images      []ImageHealth `json:"images,omitempty"`
	Topology    []string      `json:"topologyProblems,omitempty"`
	BusyPorts   []int         `json:"busyPorts,omitempty"`
}

// ToolHealth represents a client tool check.
type ToolHealth struct {
	Name       string `json:"name"`
	Required   bool   `json:"required"`
	Found      bool   `json:"found"`
	Version    string `json:"version,omitempty"`
	InstallURL string `json:"installUrl,omitempty"`
}

// ImageHealth represents a local image check.
type ImageHealth struct {
	Image   string `json:"image"`
	Present bool   `json:"present"`
	Error   string `json:"error,omitempty"`
}

// Healthy reports whether every required check passed.
func (s *DoctorStatus) Healthy() bool {
	if s.ConfigError != "" || len(s.Topology) > 0 || len(s.BusyPorts) > 0 {
		return false
	}
	for _, t := range s.Tools {
		if t.Required && !t.Found {
			return false
		}
	}
	for _, img := range s.Images {
		if !img.Present {
			return false
		}
	}
	return true
}

// Doctor handles the doctor command.
//
// It checks that docker is installed, that the configuration loads, that
// both images exist locally, that every address is unique and inside the
// subnet, and that the published ports of instances that are not running
// are free on the host.
func Doctor(ctx context.Context, opts Options, jsonOutput bool) error {
	st := &DoctorStatus{ConfigPath: opts.ConfigPath}

	dockerFound := false
	for _, r := range checkTools().Results {
		th := ToolHealth{
			Name:     r.Tool.Name,
			Required: r.Tool.Required,
			Found:    r.Found,
			Version:  r.Version,
		}
		if !r.Found {
			th.InstallURL = r.Tool.InstallURL
		}
		st.Tools = append(st.Tools, th)
		if r.Tool.Name == "docker" && r.Found {
			dockerFound = true
		}
	}

	cluster, file, err := loadCluster(opts.ConfigPath)
	if err != nil {
		st.ConfigError = err.Error()
	} else {
		st.ClusterName = cluster.Name
		st.Topology = cluster.Check()

		if dockerFound {
			rt := newRuntime(docker.Options{ClusterName: cluster.Name, Logger: newLogger(opts.Verbose), Verbose: opts.Verbose})
			for _, image := range []string{file.Images.Node, file.Images.Balancer} {
				st.Images = append(st.Images, checkImage(ctx, rt, image))
			}
			st.BusyPorts = busyPorts("", cluster.UsedPorts(), runningPorts(ctx, rt, cluster))
		}
	}

	if err := checkContext(ctx); err != nil {
		return err
	}

	if jsonOutput {
		if err := printDoctorJSON(st); err != nil {
			return err
		}
	} else {
		printDoctorFormatted(st)
	}

	if !st.Healthy() {
		return fmt.Errorf("doctor found problems")
	}
	return nil
}

func checkImage(ctx context.Context, rt docker.Inspector, image string) ImageHealth {
	ok, err := rt.ImageExists(ctx, image)
	h := ImageHealth{Image: image, Present: ok}
	if err != nil {
		h.Error = err.Error()
	}
	return h
}

// runningPorts returns the published ports of instances that are already
// running, which are expected to be bound.
func runningPorts(ctx context.Context, rt docker.Inspector, c *topology.Cluster) map[int]bool {
	skip := make(map[int]bool)
	for _, g := range c.Groups {
		if rt.InstanceStatus(ctx, g.InstanceName) == "running" {
			skip[g.Port] = true
			skip[g.PCPPort] = true
			skip[g.RESTAPIPort] = true
		}
		for _, n := range g.AllNodes() {
			if rt.InstanceStatus(ctx, n.InstanceName) == "running" {
				skip[n.Port] = true
			}
		}
	}
	return skip
}

// printDoctorJSON outputs status as JSON.
func printDoctorJSON(st *DoctorStatus) error {
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal status: %w", err)
	}
	fmt.Fprintln(stdout, string(data))
	return nil
}

// printDoctorFormatted outputs status as an ASCII report.
func printDoctorFormatted(st *DoctorStatus) {
	fmt.Fprintln(stdout)
	printHeader(st.ClusterName, st.ConfigPath)

	fmt.Fprintln(stdout, "  Tools")
	fmt.Fprintln(stdout, "  "+strings.Repeat("─", 35))
	for _, t := range st.Tools {
		extra := t.Version
		switch {
		case !t.Found && !t.Required:
			extra = "optional, not installed"
		case !t.Found:
			extra = "not installed, see " + t.InstallURL
		}
		printRow(t.Name, t.Found || !t.Required, extra)
	}
	fmt.Fprintln(stdout)

	fmt.Fprintln(stdout, "  Configuration")
	fmt.Fprintln(stdout, "  "+strings.Repeat("─", 35))
	printRow("Config file", st.ConfigError == "", st.ConfigError)
	if st.ConfigError == "" {
		printRow("Addresses and names", len(st.Topology) == 0, fmt.Sprintf("%d problems", len(st.Topology)))
		for _, p := range st.Topology {
			fmt.Fprintf(stdout, "        - %s\n", p)
		}
	}
	fmt.Fprintln(stdout)

	if len(st.Images) > 0 {
		fmt.Fprintln(stdout, "  Images")
		fmt.Fprintln(stdout, "  "+strings.Repeat("─", 35))
		for _, img := range st.Images {
			printRow(img.Image, img.Present, img.Error)
		}
		fmt.Fprintln(stdout)

		fmt.Fprintln(stdout, "  Host Ports")
		fmt.Fprintln(stdout, "  "+strings.Repeat("─", 35))
		extra := ""
		if len(st.BusyPorts) > 0 {
			extra = fmt.Sprintf("in use: %v", st.BusyPorts)
		}
		printRow("Published ports", len(st.BusyPorts) == 0, extra)
		fmt.Fprintln(stdout)
	}
}

func printHeader(clusterName, configPath string) {
	title := "pgbcluster doctor"
	if clusterName != "" {
		title += ": " + clusterName
	}
	title += fmt.Sprintf(" (%s)", configPath)
	fmt.Fprintf(stdout, "  %s\n", title)
	fmt.Fprintln(stdout, "  "+strings.Repeat("═", len(title)))
	fmt.Fprintln(stdout)
}

func printRow(name string, ok bool, extra string) {
	indicator := "[OK]"
	if !ok {
		indicator = "[!!]"
	}

	if extra != "" {
		fmt.Fprintf(stdout, "  %s  %-20s %s\n", indicator, name, extra)
	} else {
		fmt.Fprintf(stdout, "  %s  %s\n", indicator, name)
	}
}
