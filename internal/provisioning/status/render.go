package status

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/mattn/go-isatty"
	"gopkg.in/yaml.v3"
)

// Format selects how a report is rendered.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatYAML  Format = "yaml"
)

// ParseFormat validates an output format name. An empty name means table.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case "":
		return FormatTable, nil
	case FormatTable, FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown output format %q (want table, json or yaml)", s)
	}
}

// Render writes the report to w. Table output is styled when w is an
// interactive terminal and plain otherwise.
func Render(w io.Writer, report *Report, format Format) error {
	switch format {
	case FormatJSON:
		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		_, err = fmt.Fprintln(w, string(data))
		return err
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(report); err != nil {
			return fmt.Errorf("failed to marshal status: %w", err)
		}
		return enc.Close()
	case FormatTable, "":
		if isInteractive(w) {
			return renderStyled(w, report)
		}
		return renderPlain(w, report)
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
}

func isInteractive(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

func renderPlain(w io.Writer, report *Report) error {
	fmt.Fprintf(w, "Cluster: %s (network %s, %s)\n", report.Cluster, report.Network, report.Subnet)

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "GROUP\tROLE\tNAME\tPORTS\tIP\tSTATUS\tHEALTH")
	for _, g := range report.Groups {
		for _, inst := range append([]Instance{g.Balancer}, g.Nodes...) {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
				g.Name, roleLabel(inst), inst.Name, ports(inst), inst.IPAddress, inst.Status, inst.Health)
		}
	}
	return tw.Flush()
}

func renderStyled(w io.Writer, report *Report) error {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(titleStyle.Render("Cluster Status: " + report.Cluster))
	b.WriteString(dimStyle.Render(fmt.Sprintf("  %s %s", report.Network, report.Subnet)))
	b.WriteString("\n")

	for _, g := range report.Groups {
		b.WriteString(sectionStyle.Render("Balancer " + g.Name))
		b.WriteString("\n")
		b.WriteString("  " + strings.Repeat("─", 60) + "\n")
		for _, inst := range append([]Instance{g.Balancer}, g.Nodes...) {
			indicator, style := mark(inst)
			line := fmt.Sprintf("  %s %-10s %-28s %s",
				style.Render(indicator), roleLabel(inst), inst.Name,
				dimStyle.Render(fmt.Sprintf("%s  %s", ports(inst), inst.IPAddress)))
			b.WriteString(line)
			b.WriteString("  " + style.Render(inst.Status+"/"+inst.Health) + "\n")
		}
	}
	b.WriteString("\n")

	_, err := io.WriteString(w, b.String())
	return err
}

func roleLabel(inst Instance) string {
	if inst.Role == "replica" {
		return fmt.Sprintf("replica %d", inst.NodeID)
	}
	return inst.Role
}

func ports(inst Instance) string {
	if inst.Role == RoleBalancer {
		return fmt.Sprintf("%d/%d/%d", inst.Port, inst.PCPPort, inst.RESTAPIPort)
	}
	if inst.Host != "" {
		return fmt.Sprintf("%s:%d", inst.Host, inst.Port)
	}
	return fmt.Sprintf("%d", inst.Port)
}
