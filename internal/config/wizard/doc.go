// Package wizard provides an interactive configuration wizard for pgbcluster.
//
// This package implements a TUI-based wizard that guides users through
// creating a cluster configuration file. It uses charmbracelet/huh for
// form-based input collection.
//
// The main entry point is RunWizard, which orchestrates question groups
// and returns a WizardResult. Use BuildConfig to convert results to a
// config.File, and WriteConfig to write it as JSON or YAML.
package wizard
