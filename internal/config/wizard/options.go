package wizard

import (
	"strconv"

	"github.com/charmbracelet/huh"
)

// Defaults offered by the wizard.
const (
	DefaultSubnet      = "172.30.0.0/16"
	DefaultGroupCount  = 1
	DefaultReplicas    = 2
	MaxGroups          = 4
	MaxReplicasOffered = 5
)

// Address and port layout of generated groups. Group i (zero-based) starts
// at host number firstHost+i*hostsPerGroup: the balancer takes that
// address, the primary the next one and replicas follow.
const (
	firstHost     = 10
	hostsPerGroup = 20

	balancerPortBase = 6432
	pcpPortBase      = 9898
	restPortBase     = 8080
	primaryPortBase  = 15432
	primaryPortStep  = 100
)

// GroupCountOptions lists the selectable number of balancer groups.
var GroupCountOptions = countOptions(1, MaxGroups, "group", "groups")

// ReplicaCountOptions lists the selectable number of replicas per group.
var ReplicaCountOptions = countOptions(0, MaxReplicasOffered, "replica", "replicas")

// PoolSizeOptions lists common num_init_children values.
var PoolSizeOptions = []huh.Option[int]{
	huh.NewOption("16 children", 16),
	huh.NewOption("32 children (default)", 32),
	huh.NewOption("64 children", 64),
	huh.NewOption("128 children", 128),
}

// MaxPoolOptions lists common max_pool values.
var MaxPoolOptions = []huh.Option[int]{
	huh.NewOption("1 connection per child", 1),
	huh.NewOption("2 connections per child", 2),
	huh.NewOption("4 connections per child (default)", 4),
	huh.NewOption("8 connections per child", 8),
}

func countOptions(from, to int, singular, plural string) []huh.Option[int] {
	opts := make([]huh.Option[int], 0, to-from+1)
	for n := from; n <= to; n++ {
		label := plural
		if n == 1 {
			label = singular
		}
		opts = append(opts, huh.NewOption(strconv.Itoa(n)+" "+label, n))
	}
	return opts
}
