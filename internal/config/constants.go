package config

const (
	// DefaultConfigPath is the configuration file read when --config is not given.
	DefaultConfigPath = "pgbalancer_cluster.json"

	// DefaultNodeImage is the database image launched for every node.
	DefaultNodeImage = "postgres:17"

	// DefaultBalancerImage is the balancer image launched for every group.
	DefaultBalancerImage = "pgbalancer:latest"

	// DefaultInitScript is the primary initialization script, relative to the
	// configuration file.
	DefaultInitScript = "postgres/primary/init.sql"

	// DefaultNumInitChildren and DefaultMaxPool are the balancer pool sizes
	// used when a group's config does not set them.
	DefaultNumInitChildren = 32
	DefaultMaxPool         = 4
)
