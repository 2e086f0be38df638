package config

// File is the on-disk cluster description. Integer fields are pointers so a
// missing key can be told apart from an explicit zero.
type File struct {
	ClusterName string         `json:"cluster_name"`
	Network     NetworkSpec    `json:"network"`
	Balancers   []BalancerSpec `json:"balancers"`

	// Images overrides the database and balancer images.
	Images ImageSpec `json:"images,omitempty"`

	// InitScript is mounted into every primary when the file exists.
	// Relative paths are resolved against the directory of the config file.
	InitScript string `json:"init_script,omitempty"`
}

// NetworkSpec describes the private virtual network shared by all instances.
type NetworkSpec struct {
	Name   string `json:"name"`
	Subnet string `json:"subnet"`
}

// BalancerSpec describes one balancer-fronted group.
type BalancerSpec struct {
	Name          string         `json:"name"`
	Port          *int           `json:"port"`
	PCPPort       *int           `json:"pcp_port"`
	RESTAPIPort   *int           `json:"rest_api_port"`
	ContainerName string         `json:"container_name"`
	IPAddress     string         `json:"ip_address"`
	Primary       *NodeSpec      `json:"primary"`
	Replicas      []NodeSpec     `json:"replicas,omitempty"`
	Config        map[string]any `json:"config,omitempty"`

	// ReplicaPortBase overrides the primary port as the base for replica
	// port allocation in this group.
	ReplicaPortBase *int `json:"replica_port_base,omitempty"`
}

// NodeSpec describes a database node. NodeID is only read for replicas;
// the primary is always node 0.
type NodeSpec struct {
	NodeID        *int   `json:"node_id,omitempty"`
	Host          string `json:"host"`
	Port          *int   `json:"port"`
	ContainerName string `json:"container_name"`
	IPAddress     string `json:"ip_address"`
}

// ImageSpec selects the container images to launch.
type ImageSpec struct {
	Node     string `json:"node,omitempty"`
	Balancer string `json:"balancer,omitempty"`
}
