package naming

import (
	"fmt"
	"strconv"
	"strings"
)

// ReplicaInstance returns the instance name for replica id of group.
func ReplicaInstance(group string, id int) string {
	return fmt.Sprintf("%s_replica%d", group, id)
}

// ReplicaID parses an instance name produced by ReplicaInstance for group.
func ReplicaID(group, instance string) (int, bool) {
	rest, ok := strings.CutPrefix(instance, group+"_replica")
	if !ok {
		return 0, false
	}
	id, err := strconv.Atoi(rest)
	if err != nil || id <= 0 || strconv.Itoa(id) != rest {
		return 0, false
	}
	return id, true
}

// ReplicaHost returns the network hostname for replica id of group.
func ReplicaHost(group string, id int) string {
	return fmt.Sprintf("%s-replica%d", group, id)
}

// PrimaryInstance returns the conventional instance name for a group primary.
func PrimaryInstance(group string) string {
	return group + "_primary"
}

// PrimaryHost returns the conventional hostname for a group primary.
func PrimaryHost(group string) string {
	return group + "-primary"
}

// Network returns the default network name for a cluster.
func Network(cluster string) string {
	return cluster + "-net"
}
