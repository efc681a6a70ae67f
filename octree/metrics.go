package octree

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	nodesCreated = promauto.NewCounter(prometheus.CounterOpts{
		Name: "octree_nodes_created",
		Help: "The number of octree nodes allocated.",
	})

	nodeMerges = promauto.NewCounter(prometheus.CounterOpts{
		Name: "octree_node_merges",
		Help: "The number of nodes re-canonicalized to ON after an add.",
	})

	nodeSplits = promauto.NewCounter(prometheus.CounterOpts{
		Name: "octree_node_splits",
		Help: "The number of ON nodes split by a partial remove.",
	})
)
