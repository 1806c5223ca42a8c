// Package btd declares the tree-decomposition collaborator: the cluster
// tree and per-cluster search contexts the core cooperates with under BTD
// mode, without constructing the decomposition itself (spec §1 Non-goal).
package btd

import "github.com/gitrdm/hbfssearch/pkg/wcsp"

// ClusterID identifies one cluster in the decomposition tree.
type ClusterID int

// TreeDec is the tree-decomposition driver interface (spec §6): a cluster
// tree plus, per cluster, the bounds, delta, HBFS limits and nogood cache
// that Cluster exposes. A Cluster holds no choice-point log or open list of
// its own; the engine keeps one of each for the whole search. The core
// only ever reads getRoot/getCluster/setCurrentCluster and the per-cluster
// accessors; it never builds the tree.
type TreeDec interface {
	Root() ClusterID
	Cluster(id ClusterID) Cluster
	SetCurrentCluster(id ClusterID)
	CurrentCluster() ClusterID
}

// Cluster is one cluster's search-relevant context. HBFSLimit and
// HBFSGlobalLimit are the cluster-local equivalents of SearchConfig's
// engine-wide fields, per SPEC_FULL §9's BTD delta bookkeeping.
type Cluster interface {
	ID() ClusterID
	NbVars() int

	// Delta is the additive offset applied to this cluster's open-list
	// keys so the frontier stores absolute reachable cost while the
	// cluster's own search treats Lb/Ub as cluster-relative (spec §4.3
	// BTD cooperation paragraph).
	Delta() wcsp.Cost
	SetDelta(d wcsp.Cost)

	Lb() wcsp.Cost
	SetLb(c wcsp.Cost)
	Ub() wcsp.Cost
	SetUb(c wcsp.Cost)

	// LbRec is the recursive lower bound: this cluster's own lb plus the
	// sum of its children's contributions.
	LbRec() wcsp.Cost

	HBFSLimit() int64
	HBFSGlobalLimit() int64

	// NogoodRec/NogoodGet implement the cluster nogood cache: once a
	// cluster proves a sub-assignment infeasible or bounds its cost, that
	// fact is cached keyed by the separator assignment so sibling search
	// paths reuse it instead of recomputing.
	NogoodRec(key string, cost wcsp.Cost)
	NogoodGet(key string) (wcsp.Cost, bool)
}
