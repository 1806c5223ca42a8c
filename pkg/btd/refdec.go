package btd

import "github.com/gitrdm/hbfssearch/pkg/wcsp"

// refCluster is a minimal Cluster, enough to exercise the BTD cooperation
// path in tests without a real decomposition algorithm behind it.
type refCluster struct {
	id       ClusterID
	nbVars   int
	delta    wcsp.Cost
	lb, ub   wcsp.Cost
	hbfsLim  int64
	hbfsGlob int64
	nogoods  map[string]wcsp.Cost
}

func (c *refCluster) ID() ClusterID          { return c.id }
func (c *refCluster) NbVars() int            { return c.nbVars }
func (c *refCluster) Delta() wcsp.Cost       { return c.delta }
func (c *refCluster) SetDelta(d wcsp.Cost)   { c.delta = d }
func (c *refCluster) Lb() wcsp.Cost          { return c.lb }
func (c *refCluster) SetLb(v wcsp.Cost)      { c.lb = v }
func (c *refCluster) Ub() wcsp.Cost          { return c.ub }
func (c *refCluster) SetUb(v wcsp.Cost)      { c.ub = v }
func (c *refCluster) LbRec() wcsp.Cost       { return c.lb }
func (c *refCluster) HBFSLimit() int64       { return c.hbfsLim }
func (c *refCluster) HBFSGlobalLimit() int64 { return c.hbfsGlob }

func (c *refCluster) NogoodRec(key string, cost wcsp.Cost) {
	if c.nogoods == nil {
		c.nogoods = make(map[string]wcsp.Cost)
	}
	c.nogoods[key] = cost
}

func (c *refCluster) NogoodGet(key string) (wcsp.Cost, bool) {
	v, ok := c.nogoods[key]
	return v, ok
}

// RefDec is a single-cluster TreeDec stub: enough structure to exercise
// the cooperation interface (a root cluster with no children) without
// implementing real decomposition construction, which spec §1 excludes.
type RefDec struct {
	root    *refCluster
	current ClusterID
}

// NewRefDec returns a single-cluster decomposition whose one cluster owns
// all nbVars variables.
func NewRefDec(nbVars int) *RefDec {
	root := &refCluster{id: 0, nbVars: nbVars, ub: wcsp.MaxCost, hbfsLim: 10000, hbfsGlob: 1 << 30}
	return &RefDec{root: root}
}

func (d *RefDec) Root() ClusterID { return d.root.id }

func (d *RefDec) Cluster(id ClusterID) Cluster {
	if id != d.root.id {
		return nil
	}
	return d.root
}

func (d *RefDec) SetCurrentCluster(id ClusterID) { d.current = id }
func (d *RefDec) CurrentCluster() ClusterID      { return d.current }
