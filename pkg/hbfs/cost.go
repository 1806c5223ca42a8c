package hbfs

import "github.com/gitrdm/hbfssearch/pkg/wcsp"

// Cost re-exports wcsp.Cost so engine code reads naturally as hbfs.Cost
// without pkg/wcsp importing pkg/hbfs back (an import cycle the interface
// split in pkg/wcsp.Store was designed to avoid).
type Cost = wcsp.Cost

const (
	MinCost = wcsp.MinCost
	MaxCost = wcsp.MaxCost
)
