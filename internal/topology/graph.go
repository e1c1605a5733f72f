package topology

import (
	"sort"

	"github.com/gridstore/network-store/internal/models"
)

type EdgeKind string

const (
	EdgeKindBreaker            EdgeKind = models.SwitchKindBreaker
	EdgeKindDisconnector       EdgeKind = models.SwitchKindDisconnector
	EdgeKindLoadBreakSwitch    EdgeKind = models.SwitchKindLoadBreakSwitch
	EdgeKindInternalConnection EdgeKind = "INTERNAL_CONNECTION"
)

// IsSwitch tells whether the edge is a switch, as opposed to an internal connection.
func (k EdgeKind) IsSwitch() bool {
	return k != EdgeKindInternalConnection
}

// Neighbor is one edge incident to a node, seen from that node.
type Neighbor struct {
	EdgeID string
	Kind   EdgeKind
	Node   int
}

// Graph is the node/breaker view of one voltage level.
type Graph interface {
	// Neighbors returns the incident edges of node, ordered by edge id.
	Neighbors(node int) []Neighbor
	// Degree returns the number of incident edges of node.
	Degree(node int) int
	// EquipmentAt returns the ids of the non-switch equipment connected to node.
	EquipmentAt(node int) []string
}

// NodeBreakerView is an in-memory Graph.
type NodeBreakerView struct {
	adjacency map[int][]Neighbor
	equipment map[int][]string
}

func NewNodeBreakerView() *NodeBreakerView {
	return &NodeBreakerView{
		adjacency: make(map[int][]Neighbor),
		equipment: make(map[int][]string),
	}
}

// BuildNodeBreakerView builds the view of voltageLevelID from equipment rows. Switches and
// internal connections with both ends in the voltage level become edges, any other
// equipment is placed on each of its nodes in the voltage level.
func BuildNodeBreakerView(voltageLevelID string, equipment []models.Equipment) *NodeBreakerView {
	v := NewNodeBreakerView()
	for _, eq := range equipment {
		if eq.Type.IsEdge() {
			if len(eq.Connection) != 2 ||
				eq.Connection[0].VoltageLevelID != voltageLevelID ||
				eq.Connection[1].VoltageLevelID != voltageLevelID {
				continue
			}
			kind := EdgeKindInternalConnection
			if eq.Type == models.EquipmentTypeSwitch {
				kind = EdgeKind(eq.Kind)
				if kind == "" {
					kind = EdgeKindBreaker
				}
			}
			v.AddEdge(eq.ID, kind, eq.Connection[0].Node, eq.Connection[1].Node)
			continue
		}
		for _, cp := range eq.Connection {
			if cp.VoltageLevelID == voltageLevelID {
				v.AddEquipment(cp.Node, eq.ID)
			}
		}
	}
	return v
}

func (v *NodeBreakerView) AddEdge(id string, kind EdgeKind, node1, node2 int) {
	v.adjacency[node1] = insertSorted(v.adjacency[node1], Neighbor{EdgeID: id, Kind: kind, Node: node2})
	if node1 != node2 {
		v.adjacency[node2] = insertSorted(v.adjacency[node2], Neighbor{EdgeID: id, Kind: kind, Node: node1})
	}
}

func (v *NodeBreakerView) AddEquipment(node int, id string) {
	v.equipment[node] = append(v.equipment[node], id)
}

func (v *NodeBreakerView) Neighbors(node int) []Neighbor {
	return v.adjacency[node]
}

func (v *NodeBreakerView) Degree(node int) int {
	return len(v.adjacency[node])
}

func (v *NodeBreakerView) EquipmentAt(node int) []string {
	return v.equipment[node]
}

func insertSorted(list []Neighbor, n Neighbor) []Neighbor {
	i := sort.Search(len(list), func(i int) bool { return list[i].EdgeID >= n.EdgeID })
	list = append(list, Neighbor{})
	copy(list[i+1:], list[i:])
	list[i] = n
	return list
}
