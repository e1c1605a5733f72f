package topology_test

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gridstore/network-store/internal/models"
	"github.com/gridstore/network-store/internal/topology"
)

func edgeIDs(removals []topology.Removal) []string {
	ids := make([]string, 0, len(removals))
	for _, r := range removals {
		ids = append(ids, r.EdgeID)
	}
	return ids
}

var _ = Describe("Cleanup", func() {
	var view *topology.NodeBreakerView

	BeforeEach(func() {
		view = topology.NewNodeBreakerView()
	})

	Context("fork feeder", func() {
		// Given a busbar at node 0, a disconnector 0-1,
		// a load behind breaker 1-2 and a generator behind breaker 1-3
		BeforeEach(func() {
			view.AddEquipment(0, "BBS")
			view.AddEdge("D", topology.EdgeKindDisconnector, 0, 1)
			view.AddEdge("B-LOAD", topology.EdgeKindBreaker, 1, 2)
			view.AddEdge("B-GEN", topology.EdgeKindBreaker, 1, 3)
			view.AddEquipment(3, "GEN")
		})

		// When the load at node 2 is removed
		// Then only its breaker is dangling
		It("should not cross the fork node", func() {
			removals := topology.Cleanup(view, []int{2})
			Expect(edgeIDs(removals)).To(Equal([]string{"B-LOAD"}))
			Expect(removals[0].Kind).To(Equal(topology.EdgeKindBreaker))
		})
	})

	Context("single feeder", func() {
		// Given a load behind breaker 1-2 and disconnector 0-1 to a busbar at node 0
		BeforeEach(func() {
			view.AddEquipment(0, "BBS")
			view.AddEdge("D", topology.EdgeKindDisconnector, 0, 1)
			view.AddEdge("B", topology.EdgeKindBreaker, 1, 2)
		})

		It("should remove every switch up to the busbar", func() {
			Expect(edgeIDs(topology.Cleanup(view, []int{2}))).To(Equal([]string{"B", "D"}))
		})

		It("should remove nothing when the vacated node still carries equipment", func() {
			view.AddEquipment(2, "LOAD2")
			Expect(topology.Cleanup(view, []int{2})).To(BeEmpty())
		})
	})

	Context("internal connections", func() {
		// Given a load at node 2 linked by an internal connection to node 1,
		// then a breaker 1-0 to a busbar
		It("should walk internal connections and report their kind", func() {
			view.AddEquipment(0, "BBS")
			view.AddEdge("B", topology.EdgeKindBreaker, 0, 1)
			view.AddEdge("IC", topology.EdgeKindInternalConnection, 1, 2)

			removals := topology.Cleanup(view, []int{2})
			Expect(edgeIDs(removals)).To(Equal([]string{"IC", "B"}))
			Expect(removals[0].Kind.IsSwitch()).To(BeFalse())
			Expect(removals[1].Kind.IsSwitch()).To(BeTrue())
		})
	})

	Context("cycles", func() {
		// Given a ring of three switches with the load on one of its nodes
		It("should terminate and keep the ring", func() {
			view.AddEdge("S12", topology.EdgeKindBreaker, 1, 2)
			view.AddEdge("S23", topology.EdgeKindBreaker, 2, 3)
			view.AddEdge("S31", topology.EdgeKindBreaker, 3, 1)

			Expect(topology.Cleanup(view, []int{1})).To(BeEmpty())
		})

		// Given a ring hanging off a feeder: 4 -B- 1, ring 1-2-3-1
		It("should stop at the ring entry", func() {
			view.AddEdge("B", topology.EdgeKindBreaker, 4, 1)
			view.AddEdge("S12", topology.EdgeKindBreaker, 1, 2)
			view.AddEdge("S23", topology.EdgeKindBreaker, 2, 3)
			view.AddEdge("S31", topology.EdgeKindBreaker, 3, 1)

			Expect(edgeIDs(topology.Cleanup(view, []int{4}))).To(Equal([]string{"B"}))
		})

		It("should ignore self loops", func() {
			view.AddEdge("LOOP", topology.EdgeKindBreaker, 5, 5)
			Expect(topology.Cleanup(view, []int{5})).To(BeEmpty())
		})
	})

	Context("determinism", func() {
		// Given two feeders of a line removed at once: 10 -B1- 11 -D1- 0 and 20 -B2- 21 -D2- 0
		BeforeEach(func() {
			view.AddEquipment(0, "BBS")
			view.AddEdge("D1", topology.EdgeKindDisconnector, 0, 11)
			view.AddEdge("B1", topology.EdgeKindBreaker, 11, 10)
			view.AddEdge("D2", topology.EdgeKindDisconnector, 0, 21)
			view.AddEdge("B2", topology.EdgeKindBreaker, 21, 20)
		})

		It("should emit breadth first whatever the order of the vacated nodes", func() {
			expected := []string{"B1", "B2", "D1", "D2"}
			Expect(edgeIDs(topology.Cleanup(view, []int{10, 20}))).To(Equal(expected))
			Expect(edgeIDs(topology.Cleanup(view, []int{20, 10}))).To(Equal(expected))
			Expect(edgeIDs(topology.Cleanup(view, []int{20, 10, 20}))).To(Equal(expected))
		})
	})
})

var _ = Describe("BuildNodeBreakerView", func() {
	at := func(vl string, nodes ...int) []models.ConnectionPoint {
		cps := make([]models.ConnectionPoint, 0, len(nodes))
		for _, n := range nodes {
			cps = append(cps, models.ConnectionPoint{VoltageLevelID: vl, Node: n})
		}
		return cps
	}

	It("should turn switches into edges and place the other equipment on nodes", func() {
		view := topology.BuildNodeBreakerView("VL1", []models.Equipment{
			{ID: "BBS", Type: models.EquipmentTypeBusbarSection, Connection: at("VL1", 0)},
			{ID: "D", Type: models.EquipmentTypeSwitch, Kind: models.SwitchKindDisconnector, Connection: at("VL1", 0, 1)},
			{ID: "B", Type: models.EquipmentTypeSwitch, Connection: at("VL1", 1, 2)},
			{ID: "IC", Type: models.EquipmentTypeInternalConnection, Connection: at("VL1", 2, 3)},
			{ID: "LINE", Type: models.EquipmentTypeLine, Connection: []models.ConnectionPoint{
				{VoltageLevelID: "VL1", Node: 3},
				{VoltageLevelID: "VL2", Node: 7},
			}},
		})

		Expect(view.EquipmentAt(0)).To(Equal([]string{"BBS"}))
		Expect(view.EquipmentAt(3)).To(Equal([]string{"LINE"}))
		Expect(view.EquipmentAt(7)).To(BeEmpty())

		Expect(view.Degree(1)).To(Equal(2))
		Expect(view.Neighbors(1)).To(Equal([]topology.Neighbor{
			{EdgeID: "B", Kind: topology.EdgeKindBreaker, Node: 2},
			{EdgeID: "D", Kind: topology.EdgeKindDisconnector, Node: 0},
		}))
		Expect(view.Neighbors(3)).To(Equal([]topology.Neighbor{
			{EdgeID: "IC", Kind: topology.EdgeKindInternalConnection, Node: 2},
		}))
	})

	It("should ignore switches of other voltage levels", func() {
		view := topology.BuildNodeBreakerView("VL1", []models.Equipment{
			{ID: "S", Type: models.EquipmentTypeSwitch, Connection: at("VL2", 0, 1)},
		})
		Expect(view.Degree(0)).To(BeZero())
	})
})
