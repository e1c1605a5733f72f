package services_test

import (
	"context"
	"database/sql"
	"encoding/json"

	"github.com/google/uuid"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/gridstore/network-store/internal/models"
	"github.com/gridstore/network-store/internal/services"
	"github.com/gridstore/network-store/internal/store"
	"github.com/gridstore/network-store/internal/store/migrations"
	srvErrors "github.com/gridstore/network-store/pkg/errors"
)

func at(vl string, nodes ...int) []models.ConnectionPoint {
	cps := make([]models.ConnectionPoint, 0, len(nodes))
	for _, n := range nodes {
		cps = append(cps, models.ConnectionPoint{VoltageLevelID: vl, Node: n})
	}
	return cps
}

func newSwitch(id, kind string, node1, node2 int) models.Equipment {
	return models.Equipment{ID: id, Type: models.EquipmentTypeSwitch, Kind: kind, Connection: at("VL1", node1, node2)}
}

// forkFeeder returns a busbar at node 0, a disconnector 0-1, then a load and a generator
// each behind its own breaker on the shared node 1.
func forkFeeder() []models.Equipment {
	return []models.Equipment{
		{ID: "BBS", Type: models.EquipmentTypeBusbarSection, Connection: at("VL1", 0)},
		newSwitch("D", models.SwitchKindDisconnector, 0, 1),
		newSwitch("B-LOAD", models.SwitchKindBreaker, 1, 2),
		newSwitch("B-GEN", models.SwitchKindBreaker, 1, 3),
		{ID: "LOAD", Type: models.EquipmentTypeLoad, Connection: at("VL1", 2), Attributes: json.RawMessage(`{"p0":10}`)},
		{ID: "GEN", Type: models.EquipmentTypeGenerator, Connection: at("VL1", 3), Attributes: json.RawMessage(`{"targetP":50}`)},
	}
}

var _ = Describe("NetworkService", func() {
	var (
		ctx       context.Context
		db        *sql.DB
		st        *store.Store
		svc       *services.NetworkService
		networkID uuid.UUID
	)

	put := func(variantNum int, equipment ...models.Equipment) {
		for _, eq := range equipment {
			Expect(svc.PutAttributes(ctx, networkID, variantNum, eq)).To(Succeed())
		}
	}

	attributes := func(variantNum int, id string) string {
		eq, err := svc.GetAttributes(ctx, networkID, variantNum, id, "")
		Expect(err).NotTo(HaveOccurred())
		return string(eq.Attributes)
	}

	notFound := func(variantNum int, id string) {
		_, err := svc.GetAttributes(ctx, networkID, variantNum, id, "")
		Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue(), "equipment %s should not be visible in variant %d", id, variantNum)
	}

	BeforeEach(func() {
		ctx = context.Background()
		networkID = uuid.New()

		var err error
		db, err = store.NewDB(":memory:")
		Expect(err).NotTo(HaveOccurred())
		Expect(migrations.Run(ctx, db)).To(Succeed())

		st = store.NewStore(db, store.WithMaxInListSize(2))
		svc = services.NewNetworkService(st)

		_, err = svc.CreateNetwork(ctx, networkID)
		Expect(err).NotTo(HaveOccurred())
	})

	AfterEach(func() {
		if db != nil {
			db.Close()
		}
	})

	Context("networks and variants", func() {
		It("should register the initial variant", func() {
			variants, err := svc.ListVariants(ctx, networkID)
			Expect(err).NotTo(HaveOccurred())
			Expect(variants).To(HaveLen(1))
			Expect(variants[0].Num).To(Equal(models.InitialVariantNum))
			Expect(variants[0].ID).To(Equal(models.InitialVariantID))
			Expect(variants[0].SourceVariantNum).To(BeNil())
		})

		It("should refuse to create a network twice", func() {
			_, err := svc.CreateNetwork(ctx, networkID)
			Expect(srvErrors.IsResourceExistsError(err)).To(BeTrue())
		})

		It("should return ResourceNotFoundError for an unknown network", func() {
			_, err := svc.ListVariants(ctx, uuid.New())
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())

			_, err = svc.GetAttributes(ctx, uuid.New(), 0, "LOAD", "")
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should validate clone arguments", func() {
			_, err := svc.CloneVariant(ctx, networkID, 0, 0, "v0")
			Expect(srvErrors.IsInvalidArgumentError(err)).To(BeTrue())

			_, err = svc.CloneVariant(ctx, networkID, 0, 1, "")
			Expect(srvErrors.IsInvalidArgumentError(err)).To(BeTrue())

			_, err = svc.CloneVariant(ctx, networkID, 7, 1, "v1")
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should refuse a taken variant number or id", func() {
			_, err := svc.CloneVariant(ctx, networkID, 0, 1, "v1")
			Expect(err).NotTo(HaveOccurred())

			_, err = svc.CloneVariant(ctx, networkID, 0, 1, "other")
			Expect(srvErrors.IsResourceExistsError(err)).To(BeTrue())

			_, err = svc.CloneVariant(ctx, networkID, 0, 2, "v1")
			Expect(srvErrors.IsResourceExistsError(err)).To(BeTrue())
		})

		It("should delete the network with all its variants", func() {
			put(0, forkFeeder()...)
			_, err := svc.CloneVariant(ctx, networkID, 0, 1, "v1")
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.DeleteNetwork(ctx, networkID)).To(Succeed())

			_, err = svc.ListVariants(ctx, networkID)
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
			Expect(srvErrors.IsResourceNotFoundError(svc.DeleteNetwork(ctx, networkID))).To(BeTrue())
		})
	})

	Context("copy-on-write", func() {
		BeforeEach(func() {
			put(0, forkFeeder()...)
			_, err := svc.CloneVariant(ctx, networkID, 0, 1, "v1")
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.CloneVariant(ctx, networkID, 0, 2, "v2")
			Expect(err).NotTo(HaveOccurred())
		})

		// Given a variant cloned from the initial variant
		// When an equipment without a row in the variant is read
		// Then the initial variant row is returned
		It("should fall back to the initial variant", func() {
			for _, eq := range forkFeeder() {
				base, err := svc.GetAttributes(ctx, networkID, 0, eq.ID, "")
				Expect(err).NotTo(HaveOccurred())
				got, err := svc.GetAttributes(ctx, networkID, 1, eq.ID, "")
				Expect(err).NotTo(HaveOccurred())
				Expect(got).To(Equal(base))
			}
		})

		It("should filter on equipment type", func() {
			_, err := svc.GetAttributes(ctx, networkID, 1, "LOAD", models.EquipmentTypeLoad)
			Expect(err).NotTo(HaveOccurred())
			_, err = svc.GetAttributes(ctx, networkID, 1, "LOAD", models.EquipmentTypeGenerator)
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should write the variant only", func() {
			load := forkFeeder()[4]
			load.Attributes = json.RawMessage(`{"p0":99}`)
			put(1, load)

			Expect(attributes(1, "LOAD")).To(MatchJSON(`{"p0":99}`))
			Expect(attributes(0, "LOAD")).To(MatchJSON(`{"p0":10}`))
			Expect(attributes(2, "LOAD")).To(MatchJSON(`{"p0":10}`))
		})

		It("should reject invalid equipment", func() {
			err := svc.PutAttributes(ctx, networkID, 1, models.Equipment{ID: "X", Type: models.EquipmentTypeLoad, Attributes: json.RawMessage(`{`)})
			Expect(srvErrors.IsInvalidArgumentError(err)).To(BeTrue())

			err = svc.PutAttributes(ctx, networkID, 1, models.Equipment{ID: "S", Type: models.EquipmentTypeSwitch, Connection: at("VL1", 1)})
			Expect(srvErrors.IsInvalidArgumentError(err)).To(BeTrue())

			err = svc.PutAttributes(ctx, networkID, 9, models.Equipment{ID: "X", Type: models.EquipmentTypeLoad})
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		// Given an equipment carried by the initial variant
		// When it is removed in variant 1
		// Then variant 1 no longer sees it, variant 0 and 2 still do
		It("should not resurrect equipment removed in a variant", func() {
			_, err := svc.RemoveEquipment(ctx, networkID, 1, "GEN")
			Expect(err).NotTo(HaveOccurred())

			notFound(1, "GEN")
			Expect(attributes(0, "GEN")).To(MatchJSON(`{"targetP":50}`))
			Expect(attributes(2, "GEN")).To(MatchJSON(`{"targetP":50}`))

			gen := forkFeeder()[5]
			gen.Attributes = json.RawMessage(`{"targetP":5}`)
			put(1, gen)
			Expect(attributes(1, "GEN")).To(MatchJSON(`{"targetP":5}`))
		})

		It("should copy the divergent rows of a non-initial source", func() {
			load := forkFeeder()[4]
			load.Attributes = json.RawMessage(`{"p0":99}`)
			put(1, load)
			_, err := svc.RemoveEquipment(ctx, networkID, 1, "GEN")
			Expect(err).NotTo(HaveOccurred())

			v3, err := svc.CloneVariant(ctx, networkID, 1, 3, "v3")
			Expect(err).NotTo(HaveOccurred())
			Expect(*v3.SourceVariantNum).To(Equal(1))

			Expect(attributes(3, "LOAD")).To(MatchJSON(`{"p0":99}`))
			notFound(3, "GEN")
			notFound(3, "B-GEN")
			Expect(attributes(3, "BBS")).To(Equal(attributes(0, "BBS")))

			// the clone is independent of its source afterwards
			load.Attributes = json.RawMessage(`{"p0":1}`)
			put(1, load)
			Expect(attributes(3, "LOAD")).To(MatchJSON(`{"p0":99}`))
		})

		It("should delete variants other than the initial one", func() {
			load := forkFeeder()[4]
			load.Attributes = json.RawMessage(`{"p0":99}`)
			put(1, load)
			put(2, load)

			err := svc.DeleteVariant(ctx, networkID, 0)
			Expect(srvErrors.IsInvalidOperationError(err)).To(BeTrue())

			err = svc.DeleteVariant(ctx, networkID, 8)
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())

			Expect(svc.DeleteVariant(ctx, networkID, 1)).To(Succeed())

			_, err = svc.GetAttributes(ctx, networkID, 1, "LOAD", "")
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
			Expect(attributes(0, "LOAD")).To(MatchJSON(`{"p0":10}`))
			Expect(attributes(2, "LOAD")).To(MatchJSON(`{"p0":99}`))

			variants, err := svc.ListVariants(ctx, networkID)
			Expect(err).NotTo(HaveOccurred())
			Expect(variants).To(HaveLen(2))
		})
	})

	Context("removal cascade", func() {
		BeforeEach(func() {
			put(0, forkFeeder()...)
		})

		// Given the fork feeder
		// When the load is removed
		// Then the load and its breaker go, the rest of the feeder stays
		It("should stop at the fork node", func() {
			events, err := svc.RemoveEquipment(ctx, networkID, 0, "LOAD")
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(Equal([]models.RemovalEvent{
				{EquipmentID: "LOAD", EquipmentType: models.EquipmentTypeLoad, Position: 0},
				{EquipmentID: "B-LOAD", EquipmentType: models.EquipmentTypeSwitch, Position: 1},
			}))

			notFound(0, "LOAD")
			notFound(0, "B-LOAD")
			for _, id := range []string{"GEN", "B-GEN", "D", "BBS"} {
				_, err := svc.GetAttributes(ctx, networkID, 0, id, "")
				Expect(err).NotTo(HaveOccurred())
			}
		})

		It("should remove the whole feeder once the fork is gone", func() {
			_, err := svc.RemoveEquipment(ctx, networkID, 0, "LOAD")
			Expect(err).NotTo(HaveOccurred())

			events, err := svc.RemoveEquipment(ctx, networkID, 0, "GEN")
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(Equal([]models.RemovalEvent{
				{EquipmentID: "GEN", EquipmentType: models.EquipmentTypeGenerator, Position: 0},
				{EquipmentID: "B-GEN", EquipmentType: models.EquipmentTypeSwitch, Position: 1},
				{EquipmentID: "D", EquipmentType: models.EquipmentTypeSwitch, Position: 2},
			}))
			_, err = svc.GetAttributes(ctx, networkID, 0, "BBS", "")
			Expect(err).NotTo(HaveOccurred())
		})

		It("should cascade in a variant without touching the initial variant", func() {
			_, err := svc.CloneVariant(ctx, networkID, 0, 1, "v1")
			Expect(err).NotTo(HaveOccurred())

			events, err := svc.RemoveEquipment(ctx, networkID, 1, "LOAD")
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(HaveLen(2))

			notFound(1, "LOAD")
			notFound(1, "B-LOAD")
			_, err = svc.GetAttributes(ctx, networkID, 0, "B-LOAD", "")
			Expect(err).NotTo(HaveOccurred())
		})

		It("should not report internal connections", func() {
			put(0,
				models.Equipment{ID: "D2", Type: models.EquipmentTypeSwitch, Kind: models.SwitchKindDisconnector, Connection: at("VL1", 0, 10)},
				models.Equipment{ID: "IC", Type: models.EquipmentTypeInternalConnection, Connection: at("VL1", 10, 11)},
				models.Equipment{ID: "SHUNT", Type: models.EquipmentTypeShuntCompensator, Connection: at("VL1", 11)},
			)

			events, err := svc.RemoveEquipment(ctx, networkID, 0, "SHUNT")
			Expect(err).NotTo(HaveOccurred())
			Expect(events).To(Equal([]models.RemovalEvent{
				{EquipmentID: "SHUNT", EquipmentType: models.EquipmentTypeShuntCompensator, Position: 0},
				{EquipmentID: "D2", EquipmentType: models.EquipmentTypeSwitch, Position: 1},
			}))
			notFound(0, "IC")
		})

		It("should return ResourceNotFoundError for an unknown equipment", func() {
			_, err := svc.RemoveEquipment(ctx, networkID, 0, "NOPE")
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})
	})

	Context("limits", func() {
		temporary := []models.LegacyTemporaryLimit{
			{EquipmentID: "LINE1", EquipmentType: models.EquipmentTypeLine, Side: 1, Name: "IT5", AcceptableDuration: 300, Value: 1300},
		}
		permanent := []models.LegacyPermanentLimit{
			{EquipmentID: "LINE1", EquipmentType: models.EquipmentTypeLine, Side: 1, Value: 1000},
		}

		It("should serve flat rows as a DEFAULT group", func() {
			Expect(st.Limits().InsertLegacyLimits(ctx, networkID, 0, temporary, permanent)).To(Succeed())

			groups, err := svc.GetLimits(ctx, networkID, 0, "LINE1")
			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(HaveLen(1))
			Expect(groups[0].GroupID).To(Equal(models.DefaultLimitsGroupID))
			Expect(*groups[0].PermanentLimit).To(Equal(1000.0))
			Expect(groups[0].TemporaryLimits).To(Equal([]models.TemporaryLimit{{Name: "IT5", AcceptableDuration: 300, Value: 1300}}))
		})

		It("should return an empty list for an equipment without limits", func() {
			groups, err := svc.GetLimits(ctx, networkID, 0, "LINE1")
			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(BeEmpty())
		})

		It("should replace flat rows on write and fall back to the initial variant", func() {
			Expect(st.Limits().InsertLegacyLimits(ctx, networkID, 0, temporary, permanent)).To(Succeed())
			_, err := svc.CloneVariant(ctx, networkID, 0, 1, "v1")
			Expect(err).NotTo(HaveOccurred())

			base, err := svc.GetLimits(ctx, networkID, 1, "LINE1")
			Expect(err).NotTo(HaveOccurred())
			Expect(base).To(HaveLen(1))

			value := 800.0
			Expect(svc.PutLimits(ctx, networkID, 0, "LINE1", []models.OperationalLimitsGroup{
				{EquipmentType: models.EquipmentTypeLine, Side: 2, GroupID: "WINTER", PermanentLimit: &value},
			})).To(Succeed())

			legacy, err := st.Limits().LegacyTemporaryLimits(ctx, networkID, 0, "LINE1")
			Expect(err).NotTo(HaveOccurred())
			Expect(legacy).To(BeEmpty())

			groups, err := svc.GetLimits(ctx, networkID, 1, "LINE1")
			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(HaveLen(1))
			Expect(groups[0].GroupID).To(Equal("WINTER"))
			Expect(groups[0].EquipmentID).To(Equal("LINE1"))
		})

		// Given limits in the initial variant and a variant cloned from it
		// When the variant writes an empty set of limits
		// Then the variant reads no limits while the initial variant keeps its own
		It("should keep an empty write of a derived variant over the initial limits", func() {
			value := 1000.0
			Expect(svc.PutLimits(ctx, networkID, 0, "LINE1", []models.OperationalLimitsGroup{
				{EquipmentType: models.EquipmentTypeLine, Side: 1, PermanentLimit: &value},
			})).To(Succeed())
			_, err := svc.CloneVariant(ctx, networkID, 0, 1, "v1")
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.PutLimits(ctx, networkID, 1, "LINE1", []models.OperationalLimitsGroup{})).To(Succeed())

			groups, err := svc.GetLimits(ctx, networkID, 1, "LINE1")
			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(BeEmpty())

			base, err := svc.GetLimits(ctx, networkID, 0, "LINE1")
			Expect(err).NotTo(HaveOccurred())
			Expect(base).To(HaveLen(1))

			// A clone of the variant inherits the empty set
			_, err = svc.CloneVariant(ctx, networkID, 1, 2, "v2")
			Expect(err).NotTo(HaveOccurred())
			groups, err = svc.GetLimits(ctx, networkID, 2, "LINE1")
			Expect(err).NotTo(HaveOccurred())
			Expect(groups).To(BeEmpty())
		})

		It("should refuse to serve disagreeing flat permanent rows", func() {
			Expect(st.Limits().InsertLegacyLimits(ctx, networkID, 0, nil, []models.LegacyPermanentLimit{
				{EquipmentID: "LINE1", EquipmentType: models.EquipmentTypeLine, Side: 1, Value: 200},
				{EquipmentID: "LINE1", EquipmentType: models.EquipmentTypeLine, Side: 1, Value: 100},
			})).To(Succeed())

			_, err := svc.GetLimits(ctx, networkID, 0, "LINE1")
			Expect(srvErrors.IsInvalidOperationError(err)).To(BeTrue())
		})

		It("should reject duplicated groups", func() {
			err := svc.PutLimits(ctx, networkID, 0, "LINE1", []models.OperationalLimitsGroup{{Side: 1}, {Side: 1, GroupID: models.DefaultLimitsGroupID}})
			Expect(srvErrors.IsInvalidArgumentError(err)).To(BeTrue())
		})
	})

	Context("tap changer steps", func() {
		It("should serve a legacy bundle with positions", func() {
			Expect(st.TapChanger().InsertLegacy(ctx, networkID, 0, []models.LegacyTapChanger{{
				EquipmentID:    "T1",
				EquipmentType:  models.EquipmentTypeTwoWindingsTransformer,
				TapChangerType: models.TapChangerTypePhase,
				Steps:          []models.LegacyTapChangerStep{{Rho: 1, Alpha: -2}, {Rho: 1, Alpha: 2}},
			}})).To(Succeed())

			tc, err := svc.GetTapChangerSteps(ctx, networkID, 0, "T1", models.TapChangerTypePhase)
			Expect(err).NotTo(HaveOccurred())
			Expect(tc.EquipmentType).To(Equal(models.EquipmentTypeTwoWindingsTransformer))
			Expect(tc.Steps).To(Equal([]models.TapChangerStep{
				{Position: 0, Rho: 1, Alpha: -2},
				{Position: 1, Rho: 1, Alpha: 2},
			}))

			_, err = svc.GetTapChangerSteps(ctx, networkID, 0, "T1", models.TapChangerTypeRatio)
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())
		})

		It("should write steps ordered by position", func() {
			put(0, models.Equipment{ID: "T1", Type: models.EquipmentTypeTwoWindingsTransformer, Connection: at("VL1", 4)})
			Expect(svc.PutTapChangerSteps(ctx, networkID, 0, models.TapChangerSteps{
				EquipmentID:    "T1",
				TapChangerType: models.TapChangerTypeRatio,
				Steps:          []models.TapChangerStep{{Position: 1, Rho: 1.1}, {Position: 0, Rho: 0.9}},
			})).To(Succeed())

			tc, err := svc.GetTapChangerSteps(ctx, networkID, 0, "T1", models.TapChangerTypeRatio)
			Expect(err).NotTo(HaveOccurred())
			Expect(tc.EquipmentType).To(Equal(models.EquipmentTypeTwoWindingsTransformer))
			Expect(tc.Steps).To(Equal([]models.TapChangerStep{{Position: 0, Rho: 0.9}, {Position: 1, Rho: 1.1}}))
		})

		// Given tap changer steps in the initial variant and a variant cloned from it
		// When the variant writes an empty step list
		// Then the tap changer is absent from the variant only
		It("should keep an empty step list of a derived variant over the initial steps", func() {
			put(0, models.Equipment{ID: "T1", Type: models.EquipmentTypeTwoWindingsTransformer, Connection: at("VL1", 4)})
			Expect(svc.PutTapChangerSteps(ctx, networkID, 0, models.TapChangerSteps{
				EquipmentID:    "T1",
				TapChangerType: models.TapChangerTypeRatio,
				Steps:          []models.TapChangerStep{{Position: 0, Rho: 0.9}},
			})).To(Succeed())
			_, err := svc.CloneVariant(ctx, networkID, 0, 1, "v1")
			Expect(err).NotTo(HaveOccurred())

			Expect(svc.PutTapChangerSteps(ctx, networkID, 1, models.TapChangerSteps{
				EquipmentID:    "T1",
				TapChangerType: models.TapChangerTypeRatio,
			})).To(Succeed())

			_, err = svc.GetTapChangerSteps(ctx, networkID, 1, "T1", models.TapChangerTypeRatio)
			Expect(srvErrors.IsResourceNotFoundError(err)).To(BeTrue())

			tc, err := svc.GetTapChangerSteps(ctx, networkID, 0, "T1", models.TapChangerTypeRatio)
			Expect(err).NotTo(HaveOccurred())
			Expect(tc.Steps).To(HaveLen(1))

			// Deleting the variant drops what it owned
			Expect(svc.DeleteVariant(ctx, networkID, 1)).To(Succeed())
			_, err = svc.CloneVariant(ctx, networkID, 0, 1, "v1")
			Expect(err).NotTo(HaveOccurred())
			tc, err = svc.GetTapChangerSteps(ctx, networkID, 1, "T1", models.TapChangerTypeRatio)
			Expect(err).NotTo(HaveOccurred())
			Expect(tc.Steps).To(HaveLen(1))
		})

		It("should reject duplicated positions and unknown types", func() {
			err := svc.PutTapChangerSteps(ctx, networkID, 0, models.TapChangerSteps{
				EquipmentID:    "T1",
				TapChangerType: models.TapChangerTypeRatio,
				Steps:          []models.TapChangerStep{{Position: 0}, {Position: 0}},
			})
			Expect(srvErrors.IsInvalidArgumentError(err)).To(BeTrue())

			err = svc.PutTapChangerSteps(ctx, networkID, 0, models.TapChangerSteps{EquipmentID: "T1", TapChangerType: "SPIN"})
			Expect(srvErrors.IsInvalidArgumentError(err)).To(BeTrue())
		})
	})
})
