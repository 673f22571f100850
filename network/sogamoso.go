// SPDX-License-Identifier: MIT

package network

// Node identifiers of the Sogamoso capture network.
const (
	LagoTota      = "S1_LagoTota"
	RioTejar      = "S2_RioTejar"
	PozoProfundo  = "S3_PozoProfundo"
	PlantCH       = "P_CH"
	PlantSur      = "P_SUR"
	PlantMode     = "P_MODE"
	TankCH        = "T_CH"
	TankMode      = "T_MODE"
	TankCiral     = "T_CIRAL"
	TankSB        = "T_SB"
	TankPorv      = "T_PORV"
	Distribution  = "DISTR"
	sogamosoNodes = 12
)

// SogamosoNodes returns the twelve nodes of the Sogamoso network with the
// operating ranges of the municipal land-use plan (flows in L/s, volumes in m³).
// Pressures are left zero so New applies the category defaults.
func SogamosoNodes() []Node {
	nodes := make([]Node, 0, sogamosoNodes)
	nodes = append(nodes,
		Node{ID: LagoTota, Category: Source, Flow: Range{250, 300}},
		Node{ID: RioTejar, Category: Source, Flow: Range{10, 20}},
		Node{ID: PozoProfundo, Category: Source, Flow: Range{8, 15}},

		Node{ID: PlantCH, Category: Plant, Flow: Range{340, 365}, Loss: Range{35, 40}},
		Node{ID: PlantSur, Category: Plant, Flow: Range{50, 60}, Loss: Range{63, 70}},
		Node{ID: PlantMode, Category: Plant, Flow: Range{25, 30}, Loss: Range{60, 65}},

		Node{ID: TankCH, Category: Tank, Flow: Range{100, 110}, Loss: Range{2, 5}, Volume: 10000, HasVolume: true},
		Node{ID: TankMode, Category: Tank, Flow: Range{20, 25}, Loss: Range{5, 8}, Volume: 856, HasVolume: true},
		Node{ID: TankCiral, Category: Tank, Flow: Range{10, 12}, Loss: Range{5, 10}, Volume: 350, HasVolume: true},
		Node{ID: TankSB, Category: Tank, Flow: Range{10, 15}, Loss: Range{5, 10}, Volume: 400, HasVolume: true},
		Node{ID: TankPorv, Category: Tank, Flow: Range{3, 6}, Loss: Range{5, 10}, Volume: 60, HasVolume: true},

		Node{ID: Distribution, Category: NetworkSink, Flow: Range{250, 310}},
	)

	return nodes
}

// SogamosoEdges returns the fourteen directed pipes of the network.
//
// As surveyed, P_SUR feeds no tank and T_PORV receives from no plant; Lint
// reports both and propagation treats T_PORV as its own neighborhood.
func SogamosoEdges() []Edge {
	return []Edge{
		{LagoTota, PlantCH},
		{LagoTota, PlantSur},
		{RioTejar, PlantMode},
		{PozoProfundo, PlantMode},
		{PlantCH, TankCH},
		{PlantCH, TankCiral},
		{PlantCH, TankSB},
		{PlantMode, TankMode},
		{PlantMode, TankSB},
		{TankCH, Distribution},
		{TankMode, Distribution},
		{TankCiral, Distribution},
		{TankSB, Distribution},
		{TankPorv, Distribution},
	}
}

// Sogamoso builds the canonical topology.
func Sogamoso(opts ...Option) (*Topology, error) {
	return New(SogamosoNodes(), SogamosoEdges(), opts...)
}
