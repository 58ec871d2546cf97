package scene

// Graph is the root of everything drawn in a frame.
type Graph struct {
	Root       *Node
	Background *CubeTexture
	Ambient    []*AmbientLight
	Points     []*PointLight
}

// NewGraph returns an empty graph with no lights.
func NewGraph() *Graph {
	return &Graph{Root: NewNode("scene")}
}

// Add inserts node as a top-level member of the graph.
func (g *Graph) Add(node *Node) {
	g.Root.Add(node)
}

// AddAmbientLight adds light to the graph.
func (g *Graph) AddAmbientLight(light *AmbientLight) {
	g.Ambient = append(g.Ambient, light)
}

// AddPointLight adds light to the graph.
func (g *Graph) AddPointLight(light *PointLight) {
	g.Points = append(g.Points, light)
}
