package chain

// Grouper computes connected components over integer handles, typically
// indexes into a record slice. Handles must be registered through Add or
// Join before they appear in Groups; registered handles with no joins come
// out as singleton groups.
type Grouper struct {
	parent []int
	size   []int
	order  []int
}

// NewGrouper returns a Grouper over handles [0, n).
func NewGrouper(n int) *Grouper {
	parent := make([]int, n)
	for i := range parent {
		parent[i] = -1
	}
	return &Grouper{parent: parent, size: make([]int, n)}
}

// Add registers handle i as its own group if it is not yet registered.
func (g *Grouper) Add(i int) {
	if g.parent[i] < 0 {
		g.parent[i] = i
		g.size[i] = 1
		g.order = append(g.order, i)
	}
}

// Join registers i and j and merges their groups.
func (g *Grouper) Join(i, j int) {
	g.Add(i)
	g.Add(j)
	ri, rj := g.find(i), g.find(j)
	if ri == rj {
		return
	}
	if g.size[ri] < g.size[rj] {
		ri, rj = rj, ri
	}
	g.parent[rj] = ri
	g.size[ri] += g.size[rj]
}

// find returns the group root of i, compressing the path on the way.
func (g *Grouper) find(i int) int {
	for g.parent[i] != i {
		g.parent[i] = g.parent[g.parent[i]]
		i = g.parent[i]
	}
	return i
}

// Groups returns the connected components. Groups appear in order of their
// earliest-registered member, members in registration order.
func (g *Grouper) Groups() [][]int {
	index := make(map[int]int)
	var groups [][]int
	for _, i := range g.order {
		r := g.find(i)
		gi, ok := index[r]
		if !ok {
			gi = len(groups)
			index[r] = gi
			groups = append(groups, nil)
		}
		groups[gi] = append(groups[gi], i)
	}
	return groups
}
