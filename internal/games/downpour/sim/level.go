package sim

// LevelDef is the static description handed to the world when gameplay is
// entered. Blocks are world-space rectangles.
type LevelDef struct {
	ID       string
	Name     string
	Viewport Rect
	Spawn    Vec2
	Blocks   []Rect
}

// Block is one piece of static level geometry. Its collider is expressed in
// world space directly; blocks have no kinematic state.
type Block struct {
	ID       EntityID
	Collider Collider
}

// Rect returns the block's world rectangle.
func (b Block) Rect() Rect {
	return b.Collider.WorldRect(Vec2{})
}

// Level is the immutable geometry of the level being played.
type Level struct {
	def    LevelDef
	blocks []Block
}

// newLevel builds level geometry from its definition, assigning IDs from next.
func newLevel(def LevelDef, next func() EntityID) *Level {
	l := &Level{def: def, blocks: make([]Block, 0, len(def.Blocks))}
	for _, r := range def.Blocks {
		l.blocks = append(l.blocks, Block{
			ID:       next(),
			Collider: Collider{Local: r, Solid: true},
		})
	}
	return l
}

// ID returns the level identifier.
func (l *Level) ID() string {
	return l.def.ID
}

// Name returns the display name.
func (l *Level) Name() string {
	return l.def.Name
}

// Viewport returns the visible world area.
func (l *Level) Viewport() Rect {
	return l.def.Viewport
}

// Blocks returns the level's solid blocks. Callers must not modify the slice.
func (l *Level) Blocks() []Block {
	return l.blocks
}
