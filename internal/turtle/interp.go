package turtle

import (
	"github.com/bencarey88/forestgen/internal/diag"
	"github.com/bencarey88/forestgen/internal/geom"
)

// InstanceStore is the interpreter's view of the instance cache.
// Implemented by *cache.InstanceCache; declared here so turtle need not
// import cache.
type InstanceStore interface {
	Capacity(id, age int) int
	Len(id, age int) int
	IsEmpty(id, age int) bool
	Reserve(id, age int) (*Instance, bool)
}

// Defaults seeds the turtle's initial step/angle/thickness and their
// multiplicative scale factors.
type Defaults struct {
	Step           float64
	StepScale      float64
	Angle          float64
	AngleScale     float64
	Thickness      float64
	ThicknessScale float64
}

type state struct {
	frame     geom.Transform
	step      float64
	angle     float64
	thickness float64
	lastIndex int
}

type bracketFrame struct {
	state     state
	activeLen int
}

type activeEntry struct {
	inst     *Instance
	detached bool // reserved in the cache failed; inst is a throwaway
}

// Interpreter walks a tokenized L-system string, mutating turtle state
// and emitting geometry into a HeroBuffers, recording Instances into an
// InstanceStore along the way.
type Interpreter struct {
	store   InstanceStore
	buffers *HeroBuffers
	warn    *diag.Flags

	st state

	stepScale      float64
	angleScale     float64
	thicknessScale float64

	bracketStack []bracketFrame
	activeStack  []activeEntry

	polyOpen   bool
	polyStart  int
	polyActive []geom.Vec3

	exitOpenedStack []bool // parallel to `<`/`>` nesting
}

// NewInterpreter builds an interpreter that accumulates geometry into
// buffers and records instances into store, starting from defaults. It
// seeds buffers with a single root vertex at the origin so the first
// `F` has a lastIndex to pair with.
func NewInterpreter(store InstanceStore, buffers *HeroBuffers, warn *diag.Flags, defaults Defaults) *Interpreter {
	frame := geom.Identity()
	rootIndex := len(buffers.Vertices)
	buffers.Vertices = append(buffers.Vertices, Vertex{Position: frame.Pos, Right: frame.Right, Thickness: defaults.Thickness})

	return &Interpreter{
		store:   store,
		buffers: buffers,
		warn:    warn,
		st: state{
			frame:     frame,
			step:      defaults.Step,
			angle:     defaults.Angle,
			thickness: defaults.Thickness,
			lastIndex: rootIndex,
		},
		stepScale:      defaults.StepScale,
		angleScale:     defaults.AngleScale,
		thicknessScale: defaults.ThicknessScale,
	}
}

// Run interprets tokens in a single sequential walk.
func (ip *Interpreter) Run(tokens []Token) {
	for i := 0; i < len(tokens); i++ {
		tok := tokens[i]
		if tok.ArgBad && ip.warn != nil {
			ip.warn.Warn("turtle-arg-parse", "failed to parse command argument, falling back to default")
		}

		switch tok.Kind {
		case KindLine:
			ip.emitSegment(tok, true)
		case KindMove:
			ip.emitSegment(tok, false)
		case KindRotate:
			ip.rotate(tok)
		case KindScale:
			ip.scale(tok)
		case KindPush:
			ip.push()
		case KindPop:
			ip.pop()
		case KindPolyOpen:
			ip.polyOpenFan()
		case KindPolyVertex:
			ip.polyRecordVertex()
		case KindPolyClose:
			ip.polyCloseFan()
		case KindLeaf:
			ip.emitLeaf()
		case KindInstanceOpen:
			ip.openInstance(tok)
		case KindInstanceClose:
			ip.closeInstance()
		case KindExitOpen:
			i = ip.openExit(tok, tokens, i)
		case KindExitClose:
			ip.closeExit()
		default:
			// Unknown symbols are ignored.
		}
	}
}

func (ip *Interpreter) argOr(tok Token, fallback float64) float64 {
	if tok.HasArg {
		return tok.ArgF
	}
	return fallback
}

// emitSegment advances the turtle by F/f's length and appends one new
// vertex at the end position, pairing it with the last-recorded vertex
// index so consecutive segments and sibling branches share the
// branch-point vertex rather than each allocating their own endpoints.
func (ip *Interpreter) emitSegment(tok Token, visible bool) {
	length := ip.argOr(tok, ip.st.step)
	direction := ip.st.frame.ApplyDirection(geom.Vec3{X: 0, Y: 1, Z: 0})
	end := ip.st.frame.Pos.Add(direction.Scale(length))
	ip.st.frame.Pos = end

	newIndex := len(ip.buffers.Vertices)
	ip.buffers.Vertices = append(ip.buffers.Vertices,
		Vertex{Position: end, Right: ip.st.frame.Right, Thickness: ip.st.thickness},
	)

	if visible {
		ip.buffers.Indices = append(ip.buffers.Indices, [2]int{ip.st.lastIndex, newIndex})
	}
	ip.st.lastIndex = newIndex
}

func (ip *Interpreter) rotate(tok Token) {
	theta := ip.argOr(tok, ip.st.angle)
	var axis geom.Vec3
	sign := 1.0
	switch tok.Sym {
	case '+':
		axis = ip.st.frame.Up
		sign = 1
	case '-':
		axis = ip.st.frame.Up
		sign = -1
	case '&':
		axis = ip.st.frame.Right
		sign = 1
	case '^':
		axis = ip.st.frame.Right
		sign = -1
	case '/':
		axis = ip.st.frame.Heading
		sign = 1
	case '\\':
		axis = ip.st.frame.Heading
		sign = -1
	}
	angle := sign * theta

	ip.st.frame.Right = geom.RotateAround(ip.st.frame.Right, axis, angle)
	ip.st.frame.Heading = geom.RotateAround(ip.st.frame.Heading, axis, angle)
	ip.st.frame.Up = ip.st.frame.Right.Cross(ip.st.frame.Heading)
}

// scale multiplies step, angle, or thickness by its configured scale
// factor, or by an explicit argument `(k)` when one is given.
func (ip *Interpreter) scale(tok Token) {
	switch tok.Sym {
	case '"':
		ip.st.step *= ip.argOr(tok, ip.stepScale)
	case ';':
		ip.st.angle *= ip.argOr(tok, ip.angleScale)
	case '!':
		ip.st.thickness *= ip.argOr(tok, ip.thicknessScale)
	}
}

func (ip *Interpreter) push() {
	ip.bracketStack = append(ip.bracketStack, bracketFrame{
		state:     ip.st,
		activeLen: len(ip.activeStack),
	})
}

func (ip *Interpreter) pop() {
	if len(ip.bracketStack) == 0 {
		return // pop on an empty stack is ignored
	}
	n := len(ip.bracketStack) - 1
	frame := ip.bracketStack[n]
	ip.bracketStack = ip.bracketStack[:n]
	ip.st = frame.state
	if frame.activeLen < len(ip.activeStack) {
		ip.activeStack = ip.activeStack[:frame.activeLen]
	}
}

func (ip *Interpreter) polyOpenFan() {
	ip.polyOpen = true
	ip.polyStart = len(ip.buffers.PolygonVertices)
	ip.polyActive = ip.polyActive[:0]
}

func (ip *Interpreter) polyRecordVertex() {
	if !ip.polyOpen {
		return
	}
	ip.polyActive = append(ip.polyActive, ip.st.frame.Pos)
}

// polyCloseFan triangulates the recorded fan as a zig-zag strip for
// correct winding: indices (0,1,n-1), then alternating (n-i, i, i+1)
// and (n-i, i+1, n-i-1) for i = 1..n/2.
func (ip *Interpreter) polyCloseFan() {
	if !ip.polyOpen {
		return
	}
	ip.polyOpen = false
	n := len(ip.polyActive)
	if n < 3 {
		if ip.warn != nil {
			ip.warn.Warn("degenerate-polygon", "polygon fan with fewer than 3 vertices, skipped")
		}
		return
	}

	base := ip.polyStart
	ip.buffers.PolygonVertices = append(ip.buffers.PolygonVertices, ip.polyActive...)

	ip.buffers.PolygonIndices = append(ip.buffers.PolygonIndices, [3]int{base + 0, base + 1, base + n - 1})
	for i := 1; i <= n/2; i++ {
		if i+1 < n {
			ip.buffers.PolygonIndices = append(ip.buffers.PolygonIndices, [3]int{base + n - i, base + i, base + i + 1})
		}
		if n-i-1 > i+1 {
			ip.buffers.PolygonIndices = append(ip.buffers.PolygonIndices, [3]int{base + n - i, base + i + 1, base + n - i - 1})
		}
	}
}

func (ip *Interpreter) emitLeaf() {
	marker := LeafMarker{
		Position: ip.st.frame.Pos,
		Heading:  ip.st.frame.Heading,
		Right:    ip.st.frame.Right,
		Index:    len(ip.buffers.Leaves),
	}
	ip.buffers.Leaves = append(ip.buffers.Leaves, marker)
}

// currentFrame is the rigid frame M = [right|heading|right×heading|pos]
// used to build an instance's local transform.
func (ip *Interpreter) currentFrame() geom.Transform {
	return geom.Transform{
		Right:   ip.st.frame.Right,
		Heading: ip.st.frame.Heading,
		Up:      ip.st.frame.Right.Cross(ip.st.frame.Heading),
		Pos:     ip.st.frame.Pos,
	}
}

// beginInstance reserves a slot for (id,age) if capacity allows, else
// builds a detached instance, and pushes it onto the active stack.
func (ip *Interpreter) beginInstance(id, age int) {
	var inst *Instance
	var detached bool
	if slot, ok := ip.store.Reserve(id, age); ok {
		inst = slot
	} else {
		inst = &Instance{}
		detached = true
	}

	inst.LocalTransform = ip.currentFrame()
	inst.LineRange.Start = len(ip.buffers.Indices)
	inst.LeafRange.Start = len(ip.buffers.Leaves)
	inst.PolygonRange.Start = len(ip.buffers.PolygonIndices)

	ip.activeStack = append(ip.activeStack, activeEntry{inst: inst, detached: detached})
}

func (ip *Interpreter) openInstance(tok Token) {
	if !tok.HasArg {
		if ip.warn != nil {
			ip.warn.Warn("turtle-arg-parse", "@ missing (id,age) argument")
		}
		return
	}
	ip.beginInstance(tok.ArgID, tok.ArgAge)
}

// endActiveInstance finalizes range ends on the top active instance and
// pops it.
func (ip *Interpreter) endActiveInstance() {
	if len(ip.activeStack) == 0 {
		return // closing with no active instance is ignored
	}
	n := len(ip.activeStack) - 1
	entry := ip.activeStack[n]
	ip.activeStack = ip.activeStack[:n]

	entry.inst.LineRange.End = len(ip.buffers.Indices)
	entry.inst.LeafRange.End = len(ip.buffers.Leaves)
	entry.inst.PolygonRange.End = len(ip.buffers.PolygonIndices)
}

func (ip *Interpreter) closeInstance() {
	ip.endActiveInstance()
}

// openExit implements `<(id,age)`: registers an exit point on every
// active instance, then either opens a bootstrapping instance (empty
// cache) or skips forward to the matching `>`. Returns the token index
// to resume from.
func (ip *Interpreter) openExit(tok Token, tokens []Token, i int) int {
	if !tok.HasArg {
		if ip.warn != nil {
			ip.warn.Warn("turtle-arg-parse", "< missing (id,age) argument")
		}
		ip.exitOpenedStack = append(ip.exitOpenedStack, false)
		return i
	}

	m := ip.currentFrame()
	for _, entry := range ip.activeStack {
		exitTransform := entry.inst.LocalTransform.Inverse().Compose(m)
		entry.inst.ExitPoints = append(entry.inst.ExitPoints, ExitPoint{
			ExitID:        tok.ArgID,
			ExitAge:       tok.ArgAge,
			ExitTransform: exitTransform,
		})
	}

	if ip.store.IsEmpty(tok.ArgID, tok.ArgAge) {
		ip.beginInstance(tok.ArgID, tok.ArgAge)
		ip.exitOpenedStack = append(ip.exitOpenedStack, true)
		return i
	}

	// The skip below consumes the matching `>` itself, so there is no
	// corresponding closeExit call to pair with an exitOpenedStack entry.
	return skipToMatchingClose(tokens, i)
}

// skipToMatchingClose advances past a `<` that did not open a new
// instance, honoring `<`/`>` nesting.
func skipToMatchingClose(tokens []Token, i int) int {
	depth := 1
	for j := i + 1; j < len(tokens); j++ {
		switch tokens[j].Kind {
		case KindExitOpen:
			depth++
		case KindExitClose:
			depth--
			if depth == 0 {
				return j
			}
		}
	}
	return len(tokens) - 1
}

func (ip *Interpreter) closeExit() {
	n := len(ip.exitOpenedStack) - 1
	if n < 0 {
		return // closing with no open exit is ignored
	}
	opened := ip.exitOpenedStack[n]
	ip.exitOpenedStack = ip.exitOpenedStack[:n]
	if opened {
		ip.endActiveInstance()
	}
}
