// pkg/bridgemodel/assemble.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package bridgemodel

import (
	"sort"

	"github.com/ErToBar2/ORBIT-sub001/pkg/errs"
	"github.com/ErToBar2/ORBIT-sub001/pkg/math"
)

const stage = "bridgemodel"

// worldUp is the fixed vertical reference used for Frenet-frame
// propagation and the pillar inflation axis.
var worldUp = math.Vec3{0, 0, 1}

// Params bundles the assembly-time configuration this component reads
// directly (the rest of Config belongs to downstream planners).
type Params struct {
	// PillarLateralOffset is the default lateral inflation width w
	// of a pillar-pair prism's base (§4.3, default 0.5 m).
	PillarLateralOffset float64
	// PillarMinHeight is the minimum clamp on a pillar prism's height
	// (§4.3, default 5 m).
	PillarMinHeight float64
	// PillarHintSearchRadius bounds how far a PillarHeightHint sample
	// may be from a pillar midpoint to be used (SPEC_FULL §4.3).
	PillarHintSearchRadius float64
	// Heights is an optional per-trajectory-point height array (§4.3);
	// nil means "use trajectory z as-is" (it already carries z=deck
	// altitude per §3).
	Heights []float64
}

func DefaultParams() Params {
	return Params{
		PillarLateralOffset:    0.5,
		PillarMinHeight:        5.0,
		PillarHintSearchRadius: 20.0,
	}
}

// Assemble builds a BridgeModel from the given inputs (§4.3).
func Assemble(traj Trajectory, cs CrossSection2D, pillars []PillarPair, abutments []Abutment,
	hints []PillarHeightHint, p Params) (*BridgeModel, error) {

	if len(traj.Points) < 2 {
		return nil, errs.New(errs.InputInvalid, stage, "trajectory", "trajectory must have at least 2 points")
	}
	if len(cs.Points) < 3 {
		return nil, errs.New(errs.InputInvalid, stage, "cross_section", "cross-section must have at least 3 vertices")
	}
	if len(pillars)+len(abutments) == 0 {
		return nil, errs.New(errs.InputInvalid, stage, "pillars", "at least one pillar pair or abutment is required")
	}

	pts := applyHeights(traj.Points, p.Heights)
	if degenerateTrajectory(pts) {
		return nil, errs.New(errs.GeometryDegenerate, stage, "trajectory", "all trajectory points coincide")
	}

	csNorm := normalizeCrossSection(cs)
	if collinear(csNorm.Points) {
		return nil, errs.New(errs.GeometryDegenerate, stage, "cross_section", "cross-section vertices are collinear")
	}

	n := len(pts) * 3
	if n < 50 {
		n = 50
	}
	deck, err := extrude(pts, csNorm, n)
	if err != nil {
		return nil, err
	}

	prisms := buildPillarPrisms(pillars, deck, hints, p)
	spans := partitionSpans(deck, pillars, abutments, len(prisms))

	return &BridgeModel{Deck: deck, PillarPrisms: prisms, Spans: spans}, nil
}

func applyHeights(pts []math.Vec3, heights []float64) []math.Vec3 {
	if len(heights) == 0 {
		return pts
	}
	out := make([]math.Vec3, len(pts))
	copy(out, pts)
	if len(heights) == 1 {
		for i := range out {
			out[i][2] = heights[0]
		}
		return out
	}
	n := len(out)
	for i := range out {
		t := float64(i) / float64(n-1)
		hi := t * float64(len(heights)-1)
		lo := int(hi)
		if lo >= len(heights)-1 {
			out[i][2] = heights[len(heights)-1]
			continue
		}
		frac := hi - float64(lo)
		out[i][2] = math.Lerp(frac, heights[lo], heights[lo+1])
	}
	return out
}

func degenerateTrajectory(pts []math.Vec3) bool {
	for _, p := range pts[1:] {
		if math.Distance3(pts[0], p) > 1e-9 {
			return false
		}
	}
	return true
}

// normalizeCrossSection enforces CCW winding (SPEC_FULL §9, Open
// Question c).
func normalizeCrossSection(cs CrossSection2D) CrossSection2D {
	if math.PolygonArea(cs.Points) < 0 {
		rev := make([]math.Vec2, len(cs.Points))
		for i, p := range cs.Points {
			rev[len(rev)-1-i] = p
		}
		return CrossSection2D{Points: rev}
	}
	return CrossSection2D{Points: append([]math.Vec2{}, cs.Points...)}
}

func collinear(pts []math.Vec2) bool {
	if len(pts) < 3 {
		return true
	}
	a := pts[0]
	for i := 1; i < len(pts)-1; i++ {
		cross := math.Cross2(math.Sub2(pts[i], a), math.Sub2(pts[i+1], a))
		if math.Abs(cross) > 1e-9 {
			return false
		}
	}
	return true
}

// extrude resamples the trajectory to n samples, builds the moving
// frame, and sweeps the cross-section into a DeckSurface (§4.2/§4.3).
func extrude(pts []math.Vec3, cs CrossSection2D, n int) (DeckSurface, error) {
	spline := math.NewCubicSpline3(pts)
	stations, tangents := spline.SampleUniform(n)
	frames := math.PropagateFrames(tangents, worldUp)

	m := len(cs.Points)
	vertices := make([]math.Vec3, 0, n*m)
	rings := make([]Ring, n)
	arcLen := make([]float64, n)
	var cum float64
	for i := 0; i < n; i++ {
		if i > 0 {
			cum += math.Distance3(stations[i-1], stations[i])
		}
		arcLen[i] = cum

		ring := make([]math.Vec3, m)
		fr := frames[i]
		for j, cv := range cs.Points {
			// cv = (across, up)
			offset := math.Add3(math.Scale3(fr.Normal, cv[0]), math.Scale3(worldUp, cv[1]))
			ring[j] = math.Add3(stations[i], offset)
		}
		rings[i] = Ring{Vertices: ring}
		vertices = append(vertices, ring...)
	}

	faces := make([]Face, 0, (n-1)*m)
	for i := 0; i < n-1; i++ {
		for j := 0; j < m; j++ {
			j1 := (j + 1) % m
			a := i*m + j
			b := i*m + j1
			c := (i+1)*m + j1
			d := (i+1)*m + j
			faces = append(faces, Face{a, b, c, d})
		}
	}

	if len(faces) != (n-1)*m {
		return DeckSurface{}, errs.New(errs.InternalInconsistency, stage, "deck",
			"face count does not match (samples-1)*cross_section_size invariant")
	}

	return DeckSurface{
		Rings:    rings,
		Vertices: vertices,
		Faces:    faces,
		Frames:   frames,
		Stations: stations,
		ArcLen:   arcLen,
	}, nil
}

func buildPillarPrisms(pillars []PillarPair, deck DeckSurface, hints []PillarHeightHint, p Params) []PillarPrism {
	prisms := make([]PillarPrism, len(pillars))
	for i, pp := range pillars {
		dir := math.Normalize2(math.Sub2(pp.Right, pp.Left))
		perp := math.Perp2(dir)
		w := p.PillarLateralOffset

		prisms[i] = PillarPrism{
			Base: [4]math.Vec2{
				math.Add2(pp.Left, math.Scale2(perp, w)),
				math.Add2(pp.Right, math.Scale2(perp, w)),
				math.Add2(pp.Right, math.Scale2(perp, -w)),
				math.Add2(pp.Left, math.Scale2(perp, -w)),
			},
			GroundZ: groundZ(pp.Midpoint(), hints, p.PillarHintSearchRadius),
		}
		prisms[i].DeckZ = deckZAt(pp.Midpoint(), deck, prisms[i].GroundZ, p.PillarMinHeight)
	}
	return prisms
}

func groundZ(mid math.Vec2, hints []PillarHeightHint, radius float64) float64 {
	best := -1
	bestD := radius
	for i, h := range hints {
		d := math.Distance2(mid, h.Point)
		if d <= bestD {
			bestD = d
			best = i
		}
	}
	if best >= 0 {
		return hints[best].Height
	}
	return 0
}

// deckZAt finds the z of the deck vertex closest (in xy) to mid,
// clamped to at least groundZ+minHeight (§4.3).
func deckZAt(mid math.Vec2, deck DeckSurface, groundZ, minHeight float64) float64 {
	bestD := -1.0
	var z float64
	for _, v := range deck.Vertices {
		d := math.Distance2(mid, v.XY())
		if bestD < 0 || d < bestD {
			bestD = d
			z = v[2]
		}
	}
	if z < groundZ+minHeight {
		z = groundZ + minHeight
	}
	return z
}

// partitionSpans projects pillar midpoints onto the trajectory
// arc-length and partitions [0,L] accordingly (§4.3). Abutments are
// not added as interior stations: they sit at the trajectory's own
// endpoints, which bounds already covers via its implicit 0 and L.
func partitionSpans(deck DeckSurface, pillars []PillarPair, abutments []Abutment, nPrisms int) []Span {
	type station struct {
		s         float64
		pillarIdx *int
	}
	stations := make([]station, 0, len(pillars))
	for i, pp := range pillars {
		idx := i
		stations = append(stations, station{s: arcLengthOf(deck, pp.Midpoint()), pillarIdx: &idx})
	}
	sort.Slice(stations, func(i, j int) bool { return stations[i].s < stations[j].s })

	L := deck.ArcLen[len(deck.ArcLen)-1]
	bounds := []float64{0}
	for _, st := range stations {
		bounds = append(bounds, st.s)
	}
	bounds = append(bounds, L)

	spans := make([]Span, 0, len(bounds)-1)
	for i := 0; i < len(bounds)-1; i++ {
		sp := Span{Index: i, S0: bounds[i], S1: bounds[i+1]}
		if i > 0 {
			sp.PillarA = stations[i-1].pillarIdx
		}
		if i < len(stations) {
			sp.PillarB = stations[i].pillarIdx
		}
		spans = append(spans, sp)
	}
	return spans
}

// arcLengthOf finds the arc-length of the deck station whose xy
// projection is closest to p.
func arcLengthOf(deck DeckSurface, p math.Vec2) float64 {
	bestD := -1.0
	var s float64
	for i, st := range deck.Stations {
		d := math.Distance2(p, st.XY())
		if bestD < 0 || d < bestD {
			bestD = d
			s = deck.ArcLen[i]
		}
	}
	return s
}
