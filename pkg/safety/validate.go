// pkg/safety/validate.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package safety

import (
	"github.com/ErToBar2/ORBIT-sub001/pkg/errs"
	"github.com/ErToBar2/ORBIT-sub001/pkg/flightplan"
	"github.com/ErToBar2/ORBIT-sub001/pkg/math"
)

// SampleStep is the fixed arc-length sampling interval Δs used by the
// segment-vs-prism test (§4.4).
const SampleStep = 0.1 // meters

// UnsafeSegment groups the unsafe samples found against one zone
// (§4.4 ValidationReport).
type UnsafeSegment struct {
	ZoneID  string
	ZMin    float64
	ZMax    float64
	Count   int
	Samples []math.Vec3
}

// ValidationReport is produced by Validate and consumed by an external
// UI collaborator; the core never prompts — it exposes this report and
// offers Resolve (§4.4).
type ValidationReport struct {
	UnsafeSegments []UnsafeSegment
	TotalSamples   int
}

func (r ValidationReport) HasFindings() bool { return len(r.UnsafeSegments) > 0 }

// SegmentUnsafe samples the segment (a, b) at SampleStep and tests
// each sample against every zone, returning the unsafe samples per
// zone (§4.4).
func SegmentUnsafe(a, b math.Vec3, zones []*Zone) map[string][]math.Vec3 {
	found := map[string][]math.Vec3{}
	d := math.Distance3(a, b)
	if d == 0 {
		for _, z := range zones {
			if z.Inside(a) {
				found[z.ID] = append(found[z.ID], a)
			}
		}
		return found
	}
	n := int(d/SampleStep) + 1
	for i := 0; i <= n; i++ {
		t := float64(i) / float64(n)
		p := math.Lerp3(t, a, b)
		for _, z := range zones {
			if z.Inside(p) {
				found[z.ID] = append(found[z.ID], p)
			}
		}
	}
	return found
}

// Validate checks every segment of r against zones, producing a
// ValidationReport (§4.4).
func Validate(r *flightplan.Route, zones []*Zone) ValidationReport {
	byZone := map[string]*UnsafeSegment{}
	total := 0
	for i := 0; i < len(r.Waypoints)-1; i++ {
		a, b := r.Waypoints[i].Pos, r.Waypoints[i+1].Pos
		d := math.Distance3(a, b)
		total += int(d/SampleStep) + 2

		unsafe := SegmentUnsafe(a, b, zones)
		for zid, samples := range unsafe {
			seg, ok := byZone[zid]
			if !ok {
				var z *Zone
				for _, zz := range zones {
					if zz.ID == zid {
						z = zz
						break
					}
				}
				seg = &UnsafeSegment{ZoneID: zid, ZMin: z.ZMin, ZMax: z.ZMax}
				byZone[zid] = seg
			}
			seg.Samples = append(seg.Samples, samples...)
			seg.Count += len(samples)
		}
	}

	report := ValidationReport{TotalSamples: total}
	for _, seg := range byZone {
		report.UnsafeSegments = append(report.UnsafeSegments, *seg)
	}
	return report
}

// Policy is a resolution strategy offered to the caller once a
// ValidationReport shows findings (§4.4).
type Policy struct {
	Kind      PolicyKind
	LiftToZ   float64 // used when Kind == PolicyLiftTo
}

type PolicyKind int

const (
	PolicyAbort PolicyKind = iota
	PolicyLiftTo
	PolicyClipToBoundary
	PolicyAccept
)

// Resolve applies policy to r in response to report, returning the
// (possibly modified) route. PolicyAbort returns a SafetyUnresolved
// error instead of a route (§4.4/§7).
func Resolve(r *flightplan.Route, report ValidationReport, zones []*Zone, policy Policy) (*flightplan.Route, error) {
	if !report.HasFindings() {
		return r, nil
	}

	switch policy.Kind {
	case PolicyAbort:
		return nil, errs.New(errs.SafetyUnresolved, "safety", r.ID, "validation found unsafe samples and caller chose abort")

	case PolicyAccept:
		return r, nil

	case PolicyLiftTo:
		for i := range r.Waypoints {
			if waypointInAnyZone(r.Waypoints[i].Pos, zones) {
				r.Waypoints[i].Pos[2] = policy.LiftToZ
			}
		}
		// A segment can still cross a zone between two waypoints outside
		// it; lift both ends of every such segment until none is left.
		for changed := true; changed; {
			changed = false
			for i := 0; i+1 < len(r.Waypoints); i++ {
				a, b := &r.Waypoints[i].Pos, &r.Waypoints[i+1].Pos
				if len(SegmentUnsafe(*a, *b, zones)) == 0 {
					continue
				}
				for _, p := range []*math.Vec3{a, b} {
					if p[2] < policy.LiftToZ {
						p[2], changed = policy.LiftToZ, true
					}
				}
			}
		}
		return r, nil

	case PolicyClipToBoundary:
		for i := range r.Waypoints {
			for _, z := range zones {
				if z.Inside(r.Waypoints[i].Pos) {
					r.Waypoints[i].Pos = clipOutward(r.Waypoints[i].Pos, z)
				}
			}
		}
		return r, nil

	default:
		return nil, errs.New(errs.InputInvalid, "safety", r.ID, "unknown resolution policy")
	}
}

func waypointInAnyZone(p math.Vec3, zones []*Zone) bool {
	for _, z := range zones {
		if z.Inside(p) {
			return true
		}
	}
	return false
}

// clipOutward pushes p to just outside z's nearest polygon edge,
// preserving altitude.
func clipOutward(p math.Vec3, z *Zone) math.Vec3 {
	xy := p.XY()
	n := len(z.Polygon)
	bestD := -1.0
	var bestPt math.Vec2
	for i := 0; i < n; i++ {
		a, b := z.Polygon[i], z.Polygon[(i+1)%n]
		l := math.Sub2(a, b)
		l2 := math.Dot2(l, l)
		var proj math.Vec2
		if l2 == 0 {
			proj = a
		} else {
			t := math.Clamp(math.Dot2(math.Sub2(xy, a), math.Sub2(b, a))/l2, 0, 1)
			proj = math.Add2(a, math.Scale2(math.Sub2(b, a), t))
		}
		d := math.Distance2(xy, proj)
		if bestD < 0 || d < bestD {
			bestD = d
			bestPt = proj
		}
	}
	dir := math.Normalize2(math.Sub2(xy, bestPt))
	if math.Length2(dir) == 0 {
		dir = math.Vec2{1, 0}
	}
	outward := math.Add2(bestPt, math.Scale2(dir, z.Boundary+1e-3))
	return math.Vec3{outward[0], outward[1], p[2]}
}
