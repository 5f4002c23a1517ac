// pkg/pipeline/pipeline.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package pipeline

import (
	"context"
	"fmt"
	"sort"

	"golang.org/x/sync/errgroup"

	"github.com/ErToBar2/ORBIT-sub001/pkg/bridgemodel"
	"github.com/ErToBar2/ORBIT-sub001/pkg/crs"
	"github.com/ErToBar2/ORBIT-sub001/pkg/errs"
	"github.com/ErToBar2/ORBIT-sub001/pkg/flightplan"
	"github.com/ErToBar2/ORBIT-sub001/pkg/log"
	"github.com/ErToBar2/ORBIT-sub001/pkg/overview"
	"github.com/ErToBar2/ORBIT-sub001/pkg/safety"
	"github.com/ErToBar2/ORBIT-sub001/pkg/underdeck"
)

// Compile runs the eight deterministic stages (§4.8) and returns a
// CompileResponse. A planner failure aborts compilation; validation
// findings are reported and resolved via Config.Safety.ResolvePolicy,
// and abort compilation with SafetyUnresolved only under the abort
// policy (§4.8 Failure semantics).
func Compile(ctx context.Context, lg *log.Logger, req CompileRequest, cancel *CancelToken) (*CompileResponse, error) {
	resp := &CompileResponse{
		ValidationReport: map[string]safety.ValidationReport{},
		Exported:         map[string][]flightplan.ExportedWaypoint{},
	}

	record := func(stage string, err error) {
		d := StageDiagnostic{Stage: stage, Ok: err == nil}
		if err != nil {
			d.Message = err.Error()
			lg.Error("stage failed", "stage", stage, "error", err)
		} else {
			lg.Info("stage ok", "stage", stage)
		}
		resp.Diagnostics = append(resp.Diagnostics, d)
	}

	if cancel.Cancelled() {
		return nil, errs.New(errs.Cancelled, "pipeline", "", "cancelled before stage 1")
	}

	// Stage 1: snapshot inputs.
	resp.SnapshotHash = snapshotHash(req)
	record("snapshot", nil)

	// Stage 2: build frames (C1).
	projectCRS := crs.NewPlanarCRS(req.CRSId, req.CRSOriginLat, req.CRSOriginLon)
	record("crs_frame", nil)

	if cancel.Cancelled() {
		return nil, errs.New(errs.Cancelled, "pipeline", "", "cancelled after stage 2")
	}

	// Stage 3: normalize geometry (C2, C3 validation happens inside Assemble).
	traj := bridgemodel.Trajectory{Points: req.TrajectoryPoints}
	assembleParams := req.Config.Assembly
	assembleParams.Heights = []float64(req.TrajectoryHeights)

	// Stage 4: build bridge model.
	model, err := bridgemodel.Assemble(traj, req.CrossSection2D, req.PillarPairs, req.Abutments,
		req.PillarHeightHints, assembleParams)
	if err != nil {
		record("bridgemodel", err)
		return resp, err
	}
	record("bridgemodel", nil)

	if cancel.Cancelled() {
		return nil, errs.New(errs.Cancelled, "pipeline", "", "cancelled after stage 4")
	}

	// Stage 5: run overview and under-deck planners in parallel (§5).
	var overviewRoute *flightplan.Route
	var spanRoutes []*flightplan.Route

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		overviewRoute = overview.Plan(model.Deck, req.CrossSection2D, len(model.Spans),
			overviewParams(req.Config.Overview), overviewSpacing(req.Config.Overview), tourParams(req.Config.Transition))
		return nil
	})
	g.Go(func() error {
		routes, err := planSpans(gctx, model, req.CrossSection2D, underdeckParams(req.Config.Underdeck, req.Config.Transition.VerticalOffset), cancel, req.Config.MaxSpanWorkers)
		if err != nil {
			return err
		}
		spanRoutes = routes
		return nil
	})
	if err := g.Wait(); err != nil {
		record("planners", err)
		return resp, err
	}
	record("planners", nil)

	if cancel.Cancelled() {
		return nil, errs.New(errs.Cancelled, "pipeline", "", "cancelled after stage 5")
	}

	routes := append([]*flightplan.Route{overviewRoute}, spanRoutes...)

	// Stage 6: validate with the safety engine (C4).
	zones := make([]*safety.Zone, 0, len(req.SafetyZones))
	for _, zi := range req.SafetyZones {
		z, err := safety.NewZone(zi.ID, zi.Polygon, zi.ZMin, zi.ZMax, zi.Boundary)
		if err != nil {
			record("safety", err)
			return resp, err
		}
		zones = append(zones, z)
	}
	for _, r := range routes {
		report := safety.Validate(r, zones)
		resp.ValidationReport[r.ID] = report
		if report.HasFindings() {
			resolved, err := safety.Resolve(r, report, zones, req.Config.Safety.ResolvePolicy)
			if err != nil {
				record("safety", err)
				return resp, err
			}
			*r = *resolved
		}
	}
	record("safety", nil)

	// Stage 7: post-process (C7).
	speeds := flightplan.NewSpeedMap()
	for tag, speed := range req.Config.Post.FlightSpeedMap {
		speeds.Set(tag, speed)
	}
	pp := flightplan.PostProcessParams{
		MaxSegmentLength: req.Config.Post.MaxSegmentLength,
		AltitudeFloor:    req.Config.Post.AltitudeFloor,
		CornerAngleDeg:   req.Config.Post.CornerAngleDeg,
		CornerSpeed:      req.Config.Post.CornerSpeed,
		Speeds:           speeds,
	}
	for _, r := range routes {
		report := flightplan.PostProcess(r, pp)
		resp.ClampEvents = append(resp.ClampEvents, report.Clamps...)
	}
	record("postprocess", nil)

	// Stage 8: order routes and emit the export document (§5 ordering
	// guarantees: class, then span index). The vendor KMZ writer
	// (pkg/kmz) consumes resp.Routes/resp.Exported directly; it is a
	// separate collaborator, not a pipeline stage.
	sort.SliceStable(routes, func(i, j int) bool {
		if routes[i].Class != routes[j].Class {
			return routes[i].Class < routes[j].Class
		}
		return routes[i].SpanIndex < routes[j].SpanIndex
	})
	resp.Routes = routes

	exportSpec := flightplan.ExportSpec{
		HeightMode: req.Config.Export.HeightMode, GlobalSpeed: req.Config.Export.GlobalSpeed,
		TurnPolicy: overviewTurnMode(req.Config.Overview.TurnMode), TakeoffSecurityHeight: req.Config.Export.TakeoffSecurityHeight,
	}
	if overviewRoute != nil && len(overviewRoute.Waypoints) > 0 {
		takeoff, err := projectCRS.ToWGS84(crs.ProjectPoint{
			X: overviewRoute.Waypoints[0].Pos[0], Y: overviewRoute.Waypoints[0].Pos[1], Z: overviewRoute.Waypoints[0].Pos[2],
		})
		if err == nil {
			exportSpec.TakeoffWGS84Alt = takeoff.Alt
		}
	}

	for _, r := range routes {
		ex, err := flightplan.ExportRoute(r, projectCRS, exportSpec, flightplan.DefaultGeoidModel)
		if err != nil {
			record("export", err)
			return resp, err
		}
		resp.Exported[r.ID] = ex
	}
	record("export", nil)

	return resp, nil
}

func overviewTurnMode(mode string) flightplan.TurnMode {
	if mode == "stop_and_turn" {
		return flightplan.TurnStopAndTurn
	}
	return flightplan.TurnCoordinated
}

// planSpans runs one per-span under-deck planning task per span, bounded
// to at most P concurrent workers (§5).
func planSpans(ctx context.Context, model *bridgemodel.BridgeModel, cs bridgemodel.CrossSection2D,
	p underdeck.Params, cancel *CancelToken, maxWorkers int) ([]*flightplan.Route, error) {

	if maxWorkers < 1 {
		maxWorkers = 1
	}
	crossing := make([]*flightplan.Route, len(model.Spans))
	axial := make([]*flightplan.Route, len(model.Spans))

	g, _ := errgroup.WithContext(ctx)
	g.SetLimit(maxWorkers)
	for i, span := range model.Spans {
		i, span := i, span
		g.Go(func() error {
			if cancel.Cancelled() {
				return errs.New(errs.Cancelled, "underdeck", fmt.Sprintf("span_%d", span.Index), "cancelled at span task start")
			}
			c, a := underdeck.PlanSpan(model.Deck, cs, span, model.PillarPrisms, p)
			crossing[i] = c
			axial[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make([]*flightplan.Route, 0, 2*len(model.Spans))
	out = append(out, crossing...)
	out = append(out, axial...)
	return out, nil
}

func overviewParams(c OverviewConfig) overview.Params {
	return overview.Params{
		LateralStandoff: c.LateralStandoff, TopStandoff: c.TopStandoff,
		ForwardOverlap: c.ForwardOverlap, SideOverlap: c.SideOverlap,
		AngleThresholdDeg: c.AngleThresholdDeg, TurnMode: c.TurnMode,
	}
}

func overviewSpacing(c OverviewConfig) overview.SpacingParams {
	return overview.SpacingParams{GSDReference: c.GSDReference, SpacingMin: c.SpacingMin, SpacingMax: c.SpacingMax}
}

func tourParams(c TransitionConfig) overview.TourParams {
	mode := overview.TransitionVThenH
	switch c.Mode {
	case "h_then_v":
		mode = overview.TransitionHThenV
	case "diagonal":
		mode = overview.TransitionDiagonal
	}
	return overview.TourParams{Mode: mode, VerticalOffset: c.VerticalOffset, HorizontalOffset: c.HorizontalOffset}
}

func underdeckParams(c UnderdeckConfig, transitionVertical float64) underdeck.Params {
	return underdeck.Params{
		VerticalClearance: c.VerticalClearance, HorizontalClearance: c.HorizontalClearance,
		SweepOverlap: c.SweepOverlap, AxialSpacing: c.AxialSpacing, TransitionVertical: transitionVertical,
	}
}
