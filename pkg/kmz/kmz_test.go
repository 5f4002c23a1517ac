// pkg/kmz/kmz_test.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package kmz

import (
	"bytes"
	"testing"

	"github.com/ErToBar2/ORBIT-sub001/pkg/flightplan"
)

func TestWriteReadRoundTrip(t *testing.T) {
	wps := []flightplan.ExportedWaypoint{
		{Lat: 50.851234, Lon: 4.351234, AltOrRel: 42.5, Speed: 6.5, Tag: flightplan.TagCruise},
		{Lat: 50.852345, Lon: 4.352345, AltOrRel: 44.2, Speed: 3.0, Tag: flightplan.TagInspect},
	}
	cfg := MissionConfig{
		FlyToWaylineMode:        "safely",
		FinishAction:            "goHome",
		ExitOnRCLost:            "executeLostAction",
		TakeoffRefPointLon:      4.35,
		TakeoffRefPointLat:      50.85,
		TakeoffRefPointAGLHeight: 0,
		TakeoffSecurityHeight:   20,
		GlobalTransitionalSpeed: 8,
		HeightMode:              flightplan.HeightEGM96,
		GlobalWaypointTurnMode:  "coordinateTurn",
		AutoFlightSpeed:         5,
	}

	var buf bytes.Buffer
	if err := Write(&buf, wps, cfg); err != nil {
		t.Fatalf("Write: %v", err)
	}

	got, gotCfg, err := Read(bytes.NewReader(buf.Bytes()), int64(buf.Len()))
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if len(got) != len(wps) {
		t.Fatalf("round trip waypoint count = %d, want %d", len(got), len(wps))
	}
	for i, want := range wps {
		if d := got[i].Lat - want.Lat; d*d > 1e-12 {
			t.Errorf("waypoint %d lat = %v, want %v", i, got[i].Lat, want.Lat)
		}
		if d := got[i].Lon - want.Lon; d*d > 1e-12 {
			t.Errorf("waypoint %d lon = %v, want %v", i, got[i].Lon, want.Lon)
		}
		if got[i].AltOrRel != want.AltOrRel {
			t.Errorf("waypoint %d altitude = %v, want %v", i, got[i].AltOrRel, want.AltOrRel)
		}
		if got[i].Speed != want.Speed {
			t.Errorf("waypoint %d speed = %v, want %v", i, got[i].Speed, want.Speed)
		}
	}
	if gotCfg.HeightMode != cfg.HeightMode {
		t.Errorf("height mode = %v, want %v", gotCfg.HeightMode, cfg.HeightMode)
	}
	if gotCfg.GlobalWaypointTurnMode != cfg.GlobalWaypointTurnMode {
		t.Errorf("turn mode = %v, want %v", gotCfg.GlobalWaypointTurnMode, cfg.GlobalWaypointTurnMode)
	}
	if gotCfg.TakeoffSecurityHeight != cfg.TakeoffSecurityHeight {
		t.Errorf("takeoff security height = %v, want %v", gotCfg.TakeoffSecurityHeight, cfg.TakeoffSecurityHeight)
	}
}

func TestDjiHeightModeRoundTrip(t *testing.T) {
	modes := []flightplan.HeightMode{flightplan.HeightEllipsoid, flightplan.HeightEGM96, flightplan.HeightRelativeToStart}
	for _, m := range modes {
		if got := fromDjiHeightMode(djiHeightMode(m)); got != m {
			t.Errorf("height mode round trip: %v -> %v -> %v", m, djiHeightMode(m), got)
		}
	}
}
