// pkg/pipeline/snapshot.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package pipeline

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"sort"

	"github.com/ErToBar2/ORBIT-sub001/pkg/util"
)

// snapshotHash computes a stable hash over the resolved inputs and
// config (§4.8). Map-typed fields (the flight speed map) are encoded
// through util.OrderedMap with explicitly sorted keys so the hash
// never depends on Go's randomized map iteration order.
func snapshotHash(req CompileRequest) string {
	m := util.NewOrderedMap()
	m.Set("crs_id", req.CRSId)
	m.Set("crs_origin_lat", req.CRSOriginLat)
	m.Set("crs_origin_lon", req.CRSOriginLon)
	m.Set("trajectory_points", req.TrajectoryPoints)
	m.Set("trajectory_heights", req.TrajectoryHeights)
	m.Set("pillar_pairs", req.PillarPairs)
	m.Set("abutments", req.Abutments)
	m.Set("pillar_height_hints", req.PillarHeightHints)
	m.Set("cross_section_2d", req.CrossSection2D)
	m.Set("safety_zones", req.SafetyZones)
	m.Set("config", orderedConfig(req.Config))
	m.SortKeys(sort.Strings)

	b, err := json.Marshal(m)
	if err != nil {
		// Encoding a snapshot of well-typed in-memory data cannot fail;
		// a failure here is a bug in the snapshot shape itself.
		panic(err)
	}
	sum := sha256.Sum256(b)
	return hex.EncodeToString(sum[:])
}

// orderedConfig re-encodes Config's one map-typed field (the flight
// speed map, keyed by Tag) through an OrderedMap so its keys are
// sorted ahead of hashing.
func orderedConfig(c Config) *util.OrderedMap {
	m := util.NewOrderedMap()
	m.Set("overview", c.Overview)
	m.Set("transition", c.Transition)
	m.Set("underdeck", c.Underdeck)
	m.Set("safety", c.Safety)

	post := util.NewOrderedMap()
	post.Set("max_segment_length", c.Post.MaxSegmentLength)
	post.Set("altitude_floor", c.Post.AltitudeFloor)
	post.Set("corner_angle_deg", c.Post.CornerAngleDeg)
	post.Set("corner_speed", c.Post.CornerSpeed)

	speeds := util.NewOrderedMap()
	for tag, speed := range c.Post.FlightSpeedMap {
		speeds.Set(string(tag), speed)
	}
	speeds.SortKeys(sort.Strings)
	post.Set("flight_speed_map", speeds)
	post.SortKeys(sort.Strings)
	m.Set("post", post)

	m.Set("export", c.Export)
	m.Set("assembly", c.Assembly)
	m.Set("max_span_workers", c.MaxSpanWorkers)
	m.SortKeys(sort.Strings)
	return m
}
