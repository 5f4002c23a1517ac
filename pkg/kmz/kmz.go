// pkg/kmz/kmz.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package kmz writes and reads the vendor DJI WPML KMZ wire format
// documented in §6: a zipped container holding a single WPML-namespaced
// KML document (missionConfig block, one Folder of waypoint
// Placemarks). This is a conventional serialization layer, not a GUI
// tool — the wire format is specified at the field level and the core
// guarantees every field has a source in a Route/Config (§6).
package kmz

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/flate"

	"github.com/ErToBar2/ORBIT-sub001/pkg/flightplan"
)

const wplmNamespace = "http://www.dji.com/wpmz/1.0.3"
const kmlNamespace = "http://www.opengis.net/kml/2.2"
const kmlEntryName = "wpmz/template.kml"

func init() {
	zip.RegisterCompressor(zip.Deflate, func(w io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(w, flate.BestCompression)
	})
	zip.RegisterDecompressor(zip.Deflate, func(r io.Reader) io.ReadCloser {
		return flate.NewReader(r)
	})
}

// MissionConfig carries the mission-wide fields of the missionConfig
// and Folder blocks that are not already present per-waypoint (§6).
type MissionConfig struct {
	FlyToWaylineMode        string
	FinishAction            string
	ExitOnRCLost            string
	TakeoffRefPointLon      float64
	TakeoffRefPointLat      float64
	TakeoffRefPointAGLHeight float64
	TakeoffSecurityHeight   float64
	GlobalTransitionalSpeed float64
	HeightMode              flightplan.HeightMode
	GlobalWaypointTurnMode  string // "coordinateTurn" | "toPointAndStopWithDiscontinuityCurvature"
	AutoFlightSpeed         float64
}

// djiHeightMode maps the core's height mode to the WPML wire enum.
func djiHeightMode(h flightplan.HeightMode) string {
	switch h {
	case flightplan.HeightEGM96:
		return "EGM96"
	case flightplan.HeightRelativeToStart:
		return "relativeToStartPoint"
	default:
		return "WGS84"
	}
}

func fromDjiHeightMode(s string) flightplan.HeightMode {
	switch s {
	case "EGM96":
		return flightplan.HeightEGM96
	case "relativeToStartPoint":
		return flightplan.HeightRelativeToStart
	default:
		return flightplan.HeightEllipsoid
	}
}

// Write serializes one route's exported waypoints into a KMZ file
// under the documented WPML field names (§6).
func Write(w io.Writer, wps []flightplan.ExportedWaypoint, cfg MissionConfig) error {
	doc := buildDocument(wps, cfg)
	body, err := xml.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("kmz: marshal kml document: %w", err)
	}
	body = append([]byte(xml.Header), body...)

	zw := zip.NewWriter(w)
	entry, err := zw.Create(kmlEntryName)
	if err != nil {
		return fmt.Errorf("kmz: create zip entry: %w", err)
	}
	if _, err := entry.Write(body); err != nil {
		return fmt.Errorf("kmz: write kml body: %w", err)
	}
	return zw.Close()
}

// Read decodes a KMZ file back into its exported waypoints and the
// mission config it was written with (§8 round-trip invariant).
func Read(r io.ReaderAt, size int64) ([]flightplan.ExportedWaypoint, MissionConfig, error) {
	zr, err := zip.NewReader(r, size)
	if err != nil {
		return nil, MissionConfig{}, fmt.Errorf("kmz: open zip: %w", err)
	}
	var f io.ReadCloser
	for _, zf := range zr.File {
		if zf.Name == kmlEntryName {
			f, err = zf.Open()
			if err != nil {
				return nil, MissionConfig{}, fmt.Errorf("kmz: open kml entry: %w", err)
			}
			break
		}
	}
	if f == nil {
		return nil, MissionConfig{}, fmt.Errorf("kmz: missing %s entry", kmlEntryName)
	}
	defer f.Close()

	var doc kmlDocument
	if err := xml.NewTokenDecoder(prefixedTokens{xml.NewDecoder(f)}).Decode(&doc); err != nil {
		return nil, MissionConfig{}, fmt.Errorf("kmz: decode kml document: %w", err)
	}
	return parseDocument(doc)
}

// prefixedTokens yields raw tokens with each element's prefix kept in
// its name ("wpml:index"), so decoding matches the tags in wire.go.
type prefixedTokens struct{ d *xml.Decoder }

func (p prefixedTokens) Token() (xml.Token, error) {
	t, err := p.d.RawToken()
	switch el := t.(type) {
	case xml.StartElement:
		el.Name = xml.Name{Local: strings.TrimPrefix(el.Name.Space+":"+el.Name.Local, ":")}
		return el, err
	case xml.EndElement:
		el.Name = xml.Name{Local: strings.TrimPrefix(el.Name.Space+":"+el.Name.Local, ":")}
		return el, err
	}
	return t, err
}

func buildDocument(wps []flightplan.ExportedWaypoint, cfg MissionConfig) kmlDocument {
	mc := missionConfig{
		FlyToWaylineMode:        cfg.FlyToWaylineMode,
		FinishAction:            cfg.FinishAction,
		ExitOnRCLost:            cfg.ExitOnRCLost,
		TakeOffRefPoint:         fmt.Sprintf("%.8f,%.8f", cfg.TakeoffRefPointLon, cfg.TakeoffRefPointLat),
		TakeOffRefPointAGLHeight: formatFloat(cfg.TakeoffRefPointAGLHeight),
		TakeOffSecurityHeight:   formatFloat(cfg.TakeoffSecurityHeight),
		GlobalTransitionalSpeed: formatFloat(cfg.GlobalTransitionalSpeed),
		DroneInfo:               droneInfo{DroneEnumValue: "77", DroneSubEnumValue: "0"},
		PayloadInfo:             payloadInfo{PayloadEnumValue: "66", PayloadSubEnumValue: "0", PayloadPositionIndex: "0"},
	}

	folder := kmlFolder{
		TemplateType: "waypoint",
		TemplateId:   "0",
		WaylineCoordinateSysParam: waylineCoordinateSysParam{
			CoordinateMode: "WGS84",
			HeightMode:     djiHeightMode(cfg.HeightMode),
			PositioningType: "GPS",
		},
		AutoFlightSpeed: formatFloat(cfg.AutoFlightSpeed),
		GlobalHeight:    "100",
		CaliFlightEnable: "0",
		GimbalPitchMode: "manual",
		GlobalWaypointHeadingParam: globalWaypointHeadingParam{
			WaypointHeadingMode:     "manually",
			WaypointHeadingAngle:    "0",
			WaypointPoiPoint:        "0.000000,0.000000,0.000000",
			WaypointHeadingPoiIndex: "0",
		},
		GlobalWaypointTurnMode: cfg.GlobalWaypointTurnMode,
		GlobalUseStraightLine:  "1",
		PayloadParam: payloadParam{
			PayloadPositionIndex: "0",
			MeteringMode:         "average",
			DewarpingEnable:      "0",
			ReturnMode:           "singleReturnStrongest",
			SamplingRate:         "240000",
			ScanningMode:         "nonRepetitive",
			ModelColoringEnable:  "0",
		},
	}

	for i, wp := range wps {
		ellipsoidHeight := wp.AltOrRel
		if cfg.HeightMode == flightplan.HeightEGM96 {
			ellipsoidHeight = wp.AltOrRel + 44.8
		}
		folder.Placemarks = append(folder.Placemarks, placemark{
			Point:           point{Coordinates: fmt.Sprintf("%.8f,%.8f,%.3f", wp.Lon, wp.Lat, wp.AltOrRel)},
			Index:           strconv.Itoa(i),
			EllipsoidHeight: formatFloat(ellipsoidHeight),
			Height:          formatFloat(wp.AltOrRel),
			UseGlobalHeight: "0",
			UseGlobalSpeed:  "0",
			WaypointSpeed:   formatFloat(wp.Speed),
			UseGlobalHeadingParam: "1",
			UseGlobalTurnParam:    "1",
			UseStraightLine:       "1",
			IsRisky:               "0",
		})
	}

	return kmlDocument{
		Xmlns:     kmlNamespace,
		XmlnsWpml: wplmNamespace,
		Document: document{
			MissionConfig: mc,
			Folder:        folder,
		},
	}
}

func formatFloat(f float64) string { return strconv.FormatFloat(f, 'f', -1, 64) }

func parseDocument(doc kmlDocument) ([]flightplan.ExportedWaypoint, MissionConfig, error) {
	mc := doc.Document.MissionConfig
	lon, lat := parseTakeoffRefPoint(mc.TakeOffRefPoint)
	cfg := MissionConfig{
		FlyToWaylineMode:        mc.FlyToWaylineMode,
		FinishAction:            mc.FinishAction,
		ExitOnRCLost:            mc.ExitOnRCLost,
		TakeoffRefPointLon:      lon,
		TakeoffRefPointLat:      lat,
		TakeoffRefPointAGLHeight: mustFloat(mc.TakeOffRefPointAGLHeight),
		TakeoffSecurityHeight:   mustFloat(mc.TakeOffSecurityHeight),
		GlobalTransitionalSpeed: mustFloat(mc.GlobalTransitionalSpeed),
		HeightMode:              fromDjiHeightMode(doc.Document.Folder.WaylineCoordinateSysParam.HeightMode),
		GlobalWaypointTurnMode:  doc.Document.Folder.GlobalWaypointTurnMode,
		AutoFlightSpeed:         mustFloat(doc.Document.Folder.AutoFlightSpeed),
	}

	wps := make([]flightplan.ExportedWaypoint, len(doc.Document.Folder.Placemarks))
	for i, pm := range doc.Document.Folder.Placemarks {
		lon, lat, alt, err := parseCoordinates(pm.Point.Coordinates)
		if err != nil {
			return nil, MissionConfig{}, fmt.Errorf("kmz: placemark %d: %w", i, err)
		}
		wps[i] = flightplan.ExportedWaypoint{
			Lon: lon, Lat: lat, AltOrRel: alt,
			Speed: mustFloat(pm.WaypointSpeed),
		}
	}
	return wps, cfg, nil
}

func parseTakeoffRefPoint(s string) (lon, lat float64) {
	parts := strings.SplitN(s, ",", 2)
	if len(parts) != 2 {
		return 0, 0
	}
	lon = mustFloat(parts[0])
	lat = mustFloat(parts[1])
	return
}

func parseCoordinates(s string) (lon, lat, alt float64, err error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return 0, 0, 0, fmt.Errorf("expected lon,lat,alt, got %q", s)
	}
	lon, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, 0, err
	}
	lat, err = strconv.ParseFloat(parts[1], 64)
	if err != nil {
		return 0, 0, 0, err
	}
	alt, err = strconv.ParseFloat(parts[2], 64)
	if err != nil {
		return 0, 0, 0, err
	}
	return lon, lat, alt, nil
}

func mustFloat(s string) float64 {
	f, _ := strconv.ParseFloat(s, 64)
	return f
}
