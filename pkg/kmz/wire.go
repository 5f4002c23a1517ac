// pkg/kmz/wire.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

package kmz

import "encoding/xml"

// The struct tags below spell the WPML element names with their
// literal "wpml:" prefix, matching the flat-namespace convention the
// reference writer used. encoding/xml writes a colon-bearing tag name
// literally; on decode it would resolve the prefix instead, so Read
// feeds the decoder tokens that keep the prefix (prefixedTokens in
// kmz.go) and these tags match.

type kmlDocument struct {
	XMLName  xml.Name `xml:"kml"`
	Xmlns    string   `xml:"xmlns,attr"`
	XmlnsWpml string  `xml:"xmlns:wpml,attr"`
	Document document `xml:"Document"`
}

type document struct {
	CreateTime    string        `xml:"wpml:createTime"`
	UpdateTime    string        `xml:"wpml:updateTime"`
	MissionConfig missionConfig `xml:"wpml:missionConfig"`
	Folder        kmlFolder     `xml:"Folder"`
}

type missionConfig struct {
	FlyToWaylineMode        string      `xml:"wpml:flyToWaylineMode"`
	FinishAction            string      `xml:"wpml:finishAction"`
	ExitOnRCLost            string      `xml:"wpml:exitOnRCLost"`
	TakeOffRefPoint         string      `xml:"wpml:takeOffRefPoint"`
	TakeOffRefPointAGLHeight string     `xml:"wpml:takeOffRefPointAGLHeight"`
	TakeOffSecurityHeight   string      `xml:"wpml:takeOffSecurityHeight"`
	GlobalTransitionalSpeed string      `xml:"wpml:globalTransitionalSpeed"`
	DroneInfo               droneInfo   `xml:"wpml:droneInfo"`
	PayloadInfo             payloadInfo `xml:"wpml:payloadInfo"`
}

type droneInfo struct {
	DroneEnumValue    string `xml:"wpml:droneEnumValue"`
	DroneSubEnumValue string `xml:"wpml:droneSubEnumValue"`
}

type payloadInfo struct {
	PayloadEnumValue     string `xml:"wpml:payloadEnumValue"`
	PayloadSubEnumValue  string `xml:"wpml:payloadSubEnumValue"`
	PayloadPositionIndex string `xml:"wpml:payloadPositionIndex"`
}

type kmlFolder struct {
	TemplateType               string                      `xml:"wpml:templateType"`
	TemplateId                 string                      `xml:"wpml:templateId"`
	WaylineCoordinateSysParam  waylineCoordinateSysParam   `xml:"wpml:waylineCoordinateSysParam"`
	AutoFlightSpeed            string                      `xml:"wpml:autoFlightSpeed"`
	GlobalHeight               string                      `xml:"wpml:globalHeight"`
	CaliFlightEnable           string                      `xml:"wpml:caliFlightEnable"`
	GimbalPitchMode            string                      `xml:"wpml:gimbalPitchMode"`
	GlobalWaypointHeadingParam globalWaypointHeadingParam  `xml:"wpml:globalWaypointHeadingParam"`
	GlobalWaypointTurnMode     string                      `xml:"wpml:globalWaypointTurnMode"`
	GlobalUseStraightLine      string                      `xml:"wpml:globalUseStraightLine"`
	Placemarks                 []placemark                `xml:"Placemark"`
	PayloadParam               payloadParam                `xml:"wpml:payloadParam"`
}

type waylineCoordinateSysParam struct {
	CoordinateMode  string `xml:"wpml:coordinateMode"`
	HeightMode      string `xml:"wpml:heightMode"`
	PositioningType string `xml:"wpml:positioningType"`
}

type globalWaypointHeadingParam struct {
	WaypointHeadingMode     string `xml:"wpml:waypointHeadingMode"`
	WaypointHeadingAngle    string `xml:"wpml:waypointHeadingAngle"`
	WaypointPoiPoint        string `xml:"wpml:waypointPoiPoint"`
	WaypointHeadingPoiIndex string `xml:"wpml:waypointHeadingPoiIndex"`
}

type payloadParam struct {
	PayloadPositionIndex string `xml:"wpml:payloadPositionIndex"`
	MeteringMode         string `xml:"wpml:meteringMode"`
	DewarpingEnable      string `xml:"wpml:dewarpingEnable"`
	ReturnMode           string `xml:"wpml:returnMode"`
	SamplingRate         string `xml:"wpml:samplingRate"`
	ScanningMode         string `xml:"wpml:scanningMode"`
	ModelColoringEnable  string `xml:"wpml:modelColoringEnable"`
}

type placemark struct {
	Point                 point  `xml:"Point"`
	Index                 string `xml:"wpml:index"`
	EllipsoidHeight       string `xml:"wpml:ellipsoidHeight"`
	Height                string `xml:"wpml:height"`
	UseGlobalHeight       string `xml:"wpml:useGlobalHeight"`
	UseGlobalSpeed        string `xml:"wpml:useGlobalSpeed"`
	WaypointSpeed         string `xml:"wpml:waypointSpeed"`
	UseGlobalHeadingParam string `xml:"wpml:useGlobalHeadingParam"`
	UseGlobalTurnParam    string `xml:"wpml:useGlobalTurnParam"`
	UseStraightLine       string `xml:"wpml:useStraightLine"`
	IsRisky               string `xml:"wpml:isRisky"`
}

type point struct {
	Coordinates string `xml:"coordinates"`
}
