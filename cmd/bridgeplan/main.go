// cmd/bridgeplan/main.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// bridgeplan is the optional CLI collaborator (§6): it compiles a
// bridge inspection flight plan from a config and an inputs document
// and writes the resulting routes and diagnostics to an output
// directory.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ErToBar2/ORBIT-sub001/pkg/errs"
	"github.com/ErToBar2/ORBIT-sub001/pkg/flightplan"
	"github.com/ErToBar2/ORBIT-sub001/pkg/kmz"
	"github.com/ErToBar2/ORBIT-sub001/pkg/log"
	"github.com/ErToBar2/ORBIT-sub001/pkg/pipeline"
	"github.com/ErToBar2/ORBIT-sub001/pkg/projectstate"
	"github.com/ErToBar2/ORBIT-sub001/pkg/util"
)

const (
	exitOK                = 0
	exitUnexpectedFailure = 1
	exitValidationSurfaced = 2
	exitInputError        = 3
	exitCancelled         = 4
)

var outDir = flag.String("out", ".", "output directory for routes, diagnostics, and project state")

func main() {
	flag.Parse()
	args := flag.Args()
	if len(args) > 3 {
		// Flags may also follow the positional arguments.
		flag.CommandLine.Parse(args[3:])
		args = append(args[:3:3], flag.Args()...)
	}
	if len(args) != 3 || args[0] != "compile" {
		fmt.Fprintf(os.Stderr, "usage: bridgeplan compile <config.json> <inputs.json> -out <dir>\n")
		os.Exit(exitUnexpectedFailure)
	}

	os.Exit(run(args[1], args[2], *outDir))
}

func run(configPath, inputsPath, outDir string) int {
	lg := log.New(false, "info", outDir)

	cfg, err := loadConfig(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", configPath, err)
		return exitInputError
	}

	req, err := loadInputs(inputsPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", inputsPath, err)
		return exitInputError
	}
	req.Config = cfg

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		fmt.Fprintf(os.Stderr, "%s: %v\n", outDir, err)
		return exitUnexpectedFailure
	}

	resp, err := pipeline.Compile(context.Background(), lg, req, pipeline.NewCancelToken())
	if err != nil {
		return handleCompileError(err)
	}

	if err := writeOutputs(outDir, req, resp); err != nil {
		fmt.Fprintf(os.Stderr, "write outputs: %v\n", err)
		return exitUnexpectedFailure
	}

	for _, report := range resp.ValidationReport {
		if report.HasFindings() {
			return exitValidationSurfaced
		}
	}
	return exitOK
}

func handleCompileError(err error) int {
	var ce *errs.CompileError
	if !errors.As(err, &ce) {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		return exitUnexpectedFailure
	}
	fmt.Fprintf(os.Stderr, "%v\n", ce)
	switch ce.Kind {
	case errs.SafetyUnresolved:
		return exitValidationSurfaced
	case errs.InputInvalid, errs.CoordinateError, errs.GeometryDegenerate:
		return exitInputError
	case errs.Cancelled:
		return exitCancelled
	default:
		return exitUnexpectedFailure
	}
}

func loadConfig(path string) (pipeline.Config, error) {
	cfg := pipeline.DefaultConfig()
	f, err := os.Open(path)
	if err != nil {
		return cfg, err
	}
	defer f.Close()
	if err := util.UnmarshalJSON(f, &cfg); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func loadInputs(path string) (pipeline.CompileRequest, error) {
	var req pipeline.CompileRequest
	f, err := os.Open(path)
	if err != nil {
		return req, err
	}
	defer f.Close()
	if err := util.UnmarshalJSON(f, &req); err != nil {
		return req, err
	}
	return req, nil
}

func writeOutputs(outDir string, req pipeline.CompileRequest, resp *pipeline.CompileResponse) error {
	routesPath := filepath.Join(outDir, "routes.json")
	rf, err := os.Create(routesPath)
	if err != nil {
		return err
	}
	defer rf.Close()
	enc := json.NewEncoder(rf)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		return err
	}

	state := projectstate.State{
		Inputs: req, Config: req.Config,
		CRSChoice:    projectstate.CRSChoice{Id: req.CRSId, OriginLat: req.CRSOriginLat, OriginLon: req.CRSOriginLon},
		SnapshotHash: resp.SnapshotHash,
	}
	if err := projectstate.SaveFile(filepath.Join(outDir, "project_state.json"), state); err != nil {
		return err
	}

	for _, r := range resp.Routes {
		wps := resp.Exported[r.ID]
		if len(wps) == 0 {
			continue
		}
		mc := kmz.MissionConfig{
			FlyToWaylineMode: "safely", FinishAction: "goHome", ExitOnRCLost: "goContinue",
			TakeoffRefPointLon: wps[0].Lon, TakeoffRefPointLat: wps[0].Lat,
			TakeoffRefPointAGLHeight: wps[0].AltOrRel,
			TakeoffSecurityHeight:    req.Config.Export.TakeoffSecurityHeight,
			GlobalTransitionalSpeed:  req.Config.Export.GlobalSpeed,
			HeightMode:               req.Config.Export.HeightMode,
			GlobalWaypointTurnMode:   globalTurnMode(r.Class),
			AutoFlightSpeed:          req.Config.Export.GlobalSpeed,
		}
		kf, err := os.Create(filepath.Join(outDir, r.ID+".kmz"))
		if err != nil {
			return err
		}
		err = kmz.Write(kf, wps, mc)
		kf.Close()
		if err != nil {
			return err
		}
	}
	return nil
}

func globalTurnMode(class flightplan.RouteClass) string {
	if class == flightplan.ClassOverview {
		return "coordinateTurn"
	}
	return "toPointAndStopWithDiscontinuityCurvature"
}
