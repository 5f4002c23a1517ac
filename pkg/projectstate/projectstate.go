// pkg/projectstate/projectstate.go
// Copyright(c) 2022-2024 vice contributors, licensed under the GNU Public License, Version 3.
// SPDX: GPL-3.0-only

// Package projectstate persists the single project_state JSON document
// (§6): inputs, resolved config, CRS choice, and the snapshot hash a
// compilation produced. No other persistence is required by the core.
package projectstate

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/ErToBar2/ORBIT-sub001/pkg/pipeline"
	"github.com/ErToBar2/ORBIT-sub001/pkg/util"
)

// CRSChoice records the CRS a project was compiled against.
type CRSChoice struct {
	Id        string
	OriginLat float64
	OriginLon float64
}

// State is the persisted project_state document (§6).
type State struct {
	Inputs       pipeline.CompileRequest
	Config       pipeline.Config
	CRSChoice    CRSChoice
	SnapshotHash string
}

// Load reads and type-checks a project_state document from r.
func Load(r io.Reader) (State, error) {
	var s State
	if err := util.UnmarshalJSON(r, &s); err != nil {
		return State{}, fmt.Errorf("projectstate: load: %w", err)
	}
	return s, nil
}

// LoadFile opens path and loads the project_state document from it.
func LoadFile(path string) (State, error) {
	f, err := os.Open(path)
	if err != nil {
		return State{}, fmt.Errorf("projectstate: open %s: %w", path, err)
	}
	defer f.Close()
	return Load(f)
}

// Save writes s as indented JSON to w.
func Save(w io.Writer, s State) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("projectstate: save: %w", err)
	}
	return nil
}

// SaveFile writes s to path, creating or truncating it.
func SaveFile(path string, s State) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("projectstate: create %s: %w", path, err)
	}
	defer f.Close()
	return Save(f, s)
}
