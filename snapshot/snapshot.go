// Package snapshot saves and restores recovery snapshots of a project.
//
// A snapshot file is a zstd stream holding one JSON header line followed
// by the gob-encoded project.
package snapshot

import (
	"bufio"
	"encoding/gob"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/gmlewis/voxel-editor/scene"
	"github.com/gmlewis/voxel-editor/voxels"
	"github.com/klauspost/compress/zstd"
)

// Version is the snapshot format written by this package.
const Version = 1

// FileName is the conventional recovery snapshot name.
const FileName = "autosave_recovery.vxs"

var ErrIncompatibleVersion = errors.New("incompatible snapshot version")

type Header struct {
	Version     int       `json:"version"`
	ProjectName string    `json:"project_name"`
	Saved       time.Time `json:"saved"`
}

type ProjectV1 struct {
	Header Header

	Name           string
	Created        time.Time
	Modified       time.Time
	ProjectVersion int
	ActivePart     string
	Parts          []PartV1
}

type PartV1 struct {
	ID      string
	Name    string
	Visible bool
	Locked  bool
	Voxels  [][]int
}

// FromProject captures p. Mesh caches are not saved.
func FromProject(p *scene.Project) ProjectV1 {
	snap := ProjectV1{
		Header: Header{
			Version:     Version,
			ProjectName: p.Name,
			Saved:       time.Now().UTC().Truncate(time.Second),
		},
		Name:           p.Name,
		Created:        p.Created,
		Modified:       p.Modified,
		ProjectVersion: p.Version,
	}
	if active, err := p.Scene.ActivePart(); err == nil {
		snap.ActivePart = active.ID
	}
	for _, part := range p.Scene.Parts() {
		snap.Parts = append(snap.Parts, PartV1{
			ID:      part.ID,
			Name:    part.Name,
			Visible: part.Visible,
			Locked:  part.Locked,
			Voxels:  part.Voxels.ToList(),
		})
	}
	return snap
}

// Project rebuilds the project. New parts added later draw IDs from ids
// (a counter when nil).
func (s ProjectV1) Project(ids scene.IDGenerator) (*scene.Project, error) {
	if s.Header.Version != Version {
		return nil, fmt.Errorf("%w: %v", ErrIncompatibleVersion, s.Header.Version)
	}

	sc := scene.New(ids)
	for i, ps := range s.Parts {
		grid, err := voxels.FromList(ps.Voxels)
		if err != nil {
			return nil, fmt.Errorf("part %v (%q): %w", i, ps.ID, err)
		}
		part := &scene.Part{ID: ps.ID, Name: ps.Name, Voxels: grid, Visible: ps.Visible, Locked: ps.Locked}
		if err := sc.RestorePart(part); err != nil {
			return nil, err
		}
	}
	if len(s.Parts) == 0 {
		if _, err := sc.AddPart(scene.DefaultPartName); err != nil {
			return nil, err
		}
	}
	if s.ActivePart != "" {
		if err := sc.SetActivePart(s.ActivePart); err != nil {
			return nil, err
		}
	}

	return &scene.Project{
		Name:     s.Name,
		Created:  s.Created,
		Modified: s.Modified,
		Version:  s.ProjectVersion,
		Scene:    sc,
	}, nil
}

// Encode writes snap to w, zstd-compressed.
func Encode(w io.Writer, snap ProjectV1) error {
	enc, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}

	bw := bufio.NewWriterSize(enc, 256*1024)
	hb, err := json.Marshal(snap.Header)
	if err != nil {
		enc.Close()
		return err
	}
	if _, err := bw.Write(hb); err != nil {
		enc.Close()
		return err
	}
	if err := bw.WriteByte('\n'); err != nil {
		enc.Close()
		return err
	}
	if err := gob.NewEncoder(bw).Encode(&snap); err != nil {
		enc.Close()
		return fmt.Errorf("gob encode: %w", err)
	}
	if err := bw.Flush(); err != nil {
		enc.Close()
		return err
	}
	return enc.Close()
}

// Decode reads a snapshot written by Encode. The header line is checked
// before the body is decoded so an incompatible file fails fast.
func Decode(r io.Reader) (ProjectV1, error) {
	var snap ProjectV1
	dec, err := zstd.NewReader(r)
	if err != nil {
		return snap, err
	}
	defer dec.Close()

	br := bufio.NewReaderSize(dec, 256*1024)
	line, err := br.ReadBytes('\n')
	if err != nil {
		return snap, fmt.Errorf("read header: %w", err)
	}
	var h Header
	if err := json.Unmarshal(line, &h); err != nil {
		return snap, fmt.Errorf("parse header: %w", err)
	}
	if h.Version != Version {
		return snap, fmt.Errorf("%w: %v", ErrIncompatibleVersion, h.Version)
	}

	if err := gob.NewDecoder(br).Decode(&snap); err != nil {
		return snap, fmt.Errorf("gob decode: %w", err)
	}
	return snap, nil
}

// Write saves a snapshot of p to path, creating parent directories.
func Write(path string, p *scene.Project) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o644)
	if err != nil {
		return err
	}
	if err := Encode(f, FromProject(p)); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// Read loads the snapshot at path.
func Read(path string, ids scene.IDGenerator) (*scene.Project, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	snap, err := Decode(f)
	if err != nil {
		return nil, fmt.Errorf("%v: %w", path, err)
	}
	return snap.Project(ids)
}

// Exists reports whether a snapshot file is present at path.
func Exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Remove deletes the snapshot at path. A missing file is not an error.
func Remove(path string) error {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
