package snapshot

import (
	"bytes"
	"errors"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/gmlewis/voxel-editor/scene"
)

func TestSaveLoadClearCycle(t *testing.T) {
	project := scene.NewProject("Recovery Test", nil)
	first, err := project.Scene.ActivePart()
	if err != nil {
		t.Fatal(err)
	}
	first.Voxels.Set(1, 2, 3, 4)
	second, err := project.Scene.AddPart("Wheels")
	if err != nil {
		t.Fatal(err)
	}
	second.Voxels.Set(-1, 0, 0, 2)
	second.Locked = true
	if err := project.Scene.SetActivePart(second.ID); err != nil {
		t.Fatal(err)
	}

	path := filepath.Join(t.TempDir(), "recovery", FileName)
	if Exists(path) {
		t.Fatalf("snapshot exists before Write")
	}
	if err := Write(path, project); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if !Exists(path) {
		t.Fatalf("snapshot missing after Write")
	}

	loaded, err := Read(path, nil)
	if err != nil {
		t.Fatalf("Read: %v", err)
	}
	if loaded.Name != project.Name || !loaded.Created.Equal(project.Created) || loaded.Version != project.Version {
		t.Errorf("loaded project = %+v", loaded)
	}
	parts := loaded.Scene.Parts()
	if len(parts) != 2 {
		t.Fatalf("got %v parts, want 2", len(parts))
	}
	if v, ok := parts[0].Voxels.Get(1, 2, 3); !ok || v != 4 {
		t.Errorf("first part voxel = %v, %v; want 4", v, ok)
	}
	if parts[1].ID != second.ID || parts[1].Name != "Wheels" || !parts[1].Locked {
		t.Errorf("second part = %+v", parts[1])
	}
	if !reflect.DeepEqual(parts[1].Voxels.ToList(), second.Voxels.ToList()) {
		t.Errorf("second part voxels = %v", parts[1].Voxels.ToList())
	}
	if active, err := loaded.Scene.ActivePart(); err != nil || active.ID != second.ID {
		t.Errorf("active part = %v, %v; want %v", active, err, second.ID)
	}

	if err := Remove(path); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if Exists(path) {
		t.Errorf("snapshot exists after Remove")
	}
	if err := Remove(path); err != nil {
		t.Errorf("Remove of missing file: %v", err)
	}
}

func TestIncompatibleVersion(t *testing.T) {
	snap := FromProject(scene.NewProject("Old", nil))
	snap.Header.Version = Version + 1

	var buf bytes.Buffer
	if err := Encode(&buf, snap); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	if _, err := Decode(&buf); !errors.Is(err, ErrIncompatibleVersion) {
		t.Errorf("Decode err = %v, want ErrIncompatibleVersion", err)
	}
	if _, err := snap.Project(nil); !errors.Is(err, ErrIncompatibleVersion) {
		t.Errorf("Project err = %v, want ErrIncompatibleVersion", err)
	}
}

func TestCorruptVoxels(t *testing.T) {
	snap := FromProject(scene.NewProject("Bad", nil))
	snap.Parts[0].Voxels = [][]int{{1, 2, 3}}
	if _, err := snap.Project(nil); err == nil {
		t.Errorf("Project accepted a 3-value voxel row")
	}
}

func TestDecodeGarbage(t *testing.T) {
	if _, err := Decode(bytes.NewReader([]byte("not zstd"))); err == nil {
		t.Errorf("Decode accepted garbage")
	}
}
