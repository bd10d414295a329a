package abi

import (
	"testing"

	"github.com/wippyai/physx-binding/errors"
	"github.com/wippyai/physx-binding/layout"
)

func TestRecords_SizedByLayout(t *testing.T) {
	mem := newGuestMemory(t)
	size := mem.Size()

	pose := layout.Transformf{Q: layout.Quatf{X: 0, Y: 0.6, Z: 0, W: 0.8}, P: layout.Vec3f{X: 1, Y: 2, Z: 3}}
	plane := layout.Planef{N: layout.Vec3f{Y: 1}, D: -2}

	tests := []struct {
		name  string
		rec   layout.Record
		write func(ptr uint32) error
		read  func(ptr uint32) error
	}{
		{
			name:  "vec3",
			rec:   layout.RecordVec3,
			write: func(ptr uint32) error { return writeVec3(mem, ptr, pose.P) },
			read: func(ptr uint32) error {
				v, err := readVec3(mem, ptr)
				if err == nil && v != pose.P {
					t.Errorf("vec3 = %v, want %v", v, pose.P)
				}
				return err
			},
		},
		{
			name:  "transform",
			rec:   layout.RecordTransform,
			write: func(ptr uint32) error { return writeTransform(mem, ptr, pose) },
			read: func(ptr uint32) error {
				v, err := readTransform(mem, ptr)
				if err == nil && v != pose {
					t.Errorf("transform = %v, want %v", v, pose)
				}
				return err
			},
		},
		{
			name:  "plane",
			rec:   layout.RecordPlane,
			write: func(ptr uint32) error { return writeRecord(mem, ptr, layout.RecordPlane, plane) },
			read: func(ptr uint32) error {
				v, err := readPlane(mem, ptr)
				if err == nil && v != plane {
					t.Errorf("plane = %v, want %v", v, plane)
				}
				return err
			},
		},
		{
			name:  "mat44",
			rec:   layout.RecordMat44,
			write: func(ptr uint32) error { return writeMat44(mem, ptr, pose.Mat44()) },
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			last := size - layout.Of(tt.rec).Size
			if err := tt.write(last); err != nil {
				t.Fatalf("write at last slot: %v", err)
			}
			if tt.read != nil {
				if err := tt.read(last); err != nil {
					t.Fatalf("read at last slot: %v", err)
				}
			}

			if err := tt.write(last + 1); !errors.IsKind(err, errors.KindOutOfBounds) {
				t.Errorf("write past end = %v, want out_of_bounds", err)
			}
			if tt.read != nil {
				if err := tt.read(last + 1); !errors.IsKind(err, errors.KindOutOfBounds) {
					t.Errorf("read past end = %v, want out_of_bounds", err)
				}
			}
		})
	}
}
