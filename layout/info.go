package layout

// Record identifies a boundary record type.
type Record uint8

const (
	RecordVec3 Record = iota
	RecordVec4
	RecordQuat
	RecordTransform
	RecordMat44
	RecordPlane
)

// Byte sizes of the boundary records.
const (
	Vec3Size      = 12
	Vec4Size      = 16
	QuatSize      = 16
	TransformSize = 28
	Mat44Size     = 64
	PlaneSize     = 16
)

// Field describes one field of a record.
type Field struct {
	Name   string
	Offset uint32
	Size   uint32
}

// Info describes the size, alignment and fields of a record.
type Info struct {
	Name   string
	Fields []Field
	Size   uint32
	Align  uint32
}

var infos = [...]Info{
	RecordVec3: {
		Name: "Vec3f", Size: Vec3Size, Align: 4,
		Fields: []Field{{"x", 0, 4}, {"y", 4, 4}, {"z", 8, 4}},
	},
	RecordVec4: {
		Name: "Vec4f", Size: Vec4Size, Align: 4,
		Fields: []Field{{"x", 0, 4}, {"y", 4, 4}, {"z", 8, 4}, {"w", 12, 4}},
	},
	RecordQuat: {
		Name: "Quatf", Size: QuatSize, Align: 4,
		Fields: []Field{{"x", 0, 4}, {"y", 4, 4}, {"z", 8, 4}, {"w", 12, 4}},
	},
	RecordTransform: {
		Name: "Transformf", Size: TransformSize, Align: 4,
		Fields: []Field{{"q", 0, QuatSize}, {"p", 16, Vec3Size}},
	},
	RecordMat44: {
		Name: "Mat44f", Size: Mat44Size, Align: 4,
		Fields: []Field{{"column0", 0, 16}, {"column1", 16, 16}, {"column2", 32, 16}, {"column3", 48, 16}},
	},
	RecordPlane: {
		Name: "Planef", Size: PlaneSize, Align: 4,
		Fields: []Field{{"n", 0, Vec3Size}, {"d", 12, 4}},
	},
}

// Of returns the layout of r. Unknown records report a zero Info.
func Of(r Record) Info {
	if int(r) >= len(infos) {
		return Info{Align: 1}
	}
	return infos[r]
}

func (r Record) String() string {
	if int(r) >= len(infos) {
		return "unknown"
	}
	return infos[r].Name
}
