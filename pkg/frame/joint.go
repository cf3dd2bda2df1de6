package frame

import "fmt"

// JointType classifies how two members meet.
// Lower values are stronger constraints and are discovered first.
type JointType int

const (
	// FaceToFace joints have webs lapping back to back.
	FaceToFace JointType = iota
	// Branch joints have both members ending at a shared point.
	Branch
	// T joints have one member ending on the side of the other.
	T
	// PassThrough joints have both members continuing past the crossing.
	PassThrough
	// Invalid joints have inconsistent orientation and are never resolved.
	Invalid
)

var jointNames = [...]string{
	FaceToFace:  "FaceToFace",
	Branch:      "Branch",
	T:           "T",
	PassThrough: "PassThrough",
	Invalid:     "Invalid",
}

// JointTypes lists every joint type in resolution order, Invalid last
func JointTypes() []JointType {
	return []JointType{FaceToFace, Branch, T, PassThrough, Invalid}
}

func (t JointType) String() string {
	if t < 0 || int(t) >= len(jointNames) {
		return fmt.Sprintf("JointType(%d)", int(t))
	}
	return jointNames[t]
}

// Joint relates exactly two members by index
type Joint struct {
	A, B int
	Type JointType
}

// NewJoint creates a joint between members a and b
func NewJoint(a, b int, t JointType) Joint {
	return Joint{A: a, B: b, Type: t}
}

// Equal reports whether both joints connect the same unordered pair
func (j Joint) Equal(other Joint) bool {
	return (j.A == other.A && j.B == other.B) || (j.A == other.B && j.B == other.A)
}

// Has reports whether member index participates in the joint
func (j Joint) Has(index int) bool {
	return j.A == index || j.B == index
}

// Other returns the member opposite index, or -1 if index is not part of the joint
func (j Joint) Other(index int) int {
	switch index {
	case j.A:
		return j.B
	case j.B:
		return j.A
	}
	return -1
}

func (j Joint) String() string {
	return fmt.Sprintf("%s(%d,%d)", j.Type, j.A, j.B)
}
