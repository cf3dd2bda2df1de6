package frame

import (
	"fmt"
	"strings"
)

// OperationType identifies a roll-former tool operation
type OperationType int

const (
	// OpDimple presses a fastener dimple through the web.
	OpDimple OperationType = iota
	// OpEndTruss forms a member end for a truss connection.
	OpEndTruss
	// OpLipCut cuts the lips so another member can enter.
	OpLipCut
	// OpNotch cuts the flange to clear a crossing member.
	OpNotch
	// OpSwage narrows the section so it nests inside another member.
	OpSwage
	// OpBolt punches a bolt hole at a face-to-face joint.
	OpBolt
	// OpServiceHole punches a service hole through the web.
	OpServiceHole
	// OpWeb punches a web hole next to a face-to-face bolt.
	OpWeb
)

var operationNames = [...]string{
	OpDimple:      "DIMPLE",
	OpEndTruss:    "END_TRUSS",
	OpLipCut:      "LIP_CUT",
	OpNotch:       "NOTCH",
	OpSwage:       "SWAGE",
	OpBolt:        "BOLT",
	OpServiceHole: "SERVICE_HOLE",
	OpWeb:         "WEB",
}

// OperationTypes lists every operation type in tag order
func OperationTypes() []OperationType {
	types := make([]OperationType, len(operationNames))
	for i := range operationNames {
		types[i] = OperationType(i)
	}
	return types
}

// String returns the machine tag of the operation type
func (t OperationType) String() string {
	if t < 0 || int(t) >= len(operationNames) {
		return fmt.Sprintf("OperationType(%d)", int(t))
	}
	return operationNames[t]
}

// ParseOperationType maps a machine tag back to its type
func ParseOperationType(tag string) (OperationType, error) {
	tag = strings.ToUpper(strings.TrimSpace(tag))
	for i, name := range operationNames {
		if name == tag {
			return OperationType(i), nil
		}
	}
	return 0, fmt.Errorf("unknown operation type %q", tag)
}

// Operation is a tool event at a distance from the start of a member's axis
type Operation struct {
	Type     OperationType
	Location float64
}

func (o Operation) String() string {
	return fmt.Sprintf("%s@%.4f", o.Type, o.Location)
}
