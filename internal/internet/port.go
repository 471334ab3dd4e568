package internet

// Kind distinguishes what a node's redex rules look at; every kind has
// exactly three ports (index 0 is always principal), except KindVal,
// KindTyp and KindNumSort, which only ever use port 0.
type Kind uint8

const (
	KindNod      Kind = iota // constructor/duplicator; payload is its label
	KindOp1                  // unary-pending operator; payload is the op code
	KindOp2                  // binary operator; payload is the op code
	KindIte                  // numeric conditional
	KindVal                  // a machine-word literal occupying a port
	KindTyp                  // erased placeholder for the sort of types
	KindNumSort              // erased placeholder for the sort of numerals
)

// Port addresses one of a node's three ports: node index * 3 + port
// index (0 = principal, 1 = aux1, 2 = aux2).
type Port uint32

// NilPort marks a port with no partner yet, valid only transiently
// during construction; a fully wired net has no NilPort anywhere.
const NilPort Port = 0xFFFFFFFF

func portOf(node uint32, idx uint8) Port {
	return Port(node*3 + uint32(idx))
}

func (p Port) node() uint32 { return uint32(p) / 3 }

func (p Port) index() uint8 { return uint8(uint32(p) % 3) }
