package model

import "fmt"

// TableState is the occupancy state of a dining table.
type TableState string

const (
	TableAvailable   TableState = "available"
	TableOccupied    TableState = "occupied"
	TableReserved    TableState = "reserved"
	TableMaintenance TableState = "maintenance"
)

// TableStates lists every state in board order.
var TableStates = []TableState{TableAvailable, TableOccupied, TableReserved, TableMaintenance}

var tableStateLabels = map[TableState]string{
	TableAvailable:   "disponible",
	TableOccupied:    "ocupada",
	TableReserved:    "reservada",
	TableMaintenance: "mantenimiento",
}

// Valid reports whether s is part of the table state vocabulary.
func (s TableState) Valid() bool {
	_, ok := tableStateLabels[s]
	return ok
}

// Label returns the wire label used by the API projection.
func (s TableState) Label() string {
	return tableStateLabels[s]
}

// ParseTableState accepts either the English constant or the Spanish label.
func ParseTableState(v string) (TableState, error) {
	if s := TableState(v); s.Valid() {
		return s, nil
	}
	for s, label := range tableStateLabels {
		if label == v {
			return s, nil
		}
	}
	return "", ErrInvalidTableState
}

// Table is a physical seating unit.
type Table struct {
	ID       int64      `json:"id" db:"id"`
	Number   int        `json:"number" db:"number"`
	Capacity int        `json:"capacity" db:"capacity"`
	State    TableState `json:"state" db:"state"`
}

// Name is the display name of the table.
func (t Table) Name() string {
	return fmt.Sprintf("Mesa %d", t.Number)
}

// TableRequest is the payload for creating or updating a table.
type TableRequest struct {
	Number   int    `json:"number"`
	Capacity int    `json:"capacity"`
	State    string `json:"state,omitempty"`
}

// TableStateRequest changes only the occupancy state of a table.
type TableStateRequest struct {
	State string `json:"state"`
}

// TableBoard partitions tables by occupancy state.
type TableBoard struct {
	Available   []Table `json:"mesas_disponibles"`
	Occupied    []Table `json:"mesas_ocupadas"`
	Reserved    []Table `json:"mesas_reservadas"`
	Maintenance []Table `json:"mesas_mantenimiento"`
}

// NewTableBoard buckets tables by state, preserving input order within a bucket.
func NewTableBoard(tables []Table) TableBoard {
	board := TableBoard{
		Available:   []Table{},
		Occupied:    []Table{},
		Reserved:    []Table{},
		Maintenance: []Table{},
	}
	for _, t := range tables {
		switch t.State {
		case TableAvailable:
			board.Available = append(board.Available, t)
		case TableOccupied:
			board.Occupied = append(board.Occupied, t)
		case TableReserved:
			board.Reserved = append(board.Reserved, t)
		case TableMaintenance:
			board.Maintenance = append(board.Maintenance, t)
		}
	}
	return board
}
