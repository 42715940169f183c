package planner

import (
	"fmt"
	"strings"
)

// Normalize re-derives CuotaCodigo and default concepts from array
// order. Bono entries keep their place in the list but are excluded
// from numbering. Normalize is idempotent.
func Normalize(entries []Entry) []Entry {
	out := make([]Entry, len(entries))
	pos := 0
	for i, e := range entries {
		if e.Type == TypeBono {
			e.CuotaCodigo = ""
			out[i] = e
			continue
		}
		pos++
		e.CuotaCodigo = fmt.Sprintf("CUOTA_%03d", pos)
		if strings.TrimSpace(e.Concept) == "" {
			if e.Type == TypeReserva {
				e.Concept = "Reserva"
			} else {
				e.Concept = fmt.Sprintf("Cuota %d", pos)
			}
		}
		out[i] = e
	}
	return out
}
