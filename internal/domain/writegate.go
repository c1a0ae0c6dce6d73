package domain

import "sync"

// WriteGate serializa todas las escrituras sobre el par (products, movements).
// Cada mutación (alta, siembra o movimiento) debe retener el gate durante toda
// la operación, sin importar qué producto toque. Las lecturas no pasan por
// aquí: solo observan estado confirmado.
type WriteGate struct {
	mu sync.Mutex
}

// NewWriteGate construye el gate. Debe existir uno solo por proceso.
func NewWriteGate() *WriteGate {
	return &WriteGate{}
}

// Lock bloquea hasta adquirir el turno de escritura. No hay timeout: el
// caller impone su propia cancelación en el borde (handler HTTP, etc.).
func (g *WriteGate) Lock() {
	g.mu.Lock()
}

// Unlock libera el turno de escritura.
func (g *WriteGate) Unlock() {
	g.mu.Unlock()
}
