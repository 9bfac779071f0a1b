package checkout

// State estado observable del flujo de caja.
type State string

const (
	StateIdle       State = "Idle"       // carrito vacío
	StateBuilding   State = "Building"   // carrito con líneas
	StateSubmitting State = "Submitting" // registro de venta en curso
	StateCompleted  State = "Completed"  // factura en pantalla
)

// phase parte del estado que no se deriva del carrito.
type phase int

const (
	phaseOpen phase = iota
	phaseSubmitting
	phaseCompleted
)
