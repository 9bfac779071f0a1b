package checkout

import "github.com/rs/zerolog"

// Effects efectos de la terminal que el flujo dispara pero no implementa.
type Effects interface {
	// Beep confirmación sonora de un escaneo exitoso. No debe bloquear ni fallar.
	Beep()
}

// LogEffects implementación por defecto: deja constancia en el log.
type LogEffects struct {
	Log zerolog.Logger
}

func (e LogEffects) Beep() {
	e.Log.Debug().Msg("beep")
}
