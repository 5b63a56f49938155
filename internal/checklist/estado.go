package checklist

import "math"

// Estados derivados del progreso de un usuario sobre una plantilla.
const (
	EstadoVacio      = "Empty"
	EstadoPendiente  = "Pending"
	EstadoEnProgreso = "InProgress"
	EstadoCompletado = "Completed"
)

// CalcularProgreso deriva porcentaje y estado a partir de los conteos.
// Una plantilla sin preguntas no es completable: queda en 0% y Empty.
// El porcentaje se recorta a 100: borrar una pregunta desde el
// backoffice puede dejar más respuestas que preguntas.
func CalcularProgreso(totalPreguntas, totalRespuestas int) (int, string) {
	if totalPreguntas <= 0 {
		return 0, EstadoVacio
	}

	porcentaje := int(math.Round(float64(totalRespuestas) / float64(totalPreguntas) * 100))
	if porcentaje > 100 {
		porcentaje = 100
	}

	switch {
	case totalRespuestas == 0:
		return porcentaje, EstadoPendiente
	case totalRespuestas < totalPreguntas:
		return porcentaje, EstadoEnProgreso
	default:
		return porcentaje, EstadoCompletado
	}
}
