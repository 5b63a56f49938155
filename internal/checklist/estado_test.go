package checklist

import "testing"

func TestCalcularProgreso(t *testing.T) {
	casos := []struct {
		nombre     string
		preguntas  int
		respuestas int
		porcentaje int
		estado     string
	}{
		{"sin preguntas", 0, 0, 0, EstadoVacio},
		{"sin respuestas", 10, 0, 0, EstadoPendiente},
		{"a medias", 10, 5, 50, EstadoEnProgreso},
		{"redondeo hacia arriba", 3, 2, 67, EstadoEnProgreso},
		{"redondeo hacia abajo", 3, 1, 33, EstadoEnProgreso},
		{"completo", 10, 10, 100, EstadoCompletado},
		{"pregunta borrada tras responder", 2, 3, 100, EstadoCompletado},
	}

	for _, tc := range casos {
		t.Run(tc.nombre, func(t *testing.T) {
			porcentaje, estado := CalcularProgreso(tc.preguntas, tc.respuestas)
			if porcentaje != tc.porcentaje {
				t.Errorf("porcentaje = %d, esperaba %d", porcentaje, tc.porcentaje)
			}
			if estado != tc.estado {
				t.Errorf("estado = %q, esperaba %q", estado, tc.estado)
			}
		})
	}
}
