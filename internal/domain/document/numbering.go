package document

import (
	"fmt"
	"time"

	"github.com/jhoicas/stockflow-api/internal/domain/entity"
)

// Prefix devuelve el prefijo del número de documento según el tipo.
func Prefix(t entity.DocumentType) string {
	switch t {
	case entity.DocumentTypeReceipt:
		return "RCP"
	case entity.DocumentTypeDelivery:
		return "DEL"
	case entity.DocumentTypeTransfer:
		return "TRF"
	case entity.DocumentTypeAdjustment:
		return "ADJ"
	}
	return "DOC"
}

// FormatNumber arma {PREFIX}-{año}-{secuencia} con la secuencia rellenada a 3 dígitos.
// Secuencias mayores a 999 se escriben completas.
func FormatNumber(t entity.DocumentType, year, sequence int) string {
	return fmt.Sprintf("%s-%d-%03d", Prefix(t), year, sequence)
}

// YearStart devuelve el 1 de enero (00:00) del año de now, en su misma zona horaria.
// Es el límite inferior para contar los documentos del año.
func YearStart(now time.Time) time.Time {
	return time.Date(now.Year(), time.January, 1, 0, 0, 0, 0, now.Location())
}

// NextNumber calcula el número del siguiente documento a partir de cuántos documentos
// del mismo tipo existen en el año. No es a prueba de concurrencia: la restricción única
// sobre document_number es la que decide.
func NextNumber(t entity.DocumentType, now time.Time, existingThisYear int) string {
	return FormatNumber(t, now.Year(), existingThisYear+1)
}
