package inventory

// MaxExportRows expone el tope de exportación a los tests del paquete inventory_test.
const MaxExportRows = maxExportRows
