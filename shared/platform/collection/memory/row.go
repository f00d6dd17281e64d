package memory

// Row es un registro genérico clave-valor.
type Row map[string]any

func (r Row) Field(name string) (any, bool) {
	v, ok := r[name]
	return v, ok
}
