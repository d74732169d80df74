package model

// Logo decorates a brand-level navigation node. The lookup is keyed by the
// case-normalized brand name; nothing else ties it to the cut rows.
type Logo struct {
	Marca  string `json:"marca"`
	Imagen string `json:"imagen"`
}

// Catalogo is the normalized result of one full remote fetch. It is held in
// memory for the lifetime of the index built from it and replaced wholesale
// on every fresh fetch.
type Catalogo struct {
	Cortes []Corte `json:"cortes"`
	Logos  []Logo  `json:"logos"`
	// CategoriasOrdenadas is the backend's optional ordering hint
	// ("sortedCategories"); empty means alphabetical.
	CategoriasOrdenadas []string `json:"sortedCategories,omitempty"`
}
