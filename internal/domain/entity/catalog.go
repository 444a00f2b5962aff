package entity

import "github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"

// Campos de CatalogEntry.
const (
	FieldCode   = "code"
	FieldKind   = "kind"
	FieldSortNo = "sortNo"
)

// Tipos de entrada del catálogo.
const CatalogKindCategory = "category"

// CatchAllCategoryCode código de la categoría comodín que todo catálogo debe tener.
const CatchAllCategoryCode = "others"

// CatalogEntry categoría de prendas del catálogo del propietario.
type CatalogEntry struct {
	ID        string
	OwnerID   string
	Code      string // único por propietario
	Name      string
	Kind      string
	SortNo    int64
	CreatedAt string
}

// CatalogEntryFromDocument mapea un documento remoto a CatalogEntry.
func CatalogEntryFromDocument(doc document.Document) CatalogEntry {
	f := doc.Fields
	return CatalogEntry{
		ID:        doc.ID,
		OwnerID:   f.String(FieldOwnerID),
		Code:      f.String(FieldCode),
		Name:      f.String(FieldName),
		Kind:      f.String(FieldKind),
		SortNo:    f.Int(FieldSortNo),
		CreatedAt: f.String(FieldCreatedAt),
	}
}

// Fields serializa la entrada completa.
func (c CatalogEntry) Fields() document.Fields {
	return document.Fields{
		FieldOwnerID:   c.OwnerID,
		FieldCode:      c.Code,
		FieldName:      c.Name,
		FieldKind:      c.Kind,
		FieldSortNo:    c.SortNo,
		FieldCreatedAt: c.CreatedAt,
	}
}

// DefaultCatalog conjunto fijo de categorías con el que se siembra el catálogo de un propietario nuevo.
func DefaultCatalog() []CatalogEntry {
	names := []struct{ code, name string }{
		{"blouse", "Blouse"},
		{"chudidar", "Chudidar"},
		{"frock", "Frock"},
		{"kurti", "Kurti"},
		{"lehenga", "Lehenga"},
		{"pant", "Pant"},
		{"saree", "Saree Work"},
		{"shirt", "Shirt"},
		{CatchAllCategoryCode, "Others"},
	}
	out := make([]CatalogEntry, 0, len(names))
	for i, n := range names {
		out = append(out, CatalogEntry{Code: n.code, Name: n.name, Kind: CatalogKindCategory, SortNo: int64(i + 1)})
	}
	return out
}

// CatchAllCategory entrada comodín "Others".
func CatchAllCategory() CatalogEntry {
	all := DefaultCatalog()
	return all[len(all)-1]
}

// HasCatchAll indica si el catálogo contiene la categoría comodín.
func HasCatchAll(entries []CatalogEntry) bool {
	for _, e := range entries {
		if e.Code == CatchAllCategoryCode {
			return true
		}
	}
	return false
}
