package projection

import (
	"sort"

	"golang.org/x/text/cases"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
)

// Ordenaciones de las vistas. Los empates se resuelven por ID para que dos instantáneas iguales
// produzcan siempre la misma lista.

// mapCustomers por nombre, sin distinguir mayúsculas.
func mapCustomers(docs []document.Document) []entity.Customer {
	out := make([]entity.Customer, 0, len(docs))
	for _, d := range docs {
		out = append(out, entity.CustomerFromDocument(d))
	}
	// cases.Caser no es seguro para uso concurrente: uno por llamada.
	fold := cases.Fold()
	keys := make(map[string]string, len(out))
	for _, c := range out {
		keys[c.ID] = fold.String(c.Name)
	}
	sort.SliceStable(out, func(i, j int) bool {
		a, b := keys[out[i].ID], keys[out[j].ID]
		if a != b {
			return a < b
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// mapOrders por createdAt descendente.
func mapOrders(docs []document.Document) []entity.Order {
	out := make([]entity.Order, 0, len(docs))
	for _, d := range docs {
		out = append(out, entity.OrderFromDocument(d))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].CreatedAt != out[j].CreatedAt {
			return out[i].CreatedAt > out[j].CreatedAt
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// mapPayments por fecha descendente.
func mapPayments(docs []document.Document) []entity.Payment {
	out := make([]entity.Payment, 0, len(docs))
	for _, d := range docs {
		out = append(out, entity.PaymentFromDocument(d))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Date != out[j].Date {
			return out[i].Date > out[j].Date
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// mapCatalog por nombre ascendente, distinguiendo mayúsculas.
func mapCatalog(docs []document.Document) []entity.CatalogEntry {
	out := make([]entity.CatalogEntry, 0, len(docs))
	for _, d := range docs {
		out = append(out, entity.CatalogEntryFromDocument(d))
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}
