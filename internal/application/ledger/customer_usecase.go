package ledger

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/application/dto"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/document"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/entity"
	"github.com/bhuvanux/Sewvee-BMS-sub000/internal/domain/repository"
	"github.com/bhuvanux/Sewvee-BMS-sub000/pkg/logger"
)

// CustomerDirectory clientes conocidos localmente por propietario (la proyección en vivo).
// ready=false mientras no haya llegado la primera instantánea.
type CustomerDirectory interface {
	Customers(ownerID string) (customers []entity.Customer, ready bool)
}

// CustomerUseCase alta, edición y borrado de clientes. Los agregados sólo los mueven
// las operaciones de pedidos y pagos.
type CustomerUseCase struct {
	store     repository.DocumentStore
	directory CustomerDirectory
	log       *logger.Logger
}

// NewCustomerUseCase construye el caso de uso. directory puede ser nil: entonces el ID visible
// se calcula consultando el almacén.
func NewCustomerUseCase(store repository.DocumentStore, directory CustomerDirectory, log *logger.Logger) *CustomerUseCase {
	return &CustomerUseCase{store: store, directory: directory, log: log.WithComponent("ledger.customers")}
}

// CreateCustomer crea un cliente con agregados a cero y el siguiente ID visible del propietario.
// La secuencia sale del máximo conocido + 1; dos sesiones simultáneas pueden repetirla.
func (uc *CustomerUseCase) CreateCustomer(ctx context.Context, ownerID, tenantName string, in dto.CreateCustomerRequest) (*entity.Customer, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	existing, err := uc.knownCustomers(ctx, ownerID)
	if err != nil {
		return nil, err
	}
	now := entity.Now()
	customer := entity.Customer{
		ID:          uuid.New().String(),
		OwnerID:     ownerID,
		DisplayID:   entity.NextCustomerDisplayID(tenantName, existing),
		Name:        strings.TrimSpace(in.Name),
		Phone:       in.Phone,
		Email:       in.Email,
		Address:     in.Address,
		TotalOrders: 0,
		TotalSpent:  decimal.Zero,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.store.Set(ctx, entity.CollectionCustomers, customer.ID, customer.Fields(), false); err != nil {
		return nil, fmt.Errorf("crear cliente: %w", err)
	}
	return &customer, nil
}

// UpdateCustomer escritura merge de los datos de contacto.
func (uc *CustomerUseCase) UpdateCustomer(ctx context.Context, ownerID, id string, in dto.UpdateCustomerRequest) (*entity.Customer, error) {
	if err := requireOwner(ownerID); err != nil {
		return nil, err
	}
	if in.Name != nil && strings.TrimSpace(*in.Name) == "" {
		return nil, domain.ErrInvalidInput
	}
	doc, err := getOwned(ctx, uc.store, entity.CollectionCustomers, id, ownerID)
	if err != nil {
		return nil, err
	}
	if doc == nil {
		return nil, domain.ErrNotFound
	}
	patch := document.Fields{entity.FieldUpdatedAt: entity.Now()}
	if in.Name != nil {
		name := strings.TrimSpace(*in.Name)
		patch[entity.FieldName] = name
	}
	setString(patch, entity.FieldPhone, in.Phone)
	setString(patch, entity.FieldEmail, in.Email)
	setString(patch, entity.FieldAddress, in.Address)

	if err := uc.store.Set(ctx, entity.CollectionCustomers, id, patch, true); err != nil {
		return nil, fmt.Errorf("actualizar cliente %s: %w", id, err)
	}
	customer := entity.CustomerFromDocument(document.Document{ID: id, Fields: merged(doc.Fields, patch)})
	return &customer, nil
}

// DeleteCustomer borra el cliente; sus pedidos no se tocan. Devuelve false si ya no existía.
func (uc *CustomerUseCase) DeleteCustomer(ctx context.Context, ownerID, id string) (bool, error) {
	if err := requireOwner(ownerID); err != nil {
		return false, err
	}
	doc, err := getOwned(ctx, uc.store, entity.CollectionCustomers, id, ownerID)
	if err != nil {
		return false, err
	}
	if doc == nil {
		uc.log.Warn().Str("owner_id", ownerID).Str("customer_id", id).Msg("borrar cliente: no existe, nada que hacer")
		return false, nil
	}
	if err := uc.store.Delete(ctx, entity.CollectionCustomers, id); err != nil {
		return false, fmt.Errorf("borrar cliente %s: %w", id, err)
	}
	return true, nil
}

func (uc *CustomerUseCase) knownCustomers(ctx context.Context, ownerID string) ([]entity.Customer, error) {
	if uc.directory != nil {
		if list, ready := uc.directory.Customers(ownerID); ready {
			return list, nil
		}
	}
	docs, err := uc.store.Query(ctx, entity.CollectionCustomers, document.Where(entity.FieldOwnerID, ownerID))
	if err != nil {
		return nil, fmt.Errorf("listar clientes: %w", err)
	}
	out := make([]entity.Customer, 0, len(docs))
	for _, d := range docs {
		out = append(out, entity.CustomerFromDocument(d))
	}
	return out, nil
}
