// Package entry modela el borrador de una entrada de material como un valor inmutable:
// Recompute deriva todos los montos y reajusta las asignaciones; Validate produce la
// entrada final lista para persistir o la lista completa de errores del formulario.
package entry

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Reciclaje-api/internal/domain"
	"github.com/jhoicas/Reciclaje-api/internal/domain/allocation"
	"github.com/jhoicas/Reciclaje-api/internal/domain/costing"
	"github.com/jhoicas/Reciclaje-api/internal/domain/entity"
	"github.com/jhoicas/Reciclaje-api/internal/domain/money"
	"github.com/shopspring/decimal"
)

// Kind tipo de entrada.
type Kind string

// Tipos de entrada (mismos valores que entity.EntryKind*).
const (
	KindInward            Kind = entity.EntryKindInward
	KindSegregatedOutward Kind = entity.EntryKindSegregatedOutward
	KindRejectedOutward   Kind = entity.EntryKindRejectedOutward
)

// ParseKind valida el tipo de entrada.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToUpper(strings.TrimSpace(s))); k {
	case KindInward, KindSegregatedOutward, KindRejectedOutward:
		return k, nil
	}
	return "", fmt.Errorf("%w: tipo de entrada desconocido %q", domain.ErrInvalidInput, s)
}

// IsExpense las entradas de material son dinero que sale; las salidas son ingreso.
func (k Kind) IsExpense() bool { return k == KindInward }

// Categories categorías de costo que usa cada tipo de entrada.
func (k Kind) Categories() []allocation.Category {
	switch k {
	case KindInward:
		return []allocation.Category{allocation.CategoryLabor}
	case KindSegregatedOutward:
		return []allocation.Category{allocation.CategorySegregation, allocation.CategoryBailing, allocation.CategoryLoading}
	case KindRejectedOutward:
		return []allocation.Category{allocation.CategoryLoading}
	}
	return nil
}

// Uses indica si el tipo de entrada usa la categoría.
func (k Kind) Uses(c allocation.Category) bool {
	for _, own := range k.Categories() {
		if own == c {
			return true
		}
	}
	return false
}

// partyField nombre del campo del tercero obligatorio ("" si no aplica).
func (k Kind) partyField() string {
	switch k {
	case KindSegregatedOutward:
		return "buyer_id"
	case KindRejectedOutward:
		return "recipient_id"
	}
	return ""
}

func (k Kind) voucherPrefix() string {
	switch k {
	case KindSegregatedOutward:
		return "SEG"
	case KindRejectedOutward:
		return "REJ"
	}
	return "INW"
}

// NewVoucher genera un número de comprobante: PREFIJO-AAAAMMDD-XXXXXXXX.
func NewVoucher(k Kind, at time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.New().String(), "-", "")[:8])
	return fmt.Sprintf("%s-%s-%s", k.voucherPrefix(), at.Format("20060102"), suffix)
}

// Inputs valores crudos tal como llegan del formulario.
// Las tarifas que no usa el tipo de entrada se ignoran.
type Inputs struct {
	Quantity        string
	Rate            string
	LaborRate       string
	SegregationRate string
	BailingRate     string
	LoadingRate     string
	AgentID         string
	PartyID         string
	MaterialID      string
	LocationID      string
	VoucherNo       string
	Notes           string
	EntryDate       time.Time
}

// Amounts montos derivados de una entrada.
type Amounts struct {
	Total          decimal.Decimal
	Labor          decimal.Decimal
	Segregation    decimal.Decimal
	Bailing        decimal.Decimal
	Loading        decimal.Decimal
	CommissionRate decimal.Decimal
	Commission     decimal.Decimal
}

// ForCategory monto objetivo de una categoría de costo.
func (a Amounts) ForCategory(c allocation.Category) decimal.Decimal {
	switch c {
	case allocation.CategoryLabor:
		return a.Labor
	case allocation.CategorySegregation:
		return a.Segregation
	case allocation.CategoryBailing:
		return a.Bailing
	case allocation.CategoryLoading:
		return a.Loading
	}
	return decimal.Zero
}

// Costs todos los costos que salen contra el total (mano de obra y comisión).
func (a Amounts) Costs() []decimal.Decimal {
	return []decimal.Decimal{a.Labor, a.Segregation, a.Bailing, a.Loading, a.Commission}
}

// Draft borrador de una entrada. Es un valor: las funciones de este paquete devuelven
// uno nuevo y el controlador decide cuándo reemplazar el suyo.
type Draft struct {
	Kind    Kind
	Inputs  Inputs
	Amounts Amounts
	Pool    allocation.Pool
}

// NewDraft borrador vacío de un tipo de entrada.
func NewDraft(kind Kind, in Inputs) Draft {
	return Draft{Kind: kind, Inputs: in, Pool: allocation.NewPool()}
}

// WithInputs copia del borrador con nuevas entradas (sin recalcular).
func (d Draft) WithInputs(in Inputs) Draft {
	d.Inputs = in
	return d
}

// WithPool copia del borrador con otro pool de asignaciones.
func (d Draft) WithPool(p allocation.Pool) Draft {
	d.Pool = p
	return d
}

// Net resultado neto con signo del borrador.
func (d Draft) Net() decimal.Decimal {
	return costing.ComputeNet(d.Amounts.Total, d.Amounts.Costs(), d.Kind.IsExpense())
}

// derive calcula todos los montos a partir de cantidades y tarifas ya interpretadas.
func derive(kind Kind, quantity decimal.Decimal, rates rateSet, agentID string, dir costing.AgentDirectory) Amounts {
	a := Amounts{Total: costing.ComputeAmount(quantity, rates.rate)}
	if kind.Uses(allocation.CategoryLabor) {
		a.Labor = costing.ComputeAmount(quantity, rates.labor)
	}
	if kind.Uses(allocation.CategorySegregation) {
		a.Segregation = costing.ComputeAmount(quantity, rates.segregation)
	}
	if kind.Uses(allocation.CategoryBailing) {
		a.Bailing = costing.ComputeAmount(quantity, rates.bailing)
	}
	if kind.Uses(allocation.CategoryLoading) {
		a.Loading = costing.ComputeAmount(quantity, rates.loading)
	}
	if kind == KindInward {
		if rate := costing.ResolveCommissionRate(agentID, dir); rate != nil {
			a.CommissionRate = *rate
			a.Commission = costing.ComputeAmount(quantity, *rate)
		}
	}
	return a
}

type rateSet struct {
	rate, labor, segregation, bailing, loading decimal.Decimal
}

// retarget reajusta las categorías cuyo total cambió; las que no cambian conservan sus montos manuales.
func retarget(kind Kind, p allocation.Pool, a Amounts) allocation.Pool {
	for _, c := range kind.Categories() {
		target := a.ForCategory(c)
		if _, tracked := indexOf(p.Categories(), c); tracked && p.Target(c).Equal(target) {
			continue
		}
		p = p.Retarget(c, target)
	}
	return p
}

func indexOf(list []allocation.Category, c allocation.Category) (int, bool) {
	for i, v := range list {
		if v == c {
			return i, true
		}
	}
	return -1, false
}

// Recompute recálculo en vivo: las entradas inválidas cuentan como 0 para que el formulario
// siga respondiendo. Todos los montos se derivan de nuevo, nunca se parchean.
func Recompute(d Draft, dir costing.AgentDirectory) Draft {
	in := d.Inputs
	quantity := money.ParseLenient(in.Quantity)
	rates := rateSet{
		rate:        money.ParseLenient(in.Rate),
		labor:       money.ParseLenient(in.LaborRate),
		segregation: money.ParseLenient(in.SegregationRate),
		bailing:     money.ParseLenient(in.BailingRate),
		loading:     money.ParseLenient(in.LoadingRate),
	}
	d.Amounts = derive(d.Kind, quantity, rates, in.AgentID, dir)
	d.Pool = retarget(d.Kind, d.Pool, d.Amounts)
	return d
}

// Finalized entrada validada lista para el llamado de persistencia.
type Finalized struct {
	Entry       entity.TransactionEntry
	Allocations []entity.LaborAllocation
	Net         decimal.Decimal
}

// Validate validación al enviar: interpretación estricta de cantidades y tarifas,
// selecciones obligatorias e invariantes de asignación. Devuelve todos los errores juntos.
func Validate(d Draft, dir costing.AgentDirectory) (*Finalized, error) {
	var errs domain.ValidationErrors
	in := d.Inputs

	if _, err := ParseKind(string(d.Kind)); err != nil {
		return nil, err
	}

	quantity, err := money.ParseStrict("quantity", in.Quantity, true)
	if err != nil {
		errs = append(errs, err)
	}
	var rates rateSet
	if rates.rate, err = money.ParseStrict("rate", in.Rate, false); err != nil {
		errs = append(errs, err)
	}
	optional := []struct {
		category allocation.Category
		field    string
		raw      string
		dst      *decimal.Decimal
	}{
		{allocation.CategoryLabor, "labor_rate", in.LaborRate, &rates.labor},
		{allocation.CategorySegregation, "segregation_rate", in.SegregationRate, &rates.segregation},
		{allocation.CategoryBailing, "bailing_rate", in.BailingRate, &rates.bailing},
		{allocation.CategoryLoading, "loading_rate", in.LoadingRate, &rates.loading},
	}
	for _, o := range optional {
		if !d.Kind.Uses(o.category) {
			continue
		}
		v, err := money.ParseOptional(o.field, o.raw)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		*o.dst = v
	}

	if strings.TrimSpace(in.MaterialID) == "" {
		errs = append(errs, &domain.MissingRequiredSelectionError{Field: "material_id"})
	}
	if strings.TrimSpace(in.LocationID) == "" {
		errs = append(errs, &domain.MissingRequiredSelectionError{Field: "location_id"})
	}
	if field := d.Kind.partyField(); field != "" && strings.TrimSpace(in.PartyID) == "" {
		errs = append(errs, &domain.MissingRequiredSelectionError{Field: field})
	}
	for _, a := range d.Pool.Allocations() {
		if !d.Kind.Uses(a.Category) {
			errs = append(errs, fmt.Errorf("%w: la categoría %s no aplica a %s", domain.ErrInvalidInput, a.Category, d.Kind))
		}
	}
	if len(errs) > 0 {
		// El reparto se revisa igual, con los montos del recálculo en vivo.
		var poolErrs domain.ValidationErrors
		if errors.As(Recompute(d, dir).Pool.Validate(), &poolErrs) {
			errs = append(errs, poolErrs...)
		}
		return nil, errs
	}

	amounts := derive(d.Kind, quantity, rates, in.AgentID, dir)
	pool := retarget(d.Kind, d.Pool, amounts)
	if err := pool.Validate(); err != nil {
		return nil, err
	}

	entryDate := in.EntryDate
	if entryDate.IsZero() {
		entryDate = time.Now()
	}
	voucher := strings.TrimSpace(in.VoucherNo)
	if voucher == "" {
		voucher = NewVoucher(d.Kind, entryDate)
	}
	e := entity.TransactionEntry{
		Kind:              string(d.Kind),
		VoucherNo:         voucher,
		EntryDate:         entryDate,
		MaterialID:        strings.TrimSpace(in.MaterialID),
		LocationID:        strings.TrimSpace(in.LocationID),
		PartyID:           strings.TrimSpace(in.PartyID),
		AgentID:           strings.TrimSpace(in.AgentID),
		Quantity:          quantity,
		Rate:              rates.rate,
		TotalAmount:       amounts.Total,
		LaborRate:         rates.labor,
		LaborAmount:       amounts.Labor,
		SegregationRate:   rates.segregation,
		SegregationAmount: amounts.Segregation,
		BailingRate:       rates.bailing,
		BailingAmount:     amounts.Bailing,
		LoadingRate:       rates.loading,
		LoadingAmount:     amounts.Loading,
		CommissionRate:    amounts.CommissionRate,
		CommissionAmount:  amounts.Commission,
		Notes:             strings.TrimSpace(in.Notes),
	}
	allocs := make([]entity.LaborAllocation, 0, len(pool.Allocations()))
	for _, a := range pool.Allocations() {
		allocs = append(allocs, entity.LaborAllocation{
			ID:       a.ID,
			StaffID:  a.StaffID,
			Category: string(a.Category),
			Amount:   a.Amount,
		})
	}
	return &Finalized{
		Entry:       e,
		Allocations: allocs,
		Net:         costing.ComputeNet(amounts.Total, amounts.Costs(), d.Kind.IsExpense()),
	}, nil
}

// NetResult recalcula el neto de una entrada persistida a partir de sus montos guardados.
func NetResult(e *entity.TransactionEntry) decimal.Decimal {
	costs := []decimal.Decimal{e.LaborAmount, e.SegregationAmount, e.BailingAmount, e.LoadingAmount, e.CommissionAmount}
	return costing.ComputeNet(e.TotalAmount, costs, Kind(e.Kind).IsExpense())
}
