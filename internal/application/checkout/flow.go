// Package checkout implementa el flujo de caja: escaneo, pago, registro de la venta y factura.
package checkout

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/jhoicas/grocerymate-pos/internal/application/invoice"
	"github.com/jhoicas/grocerymate-pos/internal/application/ports"
	"github.com/jhoicas/grocerymate-pos/internal/domain"
	"github.com/jhoicas/grocerymate-pos/internal/domain/cart"
	"github.com/jhoicas/grocerymate-pos/internal/domain/entity"
	"github.com/jhoicas/grocerymate-pos/internal/domain/repository"
)

// Mensajes visibles para el cajero.
const (
	msgProductNotFound = "Product not found"
	msgSaleFailed      = "Failed to process sale"
)

// Deps dependencias del flujo. Journal y Effects son opcionales.
type Deps struct {
	Cart    *cart.Store
	Catalog ports.CatalogGateway
	Sales   ports.SalesGateway
	Journal repository.SaleJournal
	Effects Effects
	Log     zerolog.Logger
}

// Flow máquina de estados de la caja. Idle/Building se derivan del carrito; Submitting y
// Completed los lleva el flujo. El lock del flujo se toma siempre antes que el del carrito
// y nunca se mantiene durante una llamada al backend.
type Flow struct {
	cart    *cart.Store
	catalog ports.CatalogGateway
	sales   ports.SalesGateway
	journal repository.SaleJournal
	effects Effects
	notices *NoticeBoard
	log     zerolog.Logger
	now     func() time.Time
	newKey  func() string

	mu      sync.Mutex
	phase   phase
	tender  entity.Tender
	invoice *entity.Invoice
	closed  bool
}

// NewFlow construye el flujo. noticeTTL <= 0 usa 3s.
func NewFlow(deps Deps, noticeTTL time.Duration) *Flow {
	log := deps.Log.With().Str("component", "checkout").Logger()
	effects := deps.Effects
	if effects == nil {
		effects = LogEffects{Log: log}
	}
	return &Flow{
		cart:    deps.Cart,
		catalog: deps.Catalog,
		sales:   deps.Sales,
		journal: deps.Journal,
		effects: effects,
		notices: NewNoticeBoard(noticeTTL),
		log:     log,
		now:     time.Now,
		newKey:  uuid.NewString,
		tender:  entity.DefaultTender(),
	}
}

// State estado actual.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.stateLocked()
}

func (f *Flow) stateLocked() State {
	switch f.phase {
	case phaseSubmitting:
		return StateSubmitting
	case phaseCompleted:
		return StateCompleted
	}
	if f.cart.Len() == 0 {
		return StateIdle
	}
	return StateBuilding
}

// editableLocked el carrito y el pago solo se modifican en Idle/Building.
func (f *Flow) editableLocked() error {
	if f.closed {
		return fmt.Errorf("%w: flujo cerrado", domain.ErrInvalidState)
	}
	switch f.phase {
	case phaseSubmitting:
		return fmt.Errorf("%w: venta en proceso", domain.ErrInvalidState)
	case phaseCompleted:
		return fmt.Errorf("%w: cierre la factura antes de continuar", domain.ErrInvalidState)
	}
	return nil
}

// ScanBarcode busca el producto por código y lo agrega al carrito. Un código en blanco se
// ignora. Si no existe, el carrito no cambia y se publica "Product not found".
func (f *Flow) ScanBarcode(ctx context.Context, code string) (*entity.Product, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	f.mu.Lock()
	err := f.editableLocked()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}

	p, err := f.catalog.LookupBarcode(ctx, code)
	if err != nil {
		if errors.Is(err, domain.ErrUnauthorized) {
			return nil, err
		}
		f.log.Debug().Err(err).Str("barcode", code).Msg("producto no encontrado")
		f.notices.Post(NoticeError, msgProductNotFound)
		return nil, err
	}
	if p.Barcode == "" {
		p.Barcode = code
	}

	if err := f.add(ctx, p); err != nil {
		return nil, err
	}
	f.effects.Beep()
	return &p, nil
}

// AddProduct agrega un producto ya resuelto (selección por categoría).
func (f *Flow) AddProduct(ctx context.Context, p entity.Product) error {
	return f.add(ctx, p)
}

// AddProductByID resuelve el producto en el backend y lo agrega.
func (f *Flow) AddProductByID(ctx context.Context, productID string) (*entity.Product, error) {
	f.mu.Lock()
	err := f.editableLocked()
	f.mu.Unlock()
	if err != nil {
		return nil, err
	}
	p, err := f.catalog.GetProduct(ctx, productID)
	if err != nil {
		return nil, err
	}
	if err := f.add(ctx, p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (f *Flow) add(ctx context.Context, p entity.Product) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	// el resultado de una búsqueda que llega después de cerrar o de enviar la venta se descarta
	if err := f.editableLocked(); err != nil {
		return err
	}
	if err := f.cart.AddLine(ctx, p); err != nil {
		return err
	}
	f.notices.Post(NoticeSuccess, "Added "+p.DisplayName())
	return nil
}

// BrowseCategories categorías para la selección manual.
func (f *Flow) BrowseCategories(ctx context.Context) ([]entity.Category, error) {
	return f.catalog.ListCategories(ctx)
}

// BrowseCategory productos de una categoría.
func (f *Flow) BrowseCategory(ctx context.Context, categoryID string) ([]entity.Product, error) {
	if strings.TrimSpace(categoryID) == "" {
		return nil, fmt.Errorf("%w: categoría vacía", domain.ErrInvalidInput)
	}
	return f.catalog.ListCategoryProducts(ctx, categoryID)
}

// SetQuantity cantidades < 1 se ignoran (no eliminan la línea).
func (f *Flow) SetQuantity(ctx context.Context, productID string, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	return f.cart.SetQuantity(ctx, productID, quantity)
}

func (f *Flow) RemoveLine(ctx context.Context, productID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	return f.cart.RemoveLine(ctx, productID)
}

func (f *Flow) ClearCart(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	return f.cart.Clear(ctx)
}

// SetPaymentMethod cambia el medio de pago; salir de efectivo borra el efectivo recibido.
func (f *Flow) SetPaymentMethod(method entity.PaymentMethod) error {
	return f.UpdateTender(&method, nil)
}

// SetCashReceived acepta "" o dígitos con un punto decimal; otro texto se rechaza y el
// valor anterior se conserva.
func (f *Flow) SetCashReceived(text string) error {
	return f.UpdateTender(nil, &text)
}

// UpdateTender aplica medio de pago y efectivo juntos: se valida todo antes de cambiar
// nada. Con un medio distinto de efectivo, un efectivo "" no hace nada.
func (f *Flow) UpdateTender(method *entity.PaymentMethod, cash *string) error {
	if method != nil && !method.Valid() {
		return fmt.Errorf("%w: medio de pago %q", domain.ErrInvalidTender, *method)
	}
	if cash != nil && !ValidCashInput(*cash) {
		return fmt.Errorf("%w: efectivo %q", domain.ErrInvalidInput, *cash)
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if err := f.editableLocked(); err != nil {
		return err
	}
	next := f.tender
	if method != nil {
		next.Method = *method
		if next.Method != entity.PaymentCash {
			next.CashReceived = ""
		}
	}
	if cash != nil {
		switch {
		case next.Method == entity.PaymentCash:
			next.CashReceived = *cash
		case *cash != "":
			return fmt.Errorf("%w: el efectivo solo aplica a pagos en efectivo", domain.ErrInvalidTender)
		}
	}
	f.tender = next
	return nil
}

// Tender medio de pago actual.
func (f *Flow) Tender() entity.Tender {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.tender
}

// Totals totales del carrito actual con el pago actual.
func (f *Flow) Totals() entity.Totals {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cart.ComputeTotals(f.cart.Lines(), f.tender)
}

// Validation mensajes persistentes. Con el carrito vacío no hay mensajes (solo se
// deshabilita el envío).
func (f *Flow) Validation() Validation {
	f.mu.Lock()
	defer f.mu.Unlock()
	lines := f.cart.Lines()
	if len(lines) == 0 {
		return Validation{}
	}
	return validateTender(cart.ComputeTotals(lines, f.tender), f.tender)
}

// CanSubmit carrito no vacío, pago válido y estado Building.
func (f *Flow) CanSubmit() bool {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.canSubmitLocked(f.cart.Lines())
}

func (f *Flow) canSubmitLocked(lines []entity.CartLine) bool {
	if f.closed || f.phase != phaseOpen || len(lines) == 0 {
		return false
	}
	return validateTender(cart.ComputeTotals(lines, f.tender), f.tender).Valid()
}

// Notice aviso transitorio vigente.
func (f *Flow) Notice() (Notice, bool) {
	return f.notices.Current()
}

// Submit registra la venta: una sola llamada al backend, sin reintentos. Con éxito arma la
// factura, vacía el carrito y pasa a Completed; con error vuelve a Building con el carrito
// intacto y publica "Failed to process sale". Si el flujo se cerró mientras tanto, una venta
// aceptada igual vacía el carrito y se anota en la bitácora.
func (f *Flow) Submit(ctx context.Context) (entity.Invoice, error) {
	// ── 1. Guardas y paso a Submitting ────────────────────────────────────────
	f.mu.Lock()
	if f.phase == phaseSubmitting {
		f.mu.Unlock()
		return entity.Invoice{}, domain.ErrSubmissionInFlight
	}
	if err := f.editableLocked(); err != nil {
		f.mu.Unlock()
		return entity.Invoice{}, err
	}
	lines := f.cart.Lines()
	if len(lines) == 0 {
		f.mu.Unlock()
		return entity.Invoice{}, domain.ErrEmptyCart
	}
	tender := f.tender
	totals := cart.ComputeTotals(lines, tender)
	if v := validateTender(totals, tender); !v.Valid() {
		f.mu.Unlock()
		return entity.Invoice{}, fmt.Errorf("%w: %s", domain.ErrInvalidTender, v.Cash)
	}
	f.phase = phaseSubmitting
	f.mu.Unlock()

	// ── 2. Registro en el backend (sin lock) ──────────────────────────────────
	req := buildSaleRequest(f.newKey(), lines, tender, totals)
	receipt, err := f.sales.SubmitSale(ctx, req)

	// ── 3. Aplicar resultado ──────────────────────────────────────────────────
	f.mu.Lock()
	if f.closed {
		// La pantalla ya no se actualiza, pero una venta registrada vacía el carrito igual.
		f.mu.Unlock()
		if err != nil {
			f.log.Warn().Err(err).Msg("venta fallida tras cerrar el flujo")
			return entity.Invoice{}, err
		}
		inv := invoice.Build(receipt.InvoiceNumber, lines, tender, totals, f.now())
		if clearErr := f.cart.Clear(ctx); clearErr != nil {
			f.log.Warn().Err(clearErr).Msg("no se pudo vaciar el carrito tras la venta")
		}
		f.log.Warn().Str("invoice", inv.Number).Msg("venta registrada con el flujo cerrado")
		f.record(ctx, inv, receipt, len(lines))
		return inv, nil
	}
	if err != nil {
		f.phase = phaseOpen
		f.mu.Unlock()
		f.log.Error().Err(err).Int("items", len(lines)).Str("total", totals.FinalTotal.StringFixed(2)).Msg("error registrando venta")
		f.notices.Post(NoticeError, msgSaleFailed)
		return entity.Invoice{}, err
	}

	inv := invoice.Build(receipt.InvoiceNumber, lines, tender, totals, f.now())
	f.phase = phaseCompleted
	f.invoice = &inv
	if clearErr := f.cart.Clear(ctx); clearErr != nil {
		f.log.Warn().Err(clearErr).Msg("no se pudo vaciar el carrito tras la venta")
	}
	f.mu.Unlock()

	f.log.Info().
		Str("invoice", inv.Number).
		Str("payment", string(inv.PaymentMethod)).
		Str("total", totals.FinalTotal.StringFixed(2)).
		Msg("venta registrada")
	f.record(ctx, inv, receipt, len(lines))
	return inv, nil
}

// record anota la venta en la bitácora local; un fallo solo se registra.
func (f *Flow) record(ctx context.Context, inv entity.Invoice, receipt entity.SaleReceipt, items int) {
	if f.journal == nil {
		return
	}
	err := f.journal.Append(ctx, entity.JournalEntry{
		InvoiceNumber: inv.Number,
		SaleID:        receipt.SaleID,
		PaymentMethod: inv.PaymentMethod,
		ItemCount:     items,
		FinalTotal:    inv.Totals.FinalTotal,
		CashReceived:  inv.Totals.CashReceived,
		Change:        inv.Totals.Change,
		CompletedAt:   inv.Date,
	})
	if err != nil {
		f.log.Warn().Err(err).Str("invoice", inv.Number).Msg("no se pudo anotar la venta en la bitácora")
	}
}

// Invoice factura vigente (solo en Completed).
func (f *Flow) Invoice() (entity.Invoice, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase != phaseCompleted || f.invoice == nil {
		return entity.Invoice{}, false
	}
	return *f.invoice, true
}

// DismissInvoice cierra la factura: Completed -> Idle, vacía el carrito otra vez y vuelve
// al pago por defecto. Fuera de Completed no hace nada.
func (f *Flow) DismissInvoice(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.phase != phaseCompleted {
		return nil
	}
	if err := f.cart.Clear(ctx); err != nil {
		return err
	}
	f.phase = phaseOpen
	f.invoice = nil
	f.tender = entity.DefaultTender()
	return nil
}

// Close marca el flujo como terminado: resultados de llamadas en curso se descartan.
func (f *Flow) Close() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
}

// View foto completa del flujo para la pantalla de caja.
type View struct {
	State      State
	Lines      []entity.CartLine
	Totals     entity.Totals
	Tender     entity.Tender
	Validation Validation
	Notice     *Notice
	CanSubmit  bool
	Invoice    *entity.Invoice
}

// View arma la foto bajo un solo lock para que estado, líneas y totales sean coherentes.
func (f *Flow) View() View {
	f.mu.Lock()
	lines := f.cart.Lines()
	v := View{
		State:     f.stateLocked(),
		Lines:     lines,
		Totals:    cart.ComputeTotals(lines, f.tender),
		Tender:    f.tender,
		CanSubmit: f.canSubmitLocked(lines),
	}
	if len(lines) > 0 {
		v.Validation = validateTender(v.Totals, f.tender)
	}
	if f.phase == phaseCompleted && f.invoice != nil {
		inv := *f.invoice
		v.Invoice = &inv
	}
	f.mu.Unlock()

	if n, ok := f.notices.Current(); ok {
		v.Notice = &n
	}
	return v
}
