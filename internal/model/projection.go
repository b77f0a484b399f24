package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Wire representations served by the read-only API and the dashboard.
// Field names follow the public contract; money is a string with two decimals.

type CategoryView struct {
	ID     int64  `json:"id"`
	Nombre string `json:"nombre"`
}

type DishView struct {
	ID          int64         `json:"id"`
	Nombre      string        `json:"nombre"`
	Descripcion string        `json:"descripcion"`
	Precio      string        `json:"precio"`
	Categoria   *CategoryView `json:"categoria"`
}

type OrderItemView struct {
	ID             int64     `json:"id"`
	Platillo       *DishView `json:"platillo"`
	Cantidad       int       `json:"cantidad"`
	Notas          string    `json:"notas"`
	PrecioUnitario string    `json:"precio_unitario"`
	Subtotal       string    `json:"subtotal"`
}

type EmployeeView struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type TableView struct {
	ID        int64  `json:"id"`
	Nombre    string `json:"nombre"`
	Capacidad int    `json:"capacidad"`
	Estado    string `json:"estado"`
}

type OrderView struct {
	ID        int64           `json:"id"`
	Empleado  *EmployeeView   `json:"empleado"`
	Mesa      *TableView      `json:"mesa"`
	FechaHora time.Time       `json:"fecha_hora"`
	Estatus   string          `json:"estatus"`
	Detalles  []OrderItemView `json:"detalles"`
	Total     string          `json:"total"`
}

type DailySalesView struct {
	Dia   string  `json:"dia"`
	Total float64 `json:"total"`
}

type DishSalesView struct {
	PlatilloID int64  `json:"platillo_id"`
	Nombre     string `json:"nombre"`
	Categoria  string `json:"categoria"`
	Cantidad   int    `json:"cantidad"`
	Ingresos   string `json:"ingresos"`
}

type DashboardView struct {
	Fecha                string           `json:"fecha"`
	VentasTotales        string           `json:"ventas_totales"`
	CantidadOrdenes      int              `json:"cantidad_ordenes"`
	OrdenesSemana        int              `json:"ordenes_semana"`
	VentasPorDia         []DailySalesView `json:"ventas_por_dia"`
	UltimasOrdenes       []OrderView      `json:"ultimas_ordenes"`
	PlatillosMasVendidos []DishSalesView  `json:"platillos_mas_vendidos"`
}

const dateLayout = "2006-01-02"

// Money formats an amount the way the API serializes currency.
func Money(d decimal.Decimal) string {
	return d.StringFixed(2)
}

// NewDishView projects a dish; the category is included when loaded.
func NewDishView(d *Dish) *DishView {
	if d == nil {
		return nil
	}
	v := &DishView{
		ID:          d.ID,
		Nombre:      d.Name,
		Descripcion: d.Description,
		Precio:      Money(d.Price),
	}
	if d.Category != nil {
		v.Categoria = &CategoryView{ID: d.Category.ID, Nombre: d.Category.Name}
	}
	return v
}

// NewOrderItemView projects a line item with its computed subtotal.
func NewOrderItemView(item *OrderItem) OrderItemView {
	return OrderItemView{
		ID:             item.ID,
		Platillo:       NewDishView(item.Dish),
		Cantidad:       item.Quantity,
		Notas:          item.Notes,
		PrecioUnitario: Money(item.UnitPrice),
		Subtotal:       Money(item.Subtotal()),
	}
}

// NewOrderItemViews projects a list of line items.
func NewOrderItemViews(items []OrderItem) []OrderItemView {
	views := make([]OrderItemView, 0, len(items))
	for i := range items {
		views = append(views, NewOrderItemView(&items[i]))
	}
	return views
}

// NewOrderView projects an order with nested employee, table and items.
func NewOrderView(o *Order) OrderView {
	v := OrderView{
		ID:        o.ID,
		FechaHora: o.PlacedAt,
		Estatus:   o.Status.Label(),
		Detalles:  NewOrderItemViews(o.Items),
		Total:     Money(o.Total()),
	}
	if o.Employee != nil {
		v.Empleado = &EmployeeView{
			ID:        o.Employee.ID,
			Username:  o.Employee.Username,
			FirstName: o.Employee.FirstName,
			LastName:  o.Employee.LastName,
		}
	}
	if o.Table != nil {
		v.Mesa = &TableView{
			ID:        o.Table.ID,
			Nombre:    o.Table.Name(),
			Capacidad: o.Table.Capacity,
			Estado:    o.Table.State.Label(),
		}
	}
	return v
}

// NewOrderViews projects a list of orders.
func NewOrderViews(orders []Order) []OrderView {
	views := make([]OrderView, 0, len(orders))
	for i := range orders {
		views = append(views, NewOrderView(&orders[i]))
	}
	return views
}

// NewDashboardView projects the dashboard aggregates.
func NewDashboardView(d *Dashboard) DashboardView {
	v := DashboardView{
		Fecha:                d.Date.Format(dateLayout),
		VentasTotales:        Money(d.TodaySales.Total),
		CantidadOrdenes:      d.TodaySales.OrderCount,
		OrdenesSemana:        d.WeekOrders,
		VentasPorDia:         make([]DailySalesView, 0, len(d.WeeklySales)),
		UltimasOrdenes:       NewOrderViews(d.RecentOrders),
		PlatillosMasVendidos: make([]DishSalesView, 0, len(d.TopDishes)),
	}
	for _, day := range d.WeeklySales {
		v.VentasPorDia = append(v.VentasPorDia, DailySalesView{
			Dia:   day.Date.Format(dateLayout),
			Total: day.Total.InexactFloat64(),
		})
	}
	for _, dish := range d.TopDishes {
		v.PlatillosMasVendidos = append(v.PlatillosMasVendidos, DishSalesView{
			PlatilloID: dish.DishID,
			Nombre:     dish.DishName,
			Categoria:  dish.CategoryName,
			Cantidad:   dish.Units,
			Ingresos:   Money(dish.Revenue),
		})
	}
	return v
}
