package entity

// Referencias de datos maestros consumidas por la caja (solo lectura aquí).

// Customer cliente de la tienda.
type Customer struct {
	ID    string
	Name  string
	Phone string
}

// Warehouse bodega o sucursal.
type Warehouse struct {
	ID      string
	Name    string
	Address string
}

// PaymentMethod medio de pago.
type PaymentMethod struct {
	ID   string
	Name string
}

// Employee empleado que opera la caja; su ID viene del token.
type Employee struct {
	ID   string
	Name string
	Role string
}
